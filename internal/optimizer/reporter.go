package optimizer

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
)

// WriteSearch prints the baseline against the best candidate and its weights
func WriteSearch(out io.Writer, r *SearchResult) {
	fmt.Fprintf(out, "\nOptimized %s by %s over %d iterations (%d improvements)\n",
		r.Profile, r.Fitness, r.Iterations, r.Improvements)

	table := tablewriter.NewWriter(out)
	table.Header("Candidate", "Score", "ROI", "Win rate", "Bets", "W-L")
	for _, row := range []struct {
		label string
		eval  Evaluation
	}{{"Baseline", r.Baseline}, {"Best", r.BestEval}} {
		table.Append(
			row.label,
			fmt.Sprintf("%.2f", row.eval.Score),
			fmt.Sprintf("%.1f%%", row.eval.ROI),
			fmt.Sprintf("%.1f%%", row.eval.WinRate),
			fmt.Sprintf("%d", row.eval.Bets),
			fmt.Sprintf("%d-%d", row.eval.Wins, row.eval.Losses),
		)
	}
	table.Render()

	w := r.Best
	weights := tablewriter.NewWriter(out)
	weights.Header("Coefficient", "Value")
	for _, kv := range []struct {
		name  string
		value float64
	}{
		{"efficiency", w.Efficiency}, {"margin", w.Margin}, {"recent_form", w.RecentForm},
		{"rest", w.Rest}, {"injury_scalar", w.InjuryScalar}, {"home_court", w.HomeCourt},
		{"pace", w.Pace}, {"ppg", w.PPG}, {"def", w.Def}, {"fatigue", w.Fatigue},
	} {
		weights.Append(kv.name, fmt.Sprintf("%.3f", kv.value))
	}
	weights.Render()
}

// WriteStandings prints tournament results in rank order
func WriteStandings(out io.Writer, standings []Standing) {
	table := tablewriter.NewWriter(out)
	table.Header("#", "Strategy", "Score", "Win rate", "ROI", "Bets", "W-L")
	for _, s := range standings {
		table.Append(
			fmt.Sprintf("%d", s.Rank),
			s.Name,
			fmt.Sprintf("%.2f", s.Evaluation.Score),
			fmt.Sprintf("%.1f%%", s.Evaluation.WinRate),
			fmt.Sprintf("%.1f%%", s.Evaluation.ROI),
			fmt.Sprintf("%d", s.Evaluation.Bets),
			fmt.Sprintf("%d-%d", s.Evaluation.Wins, s.Evaluation.Losses),
		)
	}
	table.Render()
}
