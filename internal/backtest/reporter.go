package backtest

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
)

// WriteReport prints a run summary followed by its bet history
func WriteReport(out io.Writer, result *Result) {
	fmt.Fprintf(out, "\nBacktest %s %s: %d days ending %s\n",
		result.Profile, result.Mode, result.Days, result.Start.Format(dateLayout))
	fmt.Fprintf(out, "Games: %d | Bets: %d | Record: %d-%d-%d | Win rate: %.1f%% | ROI: %.1f%% | Units: %+.2f\n\n",
		result.TotalGames, result.BetsPlaced, result.Wins, result.Losses, result.Pushes,
		result.WinRate, result.ROI, result.Profit)

	if len(result.History) == 0 {
		fmt.Fprintln(out, "No bets placed.")
		return
	}

	table := tablewriter.NewWriter(out)
	table.Header("Date", "Matchup", "Side", "Pick", "Result", "PnL", "Edge")
	for _, bet := range result.History {
		table.Append(
			bet.Date.Format(dateLayout),
			bet.Matchup,
			string(bet.Side),
			bet.Pick,
			string(bet.Result),
			fmt.Sprintf("%+.2f", bet.PnL),
			fmt.Sprintf("%.1f", bet.Edge),
		)
	}
	table.Render()
}

// WriteBootstrap prints the resampled ROI distribution
func WriteBootstrap(out io.Writer, b BootstrapResult) {
	table := tablewriter.NewWriter(out)
	table.Header("Iterations", "Bets", "Mean ROI", "Std", "P5 ROI", "P95 ROI", "P(ROI>0)")
	table.Append(
		fmt.Sprintf("%d", b.Iterations),
		fmt.Sprintf("%d", b.Bets),
		fmt.Sprintf("%.1f%%", b.MeanROI),
		fmt.Sprintf("%.1f", b.StdROI),
		fmt.Sprintf("%.1f%%", b.P5ROI),
		fmt.Sprintf("%.1f%%", b.P95ROI),
		fmt.Sprintf("%.0f%%", b.ProbPositive*100),
	)
	table.Render()
}

// WriteRestStudy prints the RMSE comparison
func WriteRestStudy(out io.Writer, r RestStudyResult) {
	table := tablewriter.NewWriter(out)
	table.Header("Model", "RMSE")
	table.Append("Base", fmt.Sprintf("%.4f", r.BaseRMSE))
	table.Append("Rest-aware", fmt.Sprintf("%.4f", r.RestRMSE))
	table.Render()

	fmt.Fprintf(out, "N=%d games\n", r.N)
	if r.RestAwareBetter() {
		fmt.Fprintf(out, "Rest-aware model is more accurate (improvement %.2f%%)\n", r.ImprovementPct)
	} else {
		fmt.Fprintln(out, "Rest-aware model is not more accurate")
	}
}
