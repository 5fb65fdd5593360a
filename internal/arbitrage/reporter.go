package arbitrage

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"

	"github.com/yourusername/godbot/internal/models"
)

// WriteReports prints one row per evaluated home team
func WriteReports(out io.Writer, reports []Report) {
	if len(reports) == 0 {
		fmt.Fprintln(out, "No markets to compare.")
		return
	}

	table := tablewriter.NewWriter(out)
	table.Header("Matchup", "Team", "Vegas", "Market", "Gap", "ROI", "Signal", "Action", "Reason")
	for _, r := range reports {
		table.Append(
			models.MatchupLabel(r.Event.AwayTeam, r.Event.HomeTeam),
			r.Opportunity.Matchup,
			fmt.Sprintf("%.1f%%", r.Opportunity.MarketProb*100),
			fmt.Sprintf("%.2f", r.Opportunity.PolyPrice),
			fmt.Sprintf("%+.1f%%", r.Opportunity.EdgeRaw*100),
			fmt.Sprintf("%.2f%%", r.Opportunity.EdgePercent),
			string(r.Opportunity.Recommendation),
			string(r.Trade.Action),
			r.Trade.Reason,
		)
	}
	table.Render()
}

// WriteLedger prints the paper-trade summary and the open positions
func WriteLedger(out io.Writer, stats models.TradeStats, open []*models.Trade) {
	table := tablewriter.NewWriter(out)
	table.Header("Trades", "Open", "Won", "Lost", "Profit", "Win Rate")
	table.Append(
		fmt.Sprintf("%d", stats.Total),
		fmt.Sprintf("%d", stats.Open),
		fmt.Sprintf("%d", stats.Won),
		fmt.Sprintf("%d", stats.Lost),
		fmt.Sprintf("%+.2f", stats.Profit),
		fmt.Sprintf("%.1f%%", stats.WinRate),
	)
	table.Render()

	if len(open) == 0 {
		return
	}
	positions := tablewriter.NewWriter(out)
	positions.Header("Trade", "Team", "Entry", "Vegas", "Amount", "Opened")
	for _, t := range open {
		positions.Append(
			t.ID,
			t.Team,
			fmt.Sprintf("%.2f", t.EntryPrice),
			fmt.Sprintf("%.1f%%", t.VegasPrice*100),
			fmt.Sprintf("%.2f", t.Amount),
			t.CreatedAt.Format("2006-01-02 15:04"),
		)
	}
	positions.Render()
}
