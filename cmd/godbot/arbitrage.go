package main

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/godbot/internal/arbitrage"
	"github.com/yourusername/godbot/internal/models"
)

func newArbitrageCmd(a *app) *cobra.Command {
	var record bool

	cmd := &cobra.Command{
		Use:   "arbitrage",
		Short: "Compare bookmaker moneylines with prediction-market prices",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var (
				st  *stores
				err error
			)
			if record {
				st, err = a.openStores(cmd.Context(), false)
				if err != nil {
					return err
				}
			} else {
				st = a.openSources()
			}
			defer a.closeLogged(st)

			runner := arbitrage.NewRunner(st.sources.Odds, st.sources.Markets, a.log)
			if record {
				runner.WithLedger(arbitrage.NewLedger(st.repos.Trades, st.sources.Resolutions, a.log))
			}

			odds := a.cfg.Providers.OddsAPI
			reports, err := runner.Run(cmd.Context(), odds.Sport, odds.Region)
			arbitrage.WriteReports(cmd.OutOrStdout(), reports)
			return err
		},
	}
	cmd.Flags().BoolVar(&record, "record", true, "log BUY_SIGNAL rows to the paper-trade ledger")
	cmd.AddCommand(newTradesCmd(a))
	return cmd
}

func newTradesCmd(a *app) *cobra.Command {
	var settle bool

	cmd := &cobra.Command{
		Use:   "trades",
		Short: "Settle resolved paper trades and print the ledger",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			st, err := a.openStores(ctx, false)
			if err != nil {
				return err
			}
			defer a.closeLogged(st)

			ledger := arbitrage.NewLedger(st.repos.Trades, st.sources.Resolutions, a.log)
			if settle {
				result, err := ledger.Settle(ctx)
				if err != nil {
					return err
				}
				a.log.WithFields(logrus.Fields{
					"won":        result.Won,
					"lost":       result.Lost,
					"unresolved": result.Unresolved,
				}).Info("Trades settled")
			}

			stats, err := ledger.Stats(ctx)
			if err != nil {
				return err
			}
			open, err := st.repos.Trades.FindAll(ctx, models.TradeStatusOpen)
			if err != nil {
				return err
			}
			arbitrage.WriteLedger(cmd.OutOrStdout(), stats, open)
			return nil
		},
	}
	cmd.Flags().BoolVar(&settle, "settle", true, "close trades whose market has resolved before printing")
	return cmd
}
