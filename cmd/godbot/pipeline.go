package main

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/godbot/internal/scanner"
	"github.com/yourusername/godbot/internal/service"
	"github.com/yourusername/godbot/internal/settlement"
)

func newScanCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "scan",
		Short: "Evaluate upcoming matchups and upsert picks",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.scan(cmd.Context())
		},
	}
}

func newSettleCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "settle",
		Short: "Grade pending picks against final scores",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.settle(cmd.Context())
		},
	}
}

func newUpdateStatsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "update-stats",
		Short: "Rebuild the team stats cache from the season history",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.updateStats(cmd.Context())
		},
	}
}

func newCleanupCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "cleanup",
		Short: "Remove duplicate pending picks",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.cleanup(cmd.Context())
		},
	}
}

func newStatsCmd(a *app) *cobra.Command {
	var window time.Duration

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print graded performance per profile",
		RunE: func(cmd *cobra.Command, _ []string) error {
			st, err := a.openStores(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer a.closeLogged(st)

			summaries, err := service.NewProfileStats(st.repos.Picks).Summarize(cmd.Context(), time.Now().UTC(), window)
			if err != nil {
				return err
			}
			service.WriteProfileSummaries(cmd.OutOrStdout(), summaries)
			return nil
		},
	}
	cmd.Flags().DurationVar(&window, "window", service.DefaultStatsWindow, "look-back window by match date")
	return cmd
}

func (a *app) scan(ctx context.Context) error {
	st, err := a.openStores(ctx, false)
	if err != nil {
		return err
	}
	defer a.closeLogged(st)

	src := st.sources
	result, err := scanner.New(src.Games, src.Odds, src.Injuries, st.repos.Picks, scanner.ConfigFrom(a.cfg), a.log).Run(ctx)
	if err != nil {
		return err
	}
	a.log.WithFields(logrus.Fields{
		"events":    result.Events,
		"evaluated": result.Evaluated,
		"skipped":   result.Skipped,
		"created":   result.Created,
		"updated":   result.Updated,
	}).Info("Scan finished")
	return nil
}

func (a *app) settle(ctx context.Context) error {
	st, err := a.openStores(ctx, false)
	if err != nil {
		return err
	}
	defer a.closeLogged(st)

	result, err := settlement.New(st.sources.Games, st.repos.Picks, a.cfg.Settlement.LookaheadDays, a.log).Run(ctx)
	if err != nil {
		return err
	}
	a.log.WithFields(logrus.Fields{
		"pending":    result.Pending,
		"graded":     result.Graded,
		"wins":       result.Wins,
		"losses":     result.Losses,
		"pushes":     result.Pushes,
		"unresolved": result.Unresolved,
	}).Info("Settlement finished")
	return nil
}

func (a *app) updateStats(ctx context.Context) error {
	st, err := a.openStores(ctx, true)
	if err != nil {
		return err
	}
	defer a.closeLogged(st)

	refresher := service.NewStatsRefresher(st.sources.Games, st.stats, a.cfg.Providers.APISports.Season, a.log)
	m, err := refresher.Refresh(ctx)
	if m != nil {
		a.log.Info(m.String())
	}
	return err
}

func (a *app) cleanup(ctx context.Context) error {
	st, err := a.openStores(ctx, false)
	if err != nil {
		return err
	}
	defer a.closeLogged(st)

	removed, err := service.NewDuplicateCleaner(st.repos.Picks, a.log).Clean(ctx)
	if err != nil {
		return err
	}
	a.log.WithField("removed", removed).Info("Cleanup finished")
	return nil
}
