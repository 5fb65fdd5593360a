package main

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/godbot/internal/health"
	"github.com/yourusername/godbot/internal/metrics"
	"github.com/yourusername/godbot/internal/repository"
	"github.com/yourusername/godbot/internal/scheduler"
)

func newScheduleCmd(a *app) *cobra.Command {
	var runAtStart bool

	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Run scan, settle and stats refresh on their cron schedules",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.schedule(cmd.Context(), runAtStart)
		},
	}
	cmd.Flags().BoolVar(&runAtStart, "run-now", false, "run every job once before waiting for the schedule")
	return cmd
}

func (a *app) schedule(ctx context.Context, runAtStart bool) error {
	cfg := a.cfg.Scheduler
	sched := scheduler.NewScheduler(cfg, a.log)

	jobs := []struct {
		name string
		spec string
		run  scheduler.JobFunc
	}{
		{scheduler.JobScan, cfg.ScanCron, a.scan},
		{scheduler.JobSettle, cfg.SettleCron, a.settle},
		{scheduler.JobStats, cfg.StatsCron, a.updateStats},
	}
	for _, j := range jobs {
		if err := sched.AddJob(j.name, j.spec, j.run); err != nil {
			return err
		}
	}

	// The daemon keeps one store handle open for readiness probes only;
	// jobs open their own per run.
	probe, err := repository.Open(ctx, a.cfg)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer func() {
		if err := probe.Close(); err != nil {
			a.log.WithError(err).Error("Failed to close store")
		}
	}()

	srv := health.NewServer(health.Config{
		ServiceName: a.cfg.App.Name,
		Version:     version,
		Port:        a.cfg.Health.Port,
		Logger:      a.log,
		Store:       probe.Store,
		NextRun:     sched.GetNextRun,
	})
	if a.cfg.Metrics.Enabled {
		a.mountMetrics(ctx, srv)
	}
	if err := srv.Start(ctx); err != nil {
		return err
	}

	if runAtStart {
		for _, name := range sched.Jobs() {
			// failures are already logged and counted by the scheduler
			_ = sched.RunNow(ctx, name)
		}
	}

	if err := sched.Start(); err != nil {
		return err
	}
	srv.SetReady(true)
	a.log.WithFields(logrus.Fields{
		"jobs":     sched.Jobs(),
		"next_run": sched.GetNextRun().Format(time.RFC3339),
	}).Info("Scheduler running")

	<-ctx.Done()
	a.log.Info("Shutdown signal received")
	srv.SetReady(false)

	if err := sched.Stop(); err != nil {
		a.log.WithError(err).Warn("Jobs still running at shutdown")
	}
	return srv.Shutdown()
}

// mountMetrics serves /metrics on the health mux, or on its own listener
// when metrics.port differs from health.port
func (a *app) mountMetrics(ctx context.Context, srv *health.Server) {
	path := a.cfg.Metrics.Path
	if path == "" {
		path = "/metrics"
	}

	port := a.cfg.Metrics.Port
	if port == 0 || port == a.cfg.Health.Port {
		srv.Handle(path, metrics.Handler())
		return
	}

	metricsSrv := health.NewServer(health.Config{
		ServiceName: a.cfg.App.Name + "-metrics",
		Version:     version,
		Port:        port,
		Logger:      a.log,
	})
	metricsSrv.Handle(path, metrics.Handler())
	metricsSrv.SetReady(true)
	if err := metricsSrv.Start(ctx); err != nil {
		a.log.WithError(err).Error("Failed to start metrics server")
	}
}
