package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/godbot/internal/cache"
	"github.com/yourusername/godbot/internal/config"
	"github.com/yourusername/godbot/internal/datasource"
	"github.com/yourusername/godbot/internal/logger"
	"github.com/yourusername/godbot/internal/metrics"
	"github.com/yourusername/godbot/internal/repository"
)

var version = "dev"

// app carries what every subcommand shares after flag parsing
type app struct {
	configPath string
	cfg        *config.Config
	log        *logrus.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "godbot",
		Short:         "NBA picks pipeline: scan, settle, backtest and optimize",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load(cmd.Context())
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "config/config.yaml", "path to the YAML configuration file")

	root.AddCommand(
		newScanCmd(a),
		newSettleCmd(a),
		newUpdateStatsCmd(a),
		newCleanupCmd(a),
		newStatsCmd(a),
		newBacktestCmd(a),
		newOptimizeCmd(a),
		newRestStudyCmd(a),
		newArbitrageCmd(a),
		newScheduleCmd(a),
	)
	return root
}

// load reads .env, the config file and optional AWS secrets, then builds
// the logger. A missing config file falls back to defaults.
func (a *app) load(ctx context.Context) error {
	config.LoadDotEnv()

	cfg, err := config.LoadWithDefaults(a.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if os.Getenv("AWS_SECRETS_ENABLED") == "true" {
		region := os.Getenv("AWS_REGION")
		secretName := os.Getenv("AWS_SECRET_NAME")
		if region == "" || secretName == "" {
			return fmt.Errorf("AWS_REGION and AWS_SECRET_NAME must be set when AWS_SECRETS_ENABLED is true")
		}
		if err := config.LoadSecretsFromAWS(ctx, cfg, region, secretName); err != nil {
			return fmt.Errorf("failed to load secrets: %w", err)
		}
	}

	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	a.cfg = cfg
	a.log = logger.NewLogger(cfg.App.LogLevel, cfg.App.Environment)
	metrics.InitRegistry()
	return nil
}

// stores is everything one run opens and must close
type stores struct {
	repos   *repository.Repositories
	stats   cache.TeamStatsCache
	sources *datasource.Sources
	closers []func() error
}

func (s *stores) Close() error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// openSources builds the provider clients only
func (a *app) openSources() *stores {
	src := datasource.NewFactory(a.cfg, a.log).NewSources()
	return &stores{sources: src, closers: []func() error{src.Close}}
}

// openStores opens the providers, the pick store and, when withCache is
// set, the team stats cache
func (a *app) openStores(ctx context.Context, withCache bool) (*stores, error) {
	st := a.openSources()

	repos, err := repository.Open(ctx, a.cfg)
	if err != nil {
		_ = st.Close()
		return nil, fmt.Errorf("failed to open store: %w", err)
	}
	st.repos = repos
	st.closers = append(st.closers, repos.Close)

	if withCache {
		statsCache, closeCache, err := cache.New(a.cfg.Cache, repos)
		if err != nil {
			_ = st.Close()
			return nil, fmt.Errorf("failed to open stats cache: %w", err)
		}
		st.stats = statsCache
		st.closers = append(st.closers, closeCache)
	}
	return st, nil
}

// closeLogged closes st and logs rather than returns the failure
func (a *app) closeLogged(st *stores) {
	if err := st.Close(); err != nil {
		a.log.WithError(err).Error("Failed to close stores")
	}
}
