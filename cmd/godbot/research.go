package main

import (
	"context"
	"fmt"
	"math/rand"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yourusername/godbot/internal/backtest"
	"github.com/yourusername/godbot/internal/config"
	"github.com/yourusername/godbot/internal/models"
	"github.com/yourusername/godbot/internal/optimizer"
	"github.com/yourusername/godbot/internal/prediction"
)

const (
	strategyRandom     = "random"
	strategyTournament = "tournament"
)

func parseProfile(s string) (models.Profile, prediction.Weights, error) {
	profile := models.Profile(strings.ToUpper(strings.TrimSpace(s)))
	w, err := prediction.ForProfile(profile)
	return profile, w, err
}

// resolveMode uses the explicit mode when given, else the profile's market
func resolveMode(flag string, profile models.Profile) (models.PickType, error) {
	if flag == "" {
		return backtest.ModeForProfile(profile), nil
	}
	return backtest.ParseMode(flag)
}

func newBacktestCmd(a *app) *cobra.Command {
	var (
		profileFlag string
		modeFlag    string
		start       string
		days        int
		seed        int64
		bootstrap   int
	)

	cmd := &cobra.Command{
		Use:   "backtest",
		Short: "Replay past games against simulated market lines",
		RunE: func(cmd *cobra.Command, _ []string) error {
			profile, weights, err := parseProfile(profileFlag)
			if err != nil {
				return err
			}
			mode, err := resolveMode(modeFlag, profile)
			if err != nil {
				return err
			}

			btCfg := a.cfg.Backtest
			if days > 0 {
				btCfg.Days = days
			}
			if cmd.Flags().Changed("seed") {
				btCfg.Seeded = true
				btCfg.Seed = seed
			}
			window, err := backtest.FromConfig(&btCfg, start, mode)
			if err != nil {
				return err
			}

			st := a.openSources()
			defer a.closeLogged(st)

			engine, err := backtest.NewEngine(st.sources.Games, a.log)
			if err != nil {
				return err
			}
			rng := backtest.NewRand(btCfg)
			result, err := engine.Run(cmd.Context(), weights, window, rng)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			backtest.WriteReport(out, result)
			if bootstrap > 0 {
				backtest.WriteBootstrap(out, backtest.Bootstrap(result, bootstrap, rng))
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&profileFlag, "profile", string(models.ProfileZeus), "weights to replay: ZEUS, SHIVA or LOKI")
	f.StringVar(&modeFlag, "mode", "", "spread, total or moneyline (default: the profile's market)")
	f.StringVar(&start, "start", "", "most recent day to replay, YYYY-MM-DD (default: today)")
	f.IntVar(&days, "days", 0, "days to replay backwards from start (default: backtest.days)")
	f.Int64Var(&seed, "seed", 0, "fix the noise seed for a reproducible run")
	f.IntVar(&bootstrap, "bootstrap", 0, "bootstrap iterations over the bet history (0 disables)")
	return cmd
}

func newOptimizeCmd(a *app) *cobra.Command {
	var (
		strategy    string
		fitnessKind string
		profileFlag string
		iterations  int
		variability float64
	)

	cmd := &cobra.Command{
		Use:   "optimize",
		Short: "Search for better prediction weights",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			profile, base, err := parseProfile(profileFlag)
			if err != nil {
				return err
			}
			if iterations <= 0 {
				iterations = a.cfg.Optimizer.Iterations
			}
			if variability <= 0 {
				variability = a.cfg.Optimizer.Variability
			}

			st := a.openSources()
			defer a.closeLogged(st)

			rng := backtest.NewRand(a.cfg.Backtest)
			fitness, err := a.buildFitness(ctx, st, fitnessKind, backtest.ModeForProfile(profile), rng)
			if err != nil {
				return err
			}
			opt, err := optimizer.New(fitness, iterations, variability, rng, a.log)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch strategy {
			case strategyRandom:
				result, err := opt.RandomSearch(ctx, base)
				if err != nil {
					return err
				}
				optimizer.WriteSearch(out, result)
			case strategyTournament:
				standings, err := opt.Tournament(ctx, optimizer.Presets(base))
				if err != nil {
					return err
				}
				optimizer.WriteStandings(out, standings)
			default:
				return fmt.Errorf("unknown strategy %q: want %s or %s", strategy, strategyRandom, strategyTournament)
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&strategy, "strategy", strategyRandom, "random or tournament")
	f.StringVar(&fitnessKind, "fitness", optimizer.FitnessROI, "roi (simulated backtest) or accuracy (walk-forward)")
	f.StringVar(&profileFlag, "profile", string(models.ProfileZeus), "base weights: ZEUS, SHIVA or LOKI")
	f.IntVar(&iterations, "iterations", 0, "candidates to evaluate (default: optimizer.iterations)")
	f.Float64Var(&variability, "variability", 0, "jitter scale (default: optimizer.variability)")
	return cmd
}

func (a *app) buildFitness(ctx context.Context, st *stores, kind string, mode models.PickType, rng *rand.Rand) (optimizer.Fitness, error) {
	switch kind {
	case optimizer.FitnessROI:
		engine, err := backtest.NewEngine(st.sources.Games, a.log)
		if err != nil {
			return nil, err
		}
		window, err := backtest.FromConfig(&config.BacktestConfig{Days: a.cfg.Optimizer.WindowDays}, "", mode)
		if err != nil {
			return nil, err
		}
		return optimizer.NewROIFitness(engine, window, rng)
	case optimizer.FitnessAccuracy:
		games, err := st.sources.Games.GetGames(ctx, a.cfg.Providers.APISports.Season)
		if err != nil {
			return nil, fmt.Errorf("fetching season history: %w", err)
		}
		return optimizer.NewAccuracyFitness(games, mode)
	}
	return nil, fmt.Errorf("unknown fitness %q: want %s or %s", kind, optimizer.FitnessROI, optimizer.FitnessAccuracy)
}

func newRestStudyCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rest-study",
		Short: "Compare prediction RMSE with and without a back-to-back adjustment",
		RunE: func(cmd *cobra.Command, _ []string) error {
			st := a.openSources()
			defer a.closeLogged(st)

			season := a.cfg.Providers.APISports.Season
			games, err := st.sources.Games.GetGames(cmd.Context(), season)
			if err != nil {
				return fmt.Errorf("fetching season %s: %w", season, err)
			}
			if len(games) == 0 {
				return fmt.Errorf("season %s has no games: %w", season, models.ErrUpstreamUnavailable)
			}
			backtest.WriteRestStudy(cmd.OutOrStdout(), backtest.RestStudy(games, prediction.Zeus))
			return nil
		},
	}
}
