package optimizer

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/yourusername/godbot/internal/backtest"
	"github.com/yourusername/godbot/internal/models"
	"github.com/yourusername/godbot/internal/prediction"
)

// Fitness names accepted on the command line
const (
	FitnessROI      = "roi"
	FitnessAccuracy = "accuracy"
)

// Evaluation is the outcome of scoring one candidate profile
type Evaluation struct {
	Score   float64 `json:"score"`
	ROI     float64 `json:"roi"`
	WinRate float64 `json:"win_rate"`
	Bets    int     `json:"bets"`
	Wins    int     `json:"wins"`
	Losses  int     `json:"losses"`
}

// Fitness scores a candidate profile. Higher is better.
type Fitness interface {
	Name() string
	Evaluate(ctx context.Context, w prediction.Weights) (Evaluation, error)
}

// ROIFitness scores by backtest ROI. Each evaluation draws fresh market
// noise from the shared generator.
type ROIFitness struct {
	engine *backtest.Engine
	cfg    backtest.Config
	rng    *rand.Rand
}

// NewROIFitness creates a backtest-driven fitness
func NewROIFitness(engine *backtest.Engine, cfg backtest.Config, rng *rand.Rand) (*ROIFitness, error) {
	if engine == nil {
		return nil, fmt.Errorf("backtest engine is required")
	}
	if rng == nil {
		return nil, fmt.Errorf("random source is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &ROIFitness{engine: engine, cfg: cfg, rng: rng}, nil
}

func (f *ROIFitness) Name() string { return FitnessROI }

func (f *ROIFitness) Evaluate(ctx context.Context, w prediction.Weights) (Evaluation, error) {
	result, err := f.engine.Run(ctx, w, f.cfg, f.rng)
	if err != nil {
		return Evaluation{}, err
	}
	return Evaluation{
		Score:   result.ROI,
		ROI:     result.ROI,
		WinRate: result.WinRate,
		Bets:    result.BetsPlaced,
		Wins:    result.Wins,
		Losses:  result.Losses,
	}, nil
}

// AccuracyFitness scores by walk-forward prediction accuracy on real games.
// It is deterministic for a fixed season.
type AccuracyFitness struct {
	games []models.Game
	mode  models.PickType
}

// NewAccuracyFitness creates a walk-forward fitness over a season
func NewAccuracyFitness(games []models.Game, mode models.PickType) (*AccuracyFitness, error) {
	if len(games) == 0 {
		return nil, fmt.Errorf("accuracy fitness needs season history: %w", models.ErrUpstreamUnavailable)
	}
	return &AccuracyFitness{games: games, mode: mode}, nil
}

func (f *AccuracyFitness) Name() string { return FitnessAccuracy }

func (f *AccuracyFitness) Evaluate(_ context.Context, w prediction.Weights) (Evaluation, error) {
	result := backtest.WalkForward(f.games, w, f.mode)
	return Evaluation{
		Score:   result.Score,
		WinRate: result.WinRate,
		Bets:    result.Wins + result.Losses,
		Wins:    result.Wins,
		Losses:  result.Losses,
	}, nil
}
