// Package optimizer searches the weighting-profile space using a backtest
// or walk-forward fitness.
package optimizer

import (
	"context"
	"fmt"
	"math/rand"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/godbot/internal/logger"
	"github.com/yourusername/godbot/internal/metrics"
	"github.com/yourusername/godbot/internal/prediction"
)

// Search defaults
const (
	DefaultIterations  = 50
	DefaultVariability = 0.5

	scalarStep = 2.0
	weightStep = 0.2
)

// SearchResult is the best candidate found by a random search
type SearchResult struct {
	Profile      string             `json:"profile"`
	Fitness      string             `json:"fitness"`
	Iterations   int                `json:"iterations"`
	Improvements int                `json:"improvements"`
	Baseline     Evaluation         `json:"baseline"`
	Best         prediction.Weights `json:"best"`
	BestEval     Evaluation         `json:"best_eval"`
}

// Standing is one preset's place in a tournament
type Standing struct {
	Rank       int                `json:"rank"`
	Name       string             `json:"name"`
	Weights    prediction.Weights `json:"weights"`
	Evaluation Evaluation         `json:"evaluation"`
}

// Optimizer runs random search and tournaments against a fitness
type Optimizer struct {
	fitness     Fitness
	iterations  int
	variability float64
	rng         *rand.Rand
	logger      logrus.FieldLogger
}

// New creates an optimizer. Non-positive iterations or variability fall
// back to the defaults.
func New(fitness Fitness, iterations int, variability float64, rng *rand.Rand, log logrus.FieldLogger) (*Optimizer, error) {
	if fitness == nil {
		return nil, fmt.Errorf("fitness is required")
	}
	if rng == nil {
		return nil, fmt.Errorf("random source is required")
	}
	if iterations <= 0 {
		iterations = DefaultIterations
	}
	if variability <= 0 {
		variability = DefaultVariability
	}
	return &Optimizer{
		fitness:     fitness,
		iterations:  iterations,
		variability: variability,
		rng:         rng,
		logger:      logger.OrDiscard(log).WithField("component", "optimizer"),
	}, nil
}

// RandomSearch evaluates the base profile first and then jittered
// candidates around it, keeping the best seen. Candidates are always drawn
// around base, never around the current best.
func (o *Optimizer) RandomSearch(ctx context.Context, base prediction.Weights) (*SearchResult, error) {
	result := &SearchResult{
		Profile:    base.Name,
		Fitness:    o.fitness.Name(),
		Iterations: o.iterations,
	}

	for i := 0; i < o.iterations; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		candidate := base
		if i > 0 {
			candidate = Jitter(base, o.variability, o.rng)
		}
		eval, err := o.fitness.Evaluate(ctx, candidate)
		if err != nil {
			return nil, fmt.Errorf("evaluate candidate %d: %w", i, err)
		}

		if i == 0 {
			result.Baseline = eval
			result.Best = candidate
			result.BestEval = eval
			continue
		}
		if eval.Score > result.BestEval.Score {
			result.Improvements++
			result.Best = candidate
			result.BestEval = eval
			o.logger.WithFields(logrus.Fields{
				"profile":   base.Name,
				"iteration": i,
				"score":     eval.Score,
			}).Debug("New best candidate")
		}
	}

	if result.Fitness == FitnessROI {
		metrics.UpdateOptimizerBestROI(base.Name, result.BestEval.ROI)
	}

	o.logger.WithFields(logrus.Fields{
		"profile":      base.Name,
		"fitness":      result.Fitness,
		"iterations":   result.Iterations,
		"improvements": result.Improvements,
		"baseline":     result.Baseline.Score,
		"best":         result.BestEval.Score,
	}).Info("Random search completed")

	return result, nil
}

// Tournament evaluates every preset once and ranks them by score
func (o *Optimizer) Tournament(ctx context.Context, presets []Preset) ([]Standing, error) {
	standings := make([]Standing, 0, len(presets))
	for _, p := range presets {
		o.logger.WithField("preset", p.Name).Info("Running tournament simulation")
		eval, err := o.fitness.Evaluate(ctx, p.Weights)
		if err != nil {
			return nil, fmt.Errorf("evaluate preset %q: %w", p.Name, err)
		}
		standings = append(standings, Standing{Name: p.Name, Weights: p.Weights, Evaluation: eval})
	}

	sort.SliceStable(standings, func(i, j int) bool {
		return standings[i].Evaluation.Score > standings[j].Evaluation.Score
	})
	for i := range standings {
		standings[i].Rank = i + 1
	}
	return standings, nil
}

// Jitter returns a copy of base with every coefficient perturbed uniformly.
// Scalar constants move by up to 2·variability points; fractional weights
// move by up to 0.2·variability and never go negative.
func Jitter(base prediction.Weights, variability float64, rng *rand.Rand) prediction.Weights {
	w := base
	scalar := func(v float64) float64 {
		return v + (rng.Float64()*2-1)*variability*scalarStep
	}
	weight := func(v float64) float64 {
		v += (rng.Float64()*2 - 1) * variability * weightStep
		if v < 0 {
			return 0
		}
		return v
	}

	w.Efficiency = weight(w.Efficiency)
	w.Margin = weight(w.Margin)
	w.RecentForm = weight(w.RecentForm)
	w.Rest = scalar(w.Rest)
	w.InjuryScalar = scalar(w.InjuryScalar)
	w.HomeCourt = scalar(w.HomeCourt)
	w.Pace = weight(w.Pace)
	w.PPG = weight(w.PPG)
	w.Def = weight(w.Def)
	w.Fatigue = scalar(w.Fatigue)
	return w
}
