package backtest

import (
	"math"
	"math/rand"
	"sort"
)

// DefaultBootstrapIterations is used when a non-positive count is requested
const DefaultBootstrapIterations = 1000

// BootstrapResult summarizes the ROI distribution of resampled bet histories
type BootstrapResult struct {
	Iterations   int       `json:"iterations"`
	Bets         int       `json:"bets"`
	MeanROI      float64   `json:"mean_roi"`
	StdROI       float64   `json:"std_roi"`
	P5ROI        float64   `json:"p5_roi"`
	P95ROI       float64   `json:"p95_roi"`
	ProbPositive float64   `json:"prob_positive"`
	Distribution []float64 `json:"-"`
}

// Bootstrap resamples the per-bet PnL of a run with replacement and reports
// the spread of the resulting ROI. A run without bets yields a zero result.
func Bootstrap(result *Result, iterations int, rng *rand.Rand) BootstrapResult {
	if iterations <= 0 {
		iterations = DefaultBootstrapIterations
	}
	out := BootstrapResult{Iterations: iterations}
	if result == nil || len(result.History) == 0 || rng == nil {
		return out
	}

	n := len(result.History)
	out.Bets = n
	distribution := make([]float64, iterations)
	for i := 0; i < iterations; i++ {
		sum := 0.0
		for j := 0; j < n; j++ {
			sum += result.History[rng.Intn(n)].PnL
		}
		distribution[i] = sum / float64(n) * 100
	}

	out.MeanROI, out.StdROI = meanStd(distribution)
	out.P5ROI = percentile(distribution, 0.05)
	out.P95ROI = percentile(distribution, 0.95)
	out.ProbPositive = probabilityAbove(distribution, 0)
	out.Distribution = distribution
	return out
}

func meanStd(values []float64) (float64, float64) {
	if len(values) == 0 {
		return 0, 0
	}
	mean := 0.0
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))
	variance := 0.0
	for _, v := range values {
		diff := v - mean
		variance += diff * diff
	}
	variance /= float64(len(values))
	return mean, math.Sqrt(variance)
}

func percentile(values []float64, p float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := append([]float64{}, values...)
	sort.Float64s(sorted)
	idx := int(math.Floor(p * float64(len(sorted)-1)))
	if idx < 0 {
		idx = 0
	}
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}

func probabilityAbove(values []float64, threshold float64) float64 {
	if len(values) == 0 {
		return 0
	}
	count := 0
	for _, v := range values {
		if v > threshold {
			count++
		}
	}
	return float64(count) / float64(len(values))
}
