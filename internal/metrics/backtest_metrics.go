package metrics

import "github.com/prometheus/client_golang/prometheus"

// Backtest and optimizer metrics
var (
	BacktestRunsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "backtest_runs_total",
		Help:      "Total number of backtest runs by mode",
	}, []string{"mode"})
	BacktestROI = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "backtest_roi_percent",
		Help:      "ROI of the most recent backtest by profile and mode",
	}, []string{"profile", "mode"})
	OptimizerBestROI = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "optimizer_best_roi_percent",
		Help:      "Best ROI found by the most recent optimizer run",
	}, []string{"profile"})
)

// RecordBacktestRun records a finished simulation.
func RecordBacktestRun(profile, mode string, roi float64) {
	BacktestRunsTotal.WithLabelValues(mode).Inc()
	BacktestROI.WithLabelValues(profile, mode).Set(roi)
}

// UpdateOptimizerBestROI sets the best ROI found for a profile.
func UpdateOptimizerBestROI(profile string, roi float64) {
	OptimizerBestROI.WithLabelValues(profile).Set(roi)
}
