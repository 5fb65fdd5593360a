// Package metrics provides the centralized Prometheus registry for the pipeline.
package metrics

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "godbot"

// Global registry instance
var (
	registry *prometheus.Registry
	once     sync.Once
)

// Counter metrics
var (
	UpstreamFailuresTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "upstream_failures_total",
		Help:      "Failed or empty provider fetches by source",
	}, []string{"source"})
	ProviderCacheLookupsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "provider_cache_lookups_total",
		Help:      "Provider response cache lookups by kind and result",
	}, []string{"kind", "result"})
	JobRunsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "job_runs_total",
		Help:      "Scheduled job runs by job and status",
	}, []string{"job", "status"})
)

// Gauge metrics
var (
	TeamsRefreshed = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "team_stats_refreshed",
		Help:      "Number of team snapshots written by the last stats refresh",
	})
	PendingPicks = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "pending_picks",
		Help:      "Pending picks seen by the last settlement run",
	})
)

// Histogram metrics
var (
	JobDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "job_duration_seconds",
		Help:      "Duration of pipeline runs in seconds",
		Buckets:   []float64{0.5, 1, 5, 10, 30, 60, 300},
	}, []string{"job"})
)

// InitRegistry initializes the global Prometheus registry.
func InitRegistry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()

		registry.MustRegister(UpstreamFailuresTotal)
		registry.MustRegister(ProviderCacheLookupsTotal)
		registry.MustRegister(JobRunsTotal)

		registry.MustRegister(TeamsRefreshed)
		registry.MustRegister(PendingPicks)

		registry.MustRegister(JobDuration)

		// pick metrics
		registry.MustRegister(PicksSavedTotal)
		registry.MustRegister(PicksSettledTotal)
		registry.MustRegister(PickEdge)
		registry.MustRegister(TradesLoggedTotal)
		registry.MustRegister(TradesSettledTotal)

		// backtest metrics
		registry.MustRegister(BacktestRunsTotal)
		registry.MustRegister(BacktestROI)
		registry.MustRegister(OptimizerBestROI)
	})
	return registry
}

// GetRegistry returns the global Prometheus registry.
func GetRegistry() *prometheus.Registry {
	return InitRegistry()
}

// Handler returns the Prometheus HTTP handler.
func Handler() http.Handler {
	return promhttp.HandlerFor(GetRegistry(), promhttp.HandlerOpts{})
}

// RecordUpstreamFailure records a failed provider fetch.
func RecordUpstreamFailure(source string) {
	UpstreamFailuresTotal.WithLabelValues(source).Inc()
}

// RecordCacheLookup records a provider cache hit or miss.
func RecordCacheLookup(kind string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	ProviderCacheLookupsTotal.WithLabelValues(kind, result).Inc()
}

// RecordJobRun records a finished run and its duration.
func RecordJobRun(job string, started time.Time, err error) {
	status := "success"
	if err != nil {
		status = "failure"
	}
	JobRunsTotal.WithLabelValues(job, status).Inc()
	JobDuration.WithLabelValues(job).Observe(time.Since(started).Seconds())
}

// UpdateTeamsRefreshed sets the team snapshot gauge.
func UpdateTeamsRefreshed(n int) {
	TeamsRefreshed.Set(float64(n))
}

// UpdatePendingPicks sets the pending pick gauge.
func UpdatePendingPicks(n int) {
	PendingPicks.Set(float64(n))
}
