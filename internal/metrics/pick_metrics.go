package metrics

import "github.com/prometheus/client_golang/prometheus"

// Pick lifecycle metrics
var (
	PicksSavedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "picks_saved_total",
		Help:      "Picks written by the scanner by profile and action",
	}, []string{"profile", "action"})
	PicksSettledTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "picks_settled_total",
		Help:      "Picks graded by profile and result",
	}, []string{"profile", "result"})
	PickEdge = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "pick_edge",
		Help:      "Recorded edge of saved picks",
		Buckets:   []float64{2, 4, 6, 8, 10, 15, 20, 30},
	}, []string{"profile"})
)

// RecordPickSaved records a created or updated pick.
func RecordPickSaved(profile string, created bool, edge float64) {
	action := "updated"
	if created {
		action = "created"
	}
	PicksSavedTotal.WithLabelValues(profile, action).Inc()
	PickEdge.WithLabelValues(profile).Observe(edge)
}

// RecordPickSettled records a graded pick.
func RecordPickSettled(profile, result string) {
	PicksSettledTotal.WithLabelValues(profile, result).Inc()
}

// Paper-trade ledger metrics
var (
	TradesLoggedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "trades_logged_total",
		Help:      "New paper trades recorded from value signals",
	})
	TradesSettledTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "trades_settled_total",
		Help:      "Paper trades closed by result",
	}, []string{"result"})
)

// RecordTradeLogged records a new paper trade.
func RecordTradeLogged() {
	TradesLoggedTotal.Inc()
}

// RecordTradeSettled records a closed paper trade.
func RecordTradeSettled(result string) {
	TradesSettledTotal.WithLabelValues(result).Inc()
}
