// Package metrics holds the process-wide Prometheus collectors
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	// CatalogLoadsTotal counts catalog loads by outcome (ok, empty, fetch_error, bad_columns)
	CatalogLoadsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "batchtrace",
		Subsystem: "catalog",
		Name:      "loads_total",
		Help:      "Catalog loads labeled by outcome.",
	}, []string{"outcome"})

	// CatalogEntries is the entry count of the most recent load
	CatalogEntries = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "batchtrace",
		Subsystem: "catalog",
		Name:      "entries",
		Help:      "Batch entries in the most recently loaded catalog.",
	})

	CatalogLoadSeconds = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "batchtrace",
		Subsystem: "catalog",
		Name:      "load_duration_seconds",
		Help:      "Time to fetch, parse and map the catalog feed.",
		Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 20},
	})

	// VerificationsTotal counts submissions by match status
	VerificationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "batchtrace",
		Subsystem: "verify",
		Name:      "submissions_total",
		Help:      "Verification submissions labeled by status.",
	}, []string{"status"})

	// ActiveSessions is the number of open verification sessions
	ActiveSessions = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "batchtrace",
		Subsystem: "verify",
		Name:      "active_sessions",
		Help:      "Open verification sessions.",
	})

	// StoreOpsTotal counts submission store operations by op and outcome
	StoreOpsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "batchtrace",
		Subsystem: "store",
		Name:      "ops_total",
		Help:      "Submission store operations labeled by op and outcome.",
	}, []string{"op", "outcome"})
)

// Register registers every collector with the default registry. Safe to call
// more than once
func Register() {
	once.Do(func() {
		prometheus.MustRegister(
			CatalogLoadsTotal,
			CatalogEntries,
			CatalogLoadSeconds,
			VerificationsTotal,
			ActiveSessions,
			StoreOpsTotal,
		)
	})
}

// Outcome renders err as "ok" or "error"
func Outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
