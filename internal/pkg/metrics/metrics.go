// Package metrics exposes the Prometheus collectors of the points checker.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "points_checker"

// Fetch outcome labels.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

var (
	// FetchTotal counts resolved addresses by outcome.
	FetchTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "fetch_total",
		Help:      "Number of points lookups by outcome.",
	}, []string{"status"})

	// FetchDuration observes the latency of single points lookups.
	FetchDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "fetch_duration_seconds",
		Help:      "Latency of points lookups against the remote API.",
		Buckets:   prometheus.DefBuckets,
	})

	// BatchesTotal counts finished batches by terminal status.
	BatchesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "batches_total",
		Help:      "Number of batches by terminal status.",
	}, []string{"status"})

	// BatchSize observes how many addresses a submission carried.
	BatchSize = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "batch_addresses",
		Help:      "Number of addresses per submitted batch.",
		Buckets:   []float64{0, 1, 2, 5, 10, 25, 50, 100},
	})

	// ActiveSessions reports the number of live visitor sessions.
	ActiveSessions = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "active_sessions",
		Help:      "Number of sessions held in memory.",
	})
)

var registerOnce sync.Once

// MustRegisterMetrics registers every collector with the default registry.
// Safe to call more than once.
func MustRegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(FetchTotal, FetchDuration, BatchesTotal, BatchSize, ActiveSessions)
	})
}
