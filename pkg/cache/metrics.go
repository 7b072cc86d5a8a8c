package cache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/Sternrassler/statecache/pkg/metrics"
)

var factory = promauto.With(metrics.Registry)

var (
	// OperationsTotal counts every store operation attempted.
	OperationsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "statecache_operations_total",
			Help: "Total number of cache operations by operation",
		},
		[]string{"operation"},
	)

	// Hits counts reads that found a value.
	Hits = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "statecache_hits_total",
			Help: "Total number of cache reads that found a value",
		},
		[]string{"operation"}, // "get", "hget", "ttl"
	)

	// Misses counts reads for absent keys or fields.
	Misses = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "statecache_misses_total",
			Help: "Total number of cache reads for absent keys or fields",
		},
		[]string{"operation"},
	)

	// Failures counts operations that failed, by kind.
	Failures = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "statecache_failures_total",
			Help: "Total number of failed cache operations",
		},
		[]string{"operation", "kind"}, // kind: "transport", "encoding", "invalid"
	)

	// OperationDuration observes store round-trip time.
	OperationDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "statecache_operation_duration_seconds",
			Help:    "Cache operation duration in seconds",
			Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.5, 1},
		},
		[]string{"operation"},
	)
)
