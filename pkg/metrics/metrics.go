// Package metrics documents the Prometheus metrics exported by statecache.
// The metrics themselves are declared next to the code that records them
// (pkg/cache) and registered with Registry through promauto.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry is the registerer statecache metrics are added to.
var Registry = prometheus.DefaultRegisterer

// Gatherer is the gatherer paired with Registry.
var Gatherer = prometheus.DefaultGatherer

// Handler serves the metrics in Registry in the Prometheus text format,
// for services that embed the facade and expose their own HTTP listener.
func Handler() http.Handler {
	return promhttp.HandlerFor(Gatherer, promhttp.HandlerOpts{})
}

// Metrics Documentation
//
// Cache metrics (pkg/cache):
//   - statecache_operations_total{operation} (Counter): operations attempted
//   - statecache_hits_total{operation} (Counter): reads that found a value (get, hget, ttl)
//   - statecache_misses_total{operation} (Counter): reads for absent keys or fields
//   - statecache_failures_total{operation,kind} (Counter): failures by kind (transport, encoding, invalid)
//   - statecache_operation_duration_seconds{operation} (Histogram): store round-trip time
//
// Operation label values: get, set, delete, exists, expire, ttl, increment,
// hget, hset, hgetall, publish, ping.
//
// Example Prometheus Queries:
//
//   # Read hit rate
//   sum(rate(statecache_hits_total{operation="get"}[5m])) /
//   (sum(rate(statecache_hits_total{operation="get"}[5m])) + sum(rate(statecache_misses_total{operation="get"}[5m])))
//
//   # Degraded store: transport failures absorbed by the facade
//   sum(rate(statecache_failures_total{kind="transport"}[5m])) > 0
//
//   # Corrupt or foreign values
//   increase(statecache_failures_total{kind="encoding"}[1h])
//
//   # P99 latency per operation
//   histogram_quantile(0.99, sum by (le, operation) (rate(statecache_operation_duration_seconds_bucket[5m])))
