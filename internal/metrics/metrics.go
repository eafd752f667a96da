// Package metrics holds the Prometheus collectors shared by the cache, the
// upstream client and the catalog aggregators.
package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	CacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dex_cache_lookups_total",
		Help: "Total number of cache lookups.",
	}, []string{"namespace", "status" /* hit | miss */})

	UpstreamRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dex_upstream_requests_total",
		Help: "Total number of upstream requests by classified outcome.",
	}, []string{"outcome"})

	UpstreamLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "dex_upstream_request_duration_seconds",
		Help:    "Upstream request latency.",
		Buckets: prometheus.DefBuckets,
	}, []string{"outcome"})

	DegradedResults = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dex_degraded_results_total",
		Help: "Total number of optional sub-fetches replaced by a fallback value.",
	}, []string{"component", "outcome"})
)

// RegisterCacheSize exports the number of stored cache entries as a gauge.
// Registering twice is not an error.
func RegisterCacheSize(size func() int) error {
	gauge := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "dex_cache_entries",
		Help: "Number of entries currently stored in the cache, including stale ones.",
	}, func() float64 { return float64(size()) })

	if err := prometheus.Register(gauge); err != nil {
		var already prometheus.AlreadyRegisteredError
		if errors.As(err, &already) {
			return nil
		}
		return err
	}
	return nil
}
