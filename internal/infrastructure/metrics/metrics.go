package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests processed",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latencies in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	HTTPInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_inflight_requests",
			Help: "Number of HTTP requests currently being served",
		},
	)

	// CacheOperations counts page cache calls by operation and outcome (hit, miss, error, ok).
	CacheOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "page_cache_operations_total",
			Help: "Page cache operations partitioned by operation and result",
		},
		[]string{"op", "result"},
	)

	// CacheInvalidations counts keys and patterns dropped by the invalidator.
	CacheInvalidations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "page_cache_invalidations_total",
			Help: "Page cache invalidations partitioned by kind (key, pattern, clear)",
		},
		[]string{"kind"},
	)
)
