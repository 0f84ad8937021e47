package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome label values for RecomputeFlightsTotal
const (
	OutcomeUpdated = "updated"
	OutcomeFailed  = "failed"
)

// MetricsRegistry holds all Prometheus metrics for the night time service
type MetricsRegistry struct {
	// HTTP Metrics
	HTTPRequestsTotal    prometheus.CounterVec
	HTTPRequestDuration  prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.GaugeVec

	// Cache Metrics
	CacheHitsTotal   prometheus.CounterVec
	CacheMissesTotal prometheus.CounterVec

	// Domain Metrics
	NightTimeComputationsTotal prometheus.Counter
	RecomputeFlightsTotal      prometheus.CounterVec
	RecomputeDuration          prometheus.HistogramVec
}

// NewMetricsRegistry registers all metrics with the default Prometheus registry
func NewMetricsRegistry() *MetricsRegistry {
	return NewMetricsRegistryWith(prometheus.DefaultRegisterer)
}

// NewMetricsRegistryWith registers all metrics with reg. Tests pass a fresh
// prometheus.NewRegistry() to avoid duplicate registration panics.
func NewMetricsRegistryWith(reg prometheus.Registerer) *MetricsRegistry {
	factory := promauto.With(reg)

	return &MetricsRegistry{
		// HTTP Metrics
		HTTPRequestsTotal: *factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "nightlog_http_requests_total",
				Help: "Total HTTP requests processed by endpoint, method, and status code",
			},
			[]string{"endpoint", "method", "status_code"},
		),
		HTTPRequestDuration: *factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "nightlog_http_request_duration_seconds",
				Help:    "HTTP request latency distribution in seconds",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"endpoint", "method"},
		),
		HTTPRequestsInFlight: *factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "nightlog_http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
			[]string{"endpoint"},
		),

		// Cache Metrics
		CacheHitsTotal: *factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "nightlog_cache_hits_total",
				Help: "Total cache hits by cache key pattern",
			},
			[]string{"cache_key_pattern"},
		),
		CacheMissesTotal: *factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "nightlog_cache_misses_total",
				Help: "Total cache misses by cache key pattern",
			},
			[]string{"cache_key_pattern"},
		),

		// Domain Metrics
		NightTimeComputationsTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "nightlog_night_time_computations_total",
				Help: "Total night time calculations performed",
			},
		),
		RecomputeFlightsTotal: *factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "nightlog_recompute_flights_total",
				Help: "Flights visited by batch recomputes by job and outcome",
			},
			[]string{"job_name", "outcome"},
		),
		RecomputeDuration: *factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "nightlog_recompute_duration_seconds",
				Help:    "Batch recompute execution time in seconds",
				Buckets: []float64{0.1, 0.5, 1, 5, 10, 30, 60, 120, 300, 600},
			},
			[]string{"job_name"},
		),
	}
}
