// Package metrics provides Prometheus metrics for the game server.
// HTTP metrics:
//   - http_request_total: Counter with method, path, and status labels
//   - http_request_duration_seconds: Histogram with method and path labels
//   - http_request_in_flight: Gauge for concurrent requests
//
// Game metrics:
//   - game_transitions_total: Counter with outcome label
//   - game_completions_total: Counter with quality label (perfect/partial)
//   - game_sessions_active: Gauge of live sessions
//   - game_sessions_swept_total: Counter of idle sessions removed
//
// Rate limiter metrics:
//   - rate_limit_rejections_total: Counter of requests answered with 429
//   - rate_limiter_buckets_total: Gauge of per-client buckets held
//
// All metrics are registered with the Prometheus default registry during
// package initialization.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	HTTPRequestTotals = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_request_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"method", "path"},
	)

	HTTPRequestInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_request_in_flight",
			Help: "Current in-flight requests",
		},
	)

	Transitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "game_transitions_total",
			Help: "Game transitions by outcome",
		},
		[]string{"outcome"},
	)

	Completions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "game_completions_total",
			Help: "Boards filled, by quality",
		},
		[]string{"quality"},
	)

	SessionsActive = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "game_sessions_active",
			Help: "Live sessions in the store",
		},
	)

	SessionsSwept = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "game_sessions_swept_total",
			Help: "Idle sessions removed by the sweeper",
		},
	)

	RateLimitRejections = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "rate_limit_rejections_total",
			Help: "Requests rejected by the rate limiter",
		},
	)

	RateLimiterBucketsTotal = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "rate_limiter_buckets_total",
			Help: "Per-client token buckets held by the rate limiter",
		},
	)
)

func init() {
	prometheus.MustRegister(HTTPRequestTotals)
	prometheus.MustRegister(HTTPRequestDuration)
	prometheus.MustRegister(HTTPRequestInFlight)
	prometheus.MustRegister(Transitions)
	prometheus.MustRegister(Completions)
	prometheus.MustRegister(RateLimitRejections)
	prometheus.MustRegister(RateLimiterBucketsTotal)
	prometheus.MustRegister(SessionsActive)
	prometheus.MustRegister(SessionsSwept)
}
