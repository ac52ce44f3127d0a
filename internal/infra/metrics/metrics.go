// Package metrics exposes the Prometheus instruments of the ordering and recommendation paths.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP Metrics
	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tastebud_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	// Order Metrics
	OrdersCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tastebud_orders_created_total",
			Help: "Total number of committed orders",
		},
		[]string{"source"}, // "manual", "auto"
	)

	OrdersRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tastebud_orders_rejected_total",
			Help: "Total number of rejected order requests by error code",
		},
		[]string{"code"},
	)

	OrdersCancelled = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tastebud_orders_cancelled_total",
			Help: "Total number of cancelled orders",
		},
	)

	// Preference Metrics
	PreferenceUpserts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tastebud_preference_upserts_total",
			Help: "Total number of preference score upserts by dimension",
		},
		[]string{"dimension"},
	)

	// Recommender Metrics
	RecommenderRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tastebud_recommender_request_duration_seconds",
			Help:    "Duration of recommender calls in seconds",
			Buckets: []float64{0.25, 0.5, 1, 2, 4, 8, 16, 32},
		},
		[]string{"outcome"}, // "ok", "malformed", "unavailable"
	)

	RecommenderBreakerState = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "tastebud_recommender_breaker_state",
			Help: "Recommender circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
	)

	// Database Metrics
	DBPoolConnections = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "tastebud_db_pool_connections",
			Help: "Database pool connections by state",
		},
		[]string{"state"}, // "in_use", "idle"
	)

	DBPoolWaitSeconds = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tastebud_db_pool_wait_seconds_total",
			Help: "Total time spent waiting for a pooled database connection",
		},
	)

	RecommendationItemsDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tastebud_recommendation_items_dropped_total",
			Help: "Total number of proposed items dropped during validation",
		},
	)
)

// RecordAPIRequest records the duration of one HTTP request.
func RecordAPIRequest(method, route string, status int, duration time.Duration) {
	APIRequestDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(duration.Seconds())
}

// RecordRecommenderCall records the duration and outcome of one recommender call.
func RecordRecommenderCall(outcome string, duration time.Duration) {
	RecommenderRequestDuration.WithLabelValues(outcome).Observe(duration.Seconds())
}

// RecordDBPool publishes one pool sample. waitDelta is the wait time since the previous sample.
func RecordDBPool(inUse, idle int, waitDelta time.Duration) {
	DBPoolConnections.WithLabelValues("in_use").Set(float64(inUse))
	DBPoolConnections.WithLabelValues("idle").Set(float64(idle))
	if waitDelta > 0 {
		DBPoolWaitSeconds.Add(waitDelta.Seconds())
	}
}
