package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint", "status"},
	)
	CacheHitsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "redis_cache_hits_total",
			Help: "Total number of Redis cache hits",
		},
		[]string{"entry"},
	)
	CacheMissesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "redis_cache_misses_total",
			Help: "Total number of Redis cache misses, including misses caused by cache errors",
		},
		[]string{"entry"},
	)
	RedisOperationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "redis_operation_duration_seconds",
			Help:    "Redis operation duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)
	RedisErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "redis_errors_total",
			Help: "Total number of failed Redis operations",
		},
		[]string{"operation"},
	)
	RedisBreakerState = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "redis_circuit_breaker_state",
			Help: "Redis circuit breaker state (0 closed, 1 half-open, 2 open)",
		},
	)
	MySQLOperationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mysql_operation_duration_seconds",
			Help:    "MySQL operation duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "table"},
	)
	MySQLErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mysql_errors_total",
			Help: "Total number of failed MySQL operations",
		},
		[]string{"operation", "table"},
	)
	BookingsCreatedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "bookings_created_total",
			Help: "Total number of orders accepted into WAIT_ACCEPT",
		},
	)
	BookingConflictsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "booking_conflicts_total",
			Help: "Total number of order requests rejected for overlapping dates",
		},
	)
	OrderTransitionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "order_transitions_total",
			Help: "Total number of applied order state transitions",
		},
		[]string{"action", "to"},
	)
)

var registerOnce sync.Once

// Init registers every collector with the default registry. Safe to call more than once.
func Init() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			HTTPRequestsTotal,
			HTTPRequestDuration,
			CacheHitsTotal,
			CacheMissesTotal,
			RedisOperationDuration,
			RedisErrorsTotal,
			RedisBreakerState,
			MySQLOperationDuration,
			MySQLErrorsTotal,
			BookingsCreatedTotal,
			BookingConflictsTotal,
			OrderTransitionsTotal,
		)
	})
}
