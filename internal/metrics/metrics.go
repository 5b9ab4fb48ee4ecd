// Package metrics provides Prometheus metrics collection for the freight rate service.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Calculation modes.
const (
	ModeSingleZone = "single_zone"
	ModeAllZones   = "all_zones"
)

var (
	// HTTPRequestDuration tracks HTTP request duration by method, path, and status code.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status_code"},
	)

	// HTTPRequestTotal tracks total HTTP requests by method, path, and status code.
	HTTPRequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status_code"},
	)

	// RateCalculationsTotal tracks rate calculations by mode and outcome.
	RateCalculationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rate_calculations_total",
			Help: "Total number of rate calculations",
		},
		[]string{"mode", "status"},
	)

	// RateCalculationDuration tracks rate calculation duration by mode.
	RateCalculationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "rate_calculation_duration_seconds",
			Help:    "Rate calculation duration in seconds",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
		},
		[]string{"mode"},
	)

	// UnauthorizedPackagesTotal tracks packages rejected by carrier limits, by reason.
	UnauthorizedPackagesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "unauthorized_packages_total",
			Help: "Total number of packages priced with the unauthorized fee",
		},
		[]string{"reason"},
	)

	// CacheOperationsTotal tracks cache operations.
	CacheOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_operations_total",
			Help: "Total number of cache operations",
		},
		[]string{"cache", "operation", "result"},
	)

	// CacheSize tracks current cache size.
	CacheSize = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cache_size",
			Help: "Current cache size",
		},
		[]string{"cache"},
	)

	// CacheCapacity tracks cache capacity.
	CacheCapacity = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cache_capacity",
			Help: "Cache capacity",
		},
		[]string{"cache"},
	)

	// CircuitBreakerState tracks breaker state: 0 closed, 1 open, 2 half-open.
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0 closed, 1 open, 2 half-open)",
		},
		[]string{"name"},
	)

	// QuoteHistoryTotal tracks quote history writes by result.
	QuoteHistoryTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quote_history_total",
			Help: "Total number of quote history records by result",
		},
		[]string{"result"},
	)
)

// PrometheusMiddleware returns a Gin middleware that collects HTTP metrics.
func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		c.Next()

		duration := time.Since(start).Seconds()
		statusCode := strconv.Itoa(c.Writer.Status())
		method := c.Request.Method

		HTTPRequestDuration.WithLabelValues(method, path, statusCode).Observe(duration)
		HTTPRequestTotal.WithLabelValues(method, path, statusCode).Inc()
	}
}

// RecordRateCalculation records metrics for a rate calculation.
func RecordRateCalculation(mode string, duration time.Duration, status string) {
	RateCalculationDuration.WithLabelValues(mode).Observe(duration.Seconds())
	RateCalculationsTotal.WithLabelValues(mode, status).Inc()
}

// RecordUnauthorized records a package priced with the unauthorized fee.
func RecordUnauthorized(reason string) {
	UnauthorizedPackagesTotal.WithLabelValues(reason).Inc()
}

// RecordCacheOperation records metrics for a cache operation.
func RecordCacheOperation(cache, operation, result string) {
	CacheOperationsTotal.WithLabelValues(cache, operation, result).Inc()
}

// UpdateCacheMetrics updates cache size and capacity metrics.
func UpdateCacheMetrics(cache string, size, capacity int) {
	CacheSize.WithLabelValues(cache).Set(float64(size))
	CacheCapacity.WithLabelValues(cache).Set(float64(capacity))
}

// SetCircuitBreakerState publishes a breaker state as a gauge value.
func SetCircuitBreakerState(name string, state int) {
	CircuitBreakerState.WithLabelValues(name).Set(float64(state))
}

// RecordQuoteHistory records the outcome of a quote history write.
func RecordQuoteHistory(result string) {
	QuoteHistoryTotal.WithLabelValues(result).Inc()
}
