package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestPrometheusMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(PrometheusMiddleware())
	router.GET("/test", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	router.GET("/error", func(c *gin.Context) {
		c.String(http.StatusInternalServerError, "error")
	})

	tests := []struct {
		name           string
		path           string
		expectedStatus int
	}{
		{
			name:           "records metrics for successful request",
			path:           "/test",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "records metrics for error request",
			path:           "/error",
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestRecordRateCalculation(t *testing.T) {
	before := testutil.ToFloat64(RateCalculationsTotal.WithLabelValues(ModeAllZones, "success"))

	RecordRateCalculation(ModeAllZones, 2*time.Millisecond, "success")
	RecordRateCalculation(ModeSingleZone, time.Millisecond, "error")

	assert.Equal(t, before+1, testutil.ToFloat64(RateCalculationsTotal.WithLabelValues(ModeAllZones, "success")))
}

func TestRecordUnauthorized(t *testing.T) {
	before := testutil.ToFloat64(UnauthorizedPackagesTotal.WithLabelValues("actual weight exceeds 150 lb"))
	RecordUnauthorized("actual weight exceeds 150 lb")
	assert.Equal(t, before+1, testutil.ToFloat64(UnauthorizedPackagesTotal.WithLabelValues("actual weight exceeds 150 lb")))
}

func TestRecordCacheOperation(t *testing.T) {
	tests := []struct {
		cache     string
		operation string
		result    string
	}{
		{"catalog", "get", "hit"},
		{"catalog", "get", "miss"},
		{"quotes", "set", "success"},
	}

	for _, tt := range tests {
		t.Run(tt.cache+"_"+tt.operation+"_"+tt.result, func(t *testing.T) {
			counter := CacheOperationsTotal.WithLabelValues(tt.cache, tt.operation, tt.result)
			before := testutil.ToFloat64(counter)
			RecordCacheOperation(tt.cache, tt.operation, tt.result)
			assert.Equal(t, before+1, testutil.ToFloat64(counter))
		})
	}
}

func TestUpdateCacheMetrics(t *testing.T) {
	UpdateCacheMetrics("catalog", 50, 100)
	UpdateCacheMetrics("catalog", 75, 100)

	assert.Equal(t, 75.0, testutil.ToFloat64(CacheSize.WithLabelValues("catalog")))
	assert.Equal(t, 100.0, testutil.ToFloat64(CacheCapacity.WithLabelValues("catalog")))
}

func TestSetCircuitBreakerState(t *testing.T) {
	SetCircuitBreakerState("mongodb-catalog", 2)
	assert.Equal(t, 2.0, testutil.ToFloat64(CircuitBreakerState.WithLabelValues("mongodb-catalog")))
}

func TestRecordQuoteHistory(t *testing.T) {
	before := testutil.ToFloat64(QuoteHistoryTotal.WithLabelValues("dropped"))
	RecordQuoteHistory("dropped")
	assert.Equal(t, before+1, testutil.ToFloat64(QuoteHistoryTotal.WithLabelValues("dropped")))
}
