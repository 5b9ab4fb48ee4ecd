package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/freight-rate-service/internal/circuitbreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openBreaker(t *testing.T, name string) *circuitbreaker.CircuitBreaker {
	t.Helper()
	cb := circuitbreaker.New(circuitbreaker.Config{
		FailureThreshold: 1,
		SuccessThreshold: 1,
		Timeout:          time.Hour,
		Name:             name,
	})
	_ = cb.Execute(context.Background(), func() error { return errors.New("down") })
	require.True(t, cb.IsOpen())
	return cb
}

func TestHealthHandler_Liveness(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewHealthHandler().Register(router)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestHealthHandler_Readiness(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		setupHandler   func(t *testing.T) *HealthHandler
		expectedStatus int
		validate       func(t *testing.T, body map[string]interface{})
	}{
		{
			name: "no checkers",
			setupHandler: func(*testing.T) *HealthHandler {
				return NewHealthHandler()
			},
			expectedStatus: http.StatusOK,
			validate: func(t *testing.T, body map[string]interface{}) {
				assert.Equal(t, "ok", body["status"])
				assert.Equal(t, map[string]interface{}{"service": "ok"}, body["checks"])
			},
		},
		{
			name: "healthy checkers and closed circuit",
			setupHandler: func(*testing.T) *HealthHandler {
				h := NewHealthHandler()
				h.RegisterChecker("mongodb", HealthCheckFunc(func(context.Context) error { return nil }))
				h.RegisterCircuitBreaker("catalog", circuitbreaker.New(circuitbreaker.DefaultConfig()))
				return h
			},
			expectedStatus: http.StatusOK,
			validate: func(t *testing.T, body map[string]interface{}) {
				checks := body["checks"].(map[string]interface{})
				assert.Equal(t, "ok", checks["mongodb"])
				assert.Equal(t, "closed", checks["catalog_circuit"])
				assert.Contains(t, body, "circuits")
			},
		},
		{
			name: "failing checker",
			setupHandler: func(*testing.T) *HealthHandler {
				h := NewHealthHandler()
				h.RegisterChecker("redis", HealthCheckFunc(func(context.Context) error {
					return errors.New("connection refused")
				}))
				return h
			},
			expectedStatus: http.StatusServiceUnavailable,
			validate: func(t *testing.T, body map[string]interface{}) {
				assert.Equal(t, "degraded", body["status"])
				checks := body["checks"].(map[string]interface{})
				assert.Equal(t, "connection refused", checks["redis"])
			},
		},
		{
			name: "open circuit",
			setupHandler: func(t *testing.T) *HealthHandler {
				h := NewHealthHandler()
				h.RegisterCircuitBreaker("quotes", openBreaker(t, "quotes"))
				return h
			},
			expectedStatus: http.StatusServiceUnavailable,
			validate: func(t *testing.T, body map[string]interface{}) {
				checks := body["checks"].(map[string]interface{})
				assert.Equal(t, "open", checks["quotes_circuit"])
			},
		},
		{
			name: "checker receives a deadline",
			setupHandler: func(*testing.T) *HealthHandler {
				h := NewHealthHandler()
				h.RegisterChecker("mongodb", HealthCheckFunc(func(ctx context.Context) error {
					if _, ok := ctx.Deadline(); !ok {
						return errors.New("no deadline")
					}
					return nil
				}))
				return h
			},
			expectedStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			tt.setupHandler(t).Register(router)

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.validate != nil {
				var body map[string]interface{}
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
				tt.validate(t, body)
			}
		})
	}
}
