//go:build !integration

package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/freight-rate-service/internal/logger"
)

func TestRequestLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name      string
		path      string
		status    int
		wantLevel string
	}{
		{"success logs at info", "/api/products", http.StatusOK, "info"},
		{"client error logs at warn", "/api/products", http.StatusNotFound, "warn"},
		{"server error logs at error", "/api/products", http.StatusInternalServerError, "error"},
		{"skipped path is silent", "/healthz", http.StatusOK, ""},
		{"skipped path logs failures", "/readyz", http.StatusServiceUnavailable, "error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger.InitWithWriter("debug", false, &buf)
			defer logger.Init("info", false)

			router := gin.New()
			router.Use(RequestID(), RequestLogger(DefaultRequestLoggerConfig()))
			router.GET(tt.path, func(c *gin.Context) {
				c.Status(tt.status)
			})

			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			req.Header.Set(RequestIDHeader, "req-42")
			router.ServeHTTP(httptest.NewRecorder(), req)

			if tt.wantLevel == "" {
				assert.Empty(t, buf.String())
				return
			}

			var entry map[string]interface{}
			require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
			assert.Equal(t, tt.wantLevel, entry["level"])
			assert.Equal(t, "req-42", entry["request_id"])
			assert.Equal(t, tt.path, entry["path"])
			assert.Equal(t, float64(tt.status), entry["status_code"])
			assert.Equal(t, "HTTP request", entry["message"])
		})
	}
}
