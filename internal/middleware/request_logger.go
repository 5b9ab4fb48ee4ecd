package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/freight-rate-service/internal/logger"
)

// RequestLoggerConfig holds configuration for the request logger.
type RequestLoggerConfig struct {
	// SkipPaths are not logged when the response is successful.
	SkipPaths []string
}

// DefaultRequestLoggerConfig skips the probe and scrape endpoints.
func DefaultRequestLoggerConfig() RequestLoggerConfig {
	return RequestLoggerConfig{SkipPaths: []string{"/healthz", "/readyz", "/metrics"}}
}

// RequestLogger returns a middleware that logs HTTP request details in JSON format:
// request ID, method, route, status code, latency, IP and user agent.
func RequestLogger(cfg RequestLoggerConfig) gin.HandlerFunc {
	skip := make(map[string]struct{}, len(cfg.SkipPaths))
	for _, p := range cfg.SkipPaths {
		skip[p] = struct{}{}
	}

	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		statusCode := c.Writer.Status()
		path := c.Request.URL.Path
		if _, ok := skip[path]; ok && statusCode < 400 {
			return
		}

		log := logger.Logger().With().
			Str("request_id", GetRequestID(c)).
			Str("method", c.Request.Method).
			Str("path", path).
			Str("route", c.FullPath()).
			Int("status_code", statusCode).
			Int64("duration_ms", time.Since(start).Milliseconds()).
			Int("bytes", c.Writer.Size()).
			Str("ip", c.ClientIP()).
			Str("user_agent", c.Request.UserAgent()).
			Logger()

		switch {
		case statusCode >= 500:
			log.Error().Msg("HTTP request")
		case statusCode >= 400:
			log.Warn().Msg("HTTP request")
		default:
			log.Info().Msg("HTTP request")
		}
	}
}
