// Package app provides router configuration.
package app

import (
	"github.com/guttosm/freight-rate-service/config"
	"github.com/guttosm/freight-rate-service/internal/http"
	"github.com/guttosm/freight-rate-service/internal/middleware"
)

// RouterComponents holds router-related components.
type RouterComponents struct {
	Handler       *http.Handler
	HealthHandler *http.HealthHandler
	RateLimiter   *middleware.RateLimiter
	Config        http.RouterConfig
}

// InitializeRouter initializes HTTP handlers, readiness probes and router configuration.
func InitializeRouter(services *ServiceComponents, db *DatabaseComponents, cfg config.Config) *RouterComponents {
	handler := http.NewHandler(services.Quotes)
	healthHandler := http.NewHealthHandler()

	if db != nil {
		healthHandler.RegisterChecker("mongodb", http.HealthCheckFunc(db.DB.HealthCheck))
		healthHandler.RegisterCircuitBreaker(db.CatalogCircuitBreaker.Name(), db.CatalogCircuitBreaker)
		healthHandler.RegisterCircuitBreaker(db.QuotesCircuitBreaker.Name(), db.QuotesCircuitBreaker)
	}
	if services.Redis != nil {
		healthHandler.RegisterChecker("redis", http.HealthCheckFunc(services.Redis.Ping))
	}

	var limiter *middleware.RateLimiter
	if cfg.Server.RateLimit > 0 {
		limiter = middleware.NewRateLimiter(cfg.Server.RateLimit, cfg.Server.RateWindow)
	}

	return &RouterComponents{
		Handler:       handler,
		HealthHandler: healthHandler,
		RateLimiter:   limiter,
		Config: http.RouterConfig{
			RateLimit:      cfg.Server.RateLimit,
			RateWindow:     cfg.Server.RateWindow,
			RequestTimeout: cfg.Server.RequestTimeout,
			CORSOrigins:    cfg.Server.CORSOrigins,
			SwaggerUser:    cfg.Server.SwaggerUser,
			SwaggerPass:    cfg.Server.SwaggerPass,
			RateLimiter:    limiter,
		},
	}
}
