package http

import (
	"github.com/gin-gonic/gin"
)

// RouteGroup defines a group of routes that can be registered.
type RouteGroup interface {
	// RegisterRoutes registers routes to the given router group.
	RegisterRoutes(rg *gin.RouterGroup)
}

// RateRoutes registers the rating, catalog, history and cache routes.
type RateRoutes struct {
	handler *Handler
}

// NewRateRoutes creates a new RateRoutes instance.
func NewRateRoutes(handler *Handler) *RateRoutes {
	return &RateRoutes{handler: handler}
}

// RegisterRoutes registers the API routes under rg.
func (r *RateRoutes) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/calculate", r.handler.Calculate)
	rg.POST("/calculate/all-zones", r.handler.CalculateAllZones)
	rg.GET("/products", r.handler.ListProducts)
	rg.GET("/quotes", r.handler.ListQuotes)
	rg.POST("/cache/purge", r.handler.PurgeCache)
}

var _ RouteGroup = (*RateRoutes)(nil)
