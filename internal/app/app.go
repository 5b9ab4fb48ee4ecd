// Package app provides application initialization and dependency injection.
package app

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/freight-rate-service/config"
	"github.com/guttosm/freight-rate-service/internal/http"
	"github.com/rs/zerolog/log"
)

// App is the wired application: the router plus everything that needs closing.
type App struct {
	Router   *gin.Engine
	database *DatabaseComponents
	services *ServiceComponents
	routing  *RouterComponents
}

// InitializeApp creates and wires all application dependencies.
func InitializeApp(cfg config.Config) (*App, error) {
	// Initialize logger first (needed by other components)
	InitializeLogger(cfg.Log)

	dbComponents := InitializeDatabase(cfg.Database)

	catalog, err := InitializeCatalog(dbComponents, cfg.Catalog)
	if err != nil {
		closeDatabase(dbComponents)
		return nil, err
	}

	serviceComponents := InitializeServices(cfg, catalog, dbComponents)
	routerComponents := InitializeRouter(serviceComponents, dbComponents, cfg)

	return &App{
		Router:   http.NewRouter(routerComponents.Handler, routerComponents.HealthHandler, routerComponents.Config),
		database: dbComponents,
		services: serviceComponents,
		routing:  routerComponents,
	}, nil
}

// Close flushes the history recorder, stops background workers and
// disconnects from MongoDB and Redis.
func (a *App) Close() {
	if a.routing != nil && a.routing.RateLimiter != nil {
		a.routing.RateLimiter.Stop()
	}
	if a.services != nil {
		a.services.Close()
	}
	closeDatabase(a.database)
}

func closeDatabase(db *DatabaseComponents) {
	if db == nil {
		return
	}
	if err := db.DB.Close(context.Background()); err != nil {
		log.Warn().Err(err).Msg("Failed to disconnect from MongoDB")
	}
}
