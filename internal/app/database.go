// Package app provides database initialization and setup.
package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/guttosm/freight-rate-service/config"
	"github.com/guttosm/freight-rate-service/internal/circuitbreaker"
	"github.com/guttosm/freight-rate-service/internal/metrics"
	"github.com/guttosm/freight-rate-service/internal/repository"
	"github.com/rs/zerolog/log"
)

// ErrNoCatalog is returned when neither MongoDB nor a catalog file is configured.
var ErrNoCatalog = errors.New("no provider catalog: enable MONGODB_ENABLED or set CATALOG_FILE")

// DatabaseComponents holds database-related components.
type DatabaseComponents struct {
	DB                    *repository.MongoDB
	Catalog               repository.CatalogReader
	Quotes                repository.QuotesRepositoryInterface
	CatalogCircuitBreaker *circuitbreaker.CircuitBreaker
	QuotesCircuitBreaker  *circuitbreaker.CircuitBreaker
}

// InitializeDatabase connects to MongoDB and wraps the catalog and quote
// repositories in circuit breakers.
// Returns nil if the database is disabled or the connection fails.
func InitializeDatabase(cfg config.DatabaseConfig) *DatabaseComponents {
	if !cfg.Enabled {
		return nil
	}

	db, err := repository.NewMongoDB(cfg.URI, cfg.DatabaseName)
	if err != nil {
		log.Error().Err(err).Msg("Failed to connect to MongoDB - continuing without database")
		return nil
	}

	log.Info().Str("database", cfg.DatabaseName).Msg("Connected to MongoDB")

	if cfg.QuotesTTL > 0 {
		if err := db.SetQuotesTTL(context.Background(), cfg.QuotesTTL); err != nil {
			log.Warn().Err(err).Msg("Failed to set quotes TTL index")
		}
	}

	catalogCB := newStoreBreaker("mongodb_catalog", cfg)
	quotesCB := newStoreBreaker("mongodb_quotes", cfg)

	return &DatabaseComponents{
		DB:                    db,
		Catalog:               repository.NewCatalogRepositoryWithCircuitBreaker(repository.NewCatalogRepository(db), catalogCB),
		Quotes:                repository.NewQuotesRepositoryWithCircuitBreaker(repository.NewQuotesRepository(db), quotesCB),
		CatalogCircuitBreaker: catalogCB,
		QuotesCircuitBreaker:  quotesCB,
	}
}

// InitializeCatalog picks the provider data source: MongoDB when connected,
// else the JSON catalog file.
func InitializeCatalog(db *DatabaseComponents, cfg config.CatalogConfig) (repository.CatalogReader, error) {
	if db != nil {
		return db.Catalog, nil
	}
	if cfg.File == "" {
		return nil, ErrNoCatalog
	}

	catalog, err := repository.LoadFileCatalog(cfg.File)
	if err != nil {
		return nil, fmt.Errorf("load catalog file: %w", err)
	}
	log.Info().Str("file", cfg.File).Strs("origins", catalog.Origins()).Msg("Loaded provider catalog from file")
	return catalog, nil
}

// newStoreBreaker builds a breaker that ignores not-found results and reports
// its state to Prometheus.
func newStoreBreaker(name string, cfg config.DatabaseConfig) *circuitbreaker.CircuitBreaker {
	metrics.SetCircuitBreakerState(name, int(circuitbreaker.StateClosed))
	return circuitbreaker.New(circuitbreaker.Config{
		FailureThreshold: cfg.CircuitBreakerFailureThreshold,
		SuccessThreshold: cfg.CircuitBreakerSuccessThreshold,
		Timeout:          cfg.CircuitBreakerTimeout,
		Name:             name,
		IsFailure:        repository.IsStoreFailure,
		OnStateChange: func(name string, from, to circuitbreaker.State) {
			metrics.SetCircuitBreakerState(name, int(to))
			log.Warn().
				Str("circuit", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("Circuit breaker state changed")
		},
	})
}
