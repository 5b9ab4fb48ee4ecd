// Package app provides service initialization.
package app

import (
	"context"
	"time"

	"github.com/guttosm/freight-rate-service/config"
	"github.com/guttosm/freight-rate-service/internal/logger"
	"github.com/guttosm/freight-rate-service/internal/rating"
	"github.com/guttosm/freight-rate-service/internal/repository"
	"github.com/guttosm/freight-rate-service/internal/service"
	"github.com/guttosm/freight-rate-service/internal/service/cache"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// ServiceComponents holds service-related components.
type ServiceComponents struct {
	Catalog    *service.CachedCatalog
	QuoteStore cache.QuoteStore
	Redis      *cache.RedisQuoteStore
	Recorder   *service.QuoteRecorder
	Quotes     *service.RateQuoteService
}

// InitializeServices builds the rating engine, caches, history recorder and quote service.
func InitializeServices(cfg config.Config, catalog repository.CatalogReader, db *DatabaseComponents) *ServiceComponents {
	components := &ServiceComponents{
		Catalog: service.NewCachedCatalog(catalog, cfg.Cache.Size, cfg.Cache.TTL),
	}

	components.QuoteStore = initializeQuoteStore(cfg, components)

	var quotesRepo repository.QuotesRepositoryInterface
	if db != nil && cfg.History.Enabled {
		quotesRepo = db.Quotes
		components.Recorder = service.NewQuoteRecorder(quotesRepo, service.QuoteRecorderConfig{
			BufferSize: cfg.History.BufferSize,
			NumWorkers: cfg.History.Workers,
		})
	}

	engineOpts := []rating.Option{rating.WithLogger(logger.Component("rating"))}
	if cfg.Rating.DefaultDimDivisor > 0 {
		engineOpts = append(engineOpts, rating.WithDefaultDivisor(decimal.NewFromInt(int64(cfg.Rating.DefaultDimDivisor))))
	}

	opts := []service.QuoteServiceOption{
		service.WithDefaultResidential(cfg.Rating.DefaultResidential),
	}
	if components.QuoteStore != nil {
		opts = append(opts, service.WithQuoteStore(components.QuoteStore))
	}
	if quotesRepo != nil {
		opts = append(opts, service.WithHistory(components.Recorder, quotesRepo))
	}

	components.Quotes = service.NewQuoteService(components.Catalog, rating.NewEngine(engineOpts...), opts...)
	return components
}

// initializeQuoteStore returns the Redis store when enabled and reachable,
// else an in-process store. A non-positive quote TTL disables quote caching.
func initializeQuoteStore(cfg config.Config, components *ServiceComponents) cache.QuoteStore {
	if cfg.Cache.QuoteTTL <= 0 {
		return nil
	}

	if cfg.Redis.Enabled {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		store, err := cache.NewRedisQuoteStore(ctx, cache.RedisOptions{
			Addr:      cfg.Redis.Addr,
			Password:  cfg.Redis.Password,
			DB:        cfg.Redis.DB,
			KeyPrefix: cfg.Redis.KeyPrefix,
			TTL:       cfg.Cache.QuoteTTL,
		})
		if err == nil {
			log.Info().Str("addr", cfg.Redis.Addr).Msg("Using Redis quote cache")
			components.Redis = store
			return store
		}
		log.Error().Err(err).Msg("Failed to connect to Redis - falling back to in-memory quote cache")
	}

	return cache.NewMemoryQuoteStore(cfg.Cache.Size, cfg.Cache.QuoteTTL)
}

// Close stops background workers and releases the Redis connection.
// Pending history records are flushed first.
func (s *ServiceComponents) Close() {
	if s.Recorder != nil {
		s.Recorder.Stop()
	}
	if s.Catalog != nil {
		s.Catalog.Stop()
	}
	if m, ok := s.QuoteStore.(*cache.MemoryQuoteStore); ok {
		m.Stop()
	}
	if s.Redis != nil {
		if err := s.Redis.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close Redis client")
		}
	}
}
