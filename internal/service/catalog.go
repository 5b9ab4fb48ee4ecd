package service

import (
	"context"
	"time"

	"github.com/guttosm/freight-rate-service/internal/domain/model"
	"github.com/guttosm/freight-rate-service/internal/rating"
	"github.com/guttosm/freight-rate-service/internal/repository"
	"github.com/guttosm/freight-rate-service/internal/service/cache"
)

const (
	productKeyPrefix = "product:"
	zoneKeyPrefix    = "zones:"
	productsKey      = "products"
	remoteKey        = "remote"
	fuelKey          = "fuel"
)

// CachedCatalog serves provider data from a sharded TTL cache in front of a
// CatalogReader. Errors are never cached.
type CachedCatalog struct {
	source repository.CatalogReader
	cache  *cache.ShardedCache[interface{}]
}

// NewCachedCatalog wraps source with a cache of the given capacity and TTL.
func NewCachedCatalog(source repository.CatalogReader, capacity int, ttl time.Duration) *CachedCatalog {
	return &CachedCatalog{
		source: source,
		cache:  cache.NewShardedCache[interface{}]("catalog", capacity, ttl, 4),
	}
}

// GetProduct returns the rate card for id.
func (c *CachedCatalog) GetProduct(ctx context.Context, id string) (*model.RateCard, error) {
	return cached(c, productKeyPrefix+id, func() (*model.RateCard, error) {
		return c.source.GetProduct(ctx, id)
	})
}

// ListProducts returns the active rate cards.
func (c *CachedCatalog) ListProducts(ctx context.Context) ([]*model.RateCard, error) {
	return cached(c, productsKey, func() ([]*model.RateCard, error) {
		return c.source.ListProducts(ctx)
	})
}

// GetZoneTable returns the postal zone table for origin.
func (c *CachedCatalog) GetZoneTable(ctx context.Context, origin string) (*model.PostalZoneTable, error) {
	return cached(c, zoneKeyPrefix+rating.NormalizePostalCode(origin), func() (*model.PostalZoneTable, error) {
		return c.source.GetZoneTable(ctx, origin)
	})
}

// GetRemoteTable returns the remote area table.
func (c *CachedCatalog) GetRemoteTable(ctx context.Context) (*model.RemoteAreaTable, error) {
	return cached(c, remoteKey, func() (*model.RemoteAreaTable, error) {
		return c.source.GetRemoteTable(ctx)
	})
}

// GetFuelSchedule returns the fuel rate entries.
func (c *CachedCatalog) GetFuelSchedule(ctx context.Context) (model.FuelSchedule, error) {
	return cached(c, fuelKey, func() (model.FuelSchedule, error) {
		return c.source.GetFuelSchedule(ctx)
	})
}

// Purge drops all cached provider data.
func (c *CachedCatalog) Purge() {
	c.cache.Clear()
}

// Metrics returns the cache counters.
func (c *CachedCatalog) Metrics() cache.Metrics {
	return c.cache.Metrics()
}

// Stop releases the cache cleanup goroutines.
func (c *CachedCatalog) Stop() {
	c.cache.Stop()
}

func cached[T any](c *CachedCatalog, key string, load func() (T, error)) (T, error) {
	if v, ok := c.cache.Get(key); ok {
		if typed, ok := v.(T); ok {
			return typed, nil
		}
	}
	v, err := load()
	if err != nil {
		return v, err
	}
	c.cache.Set(key, v)
	return v, nil
}

var _ repository.CatalogReader = (*CachedCatalog)(nil)
