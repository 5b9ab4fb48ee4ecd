// Package cache provides the in-process and shared caches used by the service layer.
package cache

import "context"

// Cache defines the interface for cache operations.
type Cache[V any] interface {
	Get(key string) (V, bool)
	Set(key string, value V)
	Invalidate(key string)
	Clear()
	Stop()
}

// Metrics provides cache performance metrics.
type Metrics struct {
	Hits      int64
	Misses    int64
	Evictions int64
	Size      int
	Capacity  int
}

// CacheWithMetrics extends Cache with metrics reporting.
type CacheWithMetrics[V any] interface {
	Cache[V]
	Metrics() Metrics
}

// QuoteStore keeps encoded quote responses.
// Store errors are logged by the implementation and reported as misses.
type QuoteStore interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte)
	Clear(ctx context.Context) error
	Name() string
}

var (
	_ CacheWithMetrics[int] = (*ShardedCache[int])(nil)
	_ QuoteStore            = (*MemoryQuoteStore)(nil)
	_ QuoteStore            = (*RedisQuoteStore)(nil)
)
