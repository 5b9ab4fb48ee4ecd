package cache

import (
	"context"
	"time"
)

// MemoryQuoteStore keeps serialized quote responses in a process-local sharded cache.
type MemoryQuoteStore struct {
	cache *ShardedCache[[]byte]
}

// NewMemoryQuoteStore creates an in-process quote store.
func NewMemoryQuoteStore(capacity int, ttl time.Duration) *MemoryQuoteStore {
	return &MemoryQuoteStore{cache: NewShardedCache[[]byte]("quote", capacity, ttl, 16)}
}

// Get returns the stored response for key.
func (m *MemoryQuoteStore) Get(_ context.Context, key string) ([]byte, bool) {
	return m.cache.Get(key)
}

// Set stores value under key.
func (m *MemoryQuoteStore) Set(_ context.Context, key string, value []byte) {
	m.cache.Set(key, value)
}

// Clear drops every stored response.
func (m *MemoryQuoteStore) Clear(context.Context) error {
	m.cache.Clear()
	return nil
}

// Name identifies the store in logs and health output.
func (m *MemoryQuoteStore) Name() string {
	return "memory"
}

// Metrics exposes the underlying cache counters.
func (m *MemoryQuoteStore) Metrics() Metrics {
	return m.cache.Metrics()
}

// Stop releases the cleanup goroutines.
func (m *MemoryQuoteStore) Stop() {
	m.cache.Stop()
}
