package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/guttosm/freight-rate-service/internal/logger"
	"github.com/guttosm/freight-rate-service/internal/metrics"
)

const scanBatch = 100

// RedisQuoteStore shares serialized quote responses between service instances.
// Redis errors are logged and reported as misses so a quote is always computed.
type RedisQuoteStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
	log    zerolog.Logger
}

// RedisOptions configures a RedisQuoteStore.
type RedisOptions struct {
	Addr      string
	Password  string
	DB        int
	KeyPrefix string
	TTL       time.Duration
}

// NewRedisQuoteStore connects to Redis and verifies the connection.
func NewRedisQuoteStore(ctx context.Context, opts RedisOptions) (*RedisQuoteStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return NewRedisQuoteStoreWithClient(client, opts.KeyPrefix, opts.TTL), nil
}

// NewRedisQuoteStoreWithClient wraps an existing client.
func NewRedisQuoteStoreWithClient(client *redis.Client, prefix string, ttl time.Duration) *RedisQuoteStore {
	return &RedisQuoteStore{
		client: client,
		prefix: prefix,
		ttl:    ttl,
		log:    logger.Component("redis_quote_store"),
	}
}

// Get returns the stored response for key.
func (r *RedisQuoteStore) Get(ctx context.Context, key string) ([]byte, bool) {
	value, err := r.client.Get(ctx, r.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		metrics.RecordCacheOperation(r.Name(), "get", "miss")
		return nil, false
	}
	if err != nil {
		r.log.Warn().Err(err).Str("key", key).Msg("quote cache read failed")
		metrics.RecordCacheOperation(r.Name(), "get", "error")
		return nil, false
	}
	metrics.RecordCacheOperation(r.Name(), "get", "hit")
	return value, true
}

// Set stores value under key with the configured TTL.
func (r *RedisQuoteStore) Set(ctx context.Context, key string, value []byte) {
	if err := r.client.Set(ctx, r.prefix+key, value, r.ttl).Err(); err != nil {
		r.log.Warn().Err(err).Str("key", key).Msg("quote cache write failed")
		metrics.RecordCacheOperation(r.Name(), "set", "error")
		return
	}
	metrics.RecordCacheOperation(r.Name(), "set", "success")
}

// Clear deletes every key under the store prefix.
func (r *RedisQuoteStore) Clear(ctx context.Context) error {
	var cursor uint64
	for {
		keys, next, err := r.client.Scan(ctx, cursor, r.prefix+"*", scanBatch).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := r.client.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}
	metrics.RecordCacheOperation(r.Name(), "clear", "success")
	return nil
}

// Name identifies the store in logs and health output.
func (r *RedisQuoteStore) Name() string {
	return "redis"
}

// Ping reports whether Redis is reachable.
func (r *RedisQuoteStore) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close closes the client.
func (r *RedisQuoteStore) Close() error {
	return r.client.Close()
}
