package store

import (
	"context"
	"errors"
	"time"

	"github.com/castilhos/url-shortener/internal/shortener"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// opTimeout caps every cache round-trip so a hung Redis degrades the
// request to a store read instead of stalling it.
const opTimeout = 500 * time.Millisecond

// RedisLookupCache is a Redis implementation of shortener.Cache holding
// short_code -> long_url entries. Records never change once created, so
// entries cannot go stale; the TTL only bounds Redis memory.
type RedisLookupCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisLookupCache creates a new Redis-backed lookup cache.
func NewRedisLookupCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisLookupCache {
	return &RedisLookupCache{
		client: client,
		prefix: "url:",
		ttl:    ttl,
		logger: logger,
	}
}

// Lookup fetches the long URL cached for code. Connectivity faults come
// back as LookupError so the caller can fall through to the repository.
func (r *RedisLookupCache) Lookup(ctx context.Context, code string) shortener.Lookup {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	value, err := r.client.Get(ctx, r.prefix+code).Result()

	switch {
	case err == nil:
		return shortener.Hit(value)
	case errors.Is(err, redis.Nil):
		return shortener.Miss()
	}

	return shortener.Fault(err)
}

// Store caches the code -> longURL mapping. Best-effort: a failed write
// is logged and otherwise ignored.
func (r *RedisLookupCache) Store(ctx context.Context, code, longURL string) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	if err := r.client.Set(ctx, r.prefix+code, longURL, r.ttl).Err(); err != nil {
		r.logger.Warn("failed to cache short code",
			zap.String("short_code", code),
			zap.Error(err),
		)
	}
}

// Compile-time check.
var _ shortener.Cache = (*RedisLookupCache)(nil)
