// internal/catalog/cache.go
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"dealer-benchmark/internal/benchmark/record"
	"dealer-benchmark/internal/common/logger"
	"dealer-benchmark/internal/common/metrics"
)

const cacheKeyPrefix = "catalog:vehicle:"

// CachedSource is a read-through cache in front of another Source. Cache
// failures never fail a lookup; the request falls through to the backing
// source and the miss is logged.
type CachedSource struct {
	next   Source
	cache  *redis.Client
	ttl    time.Duration
	logger logger.Logger
}

// NewCachedSource wraps a Source with a Redis read-through cache.
func NewCachedSource(next Source, cache *redis.Client, ttl time.Duration, log logger.Logger) *CachedSource {
	return &CachedSource{
		next:   next,
		cache:  cache,
		ttl:    ttl,
		logger: log.WithFields(map[string]interface{}{"component": "catalog-cache"}),
	}
}

// Get returns the cached vehicle when present, otherwise reads through to
// the backing source and stores the result.
func (s *CachedSource) Get(ctx context.Context, id string) (record.Vehicle, error) {
	key := cacheKeyPrefix + id

	cached, err := s.cache.Get(ctx, key).Result()
	if err == nil {
		var v record.Vehicle
		if jsonErr := json.Unmarshal([]byte(cached), &v); jsonErr == nil {
			metrics.CatalogCacheHits.Inc()
			return v, nil
		}
		// Corrupt entry, treat as a miss and overwrite below.
		s.logger.Warn("Dropping corrupt cache entry", map[string]interface{}{"key": key})
	} else if err != redis.Nil {
		s.logger.WithError(err).Warn("Cache read failed, falling through", nil)
	}

	metrics.CatalogCacheMisses.Inc()

	v, err := s.next.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if payload, jsonErr := json.Marshal(v); jsonErr == nil {
		if setErr := s.cache.Set(ctx, key, payload, s.ttl).Err(); setErr != nil {
			s.logger.WithError(setErr).Warn("Cache write failed", nil)
		}
	}
	return v, nil
}

// List always goes to the backing source; listings are filter-shaped and
// not worth keying.
func (s *CachedSource) List(ctx context.Context, filter Filter) ([]record.Vehicle, error) {
	return s.next.List(ctx, filter)
}

// Invalidate removes a vehicle from the cache, for catalog refreshes.
func (s *CachedSource) Invalidate(ctx context.Context, id string) error {
	if err := s.cache.Del(ctx, cacheKeyPrefix+id).Err(); err != nil {
		return fmt.Errorf("invalidate vehicle %s: %w", id, err)
	}
	return nil
}
