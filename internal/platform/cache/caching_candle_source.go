// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"portfolio_backend/internal/feature/market/domain/entity"
	"portfolio_backend/internal/feature/stats/usecase"
)

// CachingCandleSource decorates a CandleSource with Redis caching.
// It implements the decorator pattern, transparently adding caching without
// modifying the underlying source. Daily candles change rarely, so a short
// TTL keeps the upstream call volume low without serving stale series.
type CachingCandleSource struct {
	inner     usecase.CandleSource
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

// CachingCandleSourceがCandleSourceを実装していることをコンパイル時に検証します。
var _ usecase.CandleSource = (*CachingCandleSource)(nil)

// NewCachingCandleSource decorates a CandleSource with Redis caching.
// If ttl is 0, it defaults to 5 minutes. If namespace is empty, it uses "klines".
func NewCachingCandleSource(rdb *redis.Client, ttl time.Duration, inner usecase.CandleSource, namespace string) *CachingCandleSource {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if namespace == "" {
		namespace = "klines"
	}
	return &CachingCandleSource{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// Klines retrieves candles, checking cache first then falling back to the upstream source.
func (c *CachingCandleSource) Klines(ctx context.Context, symbol, interval string, limit int) ([]entity.PricePoint, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return c.inner.Klines(ctx, symbol, interval, limit)
	}

	key := c.cacheKey(symbol, interval, limit)

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out []entity.PricePoint
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to the upstream source
	out, err := c.inner.Klines(ctx, symbol, interval, limit)
	if err != nil {
		return nil, err
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}

	return out, nil
}

// cacheKey generates a cache key for a specific query.
func (c *CachingCandleSource) cacheKey(symbol, interval string, limit int) string {
	return fmt.Sprintf("%s:%s:%s:%d",
		c.namespace,
		safe(symbol),
		safe(interval),
		limit,
	)
}

// safe escapes characters that are problematic for Redis keys.
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return strings.ToLower(s)
}
