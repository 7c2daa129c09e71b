package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// KeyPrefix namespaces every key this service writes.
const KeyPrefix = "relief:"

// ReadCache is a TTL cache for query results. It is advisory only: every
// failure is logged and reported as a miss, and a nil *ReadCache never hits.
type ReadCache struct {
	rdb redis.Cmdable
	ttl time.Duration
	log *zap.Logger
}

func NewReadCache(rdb redis.Cmdable, ttl time.Duration, log *zap.Logger) *ReadCache {
	if log == nil {
		log = zap.NewNop()
	}
	return &ReadCache{rdb: rdb, ttl: ttl, log: log.With(zap.String("component", "read_cache"))}
}

// GetJSON decodes the cached value into dst and reports whether it was found.
func (c *ReadCache) GetJSON(ctx context.Context, key string, dst any) bool {
	if c == nil || c.rdb == nil {
		return false
	}
	key = KeyPrefix + key
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warn("cache get failed", zap.String("key", key), zap.Error(err))
		}
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		c.log.Warn("cache entry undecodable, dropping", zap.String("key", key), zap.Error(err))
		_ = c.rdb.Del(ctx, key).Err()
		return false
	}
	return true
}

func (c *ReadCache) SetJSON(ctx context.Context, key string, v any) {
	if c == nil || c.rdb == nil {
		return
	}
	raw, err := json.Marshal(v)
	if err != nil {
		c.log.Warn("cache encode failed", zap.String("key", key), zap.Error(err))
		return
	}
	key = KeyPrefix + key
	if err := c.rdb.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		c.log.Warn("cache set failed", zap.String("key", key), zap.Error(err))
	}
}

// Invalidate deletes keys. Callers invoke it only after their transaction
// has committed.
func (c *ReadCache) Invalidate(ctx context.Context, keys ...string) {
	if c == nil || c.rdb == nil || len(keys) == 0 {
		return
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = KeyPrefix + k
	}
	if err := c.rdb.Del(ctx, full...).Err(); err != nil {
		c.log.Warn("cache invalidate failed", zap.Strings("keys", full), zap.Error(err))
	}
}
