// Package cache stores analysis results in Redis so repeated
// identical requests do not spend another model call.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/shopstock/shopstock/pkg/logger"
)

// Cache is a best-effort result cache. A nil client disables caching
// entirely; failures are logged and treated as misses.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// New creates a cache over the given Redis client. client may be nil.
func New(client *redis.Client, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &Cache{client: client, ttl: ttl}
}

// Key builds a stable cache key from a flow name and its serialized request
func Key(flow, payload string) string {
	sum := sha256.Sum256([]byte(flow + "\x00" + payload))
	return "analysis:" + flow + ":" + hex.EncodeToString(sum[:])
}

// Get returns the cached result for key, if present
func (c *Cache) Get(ctx context.Context, key string) (string, bool) {
	if c == nil || c.client == nil {
		return "", false
	}
	val, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", false
	}
	if err != nil {
		logger.Warn(ctx).Err(err).Str("key", key).Msg("Analysis cache read failed")
		return "", false
	}
	return val, true
}

// Set stores the result for key, best effort
func (c *Cache) Set(ctx context.Context, key, value string) {
	if c == nil || c.client == nil {
		return
	}
	if err := c.client.Set(ctx, key, value, c.ttl).Err(); err != nil {
		logger.Warn(ctx).Err(err).Str("key", key).Msg("Analysis cache write failed")
	}
}
