// Package cache provides an optional Redis-backed result cache so
// identical documents are not converted twice.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Cache stores converted output keyed by input digest. All failures are
// logged and treated as misses; the cache never fails a conversion.
type Cache struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger *zap.SugaredLogger
}

// New connects to Redis and verifies the connection.
func New(redisURL string, ttl time.Duration, logger *zap.SugaredLogger) (*Cache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return &Cache{rdb: rdb, ttl: ttl, logger: logger}, nil
}

// Get returns the cached output for key, if present.
func (c *Cache) Get(ctx context.Context, key string) ([]byte, bool) {
	data, err := c.rdb.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		c.logger.Warnw("cache get failed", "error", err)
		return nil, false
	}
	return data, true
}

// Set stores output under key with the configured TTL.
func (c *Cache) Set(ctx context.Context, key string, data []byte) {
	if err := c.rdb.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.logger.Warnw("cache set failed", "error", err)
	}
}

// Close releases the Redis connection.
func (c *Cache) Close() error {
	return c.rdb.Close()
}
