// Package cache provides the Redis-backed insight report cache.
package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ledgerone/backend/internal/application/adapter"
)

// keyPrefix namespaces every cached insight entry so invalidation can scan
// for them without touching anything else on the server.
const keyPrefix = "ledgerone:insights:"

// insightCache implements adapter.InsightCache on top of Redis.
type insightCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewInsightCache creates a new Redis-backed insight cache.
func NewInsightCache(client *redis.Client, ttl time.Duration) adapter.InsightCache {
	return &insightCache{
		client: client,
		ttl:    ttl,
	}
}

// Get returns the cached value for key, or (nil, nil) on a miss.
func (c *insightCache) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := c.client.Get(ctx, keyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	return value, nil
}

// Set stores value under key with the configured TTL.
func (c *insightCache) Set(ctx context.Context, key string, value []byte) error {
	return c.client.Set(ctx, keyPrefix+key, value, c.ttl).Err()
}

// InvalidateAll deletes every cached insight entry.
func (c *insightCache) InvalidateAll(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, keyPrefix+"*", 0).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}
