// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import "context"

// InsightCache caches serialized insight reports. Every write to the ledger
// invalidates the whole cache; entries also expire on their own, so a lost
// invalidation only delays freshness.
type InsightCache interface {
	// Get returns the cached value for key, or (nil, nil) on a miss.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key with the cache's configured TTL.
	Set(ctx context.Context, key string, value []byte) error

	// InvalidateAll drops every cached insight entry.
	InvalidateAll(ctx context.Context) error
}
