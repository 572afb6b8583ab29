// Package cache provides the Redis-backed insight report cache.
package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/ledgerone/backend/internal/application/adapter"
)

func newTestCache(t *testing.T) (adapter.InsightCache, *miniredis.Miniredis) {
	t.Helper()

	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewInsightCache(client, time.Minute), server
}

func TestInsightCache(t *testing.T) {
	ctx := context.Background()

	t.Run("round-trips a value", func(t *testing.T) {
		cache, _ := newTestCache(t)

		if err := cache.Set(ctx, "summary:2025-07", []byte(`{"month":"2025-07"}`)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		value, err := cache.Get(ctx, "summary:2025-07")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if string(value) != `{"month":"2025-07"}` {
			t.Errorf("unexpected value %q", value)
		}
	})

	t.Run("miss returns nil nil", func(t *testing.T) {
		cache, _ := newTestCache(t)

		value, err := cache.Get(ctx, "summary:2099-01")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if value != nil {
			t.Errorf("expected nil on miss, got %q", value)
		}
	})

	t.Run("entries expire", func(t *testing.T) {
		cache, server := newTestCache(t)

		if err := cache.Set(ctx, "summary:2025-07", []byte("x")); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		server.FastForward(2 * time.Minute)

		value, err := cache.Get(ctx, "summary:2025-07")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if value != nil {
			t.Errorf("expected entry expired, got %q", value)
		}
	})

	t.Run("InvalidateAll removes only namespaced keys", func(t *testing.T) {
		cache, server := newTestCache(t)

		if err := cache.Set(ctx, "summary:2025-07", []byte("a")); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := cache.Set(ctx, "summary:2025-08", []byte("b")); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		// A foreign key on the same server must survive.
		server.Set("other:key", "keep")

		if err := cache.InvalidateAll(ctx); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		for _, key := range []string{"summary:2025-07", "summary:2025-08"} {
			value, err := cache.Get(ctx, key)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if value != nil {
				t.Errorf("expected %s invalidated, got %q", key, value)
			}
		}
		if got, err := server.Get("other:key"); err != nil || got != "keep" {
			t.Errorf("expected foreign key untouched, got %q (%v)", got, err)
		}
	})

	t.Run("InvalidateAll is a no-op on empty cache", func(t *testing.T) {
		cache, _ := newTestCache(t)

		if err := cache.InvalidateAll(ctx); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})
}
