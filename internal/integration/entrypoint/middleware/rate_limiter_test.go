package middleware

import (
	"testing"
	"time"
)

func TestRateLimiter(t *testing.T) {
	t.Run("allows up to the limit then refuses", func(t *testing.T) {
		rl := NewRateLimiterWithConfig(3, time.Minute)

		for i := 0; i < 3; i++ {
			if !rl.allow("10.0.0.1") {
				t.Fatalf("request %d unexpectedly refused", i+1)
			}
		}
		if rl.allow("10.0.0.1") {
			t.Error("expected fourth request to be refused")
		}
	})

	t.Run("limits are per key", func(t *testing.T) {
		rl := NewRateLimiterWithConfig(1, time.Minute)

		if !rl.allow("10.0.0.1") {
			t.Fatal("first key unexpectedly refused")
		}
		if !rl.allow("10.0.0.2") {
			t.Error("second key should have its own window")
		}
	})

	t.Run("window expiry resets the count", func(t *testing.T) {
		rl := NewRateLimiterWithConfig(1, 10*time.Millisecond)

		if !rl.allow("10.0.0.1") {
			t.Fatal("first request unexpectedly refused")
		}
		if rl.allow("10.0.0.1") {
			t.Fatal("second request should be refused within the window")
		}

		time.Sleep(20 * time.Millisecond)
		if !rl.allow("10.0.0.1") {
			t.Error("expected a fresh window after expiry")
		}
	})

	t.Run("Reset clears all state", func(t *testing.T) {
		rl := NewRateLimiterWithConfig(1, time.Minute)

		rl.allow("10.0.0.1")
		rl.Reset()
		if !rl.allow("10.0.0.1") {
			t.Error("expected allowance after Reset")
		}
	})

	t.Run("Cleanup drops only expired entries", func(t *testing.T) {
		rl := NewRateLimiterWithConfig(1, 10*time.Millisecond)

		rl.allow("old")
		time.Sleep(20 * time.Millisecond)
		rl.allow("fresh")
		rl.Cleanup()

		rl.mu.Lock()
		_, oldExists := rl.entries["old"]
		_, freshExists := rl.entries["fresh"]
		rl.mu.Unlock()

		if oldExists {
			t.Error("expected expired entry removed")
		}
		if !freshExists {
			t.Error("expected fresh entry kept")
		}
	})
}
