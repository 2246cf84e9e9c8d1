package store_test

import (
	"sync"
	"testing"
	"time"

	"github.com/serroba/rategate/internal/ratelimit"
	"github.com/serroba/rategate/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(maxRequests int, window time.Duration) ratelimit.Config {
	return ratelimit.NewConfig(maxRequests, window, ratelimit.StrategyExact)
}

func TestExactWindowStore_CheckAndRecord(t *testing.T) {
	t.Run("allows requests under the quota", func(t *testing.T) {
		s := store.NewExactWindowStore(testConfig(5, time.Minute))
		base := time.Now()

		for i := range 5 {
			decision := s.CheckAndRecord("client1", base.Add(time.Duration(i)*time.Second))

			assert.True(t, decision.Allowed, "request %d should be allowed", i)
		}
	})

	t.Run("denies requests over the quota", func(t *testing.T) {
		s := store.NewExactWindowStore(testConfig(3, time.Minute))
		base := time.Now()

		for range 3 {
			decision := s.CheckAndRecord("client1", base)

			require.True(t, decision.Allowed)
		}

		decision := s.CheckAndRecord("client1", base)

		assert.False(t, decision.Allowed)
	})

	t.Run("tracks clients independently", func(t *testing.T) {
		s := store.NewExactWindowStore(testConfig(2, time.Minute))
		base := time.Now()

		for range 2 {
			require.True(t, s.CheckAndRecord("client1", base).Allowed)
		}

		assert.False(t, s.CheckAndRecord("client1", base).Allowed, "client1 should be rate limited")
		assert.True(t, s.CheckAndRecord("client2", base).Allowed, "client2 should still be allowed")
	})

	t.Run("retry-after reflects the oldest retained entry", func(t *testing.T) {
		// max_requests=3, window=5s: t=0,1,2 allowed; t=3 denied with
		// retry 2s; t=5 allowed again once the t=0 entry aged out.
		s := store.NewExactWindowStore(testConfig(3, 5*time.Second))
		base := time.Now()

		for i := range 3 {
			decision := s.CheckAndRecord("client1", base.Add(time.Duration(i)*time.Second))

			require.True(t, decision.Allowed, "request at t=%d should be allowed", i)
		}

		denied := s.CheckAndRecord("client1", base.Add(3*time.Second))

		require.False(t, denied.Allowed)
		assert.Equal(t, 2*time.Second, denied.RetryAfter)

		recovered := s.CheckAndRecord("client1", base.Add(5*time.Second))

		assert.True(t, recovered.Allowed, "window should have slid past the first entry")
	})

	t.Run("availability recovers monotonically as entries age out", func(t *testing.T) {
		s := store.NewExactWindowStore(testConfig(3, 10*time.Second))
		base := time.Now()

		// Fill the quota at t=0, t=2, t=4.
		for i := 0; i < 3; i++ {
			require.True(t, s.CheckAndRecord("client1", base.Add(time.Duration(2*i)*time.Second)).Allowed)
		}

		require.False(t, s.CheckAndRecord("client1", base.Add(5*time.Second)).Allowed)

		// Each entry aging out frees exactly one slot.
		assert.True(t, s.CheckAndRecord("client1", base.Add(10*time.Second)).Allowed)
		assert.False(t, s.CheckAndRecord("client1", base.Add(11*time.Second)).Allowed)
		assert.True(t, s.CheckAndRecord("client1", base.Add(12*time.Second)).Allowed)
	})

	t.Run("tolerates a non-monotonic timestamp", func(t *testing.T) {
		s := store.NewExactWindowStore(testConfig(2, time.Minute))
		base := time.Now()

		require.True(t, s.CheckAndRecord("client1", base).Allowed)

		// An apparently-past now must not evict the in-window entry.
		decision := s.CheckAndRecord("client1", base.Add(-time.Second))

		require.True(t, decision.Allowed)
		assert.False(t, s.CheckAndRecord("client1", base).Allowed)
	})

	t.Run("denied requests are not recorded", func(t *testing.T) {
		s := store.NewExactWindowStore(testConfig(1, 5*time.Second))
		base := time.Now()

		require.True(t, s.CheckAndRecord("client1", base).Allowed)

		// Hammering while denied must not extend the wait.
		for i := 1; i < 5; i++ {
			require.False(t, s.CheckAndRecord("client1", base.Add(time.Duration(i)*time.Second)).Allowed)
		}

		assert.True(t, s.CheckAndRecord("client1", base.Add(5*time.Second)).Allowed)
	})
}

func TestExactWindowStore_Linearizable(t *testing.T) {
	// All goroutines fire inside one window; exactly maxRequests are
	// admitted regardless of interleaving.
	const (
		goroutines   = 8
		perGoroutine = 50
		maxRequests  = 10
	)

	s := store.NewExactWindowStore(testConfig(maxRequests, time.Hour))
	now := time.Now()

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		allowed int
	)

	for range goroutines {
		wg.Add(1)

		go func() {
			defer wg.Done()

			local := 0

			for range perGoroutine {
				if s.CheckAndRecord("client1", now).Allowed {
					local++
				}
			}

			mu.Lock()
			allowed += local
			mu.Unlock()
		}()
	}

	wg.Wait()

	assert.Equal(t, maxRequests, allowed)
}

func TestExactWindowStore_Sweep(t *testing.T) {
	t.Run("removes keys idle for a full window", func(t *testing.T) {
		s := store.NewExactWindowStore(testConfig(5, time.Minute))
		base := time.Now()

		s.CheckAndRecord("client1", base)
		s.CheckAndRecord("client2", base)

		require.Equal(t, 2, s.Len())

		s.Sweep(base.Add(time.Minute))

		assert.Equal(t, 0, s.Len())
	})

	t.Run("keeps keys with in-window entries", func(t *testing.T) {
		s := store.NewExactWindowStore(testConfig(5, time.Minute))
		base := time.Now()

		s.CheckAndRecord("stale", base)
		s.CheckAndRecord("active", base.Add(30*time.Second))

		s.Sweep(base.Add(time.Minute))

		assert.Equal(t, 1, s.Len())
		assert.True(t, s.CheckAndRecord("active", base.Add(time.Minute)).Allowed)
	})

	t.Run("is idempotent", func(t *testing.T) {
		s := store.NewExactWindowStore(testConfig(5, time.Minute))
		base := time.Now()

		s.CheckAndRecord("client1", base)
		s.CheckAndRecord("client2", base.Add(45*time.Second))

		now := base.Add(time.Minute)

		s.Sweep(now)
		afterFirst := s.Len()

		s.Sweep(now)

		assert.Equal(t, afterFirst, s.Len(), "second sweep must be a no-op")
	})

	t.Run("does not change decisions for swept traffic", func(t *testing.T) {
		s := store.NewExactWindowStore(testConfig(2, time.Minute))
		base := time.Now()

		s.CheckAndRecord("client1", base)
		s.Sweep(base.Add(30 * time.Second))

		// The in-window entry survived the sweep.
		require.True(t, s.CheckAndRecord("client1", base.Add(30*time.Second)).Allowed)
		assert.False(t, s.CheckAndRecord("client1", base.Add(31*time.Second)).Allowed)
	})
}
