package store_test

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/serroba/rategate/internal/ratelimit"
	"github.com/serroba/rategate/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func shardedConfig(maxRequests int, window time.Duration) ratelimit.Config {
	return ratelimit.NewConfig(maxRequests, window, ratelimit.StrategySharded)
}

func TestShardedWindowStore_CheckAndRecord(t *testing.T) {
	t.Run("allows requests under the quota", func(t *testing.T) {
		s := store.NewShardedWindowStore(shardedConfig(5, time.Minute))
		base := time.Now()

		for i := range 5 {
			assert.True(t, s.CheckAndRecord("client1", base).Allowed, "request %d should be allowed", i)
		}

		assert.False(t, s.CheckAndRecord("client1", base).Allowed)
	})

	t.Run("tracks clients independently", func(t *testing.T) {
		s := store.NewShardedWindowStore(shardedConfig(1, time.Minute))
		base := time.Now()

		require.True(t, s.CheckAndRecord("client1", base).Allowed)
		require.False(t, s.CheckAndRecord("client1", base).Allowed)
		assert.True(t, s.CheckAndRecord("client2", base).Allowed)
	})

	t.Run("retry-after reflects the oldest retained entry", func(t *testing.T) {
		s := store.NewShardedWindowStore(shardedConfig(3, 5*time.Second))
		base := time.Now()

		for i := range 3 {
			require.True(t, s.CheckAndRecord("client1", base.Add(time.Duration(i)*time.Second)).Allowed)
		}

		denied := s.CheckAndRecord("client1", base.Add(3*time.Second))

		require.False(t, denied.Allowed)
		assert.Equal(t, 2*time.Second, denied.RetryAfter)

		assert.True(t, s.CheckAndRecord("client1", base.Add(5*time.Second)).Allowed)
	})

	t.Run("tolerates a non-monotonic timestamp", func(t *testing.T) {
		s := store.NewShardedWindowStore(shardedConfig(2, time.Minute))
		base := time.Now()

		require.True(t, s.CheckAndRecord("client1", base).Allowed)
		require.True(t, s.CheckAndRecord("client1", base.Add(-time.Second)).Allowed)
		assert.False(t, s.CheckAndRecord("client1", base).Allowed)
	})
}

func TestShardedWindowStore_PerKeyAdmissionBound(t *testing.T) {
	// The documented guarantee allows transient over-admission of at most
	// the number of requests racing the same key. The test asserts the
	// bound, not exactness.
	const (
		goroutines   = 8
		perGoroutine = 50
		maxRequests  = 10
	)

	s := store.NewShardedWindowStore(shardedConfig(maxRequests, time.Hour))
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

	assert.GreaterOrEqual(t, allowed, maxRequests)
	assert.LessOrEqual(t, allowed, maxRequests+goroutines)
}

func TestShardedWindowStore_DistinctKeysProgressIndependently(t *testing.T) {
	// Distinct keys land on independent shards; admission for one key never
	// waits on traffic for another.
	const (
		clients     = 64
		perClient   = 100
		maxRequests = perClient
	)

	s := store.NewShardedWindowStore(shardedConfig(maxRequests, time.Hour))
	now := time.Now()

	var wg sync.WaitGroup

	denials := make([]int, clients)

	for c := range clients {
		wg.Add(1)

		go func(c int) {
			defer wg.Done()

			key := fmt.Sprintf("client-%d", c)

			for range perClient {
				if !s.CheckAndRecord(key, now).Allowed {
					denials[c]++
				}
			}
		}(c)
	}

	wg.Wait()

	for c, denied := range denials {
		assert.Zero(t, denied, "client %d was denied under its own quota", c)
	}

	assert.Equal(t, clients, s.Len())
}

func TestShardedWindowStore_Sweep(t *testing.T) {
	t.Run("removes keys idle for a full window", func(t *testing.T) {
		s := store.NewShardedWindowStore(shardedConfig(5, time.Minute))
		base := time.Now()

		for i := range 10 {
			s.CheckAndRecord(fmt.Sprintf("client-%d", i), base)
		}

		require.Equal(t, 10, s.Len())

		s.Sweep(base.Add(time.Minute))

		assert.Equal(t, 0, s.Len())
	})

	t.Run("is idempotent", func(t *testing.T) {
		s := store.NewShardedWindowStore(shardedConfig(5, time.Minute))
		base := time.Now()

		s.CheckAndRecord("stale", base)
		s.CheckAndRecord("active", base.Add(40*time.Second))

		now := base.Add(time.Minute)

		s.Sweep(now)
		afterFirst := s.Len()

		s.Sweep(now)

		assert.Equal(t, 1, afterFirst)
		assert.Equal(t, afterFirst, s.Len(), "second sweep must be a no-op")
	})

	t.Run("never drops a concurrently recorded request", func(t *testing.T) {
		const total = 500

		s := store.NewShardedWindowStore(shardedConfig(total, time.Minute))
		base := time.Now()

		var wg sync.WaitGroup

		stop := make(chan struct{})

		wg.Add(1)

		go func() {
			defer wg.Done()

			for {
				select {
				case <-stop:
					return
				default:
					s.Sweep(base)
				}
			}
		}()

		for i := range total {
			require.True(t, s.CheckAndRecord("client1", base.Add(time.Duration(i)*time.Millisecond)).Allowed)
		}

		close(stop)
		wg.Wait()

		// Every recorded timestamp is still in-window; if any had been lost
		// to a sweep, this request would slip under the quota.
		assert.False(t, s.CheckAndRecord("client1", base.Add(time.Second)).Allowed)
		assert.Equal(t, 1, s.Len())
	})
}
