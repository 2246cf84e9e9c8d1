package store

import (
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/serroba/rategate/internal/ratelimit"
)

// shardCount is a power of two so shard selection is a single mask.
const shardCount = 64

type windowShard struct {
	mu       sync.Mutex
	requests map[string][]time.Time
}

// ShardedWindowStore partitions clients across independently locked shards,
// so requests for unrelated clients never contend. Requests for the same
// client serialize at their shard, keeping the quota check atomic per key.
// No operation observes the whole table at a single point in time.
type ShardedWindowStore struct {
	maxRequests int
	window      time.Duration
	shards      [shardCount]windowShard
}

// NewShardedWindowStore creates a sharded store for the given config.
func NewShardedWindowStore(cfg ratelimit.Config) *ShardedWindowStore {
	s := &ShardedWindowStore{
		maxRequests: cfg.MaxRequests,
		window:      cfg.Window,
	}

	for i := range s.shards {
		s.shards[i].requests = make(map[string][]time.Time)
	}

	return s
}

func (s *ShardedWindowStore) shard(key string) *windowShard {
	return &s.shards[xxhash.Sum64String(key)&(shardCount-1)]
}

// CheckAndRecord prunes, checks and appends under the key's shard lock.
func (s *ShardedWindowStore) CheckAndRecord(key string, now time.Time) ratelimit.Decision {
	shard := s.shard(key)

	shard.mu.Lock()
	defer shard.mu.Unlock()

	valid := pruneWindow(shard.requests[key], now, s.window)

	if len(valid) >= s.maxRequests {
		shard.requests[key] = valid

		return ratelimit.Decision{
			RetryAfter: retryAfter(valid[0], now, s.window),
		}
	}

	shard.requests[key] = append(valid, now)

	return ratelimit.Decision{Allowed: true}
}

// Sweep visits each shard in turn, removing keys whose logs pruned to empty.
// Removal happens under the same shard lock as insertion, so a concurrent
// CheckAndRecord can never have its appended timestamp dropped. Shards not
// being swept stay fully available to concurrent callers.
func (s *ShardedWindowStore) Sweep(now time.Time) {
	for i := range s.shards {
		shard := &s.shards[i]

		shard.mu.Lock()

		for key, timestamps := range shard.requests {
			valid := pruneWindow(timestamps, now, s.window)
			if len(valid) == 0 {
				delete(shard.requests, key)

				continue
			}

			shard.requests[key] = valid
		}

		shard.mu.Unlock()
	}
}

// Len sums the key counts across shards. Shards are locked one at a time, so
// the result is not a point-in-time snapshot of the whole table.
func (s *ShardedWindowStore) Len() int {
	total := 0

	for i := range s.shards {
		shard := &s.shards[i]

		shard.mu.Lock()
		total += len(shard.requests)
		shard.mu.Unlock()
	}

	return total
}
