package store

import (
	"sync"
	"time"

	"github.com/serroba/rategate/internal/ratelimit"
)

// ExactWindowStore keeps every client's request log in one map behind a
// single reader/writer lock. Decisions are linearizable across all keys: the
// count checked against the quota reflects every request recorded so far, so
// the limiter never admits more than MaxRequests requests in any trailing
// window for a key. The price is that operations on unrelated keys also
// serialize, degrading to sequential behavior under load.
type ExactWindowStore struct {
	mu          sync.RWMutex
	maxRequests int
	window      time.Duration
	requests    map[string][]time.Time
}

// NewExactWindowStore creates an exact store for the given config.
func NewExactWindowStore(cfg ratelimit.Config) *ExactWindowStore {
	return &ExactWindowStore{
		maxRequests: cfg.MaxRequests,
		window:      cfg.Window,
		requests:    make(map[string][]time.Time),
	}
}

// CheckAndRecord always takes the write lock: pruning mutates the log, so
// there is no pure read path to optimize with the read lock.
func (s *ExactWindowStore) CheckAndRecord(key string, now time.Time) ratelimit.Decision {
	s.mu.Lock()
	defer s.mu.Unlock()

	valid := pruneWindow(s.requests[key], now, s.window)

	if len(valid) >= s.maxRequests {
		s.requests[key] = valid

		return ratelimit.Decision{
			RetryAfter: retryAfter(valid[0], now, s.window),
		}
	}

	s.requests[key] = append(valid, now)

	return ratelimit.Decision{Allowed: true}
}

// Sweep drops every key whose log pruned to empty. Prune and delete happen
// under the same lock as CheckAndRecord, so a just-appended timestamp can
// never be lost to a concurrent sweep.
func (s *ExactWindowStore) Sweep(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key, timestamps := range s.requests {
		valid := pruneWindow(timestamps, now, s.window)
		if len(valid) == 0 {
			delete(s.requests, key)

			continue
		}

		s.requests[key] = valid
	}
}

// Len reports the number of tracked client keys.
func (s *ExactWindowStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.requests)
}
