package ratelimit

import "context"

// Limiter is the request-path gate consumed by HTTP middleware.
type Limiter interface {
	// Allow checks whether a request from the given key should be admitted.
	Allow(ctx context.Context, key string) Decision
}

// SlidingWindowLimiter pairs a WindowStore with a Clock. The store strategy
// is chosen once at construction; there is no per-request branching on it.
type SlidingWindowLimiter struct {
	store WindowStore
	clock Clock
}

// NewSlidingWindowLimiter creates a limiter over the given store and clock.
func NewSlidingWindowLimiter(store WindowStore, clock Clock) *SlidingWindowLimiter {
	return &SlidingWindowLimiter{
		store: store,
		clock: clock,
	}
}

// Allow checks and records a request for the key at the current time.
// It never blocks on I/O and always completes with a Decision.
func (l *SlidingWindowLimiter) Allow(_ context.Context, key string) Decision {
	return l.store.CheckAndRecord(key, l.clock.Now())
}

// Store returns the underlying window store.
func (l *SlidingWindowLimiter) Store() WindowStore {
	return l.store
}
