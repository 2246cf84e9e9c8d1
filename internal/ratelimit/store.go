package ratelimit

import "time"

// Decision is the outcome of a rate limit check, returned as a value rather
// than an error.
type Decision struct {
	// Allowed reports whether the request was admitted.
	Allowed bool
	// RetryAfter is how long the client should wait before the next request
	// is likely to be admitted. Zero when the request was allowed.
	RetryAfter time.Duration
}

// WindowStore tracks request timestamps per client inside a trailing window.
// Implementations must be safe for concurrent use by many request goroutines
// and one sweeping janitor.
type WindowStore interface {
	// CheckAndRecord prunes the key's entries older than the window, admits
	// the request if the remaining count is under the quota, and records the
	// timestamp on admission. Prune, check and append happen atomically.
	CheckAndRecord(key string, now time.Time) Decision

	// Sweep removes every key whose log is empty after pruning expired
	// entries, bounding memory for clients that have gone quiet.
	Sweep(now time.Time)

	// Len reports the number of tracked client keys.
	Len() int
}
