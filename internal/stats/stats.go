// Package stats aggregates rate limit decision outcomes per client so that
// operators can see who is being throttled without scraping logs.
package stats

import (
	"context"
	"time"
)

// Event describes the outcome of a single rate limit decision.
type Event struct {
	Key      string
	ClientIP string
	Path     string
	Allowed  bool
	At       time.Time
}

// Counters aggregates decisions for one client key.
type Counters struct {
	Allowed int64 `json:"allowed"`
	Denied  int64 `json:"denied"`
}

// Store records decision outcomes. Recording happens on the request path, so
// implementations must be safe for concurrent use and cheap; failures are
// logged by the caller, never surfaced to the client.
type Store interface {
	// Record counts one decision.
	Record(ctx context.Context, event Event) error

	// Snapshot returns the accumulated counters keyed by client.
	Snapshot(ctx context.Context) (map[string]Counters, error)
}
