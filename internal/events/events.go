// Package events defines the audit events the limiter emits and the store
// that persists them. Publishing is fire-and-forget from the request path;
// losing an event never affects an admission decision.
package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// TopicLimitExceeded carries LimitExceededEvent messages.
const TopicLimitExceeded = "ratelimit.exceeded"

// LimitExceededEvent is emitted each time the limiter denies a client.
type LimitExceededEvent struct {
	ID           string    `json:"id"`
	Key          string    `json:"key"`
	ClientIP     string    `json:"clientIp"`
	Path         string    `json:"path"`
	RetryAfterMS int64     `json:"retryAfterMs"`
	DeniedAt     time.Time `json:"deniedAt"`
}

// NewLimitExceeded builds an event with a fresh ID.
func NewLimitExceeded(key, clientIP, path string, retryAfter time.Duration, deniedAt time.Time) *LimitExceededEvent {
	return &LimitExceededEvent{
		ID:           uuid.NewString(),
		Key:          key,
		ClientIP:     clientIP,
		Path:         path,
		RetryAfterMS: retryAfter.Milliseconds(),
		DeniedAt:     deniedAt,
	}
}

// Store persists emitted events.
type Store interface {
	SaveLimitExceeded(ctx context.Context, event *LimitExceededEvent) error
}
