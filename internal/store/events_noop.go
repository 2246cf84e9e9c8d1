package store

import (
	"context"

	"github.com/serroba/rategate/internal/events"
	"go.uber.org/zap"
)

// NoopEventStore is a no-op implementation of events.Store that logs events.
// Used for local runs without Postgres.
type NoopEventStore struct {
	logger *zap.Logger
}

// NewNoopEventStore creates a new logging no-op event store.
func NewNoopEventStore(logger *zap.Logger) *NoopEventStore {
	return &NoopEventStore{logger: logger}
}

func (n *NoopEventStore) SaveLimitExceeded(_ context.Context, event *events.LimitExceededEvent) error {
	n.logger.Info("limit exceeded event received",
		zap.String("id", event.ID),
		zap.String("key", event.Key),
		zap.String("clientIp", event.ClientIP),
		zap.String("path", event.Path),
		zap.Int64("retryAfterMs", event.RetryAfterMS),
		zap.Time("deniedAt", event.DeniedAt),
	)

	return nil
}
