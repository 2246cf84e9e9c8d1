package store

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/serroba/rategate/internal/events"
)

// PostgresEventStore is a PostgreSQL implementation of events.Store.
type PostgresEventStore struct {
	pool *pgxpool.Pool
}

// NewPostgresEventStore creates a new PostgreSQL-backed event store.
func NewPostgresEventStore(pool *pgxpool.Pool) *PostgresEventStore {
	return &PostgresEventStore{pool: pool}
}

func (p *PostgresEventStore) SaveLimitExceeded(ctx context.Context, event *events.LimitExceededEvent) error {
	query := `
		INSERT INTO rate_limit_events (id, client_key, client_ip, path, retry_after_ms, denied_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO NOTHING
	`

	_, err := p.pool.Exec(ctx, query,
		event.ID,
		event.Key,
		event.ClientIP,
		event.Path,
		event.RetryAfterMS,
		event.DeniedAt,
	)

	return err
}
