package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// PostgresProcessedEvents persists handled event ids per consumer so that
// redelivered messages can be recognized.
type PostgresProcessedEvents struct {
	pool         DBPool
	consumerName string
}

func NewPostgresProcessedEvents(pool DBPool, consumerName string) *PostgresProcessedEvents {
	return &PostgresProcessedEvents{pool: pool, consumerName: consumerName}
}

func (s *PostgresProcessedEvents) Seen(ctx context.Context, eventID string) (bool, error) {
	var one int
	err := s.pool.QueryRow(ctx, `
		SELECT 1 FROM processed_events WHERE consumer_name=$1 AND event_id=$2
	`, s.consumerName, eventID).Scan(&one)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("select processed event: %w", err)
	}
	return true, nil
}

func (s *PostgresProcessedEvents) MarkProcessed(ctx context.Context, eventID string) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO processed_events (consumer_name, event_id)
		VALUES ($1, $2)
		ON CONFLICT (consumer_name, event_id) DO NOTHING
	`, s.consumerName, eventID)
	if err != nil {
		return fmt.Errorf("insert processed event: %w", err)
	}
	return nil
}
