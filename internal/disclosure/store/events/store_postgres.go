package events

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"skilloncall/internal/disclosure/models"
	id "skilloncall/pkg/domain"
	"skilloncall/pkg/platform/sentinel"
	txcontext "skilloncall/pkg/platform/tx"
)

// PostgresStore is the disclosure log in PostgreSQL. The unique index on
// (requester_id, target_id) backs the one-event-per-pair rule.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed disclosure log.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Append inserts the event. A duplicate pair is reported as sentinel.ErrConflict
// without raising a constraint error, so an enclosing transaction stays usable.
func (s *PostgresStore) Append(ctx context.Context, event *models.DisclosureEvent) error {
	query := `
		INSERT INTO disclosure_events (id, requester_id, target_id, occurred_at, credits_used)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (requester_id, target_id) DO NOTHING
	`
	result, err := txcontext.Pick(ctx, s.db).ExecContext(ctx, query,
		uuid.UUID(event.ID),
		uuid.UUID(event.RequesterID),
		uuid.UUID(event.TargetID),
		event.OccurredAt,
		event.CreditsUsed,
	)
	if err != nil {
		return fmt.Errorf("append disclosure event: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("append disclosure event rows affected: %w", err)
	}
	if rows == 0 {
		return sentinel.ErrConflict
	}
	return nil
}

func (s *PostgresStore) CountInWindow(ctx context.Context, requesterID id.UserID, from, to time.Time) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM disclosure_events
		WHERE requester_id = $1
		  AND occurred_at >= $2
		  AND occurred_at <= $3
	`
	var count int
	err := txcontext.Pick(ctx, s.db).QueryRowContext(ctx, query, uuid.UUID(requesterID), from, to).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count disclosure events: %w", err)
	}
	return count, nil
}

func (s *PostgresStore) Exists(ctx context.Context, requesterID, targetID id.UserID) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM disclosure_events WHERE requester_id = $1 AND target_id = $2
		)
	`
	var exists bool
	err := txcontext.Pick(ctx, s.db).QueryRowContext(ctx, query, uuid.UUID(requesterID), uuid.UUID(targetID)).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check disclosure exists: %w", err)
	}
	return exists, nil
}

func (s *PostgresStore) ListByRequester(ctx context.Context, requesterID id.UserID, limit int) ([]*models.DisclosureEvent, error) {
	query := `
		SELECT id, requester_id, target_id, occurred_at, credits_used
		FROM disclosure_events
		WHERE requester_id = $1
		ORDER BY occurred_at DESC, id
		LIMIT $2
	`
	rows, err := txcontext.Pick(ctx, s.db).QueryContext(ctx, query, uuid.UUID(requesterID), max(limit, 0))
	if err != nil {
		return nil, fmt.Errorf("list disclosure events: %w", err)
	}
	defer rows.Close()

	var result []*models.DisclosureEvent
	for rows.Next() {
		var eventID, requester, target uuid.UUID
		event := &models.DisclosureEvent{}
		if err := rows.Scan(&eventID, &requester, &target, &event.OccurredAt, &event.CreditsUsed); err != nil {
			return nil, fmt.Errorf("scan disclosure event: %w", err)
		}
		event.ID = id.DisclosureID(eventID)
		event.RequesterID = id.UserID(requester)
		event.TargetID = id.UserID(target)
		result = append(result, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate disclosure events: %w", err)
	}
	return result, nil
}

func (s *PostgresStore) RevealedAmong(ctx context.Context, requesterID id.UserID, targetIDs []id.UserID) (map[id.UserID]bool, error) {
	result := make(map[id.UserID]bool)
	if len(targetIDs) == 0 {
		return result, nil
	}

	targets := make([]string, len(targetIDs))
	for i, target := range targetIDs {
		targets[i] = target.String()
	}
	query := `
		SELECT target_id
		FROM disclosure_events
		WHERE requester_id = $1
		  AND target_id = ANY($2::uuid[])
	`
	rows, err := txcontext.Pick(ctx, s.db).QueryContext(ctx, query, uuid.UUID(requesterID), pq.Array(targets))
	if err != nil {
		return nil, fmt.Errorf("query revealed targets: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var target uuid.UUID
		if err := rows.Scan(&target); err != nil {
			return nil, fmt.Errorf("scan revealed target: %w", err)
		}
		result[id.UserID(target)] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate revealed targets: %w", err)
	}
	return result, nil
}
