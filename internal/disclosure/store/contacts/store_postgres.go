package contacts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"skilloncall/internal/disclosure/models"
	id "skilloncall/pkg/domain"
	"skilloncall/pkg/platform/sentinel"
	txcontext "skilloncall/pkg/platform/tx"
)

// PostgresStore reads worker contact details from the worker_contacts table.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed contact directory.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) ContactFor(ctx context.Context, targetID id.UserID) (*models.ContactRecord, error) {
	query := `
		SELECT email, phone, address_line_1, address_line_2, city, province, postal_code
		FROM worker_contacts
		WHERE worker_id = $1
	`
	var (
		record models.ContactRecord
		line2  sql.NullString
	)
	err := txcontext.Pick(ctx, s.db).QueryRowContext(ctx, query, uuid.UUID(targetID)).Scan(
		&record.Email,
		&record.Phone,
		&record.AddressLine1,
		&line2,
		&record.City,
		&record.Province,
		&record.PostalCode,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("load worker contact: %w", err)
	}
	if line2.Valid {
		record.AddressLine2 = &line2.String
	}
	return &record, nil
}

// Upsert stores or replaces the contact record of a worker.
func (s *PostgresStore) Upsert(ctx context.Context, targetID id.UserID, record models.ContactRecord) error {
	query := `
		INSERT INTO worker_contacts (worker_id, email, phone, address_line_1, address_line_2, city, province, postal_code)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (worker_id) DO UPDATE SET
			email = EXCLUDED.email,
			phone = EXCLUDED.phone,
			address_line_1 = EXCLUDED.address_line_1,
			address_line_2 = EXCLUDED.address_line_2,
			city = EXCLUDED.city,
			province = EXCLUDED.province,
			postal_code = EXCLUDED.postal_code
	`
	var line2 sql.NullString
	if record.AddressLine2 != nil {
		line2 = sql.NullString{String: *record.AddressLine2, Valid: true}
	}
	_, err := txcontext.Pick(ctx, s.db).ExecContext(ctx, query,
		uuid.UUID(targetID),
		record.Email,
		record.Phone,
		record.AddressLine1,
		line2,
		record.City,
		record.Province,
		record.PostalCode,
	)
	if err != nil {
		return fmt.Errorf("upsert worker contact: %w", err)
	}
	return nil
}
