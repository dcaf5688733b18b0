package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"skilloncall/internal/disclosure/models"
	platformpg "skilloncall/internal/platform/postgres"
	id "skilloncall/pkg/domain"
	"skilloncall/pkg/platform/sentinel"
	txcontext "skilloncall/pkg/platform/tx"
)

const accountColumns = `requester_id, credits_available, credits_used, daily_limit, monthly_limit,
	last_reset_at, expires_at, created_at, updated_at`

// PostgresStore persists credit accounts in PostgreSQL. Deductions are single
// conditional UPDATEs, so the balance cannot go negative even without a lock.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed credit ledger.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Load(ctx context.Context, requesterID id.UserID) (*models.CreditAccount, error) {
	query := `SELECT ` + accountColumns + ` FROM credit_accounts WHERE requester_id = $1`
	account, err := scanAccount(txcontext.Pick(ctx, s.db).QueryRowContext(ctx, query, uuid.UUID(requesterID)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("load credit account: %w", err)
	}
	return account, nil
}

// CreateWithDefaults inserts the seed unless a concurrent caller won the race,
// then reads back whichever row is stored.
func (s *PostgresStore) CreateWithDefaults(ctx context.Context, seed *models.CreditAccount) (*models.CreditAccount, error) {
	query := `
		INSERT INTO credit_accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (requester_id) DO NOTHING
	`
	_, err := txcontext.Pick(ctx, s.db).ExecContext(ctx, query,
		uuid.UUID(seed.RequesterID),
		seed.CreditsAvailable,
		seed.CreditsUsed,
		seed.DailyLimit,
		seed.MonthlyLimit,
		seed.LastResetAt,
		seed.ExpiresAt,
		seed.CreatedAt,
		seed.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create credit account: %w", err)
	}
	return s.Load(ctx, seed.RequesterID)
}

func (s *PostgresStore) TryDeduct(ctx context.Context, requesterID id.UserID, amount int, now time.Time) (bool, error) {
	query := `
		UPDATE credit_accounts
		SET credits_available = credits_available - $2,
		    credits_used = credits_used + $2,
		    updated_at = $3
		WHERE requester_id = $1
		  AND credits_available >= $2
	`
	result, err := txcontext.Pick(ctx, s.db).ExecContext(ctx, query, uuid.UUID(requesterID), amount, now)
	if err != nil {
		return false, fmt.Errorf("deduct credits: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("deduct credits rows affected: %w", err)
	}
	if rows > 0 {
		return true, nil
	}
	if _, err := s.Load(ctx, requesterID); err != nil {
		return false, err
	}
	return false, nil
}

func (s *PostgresStore) Refund(ctx context.Context, requesterID id.UserID, amount int, now time.Time) error {
	query := `
		UPDATE credit_accounts
		SET credits_available = credits_available + $2,
		    credits_used = GREATEST(credits_used - $2, 0),
		    updated_at = $3
		WHERE requester_id = $1
	`
	result, err := txcontext.Pick(ctx, s.db).ExecContext(ctx, query, uuid.UUID(requesterID), amount, now)
	if err != nil {
		return fmt.Errorf("refund credits: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("refund credits rows affected: %w", err)
	}
	if rows == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) Grant(ctx context.Context, requesterID id.UserID, amount int, expiresAt, now time.Time) (*models.CreditAccount, error) {
	query := `
		UPDATE credit_accounts
		SET credits_available = credits_available + $2,
		    expires_at = $3,
		    last_reset_at = $4,
		    updated_at = $4
		WHERE requester_id = $1
		RETURNING ` + accountColumns
	account, err := scanAccount(txcontext.Pick(ctx, s.db).QueryRowContext(ctx, query, uuid.UUID(requesterID), amount, expiresAt, now))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		if platformpg.IsOutOfRange(err) {
			return nil, sentinel.ErrOutOfRange
		}
		return nil, fmt.Errorf("grant credits: %w", err)
	}
	return account, nil
}

func (s *PostgresStore) UpdateLimits(ctx context.Context, requesterID id.UserID, daily, monthly int, now time.Time) (*models.CreditAccount, error) {
	query := `
		UPDATE credit_accounts
		SET daily_limit = $2,
		    monthly_limit = $3,
		    updated_at = $4
		WHERE requester_id = $1
		RETURNING ` + accountColumns
	account, err := scanAccount(txcontext.Pick(ctx, s.db).QueryRowContext(ctx, query, uuid.UUID(requesterID), daily, monthly, now))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("update limits: %w", err)
	}
	return account, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner) (*models.CreditAccount, error) {
	var (
		requesterID uuid.UUID
		account     models.CreditAccount
	)
	err := row.Scan(
		&requesterID,
		&account.CreditsAvailable,
		&account.CreditsUsed,
		&account.DailyLimit,
		&account.MonthlyLimit,
		&account.LastResetAt,
		&account.ExpiresAt,
		&account.CreatedAt,
		&account.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	account.RequesterID = id.UserID(requesterID)
	return &account, nil
}
