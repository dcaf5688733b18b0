package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	id "skilloncall/pkg/domain"
	dErrors "skilloncall/pkg/domain-errors"
	"skilloncall/pkg/platform/sentinel"
	txcontext "skilloncall/pkg/platform/tx"
)

const (
	defaultTxTimeout = 5 * time.Second
	defaultTxRetries = 3
)

// TxRunner runs a function inside a database transaction that holds a
// transaction-scoped advisory lock on the requester, so concurrent reveals by
// one requester commit one after another while different requesters proceed
// in parallel. Stores reach the transaction through the context.
type TxRunner struct {
	db      *sql.DB
	timeout time.Duration
	retries int
}

// NewTxRunner creates a runner over db.
func NewTxRunner(db *sql.DB) *TxRunner {
	return &TxRunner{db: db, timeout: defaultTxTimeout, retries: defaultTxRetries}
}

func (t *TxRunner) RunInTx(ctx context.Context, requesterID id.UserID, fn func(ctx context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.timeout)
		defer cancel()
	}

	var err error
	for attempt := 0; attempt < t.retries; attempt++ {
		err = t.runOnce(ctx, requesterID, fn)
		if err == nil || !IsRetryable(err) {
			return err
		}
	}
	return fmt.Errorf("%w: %w", sentinel.ErrUnavailable, err)
}

func (t *TxRunner) runOnce(ctx context.Context, requesterID id.UserID, fn func(ctx context.Context) error) error {
	tx, err := t.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`, requesterID.String()); err != nil {
		return fmt.Errorf("lock requester: %w", err)
	}

	if err := fn(txcontext.WithTx(ctx, tx)); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}
