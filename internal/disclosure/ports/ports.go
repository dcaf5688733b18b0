// Package ports defines the collaborators the disclosure guard depends on.
// Stores implement them; the service only sees these interfaces.
package ports

import (
	"context"
	"time"

	"skilloncall/internal/disclosure/models"
	id "skilloncall/pkg/domain"
)

//go:generate mockgen -source=ports.go -destination=mocks/mocks.go -package=mocks

// CreditLedger persists per-requester credit accounts.
type CreditLedger interface {
	// Load returns sentinel.ErrNotFound when the requester has no account.
	Load(ctx context.Context, requesterID id.UserID) (*models.CreditAccount, error)

	// CreateWithDefaults inserts the seeded account unless one already exists,
	// and returns whichever account is stored afterwards.
	CreateWithDefaults(ctx context.Context, seed *models.CreditAccount) (*models.CreditAccount, error)

	// TryDeduct atomically subtracts amount when at least amount credits are
	// available. It returns false, without changes, otherwise.
	TryDeduct(ctx context.Context, requesterID id.UserID, amount int, now time.Time) (bool, error)

	// Refund reverses a deduction whose disclosure could not be recorded.
	Refund(ctx context.Context, requesterID id.UserID, amount int, now time.Time) error

	// Grant adds credits and moves the expiry forward.
	Grant(ctx context.Context, requesterID id.UserID, amount int, expiresAt, now time.Time) (*models.CreditAccount, error)

	// UpdateLimits replaces the daily and monthly disclosure caps.
	UpdateLimits(ctx context.Context, requesterID id.UserID, daily, monthly int, now time.Time) (*models.CreditAccount, error)
}

// AuditLog is the append-only store of disclosure events.
type AuditLog interface {
	// Append records a new disclosure. A second event for the same
	// (requester, target) pair is rejected with sentinel.ErrConflict.
	Append(ctx context.Context, event *models.DisclosureEvent) error

	// CountInWindow counts the requester's events with from <= occurred_at <= to.
	CountInWindow(ctx context.Context, requesterID id.UserID, from, to time.Time) (int, error)

	// Exists reports whether the pair was ever revealed.
	Exists(ctx context.Context, requesterID, targetID id.UserID) (bool, error)

	// ListByRequester returns the newest events first, at most limit.
	ListByRequester(ctx context.Context, requesterID id.UserID, limit int) ([]*models.DisclosureEvent, error)

	// RevealedAmong returns the subset of targets already revealed to the requester.
	RevealedAmong(ctx context.Context, requesterID id.UserID, targetIDs []id.UserID) (map[id.UserID]bool, error)
}

// PlanCatalog maps a subscription tier to its default credit allotment.
type PlanCatalog interface {
	// AllotmentForTier accepts "" for requesters without a subscription.
	AllotmentForTier(tier string) int
}

// ContactDirectory holds the contact projection of worker profiles.
type ContactDirectory interface {
	// ContactFor returns sentinel.ErrNotFound for unknown targets.
	ContactFor(ctx context.Context, targetID id.UserID) (*models.ContactRecord, error)

	// Upsert stores or replaces a worker's contact record.
	Upsert(ctx context.Context, targetID id.UserID, record models.ContactRecord) error
}

// TxRunner scopes the credit deduction and the event append to one boundary.
// Implementations serialize calls for the same requester.
type TxRunner interface {
	RunInTx(ctx context.Context, requesterID id.UserID, fn func(ctx context.Context) error) error
}

// EventPublisher forwards committed disclosures to downstream consumers.
// It is invoked inside the transaction, so implementations must write through
// the context's transaction (outbox) rather than to a broker directly.
type EventPublisher interface {
	Publish(ctx context.Context, event *models.DisclosureEvent) error
}
