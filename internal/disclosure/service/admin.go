package service

import (
	"context"
	"errors"
	"fmt"

	"skilloncall/internal/disclosure/models"
	"skilloncall/internal/disclosure/observability"
	id "skilloncall/pkg/domain"
	dErrors "skilloncall/pkg/domain-errors"
	"skilloncall/pkg/platform/sentinel"
)

// GrantCredits tops up the requester's balance, e.g. after a plan purchase,
// and moves the grant expiry one TTL past now.
func (s *Service) GrantCredits(ctx context.Context, requester models.Requester, amount int) (*models.CreditAccount, error) {
	if requester.ID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "requester is required")
	}
	if amount <= 0 {
		return nil, dErrors.New(dErrors.CodeBadRequest, "amount must be positive")
	}
	if amount > models.MaxCreditBalance {
		return nil, dErrors.New(dErrors.CodeValidation, fmt.Sprintf("amount cannot exceed %d", models.MaxCreditBalance))
	}
	now := s.clock()

	if _, err := s.ensureAccount(ctx, requester, now); err != nil {
		return nil, s.transient(ctx, "grant_credits", err)
	}
	account, err := s.ledger.Grant(ctx, requester.ID, amount, now.Add(s.config.GrantTTL), now)
	if errors.Is(err, sentinel.ErrOutOfRange) {
		return nil, dErrors.New(dErrors.CodeValidation,
			fmt.Sprintf("grant would raise the balance above %d credits", models.MaxCreditBalance))
	}
	if err != nil {
		return nil, s.transient(ctx, "grant_credits", fmt.Errorf("grant credits: %w", err))
	}

	if s.metrics != nil {
		s.metrics.AddCreditsGranted(amount)
	}
	observability.LogAudit(ctx, s.logger, observability.EventCreditsGranted,
		"requester_id", requester.ID.String(),
		"amount", amount,
		"credits_available", account.CreditsAvailable,
		"expires_at", account.ExpiresAt,
	)
	return account, nil
}

// UpdateLimits overrides the requester's daily and monthly reveal caps.
func (s *Service) UpdateLimits(ctx context.Context, requester models.Requester, daily, monthly int) (*models.CreditAccount, error) {
	if requester.ID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "requester is required")
	}
	if daily < 0 || monthly < 0 {
		return nil, dErrors.New(dErrors.CodeBadRequest, "limits cannot be negative")
	}
	now := s.clock()

	if _, err := s.ensureAccount(ctx, requester, now); err != nil {
		return nil, s.transient(ctx, "update_limits", err)
	}
	account, err := s.ledger.UpdateLimits(ctx, requester.ID, daily, monthly, now)
	if err != nil {
		return nil, s.transient(ctx, "update_limits", fmt.Errorf("update limits: %w", err))
	}

	observability.LogAudit(ctx, s.logger, observability.EventLimitsUpdated,
		"requester_id", requester.ID.String(),
		"daily_limit", daily,
		"monthly_limit", monthly,
	)
	return account, nil
}

// History lists the requester's disclosures, newest first. A non-positive
// limit selects the default page size; larger limits are capped.
func (s *Service) History(ctx context.Context, requesterID id.UserID, limit int) ([]*models.DisclosureEvent, error) {
	if requesterID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "requester is required")
	}
	switch {
	case limit <= 0:
		limit = defaultHistoryLimit
	case limit > maxHistoryLimit:
		limit = maxHistoryLimit
	}

	events, err := s.events.ListByRequester(ctx, requesterID, limit)
	if err != nil {
		return nil, s.transient(ctx, "history", err)
	}
	return events, nil
}

// SyncContact stores the contact projection of a worker profile. Disclosure
// history is untouched: a pair revealed before the sync stays revealed.
func (s *Service) SyncContact(ctx context.Context, workerID id.UserID, record models.ContactRecord) error {
	if workerID.IsNil() {
		return dErrors.New(dErrors.CodeInvalidInput, "worker is required")
	}
	if err := s.contacts.Upsert(ctx, workerID, record); err != nil {
		return s.transient(ctx, "sync_contact", fmt.Errorf("upsert contact: %w", err))
	}
	observability.LogAudit(ctx, s.logger, observability.EventContactSynced,
		"worker_id", workerID.String(),
	)
	return nil
}
