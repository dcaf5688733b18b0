package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"skilloncall/internal/disclosure/masking"
	"skilloncall/internal/disclosure/models"
	"skilloncall/internal/disclosure/observability"
	id "skilloncall/pkg/domain"
	dErrors "skilloncall/pkg/domain-errors"
	"skilloncall/pkg/platform/sentinel"
)

// windowUsage is the requester's disclosure count in each limit window.
type windowUsage struct {
	daily   int
	monthly int
}

// Evaluate decides whether requester may reveal target. Apart from creating
// the requester's seeded credit account on first sight it has no side effects.
// Policy denials are returned as a Decision, never as an error.
func (s *Service) Evaluate(ctx context.Context, requester models.Requester, targetID id.UserID) (decision models.Decision, err error) {
	ctx, span := s.startSpan(ctx, "disclosure.Evaluate", requester.ID)
	defer func() {
		span.SetAttributes(attribute.String("disclosure.reason", decision.Reason.String()))
		endSpan(span, err)
	}()

	if err := validatePair(requester.ID, targetID); err != nil {
		return models.Decision{}, err
	}

	decision, err = s.evaluate(ctx, requester, targetID, s.clock())
	if err != nil {
		return models.Decision{}, s.transient(ctx, "evaluate", err)
	}
	s.recordDecision(decision)
	return decision, nil
}

// evaluate applies the rules in order: already revealed, daily cap, monthly
// cap, credit balance.
func (s *Service) evaluate(ctx context.Context, requester models.Requester, targetID id.UserID, now time.Time) (models.Decision, error) {
	revealed, err := s.events.Exists(ctx, requester.ID, targetID)
	if err != nil {
		return models.Decision{}, fmt.Errorf("check prior disclosure: %w", err)
	}
	if revealed {
		return s.revealedDecision(ctx, requester.ID), nil
	}

	account, err := s.ensureAccount(ctx, requester, now)
	if err != nil {
		return models.Decision{}, err
	}

	usage, err := s.usage(ctx, requester.ID, now, true)
	if err != nil {
		return models.Decision{}, err
	}
	return decide(account, usage), nil
}

// ensureAccount loads the requester's account, creating the seeded one if missing.
func (s *Service) ensureAccount(ctx context.Context, requester models.Requester, now time.Time) (*models.CreditAccount, error) {
	account, err := s.ledger.Load(ctx, requester.ID)
	if err == nil {
		return account, nil
	}
	if !errors.Is(err, sentinel.ErrNotFound) {
		return nil, fmt.Errorf("load credit account: %w", err)
	}

	seed, err := s.seedAccount(requester, now)
	if err != nil {
		return nil, err
	}
	account, err = s.ledger.CreateWithDefaults(ctx, seed)
	if err != nil {
		return nil, fmt.Errorf("create credit account: %w", err)
	}
	if s.logger != nil {
		s.logger.InfoContext(ctx, "credit account created",
			"requester_id", requester.ID,
			"tier", requester.Tier,
			"credits_available", account.CreditsAvailable,
		)
	}
	return account, nil
}

// usage counts events in the daily and monthly windows. Counts run
// concurrently unless the caller holds a transaction, whose connection
// cannot be shared between goroutines.
func (s *Service) usage(ctx context.Context, requesterID id.UserID, now time.Time, parallel bool) (windowUsage, error) {
	daily := models.DailyWindowAt(now)
	monthly := models.MonthlyWindowAt(now)

	var usage windowUsage
	if !parallel {
		var err error
		if usage.daily, err = s.events.CountInWindow(ctx, requesterID, daily.From, daily.To); err != nil {
			return windowUsage{}, fmt.Errorf("count daily disclosures: %w", err)
		}
		if usage.monthly, err = s.events.CountInWindow(ctx, requesterID, monthly.From, monthly.To); err != nil {
			return windowUsage{}, fmt.Errorf("count monthly disclosures: %w", err)
		}
		return usage, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		count, err := s.events.CountInWindow(gctx, requesterID, daily.From, daily.To)
		if err != nil {
			return fmt.Errorf("count daily disclosures: %w", err)
		}
		usage.daily = count
		return nil
	})
	g.Go(func() error {
		count, err := s.events.CountInWindow(gctx, requesterID, monthly.From, monthly.To)
		if err != nil {
			return fmt.Errorf("count monthly disclosures: %w", err)
		}
		usage.monthly = count
		return nil
	})
	if err := g.Wait(); err != nil {
		return windowUsage{}, err
	}
	return usage, nil
}

// decide applies the limit and balance rules to a requester who has not
// revealed the target yet.
func decide(account *models.CreditAccount, usage windowUsage) models.Decision {
	if usage.daily >= account.DailyLimit {
		return models.Decision{
			Reason:           models.ReasonDailyLimitReached,
			Message:          fmt.Sprintf("Daily contact reveal limit reached (%d of %d). Try again later.", usage.daily, account.DailyLimit),
			CreditsAvailable: account.CreditsAvailable,
			Limit:            account.DailyLimit,
			Used:             usage.daily,
		}
	}
	if usage.monthly >= account.MonthlyLimit {
		return models.Decision{
			Reason:           models.ReasonMonthlyLimitReached,
			Message:          fmt.Sprintf("Monthly contact reveal limit reached (%d of %d).", usage.monthly, account.MonthlyLimit),
			CreditsAvailable: account.CreditsAvailable,
			Limit:            account.MonthlyLimit,
			Used:             usage.monthly,
		}
	}
	if !account.HasCredits(models.CreditsPerDisclosure) {
		return insufficientCredits(account.CreditsAvailable)
	}
	return models.Decision{
		Allowed:          true,
		Reason:           models.ReasonAllowed,
		Message:          fmt.Sprintf("Revealing this contact uses %d credit.", models.CreditsPerDisclosure),
		CreditsAvailable: account.CreditsAvailable,
	}
}

// revealedDecision allows a pair that was revealed before without touching
// the ledger's state. The balance is informational here: a failed load
// reports zero instead of failing the decision.
func (s *Service) revealedDecision(ctx context.Context, requesterID id.UserID) models.Decision {
	account, err := s.ledger.Load(ctx, requesterID)
	if err != nil {
		if !errors.Is(err, sentinel.ErrNotFound) && s.logger != nil {
			s.logger.WarnContext(ctx, "credit balance unavailable for revealed contact",
				"requester_id", requesterID,
				"error", err,
			)
		}
		return alreadyRevealed(0)
	}
	return alreadyRevealed(account.CreditsAvailable)
}

func alreadyRevealed(credits int) models.Decision {
	return models.Decision{
		Allowed:          true,
		Reason:           models.ReasonAlreadyRevealed,
		Message:          "Contact already revealed.",
		CreditsAvailable: credits,
	}
}

func insufficientCredits(credits int) models.Decision {
	return models.Decision{
		Reason:           models.ReasonInsufficientCredits,
		Message:          fmt.Sprintf("Not enough credits to reveal this contact (%d available). Upgrade your plan for more credits.", credits),
		CreditsAvailable: credits,
	}
}

// View renders target's contact for requester without spending credits:
// unmasked when the pair was revealed before, masked otherwise.
func (s *Service) View(ctx context.Context, requester models.Requester, targetID id.UserID) (*models.ContactView, error) {
	decision, err := s.Evaluate(ctx, requester, targetID)
	if err != nil {
		return nil, err
	}
	contact, err := s.contactFor(ctx, targetID)
	if err != nil {
		return nil, err
	}

	revealed := decision.Reason == models.ReasonAlreadyRevealed
	view := &models.ContactView{
		ContactPayload: models.ContactPayload{
			TargetID:         targetID,
			Contact:          *contact,
			Masked:           !revealed,
			Reason:           decision.Reason,
			CreditsRemaining: decision.CreditsAvailable,
		},
		Decision: decision,
	}
	if !revealed {
		view.Contact = masking.Contact(*contact)
	}
	return view, nil
}

// RevealedTargets reports which of targetIDs the requester already revealed.
func (s *Service) RevealedTargets(ctx context.Context, requesterID id.UserID, targetIDs []id.UserID) (map[id.UserID]bool, error) {
	if requesterID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "requester is required")
	}
	if len(targetIDs) == 0 {
		return map[id.UserID]bool{}, nil
	}
	revealed, err := s.events.RevealedAmong(ctx, requesterID, targetIDs)
	if err != nil {
		return nil, s.transient(ctx, "revealed_targets", err)
	}
	return revealed, nil
}

// CreditsSummary aggregates the requester's balance and window usage. It never
// writes: a requester without an account sees the defaults of their tier.
func (s *Service) CreditsSummary(ctx context.Context, requester models.Requester) (*models.Summary, error) {
	if requester.ID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "requester is required")
	}
	now := s.clock()

	account, err := s.ledger.Load(ctx, requester.ID)
	if errors.Is(err, sentinel.ErrNotFound) {
		account, err = s.seedAccount(requester, now)
		if err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, s.transient(ctx, "credits_summary", err)
	}

	usage, err := s.usage(ctx, requester.ID, now, true)
	if err != nil {
		return nil, s.transient(ctx, "credits_summary", err)
	}
	summary := models.NewSummary(account, usage.daily, usage.monthly, now)
	return &summary, nil
}

func (s *Service) contactFor(ctx context.Context, targetID id.UserID) (*models.ContactRecord, error) {
	contact, err := s.contacts.ContactFor(ctx, targetID)
	if errors.Is(err, sentinel.ErrNotFound) {
		return nil, dErrors.New(dErrors.CodeNotFound, "worker contact not found")
	}
	if err != nil {
		return nil, s.transient(ctx, "contact_lookup", err)
	}
	return contact, nil
}

func (s *Service) recordDecision(decision models.Decision) {
	if s.metrics != nil {
		s.metrics.IncDecision(decision.Reason.String())
	}
}

// transient logs an infrastructure failure and wraps it as retryable.
func (s *Service) transient(ctx context.Context, op string, err error) error {
	if s.metrics != nil {
		s.metrics.IncTransientFailures()
	}
	if s.logger != nil {
		s.logger.ErrorContext(ctx, "disclosure storage failure", "operation", op, "error", err)
	}
	observability.LogAudit(ctx, s.logger, observability.EventDisclosureFailed,
		"operation", op,
		"reason", models.ReasonTransientFailure.String(),
	)
	return models.NewTransientError(err)
}
