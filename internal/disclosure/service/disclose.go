package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"skilloncall/internal/disclosure/models"
	"skilloncall/internal/disclosure/observability"
	id "skilloncall/pkg/domain"
	"skilloncall/pkg/platform/sentinel"
	txcontext "skilloncall/pkg/platform/tx"
)

// Disclose reveals target's unmasked contact to requester. A new reveal costs
// one credit and appends one event within a single transaction; a repeated
// reveal of the same pair is free and writes nothing.
func (s *Service) Disclose(ctx context.Context, requester models.Requester, targetID id.UserID) (payload *models.ContactPayload, err error) {
	start := time.Now()
	ctx, span := s.startSpan(ctx, "disclosure.Disclose", requester.ID)
	defer func() {
		if payload != nil {
			span.SetAttributes(attribute.String("disclosure.reason", payload.Reason.String()))
		}
		endSpan(span, err)
		if s.metrics != nil {
			s.metrics.ObserveDisclose(time.Since(start))
		}
	}()

	if err := validatePair(requester.ID, targetID); err != nil {
		return nil, err
	}
	now := s.clock()

	decision, err := s.evaluate(ctx, requester, targetID, now)
	if err != nil {
		return nil, s.transient(ctx, "disclose", err)
	}
	s.recordDecision(decision)
	if !decision.Allowed {
		s.logDenied(ctx, requester.ID, targetID, decision)
		return nil, decision.Err()
	}

	contact, err := s.contactFor(ctx, targetID)
	if err != nil {
		return nil, err
	}

	reason, remaining := decision.Reason, decision.CreditsAvailable
	if reason != models.ReasonAlreadyRevealed {
		reason, remaining, err = s.commit(ctx, requester.ID, targetID, now)
		if err != nil {
			return nil, err
		}
	}

	alreadyRevealed := reason == models.ReasonAlreadyRevealed
	if s.metrics != nil {
		s.metrics.IncDisclosure(alreadyRevealed)
		if !alreadyRevealed {
			s.metrics.AddCreditsDeducted(models.CreditsPerDisclosure)
		}
	}
	if !alreadyRevealed {
		observability.LogAudit(ctx, s.logger, observability.EventContactDisclosed,
			"requester_id", requester.ID.String(),
			"target_id", targetID.String(),
			"credits_used", models.CreditsPerDisclosure,
			"credits_remaining", remaining,
			"contact_digest", observability.ContactDigest(*contact),
		)
	}

	return &models.ContactPayload{
		TargetID:         targetID,
		Contact:          *contact,
		Masked:           false,
		Reason:           reason,
		CreditsRemaining: remaining,
	}, nil
}

// commit deducts the credit and appends the event inside one transaction. The
// rules are checked again under the transaction because a concurrent reveal by
// the same requester may have consumed the last credit or slot since evaluate.
func (s *Service) commit(ctx context.Context, requesterID, targetID id.UserID, now time.Time) (models.Reason, int, error) {
	reason := models.ReasonAllowed
	remaining := 0

	err := s.tx.RunInTx(ctx, requesterID, func(ctx context.Context) error {
		revealed, err := s.events.Exists(ctx, requesterID, targetID)
		if err != nil {
			return fmt.Errorf("check prior disclosure: %w", err)
		}
		if revealed {
			reason, remaining = models.ReasonAlreadyRevealed, s.revealedDecision(ctx, requesterID).CreditsAvailable
			return nil
		}
		account, err := s.ledger.Load(ctx, requesterID)
		if err != nil {
			return fmt.Errorf("load credit account: %w", err)
		}

		usage, err := s.usage(ctx, requesterID, now, false)
		if err != nil {
			return err
		}
		if decision := decide(account, usage); !decision.Allowed {
			return decision.Err()
		}

		deducted, err := s.ledger.TryDeduct(ctx, requesterID, models.CreditsPerDisclosure, now)
		if err != nil {
			return fmt.Errorf("deduct credit: %w", err)
		}
		if !deducted {
			return insufficientCredits(0).Err()
		}

		event, err := models.NewDisclosureEvent(requesterID, targetID, models.CreditsPerDisclosure, now)
		if err != nil {
			s.refund(ctx, requesterID, now)
			return err
		}
		if err := s.events.Append(ctx, event); err != nil {
			if errors.Is(err, sentinel.ErrConflict) {
				s.refund(ctx, requesterID, now)
				reason, remaining = models.ReasonAlreadyRevealed, account.CreditsAvailable
				return nil
			}
			// A failed statement aborts a SQL transaction; its rollback
			// restores the balance and a refund could not run anyway.
			if _, inTx := txcontext.From(ctx); !inTx {
				s.refund(ctx, requesterID, now)
			}
			return fmt.Errorf("append disclosure event: %w", err)
		}
		if s.publisher != nil {
			if err := s.publisher.Publish(ctx, event); err != nil {
				return fmt.Errorf("publish disclosure event: %w", err)
			}
		}

		remaining = account.CreditsAvailable - models.CreditsPerDisclosure
		return nil
	})
	if err != nil {
		var denial *models.DisclosureError
		if errors.As(err, &denial) && denial.Reason.IsDenial() {
			s.recordDecision(models.Decision{Reason: denial.Reason})
			s.logDenied(ctx, requesterID, targetID, models.Decision{Reason: denial.Reason, CreditsAvailable: denial.CreditsAvailable})
			return "", 0, err
		}
		return "", 0, s.transient(ctx, "disclose_commit", err)
	}
	return reason, remaining, nil
}

// refund compensates a deduction whose event could not be recorded. Inside a
// database transaction the rollback already restores the balance; for stores
// without rollback this is what keeps deduction and event paired.
func (s *Service) refund(ctx context.Context, requesterID id.UserID, now time.Time) {
	if err := s.ledger.Refund(ctx, requesterID, models.CreditsPerDisclosure, now); err != nil && s.logger != nil {
		s.logger.WarnContext(ctx, "credit refund failed", "requester_id", requesterID, "error", err)
	}
}

func (s *Service) logDenied(ctx context.Context, requesterID, targetID id.UserID, decision models.Decision) {
	observability.LogAudit(ctx, s.logger, observability.EventDisclosureDenied,
		"requester_id", requesterID.String(),
		"target_id", targetID.String(),
		"reason", decision.Reason.String(),
		"credits_available", decision.CreditsAvailable,
	)
}
