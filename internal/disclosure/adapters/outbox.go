// Package adapters connects the disclosure service to delivery channels
// outside its own tables.
package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"skilloncall/internal/disclosure/models"
	"skilloncall/pkg/platform/outbox"
)

// EventTypeContactDisclosed is the outbox event type of a new disclosure.
const EventTypeContactDisclosed = "contact.disclosed"

// Enqueuer writes an outbox entry through the context's transaction.
type Enqueuer interface {
	Enqueue(ctx context.Context, entry outbox.Entry) error
}

// OutboxPublisher turns committed disclosures into outbox entries. It runs
// inside the disclosure transaction, so an entry exists exactly when the
// event does.
type OutboxPublisher struct {
	outbox Enqueuer
}

func NewOutboxPublisher(outbox Enqueuer) *OutboxPublisher {
	return &OutboxPublisher{outbox: outbox}
}

// disclosedPayload is the message body consumers receive. Contact details are
// never part of it.
type disclosedPayload struct {
	ID          string `json:"id"`
	RequesterID string `json:"requester_id"`
	TargetID    string `json:"target_id"`
	OccurredAt  string `json:"occurred_at"`
	CreditsUsed int    `json:"credits_used"`
}

func (p *OutboxPublisher) Publish(ctx context.Context, event *models.DisclosureEvent) error {
	payload, err := json.Marshal(disclosedPayload{
		ID:          event.ID.String(),
		RequesterID: event.RequesterID.String(),
		TargetID:    event.TargetID.String(),
		OccurredAt:  event.OccurredAt.UTC().Format(time.RFC3339Nano),
		CreditsUsed: event.CreditsUsed,
	})
	if err != nil {
		return fmt.Errorf("marshal disclosure payload: %w", err)
	}

	return p.outbox.Enqueue(ctx, outbox.Entry{
		AggregateType: "requester",
		AggregateID:   event.RequesterID.String(),
		EventType:     EventTypeContactDisclosed,
		Payload:       payload,
		CreatedAt:     event.OccurredAt,
	})
}
