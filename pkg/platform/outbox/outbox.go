// Package outbox implements the transactional outbox: entries are written in
// the same transaction as the state change they describe, and a relay
// delivers them to the message broker afterwards.
package outbox

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Entry is one pending message.
type Entry struct {
	ID            uuid.UUID
	AggregateType string
	AggregateID   string
	EventType     string
	Payload       []byte
	CreatedAt     time.Time
}

// Store persists entries and hands pending ones to the relay.
type Store interface {
	Enqueue(ctx context.Context, entry Entry) error

	// ProcessBatch passes up to limit pending entries, oldest first, to
	// deliver and marks those deliver reports as sent. Entries claimed by one
	// caller are invisible to concurrent callers until the batch finishes.
	ProcessBatch(ctx context.Context, limit int, now time.Time, deliver func(ctx context.Context, entries []Entry) ([]uuid.UUID, error)) (int, error)
}

// Producer sends entries to the broker. Keys keep one aggregate's entries ordered.
type Producer interface {
	Produce(ctx context.Context, entries []Entry) ([]uuid.UUID, error)
}
