package outbox

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
)

// InMemoryStore keeps undelivered entries in a slice, oldest first. Delivered
// entries are dropped. Used when no database is configured.
type InMemoryStore struct {
	mu      sync.Mutex
	entries []Entry
}

func NewInMemory() *InMemoryStore {
	return &InMemoryStore{}
}

func (s *InMemoryStore) Enqueue(_ context.Context, entry Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	s.entries = append(s.entries, entry)
	return nil
}

// ProcessBatch holds the store lock while delivering, which serializes relays.
func (s *InMemoryStore) ProcessBatch(ctx context.Context, limit int, _ time.Time, deliver func(ctx context.Context, entries []Entry) ([]uuid.UUID, error)) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.entries) == 0 || limit <= 0 {
		return 0, nil
	}
	batch := slices.Clone(s.entries[:min(limit, len(s.entries))])

	delivered, err := deliver(ctx, batch)
	if len(delivered) > 0 {
		sent := make(map[uuid.UUID]struct{}, len(delivered))
		for _, entryID := range delivered {
			sent[entryID] = struct{}{}
		}
		s.entries = slices.DeleteFunc(s.entries, func(entry Entry) bool {
			_, ok := sent[entry.ID]
			return ok
		})
	}
	return len(delivered), err
}

// Pending returns the entries not yet delivered.
func (s *InMemoryStore) Pending() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.entries)
}
