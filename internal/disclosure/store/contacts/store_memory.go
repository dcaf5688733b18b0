package contacts

import (
	"context"
	"sync"

	"skilloncall/internal/disclosure/models"
	id "skilloncall/pkg/domain"
	"skilloncall/pkg/platform/sentinel"
)

// InMemoryStore serves worker contact records from a map. Used in tests and
// local development where no profile database is configured.
type InMemoryStore struct {
	mu       sync.RWMutex
	contacts map[id.UserID]models.ContactRecord
}

// NewInMemory creates an empty contact directory.
func NewInMemory() *InMemoryStore {
	return &InMemoryStore{contacts: make(map[id.UserID]models.ContactRecord)}
}

// Put is Upsert for seeding fixtures.
func (s *InMemoryStore) Put(targetID id.UserID, record models.ContactRecord) {
	_ = s.Upsert(context.Background(), targetID, record)
}

func (s *InMemoryStore) Upsert(_ context.Context, targetID id.UserID, record models.ContactRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.contacts[targetID] = cloneRecord(record)
	return nil
}

func (s *InMemoryStore) ContactFor(_ context.Context, targetID id.UserID) (*models.ContactRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.contacts[targetID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	copied := cloneRecord(record)
	return &copied, nil
}

func cloneRecord(record models.ContactRecord) models.ContactRecord {
	if record.AddressLine2 != nil {
		line2 := *record.AddressLine2
		record.AddressLine2 = &line2
	}
	return record
}
