package events

import (
	"context"
	"slices"
	"sync"
	"time"

	"skilloncall/internal/disclosure/models"
	id "skilloncall/pkg/domain"
	"skilloncall/pkg/platform/sentinel"
)

type pairKey struct {
	requester id.UserID
	target    id.UserID
}

// InMemoryStore is an append-only disclosure log. Events per requester are kept
// in insertion order, which is also occurred_at order for a monotonic clock.
type InMemoryStore struct {
	mu          sync.RWMutex
	byRequester map[id.UserID][]*models.DisclosureEvent
	revealed    map[pairKey]struct{}
}

// NewInMemory creates an empty in-memory disclosure log.
func NewInMemory() *InMemoryStore {
	return &InMemoryStore{
		byRequester: make(map[id.UserID][]*models.DisclosureEvent),
		revealed:    make(map[pairKey]struct{}),
	}
}

func (s *InMemoryStore) Append(_ context.Context, event *models.DisclosureEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := pairKey{requester: event.RequesterID, target: event.TargetID}
	if _, exists := s.revealed[key]; exists {
		return sentinel.ErrConflict
	}
	copied := *event
	s.revealed[key] = struct{}{}
	s.byRequester[event.RequesterID] = append(s.byRequester[event.RequesterID], &copied)
	return nil
}

func (s *InMemoryStore) CountInWindow(_ context.Context, requesterID id.UserID, from, to time.Time) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	window := models.Window{From: from, To: to}
	count := 0
	for _, event := range s.byRequester[requesterID] {
		if window.Contains(event.OccurredAt) {
			count++
		}
	}
	return count, nil
}

func (s *InMemoryStore) Exists(_ context.Context, requesterID, targetID id.UserID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, exists := s.revealed[pairKey{requester: requesterID, target: targetID}]
	return exists, nil
}

func (s *InMemoryStore) ListByRequester(_ context.Context, requesterID id.UserID, limit int) ([]*models.DisclosureEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored := s.byRequester[requesterID]
	result := make([]*models.DisclosureEvent, 0, min(len(stored), max(limit, 0)))
	for _, event := range slices.Backward(stored) {
		if len(result) >= limit {
			break
		}
		copied := *event
		result = append(result, &copied)
	}
	return result, nil
}

func (s *InMemoryStore) RevealedAmong(_ context.Context, requesterID id.UserID, targetIDs []id.UserID) (map[id.UserID]bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make(map[id.UserID]bool)
	for _, target := range targetIDs {
		if _, exists := s.revealed[pairKey{requester: requesterID, target: target}]; exists {
			result[target] = true
		}
	}
	return result, nil
}
