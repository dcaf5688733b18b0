package ledger

import (
	"context"
	"sync"
	"time"

	"skilloncall/internal/disclosure/models"
	id "skilloncall/pkg/domain"
	"skilloncall/pkg/platform/sentinel"
)

// InMemoryStore implements the credit ledger with a mutex-guarded map.
// Every mutation happens under the write lock, so TryDeduct is a single
// conditional update and never a read-then-write across calls.
type InMemoryStore struct {
	mu       sync.RWMutex
	accounts map[id.UserID]*models.CreditAccount
}

// NewInMemory creates an empty in-memory ledger.
func NewInMemory() *InMemoryStore {
	return &InMemoryStore{
		accounts: make(map[id.UserID]*models.CreditAccount),
	}
}

func (s *InMemoryStore) Load(_ context.Context, requesterID id.UserID) (*models.CreditAccount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	account, ok := s.accounts[requesterID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	copied := *account
	return &copied, nil
}

func (s *InMemoryStore) CreateWithDefaults(_ context.Context, seed *models.CreditAccount) (*models.CreditAccount, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.accounts[seed.RequesterID]; ok {
		copied := *existing
		return &copied, nil
	}
	stored := *seed
	s.accounts[seed.RequesterID] = &stored
	copied := stored
	return &copied, nil
}

func (s *InMemoryStore) TryDeduct(_ context.Context, requesterID id.UserID, amount int, now time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, ok := s.accounts[requesterID]
	if !ok {
		return false, sentinel.ErrNotFound
	}
	if !account.HasCredits(amount) {
		return false, nil
	}
	account.CreditsAvailable -= amount
	account.CreditsUsed += amount
	account.UpdatedAt = now
	return true, nil
}

func (s *InMemoryStore) Refund(_ context.Context, requesterID id.UserID, amount int, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, ok := s.accounts[requesterID]
	if !ok {
		return sentinel.ErrNotFound
	}
	account.CreditsAvailable += amount
	account.CreditsUsed = max(0, account.CreditsUsed-amount)
	account.UpdatedAt = now
	return nil
}

func (s *InMemoryStore) Grant(_ context.Context, requesterID id.UserID, amount int, expiresAt, now time.Time) (*models.CreditAccount, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, ok := s.accounts[requesterID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	if amount > models.MaxCreditBalance-account.CreditsAvailable {
		return nil, sentinel.ErrOutOfRange
	}
	account.CreditsAvailable += amount
	account.ExpiresAt = expiresAt
	account.LastResetAt = now
	account.UpdatedAt = now
	copied := *account
	return &copied, nil
}

func (s *InMemoryStore) UpdateLimits(_ context.Context, requesterID id.UserID, daily, monthly int, now time.Time) (*models.CreditAccount, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, ok := s.accounts[requesterID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	account.DailyLimit = daily
	account.MonthlyLimit = monthly
	account.UpdatedAt = now
	copied := *account
	return &copied, nil
}
