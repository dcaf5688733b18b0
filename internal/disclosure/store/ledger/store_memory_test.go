package ledger

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"skilloncall/internal/disclosure/models"
	id "skilloncall/pkg/domain"
	"skilloncall/pkg/platform/sentinel"
)

type InMemoryStoreSuite struct {
	suite.Suite
	store *InMemoryStore
	now   time.Time
}

func TestInMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(InMemoryStoreSuite))
}

func (s *InMemoryStoreSuite) SetupTest() {
	s.store = NewInMemory()
	s.now = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
}

func (s *InMemoryStoreSuite) seed(credits int) id.UserID {
	requester := id.UserID(uuid.New())
	account, err := models.NewCreditAccount(requester, credits, 10, 100, s.now, 30*24*time.Hour)
	s.Require().NoError(err)
	_, err = s.store.CreateWithDefaults(context.Background(), account)
	s.Require().NoError(err)
	return requester
}

func (s *InMemoryStoreSuite) TestLoad() {
	ctx := context.Background()

	s.Run("missing account returns not found", func() {
		_, err := s.store.Load(ctx, id.UserID(uuid.New()))
		s.ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("returned account is a copy", func() {
		requester := s.seed(5)
		account, err := s.store.Load(ctx, requester)
		s.Require().NoError(err)
		account.CreditsAvailable = 999

		again, err := s.store.Load(ctx, requester)
		s.Require().NoError(err)
		s.Equal(5, again.CreditsAvailable)
	})
}

func (s *InMemoryStoreSuite) TestCreateWithDefaults() {
	ctx := context.Background()

	s.Run("existing account is kept", func() {
		requester := s.seed(50)
		_, err := s.store.TryDeduct(ctx, requester, 1, s.now)
		s.Require().NoError(err)

		reseed, err := models.NewCreditAccount(requester, 500, 10, 100, s.now, time.Hour)
		s.Require().NoError(err)
		account, err := s.store.CreateWithDefaults(ctx, reseed)
		s.Require().NoError(err)
		s.Equal(49, account.CreditsAvailable)
	})
}

func (s *InMemoryStoreSuite) TestTryDeduct() {
	ctx := context.Background()

	s.Run("deducts and tracks lifetime usage", func() {
		requester := s.seed(2)
		ok, err := s.store.TryDeduct(ctx, requester, 1, s.now)
		s.Require().NoError(err)
		s.True(ok)

		account, _ := s.store.Load(ctx, requester)
		s.Equal(1, account.CreditsAvailable)
		s.Equal(1, account.CreditsUsed)
	})

	s.Run("insufficient balance leaves account untouched", func() {
		requester := s.seed(0)
		ok, err := s.store.TryDeduct(ctx, requester, 1, s.now)
		s.Require().NoError(err)
		s.False(ok)

		account, _ := s.store.Load(ctx, requester)
		s.Equal(0, account.CreditsAvailable)
		s.Equal(0, account.CreditsUsed)
	})

	s.Run("unknown requester returns not found", func() {
		_, err := s.store.TryDeduct(ctx, id.UserID(uuid.New()), 1, s.now)
		s.ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("concurrent deductions never overdraw", func() {
		requester := s.seed(10)
		const goroutines = 50

		var wg sync.WaitGroup
		var succeeded atomic.Int32
		for range goroutines {
			wg.Add(1)
			go func() {
				defer wg.Done()
				ok, err := s.store.TryDeduct(ctx, requester, 1, s.now)
				if err == nil && ok {
					succeeded.Add(1)
				}
			}()
		}
		wg.Wait()

		s.Equal(int32(10), succeeded.Load())
		account, _ := s.store.Load(ctx, requester)
		s.Equal(0, account.CreditsAvailable)
		s.Equal(10, account.CreditsUsed)
	})
}

func (s *InMemoryStoreSuite) TestRefund() {
	ctx := context.Background()
	requester := s.seed(1)

	ok, err := s.store.TryDeduct(ctx, requester, 1, s.now)
	s.Require().NoError(err)
	s.Require().True(ok)

	s.Require().NoError(s.store.Refund(ctx, requester, 1, s.now))
	account, _ := s.store.Load(ctx, requester)
	s.Equal(1, account.CreditsAvailable)
	s.Equal(0, account.CreditsUsed)
}

func (s *InMemoryStoreSuite) TestGrantAndUpdateLimits() {
	ctx := context.Background()
	requester := s.seed(3)
	later := s.now.Add(48 * time.Hour)
	expires := later.Add(30 * 24 * time.Hour)

	account, err := s.store.Grant(ctx, requester, 20, expires, later)
	s.Require().NoError(err)
	s.Equal(23, account.CreditsAvailable)
	s.Equal(expires, account.ExpiresAt)
	s.Equal(later, account.LastResetAt)

	account, err = s.store.UpdateLimits(ctx, requester, 3, 30, later)
	s.Require().NoError(err)
	s.Equal(3, account.DailyLimit)
	s.Equal(30, account.MonthlyLimit)

	_, err = s.store.Grant(ctx, id.UserID(uuid.New()), 1, expires, later)
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *InMemoryStoreSuite) TestGrant_RejectsBalanceOverflow() {
	ctx := context.Background()
	requester := s.seed(3)

	account, err := s.store.Grant(ctx, requester, models.MaxCreditBalance-3, s.now, s.now)
	s.Require().NoError(err)
	s.Equal(models.MaxCreditBalance, account.CreditsAvailable)

	_, err = s.store.Grant(ctx, requester, 1, s.now, s.now)
	s.ErrorIs(err, sentinel.ErrOutOfRange)

	account, err = s.store.Load(ctx, requester)
	s.Require().NoError(err)
	s.Equal(models.MaxCreditBalance, account.CreditsAvailable, "failed grant leaves the balance untouched")
}
