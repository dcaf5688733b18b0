package events

import (
	"context"
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
	store     *InMemoryStore
	requester id.UserID
	now       time.Time
}

func TestInMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(InMemoryStoreSuite))
}

func (s *InMemoryStoreSuite) SetupTest() {
	s.store = NewInMemory()
	s.requester = id.UserID(uuid.New())
	s.now = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
}

func (s *InMemoryStoreSuite) appendAt(target id.UserID, at time.Time) {
	event, err := models.NewDisclosureEvent(s.requester, target, 1, at)
	s.Require().NoError(err)
	s.Require().NoError(s.store.Append(context.Background(), event))
}

func (s *InMemoryStoreSuite) TestAppend() {
	ctx := context.Background()
	target := id.UserID(uuid.New())
	s.appendAt(target, s.now)

	s.Run("same pair is rejected", func() {
		dup, err := models.NewDisclosureEvent(s.requester, target, 1, s.now.Add(time.Minute))
		s.Require().NoError(err)
		s.ErrorIs(s.store.Append(ctx, dup), sentinel.ErrConflict)
	})

	s.Run("pair is reported as revealed", func() {
		exists, err := s.store.Exists(ctx, s.requester, target)
		s.Require().NoError(err)
		s.True(exists)
	})

	s.Run("other requester is not affected", func() {
		exists, err := s.store.Exists(ctx, id.UserID(uuid.New()), target)
		s.Require().NoError(err)
		s.False(exists)
	})
}

func (s *InMemoryStoreSuite) TestCountInWindow() {
	ctx := context.Background()
	s.appendAt(id.UserID(uuid.New()), s.now.Add(-25*time.Hour))
	s.appendAt(id.UserID(uuid.New()), s.now.Add(-24*time.Hour))
	s.appendAt(id.UserID(uuid.New()), s.now.Add(-time.Hour))
	s.appendAt(id.UserID(uuid.New()), s.now)

	daily := models.DailyWindowAt(s.now)
	count, err := s.store.CountInWindow(ctx, s.requester, daily.From, daily.To)
	s.Require().NoError(err)
	s.Equal(3, count, "bounds are inclusive")

	count, err = s.store.CountInWindow(ctx, id.UserID(uuid.New()), daily.From, daily.To)
	s.Require().NoError(err)
	s.Zero(count)
}

func (s *InMemoryStoreSuite) TestListByRequester() {
	ctx := context.Background()
	first := id.UserID(uuid.New())
	second := id.UserID(uuid.New())
	third := id.UserID(uuid.New())
	s.appendAt(first, s.now.Add(-2*time.Hour))
	s.appendAt(second, s.now.Add(-time.Hour))
	s.appendAt(third, s.now)

	events, err := s.store.ListByRequester(ctx, s.requester, 2)
	s.Require().NoError(err)
	s.Require().Len(events, 2)
	s.Equal(third, events[0].TargetID)
	s.Equal(second, events[1].TargetID)

	events, err = s.store.ListByRequester(ctx, s.requester, 0)
	s.Require().NoError(err)
	s.Empty(events)
}

func (s *InMemoryStoreSuite) TestRevealedAmong() {
	ctx := context.Background()
	revealed := id.UserID(uuid.New())
	hidden := id.UserID(uuid.New())
	s.appendAt(revealed, s.now)

	result, err := s.store.RevealedAmong(ctx, s.requester, []id.UserID{revealed, hidden})
	s.Require().NoError(err)
	s.True(result[revealed])
	s.False(result[hidden])
	s.Len(result, 1)
}
