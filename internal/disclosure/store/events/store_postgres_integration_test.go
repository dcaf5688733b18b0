//go:build integration

package events_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"skilloncall/internal/disclosure/models"
	"skilloncall/internal/disclosure/store/events"
	id "skilloncall/pkg/domain"
	"skilloncall/pkg/platform/sentinel"
	"skilloncall/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *events.PostgresStore
	now      time.Time
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	mgr := containers.GetManager()
	s.postgres = mgr.GetPostgres(s.T())
	s.store = events.NewPostgres(s.postgres.DB)
	s.now = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
}

func (s *PostgresStoreSuite) SetupTest() {
	err := s.postgres.TruncateTables(context.Background(), "disclosure_events")
	s.Require().NoError(err)
}

func (s *PostgresStoreSuite) appendAt(requesterID, targetID id.UserID, at time.Time) *models.DisclosureEvent {
	event, err := models.NewDisclosureEvent(requesterID, targetID, 1, at)
	s.Require().NoError(err)
	s.Require().NoError(s.store.Append(context.Background(), event))
	return event
}

func (s *PostgresStoreSuite) TestAppendRejectsDuplicatePair() {
	ctx := context.Background()
	requesterID, targetID := id.UserID(uuid.New()), id.UserID(uuid.New())
	s.appendAt(requesterID, targetID, s.now)

	duplicate, err := models.NewDisclosureEvent(requesterID, targetID, 1, s.now.Add(time.Minute))
	s.Require().NoError(err)
	s.ErrorIs(s.store.Append(ctx, duplicate), sentinel.ErrConflict)

	exists, err := s.store.Exists(ctx, requesterID, targetID)
	s.Require().NoError(err)
	s.True(exists)

	exists, err = s.store.Exists(ctx, targetID, requesterID)
	s.Require().NoError(err)
	s.False(exists, "pairs are directional")
}

func (s *PostgresStoreSuite) TestCountInWindowIsInclusive() {
	ctx := context.Background()
	requesterID := id.UserID(uuid.New())
	from := s.now.Add(-time.Hour)
	s.appendAt(requesterID, id.UserID(uuid.New()), from)
	s.appendAt(requesterID, id.UserID(uuid.New()), s.now)
	s.appendAt(requesterID, id.UserID(uuid.New()), from.Add(-time.Second))
	s.appendAt(id.UserID(uuid.New()), id.UserID(uuid.New()), s.now)

	count, err := s.store.CountInWindow(ctx, requesterID, from, s.now)
	s.Require().NoError(err)
	s.Equal(2, count)
}

func (s *PostgresStoreSuite) TestListByRequesterNewestFirst() {
	ctx := context.Background()
	requesterID := id.UserID(uuid.New())
	for i := range 5 {
		s.appendAt(requesterID, id.UserID(uuid.New()), s.now.Add(time.Duration(i)*time.Minute))
	}

	listed, err := s.store.ListByRequester(ctx, requesterID, 3)
	s.Require().NoError(err)
	s.Require().Len(listed, 3)
	s.True(listed[0].OccurredAt.Equal(s.now.Add(4 * time.Minute)))
	s.True(listed[2].OccurredAt.Equal(s.now.Add(2 * time.Minute)))
}

func (s *PostgresStoreSuite) TestRevealedAmong() {
	ctx := context.Background()
	requesterID := id.UserID(uuid.New())
	revealed := id.UserID(uuid.New())
	hidden := id.UserID(uuid.New())
	s.appendAt(requesterID, revealed, s.now)

	result, err := s.store.RevealedAmong(ctx, requesterID, []id.UserID{revealed, hidden})
	s.Require().NoError(err)
	s.True(result[revealed])
	s.False(result[hidden])
}
