package outbox

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type recordingProducer struct {
	mu       sync.Mutex
	sent     []Entry
	failNext map[uuid.UUID]bool
}

func (p *recordingProducer) Produce(_ context.Context, entries []Entry) ([]uuid.UUID, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	var delivered []uuid.UUID
	var err error
	for _, entry := range entries {
		if p.failNext[entry.ID] {
			delete(p.failNext, entry.ID)
			err = errors.New("broker unavailable")
			continue
		}
		p.sent = append(p.sent, entry)
		delivered = append(delivered, entry.ID)
	}
	return delivered, err
}

type RelaySuite struct {
	suite.Suite
	store    *InMemoryStore
	producer *recordingProducer
	relay    *Relay
}

func TestRelaySuite(t *testing.T) {
	suite.Run(t, new(RelaySuite))
}

func (s *RelaySuite) SetupTest() {
	s.store = NewInMemory()
	s.producer = &recordingProducer{failNext: map[uuid.UUID]bool{}}
	relay, err := NewRelay(s.store, s.producer, WithBatchSize(2), WithPollInterval(5*time.Millisecond))
	s.Require().NoError(err)
	s.relay = relay
}

func (s *RelaySuite) enqueue(n int) []uuid.UUID {
	ids := make([]uuid.UUID, n)
	for i := range n {
		ids[i] = uuid.New()
		s.Require().NoError(s.store.Enqueue(context.Background(), Entry{
			ID:          ids[i],
			AggregateID: "requester",
			EventType:   "contact.disclosed",
			Payload:     []byte(`{}`),
		}))
	}
	return ids
}

func (s *RelaySuite) TestNewRelay_RequiresCollaborators() {
	_, err := NewRelay(nil, s.producer)
	s.Error(err)
	_, err = NewRelay(s.store, nil)
	s.Error(err)
}

func (s *RelaySuite) TestDrain() {
	s.Run("delivers oldest entries in batches", func() {
		ids := s.enqueue(3)

		sent, err := s.relay.Drain(context.Background())
		s.Require().NoError(err)
		s.Equal(2, sent)
		s.Equal(ids[0], s.producer.sent[0].ID)
		s.Equal(ids[1], s.producer.sent[1].ID)

		sent, err = s.relay.Drain(context.Background())
		s.Require().NoError(err)
		s.Equal(1, sent)
		s.Empty(s.store.Pending())
	})

	s.Run("empty outbox sends nothing", func() {
		sent, err := s.relay.Drain(context.Background())
		s.Require().NoError(err)
		s.Zero(sent)
	})
}

func (s *RelaySuite) TestDrain_FailedEntriesStayPending() {
	ids := s.enqueue(2)
	s.producer.failNext[ids[1]] = true

	sent, err := s.relay.Drain(context.Background())
	s.Error(err)
	s.Equal(1, sent)
	s.Require().Len(s.store.Pending(), 1)
	s.Equal(ids[1], s.store.Pending()[0].ID)

	sent, err = s.relay.Drain(context.Background())
	s.Require().NoError(err)
	s.Equal(1, sent)
	s.Empty(s.store.Pending())
}

func (s *RelaySuite) TestDrain_DropsDeliveredEntries() {
	ids := s.enqueue(4)
	s.producer.failNext[ids[0]] = true

	_, err := s.relay.Drain(context.Background())
	s.Error(err)

	s.Equal([]uuid.UUID{ids[0], ids[2], ids[3]}, entryIDs(s.store.entries), "delivered entry is released")

	for range 3 {
		_, err = s.relay.Drain(context.Background())
		s.Require().NoError(err)
	}
	s.Empty(s.store.entries)
}

func entryIDs(entries []Entry) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(entries))
	for _, entry := range entries {
		ids = append(ids, entry.ID)
	}
	return ids
}

func (s *RelaySuite) TestRun_StopsOnCancel() {
	s.enqueue(5)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- s.relay.Run(ctx) }()

	s.Eventually(func() bool { return len(s.store.Pending()) == 0 }, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case err := <-done:
		s.ErrorIs(err, context.Canceled)
	case <-time.After(time.Second):
		s.Fail("relay did not stop")
	}
}
