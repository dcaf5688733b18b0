//go:build integration

package kafka_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"github.com/twmb/franz-go/pkg/kgo"

	"skilloncall/internal/platform/kafka"
	"skilloncall/pkg/platform/outbox"
	"skilloncall/pkg/testutil/containers"
)

type ProducerSuite struct {
	suite.Suite
	redpanda *containers.RedpandaContainer
}

func TestProducerSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(ProducerSuite))
}

func (s *ProducerSuite) SetupSuite() {
	mgr := containers.GetManager()
	s.redpanda = mgr.GetRedpanda(s.T())
}

func (s *ProducerSuite) TestProduceDeliversKeyedRecords() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	cfg := kafka.Config{Brokers: []string{s.redpanda.Broker}, Topic: "disclosures-" + uuid.NewString()[:8]}

	client, err := kafka.NewClient(cfg)
	s.Require().NoError(err)
	defer client.Close()
	s.Require().NoError(kafka.EnsureTopic(ctx, client, cfg))
	s.Require().NoError(kafka.EnsureTopic(ctx, client, cfg), "existing topic is accepted")

	entries := []outbox.Entry{
		{ID: uuid.New(), AggregateID: "req-1", EventType: "contact.disclosed", Payload: []byte(`{"n":1}`), CreatedAt: time.Now()},
		{ID: uuid.New(), AggregateID: "req-2", EventType: "contact.disclosed", Payload: []byte(`{"n":2}`), CreatedAt: time.Now()},
	}
	delivered, err := kafka.NewProducer(client, cfg.Topic).Produce(ctx, entries)
	s.Require().NoError(err)
	s.ElementsMatch([]uuid.UUID{entries[0].ID, entries[1].ID}, delivered)

	consumer, err := kgo.NewClient(
		kgo.SeedBrokers(s.redpanda.Broker),
		kgo.ConsumeTopics(cfg.Topic),
		kgo.ConsumeResetOffset(kgo.NewOffset().AtStart()),
	)
	s.Require().NoError(err)
	defer consumer.Close()

	got := map[string]string{}
	for len(got) < len(entries) {
		fetches := consumer.PollFetches(ctx)
		s.Require().NoError(ctx.Err())
		fetches.EachRecord(func(record *kgo.Record) {
			for _, header := range record.Headers {
				if header.Key == "event_id" {
					got[string(header.Value)] = string(record.Key)
				}
			}
		})
	}
	s.Equal("req-1", got[entries[0].ID.String()])
	s.Equal("req-2", got[entries[1].ID.String()])
}
