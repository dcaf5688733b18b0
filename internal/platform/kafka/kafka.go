// Package kafka builds franz-go clients and the outbox producer that
// publishes disclosure events.
package kafka

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"

	"skilloncall/pkg/platform/outbox"
)

// Config names the brokers and the topic disclosures go to.
type Config struct {
	Brokers           []string
	Topic             string
	Partitions        int32
	ReplicationFactor int16
}

// NewClient connects to the brokers. Returns nil, nil when none are configured.
func NewClient(cfg Config, opts ...kgo.Opt) (*kgo.Client, error) {
	if len(cfg.Brokers) == 0 {
		return nil, nil
	}
	opts = append([]kgo.Opt{
		kgo.SeedBrokers(cfg.Brokers...),
		kgo.DefaultProduceTopic(cfg.Topic),
		kgo.RequiredAcks(kgo.AllISRAcks()),
		kgo.ProducerLinger(10 * time.Millisecond),
	}, opts...)

	client, err := kgo.NewClient(opts...)
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}
	return client, nil
}

// EnsureTopic creates the topic if it does not exist yet.
func EnsureTopic(ctx context.Context, client *kgo.Client, cfg Config) error {
	partitions, replication := cfg.Partitions, cfg.ReplicationFactor
	if partitions <= 0 {
		partitions = 1
	}
	if replication <= 0 {
		replication = 1
	}

	admin := kadm.NewClient(client)
	resp, err := admin.CreateTopic(ctx, partitions, replication, nil, cfg.Topic)
	if err != nil {
		return fmt.Errorf("create topic %s: %w", cfg.Topic, err)
	}
	if resp.Err != nil && !errors.Is(resp.Err, kerr.TopicAlreadyExists) {
		return fmt.Errorf("create topic %s: %w", cfg.Topic, resp.Err)
	}
	return nil
}

// Producer publishes outbox entries, keyed by aggregate id so one requester's
// disclosures land on one partition in order.
type Producer struct {
	client *kgo.Client
	topic  string
}

func NewProducer(client *kgo.Client, topic string) *Producer {
	return &Producer{client: client, topic: topic}
}

// Produce sends entries and returns the ids the broker acknowledged. Results
// may complete out of order, so they are matched back by record.
func (p *Producer) Produce(ctx context.Context, entries []outbox.Entry) ([]uuid.UUID, error) {
	records := make([]*kgo.Record, len(entries))
	ids := make(map[*kgo.Record]uuid.UUID, len(entries))
	for i, entry := range entries {
		records[i] = &kgo.Record{
			Topic: p.topic,
			Key:   []byte(entry.AggregateID),
			Value: entry.Payload,
			Headers: []kgo.RecordHeader{
				{Key: "event_type", Value: []byte(entry.EventType)},
				{Key: "event_id", Value: []byte(entry.ID.String())},
			},
			Timestamp: entry.CreatedAt,
		}
		ids[records[i]] = entry.ID
	}

	results := p.client.ProduceSync(ctx, records...)
	delivered := make([]uuid.UUID, 0, len(entries))
	var errs []error
	for _, result := range results {
		if result.Err != nil {
			errs = append(errs, result.Err)
			continue
		}
		delivered = append(delivered, ids[result.Record])
	}
	return delivered, errors.Join(errs...)
}
