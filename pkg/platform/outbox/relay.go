package outbox

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

const (
	defaultBatchSize    = 100
	defaultPollInterval = time.Second
)

// Relay moves pending outbox entries to the broker.
type Relay struct {
	store    Store
	producer Producer
	logger   *slog.Logger
	batch    int
	interval time.Duration
	now      func() time.Time
}

type RelayOption func(*Relay)

func WithRelayLogger(logger *slog.Logger) RelayOption {
	return func(r *Relay) {
		r.logger = logger
	}
}

func WithBatchSize(n int) RelayOption {
	return func(r *Relay) {
		if n > 0 {
			r.batch = n
		}
	}
}

func WithPollInterval(d time.Duration) RelayOption {
	return func(r *Relay) {
		if d > 0 {
			r.interval = d
		}
	}
}

func NewRelay(store Store, producer Producer, opts ...RelayOption) (*Relay, error) {
	if store == nil {
		return nil, fmt.Errorf("outbox store is required")
	}
	if producer == nil {
		return nil, fmt.Errorf("producer is required")
	}
	r := &Relay{
		store:    store,
		producer: producer,
		batch:    defaultBatchSize,
		interval: defaultPollInterval,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Run drains the outbox until ctx is cancelled. A full batch is followed by
// another batch right away; otherwise the relay waits for the next tick.
func (r *Relay) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		sent, err := r.Drain(ctx)
		if err != nil && r.logger != nil {
			r.logger.WarnContext(ctx, "outbox relay batch failed", "error", err, "sent", sent)
		}
		if err == nil && sent >= r.batch {
			continue
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// Drain delivers one batch and returns how many entries were sent.
func (r *Relay) Drain(ctx context.Context) (int, error) {
	return r.store.ProcessBatch(ctx, r.batch, r.now(), r.producer.Produce)
}
