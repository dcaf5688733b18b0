package events

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"skilloncall/internal/disclosure/ports"
	id "skilloncall/pkg/domain"
	"skilloncall/pkg/platform/circuit"
	txcontext "skilloncall/pkg/platform/tx"
)

const (
	revealKeyPrefix    = "disclosure:revealed:"
	defaultRevealTTL   = 24 * time.Hour
	revealCachedMarker = "1"
)

// RevealCache wraps a disclosure log with a Redis read-through cache for
// Exists. Only positive answers are cached: a revealed pair stays revealed
// forever, while a negative answer can change with the next commit. Writes
// never touch the cache, so a rolled-back transaction cannot leave a stale
// positive entry behind. A circuit breaker skips Redis while it keeps failing.
type RevealCache struct {
	ports.AuditLog
	client  *redis.Client
	ttl     time.Duration
	logger  *slog.Logger
	breaker *circuit.Breaker
}

type CacheOption func(*RevealCache)

func WithCacheTTL(ttl time.Duration) CacheOption {
	return func(c *RevealCache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

func WithCacheLogger(logger *slog.Logger) CacheOption {
	return func(c *RevealCache) {
		c.logger = logger
	}
}

func WithCacheBreaker(breaker *circuit.Breaker) CacheOption {
	return func(c *RevealCache) {
		if breaker != nil {
			c.breaker = breaker
		}
	}
}

// NewRevealCache decorates next. A nil client disables caching.
func NewRevealCache(next ports.AuditLog, client *redis.Client, opts ...CacheOption) *RevealCache {
	c := &RevealCache{
		AuditLog: next,
		client:   client,
		ttl:      defaultRevealTTL,
		breaker:  circuit.New("reveal-cache"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func revealKey(requesterID, targetID id.UserID) string {
	return fmt.Sprintf("%s%s:%s", revealKeyPrefix, requesterID, targetID)
}

// Exists consults Redis first. Cache failures fall through to the log. Inside a
// transaction the log is read directly so the check sees uncommitted state.
func (c *RevealCache) Exists(ctx context.Context, requesterID, targetID id.UserID) (bool, error) {
	if c.client == nil || !c.breaker.Allow() {
		return c.AuditLog.Exists(ctx, requesterID, targetID)
	}
	if _, inTx := txcontext.From(ctx); inTx {
		return c.AuditLog.Exists(ctx, requesterID, targetID)
	}

	key := revealKey(requesterID, targetID)
	cached, err := c.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		err = nil
	}
	c.record(ctx, "reveal cache read failed", err)
	if err == nil && cached == revealCachedMarker {
		return true, nil
	}

	revealed, err := c.AuditLog.Exists(ctx, requesterID, targetID)
	if err != nil || !revealed {
		return revealed, err
	}
	c.record(ctx, "reveal cache write failed", c.client.Set(ctx, key, revealCachedMarker, c.ttl).Err())
	return true, nil
}

// RevealedAmong answers from the cache for known pairs and asks the log for the rest.
func (c *RevealCache) RevealedAmong(ctx context.Context, requesterID id.UserID, targetIDs []id.UserID) (map[id.UserID]bool, error) {
	if c.client == nil || len(targetIDs) == 0 || !c.breaker.Allow() {
		return c.AuditLog.RevealedAmong(ctx, requesterID, targetIDs)
	}

	keys := make([]string, len(targetIDs))
	for i, target := range targetIDs {
		keys[i] = revealKey(requesterID, target)
	}
	values, err := c.client.MGet(ctx, keys...).Result()
	c.record(ctx, "reveal cache batch read failed", err)
	if err != nil {
		return c.AuditLog.RevealedAmong(ctx, requesterID, targetIDs)
	}

	result := make(map[id.UserID]bool)
	var missing []id.UserID
	for i, value := range values {
		if s, ok := value.(string); ok && s == revealCachedMarker {
			result[targetIDs[i]] = true
			continue
		}
		missing = append(missing, targetIDs[i])
	}
	if len(missing) == 0 {
		return result, nil
	}

	revealed, err := c.AuditLog.RevealedAmong(ctx, requesterID, missing)
	if err != nil {
		return nil, err
	}
	pipe := c.client.Pipeline()
	for target := range revealed {
		result[target] = true
		pipe.Set(ctx, revealKey(requesterID, target), revealCachedMarker, c.ttl)
	}
	if len(revealed) > 0 {
		_, err := pipe.Exec(ctx)
		c.record(ctx, "reveal cache batch write failed", err)
	}
	return result, nil
}

// record feeds the breaker and logs failures and breaker transitions.
func (c *RevealCache) record(ctx context.Context, msg string, err error) {
	if err == nil {
		if _, change := c.breaker.RecordSuccess(); change.Closed {
			c.log(ctx, "reveal cache circuit closed", nil)
		}
		return
	}
	c.log(ctx, msg, err)
	if _, change := c.breaker.RecordFailure(); change.Opened {
		c.log(ctx, "reveal cache circuit opened", nil)
	}
}

func (c *RevealCache) log(ctx context.Context, msg string, err error) {
	if c.logger == nil {
		return
	}
	if err != nil {
		c.logger.WarnContext(ctx, msg, "error", err, "breaker", c.breaker.Name())
		return
	}
	c.logger.WarnContext(ctx, msg, "breaker", c.breaker.Name())
}

var _ ports.AuditLog = (*RevealCache)(nil)
