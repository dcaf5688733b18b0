package service

import (
	"context"
	"sync"
	"time"

	id "skilloncall/pkg/domain"
	dErrors "skilloncall/pkg/domain-errors"
)

// numTxShards spreads requesters over independent locks so unrelated
// requesters do not contend.
const numTxShards = 128

// defaultTxTimeout is the maximum duration of one disclosure transaction.
const defaultTxTimeout = 5 * time.Second

// ShardedTx serializes transactions per requester for in-memory stores.
// It does not roll anything back; the service compensates a deduction whose
// event append failed.
type ShardedTx struct {
	shards  [numTxShards]sync.Mutex
	timeout time.Duration
}

// NewShardedTx creates an in-memory transaction runner.
func NewShardedTx() *ShardedTx {
	return &ShardedTx{timeout: defaultTxTimeout}
}

func (t *ShardedTx) RunInTx(ctx context.Context, requesterID id.UserID, fn func(ctx context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}

	timeout := t.timeout
	if timeout == 0 {
		timeout = defaultTxTimeout
	}
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	shard := shardFor(requesterID)
	t.shards[shard].Lock()
	defer t.shards[shard].Unlock()

	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}

	return fn(ctx)
}

// shardFor hashes the requester with FNV-1a.
func shardFor(requesterID id.UserID) int {
	const (
		fnvOffset = 2166136261
		fnvPrime  = 16777619
	)
	h := uint32(fnvOffset)
	for _, b := range requesterID {
		h ^= uint32(b)
		h *= fnvPrime
	}
	return int(h % numTxShards)
}
