package circuit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// step is one call recorded against the breaker: f for a failure, s for a
// success.
type step byte

func replay(b *Breaker, steps string) (last StateChange) {
	for _, st := range []byte(steps) {
		switch step(st) {
		case 'f':
			_, last = b.RecordFailure()
		case 's':
			_, last = b.RecordSuccess()
		}
	}
	return last
}

func TestBreaker_NewStartsClosed(t *testing.T) {
	b := New("reveal-cache")
	assert.Equal(t, "reveal-cache", b.Name())
	assert.Equal(t, StateClosed, b.State())
	assert.False(t, b.IsOpen())
	assert.True(t, b.Allow())
}

func TestBreaker_Transitions(t *testing.T) {
	tests := []struct {
		name       string
		failures   int
		successes  int
		steps      string
		wantOpen   bool
		wantChange StateChange
	}{
		{name: "below failure threshold", failures: 3, successes: 2, steps: "ff", wantOpen: false},
		{name: "opens on threshold", failures: 3, successes: 2, steps: "fff", wantOpen: true, wantChange: StateChange{Opened: true}},
		{name: "success resets the failure streak", failures: 3, successes: 2, steps: "ffsff", wantOpen: false},
		{name: "failing while open reports no change", failures: 1, successes: 2, steps: "ff", wantOpen: true},
		{name: "one success is not enough to close", failures: 1, successes: 2, steps: "fs", wantOpen: true},
		{name: "closes on success threshold", failures: 1, successes: 2, steps: "fss", wantOpen: false, wantChange: StateChange{Closed: true}},
		{name: "failure while open restarts the success count", failures: 1, successes: 3, steps: "fssfss", wantOpen: true},
		{name: "closes after a full success streak", failures: 1, successes: 3, steps: "fssfsss", wantOpen: false, wantChange: StateChange{Closed: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := New("reveal-cache", WithFailureThreshold(tt.failures), WithSuccessThreshold(tt.successes))
			change := replay(b, tt.steps)
			assert.Equal(t, tt.wantOpen, b.IsOpen())
			assert.Equal(t, tt.wantChange, change)
		})
	}
}

func TestBreaker_FallbackAndPrimarySignals(t *testing.T) {
	b := New("reveal-cache", WithFailureThreshold(2), WithSuccessThreshold(1))

	useFallback, _ := b.RecordFailure()
	assert.False(t, useFallback, "closed breaker keeps using the primary")
	useFallback, _ = b.RecordFailure()
	assert.True(t, useFallback)

	usePrimary, change := b.RecordSuccess()
	assert.True(t, usePrimary)
	assert.True(t, change.Closed)
}

func TestBreaker_Reset(t *testing.T) {
	b := New("reveal-cache", WithFailureThreshold(1))
	replay(b, "f")
	require.True(t, b.IsOpen())

	b.Reset()
	assert.Equal(t, StateClosed, b.State())
	assert.True(t, b.Allow())
}

func TestBreaker_AllowProbesWhileOpen(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	b := New("reveal-cache",
		WithFailureThreshold(1),
		WithProbeInterval(10*time.Second),
		WithClock(func() time.Time { return now }),
	)
	replay(b, "f")
	assert.False(t, b.Allow(), "open breaker rejects until the probe interval passes")

	now = now.Add(10 * time.Second)
	assert.True(t, b.Allow())
	assert.False(t, b.Allow(), "one probe per interval")
}
