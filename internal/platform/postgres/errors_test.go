package postgres

import (
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestErrorClassification(t *testing.T) {
	wrap := func(code string) error {
		return fmt.Errorf("grant credits: %w", &pgconn.PgError{Code: code})
	}

	tests := []struct {
		name       string
		err        error
		outOfRange bool
		retryable  bool
	}{
		{name: "integer overflow", err: wrap("22003"), outOfRange: true},
		{name: "serialization failure", err: wrap("40001"), retryable: true},
		{name: "deadlock", err: wrap("40P01"), retryable: true},
		{name: "lock timeout", err: wrap("55P03"), retryable: true},
		{name: "check violation", err: wrap("23514")},
		{name: "not a postgres error", err: fmt.Errorf("connection reset")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.outOfRange, IsOutOfRange(tt.err))
			assert.Equal(t, tt.retryable, IsRetryable(tt.err))
		})
	}
}
