package sentinel

import "errors"

// Sentinel errors for storage facts. Stores return these (optionally wrapped)
// and the disclosure service translates them into domain outcomes.
//
//   - ErrNotFound: the row or key does not exist
//   - ErrConflict: a uniqueness constraint rejected the write
//   - ErrInsufficientBalance: a conditional deduction found too few credits
//   - ErrUnavailable: the backing store failed or the transaction must be retried
//   - ErrOutOfRange: the write would push a value past its column bound
var (
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrUnavailable         = errors.New("unavailable")
	ErrOutOfRange          = errors.New("out of range")
)
