package models

import (
	"errors"
	"fmt"
)

// DisclosureError is returned when a disclosure cannot proceed. Policy denials
// and transient failures both surface as this type; callers branch on Reason.
type DisclosureError struct {
	Reason           Reason
	Message          string
	CreditsAvailable int
	Limit            int
	Used             int
	Err              error
}

func (e *DisclosureError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("disclosure %s: %s: %v", e.Reason, e.Message, e.Err)
	}
	return fmt.Sprintf("disclosure %s: %s", e.Reason, e.Message)
}

func (e *DisclosureError) Unwrap() error {
	return e.Err
}

// IsRetryable is true only for transient infrastructure failures.
func (e *DisclosureError) IsRetryable() bool {
	return e.Reason == ReasonTransientFailure
}

// NewTransientError wraps an infrastructure failure.
func NewTransientError(err error) *DisclosureError {
	return &DisclosureError{
		Reason:  ReasonTransientFailure,
		Message: "contact reveal could not be completed, please retry",
		Err:     err,
	}
}

// ReasonOf extracts the Reason from a DisclosureError anywhere in err's chain.
func ReasonOf(err error) (Reason, bool) {
	var de *DisclosureError
	if errors.As(err, &de) {
		return de.Reason, true
	}
	return "", false
}
