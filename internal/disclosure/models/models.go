package models

import (
	"math"
	"time"

	id "skilloncall/pkg/domain"
	dErrors "skilloncall/pkg/domain-errors"
)

// MaxCreditBalance is the largest balance an account can hold; it matches
// the INTEGER column of the credit ledger.
const MaxCreditBalance = math.MaxInt32

// Reason tags the outcome of a disclosure decision.
type Reason string

const (
	ReasonAllowed             Reason = "allowed"
	ReasonAlreadyRevealed     Reason = "already_revealed"
	ReasonDailyLimitReached   Reason = "daily_limit_reached"
	ReasonMonthlyLimitReached Reason = "monthly_limit_reached"
	ReasonInsufficientCredits Reason = "insufficient_credits"
	ReasonTransientFailure    Reason = "transient_failure"
)

// IsDenial reports whether the reason is a policy denial.
func (r Reason) IsDenial() bool {
	switch r {
	case ReasonDailyLimitReached, ReasonMonthlyLimitReached, ReasonInsufficientCredits:
		return true
	}
	return false
}

func (r Reason) String() string {
	return string(r)
}

// CreditsPerDisclosure is the cost of one new disclosure.
const CreditsPerDisclosure = 1

// Requester is the identity asking to see contact details.
// An empty Tier means the requester has no subscription.
type Requester struct {
	ID   id.UserID
	Tier string
}

// CreditAccount holds the metered budget of one requester.
type CreditAccount struct {
	RequesterID      id.UserID `json:"requester_id"`
	CreditsAvailable int       `json:"credits_available"`
	CreditsUsed      int       `json:"credits_used"`
	DailyLimit       int       `json:"daily_limit"`
	MonthlyLimit     int       `json:"monthly_limit"`
	LastResetAt      time.Time `json:"last_reset_at"`
	ExpiresAt        time.Time `json:"expires_at"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// NewCreditAccount seeds an account from a plan allotment.
func NewCreditAccount(requesterID id.UserID, allotment, dailyLimit, monthlyLimit int, now time.Time, grantTTL time.Duration) (*CreditAccount, error) {
	if requesterID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "requester_id cannot be empty")
	}
	if allotment < 0 {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "allotment cannot be negative")
	}
	if dailyLimit < 0 || monthlyLimit < 0 {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "limits cannot be negative")
	}
	return &CreditAccount{
		RequesterID:      requesterID,
		CreditsAvailable: allotment,
		CreditsUsed:      0,
		DailyLimit:       dailyLimit,
		MonthlyLimit:     monthlyLimit,
		LastResetAt:      now,
		ExpiresAt:        now.Add(grantTTL),
		CreatedAt:        now,
		UpdatedAt:        now,
	}, nil
}

// HasCredits reports whether n credits can be deducted.
func (a *CreditAccount) HasCredits(n int) bool {
	return a.CreditsAvailable >= n
}

// IsExpired reports whether the credit grant is stale at now.
func (a *CreditAccount) IsExpired(now time.Time) bool {
	if a.ExpiresAt.IsZero() {
		return false
	}
	return now.After(a.ExpiresAt)
}

// DisclosureEvent records one successful new disclosure. It is never edited.
type DisclosureEvent struct {
	ID          id.DisclosureID `json:"id"`
	RequesterID id.UserID       `json:"requester_id"`
	TargetID    id.UserID       `json:"target_id"`
	OccurredAt  time.Time       `json:"occurred_at"`
	CreditsUsed int             `json:"credits_used"`
}

// NewDisclosureEvent creates an event with domain invariant validation.
func NewDisclosureEvent(requesterID, targetID id.UserID, credits int, now time.Time) (*DisclosureEvent, error) {
	if requesterID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "requester_id cannot be empty")
	}
	if targetID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "target_id cannot be empty")
	}
	if credits < 0 {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "credits_used cannot be negative")
	}
	return &DisclosureEvent{
		ID:          id.NewDisclosureID(),
		RequesterID: requesterID,
		TargetID:    targetID,
		OccurredAt:  now,
		CreditsUsed: credits,
	}, nil
}

// ContactRecord is the read-only contact projection of a worker profile.
type ContactRecord struct {
	Email        string  `json:"email"`
	Phone        string  `json:"phone"`
	AddressLine1 string  `json:"address_line_1"`
	AddressLine2 *string `json:"address_line_2"`
	City         string  `json:"city"`
	Province     string  `json:"province"`
	PostalCode   string  `json:"postal_code"`
}

// Decision is the outcome of evaluating a disclosure request.
type Decision struct {
	Allowed          bool   `json:"allowed"`
	Reason           Reason `json:"reason"`
	Message          string `json:"message"`
	CreditsAvailable int    `json:"credits_available"`
	// Limit and Used are set for daily/monthly denials.
	Limit int `json:"limit,omitempty"`
	Used  int `json:"used,omitempty"`
}

// Err converts a denied decision into a DisclosureError. Allowed decisions return nil.
func (d Decision) Err() error {
	if d.Allowed {
		return nil
	}
	return &DisclosureError{
		Reason:           d.Reason,
		Message:          d.Message,
		CreditsAvailable: d.CreditsAvailable,
		Limit:            d.Limit,
		Used:             d.Used,
	}
}

// ContactPayload is what a requester receives for a target.
type ContactPayload struct {
	TargetID         id.UserID     `json:"target_id"`
	Contact          ContactRecord `json:"contact"`
	Masked           bool          `json:"masked"`
	Reason           Reason        `json:"reason"`
	CreditsRemaining int           `json:"credits_remaining"`
}

// ContactView is a read-only rendering of a target's contact for a requester:
// unmasked when the pair was already revealed, masked otherwise.
type ContactView struct {
	ContactPayload
	Decision Decision `json:"decision"`
}

// Summary aggregates a requester's budget for display.
type Summary struct {
	CreditsAvailable int       `json:"credits_available"`
	CreditsUsed      int       `json:"credits_used"`
	DailyLimit       int       `json:"daily_limit"`
	DailyUsed        int       `json:"daily_used"`
	DailyRemaining   int       `json:"daily_remaining"`
	MonthlyLimit     int       `json:"monthly_limit"`
	MonthlyUsed      int       `json:"monthly_used"`
	MonthlyRemaining int       `json:"monthly_remaining"`
	ExpiresAt        time.Time `json:"expires_at"`
	Expired          bool      `json:"expired"`
}

// NewSummary derives remaining counts from an account and window usage.
func NewSummary(account *CreditAccount, dailyUsed, monthlyUsed int, now time.Time) Summary {
	return Summary{
		CreditsAvailable: account.CreditsAvailable,
		CreditsUsed:      account.CreditsUsed,
		DailyLimit:       account.DailyLimit,
		DailyUsed:        dailyUsed,
		DailyRemaining:   max(0, account.DailyLimit-dailyUsed),
		MonthlyLimit:     account.MonthlyLimit,
		MonthlyUsed:      monthlyUsed,
		MonthlyRemaining: max(0, account.MonthlyLimit-monthlyUsed),
		ExpiresAt:        account.ExpiresAt,
		Expired:          account.IsExpired(now),
	}
}
