package models

import (
	"fmt"
	"strings"

	id "skilloncall/pkg/domain"
	dErrors "skilloncall/pkg/domain-errors"
	platformstrings "skilloncall/pkg/platform/strings"
)

// maxBatchTargets bounds the revealed-targets lookup of one listing page.
const maxBatchTargets = 200

// GrantCreditsRequest tops up a requester's balance. Tier seeds the account
// when the requester has none yet.
type GrantCreditsRequest struct {
	Amount int    `json:"amount"`
	Tier   string `json:"tier,omitempty"`
}

func (r *GrantCreditsRequest) Normalize() {
	if r == nil {
		return
	}
	r.Tier = strings.TrimSpace(r.Tier)
}

func (r *GrantCreditsRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request is required")
	}
	if r.Amount <= 0 {
		return dErrors.New(dErrors.CodeValidation, "amount must be positive")
	}
	if r.Amount > MaxCreditBalance {
		return dErrors.New(dErrors.CodeValidation, fmt.Sprintf("amount cannot exceed %d", MaxCreditBalance))
	}
	return nil
}

// UpdateLimitsRequest replaces an account's disclosure caps.
type UpdateLimitsRequest struct {
	DailyLimit   *int   `json:"daily_limit"`
	MonthlyLimit *int   `json:"monthly_limit"`
	Tier         string `json:"tier,omitempty"`
}

func (r *UpdateLimitsRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request is required")
	}
	if r.DailyLimit == nil || r.MonthlyLimit == nil {
		return dErrors.New(dErrors.CodeValidation, "daily_limit and monthly_limit are required")
	}
	if *r.DailyLimit < 0 || *r.MonthlyLimit < 0 {
		return dErrors.New(dErrors.CodeValidation, "limits cannot be negative")
	}
	return nil
}

// RevealedTargetsRequest asks which of a page of workers were already revealed.
type RevealedTargetsRequest struct {
	TargetIDs []string `json:"target_ids"`
}

// Parse validates the request and converts its ids, dropping blanks and duplicates.
func (r *RevealedTargetsRequest) Parse() ([]id.UserID, error) {
	if r == nil {
		return nil, dErrors.New(dErrors.CodeBadRequest, "request is required")
	}
	if len(r.TargetIDs) > maxBatchTargets {
		return nil, dErrors.New(dErrors.CodeValidation, "too many target_ids")
	}
	raw := platformstrings.DedupeAndTrimLower(r.TargetIDs)
	targets := make([]id.UserID, 0, len(raw))
	for _, value := range raw {
		target, err := id.ParseUserID(value)
		if err != nil {
			return nil, err
		}
		targets = append(targets, target)
	}
	return targets, nil
}

// SyncContactRequest carries a worker's contact details from the profile service.
type SyncContactRequest struct {
	Email        string  `json:"email"`
	Phone        string  `json:"phone"`
	AddressLine1 string  `json:"address_line_1"`
	AddressLine2 *string `json:"address_line_2"`
	City         string  `json:"city"`
	Province     string  `json:"province"`
	PostalCode   string  `json:"postal_code"`
}

func (r *SyncContactRequest) Normalize() {
	if r == nil {
		return
	}
	r.Email = strings.TrimSpace(r.Email)
	r.Phone = strings.TrimSpace(r.Phone)
	r.AddressLine1 = strings.TrimSpace(r.AddressLine1)
	if r.AddressLine2 != nil {
		line2 := strings.TrimSpace(*r.AddressLine2)
		r.AddressLine2 = &line2
		if line2 == "" {
			r.AddressLine2 = nil
		}
	}
	r.City = strings.TrimSpace(r.City)
	r.Province = strings.ToUpper(strings.TrimSpace(r.Province))
	r.PostalCode = strings.ToUpper(strings.TrimSpace(r.PostalCode))
}

func (r *SyncContactRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request is required")
	}
	if r.Email == "" && r.Phone == "" {
		return dErrors.New(dErrors.CodeValidation, "email or phone is required")
	}
	if r.Email != "" && strings.Count(r.Email, "@") != 1 {
		return dErrors.New(dErrors.CodeValidation, "email is malformed")
	}
	return nil
}

func (r *SyncContactRequest) Record() ContactRecord {
	return ContactRecord{
		Email:        r.Email,
		Phone:        r.Phone,
		AddressLine1: r.AddressLine1,
		AddressLine2: r.AddressLine2,
		City:         r.City,
		Province:     r.Province,
		PostalCode:   r.PostalCode,
	}
}
