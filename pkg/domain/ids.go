package domain

import (
	"strings"

	"github.com/google/uuid"

	dErrors "skilloncall/pkg/domain-errors"
)

// UserID identifies a marketplace account. Employers requesting contact details
// and workers whose details are revealed are both users.
type UserID uuid.UUID

// DisclosureID identifies a single disclosure event.
type DisclosureID uuid.UUID

// maxIDLength bounds raw input before it reaches the UUID parser.
const maxIDLength = 64

func parseUUID(kind, s string) (uuid.UUID, error) {
	if strings.TrimSpace(s) == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, kind+" is required")
	}
	if len(s) > maxIDLength {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "invalid "+kind+" format")
	}
	parsed, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.Wrap(err, dErrors.CodeInvalidInput, "invalid "+kind+" format")
	}
	if parsed == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, kind+" cannot be nil")
	}
	return parsed, nil
}

// ParseUserID validates and converts a string into a UserID.
func ParseUserID(s string) (UserID, error) {
	u, err := parseUUID("user ID", s)
	if err != nil {
		return UserID{}, err
	}
	return UserID(u), nil
}

// ParseDisclosureID validates and converts a string into a DisclosureID.
func ParseDisclosureID(s string) (DisclosureID, error) {
	u, err := parseUUID("disclosure ID", s)
	if err != nil {
		return DisclosureID{}, err
	}
	return DisclosureID(u), nil
}

// NewDisclosureID returns a fresh random DisclosureID.
func NewDisclosureID() DisclosureID {
	return DisclosureID(uuid.New())
}

func (id UserID) String() string       { return uuid.UUID(id).String() }
func (id UserID) IsNil() bool          { return uuid.UUID(id) == uuid.Nil }
func (id DisclosureID) String() string { return uuid.UUID(id).String() }
func (id DisclosureID) IsNil() bool    { return uuid.UUID(id) == uuid.Nil }

func (id UserID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }

func (id *UserID) UnmarshalText(data []byte) error {
	parsed, err := ParseUserID(string(data))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

func (id DisclosureID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }

func (id *DisclosureID) UnmarshalText(data []byte) error {
	parsed, err := ParseDisclosureID(string(data))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}
