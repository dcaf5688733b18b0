// Package masking redacts contact details shown to requesters who have not
// revealed a worker. Every function is pure and safe to apply to already
// masked values.
package masking

import (
	"strings"
	"unicode"

	"skilloncall/internal/disclosure/models"
)

const (
	stars         = "***"
	maskedEmail   = "***@***.***"
	maskedPhone   = "***-***-****"
	maskedAddress = "***"

	minPhoneDigits = 6
)

// Contact returns a masked copy of c. City and province pass through.
func Contact(c models.ContactRecord) models.ContactRecord {
	return models.ContactRecord{
		Email:        Email(c.Email),
		Phone:        Phone(c.Phone),
		AddressLine1: maskedAddress,
		AddressLine2: nil,
		City:         c.City,
		Province:     c.Province,
		PostalCode:   PostalCode(c.PostalCode),
	}
}

// Email keeps the first 3 characters of the local part and the first
// character plus last 4 characters of the domain.
func Email(email string) string {
	if strings.Count(email, "@") != 1 {
		return maskedEmail
	}
	local, domain, _ := strings.Cut(email, "@")
	return head(local, 3) + stars + "@" + head(domain, 1) + stars + tail(domain, 4)
}

// Phone keeps the first 2 and last 3 digits once formatting is stripped.
func Phone(phone string) string {
	digits := make([]rune, 0, len(phone))
	for _, r := range phone {
		if unicode.IsDigit(r) && r < unicode.MaxASCII {
			digits = append(digits, r)
		}
	}
	if len(digits) < minPhoneDigits {
		return maskedPhone
	}
	return string(digits[:2]) + "**" + string(digits[len(digits)-3:])
}

// PostalCode keeps the forward sortation area (first 3 characters).
// An empty postal code stays empty.
func PostalCode(postal string) string {
	if postal == "" {
		return ""
	}
	return head(postal, 3) + " " + stars
}

func head(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

func tail(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[len(r)-n:])
}
