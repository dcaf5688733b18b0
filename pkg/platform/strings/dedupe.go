// Package strings holds small helpers for cleaning user-supplied string lists.
package strings

import (
	"strings"
)

// DedupeAndTrimLower trims and lowercases each element, then drops blanks and
// repeats. The first occurrence keeps its position.
//
//	DedupeAndTrimLower([]string{" ABC ", "", "abc", "def"})
//	// []string{"abc", "def"}
func DedupeAndTrimLower(values []string) []string {
	if len(values) == 0 {
		return values
	}

	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))
	for _, v := range values {
		normalized := strings.ToLower(strings.TrimSpace(v))
		if normalized == "" {
			continue
		}
		if _, dup := seen[normalized]; dup {
			continue
		}
		seen[normalized] = struct{}{}
		result = append(result, normalized)
	}
	return result
}
