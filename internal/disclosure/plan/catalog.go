// Package plan maps subscription tiers to contact-reveal credit allotments.
package plan

import "strings"

// Tier names as stored on subscriptions.
const (
	TierNone       = ""
	TierBasic      = "Basic"
	TierPro        = "Pro"
	TierEnterprise = "Enterprise"
)

// DefaultAllotment applies to unsubscribed requesters and unknown tiers.
const DefaultAllotment = 5

// DefaultAllotments is the tier table used when configuration provides none.
func DefaultAllotments() map[string]int {
	return map[string]int{
		TierBasic:      50,
		TierPro:        200,
		TierEnterprise: 500,
	}
}

// Catalog is an immutable tier to allotment table. Lookups ignore case and
// surrounding whitespace.
type Catalog struct {
	allotments map[string]int
	fallback   int
}

// NewCatalog copies allotments; negative entries are dropped.
// A negative fallback is treated as zero.
func NewCatalog(allotments map[string]int, fallback int) *Catalog {
	table := make(map[string]int, len(allotments))
	for tier, credits := range allotments {
		if credits < 0 {
			continue
		}
		table[normalize(tier)] = credits
	}
	return &Catalog{allotments: table, fallback: max(0, fallback)}
}

// Default returns the built-in catalog.
func Default() *Catalog {
	return NewCatalog(DefaultAllotments(), DefaultAllotment)
}

// AllotmentForTier returns the credit grant for tier, or the fallback.
func (c *Catalog) AllotmentForTier(tier string) int {
	key := normalize(tier)
	if key == "" {
		return c.fallback
	}
	if credits, ok := c.allotments[key]; ok {
		return credits
	}
	return c.fallback
}

func normalize(tier string) string {
	return strings.ToLower(strings.TrimSpace(tier))
}
