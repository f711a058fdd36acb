package analysis

import (
	"strings"

	"github.com/shopspring/decimal"
)

// NeedsWantsConfig drives the heuristic split of expense categories into
// essential (needs) and discretionary (wants) buckets. Matching is
// case-insensitive substring matching against the category name; spend in
// categories matching neither list is apportioned by FallbackNeedsRatio.
type NeedsWantsConfig struct {
	NeedsKeywords      []string
	WantsKeywords      []string
	FallbackNeedsRatio float64 // legacy value: 0.70
}

// DefaultNeedsWantsConfig returns the legacy keyword lists and 70/30 split.
func DefaultNeedsWantsConfig() NeedsWantsConfig {
	return NeedsWantsConfig{
		NeedsKeywords: []string{
			"rent", "mortgage", "utilities", "grocer", "food", "insurance",
			"health", "medical", "transport", "fuel", "education", "childcare",
		},
		WantsKeywords: []string{
			"entertainment", "dining", "restaurant", "hobby", "travel",
			"vacation", "shopping", "subscription", "gift", "leisure",
		},
		FallbackNeedsRatio: 0.70,
	}
}

// NeedsWantsSplit is the resulting two-bucket breakdown.
type NeedsWantsSplit struct {
	Needs decimal.Decimal `json:"needs"`
	Wants decimal.Decimal `json:"wants"`
}

// SplitNeedsWants classifies per-category expense sums into needs and wants.
// Needs keywords win over wants keywords when both match.
func SplitNeedsWants(byCategory []CategoryCents, cfg NeedsWantsConfig) NeedsWantsSplit {
	var needsCents, wantsCents, unmatchedCents int64

	for _, entry := range byCategory {
		name := strings.ToLower(string(entry.Category))
		switch {
		case matchesAny(name, cfg.NeedsKeywords):
			needsCents += entry.Cents
		case matchesAny(name, cfg.WantsKeywords):
			wantsCents += entry.Cents
		default:
			unmatchedCents += entry.Cents
		}
	}

	ratio := decimal.NewFromFloat(cfg.FallbackNeedsRatio)
	unmatched := decimal.New(unmatchedCents, -2)
	fallbackNeeds := unmatched.Mul(ratio).Round(2)
	fallbackWants := unmatched.Sub(fallbackNeeds)

	return NeedsWantsSplit{
		Needs: decimal.New(needsCents, -2).Add(fallbackNeeds),
		Wants: decimal.New(wantsCents, -2).Add(fallbackWants),
	}
}

func matchesAny(name string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(name, kw) {
			return true
		}
	}
	return false
}
