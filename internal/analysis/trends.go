package analysis

import (
	"sort"

	"github.com/shopspring/decimal"
)

type TrendDirection string

const (
	TrendIncreasing TrendDirection = "increasing"
	TrendDecreasing TrendDirection = "decreasing"
	TrendStable     TrendDirection = "stable"
)

// TrendSummary reports the month-over-month spending movement.
type TrendSummary struct {
	MonthlySpending map[string]decimal.Decimal `json:"monthlySpending"`
	MonthlyIncome   map[string]decimal.Decimal `json:"monthlyIncome"`
	// Trend is (last month - first month) / number of months, in currency
	// units per month. Zero when fewer than two months of spending exist.
	Trend     decimal.Decimal `json:"trend"`
	Direction TrendDirection  `json:"direction"`
}

// AnalyzeTrend derives trend magnitude and direction from the aggregator's
// monthly buckets (cents keyed by "YYYY-MM"). Month keys sort
// lexicographically, which for this format is also chronological.
func AnalyzeTrend(monthlySpending, monthlyIncome map[string]int64) TrendSummary {
	summary := TrendSummary{
		MonthlySpending: centsMapToDecimal(monthlySpending),
		MonthlyIncome:   centsMapToDecimal(monthlyIncome),
		Trend:           decimal.Zero,
		Direction:       TrendStable,
	}

	if len(monthlySpending) < 2 {
		return summary
	}

	months := make([]string, 0, len(monthlySpending))
	for key := range monthlySpending {
		months = append(months, key)
	}
	sort.Strings(months)

	first := monthlySpending[months[0]]
	last := monthlySpending[months[len(months)-1]]
	deltaCents := last - first

	summary.Trend = decimal.New(deltaCents, -2).
		Div(decimal.NewFromInt(int64(len(months)))).
		Round(2)

	switch {
	case deltaCents > 0:
		summary.Direction = TrendIncreasing
	case deltaCents < 0:
		summary.Direction = TrendDecreasing
	}
	return summary
}

func centsMapToDecimal(cents map[string]int64) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(cents))
	for key, c := range cents {
		out[key] = decimal.New(c, -2)
	}
	return out
}
