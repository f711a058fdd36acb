package analysis

import (
	"github.com/shopspring/decimal"

	"bilancio/internal/core"
)

// CategoryAmount is a report-boundary category sum.
type CategoryAmount struct {
	Category core.Category   `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

// TypeSummary is the report-boundary view of one transaction type.
type TypeSummary struct {
	Total          decimal.Decimal  `json:"total"`
	MonthlyAverage decimal.Decimal  `json:"monthlyAverage"`
	Count          int              `json:"count"`
	ByCategory     []CategoryAmount `json:"byCategory"`
}

// Period is the calendar month the budget comparison and key metrics refer
// to, taken from the reference time of the analysis.
type Period struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

// KeyMetrics is the monthly snapshot shown in the report summary.
type KeyMetrics struct {
	MonthlyIncome   decimal.Decimal `json:"monthlyIncome"`
	MonthlyExpenses decimal.Decimal `json:"monthlyExpenses"`
	MonthlySavings  decimal.Decimal `json:"monthlySavings"`
	SavingsRate     decimal.Decimal `json:"savingsRate"`
	TargetProgress  decimal.Decimal `json:"targetProgress"`
}

// Summary is the human-readable digest assembled by the facade.
type Summary struct {
	HealthStatus        string          `json:"healthStatus"`
	KeyMetrics          KeyMetrics      `json:"keyMetrics"`
	Strengths           []string        `json:"strengths"`
	AreasForImprovement []string        `json:"areasForImprovement"`
	SpendingSplit       NeedsWantsSplit `json:"spendingSplit"`
}

// Report is the complete analysis output. It is freshly allocated per call
// and owned by the caller; the engine keeps no reference to it.
type Report struct {
	Period          Period           `json:"period"`
	Income          TypeSummary      `json:"income"`
	Expenses        TypeSummary      `json:"expenses"`
	Investments     TypeSummary      `json:"investments"`
	NetIncome       decimal.Decimal  `json:"netIncome"`
	SavingsRate     decimal.Decimal  `json:"savingsRate"`
	Targets         TargetSummary    `json:"targets"`
	Budgets         BudgetSummary    `json:"budgets"`
	Trends          TrendSummary     `json:"trends"`
	HealthScore     int              `json:"healthScore"`
	Recommendations []Recommendation `json:"recommendations"`
	Summary         Summary          `json:"summary"`
}

// summarize converts internal cent aggregates to the report boundary.
func (a TypeAggregate) summarize() TypeSummary {
	byCategory := make([]CategoryAmount, len(a.ByCategory))
	for i, entry := range a.ByCategory {
		byCategory[i] = CategoryAmount{
			Category: entry.Category,
			Amount:   core.Money{Cents: entry.Cents}.Decimal(),
		}
	}
	return TypeSummary{
		Total:          core.Money{Cents: a.TotalCents}.Decimal(),
		MonthlyAverage: a.MonthlyAverage(),
		Count:          a.Count,
		ByCategory:     byCategory,
	}
}

// percentage returns numerator/denominator * 100 rounded to two decimals,
// with the zero-denominator case defined as 0 rather than NaN or infinity.
func percentage(numCents, denCents int64) decimal.Decimal {
	if denCents == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(numCents).
		Div(decimal.NewFromInt(denCents)).
		Mul(decimal.NewFromInt(100)).
		Round(2)
}
