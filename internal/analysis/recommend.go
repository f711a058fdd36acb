package analysis

import (
	"fmt"

	"github.com/shopspring/decimal"
)

type Priority string

const (
	PriorityCritical Priority = "critical"
	PriorityHigh     Priority = "high"
	PriorityMedium   Priority = "medium"
)

// Recommendation is one actionable item derived from a threshold rule.
type Recommendation struct {
	Type        string   `json:"type"`
	Priority    Priority `json:"priority"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Action      string   `json:"action"`
}

// RecommendationInput carries the already-computed metrics the rules read.
type RecommendationInput struct {
	SavingsRate      decimal.Decimal
	MonthlyNetIncome decimal.Decimal
	BehindTargets    int
	OverBudget       int
	TotalInvestments decimal.Decimal
	CurrencySymbol   string
}

// GenerateRecommendations evaluates the fixed rule list in order and appends
// every triggered entry. Rules are independent; a condition that does not
// trigger simply produces no entry.
func GenerateRecommendations(in RecommendationInput) []Recommendation {
	recs := []Recommendation{}

	if in.SavingsRate.LessThan(decimal.NewFromInt(10)) {
		recs = append(recs, Recommendation{
			Type:     "savings",
			Priority: PriorityHigh,
			Title:    "Increase Your Savings",
			Description: fmt.Sprintf(
				"Your savings rate is %s%%. Aim for at least 10%% of your income.",
				in.SavingsRate.StringFixed(2)),
			Action: "Review recurring expenses and set up an automatic monthly transfer to savings.",
		})
	}

	if in.MonthlyNetIncome.IsNegative() {
		recs = append(recs, Recommendation{
			Type:     "cash_flow",
			Priority: PriorityCritical,
			Title:    "Negative Cash Flow",
			Description: fmt.Sprintf(
				"You are spending %s%s more than you earn each month.",
				in.CurrencySymbol, in.MonthlyNetIncome.Abs().StringFixed(2)),
			Action: "Cut discretionary spending until monthly expenses fit within income.",
		})
	}

	if in.BehindTargets > 0 {
		recs = append(recs, Recommendation{
			Type:     "target",
			Priority: PriorityMedium,
			Title:    "Target Progress",
			Description: fmt.Sprintf(
				"%d of your savings targets are behind schedule.", in.BehindTargets),
			Action: "Increase contributions or push back the target dates.",
		})
	}

	if in.OverBudget > 0 {
		recs = append(recs, Recommendation{
			Type:     "budget",
			Priority: PriorityMedium,
			Title:    "Budget Overspending",
			Description: fmt.Sprintf(
				"You exceeded the budget in %d categories this month.", in.OverBudget),
			Action: "Review the overspent categories and adjust either habits or budget amounts.",
		})
	}

	if in.TotalInvestments.IsZero() && in.MonthlyNetIncome.IsPositive() {
		recs = append(recs, Recommendation{
			Type:     "investment",
			Priority: PriorityMedium,
			Title:    "Start Investing",
			Description: fmt.Sprintf(
				"You have a positive cash flow of %s%s per month but no investments yet.",
				in.CurrencySymbol, in.MonthlyNetIncome.StringFixed(2)),
			Action: "Consider putting part of your monthly surplus into an investment account.",
		})
	}

	return recs
}
