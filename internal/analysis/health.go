package analysis

import "github.com/shopspring/decimal"

// HealthInput carries the factors the composite score is built from.
type HealthInput struct {
	SavingsRate      decimal.Decimal // percent
	MonthlyNetIncome decimal.Decimal // currency units
	TargetProgress   decimal.Decimal // percent
	OverBudget       int
	TotalBudgets     int
	Direction        TrendDirection
}

// ScoreHealth combines savings rate, cash-flow sign, target progress, budget
// adherence and trend direction into an integer 0-100.
//
// Each factor earns points against its weight; the score is the achieved
// points over the maximum achievable, scaled to 100 and rounded to the
// nearest integer. With the default weights the maximum is exactly 100, but
// the ratio is computed anyway so the rounding survives any future factor.
func ScoreHealth(in HealthInput, w HealthWeights) int {
	maxPoints := w.Max()
	if maxPoints == 0 {
		return 0
	}

	points := 0

	switch {
	case in.SavingsRate.GreaterThanOrEqual(decimal.NewFromInt(20)):
		points += w.SavingsRate
	case in.SavingsRate.GreaterThanOrEqual(decimal.NewFromInt(10)):
		points += 20
	case in.SavingsRate.GreaterThanOrEqual(decimal.NewFromInt(5)):
		points += 10
	}

	switch {
	case in.MonthlyNetIncome.IsPositive():
		points += w.NetIncome
	case in.MonthlyNetIncome.GreaterThanOrEqual(decimal.NewFromInt(-1000)):
		points += 15
	}

	switch {
	case in.TargetProgress.GreaterThanOrEqual(decimal.NewFromInt(80)):
		points += w.TargetProgress
	case in.TargetProgress.GreaterThanOrEqual(decimal.NewFromInt(50)):
		points += 15
	case in.TargetProgress.GreaterThanOrEqual(decimal.NewFromInt(25)):
		points += 10
	}

	switch {
	case in.OverBudget == 0:
		points += w.BudgetAdherence
	case in.OverBudget*10 <= in.TotalBudgets*3: // at most 30% of budgets over
		points += 10
	}

	switch in.Direction {
	case TrendDecreasing:
		points += w.Trend
	case TrendStable:
		points += 5
	}

	score := decimal.NewFromInt(int64(points * 100)).
		Div(decimal.NewFromInt(int64(maxPoints))).
		Round(0).
		IntPart()
	return int(score)
}

// HealthStatus maps a score to its display label.
func HealthStatus(score int) string {
	switch {
	case score >= 80:
		return "Excellent"
	case score >= 60:
		return "Good"
	case score >= 40:
		return "Fair"
	default:
		return "Poor"
	}
}
