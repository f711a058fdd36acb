package analysis

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"bilancio/internal/core"
)

// Input is the full set of collections and context one analysis runs on.
// The clock is injected so the engine stays pure and testable; the currency
// symbol is used only for text interpolation, never for computation.
type Input struct {
	Transactions   []core.Transaction
	Targets        []core.Target
	Budgets        []core.Budget
	Now            time.Time
	CurrencySymbol string
}

// Engine is the analysis facade. It orchestrates the pipeline
// aggregation -> targets/budgets/trend -> health score -> recommendations
// and assembles the final report. A single Engine value may be shared by
// any number of goroutines.
type Engine struct {
	cfg Config
}

func NewEngine(cfg Config) *Engine {
	return &Engine{cfg: cfg}
}

// Analyze computes a complete report from the input collections. It never
// fails: empty or partially missing inputs degrade to the documented
// zero-valued sub-reports.
func (e *Engine) Analyze(in Input) *Report {
	agg := Aggregate(in.Transactions)

	month := int(in.Now.Month())
	year := in.Now.Year()

	targets := AnalyzeTargets(in.Targets, in.Now, e.cfg.OnTrackTolerance)
	budgets := CompareBudgets(in.Budgets, in.Transactions, month, year)
	trends := AnalyzeTrend(agg.MonthlySpending, agg.MonthlyIncome)

	netCents := agg.Income.TotalCents - agg.Expenses.TotalCents
	savingsRate := percentage(netCents, agg.Income.TotalCents)

	monthlyIncome := agg.Income.MonthlyAverage()
	monthlyExpenses := agg.Expenses.MonthlyAverage()
	monthlyNet := monthlyIncome.Sub(monthlyExpenses)

	score := ScoreHealth(HealthInput{
		SavingsRate:      savingsRate,
		MonthlyNetIncome: monthlyNet,
		TargetProgress:   targets.OverallProgress,
		OverBudget:       budgets.OverBudget,
		TotalBudgets:     budgets.TotalBudgets,
		Direction:        trends.Direction,
	}, e.cfg.Weights)

	recInput := RecommendationInput{
		SavingsRate:      savingsRate,
		MonthlyNetIncome: monthlyNet,
		BehindTargets:    targets.Behind,
		OverBudget:       budgets.OverBudget,
		TotalInvestments: core.Money{Cents: agg.Investments.TotalCents}.Decimal(),
		CurrencySymbol:   in.CurrencySymbol,
	}

	return &Report{
		Period:          Period{Month: month, Year: year},
		Income:          agg.Income.summarize(),
		Expenses:        agg.Expenses.summarize(),
		Investments:     agg.Investments.summarize(),
		NetIncome:       core.Money{Cents: netCents}.Decimal(),
		SavingsRate:     savingsRate,
		Targets:         targets,
		Budgets:         budgets,
		Trends:          trends,
		HealthScore:     score,
		Recommendations: GenerateRecommendations(recInput),
		Summary: e.summarize(score, KeyMetrics{
			MonthlyIncome:   monthlyIncome,
			MonthlyExpenses: monthlyExpenses,
			MonthlySavings:  monthlyNet,
			SavingsRate:     savingsRate,
			TargetProgress:  targets.OverallProgress,
		}, recInput, targets, budgets, agg),
	}
}

// summarize derives the health label, strengths and improvement areas from
// the same thresholds the recommendation rules use, phrased as plain
// statements without priority.
func (e *Engine) summarize(score int, metrics KeyMetrics, in RecommendationInput, targets TargetSummary, budgets BudgetSummary, agg Aggregates) Summary {
	strengths := []string{}
	areas := []string{}

	if in.SavingsRate.GreaterThanOrEqual(decimal.NewFromInt(10)) {
		strengths = append(strengths,
			fmt.Sprintf("Healthy savings rate of %s%%", in.SavingsRate.StringFixed(2)))
	} else {
		areas = append(areas, "Savings rate below 10% of income")
	}

	if in.MonthlyNetIncome.IsPositive() {
		strengths = append(strengths, "Positive monthly cash flow")
	} else if in.MonthlyNetIncome.IsNegative() {
		areas = append(areas, "Monthly spending exceeds income")
	}

	if in.BehindTargets > 0 {
		areas = append(areas,
			fmt.Sprintf("%d savings targets behind schedule", in.BehindTargets))
	} else if targets.TotalTargets > 0 {
		strengths = append(strengths, "All savings targets on schedule")
	}

	if in.OverBudget > 0 {
		areas = append(areas,
			fmt.Sprintf("Over budget in %d categories", in.OverBudget))
	} else if budgets.TotalBudgets > 0 {
		strengths = append(strengths, "Spending within budget in every category")
	}

	if in.TotalInvestments.IsPositive() {
		strengths = append(strengths, "Actively investing")
	} else if in.MonthlyNetIncome.IsPositive() {
		areas = append(areas, "No investments despite a monthly surplus")
	}

	return Summary{
		HealthStatus:        HealthStatus(score),
		KeyMetrics:          metrics,
		Strengths:           strengths,
		AreasForImprovement: areas,
		SpendingSplit:       SplitNeedsWants(agg.Expenses.ByCategory, e.cfg.NeedsWants),
	}
}
