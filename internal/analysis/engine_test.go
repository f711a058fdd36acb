package analysis

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"bilancio/internal/core"
)

func TestAnalyzeSingleIncome(t *testing.T) {
	now := time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC)
	engine := NewEngine(DefaultConfig())

	report := engine.Analyze(Input{
		Transactions: []core.Transaction{
			tx(core.Income, 2024, 1, 5, 100000, "Salary"),
		},
		Now:            now,
		CurrencySymbol: "€",
	})

	if got := report.Income.Total.StringFixed(2); got != "1000.00" {
		t.Fatalf("total income: got %s, want 1000.00", got)
	}
	if got := report.Expenses.Total.StringFixed(2); got != "0.00" {
		t.Fatalf("total expenses: got %s, want 0.00", got)
	}
	if got := report.NetIncome.StringFixed(2); got != "1000.00" {
		t.Fatalf("net income: got %s, want 1000.00", got)
	}
	if got := report.SavingsRate.StringFixed(2); got != "100.00" {
		t.Fatalf("savings rate: got %s, want 100.00", got)
	}

	// 30 (savings) + 25 (positive net) + 0 (no targets -> 0% progress)
	// + 15 (no budgets -> none over) + 5 (stable trend) = 75.
	if report.HealthScore != 75 {
		t.Fatalf("health score: got %d, want 75", report.HealthScore)
	}
}

func TestAnalyzeSpendingTrend(t *testing.T) {
	now := time.Date(2024, 2, 25, 0, 0, 0, 0, time.UTC)
	engine := NewEngine(DefaultConfig())

	report := engine.Analyze(Input{
		Transactions: []core.Transaction{
			tx(core.Expense, 2024, 1, 10, 50000, "Food"),
			tx(core.Expense, 2024, 2, 10, 80000, "Food"),
		},
		Now:            now,
		CurrencySymbol: "€",
	})

	if got := report.Trends.MonthlySpending["2024-01"].StringFixed(2); got != "500.00" {
		t.Fatalf("2024-01 spending: got %s", got)
	}
	if got := report.Trends.MonthlySpending["2024-02"].StringFixed(2); got != "800.00" {
		t.Fatalf("2024-02 spending: got %s", got)
	}
	if got := report.Trends.Trend.StringFixed(2); got != "150.00" {
		t.Fatalf("trend: got %s, want 150.00", got)
	}
	if report.Trends.Direction != TrendIncreasing {
		t.Fatalf("direction: got %s, want increasing", report.Trends.Direction)
	}
}

func TestAnalyzeCompletedTarget(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	engine := NewEngine(DefaultConfig())

	report := engine.Analyze(Input{
		Targets: []core.Target{{
			Name:          "Emergency fund",
			TargetAmount:  core.Money{Cents: 1000000},
			CurrentAmount: core.Money{Cents: 1000000},
			CreatedAt:     core.NewDate(2024, 1, 1),
		}},
		Now:            now,
		CurrencySymbol: "€",
	})

	targets := report.Targets
	if targets.Completed != 1 || targets.OnTrack != 0 || targets.Behind != 0 {
		t.Fatalf("got %+v", targets)
	}
	if got := targets.OverallProgress.StringFixed(2); got != "100.00" {
		t.Fatalf("overall progress: got %s, want 100.00", got)
	}
}

func TestAnalyzeBudgetOverspend(t *testing.T) {
	now := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	engine := NewEngine(DefaultConfig())

	report := engine.Analyze(Input{
		Transactions: []core.Transaction{
			tx(core.Expense, 2024, 3, 5, 120000, "Rent"),
		},
		Budgets: []core.Budget{
			{Category: "Rent", Amount: core.Money{Cents: 100000}, Month: 3, Year: 2024},
		},
		Now:            now,
		CurrencySymbol: "€",
	})

	if report.Budgets.OverBudget != 1 {
		t.Fatalf("over budget: got %d, want 1", report.Budgets.OverBudget)
	}
	// Capped contribution: the aggregate sees the budget ceiling, not 1200.
	if got := report.Budgets.TotalSpent.StringFixed(2); got != "1000.00" {
		t.Fatalf("total spent: got %s, want 1000.00", got)
	}

	rec, ok := findRecommendation(report.Recommendations, "budget")
	if !ok {
		t.Fatalf("expected a budget overspending recommendation")
	}
	if rec.Title != "Budget Overspending" {
		t.Fatalf("title: got %q", rec.Title)
	}
}

func TestAnalyzeEmptyInputs(t *testing.T) {
	now := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	engine := NewEngine(DefaultConfig())

	report := engine.Analyze(Input{Now: now, CurrencySymbol: "€"})

	if report.HealthScore < 0 || report.HealthScore > 100 {
		t.Fatalf("score out of range: %d", report.HealthScore)
	}
	// Per the factor table: zero net income still sits in the >= -1000 band
	// (15) and zero budgets mean nothing is over budget (15); the empty
	// trend is stable (5).
	if report.HealthScore != 35 {
		t.Fatalf("empty-input score: got %d, want 35", report.HealthScore)
	}

	if !report.SavingsRate.IsZero() {
		t.Fatalf("savings rate: got %s, want 0", report.SavingsRate)
	}
	if !report.Budgets.Utilization.IsZero() {
		t.Fatalf("utilization: got %s, want 0", report.Budgets.Utilization)
	}
	if report.Period.Month != 5 || report.Period.Year != 2024 {
		t.Fatalf("period: %+v", report.Period)
	}
	if report.Summary.HealthStatus != "Poor" {
		t.Fatalf("status: got %s", report.Summary.HealthStatus)
	}
}

func TestAnalyzeIdempotent(t *testing.T) {
	now := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	engine := NewEngine(DefaultConfig())

	in := Input{
		Transactions: []core.Transaction{
			tx(core.Income, 2024, 1, 5, 250000, "Salary"),
			tx(core.Expense, 2024, 1, 10, 50000, "Food"),
			tx(core.Expense, 2024, 2, 10, 80000, "Food"),
			tx(core.Expense, 2024, 3, 1, 30000, ""),
			tx(core.Investment, 2024, 2, 1, 40000, "Stocks"),
		},
		Targets: []core.Target{{
			Name:          "House",
			TargetAmount:  core.Money{Cents: 5000000},
			CurrentAmount: core.Money{Cents: 1000000},
			TargetDate:    core.NewDate(2026, 1, 1),
			CreatedAt:     core.NewDate(2024, 1, 1),
		}},
		Budgets: []core.Budget{
			{Category: "Food", Amount: core.Money{Cents: 60000}, Month: 3, Year: 2024},
		},
		Now:            now,
		CurrencySymbol: "€",
	}

	first, err := json.Marshal(engine.Analyze(in))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	second, err := json.Marshal(engine.Analyze(in))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Fatalf("reports differ:\n%s\n%s", first, second)
	}
}

func TestAnalyzeSummaryThresholds(t *testing.T) {
	now := time.Date(2024, 2, 20, 0, 0, 0, 0, time.UTC)
	engine := NewEngine(DefaultConfig())

	report := engine.Analyze(Input{
		Transactions: []core.Transaction{
			tx(core.Income, 2024, 1, 5, 300000, "Salary"),
			tx(core.Income, 2024, 2, 5, 300000, "Salary"),
			tx(core.Expense, 2024, 1, 10, 100000, "Rent"),
			tx(core.Expense, 2024, 2, 10, 100000, "Rent"),
			tx(core.Investment, 2024, 1, 15, 50000, "Index fund"),
		},
		Now:            now,
		CurrencySymbol: "€",
	})

	if len(report.Summary.Strengths) == 0 {
		t.Fatalf("expected strengths for a healthy profile")
	}
	if report.Summary.KeyMetrics.MonthlyIncome.StringFixed(2) != "3000.00" {
		t.Fatalf("monthly income: got %s", report.Summary.KeyMetrics.MonthlyIncome.StringFixed(2))
	}
	if report.Summary.KeyMetrics.MonthlySavings.StringFixed(2) != "2000.00" {
		t.Fatalf("monthly savings: got %s", report.Summary.KeyMetrics.MonthlySavings.StringFixed(2))
	}

	// Needs/wants split accompanies the summary: Rent is a need.
	if report.Summary.SpendingSplit.Needs.StringFixed(2) != "2000.00" {
		t.Fatalf("needs: got %s", report.Summary.SpendingSplit.Needs.StringFixed(2))
	}
}
