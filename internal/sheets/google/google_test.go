package google

import (
	"testing"
	"time"

	"bilancio/internal/analysis"

	"github.com/shopspring/decimal"
)

func TestSnapshotRow(t *testing.T) {
	report := analysis.Report{
		Period:      analysis.Period{Month: 3, Year: 2024},
		HealthScore: 75,
		NetIncome:   decimal.RequireFromString("1700.00"),
		SavingsRate: decimal.RequireFromString("68.00"),
	}
	report.Summary.HealthStatus = "Good"
	report.Income.Total = decimal.RequireFromString("2500.00")
	report.Expenses.Total = decimal.RequireFromString("800.00")
	report.Investments.Total = decimal.Zero
	report.Budgets.OverBudget = 1
	report.Targets.Behind = 2

	now := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)
	row := snapshotRow(report, now)

	if len(row) != 11 {
		t.Fatalf("got %d columns, want 11", len(row))
	}
	if row[0] != "2024-03-15T10:30:00Z" {
		t.Errorf("timestamp: got %v", row[0])
	}
	if row[1] != "2024-03" {
		t.Errorf("period: got %v", row[1])
	}
	if row[2] != 75 {
		t.Errorf("score: got %v", row[2])
	}
	if row[4] != "1700.00" {
		t.Errorf("net income: got %v", row[4])
	}
	if row[9] != 1 || row[10] != 2 {
		t.Errorf("counters: got %v, %v", row[9], row[10])
	}
}
