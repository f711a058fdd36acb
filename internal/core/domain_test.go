package core

import (
	"testing"
	"time"
)

func TestCategoryOrUncategorized(t *testing.T) {
	cases := []struct {
		in   Category
		want Category
	}{
		{"Food & Dining", "Food & Dining"},
		{"", Uncategorized},
		{"   ", Uncategorized},
	}
	for i, tc := range cases {
		if got := tc.in.OrUncategorized(); got != tc.want {
			t.Fatalf("case %d: got %q, want %q", i, got, tc.want)
		}
	}
}

func TestTransactionValidate(t *testing.T) {
	good := Transaction{
		Date:     NewDate(2025, 1, 1),
		Amount:   Money{Cents: 100},
		Type:     Expense,
		Category: "Food & Dining",
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bads := []Transaction{
		{Date: Date{Time: time.Time{}}, Amount: Money{Cents: 1}, Type: Expense},     // zero date
		{Date: NewDate(2025, 1, 1), Amount: Money{Cents: -1}, Type: Expense},        // negative
		{Date: NewDate(2025, 1, 1), Amount: Money{Cents: 1}, Type: "transfer"},      // unknown type
		{Date: NewDate(2025, 1, 1), Amount: Money{Cents: 1}, Type: Expense, TargetID: 7}, // target on non-investment
	}
	for i, tx := range bads {
		if err := tx.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}

	// Zero amounts are accepted; they simply contribute nothing to sums.
	zero := good
	zero.Amount = Money{Cents: 0}
	if err := zero.Validate(); err != nil {
		t.Fatalf("zero amount should validate, got %v", err)
	}
}

func TestTargetValidate(t *testing.T) {
	good := Target{
		Name:          "Emergency fund",
		TargetAmount:  Money{Cents: 1000000},
		CurrentAmount: Money{Cents: 0},
		CreatedAt:     NewDate(2025, 1, 1),
		TargetDate:    NewDate(2025, 12, 31),
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	noDeadline := good
	noDeadline.TargetDate = Date{}
	if err := noDeadline.Validate(); err != nil {
		t.Fatalf("deadline is optional, got %v", err)
	}

	bads := []Target{
		{Name: "", TargetAmount: Money{Cents: 1}, CreatedAt: NewDate(2025, 1, 1)},
		{Name: "x", TargetAmount: Money{Cents: 0}, CreatedAt: NewDate(2025, 1, 1)},
		{Name: "x", TargetAmount: Money{Cents: 1}, CurrentAmount: Money{Cents: -1}, CreatedAt: NewDate(2025, 1, 1)},
		{Name: "x", TargetAmount: Money{Cents: 1}},
		{Name: "x", TargetAmount: Money{Cents: 1}, CreatedAt: NewDate(2025, 6, 1), TargetDate: NewDate(2025, 1, 1)},
	}
	for i, tg := range bads {
		if err := tg.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestBudgetValidate(t *testing.T) {
	good := Budget{Category: "Rent", Amount: Money{Cents: 100000}, Month: 3, Year: 2025}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bads := []Budget{
		{Category: "", Amount: Money{Cents: 1}, Month: 1, Year: 2025},
		{Category: "Rent", Amount: Money{Cents: -1}, Month: 1, Year: 2025},
		{Category: "Rent", Amount: Money{Cents: 1}, Month: 0, Year: 2025},
		{Category: "Rent", Amount: Money{Cents: 1}, Month: 13, Year: 2025},
		{Category: "Rent", Amount: Money{Cents: 1}, Month: 1, Year: 190},
	}
	for i, b := range bads {
		if err := b.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestDateMonthKey(t *testing.T) {
	if got := NewDate(2024, 2, 29).MonthKey(); got != "2024-02" {
		t.Fatalf("got %q, want 2024-02", got)
	}
	if got := NewDate(2024, 11, 1).MonthKey(); got != "2024-11" {
		t.Fatalf("got %q, want 2024-11", got)
	}
}
