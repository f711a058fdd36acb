package analysis

import (
	"github.com/shopspring/decimal"

	"bilancio/internal/core"
)

// BudgetSummary reports spend-vs-budget for a single calendar month.
type BudgetSummary struct {
	TotalBudgets      int             `json:"totalBudgets"`
	TotalBudgetAmount decimal.Decimal `json:"totalBudgetAmount"`
	TotalSpent        decimal.Decimal `json:"totalSpent"`
	OverBudget        int             `json:"overBudget"`
	UnderBudget       int             `json:"underBudget"`
	Utilization       decimal.Decimal `json:"utilization"`
}

// CompareBudgets matches each budget for the given month/year against the
// actual expense spend in its category (exact category-name match).
//
// A category's contribution to TotalSpent is capped at its budget amount so
// one runaway category cannot distort aggregate utilization; the over-budget
// check uses the uncapped spend. Months with no budgets yield a zero-valued
// summary.
func CompareBudgets(budgets []core.Budget, txs []core.Transaction, month, year int) BudgetSummary {
	spentByCategory := make(map[core.Category]int64)
	for _, tx := range txs {
		if tx.Type != core.Expense {
			continue
		}
		if tx.Date.Month() != month || tx.Date.Year() != year {
			continue
		}
		spentByCategory[tx.Category.OrUncategorized()] += tx.Amount.Cents
	}

	var (
		total       int
		budgetCents int64
		spentCents  int64
		over        int
		under       int
	)
	for _, b := range budgets {
		if b.Month != month || b.Year != year {
			continue
		}
		total++
		budgetCents += b.Amount.Cents

		actual := spentByCategory[b.Category.OrUncategorized()]
		if actual > b.Amount.Cents {
			over++
			spentCents += b.Amount.Cents // capped contribution
		} else {
			under++
			spentCents += actual
		}
	}

	return BudgetSummary{
		TotalBudgets:      total,
		TotalBudgetAmount: core.Money{Cents: budgetCents}.Decimal(),
		TotalSpent:        core.Money{Cents: spentCents}.Decimal(),
		OverBudget:        over,
		UnderBudget:       under,
		Utilization:       percentage(spentCents, budgetCents),
	}
}
