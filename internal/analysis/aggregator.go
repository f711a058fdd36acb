package analysis

import (
	"sort"

	"github.com/shopspring/decimal"

	"bilancio/internal/core"
)

// CategoryCents is a per-category sum in cents, the engine's internal unit
// of account.
type CategoryCents struct {
	Category core.Category
	Cents    int64
}

// TypeAggregate accumulates one transaction type (income, expense or
// investment) across the whole input window.
type TypeAggregate struct {
	TotalCents int64
	Count      int
	// ByCategory is sorted by amount descending; ties break on category name
	// so repeated runs over the same input produce identical output.
	ByCategory []CategoryCents
	// Months is the number of calendar months spanned by this type's
	// transactions, inclusive of both endpoints. Zero when the type has no
	// transactions.
	Months int
}

// Aggregates groups transactions by type, category and calendar month.
type Aggregates struct {
	Income      TypeAggregate
	Expenses    TypeAggregate
	Investments TypeAggregate

	// Monthly totals in cents keyed by "YYYY-MM".
	MonthlyIncome   map[string]int64
	MonthlySpending map[string]int64
}

// MonthlyAverage returns the total divided by the months spanned, rounded to
// two decimals. Zero when the type has no transactions.
func (a TypeAggregate) MonthlyAverage() decimal.Decimal {
	if a.Months == 0 {
		return decimal.Zero
	}
	return decimal.New(a.TotalCents, -2).
		Div(decimal.NewFromInt(int64(a.Months))).
		Round(2)
}

type typeAccumulator struct {
	totalCents int64
	count      int
	byCategory map[core.Category]int64
	haveDates  bool
	earliest   int // year*12 + month-1
	latest     int
}

func newTypeAccumulator() *typeAccumulator {
	return &typeAccumulator{byCategory: make(map[core.Category]int64)}
}

func (acc *typeAccumulator) add(tx core.Transaction) {
	acc.totalCents += tx.Amount.Cents
	acc.count++
	acc.byCategory[tx.Category.OrUncategorized()] += tx.Amount.Cents

	m := tx.Date.Year()*12 + tx.Date.Month() - 1
	if !acc.haveDates {
		acc.earliest, acc.latest = m, m
		acc.haveDates = true
		return
	}
	if m < acc.earliest {
		acc.earliest = m
	}
	if m > acc.latest {
		acc.latest = m
	}
}

func (acc *typeAccumulator) finish() TypeAggregate {
	agg := TypeAggregate{
		TotalCents: acc.totalCents,
		Count:      acc.count,
	}
	if acc.haveDates {
		agg.Months = acc.latest - acc.earliest + 1
	}

	agg.ByCategory = make([]CategoryCents, 0, len(acc.byCategory))
	for cat, cents := range acc.byCategory {
		agg.ByCategory = append(agg.ByCategory, CategoryCents{Category: cat, Cents: cents})
	}
	sort.Slice(agg.ByCategory, func(i, j int) bool {
		if agg.ByCategory[i].Cents != agg.ByCategory[j].Cents {
			return agg.ByCategory[i].Cents > agg.ByCategory[j].Cents
		}
		return agg.ByCategory[i].Category < agg.ByCategory[j].Category
	})
	return agg
}

// Aggregate sums transactions by type, by category and by calendar month.
// Input order does not matter and the input is never mutated.
func Aggregate(txs []core.Transaction) Aggregates {
	income := newTypeAccumulator()
	expenses := newTypeAccumulator()
	investments := newTypeAccumulator()

	monthlyIncome := make(map[string]int64)
	monthlySpending := make(map[string]int64)

	for _, tx := range txs {
		switch tx.Type {
		case core.Income:
			income.add(tx)
			monthlyIncome[tx.Date.MonthKey()] += tx.Amount.Cents
		case core.Expense:
			expenses.add(tx)
			monthlySpending[tx.Date.MonthKey()] += tx.Amount.Cents
		case core.Investment:
			investments.add(tx)
		}
	}

	return Aggregates{
		Income:          income.finish(),
		Expenses:        expenses.finish(),
		Investments:     investments.finish(),
		MonthlyIncome:   monthlyIncome,
		MonthlySpending: monthlySpending,
	}
}
