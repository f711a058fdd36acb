package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"bilancio/internal/analysis"
	"bilancio/internal/core"
)

// ReportService assembles the stored collections and runs the analysis
// engine over them
type ReportService struct {
	store          ReportStore
	engine         *analysis.Engine
	currencySymbol string
	now            func() time.Time
}

func NewReportService(store ReportStore, engine *analysis.Engine, currencySymbol string) *ReportService {
	return &ReportService{
		store:          store,
		engine:         engine,
		currencySymbol: currencySymbol,
		now:            time.Now,
	}
}

// BuildReport loads all tracked records and produces the analysis report
func (s *ReportService) BuildReport(ctx context.Context) (analysis.Report, error) {
	transactions, err := s.store.ListTransactions(ctx)
	if err != nil {
		return analysis.Report{}, fmt.Errorf("load transactions: %w", err)
	}

	return s.build(ctx, transactions)
}

// BuildReportRange analyzes only the transactions dated within [from, to].
// Targets and budgets are always loaded in full: progress and period budgets
// are stateful, not windowed.
func (s *ReportService) BuildReportRange(ctx context.Context, from, to core.Date) (analysis.Report, error) {
	transactions, err := s.store.ListTransactionsByDateRange(ctx, from, to)
	if err != nil {
		return analysis.Report{}, fmt.Errorf("load transactions in range: %w", err)
	}

	return s.build(ctx, transactions)
}

func (s *ReportService) build(ctx context.Context, transactions []core.Transaction) (analysis.Report, error) {
	targets, err := s.store.ListTargets(ctx)
	if err != nil {
		return analysis.Report{}, fmt.Errorf("load targets: %w", err)
	}

	budgets, err := s.store.ListBudgets(ctx)
	if err != nil {
		return analysis.Report{}, fmt.Errorf("load budgets: %w", err)
	}

	report := s.engine.Analyze(analysis.Input{
		Transactions:   transactions,
		Targets:        targets,
		Budgets:        budgets,
		Now:            s.now().UTC(),
		CurrencySymbol: s.currencySymbol,
	})

	slog.InfoContext(ctx, "Report built",
		"transactions", len(transactions),
		"targets", len(targets),
		"budgets", len(budgets),
		"health_score", report.HealthScore)

	return *report, nil
}
