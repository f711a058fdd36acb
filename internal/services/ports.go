package services

import (
	"context"

	"bilancio/internal/core"
)

// Store is the persistence surface the tracker needs
type Store interface {
	CreateTransaction(ctx context.Context, tx core.Transaction) (core.Transaction, error)
	GetTransaction(ctx context.Context, id int64) (core.Transaction, error)
	ListTransactions(ctx context.Context) ([]core.Transaction, error)
	ListTransactionsByMonth(ctx context.Context, year, month int) ([]core.Transaction, error)
	DeleteTransaction(ctx context.Context, id int64) error

	CreateTarget(ctx context.Context, t core.Target) (core.Target, error)
	GetTarget(ctx context.Context, id int64) (core.Target, error)
	ListTargets(ctx context.Context) ([]core.Target, error)
	AddToTarget(ctx context.Context, id int64, delta core.Money) (core.Target, error)
	DeleteTarget(ctx context.Context, id int64) error

	CreateBudget(ctx context.Context, b core.Budget) (core.Budget, error)
	ListBudgets(ctx context.Context) ([]core.Budget, error)
	ListBudgetsByMonth(ctx context.Context, month, year int) ([]core.Budget, error)
	DeleteBudget(ctx context.Context, id int64) error

	ListCategories(ctx context.Context) ([]string, error)

	Close() error
}

// EventPublisher publishes change events for downstream workers
type EventPublisher interface {
	PublishChangeEvent(ctx context.Context, kind string, id int64) error
	Close() error
}

// CategoryStore is the surface needed to provision default categories
type CategoryStore interface {
	UpsertCategory(ctx context.Context, name, kind string) error
	GetCategoryCount(ctx context.Context) (int64, error)
}

// ReportStore loads the collections the analysis engine consumes
type ReportStore interface {
	ListTransactions(ctx context.Context) ([]core.Transaction, error)
	ListTransactionsByDateRange(ctx context.Context, from, to core.Date) ([]core.Transaction, error)
	ListTargets(ctx context.Context) ([]core.Target, error)
	ListBudgets(ctx context.Context) ([]core.Budget, error)
}
