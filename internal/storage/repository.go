package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"bilancio/internal/core"

	_ "modernc.org/sqlite"
)

const dateLayout = "2006-01-02"

type SQLiteRepository struct {
	db      *sql.DB
	queries *Queries
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	// Run migrations
	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	repo := &SQLiteRepository{
		db:      db,
		queries: New(db),
	}

	return repo, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

func (r *SQLiteRepository) CreateTransaction(ctx context.Context, tx core.Transaction) (core.Transaction, error) {
	row, err := r.queries.CreateTransaction(ctx, CreateTransactionParams{
		TxDate:      tx.Date.Format(dateLayout),
		AmountCents: tx.Amount.Cents,
		TxType:      string(tx.Type),
		Category:    string(tx.Category),
		TargetID:    tx.TargetID,
	})
	if err != nil {
		return core.Transaction{}, fmt.Errorf("create transaction: %w", err)
	}

	created, err := transactionFromRow(row)
	if err != nil {
		return core.Transaction{}, err
	}

	slog.InfoContext(ctx, "Transaction saved to SQLite",
		"id", created.ID,
		"tx_type", created.Type,
		"amount_cents", created.Amount.Cents,
		"category", created.Category)

	return created, nil
}

func (r *SQLiteRepository) GetTransaction(ctx context.Context, id int64) (core.Transaction, error) {
	row, err := r.queries.GetTransaction(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Transaction{}, core.ErrNotFound
	}
	if err != nil {
		return core.Transaction{}, fmt.Errorf("get transaction: %w", err)
	}
	return transactionFromRow(row)
}

func (r *SQLiteRepository) ListTransactions(ctx context.Context) ([]core.Transaction, error) {
	rows, err := r.queries.ListTransactions(ctx)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return transactionsFromRows(rows)
}

// ListTransactionsByMonth returns transactions dated within the given month.
func (r *SQLiteRepository) ListTransactionsByMonth(ctx context.Context, year, month int) ([]core.Transaction, error) {
	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	rows, err := r.queries.ListTransactionsByRange(ctx, from.Format(dateLayout), to.Format(dateLayout))
	if err != nil {
		return nil, fmt.Errorf("list transactions by month: %w", err)
	}
	return transactionsFromRows(rows)
}

// ListTransactionsByDateRange returns transactions with from <= date <= to.
func (r *SQLiteRepository) ListTransactionsByDateRange(ctx context.Context, from, to core.Date) ([]core.Transaction, error) {
	// The query bound is half-open, so push the upper bound one day out.
	upper := to.AddDate(0, 0, 1)

	rows, err := r.queries.ListTransactionsByRange(ctx, from.Format(dateLayout), upper.Format(dateLayout))
	if err != nil {
		return nil, fmt.Errorf("list transactions by range: %w", err)
	}
	return transactionsFromRows(rows)
}

// DeleteTransaction soft-deletes: the row stays for auditing but drops out
// of every listing.
func (r *SQLiteRepository) DeleteTransaction(ctx context.Context, id int64) error {
	affected, err := r.queries.DeleteTransaction(ctx, id, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	if affected == 0 {
		return core.ErrNotFound
	}

	slog.InfoContext(ctx, "Transaction deleted", "id", id)
	return nil
}

func (r *SQLiteRepository) CreateTarget(ctx context.Context, t core.Target) (core.Target, error) {
	targetDate := ""
	if !t.TargetDate.IsEmpty() {
		targetDate = t.TargetDate.Format(dateLayout)
	}

	row, err := r.queries.CreateTarget(ctx, CreateTargetParams{
		Name:         t.Name,
		TargetCents:  t.TargetAmount.Cents,
		CurrentCents: t.CurrentAmount.Cents,
		TargetDate:   targetDate,
		CreatedAt:    t.CreatedAt.Format(dateLayout),
	})
	if err != nil {
		return core.Target{}, fmt.Errorf("create target: %w", err)
	}

	created, err := targetFromRow(row)
	if err != nil {
		return core.Target{}, err
	}

	slog.InfoContext(ctx, "Target saved to SQLite",
		"id", created.ID,
		"name", created.Name,
		"target_cents", created.TargetAmount.Cents)

	return created, nil
}

func (r *SQLiteRepository) GetTarget(ctx context.Context, id int64) (core.Target, error) {
	row, err := r.queries.GetTarget(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Target{}, core.ErrNotFound
	}
	if err != nil {
		return core.Target{}, fmt.Errorf("get target: %w", err)
	}
	return targetFromRow(row)
}

func (r *SQLiteRepository) ListTargets(ctx context.Context) ([]core.Target, error) {
	rows, err := r.queries.ListTargets(ctx)
	if err != nil {
		return nil, fmt.Errorf("list targets: %w", err)
	}

	targets := make([]core.Target, 0, len(rows))
	for _, row := range rows {
		t, err := targetFromRow(row)
		if err != nil {
			return nil, err
		}
		targets = append(targets, t)
	}
	return targets, nil
}

// AddToTarget increments a target's saved amount and returns the updated row.
func (r *SQLiteRepository) AddToTarget(ctx context.Context, id int64, delta core.Money) (core.Target, error) {
	row, err := r.queries.AddToTarget(ctx, id, delta.Cents)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Target{}, core.ErrNotFound
	}
	if err != nil {
		return core.Target{}, fmt.Errorf("add to target: %w", err)
	}

	updated, err := targetFromRow(row)
	if err != nil {
		return core.Target{}, err
	}

	slog.InfoContext(ctx, "Target contribution recorded",
		"id", updated.ID,
		"delta_cents", delta.Cents,
		"current_cents", updated.CurrentAmount.Cents)

	return updated, nil
}

func (r *SQLiteRepository) DeleteTarget(ctx context.Context, id int64) error {
	affected, err := r.queries.DeleteTarget(ctx, id)
	if err != nil {
		return fmt.Errorf("delete target: %w", err)
	}
	if affected == 0 {
		return core.ErrNotFound
	}

	slog.InfoContext(ctx, "Target deleted", "id", id)
	return nil
}

// CreateBudget inserts a budget, replacing the amount when a budget for the
// same category and month already exists.
func (r *SQLiteRepository) CreateBudget(ctx context.Context, b core.Budget) (core.Budget, error) {
	row, err := r.queries.CreateBudget(ctx, CreateBudgetParams{
		Category:    string(b.Category),
		AmountCents: b.Amount.Cents,
		Month:       int64(b.Month),
		Year:        int64(b.Year),
	})
	if err != nil {
		return core.Budget{}, fmt.Errorf("create budget: %w", err)
	}

	created := budgetFromRow(row)

	slog.InfoContext(ctx, "Budget saved to SQLite",
		"id", created.ID,
		"category", created.Category,
		"amount_cents", created.Amount.Cents,
		"month", created.Month,
		"year", created.Year)

	return created, nil
}

func (r *SQLiteRepository) ListBudgets(ctx context.Context) ([]core.Budget, error) {
	rows, err := r.queries.ListBudgets(ctx)
	if err != nil {
		return nil, fmt.Errorf("list budgets: %w", err)
	}

	budgets := make([]core.Budget, 0, len(rows))
	for _, row := range rows {
		budgets = append(budgets, budgetFromRow(row))
	}
	return budgets, nil
}

func (r *SQLiteRepository) ListBudgetsByMonth(ctx context.Context, month, year int) ([]core.Budget, error) {
	rows, err := r.queries.ListBudgetsByMonth(ctx, int64(month), int64(year))
	if err != nil {
		return nil, fmt.Errorf("list budgets by month: %w", err)
	}

	budgets := make([]core.Budget, 0, len(rows))
	for _, row := range rows {
		budgets = append(budgets, budgetFromRow(row))
	}
	return budgets, nil
}

func (r *SQLiteRepository) DeleteBudget(ctx context.Context, id int64) error {
	affected, err := r.queries.DeleteBudget(ctx, id)
	if err != nil {
		return fmt.Errorf("delete budget: %w", err)
	}
	if affected == 0 {
		return core.ErrNotFound
	}

	slog.InfoContext(ctx, "Budget deleted", "id", id)
	return nil
}

func (r *SQLiteRepository) UpsertCategory(ctx context.Context, name, kind string) error {
	if err := r.queries.UpsertCategory(ctx, name, kind); err != nil {
		return fmt.Errorf("upsert category: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) ListCategories(ctx context.Context) ([]string, error) {
	names, err := r.queries.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return names, nil
}

func (r *SQLiteRepository) GetCategoryCount(ctx context.Context) (int64, error) {
	n, err := r.queries.CountCategories(ctx)
	if err != nil {
		return 0, fmt.Errorf("count categories: %w", err)
	}
	return n, nil
}

func transactionFromRow(row TransactionRow) (core.Transaction, error) {
	date, err := time.Parse(dateLayout, row.TxDate)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("parse transaction date %q: %w", row.TxDate, err)
	}

	return core.Transaction{
		ID:       row.ID,
		Date:     core.Date{Time: date},
		Amount:   core.Money{Cents: row.AmountCents},
		Type:     core.TransactionType(row.TxType),
		Category: core.Category(row.Category),
		TargetID: row.TargetID,
	}, nil
}

func transactionsFromRows(rows []TransactionRow) ([]core.Transaction, error) {
	txs := make([]core.Transaction, 0, len(rows))
	for _, row := range rows {
		tx, err := transactionFromRow(row)
		if err != nil {
			return nil, err
		}
		txs = append(txs, tx)
	}
	return txs, nil
}

func targetFromRow(row TargetRow) (core.Target, error) {
	createdAt, err := time.Parse(dateLayout, row.CreatedAt)
	if err != nil {
		return core.Target{}, fmt.Errorf("parse target created date %q: %w", row.CreatedAt, err)
	}

	var targetDate core.Date
	if row.TargetDate != "" {
		d, err := time.Parse(dateLayout, row.TargetDate)
		if err != nil {
			return core.Target{}, fmt.Errorf("parse target date %q: %w", row.TargetDate, err)
		}
		targetDate = core.Date{Time: d}
	}

	return core.Target{
		ID:            row.ID,
		Name:          row.Name,
		TargetAmount:  core.Money{Cents: row.TargetCents},
		CurrentAmount: core.Money{Cents: row.CurrentCents},
		TargetDate:    targetDate,
		CreatedAt:     core.Date{Time: createdAt},
	}, nil
}

func budgetFromRow(row BudgetRow) core.Budget {
	return core.Budget{
		ID:       row.ID,
		Category: core.Category(row.Category),
		Amount:   core.Money{Cents: row.AmountCents},
		Month:    int(row.Month),
		Year:     int(row.Year),
	}
}
