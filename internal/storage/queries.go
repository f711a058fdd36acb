package storage

import (
	"context"
	"database/sql"
)

// DBTX is satisfied by *sql.DB and *sql.Tx
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Queries wraps the raw SQL statements used by the repository
type Queries struct {
	db DBTX
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

type TransactionRow struct {
	ID          int64
	TxDate      string
	AmountCents int64
	TxType      string
	Category    string
	TargetID    int64
}

type CreateTransactionParams struct {
	TxDate      string
	AmountCents int64
	TxType      string
	Category    string
	TargetID    int64
}

const createTransaction = `
INSERT INTO transactions (tx_date, amount_cents, tx_type, category, target_id)
VALUES (?, ?, ?, ?, ?)
RETURNING id, tx_date, amount_cents, tx_type, category, target_id
`

func (q *Queries) CreateTransaction(ctx context.Context, arg CreateTransactionParams) (TransactionRow, error) {
	row := q.db.QueryRowContext(ctx, createTransaction,
		arg.TxDate, arg.AmountCents, arg.TxType, arg.Category, arg.TargetID)
	var t TransactionRow
	err := row.Scan(&t.ID, &t.TxDate, &t.AmountCents, &t.TxType, &t.Category, &t.TargetID)
	return t, err
}

const getTransaction = `
SELECT id, tx_date, amount_cents, tx_type, category, target_id
FROM transactions
WHERE id = ? AND deleted_at = ''
`

func (q *Queries) GetTransaction(ctx context.Context, id int64) (TransactionRow, error) {
	row := q.db.QueryRowContext(ctx, getTransaction, id)
	var t TransactionRow
	err := row.Scan(&t.ID, &t.TxDate, &t.AmountCents, &t.TxType, &t.Category, &t.TargetID)
	return t, err
}

const listTransactions = `
SELECT id, tx_date, amount_cents, tx_type, category, target_id
FROM transactions
WHERE deleted_at = ''
ORDER BY tx_date, id
`

func (q *Queries) ListTransactions(ctx context.Context) ([]TransactionRow, error) {
	rows, err := q.db.QueryContext(ctx, listTransactions)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []TransactionRow
	for rows.Next() {
		var t TransactionRow
		if err := rows.Scan(&t.ID, &t.TxDate, &t.AmountCents, &t.TxType, &t.Category, &t.TargetID); err != nil {
			return nil, err
		}
		items = append(items, t)
	}
	return items, rows.Err()
}

const listTransactionsByRange = `
SELECT id, tx_date, amount_cents, tx_type, category, target_id
FROM transactions
WHERE tx_date >= ? AND tx_date < ? AND deleted_at = ''
ORDER BY tx_date, id
`

// ListTransactionsByRange expects half-open date bounds in YYYY-MM-DD form.
func (q *Queries) ListTransactionsByRange(ctx context.Context, from, to string) ([]TransactionRow, error) {
	rows, err := q.db.QueryContext(ctx, listTransactionsByRange, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []TransactionRow
	for rows.Next() {
		var t TransactionRow
		if err := rows.Scan(&t.ID, &t.TxDate, &t.AmountCents, &t.TxType, &t.Category, &t.TargetID); err != nil {
			return nil, err
		}
		items = append(items, t)
	}
	return items, rows.Err()
}

// Transactions are soft-deleted so the audit trail survives; every read
// filters on deleted_at = ''.
const deleteTransaction = `
UPDATE transactions
SET deleted_at = ?
WHERE id = ? AND deleted_at = ''
`

func (q *Queries) DeleteTransaction(ctx context.Context, id int64, deletedAt string) (int64, error) {
	res, err := q.db.ExecContext(ctx, deleteTransaction, deletedAt, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

type TargetRow struct {
	ID           int64
	Name         string
	TargetCents  int64
	CurrentCents int64
	TargetDate   string
	CreatedAt    string
}

type CreateTargetParams struct {
	Name         string
	TargetCents  int64
	CurrentCents int64
	TargetDate   string
	CreatedAt    string
}

const createTarget = `
INSERT INTO targets (name, target_cents, current_cents, target_date, created_at)
VALUES (?, ?, ?, ?, ?)
RETURNING id, name, target_cents, current_cents, target_date, created_at
`

func (q *Queries) CreateTarget(ctx context.Context, arg CreateTargetParams) (TargetRow, error) {
	row := q.db.QueryRowContext(ctx, createTarget,
		arg.Name, arg.TargetCents, arg.CurrentCents, arg.TargetDate, arg.CreatedAt)
	var t TargetRow
	err := row.Scan(&t.ID, &t.Name, &t.TargetCents, &t.CurrentCents, &t.TargetDate, &t.CreatedAt)
	return t, err
}

const getTarget = `
SELECT id, name, target_cents, current_cents, target_date, created_at
FROM targets
WHERE id = ?
`

func (q *Queries) GetTarget(ctx context.Context, id int64) (TargetRow, error) {
	row := q.db.QueryRowContext(ctx, getTarget, id)
	var t TargetRow
	err := row.Scan(&t.ID, &t.Name, &t.TargetCents, &t.CurrentCents, &t.TargetDate, &t.CreatedAt)
	return t, err
}

const listTargets = `
SELECT id, name, target_cents, current_cents, target_date, created_at
FROM targets
ORDER BY id
`

func (q *Queries) ListTargets(ctx context.Context) ([]TargetRow, error) {
	rows, err := q.db.QueryContext(ctx, listTargets)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []TargetRow
	for rows.Next() {
		var t TargetRow
		if err := rows.Scan(&t.ID, &t.Name, &t.TargetCents, &t.CurrentCents, &t.TargetDate, &t.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, t)
	}
	return items, rows.Err()
}

const addToTarget = `
UPDATE targets
SET current_cents = current_cents + ?
WHERE id = ?
RETURNING id, name, target_cents, current_cents, target_date, created_at
`

func (q *Queries) AddToTarget(ctx context.Context, id int64, deltaCents int64) (TargetRow, error) {
	row := q.db.QueryRowContext(ctx, addToTarget, deltaCents, id)
	var t TargetRow
	err := row.Scan(&t.ID, &t.Name, &t.TargetCents, &t.CurrentCents, &t.TargetDate, &t.CreatedAt)
	return t, err
}

const deleteTarget = `DELETE FROM targets WHERE id = ?`

func (q *Queries) DeleteTarget(ctx context.Context, id int64) (int64, error) {
	res, err := q.db.ExecContext(ctx, deleteTarget, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

type BudgetRow struct {
	ID          int64
	Category    string
	AmountCents int64
	Month       int64
	Year        int64
}

type CreateBudgetParams struct {
	Category    string
	AmountCents int64
	Month       int64
	Year        int64
}

const createBudget = `
INSERT INTO budgets (category, amount_cents, month, year)
VALUES (?, ?, ?, ?)
ON CONFLICT (category, month, year) DO UPDATE SET amount_cents = excluded.amount_cents
RETURNING id, category, amount_cents, month, year
`

func (q *Queries) CreateBudget(ctx context.Context, arg CreateBudgetParams) (BudgetRow, error) {
	row := q.db.QueryRowContext(ctx, createBudget,
		arg.Category, arg.AmountCents, arg.Month, arg.Year)
	var b BudgetRow
	err := row.Scan(&b.ID, &b.Category, &b.AmountCents, &b.Month, &b.Year)
	return b, err
}

const listBudgets = `
SELECT id, category, amount_cents, month, year
FROM budgets
ORDER BY year, month, category
`

func (q *Queries) ListBudgets(ctx context.Context) ([]BudgetRow, error) {
	rows, err := q.db.QueryContext(ctx, listBudgets)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []BudgetRow
	for rows.Next() {
		var b BudgetRow
		if err := rows.Scan(&b.ID, &b.Category, &b.AmountCents, &b.Month, &b.Year); err != nil {
			return nil, err
		}
		items = append(items, b)
	}
	return items, rows.Err()
}

const listBudgetsByMonth = `
SELECT id, category, amount_cents, month, year
FROM budgets
WHERE month = ? AND year = ?
ORDER BY category
`

func (q *Queries) ListBudgetsByMonth(ctx context.Context, month, year int64) ([]BudgetRow, error) {
	rows, err := q.db.QueryContext(ctx, listBudgetsByMonth, month, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []BudgetRow
	for rows.Next() {
		var b BudgetRow
		if err := rows.Scan(&b.ID, &b.Category, &b.AmountCents, &b.Month, &b.Year); err != nil {
			return nil, err
		}
		items = append(items, b)
	}
	return items, rows.Err()
}

const deleteBudget = `DELETE FROM budgets WHERE id = ?`

func (q *Queries) DeleteBudget(ctx context.Context, id int64) (int64, error) {
	res, err := q.db.ExecContext(ctx, deleteBudget, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

const upsertCategory = `
INSERT INTO categories (name, kind)
VALUES (?, ?)
ON CONFLICT (name) DO NOTHING
`

func (q *Queries) UpsertCategory(ctx context.Context, name, kind string) error {
	_, err := q.db.ExecContext(ctx, upsertCategory, name, kind)
	return err
}

const listCategories = `SELECT name FROM categories ORDER BY name`

func (q *Queries) ListCategories(ctx context.Context) ([]string, error) {
	rows, err := q.db.QueryContext(ctx, listCategories)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

const countCategories = `SELECT COUNT(*) FROM categories`

func (q *Queries) CountCategories(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, countCategories).Scan(&n)
	return n, err
}
