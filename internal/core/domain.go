package core

import (
	"errors"
	"strings"
	"time"
)

const (
	Income     TransactionType = "income"
	Expense    TransactionType = "expense"
	Investment TransactionType = "investment"
)

// Uncategorized is the label substituted for a missing or empty category.
const Uncategorized Category = "Uncategorized"

type (
	TransactionType string

	// Category identifies a spending or income category. Transactions and
	// budgets reference categories by this typed name; comparisons are exact
	// (case-sensitive) for parity with the legacy report format.
	Category string

	Date struct {
		time.Time
	}

	Money struct {
		Cents int64
	}

	Transaction struct {
		ID       int64
		Date     Date
		Amount   Money
		Type     TransactionType
		Category Category
		TargetID int64 // 0 when not linked to a savings target
	}

	Target struct {
		ID            int64
		Name          string
		TargetAmount  Money
		CurrentAmount Money
		TargetDate    Date // optional; zero when the target has no deadline
		CreatedAt     Date
	}

	Budget struct {
		ID       int64
		Category Category
		Amount   Money
		Month    int // 1-12
		Year     int
	}
)

var (
	ErrInvalidDate    = errors.New("invalid date")
	ErrInvalidMonth   = errors.New("invalid month")
	ErrInvalidYear    = errors.New("invalid year")
	ErrInvalidAmount  = errors.New("invalid amount")
	ErrNegativeAmount = errors.New("amount cannot be negative")
	ErrInvalidType    = errors.New("invalid transaction type")
	ErrEmptyName      = errors.New("empty target name")
	ErrEmptyCategory  = errors.New("empty budget category")
	ErrNotFound       = errors.New("record not found")
)

// Valid reports whether t is one of the known transaction types.
func (t TransactionType) Valid() bool {
	switch t {
	case Income, Expense, Investment:
		return true
	}
	return false
}

// OrUncategorized returns the category itself, or Uncategorized when the
// category is missing or blank.
func (c Category) OrUncategorized() Category {
	if strings.TrimSpace(string(c)) == "" {
		return Uncategorized
	}
	return c
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// Day returns the day of the month
func (d Date) Day() int {
	return d.Time.Day()
}

// Month returns the month as an int (1-12)
func (d Date) Month() int {
	return int(d.Time.Month())
}

// Year returns the year
func (d Date) Year() int {
	return d.Time.Year()
}

// MonthKey returns the "YYYY-MM" bucket key used for monthly aggregation.
func (d Date) MonthKey() string {
	return d.Format("2006-01")
}

// NewDate creates a new Date from year, month, day
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// IsEmpty returns true if the date is zero (for optional dates such as a
// target deadline)
func (d Date) IsEmpty() bool {
	return d.IsZero()
}

func (m Money) Validate() error {
	if m.Cents < 0 {
		return ErrNegativeAmount
	}
	return nil
}

func (tx Transaction) Validate() error {
	if err := tx.Date.Validate(); err != nil {
		return err
	}
	if err := tx.Amount.Validate(); err != nil {
		return err
	}
	if !tx.Type.Valid() {
		return ErrInvalidType
	}
	if tx.TargetID != 0 && tx.Type != Investment {
		return errors.New("only investments can reference a target")
	}
	return nil
}

func (t Target) Validate() error {
	if len(strings.TrimSpace(t.Name)) == 0 {
		return ErrEmptyName
	}
	if len(t.Name) > 200 {
		return errors.New("target name too long (max 200 characters)")
	}
	if t.TargetAmount.Cents <= 0 {
		return ErrInvalidAmount
	}
	if err := t.CurrentAmount.Validate(); err != nil {
		return err
	}
	if err := t.CreatedAt.Validate(); err != nil {
		return errors.New("invalid created date: " + err.Error())
	}

	// Deadline is optional, but when present it must not precede creation.
	if !t.TargetDate.IsEmpty() && t.TargetDate.Before(t.CreatedAt.Time) {
		return errors.New("target date must be after creation date")
	}

	return nil
}

func (b Budget) Validate() error {
	if strings.TrimSpace(string(b.Category)) == "" {
		return ErrEmptyCategory
	}
	if err := b.Amount.Validate(); err != nil {
		return err
	}
	if b.Month < 1 || b.Month > 12 {
		return ErrInvalidMonth
	}
	if b.Year < 1900 || b.Year > 9999 {
		return ErrInvalidYear
	}
	return nil
}
