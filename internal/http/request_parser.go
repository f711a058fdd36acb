package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"bilancio/internal/core"
)

const dateLayout = "2006-01-02"

// MonthParams holds parsed year/month values from request parameters.
type MonthParams struct {
	Year  int
	Month int
}

// ParseMonthParams extracts year and month from query parameters, using the
// current date as defaults.
func ParseMonthParams(query url.Values) MonthParams {
	now := time.Now()
	params := MonthParams{
		Year:  now.Year(),
		Month: int(now.Month()),
	}

	if v := strings.TrimSpace(query.Get("year")); v != "" {
		if y, err := strconv.Atoi(v); err == nil {
			params.Year = y
		}
	}
	if v := strings.TrimSpace(query.Get("month")); v != "" {
		if m, err := strconv.Atoi(v); err == nil {
			params.Month = m
		}
	}

	return params
}

// transactionRequest is the JSON body accepted by POST /api/transactions.
// Amounts travel as decimal strings ("123.45") to avoid float drift.
type transactionRequest struct {
	Date     string `json:"date"`
	Amount   string `json:"amount"`
	Type     string `json:"type"`
	Category string `json:"category"`
	TargetID int64  `json:"targetId,omitempty"`
}

func (req transactionRequest) toDomain() (core.Transaction, error) {
	date, err := parseDate(req.Date)
	if err != nil {
		return core.Transaction{}, err
	}

	cents, err := core.ParseDecimalToCents(req.Amount)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("amount: %w", err)
	}

	return core.Transaction{
		Date:     date,
		Amount:   core.Money{Cents: cents},
		Type:     core.TransactionType(strings.TrimSpace(req.Type)),
		Category: core.Category(strings.TrimSpace(req.Category)),
		TargetID: req.TargetID,
	}, nil
}

// targetRequest is the JSON body accepted by POST /api/targets.
type targetRequest struct {
	Name          string `json:"name"`
	TargetAmount  string `json:"targetAmount"`
	CurrentAmount string `json:"currentAmount,omitempty"`
	TargetDate    string `json:"targetDate,omitempty"`
}

func (req targetRequest) toDomain() (core.Target, error) {
	targetCents, err := core.ParseDecimalToCents(req.TargetAmount)
	if err != nil {
		return core.Target{}, fmt.Errorf("targetAmount: %w", err)
	}

	currentCents := int64(0)
	if strings.TrimSpace(req.CurrentAmount) != "" {
		currentCents, err = core.ParseDecimalToCents(req.CurrentAmount)
		if err != nil {
			return core.Target{}, fmt.Errorf("currentAmount: %w", err)
		}
	}

	var targetDate core.Date
	if strings.TrimSpace(req.TargetDate) != "" {
		targetDate, err = parseDate(req.TargetDate)
		if err != nil {
			return core.Target{}, fmt.Errorf("targetDate: %w", err)
		}
	}

	return core.Target{
		Name:          strings.TrimSpace(req.Name),
		TargetAmount:  core.Money{Cents: targetCents},
		CurrentAmount: core.Money{Cents: currentCents},
		TargetDate:    targetDate,
	}, nil
}

// budgetRequest is the JSON body accepted by POST /api/budgets.
type budgetRequest struct {
	Category string `json:"category"`
	Amount   string `json:"amount"`
	Month    int    `json:"month"`
	Year     int    `json:"year"`
}

func (req budgetRequest) toDomain() (core.Budget, error) {
	cents, err := core.ParseDecimalToCents(req.Amount)
	if err != nil {
		return core.Budget{}, fmt.Errorf("amount: %w", err)
	}

	return core.Budget{
		Category: core.Category(strings.TrimSpace(req.Category)),
		Amount:   core.Money{Cents: cents},
		Month:    req.Month,
		Year:     req.Year,
	}, nil
}

// contributionRequest is the JSON body accepted by POST /api/targets/{id}/contribute.
type contributionRequest struct {
	Amount string `json:"amount"`
}

func decodeBody(r *http.Request, dst any) error {
	defer r.Body.Close()

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("decode request body: %w", err)
	}
	return nil
}

func parseDate(s string) (core.Date, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return core.Date{}, fmt.Errorf("date must be YYYY-MM-DD: %w", core.ErrInvalidDate)
	}
	return core.Date{Time: t}, nil
}

// pathID extracts the numeric {id} segment from the route.
func pathID(r *http.Request) (int64, error) {
	raw := r.PathValue("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid id")
	}
	return id, nil
}
