package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"bilancio/internal/analysis"
	"bilancio/internal/core"
)

type fakeTracker struct {
	transactions map[int64]core.Transaction
	targets      map[int64]core.Target
	budgets      map[int64]core.Budget
	categories   []string
	nextID       int64
}

func newFakeTracker() *fakeTracker {
	return &fakeTracker{
		transactions: make(map[int64]core.Transaction),
		targets:      make(map[int64]core.Target),
		budgets:      make(map[int64]core.Budget),
	}
}

func (f *fakeTracker) id() int64 {
	f.nextID++
	return f.nextID
}

func (f *fakeTracker) CreateTransaction(_ context.Context, tx core.Transaction) (core.Transaction, error) {
	if err := tx.Validate(); err != nil {
		return core.Transaction{}, err
	}
	tx.ID = f.id()
	f.transactions[tx.ID] = tx
	return tx, nil
}

func (f *fakeTracker) GetTransaction(_ context.Context, id int64) (core.Transaction, error) {
	tx, ok := f.transactions[id]
	if !ok {
		return core.Transaction{}, core.ErrNotFound
	}
	return tx, nil
}

func (f *fakeTracker) ListTransactions(context.Context) ([]core.Transaction, error) {
	out := make([]core.Transaction, 0, len(f.transactions))
	for _, tx := range f.transactions {
		out = append(out, tx)
	}
	return out, nil
}

func (f *fakeTracker) ListTransactionsByMonth(_ context.Context, year, month int) ([]core.Transaction, error) {
	var out []core.Transaction
	for _, tx := range f.transactions {
		if tx.Date.Year() == year && tx.Date.Month() == month {
			out = append(out, tx)
		}
	}
	return out, nil
}

func (f *fakeTracker) DeleteTransaction(_ context.Context, id int64) error {
	if _, ok := f.transactions[id]; !ok {
		return core.ErrNotFound
	}
	delete(f.transactions, id)
	return nil
}

func (f *fakeTracker) CreateTarget(_ context.Context, t core.Target) (core.Target, error) {
	if t.CreatedAt.IsEmpty() {
		t.CreatedAt = core.NewDate(2024, 1, 1)
	}
	if err := t.Validate(); err != nil {
		return core.Target{}, err
	}
	t.ID = f.id()
	f.targets[t.ID] = t
	return t, nil
}

func (f *fakeTracker) ListTargets(context.Context) ([]core.Target, error) {
	out := make([]core.Target, 0, len(f.targets))
	for _, t := range f.targets {
		out = append(out, t)
	}
	return out, nil
}

func (f *fakeTracker) ContributeToTarget(_ context.Context, id int64, amount core.Money) (core.Target, error) {
	if amount.Cents <= 0 {
		return core.Target{}, core.ErrInvalidAmount
	}
	t, ok := f.targets[id]
	if !ok {
		return core.Target{}, core.ErrNotFound
	}
	t.CurrentAmount.Cents += amount.Cents
	f.targets[id] = t
	return t, nil
}

func (f *fakeTracker) DeleteTarget(_ context.Context, id int64) error {
	if _, ok := f.targets[id]; !ok {
		return core.ErrNotFound
	}
	delete(f.targets, id)
	return nil
}

func (f *fakeTracker) CreateBudget(_ context.Context, b core.Budget) (core.Budget, error) {
	if err := b.Validate(); err != nil {
		return core.Budget{}, err
	}
	b.ID = f.id()
	f.budgets[b.ID] = b
	return b, nil
}

func (f *fakeTracker) ListBudgets(context.Context) ([]core.Budget, error) {
	out := make([]core.Budget, 0, len(f.budgets))
	for _, b := range f.budgets {
		out = append(out, b)
	}
	return out, nil
}

func (f *fakeTracker) ListBudgetsByMonth(_ context.Context, month, year int) ([]core.Budget, error) {
	var out []core.Budget
	for _, b := range f.budgets {
		if b.Month == month && b.Year == year {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeTracker) DeleteBudget(_ context.Context, id int64) error {
	if _, ok := f.budgets[id]; !ok {
		return core.ErrNotFound
	}
	delete(f.budgets, id)
	return nil
}

func (f *fakeTracker) ListCategories(context.Context) ([]string, error) {
	return f.categories, nil
}

type fakeReportBuilder struct {
	report analysis.Report
	calls  int
}

func (f *fakeReportBuilder) BuildReport(context.Context) (analysis.Report, error) {
	f.calls++
	return f.report, nil
}

func (f *fakeReportBuilder) BuildReportRange(context.Context, core.Date, core.Date) (analysis.Report, error) {
	f.calls++
	return f.report, nil
}

func newTestServer(t *testing.T) (*Server, *fakeTracker, *fakeReportBuilder) {
	t.Helper()
	tracker := newFakeTracker()
	reports := &fakeReportBuilder{report: analysis.Report{HealthScore: 75}}
	srv := NewServer(":0", tracker, reports)
	t.Cleanup(func() { _ = srv.Shutdown(context.Background()) })
	return srv, tracker, reports
}

func do(srv *Server, method, path, body string) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	srv.Server.Handler.ServeHTTP(rr, req)
	return rr
}

func TestHealthEndpoints(t *testing.T) {
	srv, _, _ := newTestServer(t)

	for _, path := range []string{"/healthz", "/readyz"} {
		rr := do(srv, http.MethodGet, path, "")
		if rr.Code != http.StatusOK {
			t.Fatalf("%s status=%d", path, rr.Code)
		}
	}
}

func TestTransactionLifecycle(t *testing.T) {
	srv, _, _ := newTestServer(t)

	rr := do(srv, http.MethodPost, "/api/transactions",
		`{"date":"2024-03-15","amount":"12.34","type":"expense","category":"Groceries"}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("create status=%d body=%s", rr.Code, rr.Body.String())
	}

	var created transactionResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode create response: %v", err)
	}
	if created.Amount != "12.34" || created.Type != "expense" {
		t.Fatalf("unexpected created transaction: %+v", created)
	}

	rr = do(srv, http.MethodGet, "/api/transactions", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("list status=%d", rr.Code)
	}
	var listed []transactionResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &listed); err != nil {
		t.Fatalf("decode list response: %v", err)
	}
	if len(listed) != 1 {
		t.Fatalf("listed transactions: got %d, want 1", len(listed))
	}

	rr = do(srv, http.MethodGet, "/api/transactions/1", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("get status=%d", rr.Code)
	}

	rr = do(srv, http.MethodDelete, "/api/transactions/1", "")
	if rr.Code != http.StatusNoContent {
		t.Fatalf("delete status=%d", rr.Code)
	}

	rr = do(srv, http.MethodGet, "/api/transactions/1", "")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("get after delete status=%d, want 404", rr.Code)
	}
}

func TestCreateTransactionValidation(t *testing.T) {
	srv, _, _ := newTestServer(t)

	// Malformed JSON
	rr := do(srv, http.MethodPost, "/api/transactions", `{`)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("malformed body status=%d, want 400", rr.Code)
	}

	// Bad amount
	rr = do(srv, http.MethodPost, "/api/transactions",
		`{"date":"2024-03-15","amount":"abc","type":"expense","category":"Groceries"}`)
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("bad amount status=%d, want 422", rr.Code)
	}

	// Unknown transaction type
	rr = do(srv, http.MethodPost, "/api/transactions",
		`{"date":"2024-03-15","amount":"12.34","type":"transfer","category":"Groceries"}`)
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("bad type status=%d, want 422", rr.Code)
	}

	// Bad date
	rr = do(srv, http.MethodPost, "/api/transactions",
		`{"date":"15/03/2024","amount":"12.34","type":"expense","category":"Groceries"}`)
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("bad date status=%d, want 422", rr.Code)
	}
}

func TestTargetContributeFlow(t *testing.T) {
	srv, _, _ := newTestServer(t)

	rr := do(srv, http.MethodPost, "/api/targets",
		`{"name":"Emergency Fund","targetAmount":"5000.00"}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("create target status=%d body=%s", rr.Code, rr.Body.String())
	}

	rr = do(srv, http.MethodPost, "/api/targets/1/contribute", `{"amount":"250.00"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("contribute status=%d body=%s", rr.Code, rr.Body.String())
	}
	var updated targetResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &updated); err != nil {
		t.Fatalf("decode contribute response: %v", err)
	}
	if updated.CurrentAmount != "250.00" {
		t.Fatalf("current amount: got %s, want 250.00", updated.CurrentAmount)
	}

	// Zero contribution is rejected
	rr = do(srv, http.MethodPost, "/api/targets/1/contribute", `{"amount":"0"}`)
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("zero contribution status=%d, want 422", rr.Code)
	}

	// Contributing to a missing target is a 404
	rr = do(srv, http.MethodPost, "/api/targets/99/contribute", `{"amount":"10.00"}`)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("missing target status=%d, want 404", rr.Code)
	}
}

func TestBudgetMonthFilter(t *testing.T) {
	srv, _, _ := newTestServer(t)

	for _, body := range []string{
		`{"category":"Groceries","amount":"400.00","month":3,"year":2024}`,
		`{"category":"Groceries","amount":"450.00","month":4,"year":2024}`,
	} {
		rr := do(srv, http.MethodPost, "/api/budgets", body)
		if rr.Code != http.StatusCreated {
			t.Fatalf("create budget status=%d body=%s", rr.Code, rr.Body.String())
		}
	}

	rr := do(srv, http.MethodGet, "/api/budgets?month=3&year=2024", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("filtered list status=%d", rr.Code)
	}
	var filtered []budgetResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &filtered); err != nil {
		t.Fatalf("decode filtered response: %v", err)
	}
	if len(filtered) != 1 || filtered[0].Month != 3 {
		t.Fatalf("unexpected filtered budgets: %+v", filtered)
	}

	rr = do(srv, http.MethodGet, "/api/budgets?month=13&year=2024", "")
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("invalid month status=%d, want 422", rr.Code)
	}

	rr = do(srv, http.MethodGet, "/api/budgets", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("full list status=%d", rr.Code)
	}
	var all []budgetResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &all); err != nil {
		t.Fatalf("decode full response: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("all budgets: got %d, want 2", len(all))
	}
}

func TestTransactionMonthFilter(t *testing.T) {
	srv, _, _ := newTestServer(t)

	for _, body := range []string{
		`{"date":"2024-03-15","amount":"12.34","type":"expense","category":"Groceries"}`,
		`{"date":"2024-04-01","amount":"8.00","type":"expense","category":"Groceries"}`,
	} {
		rr := do(srv, http.MethodPost, "/api/transactions", body)
		if rr.Code != http.StatusCreated {
			t.Fatalf("create status=%d body=%s", rr.Code, rr.Body.String())
		}
	}

	rr := do(srv, http.MethodGet, "/api/transactions?month=3&year=2024", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("filtered list status=%d", rr.Code)
	}
	var filtered []transactionResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &filtered); err != nil {
		t.Fatalf("decode filtered response: %v", err)
	}
	if len(filtered) != 1 || filtered[0].Date != "2024-03-15" {
		t.Fatalf("unexpected filtered transactions: %+v", filtered)
	}

	rr = do(srv, http.MethodGet, "/api/transactions?month=13&year=2024", "")
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("invalid month status=%d, want 422", rr.Code)
	}
}

func TestListCategoriesEndpoint(t *testing.T) {
	srv, tracker, _ := newTestServer(t)
	tracker.categories = []string{"Groceries", "Rent", "Entertainment"}

	rr := do(srv, http.MethodGet, "/api/categories", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("list status=%d", rr.Code)
	}

	var resp categoriesResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Categories) != 3 {
		t.Fatalf("got %d categories, want 3", len(resp.Categories))
	}
}

func TestReportCachingAndInvalidation(t *testing.T) {
	srv, _, reports := newTestServer(t)

	for i := 0; i < 2; i++ {
		rr := do(srv, http.MethodGet, "/api/report", "")
		if rr.Code != http.StatusOK {
			t.Fatalf("report status=%d", rr.Code)
		}
	}
	if reports.calls != 1 {
		t.Fatalf("report builds after repeated reads: got %d, want 1", reports.calls)
	}

	// A write invalidates the cached report.
	rr := do(srv, http.MethodPost, "/api/transactions",
		`{"date":"2024-03-15","amount":"10.00","type":"income","category":"Salary"}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("create status=%d", rr.Code)
	}

	rr = do(srv, http.MethodGet, "/api/report", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("report status=%d", rr.Code)
	}
	if reports.calls != 2 {
		t.Fatalf("report builds after write: got %d, want 2", reports.calls)
	}
}

func TestReportRangeParams(t *testing.T) {
	srv, _, _ := newTestServer(t)

	rr := do(srv, http.MethodGet, "/api/report?from=2024-03-01&to=2024-03-31", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("range report status=%d", rr.Code)
	}

	// Half a window is rejected
	rr = do(srv, http.MethodGet, "/api/report?from=2024-03-01", "")
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("partial range status=%d, want 422", rr.Code)
	}

	// Inverted bounds are rejected
	rr = do(srv, http.MethodGet, "/api/report?from=2024-03-31&to=2024-03-01", "")
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("inverted range status=%d, want 422", rr.Code)
	}
}
