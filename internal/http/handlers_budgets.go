package http

import (
	"net/http"
	"strings"

	"bilancio/internal/core"
)

type budgetResponse struct {
	ID       int64  `json:"id"`
	Category string `json:"category"`
	Amount   string `json:"amount"`
	Month    int    `json:"month"`
	Year     int    `json:"year"`
}

func budgetToResponse(b core.Budget) budgetResponse {
	return budgetResponse{
		ID:       b.ID,
		Category: string(b.Category),
		Amount:   b.Amount.String(),
		Month:    b.Month,
		Year:     b.Year,
	}
}

func (s *Server) handleCreateBudget(w http.ResponseWriter, r *http.Request) {
	var req budgetRequest
	if err := decodeBody(r, &req); err != nil {
		BadRequestError("invalid request body").Write(w)
		return
	}

	budget, err := req.toDomain()
	if err != nil {
		UnprocessableEntityError(err.Error()).Write(w)
		return
	}

	created, err := s.tracker.CreateBudget(r.Context(), budget)
	if err != nil {
		writeDomainError(w, r, "create_budget", err)
		return
	}

	s.invalidateReadCaches()

	NewJSONResponse().
		Status(http.StatusCreated).
		Body(budgetToResponse(created)).
		Write(w)
}

// handleListBudgets returns every stored budget, or the budgets of a single
// period when month/year query parameters are present.
func (s *Server) handleListBudgets(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	var (
		budgets []core.Budget
		err     error
	)
	if strings.TrimSpace(query.Get("month")) != "" || strings.TrimSpace(query.Get("year")) != "" {
		params := ParseMonthParams(query)
		if params.Month < 1 || params.Month > 12 {
			UnprocessableEntityError("month must be between 1 and 12").Write(w)
			return
		}
		budgets, err = s.tracker.ListBudgetsByMonth(r.Context(), params.Month, params.Year)
	} else {
		budgets, err = s.tracker.ListBudgets(r.Context())
	}
	if err != nil {
		writeDomainError(w, r, "list_budgets", err)
		return
	}

	out := make([]budgetResponse, 0, len(budgets))
	for _, b := range budgets {
		out = append(out, budgetToResponse(b))
	}

	NewJSONResponse().Body(out).Write(w)
}

func (s *Server) handleDeleteBudget(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		BadRequestError("invalid budget id").Write(w)
		return
	}

	if err := s.tracker.DeleteBudget(r.Context(), id); err != nil {
		writeDomainError(w, r, "delete_budget", err)
		return
	}

	s.invalidateReadCaches()

	NewJSONResponse().Status(http.StatusNoContent).Write(w)
}
