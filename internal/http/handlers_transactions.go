package http

import (
	"net/http"
	"strings"

	"bilancio/internal/core"
)

// transactionResponse is the JSON shape of a stored transaction. Amounts go
// out as decimal strings, mirroring what the API accepts.
type transactionResponse struct {
	ID       int64  `json:"id"`
	Date     string `json:"date"`
	Amount   string `json:"amount"`
	Type     string `json:"type"`
	Category string `json:"category"`
	TargetID int64  `json:"targetId,omitempty"`
}

func transactionToResponse(tx core.Transaction) transactionResponse {
	return transactionResponse{
		ID:       tx.ID,
		Date:     tx.Date.Format(dateLayout),
		Amount:   tx.Amount.String(),
		Type:     string(tx.Type),
		Category: string(tx.Category),
		TargetID: tx.TargetID,
	}
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req transactionRequest
	if err := decodeBody(r, &req); err != nil {
		BadRequestError("invalid request body").Write(w)
		return
	}

	tx, err := req.toDomain()
	if err != nil {
		UnprocessableEntityError(err.Error()).Write(w)
		return
	}

	created, err := s.tracker.CreateTransaction(r.Context(), tx)
	if err != nil {
		writeDomainError(w, r, "create_transaction", err)
		return
	}

	s.invalidateReadCaches()

	NewJSONResponse().
		Status(http.StatusCreated).
		Body(transactionToResponse(created)).
		Write(w)
}

// handleListTransactions returns every stored transaction, or a single
// calendar month when month/year query parameters are present. Filtered
// reads skip the cache; only the full listing is worth keeping warm.
func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	var (
		transactions []core.Transaction
		err          error
	)
	if strings.TrimSpace(query.Get("month")) != "" || strings.TrimSpace(query.Get("year")) != "" {
		params := ParseMonthParams(query)
		if params.Month < 1 || params.Month > 12 {
			UnprocessableEntityError("month must be between 1 and 12").Write(w)
			return
		}
		transactions, err = s.tracker.ListTransactionsByMonth(r.Context(), params.Year, params.Month)
	} else {
		transactions, err = s.cachedTransactions(r)
	}
	if err != nil {
		writeDomainError(w, r, "list_transactions", err)
		return
	}

	out := make([]transactionResponse, 0, len(transactions))
	for _, tx := range transactions {
		out = append(out, transactionToResponse(tx))
	}

	NewJSONResponse().Body(out).Write(w)
}

func (s *Server) handleGetTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		BadRequestError("invalid transaction id").Write(w)
		return
	}

	tx, err := s.tracker.GetTransaction(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, "get_transaction", err)
		return
	}

	NewJSONResponse().Body(transactionToResponse(tx)).Write(w)
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		BadRequestError("invalid transaction id").Write(w)
		return
	}

	if err := s.tracker.DeleteTransaction(r.Context(), id); err != nil {
		writeDomainError(w, r, "delete_transaction", err)
		return
	}

	s.invalidateReadCaches()

	NewJSONResponse().Status(http.StatusNoContent).Write(w)
}
