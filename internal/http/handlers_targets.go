package http

import (
	"net/http"

	"bilancio/internal/core"
)

type targetResponse struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	TargetAmount  string `json:"targetAmount"`
	CurrentAmount string `json:"currentAmount"`
	TargetDate    string `json:"targetDate,omitempty"`
	CreatedAt     string `json:"createdAt"`
}

func targetToResponse(t core.Target) targetResponse {
	resp := targetResponse{
		ID:            t.ID,
		Name:          t.Name,
		TargetAmount:  t.TargetAmount.String(),
		CurrentAmount: t.CurrentAmount.String(),
		CreatedAt:     t.CreatedAt.Format(dateLayout),
	}
	if !t.TargetDate.IsEmpty() {
		resp.TargetDate = t.TargetDate.Format(dateLayout)
	}
	return resp
}

func (s *Server) handleCreateTarget(w http.ResponseWriter, r *http.Request) {
	var req targetRequest
	if err := decodeBody(r, &req); err != nil {
		BadRequestError("invalid request body").Write(w)
		return
	}

	target, err := req.toDomain()
	if err != nil {
		UnprocessableEntityError(err.Error()).Write(w)
		return
	}

	created, err := s.tracker.CreateTarget(r.Context(), target)
	if err != nil {
		writeDomainError(w, r, "create_target", err)
		return
	}

	s.invalidateReadCaches()

	NewJSONResponse().
		Status(http.StatusCreated).
		Body(targetToResponse(created)).
		Write(w)
}

func (s *Server) handleListTargets(w http.ResponseWriter, r *http.Request) {
	targets, err := s.tracker.ListTargets(r.Context())
	if err != nil {
		writeDomainError(w, r, "list_targets", err)
		return
	}

	out := make([]targetResponse, 0, len(targets))
	for _, t := range targets {
		out = append(out, targetToResponse(t))
	}

	NewJSONResponse().Body(out).Write(w)
}

func (s *Server) handleContributeToTarget(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		BadRequestError("invalid target id").Write(w)
		return
	}

	var req contributionRequest
	if err := decodeBody(r, &req); err != nil {
		BadRequestError("invalid request body").Write(w)
		return
	}

	cents, err := core.ParseDecimalToCents(req.Amount)
	if err != nil {
		UnprocessableEntityError("invalid contribution amount").Write(w)
		return
	}

	updated, err := s.tracker.ContributeToTarget(r.Context(), id, core.Money{Cents: cents})
	if err != nil {
		writeDomainError(w, r, "contribute_to_target", err)
		return
	}

	s.invalidateReadCaches()

	NewJSONResponse().Body(targetToResponse(updated)).Write(w)
}

func (s *Server) handleDeleteTarget(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		BadRequestError("invalid target id").Write(w)
		return
	}

	if err := s.tracker.DeleteTarget(r.Context(), id); err != nil {
		writeDomainError(w, r, "delete_target", err)
		return
	}

	s.invalidateReadCaches()

	NewJSONResponse().Status(http.StatusNoContent).Write(w)
}
