package http

import (
	"errors"
	"log/slog"
	"net/http"

	"bilancio/internal/core"
	applog "bilancio/internal/log"
)

// validationErrors are client mistakes: reported as 422, never logged as
// server failures.
var validationErrors = []error{
	core.ErrInvalidDate,
	core.ErrInvalidMonth,
	core.ErrInvalidYear,
	core.ErrInvalidAmount,
	core.ErrNegativeAmount,
	core.ErrInvalidType,
	core.ErrEmptyName,
	core.ErrEmptyCategory,
}

func isValidationError(err error) bool {
	for _, v := range validationErrors {
		if errors.Is(err, v) {
			return true
		}
	}
	return false
}

// writeDomainError maps a service error onto the matching HTTP response.
func writeDomainError(w http.ResponseWriter, r *http.Request, operation string, err error) {
	switch {
	case errors.Is(err, core.ErrNotFound):
		NotFoundError("record not found").Write(w)
	case isValidationError(err):
		UnprocessableEntityError(err.Error()).Write(w)
	default:
		slog.ErrorContext(r.Context(), "Request failed",
			applog.FieldOperation, operation,
			applog.FieldComponent, applog.ComponentHTTP,
			applog.FieldPath, r.URL.Path,
			applog.FieldError, err)
		InternalServerError("internal error").Write(w)
	}
}

// extractClientIP resolves the caller address, preferring proxy headers.
func extractClientIP(r *http.Request) string {
	if ip := r.Header.Get("X-Forwarded-For"); ip != "" {
		return ip
	}
	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		return ip
	}
	return r.RemoteAddr
}
