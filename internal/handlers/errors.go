package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/crucial707/notes-api/internal/repo"
	"github.com/crucial707/notes-api/internal/serializers"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// ErrMessageInternal is the generic message for 500 responses. Do not expose internal details to clients.
const ErrMessageInternal = "internal server error"

// JSONError sends a JSON error response with a single "error" field.
func JSONError(w http.ResponseWriter, message string, status int) {
	writeJSON(w, status, map[string]string{"error": message})
}

// JSONValidationError sends a JSON error response with "error" and optional "fields" for field-level details.
// status is typically http.StatusBadRequest (400).
func JSONValidationError(w http.ResponseWriter, message string, fields map[string]string, status int) {
	out := map[string]interface{}{"error": message}
	if len(fields) > 0 {
		out["fields"] = fields
	}
	writeJSON(w, status, out)
}

// respondError maps domain errors to status codes. Unknown errors are logged and hidden behind a 500.
func respondError(w http.ResponseWriter, r *http.Request, op string, err error) {
	var verr *serializers.ValidationError
	switch {
	case errors.As(err, &verr):
		JSONValidationError(w, "validation failed", verr.Fields, http.StatusBadRequest)
	case errors.Is(err, repo.ErrNotFound):
		JSONError(w, "not found", http.StatusNotFound)
	default:
		slog.Error(op+" failed",
			"request_id", chimw.GetReqID(r.Context()),
			"error", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
	}
}
