package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/crucial707/notes-api/internal/metrics"
	"github.com/crucial707/notes-api/internal/middleware"
	"github.com/crucial707/notes-api/internal/repo"
	"github.com/crucial707/notes-api/internal/serializers"
	"github.com/go-chi/chi/v5"
)

// ==========================
// NoteHandler
// ==========================
// Every operation is scoped to the authenticated caller; NoteRepo has no
// unscoped lookups.
type NoteHandler struct {
	Repo *repo.NoteRepo
}

func callerID(w http.ResponseWriter, r *http.Request) (int, bool) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		JSONError(w, "authentication credentials were not provided", http.StatusUnauthorized)
	}
	return userID, ok
}

// ==========================
// List Notes (caller's own, ordered by id)
// ==========================
func (h *NoteHandler) ListNotes(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	notes, err := h.Repo.ListByAuthor(r.Context(), userID)
	if err != nil {
		respondError(w, r, "list notes", err)
		return
	}

	writeJSON(w, http.StatusOK, serializers.NewNoteList(notes))
}

// ==========================
// Create Note (author forced to caller)
// ==========================
func (h *NoteHandler) CreateNote(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	input, err := serializers.DecodeNoteInput(r.Body)
	if err != nil {
		slog.Warn("note rejected", "user_id", userID, "error", err)
		respondError(w, r, "create note", err)
		return
	}

	s := serializers.NoteSerializer{Notes: h.Repo}
	note, err := s.Create(r.Context(), input, userID)
	if err != nil {
		var verr *serializers.ValidationError
		if errors.As(err, &verr) {
			slog.Warn("note rejected", "user_id", userID, "error", err)
		}
		respondError(w, r, "create note", err)
		return
	}

	metrics.NotesCreated.Inc()
	writeJSON(w, http.StatusCreated, note)
}

// ==========================
// Delete Note (only within caller's notes)
// ==========================
func (h *NoteHandler) DeleteNote(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	id, ok := parseNoteID(chi.URLParam(r, "id"))
	if !ok {
		JSONError(w, "not found", http.StatusNotFound)
		return
	}

	if err := h.Repo.DeleteOwned(r.Context(), id, userID); err != nil {
		respondError(w, r, "delete note", err)
		return
	}

	metrics.NotesDeleted.Inc()
	w.WriteHeader(http.StatusNoContent)
}

// parseNoteID accepts plain decimal digits that fit a postgres integer column.
func parseNoteID(s string) (int, bool) {
	if s == "" || s[0] < '0' || s[0] > '9' {
		return 0, false
	}
	id, err := strconv.ParseInt(s, 10, 32)
	if err != nil || id <= 0 {
		return 0, false
	}
	return int(id), true
}
