package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"sync"

	"github.com/crucial707/notes-api/internal/auth"
	"github.com/crucial707/notes-api/internal/repo"
)

// dummyHash keeps the unknown-user path as slow as a real password check.
var dummyHash = sync.OnceValue(func() string {
	h, _ := auth.HashPassword("not-a-real-password", 0)
	return h
})

// ==========================
// Auth Handler
// ==========================
type AuthHandler struct {
	UserRepo *repo.UserRepo
	Issuer   *auth.Issuer
}

// ==========================
// Obtain token pair (username + password)
// ==========================
func (h *AuthHandler) ObtainToken(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	input.Username = strings.TrimSpace(input.Username)

	fields := make(map[string]string)
	if input.Username == "" {
		fields["username"] = "This field is required."
	}
	if input.Password == "" {
		fields["password"] = "This field is required."
	}
	if len(fields) > 0 {
		JSONValidationError(w, "validation failed", fields, http.StatusBadRequest)
		return
	}

	user, err := h.UserRepo.GetByUsername(r.Context(), input.Username)
	if err != nil {
		if !errors.Is(err, repo.ErrNotFound) {
			respondError(w, r, "obtain token", err)
			return
		}
		_ = auth.CheckPassword(dummyHash(), input.Password)
		JSONError(w, "invalid credentials", http.StatusUnauthorized)
		return
	}

	if err := auth.CheckPassword(user.PasswordHash, input.Password); err != nil {
		JSONError(w, "invalid credentials", http.StatusUnauthorized)
		return
	}

	pair, err := h.Issuer.IssuePair(user.ID)
	if err != nil {
		respondError(w, r, "issue token", err)
		return
	}

	writeJSON(w, http.StatusOK, pair)
}

// ==========================
// Refresh access token
// ==========================
func (h *AuthHandler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Refresh string `json:"refresh"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if input.Refresh == "" {
		JSONValidationError(w, "validation failed", map[string]string{"refresh": "This field is required."}, http.StatusBadRequest)
		return
	}

	userID, err := h.Issuer.Parse(input.Refresh, auth.TokenTypeRefresh)
	if err != nil {
		JSONError(w, "token is invalid or expired", http.StatusUnauthorized)
		return
	}

	access, err := h.Issuer.Issue(userID, auth.TokenTypeAccess)
	if err != nil {
		respondError(w, r, "refresh token", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"access": access})
}
