package handlers

import (
	"log/slog"
	"net/http"

	"github.com/crucial707/notes-api/internal/metrics"
	"github.com/crucial707/notes-api/internal/serializers"
)

// ==========================
// AccountHandler
// ==========================
type AccountHandler struct {
	Accounts *serializers.AccountSerializer
}

// ==========================
// Register (open endpoint; password stored as bcrypt hash)
// ==========================
func (h *AccountHandler) Register(w http.ResponseWriter, r *http.Request) {
	input, err := serializers.DecodeAccountInput(r.Body)
	if err != nil {
		respondError(w, r, "register", err)
		return
	}

	account, err := h.Accounts.Create(r.Context(), input)
	if err != nil {
		respondError(w, r, "register", err)
		return
	}

	metrics.AccountsRegistered.Inc()
	slog.Info("account created", "user_id", account.ID, "username", account.Username)

	writeJSON(w, http.StatusCreated, account)
}
