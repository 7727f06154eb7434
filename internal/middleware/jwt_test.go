package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/crucial707/notes-api/internal/auth"
)

func protected(t *testing.T, iss *auth.Issuer) (http.Handler, *int) {
	t.Helper()
	var seen int
	h := JWTMiddleware(iss)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := GetUserID(r.Context())
		if !ok {
			t.Fatal("user id missing from context")
		}
		seen = id
		w.WriteHeader(http.StatusOK)
	}))
	return h, &seen
}

func TestJWTMiddleware_ValidAccessToken(t *testing.T) {
	iss := auth.NewIssuer([]byte("test-secret"), time.Minute, time.Hour)
	pair, err := iss.IssuePair(5)
	if err != nil {
		t.Fatalf("IssuePair: %v", err)
	}
	h, seen := protected(t, iss)

	req := httptest.NewRequest("GET", "/api/notes/", nil)
	req.Header.Set("Authorization", "Bearer "+pair.Access)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rr.Code)
	}
	if *seen != 5 {
		t.Errorf("user id: got %d, want 5", *seen)
	}
}

func TestJWTMiddleware_Rejects(t *testing.T) {
	iss := auth.NewIssuer([]byte("test-secret"), time.Minute, time.Hour)
	pair, err := iss.IssuePair(5)
	if err != nil {
		t.Fatalf("IssuePair: %v", err)
	}

	expired := auth.NewIssuer([]byte("test-secret"), -time.Minute, time.Hour)
	stale, err := expired.Issue(5, auth.TokenTypeAccess)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	tests := []struct {
		name   string
		header string
		msg    string
	}{
		{"missing header", "", "authentication credentials were not provided"},
		{"no bearer prefix", pair.Access, "invalid authorization header"},
		{"garbage token", "Bearer abc.def.ghi", "invalid token"},
		{"refresh token used as access", "Bearer " + pair.Refresh, "invalid token"},
		{"expired token", "Bearer " + stale, "token expired"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _ := protected(t, iss)
			req := httptest.NewRequest("GET", "/api/notes/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)

			if rr.Code != http.StatusUnauthorized {
				t.Fatalf("status: got %d, want 401", rr.Code)
			}
			var out map[string]string
			if err := json.NewDecoder(rr.Body).Decode(&out); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if len(out) != 1 || out["error"] != tt.msg {
				t.Errorf("body: got %v, want only error=%q", out, tt.msg)
			}
		})
	}
}

func TestGetUserID_Unset(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	if _, ok := GetUserID(req.Context()); ok {
		t.Error("expected no user id")
	}
}
