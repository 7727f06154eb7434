package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/crucial707/notes-api/internal/auth"
	"github.com/crucial707/notes-api/internal/repo"
	"golang.org/x/crypto/bcrypt"
)

func testIssuer() *auth.Issuer {
	return auth.NewIssuer([]byte("test-secret"), time.Minute, time.Hour)
}

func TestAuthHandler_ObtainToken(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	hash, err := auth.HashPassword("secret1", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	mock.ExpectQuery(`SELECT id, username, password_hash, created_at FROM users WHERE username`).
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "password_hash", "created_at"}).
			AddRow(1, "alice", hash, time.Now()))

	iss := testIssuer()
	h := &AuthHandler{UserRepo: repo.NewUserRepo(db), Issuer: iss}

	body, _ := json.Marshal(map[string]string{"username": "alice", "password": "secret1"})
	req := httptest.NewRequest("POST", "/api/token/", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	h.ObtainToken(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("ObtainToken status: got %d, want 200 (body %s)", rr.Code, rr.Body.String())
	}
	var out auth.TokenPair
	if err := json.NewDecoder(rr.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if id, err := iss.Parse(out.Access, auth.TokenTypeAccess); err != nil || id != 1 {
		t.Errorf("access token: id=%d err=%v", id, err)
	}
	if id, err := iss.Parse(out.Refresh, auth.TokenTypeRefresh); err != nil || id != 1 {
		t.Errorf("refresh token: id=%d err=%v", id, err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestAuthHandler_ObtainToken_TrimsUsername(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	hash, _ := auth.HashPassword("secret1", bcrypt.MinCost)
	mock.ExpectQuery(`SELECT id, username, password_hash, created_at FROM users WHERE username`).
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "password_hash", "created_at"}).
			AddRow(1, "alice", hash, time.Now()))

	h := &AuthHandler{UserRepo: repo.NewUserRepo(db), Issuer: testIssuer()}

	body, _ := json.Marshal(map[string]string{"username": "  alice ", "password": "secret1"})
	req := httptest.NewRequest("POST", "/api/token/", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	h.ObtainToken(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("ObtainToken status: got %d, want 200 (body %s)", rr.Code, rr.Body.String())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestAuthHandler_ObtainToken_WrongPassword(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	hash, _ := auth.HashPassword("secret1", bcrypt.MinCost)
	mock.ExpectQuery(`SELECT id, username, password_hash, created_at FROM users WHERE username`).
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "password_hash", "created_at"}).
			AddRow(1, "alice", hash, time.Now()))

	h := &AuthHandler{UserRepo: repo.NewUserRepo(db), Issuer: testIssuer()}

	body, _ := json.Marshal(map[string]string{"username": "alice", "password": "nope"})
	req := httptest.NewRequest("POST", "/api/token/", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	h.ObtainToken(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("ObtainToken status: got %d, want 401", rr.Code)
	}
	var out map[string]string
	if err := json.NewDecoder(rr.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if out["error"] != "invalid credentials" {
		t.Errorf("unexpected error: %v", out["error"])
	}
}

func TestAuthHandler_ObtainToken_UnknownUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT id, username, password_hash, created_at FROM users WHERE username`).
		WithArgs("nobody").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "password_hash", "created_at"}))

	h := &AuthHandler{UserRepo: repo.NewUserRepo(db), Issuer: testIssuer()}

	body, _ := json.Marshal(map[string]string{"username": "nobody", "password": "x"})
	req := httptest.NewRequest("POST", "/api/token/", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	h.ObtainToken(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("ObtainToken status: got %d, want 401", rr.Code)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestAuthHandler_ObtainToken_MissingFields(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	h := &AuthHandler{UserRepo: repo.NewUserRepo(db), Issuer: testIssuer()}

	req := httptest.NewRequest("POST", "/api/token/", strings.NewReader(`{"username":"alice"}`))
	rr := httptest.NewRecorder()
	h.ObtainToken(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("ObtainToken status: got %d, want 400", rr.Code)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestAuthHandler_RefreshToken(t *testing.T) {
	iss := testIssuer()
	h := &AuthHandler{Issuer: iss}

	pair, err := iss.IssuePair(3)
	if err != nil {
		t.Fatalf("IssuePair: %v", err)
	}

	body, _ := json.Marshal(map[string]string{"refresh": pair.Refresh})
	req := httptest.NewRequest("POST", "/api/token/refresh/", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	h.RefreshToken(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("RefreshToken status: got %d, want 200", rr.Code)
	}
	var out map[string]string
	if err := json.NewDecoder(rr.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if id, err := iss.Parse(out["access"], auth.TokenTypeAccess); err != nil || id != 3 {
		t.Errorf("new access token: id=%d err=%v", id, err)
	}

	// an access token cannot be used as a refresh token
	body, _ = json.Marshal(map[string]string{"refresh": pair.Access})
	req = httptest.NewRequest("POST", "/api/token/refresh/", bytes.NewReader(body))
	rr = httptest.NewRecorder()
	h.RefreshToken(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("RefreshToken with access token: got %d, want 401", rr.Code)
	}
}
