package handlers

import (
	"bytes"
	"context"
	"database/sql/driver"
	"net/http"
	"net/http/httptest"

	"github.com/crucial707/notes-api/internal/middleware"
	"github.com/go-chi/chi/v5"
)

// requestWithChiURLParams returns a request with chi route context and URL params set.
func requestWithChiURLParams(method, path string, body []byte, params map[string]string) *http.Request {
	var r *http.Request
	if body != nil {
		r = httptest.NewRequest(method, path, bytes.NewReader(body))
	} else {
		r = httptest.NewRequest(method, path, nil)
	}
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	r = r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
	return r
}

// asUser attaches an authenticated caller the way JWTMiddleware would.
func asUser(r *http.Request, userID int) *http.Request {
	return r.WithContext(middleware.WithUserID(r.Context(), userID))
}

// notPlaintext matches any string argument except the given plaintext.
type notPlaintext string

func (p notPlaintext) Match(v driver.Value) bool {
	s, ok := v.(string)
	return ok && s != "" && s != string(p)
}
