package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/crucial707/notes-api/internal/auth"
)

type key string

const UserIDKey key = "user_id"

// JWTMiddleware requires a valid access token and stores the caller's user id in the request context.
func JWTMiddleware(issuer *auth.Issuer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				writeJSONError(w, "authentication credentials were not provided", http.StatusUnauthorized)
				return
			}

			tokenStr, ok := strings.CutPrefix(authHeader, "Bearer ")
			if !ok || tokenStr == "" {
				writeJSONError(w, "invalid authorization header", http.StatusUnauthorized)
				return
			}

			userID, err := issuer.Parse(tokenStr, auth.TokenTypeAccess)
			if err != nil {
				msg := "invalid token"
				if errors.Is(err, auth.ErrTokenExpired) {
					msg = "token expired"
				}
				writeJSONError(w, msg, http.StatusUnauthorized)
				return
			}

			noteUser(r.Context(), userID)
			ctx := WithUserID(r.Context(), userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// WithUserID returns a copy of ctx carrying the authenticated user id.
func WithUserID(ctx context.Context, userID int) context.Context {
	return context.WithValue(ctx, UserIDKey, userID)
}

// GetUserID returns the authenticated user id set by JWTMiddleware.
func GetUserID(ctx context.Context) (int, bool) {
	id, ok := ctx.Value(UserIDKey).(int)
	return id, ok && id > 0
}
