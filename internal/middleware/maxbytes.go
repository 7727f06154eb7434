package middleware

import "net/http"

// DefaultMaxBodyBytes bounds JSON bodies for account and note writes (64 KiB).
const DefaultMaxBodyBytes = 64 << 10

// MaxBytes caps the request body; reads past the limit fail and the decoder reports invalid JSON.
func MaxBytes(maxBytes int64) func(http.Handler) http.Handler {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBodyBytes
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			}
			next.ServeHTTP(w, r)
		})
	}
}
