package middleware

import (
	"crypto/subtle"
	"net/http"
)

// APIKeyMiddleware validates API key from X-API-Key header
// It guards service-to-service maintenance routes
func APIKeyMiddleware(apiKey string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			providedKey := r.Header.Get("X-API-Key")

			if apiKey == "" || providedKey == "" || subtle.ConstantTimeCompare([]byte(providedKey), []byte(apiKey)) != 1 {
				writeError(w, http.StatusUnauthorized, "invalid or missing API key")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
