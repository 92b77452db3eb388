package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/edupath/backend/internal/auth/service"
	"github.com/edupath/backend/internal/models"
)

type contextKey string

const callerKey contextKey = "caller"

// AuthMiddleware validates JWT access token and stores the caller in the request context
func AuthMiddleware(tokenGenerator *service.TokenGenerator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			caller, ok := authenticate(w, r, tokenGenerator)
			if !ok {
				return
			}
			next.ServeHTTP(w, r.WithContext(WithCaller(r.Context(), caller)))
		})
	}
}

// authenticate extracts and validates the access token, writing a 401 response on failure
func authenticate(w http.ResponseWriter, r *http.Request, tokenGenerator *service.TokenGenerator) (models.Caller, bool) {
	token := extractToken(r)
	if token == "" {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return models.Caller{}, false
	}

	caller, err := tokenGenerator.ValidateAccessToken(token)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "invalid or expired token")
		return models.Caller{}, false
	}

	return caller, true
}

// extractToken reads the token from the Authorization header, falling back to the access_token cookie
func extractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader != "" {
		// Expected format: "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && strings.ToLower(parts[0]) == "bearer" {
			return parts[1]
		}
	}

	if cookie, err := r.Cookie("access_token"); err == nil {
		return cookie.Value
	}

	return ""
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write([]byte(`{"error":"` + message + `"}`))
}

// WithCaller returns a copy of ctx carrying the caller
func WithCaller(ctx context.Context, caller models.Caller) context.Context {
	return context.WithValue(ctx, callerKey, caller)
}

// GetCaller retrieves the authenticated caller from context
func GetCaller(ctx context.Context) (models.Caller, bool) {
	caller, ok := ctx.Value(callerKey).(models.Caller)
	return caller, ok
}
