package middlewares

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RequestIDHeader carries the request ID in both directions
const RequestIDHeader = "X-Request-ID"

const maxRequestIDLength = 64

type contextKey string

const requestIDKey contextKey = "requestID"

// RequestIDMiddleware tags each request with an ID.
// A well-formed incoming X-Request-ID is kept so IDs can be followed across services;
// anything else is replaced with a fresh UUID.
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(RequestIDHeader)
		if !validRequestID(requestID) {
			requestID = uuid.NewString()
		}

		w.Header().Set(RequestIDHeader, requestID)
		next.ServeHTTP(w, r.WithContext(WithRequestID(r.Context(), requestID)))
	})
}

// validRequestID accepts up to 64 characters of [A-Za-z0-9._-]
func validRequestID(id string) bool {
	if id == "" || len(id) > maxRequestIDLength {
		return false
	}
	for _, c := range id {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case c == '-', c == '_', c == '.':
		default:
			return false
		}
	}
	return true
}

// WithRequestID stores a request ID in the context
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// GetRequestID retrieves the request ID from context
func GetRequestID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}

// RequestIDField returns the request ID of ctx as a log field
func RequestIDField(ctx context.Context) zap.Field {
	return zap.String("request_id", GetRequestID(ctx))
}
