package middlewares

import (
	"net/http"

	"go.uber.org/zap"
)

// RequestSizeLimitMiddleware rejects requests whose declared body exceeds maxRequestSize bytes
// and caps the readable body of the rest. Handlers see *http.MaxBytesError for bodies
// that lie about their length.
func RequestSizeLimitMiddleware(maxRequestSize int64, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > maxRequestSize {
				logger.Warn("request body too large",
					RequestIDField(r.Context()),
					zap.String("path", r.URL.Path),
					zap.Int64("content_length", r.ContentLength),
					zap.Int64("limit", maxRequestSize),
				)
				writeJSONError(w, http.StatusRequestEntityTooLarge, "request body too large")
				return
			}

			r.Body = http.MaxBytesReader(w, r.Body, maxRequestSize)
			next.ServeHTTP(w, r)
		})
	}
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write([]byte(`{"error":"` + message + `"}`))
}
