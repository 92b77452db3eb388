package middlewares

import (
	"net/http"
	"slices"

	"github.com/rs/cors"
)

// CORSMiddleware creates a CORS middleware with the specified allowed origins
func CORSMiddleware(allowedOrigins []string) func(http.Handler) http.Handler {
	// Credentials cannot be combined with a wildcard origin
	allowAll := slices.Contains(allowedOrigins, "*")

	c := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "X-Request-ID", "X-API-Key"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: !allowAll,
		MaxAge:           3600,
	})

	return c.Handler
}
