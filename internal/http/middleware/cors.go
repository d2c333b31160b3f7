package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

// Cors allows any origin. The API is consumed by a browser frontend whose
// origin is not known at build time.
func Cors() func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"*"},
		MaxAge:         300,
	})
}
