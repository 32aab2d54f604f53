package middlewares

import (
	"net/http"

	"github.com/go-chi/cors"
)

// CorsMiddleware allows cross-origin calls from the given origins. "*"
// permits any origin, which is the default deployment.
func CorsMiddleware(origins []string) func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", RequestIDHeader},
		ExposedHeaders: []string{RequestIDHeader},
		MaxAge:         300,
	})
}
