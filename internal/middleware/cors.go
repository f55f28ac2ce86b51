package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// Cors allows every origin when allowedOrigins is empty.
func Cors(allowedOrigins []string) Middleware {
	options := cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{
			http.MethodHead,
			http.MethodGet,
			http.MethodPost,
			http.MethodDelete,
		},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}
	if len(allowedOrigins) == 0 {
		options.AllowedOrigins = []string{"*"}
	}
	return cors.New(options).Handler
}
