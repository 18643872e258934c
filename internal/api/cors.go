package api

import (
	"net/http"

	"github.com/gorilla/handlers"
)

// NewCORS lets a UI shell on another origin call every method the router
// registers.
func NewCORS(next http.Handler) http.Handler {
	return handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
	)(next)
}
