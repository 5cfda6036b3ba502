// Package http provides HTTP routing and middleware configuration
// for the todo service.
package http

import (
	"net/http"

	"github.com/atinyakov/todovault/internal/middleware"
	"go.uber.org/zap"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

// NewRouter constructs and returns an HTTP handler that serves the todo API.
// It applies JSON content-type enforcement and request logging, and mounts
// the signup, login, and todo endpoints. The todo group is protected by the
// body-token auth middleware; signup and login bypass it.
//
// Routes:
//
//	POST /signup            → authHandler.Signup
//	POST /login             → authHandler.Login
//	POST /gettodos          → todoHandler.List           (protected)
//	POST /addtodo           → todoHandler.Add            (protected)
//	POST /edittododata      → todoHandler.EditText       (protected)
//	POST /edittodocompleted → todoHandler.EditCompletion (protected)
//	POST /deletetodo        → todoHandler.Delete         (protected)
func NewRouter(
	authHandler *AuthHandler,
	todoHandler *TodoHandler,
	verifier middleware.TokenVerifier,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Only allow requests with Content-Type: application/json
	r.Use(chiMiddleware.AllowContentType("application/json"))

	// Log each request and its metadata
	r.Use(middleware.WithRequestLogging(logger))

	// Public endpoints
	r.Post("/signup", authHandler.Signup)
	r.Post("/login", authHandler.Login)

	// Protected group: requires a valid identity token in the request body
	r.Group(func(r chi.Router) {
		r.Use(middleware.TokenAuth(verifier))

		r.Post("/gettodos", todoHandler.List)
		r.Post("/addtodo", todoHandler.Add)
		r.Post("/edittododata", todoHandler.EditText)
		r.Post("/edittodocompleted", todoHandler.EditCompletion)
		r.Post("/deletetodo", todoHandler.Delete)
	})

	return r
}
