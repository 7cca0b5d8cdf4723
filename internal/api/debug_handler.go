package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/attendance-api/internal/apperror"
)

// debugErrors maps each /test/error/{name} route to the taxonomy member it
// returns. Clients use these routes to exercise their error handling.
var debugErrors = map[string]func(ctx context.Context) error{
	"internal": func(ctx context.Context) error {
		return apperror.Internal(ctx, errors.New("This is a test internal error"))
	},
	"validation":   func(context.Context) error { return apperror.Validation("Invalid input provided") },
	"unauthorized": func(context.Context) error { return apperror.Unauthorized("Invalid credentials") },
	"notfound":     func(context.Context) error { return apperror.NotFound("Resource not found") },
	"badrequest":   func(context.Context) error { return apperror.BadRequest("Invalid request format") },
}

// mountDebugRoutes registers one GET route per entry of debugErrors.
func mountDebugRoutes(r chi.Router) {
	for name, build := range debugErrors {
		build := build // per-iteration copy; go.mod targets go 1.21 loop semantics
		r.Get("/test/error/"+name, func(w http.ResponseWriter, r *http.Request) {
			HandleAPIError(w, r, build(r.Context()))
		})
	}
}
