package shared

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
)

type contextKey string

const errorKindKey contextKey = "errorKind"

// GetRequestID returns the ID assigned by chi's RequestID middleware, or "".
func GetRequestID(ctx context.Context) string {
	return middleware.GetReqID(ctx)
}

// WithErrorKindSlot returns a context carrying an empty slot that
// RespondWithError fills with the tag of the error it writes. Middleware
// reads the slot after the handler returns.
func WithErrorKindSlot(ctx context.Context) (context.Context, *string) {
	slot := new(string)
	return context.WithValue(ctx, errorKindKey, slot), slot
}

func setErrorKind(r *http.Request, tag string) {
	if slot, ok := r.Context().Value(errorKindKey).(*string); ok {
		*slot = tag
	}
}
