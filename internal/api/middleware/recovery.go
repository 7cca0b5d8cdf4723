package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/phrazzld/attendance-api/internal/api/shared"
	"github.com/phrazzld/attendance-api/internal/apperror"
	"github.com/phrazzld/attendance-api/internal/platform/logger"
)

// Recoverer turns a panicking handler into an internal server error
// response instead of a dropped connection.
func Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}

			logger.FromContext(r.Context()).Error("panic recovered",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("stack", string(debug.Stack())))

			appErr := apperror.Internal(r.Context(), fmt.Errorf("panic: %v", rec))
			shared.RespondWithError(w, r, appErr)
		}()
		next.ServeHTTP(w, r)
	})
}
