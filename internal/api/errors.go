package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/attendance-api/internal/api/shared"
	"github.com/phrazzld/attendance-api/internal/apperror"
	"github.com/phrazzld/attendance-api/internal/platform/logger"
)

// HandleAPIError converts err into a taxonomy member, logs it at the kind's
// level and writes the error body. Internal errors are logged when they are
// constructed, so they are not logged again here.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()
	appErr := apperror.From(ctx, err)

	if appErr.Kind != apperror.KindInternal {
		logger.FromContext(ctx).Log(ctx, appErr.Kind.LogLevel(), "API error response",
			slog.String("error", appErr.Tag()),
			slog.String("message", appErr.Message),
			slog.Int("status_code", appErr.Status()),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path))
	}

	shared.RespondWithError(w, r, appErr)
}
