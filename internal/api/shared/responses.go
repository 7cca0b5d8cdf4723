package shared

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/phrazzld/attendance-api/internal/apperror"
	"github.com/phrazzld/attendance-api/internal/platform/logger"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// MessageResponse is the body of responses that only carry a message.
type MessageResponse struct {
	Message string `json:"message"`
}

// RespondWithJSON writes a JSON response with the given status code and data.
func RespondWithJSON(w http.ResponseWriter, r *http.Request, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.FromContext(r.Context()).Error("failed to encode JSON response", slog.Any("error", err))
	}
}

// RespondWithMessage writes a 200 response carrying only message.
func RespondWithMessage(w http.ResponseWriter, r *http.Request, message string) {
	RespondWithJSON(w, r, http.StatusOK, MessageResponse{Message: message})
}

// RespondWithError writes err using its kind's status code and tag.
// Only err.Message reaches the client.
func RespondWithError(w http.ResponseWriter, r *http.Request, err *apperror.Error) {
	setErrorKind(r, err.Tag())
	RespondWithJSON(w, r, err.Status(), ErrorResponse{
		Error:   err.Tag(),
		Message: err.Message,
	})
}
