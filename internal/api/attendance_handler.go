package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/phrazzld/attendance-api/internal/api/shared"
	"github.com/phrazzld/attendance-api/internal/apperror"
	"github.com/phrazzld/attendance-api/internal/domain"
	"github.com/phrazzld/attendance-api/internal/platform/logger"
	"github.com/phrazzld/attendance-api/internal/store"
)

// AttendanceHandler serves /api/attendance-events. Events are append-only,
// so there is no update or delete route.
type AttendanceHandler struct {
	events store.AttendanceEventStore
}

// NewAttendanceHandler creates an AttendanceHandler.
func NewAttendanceHandler(events store.AttendanceEventStore) *AttendanceHandler {
	return &AttendanceHandler{events: events}
}

// RecordEvent handles POST /api/attendance-events.
func (h *AttendanceHandler) RecordEvent(w http.ResponseWriter, r *http.Request) {
	var in domain.AttendanceEventInput
	if err := shared.DecodeJSON(r, &in); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	event, err := domain.NewAttendanceEvent(in)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	if err := h.events.Create(r.Context(), event); err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			err = apperror.NotFound(fmt.Sprintf("User with id %s not found", in.UserID))
		}
		HandleAPIError(w, r, err)
		return
	}

	logger.FromContext(r.Context()).Info("attendance event recorded",
		slog.String("event_id", event.ID.String()),
		slog.String("user_id", event.UserID.String()),
		slog.String("event_type", event.EventType))
	shared.RespondWithJSON(w, r, http.StatusOK, event)
}

// GetEvent handles GET /api/attendance-events/{id}.
func (h *AttendanceHandler) GetEvent(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	event, err := h.events.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrAttendanceEventNotFound) {
			err = apperror.NotFound(fmt.Sprintf("Attendance event with id %s not found", id))
		}
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, event)
}
