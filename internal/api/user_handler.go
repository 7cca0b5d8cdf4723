package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/phrazzld/attendance-api/internal/api/shared"
	"github.com/phrazzld/attendance-api/internal/apperror"
	"github.com/phrazzld/attendance-api/internal/domain"
	"github.com/phrazzld/attendance-api/internal/platform/logger"
	"github.com/phrazzld/attendance-api/internal/store"
)

// UserHandler serves /api/users and the per-user attendance listing.
type UserHandler struct {
	users  store.UserStore
	events store.AttendanceEventStore
}

// NewUserHandler creates a UserHandler.
func NewUserHandler(users store.UserStore, events store.AttendanceEventStore) *UserHandler {
	return &UserHandler{users: users, events: events}
}

// userError replaces a store not-found error with a message naming the user.
func userError(id uuid.UUID, err error) error {
	if errors.Is(err, store.ErrUserNotFound) {
		return apperror.NotFound(fmt.Sprintf("User with id %s not found", id))
	}
	return err
}

// ListUsers handles GET /api/users.
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, usersToResponse(users))
}

// GetUser handles GET /api/users/{id}.
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	user, err := h.users.GetByID(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, userError(id, err))
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, userToResponse(user))
}

// CreateUser handles POST /api/users. A duplicate email surfaces as an
// internal error.
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var in domain.UserInput
	if err := shared.DecodeJSON(r, &in); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	user, err := domain.NewUser(in)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	if err := h.users.Create(r.Context(), user); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	logger.FromContext(r.Context()).Info("user created", slog.String("user_id", user.ID.String()))
	shared.RespondWithJSON(w, r, http.StatusOK, userToResponse(user))
}

// UpdateUser handles PUT /api/users/{id}. Only the fields present in the
// body change; updated_at is refreshed regardless.
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	var patch domain.UserPatch
	if err := shared.DecodeJSON(r, &patch); err != nil {
		HandleAPIError(w, r, err)
		return
	}
	if err := patch.Validate(); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	user, err := h.users.Update(r.Context(), id, patch)
	if err != nil {
		HandleAPIError(w, r, userError(id, err))
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, userToResponse(user))
}

// DeleteUser handles DELETE /api/users/{id}.
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	if err := h.users.Delete(r.Context(), id); err != nil {
		HandleAPIError(w, r, userError(id, err))
		return
	}

	logger.FromContext(r.Context()).Info("user deleted", slog.String("user_id", id.String()))
	shared.RespondWithMessage(w, r, fmt.Sprintf("User with id %s deleted successfully", id))
}

// ListUserAttendanceEvents handles GET /api/users/{id}/attendance-events.
// Unknown and deleted users yield 404 rather than an empty list.
func (h *UserHandler) ListUserAttendanceEvents(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	if _, err := h.users.GetByID(r.Context(), id); err != nil {
		HandleAPIError(w, r, userError(id, err))
		return
	}

	events, err := h.events.ListByUserID(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	if events == nil {
		events = []*domain.AttendanceEvent{}
	}
	shared.RespondWithJSON(w, r, http.StatusOK, events)
}
