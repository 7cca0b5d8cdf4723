package api

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/phrazzld/attendance-api/internal/api/shared"
	"github.com/phrazzld/attendance-api/internal/apperror"
	"github.com/phrazzld/attendance-api/internal/domain"
	"github.com/phrazzld/attendance-api/internal/platform/logger"
)

// TaskStore is the in-memory task collection the handler operates on.
type TaskStore interface {
	List() []domain.Task
	Get(id uint64) (domain.Task, bool)
	Create(title string, description *string) domain.Task
	Update(id uint64, patch domain.TaskPatch) (domain.Task, bool)
	Delete(id uint64) bool
}

// TaskHandler serves /api/tasks.
type TaskHandler struct {
	tasks TaskStore
}

// NewTaskHandler creates a TaskHandler over tasks.
func NewTaskHandler(tasks TaskStore) *TaskHandler {
	return &TaskHandler{tasks: tasks}
}

func taskNotFound(id uint64) *apperror.Error {
	return apperror.NotFound(fmt.Sprintf("Task with id %d not found", id))
}

// ListTasks handles GET /api/tasks.
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, h.tasks.List())
}

// GetTask handles GET /api/tasks/{id}.
func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	id, err := getPathTaskID(r)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	task, ok := h.tasks.Get(id)
	if !ok {
		HandleAPIError(w, r, taskNotFound(id))
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, task)
}

// CreateTask handles POST /api/tasks.
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	var in domain.TaskInput
	if err := shared.DecodeJSON(r, &in); err != nil {
		HandleAPIError(w, r, err)
		return
	}
	if err := in.Validate(); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	task := h.tasks.Create(in.Title, in.Description)
	logger.FromContext(r.Context()).Info("task created", slog.Uint64("task_id", task.ID))
	shared.RespondWithJSON(w, r, http.StatusOK, task)
}

// UpdateTask handles PUT /api/tasks/{id}. Omitted fields keep their values.
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	id, err := getPathTaskID(r)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	var patch domain.TaskPatch
	if err := shared.DecodeJSON(r, &patch); err != nil {
		HandleAPIError(w, r, err)
		return
	}
	if err := patch.Validate(); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	task, ok := h.tasks.Update(id, patch)
	if !ok {
		HandleAPIError(w, r, taskNotFound(id))
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, task)
}

// DeleteTask handles DELETE /api/tasks/{id}.
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	id, err := getPathTaskID(r)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	if !h.tasks.Delete(id) {
		HandleAPIError(w, r, taskNotFound(id))
		return
	}
	shared.RespondWithMessage(w, r, fmt.Sprintf("Task with id %d deleted successfully", id))
}
