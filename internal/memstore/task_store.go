// Package memstore provides process-local, concurrency-safe stores for
// entities that do not outlive the process.
package memstore

import (
	"log/slog"
	"sort"
	"sync"

	"github.com/phrazzld/attendance-api/internal/domain"
)

// TaskStore is an in-memory collection of tasks keyed by a monotonically
// increasing ID. IDs are never reused, even after deletion.
//
// The ID counter and the task map are guarded by separate locks. Create takes
// an ID under idMu and inserts under mu, so concurrent creates never share an
// ID and no reader sees a partially built task.
type TaskStore struct {
	idMu   sync.Mutex
	nextID uint64

	mu    sync.RWMutex
	tasks map[uint64]domain.Task

	logger *slog.Logger
}

// NewTaskStore creates an empty TaskStore whose first issued ID is 1.
func NewTaskStore(logger *slog.Logger) *TaskStore {
	if logger == nil {
		logger = slog.Default()
	}

	return &TaskStore{
		nextID: 1,
		tasks:  make(map[uint64]domain.Task),
		logger: logger.With(slog.String("component", "task_store")),
	}
}

func (s *TaskStore) allocateID() uint64 {
	s.idMu.Lock()
	defer s.idMu.Unlock()

	id := s.nextID
	s.nextID++
	return id
}

// List returns a snapshot of all tasks ordered by ID.
func (s *TaskStore) List() []domain.Task {
	s.mu.RLock()
	tasks := make([]domain.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		tasks = append(tasks, cloneTask(t))
	}
	s.mu.RUnlock()

	sort.Slice(tasks, func(i, j int) bool { return tasks[i].ID < tasks[j].ID })
	return tasks
}

// Get returns the task with the given ID and whether it exists.
func (s *TaskStore) Get(id uint64) (domain.Task, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.tasks[id]
	if !ok {
		return domain.Task{}, false
	}
	return cloneTask(t), true
}

// Create inserts a new, not yet completed task and returns a copy of it.
func (s *TaskStore) Create(title string, description *string) domain.Task {
	task := domain.Task{
		ID:          s.allocateID(),
		Title:       title,
		Description: cloneString(description),
		Completed:   false,
	}

	s.mu.Lock()
	s.tasks[task.ID] = task
	s.mu.Unlock()

	s.logger.Info("Created new task", slog.Uint64("task_id", task.ID))
	return cloneTask(task)
}

// Update applies the patch to the task with the given ID. The read, patch and
// write happen under one lock hold. It returns false if the task does not exist.
func (s *TaskStore) Update(id uint64, patch domain.TaskPatch) (domain.Task, bool) {
	s.mu.Lock()
	existing, ok := s.tasks[id]
	if !ok {
		s.mu.Unlock()
		return domain.Task{}, false
	}
	updated := patch.Apply(existing)
	s.tasks[id] = updated
	s.mu.Unlock()

	s.logger.Info("Updated task", slog.Uint64("task_id", id))
	return cloneTask(updated), true
}

// Delete removes the task and reports whether it was present.
func (s *TaskStore) Delete(id uint64) bool {
	s.mu.Lock()
	_, ok := s.tasks[id]
	delete(s.tasks, id)
	s.mu.Unlock()

	if ok {
		s.logger.Info("Deleted task", slog.Uint64("task_id", id))
	}
	return ok
}

// Len returns the number of tasks currently stored.
func (s *TaskStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tasks)
}

// cloneTask copies the description so callers cannot mutate stored state
// through the returned pointer.
func cloneTask(t domain.Task) domain.Task {
	t.Description = cloneString(t.Description)
	return t
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
