package store

import (
	"context"
	"sync"

	"github.com/c360studio/taskboard/entity"
)

// User-visible error banners for task operations.
const (
	ErrMsgFetchTasks = "Failed to fetch tasks"
	ErrMsgCreateTask = "Failed to create task"
	ErrMsgUpdateTask = "Failed to update task"
	ErrMsgDeleteTask = "Failed to delete task"
)

// TasksState is a snapshot of the task store.
type TasksState struct {
	Tasks    []entity.Task
	Selected *entity.Task
	Err      string
	Loading  bool
}

// Tasks holds the working set of tasks for the currently viewed
// project, plus a transient selection cursor used to seed the edit
// form. Fetching a different project replaces the whole set; this is a
// single-project working set, not a multi-project cache.
type Tasks struct {
	mu       sync.RWMutex
	backend  Backend
	tasks    []entity.Task
	selected *entity.Task
	err      string
	loading  bool
}

// NewTasks creates a task store.
func NewTasks(backend Backend) *Tasks {
	return &Tasks{backend: backend}
}

// State returns a copy of the current state.
func (s *Tasks) State() TasksState {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tasks := make([]entity.Task, len(s.tasks))
	copy(tasks, s.tasks)

	var selected *entity.Task
	if s.selected != nil {
		task := *s.selected
		selected = &task
	}
	return TasksState{Tasks: tasks, Selected: selected, Err: s.err, Loading: s.loading}
}

// Fetch loads the tasks of projectID, replacing the current working set.
func (s *Tasks) Fetch(ctx context.Context, projectID string) error {
	s.begin()

	tasks, err := s.backend.FetchTasks(ctx, projectID)
	if err != nil {
		s.fail(ErrMsgFetchTasks)
		return err
	}

	s.mu.Lock()
	s.tasks = tasks
	s.loading = false
	s.mu.Unlock()
	return nil
}

// Create adds a task and appends it to the working set. CompletedAt
// starts nil regardless of the initial status.
func (s *Tasks) Create(ctx context.Context, t entity.NewTask) (entity.Task, error) {
	s.begin()

	created, err := s.backend.CreateTask(ctx, t)
	if err != nil {
		s.fail(ErrMsgCreateTask)
		return entity.Task{}, err
	}

	s.mu.Lock()
	s.tasks = append(s.tasks, *created)
	s.loading = false
	s.mu.Unlock()
	return *created, nil
}

// Update merges the patch into the matching task. The selection cursor
// is kept in sync when it points at the updated record. When no task
// matches, the error banner shows the generic update message while the
// returned error carries the specific not-found condition.
func (s *Tasks) Update(ctx context.Context, id string, patch entity.TaskPatch) (entity.Task, error) {
	s.begin()

	updated, err := s.backend.UpdateTask(ctx, id, patch)
	if err != nil {
		s.fail(ErrMsgUpdateTask)
		return entity.Task{}, err
	}

	s.mu.Lock()
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			s.tasks[i] = *updated
			break
		}
	}
	if s.selected != nil && s.selected.ID == id {
		task := *updated
		s.selected = &task
	}
	s.loading = false
	s.mu.Unlock()
	return *updated, nil
}

// Delete removes the matching task, clearing the selection cursor if it
// pointed at the deleted record. Deleting an absent id is a no-op.
func (s *Tasks) Delete(ctx context.Context, id string) error {
	s.begin()

	if err := s.backend.DeleteTask(ctx, id); err != nil {
		s.fail(ErrMsgDeleteTask)
		return err
	}

	s.mu.Lock()
	kept := s.tasks[:0]
	for _, t := range s.tasks {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	s.tasks = kept
	if s.selected != nil && s.selected.ID == id {
		s.selected = nil
	}
	s.loading = false
	s.mu.Unlock()
	return nil
}

// SetSelected sets or clears the selection cursor. Pure state setter,
// no backend call.
func (s *Tasks) SetSelected(task *entity.Task) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if task == nil {
		s.selected = nil
		return
	}
	copied := *task
	s.selected = &copied
}

// ClearError dismisses the error banner.
func (s *Tasks) ClearError() {
	s.mu.Lock()
	s.err = ""
	s.mu.Unlock()
}

func (s *Tasks) begin() {
	s.mu.Lock()
	s.loading = true
	s.err = ""
	s.mu.Unlock()
}

func (s *Tasks) fail(message string) {
	s.mu.Lock()
	s.err = message
	s.loading = false
	s.mu.Unlock()
}
