// Package memory provides an in-memory storage.Store backed by slices
// under a mutex. It is the default driver for development and tests.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/c360studio/taskboard/entity"
	"github.com/c360studio/taskboard/storage"
)

// Store holds all entities in process memory. Records are kept in
// creation order, which is the order lists are returned in.
type Store struct {
	mu       sync.RWMutex
	users    []entity.User
	projects []entity.Project
	tasks    []entity.Task
	now      func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the time source, for deterministic tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithSeed preloads the demo project and task set.
func WithSeed() Option {
	return func(s *Store) {
		s.projects = entity.SeedProjects()
		s.tasks = entity.SeedTasks()
	}
}

// New creates an empty in-memory store.
func New(opts ...Option) *Store {
	s := &Store{now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateUser stores a new account, assigning its ID and creation time.
func (s *Store) CreateUser(_ context.Context, u *entity.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.users {
		if s.users[i].Email == u.Email {
			return storage.ErrEmailTaken
		}
	}

	u.ID = entity.NewUserID()
	u.CreatedAt = s.now()
	s.users = append(s.users, *u)
	return nil
}

// GetUser retrieves a user by ID.
func (s *Store) GetUser(_ context.Context, id string) (*entity.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.users {
		if s.users[i].ID == id {
			u := s.users[i]
			return &u, nil
		}
	}
	return nil, storage.ErrNotFound
}

// GetUserByEmail retrieves a user by email.
func (s *Store) GetUserByEmail(_ context.Context, email string) (*entity.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.users {
		if s.users[i].Email == email {
			u := s.users[i]
			return &u, nil
		}
	}
	return nil, storage.ErrNotFound
}

// ListProjects returns the projects owned by userID in creation order.
func (s *Store) ListProjects(_ context.Context, userID string) ([]entity.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	projects := make([]entity.Project, 0, len(s.projects))
	for _, p := range s.projects {
		if p.UserID == userID {
			projects = append(projects, p)
		}
	}
	return projects, nil
}

// GetProject retrieves a project by ID.
func (s *Store) GetProject(_ context.Context, id string) (*entity.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.projects {
		if s.projects[i].ID == id {
			p := s.projects[i]
			return &p, nil
		}
	}
	return nil, storage.ErrNotFound
}

// CreateProject stores a new project, assigning its ID and timestamps.
func (s *Store) CreateProject(_ context.Context, p *entity.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p.ID = entity.NewProjectID()
	now := s.now()
	p.CreatedAt = now
	p.UpdatedAt = now
	s.projects = append(s.projects, *p)
	return nil
}

// UpdateProject applies a patch to the matching project.
func (s *Store) UpdateProject(_ context.Context, id string, patch entity.ProjectPatch) (*entity.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.projects {
		if s.projects[i].ID == id {
			s.projects[i].Apply(patch, s.now())
			p := s.projects[i]
			return &p, nil
		}
	}
	return nil, storage.ErrNotFound
}

// DeleteProject removes the matching project. Absent IDs are a no-op.
// Tasks belonging to the project are not touched.
func (s *Store) DeleteProject(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.projects[:0]
	for _, p := range s.projects {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	s.projects = kept
	return nil
}

// ListTasks returns the tasks for projectID in creation order.
func (s *Store) ListTasks(_ context.Context, projectID string) ([]entity.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tasks := make([]entity.Task, 0)
	for _, t := range s.tasks {
		if t.ProjectID == projectID {
			tasks = append(tasks, t)
		}
	}
	return tasks, nil
}

// GetTask retrieves a task by ID.
func (s *Store) GetTask(_ context.Context, id string) (*entity.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.tasks {
		if s.tasks[i].ID == id {
			t := s.tasks[i]
			return &t, nil
		}
	}
	return nil, storage.ErrNotFound
}

// CreateTask stores a new task, assigning its ID and timestamps.
// CompletedAt starts nil regardless of the initial status.
func (s *Store) CreateTask(_ context.Context, t *entity.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t.ID = entity.NewTaskID()
	now := s.now()
	t.CreatedAt = now
	t.UpdatedAt = now
	t.CompletedAt = nil
	s.tasks = append(s.tasks, *t)
	return nil
}

// UpdateTask applies a patch to the matching task.
func (s *Store) UpdateTask(_ context.Context, id string, patch entity.TaskPatch) (*entity.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.tasks {
		if s.tasks[i].ID == id {
			s.tasks[i].Apply(patch, s.now())
			t := s.tasks[i]
			return &t, nil
		}
	}
	return nil, storage.ErrNotFound
}

// DeleteTask removes the matching task. Absent IDs are a no-op.
func (s *Store) DeleteTask(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.tasks[:0]
	for _, t := range s.tasks {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	s.tasks = kept
	return nil
}

// Close is a no-op for the in-memory store.
func (s *Store) Close() error { return nil }
