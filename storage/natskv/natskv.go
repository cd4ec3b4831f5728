// Package natskv provides a storage.Store backed by NATS JetStream
// key-value buckets, one bucket per entity type.
package natskv

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/nats-io/nats.go/jetstream"

	"github.com/c360studio/taskboard/entity"
	"github.com/c360studio/taskboard/storage"
)

// Bucket names for each entity type.
const (
	BucketUsers    = "TASKBOARD_USERS"
	BucketProjects = "TASKBOARD_PROJECTS"
	BucketTasks    = "TASKBOARD_TASKS"
)

// Store provides entity storage operations backed by NATS KV.
type Store struct {
	users    jetstream.KeyValue
	projects jetstream.KeyValue
	tasks    jetstream.KeyValue
	now      func() time.Time
}

// New creates a Store with the given JetStream context. It creates the
// necessary KV buckets if they don't exist.
func New(ctx context.Context, js jetstream.JetStream) (*Store, error) {
	users, err := getOrCreateBucket(ctx, js, BucketUsers)
	if err != nil {
		return nil, fmt.Errorf("create users bucket: %w", err)
	}

	projects, err := getOrCreateBucket(ctx, js, BucketProjects)
	if err != nil {
		return nil, fmt.Errorf("create projects bucket: %w", err)
	}

	tasks, err := getOrCreateBucket(ctx, js, BucketTasks)
	if err != nil {
		return nil, fmt.Errorf("create tasks bucket: %w", err)
	}

	return &Store{
		users:    users,
		projects: projects,
		tasks:    tasks,
		now:      time.Now,
	}, nil
}

func getOrCreateBucket(ctx context.Context, js jetstream.JetStream, name string) (jetstream.KeyValue, error) {
	kv, err := js.KeyValue(ctx, name)
	if err == nil {
		return kv, nil
	}
	// Bucket doesn't exist, create it
	return js.CreateKeyValue(ctx, jetstream.KeyValueConfig{
		Bucket:      name,
		Description: fmt.Sprintf("Taskboard %s storage", strings.ToLower(name)),
		History:     5, // Keep last 5 revisions
	})
}

// Close is a no-op; the NATS connection is owned by the caller.
func (s *Store) Close() error { return nil }

// CreateUser stores a new account, assigning its ID and creation time.
func (s *Store) CreateUser(ctx context.Context, u *entity.User) error {
	if existing, err := s.GetUserByEmail(ctx, u.Email); err == nil && existing != nil {
		return storage.ErrEmailTaken
	}

	u.ID = entity.NewUserID()
	u.CreatedAt = s.now()

	if err := s.put(ctx, s.users, u.ID, userRecord{User: *u, PasswordHash: u.PasswordHash}); err != nil {
		return fmt.Errorf("store user: %w", err)
	}
	return nil
}

// userRecord wraps a user with its password hash for KV persistence,
// since the hash is excluded from the entity's JSON encoding.
type userRecord struct {
	User         entity.User `json:"user"`
	PasswordHash string      `json:"password_hash"`
}

// GetUser retrieves a user by ID.
func (s *Store) GetUser(ctx context.Context, id string) (*entity.User, error) {
	entry, err := s.users.Get(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	var rec userRecord
	if err := json.Unmarshal(entry.Value(), &rec); err != nil {
		return nil, fmt.Errorf("unmarshal user: %w", err)
	}
	u := rec.User
	u.PasswordHash = rec.PasswordHash
	return &u, nil
}

// GetUserByEmail scans the user bucket for a matching email.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*entity.User, error) {
	keys, err := s.users.Keys(ctx)
	if err != nil {
		if err == jetstream.ErrNoKeysFound {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("list user keys: %w", err)
	}

	for _, key := range keys {
		u, err := s.GetUser(ctx, key)
		if err != nil {
			continue // Skip entries that fail to load
		}
		if u.Email == email {
			return u, nil
		}
	}
	return nil, storage.ErrNotFound
}

// ListProjects returns the projects owned by userID.
func (s *Store) ListProjects(ctx context.Context, userID string) ([]entity.Project, error) {
	keys, err := s.projects.Keys(ctx)
	if err != nil {
		if err == jetstream.ErrNoKeysFound {
			return []entity.Project{}, nil
		}
		return nil, fmt.Errorf("list project keys: %w", err)
	}

	projects := make([]entity.Project, 0, len(keys))
	for _, key := range keys {
		entry, err := s.projects.Get(ctx, key)
		if err != nil {
			continue
		}
		var p entity.Project
		if err := json.Unmarshal(entry.Value(), &p); err != nil {
			continue
		}
		if p.UserID == userID {
			projects = append(projects, p)
		}
	}
	return projects, nil
}

// GetProject retrieves a project by ID.
func (s *Store) GetProject(ctx context.Context, id string) (*entity.Project, error) {
	entry, err := s.projects.Get(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get project: %w", err)
	}

	var p entity.Project
	if err := json.Unmarshal(entry.Value(), &p); err != nil {
		return nil, fmt.Errorf("unmarshal project: %w", err)
	}
	return &p, nil
}

// CreateProject stores a new project, assigning its ID and timestamps.
func (s *Store) CreateProject(ctx context.Context, p *entity.Project) error {
	p.ID = entity.NewProjectID()
	now := s.now()
	p.CreatedAt = now
	p.UpdatedAt = now

	if err := s.create(ctx, s.projects, p.ID, p); err != nil {
		return fmt.Errorf("store project: %w", err)
	}
	return nil
}

// UpdateProject applies a patch to the matching project.
func (s *Store) UpdateProject(ctx context.Context, id string, patch entity.ProjectPatch) (*entity.Project, error) {
	p, err := s.GetProject(ctx, id)
	if err != nil {
		return nil, err
	}

	p.Apply(patch, s.now())

	if err := s.put(ctx, s.projects, id, p); err != nil {
		return nil, fmt.Errorf("update project: %w", err)
	}
	return p, nil
}

// DeleteProject removes the matching project. Absent IDs are a no-op and
// the project's tasks are not touched.
func (s *Store) DeleteProject(ctx context.Context, id string) error {
	if err := s.projects.Delete(ctx, id); err != nil && !isNotFound(err) {
		return fmt.Errorf("delete project: %w", err)
	}
	return nil
}

// ListTasks returns all tasks for a given project.
func (s *Store) ListTasks(ctx context.Context, projectID string) ([]entity.Task, error) {
	keys, err := s.tasks.Keys(ctx)
	if err != nil {
		if err == jetstream.ErrNoKeysFound {
			return []entity.Task{}, nil
		}
		return nil, fmt.Errorf("list task keys: %w", err)
	}

	tasks := make([]entity.Task, 0)
	for _, key := range keys {
		entry, err := s.tasks.Get(ctx, key)
		if err != nil {
			continue
		}
		var t entity.Task
		if err := json.Unmarshal(entry.Value(), &t); err != nil {
			continue
		}
		if t.ProjectID == projectID {
			tasks = append(tasks, t)
		}
	}
	return tasks, nil
}

// GetTask retrieves a task by ID.
func (s *Store) GetTask(ctx context.Context, id string) (*entity.Task, error) {
	entry, err := s.tasks.Get(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get task: %w", err)
	}

	var t entity.Task
	if err := json.Unmarshal(entry.Value(), &t); err != nil {
		return nil, fmt.Errorf("unmarshal task: %w", err)
	}
	return &t, nil
}

// CreateTask stores a new task, assigning its ID and timestamps.
func (s *Store) CreateTask(ctx context.Context, t *entity.Task) error {
	t.ID = entity.NewTaskID()
	now := s.now()
	t.CreatedAt = now
	t.UpdatedAt = now
	t.CompletedAt = nil

	if err := s.create(ctx, s.tasks, t.ID, t); err != nil {
		return fmt.Errorf("store task: %w", err)
	}
	return nil
}

// UpdateTask applies a patch to the matching task.
func (s *Store) UpdateTask(ctx context.Context, id string, patch entity.TaskPatch) (*entity.Task, error) {
	t, err := s.GetTask(ctx, id)
	if err != nil {
		return nil, err
	}

	t.Apply(patch, s.now())

	if err := s.put(ctx, s.tasks, id, t); err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}
	return t, nil
}

// DeleteTask removes the matching task. Absent IDs are a no-op.
func (s *Store) DeleteTask(ctx context.Context, id string) error {
	if err := s.tasks.Delete(ctx, id); err != nil && !isNotFound(err) {
		return fmt.Errorf("delete task: %w", err)
	}
	return nil
}

func (s *Store) create(ctx context.Context, kv jetstream.KeyValue, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	if _, err := kv.Create(ctx, key, data); err != nil {
		return err
	}
	return nil
}

func (s *Store) put(ctx context.Context, kv jetstream.KeyValue, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	if _, err := kv.Put(ctx, key, data); err != nil {
		return err
	}
	return nil
}

// isNotFound checks if an error indicates a key was not found.
func isNotFound(err error) bool {
	return err != nil && strings.Contains(err.Error(), "key not found")
}
