// Package storage defines the persistence port for taskboard entities.
// Adapters live in the subpackages: memory (maps), sqlite (embedded
// database), and natskv (NATS JetStream key-value buckets).
package storage

import (
	"context"

	"github.com/c360studio/taskboard/entity"
)

// Store persists users, projects and tasks.
//
// Create methods assign the record's ID and timestamps. Update methods
// apply a patch and return the updated record, or ErrNotFound when no
// record matches. Delete methods are idempotent: deleting an absent ID
// is a no-op, not an error.
type Store interface {
	// CreateUser stores a new account. Returns ErrEmailTaken when the
	// email is already registered.
	CreateUser(ctx context.Context, u *entity.User) error
	GetUser(ctx context.Context, id string) (*entity.User, error)
	GetUserByEmail(ctx context.Context, email string) (*entity.User, error)

	// ListProjects returns the projects owned by userID in creation order.
	ListProjects(ctx context.Context, userID string) ([]entity.Project, error)
	GetProject(ctx context.Context, id string) (*entity.Project, error)
	CreateProject(ctx context.Context, p *entity.Project) error
	UpdateProject(ctx context.Context, id string, patch entity.ProjectPatch) (*entity.Project, error)
	// DeleteProject removes the project only. Its tasks are left in
	// place; cleaning them up is the caller's decision.
	DeleteProject(ctx context.Context, id string) error

	// ListTasks returns the tasks belonging to projectID in creation order.
	ListTasks(ctx context.Context, projectID string) ([]entity.Task, error)
	GetTask(ctx context.Context, id string) (*entity.Task, error)
	CreateTask(ctx context.Context, t *entity.Task) error
	UpdateTask(ctx context.Context, id string, patch entity.TaskPatch) (*entity.Task, error)
	DeleteTask(ctx context.Context, id string) error

	// Close releases any underlying resources.
	Close() error
}
