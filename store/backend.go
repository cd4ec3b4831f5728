// Package store holds the client-side state containers: authentication,
// projects, and the tasks of the currently viewed project. Each store
// exclusively owns its state and exposes the operations that mutate it.
//
// Stores call a Backend port for data access, so the UI can run against
// the real HTTP API or an in-process mock interchangeably. State
// updates are last-write-wins: the stores impose no lock across an
// in-flight backend call, matching the expectation that the UI disables
// triggers while an operation is loading.
package store

import (
	"context"

	"github.com/c360studio/taskboard/entity"
)

// Session is an authenticated session returned by login and register.
type Session struct {
	Token string      `json:"token"`
	User  entity.User `json:"user"`
}

// Backend is the data-access port the stores call. Implementations live
// in the client package.
type Backend interface {
	Login(ctx context.Context, email, password string) (*Session, error)
	Register(ctx context.Context, reg entity.Registration) (*Session, error)

	FetchProjects(ctx context.Context) ([]entity.Project, error)
	CreateProject(ctx context.Context, p entity.NewProject) (*entity.Project, error)
	UpdateProject(ctx context.Context, id string, patch entity.ProjectPatch) (*entity.Project, error)
	DeleteProject(ctx context.Context, id string) error

	FetchTasks(ctx context.Context, projectID string) ([]entity.Task, error)
	CreateTask(ctx context.Context, t entity.NewTask) (*entity.Task, error)
	UpdateTask(ctx context.Context, id string, patch entity.TaskPatch) (*entity.Task, error)
	DeleteTask(ctx context.Context, id string) error
}

// TokenStore persists the session token across process restarts.
type TokenStore interface {
	Load() (string, error)
	Save(token string) error
	Clear() error
}
