package store

import (
	"context"
	"errors"
	"time"

	"github.com/c360studio/taskboard/entity"
	"github.com/c360studio/taskboard/storage"
)

// fakeBackend is a scriptable Backend for store tests. Each call
// returns the canned response, or the canned error when set.
type fakeBackend struct {
	session  *Session
	projects []entity.Project
	tasks    []entity.Task
	err      error

	calls []string
}

func (f *fakeBackend) Login(_ context.Context, email, password string) (*Session, error) {
	f.calls = append(f.calls, "login")
	if f.err != nil {
		return nil, f.err
	}
	return f.session, nil
}

func (f *fakeBackend) Register(_ context.Context, reg entity.Registration) (*Session, error) {
	f.calls = append(f.calls, "register")
	if f.err != nil {
		return nil, f.err
	}
	return f.session, nil
}

func (f *fakeBackend) FetchProjects(_ context.Context) ([]entity.Project, error) {
	f.calls = append(f.calls, "fetchProjects")
	if f.err != nil {
		return nil, f.err
	}
	return f.projects, nil
}

func (f *fakeBackend) CreateProject(_ context.Context, p entity.NewProject) (*entity.Project, error) {
	f.calls = append(f.calls, "createProject")
	if f.err != nil {
		return nil, f.err
	}
	created := entity.Project{
		ID:          entity.NewProjectID(),
		UserID:      "user_1",
		Title:       p.Title,
		Description: p.Description,
		Status:      p.Status,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	return &created, nil
}

func (f *fakeBackend) UpdateProject(_ context.Context, id string, patch entity.ProjectPatch) (*entity.Project, error) {
	f.calls = append(f.calls, "updateProject")
	if f.err != nil {
		return nil, f.err
	}
	for _, p := range f.projects {
		if p.ID == id {
			p.Apply(patch, time.Now())
			return &p, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (f *fakeBackend) DeleteProject(_ context.Context, id string) error {
	f.calls = append(f.calls, "deleteProject")
	return f.err
}

func (f *fakeBackend) FetchTasks(_ context.Context, projectID string) ([]entity.Task, error) {
	f.calls = append(f.calls, "fetchTasks")
	if f.err != nil {
		return nil, f.err
	}
	var out []entity.Task
	for _, t := range f.tasks {
		if t.ProjectID == projectID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeBackend) CreateTask(_ context.Context, t entity.NewTask) (*entity.Task, error) {
	f.calls = append(f.calls, "createTask")
	if f.err != nil {
		return nil, f.err
	}
	created := entity.Task{
		ID:          entity.NewTaskID(),
		ProjectID:   t.ProjectID,
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	return &created, nil
}

func (f *fakeBackend) UpdateTask(_ context.Context, id string, patch entity.TaskPatch) (*entity.Task, error) {
	f.calls = append(f.calls, "updateTask")
	if f.err != nil {
		return nil, f.err
	}
	for _, t := range f.tasks {
		if t.ID == id {
			t.Apply(patch, time.Now())
			return &t, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (f *fakeBackend) DeleteTask(_ context.Context, id string) error {
	f.calls = append(f.calls, "deleteTask")
	return f.err
}

// fakeTokens is an in-memory TokenStore.
type fakeTokens struct {
	token   string
	loadErr error
	saveErr error
}

func (f *fakeTokens) Load() (string, error) {
	if f.loadErr != nil {
		return "", f.loadErr
	}
	return f.token, nil
}

func (f *fakeTokens) Save(token string) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.token = token
	return nil
}

func (f *fakeTokens) Clear() error {
	f.token = ""
	return nil
}

var errBackend = errors.New("backend unavailable")
