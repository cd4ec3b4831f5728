// Package client provides the Backend implementations the state stores
// run against: an HTTP adapter for the real API and an in-process mock
// backed by demo data.
package client

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/c360studio/taskboard/auth"
	"github.com/c360studio/taskboard/entity"
	"github.com/c360studio/taskboard/storage"
	"github.com/c360studio/taskboard/store"
)

// mockSecret signs the demo tokens. The mock never verifies them; they
// only need to decode.
const mockSecret = "taskboard-demo-secret"

// Mock is an in-process Backend seeded with demo data. It accepts any
// credentials and synthesizes the account from the email address, so
// the UI can be exercised without a server. Not for production use.
type Mock struct {
	mu       sync.Mutex
	projects []entity.Project
	tasks    []entity.Task
	issuer   *auth.Issuer
	delay    time.Duration
	now      func() time.Time
}

// MockOption configures a Mock.
type MockOption func(*Mock)

// WithDelay makes every call sleep first, simulating network latency.
func WithDelay(d time.Duration) MockOption {
	return func(m *Mock) { m.delay = d }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) MockOption {
	return func(m *Mock) { m.now = now }
}

// NewMock creates a mock backend seeded with the demo projects and
// tasks.
func NewMock(opts ...MockOption) *Mock {
	m := &Mock{
		projects: entity.SeedProjects(),
		tasks:    entity.SeedTasks(),
		issuer:   auth.NewIssuer(mockSecret, 0),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// wait simulates latency, honoring cancellation.
func (m *Mock) wait(ctx context.Context) error {
	if m.delay <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(m.delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// syntheticUser builds an account from an email address. The local part
// becomes the display name.
func (m *Mock) syntheticUser(email string) entity.User {
	name := email
	if at := strings.Index(email, "@"); at > 0 {
		name = email[:at]
	}
	return entity.User{
		ID:        "user_1",
		Email:     email,
		Name:      name,
		Country:   "United States",
		CreatedAt: m.now(),
	}
}

func (m *Mock) session(user entity.User) (*store.Session, error) {
	token, err := m.issuer.Issue(user)
	if err != nil {
		return nil, err
	}
	return &store.Session{Token: token, User: user}, nil
}

// Login accepts any password and signs in as a synthesized account.
func (m *Mock) Login(ctx context.Context, email, password string) (*store.Session, error) {
	if err := m.wait(ctx); err != nil {
		return nil, err
	}
	return m.session(m.syntheticUser(email))
}

// Register signs in as the registered identity. No uniqueness check is
// made; the mock has no user table.
func (m *Mock) Register(ctx context.Context, reg entity.Registration) (*store.Session, error) {
	if err := m.wait(ctx); err != nil {
		return nil, err
	}
	user := m.syntheticUser(reg.Email)
	if reg.Name != "" {
		user.Name = reg.Name
	}
	if reg.Country != "" {
		user.Country = reg.Country
	}
	return m.session(user)
}

func (m *Mock) FetchProjects(ctx context.Context) ([]entity.Project, error) {
	if err := m.wait(ctx); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]entity.Project, len(m.projects))
	copy(out, m.projects)
	return out, nil
}

func (m *Mock) CreateProject(ctx context.Context, p entity.NewProject) (*entity.Project, error) {
	if err := m.wait(ctx); err != nil {
		return nil, err
	}

	now := m.now()
	created := entity.Project{
		ID:          entity.NewProjectID(),
		UserID:      "user_1",
		Title:       p.Title,
		Description: p.Description,
		Status:      p.Status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	m.mu.Lock()
	m.projects = append(m.projects, created)
	m.mu.Unlock()
	return &created, nil
}

func (m *Mock) UpdateProject(ctx context.Context, id string, patch entity.ProjectPatch) (*entity.Project, error) {
	if err := m.wait(ctx); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.projects {
		if m.projects[i].ID == id {
			m.projects[i].Apply(patch, m.now())
			updated := m.projects[i]
			return &updated, nil
		}
	}
	return nil, storage.ErrNotFound
}

// DeleteProject removes the project but leaves its tasks in place.
// Deleting an absent id is a no-op.
func (m *Mock) DeleteProject(ctx context.Context, id string) error {
	if err := m.wait(ctx); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.projects[:0]
	for _, p := range m.projects {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	m.projects = kept
	return nil
}

func (m *Mock) FetchTasks(ctx context.Context, projectID string) ([]entity.Task, error) {
	if err := m.wait(ctx); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	var out []entity.Task
	for _, t := range m.tasks {
		if t.ProjectID == projectID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (m *Mock) CreateTask(ctx context.Context, t entity.NewTask) (*entity.Task, error) {
	if err := m.wait(ctx); err != nil {
		return nil, err
	}

	now := m.now()
	created := entity.Task{
		ID:          entity.NewTaskID(),
		ProjectID:   t.ProjectID,
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	m.mu.Lock()
	m.tasks = append(m.tasks, created)
	m.mu.Unlock()
	return &created, nil
}

func (m *Mock) UpdateTask(ctx context.Context, id string, patch entity.TaskPatch) (*entity.Task, error) {
	if err := m.wait(ctx); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.tasks {
		if m.tasks[i].ID == id {
			m.tasks[i].Apply(patch, m.now())
			updated := m.tasks[i]
			return &updated, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (m *Mock) DeleteTask(ctx context.Context, id string) error {
	if err := m.wait(ctx); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.tasks[:0]
	for _, t := range m.tasks {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	m.tasks = kept
	return nil
}
