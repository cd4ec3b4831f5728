package store

import (
	"context"
	"sync"

	"github.com/c360studio/taskboard/entity"
)

// User-visible error banners for project operations.
const (
	ErrMsgFetchProjects = "Failed to fetch projects"
	ErrMsgCreateProject = "Failed to create project"
	ErrMsgUpdateProject = "Failed to update project"
	ErrMsgDeleteProject = "Failed to delete project"
)

// ProjectsState is a snapshot of the project store.
type ProjectsState struct {
	Projects []entity.Project
	Err      string
	Loading  bool
}

// Projects holds the project list for the signed-in user.
type Projects struct {
	mu       sync.RWMutex
	backend  Backend
	projects []entity.Project
	err      string
	loading  bool
}

// NewProjects creates a project store.
func NewProjects(backend Backend) *Projects {
	return &Projects{backend: backend}
}

// State returns a copy of the current state.
func (s *Projects) State() ProjectsState {
	s.mu.RLock()
	defer s.mu.RUnlock()

	projects := make([]entity.Project, len(s.projects))
	copy(projects, s.projects)
	return ProjectsState{Projects: projects, Err: s.err, Loading: s.loading}
}

// Fetch loads the full project set, replacing the current list. The
// returned order is the backend's order; no sort is applied.
func (s *Projects) Fetch(ctx context.Context) error {
	s.begin()

	projects, err := s.backend.FetchProjects(ctx)
	if err != nil {
		s.fail(ErrMsgFetchProjects)
		return err
	}

	s.mu.Lock()
	s.projects = projects
	s.loading = false
	s.mu.Unlock()
	return nil
}

// Create adds a project and appends it to the list. The backend assigns
// the id, owner, timestamps and zeroed counts.
func (s *Projects) Create(ctx context.Context, p entity.NewProject) (entity.Project, error) {
	s.begin()

	created, err := s.backend.CreateProject(ctx, p)
	if err != nil {
		s.fail(ErrMsgCreateProject)
		return entity.Project{}, err
	}

	s.mu.Lock()
	s.projects = append(s.projects, *created)
	s.loading = false
	s.mu.Unlock()
	return *created, nil
}

// Update merges the patch into the matching project. When no project
// matches, the error banner shows the generic update message while the
// returned error carries the specific not-found condition.
func (s *Projects) Update(ctx context.Context, id string, patch entity.ProjectPatch) (entity.Project, error) {
	s.begin()

	updated, err := s.backend.UpdateProject(ctx, id, patch)
	if err != nil {
		s.fail(ErrMsgUpdateProject)
		return entity.Project{}, err
	}

	s.mu.Lock()
	for i := range s.projects {
		if s.projects[i].ID == id {
			s.projects[i] = *updated
			break
		}
	}
	s.loading = false
	s.mu.Unlock()
	return *updated, nil
}

// Delete removes the matching project from the list. Deleting an absent
// id is a no-op, not a failure. The project's tasks are not removed.
func (s *Projects) Delete(ctx context.Context, id string) error {
	s.begin()

	if err := s.backend.DeleteProject(ctx, id); err != nil {
		s.fail(ErrMsgDeleteProject)
		return err
	}

	s.mu.Lock()
	kept := s.projects[:0]
	for _, p := range s.projects {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	s.projects = kept
	s.loading = false
	s.mu.Unlock()
	return nil
}

// ClearError dismisses the error banner.
func (s *Projects) ClearError() {
	s.mu.Lock()
	s.err = ""
	s.mu.Unlock()
}

func (s *Projects) begin() {
	s.mu.Lock()
	s.loading = true
	s.err = ""
	s.mu.Unlock()
}

func (s *Projects) fail(message string) {
	s.mu.Lock()
	s.err = message
	s.loading = false
	s.mu.Unlock()
}
