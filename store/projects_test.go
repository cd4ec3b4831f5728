package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/taskboard/entity"
	"github.com/c360studio/taskboard/storage"
)

func TestProjectsFetch(t *testing.T) {
	backend := &fakeBackend{projects: entity.SeedProjects()}
	store := NewProjects(backend)

	err := store.Fetch(context.Background())
	require.NoError(t, err)

	state := store.State()
	assert.Len(t, state.Projects, 3)
	assert.Empty(t, state.Err)
	assert.False(t, state.Loading)
}

func TestProjectsFetchFailure(t *testing.T) {
	store := NewProjects(&fakeBackend{err: errBackend})

	err := store.Fetch(context.Background())
	require.ErrorIs(t, err, errBackend)

	state := store.State()
	assert.Empty(t, state.Projects)
	assert.Equal(t, ErrMsgFetchProjects, state.Err)
	assert.False(t, state.Loading)
}

func TestProjectsFetchReplacesList(t *testing.T) {
	backend := &fakeBackend{projects: entity.SeedProjects()}
	store := NewProjects(backend)
	require.NoError(t, store.Fetch(context.Background()))

	backend.projects = backend.projects[:1]
	require.NoError(t, store.Fetch(context.Background()))

	assert.Len(t, store.State().Projects, 1)
}

func TestProjectsCreate(t *testing.T) {
	store := NewProjects(&fakeBackend{})

	created, err := store.Create(context.Background(), entity.NewProject{
		Title:  "Website Redesign",
		Status: entity.ProjectStatusActive,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	state := store.State()
	require.Len(t, state.Projects, 1)
	assert.Equal(t, created.ID, state.Projects[0].ID)
}

func TestProjectsCreateFailure(t *testing.T) {
	store := NewProjects(&fakeBackend{err: errBackend})

	_, err := store.Create(context.Background(), entity.NewProject{Title: "x"})
	require.Error(t, err)

	state := store.State()
	assert.Empty(t, state.Projects)
	assert.Equal(t, ErrMsgCreateProject, state.Err)
}

func TestProjectsUpdate(t *testing.T) {
	backend := &fakeBackend{projects: entity.SeedProjects()}
	store := NewProjects(backend)
	require.NoError(t, store.Fetch(context.Background()))

	title := "Renamed"
	updated, err := store.Update(context.Background(), "proj_1", entity.ProjectPatch{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Title)

	state := store.State()
	assert.Equal(t, "Renamed", state.Projects[0].Title)
	assert.Empty(t, state.Err)
}

func TestProjectsUpdateNotFound(t *testing.T) {
	backend := &fakeBackend{projects: entity.SeedProjects()}
	store := NewProjects(backend)
	require.NoError(t, store.Fetch(context.Background()))

	title := "Renamed"
	_, err := store.Update(context.Background(), "proj_missing", entity.ProjectPatch{Title: &title})
	require.ErrorIs(t, err, storage.ErrNotFound)

	state := store.State()
	assert.Equal(t, ErrMsgUpdateProject, state.Err)
	// The list is untouched when the backend reports no match.
	assert.Len(t, state.Projects, 3)
	for _, p := range state.Projects {
		assert.NotEqual(t, "Renamed", p.Title)
	}
}

func TestProjectsDelete(t *testing.T) {
	backend := &fakeBackend{projects: entity.SeedProjects()}
	store := NewProjects(backend)
	require.NoError(t, store.Fetch(context.Background()))

	err := store.Delete(context.Background(), "proj_2")
	require.NoError(t, err)

	state := store.State()
	assert.Len(t, state.Projects, 2)
	for _, p := range state.Projects {
		assert.NotEqual(t, "proj_2", p.ID)
	}
}

func TestProjectsDeleteAbsent(t *testing.T) {
	backend := &fakeBackend{projects: entity.SeedProjects()}
	store := NewProjects(backend)
	require.NoError(t, store.Fetch(context.Background()))

	err := store.Delete(context.Background(), "proj_missing")
	require.NoError(t, err)

	assert.Len(t, store.State().Projects, 3)
}

func TestProjectsClearError(t *testing.T) {
	store := NewProjects(&fakeBackend{err: errBackend})

	_ = store.Fetch(context.Background())
	require.Equal(t, ErrMsgFetchProjects, store.State().Err)

	store.ClearError()
	assert.Empty(t, store.State().Err)
}
