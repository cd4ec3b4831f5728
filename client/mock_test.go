package client

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/taskboard/auth"
	"github.com/c360studio/taskboard/entity"
	"github.com/c360studio/taskboard/storage"
)

func TestMockLoginSynthesizesUser(t *testing.T) {
	mock := NewMock()

	session, err := mock.Login(context.Background(), "ann@example.com", "any-password-works")
	require.NoError(t, err)

	assert.Equal(t, "ann", session.User.Name)
	assert.Equal(t, "ann@example.com", session.User.Email)
	assert.Equal(t, "United States", session.User.Country)

	// The demo token decodes like a real one.
	decoded, err := auth.DecodeUser(session.Token)
	require.NoError(t, err)
	assert.Equal(t, session.User.Email, decoded.Email)
}

func TestMockRegisterKeepsIdentity(t *testing.T) {
	mock := NewMock()

	session, err := mock.Register(context.Background(), entity.Registration{
		Name:     "Ann",
		Email:    "ann@example.com",
		Country:  "Canada",
		Password: "longenough",
	})
	require.NoError(t, err)
	assert.Equal(t, "Ann", session.User.Name)
	assert.Equal(t, "Canada", session.User.Country)
}

func TestMockSeededData(t *testing.T) {
	mock := NewMock()

	projects, err := mock.FetchProjects(context.Background())
	require.NoError(t, err)
	assert.Len(t, projects, 3)

	tasks, err := mock.FetchTasks(context.Background(), "proj_1")
	require.NoError(t, err)
	assert.Len(t, tasks, 5)
}

func TestMockProjectCRUD(t *testing.T) {
	mock := NewMock()

	created, err := mock.CreateProject(context.Background(), entity.NewProject{
		Title:  "New Project",
		Status: entity.ProjectStatusActive,
	})
	require.NoError(t, err)

	title := "Renamed"
	updated, err := mock.UpdateProject(context.Background(), created.ID, entity.ProjectPatch{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Title)

	_, err = mock.UpdateProject(context.Background(), "proj_missing", entity.ProjectPatch{Title: &title})
	require.ErrorIs(t, err, storage.ErrNotFound)

	require.NoError(t, mock.DeleteProject(context.Background(), created.ID))
	require.NoError(t, mock.DeleteProject(context.Background(), created.ID))
}

func TestMockDeleteProjectKeepsTasks(t *testing.T) {
	mock := NewMock()

	require.NoError(t, mock.DeleteProject(context.Background(), "proj_1"))

	tasks, err := mock.FetchTasks(context.Background(), "proj_1")
	require.NoError(t, err)
	assert.Len(t, tasks, 5)
}

func TestMockTaskCompletion(t *testing.T) {
	stamp := time.Date(2023, 6, 1, 12, 0, 0, 0, time.UTC)
	mock := NewMock(WithClock(func() time.Time { return stamp }))

	created, err := mock.CreateTask(context.Background(), entity.NewTask{
		Title:     "Finish report",
		Status:    entity.TaskStatusInProgress,
		ProjectID: "proj_1",
	})
	require.NoError(t, err)
	require.Nil(t, created.CompletedAt)

	status := entity.TaskStatusCompleted
	updated, err := mock.UpdateTask(context.Background(), created.ID, entity.TaskPatch{Status: &status})
	require.NoError(t, err)
	require.NotNil(t, updated.CompletedAt)
	assert.Equal(t, stamp, *updated.CompletedAt)

	// Moving away from completed keeps the stamp.
	status = entity.TaskStatusOnHold
	updated, err = mock.UpdateTask(context.Background(), created.ID, entity.TaskPatch{Status: &status})
	require.NoError(t, err)
	require.NotNil(t, updated.CompletedAt)
	assert.Equal(t, stamp, *updated.CompletedAt)
}

func TestMockDelay(t *testing.T) {
	mock := NewMock(WithDelay(20 * time.Millisecond))

	start := time.Now()
	_, err := mock.FetchProjects(context.Background())
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
}

func TestMockDelayHonorsCancellation(t *testing.T) {
	mock := NewMock(WithDelay(time.Second))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := mock.FetchProjects(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}
