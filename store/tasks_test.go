package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/taskboard/entity"
	"github.com/c360studio/taskboard/storage"
)

func TestTasksFetch(t *testing.T) {
	backend := &fakeBackend{tasks: entity.SeedTasks()}
	store := NewTasks(backend)

	err := store.Fetch(context.Background(), "proj_1")
	require.NoError(t, err)

	state := store.State()
	assert.Len(t, state.Tasks, 5)
	for _, task := range state.Tasks {
		assert.Equal(t, "proj_1", task.ProjectID)
	}
}

func TestTasksFetchReplacesWorkingSet(t *testing.T) {
	backend := &fakeBackend{tasks: entity.SeedTasks()}
	store := NewTasks(backend)
	require.NoError(t, store.Fetch(context.Background(), "proj_1"))
	require.NotEmpty(t, store.State().Tasks)

	// Switching to a project with no tasks empties the set.
	require.NoError(t, store.Fetch(context.Background(), "proj_2"))
	assert.Empty(t, store.State().Tasks)
}

func TestTasksFetchFailure(t *testing.T) {
	store := NewTasks(&fakeBackend{err: errBackend})

	err := store.Fetch(context.Background(), "proj_1")
	require.ErrorIs(t, err, errBackend)

	state := store.State()
	assert.Equal(t, ErrMsgFetchTasks, state.Err)
	assert.False(t, state.Loading)
}

func TestTasksCreate(t *testing.T) {
	store := NewTasks(&fakeBackend{})

	created, err := store.Create(context.Background(), entity.NewTask{
		Title:     "Write launch notes",
		Status:    entity.TaskStatusNotStarted,
		ProjectID: "proj_1",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Nil(t, created.CompletedAt)

	state := store.State()
	require.Len(t, state.Tasks, 1)
	assert.Equal(t, created.ID, state.Tasks[0].ID)
}

func TestTasksCreateFailure(t *testing.T) {
	store := NewTasks(&fakeBackend{err: errBackend})

	_, err := store.Create(context.Background(), entity.NewTask{Title: "x", ProjectID: "proj_1"})
	require.Error(t, err)
	assert.Equal(t, ErrMsgCreateTask, store.State().Err)
}

func TestTasksUpdateStampsCompletedAt(t *testing.T) {
	backend := &fakeBackend{tasks: entity.SeedTasks()}
	store := NewTasks(backend)
	require.NoError(t, store.Fetch(context.Background(), "proj_1"))

	var target entity.Task
	for _, task := range store.State().Tasks {
		if task.Status != entity.TaskStatusCompleted {
			target = task
			break
		}
	}
	require.NotEmpty(t, target.ID)
	require.Nil(t, target.CompletedAt)

	status := entity.TaskStatusCompleted
	updated, err := store.Update(context.Background(), target.ID, entity.TaskPatch{Status: &status})
	require.NoError(t, err)
	assert.NotNil(t, updated.CompletedAt)

	for _, task := range store.State().Tasks {
		if task.ID == target.ID {
			assert.NotNil(t, task.CompletedAt)
		}
	}
}

func TestTasksUpdateNotFound(t *testing.T) {
	backend := &fakeBackend{tasks: entity.SeedTasks()}
	store := NewTasks(backend)
	require.NoError(t, store.Fetch(context.Background(), "proj_1"))

	title := "Renamed"
	_, err := store.Update(context.Background(), "task_missing", entity.TaskPatch{Title: &title})
	require.ErrorIs(t, err, storage.ErrNotFound)

	state := store.State()
	assert.Equal(t, ErrMsgUpdateTask, state.Err)
	assert.Len(t, state.Tasks, 5)
}

func TestTasksUpdateSyncsSelection(t *testing.T) {
	backend := &fakeBackend{tasks: entity.SeedTasks()}
	store := NewTasks(backend)
	require.NoError(t, store.Fetch(context.Background(), "proj_1"))

	tasks := store.State().Tasks
	store.SetSelected(&tasks[0])

	title := "Renamed"
	_, err := store.Update(context.Background(), tasks[0].ID, entity.TaskPatch{Title: &title})
	require.NoError(t, err)

	selected := store.State().Selected
	require.NotNil(t, selected)
	assert.Equal(t, "Renamed", selected.Title)
}

func TestTasksUpdateLeavesOtherSelection(t *testing.T) {
	backend := &fakeBackend{tasks: entity.SeedTasks()}
	store := NewTasks(backend)
	require.NoError(t, store.Fetch(context.Background(), "proj_1"))

	tasks := store.State().Tasks
	store.SetSelected(&tasks[0])

	title := "Renamed"
	_, err := store.Update(context.Background(), tasks[1].ID, entity.TaskPatch{Title: &title})
	require.NoError(t, err)

	selected := store.State().Selected
	require.NotNil(t, selected)
	assert.Equal(t, tasks[0].Title, selected.Title)
}

func TestTasksDelete(t *testing.T) {
	backend := &fakeBackend{tasks: entity.SeedTasks()}
	store := NewTasks(backend)
	require.NoError(t, store.Fetch(context.Background(), "proj_1"))

	tasks := store.State().Tasks
	err := store.Delete(context.Background(), tasks[0].ID)
	require.NoError(t, err)

	state := store.State()
	assert.Len(t, state.Tasks, 4)
	for _, task := range state.Tasks {
		assert.NotEqual(t, tasks[0].ID, task.ID)
	}
}

func TestTasksDeleteClearsSelection(t *testing.T) {
	backend := &fakeBackend{tasks: entity.SeedTasks()}
	store := NewTasks(backend)
	require.NoError(t, store.Fetch(context.Background(), "proj_1"))

	tasks := store.State().Tasks
	store.SetSelected(&tasks[0])

	require.NoError(t, store.Delete(context.Background(), tasks[0].ID))
	assert.Nil(t, store.State().Selected)
}

func TestTasksDeleteKeepsOtherSelection(t *testing.T) {
	backend := &fakeBackend{tasks: entity.SeedTasks()}
	store := NewTasks(backend)
	require.NoError(t, store.Fetch(context.Background(), "proj_1"))

	tasks := store.State().Tasks
	store.SetSelected(&tasks[0])

	require.NoError(t, store.Delete(context.Background(), tasks[1].ID))

	selected := store.State().Selected
	require.NotNil(t, selected)
	assert.Equal(t, tasks[0].ID, selected.ID)
}

func TestTasksSetSelectedCopies(t *testing.T) {
	store := NewTasks(&fakeBackend{})

	task := entity.Task{ID: "task_1", Title: "original"}
	store.SetSelected(&task)
	task.Title = "mutated"

	selected := store.State().Selected
	require.NotNil(t, selected)
	assert.Equal(t, "original", selected.Title)

	store.SetSelected(nil)
	assert.Nil(t, store.State().Selected)
}

func TestTasksClearError(t *testing.T) {
	store := NewTasks(&fakeBackend{err: errBackend})

	_ = store.Fetch(context.Background(), "proj_1")
	require.Equal(t, ErrMsgFetchTasks, store.State().Err)

	store.ClearError()
	assert.Empty(t, store.State().Err)
}
