package events

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventSubject(t *testing.T) {
	e := Event{Entity: EntityTask, Action: ActionUpdated, ID: "task_1"}
	assert.Equal(t, "taskboard.event.task.updated", e.Subject())

	e = Event{Entity: EntityProject, Action: ActionDeleted, ID: "proj_1"}
	assert.Equal(t, "taskboard.event.project.deleted", e.Subject())
}

func TestEventEncoding(t *testing.T) {
	e := Event{Entity: EntityProject, Action: ActionCreated, ID: "proj_1",
		Payload: map[string]string{"title": "Launch"}}

	data, err := json.Marshal(e)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "project", decoded["entity"])
	assert.Equal(t, "created", decoded["action"])
	assert.Equal(t, "proj_1", decoded["id"])
}

func TestNilPublisherIsSafe(t *testing.T) {
	var p *Publisher
	assert.NotPanics(t, func() {
		p.Publish(EntityTask, ActionCreated, "task_1", nil)
	})

	// A publisher without a connection is equally inert.
	assert.NotPanics(t, func() {
		New(nil, nil).Publish(EntityTask, ActionDeleted, "task_1", nil)
	})
}
