// Package events publishes entity mutation events to NATS so other
// services can react to taskboard changes.
package events

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
)

// Subject prefix for mutation events. The full subject is
// taskboard.event.<entity>.<action>, e.g. taskboard.event.task.updated.
const SubjectPrefix = "taskboard.event"

// Actions.
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// Entity kinds.
const (
	EntityUser    = "user"
	EntityProject = "project"
	EntityTask    = "task"
)

// Event is the message format for mutation events.
type Event struct {
	Entity    string    `json:"entity"`
	Action    string    `json:"action"`
	ID        string    `json:"id"`
	Payload   any       `json:"payload,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Subject returns the NATS subject for the event.
func (e Event) Subject() string {
	return fmt.Sprintf("%s.%s.%s", SubjectPrefix, e.Entity, e.Action)
}

// Publisher publishes mutation events. A nil Publisher is valid and
// publishes nothing, so callers need no conditional wiring when NATS is
// not configured.
type Publisher struct {
	nc     *nats.Conn
	logger *slog.Logger
}

// New creates a Publisher over the given connection.
func New(nc *nats.Conn, logger *slog.Logger) *Publisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Publisher{nc: nc, logger: logger}
}

// Publish emits a mutation event. Failures are logged, not returned:
// event delivery is best-effort and never blocks the mutation itself.
func (p *Publisher) Publish(entity, action, id string, payload any) {
	if p == nil || p.nc == nil {
		return
	}

	event := Event{
		Entity:    entity,
		Action:    action,
		ID:        id,
		Payload:   payload,
		Timestamp: time.Now(),
	}

	data, err := json.Marshal(event)
	if err != nil {
		p.logger.Error("Failed to marshal event", "subject", event.Subject(), "error", err)
		return
	}

	if err := p.nc.Publish(event.Subject(), data); err != nil {
		p.logger.Warn("Failed to publish event", "subject", event.Subject(), "error", err)
	}
}
