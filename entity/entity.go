// Package entity defines the taskboard domain model: users, projects,
// tasks, their status enumerations, and the patch types used for
// partial updates.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// ProjectStatus represents the lifecycle status of a project.
type ProjectStatus string

const (
	ProjectStatusActive    ProjectStatus = "active"
	ProjectStatusCompleted ProjectStatus = "completed"
	ProjectStatusArchived  ProjectStatus = "archived"
)

// Valid reports whether s is a declared project status.
func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectStatusActive, ProjectStatusCompleted, ProjectStatusArchived:
		return true
	}
	return false
}

// TaskStatus represents the status of a task.
type TaskStatus string

const (
	TaskStatusNotStarted TaskStatus = "not_started"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusOnHold     TaskStatus = "on_hold"
	TaskStatusCancelled  TaskStatus = "cancelled"
)

// Valid reports whether s is a declared task status.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusNotStarted, TaskStatusInProgress, TaskStatusCompleted,
		TaskStatusOnHold, TaskStatusCancelled:
		return true
	}
	return false
}

// User is an account record. The password hash never leaves the server.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Country      string    `json:"country"`
	CreatedAt    time.Time `json:"created_at"`
	PasswordHash string    `json:"-"`
}

// Project groups tasks under an owning user. TaskCount and
// CompletedTaskCount are denormalized aggregates; they are maintained by
// explicit updates, not synchronized automatically when tasks change.
type Project struct {
	ID                 string        `json:"id"`
	Title              string        `json:"title"`
	Description        string        `json:"description"`
	Status             ProjectStatus `json:"status"`
	UserID             string        `json:"user_id"`
	CreatedAt          time.Time     `json:"created_at"`
	UpdatedAt          time.Time     `json:"updated_at"`
	TaskCount          int           `json:"task_count"`
	CompletedTaskCount int           `json:"completed_task_count"`
}

// Task is a unit of work scoped to a project. CompletedAt is stamped the
// first time the status transitions into completed and is never cleared
// afterwards, so it records when the task was first finished even if the
// status later moves away from completed.
type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      TaskStatus `json:"status"`
	ProjectID   string     `json:"project_id"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// ID prefixes keep entity identifiers recognizable in logs and URLs.
const (
	UserIDPrefix    = "user_"
	ProjectIDPrefix = "proj_"
	TaskIDPrefix    = "task_"
)

// NewUserID generates a unique user identifier.
func NewUserID() string { return UserIDPrefix + uuid.NewString() }

// NewProjectID generates a unique project identifier.
func NewProjectID() string { return ProjectIDPrefix + uuid.NewString() }

// NewTaskID generates a unique task identifier.
func NewTaskID() string { return TaskIDPrefix + uuid.NewString() }

// NewProject is the payload for creating a project. Ownership, counts and
// timestamps are assigned by the storage layer.
type NewProject struct {
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Status      ProjectStatus `json:"status"`
}

// NewTask is the payload for creating a task.
type NewTask struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      TaskStatus `json:"status"`
	ProjectID   string     `json:"project_id"`
}

// Registration is the payload for creating an account.
type Registration struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Country  string `json:"country"`
	Password string `json:"password"`
}

// ProjectPatch lists the mutable project fields. Nil fields are left
// untouched by Apply.
type ProjectPatch struct {
	Title              *string        `json:"title,omitempty"`
	Description        *string        `json:"description,omitempty"`
	Status             *ProjectStatus `json:"status,omitempty"`
	TaskCount          *int           `json:"task_count,omitempty"`
	CompletedTaskCount *int           `json:"completed_task_count,omitempty"`
}

// Apply merges the patch into the project and refreshes UpdatedAt.
func (p *Project) Apply(patch ProjectPatch, now time.Time) {
	if patch.Title != nil {
		p.Title = *patch.Title
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Status != nil {
		p.Status = *patch.Status
	}
	if patch.TaskCount != nil {
		p.TaskCount = *patch.TaskCount
	}
	if patch.CompletedTaskCount != nil {
		p.CompletedTaskCount = *patch.CompletedTaskCount
	}
	p.UpdatedAt = now
}

// TaskPatch lists the mutable task fields. Nil fields are left untouched
// by Apply.
type TaskPatch struct {
	Title       *string     `json:"title,omitempty"`
	Description *string     `json:"description,omitempty"`
	Status      *TaskStatus `json:"status,omitempty"`
}

// Apply merges the patch into the task and refreshes UpdatedAt. When the
// status transitions into completed from any other status, CompletedAt is
// stamped; it is never cleared on later transitions away from completed.
func (t *Task) Apply(patch TaskPatch, now time.Time) {
	if patch.Title != nil {
		t.Title = *patch.Title
	}
	if patch.Description != nil {
		t.Description = *patch.Description
	}
	if patch.Status != nil {
		if *patch.Status == TaskStatusCompleted && t.Status != TaskStatusCompleted {
			completed := now
			t.CompletedAt = &completed
		}
		t.Status = *patch.Status
	}
	t.UpdatedAt = now
}
