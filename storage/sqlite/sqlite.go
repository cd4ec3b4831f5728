// Package sqlite provides a storage.Store backed by an embedded SQLite
// database.
package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/c360studio/taskboard/entity"
	"github.com/c360studio/taskboard/storage"
)

//go:embed schema.sql
var schema string

// Store wraps the database connection.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens (or creates) the database at path and initializes the schema.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// SQLite handles one writer at a time; a single connection avoids
	// SQLITE_BUSY under concurrent handlers.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	return &Store{db: db, now: time.Now}, nil
}

// Close closes the database connection.
func (s *Store) Close() error { return s.db.Close() }

// CreateUser stores a new account, assigning its ID and creation time.
func (s *Store) CreateUser(ctx context.Context, u *entity.User) error {
	var exists int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM users WHERE email = ?`, u.Email).Scan(&exists)
	if err != nil {
		return fmt.Errorf("check email: %w", err)
	}
	if exists > 0 {
		return storage.ErrEmailTaken
	}

	u.ID = entity.NewUserID()
	u.CreatedAt = s.now()

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO users (id, email, name, country, password_hash, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, u.ID, u.Email, u.Name, u.Country, u.PasswordHash, u.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (s *Store) scanUser(row *sql.Row) (*entity.User, error) {
	u := &entity.User{}
	err := row.Scan(&u.ID, &u.Email, &u.Name, &u.Country, &u.PasswordHash, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan user: %w", err)
	}
	return u, nil
}

// GetUser retrieves a user by ID.
func (s *Store) GetUser(ctx context.Context, id string) (*entity.User, error) {
	return s.scanUser(s.db.QueryRowContext(ctx, `
		SELECT id, email, name, country, password_hash, created_at
		FROM users WHERE id = ?
	`, id))
}

// GetUserByEmail retrieves a user by email.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*entity.User, error) {
	return s.scanUser(s.db.QueryRowContext(ctx, `
		SELECT id, email, name, country, password_hash, created_at
		FROM users WHERE email = ?
	`, email))
}

// ListProjects returns the projects owned by userID in creation order.
func (s *Store) ListProjects(ctx context.Context, userID string) ([]entity.Project, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, description, status, user_id,
		       created_at, updated_at, task_count, completed_task_count
		FROM projects WHERE user_id = ? ORDER BY created_at ASC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	projects := make([]entity.Project, 0)
	for rows.Next() {
		var p entity.Project
		if err := rows.Scan(&p.ID, &p.Title, &p.Description, &p.Status, &p.UserID,
			&p.CreatedAt, &p.UpdatedAt, &p.TaskCount, &p.CompletedTaskCount); err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

// GetProject retrieves a project by ID.
func (s *Store) GetProject(ctx context.Context, id string) (*entity.Project, error) {
	p := &entity.Project{}
	err := s.db.QueryRowContext(ctx, `
		SELECT id, title, description, status, user_id,
		       created_at, updated_at, task_count, completed_task_count
		FROM projects WHERE id = ?
	`, id).Scan(&p.ID, &p.Title, &p.Description, &p.Status, &p.UserID,
		&p.CreatedAt, &p.UpdatedAt, &p.TaskCount, &p.CompletedTaskCount)
	if err == sql.ErrNoRows {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan project: %w", err)
	}
	return p, nil
}

// CreateProject stores a new project, assigning its ID and timestamps.
func (s *Store) CreateProject(ctx context.Context, p *entity.Project) error {
	p.ID = entity.NewProjectID()
	now := s.now()
	p.CreatedAt = now
	p.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO projects (id, title, description, status, user_id,
		                      created_at, updated_at, task_count, completed_task_count)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, p.ID, p.Title, p.Description, p.Status, p.UserID,
		p.CreatedAt, p.UpdatedAt, p.TaskCount, p.CompletedTaskCount)
	if err != nil {
		return fmt.Errorf("insert project: %w", err)
	}
	return nil
}

// UpdateProject applies a patch to the matching project.
func (s *Store) UpdateProject(ctx context.Context, id string, patch entity.ProjectPatch) (*entity.Project, error) {
	p, err := s.GetProject(ctx, id)
	if err != nil {
		return nil, err
	}

	p.Apply(patch, s.now())

	_, err = s.db.ExecContext(ctx, `
		UPDATE projects
		SET title = ?, description = ?, status = ?,
		    task_count = ?, completed_task_count = ?, updated_at = ?
		WHERE id = ?
	`, p.Title, p.Description, p.Status, p.TaskCount, p.CompletedTaskCount, p.UpdatedAt, p.ID)
	if err != nil {
		return nil, fmt.Errorf("update project: %w", err)
	}
	return p, nil
}

// DeleteProject removes the matching project. Absent IDs are a no-op and
// the project's tasks are not touched.
func (s *Store) DeleteProject(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	return nil
}

// ListTasks returns the tasks for projectID in creation order.
func (s *Store) ListTasks(ctx context.Context, projectID string) ([]entity.Task, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, description, status, project_id,
		       created_at, updated_at, completed_at
		FROM tasks WHERE project_id = ? ORDER BY created_at ASC
	`, projectID)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	tasks := make([]entity.Task, 0)
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *t)
	}
	return tasks, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*entity.Task, error) {
	t := &entity.Task{}
	var completedAt sql.NullTime
	err := row.Scan(&t.ID, &t.Title, &t.Description, &t.Status, &t.ProjectID,
		&t.CreatedAt, &t.UpdatedAt, &completedAt)
	if err == sql.ErrNoRows {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan task: %w", err)
	}
	if completedAt.Valid {
		t.CompletedAt = &completedAt.Time
	}
	return t, nil
}

// GetTask retrieves a task by ID.
func (s *Store) GetTask(ctx context.Context, id string) (*entity.Task, error) {
	return scanTask(s.db.QueryRowContext(ctx, `
		SELECT id, title, description, status, project_id,
		       created_at, updated_at, completed_at
		FROM tasks WHERE id = ?
	`, id))
}

// CreateTask stores a new task, assigning its ID and timestamps.
func (s *Store) CreateTask(ctx context.Context, t *entity.Task) error {
	t.ID = entity.NewTaskID()
	now := s.now()
	t.CreatedAt = now
	t.UpdatedAt = now
	t.CompletedAt = nil

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO tasks (id, title, description, status, project_id,
		                   created_at, updated_at, completed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, NULL)
	`, t.ID, t.Title, t.Description, t.Status, t.ProjectID, t.CreatedAt, t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert task: %w", err)
	}
	return nil
}

// UpdateTask applies a patch to the matching task.
func (s *Store) UpdateTask(ctx context.Context, id string, patch entity.TaskPatch) (*entity.Task, error) {
	t, err := s.GetTask(ctx, id)
	if err != nil {
		return nil, err
	}

	t.Apply(patch, s.now())

	var completedAt sql.NullTime
	if t.CompletedAt != nil {
		completedAt = sql.NullTime{Time: *t.CompletedAt, Valid: true}
	}

	_, err = s.db.ExecContext(ctx, `
		UPDATE tasks
		SET title = ?, description = ?, status = ?, updated_at = ?, completed_at = ?
		WHERE id = ?
	`, t.Title, t.Description, t.Status, t.UpdatedAt, completedAt, t.ID)
	if err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}
	return t, nil
}

// DeleteTask removes the matching task. Absent IDs are a no-op.
func (s *Store) DeleteTask(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return nil
}
