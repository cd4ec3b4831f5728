package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/c360studio/taskboard/entity"
	"github.com/c360studio/taskboard/storage"
	"github.com/c360studio/taskboard/store"
	"github.com/c360studio/taskboard/tokenfile"
)

// ErrUnauthorized is returned when the server rejects the session
// token. The persisted token is cleared before it is returned, so the
// next Initialize starts logged out.
var ErrUnauthorized = errors.New("session expired or invalid")

// HTTP is a Backend that talks to the REST API. The bearer token is
// read from the token store on every request, so a login performed
// through the auth store is picked up without rewiring.
type HTTP struct {
	baseURL string
	client  *http.Client
	tokens  store.TokenStore
}

// HTTPOption configures an HTTP backend.
type HTTPOption func(*HTTP)

// WithHTTPClient overrides the underlying http.Client.
func WithHTTPClient(c *http.Client) HTTPOption {
	return func(h *HTTP) { h.client = c }
}

// NewDefault creates a backend for the API at baseURL with the session
// token persisted under the user's config directory, so a session
// survives process restarts.
func NewDefault(baseURL string, opts ...HTTPOption) (*HTTP, *tokenfile.Store) {
	tokens := tokenfile.New("")
	return NewHTTP(baseURL, tokens, opts...), tokens
}

// NewHTTP creates a backend for the API at baseURL, e.g.
// "http://localhost:8080".
func NewHTTP(baseURL string, tokens store.TokenStore, opts ...HTTPOption) *HTTP {
	h := &HTTP{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 30 * time.Second},
		tokens:  tokens,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// apiError is the flat error body the server writes.
type apiError struct {
	Error string `json:"error"`
}

// do sends one request and decodes the response into out when out is
// non-nil. A 401 clears the persisted token and maps to
// ErrUnauthorized; a 404 maps to storage.ErrNotFound.
func (h *HTTP) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, h.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if h.tokens != nil {
		if token, err := h.tokens.Load(); err == nil && token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		if h.tokens != nil {
			_ = h.tokens.Clear()
		}
		return ErrUnauthorized
	case resp.StatusCode == http.StatusNotFound:
		return storage.ErrNotFound
	case resp.StatusCode >= 400:
		var apiErr apiError
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && apiErr.Error != "" {
			return fmt.Errorf("%s %s: %s", method, path, apiErr.Error)
		}
		return fmt.Errorf("%s %s: unexpected status %d", method, path, resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// Login authenticates and persists nothing itself; the auth store owns
// token persistence.
func (h *HTTP) Login(ctx context.Context, email, password string) (*store.Session, error) {
	var session store.Session
	body := map[string]string{"email": email, "password": password}
	if err := h.do(ctx, http.MethodPost, "/api/auth/login", body, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (h *HTTP) Register(ctx context.Context, reg entity.Registration) (*store.Session, error) {
	var session store.Session
	if err := h.do(ctx, http.MethodPost, "/api/auth/register", reg, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (h *HTTP) FetchProjects(ctx context.Context) ([]entity.Project, error) {
	var projects []entity.Project
	if err := h.do(ctx, http.MethodGet, "/api/projects", nil, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

func (h *HTTP) CreateProject(ctx context.Context, p entity.NewProject) (*entity.Project, error) {
	var created entity.Project
	if err := h.do(ctx, http.MethodPost, "/api/projects", p, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (h *HTTP) UpdateProject(ctx context.Context, id string, patch entity.ProjectPatch) (*entity.Project, error) {
	var updated entity.Project
	if err := h.do(ctx, http.MethodPut, "/api/projects/"+id, patch, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (h *HTTP) DeleteProject(ctx context.Context, id string) error {
	return h.do(ctx, http.MethodDelete, "/api/projects/"+id, nil, nil)
}

func (h *HTTP) FetchTasks(ctx context.Context, projectID string) ([]entity.Task, error) {
	var tasks []entity.Task
	if err := h.do(ctx, http.MethodGet, "/api/projects/"+projectID+"/tasks", nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (h *HTTP) CreateTask(ctx context.Context, t entity.NewTask) (*entity.Task, error) {
	var created entity.Task
	if err := h.do(ctx, http.MethodPost, "/api/projects/"+t.ProjectID+"/tasks", t, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (h *HTTP) UpdateTask(ctx context.Context, id string, patch entity.TaskPatch) (*entity.Task, error) {
	var updated entity.Task
	if err := h.do(ctx, http.MethodPut, "/api/tasks/"+id, patch, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (h *HTTP) DeleteTask(ctx context.Context, id string) error {
	return h.do(ctx, http.MethodDelete, "/api/tasks/"+id, nil, nil)
}
