// Package api exposes the taskboard HTTP endpoints: authentication,
// project CRUD, and task CRUD scoped to a project. All non-auth
// endpoints require a bearer token.
package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/c360studio/taskboard/auth"
	"github.com/c360studio/taskboard/events"
	"github.com/c360studio/taskboard/storage"
)

// maxRequestBodySize limits POST/PUT body sizes to prevent DoS.
const maxRequestBodySize = 1 << 20 // 1 MB

// Server implements the taskboard HTTP API over a storage.Store.
type Server struct {
	store   storage.Store
	issuer  *auth.Issuer
	events  *events.Publisher
	logger  *slog.Logger
	metrics *metrics
}

// NewServer constructs a Server. events may be nil when NATS is not
// configured.
func NewServer(store storage.Store, issuer *auth.Issuer, pub *events.Publisher, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		store:   store,
		issuer:  issuer,
		events:  pub,
		logger:  logger,
		metrics: newMetrics(),
	}
}

// RegisterHTTPHandlers registers all API handlers under the given prefix.
// The prefix should be the path segment without a trailing slash
// (e.g. "api"). Handlers are registered as:
//
//	POST   <prefix>/auth/login
//	POST   <prefix>/auth/register
//	GET    <prefix>/projects
//	POST   <prefix>/projects
//	PUT    <prefix>/projects/{id}
//	DELETE <prefix>/projects/{id}
//	GET    <prefix>/projects/{id}/tasks
//	POST   <prefix>/projects/{id}/tasks
//	PUT    <prefix>/tasks/{id}
//	DELETE <prefix>/tasks/{id}
func (s *Server) RegisterHTTPHandlers(prefix string, mux *http.ServeMux) {
	// Normalise: ensure leading slash and trailing slash.
	if !strings.HasPrefix(prefix, "/") {
		prefix = "/" + prefix
	}
	if !strings.HasSuffix(prefix, "/") {
		prefix = prefix + "/"
	}

	mux.HandleFunc(prefix+"auth/login", s.handleLogin)
	mux.HandleFunc(prefix+"auth/register", s.handleRegister)
	mux.HandleFunc(prefix+"projects", s.requireAuth(s.handleProjects))
	mux.HandleFunc(prefix+"projects/", s.requireAuth(s.handleProjectSubtree))
	mux.HandleFunc(prefix+"tasks/", s.requireAuth(s.handleTaskByID))
}

// Handler returns the full HTTP handler: the API under /api, a health
// probe, and Prometheus metrics, all wrapped with request
// instrumentation.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	s.RegisterHTTPHandlers("api", mux)
	mux.HandleFunc("/healthz", s.handleHealthz)
	mux.Handle("/metrics", s.metrics.handler())
	return s.instrument(mux)
}

// handleHealthz reports liveness.
func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// writeJSON marshals v as JSON and writes it to w with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// Response is already partially written; nothing to recover.
		_ = err
	}
}

// errorJSON writes a flat error message body.
func errorJSON(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// readJSON decodes a capped request body into dst.
func readJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	return json.NewDecoder(r.Body).Decode(dst)
}
