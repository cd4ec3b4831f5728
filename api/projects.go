package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/c360studio/taskboard/entity"
	"github.com/c360studio/taskboard/events"
	"github.com/c360studio/taskboard/storage"
	"github.com/c360studio/taskboard/validate"
)

// handleProjects serves GET (list) and POST (create) on /api/projects.
func (s *Server) handleProjects(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.listProjects(w, r)
	case http.MethodPost:
		s.createProject(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) listProjects(w http.ResponseWriter, r *http.Request) {
	user := requestUser(r)
	projects, err := s.store.ListProjects(r.Context(), user.ID)
	if err != nil {
		s.logger.Error("Failed to list projects", "user_id", user.ID, "error", err)
		errorJSON(w, http.StatusInternalServerError, "failed to fetch projects")
		return
	}
	writeJSON(w, http.StatusOK, projects)
}

func (s *Server) createProject(w http.ResponseWriter, r *http.Request) {
	var req entity.NewProject
	if err := readJSON(w, r, &req); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.NewProject(req); err != nil {
		errorJSON(w, http.StatusBadRequest, err.Error())
		return
	}

	user := requestUser(r)
	project := entity.Project{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		UserID:      user.ID,
	}
	if err := s.store.CreateProject(r.Context(), &project); err != nil {
		s.logger.Error("Failed to create project", "user_id", user.ID, "error", err)
		errorJSON(w, http.StatusInternalServerError, "failed to create project")
		return
	}

	s.events.Publish(events.EntityProject, events.ActionCreated, project.ID, project)
	s.logger.Info("Project created", "project_id", project.ID, "user_id", user.ID)
	writeJSON(w, http.StatusCreated, project)
}

// handleProjectSubtree routes /api/projects/{id} and
// /api/projects/{id}/tasks.
func (s *Server) handleProjectSubtree(w http.ResponseWriter, r *http.Request) {
	id, rest := splitProjectPath(r.URL.Path)
	if id == "" {
		errorJSON(w, http.StatusBadRequest, "project id required")
		return
	}

	switch rest {
	case "":
		s.handleProjectByID(w, r, id)
	case "tasks":
		s.handleProjectTasks(w, r, id)
	default:
		errorJSON(w, http.StatusNotFound, "unknown endpoint")
	}
}

// splitProjectPath extracts the project id and trailing endpoint from a
// path like /api/projects/{id}/tasks.
func splitProjectPath(path string) (id, rest string) {
	const marker = "/projects/"
	idx := strings.Index(path, marker)
	if idx < 0 {
		return "", ""
	}
	tail := strings.Trim(path[idx+len(marker):], "/")
	if tail == "" {
		return "", ""
	}
	parts := strings.SplitN(tail, "/", 2)
	if len(parts) == 1 {
		return parts[0], ""
	}
	return parts[0], parts[1]
}

// ownedProject loads a project and verifies it belongs to the request
// user. A project owned by someone else is reported as not found, so
// existence does not leak across accounts.
func (s *Server) ownedProject(r *http.Request, id string) (*entity.Project, error) {
	project, err := s.store.GetProject(r.Context(), id)
	if err != nil {
		return nil, err
	}
	if project.UserID != requestUser(r).ID {
		return nil, storage.ErrNotFound
	}
	return project, nil
}

func (s *Server) handleProjectByID(w http.ResponseWriter, r *http.Request, id string) {
	switch r.Method {
	case http.MethodGet:
		project, err := s.ownedProject(r, id)
		if errors.Is(err, storage.ErrNotFound) {
			errorJSON(w, http.StatusNotFound, "project not found")
			return
		}
		if err != nil {
			s.logger.Error("Failed to get project", "project_id", id, "error", err)
			errorJSON(w, http.StatusInternalServerError, "failed to fetch project")
			return
		}
		writeJSON(w, http.StatusOK, project)

	case http.MethodPut:
		var patch entity.ProjectPatch
		if err := readJSON(w, r, &patch); err != nil {
			errorJSON(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if err := validate.ProjectPatch(patch); err != nil {
			errorJSON(w, http.StatusBadRequest, err.Error())
			return
		}

		if _, err := s.ownedProject(r, id); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				errorJSON(w, http.StatusNotFound, "project not found")
				return
			}
			s.logger.Error("Failed to get project", "project_id", id, "error", err)
			errorJSON(w, http.StatusInternalServerError, "failed to update project")
			return
		}

		project, err := s.store.UpdateProject(r.Context(), id, patch)
		if errors.Is(err, storage.ErrNotFound) {
			errorJSON(w, http.StatusNotFound, "project not found")
			return
		}
		if err != nil {
			s.logger.Error("Failed to update project", "project_id", id, "error", err)
			errorJSON(w, http.StatusInternalServerError, "failed to update project")
			return
		}

		s.events.Publish(events.EntityProject, events.ActionUpdated, project.ID, project)
		writeJSON(w, http.StatusOK, project)

	case http.MethodDelete:
		project, err := s.store.GetProject(r.Context(), id)
		if errors.Is(err, storage.ErrNotFound) {
			// Idempotent: deleting an absent project succeeds.
			w.WriteHeader(http.StatusNoContent)
			return
		}
		if err != nil {
			s.logger.Error("Failed to get project", "project_id", id, "error", err)
			errorJSON(w, http.StatusInternalServerError, "failed to delete project")
			return
		}
		if project.UserID != requestUser(r).ID {
			errorJSON(w, http.StatusNotFound, "project not found")
			return
		}
		// The project's tasks are left in place.
		if err := s.store.DeleteProject(r.Context(), id); err != nil {
			s.logger.Error("Failed to delete project", "project_id", id, "error", err)
			errorJSON(w, http.StatusInternalServerError, "failed to delete project")
			return
		}
		s.events.Publish(events.EntityProject, events.ActionDeleted, id, nil)
		w.WriteHeader(http.StatusNoContent)

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// handleProjectTasks serves GET (list) and POST (create) on
// /api/projects/{id}/tasks. Both require the project to exist and
// belong to the request user.
func (s *Server) handleProjectTasks(w http.ResponseWriter, r *http.Request, projectID string) {
	if _, err := s.ownedProject(r, projectID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			errorJSON(w, http.StatusNotFound, "project not found")
			return
		}
		s.logger.Error("Failed to get project", "project_id", projectID, "error", err)
		errorJSON(w, http.StatusInternalServerError, "failed to fetch project")
		return
	}

	switch r.Method {
	case http.MethodGet:
		tasks, err := s.store.ListTasks(r.Context(), projectID)
		if err != nil {
			s.logger.Error("Failed to list tasks", "project_id", projectID, "error", err)
			errorJSON(w, http.StatusInternalServerError, "failed to fetch tasks")
			return
		}
		writeJSON(w, http.StatusOK, tasks)

	case http.MethodPost:
		var req entity.NewTask
		if err := readJSON(w, r, &req); err != nil {
			errorJSON(w, http.StatusBadRequest, "invalid request body")
			return
		}
		req.ProjectID = projectID
		if err := validate.NewTask(req); err != nil {
			errorJSON(w, http.StatusBadRequest, err.Error())
			return
		}

		task := entity.Task{
			Title:       req.Title,
			Description: req.Description,
			Status:      req.Status,
			ProjectID:   projectID,
		}
		if err := s.store.CreateTask(r.Context(), &task); err != nil {
			s.logger.Error("Failed to create task", "project_id", projectID, "error", err)
			errorJSON(w, http.StatusInternalServerError, "failed to create task")
			return
		}

		s.events.Publish(events.EntityTask, events.ActionCreated, task.ID, task)
		s.logger.Info("Task created", "task_id", task.ID, "project_id", projectID)
		writeJSON(w, http.StatusCreated, task)

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}
