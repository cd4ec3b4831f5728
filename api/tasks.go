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

// ownedTask loads a task and verifies its project belongs to the
// request user. Tasks under someone else's project, and tasks orphaned
// by a project deletion, are reported as not found.
func (s *Server) ownedTask(r *http.Request, id string) (*entity.Task, error) {
	task, err := s.store.GetTask(r.Context(), id)
	if err != nil {
		return nil, err
	}
	if _, err := s.ownedProject(r, task.ProjectID); err != nil {
		return nil, err
	}
	return task, nil
}

// handleTaskByID serves GET, PUT and DELETE on /api/tasks/{id}.
func (s *Server) handleTaskByID(w http.ResponseWriter, r *http.Request) {
	id := taskIDFromPath(r.URL.Path)
	if id == "" {
		errorJSON(w, http.StatusBadRequest, "task id required")
		return
	}

	switch r.Method {
	case http.MethodGet:
		task, err := s.ownedTask(r, id)
		if errors.Is(err, storage.ErrNotFound) {
			errorJSON(w, http.StatusNotFound, "task not found")
			return
		}
		if err != nil {
			s.logger.Error("Failed to get task", "task_id", id, "error", err)
			errorJSON(w, http.StatusInternalServerError, "failed to fetch task")
			return
		}
		writeJSON(w, http.StatusOK, task)

	case http.MethodPut:
		var patch entity.TaskPatch
		if err := readJSON(w, r, &patch); err != nil {
			errorJSON(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if err := validate.TaskPatch(patch); err != nil {
			errorJSON(w, http.StatusBadRequest, err.Error())
			return
		}

		if _, err := s.ownedTask(r, id); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				errorJSON(w, http.StatusNotFound, "task not found")
				return
			}
			s.logger.Error("Failed to get task", "task_id", id, "error", err)
			errorJSON(w, http.StatusInternalServerError, "failed to update task")
			return
		}

		task, err := s.store.UpdateTask(r.Context(), id, patch)
		if errors.Is(err, storage.ErrNotFound) {
			errorJSON(w, http.StatusNotFound, "task not found")
			return
		}
		if err != nil {
			s.logger.Error("Failed to update task", "task_id", id, "error", err)
			errorJSON(w, http.StatusInternalServerError, "failed to update task")
			return
		}

		s.events.Publish(events.EntityTask, events.ActionUpdated, task.ID, task)
		writeJSON(w, http.StatusOK, task)

	case http.MethodDelete:
		task, err := s.store.GetTask(r.Context(), id)
		if errors.Is(err, storage.ErrNotFound) {
			// Idempotent: deleting an absent task succeeds.
			w.WriteHeader(http.StatusNoContent)
			return
		}
		if err != nil {
			s.logger.Error("Failed to get task", "task_id", id, "error", err)
			errorJSON(w, http.StatusInternalServerError, "failed to delete task")
			return
		}
		if _, err := s.ownedProject(r, task.ProjectID); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				errorJSON(w, http.StatusNotFound, "task not found")
				return
			}
			s.logger.Error("Failed to get project", "project_id", task.ProjectID, "error", err)
			errorJSON(w, http.StatusInternalServerError, "failed to delete task")
			return
		}
		if err := s.store.DeleteTask(r.Context(), id); err != nil {
			s.logger.Error("Failed to delete task", "task_id", id, "error", err)
			errorJSON(w, http.StatusInternalServerError, "failed to delete task")
			return
		}
		s.events.Publish(events.EntityTask, events.ActionDeleted, id, nil)
		w.WriteHeader(http.StatusNoContent)

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// taskIDFromPath extracts the task id from a path like /api/tasks/{id}.
func taskIDFromPath(path string) string {
	const marker = "/tasks/"
	idx := strings.Index(path, marker)
	if idx < 0 {
		return ""
	}
	return strings.Trim(path[idx+len(marker):], "/")
}
