package api

import (
	"errors"
	"net/http"

	"github.com/c360studio/taskboard/auth"
	"github.com/c360studio/taskboard/entity"
	"github.com/c360studio/taskboard/events"
	"github.com/c360studio/taskboard/storage"
	"github.com/c360studio/taskboard/validate"
)

// LoginRequest is the request body for POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SessionResponse is the response body for successful login and
// registration.
type SessionResponse struct {
	Token string      `json:"token"`
	User  entity.User `json:"user"`
}

// handleLogin verifies credentials and issues a bearer token.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req LoginRequest
	if err := readJSON(w, r, &req); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := s.store.GetUserByEmail(r.Context(), req.Email)
	if err != nil || !auth.CheckPassword(user.PasswordHash, req.Password) {
		// Same message for unknown email and wrong password; the
		// distinction must not leak to the caller.
		errorJSON(w, http.StatusUnauthorized, "invalid email or password")
		return
	}

	token, err := s.issuer.Issue(*user)
	if err != nil {
		s.logger.Error("Failed to issue token", "user_id", user.ID, "error", err)
		errorJSON(w, http.StatusInternalServerError, "login failed")
		return
	}

	s.logger.Info("User logged in", "user_id", user.ID)
	writeJSON(w, http.StatusOK, SessionResponse{Token: token, User: *user})
}

// handleRegister creates an account and issues a bearer token.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req entity.Registration
	if err := readJSON(w, r, &req); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := validate.Registration(req); err != nil {
		errorJSON(w, http.StatusBadRequest, err.Error())
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		s.logger.Error("Failed to hash password", "error", err)
		errorJSON(w, http.StatusInternalServerError, "registration failed")
		return
	}

	user := entity.User{
		Email:        req.Email,
		Name:         req.Name,
		Country:      req.Country,
		PasswordHash: hash,
	}
	if err := s.store.CreateUser(r.Context(), &user); err != nil {
		if errors.Is(err, storage.ErrEmailTaken) {
			errorJSON(w, http.StatusConflict, "email already registered")
			return
		}
		s.logger.Error("Failed to create user", "email", req.Email, "error", err)
		errorJSON(w, http.StatusInternalServerError, "registration failed")
		return
	}

	token, err := s.issuer.Issue(user)
	if err != nil {
		s.logger.Error("Failed to issue token", "user_id", user.ID, "error", err)
		errorJSON(w, http.StatusInternalServerError, "registration failed")
		return
	}

	s.events.Publish(events.EntityUser, events.ActionCreated, user.ID, user)
	s.logger.Info("User registered", "user_id", user.ID)
	writeJSON(w, http.StatusCreated, SessionResponse{Token: token, User: user})
}
