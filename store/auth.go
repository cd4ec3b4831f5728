package store

import (
	"context"
	"sync"

	"github.com/c360studio/taskboard/auth"
	"github.com/c360studio/taskboard/entity"
)

// User-visible error banners. Backend failures surface as these flat
// strings; the specific error is returned to the caller alongside.
const (
	ErrMsgInvalidCredentials = "Invalid email or password"
	ErrMsgRegisterFailed     = "Failed to register, please try again"
)

// AuthState is a snapshot of the authentication store.
type AuthState struct {
	User          *entity.User
	Token         string
	Authenticated bool
	Err           string
	Loading       bool
}

// Auth holds the current session. It owns its state exclusively;
// consumers read snapshots via State.
type Auth struct {
	mu      sync.RWMutex
	backend Backend
	tokens  TokenStore
	state   AuthState
}

// NewAuth creates an authentication store.
func NewAuth(backend Backend, tokens TokenStore) *Auth {
	return &Auth{backend: backend, tokens: tokens}
}

// State returns a copy of the current state.
func (a *Auth) State() AuthState {
	a.mu.RLock()
	defer a.mu.RUnlock()

	state := a.state
	if state.User != nil {
		user := *state.User
		state.User = &user
	}
	return state
}

// IsAuthenticated reports whether a session is active.
func (a *Auth) IsAuthenticated() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.state.Authenticated
}

// Initialize restores a session from the persisted token, if any. The
// user is decoded from the token payload locally; no backend call is
// made. Malformed tokens are cleared silently and leave the store
// logged out, with no error surfaced.
func (a *Auth) Initialize() {
	token, err := a.tokens.Load()
	if err != nil || token == "" {
		return
	}

	user, err := auth.DecodeUser(token)
	if err != nil {
		_ = a.tokens.Clear()
		a.mu.Lock()
		a.state = AuthState{}
		a.mu.Unlock()
		return
	}

	a.mu.Lock()
	a.state = AuthState{User: &user, Token: token, Authenticated: true}
	a.mu.Unlock()
}

// Login authenticates with the backend, persists the session token, and
// marks the store authenticated. On failure the error banner is set and
// the authentication fields are left unchanged; the specific error is
// returned for callers that want it.
func (a *Auth) Login(ctx context.Context, email, password string) error {
	a.begin()

	session, err := a.backend.Login(ctx, email, password)
	if err != nil {
		a.fail(ErrMsgInvalidCredentials)
		return err
	}
	if err := a.tokens.Save(session.Token); err != nil {
		a.fail(ErrMsgInvalidCredentials)
		return err
	}

	user := session.User
	a.mu.Lock()
	a.state = AuthState{User: &user, Token: session.Token, Authenticated: true}
	a.mu.Unlock()
	return nil
}

// Register creates an account and signs in, with the same persistence
// and error behavior as Login.
func (a *Auth) Register(ctx context.Context, reg entity.Registration) error {
	a.begin()

	session, err := a.backend.Register(ctx, reg)
	if err != nil {
		a.fail(ErrMsgRegisterFailed)
		return err
	}
	if err := a.tokens.Save(session.Token); err != nil {
		a.fail(ErrMsgRegisterFailed)
		return err
	}

	user := session.User
	a.mu.Lock()
	a.state = AuthState{User: &user, Token: session.Token, Authenticated: true}
	a.mu.Unlock()
	return nil
}

// Logout clears the persisted token and resets the store. It is
// synchronous and has no error path; a failed token removal still
// leaves the store logged out.
func (a *Auth) Logout() {
	_ = a.tokens.Clear()

	a.mu.Lock()
	a.state = AuthState{}
	a.mu.Unlock()
}

// ClearError dismisses the error banner.
func (a *Auth) ClearError() {
	a.mu.Lock()
	a.state.Err = ""
	a.mu.Unlock()
}

func (a *Auth) begin() {
	a.mu.Lock()
	a.state.Loading = true
	a.state.Err = ""
	a.mu.Unlock()
}

func (a *Auth) fail(message string) {
	a.mu.Lock()
	a.state.Err = message
	a.state.Loading = false
	a.mu.Unlock()
}
