package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/taskboard/auth"
	"github.com/c360studio/taskboard/entity"
)

func testSession(t *testing.T) *Session {
	t.Helper()

	user := entity.User{
		ID:      "user_1",
		Email:   "ann@example.com",
		Name:    "Ann",
		Country: "Canada",
	}
	token, err := auth.NewIssuer("test-secret", time.Hour).Issue(user)
	require.NoError(t, err)
	return &Session{Token: token, User: user}
}

func TestAuthLogin(t *testing.T) {
	session := testSession(t)
	backend := &fakeBackend{session: session}
	tokens := &fakeTokens{}
	store := NewAuth(backend, tokens)

	err := store.Login(context.Background(), "ann@example.com", "longenough")
	require.NoError(t, err)

	state := store.State()
	assert.True(t, state.Authenticated)
	assert.Equal(t, session.Token, state.Token)
	require.NotNil(t, state.User)
	assert.Equal(t, "Ann", state.User.Name)
	assert.Empty(t, state.Err)
	assert.False(t, state.Loading)

	assert.Equal(t, session.Token, tokens.token, "token should be persisted")
}

func TestAuthLoginFailure(t *testing.T) {
	backend := &fakeBackend{err: errBackend}
	tokens := &fakeTokens{}
	store := NewAuth(backend, tokens)

	err := store.Login(context.Background(), "ann@example.com", "wrong")
	require.ErrorIs(t, err, errBackend)

	state := store.State()
	assert.False(t, state.Authenticated)
	assert.Nil(t, state.User)
	assert.Equal(t, ErrMsgInvalidCredentials, state.Err)
	assert.False(t, state.Loading)
	assert.Empty(t, tokens.token)
}

func TestAuthRegister(t *testing.T) {
	session := testSession(t)
	backend := &fakeBackend{session: session}
	tokens := &fakeTokens{}
	store := NewAuth(backend, tokens)

	err := store.Register(context.Background(), entity.Registration{
		Name:     "Ann",
		Email:    "ann@example.com",
		Country:  "Canada",
		Password: "longenough",
	})
	require.NoError(t, err)

	assert.True(t, store.IsAuthenticated())
	assert.Equal(t, session.Token, tokens.token)
}

func TestAuthRegisterFailure(t *testing.T) {
	backend := &fakeBackend{err: errBackend}
	store := NewAuth(backend, &fakeTokens{})

	err := store.Register(context.Background(), entity.Registration{})
	require.Error(t, err)

	state := store.State()
	assert.Equal(t, ErrMsgRegisterFailed, state.Err)
	assert.False(t, state.Authenticated)
}

func TestAuthInitializeRestoresSession(t *testing.T) {
	session := testSession(t)
	tokens := &fakeTokens{token: session.Token}
	store := NewAuth(&fakeBackend{}, tokens)

	store.Initialize()

	state := store.State()
	assert.True(t, state.Authenticated)
	require.NotNil(t, state.User)
	assert.Equal(t, "user_1", state.User.ID)
	assert.Equal(t, "ann@example.com", state.User.Email)
}

func TestAuthInitializeNoToken(t *testing.T) {
	store := NewAuth(&fakeBackend{}, &fakeTokens{})

	store.Initialize()

	assert.False(t, store.IsAuthenticated())
}

func TestAuthInitializeMalformedToken(t *testing.T) {
	tokens := &fakeTokens{token: "not-a-token"}
	store := NewAuth(&fakeBackend{}, tokens)

	store.Initialize()

	state := store.State()
	assert.False(t, state.Authenticated)
	assert.Empty(t, state.Err, "malformed persisted tokens are cleared silently")
	assert.Empty(t, tokens.token, "malformed token should be removed")
}

func TestAuthLogout(t *testing.T) {
	session := testSession(t)
	tokens := &fakeTokens{}
	store := NewAuth(&fakeBackend{session: session}, tokens)

	require.NoError(t, store.Login(context.Background(), "ann@example.com", "longenough"))
	require.True(t, store.IsAuthenticated())

	store.Logout()

	state := store.State()
	assert.False(t, state.Authenticated)
	assert.Nil(t, state.User)
	assert.Empty(t, state.Token)
	assert.Empty(t, tokens.token)

	// A fresh store sees no persisted session after logout.
	restored := NewAuth(&fakeBackend{}, tokens)
	restored.Initialize()
	assert.False(t, restored.IsAuthenticated())
}

func TestAuthClearError(t *testing.T) {
	store := NewAuth(&fakeBackend{err: errBackend}, &fakeTokens{})

	_ = store.Login(context.Background(), "ann@example.com", "wrong")
	require.Equal(t, ErrMsgInvalidCredentials, store.State().Err)

	store.ClearError()
	assert.Empty(t, store.State().Err)
}

func TestAuthStateCopies(t *testing.T) {
	session := testSession(t)
	store := NewAuth(&fakeBackend{session: session}, &fakeTokens{})
	require.NoError(t, store.Login(context.Background(), "ann@example.com", "longenough"))

	state := store.State()
	state.User.Name = "mutated"

	assert.Equal(t, "Ann", store.State().User.Name)
}
