package tokenfile

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingToken(t *testing.T) {
	s := New(t.TempDir())
	token, err := s.Load()
	require.NoError(t, err)
	assert.Empty(t, token)
}

func TestSaveLoadClear(t *testing.T) {
	// A nested, not-yet-existing directory is created on Save.
	s := New(filepath.Join(t.TempDir(), "nested"))

	require.NoError(t, s.Save("tok-123"))

	token, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, "tok-123", token)

	require.NoError(t, s.Clear())

	token, err = s.Load()
	require.NoError(t, err)
	assert.Empty(t, token)

	// Clearing again is a no-op.
	assert.NoError(t, s.Clear())
}

func TestSaveOverwrites(t *testing.T) {
	s := New(t.TempDir())
	require.NoError(t, s.Save("first"))
	require.NoError(t, s.Save("second"))

	token, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, "second", token)
}
