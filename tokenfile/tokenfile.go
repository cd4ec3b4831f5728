// Package tokenfile persists the session token as a single file in the
// user's config directory, read at startup and written or cleared on
// login, register and logout.
package tokenfile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	// AppName is the application config directory name.
	AppName = "taskboard"

	// FileName is the stored token filename.
	FileName = "token"
)

// Store reads and writes the persisted token file.
type Store struct {
	path string
}

// New creates a Store rooted at dir. If dir is empty, the default
// config directory is used: XDG_CONFIG_HOME/taskboard or
// $HOME/.config/taskboard.
func New(dir string) *Store {
	if dir == "" {
		dir = DefaultDir()
	}
	return &Store{path: filepath.Join(dir, FileName)}
}

// DefaultDir returns the default configuration directory.
func DefaultDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// Path returns the token file path.
func (s *Store) Path() string { return s.path }

// Load returns the persisted token, or "" when none is stored.
func (s *Store) Load() (string, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read token: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// Save writes the token, creating the config directory if needed.
// The file is private to the user.
func (s *Store) Save(token string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(s.path, []byte(token), 0600); err != nil {
		return fmt.Errorf("write token: %w", err)
	}
	return nil
}

// Clear deletes the persisted token. Clearing an absent token is a no-op.
func (s *Store) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove token: %w", err)
	}
	return nil
}
