package client

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// sessionFileName is the fixed key under which the bearer token is persisted.
const sessionFileName = "session_token"

// SessionStore is the process-wide holder of the issued session token, backed
// by a file so the session survives restarts. It is written on any successful
// authentication, read by protected-view guards, and cleared on logout. No
// other component touches the token.
type SessionStore struct {
	mu   sync.Mutex
	path string
}

// NewSessionStore stores the token under dir, creating it if needed. An empty
// dir falls back to the user config directory.
func NewSessionStore(dir string) (*SessionStore, error) {
	if dir == "" {
		configDir, err := os.UserConfigDir()
		if err != nil {
			return nil, err
		}
		dir = filepath.Join(configDir, "riskgate")
	}

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, err
	}

	return &SessionStore{path: filepath.Join(dir, sessionFileName)}, nil
}

// Set unconditionally overwrites the stored token.
func (s *SessionStore) Set(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return os.WriteFile(s.path, []byte(token), 0o600)
}

// Get returns the stored token, or ok=false when no session exists.
func (s *SessionStore) Get() (token string, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		return "", false
	}

	token = strings.TrimSpace(string(data))
	return token, token != ""
}

// Clear removes the stored token. Clearing an absent token is not an error.
func (s *SessionStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
