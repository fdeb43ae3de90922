package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Session holds the bearer token and cached user profile for the
// active login. Both are persisted together to a single file so a
// restarted client resumes its session, and cleared together on logout
// or server-signaled invalidation.
type Session struct {
	mu    sync.RWMutex
	token string
	user  *User

	// path of the durable session file; empty disables persistence.
	path string

	// onUnauthorized runs after the session self-clears on a 401.
	onUnauthorized func()
}

type sessionFile struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// NewSession returns an in-memory session with no persistence.
func NewSession() *Session {
	return &Session{}
}

// LoadSession restores a session from the given file. A missing file
// yields an empty, unauthenticated session rather than an error.
func LoadSession(path string) (*Session, error) {
	s := &Session{path: path}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}

	var stored sessionFile
	if err := json.Unmarshal(data, &stored); err != nil {
		// A corrupt session file is discarded, not fatal.
		return s, nil
	}
	s.token = stored.Token
	s.user = stored.User
	return s, nil
}

// OnUnauthorized registers a hook invoked after a 401 clears the
// session. Controllers use it to route back to the login screen.
func (s *Session) OnUnauthorized(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onUnauthorized = fn
}

// SetToken installs a token, persisting token and user together. An
// empty token is equivalent to Clear.
func (s *Session) SetToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return s.persistLocked()
}

func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Session) SetUser(user *User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = user
	return s.persistLocked()
}

func (s *Session) User() *User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// Role returns the active user's role, or "" when unauthenticated.
func (s *Session) Role() Role {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return ""
	}
	return s.user.Role
}

func (s *Session) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != ""
}

// Clear drops the token and user from memory and durable storage.
func (s *Session) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clearLocked()
}

func (s *Session) clearLocked() error {
	s.token = ""
	s.user = nil
	if s.path == "" {
		return nil
	}
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove session file: %w", err)
	}
	return nil
}

// invalidate handles a server-signaled 401: clear, then notify.
func (s *Session) invalidate() {
	s.mu.Lock()
	_ = s.clearLocked()
	hook := s.onUnauthorized
	s.mu.Unlock()

	if hook != nil {
		hook()
	}
}

func (s *Session) persistLocked() error {
	if s.path == "" {
		return nil
	}
	if s.token == "" {
		return s.clearLocked()
	}

	data, err := json.Marshal(sessionFile{Token: s.token, User: s.user})
	if err != nil {
		return err
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("failed to create session directory: %w", err)
		}
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	return nil
}
