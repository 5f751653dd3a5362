// Package session manages the bearer token, signed-in user, and persisted UI
// preferences. The session is an explicitly constructed object with an
// initialize/clear lifecycle; nothing here is package-global.
package session

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

// User is the signed-in user's identity as returned by the auth endpoints.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// state is the on-disk shape of the session file.
type state struct {
	Token   string    `json:"token,omitempty"`
	User    *User     `json:"user,omitempty"`
	Theme   string    `json:"theme,omitempty"`
	SavedAt time.Time `json:"saved_at"`
}

// Session holds the credentials attached to outgoing requests plus the
// persisted theme preference. Construct with New, then call Initialize to
// hydrate from disk.
type Session struct {
	path  string
	token string
	user  *User
	theme string
}

// New creates a session persisted at the given file path. An empty path uses
// the default location under the user's data directory.
func New(path string) (*Session, error) {
	if path == "" {
		var err error
		path, err = defaultPath()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve session path: %w", err)
		}
	}
	return &Session{path: path}, nil
}

// defaultPath returns XDG_DATA_HOME/paydash/session.json, falling back to
// ~/.local/share.
func defaultPath() (string, error) {
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dataDir = filepath.Join(home, ".local", "share")
	}

	dir := filepath.Join(dataDir, "paydash")
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", err
	}

	return filepath.Join(dir, "session.json"), nil
}

// Initialize loads persisted state from disk. A missing file is not an
// error; the session simply starts signed out.
func (s *Session) Initialize() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read session file: %w", err)
	}

	var st state
	if err := json.Unmarshal(data, &st); err != nil {
		// A corrupt session file means signing in again, not a hard failure.
		slog.Warn("Ignoring unreadable session file", "path", s.path, "error", err)
		return nil
	}

	s.token = st.Token
	s.user = st.User
	s.theme = st.Theme

	return nil
}

// Set stores the token and user and persists them.
func (s *Session) Set(token string, user User) error {
	s.token = token
	s.user = &user
	return s.save()
}

// Clear drops the token and user and persists the removal. Preferences
// survive a clear. Clearing an already-cleared session is a no-op, so a
// cascade of 401 responses cannot thrash the file.
func (s *Session) Clear() error {
	if s.token == "" && s.user == nil {
		return nil
	}
	s.token = ""
	s.user = nil
	return s.save()
}

// Token returns the bearer token, or "" when signed out.
func (s *Session) Token() string {
	return s.token
}

// User returns the signed-in user, or nil.
func (s *Session) User() *User {
	return s.user
}

// Authenticated reports whether a token is held.
func (s *Session) Authenticated() bool {
	return s.token != ""
}

// Theme returns the persisted theme preference, or "" for the default.
func (s *Session) Theme() string {
	return s.theme
}

// SetTheme persists the theme preference.
func (s *Session) SetTheme(name string) error {
	s.theme = name
	return s.save()
}

func (s *Session) save() error {
	st := state{
		Token:   s.token,
		User:    s.user,
		Theme:   s.theme,
		SavedAt: time.Now(),
	}

	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("failed to create session dir: %w", err)
	}

	return os.WriteFile(s.path, data, 0600) // Read/write for owner only
}
