// Package session persists the CLI's login state between invocations.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// ErrNoSession is returned when no login state is stored.
var ErrNoSession = errors.New("not logged in")

// State is the persisted login state: the bearer token plus the user
// snapshot returned at login, so commands can address the current user
// without a round trip.
type State struct {
	Token     string    `json:"token"`
	UserID    int64     `json:"user_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	UserType  string    `json:"user_type"`
	SavedAt   time.Time `json:"saved_at"`
	ServerURL string    `json:"server_url"`
}

// Store reads and writes the session file.
type Store struct {
	path string
}

// NewStore returns a store rooted at $XDG_DATA_HOME/agriconnect/session.json.
func NewStore() *Store {
	return &Store{path: defaultPath()}
}

// NewStoreAt returns a store using an explicit file path. Used by tests.
func NewStoreAt(path string) *Store {
	return &Store{path: path}
}

func defaultPath() string {
	dir := os.Getenv("XDG_DATA_HOME")
	if dir == "" {
		if home, err := os.UserHomeDir(); err == nil {
			dir = filepath.Join(home, ".local", "share")
		} else {
			dir = "."
		}
	}
	return filepath.Join(dir, "agriconnect", "session.json")
}

// Get returns the stored login state, or ErrNoSession when absent.
func (s *Store) Get() (State, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return State{}, ErrNoSession
		}
		return State{}, fmt.Errorf("reading session file: %w", err)
	}
	var st State
	if err := json.Unmarshal(data, &st); err != nil {
		return State{}, fmt.Errorf("parsing session file: %w", err)
	}
	if st.Token == "" {
		return State{}, ErrNoSession
	}
	return st, nil
}

// Set writes the login state, creating the directory on first use.
func (s *Store) Set(st State) error {
	if st.SavedAt.IsZero() {
		st.SavedAt = time.Now().UTC()
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("creating session dir: %w", err)
	}
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o600)
}

// Clear removes the session file. Clearing an absent session is not an error.
func (s *Store) Clear() error {
	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing session file: %w", err)
	}
	return nil
}
