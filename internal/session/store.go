// Package session holds the authenticated identity for the running client:
// the bearer token, the cached user profile, and small bits of per-user
// state such as autocomplete history. The state is persisted as a JSON file
// in the user data directory so a login survives restarts.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// SessionFileName is the name of the persisted session file inside the
// data directory.
const SessionFileName = "session.json"

// ErrNotAuthenticated is returned by accessors that require a session when
// no login has happened yet (or after Logout).
var ErrNotAuthenticated = errors.New("not authenticated")

// Profile is the cached identity of the logged-in user, as returned by the
// login endpoint.
type Profile struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	FullName string `json:"full_name,omitempty"`
	Role     string `json:"role"`
	Avatar   string `json:"avatar,omitempty"`
}

// state is the on-disk shape of a session.
type state struct {
	Token            string    `json:"token"`
	Profile          Profile   `json:"profile"`
	SectorHistory    []string  `json:"sector_history,omitempty"`
	PatrimonyHistory []string  `json:"patrimony_history,omitempty"`
	LoggedInAt       time.Time `json:"logged_in_at"`
}

// Store is the single owner of session state. All mutation goes through
// Login, Logout, UpdateProfile and the Remember* helpers; every successful
// mutation is persisted before returning.
type Store struct {
	path string

	mu    sync.RWMutex
	state *state // nil when logged out
}

// NewStore creates a Store backed by dataDir/session.json, loading any
// previously persisted session. A missing file means logged out; a corrupt
// file is discarded rather than wedging the client.
func NewStore(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	s := &Store{path: filepath.Join(dataDir, SessionFileName)}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}

	var st state
	if err := json.Unmarshal(data, &st); err != nil || st.Token == "" {
		os.Remove(s.path)
		return s, nil
	}

	s.state = &st
	return s, nil
}

// Login replaces the session with a fresh token and profile and persists it.
func (s *Store) Login(token string, profile Profile) error {
	if token == "" {
		return errors.New("token cannot be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = &state{
		Token:      token,
		Profile:    profile,
		LoggedInAt: time.Now(),
	}
	return s.persistLocked()
}

// Logout clears the session and removes the persisted file. Calling it on
// an already logged-out store is a no-op.
func (s *Store) Logout() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = nil
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove session file: %w", err)
	}
	return nil
}

// IsAuthenticated reports whether a session is present.
func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state != nil
}

// Token returns the bearer token, or "" when logged out. Satisfies the API
// client's TokenSource.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.state == nil {
		return ""
	}
	return s.state.Token
}

// Profile returns a copy of the cached profile.
func (s *Store) Profile() (Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.state == nil {
		return Profile{}, ErrNotAuthenticated
	}
	return s.state.Profile, nil
}

// UpdateProfile replaces the cached profile after a successful profile save,
// keeping token and history intact.
func (s *Store) UpdateProfile(profile Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == nil {
		return ErrNotAuthenticated
	}
	s.state.Profile = profile
	return s.persistLocked()
}

// RememberSector records a sector value for autocomplete. Most recent first,
// duplicates removed, capped at historyLimit.
func (s *Store) RememberSector(sector string) error {
	return s.remember(sector, func(st *state) *[]string { return &st.SectorHistory })
}

// RememberPatrimony records a patrimony number for autocomplete.
func (s *Store) RememberPatrimony(patrimony string) error {
	return s.remember(patrimony, func(st *state) *[]string { return &st.PatrimonyHistory })
}

// SectorHistory returns the remembered sector values, most recent first.
func (s *Store) SectorHistory() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.state == nil {
		return nil
	}
	out := make([]string, len(s.state.SectorHistory))
	copy(out, s.state.SectorHistory)
	return out
}

// PatrimonyHistory returns the remembered patrimony numbers, most recent first.
func (s *Store) PatrimonyHistory() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.state == nil {
		return nil
	}
	out := make([]string, len(s.state.PatrimonyHistory))
	copy(out, s.state.PatrimonyHistory)
	return out
}

const historyLimit = 20

func (s *Store) remember(value string, field func(*state) *[]string) error {
	if value == "" {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == nil {
		return ErrNotAuthenticated
	}

	list := field(s.state)
	updated := []string{value}
	for _, v := range *list {
		if v != value {
			updated = append(updated, v)
		}
	}
	if len(updated) > historyLimit {
		updated = updated[:historyLimit]
	}
	*list = updated
	return s.persistLocked()
}

// persistLocked writes the current state atomically. Callers must hold mu.
func (s *Store) persistLocked() error {
	data, err := json.MarshalIndent(s.state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	return atomicWriteFile(s.path, data, 0600)
}

// atomicWriteFile writes data to a file atomically by writing to a temporary
// file first, then renaming. The target file is never left in a
// partially-written state.
func atomicWriteFile(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)

	tmpFile, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to write temp file: %w", err)
	}

	if err := tmpFile.Sync(); err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to sync temp file: %w", err)
	}

	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Chmod(tmpPath, perm); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	success = true
	return nil
}
