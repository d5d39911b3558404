// Package session persists the controller-assigned session id between runs.
// The store holds a single value; persisting overwrites whatever was there.
package session

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrNoSession is returned by Load when no session id has been persisted.
var ErrNoSession = errors.New("no stored session")

// Store reads and writes the session id file. The id itself is opaque to the
// agent and is stored as the raw string.
type Store struct {
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load returns the persisted session id, or ErrNoSession if none exists.
func (s *Store) Load() (string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", ErrNoSession
		}
		return "", fmt.Errorf("reading session file: %w", err)
	}

	id := strings.TrimSpace(string(data))
	if id == "" {
		return "", ErrNoSession
	}
	return id, nil
}

// Persist overwrites the stored session id. Failure to persist propagates to
// the caller; an agent that can't record its identity shouldn't carry on
// silently.
func (s *Store) Persist(id string) error {
	if err := os.WriteFile(s.path, []byte(id), 0600); err != nil {
		return fmt.Errorf("writing session file: %w", err)
	}
	return nil
}
