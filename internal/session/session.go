// Package session persists the bearer token (and last-known profile
// snapshot) across runs as a JSON file under the config dir.
package session

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"dormshare-cli/internal/model"
)

const fileName = "session.json"

type Session struct {
	Token string      `json:"token,omitempty"`
	User  *model.User `json:"user,omitempty"`
}

type Store struct {
	Dir string
}

func (s Store) Ensure() error {
	return os.MkdirAll(s.Dir, 0o755)
}

func (s Store) path() string {
	return filepath.Join(s.Dir, fileName)
}

// Load returns the stored session, or a zero session when none exists yet.
func (s Store) Load() (Session, error) {
	b, err := os.ReadFile(s.path())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Session{}, nil
		}
		return Session{}, err
	}
	var sess Session
	if err := json.Unmarshal(b, &sess); err != nil {
		return Session{}, err
	}
	return sess, nil
}

func (s Store) Save(sess Session) error {
	if err := s.Ensure(); err != nil {
		return err
	}
	b, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return err
	}
	// The token is a credential; keep the file owner-only.
	return os.WriteFile(s.path(), append(b, '\n'), 0o600)
}

// Clear removes the stored session. Clearing an absent session is fine.
func (s Store) Clear() error {
	err := os.Remove(s.path())
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
