// Package session persists the signed-in identity between runs of the
// terminal client, the way a browser keeps it in local storage.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sarthak-sharmaa/Expense-tracker/internal/core"
)

// ErrNoSession is returned when no identity has been saved yet.
var ErrNoSession = errors.New("no active session")

// Session is the stored identity. Sub and Email form the owner pair sent
// with every API call.
type Session struct {
	Sub   string `json:"sub"`
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

func (s Session) Owner() core.Owner {
	return core.Owner{ID: s.Sub, Email: s.Email}
}

func (s Session) Validate() error {
	if strings.TrimSpace(s.Sub) == "" || strings.TrimSpace(s.Email) == "" {
		return core.ErrMissingOwner
	}
	return nil
}

// FileStore reads and writes the session file.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// DefaultPath places the session file under the user's config directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(dir, "tracker", "session.json"), nil
}

func (fs *FileStore) Load() (Session, error) {
	data, err := os.ReadFile(fs.path)
	if os.IsNotExist(err) {
		return Session{}, ErrNoSession
	}
	if err != nil {
		return Session{}, fmt.Errorf("read session file: %w", err)
	}

	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return Session{}, fmt.Errorf("parse session file: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Session{}, ErrNoSession
	}
	return s, nil
}

func (fs *FileStore) Save(s Session) error {
	if err := s.Validate(); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(fs.path), 0o755); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := os.WriteFile(fs.path, data, 0o600); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}
	return nil
}

// Clear removes the session file. Clearing an absent session is not an error.
func (fs *FileStore) Clear() error {
	if err := os.Remove(fs.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove session file: %w", err)
	}
	return nil
}
