package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/zanta/lfp-client/internal/core/domain"
)

// FileStore persists the session as a single JSON document on disk. Writing
// one document via temp-file + rename commits token and user in one step.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// sessionFile is the on-disk document.
type sessionFile struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user,omitempty"`
}

// NewFileStore returns a file-backed store at path. An empty path resolves to
// lfp/session.json under the user's config directory.
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("resolve config dir: %w", err)
		}
		path = filepath.Join(dir, "lfp", "session.json")
	}
	return &FileStore{path: path}, nil
}

// Path returns the location of the session file.
func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) Token() (string, bool) {
	doc, ok := s.load()
	if !ok || doc.Token == "" {
		return "", false
	}
	return doc.Token, true
}

func (s *FileStore) User() (*domain.User, bool) {
	doc, ok := s.load()
	if !ok || doc.User == nil {
		return nil, false
	}
	return doc.User, true
}

func (s *FileStore) Set(token string, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(sessionFile{Token: token, User: user})
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "session-*.json")
	if err != nil {
		return fmt.Errorf("create temp session file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write session: %w", err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return fmt.Errorf("chmod session: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close session: %w", err)
	}

	// Rename is the commit point: both values become visible at once.
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("commit session: %w", err)
	}
	return nil
}

func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

func (s *FileStore) Authenticated() bool {
	_, ok := s.Token()
	return ok
}

// load reads the session document fresh on every access so the store stays
// in sync across processes. A missing or corrupt file reads as "no session".
func (s *FileStore) load() (sessionFile, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		return sessionFile{}, false
	}
	var doc sessionFile
	if err := json.Unmarshal(data, &doc); err != nil {
		return sessionFile{}, false
	}
	return doc, true
}
