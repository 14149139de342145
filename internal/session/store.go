// Package session manages the bearer token used to authenticate API requests.
package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// TokenFileName is the fixed name of the token file inside the config directory.
const TokenFileName = "token"

// Store persists a single bearer token.
type Store interface {
	// Load returns the stored token, or "" when none is stored.
	Load() (string, error)
	Save(token string) error
	Delete() error
}

// FileStore keeps the token in a file readable only by the current user.
type FileStore struct {
	path string
}

// NewFileStore returns a FileStore writing to dir/TokenFileName.
func NewFileStore(dir string) *FileStore {
	return &FileStore{path: filepath.Join(dir, TokenFileName)}
}

// Path returns the token file location.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the token file. A missing file means no token.
func (s *FileStore) Load() (string, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read token file %s: %w", s.path, err)
	}
	return strings.TrimSpace(string(data)), nil
}

// Save writes the token, replacing any previous one.
func (s *FileStore) Save(token string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("failed to create token directory: %w", err)
	}
	if err := os.WriteFile(s.path, []byte(token), 0o600); err != nil {
		return fmt.Errorf("failed to write token file %s: %w", s.path, err)
	}
	return nil
}

// Delete removes the token file. Deleting a missing token is not an error.
func (s *FileStore) Delete() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove token file %s: %w", s.path, err)
	}
	return nil
}

// MemoryStore keeps the token in memory.
type MemoryStore struct {
	mu    sync.Mutex
	token string
}

// NewMemoryStore returns a MemoryStore holding token.
func NewMemoryStore(token string) *MemoryStore {
	return &MemoryStore{token: token}
}

func (s *MemoryStore) Load() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, nil
}

func (s *MemoryStore) Save(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

func (s *MemoryStore) Delete() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	return nil
}
