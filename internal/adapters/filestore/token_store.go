// Package filestore persists the client bearer token in a JSON file.
package filestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	domainauth "github.com/target/foodcart/internal/domain/auth"
)

const (
	fileMode = 0o600
	dirMode  = 0o700
)

// TokenStore keeps {"token": "..."} in a single file readable only by its owner.
// Writes go through a temp file and rename, so a reader never sees a partial file.
type TokenStore struct {
	path string
	mu   sync.Mutex
}

// NewTokenStore creates a store backed by path.
func NewTokenStore(path string) *TokenStore {
	return &TokenStore{path: path}
}

// DefaultPath returns <user config dir>/foodcart/session.json.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(dir, "foodcart", "session.json"), nil
}

// Path returns the backing file.
func (s *TokenStore) Path() string { return s.path }

// Read returns the stored token, or "" when the file does not exist.
func (s *TokenStore) Read(_ context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("read token file: %w", err)
	}

	var entry map[string]string
	if err := json.Unmarshal(data, &entry); err != nil {
		return "", fmt.Errorf("decode token file: %w", err)
	}
	return entry[domainauth.TokenKey], nil
}

// Write replaces the stored token.
func (s *TokenStore) Write(_ context.Context, token string) error {
	if token == "" {
		return errors.New("token cannot be empty")
	}
	data, err := json.Marshal(map[string]string{domainauth.TokenKey: token})
	if err != nil {
		return fmt.Errorf("encode token: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, dirMode); err != nil {
		return fmt.Errorf("create token dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".token-*")
	if err != nil {
		return fmt.Errorf("create temp token file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		// No-op after a successful rename.
		_ = os.Remove(tmpName)
	}()

	if err := tmp.Chmod(fileMode); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("chmod temp token file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp token file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp token file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("replace token file: %w", err)
	}
	return nil
}

// Delete removes the token file. A missing file is not an error.
func (s *TokenStore) Delete(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove token file: %w", err)
	}
	return nil
}
