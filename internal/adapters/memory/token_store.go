// Package memory holds process-local adapters.
package memory

import (
	"context"
	"sync"
)

// TokenStore keeps the token in memory for the life of the process.
type TokenStore struct {
	mu    sync.RWMutex
	token string
}

// NewTokenStore creates an empty store.
func NewTokenStore() *TokenStore { return &TokenStore{} }

func (s *TokenStore) Read(context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, nil
}

func (s *TokenStore) Write(_ context.Context, token string) error {
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
	return nil
}

func (s *TokenStore) Delete(context.Context) error {
	s.mu.Lock()
	s.token = ""
	s.mu.Unlock()
	return nil
}
