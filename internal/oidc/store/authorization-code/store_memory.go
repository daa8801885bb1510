package authorizationcode

import (
	"context"
	"fmt"
	"sync"

	"oidcore/pkg/domain"
	"oidcore/pkg/platform/sentinel"
)

// Error Contract:
// - Save returns ErrConflict when the code is already bound
// - Load and Revoke return ErrNotFound when the code does not exist
// - Revoke deletes under the write lock, so exactly one concurrent caller wins

type InMemoryStore struct {
	mu    sync.RWMutex
	codes map[string]domain.AuthorizationRequestID
}

func NewInMemory() *InMemoryStore {
	return &InMemoryStore{codes: make(map[string]domain.AuthorizationRequestID)}
}

func (s *InMemoryStore) Save(_ context.Context, code string, authorizationRequestID domain.AuthorizationRequestID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.codes[code]; exists {
		return fmt.Errorf("authorization code: %w", sentinel.ErrConflict)
	}
	s.codes[code] = authorizationRequestID
	return nil
}

func (s *InMemoryStore) Load(_ context.Context, code string) (domain.AuthorizationRequestID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.codes[code]
	if !ok {
		return domain.AuthorizationRequestID{}, fmt.Errorf("authorization code not found: %w", sentinel.ErrNotFound)
	}
	return id, nil
}

func (s *InMemoryStore) Revoke(_ context.Context, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.codes[code]; !ok {
		return fmt.Errorf("authorization code not found: %w", sentinel.ErrNotFound)
	}
	delete(s.codes, code)
	return nil
}
