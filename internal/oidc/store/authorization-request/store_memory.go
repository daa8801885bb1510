package authorizationrequest

import (
	"context"
	"fmt"
	"sync"

	"oidcore/internal/oidc/models"
	"oidcore/pkg/domain"
	"oidcore/pkg/platform/sentinel"
)

type InMemoryStore struct {
	mu        sync.RWMutex
	requests  map[domain.AuthorizationRequestID]models.AuthorizationRequest
	completed map[domain.AuthorizationRequestID]struct{}
}

func NewInMemory() *InMemoryStore {
	return &InMemoryStore{
		requests:  make(map[domain.AuthorizationRequestID]models.AuthorizationRequest),
		completed: make(map[domain.AuthorizationRequestID]struct{}),
	}
}

func (s *InMemoryStore) Save(_ context.Context, req *models.AuthorizationRequest) (domain.AuthorizationRequestID, error) {
	id := domain.NewAuthorizationRequestID()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests[id] = *req
	return id, nil
}

func (s *InMemoryStore) Load(_ context.Context, id domain.AuthorizationRequestID) (*models.AuthorizationRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	req, ok := s.requests[id]
	if !ok {
		return nil, fmt.Errorf("authorization request %s: %w", id, sentinel.ErrNotFound)
	}
	return &req, nil
}

func (s *InMemoryStore) MarkCompleted(_ context.Context, id domain.AuthorizationRequestID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.requests[id]; !ok {
		return fmt.Errorf("authorization request %s: %w", id, sentinel.ErrNotFound)
	}
	if _, done := s.completed[id]; done {
		return fmt.Errorf("authorization request %s: %w", id, sentinel.ErrConflict)
	}
	s.completed[id] = struct{}{}
	return nil
}
