package authenticationrequest

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"oidcore/internal/oidc/models"
	"oidcore/pkg/domain"
	"oidcore/pkg/platform/sentinel"
)

// InMemoryStore keeps authentication requests for tests and single-node dev.
// Requests never expire.
type InMemoryStore struct {
	mu       sync.RWMutex
	requests map[domain.AuthenticationRequestID]*models.AuthenticationRequest
}

func NewInMemory() *InMemoryStore {
	return &InMemoryStore{
		requests: make(map[domain.AuthenticationRequestID]*models.AuthenticationRequest),
	}
}

func (s *InMemoryStore) Save(_ context.Context, req *models.AuthenticationRequest) (domain.AuthenticationRequestID, error) {
	id := domain.NewAuthenticationRequestID()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests[id] = clone(req)
	return id, nil
}

func (s *InMemoryStore) Load(_ context.Context, id domain.AuthenticationRequestID) (*models.AuthenticationRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	req, ok := s.requests[id]
	if !ok {
		return nil, fmt.Errorf("authentication request %s: %w", id, sentinel.ErrNotFound)
	}
	return clone(req), nil
}

func clone(req *models.AuthenticationRequest) *models.AuthenticationRequest {
	c := *req
	c.ResponseTypes = slices.Clone(req.ResponseTypes)
	c.Scope = slices.Clone(req.Scope)
	c.Prompt = slices.Clone(req.Prompt)
	c.UILocales = slices.Clone(req.UILocales)
	c.ACRValues = slices.Clone(req.ACRValues)
	if req.MaxAge != nil {
		maxAge := *req.MaxAge
		c.MaxAge = &maxAge
	}
	return &c
}
