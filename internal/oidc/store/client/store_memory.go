package client

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"oidcore/internal/oidc/models"
	"oidcore/pkg/platform/sentinel"
)

// InMemoryStore is a static client registry for tests and local runs.
type InMemoryStore struct {
	mu      sync.RWMutex
	clients map[string]models.Client
}

func NewInMemory(clients ...*models.Client) *InMemoryStore {
	s := &InMemoryStore{clients: make(map[string]models.Client, len(clients))}
	for _, c := range clients {
		s.clients[c.ID] = *c
	}
	return s
}

// Upsert registers client, replacing any client with the same id.
func (s *InMemoryStore) Upsert(_ context.Context, client *models.Client) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := *client
	c.RedirectURIs = slices.Clone(client.RedirectURIs)
	s.clients[c.ID] = c
	return nil
}

func (s *InMemoryStore) GetClient(_ context.Context, clientID string) (*models.Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.clients[clientID]
	if !ok {
		return nil, fmt.Errorf("client %q: %w", clientID, sentinel.ErrNotFound)
	}
	c.RedirectURIs = slices.Clone(c.RedirectURIs)
	return &c, nil
}
