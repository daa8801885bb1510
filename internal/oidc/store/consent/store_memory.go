package consent

import (
	"context"
	"sync"
)

type key struct {
	clientID string
	subject  string
}

// InMemoryStore keeps granted scope items per (client, subject).
type InMemoryStore struct {
	mu     sync.RWMutex
	grants map[key]map[string]struct{}
}

func NewInMemory() *InMemoryStore {
	return &InMemoryStore{grants: make(map[key]map[string]struct{})}
}

func (s *InMemoryStore) IsGiven(_ context.Context, subject string, scope []string, clientID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	granted := s.grants[key{clientID, subject}]
	for _, item := range scope {
		if _, ok := granted[item]; !ok {
			return false, nil
		}
	}
	return true, nil
}

func (s *InMemoryStore) Grant(_ context.Context, subject string, scope []string, clientID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := key{clientID, subject}
	granted, ok := s.grants[k]
	if !ok {
		granted = make(map[string]struct{}, len(scope))
		s.grants[k] = granted
	}
	for _, item := range scope {
		granted[item] = struct{}{}
	}
	return nil
}

func (s *InMemoryStore) Revoke(_ context.Context, subject string, scope []string, clientID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := key{clientID, subject}
	granted := s.grants[k]
	for _, item := range scope {
		delete(granted, item)
	}
	if len(granted) == 0 {
		delete(s.grants, k)
	}
	return nil
}
