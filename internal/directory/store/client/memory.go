package client

import (
	"context"
	"slices"
	"sync"

	"amlengine/internal/directory/models"
	id "amlengine/pkg/domain"
	"amlengine/pkg/platform/sentinel"
)

// InMemory is a process-local client store used in development and tests.
type InMemory struct {
	mu      sync.RWMutex
	clients map[id.ClientID]*models.Client
}

func NewInMemory() *InMemory {
	return &InMemory{clients: make(map[id.ClientID]*models.Client)}
}

func (s *InMemory) Create(_ context.Context, c *models.Client) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.clients[c.ID]; exists {
		return sentinel.ErrConflict
	}
	s.clients[c.ID] = cloneClient(c)
	return nil
}

func (s *InMemory) FindByID(_ context.Context, clientID id.ClientID) (*models.Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.clients[clientID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return cloneClient(c), nil
}

// FindByIDs returns the clients that exist; missing ids are skipped.
func (s *InMemory) FindByIDs(_ context.Context, ids []id.ClientID) (map[id.ClientID]*models.Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[id.ClientID]*models.Client, len(ids))
	for _, clientID := range ids {
		if c, ok := s.clients[clientID]; ok {
			out[clientID] = cloneClient(c)
		}
	}
	return out, nil
}

// ListIDsByBusinesses returns ids of clients belonging to any of businesses.
func (s *InMemory) ListIDsByBusinesses(_ context.Context, businesses []string) ([]id.ClientID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []id.ClientID
	for clientID, c := range s.clients {
		if slices.ContainsFunc(c.Businesses, func(b string) bool { return slices.Contains(businesses, b) }) {
			out = append(out, clientID)
		}
	}
	return out, nil
}

func (s *InMemory) UpdateComplianceFields(_ context.Context, clientID id.ClientID, update models.ComplianceUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.clients[clientID]
	if !ok {
		return sentinel.ErrNotFound
	}
	update.Apply(c)
	return nil
}

func cloneClient(c *models.Client) *models.Client {
	cp := *c
	cp.Businesses = slices.Clone(c.Businesses)
	return &cp
}
