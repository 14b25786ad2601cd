package staff

import (
	"context"
	"slices"
	"sync"

	"amlengine/internal/directory/models"
	id "amlengine/pkg/domain"
	"amlengine/pkg/platform/sentinel"
)

// InMemory is a process-local staff directory.
type InMemory struct {
	mu     sync.RWMutex
	byID   map[id.StaffID]*models.Staff
	byUser map[id.UserID]id.StaffID
}

func NewInMemory() *InMemory {
	return &InMemory{
		byID:   make(map[id.StaffID]*models.Staff),
		byUser: make(map[id.UserID]id.StaffID),
	}
}

func (s *InMemory) Create(_ context.Context, st *models.Staff) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.byID[st.ID]; exists {
		return sentinel.ErrConflict
	}
	if _, exists := s.byUser[st.UserID]; exists {
		return sentinel.ErrConflict
	}
	s.byID[st.ID] = cloneStaff(st)
	s.byUser[st.UserID] = st.ID
	return nil
}

func (s *InMemory) FindByUserID(_ context.Context, userID id.UserID) (*models.Staff, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	staffID, ok := s.byUser[userID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return cloneStaff(s.byID[staffID]), nil
}

// FindByIDs returns the staff members that exist; missing ids are skipped.
func (s *InMemory) FindByIDs(_ context.Context, ids []id.StaffID) (map[id.StaffID]*models.Staff, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[id.StaffID]*models.Staff, len(ids))
	for _, staffID := range ids {
		if st, ok := s.byID[staffID]; ok {
			out[staffID] = cloneStaff(st)
		}
	}
	return out, nil
}

func cloneStaff(st *models.Staff) *models.Staff {
	cp := *st
	cp.Businesses = slices.Clone(st.Businesses)
	return &cp
}
