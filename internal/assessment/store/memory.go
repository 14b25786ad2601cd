// Package store persists AML assessments. Rows are append-only: a decision
// touches only the workflow fields of a row and a screening only its sanctions
// fields, so neither write can undo the other.
package store

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"amlengine/internal/assessment/models"
	id "amlengine/pkg/domain"
	"amlengine/pkg/platform/sentinel"
)

// InMemory keeps assessments in a map guarded by a RWMutex.
type InMemory struct {
	mu          sync.RWMutex
	assessments map[id.AssessmentID]*models.AmlAssessment
}

func NewInMemory() *InMemory {
	return &InMemory{assessments: make(map[id.AssessmentID]*models.AmlAssessment)}
}

func (s *InMemory) Create(_ context.Context, a *models.AmlAssessment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.assessments[a.ID]; exists {
		return sentinel.ErrConflict
	}
	s.assessments[a.ID] = a.Clone()
	return nil
}

func (s *InMemory) FindByID(_ context.Context, assessmentID id.AssessmentID) (*models.AmlAssessment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.assessments[assessmentID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return a.Clone(), nil
}

// FindLatestByClient returns the most recent assessment by assessment date,
// then creation time.
func (s *InMemory) FindLatestByClient(ctx context.Context, clientID id.ClientID) (*models.AmlAssessment, error) {
	all, err := s.ListByClient(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if len(all) == 0 {
		return nil, sentinel.ErrNotFound
	}
	return all[0], nil
}

// ListByClient returns the client's assessments, most recent first.
func (s *InMemory) ListByClient(_ context.Context, clientID id.ClientID) ([]*models.AmlAssessment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := s.collect(func(a *models.AmlAssessment) bool { return a.ClientID == clientID })
	slices.SortFunc(out, newestFirst)
	return out, nil
}

// ListPending returns one page of PENDING assessments and the total match count.
func (s *InMemory) ListPending(_ context.Context, f models.PendingFilter) ([]*models.AmlAssessment, int, error) {
	if len(f.ClientIDs) == 0 {
		return []*models.AmlAssessment{}, 0, nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	matched := s.collect(func(a *models.AmlAssessment) bool {
		return a.Status == models.StatusPending &&
			(f.Rating == "" || a.RiskRating == f.Rating) &&
			slices.Contains(f.ClientIDs, a.ClientID)
	})
	slices.SortFunc(matched, newestFirst)

	total := len(matched)
	start := min(f.Offset, total)
	end := min(start+f.Limit, total)
	return matched[start:end], total, nil
}

// ListDue returns assessments whose next review date falls in [From, To],
// compared by calendar date, soonest first.
func (s *InMemory) ListDue(_ context.Context, f models.DueFilter) ([]*models.AmlAssessment, error) {
	if len(f.ClientIDs) == 0 {
		return []*models.AmlAssessment{}, nil
	}
	from, to := dateKey(f.From), dateKey(f.To)
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := s.collect(func(a *models.AmlAssessment) bool {
		d := dateKey(a.NextReviewDate)
		return d >= from && d <= to && slices.Contains(f.ClientIDs, a.ClientID)
	})
	slices.SortFunc(out, func(a, b *models.AmlAssessment) int {
		if c := cmp.Compare(dateKey(a.NextReviewDate), dateKey(b.NextReviewDate)); c != 0 {
			return c
		}
		return a.CreatedAt.Compare(b.CreatedAt)
	})
	return out, nil
}

// UpdateDecision writes the workflow fields of a. With a non-empty expected
// status the write only applies while the stored row still has it.
func (s *InMemory) UpdateDecision(_ context.Context, a *models.AmlAssessment, expected models.Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.assessments[a.ID]
	if !ok {
		return sentinel.ErrNotFound
	}
	if expected != "" && current.Status != expected {
		return sentinel.ErrInvalidState
	}
	next := current.Clone()
	next.Status = a.Status
	next.ApprovedBy = cloneStaffID(a.ApprovedBy)
	next.ApprovedAt = cloneTime(a.ApprovedAt)
	next.RejectionReason = a.RejectionReason
	next.UpdatedAt = a.UpdatedAt
	s.assessments[a.ID] = next
	return nil
}

// UpdateScreening writes the sanctions fields of a.
func (s *InMemory) UpdateScreening(_ context.Context, a *models.AmlAssessment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.assessments[a.ID]
	if !ok {
		return sentinel.ErrNotFound
	}
	next := current.Clone()
	next.SanctionsScreened = a.SanctionsScreened
	next.SanctionsScreenedAt = cloneTime(a.SanctionsScreenedAt)
	next.SanctionsMatch = a.SanctionsMatch
	next.SanctionsDetails = a.SanctionsDetails
	next.UpdatedAt = a.UpdatedAt
	s.assessments[a.ID] = next
	return nil
}

// Delete removes a row. It exists so an in-memory transaction can undo an
// insert; nothing else deletes assessments.
func (s *InMemory) Delete(_ context.Context, assessmentID id.AssessmentID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.assessments[assessmentID]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.assessments, assessmentID)
	return nil
}

func (s *InMemory) collect(keep func(*models.AmlAssessment) bool) []*models.AmlAssessment {
	out := make([]*models.AmlAssessment, 0)
	for _, a := range s.assessments {
		if keep(a) {
			out = append(out, a.Clone())
		}
	}
	return out
}

func newestFirst(a, b *models.AmlAssessment) int {
	if c := b.AssessmentDate.Compare(a.AssessmentDate); c != 0 {
		return c
	}
	return b.CreatedAt.Compare(a.CreatedAt)
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

func cloneStaffID(sid *id.StaffID) *id.StaffID {
	if sid == nil {
		return nil
	}
	v := *sid
	return &v
}

func dateKey(t time.Time) int {
	y, m, d := t.Date()
	return y*10000 + int(m)*100 + d
}
