package store

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"amlengine/internal/assessment/models"
	"amlengine/internal/risk"
	id "amlengine/pkg/domain"
	"amlengine/pkg/platform/sentinel"
)

type InMemoryStoreSuite struct {
	suite.Suite
	store *InMemory
	ctx   context.Context
	base  time.Time
}

func TestInMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(InMemoryStoreSuite))
}

func (s *InMemoryStoreSuite) SetupTest() {
	s.store = NewInMemory()
	s.ctx = context.Background()
	s.base = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
}

func (s *InMemoryStoreSuite) newAssessment(clientID id.ClientID, rating risk.Rating, assessedAt time.Time) *models.AmlAssessment {
	return &models.AmlAssessment{
		ID:             id.AssessmentID(uuid.New()),
		ClientID:       clientID,
		AssessedBy:     id.StaffID(uuid.New()),
		AssessmentDate: assessedAt,
		RiskRating:     rating,
		Status:         models.InitialStatus(rating),
		EDDReasons:     []string{},
		NextReviewDate: risk.NextReviewDate(rating, assessedAt),
		CreatedAt:      assessedAt,
		UpdatedAt:      assessedAt,
	}
}

func (s *InMemoryStoreSuite) TestCreate() {
	s.Run("returns a copy", func() {
		a := s.newAssessment(id.ClientID(uuid.New()), risk.RatingLow, s.base)
		a.EDDReasons = []string{risk.ReasonPEP}
		s.Require().NoError(s.store.Create(s.ctx, a))

		a.EDDReasons[0] = "mutated"
		found, err := s.store.FindByID(s.ctx, a.ID)
		s.Require().NoError(err)
		s.Equal([]string{risk.ReasonPEP}, found.EDDReasons)
	})

	s.Run("rejects duplicate id", func() {
		a := s.newAssessment(id.ClientID(uuid.New()), risk.RatingLow, s.base)
		s.Require().NoError(s.store.Create(s.ctx, a))
		s.ErrorIs(s.store.Create(s.ctx, a), sentinel.ErrConflict)
	})

	s.Run("unknown id is not found", func() {
		_, err := s.store.FindByID(s.ctx, id.AssessmentID(uuid.New()))
		s.ErrorIs(err, sentinel.ErrNotFound)
	})
}

func (s *InMemoryStoreSuite) TestLatestAndHistory() {
	clientID := id.ClientID(uuid.New())
	older := s.newAssessment(clientID, risk.RatingLow, s.base)
	newer := s.newAssessment(clientID, risk.RatingHigh, s.base.Add(time.Hour))
	sameDateLaterCreate := s.newAssessment(clientID, risk.RatingMedium, s.base.Add(time.Hour))
	sameDateLaterCreate.CreatedAt = newer.CreatedAt.Add(time.Second)
	for _, a := range []*models.AmlAssessment{older, newer, sameDateLaterCreate} {
		s.Require().NoError(s.store.Create(s.ctx, a))
	}

	s.Run("latest breaks date ties by creation time", func() {
		latest, err := s.store.FindLatestByClient(s.ctx, clientID)
		s.Require().NoError(err)
		s.Equal(sameDateLaterCreate.ID, latest.ID)
	})

	s.Run("history is most recent first", func() {
		history, err := s.store.ListByClient(s.ctx, clientID)
		s.Require().NoError(err)
		s.Require().Len(history, 3)
		s.Equal(sameDateLaterCreate.ID, history[0].ID)
		s.Equal(newer.ID, history[1].ID)
		s.Equal(older.ID, history[2].ID)
	})

	s.Run("client without assessments", func() {
		_, err := s.store.FindLatestByClient(s.ctx, id.ClientID(uuid.New()))
		s.ErrorIs(err, sentinel.ErrNotFound)

		history, err := s.store.ListByClient(s.ctx, id.ClientID(uuid.New()))
		s.Require().NoError(err)
		s.Empty(history)
	})
}

func (s *InMemoryStoreSuite) TestListPending() {
	visible := id.ClientID(uuid.New())
	hidden := id.ClientID(uuid.New())
	for i := range 5 {
		s.Require().NoError(s.store.Create(s.ctx, s.newAssessment(visible, risk.RatingHigh, s.base.Add(time.Duration(i)*time.Hour))))
	}
	s.Require().NoError(s.store.Create(s.ctx, s.newAssessment(visible, risk.RatingProhibited, s.base)))
	s.Require().NoError(s.store.Create(s.ctx, s.newAssessment(visible, risk.RatingLow, s.base)))
	s.Require().NoError(s.store.Create(s.ctx, s.newAssessment(hidden, risk.RatingHigh, s.base)))

	s.Run("pages over accessible pending rows", func() {
		page, total, err := s.store.ListPending(s.ctx, models.PendingFilter{
			ClientIDs: []id.ClientID{visible}, Offset: 0, Limit: 4,
		})
		s.Require().NoError(err)
		s.Equal(6, total)
		s.Len(page, 4)
		s.True(page[0].AssessmentDate.After(page[3].AssessmentDate))
	})

	s.Run("last page is short", func() {
		page, total, err := s.store.ListPending(s.ctx, models.PendingFilter{
			ClientIDs: []id.ClientID{visible}, Offset: 4, Limit: 4,
		})
		s.Require().NoError(err)
		s.Equal(6, total)
		s.Len(page, 2)
	})

	s.Run("filters by rating", func() {
		page, total, err := s.store.ListPending(s.ctx, models.PendingFilter{
			ClientIDs: []id.ClientID{visible}, Rating: risk.RatingProhibited, Limit: 20,
		})
		s.Require().NoError(err)
		s.Equal(1, total)
		s.Require().Len(page, 1)
		s.Equal(risk.RatingProhibited, page[0].RiskRating)
	})

	s.Run("no accessible clients", func() {
		page, total, err := s.store.ListPending(s.ctx, models.PendingFilter{Limit: 20})
		s.Require().NoError(err)
		s.Zero(total)
		s.Empty(page)
	})
}

func (s *InMemoryStoreSuite) TestListDue() {
	clientID := id.ClientID(uuid.New())
	today := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	dueOn := func(d time.Time) *models.AmlAssessment {
		a := s.newAssessment(clientID, risk.RatingHigh, s.base)
		a.NextReviewDate = d
		s.Require().NoError(s.store.Create(s.ctx, a))
		return a
	}
	last := dueOn(today.AddDate(0, 0, 30))
	first := dueOn(today)
	dueOn(today.AddDate(0, 0, -1))
	dueOn(today.AddDate(0, 0, 31))

	due, err := s.store.ListDue(s.ctx, models.DueFilter{
		ClientIDs: []id.ClientID{clientID},
		From:      today.Add(15 * time.Hour),
		To:        today.AddDate(0, 0, 30),
	})
	s.Require().NoError(err)
	s.Require().Len(due, 2, "both bounds are inclusive by date")
	s.Equal(first.ID, due[0].ID)
	s.Equal(last.ID, due[1].ID)
}

func (s *InMemoryStoreSuite) TestUpdateDecision() {
	a := s.newAssessment(id.ClientID(uuid.New()), risk.RatingHigh, s.base)
	s.Require().NoError(s.store.Create(s.ctx, a))

	s.Run("conditional update applies from expected status", func() {
		decided := a.Clone()
		decided.ApplyDecision(true, id.StaffID(uuid.New()), "", s.base.Add(time.Hour))
		s.Require().NoError(s.store.UpdateDecision(s.ctx, decided, models.StatusPending))

		found, err := s.store.FindByID(s.ctx, a.ID)
		s.Require().NoError(err)
		s.Equal(models.StatusApproved, found.Status)
		s.NotNil(found.ApprovedBy)
	})

	s.Run("conditional update rejects a moved status", func() {
		again := a.Clone()
		again.ApplyDecision(false, id.StaffID(uuid.New()), "late", s.base.Add(2*time.Hour))
		s.ErrorIs(s.store.UpdateDecision(s.ctx, again, models.StatusPending), sentinel.ErrInvalidState)
	})

	s.Run("unconditional update overwrites", func() {
		again := a.Clone()
		again.ApplyDecision(false, id.StaffID(uuid.New()), "source of funds unclear", s.base.Add(3*time.Hour))
		s.Require().NoError(s.store.UpdateDecision(s.ctx, again, ""))

		found, err := s.store.FindByID(s.ctx, a.ID)
		s.Require().NoError(err)
		s.Equal(models.StatusRejected, found.Status)
		s.Equal("source of funds unclear", found.RejectionReason)
	})

	s.Run("missing row", func() {
		ghost := s.newAssessment(id.ClientID(uuid.New()), risk.RatingLow, s.base)
		s.ErrorIs(s.store.UpdateDecision(s.ctx, ghost, ""), sentinel.ErrNotFound)
		s.ErrorIs(s.store.UpdateDecision(s.ctx, ghost, models.StatusPending), sentinel.ErrNotFound)
		s.ErrorIs(s.store.UpdateScreening(s.ctx, ghost), sentinel.ErrNotFound)
		s.ErrorIs(s.store.Delete(s.ctx, ghost.ID), sentinel.ErrNotFound)
	})
}

func (s *InMemoryStoreSuite) TestDecisionAndScreeningFromStaleCopies() {
	a := s.newAssessment(id.ClientID(uuid.New()), risk.RatingHigh, s.base)
	s.Require().NoError(s.store.Create(s.ctx, a))

	// Both writers read the PENDING row before either writes.
	forScreening, err := s.store.FindByID(s.ctx, a.ID)
	s.Require().NoError(err)
	forDecision, err := s.store.FindByID(s.ctx, a.ID)
	s.Require().NoError(err)

	approver := id.StaffID(uuid.New())
	forDecision.ApplyDecision(true, approver, "", s.base.Add(time.Hour))
	s.Require().NoError(s.store.UpdateDecision(s.ctx, forDecision, models.StatusPending))

	forScreening.ApplyScreening(s.base.Add(2*time.Hour), false, "", s.base.Add(2*time.Hour))
	s.Require().NoError(s.store.UpdateScreening(s.ctx, forScreening))

	found, err := s.store.FindByID(s.ctx, a.ID)
	s.Require().NoError(err)
	s.Equal(models.StatusApproved, found.Status, "screening must not revert the decision")
	s.Require().NotNil(found.ApprovedBy)
	s.Equal(approver, *found.ApprovedBy)
	s.True(found.SanctionsScreened)

	redecided := forDecision.Clone()
	redecided.SanctionsScreened = false
	redecided.ApplyDecision(false, approver, "re-review", s.base.Add(3*time.Hour))
	s.Require().NoError(s.store.UpdateDecision(s.ctx, redecided, ""))

	found, err = s.store.FindByID(s.ctx, a.ID)
	s.Require().NoError(err)
	s.Equal(models.StatusRejected, found.Status)
	s.True(found.SanctionsScreened, "decision must not clear the screening")
}

func (s *InMemoryStoreSuite) TestDelete() {
	a := s.newAssessment(id.ClientID(uuid.New()), risk.RatingLow, s.base)
	s.Require().NoError(s.store.Create(s.ctx, a))
	s.Require().NoError(s.store.Delete(s.ctx, a.ID))

	_, err := s.store.FindByID(s.ctx, a.ID)
	s.ErrorIs(err, sentinel.ErrNotFound)
}
