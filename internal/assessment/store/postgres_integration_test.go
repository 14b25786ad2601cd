//go:build integration

package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"amlengine/internal/assessment/models"
	"amlengine/internal/assessment/store"
	dirmodels "amlengine/internal/directory/models"
	clientstore "amlengine/internal/directory/store/client"
	staffstore "amlengine/internal/directory/store/staff"
	"amlengine/internal/risk"
	id "amlengine/pkg/domain"
	"amlengine/pkg/platform/sentinel"
	txcontext "amlengine/pkg/platform/tx"
	"amlengine/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *store.PostgresStore
	clients  *clientstore.PostgresStore
	staff    *staffstore.PostgresStore
	ctx      context.Context
	assessor *dirmodels.Staff
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.postgres = containers.GetManager().GetPostgres(s.T())
	s.store = store.NewPostgres(s.postgres.DB)
	s.clients = clientstore.NewPostgres(s.postgres.DB)
	s.staff = staffstore.NewPostgres(s.postgres.DB)
	s.ctx = context.Background()
}

func (s *PostgresStoreSuite) SetupTest() {
	s.Require().NoError(s.postgres.TruncateTables(s.ctx, "aml_assessments", "staff", "clients"))
	s.assessor = &dirmodels.Staff{
		ID:         id.StaffID(uuid.New()),
		UserID:     id.UserID(uuid.New()),
		Name:       "Compliance Officer",
		Role:       dirmodels.RoleAdmin,
		Businesses: []string{"GCMC"},
		IsActive:   true,
	}
	s.Require().NoError(s.staff.Create(s.ctx, s.assessor))
}

func (s *PostgresStoreSuite) createClient() id.ClientID {
	now := time.Now().UTC()
	c := &dirmodels.Client{
		ID:         id.ClientID(uuid.New()),
		Name:       "Demerara Holdings",
		Type:       risk.ClientTypeCorporation,
		Country:    "Guyana",
		Businesses: []string{"GCMC"},
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	s.Require().NoError(s.clients.Create(s.ctx, c))
	return c.ID
}

func (s *PostgresStoreSuite) newAssessment(clientID id.ClientID, rating risk.Rating, at time.Time) *models.AmlAssessment {
	return &models.AmlAssessment{
		ID:              id.AssessmentID(uuid.New()),
		ClientID:        clientID,
		AssessedBy:      s.assessor.ID,
		AssessmentDate:  at,
		ClientTypeRisk:  15,
		ServiceRisk:     20,
		GeographicRisk:  5,
		TransactionRisk: 0,
		TotalRiskScore:  40,
		RiskRating:      rating,
		IsPEP:           true,
		PEPCategory:     models.PEPCategoryForeign,
		RequiresEDD:     true,
		EDDReasons:      []string{risk.ReasonPEP},
		SourceOfFunds:   models.SourceBusiness,
		Status:          models.InitialStatus(rating),
		NextReviewDate:  risk.NextReviewDate(rating, at),
		CreatedAt:       at,
		UpdatedAt:       at,
	}
}

func (s *PostgresStoreSuite) TestRoundTrip() {
	clientID := s.createClient()
	at := time.Date(2024, 2, 29, 10, 0, 0, 0, time.UTC)
	a := s.newAssessment(clientID, risk.RatingHigh, at)
	s.Require().NoError(s.store.Create(s.ctx, a))

	found, err := s.store.FindByID(s.ctx, a.ID)
	s.Require().NoError(err)
	s.Equal(a.ClientID, found.ClientID)
	s.Equal(models.StatusPending, found.Status)
	s.Equal(models.PEPCategoryForeign, found.PEPCategory)
	s.Equal([]string{risk.ReasonPEP}, found.EDDReasons)
	s.Equal("2025-03-01", found.NextReviewDate.Format("2006-01-02"))
	s.Nil(found.ApprovedBy)
	s.Nil(found.SanctionsScreenedAt)

	s.ErrorIs(s.store.Create(s.ctx, a), sentinel.ErrConflict)
}

func (s *PostgresStoreSuite) TestLatestAndPending() {
	clientID := s.createClient()
	base := time.Date(2025, 1, 5, 9, 0, 0, 0, time.UTC)
	older := s.newAssessment(clientID, risk.RatingHigh, base)
	newer := s.newAssessment(clientID, risk.RatingProhibited, base.Add(time.Hour))
	low := s.newAssessment(clientID, risk.RatingLow, base.Add(-time.Hour))
	for _, a := range []*models.AmlAssessment{older, newer, low} {
		s.Require().NoError(s.store.Create(s.ctx, a))
	}

	latest, err := s.store.FindLatestByClient(s.ctx, clientID)
	s.Require().NoError(err)
	s.Equal(newer.ID, latest.ID)

	page, total, err := s.store.ListPending(s.ctx, models.PendingFilter{
		ClientIDs: []id.ClientID{clientID}, Limit: 1,
	})
	s.Require().NoError(err)
	s.Equal(2, total)
	s.Require().Len(page, 1)
	s.Equal(newer.ID, page[0].ID)

	page, total, err = s.store.ListPending(s.ctx, models.PendingFilter{
		ClientIDs: []id.ClientID{clientID}, Rating: risk.RatingHigh, Limit: 20,
	})
	s.Require().NoError(err)
	s.Equal(1, total)
	s.Equal(older.ID, page[0].ID)
}

func (s *PostgresStoreSuite) TestListDue() {
	clientID := s.createClient()
	today := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	for _, offset := range []int{-1, 0, 30, 31} {
		a := s.newAssessment(clientID, risk.RatingLow, today)
		a.NextReviewDate = today.AddDate(0, 0, offset)
		s.Require().NoError(s.store.Create(s.ctx, a))
	}

	due, err := s.store.ListDue(s.ctx, models.DueFilter{
		ClientIDs: []id.ClientID{clientID}, From: today, To: today.AddDate(0, 0, 30),
	})
	s.Require().NoError(err)
	s.Require().Len(due, 2)
	s.Equal("2025-06-01", due[0].NextReviewDate.Format("2006-01-02"))
	s.Equal("2025-07-01", due[1].NextReviewDate.Format("2006-01-02"))
}

func (s *PostgresStoreSuite) TestConditionalUpdate() {
	clientID := s.createClient()
	a := s.newAssessment(clientID, risk.RatingHigh, time.Now().UTC())
	s.Require().NoError(s.store.Create(s.ctx, a))

	decided := a.Clone()
	decided.ApplyDecision(false, s.assessor.ID, "insufficient source of wealth", time.Now().UTC())
	s.Require().NoError(s.store.UpdateDecision(s.ctx, decided, models.StatusPending))

	found, err := s.store.FindByID(s.ctx, a.ID)
	s.Require().NoError(err)
	s.Equal(models.StatusRejected, found.Status)
	s.Equal("insufficient source of wealth", found.RejectionReason)
	s.Require().NotNil(found.ApprovedBy)
	s.Equal(s.assessor.ID, *found.ApprovedBy)

	s.ErrorIs(s.store.UpdateDecision(s.ctx, decided, models.StatusPending), sentinel.ErrInvalidState)

	ghost := s.newAssessment(clientID, risk.RatingLow, time.Now().UTC())
	s.ErrorIs(s.store.UpdateDecision(s.ctx, ghost, models.StatusPending), sentinel.ErrNotFound)
	s.ErrorIs(s.store.UpdateScreening(s.ctx, ghost), sentinel.ErrNotFound)
}

func (s *PostgresStoreSuite) TestDecisionSurvivesScreeningFromStaleRead() {
	clientID := s.createClient()
	a := s.newAssessment(clientID, risk.RatingHigh, time.Now().UTC())
	s.Require().NoError(s.store.Create(s.ctx, a))

	stale, err := s.store.FindLatestByClient(s.ctx, clientID)
	s.Require().NoError(err)
	s.Equal(models.StatusPending, stale.Status)

	decided := a.Clone()
	decided.ApplyDecision(true, s.assessor.ID, "", time.Now().UTC())
	s.Require().NoError(s.store.UpdateDecision(s.ctx, decided, models.StatusPending))

	stale.ApplyScreening(time.Now().UTC(), true, "OFAC SDN", time.Now().UTC())
	s.Require().NoError(s.store.UpdateScreening(s.ctx, stale))

	found, err := s.store.FindByID(s.ctx, a.ID)
	s.Require().NoError(err)
	s.Equal(models.StatusApproved, found.Status)
	s.Require().NotNil(found.ApprovedBy)
	s.Equal(s.assessor.ID, *found.ApprovedBy)
	s.True(found.SanctionsScreened)
	s.True(found.SanctionsMatch)
	s.Equal("OFAC SDN", found.SanctionsDetails)

	redecided := stale.Clone()
	redecided.SanctionsScreened = false
	redecided.ApplyDecision(false, s.assessor.ID, "match confirmed", time.Now().UTC())
	s.Require().NoError(s.store.UpdateDecision(s.ctx, redecided, ""))

	found, err = s.store.FindByID(s.ctx, a.ID)
	s.Require().NoError(err)
	s.Equal(models.StatusRejected, found.Status)
	s.True(found.SanctionsScreened)
}

func (s *PostgresStoreSuite) TestRollbackDiscardsInsert() {
	clientID := s.createClient()
	a := s.newAssessment(clientID, risk.RatingLow, time.Now().UTC())

	tx, err := s.postgres.DB.BeginTx(s.ctx, nil)
	s.Require().NoError(err)
	s.Require().NoError(s.store.Create(txcontext.WithTx(s.ctx, tx), a))
	s.Require().NoError(tx.Rollback())

	_, err = s.store.FindByID(s.ctx, a.ID)
	s.ErrorIs(err, sentinel.ErrNotFound)
}
