package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"amlengine/internal/assessment/models"
	"amlengine/internal/assessment/service"
	assessmentstore "amlengine/internal/assessment/store"
	dirmodels "amlengine/internal/directory/models"
	clientstore "amlengine/internal/directory/store/client"
	staffstore "amlengine/internal/directory/store/staff"
	"amlengine/internal/risk"
	id "amlengine/pkg/domain"
	dErrors "amlengine/pkg/domain-errors"
	"amlengine/pkg/platform/audit"
	"amlengine/pkg/platform/audit/publishers/compliance"
	auditmemory "amlengine/pkg/platform/audit/store/memory"
	"amlengine/pkg/requestcontext"
)

// LifecycleSuite drives the service over the in-memory stores.
type LifecycleSuite struct {
	suite.Suite
	ctx         context.Context
	clients     *clientstore.InMemory
	staff       *staffstore.InMemory
	assessments *assessmentstore.InMemory
	audit       *auditmemory.InMemoryStore
	service     *service.Service

	officer *dirmodels.Staff
	admin   *dirmodels.Staff
	client  *dirmodels.Client
	today   time.Time
}

func TestLifecycleSuite(t *testing.T) {
	suite.Run(t, new(LifecycleSuite))
}

func (s *LifecycleSuite) SetupTest() {
	s.ctx = context.Background()
	s.today = time.Date(2025, 9, 1, 14, 0, 0, 0, time.UTC)

	s.clients = clientstore.NewInMemory()
	s.staff = staffstore.NewInMemory()
	s.assessments = assessmentstore.NewInMemory()
	s.audit = auditmemory.NewInMemoryStore()

	s.officer = &dirmodels.Staff{
		ID: id.StaffID(uuid.New()), UserID: id.UserID(uuid.New()), Name: "Officer",
		Role: dirmodels.RoleStaff, Businesses: []string{"GCMC"}, IsActive: true,
	}
	s.admin = &dirmodels.Staff{
		ID: id.StaffID(uuid.New()), UserID: id.UserID(uuid.New()), Name: "Admin",
		Role: dirmodels.RoleAdmin, Businesses: []string{"GCMC", "Pinnacle"}, IsActive: true,
	}
	s.Require().NoError(s.staff.Create(s.ctx, s.officer))
	s.Require().NoError(s.staff.Create(s.ctx, s.admin))

	s.client = &dirmodels.Client{
		ID: id.ClientID(uuid.New()), Name: "Essequibo Gold Inc", Type: risk.ClientTypeCorporation,
		Country: "Iran", Businesses: []string{"GCMC"}, CreatedAt: s.today, UpdatedAt: s.today,
	}
	s.Require().NoError(s.clients.Create(s.ctx, s.client))

	s.service = service.New(s.assessments, s.clients, s.staff, risk.NewCalculator(risk.DefaultTables()),
		service.WithCompliancePublisher(compliance.New(s.audit)),
	)
}

func (s *LifecycleSuite) as(st *dirmodels.Staff, at time.Time) context.Context {
	return requestcontext.WithTime(requestcontext.WithUserID(s.ctx, st.UserID), at)
}

// createScored scores the client and records the result as an assessment.
func (s *LifecycleSuite) createScored(in risk.Input, at time.Time) *models.AmlAssessment {
	score, err := s.service.CalculateRiskScore(s.as(s.officer, at), in, nil)
	s.Require().NoError(err)

	a, err := s.service.CreateAssessment(s.as(s.officer, at), models.CreateAssessmentCommand{
		ClientID:        s.client.ID,
		ClientTypeRisk:  score.ClientTypeRisk,
		ServiceRisk:     score.ServiceRisk,
		GeographicRisk:  score.GeographicRisk,
		TransactionRisk: score.TransactionRisk,
		TotalRiskScore:  score.TotalScore,
		RiskRating:      score.Rating,
		IsPEP:           in.IsPEP,
		RequiresEDD:     score.RequiresEDD,
		EDDReasons:      score.EDDReasons,
	})
	s.Require().NoError(err)
	return a
}

func (s *LifecycleSuite) TestHighRiskClientThroughReview() {
	high := s.createScored(risk.Input{
		ClientType:   risk.ClientTypeCorporation,
		ServiceTypes: []string{"IMMIGRATION"},
		Country:      "Iran",
		IsPEP:        true,
	}, s.today)
	s.Equal(risk.RatingHigh, high.RiskRating)
	s.Equal(models.StatusPending, high.Status)

	client, err := s.clients.FindByID(s.ctx, s.client.ID)
	s.Require().NoError(err)
	s.Equal(risk.RatingHigh, client.AmlRiskRating)
	s.True(client.IsPEP)
	s.True(client.RequiresEnhancedDueDiligence)

	page, err := s.service.GetPendingReviews(s.as(s.admin, s.today), models.PendingReviewsQuery{})
	s.Require().NoError(err)
	s.Equal(1, page.Pagination.Total)
	s.Equal(high.ID, page.Assessments[0].ID)

	decided, err := s.service.DecideAssessment(s.as(s.admin, s.today.Add(time.Hour)), models.DecideAssessmentCommand{
		AssessmentID: high.ID, Approved: true,
	})
	s.Require().NoError(err)
	s.Equal(models.StatusApproved, decided.Status)

	page, err = s.service.GetPendingReviews(s.as(s.admin, s.today), models.PendingReviewsQuery{})
	s.Require().NoError(err)
	s.Zero(page.Pagination.Total)
	s.Empty(page.Assessments)

	events, err := s.audit.ListBySubject(s.ctx, s.client.ID.String())
	s.Require().NoError(err)
	s.Require().Len(events, 2)
	s.Equal(string(audit.EventAssessmentCreated), events[0].Action)
	s.Equal(string(audit.EventAssessmentApproved), events[1].Action)
}

func (s *LifecycleSuite) TestSnapshotFollowsLatestCreatedAssessment() {
	s.createScored(risk.Input{
		ClientType: risk.ClientTypeCorporation, ServiceTypes: []string{"IMMIGRATION"}, Country: "Iran", IsPEP: true,
	}, s.today)
	s.createScored(risk.Input{
		ClientType: risk.ClientTypeIndividual, ServiceTypes: []string{"TRAINING"}, Country: "Guyana",
	}, s.today.Add(time.Hour))

	client, err := s.clients.FindByID(s.ctx, s.client.ID)
	s.Require().NoError(err)
	s.Equal(risk.RatingLow, client.AmlRiskRating)
	s.False(client.IsPEP)
	s.False(client.RequiresEnhancedDueDiligence)

	history, err := s.service.GetAssessmentHistory(s.as(s.officer, s.today), s.client.ID)
	s.Require().NoError(err)
	s.Require().Len(history, 2)
	s.Equal(risk.RatingLow, history[0].RiskRating)
	s.Equal(risk.RatingHigh, history[1].RiskRating)
	s.Equal("Officer", history[0].Assessor.Name)

	latest, err := s.service.GetAssessment(s.as(s.officer, s.today), s.client.ID)
	s.Require().NoError(err)
	s.Equal(history[0].ID, latest.ID)
}

func (s *LifecycleSuite) TestDueReviewsWindow() {
	assessedAt := time.Date(2024, 9, 20, 9, 0, 0, 0, time.UTC)
	s.createScored(risk.Input{
		ClientType: risk.ClientTypeCorporation, ServiceTypes: []string{"IMMIGRATION"}, Country: "Iran", IsPEP: true,
	}, assessedAt)

	due, err := s.service.ClientsRequiringReview(s.as(s.officer, s.today), 30)
	s.Require().NoError(err)
	s.Require().Len(due, 1)
	s.Equal(time.Date(2025, 9, 20, 0, 0, 0, 0, time.UTC), due[0].NextReviewDate)
	s.Require().NotNil(due[0].Client)
	s.Equal("Essequibo Gold Inc", due[0].Client.Name)

	due, err = s.service.ClientsRequiringReview(s.as(s.officer, s.today), 7)
	s.Require().NoError(err)
	s.Empty(due)
}

func (s *LifecycleSuite) TestScreeningRecordedOnLatestAssessment() {
	a := s.createScored(risk.Input{
		ClientType: risk.ClientTypeIndividual, ServiceTypes: []string{"TRAINING"}, Country: "Guyana",
	}, s.today)

	outcome, err := s.service.ScreenSanctions(s.as(s.officer, s.today), s.client.ID)
	s.Require().NoError(err)
	s.True(outcome.Screened)
	s.Require().NotNil(outcome.AssessmentID)
	s.Equal(a.ID, *outcome.AssessmentID)

	latest, err := s.service.GetAssessment(s.as(s.officer, s.today), s.client.ID)
	s.Require().NoError(err)
	s.True(latest.SanctionsScreened)
	s.False(latest.SanctionsMatch)
	s.NotNil(latest.SanctionsScreenedAt)
}

// outboxDown fails every compliance write.
type outboxDown struct{}

func (outboxDown) Emit(context.Context, audit.Event) error {
	return errors.New("outbox down")
}

func (s *LifecycleSuite) withFailingCompliance() *service.Service {
	return service.New(s.assessments, s.clients, s.staff, risk.NewCalculator(risk.DefaultTables()),
		service.WithCompliancePublisher(outboxDown{}),
	)
}

func (s *LifecycleSuite) TestFailedAuditRollsBackCreate() {
	svc := s.withFailingCompliance()

	_, err := svc.CreateAssessment(s.as(s.officer, s.today), models.CreateAssessmentCommand{
		ClientID:        s.client.ID,
		ClientTypeRisk:  25,
		ServiceRisk:     25,
		GeographicRisk:  25,
		TransactionRisk: 15,
		TotalRiskScore:  90,
		RiskRating:      risk.RatingProhibited,
		IsPEP:           true,
		RequiresEDD:     true,
		EDDReasons:      []string{risk.ReasonHighRating, risk.ReasonPEP},
	})
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeStorage))

	rows, err := s.assessments.ListByClient(s.ctx, s.client.ID)
	s.Require().NoError(err)
	s.Empty(rows)

	client, err := s.clients.FindByID(s.ctx, s.client.ID)
	s.Require().NoError(err)
	s.Empty(client.AmlRiskRating)
	s.False(client.IsPEP)
	s.False(client.RequiresEnhancedDueDiligence)
	s.Equal(s.today, client.UpdatedAt)
}

func (s *LifecycleSuite) TestFailedAuditKeepsPreviousSnapshot() {
	s.createScored(risk.Input{
		ClientType: risk.ClientTypeIndividual, ServiceTypes: []string{"TRAINING"}, Country: "Guyana",
	}, s.today)
	before, err := s.clients.FindByID(s.ctx, s.client.ID)
	s.Require().NoError(err)

	_, err = s.withFailingCompliance().CreateAssessment(s.as(s.officer, s.today.Add(time.Hour)), models.CreateAssessmentCommand{
		ClientID: s.client.ID, ClientTypeRisk: 15, ServiceRisk: 18, GeographicRisk: 25, TransactionRisk: 15,
		TotalRiskScore: 73, RiskRating: risk.RatingHigh, IsPEP: true, RequiresEDD: true,
		EDDReasons: []string{risk.ReasonHighRating},
	})
	s.Require().Error(err)

	after, err := s.clients.FindByID(s.ctx, s.client.ID)
	s.Require().NoError(err)
	s.Equal(before, after)

	rows, err := s.assessments.ListByClient(s.ctx, s.client.ID)
	s.Require().NoError(err)
	s.Len(rows, 1)
}

func (s *LifecycleSuite) TestFailedAuditRollsBackDecision() {
	high := s.createScored(risk.Input{
		ClientType: risk.ClientTypeCorporation, ServiceTypes: []string{"IMMIGRATION"}, Country: "Iran", IsPEP: true,
	}, s.today)

	_, err := s.withFailingCompliance().DecideAssessment(s.as(s.admin, s.today.Add(time.Hour)), models.DecideAssessmentCommand{
		AssessmentID: high.ID, Approved: true,
	})
	s.Require().Error(err)

	found, err := s.assessments.FindByID(s.ctx, high.ID)
	s.Require().NoError(err)
	s.Equal(models.StatusPending, found.Status)
	s.Nil(found.ApprovedBy)
	s.Nil(found.ApprovedAt)
	s.Equal(high.UpdatedAt, found.UpdatedAt)
}

func (s *LifecycleSuite) TestFailedAuditRollsBackScreening() {
	a := s.createScored(risk.Input{
		ClientType: risk.ClientTypeIndividual, ServiceTypes: []string{"TRAINING"}, Country: "Guyana",
	}, s.today)

	_, err := s.withFailingCompliance().ScreenSanctions(s.as(s.officer, s.today.Add(time.Hour)), s.client.ID)
	s.Require().Error(err)

	found, err := s.assessments.FindByID(s.ctx, a.ID)
	s.Require().NoError(err)
	s.False(found.SanctionsScreened)
	s.Nil(found.SanctionsScreenedAt)
	s.Equal(a.UpdatedAt, found.UpdatedAt)
}
