package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"amlengine/internal/assessment/models"
	dirmodels "amlengine/internal/directory/models"
	"amlengine/internal/risk"
	id "amlengine/pkg/domain"
	"amlengine/pkg/platform/audit"
	"amlengine/pkg/requestcontext"
)

// CalculateRiskScore scores in without persisting anything and reports the
// review date the result would be scheduled for. When ownership percentages
// are given, the disclosure total is checked too.
func (s *Service) CalculateRiskScore(ctx context.Context, in risk.Input, ownership []decimal.Decimal) (_ *models.RiskScore, err error) {
	ctx, span := s.startSpan(ctx, "assessment.CalculateRiskScore", "")
	defer func() { endSpan(span, err) }()

	if _, err := s.resolveStaff(ctx); err != nil {
		return nil, err
	}

	result := s.calculator.Calculate(in)
	score := &models.RiskScore{
		Result:         result,
		NextReviewDate: risk.NextReviewDate(result.Rating, requestcontext.Now(ctx)),
	}
	if len(ownership) > 0 {
		check := risk.CheckOwnership(ownership)
		score.Ownership = &check
	}

	s.metrics.IncrementRiskScoreCalculated()
	s.emitBestEffort(ctx, audit.Event{
		Action:   string(audit.EventRiskScoreComputed),
		Decision: string(result.Rating),
	})
	return score, nil
}

// CreateAssessment records a new assessment with caller-supplied scores and
// refreshes the client's compliance snapshot in the same transaction. The
// initial status is PENDING for HIGH and PROHIBITED, APPROVED otherwise.
func (s *Service) CreateAssessment(ctx context.Context, cmd models.CreateAssessmentCommand) (_ *models.AmlAssessment, err error) {
	start := time.Now()
	defer s.metrics.ObserveCreate(start)
	ctx, span := s.startSpan(ctx, "assessment.Create", cmd.ClientID.String())
	defer func() { endSpan(span, err) }()

	staff, err := s.resolveStaff(ctx)
	if err != nil {
		return nil, err
	}
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	client, err := s.accessibleClient(ctx, staff, cmd.ClientID)
	if err != nil {
		return nil, err
	}

	now := requestcontext.Now(ctx)
	assessment, err := models.NewAssessment(id.AssessmentID(uuid.New()), staff.ID, cmd, now)
	if err != nil {
		return nil, err
	}

	err = s.tx.RunInTx(withTxClient(ctx, client.ID), func(ctx context.Context, stores TxStores) error {
		if err := stores.Assessments.Create(ctx, assessment); err != nil {
			return translateStoreError(err, "assessment")
		}
		update := dirmodels.NewComplianceUpdate(assessment.RiskRating, assessment.IsPEP, assessment.RequiresEDD, now)
		if err := stores.Clients.UpdateComplianceFields(ctx, client.ID, update); err != nil {
			return translateStoreError(err, "client")
		}
		return s.emitCompliance(ctx, audit.Event{
			Action:     string(audit.EventAssessmentCreated),
			Subject:    client.ID.String(),
			ResourceID: assessment.ID.String(),
			ActorID:    staff.ID.String(),
			Decision:   string(assessment.Status),
			Reason:     string(assessment.RiskRating),
		})
	})
	if err != nil {
		return nil, err
	}

	s.metrics.IncrementAssessmentCreated(string(assessment.RiskRating), string(assessment.Status))
	s.logger.InfoContext(ctx, "aml assessment created",
		"assessment_id", assessment.ID.String(),
		"client_id", client.ID.String(),
		"staff_id", staff.ID.String(),
		"risk_rating", assessment.RiskRating,
		"status", assessment.Status,
		"request_id", requestcontext.RequestID(ctx),
	)
	return assessment, nil
}
