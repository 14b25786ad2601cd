package service

import (
	"context"

	"amlengine/internal/assessment/models"
	dErrors "amlengine/pkg/domain-errors"
	"amlengine/pkg/platform/audit"
	"amlengine/pkg/requestcontext"
)

// DecideAssessment approves or rejects an assessment. Only ADMIN staff with
// access to the client may decide. Scores are never recomputed. Re-deciding
// an APPROVED or REJECTED assessment is allowed unless strict decisions are
// enabled, in which case only PENDING assessments move and a concurrent
// decision loses with a conflict.
func (s *Service) DecideAssessment(ctx context.Context, cmd models.DecideAssessmentCommand) (_ *models.AmlAssessment, err error) {
	ctx, span := s.startSpan(ctx, "assessment.Decide", "")
	defer func() { endSpan(span, err) }()

	admin, err := s.requireAdmin(ctx)
	if err != nil {
		return nil, err
	}
	if cmd.AssessmentID.IsNil() {
		return nil, dErrors.New(dErrors.CodeValidation, "assessment id is required")
	}

	existing, err := s.assessments.FindByID(ctx, cmd.AssessmentID)
	if err != nil {
		return nil, translateStoreError(err, "assessment")
	}
	if _, err := s.accessibleClient(ctx, admin, existing.ClientID); err != nil {
		return nil, err
	}

	now := requestcontext.Now(ctx)
	var decided *models.AmlAssessment
	err = s.tx.RunInTx(withTxClient(ctx, existing.ClientID), func(ctx context.Context, stores TxStores) error {
		current, err := stores.Assessments.FindByID(ctx, cmd.AssessmentID)
		if err != nil {
			return translateStoreError(err, "assessment")
		}
		if err := current.CanDecide(s.strictDecisions); err != nil {
			return err
		}

		var expected models.Status
		if s.strictDecisions {
			expected = current.Status
		}
		current.ApplyDecision(cmd.Approved, admin.ID, cmd.Notes, now)
		if err := stores.Assessments.UpdateDecision(ctx, current, expected); err != nil {
			return translateStoreError(err, "assessment")
		}

		action := audit.EventAssessmentApproved
		if !cmd.Approved {
			action = audit.EventAssessmentRejected
		}
		decided = current
		return s.emitCompliance(ctx, audit.Event{
			Action:     string(action),
			Subject:    current.ClientID.String(),
			ResourceID: current.ID.String(),
			ActorID:    admin.ID.String(),
			Decision:   string(current.Status),
			Reason:     current.RejectionReason,
		})
	})
	if err != nil {
		return nil, err
	}

	s.metrics.IncrementDecision(string(decided.Status))
	s.logger.InfoContext(ctx, "aml assessment decided",
		"assessment_id", decided.ID.String(),
		"client_id", decided.ClientID.String(),
		"approver_id", admin.ID.String(),
		"status", decided.Status,
		"request_id", requestcontext.RequestID(ctx),
	)
	return decided, nil
}
