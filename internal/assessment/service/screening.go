package service

import (
	"context"
	"errors"
	"time"

	"amlengine/internal/assessment/models"
	"amlengine/internal/screening"
	id "amlengine/pkg/domain"
	dErrors "amlengine/pkg/domain-errors"
	"amlengine/pkg/platform/audit"
	"amlengine/pkg/platform/sentinel"
	"amlengine/pkg/requestcontext"
)

// ScreenSanctions screens the client and, for a fresh definitive result,
// records it on the client's latest assessment. A degraded result is returned
// with Screened=false and nothing is persisted. A cached result repeats an
// earlier screen that was already recorded, so it is returned as is.
func (s *Service) ScreenSanctions(ctx context.Context, clientID id.ClientID) (_ *models.ScreeningOutcome, err error) {
	start := time.Now()
	defer s.metrics.ObserveScreening(start)
	ctx, span := s.startSpan(ctx, "assessment.ScreenSanctions", clientID.String())
	defer func() { endSpan(span, err) }()

	staff, err := s.resolveStaff(ctx)
	if err != nil {
		return nil, err
	}
	client, err := s.accessibleClient(ctx, staff, clientID)
	if err != nil {
		return nil, err
	}

	result, err := s.screener.Screen(ctx, screening.Subject{
		ClientID:   client.ID,
		Name:       client.Name,
		Country:    client.Country,
		ClientType: string(client.Type),
	})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, dErrors.Wrap(err, dErrors.CodeTimeout, "sanctions screening timed out")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "sanctions screening failed")
	}
	s.metrics.IncrementScreening(string(result.Status))

	outcome := &models.ScreeningOutcome{
		Screened:     !result.Degraded(),
		ScreenedAt:   result.ScreenedAt,
		Match:        result.Match,
		MatchDetails: result.Details,
		Status:       string(result.Status),
		Cached:       result.Cached,
	}

	if result.Degraded() {
		s.logger.WarnContext(ctx, "sanctions screening degraded",
			"client_id", client.ID.String(),
			"request_id", requestcontext.RequestID(ctx),
		)
		s.emitBestEffort(ctx, audit.Event{
			Action:   string(audit.EventScreeningDegraded),
			Subject:  client.ID.String(),
			ActorID:  staff.ID.String(),
			Decision: string(result.Status),
		})
		return outcome, nil
	}

	if result.Cached {
		s.logger.InfoContext(ctx, "sanctions screening served from cache",
			"client_id", client.ID.String(),
			"screened_at", result.ScreenedAt,
			"request_id", requestcontext.RequestID(ctx),
		)
		return outcome, nil
	}

	details := ""
	if result.Details != nil {
		details = *result.Details
	}
	now := requestcontext.Now(ctx)
	err = s.tx.RunInTx(withTxClient(ctx, client.ID), func(ctx context.Context, stores TxStores) error {
		event := audit.Event{
			Action:   string(audit.EventSanctionsScreened),
			Subject:  client.ID.String(),
			ActorID:  staff.ID.String(),
			Decision: string(result.Status),
			Reason:   details,
		}

		latest, err := stores.Assessments.FindLatestByClient(ctx, client.ID)
		switch {
		case errors.Is(err, sentinel.ErrNotFound):
			return s.emitCompliance(ctx, event)
		case err != nil:
			return translateStoreError(err, "assessment")
		}

		latest.ApplyScreening(result.ScreenedAt, result.Match, details, now)
		if err := stores.Assessments.UpdateScreening(ctx, latest); err != nil {
			return translateStoreError(err, "assessment")
		}
		assessmentID := latest.ID
		outcome.AssessmentID = &assessmentID
		event.ResourceID = latest.ID.String()
		return s.emitCompliance(ctx, event)
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "sanctions screening recorded",
		"client_id", client.ID.String(),
		"status", result.Status,
		"request_id", requestcontext.RequestID(ctx),
	)
	return outcome, nil
}
