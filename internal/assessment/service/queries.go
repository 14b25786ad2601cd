package service

import (
	"context"
	"errors"
	"time"

	"amlengine/internal/assessment/models"
	dirmodels "amlengine/internal/directory/models"
	id "amlengine/pkg/domain"
	"amlengine/pkg/platform/sentinel"
	"amlengine/pkg/requestcontext"
)

// GetAssessment returns the client's most recent assessment, or nil when the
// client has never been assessed.
func (s *Service) GetAssessment(ctx context.Context, clientID id.ClientID) (_ *models.AssessmentView, err error) {
	ctx, span := s.startSpan(ctx, "assessment.Get", clientID.String())
	defer func() { endSpan(span, err) }()

	staff, err := s.resolveStaff(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := s.accessibleClient(ctx, staff, clientID); err != nil {
		return nil, err
	}

	latest, err := s.assessments.FindLatestByClient(ctx, clientID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, nil
		}
		return nil, translateStoreError(err, "assessment")
	}
	views, err := s.toViews(ctx, []*models.AmlAssessment{latest}, false)
	if err != nil {
		return nil, err
	}
	return views[0], nil
}

// GetAssessmentHistory returns every assessment for the client, most recent first.
func (s *Service) GetAssessmentHistory(ctx context.Context, clientID id.ClientID) (_ []*models.AssessmentView, err error) {
	ctx, span := s.startSpan(ctx, "assessment.History", clientID.String())
	defer func() { endSpan(span, err) }()

	staff, err := s.resolveStaff(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := s.accessibleClient(ctx, staff, clientID); err != nil {
		return nil, err
	}

	history, err := s.assessments.ListByClient(ctx, clientID)
	if err != nil {
		return nil, translateStoreError(err, "assessments")
	}
	return s.toViews(ctx, history, false)
}

// GetPendingReviews pages through PENDING assessments for clients the admin
// can access, most recent first.
func (s *Service) GetPendingReviews(ctx context.Context, q models.PendingReviewsQuery) (_ *models.PendingReviewsPage, err error) {
	ctx, span := s.startSpan(ctx, "assessment.PendingReviews", "")
	defer func() { endSpan(span, err) }()

	admin, err := s.requireAdmin(ctx)
	if err != nil {
		return nil, err
	}
	if err := q.Normalize(); err != nil {
		return nil, err
	}

	clientIDs, err := s.accessibleClientIDs(ctx, admin)
	if err != nil {
		return nil, err
	}
	pending, total, err := s.assessments.ListPending(ctx, models.PendingFilter{
		ClientIDs: clientIDs,
		Rating:    q.Rating,
		Offset:    q.Offset(),
		Limit:     q.Limit,
	})
	if err != nil {
		return nil, translateStoreError(err, "assessments")
	}
	views, err := s.toViews(ctx, pending, true)
	if err != nil {
		return nil, err
	}
	return &models.PendingReviewsPage{
		Assessments: views,
		Pagination:  models.NewPagination(q.Page, q.Limit, total),
	}, nil
}

// ClientsRequiringReview lists assessments whose next review date falls
// between today and today+daysAhead inclusive, soonest first. A zero
// daysAhead means the default horizon.
func (s *Service) ClientsRequiringReview(ctx context.Context, daysAhead int) (_ []*models.AssessmentView, err error) {
	ctx, span := s.startSpan(ctx, "assessment.DueReviews", "")
	defer func() { endSpan(span, err) }()

	staff, err := s.resolveStaff(ctx)
	if err != nil {
		return nil, err
	}
	days, err := models.NormalizeDaysAhead(daysAhead)
	if err != nil {
		return nil, err
	}

	clientIDs, err := s.accessibleClientIDs(ctx, staff)
	if err != nil {
		return nil, err
	}
	now := requestcontext.Now(ctx)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	due, err := s.assessments.ListDue(ctx, models.DueFilter{
		ClientIDs: clientIDs,
		From:      today,
		To:        today.AddDate(0, 0, days),
	})
	if err != nil {
		return nil, translateStoreError(err, "assessments")
	}
	return s.toViews(ctx, due, true)
}

// toViews resolves staff references, and the client when withClient is set.
// A reference that no longer resolves is left nil.
func (s *Service) toViews(ctx context.Context, list []*models.AmlAssessment, withClient bool) ([]*models.AssessmentView, error) {
	views := make([]*models.AssessmentView, 0, len(list))
	if len(list) == 0 {
		return views, nil
	}

	staffIDs := make([]id.StaffID, 0, len(list))
	seenStaff := make(map[id.StaffID]struct{})
	addStaff := func(staffID id.StaffID) {
		if _, ok := seenStaff[staffID]; !ok {
			seenStaff[staffID] = struct{}{}
			staffIDs = append(staffIDs, staffID)
		}
	}
	clientIDs := make([]id.ClientID, 0, len(list))
	seenClients := make(map[id.ClientID]struct{})
	for _, a := range list {
		addStaff(a.AssessedBy)
		if a.ApprovedBy != nil {
			addStaff(*a.ApprovedBy)
		}
		if _, ok := seenClients[a.ClientID]; !ok {
			seenClients[a.ClientID] = struct{}{}
			clientIDs = append(clientIDs, a.ClientID)
		}
	}

	staffByID, err := s.staff.FindByIDs(ctx, staffIDs)
	if err != nil {
		return nil, translateStoreError(err, "staff")
	}
	var clientsByID map[id.ClientID]*dirmodels.Client
	if withClient {
		clientsByID, err = s.clients.FindByIDs(ctx, clientIDs)
		if err != nil {
			return nil, translateStoreError(err, "clients")
		}
	}

	for _, a := range list {
		v := &models.AssessmentView{AmlAssessment: a}
		if st, ok := staffByID[a.AssessedBy]; ok {
			summary := st.Summary()
			v.Assessor = &summary
		}
		if a.ApprovedBy != nil {
			if st, ok := staffByID[*a.ApprovedBy]; ok {
				summary := st.Summary()
				v.Approver = &summary
			}
		}
		if c, ok := clientsByID[a.ClientID]; ok {
			summary := c.Summary()
			v.Client = &summary
		}
		views = append(views, v)
	}
	return views, nil
}
