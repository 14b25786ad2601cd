package models

import (
	"time"

	dirmodels "amlengine/internal/directory/models"
	"amlengine/internal/risk"
	id "amlengine/pkg/domain"
)

// AssessmentView is an assessment with its staff and client references resolved.
type AssessmentView struct {
	*AmlAssessment
	Assessor *dirmodels.StaffSummary  `json:"assessor,omitempty"`
	Approver *dirmodels.StaffSummary  `json:"approver,omitempty"`
	Client   *dirmodels.ClientSummary `json:"client,omitempty"`
}

type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

func NewPagination(page, limit, total int) Pagination {
	return Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: (total + limit - 1) / limit,
	}
}

type PendingReviewsPage struct {
	Assessments []*AssessmentView `json:"assessments"`
	Pagination  Pagination        `json:"pagination"`
}

// PendingFilter selects PENDING assessments for clients in ClientIDs.
type PendingFilter struct {
	ClientIDs []id.ClientID
	Rating    risk.Rating
	Offset    int
	Limit     int
}

// DueFilter selects assessments with NextReviewDate in [From, To], inclusive.
type DueFilter struct {
	ClientIDs []id.ClientID
	From      time.Time
	To        time.Time
}

// ScreeningOutcome is returned from a sanctions screening request.
type ScreeningOutcome struct {
	Screened     bool             `json:"screened"`
	ScreenedAt   time.Time        `json:"screened_at"`
	Match        bool             `json:"match"`
	MatchDetails *string          `json:"match_details"`
	Status       string           `json:"status"`
	Cached       bool             `json:"cached,omitempty"`
	AssessmentID *id.AssessmentID `json:"assessment_id,omitempty"`
}

// RiskScore is a calculator result with the review date the scheduler
// would assign to it.
type RiskScore struct {
	risk.Result
	NextReviewDate time.Time            `json:"next_review_date"`
	Ownership      *risk.OwnershipCheck `json:"ownership,omitempty"`
}
