package handler

import (
	"amlengine/internal/assessment/models"
)

const dateLayout = "2006-01-02"

// AssessmentResponse renders next_review_date as a calendar date.
type AssessmentResponse struct {
	*models.AssessmentView
	NextReviewDate string `json:"next_review_date"`
}

func toAssessmentResponse(v *models.AssessmentView) *AssessmentResponse {
	if v == nil {
		return nil
	}
	return &AssessmentResponse{
		AssessmentView: v,
		NextReviewDate: v.NextReviewDate.Format(dateLayout),
	}
}

func toAssessmentResponses(views []*models.AssessmentView) []*AssessmentResponse {
	out := make([]*AssessmentResponse, 0, len(views))
	for _, v := range views {
		out = append(out, toAssessmentResponse(v))
	}
	return out
}

type PendingReviewsResponse struct {
	Assessments []*AssessmentResponse `json:"assessments"`
	Pagination  models.Pagination     `json:"pagination"`
}

type DueReviewsResponse struct {
	DaysAhead   int                   `json:"days_ahead"`
	Count       int                   `json:"count"`
	Assessments []*AssessmentResponse `json:"assessments"`
}

type RiskScoreResponse struct {
	*models.RiskScore
	NextReviewDate string `json:"next_review_date"`
}
