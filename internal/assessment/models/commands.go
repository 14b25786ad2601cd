package models

import (
	"fmt"
	"time"

	"amlengine/internal/risk"
	id "amlengine/pkg/domain"
	dErrors "amlengine/pkg/domain-errors"
)

// CreateAssessmentCommand carries caller-computed scores for a new assessment.
type CreateAssessmentCommand struct {
	ClientID        id.ClientID
	ClientTypeRisk  int
	ServiceRisk     int
	GeographicRisk  int
	TransactionRisk int
	TotalRiskScore  int
	RiskRating      risk.Rating

	IsPEP           bool
	PEPCategory     PEPCategory
	PEPPosition     string
	PEPJurisdiction string

	RequiresEDD bool
	EDDReasons  []string

	SanctionsScreened   bool
	SanctionsScreenedAt *time.Time
	SanctionsMatch      bool

	SourceOfFunds        SourceOfFunds
	SourceOfFundsDetails string
	SourceOfWealth       string
	Notes                string
}

// Validate re-checks the declared ranges and enum membership.
func (c CreateAssessmentCommand) Validate() error {
	if c.ClientID.IsNil() {
		return dErrors.New(dErrors.CodeValidation, "client_id is required")
	}
	dims := []struct {
		name  string
		value int
	}{
		{"client_type_risk", c.ClientTypeRisk},
		{"service_risk", c.ServiceRisk},
		{"geographic_risk", c.GeographicRisk},
		{"transaction_risk", c.TransactionRisk},
	}
	for _, d := range dims {
		if d.value < 0 || d.value > risk.DimensionMax {
			return dErrors.New(dErrors.CodeValidation,
				fmt.Sprintf("%s must be between 0 and %d", d.name, risk.DimensionMax))
		}
	}
	if c.TotalRiskScore < 0 || c.TotalRiskScore > risk.TotalMax {
		return dErrors.New(dErrors.CodeValidation,
			fmt.Sprintf("total_risk_score must be between 0 and %d", risk.TotalMax))
	}
	if !c.RiskRating.IsValid() {
		return dErrors.New(dErrors.CodeValidation, "risk_rating must be one of LOW, MEDIUM, HIGH, PROHIBITED")
	}
	if !c.PEPCategory.IsValid() {
		return dErrors.New(dErrors.CodeValidation, "pep_category must be one of DOMESTIC, FOREIGN, INTERNATIONAL_ORG")
	}
	if !c.SourceOfFunds.IsValid() {
		return dErrors.New(dErrors.CodeValidation, "source_of_funds must be one of EMPLOYMENT, BUSINESS, INHERITANCE, INVESTMENTS, OTHER")
	}
	return nil
}

// DecideAssessmentCommand records an approver's decision.
type DecideAssessmentCommand struct {
	AssessmentID id.AssessmentID
	Approved     bool
	Notes        string
}

// Pending review paging bounds.
const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

// PendingReviewsQuery pages through assessments awaiting a decision.
type PendingReviewsQuery struct {
	Page   int
	Limit  int
	Rating risk.Rating
}

// Normalize applies defaults and checks bounds.
func (q *PendingReviewsQuery) Normalize() error {
	if q.Page == 0 {
		q.Page = 1
	}
	if q.Limit == 0 {
		q.Limit = DefaultPageLimit
	}
	if q.Page < 1 {
		return dErrors.New(dErrors.CodeValidation, "page must be at least 1")
	}
	if q.Limit < 1 || q.Limit > MaxPageLimit {
		return dErrors.New(dErrors.CodeValidation, fmt.Sprintf("limit must be between 1 and %d", MaxPageLimit))
	}
	if q.Rating != "" && !q.Rating.IsValid() {
		return dErrors.New(dErrors.CodeValidation, "risk_rating must be one of LOW, MEDIUM, HIGH, PROHIBITED")
	}
	return nil
}

func (q PendingReviewsQuery) Offset() int {
	return (q.Page - 1) * q.Limit
}

// Review horizon bounds, in days.
const (
	DefaultDaysAhead = 30
	MaxDaysAhead     = 365
)

// NormalizeDaysAhead applies the default horizon and checks bounds.
func NormalizeDaysAhead(days int) (int, error) {
	if days == 0 {
		return DefaultDaysAhead, nil
	}
	if days < 1 || days > MaxDaysAhead {
		return 0, dErrors.New(dErrors.CodeValidation, fmt.Sprintf("days_ahead must be between 1 and %d", MaxDaysAhead))
	}
	return days, nil
}
