package models

import (
	"fmt"
	"slices"
	"time"

	"amlengine/internal/risk"
	id "amlengine/pkg/domain"
	dErrors "amlengine/pkg/domain-errors"
)

// AmlAssessment is one risk assessment event for a client.
//
// Invariants:
//   - each dimension score is in [0,25] and TotalRiskScore in [0,100]
//   - Status starts PENDING for HIGH/PROHIBITED ratings and APPROVED otherwise
//   - a decision sets ApprovedBy and ApprovedAt; RejectionReason is only set
//     when rejected
//   - rows are never deleted; a later assessment supersedes, it does not overwrite
//
// Scores and rating are supplied by the caller, which computes them with
// risk.Calculator. NextReviewDate is derived here from the supplied rating.
type AmlAssessment struct {
	ID             id.AssessmentID `json:"id"`
	ClientID       id.ClientID     `json:"client_id"`
	AssessedBy     id.StaffID      `json:"assessed_by"`
	AssessmentDate time.Time       `json:"assessment_date"`

	ClientTypeRisk  int         `json:"client_type_risk"`
	ServiceRisk     int         `json:"service_risk"`
	GeographicRisk  int         `json:"geographic_risk"`
	TransactionRisk int         `json:"transaction_risk"`
	TotalRiskScore  int         `json:"total_risk_score"`
	RiskRating      risk.Rating `json:"risk_rating"`

	IsPEP           bool        `json:"is_pep"`
	PEPCategory     PEPCategory `json:"pep_category,omitempty"`
	PEPPosition     string      `json:"pep_position,omitempty"`
	PEPJurisdiction string      `json:"pep_jurisdiction,omitempty"`

	RequiresEDD    bool       `json:"requires_edd"`
	EDDReasons     []string   `json:"edd_reasons"`
	EDDCompletedAt *time.Time `json:"edd_completed_at,omitempty"`

	SanctionsScreened   bool       `json:"sanctions_screened"`
	SanctionsScreenedAt *time.Time `json:"sanctions_screened_at,omitempty"`
	SanctionsMatch      bool       `json:"sanctions_match"`
	SanctionsDetails    string     `json:"sanctions_details,omitempty"`

	SourceOfFunds        SourceOfFunds `json:"source_of_funds,omitempty"`
	SourceOfFundsDetails string        `json:"source_of_funds_details,omitempty"`
	SourceOfWealth       string        `json:"source_of_wealth,omitempty"`

	Status          Status      `json:"status"`
	ApprovedBy      *id.StaffID `json:"approved_by,omitempty"`
	ApprovedAt      *time.Time  `json:"approved_at,omitempty"`
	RejectionReason string      `json:"rejection_reason,omitempty"`

	NextReviewDate time.Time `json:"next_review_date"`
	Notes          string    `json:"notes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// InitialStatus is PENDING for ratings that need a human decision.
func InitialStatus(r risk.Rating) Status {
	if r.IsElevated() {
		return StatusPending
	}
	return StatusApproved
}

// NewAssessment validates cmd and builds the assessment as created by
// assessor at now.
func NewAssessment(assessmentID id.AssessmentID, assessor id.StaffID, cmd CreateAssessmentCommand, now time.Time) (*AmlAssessment, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	return &AmlAssessment{
		ID:                   assessmentID,
		ClientID:             cmd.ClientID,
		AssessedBy:           assessor,
		AssessmentDate:       now,
		ClientTypeRisk:       cmd.ClientTypeRisk,
		ServiceRisk:          cmd.ServiceRisk,
		GeographicRisk:       cmd.GeographicRisk,
		TransactionRisk:      cmd.TransactionRisk,
		TotalRiskScore:       cmd.TotalRiskScore,
		RiskRating:           cmd.RiskRating,
		IsPEP:                cmd.IsPEP,
		PEPCategory:          cmd.PEPCategory,
		PEPPosition:          cmd.PEPPosition,
		PEPJurisdiction:      cmd.PEPJurisdiction,
		RequiresEDD:          cmd.RequiresEDD,
		EDDReasons:           append([]string{}, cmd.EDDReasons...),
		SanctionsScreened:    cmd.SanctionsScreened,
		SanctionsScreenedAt:  cmd.SanctionsScreenedAt,
		SanctionsMatch:       cmd.SanctionsMatch,
		SourceOfFunds:        cmd.SourceOfFunds,
		SourceOfFundsDetails: cmd.SourceOfFundsDetails,
		SourceOfWealth:       cmd.SourceOfWealth,
		Status:               InitialStatus(cmd.RiskRating),
		NextReviewDate:       risk.NextReviewDate(cmd.RiskRating, now),
		Notes:                cmd.Notes,
		CreatedAt:            now,
		UpdatedAt:            now,
	}, nil
}

// CanDecide checks whether a decision may be recorded. Re-deciding a terminal
// assessment is allowed unless strict is set.
func (a *AmlAssessment) CanDecide(strict bool) error {
	if strict && a.Status != StatusPending {
		return dErrors.New(dErrors.CodeConflict,
			fmt.Sprintf("assessment is %s, only PENDING assessments can be decided", a.Status))
	}
	return nil
}

// ApplyDecision records an approval or rejection. No re-scoring happens.
func (a *AmlAssessment) ApplyDecision(approved bool, approver id.StaffID, notes string, now time.Time) {
	if approved {
		a.Status = StatusApproved
		a.RejectionReason = ""
	} else {
		a.Status = StatusRejected
		a.RejectionReason = notes
	}
	a.ApprovedBy = &approver
	at := now
	a.ApprovedAt = &at
	a.UpdatedAt = now
}

// ApplyScreening records a definitive sanctions screening outcome.
func (a *AmlAssessment) ApplyScreening(screenedAt time.Time, match bool, details string, now time.Time) {
	at := screenedAt
	a.SanctionsScreened = true
	a.SanctionsScreenedAt = &at
	a.SanctionsMatch = match
	a.SanctionsDetails = details
	a.UpdatedAt = now
}

// Clone returns a deep copy so stores never hand out shared state.
func (a *AmlAssessment) Clone() *AmlAssessment {
	cp := *a
	cp.EDDReasons = slices.Clone(a.EDDReasons)
	if a.EDDCompletedAt != nil {
		t := *a.EDDCompletedAt
		cp.EDDCompletedAt = &t
	}
	if a.SanctionsScreenedAt != nil {
		t := *a.SanctionsScreenedAt
		cp.SanctionsScreenedAt = &t
	}
	if a.ApprovedBy != nil {
		s := *a.ApprovedBy
		cp.ApprovedBy = &s
	}
	if a.ApprovedAt != nil {
		t := *a.ApprovedAt
		cp.ApprovedAt = &t
	}
	return &cp
}
