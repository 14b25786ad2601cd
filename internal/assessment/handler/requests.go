package handler

import (
	"time"

	"github.com/shopspring/decimal"

	"amlengine/internal/assessment/models"
	"amlengine/internal/risk"
	id "amlengine/pkg/domain"
	dErrors "amlengine/pkg/domain-errors"
	strutil "amlengine/pkg/platform/strings"
	"amlengine/pkg/platform/validation"
)

// RiskScoreRequest is the body of POST /aml/risk-score.
type RiskScoreRequest struct {
	ClientType           string            `json:"client_type" validate:"required,oneof=INDIVIDUAL SMALL_BUSINESS CORPORATION NGO COOP CREDIT_UNION FOREIGN_NATIONAL INVESTOR"`
	ServiceTypes         []string          `json:"service_types" validate:"max=50,dive,max=64"`
	Country              string            `json:"country" validate:"required,max=100"`
	IsPEP                bool              `json:"is_pep"`
	HasBeneficialOwners  bool              `json:"has_beneficial_owners"`
	PEPCount             int               `json:"pep_count" validate:"min=0,max=1000"`
	TransactionAmount    *decimal.Decimal  `json:"transaction_amount"`
	IsFirstTimeClient    bool              `json:"is_first_time_client"`
	OwnershipPercentages []decimal.Decimal `json:"ownership_percentages"`
}

func (r *RiskScoreRequest) Validate() error {
	r.ServiceTypes = strutil.DedupeAndTrim(r.ServiceTypes)
	if err := validation.Struct(r); err != nil {
		return err
	}
	if r.TransactionAmount != nil && r.TransactionAmount.IsNegative() {
		return dErrors.New(dErrors.CodeValidation, "transaction_amount must not be negative")
	}
	for _, p := range r.OwnershipPercentages {
		if p.IsNegative() || p.GreaterThan(decimal.NewFromInt(100)) {
			return dErrors.New(dErrors.CodeValidation, "ownership_percentages must be between 0 and 100")
		}
	}
	return nil
}

func (r *RiskScoreRequest) input() risk.Input {
	return risk.Input{
		ClientType:          risk.ClientType(r.ClientType),
		ServiceTypes:        r.ServiceTypes,
		Country:             r.Country,
		IsPEP:               r.IsPEP,
		HasBeneficialOwners: r.HasBeneficialOwners,
		PEPCount:            r.PEPCount,
		TransactionAmount:   r.TransactionAmount,
		IsFirstTimeClient:   r.IsFirstTimeClient,
	}
}

// CreateAssessmentRequest is the body of POST /aml/assessments. Scores are
// the ones returned by /aml/risk-score; they are range-checked, not recomputed.
type CreateAssessmentRequest struct {
	ClientID        string `json:"client_id" validate:"required"`
	ClientTypeRisk  int    `json:"client_type_risk" validate:"min=0,max=25"`
	ServiceRisk     int    `json:"service_risk" validate:"min=0,max=25"`
	GeographicRisk  int    `json:"geographic_risk" validate:"min=0,max=25"`
	TransactionRisk int    `json:"transaction_risk" validate:"min=0,max=25"`
	TotalRiskScore  int    `json:"total_risk_score" validate:"min=0,max=100"`
	RiskRating      string `json:"risk_rating" validate:"required,oneof=LOW MEDIUM HIGH PROHIBITED"`

	IsPEP           bool   `json:"is_pep"`
	PEPCategory     string `json:"pep_category" validate:"omitempty,oneof=DOMESTIC FOREIGN INTERNATIONAL_ORG"`
	PEPPosition     string `json:"pep_position" validate:"max=255"`
	PEPJurisdiction string `json:"pep_jurisdiction" validate:"max=100"`

	RequiresEDD bool     `json:"requires_edd"`
	EDDReasons  []string `json:"edd_reasons" validate:"max=20,dive,max=500"`

	SanctionsScreened   bool       `json:"sanctions_screened"`
	SanctionsScreenedAt *time.Time `json:"sanctions_screened_at"`
	SanctionsMatch      bool       `json:"sanctions_match"`

	SourceOfFunds        string `json:"source_of_funds" validate:"omitempty,oneof=EMPLOYMENT BUSINESS INHERITANCE INVESTMENTS OTHER"`
	SourceOfFundsDetails string `json:"source_of_funds_details" validate:"max=2000"`
	SourceOfWealth       string `json:"source_of_wealth" validate:"max=2000"`
	Notes                string `json:"notes" validate:"max=5000"`

	clientID id.ClientID
}

func (r *CreateAssessmentRequest) Validate() error {
	if err := validation.Struct(r); err != nil {
		return err
	}
	clientID, err := id.ParseClientID(r.ClientID)
	if err != nil {
		return err
	}
	r.clientID = clientID
	return nil
}

func (r *CreateAssessmentRequest) command() models.CreateAssessmentCommand {
	return models.CreateAssessmentCommand{
		ClientID:             r.clientID,
		ClientTypeRisk:       r.ClientTypeRisk,
		ServiceRisk:          r.ServiceRisk,
		GeographicRisk:       r.GeographicRisk,
		TransactionRisk:      r.TransactionRisk,
		TotalRiskScore:       r.TotalRiskScore,
		RiskRating:           risk.Rating(r.RiskRating),
		IsPEP:                r.IsPEP,
		PEPCategory:          models.PEPCategory(r.PEPCategory),
		PEPPosition:          r.PEPPosition,
		PEPJurisdiction:      r.PEPJurisdiction,
		RequiresEDD:          r.RequiresEDD,
		EDDReasons:           r.EDDReasons,
		SanctionsScreened:    r.SanctionsScreened,
		SanctionsScreenedAt:  r.SanctionsScreenedAt,
		SanctionsMatch:       r.SanctionsMatch,
		SourceOfFunds:        models.SourceOfFunds(r.SourceOfFunds),
		SourceOfFundsDetails: r.SourceOfFundsDetails,
		SourceOfWealth:       r.SourceOfWealth,
		Notes:                r.Notes,
	}
}

// DecisionRequest is the body of POST /aml/assessments/{id}/decision.
type DecisionRequest struct {
	Approved *bool  `json:"approved" validate:"required"`
	Notes    string `json:"notes" validate:"max=2000"`
}

func (r *DecisionRequest) Validate() error {
	return validation.Struct(r)
}
