package risk

import (
	"slices"

	"github.com/shopspring/decimal"
)

// ClientType classifies a client for the client-type dimension.
type ClientType string

const (
	ClientTypeIndividual      ClientType = "INDIVIDUAL"
	ClientTypeSmallBusiness   ClientType = "SMALL_BUSINESS"
	ClientTypeCorporation     ClientType = "CORPORATION"
	ClientTypeNGO             ClientType = "NGO"
	ClientTypeCoop            ClientType = "COOP"
	ClientTypeCreditUnion     ClientType = "CREDIT_UNION"
	ClientTypeForeignNational ClientType = "FOREIGN_NATIONAL"
	ClientTypeInvestor        ClientType = "INVESTOR"
)

var clientTypes = []ClientType{
	ClientTypeIndividual,
	ClientTypeSmallBusiness,
	ClientTypeCorporation,
	ClientTypeNGO,
	ClientTypeCoop,
	ClientTypeCreditUnion,
	ClientTypeForeignNational,
	ClientTypeInvestor,
}

func (t ClientType) IsValid() bool {
	return slices.Contains(clientTypes, t)
}

func (t ClientType) String() string { return string(t) }

// Rating is the classification band derived from a total score.
type Rating string

const (
	RatingLow        Rating = "LOW"
	RatingMedium     Rating = "MEDIUM"
	RatingHigh       Rating = "HIGH"
	RatingProhibited Rating = "PROHIBITED"
)

func (r Rating) IsValid() bool {
	switch r {
	case RatingLow, RatingMedium, RatingHigh, RatingProhibited:
		return true
	}
	return false
}

// IsElevated reports whether the rating needs a human decision.
func (r Rating) IsElevated() bool {
	return r == RatingHigh || r == RatingProhibited
}

// ClientSnapshot is the rating stored on the client record. PROHIBITED is
// shown as HIGH there; the assessment keeps the true value.
func (r Rating) ClientSnapshot() Rating {
	if r == RatingProhibited {
		return RatingHigh
	}
	return r
}

func (r Rating) String() string { return string(r) }

// Dimension scores are each in [0, DimensionMax]; totals in [0, TotalMax].
const (
	DimensionMax = 25
	TotalMax     = 4 * DimensionMax
)

// Rating band lower bounds, inclusive.
const (
	MediumThreshold     = 34
	HighThreshold       = 67
	ProhibitedThreshold = 85
)

// Reasons appended when an enhanced due diligence rule fires. Order of
// evaluation is the order listed here.
const (
	ReasonHighRating       = "High risk rating requires enhanced due diligence"
	ReasonPEP              = "Client or beneficial owner is a Politically Exposed Person (PEP)"
	ReasonHighRiskCountry  = "Client from high-risk geographic jurisdiction"
	ReasonLargeInvestment  = "Large investment amount exceeds GYD 5,000,000"
	ReasonPEPImmigration   = "PEP requesting immigration services"
	ReasonComplexStructure = "Complex corporate structure with multiple PEPs in ownership"
)

var (
	largeAmount    = decimal.NewFromInt(5_000_000)
	moderateAmount = decimal.NewFromInt(1_000_000)
)

// Input carries the facts scored by the calculator.
type Input struct {
	ClientType          ClientType
	ServiceTypes        []string
	Country             string
	IsPEP               bool
	HasBeneficialOwners bool
	PEPCount            int
	TransactionAmount   *decimal.Decimal
	// IsFirstTimeClient is recorded but carries no weight.
	IsFirstTimeClient bool
}

// Result is the scored outcome. RequiresEDD is true iff EDDReasons is non-empty.
type Result struct {
	ClientTypeRisk  int      `json:"client_type_risk"`
	ServiceRisk     int      `json:"service_risk"`
	GeographicRisk  int      `json:"geographic_risk"`
	TransactionRisk int      `json:"transaction_risk"`
	TotalScore      int      `json:"total_score"`
	Rating          Rating   `json:"rating"`
	RequiresEDD     bool     `json:"requires_edd"`
	EDDReasons      []string `json:"edd_reasons"`
}
