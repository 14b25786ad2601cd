package models

// Status is the workflow position of an assessment.
type Status string

const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
	// StatusUnderReview is accepted from storage but no transition produces it.
	StatusUnderReview Status = "UNDER_REVIEW"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusUnderReview:
		return true
	}
	return false
}

func (s Status) IsTerminal() bool {
	return s == StatusApproved || s == StatusRejected
}

func (s Status) String() string { return string(s) }

type PEPCategory string

const (
	PEPCategoryDomestic         PEPCategory = "DOMESTIC"
	PEPCategoryForeign          PEPCategory = "FOREIGN"
	PEPCategoryInternationalOrg PEPCategory = "INTERNATIONAL_ORG"
)

// IsValid accepts the empty category, which means none was recorded.
func (c PEPCategory) IsValid() bool {
	switch c {
	case "", PEPCategoryDomestic, PEPCategoryForeign, PEPCategoryInternationalOrg:
		return true
	}
	return false
}

type SourceOfFunds string

const (
	SourceEmployment  SourceOfFunds = "EMPLOYMENT"
	SourceBusiness    SourceOfFunds = "BUSINESS"
	SourceInheritance SourceOfFunds = "INHERITANCE"
	SourceInvestments SourceOfFunds = "INVESTMENTS"
	SourceOther       SourceOfFunds = "OTHER"
)

// IsValid accepts the empty value, which means none was recorded.
func (s SourceOfFunds) IsValid() bool {
	switch s {
	case "", SourceEmployment, SourceBusiness, SourceInheritance, SourceInvestments, SourceOther:
		return true
	}
	return false
}
