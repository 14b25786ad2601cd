package risk

import "github.com/shopspring/decimal"

var fullOwnership = decimal.NewFromInt(100)

// DisclosureWarning is returned when disclosed beneficial ownership is
// incomplete.
const DisclosureWarning = "Total disclosed ownership is less than 100%. Ensure all beneficial owners (25%+ ownership) are disclosed."

// OwnershipCheck summarizes disclosed beneficial ownership. Totals above 100
// are accepted since indirect holdings overlap.
type OwnershipCheck struct {
	TotalPercentage decimal.Decimal `json:"total_percentage"`
	Warning         string          `json:"warning,omitempty"`
}

func CheckOwnership(percentages []decimal.Decimal) OwnershipCheck {
	total := decimal.Sum(decimal.Zero, percentages...)
	check := OwnershipCheck{TotalPercentage: total}
	if total.LessThan(fullOwnership) {
		check.Warning = DisclosureWarning
	}
	return check
}
