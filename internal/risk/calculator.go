// Package risk scores clients across four weighted dimensions and schedules
// periodic re-review. Everything here is pure and safe for concurrent use.
package risk

import (
	"slices"
)

// Calculator scores Input against a fixed set of Tables.
type Calculator struct {
	tables    Tables
	highRisk  map[string]struct{}
	immigrate map[string]struct{}
}

// NewCalculator copies t so later changes by the caller are not observed.
func NewCalculator(t Tables) *Calculator {
	t = t.clone()
	return &Calculator{
		tables:    t,
		highRisk:  toSet(t.HighRiskCountries),
		immigrate: toSet(t.ImmigrationService),
	}
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

// Calculate scores the input. It is total over well-typed input; enum and
// range checks belong to the caller.
func (c *Calculator) Calculate(in Input) Result {
	highRiskCountry := c.IsHighRiskCountry(in.Country)

	res := Result{
		ClientTypeRisk:  c.clientTypeRisk(in.ClientType),
		ServiceRisk:     c.serviceRisk(in.ServiceTypes),
		GeographicRisk:  c.geographicRisk(in.Country, highRiskCountry),
		TransactionRisk: transactionRisk(in),
	}
	res.TotalScore = res.ClientTypeRisk + res.ServiceRisk + res.GeographicRisk + res.TransactionRisk
	res.Rating = RatingFor(res.TotalScore)
	res.EDDReasons = c.eddReasons(in, res.Rating, highRiskCountry)
	res.RequiresEDD = len(res.EDDReasons) > 0
	return res
}

// IsHighRiskCountry matches the country name exactly against the table.
func (c *Calculator) IsHighRiskCountry(country string) bool {
	_, ok := c.highRisk[country]
	return ok
}

func (c *Calculator) clientTypeRisk(t ClientType) int {
	if w, ok := c.tables.ClientTypeWeights[t]; ok {
		return w
	}
	return c.tables.ClientTypeDefault
}

// serviceRisk is the riskiest requested service, floored and capped.
func (c *Calculator) serviceRisk(services []string) int {
	risk := fold(services, c.tables.ServiceFloor, func(acc int, code string) int {
		w, ok := c.tables.ServiceWeights[code]
		if !ok {
			w = c.tables.ServiceFallback
		}
		return max(acc, w)
	})
	return min(risk, DimensionMax)
}

func fold[T, A any](xs []T, init A, f func(A, T) A) A {
	acc := init
	for _, x := range xs {
		acc = f(acc, x)
	}
	return acc
}

func (c *Calculator) geographicRisk(country string, highRisk bool) int {
	switch {
	case highRisk:
		return c.tables.HighRiskRisk
	case country == c.tables.HomeJurisdiction:
		return c.tables.HomeRisk
	default:
		return c.tables.OtherCountryRisk
	}
}

func transactionRisk(in Input) int {
	risk := 0
	if in.IsPEP {
		risk += 15
	}
	if in.PEPCount > 1 {
		risk += 5
	}
	if amt := in.TransactionAmount; amt != nil {
		switch {
		case amt.GreaterThan(largeAmount):
			risk += 10
		case amt.GreaterThan(moderateAmount):
			risk += 5
		}
	}
	if in.HasBeneficialOwners && in.PEPCount > 2 {
		risk += 5
	}
	return min(risk, DimensionMax)
}

// eddReasons evaluates every rule without short-circuiting.
func (c *Calculator) eddReasons(in Input, rating Rating, highRiskCountry bool) []string {
	reasons := []string{}
	if rating.IsElevated() {
		reasons = append(reasons, ReasonHighRating)
	}
	if in.IsPEP {
		reasons = append(reasons, ReasonPEP)
	}
	if highRiskCountry {
		reasons = append(reasons, ReasonHighRiskCountry)
	}
	if in.ClientType == ClientTypeInvestor && in.TransactionAmount != nil && in.TransactionAmount.GreaterThan(largeAmount) {
		reasons = append(reasons, ReasonLargeInvestment)
	}
	if in.IsPEP && slices.ContainsFunc(in.ServiceTypes, c.isImmigration) {
		reasons = append(reasons, ReasonPEPImmigration)
	}
	if in.HasBeneficialOwners && in.PEPCount > 2 && in.ClientType == ClientTypeCorporation {
		reasons = append(reasons, ReasonComplexStructure)
	}
	return reasons
}

func (c *Calculator) isImmigration(code string) bool {
	_, ok := c.immigrate[code]
	return ok
}

// RatingFor maps a total score to its band. Lower bounds are inclusive.
func RatingFor(total int) Rating {
	switch {
	case total >= ProhibitedThreshold:
		return RatingProhibited
	case total >= HighThreshold:
		return RatingHigh
	case total >= MediumThreshold:
		return RatingMedium
	default:
		return RatingLow
	}
}
