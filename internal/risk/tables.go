package risk

import (
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"
)

// Tables is the weighting configuration used by the Calculator. It is
// treated as immutable once handed to NewCalculator.
type Tables struct {
	ClientTypeWeights map[ClientType]int `yaml:"client_type_weights"`
	ClientTypeDefault int                `yaml:"client_type_default"`

	ServiceWeights  map[string]int `yaml:"service_weights"`
	ServiceFallback int            `yaml:"service_fallback"`
	ServiceFloor    int            `yaml:"service_floor"`

	HomeJurisdiction   string   `yaml:"home_jurisdiction"`
	HomeRisk           int      `yaml:"home_risk"`
	HighRiskCountries  []string `yaml:"high_risk_countries"`
	HighRiskRisk       int      `yaml:"high_risk_risk"`
	OtherCountryRisk   int      `yaml:"other_country_risk"`
	ImmigrationService []string `yaml:"immigration_services"`
}

// DefaultTables returns the firm's standard weights and the FATF-derived
// high-risk country list.
func DefaultTables() Tables {
	return Tables{
		ClientTypeWeights: map[ClientType]int{
			ClientTypeIndividual:      5,
			ClientTypeSmallBusiness:   10,
			ClientTypeCorporation:     15,
			ClientTypeNGO:             12,
			ClientTypeCoop:            10,
			ClientTypeCreditUnion:     12,
			ClientTypeForeignNational: 20,
			ClientTypeInvestor:        25,
		},
		ClientTypeDefault: 10,
		ServiceWeights: map[string]int{
			"TRAINING":              5,
			"CONSULTING":            8,
			"PARALEGAL":             10,
			"IMMIGRATION":           18,
			"BUSINESS_REGISTRATION": 15,
			"BUSINESS_PROPOSAL":     15,
			"TAX_RETURN":            12,
			"COMPLIANCE":            10,
			"PAYE":                  10,
			"FINANCIAL_STATEMENT":   12,
			"NIS_SERVICES":          8,
			"BOOKKEEPING":           10,
			"AUDIT":                 15,
		},
		ServiceFallback:  10,
		ServiceFloor:     5,
		HomeJurisdiction: "Guyana",
		HomeRisk:         5,
		HighRiskCountries: []string{
			// blacklist
			"Iran", "North Korea", "Myanmar",
			// greylist
			"Syria", "Yemen", "Afghanistan", "Pakistan", "Uganda", "Philippines",
			"Panama", "Haiti", "Jamaica", "South Sudan", "Mali", "Mozambique",
			"Tanzania", "Turkey", "Democratic Republic of Congo", "Senegal",
		},
		HighRiskRisk:       25,
		OtherCountryRisk:   10,
		ImmigrationService: []string{"IMMIGRATION"},
	}
}

// LoadTables reads a YAML override file and merges it over DefaultTables.
// Maps are merged key by key; lists and scalars replace the default when set.
func LoadTables(path string) (Tables, error) {
	t := DefaultTables()
	if path == "" {
		return t, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return Tables{}, fmt.Errorf("read risk tables: %w", err)
	}
	var override Tables
	if err := yaml.Unmarshal(raw, &override); err != nil {
		return Tables{}, fmt.Errorf("parse risk tables: %w", err)
	}
	t.merge(override)
	if err := t.Validate(); err != nil {
		return Tables{}, err
	}
	return t, nil
}

func (t *Tables) merge(o Tables) {
	for k, v := range o.ClientTypeWeights {
		t.ClientTypeWeights[k] = v
	}
	for k, v := range o.ServiceWeights {
		t.ServiceWeights[k] = v
	}
	if o.ClientTypeDefault != 0 {
		t.ClientTypeDefault = o.ClientTypeDefault
	}
	if o.ServiceFallback != 0 {
		t.ServiceFallback = o.ServiceFallback
	}
	if o.ServiceFloor != 0 {
		t.ServiceFloor = o.ServiceFloor
	}
	if o.HomeJurisdiction != "" {
		t.HomeJurisdiction = o.HomeJurisdiction
	}
	if o.HomeRisk != 0 {
		t.HomeRisk = o.HomeRisk
	}
	if o.HighRiskRisk != 0 {
		t.HighRiskRisk = o.HighRiskRisk
	}
	if o.OtherCountryRisk != 0 {
		t.OtherCountryRisk = o.OtherCountryRisk
	}
	if len(o.HighRiskCountries) > 0 {
		t.HighRiskCountries = slices.Clone(o.HighRiskCountries)
	}
	if len(o.ImmigrationService) > 0 {
		t.ImmigrationService = slices.Clone(o.ImmigrationService)
	}
}

// Validate checks every weight lies within a single dimension's range.
func (t Tables) Validate() error {
	check := func(name string, v int) error {
		if v < 0 || v > DimensionMax {
			return fmt.Errorf("risk table %s=%d outside [0,%d]", name, v, DimensionMax)
		}
		return nil
	}
	for k, v := range t.ClientTypeWeights {
		if !k.IsValid() {
			return fmt.Errorf("risk table has unknown client type %q", k)
		}
		if err := check("client_type_weights."+string(k), v); err != nil {
			return err
		}
	}
	for k, v := range t.ServiceWeights {
		if err := check("service_weights."+k, v); err != nil {
			return err
		}
	}
	scalars := []struct {
		name string
		v    int
	}{
		{"client_type_default", t.ClientTypeDefault},
		{"service_fallback", t.ServiceFallback},
		{"service_floor", t.ServiceFloor},
		{"home_risk", t.HomeRisk},
		{"high_risk_risk", t.HighRiskRisk},
		{"other_country_risk", t.OtherCountryRisk},
	}
	for _, s := range scalars {
		if err := check(s.name, s.v); err != nil {
			return err
		}
	}
	if t.HomeJurisdiction == "" {
		return fmt.Errorf("risk table home_jurisdiction is required")
	}
	return nil
}

func (t Tables) clone() Tables {
	c := t
	c.ClientTypeWeights = make(map[ClientType]int, len(t.ClientTypeWeights))
	for k, v := range t.ClientTypeWeights {
		c.ClientTypeWeights[k] = v
	}
	c.ServiceWeights = make(map[string]int, len(t.ServiceWeights))
	for k, v := range t.ServiceWeights {
		c.ServiceWeights[k] = v
	}
	c.HighRiskCountries = slices.Clone(t.HighRiskCountries)
	c.ImmigrationService = slices.Clone(t.ImmigrationService)
	return c
}
