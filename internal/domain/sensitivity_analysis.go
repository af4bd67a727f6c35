package domain

import (
	"github.com/shopspring/decimal"
)

// Sweepable reform parameters.
const (
	ParamThreshold = "threshold"
	ParamTaxRate   = "tax_rate"
)

// Sweep scales.
const (
	ScaleLinear = "linear"
	ScaleLog    = "log"
)

// SensitivityParameter describes a reform parameter to sweep
type SensitivityParameter struct {
	Name        string          `yaml:"name" json:"name"`
	MinValue    decimal.Decimal `yaml:"min_value" json:"minValue"`
	MaxValue    decimal.Decimal `yaml:"max_value" json:"maxValue"`
	Steps       int             `yaml:"steps" json:"steps"`
	BaseValue   decimal.Decimal `yaml:"base_value" json:"baseValue"`
	Scale       string          `yaml:"scale" json:"scale"` // "linear" or "log"
	Unit        string          `yaml:"unit" json:"unit"`   // "millions", "percent"
	Description string          `yaml:"description" json:"description"`
}

// SensitivityPoint is the outcome of one evaluation in a sweep
type SensitivityPoint struct {
	Parameters        ReformParameters `json:"parameters"`
	Revenue           decimal.Decimal  `json:"revenue"` // billions
	HeadcountAffected decimal.Decimal  `json:"headcountAffected"`
	RevenueChange     decimal.Decimal  `json:"revenueChange"` // vs base point
	Warnings          int              `json:"warnings"`
}

// ParameterSensitivityAnalysis is a one-dimensional sweep
type ParameterSensitivityAnalysis struct {
	Country   string               `json:"country"`
	Currency  string               `json:"currency"`
	Parameter SensitivityParameter `json:"parameter"`
	Base      SensitivityPoint     `json:"base"`
	Points    []SensitivityPoint   `json:"points"`
	Summary   SensitivitySummary   `json:"summary"`
}

// SensitivitySummary gives the revenue range of a sweep
type SensitivitySummary struct {
	MinRevenue decimal.Decimal `json:"minRevenue"`
	MaxRevenue decimal.Decimal `json:"maxRevenue"`
	Elasticity decimal.Decimal `json:"elasticity"` // % revenue change per % parameter change, endpoints
}

// SensitivityMatrix is a two-dimensional sweep (rows: Parameter1, columns: Parameter2)
type SensitivityMatrix struct {
	Country    string               `json:"country"`
	Currency   string               `json:"currency"`
	Parameter1 SensitivityParameter `json:"parameter1"`
	Parameter2 SensitivityParameter `json:"parameter2"`
	Cells      [][]SensitivityPoint `json:"cells"`
}

// Common sensitivity parameters
var (
	ThresholdParam = SensitivityParameter{
		Name:        ParamThreshold,
		MinValue:    decimal.NewFromInt(1),
		MaxValue:    decimal.NewFromInt(1000),
		Steps:       7,
		BaseValue:   decimal.NewFromInt(100),
		Scale:       ScaleLog,
		Unit:        "millions",
		Description: "Wealth level above which the minimum tax applies",
	}

	TaxRateParam = SensitivityParameter{
		Name:        ParamTaxRate,
		MinValue:    decimal.Zero,
		MaxValue:    decimal.NewFromFloat(0.05),
		Steps:       11,
		BaseValue:   decimal.NewFromFloat(0.02),
		Scale:       ScaleLinear,
		Unit:        "percent",
		Description: "Minimum tax as a fraction of net wealth",
	}
)

// GetCommonParameters returns the predefined sweeps
func GetCommonParameters() []SensitivityParameter {
	return []SensitivityParameter{
		ThresholdParam,
		TaxRateParam,
	}
}

// FindCommonParameter looks up a predefined sweep by name
func FindCommonParameter(name string) (SensitivityParameter, bool) {
	for _, p := range GetCommonParameters() {
		if p.Name == name {
			return p, true
		}
	}
	return SensitivityParameter{}, false
}

// Apply returns params with this parameter set to value
func (sp SensitivityParameter) Apply(params ReformParameters, value float64) ReformParameters {
	switch sp.Name {
	case ParamThreshold:
		params.Threshold = value
	case ParamTaxRate:
		params.TaxRate = value
	}
	return params
}
