package domain

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// Reform parameter defaults used by the CLI, TUI and server.
const (
	DefaultThreshold = 100.0 // millions
	DefaultTaxRate   = 0.02
)

// ReformParameters are the two free parameters of a minimum wealth tax.
type ReformParameters struct {
	TaxRate   float64 `yaml:"tax_rate" json:"taxRate"`     // fraction of net wealth
	Threshold float64 `yaml:"threshold" json:"threshold"` // millions of the dataset currency
}

// DefaultReformParameters returns a 2% tax above 100 million.
func DefaultReformParameters() ReformParameters {
	return ReformParameters{TaxRate: DefaultTaxRate, Threshold: DefaultThreshold}
}

// Validate checks the parameters are usable by the engine.
func (p ReformParameters) Validate() error {
	if !finite(p.TaxRate) {
		return fmt.Errorf("tax rate must be a finite number, got %g", p.TaxRate)
	}
	if !finite(p.Threshold) {
		return fmt.Errorf("threshold must be a finite number, got %g", p.Threshold)
	}
	if p.TaxRate < 0 || p.TaxRate > 1 {
		return fmt.Errorf("tax rate must be between 0 and 1, got %g", p.TaxRate)
	}
	if p.Threshold <= 0 {
		return fmt.Errorf("threshold must be positive, got %g", p.Threshold)
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// TaxRatePercent returns the tax rate for display.
func (p ReformParameters) TaxRatePercent() float64 {
	return p.TaxRate * 100
}

// ExposureCase names which branch of the exposure rules produced a share.
type ExposureCase string

const (
	ExposureNoThreshold ExposureCase = "no_threshold"
	ExposureFullyAbove  ExposureCase = "fully_above"
	ExposureAbsorbed    ExposureCase = "absorbed_by_next"
	ExposureOpenTail    ExposureCase = "open_tail"
	ExposureBounded     ExposureCase = "bounded"
	ExposureDegenerate  ExposureCase = "degenerate"
)

// RatePoint is one entry of the per-band rate series handed to presentation.
// Rates are percentages; nil means the rate cannot be computed.
type RatePoint struct {
	Label              string   `json:"label"`
	CurrentRatePercent *float64 `json:"currentRatePercent"`
	ReformRatePercent  *float64 `json:"reformRatePercent"`
}

// BandResult holds every intermediate quantity computed for a band.
type BandResult struct {
	Label                   string       `json:"label"`
	WealthThreshold         *float64     `json:"wealthThreshold"` // millions
	ShapeParameter          *float64     `json:"shapeParameter"`
	CorrectedShapeParameter *float64     `json:"correctedShapeParameter"`
	Exposure                ExposureCase `json:"exposure"`
	WealthShareAbove        float64      `json:"wealthShareAbove"`
	HeadcountAbove          float64      `json:"headcountAbove"`
	CurrentRate             *float64     `json:"currentRate"`
	ReformRate              *float64     `json:"reformRate"`
	ExtraRevenue            float64      `json:"extraRevenue"` // billions
}

// SimulationResult is the full output of one engine evaluation.
type SimulationResult struct {
	Country                string           `json:"country"`
	Currency               string           `json:"currency"`
	SimulationYear         int              `json:"simulationYear"`
	Parameters             ReformParameters `json:"parameters"`
	Bands                  []BandResult     `json:"bands"`
	Series                 []RatePoint      `json:"series"`
	TotalRevenue           decimal.Decimal  `json:"totalRevenue"` // billions
	TotalHeadcountAffected decimal.Decimal  `json:"totalHeadcountAffected"`
	RevenueShareOfGDP      *decimal.Decimal `json:"revenueShareOfGdp,omitempty"`     // percent
	RevenueShareOfDeficit  *decimal.Decimal `json:"revenueShareOfDeficit,omitempty"` // percent
	Warnings               []string         `json:"warnings,omitempty"`
}

// HasWarnings reports whether any data-quality issue was detected.
func (r *SimulationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// FloatPtr returns a pointer to f.
func FloatPtr(f float64) *float64 {
	return &f
}
