package output

import (
	"fmt"
	"strings"
	"time"

	"github.com/rgehrsitz/wealthtax/internal/domain"
)

// ReportKind distinguishes a single-country simulation from a comparison.
type ReportKind string

const (
	KindSimulation ReportKind = "simulation"
	KindComparison ReportKind = "comparison"
)

// DefaultTitle heads every export footer unless overridden.
const DefaultTitle = "Wealth Tax Simulation"

// SourceOrganization is credited in the sources line.
const SourceOrganization = "International Tax Observatory"

// SimulationNotes explain how to read a simulation figure.
var SimulationNotes = []string{
	"This figure shows the effect of a minimum wealth tax on the progressivity of the tax system.",
	"These estimates include all taxes paid at all levels of government and are expressed as a percent of pre-tax income.",
	"Pre-tax income includes all national income before taxes and transfers and after the operation of the pension system.",
	`The "Current tax rate" line shows effective tax rates under current tax legislation.`,
	`The "Tax rate with a wealth tax" line shows how these rates would change if a minimum wealth tax were introduced at the specified threshold and rate.`,
	"These estimates rely on assumptions about wealth distribution.",
}

// ComparisonNotes explain how to read a cross-country figure.
var ComparisonNotes = []string{
	"This figure reports estimates of effective tax rates by pre-tax income groups in different countries.",
	"These estimates include all taxes paid at all levels of government and are expressed as a percent of pre-tax income.",
	"Pre-tax income includes all national income before taxes and transfers and after the operation of the pension system.",
}

// Metadata is the footer attached to every export.
type Metadata struct {
	Kind           ReportKind `json:"kind"`
	Title          string     `json:"title"`
	Country        string     `json:"country,omitempty"`
	Countries      []string   `json:"countries,omitempty"`
	Currency       string     `json:"currency,omitempty"`
	Threshold      float64    `json:"threshold,omitempty"`      // millions
	TaxRatePercent *float64   `json:"taxRatePercent,omitempty"` // nil for comparisons
	Citations      string     `json:"citations"`
	Notes          []string   `json:"notes"`
	GeneratedAt    time.Time  `json:"generatedAt"`
}

// SimulationMetadata describes a single-country simulation.
func SimulationMetadata(result *domain.SimulationResult, now time.Time) Metadata {
	return Metadata{
		Kind:           KindSimulation,
		Title:          DefaultTitle,
		Country:        result.Country,
		Currency:       result.Currency,
		Threshold:      result.Parameters.Threshold,
		TaxRatePercent: domain.FloatPtr(result.Parameters.TaxRatePercent()),
		Citations:      domain.FormatCitations(domain.CountryPapers(result.Country)),
		Notes:          SimulationNotes,
		GeneratedAt:    now,
	}
}

// ComparisonMetadata describes a cross-country comparison of current rates.
func ComparisonMetadata(countries []string, now time.Time) Metadata {
	return Metadata{
		Kind:        KindComparison,
		Title:       "Effective Tax Rates by Income Group",
		Countries:   countries,
		Citations:   domain.FormatCitations(domain.MultipleCountriesPapers(countries)),
		Notes:       ComparisonNotes,
		GeneratedAt: now,
	}
}

// ParameterLine renders "Country: X | Threshold: 100M€ | Tax rate: 2%",
// omitting the parts that do not apply.
func (m Metadata) ParameterLine() string {
	var parts []string
	if m.Country != "" {
		parts = append(parts, "Country: "+m.Country)
	} else if len(m.Countries) > 0 {
		parts = append(parts, "Countries: "+strings.Join(m.Countries, ", "))
	}
	if m.Threshold > 0 {
		parts = append(parts, "Threshold: "+FormatThreshold(m.Threshold, m.Currency))
	}
	if m.TaxRatePercent != nil {
		parts = append(parts, fmt.Sprintf("Tax rate: %s%%", trimFloat(*m.TaxRatePercent)))
	}
	return strings.Join(parts, " | ")
}

// SourcesLine credits the organisation and the papers behind the data.
func (m Metadata) SourcesLine() string {
	if m.Citations == "" {
		return "Sources: " + SourceOrganization
	}
	return fmt.Sprintf("Sources: %s, based on %s", SourceOrganization, m.Citations)
}

// FooterLines returns the plain-text footer.
func (m Metadata) FooterLines() []string {
	lines := []string{m.Title}
	if p := m.ParameterLine(); p != "" {
		lines = append(lines, p)
	}
	lines = append(lines,
		"Generated on "+m.GeneratedAt.Format("2006-01-02"),
		m.SourcesLine(),
		"Notes: "+strings.Join(m.Notes, " "),
	)
	return lines
}
