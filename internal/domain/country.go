package domain

import (
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// Band is one row of a country's income tabulation (e.g. "P90-P99").
// Every numeric field is optional; a nil pointer means the value is absent.
// Rates and ratios are fractions, never percentages.
type Band struct {
	Label                  string           `yaml:"label" json:"group"`
	Headcount              *decimal.Decimal `yaml:"headcount" json:"n,omitempty"`
	AvgIncome              *decimal.Decimal `yaml:"avg_income" json:"avgIncome,omitempty"`
	IncomeThreshold        *decimal.Decimal `yaml:"income_threshold" json:"incomeThreshold,omitempty"`
	IncomeWealthRatio      *decimal.Decimal `yaml:"income_wealth_ratio" json:"incomeWealthRatio,omitempty"`
	TotalRate              *decimal.Decimal `yaml:"total_rate" json:"totalRate,omitempty"`
	IndivRate              *decimal.Decimal `yaml:"indiv_rate" json:"indivRate,omitempty"`
	NominalGrowthAvg       *decimal.Decimal `yaml:"nominal_growth_avg" json:"nominalGrowthAvg,omitempty"`
	NominalGrowthThreshold *decimal.Decimal `yaml:"nominal_growth_threshold" json:"nominalGrowthThreshold,omitempty"`
	PopulationGrowth       *decimal.Decimal `yaml:"population_growth" json:"populationGrowth,omitempty"`
}

// CountryDataset is the immutable input for one country. Bands are ordered
// by ascending income; the successor of band i is band i+1.
type CountryDataset struct {
	Country        string           `yaml:"country" json:"country"`
	Currency       string           `yaml:"currency" json:"currency"`
	DataYear       int              `yaml:"data_year" json:"dataYear"`
	SimulationYear int              `yaml:"simulation_year" json:"simulationYear"`
	Bands          []Band           `yaml:"bands" json:"groups"`
	GDP            *decimal.Decimal `yaml:"gdp,omitempty" json:"gdp,omitempty"`         // billions
	Deficit        *decimal.Decimal `yaml:"deficit,omitempty" json:"deficit,omitempty"` // billions
	Color          string           `yaml:"color,omitempty" json:"color,omitempty"`
}

// YearsElapsed returns the projection horizon from the data year.
func (d *CountryDataset) YearsElapsed() int {
	return d.SimulationYear - d.DataYear
}

// Successor returns the band following index i, or nil for the last band.
func (d *CountryDataset) Successor(i int) *Band {
	if i < 0 || i+1 >= len(d.Bands) {
		return nil
	}
	return &d.Bands[i+1]
}

// Labels returns the band labels in presentation order.
func (d *CountryDataset) Labels() []string {
	return lo.Map(d.Bands, func(b Band, _ int) string { return b.Label })
}

// FindBand looks up a band by label.
func (d *CountryDataset) FindBand(label string) (Band, bool) {
	return lo.Find(d.Bands, func(b Band) bool { return b.Label == label })
}

// DecimalPtr returns a pointer to a decimal built from f. Handy for
// constructing datasets in code.
func DecimalPtr(f float64) *decimal.Decimal {
	d := decimal.NewFromFloat(f)
	return &d
}
