package server

import (
	"github.com/rgehrsitz/wealthtax/internal/domain"
)

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// HealthResponse reports the server is up and how many datasets it serves
type HealthResponse struct {
	Status    string `json:"status"`
	Countries int    `json:"countries"`
}

// CountrySummary describes one loaded dataset
type CountrySummary struct {
	Country        string   `json:"country"`
	Currency       string   `json:"currency"`
	DataYear       int      `json:"dataYear"`
	SimulationYear int      `json:"simulationYear"`
	Groups         []string `json:"groups"`
	Color          string   `json:"color,omitempty"`
}

// SimulateRequest selects a country and reform. Omitted parameters fall
// back to the configured defaults; the tax rate is a fraction.
type SimulateRequest struct {
	Country   string   `json:"country"`
	TaxRate   *float64 `json:"taxRate"`
	Threshold *float64 `json:"threshold"`
}

// BreakEvenRequest asks for the tax rate or threshold reaching a revenue
// (billions) or headcount target. Exactly one target is expected.
type BreakEvenRequest struct {
	Country   string   `json:"country"`
	Target    string   `json:"target"`
	Revenue   *float64 `json:"revenue"`
	Headcount *float64 `json:"headcount"`
	TaxRate   *float64 `json:"taxRate"`
	Threshold *float64 `json:"threshold"`
}

func (r SimulateRequest) params(defaults domain.ReformParameters) domain.ReformParameters {
	return withOverrides(defaults, r.TaxRate, r.Threshold)
}

func withOverrides(p domain.ReformParameters, taxRate, threshold *float64) domain.ReformParameters {
	if taxRate != nil {
		p.TaxRate = *taxRate
	}
	if threshold != nil {
		p.Threshold = *threshold
	}
	return p
}
