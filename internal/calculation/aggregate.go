package calculation

import (
	"github.com/rgehrsitz/wealthtax/internal/domain"
)

// ExtraRevenue is the band's additional tax take, in billions.
func (m BandModel) ExtraRevenue(taxRate, reform float64) float64 {
	total, ok := optional(m.Band.TotalRate)
	if !ok {
		return 0
	}
	avg, ok := m.ProjectedAvgIncome()
	if !ok {
		return 0
	}
	n, ok := m.ProjectedHeadcount()
	if !ok {
		return 0
	}
	rate, ok := m.ReformRate(taxRate, reform)
	if !ok {
		return 0
	}
	return (rate - total) * avg * n / billions
}

// TotalRevenue sums extra revenue over every band, in billions.
func TotalRevenue(ds *domain.CountryDataset, params domain.ReformParameters) float64 {
	var sum float64
	for _, m := range BandModels(ds) {
		sum += m.ExtraRevenue(params.TaxRate, params.Threshold)
	}
	return sum
}

// TotalHeadcountAffected sums the units above threshold over every band.
func TotalHeadcountAffected(ds *domain.CountryDataset, threshold float64) float64 {
	var sum float64
	for _, m := range BandModels(ds) {
		sum += m.HeadcountAbove(threshold)
	}
	return sum
}

// RatesSeries returns current and reform rates per band, as percentages.
func RatesSeries(ds *domain.CountryDataset, params domain.ReformParameters) []domain.RatePoint {
	models := BandModels(ds)
	series := make([]domain.RatePoint, len(models))
	for i, m := range models {
		series[i] = ratePoint(m, params)
	}
	return series
}

func ratePoint(m BandModel, params domain.ReformParameters) domain.RatePoint {
	point := domain.RatePoint{Label: m.Band.Label}
	if total, ok := optional(m.Band.TotalRate); ok {
		point.CurrentRatePercent = domain.FloatPtr(total * 100)
	}
	if rate, ok := m.ReformRate(params.TaxRate, params.Threshold); ok {
		point.ReformRatePercent = domain.FloatPtr(rate * 100)
	}
	return point
}
