package calculation

import (
	"math"

	"github.com/rgehrsitz/wealthtax/internal/domain"
)

// BandModel fits an inverted-Pareto distribution to one band, bounded by
// its successor. Next is nil for the last band, whose tail is unbounded.
type BandModel struct {
	Band  domain.Band
	Next  *domain.Band
	Years int
}

// NewBandModel creates the model for band index i of a dataset.
func NewBandModel(ds *domain.CountryDataset, i int) BandModel {
	return BandModel{
		Band:  ds.Bands[i],
		Next:  ds.Successor(i),
		Years: ds.YearsElapsed(),
	}
}

// BandModels returns one model per band in dataset order.
func BandModels(ds *domain.CountryDataset) []BandModel {
	models := make([]BandModel, len(ds.Bands))
	for i := range ds.Bands {
		models[i] = NewBandModel(ds, i)
	}
	return models
}

// WealthThreshold converts the band's income boundary into a wealth
// boundary, in millions.
func (m BandModel) WealthThreshold() (float64, bool) {
	return wealthThreshold(m.Band, m.Years)
}

// NextWealthThreshold is the successor's wealth threshold.
func (m BandModel) NextWealthThreshold() (float64, bool) {
	if m.Next == nil {
		return 0, false
	}
	return wealthThreshold(*m.Next, m.Years)
}

func wealthThreshold(b domain.Band, years int) (float64, bool) {
	threshold, ok := nonZero(b.IncomeThreshold)
	if !ok {
		return 0, false
	}
	ratio, ok := nonZero(b.IncomeWealthRatio)
	if !ok {
		return 0, false
	}
	return Project(threshold, b.NominalGrowthThreshold, years) / ratio / millions, true
}

// ProjectedAvgIncome is avgIncome grown to the simulation year.
func (m BandModel) ProjectedAvgIncome() (float64, bool) {
	avg, ok := nonZero(m.Band.AvgIncome)
	if !ok {
		return 0, false
	}
	return Project(avg, m.Band.NominalGrowthAvg, m.Years), true
}

// ProjectedIncomeThreshold is incomeThreshold grown to the simulation year.
func (m BandModel) ProjectedIncomeThreshold() (float64, bool) {
	threshold, ok := nonZero(m.Band.IncomeThreshold)
	if !ok {
		return 0, false
	}
	return Project(threshold, m.Band.NominalGrowthThreshold, m.Years), true
}

// ProjectedHeadcount is the headcount grown by population growth.
func (m BandModel) ProjectedHeadcount() (float64, bool) {
	n, ok := nonZero(m.Band.Headcount)
	if !ok {
		return 0, false
	}
	return Project(n, m.Band.PopulationGrowth, m.Years), true
}

// ShapeParameter is the inverted Pareto coefficient avg/(avg-threshold).
// It is undefined for a degenerate band whose projected average does not
// exceed its projected threshold.
func (m BandModel) ShapeParameter() (float64, bool) {
	avg, ok := m.ProjectedAvgIncome()
	if !ok {
		return 0, false
	}
	threshold, ok := m.ProjectedIncomeThreshold()
	if !ok {
		return 0, false
	}
	if avg <= threshold {
		return 0, false
	}
	return avg / (avg - threshold), true
}

// IsDegenerate reports a band with both income inputs present whose
// projected average does not exceed its projected threshold.
func (m BandModel) IsDegenerate() bool {
	avg, okAvg := m.ProjectedAvgIncome()
	threshold, okThr := m.ProjectedIncomeThreshold()
	return okAvg && okThr && avg <= threshold
}

// CorrectedShapeParameter bends alpha so the band's density reaches zero
// mass exactly at the successor's wealth threshold.
func (m BandModel) CorrectedShapeParameter() (float64, bool) {
	if m.Next == nil {
		return 0, false
	}
	alpha, ok := m.ShapeParameter()
	if !ok {
		return 0, false
	}
	t, ok := m.WealthThreshold()
	if !ok {
		return 0, false
	}
	tNext, ok := m.NextWealthThreshold()
	if !ok {
		return 0, false
	}
	return alpha * (1 - math.Pow(t/tNext, alpha-1)), true
}
