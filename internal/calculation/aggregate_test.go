package calculation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgehrsitz/wealthtax/internal/domain"
)

func TestExtraRevenue_ConcreteScenario(t *testing.T) {
	m := BandModel{Band: paretoBand()}
	// (0.305 - 0.30) * 2M * 1000 / 1e9
	assert.InDelta(t, 0.01, m.ExtraRevenue(0.02, 100), 1e-12)
	assert.Equal(t, 0.0, m.ExtraRevenue(0, 100))
}

func TestExtraRevenue_MissingInputs(t *testing.T) {
	for name, mutate := range map[string]func(*domain.Band){
		"no total rate": func(b *domain.Band) { b.TotalRate = nil },
		"no headcount":  func(b *domain.Band) { b.Headcount = nil },
		"no avg income": func(b *domain.Band) { b.AvgIncome = nil },
		"degenerate":    func(b *domain.Band) { b.AvgIncome = dec(500_000) },
		"no indiv rate": func(b *domain.Band) { b.IndivRate = nil },
	} {
		t.Run(name, func(t *testing.T) {
			band := paretoBand()
			mutate(&band)
			assert.Equal(t, 0.0, BandModel{Band: band}.ExtraRevenue(0.02, 100))
		})
	}
}

func TestTotalRevenue_Monotonic(t *testing.T) {
	ds := sampleDataset()

	prev := 1e18
	for _, threshold := range logGrid(0.5, 5000, 60) {
		revenue := TotalRevenue(ds, domain.ReformParameters{TaxRate: 0.02, Threshold: threshold})
		require.GreaterOrEqual(t, revenue, 0.0)
		assert.LessOrEqual(t, revenue, prev+1e-9, "revenue must not rise with the threshold (%g)", threshold)
		prev = revenue
	}

	prev = -1
	for i := 0; i <= 20; i++ {
		taxRate := float64(i) * 0.0025
		revenue := TotalRevenue(ds, domain.ReformParameters{TaxRate: taxRate, Threshold: 10})
		assert.GreaterOrEqual(t, revenue, prev-1e-9, "revenue must not fall with the tax rate (%g)", taxRate)
		prev = revenue
	}
}

func TestTotalHeadcountAffected(t *testing.T) {
	ds := sampleDataset()

	low := TotalHeadcountAffected(ds, 1)
	high := TotalHeadcountAffected(ds, 100)
	assert.Greater(t, low, high)
	assert.Greater(t, high, 0.0)

	// Bands without a threshold never count
	var population float64
	for _, m := range BandModels(ds)[1:] {
		n, _ := m.ProjectedHeadcount()
		population += n
	}
	assert.LessOrEqual(t, TotalHeadcountAffected(ds, 0.001), population+1e-6)
}

func TestRatesSeries(t *testing.T) {
	ds := sampleDataset()
	params := domain.DefaultReformParameters()

	series := RatesSeries(ds, params)
	require.Len(t, series, len(ds.Bands))
	assert.Equal(t, ds.Labels(), []string{
		series[0].Label, series[1].Label, series[2].Label, series[3].Label, series[4].Label,
	})

	for _, p := range series {
		require.NotNil(t, p.CurrentRatePercent)
		require.NotNil(t, p.ReformRatePercent)
		assert.GreaterOrEqual(t, *p.ReformRatePercent, *p.CurrentRatePercent, p.Label)
	}
	assert.InDelta(t, 45.0, *series[0].CurrentRatePercent, 1e-9)
	assert.Equal(t, *series[0].CurrentRatePercent, *series[0].ReformRatePercent, "bottom band has no threshold")

	assert.Equal(t, series, RatesSeries(ds, params), "same inputs give the same series")
}

func TestRatesSeries_AbsentRates(t *testing.T) {
	ds := sampleDataset()
	ds.Bands[2].TotalRate = nil

	series := RatesSeries(ds, domain.DefaultReformParameters())
	assert.Nil(t, series[2].CurrentRatePercent)
	assert.Nil(t, series[2].ReformRatePercent)
	assert.NotNil(t, series[3].ReformRatePercent)
}
