package calculation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgehrsitz/wealthtax/internal/domain"
)

func TestTopUp(t *testing.T) {
	m := BandModel{Band: paretoBand()}

	topUp, ok := m.TopUp(0.02)
	require.True(t, ok)
	assert.InDelta(t, 0.05, topUp, 1e-12, "2% of wealth at a 10% ratio is 20% of income, minus 15% paid")

	topUp, ok = m.TopUp(0.01)
	require.True(t, ok)
	assert.Equal(t, 0.0, topUp, "current individual rate already exceeds the minimum")

	band := paretoBand()
	band.IndivRate = nil
	_, ok = BandModel{Band: band}.TopUp(0.02)
	assert.False(t, ok)

	band = paretoBand()
	band.IncomeWealthRatio = dec(0)
	_, ok = BandModel{Band: band}.TopUp(0.02)
	assert.False(t, ok)

	band = paretoBand()
	band.IndivRate = dec(0)
	topUp, ok = BandModel{Band: band}.TopUp(0.02)
	require.True(t, ok, "a zero individual rate is a value, not an absence")
	assert.InDelta(t, 0.2, topUp, 1e-12)
}

func TestReformRate_ConcreteScenario(t *testing.T) {
	m := BandModel{Band: paretoBand()}

	rate, ok := m.ReformRate(0.02, 100)
	require.True(t, ok)
	assert.InDelta(t, 0.30+0.05*0.1, rate, 1e-12)

	rate, ok = m.ReformRate(0.02, 10)
	require.True(t, ok)
	assert.InDelta(t, 0.35, rate, 1e-12, "whole band above the threshold pays the full top-up")
}

func TestReformRate_MissingInputs(t *testing.T) {
	t.Run("indiv rate absent keeps the current rate", func(t *testing.T) {
		band := paretoBand()
		band.IndivRate = nil
		rate, ok := BandModel{Band: band}.ReformRate(0.02, 100)
		require.True(t, ok)
		assert.Equal(t, 0.30, rate)
	})

	t.Run("ratio absent keeps the current rate", func(t *testing.T) {
		band := paretoBand()
		band.IncomeWealthRatio = nil
		rate, ok := BandModel{Band: band}.ReformRate(0.02, 100)
		require.True(t, ok)
		assert.Equal(t, 0.30, rate)
	})

	t.Run("total rate absent is undefined", func(t *testing.T) {
		band := paretoBand()
		band.TotalRate = nil
		_, ok := BandModel{Band: band}.ReformRate(0.02, 100)
		assert.False(t, ok)
	})

	t.Run("zero total rate is a value", func(t *testing.T) {
		band := paretoBand()
		band.TotalRate = dec(0)
		rate, ok := BandModel{Band: band}.ReformRate(0.02, 100)
		require.True(t, ok)
		assert.InDelta(t, 0.005, rate, 1e-12)
	})
}

func TestReformRate_ZeroTaxRate(t *testing.T) {
	for _, m := range BandModels(sampleDataset()) {
		rate, ok := m.ReformRate(0, 50)
		total, hasTotal := optional(m.Band.TotalRate)
		require.Equal(t, hasTotal, ok, m.Band.Label)
		assert.Equal(t, total, rate, "%s keeps its current rate without a tax", m.Band.Label)
	}
}

func TestReformRate_Degenerate(t *testing.T) {
	band := paretoBand()
	band.AvgIncome = dec(800_000)
	m := BandModel{Band: band}

	_, ok := m.ReformRate(0.02, 100)
	assert.False(t, ok, "exposure above the threshold cannot be fitted")
	assert.Equal(t, domain.ExposureDegenerate, m.Classify(100))

	rate, ok := m.ReformRate(0.02, 5)
	require.True(t, ok, "a reform threshold below the band needs no fit")
	assert.InDelta(t, 0.35, rate, 1e-12)

	rate, ok = m.ReformRate(0.01, 100)
	require.True(t, ok, "no top-up, no fit needed")
	assert.Equal(t, 0.30, rate)
}

func TestReformRate_NeverBelowCurrent(t *testing.T) {
	ds := sampleDataset()
	for _, m := range BandModels(ds) {
		total, ok := optional(m.Band.TotalRate)
		require.True(t, ok)
		for _, taxRate := range []float64{0, 0.005, 0.01, 0.02, 0.035, 0.05, 0.2} {
			prev := 1e9
			for _, r := range logGrid(0.1, 2000, 120) {
				rate, ok := m.ReformRate(taxRate, r)
				require.True(t, ok)
				assert.GreaterOrEqual(t, rate, total, "%s at %g above %g", m.Band.Label, taxRate, r)
				assert.LessOrEqual(t, rate, prev+1e-12, "%s rate rises with the threshold", m.Band.Label)
				prev = rate
			}
		}
	}
}
