package calculation

import (
	"math"

	"github.com/rgehrsitz/wealthtax/internal/domain"
)

// TopUp is the additional income-equivalent rate the minimum tax requires
// from a unit fully above the threshold. It is never negative: the tax is a
// floor on liability.
func (m BandModel) TopUp(taxRate float64) (float64, bool) {
	indiv, ok := optional(m.Band.IndivRate)
	if !ok {
		return 0, false
	}
	ratio, ok := nonZero(m.Band.IncomeWealthRatio)
	if !ok {
		return 0, false
	}
	return math.Max(0, taxRate/ratio-indiv), true
}

// ReformRate is the band's effective tax rate once the minimum wealth tax
// applies. It is undefined when the current rate is absent, or when a
// positive top-up meets a degenerate band whose exposure cannot be fitted.
func (m BandModel) ReformRate(taxRate, reform float64) (float64, bool) {
	total, ok := optional(m.Band.TotalRate)
	if !ok {
		return 0, false
	}
	topUp, ok := m.TopUp(taxRate)
	if !ok || topUp == 0 {
		return total, true
	}
	if m.Classify(reform) == domain.ExposureDegenerate {
		return 0, false
	}
	return total + topUp*m.WealthShareAbove(reform), true
}
