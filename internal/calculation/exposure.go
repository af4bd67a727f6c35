package calculation

import (
	"math"

	"github.com/rgehrsitz/wealthtax/internal/domain"
)

// flatExponent is the exponent magnitude below which the bounded formula
// is replaced by its logarithmic limit.
const flatExponent = 1e-12

// placement locates a reform threshold relative to a band, carrying the
// fitted parameters the chosen case needs.
type placement struct {
	Case  domain.ExposureCase
	t     float64
	tNext float64
	alpha float64
	ca    float64
}

// place applies the ordered exposure rules. Case order resolves a reform
// threshold lying exactly on a band edge.
func (m BandModel) place(reform float64) placement {
	t, ok := m.WealthThreshold()
	if !ok {
		return placement{Case: domain.ExposureNoThreshold}
	}
	if reform <= t {
		return placement{Case: domain.ExposureFullyAbove, t: t}
	}
	tNext, hasNext := m.NextWealthThreshold()
	if hasNext && reform >= tNext {
		return placement{Case: domain.ExposureAbsorbed, t: t, tNext: tNext}
	}

	ca, bounded := m.CorrectedShapeParameter()
	if !hasNext || !bounded {
		alpha, ok := m.ShapeParameter()
		if !ok {
			return placement{Case: domain.ExposureDegenerate, t: t}
		}
		return placement{Case: domain.ExposureOpenTail, t: t, alpha: alpha}
	}
	return placement{Case: domain.ExposureBounded, t: t, tNext: tNext, ca: ca}
}

// Classify reports which exposure case applies at reform.
func (m BandModel) Classify(reform float64) domain.ExposureCase {
	return m.place(reform).Case
}

// WealthShareAbove is the fraction of the band's wealth held above reform.
func (m BandModel) WealthShareAbove(reform float64) float64 {
	p := m.place(reform)
	switch p.Case {
	case domain.ExposureFullyAbove:
		return 1
	case domain.ExposureOpenTail:
		return math.Pow(p.t/reform, 1/(p.alpha-1))
	case domain.ExposureBounded:
		return boundedFraction(reform, p.t, p.tNext, 1-p.ca)
	default:
		return 0
	}
}

// HeadcountAbove is the number of units in the band with wealth above
// reform, between 0 and the projected headcount.
func (m BandModel) HeadcountAbove(reform float64) float64 {
	n, ok := m.ProjectedHeadcount()
	if !ok {
		return 0
	}
	p := m.place(reform)
	switch p.Case {
	case domain.ExposureFullyAbove:
		return n
	case domain.ExposureOpenTail:
		return n * math.Pow(p.t/reform, p.alpha/(p.alpha-1))
	case domain.ExposureBounded:
		return n * boundedFraction(reform, p.t, p.tNext, -p.ca)
	default:
		return 0
	}
}

// boundedFraction integrates a power law with exponent k between reform and
// tNext, relative to the full [t, tNext] range.
func boundedFraction(reform, t, tNext, k float64) float64 {
	if math.Abs(k) < flatExponent {
		return clamp01(math.Log(tNext/reform) / math.Log(tNext/t))
	}
	// Scaled by tNext: (x/tNext)^k - 1 stays finite where x^k would
	// underflow or overflow for a steep fit.
	numerator := math.Expm1(k * math.Log(reform/tNext))
	denominator := math.Expm1(k * math.Log(t/tNext))
	frac := numerator / denominator
	if math.IsNaN(frac) || math.IsInf(frac, 0) {
		// both terms overflowed: the mass sits at t for k < 0, at tNext for k > 0
		if k < 0 {
			return 0
		}
		return 1
	}
	return clamp01(frac)
}
