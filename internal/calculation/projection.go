package calculation

import (
	"math"

	"github.com/shopspring/decimal"
)

// Unit scales used by the engine.
const (
	millions = 1e6
	billions = 1e9
)

// Project compounds value forward by an annual growth rate over years.
// A nil growth rate means zero growth.
func Project(value float64, growth *decimal.Decimal, years int) float64 {
	g, ok := optional(growth)
	if !ok || years == 0 {
		return value
	}
	return value * math.Pow(1+g, float64(years))
}

// optional reads a possibly absent decimal.
func optional(d *decimal.Decimal) (float64, bool) {
	if d == nil {
		return 0, false
	}
	return d.InexactFloat64(), true
}

// nonZero reads a decimal that is unusable when absent or zero.
func nonZero(d *decimal.Decimal) (float64, bool) {
	v, ok := optional(d)
	if !ok || v == 0 {
		return 0, false
	}
	return v, true
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(0, math.Min(1, v))
}
