package output

import (
	"fmt"
	"math"
	"strconv"

	"github.com/shopspring/decimal"
)

// NotAvailable is printed for rates that cannot be computed.
const NotAvailable = "n/a"

// FormatRatePercent formats an optional percentage with one decimal.
func FormatRatePercent(p *float64) string {
	if p == nil {
		return NotAvailable
	}
	return fmt.Sprintf("%.1f%%", *p)
}

// FormatRateFraction formats an optional fraction as a percentage.
func FormatRateFraction(f *float64) string {
	if f == nil {
		return NotAvailable
	}
	return fmt.Sprintf("%.1f%%", *f*100)
}

// FormatThreshold renders a wealth threshold in millions, e.g. "100M€".
func FormatThreshold(millions float64, currency string) string {
	if currency == "" {
		currency = "€"
	}
	return trimFloat(millions) + "M" + currency
}

// FormatBillions renders revenue in billions, e.g. "12.3 B€".
func FormatBillions(amount decimal.Decimal, currency string) string {
	return amount.StringFixed(1) + " B" + currency
}

// FormatHeadcount renders a count with thousands separators.
func FormatHeadcount(n decimal.Decimal) string {
	s := n.Round(0).String()
	neg := len(s) > 0 && s[0] == '-'
	if neg {
		s = s[1:]
	}
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "," + s[i:]
	}
	if neg {
		s = "-" + s
	}
	return s
}

// FormatPercentage formats a decimal as a percentage with 2 decimals.
func FormatPercentage(amount decimal.Decimal) string { return amount.StringFixed(2) + "%" }

// trimFloat prints f to at most six decimals without trailing zeros.
func trimFloat(f float64) string {
	return strconv.FormatFloat(math.Round(f*1e6)/1e6, 'f', -1, 64)
}
