package compare

import (
	"fmt"
	"time"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/wealthtax/internal/domain"
)

// XPositions are the chart x coordinates of the seven standard income
// groups (P0-P50 through the top group).
var XPositions = []int{0, 40, 60, 70, 80, 90, 100}

// XPosition returns the chart x coordinate of group idx out of n. Datasets
// with a non-standard number of groups are spread evenly over 0-100.
func XPosition(idx, n int) int {
	if n == len(XPositions) {
		return XPositions[idx]
	}
	if n <= 1 {
		return 0
	}
	return idx * 100 / (n - 1)
}

// CountryInfo identifies one compared country
type CountryInfo struct {
	Country  string `json:"country"`
	Currency string `json:"currency"`
	Color    string `json:"color,omitempty"`
}

// RateRow holds the current effective rate of one income group in every
// compared country. Rates are percentages aligned with ComparisonSet.Countries;
// nil means the country has no rate for that group.
type RateRow struct {
	Group string     `json:"group"`
	X     int        `json:"x"`
	Rates []*float64 `json:"rates"`
}

// CountryRevenue summarizes one country under the common reform
type CountryRevenue struct {
	Country           string           `json:"country"`
	Currency          string           `json:"currency"`
	Revenue           decimal.Decimal  `json:"revenue"` // billions
	HeadcountAffected decimal.Decimal  `json:"headcountAffected"`
	RevenueShareOfGDP *decimal.Decimal `json:"revenueShareOfGdp,omitempty"`
	Warnings          []string         `json:"warnings,omitempty"`
}

// ComparisonSet holds a cross-country comparison
type ComparisonSet struct {
	Countries   []CountryInfo            `json:"countries"`
	Rows        []RateRow                `json:"rows"`
	Parameters  *domain.ReformParameters `json:"parameters,omitempty"`
	Revenues    []CountryRevenue         `json:"revenues,omitempty"`
	Notes       []string                 `json:"notes,omitempty"`
	GeneratedAt time.Time                `json:"generatedAt"`
}

// CountryNames returns the compared country names in column order
func (cs *ComparisonSet) CountryNames() []string {
	return lo.Map(cs.Countries, func(c CountryInfo, _ int) string { return c.Country })
}

// Series returns the rate of every group for one country, in group order
func (cs *ComparisonSet) Series(country string) ([]*float64, bool) {
	_, idx, ok := lo.FindIndexOf(cs.Countries, func(c CountryInfo) bool { return c.Country == country })
	if !ok {
		return nil, false
	}
	return lo.Map(cs.Rows, func(r RateRow, _ int) *float64 { return r.Rates[idx] }), true
}

// HighestRevenue returns the country raising the most under the common reform
func (cs *ComparisonSet) HighestRevenue() (CountryRevenue, bool) {
	if len(cs.Revenues) == 0 {
		return CountryRevenue{}, false
	}
	return lo.MaxBy(cs.Revenues, func(a, b CountryRevenue) bool {
		return a.Revenue.GreaterThan(b.Revenue)
	}), true
}

// GenerateNotes describes where effective rates fall furthest at the top.
// Countries with fewer than two rated groups are skipped.
func GenerateNotes(cs *ComparisonSet) []string {
	var notes []string
	for i, c := range cs.Countries {
		rated := lo.Filter(cs.Rows, func(r RateRow, _ int) bool { return r.Rates[i] != nil })
		if len(rated) < 2 {
			continue
		}
		peak := lo.MaxBy(rated, func(a, b RateRow) bool { return *a.Rates[i] > *b.Rates[i] })
		top := rated[len(rated)-1]
		if drop := *peak.Rates[i] - *top.Rates[i]; drop > 0 && peak.Group != top.Group {
			notes = append(notes, fmt.Sprintf("%s: effective rate falls %.1f points from %s to %s",
				c.Country, drop, peak.Group, top.Group))
		}
	}
	if best, ok := cs.HighestRevenue(); ok && len(cs.Revenues) > 1 {
		notes = append(notes, fmt.Sprintf("Highest revenue: %s with %s B%s",
			best.Country, best.Revenue.StringFixed(1), best.Currency))
	}
	return notes
}
