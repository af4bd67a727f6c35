package scenes

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"

	"github.com/rgehrsitz/wealthtax/internal/compare"
	"github.com/rgehrsitz/wealthtax/internal/output"
	"github.com/rgehrsitz/wealthtax/internal/tui/components"
	"github.com/rgehrsitz/wealthtax/internal/tui/tuistyles"
)

// CompareModel represents the cross-country comparison scene
type CompareModel struct {
	set    *compare.ComparisonSet
	width  int
	height int
}

// NewCompareModel creates a new compare scene model
func NewCompareModel() *CompareModel {
	return &CompareModel{}
}

// SetComparison stores the latest comparison
func (m *CompareModel) SetComparison(set *compare.ComparisonSet) {
	m.set = set
}

// Comparison returns the comparison currently shown
func (m *CompareModel) Comparison() *compare.ComparisonSet {
	return m.set
}

// SetSize updates the model dimensions
func (m *CompareModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// View renders the compare scene
func (m *CompareModel) View() string {
	if m.set == nil {
		return tuistyles.InfoStyle.Render("Comparing countries...")
	}

	sections := []string{m.renderChart()}
	if len(m.set.Revenues) > 0 {
		sections = append(sections, m.renderRevenues())
	}
	if len(m.set.Notes) > 0 {
		notes := lo.Map(m.set.Notes, func(n string, _ int) string { return "• " + n })
		sections = append(sections, tuistyles.InfoStyle.Render(strings.Join(notes, "\n")))
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *CompareModel) renderChart() string {
	width := 70
	if m.width > 0 {
		width = min(max(m.width-4, 40), 100)
	}

	chart := components.NewASCIIChart("Current effective tax rate (% of pre-tax income)").
		WithLabels(lo.Map(m.set.Rows, func(r compare.RateRow, _ int) string { return r.Group })).
		WithXPositions(lo.Map(m.set.Rows, func(r compare.RateRow, _ int) float64 { return float64(r.X) })).
		WithSize(width, 12)
	for i, c := range m.set.Countries {
		series, _ := m.set.Series(c.Country)
		chart.AddSeries(c.Country, series, tuistyles.CountryColor(c.Color, i))
	}
	return chart.Render() + "\n"
}

func (m *CompareModel) renderRevenues() string {
	var b strings.Builder
	if p := m.set.Parameters; p != nil {
		b.WriteString(tuistyles.TableHeaderStyle.Render(
			fmt.Sprintf("Revenue under a %.1f%% tax above %gM", p.TaxRatePercent(), p.Threshold)))
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "%-16s %14s %14s %10s\n", "Country", "Revenue", "Affected", "% of GDP")
	for _, r := range m.set.Revenues {
		share := output.NotAvailable
		if r.RevenueShareOfGDP != nil {
			share = output.FormatPercentage(*r.RevenueShareOfGDP)
		}
		fmt.Fprintf(&b, "%-16s %14s %14s %10s\n",
			r.Country,
			output.FormatBillions(r.Revenue, r.Currency),
			output.FormatHeadcount(r.HeadcountAffected),
			share)
	}
	return tuistyles.TableCellStyle.Render(strings.TrimRight(b.String(), "\n"))
}
