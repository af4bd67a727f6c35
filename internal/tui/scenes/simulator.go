package scenes

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"

	"github.com/rgehrsitz/wealthtax/internal/compare"
	"github.com/rgehrsitz/wealthtax/internal/domain"
	"github.com/rgehrsitz/wealthtax/internal/output"
	"github.com/rgehrsitz/wealthtax/internal/tui/components"
	"github.com/rgehrsitz/wealthtax/internal/tui/tuimsg"
	"github.com/rgehrsitz/wealthtax/internal/tui/tuistyles"
)

// Slider ranges of the simulator
const (
	MinThreshold = 1.0    // millions
	MaxThreshold = 1000.0 // millions
	MaxTaxRate   = 5.0    // percent
	TaxRateStep  = 0.5    // percent

	// thresholdStep moves the log slider by a thousandth of its track
	thresholdStep = 0.001
)

const (
	sliderThreshold = iota
	sliderTaxRate
)

var (
	keyNextCountry = key.NewBinding(key.WithKeys("tab"))
	keyPrevCountry = key.NewBinding(key.WithKeys("shift+tab"))
	keyUp          = key.NewBinding(key.WithKeys("up", "k"))
	keyDown        = key.NewBinding(key.WithKeys("down", "j"))
	keyIncrease    = key.NewBinding(key.WithKeys("right", "l", "+"))
	keyDecrease    = key.NewBinding(key.WithKeys("left", "h", "-"))
	keyReset       = key.NewBinding(key.WithKeys("0"))
)

// SimulatorModel is the single-country simulator scene: country tabs, the
// two reform sliders, headline metrics and the rate chart
type SimulatorModel struct {
	datasets []*domain.CountryDataset
	selected int
	defaults domain.ReformParameters

	sliders []*components.ParameterSlider
	focused int

	result   *domain.SimulationResult
	previous *domain.SimulationResult

	width  int
	height int
}

// NewSimulatorModel creates the simulator with sliders at params
func NewSimulatorModel(params domain.ReformParameters) *SimulatorModel {
	m := &SimulatorModel{
		defaults: params,
		sliders: []*components.ParameterSlider{
			components.NewLogSlider("Wealth threshold", params.Threshold, MinThreshold, MaxThreshold, thresholdStep).
				WithRounding(components.SmartRound).
				WithFormat("%g").
				WithUnit(" M€").
				WithWidth(40),
			components.NewParameterSlider("Tax rate", params.TaxRatePercent(), 0, MaxTaxRate, TaxRateStep).
				WithFormat("%.1f").
				WithUnit("%").
				WithWidth(40),
		},
	}
	m.sliders[sliderThreshold].SetValue(params.Threshold)
	m.sliders[sliderTaxRate].SetValue(params.TaxRatePercent())
	m.sliders[m.focused].SetFocused(true)
	return m
}

// SetDatasets replaces the country tabs
func (m *SimulatorModel) SetDatasets(datasets []*domain.CountryDataset) {
	m.datasets = datasets
	m.selected = 0
	m.result, m.previous = nil, nil
	m.updateUnit()
}

// Selected returns the dataset of the active tab
func (m *SimulatorModel) Selected() (*domain.CountryDataset, bool) {
	if m.selected >= len(m.datasets) {
		return nil, false
	}
	return m.datasets[m.selected], true
}

// SelectedIndex returns the index of the active tab
func (m *SimulatorModel) SelectedIndex() int {
	return m.selected
}

// Params returns the reform parameters currently set on the sliders
func (m *SimulatorModel) Params() domain.ReformParameters {
	return domain.ReformParameters{
		Threshold: m.sliders[sliderThreshold].Value,
		TaxRate:   m.sliders[sliderTaxRate].Value / 100,
	}
}

// SetResult shows a finished simulation. Results for another country or
// for parameters the sliders have since left are dropped.
func (m *SimulatorModel) SetResult(r *domain.SimulationResult) {
	ds, ok := m.Selected()
	if !ok || r == nil || r.Country != ds.Country || r.Parameters != m.Params() {
		return
	}
	if m.result != nil && m.result.Country == r.Country {
		m.previous = m.result
	} else {
		m.previous = nil
	}
	m.result = r
}

// Result returns the simulation currently shown
func (m *SimulatorModel) Result() *domain.SimulationResult {
	return m.result
}

// SetSize updates the scene dimensions
func (m *SimulatorModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update handles messages for the simulator scene
func (m *SimulatorModel) Update(msg tea.Msg) (*SimulatorModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || len(m.datasets) == 0 {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keyNextCountry):
		return m, m.selectCountry((m.selected + 1) % len(m.datasets))
	case key.Matches(keyMsg, keyPrevCountry):
		return m, m.selectCountry((m.selected + len(m.datasets) - 1) % len(m.datasets))
	case key.Matches(keyMsg, keyUp):
		m.focus(m.focused - 1)
		return m, nil
	case key.Matches(keyMsg, keyDown):
		m.focus(m.focused + 1)
		return m, nil
	case key.Matches(keyMsg, keyIncrease):
		return m, m.adjust((*components.ParameterSlider).Increment)
	case key.Matches(keyMsg, keyDecrease):
		return m, m.adjust((*components.ParameterSlider).Decrement)
	case key.Matches(keyMsg, keyReset):
		return m, m.adjust(func(*components.ParameterSlider) {
			m.sliders[sliderThreshold].SetValue(m.defaults.Threshold)
			m.sliders[sliderTaxRate].SetValue(m.defaults.TaxRatePercent())
		})
	}

	// 1-9 jump straight to a country tab
	if s := keyMsg.String(); len(s) == 1 && s[0] >= '1' && s[0] <= '9' {
		if idx := int(s[0] - '1'); idx < len(m.datasets) {
			return m, m.selectCountry(idx)
		}
	}
	return m, nil
}

func (m *SimulatorModel) selectCountry(idx int) tea.Cmd {
	if idx == m.selected {
		return nil
	}
	m.selected = idx
	m.result, m.previous = nil, nil
	m.updateUnit()
	return func() tea.Msg { return tuimsg.CountrySelectedMsg{Index: idx} }
}

func (m *SimulatorModel) focus(idx int) {
	if idx < 0 || idx >= len(m.sliders) {
		return
	}
	m.sliders[m.focused].SetFocused(false)
	m.focused = idx
	m.sliders[m.focused].SetFocused(true)
}

// adjust applies change to the focused slider and reports new parameters
// only when a value actually moved
func (m *SimulatorModel) adjust(change func(*components.ParameterSlider)) tea.Cmd {
	before := m.Params()
	change(m.sliders[m.focused])
	params := m.Params()
	if params == before {
		return nil
	}
	return func() tea.Msg { return tuimsg.ParametersChangedMsg{Params: params} }
}

func (m *SimulatorModel) updateUnit() {
	currency := "€"
	if ds, ok := m.Selected(); ok && ds.Currency != "" {
		currency = ds.Currency
	}
	m.sliders[sliderThreshold].WithUnit(" M" + currency)
}

// View renders the simulator scene
func (m *SimulatorModel) View() string {
	if len(m.datasets) == 0 {
		return tuistyles.InfoStyle.Render("No datasets loaded")
	}

	sections := []string{
		m.renderTabs(),
		lipgloss.JoinVertical(lipgloss.Left, lo.Map(m.sliders, func(s *components.ParameterSlider, _ int) string {
			return s.Render() + "\n"
		})...),
	}

	if m.result == nil {
		sections = append(sections, tuistyles.InfoStyle.Render("Computing..."))
		return lipgloss.JoinVertical(lipgloss.Left, sections...)
	}

	sections = append(sections, m.renderMetrics(), m.renderChart())
	if m.result.HasWarnings() {
		warnings := lo.Map(m.result.Warnings, func(w string, _ int) string { return "⚠ " + w })
		sections = append(sections, tuistyles.WarningStyle.Render(strings.Join(warnings, "\n")))
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *SimulatorModel) renderTabs() string {
	tabs := make([]string, len(m.datasets))
	for i, ds := range m.datasets {
		label := fmt.Sprintf(" %d %s ", i+1, ds.Country)
		if i == m.selected {
			tabs[i] = tuistyles.SelectedItemStyle.
				Foreground(tuistyles.CountryColor(ds.Color, i)).
				Underline(true).
				Render(label)
			continue
		}
		tabs[i] = tuistyles.UnselectedItemStyle.Render(label)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...) + "\n"
}

func (m *SimulatorModel) renderMetrics() string {
	r := m.result
	accent := tuistyles.CountryColor(m.datasets[m.selected].Color, m.selected)

	revenue := components.NewMetricCard("Extra revenue", output.FormatBillions(r.TotalRevenue, r.Currency)).
		WithAccent(accent)
	if r.RevenueShareOfGDP != nil {
		revenue.WithDescription(output.FormatPercentage(*r.RevenueShareOfGDP) + " of GDP")
	}
	if m.previous != nil {
		if diff := r.TotalRevenue.Sub(m.previous.TotalRevenue); !diff.IsZero() {
			sign := ""
			if diff.IsPositive() {
				sign = "+"
			}
			revenue.WithTrend(diff.IsPositive(), sign+output.FormatBillions(diff, r.Currency))
		}
	}

	affected := components.NewMetricCard("Affected units", output.FormatHeadcount(r.TotalHeadcountAffected)).
		WithAccent(accent).
		WithDescription("above " + output.FormatThreshold(r.Parameters.Threshold, r.Currency))

	return components.MetricGrid([]*components.MetricCard{revenue, affected}, 2)
}

func (m *SimulatorModel) renderChart() string {
	r := m.result
	n := len(r.Series)
	xs := make([]float64, n)
	for i := range xs {
		xs[i] = float64(compare.XPosition(i, n))
	}

	width := 70
	if m.width > 0 {
		width = min(max(m.width-4, 40), 100)
	}
	return components.NewASCIIChart("Effective tax rate (% of pre-tax income)").
		AddSeries("Current", lo.Map(r.Series, func(p domain.RatePoint, _ int) *float64 { return p.CurrentRatePercent }), tuistyles.ColorChartLine2).
		AddSeries(fmt.Sprintf("With %.1f%% minimum tax", r.Parameters.TaxRatePercent()),
			lo.Map(r.Series, func(p domain.RatePoint, _ int) *float64 { return p.ReformRatePercent }), tuistyles.ColorChartLine1).
		WithLabels(lo.Map(r.Series, func(p domain.RatePoint, _ int) string { return p.Label })).
		WithXPositions(xs).
		WithSize(width, 12).
		Render()
}
