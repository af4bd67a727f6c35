package scenes

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgehrsitz/wealthtax/internal/calculation"
	"github.com/rgehrsitz/wealthtax/internal/config"
	"github.com/rgehrsitz/wealthtax/internal/domain"
	"github.com/rgehrsitz/wealthtax/internal/tui/tuimsg"
)

func loadDatasets(t *testing.T) []*domain.CountryDataset {
	t.Helper()
	datasets, err := config.NewInputParser().LoadDirectory("../../../data")
	require.NoError(t, err)
	require.Len(t, datasets, 3)
	return datasets
}

func press(k string) tea.KeyMsg {
	switch k {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func newSimulator(t *testing.T) *SimulatorModel {
	m := NewSimulatorModel(domain.DefaultReformParameters())
	m.SetDatasets(loadDatasets(t))
	return m
}

func TestSimulator_DefaultParams(t *testing.T) {
	m := newSimulator(t)
	assert.Equal(t, domain.DefaultReformParameters(), m.Params())
	ds, ok := m.Selected()
	require.True(t, ok)
	assert.Equal(t, "Examplia", ds.Country)
}

func TestSimulator_ThresholdSlider(t *testing.T) {
	m := newSimulator(t)

	m, cmd := m.Update(press("right"))
	require.NotNil(t, cmd)
	msg, ok := cmd().(tuimsg.ParametersChangedMsg)
	require.True(t, ok)
	assert.Equal(t, 150.0, msg.Params.Threshold)
	assert.Equal(t, 0.02, msg.Params.TaxRate)

	_, cmd = m.Update(press("left"))
	require.NotNil(t, cmd)
	assert.Equal(t, 100.0, cmd().(tuimsg.ParametersChangedMsg).Params.Threshold)
}

func TestSimulator_TaxRateSlider(t *testing.T) {
	m := newSimulator(t)

	m, cmd := m.Update(press("down"))
	assert.Nil(t, cmd)

	_, cmd = m.Update(press("right"))
	require.NotNil(t, cmd)
	params := cmd().(tuimsg.ParametersChangedMsg).Params
	assert.InDelta(t, 0.025, params.TaxRate, 1e-12)
	assert.Equal(t, 100.0, params.Threshold)

	// at the top of the range nothing changes
	for i := 0; i < 10; i++ {
		m.Update(press("right"))
	}
	_, cmd = m.Update(press("right"))
	assert.Nil(t, cmd)
	assert.InDelta(t, 0.05, m.Params().TaxRate, 1e-12)

	_, cmd = m.Update(press("0"))
	require.NotNil(t, cmd)
	assert.Equal(t, domain.DefaultReformParameters(), m.Params())
}

func TestSimulator_CountryTabs(t *testing.T) {
	m := newSimulator(t)

	_, cmd := m.Update(press("tab"))
	require.NotNil(t, cmd)
	assert.Equal(t, tuimsg.CountrySelectedMsg{Index: 1}, cmd())

	_, cmd = m.Update(press("shift+tab"))
	require.NotNil(t, cmd)
	assert.Equal(t, tuimsg.CountrySelectedMsg{Index: 0}, cmd())

	_, cmd = m.Update(press("shift+tab"))
	require.NotNil(t, cmd)
	assert.Equal(t, tuimsg.CountrySelectedMsg{Index: 2}, cmd())
	ds, _ := m.Selected()
	assert.Equal(t, "Sampleland", ds.Country)

	_, cmd = m.Update(press("3"))
	assert.Nil(t, cmd, "already selected")
	_, cmd = m.Update(press("9"))
	assert.Nil(t, cmd, "no ninth country")
	_, cmd = m.Update(press("1"))
	require.NotNil(t, cmd)
	assert.Equal(t, 0, m.SelectedIndex())
}

func TestSimulator_SetResult(t *testing.T) {
	m := newSimulator(t)
	engine := calculation.NewEngine()
	ds, _ := m.Selected()

	stale, err := engine.Simulate(context.Background(), ds, domain.ReformParameters{TaxRate: 0.03, Threshold: 100})
	require.NoError(t, err)
	m.SetResult(stale)
	assert.Nil(t, m.Result(), "result for other parameters is dropped")

	first, err := engine.Simulate(context.Background(), ds, m.Params())
	require.NoError(t, err)
	m.SetResult(first)
	assert.Same(t, first, m.Result())

	view := m.View()
	assert.Contains(t, view, "Extra revenue")
	assert.Contains(t, view, "Affected units")
	assert.Contains(t, view, "Examplia")
	assert.Contains(t, view, "Current")

	m.Update(press("tab"))
	assert.Nil(t, m.Result(), "switching country clears the result")
	m.SetResult(first)
	assert.Nil(t, m.Result(), "result for the previous country is dropped")
}

func TestSimulator_TrendAfterChange(t *testing.T) {
	m := newSimulator(t)
	engine := calculation.NewEngine()
	ds, _ := m.Selected()

	before, err := engine.Simulate(context.Background(), ds, m.Params())
	require.NoError(t, err)
	m.SetResult(before)

	m.Update(press("down"))
	m.Update(press("right"))
	after, err := engine.Simulate(context.Background(), ds, m.Params())
	require.NoError(t, err)
	m.SetResult(after)

	require.True(t, after.TotalRevenue.GreaterThan(before.TotalRevenue))
	assert.Contains(t, m.View(), "▲ +")
}

func TestSimulator_NoDatasets(t *testing.T) {
	m := NewSimulatorModel(domain.DefaultReformParameters())
	_, cmd := m.Update(press("right"))
	assert.Nil(t, cmd)
	assert.Contains(t, m.View(), "No datasets loaded")
}
