package tui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgehrsitz/wealthtax/internal/domain"
)

// drain runs cmd and feeds every resulting message back into the model,
// expanding batches, until no commands remain
func drain(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		if next == nil {
			continue
		}
		msg := next()
		if batch, ok := msg.(tea.BatchMsg); ok {
			queue = append(queue, batch...)
			continue
		}
		switch msg.(type) {
		case nil, tea.QuitMsg:
			continue
		}
		updated, c := m.Update(msg)
		m = updated.(Model)
		queue = append(queue, c)
	}
	return m
}

func loadedModel(t *testing.T) Model {
	t.Helper()
	m := NewModel("../../data", nil, domain.DefaultReformParameters())
	assert.True(t, m.loading)
	m = drain(t, m, m.Init())
	require.NoError(t, m.err)
	require.False(t, m.loading)
	require.Len(t, m.datasets, 3)
	return m
}

func key(k string) tea.KeyMsg {
	switch k {
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func TestModel_LoadsAndSimulates(t *testing.T) {
	m := loadedModel(t)

	require.NotNil(t, m.simulatorModel.Result())
	assert.Equal(t, "Examplia", m.simulatorModel.Result().Country)
	require.NotNil(t, m.compareModel.Comparison())
	assert.Len(t, m.compareModel.Comparison().Revenues, 3)

	view := m.View()
	assert.Contains(t, view, "Wealth Tax Simulator")
	assert.Contains(t, view, "Simulator / Examplia")
	assert.Contains(t, view, "Extra revenue")
	assert.Contains(t, view, "3 countries")
}

func TestModel_SliderRecomputesThroughMemo(t *testing.T) {
	m := loadedModel(t)
	_, misses := m.memo.Stats()

	updated, cmd := m.Update(key("right"))
	m = drain(t, updated.(Model), cmd)

	result := m.simulatorModel.Result()
	require.NotNil(t, result)
	assert.Equal(t, 150.0, result.Parameters.Threshold)
	assert.Equal(t, 150.0, m.compareModel.Comparison().Parameters.Threshold)

	_, after := m.memo.Stats()
	assert.Equal(t, misses+1, after)
}

func TestModel_CountryTabUsesMemo(t *testing.T) {
	m := loadedModel(t)

	updated, cmd := m.Update(key("tab"))
	m = drain(t, updated.(Model), cmd)
	assert.Equal(t, "Norland", m.simulatorModel.Result().Country)

	hits, _ := m.memo.Stats()
	updated, cmd = m.Update(key("1"))
	m = drain(t, updated.(Model), cmd)
	assert.Equal(t, "Examplia", m.simulatorModel.Result().Country)

	after, _ := m.memo.Stats()
	assert.Equal(t, hits+1, after, "returning to a country with unchanged parameters is a cache hit")
}

func TestModel_Navigation(t *testing.T) {
	m := loadedModel(t)

	updated, cmd := m.Update(key("c"))
	m = drain(t, updated.(Model), cmd)
	assert.Equal(t, SceneCompare, m.currentScene)
	assert.Contains(t, m.View(), "Current effective tax rate")
	assert.Contains(t, m.View(), "Sampleland")

	updated, cmd = m.Update(key("?"))
	m = drain(t, updated.(Model), cmd)
	assert.Equal(t, SceneHelp, m.currentScene)
	assert.Contains(t, m.View(), "SIMULATOR")

	updated, cmd = m.Update(key("esc"))
	m = drain(t, updated.(Model), cmd)
	assert.Equal(t, SceneCompare, m.currentScene)

	updated, cmd = m.Update(key("s"))
	m = drain(t, updated.(Model), cmd)
	assert.Equal(t, SceneSimulator, m.currentScene)

	_, cmd = m.Update(key("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestModel_LoadError(t *testing.T) {
	m := NewModel(t.TempDir(), nil, domain.DefaultReformParameters())
	m = drain(t, m, m.Init())

	require.Error(t, m.err)
	assert.Contains(t, m.View(), "no dataset files found")
	assert.Contains(t, m.View(), "Press q to quit.")

	// without data a key press does not dismiss the error
	updated, _ := m.Update(key("x"))
	assert.Error(t, updated.(Model).err)
}

func TestModel_ErrorDismissed(t *testing.T) {
	m := loadedModel(t)
	updated, _ := m.Update(ErrorMsg{Err: errors.New("boom")})
	m = updated.(Model)
	assert.Contains(t, m.View(), "boom")

	updated, cmd := m.Update(key("x"))
	assert.Nil(t, cmd)
	assert.NoError(t, updated.(Model).err)
}

func TestModel_WindowSize(t *testing.T) {
	m := loadedModel(t)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = updated.(Model)
	assert.Equal(t, 120, m.width)
	assert.Equal(t, 40, m.height)
}

func TestSceneString(t *testing.T) {
	assert.Equal(t, "Simulator", SceneSimulator.String())
	assert.Equal(t, "Compare", SceneCompare.String())
	assert.Equal(t, "Help", SceneHelp.String())
	assert.Equal(t, "Unknown", Scene(42).String())
}
