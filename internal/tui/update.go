package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.simulatorModel.SetSize(msg.Width, msg.Height)
		m.compareModel.SetSize(msg.Width, msg.Height)
		return m, nil

	case NavigateMsg:
		if msg.Scene != m.currentScene {
			m.previousScene = m.currentScene
			m.currentScene = msg.Scene
		}
		return m, nil

	case ErrorMsg:
		m.loading = false
		m.err = msg.Err
		return m, nil

	case DatasetsLoadedMsg:
		m.loading = false
		m.datasets = msg.Datasets
		m.simulatorModel.SetDatasets(msg.Datasets)
		return m, m.recompute()

	case CountrySelectedMsg:
		ds, ok := m.simulatorModel.Selected()
		if !ok {
			return m, nil
		}
		return m, simulateCmd(m.memo, ds, m.simulatorModel.Params())

	case ParametersChangedMsg:
		return m, m.recompute()

	case SimulationCompleteMsg:
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.simulatorModel.SetResult(msg.Result)
		return m, nil

	case ComparisonCompleteMsg:
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		// a slower comparison for older slider values must not win
		if msg.Params == m.simulatorModel.Params() {
			m.compareModel.SetComparison(msg.Set)
		}
		return m, nil
	}

	return m.updateCurrentScene(msg)
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// any key dismisses an error once data is loaded
	if m.err != nil && m.datasets != nil {
		m.err = nil
		return m, nil
	}

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "?":
		return m, navigate(SceneHelp)

	case "esc":
		if m.currentScene != SceneSimulator {
			back := m.previousScene
			if back == m.currentScene {
				back = SceneSimulator
			}
			return m, navigate(back)
		}

	case "s":
		if m.currentScene != SceneSimulator {
			return m, navigate(SceneSimulator)
		}

	case "c":
		if m.currentScene != SceneCompare {
			return m, navigate(SceneCompare)
		}
	}

	return m.updateCurrentScene(msg)
}

func navigate(scene Scene) tea.Cmd {
	return func() tea.Msg {
		return NavigateMsg{Scene: scene}
	}
}

// updateCurrentScene delegates updates to the current scene's model
func (m Model) updateCurrentScene(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.currentScene == SceneSimulator {
		updated, cmd := m.simulatorModel.Update(msg)
		m.simulatorModel = updated
		return m, cmd
	}
	return m, nil
}
