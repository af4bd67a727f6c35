package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View renders the current state of the application
func (m Model) View() string {
	if m.loading {
		return m.renderLoading()
	}

	if m.err != nil {
		return m.renderError()
	}

	var content string
	switch m.currentScene {
	case SceneSimulator:
		content = m.simulatorModel.View()
	case SceneCompare:
		content = m.compareModel.View()
	case SceneHelp:
		content = m.renderHelp()
	default:
		content = "Unknown scene"
	}

	return m.renderApp(content)
}

// renderApp wraps content with title bar, status bar, and main container
func (m Model) renderApp(content string) string {
	contentHeight := max(m.height-4, 1) // Title (2) + status (1) + padding (1)

	contentContainer := lipgloss.NewStyle().
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderTitleBar(),
		contentContainer,
		m.renderStatusBar(),
	)
}

// renderTitleBar renders the application title and breadcrumb
func (m Model) renderTitleBar() string {
	title := TitleStyle.Render("Wealth Tax Simulator")

	breadcrumb := m.currentScene.String()
	if ds, ok := m.simulatorModel.Selected(); ok && m.currentScene == SceneSimulator {
		breadcrumb = fmt.Sprintf("%s / %s (%d data, projected to %d)", breadcrumb, ds.Country, ds.DataYear, ds.SimulationYear)
	}

	return lipgloss.JoinVertical(lipgloss.Left, title, SubtitleStyle.Render(breadcrumb))
}

// renderStatusBar renders the bottom status bar with keyboard shortcuts
func (m Model) renderStatusBar() string {
	shortcuts := []string{
		formatShortcut("s", "simulator"),
		formatShortcut("c", "compare"),
		formatShortcut("?", "help"),
		formatShortcut("q", "quit"),
	}
	statusText := strings.Join(shortcuts, " • ")

	if n := len(m.datasets); n > 0 {
		loaded := fmt.Sprintf("%d countries", n)
		spacer := strings.Repeat(" ", max(0, m.width-lipgloss.Width(statusText)-lipgloss.Width(loaded)-4))
		statusText = statusText + spacer + loaded
	}

	return StatusBarStyle.Width(m.width).Render(statusText)
}

// formatShortcut formats a keyboard shortcut with key and description
func formatShortcut(key, desc string) string {
	return StatusKeyStyle.Render(key) + " " + desc
}

// renderLoading renders a loading message
func (m Model) renderLoading() string {
	message := m.loadingMessage
	if message == "" {
		message = "Loading..."
	}
	return m.renderApp(BorderStyle.Render(fmt.Sprintf("⠋ %s", message)))
}

// renderError renders an error message
func (m Model) renderError() string {
	hint := "Press any key to continue..."
	if m.datasets == nil {
		hint = "Press q to quit."
	}
	return m.renderApp(ErrorStyle.Render(fmt.Sprintf("Error: %s\n\n%s", m.err, hint)))
}

var helpSections = []struct {
	title string
	keys  [][2]string
}{
	{"NAVIGATION", [][2]string{
		{"s", "Simulator"},
		{"c", "Compare countries"},
		{"?", "Show this help"},
		{"esc", "Go back"},
		{"q, ctrl+c", "Quit"},
	}},
	{"SIMULATOR", [][2]string{
		{"tab", "Next country"},
		{"shift+tab", "Previous country"},
		{"1-9", "Jump to a country"},
		{"↑ ↓", "Choose threshold or tax rate"},
		{"← →", "Adjust the chosen parameter"},
		{"0", "Reset to the defaults"},
	}},
}

// renderHelp renders the help screen
func (m Model) renderHelp() string {
	var b strings.Builder
	b.WriteString("Simulates a minimum tax on the net wealth of the richest households,\n")
	b.WriteString("levied as a top-up above their current taxes.\n")
	for _, section := range helpSections {
		b.WriteString("\n")
		b.WriteString(TableHeaderStyle.Render(section.title))
		b.WriteString("\n")
		for _, k := range section.keys {
			b.WriteString(HelpKeyStyle.Render(k[0]))
			b.WriteString(HelpDescStyle.Render(k[1]))
			b.WriteString("\n")
		}
	}
	b.WriteString("\nThe threshold slider is logarithmic from 1M to 1000M; the tax rate\n")
	b.WriteString("moves from 0% to 5% in steps of 0.5 points.")
	return BorderStyle.Render(b.String())
}
