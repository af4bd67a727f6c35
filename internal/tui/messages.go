package tui

import "github.com/rgehrsitz/wealthtax/internal/tui/tuimsg"

// Scene represents different screens in the TUI
type Scene int

const (
	SceneSimulator Scene = iota
	SceneCompare
	SceneHelp
)

// NavigateMsg switches to a different scene
type NavigateMsg struct {
	Scene Scene
}

// Scene messages live in tuimsg so scenes can emit them without importing tui
type (
	DatasetsLoadedMsg     = tuimsg.DatasetsLoadedMsg
	ErrorMsg              = tuimsg.ErrorMsg
	CountrySelectedMsg    = tuimsg.CountrySelectedMsg
	ParametersChangedMsg  = tuimsg.ParametersChangedMsg
	SimulationCompleteMsg = tuimsg.SimulationCompleteMsg
	ComparisonCompleteMsg = tuimsg.ComparisonCompleteMsg
)
