package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/wealthtax/internal/calculation"
	"github.com/rgehrsitz/wealthtax/internal/compare"
	"github.com/rgehrsitz/wealthtax/internal/config"
	"github.com/rgehrsitz/wealthtax/internal/domain"
	"github.com/rgehrsitz/wealthtax/internal/tui/scenes"
)

// computeTimeout bounds one recomputation triggered by the UI
const computeTimeout = 5 * time.Second

// Model represents the entire application state
type Model struct {
	// Navigation
	currentScene  Scene
	previousScene Scene

	// Terminal dimensions
	width  int
	height int

	// Data
	dataDir  string
	datasets []*domain.CountryDataset

	// Calculation
	memo     *calculation.Memo
	comparer *compare.CompareEngine

	// Scene models
	simulatorModel *scenes.SimulatorModel
	compareModel   *scenes.CompareModel

	// Error state
	err error

	// Loading state
	loading        bool
	loadingMessage string
}

// NewModel creates a new application model that loads every dataset in
// dataDir. The sliders start at defaults.
func NewModel(dataDir string, engine *calculation.Engine, defaults domain.ReformParameters) Model {
	if engine == nil {
		engine = calculation.NewEngine()
	}
	return Model{
		currentScene:   SceneSimulator,
		dataDir:        dataDir,
		memo:           calculation.NewMemo(engine),
		comparer:       compare.NewCompareEngine(engine),
		simulatorModel: scenes.NewSimulatorModel(defaults),
		compareModel:   scenes.NewCompareModel(),
		loading:        true,
		loadingMessage: "Loading datasets...",
		width:          80,
		height:         24,
	}
}

// Init initializes the model (required by tea.Model interface)
func (m Model) Init() tea.Cmd {
	return loadDatasetsCmd(m.dataDir)
}

// loadDatasetsCmd returns a command that reads the dataset directory
func loadDatasetsCmd(dir string) tea.Cmd {
	return func() tea.Msg {
		datasets, err := config.NewInputParser().LoadDirectory(dir)
		if err != nil {
			return ErrorMsg{Err: err}
		}
		return DatasetsLoadedMsg{Datasets: datasets}
	}
}

// simulateCmd evaluates one country through the memo
func simulateCmd(memo *calculation.Memo, ds *domain.CountryDataset, params domain.ReformParameters) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), computeTimeout)
		defer cancel()

		result, err := memo.Simulate(ctx, ds, params)
		return SimulationCompleteMsg{Country: ds.Country, Params: params, Result: result, Err: err}
	}
}

// compareCmd lines up every country under the same reform
func compareCmd(comparer *compare.CompareEngine, datasets []*domain.CountryDataset, params domain.ReformParameters) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), computeTimeout)
		defer cancel()

		set, err := comparer.Compare(ctx, datasets, compare.Options{Reform: &params})
		return ComparisonCompleteMsg{Params: params, Set: set, Err: err}
	}
}

// recompute refreshes both scenes for the current slider values
func (m Model) recompute() tea.Cmd {
	ds, ok := m.simulatorModel.Selected()
	if !ok {
		return nil
	}
	params := m.simulatorModel.Params()
	return tea.Batch(
		simulateCmd(m.memo, ds, params),
		compareCmd(m.comparer, m.datasets, params),
	)
}

// String returns a human-readable name for a scene
func (s Scene) String() string {
	switch s {
	case SceneSimulator:
		return "Simulator"
	case SceneCompare:
		return "Compare"
	case SceneHelp:
		return "Help"
	default:
		return "Unknown"
	}
}
