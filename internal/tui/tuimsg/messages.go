package tuimsg

import (
	"github.com/rgehrsitz/wealthtax/internal/compare"
	"github.com/rgehrsitz/wealthtax/internal/domain"
)

// DatasetsLoadedMsg signals the dataset directory has been read
type DatasetsLoadedMsg struct {
	Datasets []*domain.CountryDataset
}

// ErrorMsg displays an error to the user
type ErrorMsg struct {
	Err error
}

// CountrySelectedMsg signals a different country tab was chosen
type CountrySelectedMsg struct {
	Index int
}

// ParametersChangedMsg signals a slider moved
type ParametersChangedMsg struct {
	Params domain.ReformParameters
}

// SimulationCompleteMsg carries one engine evaluation back to the UI
type SimulationCompleteMsg struct {
	Country string
	Params  domain.ReformParameters
	Result  *domain.SimulationResult
	Err     error
}

// ComparisonCompleteMsg carries a cross-country comparison back to the UI
type ComparisonCompleteMsg struct {
	Params domain.ReformParameters
	Set    *compare.ComparisonSet
	Err    error
}
