package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgehrsitz/wealthtax/internal/domain"
)

const dataDir = "../../data"

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestNewInputParser(t *testing.T) {
	parser := NewInputParser()
	assert.NotNil(t, parser, "Should create input parser")
}

func TestInputParser_LoadFromFile_FileNotFound(t *testing.T) {
	parser := NewInputParser()

	ds, err := parser.LoadFromFile("nonexistent.yaml")

	assert.Error(t, err, "Should error for nonexistent file")
	assert.Nil(t, ds, "Should return nil dataset")
	assert.Contains(t, err.Error(), "failed to read file", "Should have specific error message")
}

func TestInputParser_LoadFromFile_InvalidYAML(t *testing.T) {
	invalidFile := writeFile(t, t.TempDir(), "invalid.yaml", "invalid: yaml: content: [unclosed")

	ds, err := NewInputParser().LoadFromFile(invalidFile)

	assert.Error(t, err, "Should error for invalid YAML")
	assert.Nil(t, ds)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestInputParser_LoadFromFile_InvalidJSON(t *testing.T) {
	invalidFile := writeFile(t, t.TempDir(), "invalid.json", `{"country": "X", "groups": [`)

	ds, err := NewInputParser().LoadFromFile(invalidFile)

	assert.Error(t, err)
	assert.Nil(t, ds)
	assert.Contains(t, err.Error(), "failed to parse JSON")
}

func TestInputParser_LoadFromFile_YAML(t *testing.T) {
	ds, err := NewInputParser().LoadFromFile(filepath.Join(dataDir, "examplia.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "Examplia", ds.Country)
	assert.Equal(t, "€", ds.Currency)
	assert.Equal(t, 3, ds.YearsElapsed())
	require.Len(t, ds.Bands, 5)
	require.NotNil(t, ds.GDP)
	assert.True(t, ds.GDP.Equal(decimal.NewFromInt(2800)))

	bottom := ds.Bands[0]
	assert.Equal(t, "P0-P90", bottom.Label)
	assert.Nil(t, bottom.IncomeThreshold, "absent keys stay absent")
	assert.Nil(t, bottom.IndivRate)

	top := ds.Bands[4]
	require.NotNil(t, top.IncomeWealthRatio)
	assert.True(t, top.IncomeWealthRatio.Equal(decimal.RequireFromString("0.09")))
}

func TestInputParser_LoadFromFile_JSONUsesSimulatorKeys(t *testing.T) {
	ds, err := NewInputParser().LoadFromFile(filepath.Join(dataDir, "sampleland.json"))
	require.NoError(t, err)

	assert.Equal(t, "Sampleland", ds.Country)
	assert.Equal(t, 2021, ds.DataYear)
	assert.Equal(t, 2025, ds.SimulationYear)
	assert.Equal(t, []string{"P0-P50", "P50-P90", "P90-P99", "P99-P99.9", "P99.9-Top"}, ds.Labels())

	band, ok := ds.FindBand("P90-P99")
	require.True(t, ok)
	require.NotNil(t, band.Headcount)
	assert.True(t, band.Headcount.Equal(decimal.NewFromInt(900000)))
	assert.True(t, band.NominalGrowthThreshold.Equal(decimal.RequireFromString("0.03")))
}

func TestInputParser_LoadDirectory(t *testing.T) {
	datasets, err := NewInputParser().LoadDirectory(dataDir)
	require.NoError(t, err)

	countries := make([]string, len(datasets))
	for i, ds := range datasets {
		countries[i] = ds.Country
	}
	assert.Equal(t, []string{"Examplia", "Norland", "Sampleland"}, countries)

	ds, ok := FindDataset(datasets, "sampleLAND")
	require.True(t, ok)
	assert.Equal(t, "$", ds.Currency)

	_, ok = FindDataset(datasets, "Atlantis")
	assert.False(t, ok)
}

func TestInputParser_LoadDirectory_Errors(t *testing.T) {
	parser := NewInputParser()

	_, err := parser.LoadDirectory(filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read directory")

	empty := t.TempDir()
	writeFile(t, empty, "README.md", "not a dataset")
	_, err = parser.LoadDirectory(empty)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no dataset files")

	dup := t.TempDir()
	content := "country: Twin\ncurrency: €\ndata_year: 2024\nsimulation_year: 2024\nbands:\n  - label: All\n    total_rate: 0.3\n"
	writeFile(t, dup, "a.yaml", content)
	writeFile(t, dup, "b.yml", content)
	_, err = parser.LoadDirectory(dup)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "defined more than once")
}

func TestInputParser_LoadFromFile_ValidationFailure(t *testing.T) {
	path := writeFile(t, t.TempDir(), "bad.yaml", `
country: Broken
currency: "€"
data_year: 2024
simulation_year: 2022
bands:
  - label: All
`)
	_, err := NewInputParser().LoadFromFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dataset validation failed")

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "simulation_year", verr.Field)
}

func validDataset() *domain.CountryDataset {
	d := domain.DecimalPtr
	return &domain.CountryDataset{
		Country:        "Testland",
		Currency:       "€",
		DataYear:       2024,
		SimulationYear: 2025,
		Bands: []domain.Band{
			{Label: "Bottom", Headcount: d(100), AvgIncome: d(20000), TotalRate: d(0.3)},
			{Label: "Middle", Headcount: d(10), AvgIncome: d(150000), IncomeThreshold: d(100000), IncomeWealthRatio: d(0.2), TotalRate: d(0.4), IndivRate: d(0.3)},
			{Label: "Top", Headcount: d(1), AvgIncome: d(3000000), IncomeThreshold: d(1000000), IncomeWealthRatio: d(0.1), TotalRate: d(0.3), IndivRate: d(0.2)},
		},
	}
}

func TestInputParser_ValidateDataset(t *testing.T) {
	d := domain.DecimalPtr
	tests := []struct {
		name   string
		mutate func(*domain.CountryDataset)
		field  string
	}{
		{"missing country", func(ds *domain.CountryDataset) { ds.Country = " " }, "country"},
		{"missing currency", func(ds *domain.CountryDataset) { ds.Currency = "" }, "currency"},
		{"no bands", func(ds *domain.CountryDataset) { ds.Bands = nil }, "bands"},
		{"duplicate labels", func(ds *domain.CountryDataset) { ds.Bands[2].Label = "Middle" }, "bands"},
		{"negative gdp", func(ds *domain.CountryDataset) { ds.GDP = d(-1) }, "gdp"},
		{"empty label", func(ds *domain.CountryDataset) { ds.Bands[1].Label = "" }, "bands[1].label"},
		{"negative headcount", func(ds *domain.CountryDataset) { ds.Bands[0].Headcount = d(-5) }, "bands[0].headcount"},
		{"rate above one", func(ds *domain.CountryDataset) { ds.Bands[1].TotalRate = d(45) }, "bands[1].total_rate"},
		{"negative indiv rate", func(ds *domain.CountryDataset) { ds.Bands[2].IndivRate = d(-0.1) }, "bands[2].indiv_rate"},
		{"zero ratio", func(ds *domain.CountryDataset) { ds.Bands[2].IncomeWealthRatio = d(0) }, "bands[2].income_wealth_ratio"},
		{"growth at minus one", func(ds *domain.CountryDataset) { ds.Bands[1].PopulationGrowth = d(-1) }, "bands[1].population_growth"},
		{"thresholds not ascending", func(ds *domain.CountryDataset) { ds.Bands[2].IncomeThreshold = d(100000) }, "bands[2].income_threshold"},
	}

	parser := NewInputParser()
	require.NoError(t, parser.ValidateDataset(validDataset()))
	assert.Error(t, parser.ValidateDataset(nil))

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds := validDataset()
			tt.mutate(ds)

			err := parser.ValidateDataset(ds)
			require.Error(t, err)
			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestInputParser_ValidateDataset_AllowsDegenerateBands(t *testing.T) {
	// A band whose average does not exceed its threshold is reported by the
	// engine, not rejected at load time
	ds := validDataset()
	ds.Bands[2].AvgIncome = domain.DecimalPtr(900000)
	assert.NoError(t, NewInputParser().ValidateDataset(ds))
}
