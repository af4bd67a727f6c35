package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/rgehrsitz/wealthtax/internal/domain"
)

// ValidationError describes a malformed dataset field
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// InputParser handles parsing of country dataset files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a dataset from a YAML or JSON file. The format is
// chosen by extension; anything other than .json is read as YAML.
func (ip *InputParser) LoadFromFile(filename string) (*domain.CountryDataset, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var ds *domain.CountryDataset
	if isJSON(filename) {
		ds, err = ip.ParseJSON(data)
	} else {
		ds, err = ip.ParseYAML(data)
	}
	if err != nil {
		return nil, err
	}

	if err := ip.ValidateDataset(ds); err != nil {
		return nil, fmt.Errorf("dataset validation failed for %s: %w", filename, err)
	}

	return ds, nil
}

// ParseYAML decodes a dataset with snake_case keys
func (ip *InputParser) ParseYAML(data []byte) (*domain.CountryDataset, error) {
	var ds domain.CountryDataset
	if err := yaml.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return &ds, nil
}

// ParseJSON decodes a dataset using the simulator's camelCase data keys
// (group, n, avgIncome, ...)
func (ip *InputParser) ParseJSON(data []byte) (*domain.CountryDataset, error) {
	var ds domain.CountryDataset
	if err := json.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	return &ds, nil
}

// LoadDirectory loads every dataset file in dir, sorted by country name.
// Files that fail to load abort the whole load.
func (ip *InputParser) LoadDirectory(dir string) ([]*domain.CountryDataset, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	files := lo.FilterMap(entries, func(e os.DirEntry, _ int) (string, bool) {
		return filepath.Join(dir, e.Name()), !e.IsDir() && isDatasetFile(e.Name())
	})
	if len(files) == 0 {
		return nil, fmt.Errorf("no dataset files found in %s", dir)
	}

	datasets := make([]*domain.CountryDataset, 0, len(files))
	for _, f := range files {
		ds, err := ip.LoadFromFile(f)
		if err != nil {
			return nil, err
		}
		datasets = append(datasets, ds)
	}

	if dup := lo.FindDuplicatesBy(datasets, func(ds *domain.CountryDataset) string {
		return strings.ToLower(ds.Country)
	}); len(dup) > 0 {
		return nil, fmt.Errorf("country %q is defined more than once in %s", dup[0].Country, dir)
	}

	sort.Slice(datasets, func(i, j int) bool {
		return datasets[i].Country < datasets[j].Country
	})
	return datasets, nil
}

// FindDataset returns the dataset for country, matched case-insensitively
func FindDataset(datasets []*domain.CountryDataset, country string) (*domain.CountryDataset, bool) {
	return lo.Find(datasets, func(ds *domain.CountryDataset) bool {
		return strings.EqualFold(ds.Country, country)
	})
}

// ValidateDataset rejects datasets the engine cannot meaningfully evaluate
func (ip *InputParser) ValidateDataset(ds *domain.CountryDataset) error {
	if ds == nil {
		return invalid("dataset", "is empty")
	}
	if strings.TrimSpace(ds.Country) == "" {
		return invalid("country", "is required")
	}
	if strings.TrimSpace(ds.Currency) == "" {
		return invalid("currency", "is required")
	}
	if ds.SimulationYear < ds.DataYear {
		return invalid("simulation_year", "%d is before data year %d", ds.SimulationYear, ds.DataYear)
	}
	if len(ds.Bands) == 0 {
		return invalid("bands", "at least one band is required")
	}
	if dup := lo.FindDuplicates(ds.Labels()); len(dup) > 0 {
		return invalid("bands", "duplicate label %q", dup[0])
	}
	if err := validateNonNegative("gdp", ds.GDP); err != nil {
		return err
	}
	if err := validateNonNegative("deficit", ds.Deficit); err != nil {
		return err
	}

	var prevThreshold *decimal.Decimal
	var prevLabel string
	for i, band := range ds.Bands {
		if err := ip.validateBand(i, &band); err != nil {
			return err
		}
		if band.IncomeThreshold == nil {
			continue
		}
		if prevThreshold != nil && !band.IncomeThreshold.GreaterThan(*prevThreshold) {
			return invalid(fmt.Sprintf("bands[%d].income_threshold", i),
				"%s must exceed the threshold of %s (%s)", band.IncomeThreshold, prevLabel, prevThreshold)
		}
		prevThreshold, prevLabel = band.IncomeThreshold, band.Label
	}

	return nil
}

// validateBand validates the fields of a single band
func (ip *InputParser) validateBand(index int, band *domain.Band) error {
	field := func(name string) string {
		return fmt.Sprintf("bands[%d].%s", index, name)
	}

	if strings.TrimSpace(band.Label) == "" {
		return invalid(field("label"), "is required")
	}
	if err := validateNonNegative(field("headcount"), band.Headcount); err != nil {
		return err
	}
	if err := validateNonNegative(field("avg_income"), band.AvgIncome); err != nil {
		return err
	}
	if err := validateNonNegative(field("income_threshold"), band.IncomeThreshold); err != nil {
		return err
	}
	if err := validateFraction(field("total_rate"), band.TotalRate); err != nil {
		return err
	}
	if err := validateFraction(field("indiv_rate"), band.IndivRate); err != nil {
		return err
	}
	if err := validateFraction(field("income_wealth_ratio"), band.IncomeWealthRatio); err != nil {
		return err
	}
	if band.IncomeWealthRatio != nil && band.IncomeWealthRatio.IsZero() {
		return invalid(field("income_wealth_ratio"), "must be positive")
	}

	minusOne := decimal.NewFromInt(-1)
	for _, g := range []struct {
		name string
		rate *decimal.Decimal
	}{
		{"nominal_growth_avg", band.NominalGrowthAvg},
		{"nominal_growth_threshold", band.NominalGrowthThreshold},
		{"population_growth", band.PopulationGrowth},
	} {
		if g.rate != nil && g.rate.LessThanOrEqual(minusOne) {
			return invalid(field(g.name), "growth rate %s must exceed -1", g.rate)
		}
	}

	return nil
}

func validateNonNegative(field string, d *decimal.Decimal) error {
	if d != nil && d.IsNegative() {
		return invalid(field, "must not be negative, got %s", d)
	}
	return nil
}

func validateFraction(field string, d *decimal.Decimal) error {
	if d == nil {
		return nil
	}
	if d.IsNegative() || d.GreaterThan(decimal.NewFromInt(1)) {
		return invalid(field, "must be a fraction between 0 and 1, got %s", d)
	}
	return nil
}

func isJSON(filename string) bool {
	return strings.EqualFold(filepath.Ext(filename), ".json")
}

func isDatasetFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml", ".json":
		return true
	}
	return false
}
