package output

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatterFunc(t *testing.T) {
	called := false
	var received *Report

	formatter := FormatterFunc{
		ID: "test-formatter",
		F: func(r *Report) ([]byte, error) {
			called = true
			received = r
			return []byte("test output"), nil
		},
	}

	report := buildTestReport()
	out, err := formatter.Format(report)

	assert.NoError(t, err)
	assert.True(t, called, "Should call the function")
	assert.Same(t, report, received, "Should pass the report")
	assert.Equal(t, []byte("test output"), out)
	assert.Equal(t, "test-formatter", formatter.Name())
}

func TestGetFormatterByName(t *testing.T) {
	tests := map[string]string{
		"console":     "console",
		"  TABLE ":    "console",
		"text":        "console",
		"csv":         "csv",
		"spreadsheet": "csv",
		"json-pretty": "json",
		"html":        "html",
	}
	for name, want := range tests {
		f := GetFormatterByName(name)
		require.NotNil(t, f, name)
		assert.Equal(t, want, f.Name())
	}
	assert.Nil(t, GetFormatterByName("png"))
	assert.Nil(t, GetFormatterByName("xlsx"))
}

func TestAvailableFormatterNames(t *testing.T) {
	assert.Equal(t, []string{"console", "csv", "html", "json"}, AvailableFormatterNames())
	assert.Contains(t, AvailableFormatAliases(), "table")
	assert.IsIncreasing(t, AvailableFormatAliases())
}

func TestExportFilename(t *testing.T) {
	assert.Equal(t, "wealth-tax-simulation-france-1741944600000.csv",
		ExportFilename(KindSimulation, "France", "csv", generatedAt))
	assert.Equal(t, "wealth-tax-simulation-united-states-1741944600000.json",
		ExportFilename(KindSimulation, "United States", "json", generatedAt))
	assert.Equal(t, "tax-rates-comparison-all-1741944600000.html",
		ExportFilename(KindComparison, "", "html", generatedAt))
}

func TestWriteFormatted(t *testing.T) {
	dir := t.TempDir()

	path, err := WriteFormatted(CSVFormatter{}, buildTestReport(), dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "wealth-tax-simulation-france-1741944600000.csv"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "Income Group,"))

	path, err = WriteFormatted(ConsoleFormatter{}, buildTestReport(), dir)
	require.NoError(t, err)
	assert.Equal(t, ".txt", filepath.Ext(path))
}

func TestWriteFormatted_FormatError(t *testing.T) {
	failing := FormatterFunc{ID: "broken", F: func(*Report) ([]byte, error) { return nil, assert.AnError }}

	_, err := WriteFormatted(failing, buildTestReport(), t.TempDir())
	require.ErrorIs(t, err, assert.AnError)
	assert.Contains(t, err.Error(), "failed to format broken output")
}

func TestConsoleFormatter(t *testing.T) {
	out, err := ConsoleFormatter{}.Format(buildTestReport())
	require.NoError(t, err)
	text := string(out)

	assert.Contains(t, text, "MINIMUM WEALTH TAX: FRANCE (2025)")
	assert.Contains(t, text, "Tax rate: 2.00% of net wealth above 100M€")
	assert.Contains(t, text, "Rate Under Reform (%)")
	assert.Contains(t, text, "35.0%")
	assert.Contains(t, text, "n/a", "undefined reform rate")
	assert.Contains(t, text, "Additional revenue:  12.3 B€")
	assert.Contains(t, text, "Taxpayers affected:  1,234")
	assert.Contains(t, text, "Share of GDP:        0.43%")
	assert.NotContains(t, text, "Share of deficit")
	assert.Contains(t, text, "WARNINGS:")
	assert.Contains(t, text, "Wealth Tax Simulation")
	assert.Contains(t, text, "Country: France | Threshold: 100M€ | Tax rate: 2%")
	assert.Contains(t, text, "Sources: International Tax Observatory, based on Bozio et al. (2020)")
	assert.Contains(t, text, "Generated on 2025-03-14")
}

func TestFormatters_RejectEmptyReport(t *testing.T) {
	for _, f := range []Formatter{ConsoleFormatter{}, CSVFormatter{}, HTMLFormatter{}} {
		_, err := f.Format(&Report{})
		assert.Error(t, err, f.Name())
	}
}

func TestCSVFormatter(t *testing.T) {
	out, err := CSVFormatter{}.Format(buildTestReport())
	require.NoError(t, err)

	r := csv.NewReader(strings.NewReader(string(out)))
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	require.NoError(t, err)

	assert.Equal(t, []string{"Income Group", "Current Rate (%)", "Rate Under Reform (%)"}, records[0])
	assert.Equal(t, []string{"P0-P90", "45.00", "45.00"}, records[1])
	assert.Equal(t, []string{"P99.9-Top", "30.00", "35.03"}, records[2])
	assert.Equal(t, []string{"Broken", "25.00", ""}, records[3])

	var meta = map[string]string{}
	for _, rec := range records[4:] {
		if len(rec) == 2 && rec[0] != "Note" {
			meta[rec[0]] = rec[1]
		}
	}
	assert.Equal(t, "Wealth Tax Simulation", meta["Title"])
	assert.Equal(t, "Country: France | Threshold: 100M€ | Tax rate: 2%", meta["Parameters"])
	assert.Equal(t, "2025-03-14", meta["Generated"])
}

func TestJSONFormatter(t *testing.T) {
	out, err := JSONFormatter{}.Format(buildTestReport())
	require.NoError(t, err)

	var decoded struct {
		Result struct {
			Country      string `json:"country"`
			TotalRevenue string `json:"totalRevenue"`
			Series       []struct {
				Label             string   `json:"label"`
				ReformRatePercent *float64 `json:"reformRatePercent"`
			} `json:"series"`
		} `json:"result"`
		Metadata struct {
			Kind           string   `json:"kind"`
			TaxRatePercent *float64 `json:"taxRatePercent"`
		} `json:"metadata"`
	}
	require.NoError(t, json.Unmarshal(out, &decoded))

	assert.Equal(t, "France", decoded.Result.Country)
	assert.Equal(t, "12.345", decoded.Result.TotalRevenue)
	require.Len(t, decoded.Result.Series, 3)
	assert.Nil(t, decoded.Result.Series[2].ReformRatePercent, "undefined rates serialize as null")
	assert.Equal(t, "simulation", decoded.Metadata.Kind)
	require.NotNil(t, decoded.Metadata.TaxRatePercent)
	assert.Equal(t, 2.0, *decoded.Metadata.TaxRatePercent)
}

func TestHTMLFormatter(t *testing.T) {
	out, err := HTMLFormatter{}.Format(buildTestReport())
	require.NoError(t, err)
	html := string(out)

	assert.Contains(t, html, "<title>Wealth Tax Simulation - France</title>")
	assert.Contains(t, html, "<polyline class=\"current\"")
	assert.Contains(t, html, "<td>P99.9-Top</td>")
	assert.Contains(t, html, "<td>n/a</td>")
	assert.Contains(t, html, "12.3 B€")
	assert.Contains(t, html, "<strong>Wealth Tax Simulation</strong>")
	assert.Contains(t, html, "reform rate cannot be computed")
}

func TestBuildChart(t *testing.T) {
	result := buildTestResult()
	chart := buildChart(result.Series)

	assert.Equal(t, 45.0, chart.MaxPercent)
	assert.Len(t, strings.Fields(chart.Current), 3)
	assert.Len(t, strings.Fields(chart.Reform), 2, "undefined reform rate leaves a gap")
	require.Len(t, chart.Labels, 3)
	assert.Equal(t, chartPadding, chart.Labels[0].X)
	assert.Equal(t, chartWidth-chartPadding, chart.Labels[2].X)

	empty := buildChart(nil)
	assert.Empty(t, empty.Current)
}
