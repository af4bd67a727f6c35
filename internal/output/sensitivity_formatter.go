package output

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"math"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/rgehrsitz/wealthtax/internal/domain"
)

// SensitivityFormatter defines a formatter for sensitivity analysis
type SensitivityFormatter interface {
	FormatSensitivityAnalysis(analysis any) (string, error)
	Name() string
}

// SensitivityConsoleFormatter formats sensitivity analysis output for console
type SensitivityConsoleFormatter struct{}

func (scf SensitivityConsoleFormatter) Name() string { return "console" }

func (scf SensitivityConsoleFormatter) FormatSensitivityAnalysis(analysis any) (string, error) {
	var buf bytes.Buffer

	switch a := analysis.(type) {
	case *domain.ParameterSensitivityAnalysis:
		return scf.formatSingleAnalysis(&buf, a)
	case *domain.SensitivityMatrix:
		return scf.formatMatrixAnalysis(&buf, a)
	default:
		return "", fmt.Errorf("unsupported analysis type: %T", analysis)
	}
}

func (scf SensitivityConsoleFormatter) formatSingleAnalysis(buf *bytes.Buffer, analysis *domain.ParameterSensitivityAnalysis) (string, error) {
	if len(analysis.Points) == 0 {
		return "", fmt.Errorf("no points in analysis")
	}
	param := analysis.Parameter

	fmt.Fprintf(buf, "SENSITIVITY ANALYSIS: %s (%s)\n", strings.ToUpper(strings.ReplaceAll(param.Name, "_", " ")), analysis.Country)
	fmt.Fprintf(buf, "=================================================================\n")
	fmt.Fprintf(buf, "Base Case: %s, revenue %s\n", describeParameters(analysis.Base.Parameters, analysis.Currency), FormatBillions(analysis.Base.Revenue, analysis.Currency))
	fmt.Fprintf(buf, "Range: %s to %s (%d steps, %s scale)\n",
		parameterValue(param.Name, param.MinValue.InexactFloat64(), analysis.Currency),
		parameterValue(param.Name, param.MaxValue.InexactFloat64(), analysis.Currency),
		param.Steps, param.Scale)
	if param.Description != "" {
		fmt.Fprintf(buf, "Description: %s\n", param.Description)
	}
	fmt.Fprintln(buf)

	fmt.Fprintf(buf, "%-14s %14s %14s %16s\n", param.Name, "Revenue", "Change", "Taxpayers")
	fmt.Fprintln(buf, strings.Repeat("-", 61))
	base := closestPoint(analysis.Points, pointValue(param.Name, analysis.Base), param.Name)
	for i, p := range analysis.Points {
		value := parameterValue(param.Name, pointValue(param.Name, p), analysis.Currency)
		if i == base {
			value += " ← BASE"
		}
		fmt.Fprintf(buf, "%-14s %14s %14s %16s\n",
			value,
			FormatBillions(p.Revenue, analysis.Currency),
			p.RevenueChange.StringFixed(1),
			FormatHeadcount(p.HeadcountAffected))
	}
	fmt.Fprintln(buf)

	fmt.Fprintln(buf, "SUMMARY:")
	fmt.Fprintf(buf, "  Revenue range: %s to %s\n",
		FormatBillions(analysis.Summary.MinRevenue, analysis.Currency),
		FormatBillions(analysis.Summary.MaxRevenue, analysis.Currency))
	fmt.Fprintf(buf, "  Elasticity: %s\n", analysis.Summary.Elasticity.StringFixed(2))

	return buf.String(), nil
}

func (scf SensitivityConsoleFormatter) formatMatrixAnalysis(buf *bytes.Buffer, matrix *domain.SensitivityMatrix) (string, error) {
	if len(matrix.Cells) == 0 || len(matrix.Cells[0]) == 0 {
		return "", fmt.Errorf("empty sensitivity matrix")
	}

	fmt.Fprintf(buf, "SENSITIVITY MATRIX ANALYSIS (%s)\n", matrix.Country)
	fmt.Fprintf(buf, "=================================================================\n")
	fmt.Fprintf(buf, "Rows: %s, columns: %s, cells: revenue in B%s\n", matrix.Parameter1.Name, matrix.Parameter2.Name, matrix.Currency)
	fmt.Fprintln(buf)

	fmt.Fprintf(buf, "%-12s", "")
	for _, cell := range matrix.Cells[0] {
		fmt.Fprintf(buf, " %10s", parameterValue(matrix.Parameter2.Name, pointValue(matrix.Parameter2.Name, cell), matrix.Currency))
	}
	fmt.Fprintln(buf)
	fmt.Fprintln(buf, strings.Repeat("-", 12+11*len(matrix.Cells[0])))

	for _, row := range matrix.Cells {
		fmt.Fprintf(buf, "%-12s", parameterValue(matrix.Parameter1.Name, pointValue(matrix.Parameter1.Name, row[0]), matrix.Currency))
		for _, cell := range row {
			fmt.Fprintf(buf, " %10s", cell.Revenue.StringFixed(1))
		}
		fmt.Fprintln(buf)
	}

	return buf.String(), nil
}

// SensitivityCSVFormatter formats sensitivity analysis output as CSV
type SensitivityCSVFormatter struct{}

func (scf SensitivityCSVFormatter) Name() string { return "csv" }

func (scf SensitivityCSVFormatter) FormatSensitivityAnalysis(analysis any) (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	var rows [][]string
	switch a := analysis.(type) {
	case *domain.ParameterSensitivityAnalysis:
		rows = append(rows, []string{"parameter_name", "parameter_value", "revenue", "revenue_change", "headcount_affected", "warnings"})
		for _, p := range a.Points {
			rows = append(rows, []string{
				a.Parameter.Name,
				strconv.FormatFloat(pointValue(a.Parameter.Name, p), 'f', 4, 64),
				p.Revenue.StringFixed(4),
				p.RevenueChange.StringFixed(4),
				p.HeadcountAffected.StringFixed(0),
				strconv.Itoa(p.Warnings),
			})
		}
	case *domain.SensitivityMatrix:
		rows = append(rows, []string{"parameter_1_name", "parameter_1_value", "parameter_2_name", "parameter_2_value", "revenue", "headcount_affected"})
		for _, row := range a.Cells {
			for _, cell := range row {
				rows = append(rows, []string{
					a.Parameter1.Name,
					strconv.FormatFloat(pointValue(a.Parameter1.Name, cell), 'f', 4, 64),
					a.Parameter2.Name,
					strconv.FormatFloat(pointValue(a.Parameter2.Name, cell), 'f', 4, 64),
					cell.Revenue.StringFixed(4),
					cell.HeadcountAffected.StringFixed(0),
				})
			}
		}
	default:
		return "", fmt.Errorf("unsupported analysis type: %T", analysis)
	}

	if err := w.WriteAll(rows); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// SensitivityJSONFormatter formats sensitivity analysis output as JSON
type SensitivityJSONFormatter struct{}

func (sjf SensitivityJSONFormatter) Name() string { return "json" }

func (sjf SensitivityJSONFormatter) FormatSensitivityAnalysis(analysis any) (string, error) {
	switch analysis.(type) {
	case *domain.ParameterSensitivityAnalysis, *domain.SensitivityMatrix:
	default:
		return "", fmt.Errorf("unsupported analysis type: %T", analysis)
	}
	data, err := json.MarshalIndent(analysis, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// NewSensitivityFormatter creates a sensitivity formatter based on the format name
func NewSensitivityFormatter(format string) SensitivityFormatter {
	switch NormalizeFormatName(format) {
	case "csv":
		return SensitivityCSVFormatter{}
	case "json":
		return SensitivityJSONFormatter{}
	default:
		return SensitivityConsoleFormatter{}
	}
}

// closestPoint finds the sweep point nearest the base value
func closestPoint(points []domain.SensitivityPoint, base float64, name string) int {
	best, bestDiff := -1, math.Inf(1)
	for i, p := range points {
		if diff := math.Abs(pointValue(name, p) - base); diff < bestDiff {
			best, bestDiff = i, diff
		}
	}
	return best
}

func pointValue(name string, p domain.SensitivityPoint) float64 {
	if name == domain.ParamThreshold {
		return p.Parameters.Threshold
	}
	return p.Parameters.TaxRate
}

// parameterValue renders a threshold in millions or a rate in percent
func parameterValue(name string, v float64, currency string) string {
	if name == domain.ParamThreshold {
		return FormatThreshold(v, currency)
	}
	return trimFloat(v*100) + "%"
}

func describeParameters(p domain.ReformParameters, currency string) string {
	return fmt.Sprintf("%s%% above %s", trimFloat(p.TaxRatePercent()), FormatThreshold(p.Threshold, currency))
}
