package breakeven

import (
	"fmt"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/wealthtax/internal/output"
)

// TableFormatter formats optimization results as a console table
type TableFormatter struct{}

// Format generates a formatted table for optimization result
func (tf *TableFormatter) Format(result *OptimizationResult) string {
	var sb strings.Builder
	currency := tf.currency(result)

	sb.WriteString("BREAK-EVEN OPTIMIZATION RESULTS\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")

	// Optimization metadata
	if result.Simulation != nil {
		sb.WriteString(fmt.Sprintf("Country:             %s (%d)\n", result.Simulation.Country, result.Simulation.SimulationYear))
	}
	sb.WriteString(fmt.Sprintf("Optimization Target: %s\n", result.Request.Target))
	sb.WriteString(fmt.Sprintf("Optimization Goal:   %s\n", result.Request.Goal))
	sb.WriteString(fmt.Sprintf("Status:              %s\n", tf.formatStatus(result.Success)))
	sb.WriteString(fmt.Sprintf("Iterations:          %d\n", result.Iterations))
	if result.ConvergenceInfo != "" {
		sb.WriteString(fmt.Sprintf("Convergence:         %s\n", result.ConvergenceInfo))
	}
	sb.WriteString("\n")

	sb.WriteString("OPTIMAL PARAMETERS\n")
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Tax Rate:            %s%s\n", tf.formatRate(result.Parameters.TaxRate), tf.solvedMark(result.OptimalTaxRate)))
	sb.WriteString(fmt.Sprintf("Threshold:           %s%s\n",
		output.FormatThreshold(tf.round(result.Parameters.Threshold), currency), tf.solvedMark(result.OptimalThreshold)))
	sb.WriteString("\n")

	sb.WriteString("PROJECTED RESULTS\n")
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Additional Revenue:  %s\n", output.FormatBillions(result.Revenue, currency)))
	sb.WriteString(fmt.Sprintf("Taxpayers Affected:  %s\n", output.FormatHeadcount(result.HeadcountAffected)))
	if result.Simulation != nil && result.Simulation.RevenueShareOfGDP != nil {
		sb.WriteString(fmt.Sprintf("Share of GDP:        %s\n", output.FormatPercentage(*result.Simulation.RevenueShareOfGDP)))
	}
	sb.WriteString("\n")

	sb.WriteString("TARGET MATCH\n")
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	diff := result.GoalValue.Sub(result.GoalTarget)
	if result.Request.Goal == GoalMatchHeadcount {
		sb.WriteString(fmt.Sprintf("Target Headcount:    %s\n", output.FormatHeadcount(result.GoalTarget)))
		sb.WriteString(fmt.Sprintf("Achieved Headcount:  %s\n", output.FormatHeadcount(result.GoalValue)))
		sb.WriteString(fmt.Sprintf("Difference:          %s%s\n", tf.deltaSymbol(diff), diff.StringFixed(1)))
	} else {
		sb.WriteString(fmt.Sprintf("Target Revenue:      %s\n", output.FormatBillions(result.GoalTarget, currency)))
		sb.WriteString(fmt.Sprintf("Achieved Revenue:    %s\n", output.FormatBillions(result.GoalValue, currency)))
		sb.WriteString(fmt.Sprintf("Difference:          %s%s B%s\n", tf.deltaSymbol(diff), diff.StringFixed(4), currency))
	}

	if result.Simulation != nil && result.Simulation.HasWarnings() {
		sb.WriteString("\nWARNINGS:\n")
		for _, w := range result.Simulation.Warnings {
			sb.WriteString(fmt.Sprintf("• %s\n", w))
		}
	}

	return sb.String()
}

// FormatMultiDimensional formats results from multiple optimizations
func (tf *TableFormatter) FormatMultiDimensional(result *MultiDimensionalResult) string {
	var sb strings.Builder

	sb.WriteString("MULTI-DIMENSIONAL OPTIMIZATION RESULTS\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n\n")

	sb.WriteString("SUMMARY OF ALL OPTIMIZATIONS\n")
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	sb.WriteString(fmt.Sprintf("%-14s %10s %14s %16s %16s\n",
		"Optimization", "Tax Rate", "Threshold", "Revenue", "Taxpayers"))
	sb.WriteString(strings.Repeat("-", 80) + "\n")

	for i := range result.Results {
		res := &result.Results[i]
		currency := tf.currency(res)
		sb.WriteString(fmt.Sprintf("%-14s %10s %14s %16s %16s\n",
			tf.truncate(string(res.Request.Target), 14),
			tf.formatRate(res.Parameters.TaxRate),
			output.FormatThreshold(tf.round(res.Parameters.Threshold), currency),
			output.FormatBillions(res.Revenue, currency),
			output.FormatHeadcount(res.HeadcountAffected)))
	}
	sb.WriteString("\n")

	if len(result.Recommendations) > 0 {
		sb.WriteString("RECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, rec := range result.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// JSONFormatter formats results as JSON
type JSONFormatter struct {
	Pretty bool
}

// Format generates JSON output
func (jf *JSONFormatter) Format(result *OptimizationResult) (string, error) {
	return jf.marshal(result)
}

// FormatMultiDimensional formats multi-dimensional results as JSON
func (jf *JSONFormatter) FormatMultiDimensional(result *MultiDimensionalResult) (string, error) {
	return jf.marshal(result)
}

func (jf *JSONFormatter) marshal(v any) (string, error) {
	var data []byte
	var err error

	if jf.Pretty {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}

	if err != nil {
		return "", err
	}

	return string(data), nil
}

// Helper methods

func (tf *TableFormatter) formatStatus(success bool) string {
	if success {
		return "✓ Converged"
	}
	return "⚠ Did not converge"
}

func (tf *TableFormatter) formatRate(rate float64) string {
	return fmt.Sprintf("%.3f%%", rate*100)
}

func (tf *TableFormatter) solvedMark(v *decimal.Decimal) string {
	if v == nil {
		return ""
	}
	return " (solved)"
}

func (tf *TableFormatter) round(millions float64) float64 {
	return decimal.NewFromFloat(millions).Round(2).InexactFloat64()
}

func (tf *TableFormatter) currency(result *OptimizationResult) string {
	if result.Simulation != nil {
		return result.Simulation.Currency
	}
	return ""
}

func (tf *TableFormatter) deltaSymbol(delta decimal.Decimal) string {
	if delta.IsPositive() {
		return "+"
	} else if delta.IsNegative() {
		return ""
	}
	return " "
}

func (tf *TableFormatter) truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
