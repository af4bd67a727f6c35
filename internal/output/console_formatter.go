package output

import (
	"bytes"
	"fmt"
	"strings"
)

// ConsoleFormatter renders a simulation as a plain-text table.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(report *Report) ([]byte, error) {
	if report == nil || report.Result == nil {
		return nil, fmt.Errorf("no simulation result to format")
	}
	r := report.Result

	var buf bytes.Buffer
	title := fmt.Sprintf("MINIMUM WEALTH TAX: %s (%d)", strings.ToUpper(r.Country), r.SimulationYear)
	fmt.Fprintln(&buf, title)
	fmt.Fprintln(&buf, strings.Repeat("=", len(title)))
	fmt.Fprintf(&buf, "Tax rate: %.2f%% of net wealth above %s\n", r.Parameters.TaxRatePercent(), FormatThreshold(r.Parameters.Threshold, r.Currency))
	fmt.Fprintln(&buf)

	fmt.Fprintf(&buf, "%-16s %16s %22s %12s %14s %14s\n",
		"Income Group", "Current Rate (%)", "Rate Under Reform (%)", "Share Above", "Taxpayers", "Revenue")
	fmt.Fprintln(&buf, strings.Repeat("-", 99))
	for i, band := range r.Bands {
		point := r.Series[i]
		fmt.Fprintf(&buf, "%-16s %16s %22s %12s %14s %14s\n",
			band.Label,
			FormatRatePercent(point.CurrentRatePercent),
			FormatRatePercent(point.ReformRatePercent),
			fmt.Sprintf("%.1f%%", band.WealthShareAbove*100),
			fmt.Sprintf("%.0f", band.HeadcountAbove),
			fmt.Sprintf("%.2f B%s", band.ExtraRevenue, r.Currency),
		)
	}
	fmt.Fprintln(&buf, strings.Repeat("-", 99))
	fmt.Fprintln(&buf)

	fmt.Fprintf(&buf, "Additional revenue:  %s\n", FormatBillions(r.TotalRevenue, r.Currency))
	fmt.Fprintf(&buf, "Taxpayers affected:  %s\n", FormatHeadcount(r.TotalHeadcountAffected))
	if r.RevenueShareOfGDP != nil {
		fmt.Fprintf(&buf, "Share of GDP:        %s\n", FormatPercentage(*r.RevenueShareOfGDP))
	}
	if r.RevenueShareOfDeficit != nil {
		fmt.Fprintf(&buf, "Share of deficit:    %s\n", FormatPercentage(*r.RevenueShareOfDeficit))
	}

	if r.HasWarnings() {
		fmt.Fprintln(&buf)
		fmt.Fprintln(&buf, "WARNINGS:")
		for _, w := range r.Warnings {
			fmt.Fprintf(&buf, "  • %s\n", w)
		}
	}

	fmt.Fprintln(&buf)
	for _, line := range report.Metadata.FooterLines() {
		fmt.Fprintln(&buf, line)
	}
	return buf.Bytes(), nil
}
