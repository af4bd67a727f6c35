package compare

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/wealthtax/internal/output"
)

// TableFormatter formats comparison results as a console table
type TableFormatter struct{}

// Format generates a formatted table of current rates by group and country
func (tf *TableFormatter) Format(compSet *ComparisonSet) string {
	var sb strings.Builder

	groupWidth := 14
	colWidth := 12
	width := groupWidth + (colWidth+1)*len(compSet.Countries)
	if width < 60 {
		width = 60
	}

	meta := output.ComparisonMetadata(compSet.CountryNames(), compSet.GeneratedAt)
	sb.WriteString(strings.ToUpper(meta.Title) + "\n")
	sb.WriteString(strings.Repeat("=", width) + "\n")
	sb.WriteString("Current effective tax rate (% of pre-tax income)\n\n")

	sb.WriteString(fmt.Sprintf("%-*s", groupWidth, "Income Group"))
	for _, c := range compSet.Countries {
		sb.WriteString(fmt.Sprintf(" %*s", colWidth, tf.truncate(c.Country, colWidth)))
	}
	sb.WriteString("\n" + strings.Repeat("-", width) + "\n")

	for _, row := range compSet.Rows {
		sb.WriteString(fmt.Sprintf("%-*s", groupWidth, tf.truncate(row.Group, groupWidth)))
		for _, rate := range row.Rates {
			sb.WriteString(fmt.Sprintf(" %*s", colWidth, output.FormatRatePercent(rate)))
		}
		sb.WriteString("\n")
	}
	sb.WriteString(strings.Repeat("=", width) + "\n")

	if compSet.Parameters != nil && len(compSet.Revenues) > 0 {
		sb.WriteString(fmt.Sprintf("\nREVENUE UNDER A %s%% TAX ABOVE %gM\n",
			trimPercent(compSet.Parameters.TaxRatePercent()), compSet.Parameters.Threshold))
		sb.WriteString(strings.Repeat("-", width) + "\n")
		sb.WriteString(fmt.Sprintf("%-*s %14s %14s %12s\n", groupWidth, "Country", "Revenue", "Taxpayers", "% of GDP"))
		for _, r := range compSet.Revenues {
			gdp := output.NotAvailable
			if r.RevenueShareOfGDP != nil {
				gdp = output.FormatPercentage(*r.RevenueShareOfGDP)
			}
			sb.WriteString(fmt.Sprintf("%-*s %14s %14s %12s\n",
				groupWidth, tf.truncate(r.Country, groupWidth),
				output.FormatBillions(r.Revenue, r.Currency),
				output.FormatHeadcount(r.HeadcountAffected),
				gdp))
		}
	}

	if len(compSet.Notes) > 0 {
		sb.WriteString("\nNOTES\n")
		sb.WriteString(strings.Repeat("-", width) + "\n")
		for _, note := range compSet.Notes {
			sb.WriteString(fmt.Sprintf("• %s\n", note))
		}
	}

	sb.WriteString("\n")
	for _, line := range meta.FooterLines()[1:] {
		sb.WriteString(line + "\n")
	}

	return sb.String()
}

// FormatCompact creates a single-line summary of the top group's rate per country
func (tf *TableFormatter) FormatCompact(compSet *ComparisonSet) string {
	if len(compSet.Rows) == 0 {
		return ""
	}
	top := compSet.Rows[len(compSet.Rows)-1]
	parts := make([]string, len(compSet.Countries))
	for i, c := range compSet.Countries {
		parts[i] = fmt.Sprintf("%s: %s", c.Country, output.FormatRatePercent(top.Rates[i]))
	}
	return top.Group + " | " + strings.Join(parts, " | ")
}

// truncate truncates a string to maxLen
func (tf *TableFormatter) truncate(s string, maxLen int) string {
	if len([]rune(s)) <= maxLen {
		return s
	}
	return string([]rune(s)[:maxLen-3]) + "..."
}

func trimPercent(p float64) string {
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", p), "0"), ".")
}
