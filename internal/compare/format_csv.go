package compare

import (
	"encoding/csv"
	"strconv"
	"strings"

	"github.com/rgehrsitz/wealthtax/internal/output"
)

// CSVFormatter formats comparison results as CSV
type CSVFormatter struct{}

// Format writes one row per income group with a rate column per country,
// followed by the export footer.
func (cf *CSVFormatter) Format(compSet *ComparisonSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := append([]string{"group", "x"}, compSet.CountryNames()...)
	if err := writer.Write(header); err != nil {
		return "", err
	}

	for _, row := range compSet.Rows {
		if err := writer.Write(cf.formatRow(row)); err != nil {
			return "", err
		}
	}

	if len(compSet.Revenues) > 0 {
		rows := [][]string{{}, {"country", "revenue", "headcount_affected", "revenue_share_of_gdp"}}
		for _, r := range compSet.Revenues {
			gdp := ""
			if r.RevenueShareOfGDP != nil {
				gdp = r.RevenueShareOfGDP.StringFixed(4)
			}
			rows = append(rows, []string{r.Country, r.Revenue.StringFixed(4), r.HeadcountAffected.StringFixed(0), gdp})
		}
		if err := writer.WriteAll(rows); err != nil {
			return "", err
		}
	}

	meta := output.ComparisonMetadata(compSet.CountryNames(), compSet.GeneratedAt)
	footer := [][]string{
		{},
		{"Title", meta.Title},
		{"Parameters", meta.ParameterLine()},
		{"Generated", meta.GeneratedAt.Format("2006-01-02")},
		{"Sources", meta.SourcesLine()},
		{"Note", strings.Join(meta.Notes, " ")},
	}
	if err := writer.WriteAll(footer); err != nil {
		return "", err
	}

	return sb.String(), nil
}

// formatRow formats a rate row; missing rates are empty cells
func (cf *CSVFormatter) formatRow(row RateRow) []string {
	cells := []string{row.Group, strconv.Itoa(row.X)}
	for _, rate := range row.Rates {
		if rate == nil {
			cells = append(cells, "")
			continue
		}
		cells = append(cells, strconv.FormatFloat(*rate, 'f', 2, 64))
	}
	return cells
}
