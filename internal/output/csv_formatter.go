package output

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
)

// CSVFormatter exports the rate series with a metadata block after a blank row.
type CSVFormatter struct{}

func (c CSVFormatter) Name() string { return "csv" }

func (c CSVFormatter) Format(report *Report) ([]byte, error) {
	if report == nil || report.Result == nil {
		return nil, fmt.Errorf("no simulation result to format")
	}

	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write([]string{"Income Group", "Current Rate (%)", "Rate Under Reform (%)"}); err != nil {
		return nil, err
	}
	for _, p := range report.Result.Series {
		if err := w.Write([]string{p.Label, csvRate(p.CurrentRatePercent), csvRate(p.ReformRatePercent)}); err != nil {
			return nil, err
		}
	}

	if err := writeMetadataRows(w, report.Metadata); err != nil {
		return nil, err
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// writeMetadataRows appends the footer as key/value rows.
func writeMetadataRows(w *csv.Writer, m Metadata) error {
	rows := [][]string{
		{},
		{"Title", m.Title},
		{"Parameters", m.ParameterLine()},
		{"Generated", m.GeneratedAt.Format("2006-01-02")},
		{"Sources", m.SourcesLine()},
	}
	for _, note := range m.Notes {
		rows = append(rows, []string{"Note", note})
	}
	return w.WriteAll(rows)
}

// csvRate leaves undefined rates empty so spreadsheets read them as blanks.
func csvRate(p *float64) string {
	if p == nil {
		return ""
	}
	return strconv.FormatFloat(*p, 'f', 2, 64)
}
