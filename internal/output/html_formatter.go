package output

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"strings"

	"github.com/rgehrsitz/wealthtax/internal/domain"
)

// HTMLFormatter produces a standalone HTML page with the rate chart as
// inline SVG, the band table and the metadata footer.
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"rate":      FormatRatePercent,
	"billions":  FormatBillions,
	"headcount": FormatHeadcount,
	"pct":       FormatPercentage,
	"threshold": FormatThreshold,
	"share":     func(f float64) string { return fmt.Sprintf("%.1f%%", f*100) },
}).Parse(htmlTemplateSource))

// Chart geometry, in SVG user units
const (
	chartWidth   = 640.0
	chartHeight  = 280.0
	chartPadding = 40.0
)

// svgChart holds polyline point lists for the two rate curves.
type svgChart struct {
	Width, Height float64
	Current       string
	Reform        string
	Labels        []svgLabel
	MaxPercent    float64
}

type svgLabel struct {
	X    float64
	Text string
}

func (h HTMLFormatter) Format(report *Report) ([]byte, error) {
	if report == nil || report.Result == nil {
		return nil, fmt.Errorf("no simulation result to format")
	}

	var buf bytes.Buffer
	data := struct {
		*Report
		Chart  svgChart
		Footer []string
	}{report, buildChart(report.Result.Series), report.Metadata.FooterLines()}
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// buildChart lays out the series on evenly spaced x positions. Undefined
// rates are skipped, leaving a gap.
func buildChart(series []domain.RatePoint) svgChart {
	chart := svgChart{Width: chartWidth, Height: chartHeight}
	for _, p := range series {
		for _, v := range []*float64{p.CurrentRatePercent, p.ReformRatePercent} {
			if v != nil && *v > chart.MaxPercent {
				chart.MaxPercent = *v
			}
		}
	}
	if chart.MaxPercent == 0 || len(series) == 0 {
		return chart
	}
	top := chart.MaxPercent * 1.1

	x := func(i int) float64 {
		if len(series) == 1 {
			return chartWidth / 2
		}
		return chartPadding + float64(i)*(chartWidth-2*chartPadding)/float64(len(series)-1)
	}
	y := func(v float64) float64 {
		return chartHeight - chartPadding - v/top*(chartHeight-2*chartPadding)
	}

	var current, reform []string
	for i, p := range series {
		if p.CurrentRatePercent != nil {
			current = append(current, fmt.Sprintf("%.1f,%.1f", x(i), y(*p.CurrentRatePercent)))
		}
		if p.ReformRatePercent != nil {
			reform = append(reform, fmt.Sprintf("%.1f,%.1f", x(i), y(*p.ReformRatePercent)))
		}
		chart.Labels = append(chart.Labels, svgLabel{X: x(i), Text: p.Label})
	}
	chart.Current = strings.Join(current, " ")
	chart.Reform = strings.Join(reform, " ")
	return chart
}
