package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/wealthtax/internal/tui/tuistyles"
)

// DataSeries represents a single line in a chart. A nil point is a gap.
type DataSeries struct {
	Name   string
	Points []*float64
	Color  lipgloss.Color
}

// ASCIIChart displays a simple line chart
type ASCIIChart struct {
	Title      string
	Series     []*DataSeries
	Labels     []string  // X-axis labels, one per point
	XPositions []float64 // optional point positions on a 0-100 axis
	Width      int
	Height     int
	ShowLegend bool
	XAxisLabel string
	YFormat    func(float64) string
}

// NewASCIIChart creates a new ASCII chart
func NewASCIIChart(title string) *ASCIIChart {
	return &ASCIIChart{
		Title:      title,
		Width:      60,
		Height:     12,
		ShowLegend: true,
		YFormat:    func(v float64) string { return fmt.Sprintf("%.0f%%", v) },
	}
}

// AddSeries adds a data series to the chart
func (c *ASCIIChart) AddSeries(name string, points []*float64, color lipgloss.Color) *ASCIIChart {
	c.Series = append(c.Series, &DataSeries{
		Name:   name,
		Points: points,
		Color:  color,
	})
	return c
}

// WithLabels sets the X-axis labels
func (c *ASCIIChart) WithLabels(labels []string) *ASCIIChart {
	c.Labels = labels
	return c
}

// WithXPositions places points along a 0-100 axis instead of evenly
func (c *ASCIIChart) WithXPositions(xs []float64) *ASCIIChart {
	c.XPositions = xs
	return c
}

// WithSize sets the chart dimensions
func (c *ASCIIChart) WithSize(width, height int) *ASCIIChart {
	c.Width = width
	c.Height = height
	return c
}

// WithXAxisLabel sets the X-axis caption
func (c *ASCIIChart) WithXAxisLabel(label string) *ASCIIChart {
	c.XAxisLabel = label
	return c
}

// Render returns the styled chart
func (c *ASCIIChart) Render() string {
	c.Height = max(c.Height, 2)
	lo, hi, ok := c.bounds()
	if !ok {
		return tuistyles.InfoStyle.Render("No data to display")
	}

	var content strings.Builder
	if c.Title != "" {
		content.WriteString(lipgloss.NewStyle().Bold(true).Foreground(tuistyles.ColorPrimary).Render(c.Title))
		content.WriteString("\n\n")
	}

	content.WriteString(c.renderGrid(lo, hi))

	if c.XAxisLabel != "" {
		content.WriteString("\n")
		content.WriteString(lipgloss.NewStyle().Foreground(tuistyles.ColorMuted).Italic(true).Render(c.XAxisLabel))
	}

	if c.ShowLegend && len(c.Series) > 1 {
		content.WriteString("\n")
		content.WriteString(c.renderLegend())
	}

	return content.String()
}

// bounds returns the y range over every defined point, anchored at zero
// for non-negative data
func (c *ASCIIChart) bounds() (lo, hi float64, ok bool) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, s := range c.Series {
		for _, p := range s.Points {
			if p == nil {
				continue
			}
			lo = math.Min(lo, *p)
			hi = math.Max(hi, *p)
			ok = true
		}
	}
	if !ok {
		return 0, 0, false
	}
	if lo >= 0 {
		lo = 0
	}
	if hi == lo {
		hi = lo + 1
	}
	hi += (hi - lo) * 0.1
	return lo, hi, true
}

const yAxisWidth = 8

func (c *ASCIIChart) plotWidth() int {
	return max(2, c.Width-yAxisWidth-3)
}

// column maps point i of n to a grid column
func (c *ASCIIChart) column(i, n int) int {
	w := c.plotWidth() - 1
	if i < len(c.XPositions) {
		return int(math.Round(c.XPositions[i] / 100 * float64(w)))
	}
	if n <= 1 {
		return 0
	}
	return int(math.Round(float64(i) / float64(n-1) * float64(w)))
}

func (c *ASCIIChart) row(v, lo, hi float64) int {
	return c.Height - 1 - int(math.Round((v-lo)/(hi-lo)*float64(c.Height-1)))
}

// renderGrid renders the chart grid with data points
func (c *ASCIIChart) renderGrid(lo, hi float64) string {
	width := c.plotWidth()
	grid := make([][]rune, c.Height)
	owner := make([][]int, c.Height)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(" ", width))
		owner[i] = make([]int, width)
	}

	for si, s := range c.Series {
		mark := seriesChar(si)
		prevX, prevY, havePrev := 0, 0, false
		for i, p := range s.Points {
			if p == nil {
				havePrev = false
				continue
			}
			x, y := c.column(i, len(s.Points)), c.row(*p, lo, hi)
			if havePrev {
				drawLine(grid, owner, prevX, prevY, x, y, '·', si)
			}
			set(grid, owner, x, y, mark, si)
			prevX, prevY, havePrev = x, y, true
		}
	}

	var out strings.Builder
	axisStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted).Width(yAxisWidth).Align(lipgloss.Right)
	for i, line := range grid {
		yValue := hi - float64(i)/float64(c.Height-1)*(hi-lo)
		label := ""
		if i%3 == 0 || i == c.Height-1 {
			label = c.YFormat(yValue)
		}
		out.WriteString(axisStyle.Render(label))
		out.WriteString(" │ ")
		for x, r := range line {
			if r == ' ' {
				out.WriteRune(r)
				continue
			}
			out.WriteString(lipgloss.NewStyle().Foreground(c.Series[owner[i][x]].Color).Render(string(r)))
		}
		out.WriteString("\n")
	}

	out.WriteString(strings.Repeat(" ", yAxisWidth))
	out.WriteString(" └")
	out.WriteString(strings.Repeat("─", width+1))
	if len(c.Labels) > 0 {
		out.WriteString("\n")
		out.WriteString(c.renderXAxisLabels(width))
	}

	return out.String()
}

func set(grid [][]rune, owner [][]int, x, y int, r rune, series int) {
	if y < 0 || y >= len(grid) || x < 0 || x >= len(grid[y]) {
		return
	}
	grid[y][x] = r
	owner[y][x] = series
}

// seriesChar returns the marker used for a series
func seriesChar(index int) rune {
	chars := []rune{'●', '■', '▲', '♦'}
	return chars[index%len(chars)]
}

// drawLine fills empty cells between two points using Bresenham's algorithm
func drawLine(grid [][]rune, owner [][]int, x0, y0, x1, y1 int, r rune, series int) {
	dx, dy := abs(x1-x0), abs(y1-y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx - dy

	for x, y := x0, y0; ; {
		if y >= 0 && y < len(grid) && x >= 0 && x < len(grid[y]) && grid[y][x] == ' ' {
			set(grid, owner, x, y, r, series)
		}
		if x == x1 && y == y1 {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x += sx
		}
		if e2 < dx {
			err += dx
			y += sy
		}
	}
}

// renderXAxisLabels writes each label under its point, pushing a label
// right when it would overlap the previous one
func (c *ASCIIChart) renderXAxisLabels(width int) string {
	line := []rune(strings.Repeat(" ", width+yAxisWidth+3))
	next := 0
	for i, label := range c.Labels {
		start := yAxisWidth + 3 + c.column(i, len(c.Labels)) - len([]rune(label))/2
		start = max(start, next)
		runes := []rune(label)
		if start+len(runes) > len(line) {
			line = append(line, []rune(strings.Repeat(" ", start+len(runes)-len(line)))...)
		}
		copy(line[start:], runes)
		next = start + len(runes) + 1
	}
	return lipgloss.NewStyle().Foreground(tuistyles.ColorMuted).Render(strings.TrimRight(string(line), " "))
}

// renderLegend renders the chart legend
func (c *ASCIIChart) renderLegend() string {
	items := make([]string, 0, len(c.Series))
	for i, s := range c.Series {
		symbol := lipgloss.NewStyle().Foreground(s.Color).Render(string(seriesChar(i)))
		items = append(items, fmt.Sprintf("%s %s", symbol, s.Name))
	}
	return lipgloss.NewStyle().Foreground(tuistyles.ColorMuted).Render("Legend: " + strings.Join(items, " • "))
}

// abs returns absolute value of an integer
func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
