package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/wealthtax/internal/tui/tuistyles"
)

// Scale selects how slider positions map to values
type Scale int

const (
	ScaleLinear Scale = iota
	// ScaleLog spaces values evenly in log10; Min must be positive
	ScaleLog
)

// maxLogSteps bounds the search for the next distinct rounded value
const maxLogSteps = 200

// ParameterSlider displays an adjustable parameter with visual slider
type ParameterSlider struct {
	Label       string
	Value       float64
	Min         float64
	Max         float64
	Step        float64 // value step on a linear scale, position step (0-1) on a log scale
	Scale       Scale
	Round       func(float64) float64
	Unit        string // e.g., "%", " M€"
	Format      string // e.g., "%.1f", "%g"
	Width       int    // Total width of slider bar
	IsFocused   bool
	Description string
}

// NewParameterSlider creates a new linear parameter slider
func NewParameterSlider(label string, value, min, max, step float64) *ParameterSlider {
	return &ParameterSlider{
		Label:  label,
		Value:  value,
		Min:    min,
		Max:    max,
		Step:   step,
		Format: "%.2f",
		Width:  30,
	}
}

// NewLogSlider creates a slider whose positions are logarithmic in value.
// step is a fraction of the track, e.g. 0.001 for a thousand positions.
func NewLogSlider(label string, value, min, max, step float64) *ParameterSlider {
	p := NewParameterSlider(label, value, min, max, step)
	p.Scale = ScaleLog
	return p
}

// WithUnit sets the unit suffix
func (p *ParameterSlider) WithUnit(unit string) *ParameterSlider {
	p.Unit = unit
	return p
}

// WithFormat sets the value format string
func (p *ParameterSlider) WithFormat(format string) *ParameterSlider {
	p.Format = format
	return p
}

// WithWidth sets the slider width
func (p *ParameterSlider) WithWidth(width int) *ParameterSlider {
	p.Width = width
	return p
}

// WithRounding snaps every value the slider produces
func (p *ParameterSlider) WithRounding(round func(float64) float64) *ParameterSlider {
	p.Round = round
	return p
}

// SetFocused sets the focus state
func (p *ParameterSlider) SetFocused(focused bool) *ParameterSlider {
	p.IsFocused = focused
	return p
}

// WithDescription adds a description/help text
func (p *ParameterSlider) WithDescription(desc string) *ParameterSlider {
	p.Description = desc
	return p
}

// Increment moves the slider one step right
func (p *ParameterSlider) Increment() {
	p.move(1)
}

// Decrement moves the slider one step left
func (p *ParameterSlider) Decrement() {
	p.move(-1)
}

func (p *ParameterSlider) move(dir float64) {
	if p.Scale == ScaleLinear {
		next := p.Value + dir*p.Step
		// tolerate float drift from repeated steps
		slack := p.Step * 1e-9
		if next < p.Min-slack || next > p.Max+slack {
			return
		}
		p.SetValue(math.Round(next/p.Step) * p.Step)
		return
	}

	// A position step can round back to the current value, so keep
	// stepping until the displayed value changes.
	pos := p.Percentage()
	for i := 0; i < maxLogSteps; i++ {
		pos += dir * p.Step
		if pos <= 0 {
			p.SetValue(p.Min)
			return
		}
		if pos >= 1 {
			p.SetValue(p.Max)
			return
		}
		if v := p.snap(p.ValueAt(pos)); v != p.Value {
			p.SetValue(v)
			return
		}
	}
}

// SetValue sets the value directly, clamping to min/max
func (p *ParameterSlider) SetValue(value float64) {
	p.Value = math.Max(p.Min, math.Min(p.Max, p.snap(value)))
}

func (p *ParameterSlider) snap(v float64) float64 {
	if p.Round == nil {
		return v
	}
	return p.Round(v)
}

// ValueAt maps a track position in [0, 1] to a value
func (p *ParameterSlider) ValueAt(pos float64) float64 {
	if p.Scale == ScaleLog {
		return p.Min * math.Pow(p.Max/p.Min, pos)
	}
	return p.Min + pos*(p.Max-p.Min)
}

// Percentage returns the position of the value along the track
func (p *ParameterSlider) Percentage() float64 {
	if p.Max == p.Min {
		return 0
	}
	if p.Scale == ScaleLog {
		if p.Value <= p.Min {
			return 0
		}
		return math.Log(p.Value/p.Min) / math.Log(p.Max/p.Min)
	}
	return (p.Value - p.Min) / (p.Max - p.Min)
}

// Render returns the styled parameter slider
func (p *ParameterSlider) Render() string {
	var content strings.Builder

	labelStyle := tuistyles.ParameterLabelStyle
	if p.IsFocused {
		labelStyle = labelStyle.Foreground(tuistyles.ColorPrimary)
	}
	content.WriteString(labelStyle.Render(p.Label))
	content.WriteString("  ")

	valueStyle := tuistyles.ParameterValueStyle
	if p.IsFocused {
		valueStyle = valueStyle.Foreground(tuistyles.ColorAccent)
	}
	content.WriteString(valueStyle.Render(p.formatValue(p.Value)))
	content.WriteString("\n")

	content.WriteString(p.renderSliderBar())

	rangeStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted)
	content.WriteString("\n")
	content.WriteString(rangeStyle.Render(fmt.Sprintf("%s  ─  %s", p.formatValue(p.Min), p.formatValue(p.Max))))

	if p.Description != "" {
		content.WriteString("\n")
		descStyle := lipgloss.NewStyle().
			Foreground(tuistyles.ColorMuted).
			Italic(true)
		content.WriteString(descStyle.Render(p.Description))
	}

	return content.String()
}

func (p *ParameterSlider) formatValue(v float64) string {
	return fmt.Sprintf(p.Format, v) + p.Unit
}

// renderSliderBar creates the visual slider bar
func (p *ParameterSlider) renderSliderBar() string {
	filled := int(math.Round(float64(p.Width) * p.Percentage()))
	filled = max(0, min(p.Width, filled))
	empty := p.Width - filled

	trackStyle := tuistyles.SliderTrackStyle
	thumbStyle := tuistyles.SliderThumbStyle
	if p.IsFocused {
		thumbStyle = thumbStyle.Foreground(tuistyles.ColorAccent)
	}

	var bar strings.Builder
	bar.WriteString("[")
	if filled > 1 {
		bar.WriteString(thumbStyle.Render(strings.Repeat("━", filled-1)))
	}
	bar.WriteString(thumbStyle.Render("●"))
	if empty > 1 {
		bar.WriteString(trackStyle.Render(strings.Repeat("─", empty-1)))
	}
	bar.WriteString("]")

	return bar.String()
}

// RenderCompact returns a compact single-line version
func (p *ParameterSlider) RenderCompact() string {
	labelStyle := tuistyles.ParameterLabelStyle
	valueStyle := tuistyles.ParameterValueStyle
	if p.IsFocused {
		labelStyle = labelStyle.Foreground(tuistyles.ColorPrimary)
		valueStyle = valueStyle.Foreground(tuistyles.ColorAccent)
	}

	return fmt.Sprintf("%s %s %s",
		labelStyle.Render(p.Label+":"),
		valueStyle.Render(p.formatValue(p.Value)),
		p.renderMiniSliderBar(10))
}

// renderMiniSliderBar creates a compact slider bar
func (p *ParameterSlider) renderMiniSliderBar(width int) string {
	filled := int(math.Round(float64(width-1) * p.Percentage()))

	thumbStyle := tuistyles.SliderThumbStyle
	trackStyle := tuistyles.SliderTrackStyle

	var bar strings.Builder
	bar.WriteString("[")
	for i := 0; i < width; i++ {
		switch {
		case i == filled:
			bar.WriteString(thumbStyle.Render("●"))
		case i < filled:
			bar.WriteString(thumbStyle.Render("━"))
		default:
			bar.WriteString(trackStyle.Render("─"))
		}
	}
	bar.WriteString("]")
	return bar.String()
}

// SmartRound snaps a threshold to a readable value: integers below 10,
// multiples of 5 below 100 and multiples of 50 above.
func SmartRound(v float64) float64 {
	switch {
	case v < 10:
		return math.Round(v)
	case v < 100:
		return math.Round(v/5) * 5
	default:
		return math.Round(v/50) * 50
	}
}
