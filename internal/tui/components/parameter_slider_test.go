package components

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSmartRound(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{1.2, 1},
		{9.4, 9},
		{9.6, 10},
		{12.4, 10},
		{12.6, 15},
		{97.4, 95},
		{99, 100},
		{120, 100},
		{130, 150},
		{987, 1000},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SmartRound(tt.in), "SmartRound(%g)", tt.in)
	}
}

func thresholdSlider(value float64) *ParameterSlider {
	return NewLogSlider("Wealth threshold", value, 1, 1000, 0.001).WithRounding(SmartRound)
}

func TestLogSlider_StepsToNextRoundedValue(t *testing.T) {
	s := thresholdSlider(100)
	assert.InDelta(t, 2.0/3.0, s.Percentage(), 1e-12)

	s.Increment()
	assert.Equal(t, 150.0, s.Value)

	s = thresholdSlider(100)
	s.Decrement()
	assert.Equal(t, 95.0, s.Value)

	s = thresholdSlider(9)
	s.Increment()
	assert.Equal(t, 10.0, s.Value)
	s.Increment()
	assert.Equal(t, 15.0, s.Value)
}

func TestLogSlider_ClampsAtBounds(t *testing.T) {
	s := thresholdSlider(1000)
	s.Increment()
	assert.Equal(t, 1000.0, s.Value)

	s = thresholdSlider(1)
	s.Decrement()
	assert.Equal(t, 1.0, s.Value)
	assert.Equal(t, 0.0, s.Percentage())

	s.SetValue(5000)
	assert.Equal(t, 1000.0, s.Value)
	s.SetValue(0.2)
	assert.Equal(t, 1.0, s.Value)
}

func TestLogSlider_MonotonicSweep(t *testing.T) {
	s := thresholdSlider(1)
	prev := s.Value
	for i := 0; i < 100 && s.Value < 1000; i++ {
		s.Increment()
		assert.Greater(t, s.Value, prev)
		assert.Equal(t, SmartRound(s.Value), s.Value)
		prev = s.Value
	}
	assert.Equal(t, 1000.0, s.Value)
}

func TestLinearSlider(t *testing.T) {
	s := NewParameterSlider("Tax rate", 2, 0, 5, 0.5)
	s.Increment()
	assert.Equal(t, 2.5, s.Value)

	for i := 0; i < 20; i++ {
		s.Increment()
	}
	assert.Equal(t, 5.0, s.Value)

	for i := 0; i < 20; i++ {
		s.Decrement()
	}
	assert.Equal(t, 0.0, s.Value)
	assert.Equal(t, 0.0, s.Percentage())
}

func TestValueAt(t *testing.T) {
	s := thresholdSlider(100)
	assert.InDelta(t, 1.0, s.ValueAt(0), 1e-12)
	assert.InDelta(t, 1000.0, s.ValueAt(1), 1e-9)
	assert.InDelta(t, math.Sqrt(1000), s.ValueAt(0.5), 1e-9)

	lin := NewParameterSlider("Tax rate", 0, 0, 5, 0.5)
	assert.Equal(t, 2.5, lin.ValueAt(0.5))
}

func TestParameterSlider_Render(t *testing.T) {
	s := thresholdSlider(100).WithFormat("%g").WithUnit(" M€").SetFocused(true)
	out := s.Render()
	assert.Contains(t, out, "Wealth threshold")
	assert.Contains(t, out, "100 M€")
	assert.Contains(t, out, "1 M€")
	assert.Contains(t, out, "1000 M€")

	assert.Contains(t, s.RenderCompact(), "100 M€")
}
