package breakeven

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstraints_Validate(t *testing.T) {
	tests := []struct {
		name        string
		constraints Constraints
		wantErr     string
	}{
		{"defaults", DefaultConstraints(), ""},
		{"empty", Constraints{}, ""},
		{"negative min rate", Constraints{MinTaxRate: decPtr(-0.01)}, "min_tax_rate must be between 0 and 1"},
		{"max rate above one", Constraints{MaxTaxRate: decPtr(1.5)}, "max_tax_rate must be between 0 and 1"},
		{"inverted rates", Constraints{MinTaxRate: decPtr(0.05), MaxTaxRate: decPtr(0.01)}, "min_tax_rate cannot be greater than max_tax_rate"},
		{"zero min threshold", Constraints{MinThreshold: decPtr(0)}, "min_threshold must be positive"},
		{"negative max threshold", Constraints{MaxThreshold: decPtr(-5)}, "max_threshold must be positive"},
		{"inverted thresholds", Constraints{MinThreshold: decPtr(500), MaxThreshold: decPtr(10)}, "min_threshold cannot be greater than max_threshold"},
		{"zero target revenue", Constraints{TargetRevenue: decPtr(0)}, "target_revenue must be positive"},
		{"negative headcount", Constraints{TargetHeadcount: decPtr(-1)}, "target_headcount must be positive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.constraints.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, "validate_constraints: "+tt.wantErr, err.Error())
		})
	}
}

func TestDefaultConstraints(t *testing.T) {
	c := DefaultConstraints()
	assert.True(t, c.MinTaxRate.IsZero())
	assert.Equal(t, 0.05, c.MaxTaxRate.InexactFloat64())
	assert.Equal(t, 1.0, c.MinThreshold.InexactFloat64())
	assert.Equal(t, 1000.0, c.MaxThreshold.InexactFloat64())
	assert.Nil(t, c.TargetRevenue)
}

func TestBreakEvenError(t *testing.T) {
	plain := &BreakEvenError{Operation: "optimize", Message: "failed"}
	assert.Equal(t, "optimize: failed", plain.Error())
	assert.Nil(t, errors.Unwrap(plain))

	cause := errors.New("boom")
	wrapped := &BreakEvenError{Operation: "optimize", Message: "failed", Cause: cause}
	assert.Equal(t, "optimize: failed: boom", wrapped.Error())
	assert.ErrorIs(t, wrapped, cause)
}
