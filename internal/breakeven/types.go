package breakeven

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/wealthtax/internal/domain"
)

// OptimizationTarget defines which reform parameter the solver moves
type OptimizationTarget string

const (
	OptimizeTaxRate   OptimizationTarget = "tax_rate"
	OptimizeThreshold OptimizationTarget = "threshold"
	OptimizeAll       OptimizationTarget = "all"
)

// OptimizationGoal defines what outcome to achieve
type OptimizationGoal string

const (
	GoalMatchRevenue   OptimizationGoal = "match_revenue"   // Raise a target revenue
	GoalMatchHeadcount OptimizationGoal = "match_headcount" // Affect a target number of units
)

// ErrTargetUnreachable is the cause when the target lies outside what the
// parameter range can achieve.
var ErrTargetUnreachable = errors.New("target not reachable within constraints")

// Constraints define bounds for optimization parameters
type Constraints struct {
	// Tax rate bounds (as fraction, e.g., 0.02 for 2%)
	MinTaxRate *decimal.Decimal `json:"min_tax_rate,omitempty"`
	MaxTaxRate *decimal.Decimal `json:"max_tax_rate,omitempty"`

	// Wealth threshold bounds in millions
	MinThreshold *decimal.Decimal `json:"min_threshold,omitempty"`
	MaxThreshold *decimal.Decimal `json:"max_threshold,omitempty"`

	// Revenue target in billions for match_revenue
	TargetRevenue *decimal.Decimal `json:"target_revenue,omitempty"`

	// Units above the threshold for match_headcount
	TargetHeadcount *decimal.Decimal `json:"target_headcount,omitempty"`
}

// DefaultConstraints returns the simulator's slider ranges: 0-5% and
// 1M-1000M.
func DefaultConstraints() Constraints {
	minRate := decimal.Zero
	maxRate := decimal.NewFromFloat(0.05)
	minThreshold := decimal.NewFromInt(1)
	maxThreshold := decimal.NewFromInt(1000)

	return Constraints{
		MinTaxRate:   &minRate,
		MaxTaxRate:   &maxRate,
		MinThreshold: &minThreshold,
		MaxThreshold: &maxThreshold,
	}
}

// OptimizationRequest defines the parameters for an optimization run
type OptimizationRequest struct {
	Dataset       *domain.CountryDataset  `json:"-"`
	Base          domain.ReformParameters `json:"base"` // the parameter not being solved keeps its base value
	Target        OptimizationTarget      `json:"target"`
	Goal          OptimizationGoal        `json:"goal"`
	Constraints   Constraints             `json:"constraints"`
	MaxIterations int                     `json:"max_iterations"` // Maximum solver iterations
	Tolerance     decimal.Decimal         `json:"tolerance"`      // Relative tolerance on the goal value
}

// OptimizationResult contains the results of an optimization run
type OptimizationResult struct {
	// Optimization metadata
	Request         OptimizationRequest `json:"request"`
	Success         bool                `json:"success"`
	Iterations      int                 `json:"iterations"`
	ConvergenceInfo string              `json:"convergence_info"`

	// Solved parameter
	OptimalTaxRate   *decimal.Decimal        `json:"optimal_tax_rate,omitempty"`
	OptimalThreshold *decimal.Decimal        `json:"optimal_threshold,omitempty"`
	Parameters       domain.ReformParameters `json:"parameters"`

	// Results at the solved parameters
	Simulation        *domain.SimulationResult `json:"simulation"`
	Revenue           decimal.Decimal          `json:"revenue"`
	HeadcountAffected decimal.Decimal          `json:"headcount_affected"`
	GoalValue         decimal.Decimal          `json:"goal_value"`
	GoalTarget        decimal.Decimal          `json:"goal_target"`
}

// MultiDimensionalResult contains the results of solving each parameter
// for the same goal
type MultiDimensionalResult struct {
	Results          []OptimizationResult `json:"results"`
	LowestTaxRate    *OptimizationResult  `json:"lowest_tax_rate,omitempty"`
	HighestThreshold *OptimizationResult  `json:"highest_threshold,omitempty"`
	Recommendations  []string             `json:"recommendations"`
}

// SolverOptions configures the solver algorithm
type SolverOptions struct {
	Tolerance     decimal.Decimal // Relative convergence tolerance
	MaxIterations int             // Maximum bisection steps
}

// DefaultSolverOptions returns default solver configuration
func DefaultSolverOptions() SolverOptions {
	return SolverOptions{
		Tolerance:     decimal.NewFromFloat(0.0001),
		MaxIterations: 100,
	}
}

// Validate checks if constraints are internally consistent
func (c *Constraints) Validate() error {
	if c.MinTaxRate != nil && (c.MinTaxRate.IsNegative() || c.MinTaxRate.GreaterThan(decimal.NewFromInt(1))) {
		return &BreakEvenError{
			Operation: "validate_constraints",
			Message:   "min_tax_rate must be between 0 and 1",
		}
	}
	if c.MaxTaxRate != nil && (c.MaxTaxRate.IsNegative() || c.MaxTaxRate.GreaterThan(decimal.NewFromInt(1))) {
		return &BreakEvenError{
			Operation: "validate_constraints",
			Message:   "max_tax_rate must be between 0 and 1",
		}
	}
	if c.MinTaxRate != nil && c.MaxTaxRate != nil && c.MinTaxRate.GreaterThan(*c.MaxTaxRate) {
		return &BreakEvenError{
			Operation: "validate_constraints",
			Message:   "min_tax_rate cannot be greater than max_tax_rate",
		}
	}

	if c.MinThreshold != nil && !c.MinThreshold.IsPositive() {
		return &BreakEvenError{
			Operation: "validate_constraints",
			Message:   "min_threshold must be positive",
		}
	}
	if c.MaxThreshold != nil && !c.MaxThreshold.IsPositive() {
		return &BreakEvenError{
			Operation: "validate_constraints",
			Message:   "max_threshold must be positive",
		}
	}
	if c.MinThreshold != nil && c.MaxThreshold != nil && c.MinThreshold.GreaterThan(*c.MaxThreshold) {
		return &BreakEvenError{
			Operation: "validate_constraints",
			Message:   "min_threshold cannot be greater than max_threshold",
		}
	}

	if c.TargetRevenue != nil && !c.TargetRevenue.IsPositive() {
		return &BreakEvenError{
			Operation: "validate_constraints",
			Message:   "target_revenue must be positive",
		}
	}
	if c.TargetHeadcount != nil && !c.TargetHeadcount.IsPositive() {
		return &BreakEvenError{
			Operation: "validate_constraints",
			Message:   "target_headcount must be positive",
		}
	}

	return nil
}

// goalTarget returns the target value for goal, if the constraints carry one
func (c *Constraints) goalTarget(goal OptimizationGoal) (decimal.Decimal, bool) {
	switch goal {
	case GoalMatchRevenue:
		if c.TargetRevenue != nil {
			return *c.TargetRevenue, true
		}
	case GoalMatchHeadcount:
		if c.TargetHeadcount != nil {
			return *c.TargetHeadcount, true
		}
	}
	return decimal.Zero, false
}

// BreakEvenError represents errors from break-even solver
type BreakEvenError struct {
	Operation string
	Message   string
	Cause     error
}

func (e *BreakEvenError) Error() string {
	if e.Cause != nil {
		return e.Operation + ": " + e.Message + ": " + e.Cause.Error()
	}
	return e.Operation + ": " + e.Message
}

func (e *BreakEvenError) Unwrap() error { return e.Cause }
