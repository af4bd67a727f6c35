package breakeven

import (
	"context"
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/wealthtax/internal/calculation"
	"github.com/rgehrsitz/wealthtax/internal/domain"
)

// Solver finds the reform parameter that reaches a revenue or headcount goal
type Solver struct {
	CalcEngine *calculation.Engine
	Options    SolverOptions
}

// NewSolver creates a new break-even solver
func NewSolver(calcEngine *calculation.Engine, options SolverOptions) *Solver {
	return &Solver{
		CalcEngine: calcEngine,
		Options:    options,
	}
}

// NewDefaultSolver creates a solver with default options
func NewDefaultSolver(calcEngine *calculation.Engine) *Solver {
	return NewSolver(calcEngine, DefaultSolverOptions())
}

// search describes a one-dimensional bisection. Coordinates are mapped to a
// parameter value by value, so the threshold can be searched in log space.
type search struct {
	operation  string
	lo, hi     float64
	value      func(x float64) float64
	evaluate   func(param float64) float64
	increasing bool
}

// Optimize performs optimization based on the request
func (s *Solver) Optimize(ctx context.Context, req OptimizationRequest) (*OptimizationResult, error) {
	if req.Dataset == nil || len(req.Dataset.Bands) == 0 {
		return nil, &BreakEvenError{
			Operation: "optimize",
			Message:   "a dataset is required",
			Cause:     calculation.ErrEmptyDataset,
		}
	}
	if err := req.Constraints.Validate(); err != nil {
		return nil, err
	}
	if err := req.Base.Validate(); err != nil {
		return nil, &BreakEvenError{
			Operation: "optimize",
			Message:   "invalid base parameters",
			Cause:     err,
		}
	}
	target, ok := req.Constraints.goalTarget(req.Goal)
	if !ok {
		return nil, &BreakEvenError{
			Operation: "optimize",
			Message:   fmt.Sprintf("goal %q requires a matching target", req.Goal),
		}
	}

	// Apply defaults
	if req.MaxIterations == 0 {
		req.MaxIterations = s.Options.MaxIterations
	}
	if req.Tolerance.IsZero() {
		req.Tolerance = s.Options.Tolerance
	}

	// Route to appropriate solver based on target
	switch req.Target {
	case OptimizeTaxRate:
		return s.optimizeTaxRate(ctx, req, target.InexactFloat64())
	case OptimizeThreshold:
		return s.optimizeThreshold(ctx, req, target.InexactFloat64())
	default:
		return nil, &BreakEvenError{
			Operation: "optimize",
			Message:   fmt.Sprintf("unsupported optimization target: %s", req.Target),
		}
	}
}

// optimizeTaxRate finds the tax rate that raises the target revenue at the
// base threshold. Revenue is non-decreasing in the tax rate.
func (s *Solver) optimizeTaxRate(ctx context.Context, req OptimizationRequest, target float64) (*OptimizationResult, error) {
	if req.Goal != GoalMatchRevenue {
		return nil, &BreakEvenError{
			Operation: "optimize_tax_rate",
			Message:   "only a revenue goal can be reached by changing the tax rate",
		}
	}

	minRate, maxRate := bounds(req.Constraints.MinTaxRate, req.Constraints.MaxTaxRate,
		DefaultConstraints().MinTaxRate, DefaultConstraints().MaxTaxRate)

	rate, iterations, info, err := s.bisect(ctx, req, target, search{
		operation: "optimize_tax_rate",
		lo:        minRate,
		hi:        maxRate,
		value:     func(x float64) float64 { return x },
		evaluate: func(rate float64) float64 {
			return calculation.TotalRevenue(req.Dataset, domain.ReformParameters{TaxRate: rate, Threshold: req.Base.Threshold})
		},
		increasing: true,
	})
	if err != nil {
		return nil, err
	}

	params := domain.ReformParameters{TaxRate: rate, Threshold: req.Base.Threshold}
	result, err := s.evaluateResult(ctx, req, params, target, iterations, info)
	if err != nil {
		return nil, err
	}
	optimal := decimal.NewFromFloat(rate)
	result.OptimalTaxRate = &optimal
	return result, nil
}

// optimizeThreshold finds the threshold that raises the target revenue or
// affects the target headcount at the base tax rate. Both are
// non-increasing in the threshold; the search runs on log(threshold).
func (s *Solver) optimizeThreshold(ctx context.Context, req OptimizationRequest, target float64) (*OptimizationResult, error) {
	minThreshold, maxThreshold := bounds(req.Constraints.MinThreshold, req.Constraints.MaxThreshold,
		DefaultConstraints().MinThreshold, DefaultConstraints().MaxThreshold)

	evaluate := func(threshold float64) float64 {
		return calculation.TotalRevenue(req.Dataset, domain.ReformParameters{TaxRate: req.Base.TaxRate, Threshold: threshold})
	}
	if req.Goal == GoalMatchHeadcount {
		evaluate = func(threshold float64) float64 {
			return calculation.TotalHeadcountAffected(req.Dataset, threshold)
		}
	}

	threshold, iterations, info, err := s.bisect(ctx, req, target, search{
		operation:  "optimize_threshold",
		lo:         math.Log(minThreshold),
		hi:         math.Log(maxThreshold),
		value:      math.Exp,
		evaluate:   evaluate,
		increasing: false,
	})
	if err != nil {
		return nil, err
	}

	params := domain.ReformParameters{TaxRate: req.Base.TaxRate, Threshold: threshold}
	result, err := s.evaluateResult(ctx, req, params, target, iterations, info)
	if err != nil {
		return nil, err
	}
	optimal := decimal.NewFromFloat(threshold)
	result.OptimalThreshold = &optimal
	return result, nil
}

// bisect searches [sr.lo, sr.hi] for the parameter that just meets target:
// the lowest tax rate or the highest threshold whose goal value reaches it.
// The bracket keeps one end that meets the target and one that does not,
// and stops once their goal values are within the relative tolerance.
func (s *Solver) bisect(ctx context.Context, req OptimizationRequest, target float64, sr search) (float64, int, string, error) {
	if sr.lo > sr.hi {
		return 0, 0, "", &BreakEvenError{
			Operation: sr.operation,
			Message:   fmt.Sprintf("empty search range %g to %g", sr.value(sr.lo), sr.value(sr.hi)),
		}
	}
	tol := req.Tolerance.InexactFloat64() * target
	converged := fmt.Sprintf("Converged within %s%% of target", req.Tolerance.Mul(decimal.NewFromInt(100)).String())

	good, bad := sr.hi, sr.lo
	if !sr.increasing {
		good, bad = sr.lo, sr.hi
	}
	atGood, atBad := sr.evaluate(sr.value(good)), sr.evaluate(sr.value(bad))

	if atBad >= target {
		return sr.value(bad), 0, "Target met at the search bound", nil
	}
	if atGood < target {
		if target-atGood <= tol {
			return sr.value(good), 0, converged, nil
		}
		return 0, 0, "", &BreakEvenError{
			Operation: sr.operation,
			Message: fmt.Sprintf("target %.6g outside achievable range %.6g to %.6g for parameters %g to %g",
				target, math.Min(atGood, atBad), math.Max(atGood, atBad), sr.value(sr.lo), sr.value(sr.hi)),
			Cause: ErrTargetUnreachable,
		}
	}

	for iterations := 1; iterations <= req.MaxIterations; iterations++ {
		if err := ctx.Err(); err != nil {
			return 0, iterations - 1, "", err
		}

		mid := (good + bad) / 2
		if v := sr.evaluate(sr.value(mid)); v >= target {
			good, atGood = mid, v
		} else {
			bad, atBad = mid, v
		}

		if atGood-atBad <= tol {
			return sr.value(good), iterations, converged, nil
		}
		if math.Abs(good-bad) <= 1e-12*math.Max(1, math.Abs(good)) {
			return sr.value(good), iterations, "Bisection interval collapsed", nil
		}
	}

	return 0, req.MaxIterations, "", &BreakEvenError{
		Operation: sr.operation,
		Message:   fmt.Sprintf("optimization did not converge after %d iterations", req.MaxIterations),
	}
}

// evaluateResult runs the full engine at the solved parameters
func (s *Solver) evaluateResult(ctx context.Context, req OptimizationRequest, params domain.ReformParameters, target float64, iterations int, info string) (*OptimizationResult, error) {
	sim, err := s.CalcEngine.Simulate(ctx, req.Dataset, params)
	if err != nil {
		return nil, &BreakEvenError{
			Operation: "evaluate_result",
			Message:   "failed to simulate solved parameters",
			Cause:     err,
		}
	}

	goalValue := sim.TotalRevenue
	if req.Goal == GoalMatchHeadcount {
		goalValue = sim.TotalHeadcountAffected
	}

	return &OptimizationResult{
		Request:           req,
		Success:           true,
		Iterations:        iterations,
		ConvergenceInfo:   info,
		Parameters:        params,
		Simulation:        sim,
		Revenue:           sim.TotalRevenue,
		HeadcountAffected: sim.TotalHeadcountAffected,
		GoalValue:         goalValue,
		GoalTarget:        decimal.NewFromFloat(target),
	}, nil
}

// bounds resolves optional constraint bounds against defaults
func bounds(lo, hi, defLo, defHi *decimal.Decimal) (float64, float64) {
	if lo == nil {
		lo = defLo
	}
	if hi == nil {
		hi = defHi
	}
	return lo.InexactFloat64(), hi.InexactFloat64()
}
