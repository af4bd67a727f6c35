package breakeven

import (
	"context"
	"errors"
	"fmt"

	"github.com/rgehrsitz/wealthtax/internal/domain"
)

// OptimizeMultiDimensional solves every parameter that can reach goal and
// compares the alternatives. Targets that cannot reach the goal are skipped.
func (s *Solver) OptimizeMultiDimensional(
	ctx context.Context,
	ds *domain.CountryDataset,
	base domain.ReformParameters,
	constraints Constraints,
	goal OptimizationGoal,
) (*MultiDimensionalResult, error) {

	// Validate constraints
	if err := constraints.Validate(); err != nil {
		return nil, err
	}

	targets := []OptimizationTarget{OptimizeThreshold}
	if goal == GoalMatchRevenue {
		targets = append([]OptimizationTarget{OptimizeTaxRate}, targets...)
	}

	var results []OptimizationResult
	var errs []error

	for _, target := range targets {
		req := OptimizationRequest{
			Dataset:       ds,
			Base:          base,
			Target:        target,
			Goal:          goal,
			Constraints:   constraints,
			MaxIterations: s.Options.MaxIterations,
			Tolerance:     s.Options.Tolerance,
		}

		result, err := s.Optimize(ctx, req)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			errs = append(errs, err)
			continue
		}

		if result != nil && result.Success {
			results = append(results, *result)
		}
	}

	if len(results) == 0 {
		return nil, &BreakEvenError{
			Operation: "optimize_multi_dimensional",
			Message:   "no successful optimizations found",
			Cause:     errors.Join(errs...),
		}
	}

	mdResult := &MultiDimensionalResult{
		Results: results,
	}
	for i := range results {
		switch results[i].Request.Target {
		case OptimizeTaxRate:
			mdResult.LowestTaxRate = &results[i]
		case OptimizeThreshold:
			mdResult.HighestThreshold = &results[i]
		}
	}

	mdResult.Recommendations = s.generateMultiDimensionalRecommendations(mdResult, ds.Currency)

	return mdResult, nil
}

// generateMultiDimensionalRecommendations describes each way of reaching the goal
func (s *Solver) generateMultiDimensionalRecommendations(result *MultiDimensionalResult, currency string) []string {
	var recommendations []string

	if r := result.LowestTaxRate; r != nil {
		recommendations = append(recommendations, fmt.Sprintf(
			"Keep the threshold at %gM%s: a %.2f%% tax raises %s B%s",
			r.Parameters.Threshold, currency, r.Parameters.TaxRatePercent(),
			r.Revenue.StringFixed(1), currency))
	}

	if r := result.HighestThreshold; r != nil {
		rec := fmt.Sprintf("Keep the tax rate at %.2f%%: a threshold of %.1fM%s",
			r.Parameters.TaxRatePercent(), r.Parameters.Threshold, currency)
		if r.Request.Goal == GoalMatchHeadcount {
			rec += fmt.Sprintf(" affects %s units", r.HeadcountAffected.StringFixed(0))
		} else {
			rec += fmt.Sprintf(" raises %s B%s", r.Revenue.StringFixed(1), currency)
		}
		recommendations = append(recommendations, rec)
	}

	if result.LowestTaxRate != nil && result.HighestThreshold != nil {
		recommendations = append(recommendations, fmt.Sprintf(
			"The threshold route affects %s units, the rate route %s",
			result.HighestThreshold.HeadcountAffected.StringFixed(0),
			result.LowestTaxRate.HeadcountAffected.StringFixed(0)))
	}

	return recommendations
}
