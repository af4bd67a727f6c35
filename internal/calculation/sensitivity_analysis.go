package calculation

import (
	"context"
	"fmt"
	"math"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/rgehrsitz/wealthtax/internal/domain"
)

// SensitivityAnalyzer performs parameter sweep analysis
type SensitivityAnalyzer struct {
	engine  *Engine
	Workers int // Concurrent evaluations in a matrix sweep
}

// NewSensitivityAnalyzer creates a new sensitivity analyzer
func NewSensitivityAnalyzer(engine *Engine) *SensitivityAnalyzer {
	if engine == nil {
		engine = NewEngine()
	}
	return &SensitivityAnalyzer{
		engine:  engine,
		Workers: 4,
	}
}

// AnalyzeSingleParameter sweeps one reform parameter, holding the other at its base value
func (sa *SensitivityAnalyzer) AnalyzeSingleParameter(
	ctx context.Context,
	ds *domain.CountryDataset,
	base domain.ReformParameters,
	parameter domain.SensitivityParameter,
) (*domain.ParameterSensitivityAnalysis, error) {
	if err := validateParameter(parameter); err != nil {
		return nil, err
	}

	basePoint, err := sa.evaluate(ctx, ds, base)
	if err != nil {
		return nil, fmt.Errorf("failed to evaluate base parameters: %w", err)
	}

	values := sa.generateParameterValues(parameter)
	points := make([]domain.SensitivityPoint, 0, len(values))
	for _, value := range values {
		params := parameter.Apply(base, value)
		point, err := sa.evaluate(ctx, ds, params)
		if err != nil {
			return nil, fmt.Errorf("failed to evaluate %s=%g: %w", parameter.Name, value, err)
		}
		point.RevenueChange = point.Revenue.Sub(basePoint.Revenue)
		points = append(points, point)
	}

	return &domain.ParameterSensitivityAnalysis{
		Country:   ds.Country,
		Currency:  ds.Currency,
		Parameter: parameter,
		Base:      basePoint,
		Points:    points,
		Summary:   summarize(parameter, basePoint, points),
	}, nil
}

// AnalyzeParameterMatrix evaluates every combination of two parameters.
// Cells are independent and evaluated concurrently.
func (sa *SensitivityAnalyzer) AnalyzeParameterMatrix(
	ctx context.Context,
	ds *domain.CountryDataset,
	base domain.ReformParameters,
	param1, param2 domain.SensitivityParameter,
) (*domain.SensitivityMatrix, error) {
	if param1.Name == param2.Name {
		return nil, fmt.Errorf("matrix parameters must differ, both are %s", param1.Name)
	}
	for _, p := range []domain.SensitivityParameter{param1, param2} {
		if err := validateParameter(p); err != nil {
			return nil, err
		}
	}

	basePoint, err := sa.evaluate(ctx, ds, base)
	if err != nil {
		return nil, fmt.Errorf("failed to evaluate base parameters: %w", err)
	}

	values1 := sa.generateParameterValues(param1)
	values2 := sa.generateParameterValues(param2)

	cells := make([][]domain.SensitivityPoint, len(values1))
	for i := range cells {
		cells[i] = make([]domain.SensitivityPoint, len(values2))
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, sa.Workers))
	for i, v1 := range values1 {
		for j, v2 := range values2 {
			i, v1, j, v2 := i, v1, j, v2
			g.Go(func() error {
				params := param2.Apply(param1.Apply(base, v1), v2)
				point, err := sa.evaluate(gctx, ds, params)
				if err != nil {
					return fmt.Errorf("failed to evaluate %s=%g, %s=%g: %w", param1.Name, v1, param2.Name, v2, err)
				}
				point.RevenueChange = point.Revenue.Sub(basePoint.Revenue)
				cells[i][j] = point
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &domain.SensitivityMatrix{
		Country:    ds.Country,
		Currency:   ds.Currency,
		Parameter1: param1,
		Parameter2: param2,
		Cells:      cells,
	}, nil
}

// evaluate runs the engine once and keeps the sweep metrics
func (sa *SensitivityAnalyzer) evaluate(ctx context.Context, ds *domain.CountryDataset, params domain.ReformParameters) (domain.SensitivityPoint, error) {
	result, err := sa.engine.Simulate(ctx, ds, params)
	if err != nil {
		return domain.SensitivityPoint{}, err
	}
	return domain.SensitivityPoint{
		Parameters:        params,
		Revenue:           result.TotalRevenue,
		HeadcountAffected: result.TotalHeadcountAffected,
		Warnings:          len(result.Warnings),
	}, nil
}

// generateParameterValues generates the sweep values, evenly spaced on the
// parameter's scale
func (sa *SensitivityAnalyzer) generateParameterValues(param domain.SensitivityParameter) []float64 {
	if param.Steps <= 1 {
		return []float64{param.BaseValue.InexactFloat64()}
	}

	lower, upper := param.MinValue.InexactFloat64(), param.MaxValue.InexactFloat64()
	values := make([]float64, 0, param.Steps)
	for i := 0; i < param.Steps; i++ {
		frac := float64(i) / float64(param.Steps-1)
		if param.Scale == domain.ScaleLog {
			values = append(values, math.Pow(10, math.Log10(lower)+frac*(math.Log10(upper)-math.Log10(lower))))
		} else {
			values = append(values, lower+frac*(upper-lower))
		}
	}
	return values
}

func validateParameter(p domain.SensitivityParameter) error {
	switch p.Name {
	case domain.ParamThreshold, domain.ParamTaxRate:
	default:
		return fmt.Errorf("unknown sensitivity parameter: %s", p.Name)
	}
	if p.MinValue.GreaterThan(p.MaxValue) {
		return fmt.Errorf("parameter %s: min value %s exceeds max value %s", p.Name, p.MinValue, p.MaxValue)
	}
	if p.Scale == domain.ScaleLog && !p.MinValue.IsPositive() {
		return fmt.Errorf("parameter %s: log scale requires a positive min value", p.Name)
	}
	if p.Name == domain.ParamThreshold && !p.MinValue.IsPositive() {
		return fmt.Errorf("parameter %s: threshold must be positive", p.Name)
	}
	return nil
}

// summarize computes the revenue range and the endpoint elasticity
func summarize(param domain.SensitivityParameter, base domain.SensitivityPoint, points []domain.SensitivityPoint) domain.SensitivitySummary {
	if len(points) == 0 {
		return domain.SensitivitySummary{}
	}
	revenues := lo.Map(points, func(p domain.SensitivityPoint, _ int) decimal.Decimal { return p.Revenue })
	summary := domain.SensitivitySummary{
		MinRevenue: decimal.Min(revenues[0], revenues[1:]...),
		MaxRevenue: decimal.Max(revenues[0], revenues[1:]...),
	}

	first, last := points[0], points[len(points)-1]
	paramValue := func(p domain.SensitivityPoint) decimal.Decimal {
		if param.Name == domain.ParamThreshold {
			return decimal.NewFromFloat(p.Parameters.Threshold)
		}
		return decimal.NewFromFloat(p.Parameters.TaxRate)
	}
	baseParam := paramValue(base)
	paramChange := paramValue(last).Sub(paramValue(first))
	if base.Revenue.IsZero() || baseParam.IsZero() || paramChange.IsZero() {
		return summary
	}
	revenuePct := last.Revenue.Sub(first.Revenue).Div(base.Revenue)
	paramPct := paramChange.Div(baseParam)
	summary.Elasticity = revenuePct.Div(paramPct).Round(4)
	return summary
}
