package calculation

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/wealthtax/internal/domain"
)

// ErrEmptyDataset is returned when a dataset has no bands to evaluate.
var ErrEmptyDataset = errors.New("dataset has no bands")

// Engine evaluates a minimum wealth tax reform against a country dataset.
// It holds no state between calls apart from its logger.
type Engine struct {
	logger Logger
	Debug  bool // Log per-band intermediate values
}

// NewEngine creates a new calculation engine
func NewEngine() *Engine {
	return &Engine{logger: NopLogger{}}
}

// SetLogger replaces the engine logger; nil restores the no-op logger.
func (e *Engine) SetLogger(l Logger) {
	if l == nil {
		e.logger = NopLogger{}
		return
	}
	e.logger = l
}

// Simulate computes per-band results, the rate series and the country
// aggregates for one set of reform parameters.
func (e *Engine) Simulate(ctx context.Context, ds *domain.CountryDataset, params domain.ReformParameters) (*domain.SimulationResult, error) {
	if ds == nil || len(ds.Bands) == 0 {
		return nil, ErrEmptyDataset
	}
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("invalid reform parameters: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := &domain.SimulationResult{
		Country:        ds.Country,
		Currency:       ds.Currency,
		SimulationYear: ds.SimulationYear,
		Parameters:     params,
		Bands:          make([]domain.BandResult, 0, len(ds.Bands)),
		Series:         make([]domain.RatePoint, 0, len(ds.Bands)),
	}

	var revenue, headcount float64
	for _, m := range BandModels(ds) {
		br := e.evaluateBand(m, params)
		revenue += br.ExtraRevenue
		headcount += br.HeadcountAbove

		result.Bands = append(result.Bands, br)
		result.Series = append(result.Series, ratePoint(m, params))
		result.Warnings = append(result.Warnings, bandWarnings(m, br)...)
	}

	result.TotalRevenue = decimal.NewFromFloat(revenue)
	result.TotalHeadcountAffected = decimal.NewFromFloat(headcount)
	result.RevenueShareOfGDP = shareOf(result.TotalRevenue, ds.GDP)
	result.RevenueShareOfDeficit = shareOf(result.TotalRevenue, ds.Deficit)

	for _, w := range result.Warnings {
		e.logger.Warnf("%s: %s", ds.Country, w)
	}
	e.logger.Infof("%s: tax rate %.2f%% above %gM raises %s B%s from %s units",
		ds.Country, params.TaxRatePercent(), params.Threshold,
		result.TotalRevenue.StringFixed(1), ds.Currency, result.TotalHeadcountAffected.StringFixed(0))

	return result, nil
}

// evaluateBand collects every intermediate quantity for one band
func (e *Engine) evaluateBand(m BandModel, params domain.ReformParameters) domain.BandResult {
	br := domain.BandResult{
		Label:            m.Band.Label,
		Exposure:         m.Classify(params.Threshold),
		WealthShareAbove: m.WealthShareAbove(params.Threshold),
		HeadcountAbove:   m.HeadcountAbove(params.Threshold),
		ExtraRevenue:     m.ExtraRevenue(params.TaxRate, params.Threshold),
	}
	if t, ok := m.WealthThreshold(); ok {
		br.WealthThreshold = domain.FloatPtr(t)
	}
	if alpha, ok := m.ShapeParameter(); ok {
		br.ShapeParameter = domain.FloatPtr(alpha)
	}
	if ca, ok := m.CorrectedShapeParameter(); ok {
		br.CorrectedShapeParameter = domain.FloatPtr(ca)
	}
	if total, ok := optional(m.Band.TotalRate); ok {
		br.CurrentRate = domain.FloatPtr(total)
	}
	if rate, ok := m.ReformRate(params.TaxRate, params.Threshold); ok {
		br.ReformRate = domain.FloatPtr(rate)
	}

	if e.Debug {
		e.logger.Debugf("band %s: exposure=%s share=%.6f headcount=%.1f revenue=%.4fB",
			br.Label, br.Exposure, br.WealthShareAbove, br.HeadcountAbove, br.ExtraRevenue)
	}
	return br
}

// bandWarnings reports data-quality conditions of a band.
func bandWarnings(m BandModel, br domain.BandResult) []string {
	var warnings []string
	if m.IsDegenerate() {
		warnings = append(warnings, fmt.Sprintf(
			"band %s: projected average income does not exceed its threshold; shape parameter undefined", br.Label))
	}
	if br.Exposure == domain.ExposureDegenerate && br.CurrentRate != nil && br.ReformRate == nil {
		warnings = append(warnings, fmt.Sprintf(
			"band %s: reform rate cannot be computed for a degenerate distribution", br.Label))
	}
	return warnings
}

// shareOf expresses revenue as a percentage of an optional total.
func shareOf(revenue decimal.Decimal, total *decimal.Decimal) *decimal.Decimal {
	if total == nil || total.IsZero() {
		return nil
	}
	share := revenue.Div(*total).Mul(decimal.NewFromInt(100))
	return &share
}
