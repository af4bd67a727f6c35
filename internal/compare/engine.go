package compare

import (
	"context"
	"fmt"
	"time"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/rgehrsitz/wealthtax/internal/calculation"
	"github.com/rgehrsitz/wealthtax/internal/domain"
)

// Options controls a comparison
type Options struct {
	// Reform, when set, also evaluates every country under these parameters
	Reform *domain.ReformParameters
	// Workers caps concurrent simulations; zero means one per country
	Workers int
	Now     func() time.Time
}

// CompareEngine builds cross-country comparisons
type CompareEngine struct {
	CalcEngine *calculation.Engine
}

// NewCompareEngine creates a new comparison engine
func NewCompareEngine(calcEngine *calculation.Engine) *CompareEngine {
	return &CompareEngine{CalcEngine: calcEngine}
}

// Compare lines up the current effective rates of every dataset by income
// group. Groups are taken from the first dataset and matched by position.
func (ce *CompareEngine) Compare(ctx context.Context, datasets []*domain.CountryDataset, opts Options) (*ComparisonSet, error) {
	if len(datasets) == 0 {
		return nil, fmt.Errorf("no datasets to compare")
	}
	if opts.Reform != nil {
		if err := opts.Reform.Validate(); err != nil {
			return nil, fmt.Errorf("invalid reform parameters: %w", err)
		}
	}
	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}

	compSet := &ComparisonSet{
		Countries: lo.Map(datasets, func(ds *domain.CountryDataset, _ int) CountryInfo {
			return CountryInfo{Country: ds.Country, Currency: ds.Currency, Color: ds.Color}
		}),
		Rows:        currentRateRows(datasets),
		Parameters:  opts.Reform,
		GeneratedAt: now(),
	}

	if opts.Reform != nil {
		revenues, err := ce.evaluateReform(ctx, datasets, *opts.Reform, opts.Workers)
		if err != nil {
			return nil, err
		}
		compSet.Revenues = revenues
	}

	compSet.Notes = GenerateNotes(compSet)
	return compSet, nil
}

// currentRateRows builds one row per group of the first dataset
func currentRateRows(datasets []*domain.CountryDataset) []RateRow {
	groups := datasets[0].Labels()
	return lo.Map(groups, func(group string, idx int) RateRow {
		return RateRow{
			Group: group,
			X:     XPosition(idx, len(groups)),
			Rates: lo.Map(datasets, func(ds *domain.CountryDataset, _ int) *float64 {
				if idx >= len(ds.Bands) || ds.Bands[idx].TotalRate == nil {
					return nil
				}
				return domain.FloatPtr(ds.Bands[idx].TotalRate.InexactFloat64() * 100)
			}),
		}
	})
}

// evaluateReform simulates every country concurrently; results keep the
// dataset order.
func (ce *CompareEngine) evaluateReform(ctx context.Context, datasets []*domain.CountryDataset, params domain.ReformParameters, workers int) ([]CountryRevenue, error) {
	revenues := make([]CountryRevenue, len(datasets))
	g, gctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}
	for i, ds := range datasets {
		i, ds := i, ds
		g.Go(func() error {
			result, err := ce.CalcEngine.Simulate(gctx, ds, params)
			if err != nil {
				return fmt.Errorf("failed to simulate %s: %w", ds.Country, err)
			}
			revenues[i] = CountryRevenue{
				Country:           result.Country,
				Currency:          result.Currency,
				Revenue:           result.TotalRevenue,
				HeadcountAffected: result.TotalHeadcountAffected,
				RevenueShareOfGDP: result.RevenueShareOfGDP,
				Warnings:          result.Warnings,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return revenues, nil
}
