package output

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/wealthtax/internal/domain"
)

var generatedAt = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

func buildTestResult() *domain.SimulationResult {
	f := domain.FloatPtr
	gdpShare := decimal.RequireFromString("0.4321")
	return &domain.SimulationResult{
		Country:        "France",
		Currency:       "€",
		SimulationYear: 2025,
		Parameters:     domain.ReformParameters{TaxRate: 0.02, Threshold: 100},
		Bands: []domain.BandResult{
			{Label: "P0-P90", Exposure: domain.ExposureNoThreshold, CurrentRate: f(0.45), ReformRate: f(0.45)},
			{Label: "P99.9-Top", Exposure: domain.ExposureOpenTail, WealthThreshold: f(20), ShapeParameter: f(1.8),
				WealthShareAbove: 0.42, HeadcountAbove: 1234.4, CurrentRate: f(0.30), ReformRate: f(0.3503), ExtraRevenue: 12.345},
			{Label: "Broken", Exposure: domain.ExposureDegenerate, CurrentRate: f(0.25)},
		},
		Series: []domain.RatePoint{
			{Label: "P0-P90", CurrentRatePercent: f(45), ReformRatePercent: f(45)},
			{Label: "P99.9-Top", CurrentRatePercent: f(30), ReformRatePercent: f(35.03)},
			{Label: "Broken", CurrentRatePercent: f(25)},
		},
		TotalRevenue:           decimal.RequireFromString("12.345"),
		TotalHeadcountAffected: decimal.RequireFromString("1234.4"),
		RevenueShareOfGDP:      &gdpShare,
		Warnings:               []string{"band Broken: reform rate cannot be computed for a degenerate distribution"},
	}
}

func buildTestReport() *Report {
	return NewReport(buildTestResult(), generatedAt)
}
