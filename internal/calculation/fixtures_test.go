package calculation

import (
	"math"

	"github.com/rgehrsitz/wealthtax/internal/domain"
)

var dec = domain.DecimalPtr

// paretoBand is a band with a 10M wealth threshold and alpha = 2.
func paretoBand() domain.Band {
	return domain.Band{
		Label:             "Top",
		Headcount:         dec(1000),
		AvgIncome:         dec(2_000_000),
		IncomeThreshold:   dec(1_000_000),
		IncomeWealthRatio: dec(0.1),
		TotalRate:         dec(0.30),
		IndivRate:         dec(0.15),
	}
}

// sampleDataset is an illustrative five-band tabulation.
func sampleDataset() *domain.CountryDataset {
	return &domain.CountryDataset{
		Country:        "Examplia",
		Currency:       "€",
		DataYear:       2022,
		SimulationYear: 2025,
		GDP:            dec(2800),
		Deficit:        dec(150),
		Bands: []domain.Band{
			{
				Label:     "P0-P90",
				Headcount: dec(45_000_000),
				AvgIncome: dec(25_000),
				TotalRate: dec(0.45),
			},
			{
				Label:                  "P90-P99",
				Headcount:              dec(4_500_000),
				AvgIncome:              dec(110_000),
				IncomeThreshold:        dec(70_000),
				IncomeWealthRatio:      dec(0.20),
				TotalRate:              dec(0.48),
				IndivRate:              dec(0.40),
				NominalGrowthAvg:       dec(0.03),
				NominalGrowthThreshold: dec(0.03),
				PopulationGrowth:       dec(0.004),
			},
			{
				Label:                  "P99-P99.9",
				Headcount:              dec(450_000),
				AvgIncome:              dec(450_000),
				IncomeThreshold:        dec(250_000),
				IncomeWealthRatio:      dec(0.13),
				TotalRate:              dec(0.46),
				IndivRate:              dec(0.40),
				NominalGrowthAvg:       dec(0.035),
				NominalGrowthThreshold: dec(0.03),
				PopulationGrowth:       dec(0.004),
			},
			{
				Label:                  "P99.9-P99.99",
				Headcount:              dec(45_000),
				AvgIncome:              dec(2_000_000),
				IncomeThreshold:        dec(1_000_000),
				IncomeWealthRatio:      dec(0.11),
				TotalRate:              dec(0.40),
				IndivRate:              dec(0.30),
				NominalGrowthAvg:       dec(0.04),
				NominalGrowthThreshold: dec(0.035),
				PopulationGrowth:       dec(0.004),
			},
			{
				Label:                  "P99.99-Top",
				Headcount:              dec(4_500),
				AvgIncome:              dec(12_000_000),
				IncomeThreshold:        dec(5_000_000),
				IncomeWealthRatio:      dec(0.09),
				TotalRate:              dec(0.30),
				IndivRate:              dec(0.20),
				NominalGrowthAvg:       dec(0.05),
				NominalGrowthThreshold: dec(0.04),
				PopulationGrowth:       dec(0.004),
			},
		},
	}
}

// logGrid returns n thresholds log-spaced between lo and hi.
func logGrid(lo, hi float64, n int) []float64 {
	grid := make([]float64, n)
	ratio := hi / lo
	for i := range grid {
		grid[i] = lo * math.Pow(ratio, float64(i)/float64(n-1))
	}
	return grid
}

// steepDataset has a first band fitted with alpha = 201 between the 100M and
// 200M wealth thresholds.
func steepDataset() *domain.CountryDataset {
	return &domain.CountryDataset{
		Country:        "Steepland",
		Currency:       "€",
		DataYear:       2025,
		SimulationYear: 2025,
		Bands: []domain.Band{
			{
				Label:             "P99-P99.9",
				Headcount:         dec(10_000),
				AvgIncome:         dec(1_005_000),
				IncomeThreshold:   dec(1_000_000),
				IncomeWealthRatio: dec(0.01),
				TotalRate:         dec(0.30),
				IndivRate:         dec(0.10),
			},
			{
				Label:             "Top",
				Headcount:         dec(1_000),
				AvgIncome:         dec(4_000_000),
				IncomeThreshold:   dec(2_000_000),
				IncomeWealthRatio: dec(0.01),
				TotalRate:         dec(0.30),
				IndivRate:         dec(0.10),
			},
		},
	}
}
