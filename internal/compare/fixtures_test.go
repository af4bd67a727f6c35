package compare

import (
	"time"

	"github.com/rgehrsitz/wealthtax/internal/domain"
)

var (
	dec         = domain.DecimalPtr
	generatedAt = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)
)

func fixedNow() time.Time { return generatedAt }

// twoCountries returns a three-group dataset and a shorter, partial one
func twoCountries() []*domain.CountryDataset {
	return []*domain.CountryDataset{
		{
			Country:  "Alpha",
			Currency: "€",
			Color:    "#e63946",
			Bands: []domain.Band{
				{Label: "bottom", TotalRate: dec(0.40)},
				{Label: "middle", TotalRate: dec(0.45)},
				{Label: "top", TotalRate: dec(0.30)},
			},
		},
		{
			Country:  "Beta",
			Currency: "$",
			Bands: []domain.Band{
				{Label: "lower", TotalRate: dec(0.35)},
				{Label: "upper"},
			},
		},
	}
}
