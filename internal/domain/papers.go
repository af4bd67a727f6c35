package domain

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// Paper is a published source for a country's tabulation.
type Paper struct {
	Country  string `json:"country"`
	Authors  string `json:"authors"`
	Year     int    `json:"year"`
	ShortRef string `json:"shortRef"`
	Title    string `json:"title"`
	URL      string `json:"url"`
}

// Papers lists published distributional studies of effective tax rates.
var Papers = []Paper{
	{
		Country:  "France",
		Authors:  "Bozio, Garbinti, Goupille-Lebret, Guillot, Piketty",
		Year:     2020,
		ShortRef: "Bozio et al. (2020)",
		Title:    "Predistribution vs. Redistribution: Evidence from France and the U.S.",
		URL:      "https://wid.world/www-site/uploads/2020/11/WorldInequalityLab_WP2020_22_PredistributionvsRedistribution.pdf",
	},
	{
		Country:  "France",
		Authors:  "Bach, Bozio, Guillouzouic, Malgouyres",
		Year:     2025,
		ShortRef: "Bach et al. (2025)",
		Title:    "Do Billionaires Pay Taxes?",
		URL:      "https://www.ipp.eu/wp-content/uploads/2025/09/BBGM_2025.pdf",
	},
	{
		Country:  "United States",
		Authors:  "Piketty, Saez, Zucman",
		Year:     2018,
		ShortRef: "Piketty et al. (2018)",
		Title:    "Distributional National Accounts: Methods and Estimates for the United States",
		URL:      "https://gabriel-zucman.eu/usdina/",
	},
	{
		Country:  "United States",
		Authors:  "Balkir, Saez, Yagan, Zucman",
		Year:     2025,
		ShortRef: "Balkir et al. (2025)",
		Title:    "How Much Tax Do US Billionaires Pay? Evidence From Administrative Data",
		URL:      "https://gabriel-zucman.eu/files/BSYZ2025NBER.pdf",
	},
	{
		Country:  "Brazil",
		Authors:  "Palomo, Bhering, Scot, Bachas et al.",
		Year:     2025,
		ShortRef: "Palomo et al. (2025)",
		Title:    "Tax Progressivity and Inequality in Brazil",
		URL:      "https://gabriel-zucman.eu/files/PalomoEtal2025.pdf",
	},
	{
		Country:  "Netherlands",
		Authors:  "Bruil, van Essen, Leenders, Lejour, Möhlmann, Rabaté",
		Year:     2025,
		ShortRef: "Bruil et al. (2025)",
		Title:    "Inequality and Redistribution in the Netherlands",
		URL:      "https://wouterleenders.eu/Bruiletal2025WP.pdf",
	},
	{
		Country:  "Italy",
		Authors:  "Guzzardi, Palagi, Roventini, Santoro",
		Year:     2024,
		ShortRef: "Guzzardi et al. (2024)",
		Title:    "Reconstructing Income Inequality in Italy",
		URL:      "https://wid.world/document/reconstructing-income-inequality-in-italy-new-evidence-and-tax-policy-implications-from-dina-world-inequality-lab-working-paper-2022-02/",
	},
}

// CountryPapers returns the papers for a single country.
func CountryPapers(country string) []Paper {
	return lo.Filter(Papers, func(p Paper, _ int) bool {
		return strings.EqualFold(p.Country, country)
	})
}

// MultipleCountriesPapers returns the papers for any of the given countries,
// each paper at most once.
func MultipleCountriesPapers(countries []string) []Paper {
	matching := lo.Filter(Papers, func(p Paper, _ int) bool {
		return lo.ContainsBy(countries, func(c string) bool { return strings.EqualFold(c, p.Country) })
	})
	return lo.UniqBy(matching, func(p Paper) string {
		return fmt.Sprintf("%s-%d", p.Authors, p.Year)
	})
}

// FormatCitations joins the short references, e.g. "Bozio et al. (2020), Bach et al. (2025)".
func FormatCitations(papers []Paper) string {
	return strings.Join(lo.Map(papers, func(p Paper, _ int) string { return p.ShortRef }), ", ")
}

// FormatFullAuthors joins full author lists with their year.
func FormatFullAuthors(papers []Paper) string {
	return strings.Join(lo.Map(papers, func(p Paper, _ int) string {
		return fmt.Sprintf("%s (%d)", p.Authors, p.Year)
	}), "; ")
}
