package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/rgehrsitz/wealthtax/internal/compare"
	"github.com/rgehrsitz/wealthtax/internal/domain"
	"github.com/rgehrsitz/wealthtax/internal/output"
)

func (c *cli) compareCmd() *cobra.Command {
	var (
		format    string
		outputDir string
	)

	cmd := &cobra.Command{
		Use:   "compare [dataset|country]...",
		Short: "Compare current effective tax rates across countries",
		Long: `Line up the current effective tax rate of every income group across
countries. Without arguments every dataset in the data directory is used.
Passing --threshold or --tax-rate also compares the revenue of that reform.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var render func(*compare.ComparisonSet) (string, error)
			switch format {
			case "table", "console":
				render = func(cs *compare.ComparisonSet) (string, error) { return (&compare.TableFormatter{}).Format(cs), nil }
			case "csv":
				render = (&compare.CSVFormatter{}).Format
			case "json":
				render = (&compare.JSONFormatter{Pretty: true}).Format
			case "chart":
				render = (&compare.JSONFormatter{Pretty: true, ChartRows: true}).Format
			default:
				return fmt.Errorf("unknown format %q; valid formats: table, csv, json, chart", format)
			}

			datasets, err := c.loadDatasets(args)
			if err != nil {
				return err
			}

			opts := compare.Options{Workers: c.settings.Workers}
			if reformGiven(cmd) {
				params, err := c.reformParams(cmd)
				if err != nil {
					return err
				}
				opts.Reform = &params
			}

			compSet, err := compare.NewCompareEngine(c.newEngine()).Compare(cmd.Context(), datasets, opts)
			if err != nil {
				return fmt.Errorf("comparison failed: %w", err)
			}
			log.Debugf("compared %v over %d groups", countryNames(datasets), len(compSet.Rows))

			out, err := render(compSet)
			if err != nil {
				return err
			}
			if outputDir == "" {
				fmt.Fprint(cmd.OutOrStdout(), out)
				return nil
			}

			ext := format
			switch format {
			case "table", "console":
				ext = "txt"
			case "chart":
				ext = "json"
			}
			country := ""
			if len(datasets) == 1 {
				country = datasets[0].Country
			}
			path := filepath.Join(outputDir, output.ExportFilename(output.KindComparison, country, ext, time.Now()))
			if err := os.WriteFile(path, []byte(out), 0644); err != nil {
				return fmt.Errorf("failed to write %s: %w", path, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Comparison written to %s\n", path)
			return nil
		},
	}

	reformFlags(cmd)
	cmd.Flags().StringVarP(&format, "format", "f", "table", "Output format: table, csv, json, chart")
	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "Write the comparison into this directory instead of stdout")
	return cmd
}

// countryNames lists dataset countries in order
func countryNames(datasets []*domain.CountryDataset) []string {
	return lo.Map(datasets, func(ds *domain.CountryDataset, _ int) string { return ds.Country })
}
