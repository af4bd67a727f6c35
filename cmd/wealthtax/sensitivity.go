package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rgehrsitz/wealthtax/internal/calculation"
	"github.com/rgehrsitz/wealthtax/internal/domain"
	"github.com/rgehrsitz/wealthtax/internal/output"
)

func (c *cli) sensitivityCmd() *cobra.Command {
	var (
		parameter string
		matrix    bool
		steps     int
		format    string
	)

	cmd := &cobra.Command{
		Use:   "sensitivity <dataset|country>",
		Short: "Sweep a reform parameter and report revenue sensitivity",
		Long: `Sweep the wealth threshold (log scale, 1M to 1000M) or the tax rate
(0% to 5%) holding the other parameter at its base value. With --matrix both
parameters are swept together.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			param, ok := domain.FindCommonParameter(parameter)
			if !ok {
				return fmt.Errorf("unknown parameter %q; valid parameters: %s, %s", parameter, domain.ParamThreshold, domain.ParamTaxRate)
			}
			if steps > 0 {
				param.Steps = steps
			}

			base, err := c.reformParams(cmd)
			if err != nil {
				return err
			}
			ds, err := c.loadDataset(args[0])
			if err != nil {
				return err
			}

			analyzer := calculation.NewSensitivityAnalyzer(c.newEngine())
			analyzer.Workers = c.settings.Workers

			var analysis any
			if matrix {
				other := domain.TaxRateParam
				if param.Name == domain.ParamTaxRate {
					other = domain.ThresholdParam
				}
				analysis, err = analyzer.AnalyzeParameterMatrix(cmd.Context(), ds, base, param, other)
			} else {
				analysis, err = analyzer.AnalyzeSingleParameter(cmd.Context(), ds, base, param)
			}
			if err != nil {
				return fmt.Errorf("sensitivity analysis failed: %w", err)
			}

			out, err := output.NewSensitivityFormatter(format).FormatSensitivityAnalysis(analysis)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}

	reformFlags(cmd)
	cmd.Flags().StringVarP(&parameter, "parameter", "p", domain.ParamThreshold, "Parameter to sweep: threshold, tax_rate")
	cmd.Flags().BoolVar(&matrix, "matrix", false, "Sweep both parameters, the other one as columns")
	cmd.Flags().IntVar(&steps, "steps", 0, "Number of sweep points (default per parameter)")
	cmd.Flags().StringVarP(&format, "format", "f", "console", "Output format: console, csv, json")
	return cmd
}
