package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/rgehrsitz/wealthtax/internal/output"
)

func (c *cli) simulateCmd() *cobra.Command {
	var (
		format    string
		outputDir string
	)

	cmd := &cobra.Command{
		Use:   "simulate <dataset|country>",
		Short: "Simulate a minimum wealth tax for one country",
		Long: `Simulate the extra revenue, affected taxpayers and effective tax rates
of a minimum tax on net wealth above a threshold.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := output.GetFormatterByName(format)
			if formatter == nil {
				return fmt.Errorf("unknown format %q; valid formats: %s (aliases: %s)", format,
					strings.Join(output.AvailableFormatterNames(), ", "),
					strings.Join(output.AvailableFormatAliases(), ", "))
			}

			params, err := c.reformParams(cmd)
			if err != nil {
				return err
			}
			ds, err := c.loadDataset(args[0])
			if err != nil {
				return err
			}

			result, err := c.newEngine().Simulate(cmd.Context(), ds, params)
			if err != nil {
				return fmt.Errorf("simulation failed: %w", err)
			}
			for _, w := range result.Warnings {
				log.Warn(w)
			}

			report := output.NewReport(result, time.Now())
			if outputDir != "" {
				path, err := output.WriteFormatted(formatter, report, outputDir)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", path)
				return nil
			}

			data, err := formatter.Format(report)
			if err != nil {
				return fmt.Errorf("failed to format %s output: %w", formatter.Name(), err)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	reformFlags(cmd)
	cmd.Flags().StringVarP(&format, "format", "f", "console", "Output format: console, csv, html, json")
	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "Write the report into this directory instead of stdout")
	return cmd
}
