package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rgehrsitz/wealthtax/internal/breakeven"
	"github.com/rgehrsitz/wealthtax/internal/domain"
)

func (c *cli) breakEvenCmd() *cobra.Command {
	var (
		target    string
		revenue   float64
		headcount float64
		format    string
	)

	cmd := &cobra.Command{
		Use:   "break-even <dataset|country>",
		Short: "Solve for the reform parameter that reaches a revenue or headcount target",
		Long: `Find the lowest tax rate or the highest threshold that raises --revenue
(billions) or taxes --headcount units. The parameter not being solved keeps its
base value from --threshold / --tax-rate.`,
		Example: `  wealthtax break-even examplia --revenue 10
  wealthtax break-even norland --target threshold --headcount 1000
  wealthtax break-even sampleland --target all --revenue 50 --format json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "table" && format != "json" {
				return fmt.Errorf("unknown format %q; valid formats: table, json", format)
			}

			constraints := breakeven.DefaultConstraints()
			goal := breakeven.GoalMatchRevenue
			switch {
			case cmd.Flags().Changed("revenue") && cmd.Flags().Changed("headcount"):
				return fmt.Errorf("--revenue and --headcount are mutually exclusive")
			case cmd.Flags().Changed("revenue"):
				constraints.TargetRevenue = domain.DecimalPtr(revenue)
			case cmd.Flags().Changed("headcount"):
				constraints.TargetHeadcount = domain.DecimalPtr(headcount)
				goal = breakeven.GoalMatchHeadcount
			default:
				return fmt.Errorf("one of --revenue or --headcount is required")
			}

			base, err := c.reformParams(cmd)
			if err != nil {
				return err
			}
			ds, err := c.loadDataset(args[0])
			if err != nil {
				return err
			}
			solver := breakeven.NewDefaultSolver(c.newEngine())

			switch breakeven.OptimizationTarget(target) {
			case breakeven.OptimizeAll:
				result, err := solver.OptimizeMultiDimensional(cmd.Context(), ds, base, constraints, goal)
				if err != nil {
					return err
				}
				if format == "json" {
					out, err := (&breakeven.JSONFormatter{Pretty: true}).FormatMultiDimensional(result)
					if err != nil {
						return err
					}
					fmt.Fprintln(cmd.OutOrStdout(), out)
					return nil
				}
				fmt.Fprint(cmd.OutOrStdout(), (&breakeven.TableFormatter{}).FormatMultiDimensional(result))
				return nil

			case breakeven.OptimizeTaxRate, breakeven.OptimizeThreshold:
				result, err := solver.Optimize(cmd.Context(), breakeven.OptimizationRequest{
					Dataset:     ds,
					Base:        base,
					Target:      breakeven.OptimizationTarget(target),
					Goal:        goal,
					Constraints: constraints,
				})
				if err != nil {
					return err
				}
				if format == "json" {
					out, err := (&breakeven.JSONFormatter{Pretty: true}).Format(result)
					if err != nil {
						return err
					}
					fmt.Fprintln(cmd.OutOrStdout(), out)
					return nil
				}
				fmt.Fprint(cmd.OutOrStdout(), (&breakeven.TableFormatter{}).Format(result))
				return nil

			default:
				return fmt.Errorf("unknown target %q; valid targets: tax_rate, threshold, all", target)
			}
		},
	}

	reformFlags(cmd)
	cmd.Flags().StringVarP(&target, "target", "t", string(breakeven.OptimizeTaxRate), "Parameter to solve: tax_rate, threshold, all")
	cmd.Flags().Float64Var(&revenue, "revenue", 0, "Target revenue in billions")
	cmd.Flags().Float64Var(&headcount, "headcount", 0, "Target number of affected units")
	cmd.Flags().StringVarP(&format, "format", "f", "table", "Output format: table, json")
	return cmd
}
