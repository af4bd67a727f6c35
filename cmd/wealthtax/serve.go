package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/rgehrsitz/wealthtax/internal/config"
	"github.com/rgehrsitz/wealthtax/internal/server"
)

func (c *cli) serveCmd() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the simulator as a JSON API",
		Long: `Load every dataset from the data directory and serve simulate, compare
and break-even endpoints over HTTP until interrupted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("port") {
				c.settings.Server.Port = port
				if err := c.settings.Validate(); err != nil {
					return err
				}
			}

			datasets, err := config.NewInputParser().LoadDirectory(c.settings.DataDir)
			if err != nil {
				return fmt.Errorf("failed to load datasets: %w", err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := server.New(datasets, c.newEngine(), server.Options{
				Defaults: c.settings.ReformParameters(),
				Workers:  c.settings.Workers,
			})
			return srv.ListenAndServe(ctx, c.settings.Address())
		},
	}

	cmd.Flags().IntVar(&port, "port", 8080, "Port to listen on (default from settings)")
	return cmd
}
