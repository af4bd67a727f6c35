package main

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"sort"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rgehrsitz/wealthtax/internal/calculation"
	"github.com/rgehrsitz/wealthtax/internal/config"
	"github.com/rgehrsitz/wealthtax/internal/domain"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var logLevels = map[string]logrus.Level{
	"trace":    logrus.TraceLevel,
	"debug":    logrus.DebugLevel,
	"info":     logrus.InfoLevel,
	"warn":     logrus.WarnLevel,
	"error":    logrus.ErrorLevel,
	"critical": logrus.FatalLevel,
	"off":      logrus.PanicLevel,
}

var log = logrus.WithField("module", "cli")

// cli carries state shared by every subcommand
type cli struct {
	settingsPath string
	logLevel     string
	settings     *config.Settings
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:   "wealthtax",
		Short: "Minimum wealth tax simulator",
		Long: `Simulate a minimum tax on the net wealth of the richest households:
extra revenue, taxpayers affected and effective tax rates by income group.`,
		SilenceUsage:      true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return c.setup(cmd.ErrOrStderr()) },
	}

	root.PersistentFlags().StringVar(&c.settingsPath, "settings", "", "Settings file (default: ./wealthtax.yaml if present)")
	root.PersistentFlags().StringVar(&c.logLevel, "log-level", "", "Log level: "+levelNames()+" (default from settings)")

	root.AddCommand(
		c.simulateCmd(),
		c.validateCmd(),
		c.compareCmd(),
		c.sensitivityCmd(),
		c.breakEvenCmd(),
		c.serveCmd(),
		versionCmd(),
	)
	return root
}

// setup loads settings and configures logging
func (c *cli) setup(stderr io.Writer) error {
	settings, err := config.LoadSettings(c.settingsPath)
	if err != nil {
		return err
	}
	c.settings = settings

	name := settings.Logging.Level
	if c.logLevel != "" {
		name = c.logLevel
	}
	level, ok := logLevels[name]
	if !ok {
		return fmt.Errorf("log level must be one of %s, got %q", levelNames(), name)
	}
	logrus.SetLevel(level)
	logrus.SetOutput(stderr)
	if settings.Logging.Format == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	}
	log.Debugf("settings loaded: data_dir=%s workers=%d", settings.DataDir, settings.Workers)
	return nil
}

func levelNames() string {
	names := lo.Keys(logLevels)
	sort.Strings(names)
	return fmt.Sprint(names)
}

// newEngine creates a calculation engine logging through logrus
func (c *cli) newEngine() *calculation.Engine {
	engine := calculation.NewEngine()
	engine.SetLogger(logrus.WithField("module", "engine"))
	engine.Debug = logrus.IsLevelEnabled(logrus.DebugLevel)
	return engine
}

// loadDataset reads a dataset file, or looks a country up in the data
// directory when arg is not a file
func (c *cli) loadDataset(arg string) (*domain.CountryDataset, error) {
	parser := config.NewInputParser()
	if fileExists(arg) {
		return parser.LoadFromFile(arg)
	}

	datasets, err := parser.LoadDirectory(c.settings.DataDir)
	if err != nil {
		return nil, fmt.Errorf("%s is not a file and the data directory could not be read: %w", arg, err)
	}
	ds, ok := config.FindDataset(datasets, arg)
	if !ok {
		return nil, fmt.Errorf("unknown country %q; available: %v", arg, countryNames(datasets))
	}
	return ds, nil
}

// loadDatasets reads every argument, or the whole data directory when none
// are given
func (c *cli) loadDatasets(args []string) ([]*domain.CountryDataset, error) {
	if len(args) == 0 {
		return config.NewInputParser().LoadDirectory(c.settings.DataDir)
	}
	datasets := make([]*domain.CountryDataset, 0, len(args))
	for _, arg := range args {
		ds, err := c.loadDataset(arg)
		if err != nil {
			return nil, err
		}
		datasets = append(datasets, ds)
	}
	return datasets, nil
}

// reformFlags registers --threshold and --tax-rate (percent)
func reformFlags(cmd *cobra.Command) {
	cmd.Flags().Float64("threshold", domain.DefaultThreshold, "Wealth threshold in millions")
	cmd.Flags().Float64("tax-rate", domain.DefaultTaxRate*100, "Minimum tax rate in percent of net wealth")
}

// reformParams reads the reform flags, falling back to the settings
// defaults for flags that were not given
func (c *cli) reformParams(cmd *cobra.Command) (domain.ReformParameters, error) {
	params := c.settings.ReformParameters()
	if cmd.Flags().Changed("threshold") {
		params.Threshold, _ = cmd.Flags().GetFloat64("threshold")
	}
	if cmd.Flags().Changed("tax-rate") {
		percent, _ := cmd.Flags().GetFloat64("tax-rate")
		params.TaxRate = percent / 100
	}
	if err := params.Validate(); err != nil {
		return params, err
	}
	return params, nil
}

func reformGiven(cmd *cobra.Command) bool {
	return cmd.Flags().Changed("threshold") || cmd.Flags().Changed("tax-rate")
}

// fileExists checks if a file exists
func fileExists(filename string) bool {
	info, err := os.Stat(filename)
	return err == nil && !info.IsDir()
}

func (c *cli) validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <dataset>...",
		Short: "Validate dataset files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parser := config.NewInputParser()
			for _, file := range args {
				ds, err := parser.LoadFromFile(file)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Dataset %s is valid (%s, %d bands, %d → %d)\n",
					file, ds.Country, len(ds.Bands), ds.DataYear, ds.SimulationYear)
			}
			return nil
		},
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "wealthtax %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.Main.Path + " " + bi.GoVersion
	}
	return ""
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
