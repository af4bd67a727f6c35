package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/rgehrsitz/wealthtax/internal/domain"
)

// EnvPrefix prefixes environment overrides, e.g. WEALTHTAX_SERVER_PORT.
const EnvPrefix = "WEALTHTAX"

// Settings holds application settings shared by the CLI, TUI and server.
type Settings struct {
	DataDir  string         `mapstructure:"data_dir"  yaml:"data_dir"`
	Defaults DefaultsConfig `mapstructure:"defaults"  yaml:"defaults"`
	Server   ServerConfig   `mapstructure:"server"    yaml:"server"`
	Logging  LoggingConfig  `mapstructure:"logging"   yaml:"logging"`
	Workers  int            `mapstructure:"workers"   yaml:"workers"`
}

// DefaultsConfig holds the reform parameters used when none are given.
type DefaultsConfig struct {
	Threshold float64 `mapstructure:"threshold" yaml:"threshold"` // millions
	TaxRate   float64 `mapstructure:"tax_rate"  yaml:"tax_rate"`  // fraction
}

// ServerConfig holds HTTP API settings.
type ServerConfig struct {
	Host string `mapstructure:"host" yaml:"host"`
	Port int    `mapstructure:"port" yaml:"port"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"  yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `mapstructure:"format" yaml:"format"` // "text" or "json"
}

// ReformParameters returns the default reform as engine parameters.
func (s *Settings) ReformParameters() domain.ReformParameters {
	return domain.ReformParameters{TaxRate: s.Defaults.TaxRate, Threshold: s.Defaults.Threshold}
}

// Address returns host:port for the HTTP listener.
func (s *Settings) Address() string {
	return fmt.Sprintf("%s:%d", s.Server.Host, s.Server.Port)
}

// LoadSettings reads settings from defaults, an optional file and
// environment variables, in increasing precedence. An empty path skips the
// file; a missing wealthtax.yaml in the working directory is not an error.
func LoadSettings(path string) (*Settings, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("wealthtax")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading settings file: %w", err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("error unmarshaling settings: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}
	return &s, nil
}

// Validate checks settings values are usable.
func (s *Settings) Validate() error {
	if err := s.ReformParameters().Validate(); err != nil {
		return fmt.Errorf("defaults: %w", err)
	}
	if s.Server.Port <= 0 || s.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", s.Server.Port)
	}
	if s.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", s.Workers)
	}
	switch s.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("logging.format must be text or json, got %q", s.Logging.Format)
	}
	return nil
}

// setDefaults sets defaults for all settings.
func setDefaults(v *viper.Viper) {
	v.SetDefault("data_dir", "data")

	v.SetDefault("defaults.threshold", domain.DefaultThreshold)
	v.SetDefault("defaults.tax_rate", domain.DefaultTaxRate)

	v.SetDefault("server.host", "")
	v.SetDefault("server.port", 8080)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")

	v.SetDefault("workers", 4)
}
