// Package config loads mashcalc settings from, lowest to highest precedence:
// built-in defaults, mashcalc.yaml, a .env file, MASHCALC_* environment
// variables and explicitly set command-line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/hammamikhairi/mashcalc/internal/still"
)

// EnvPrefix is stripped from environment variables before they map to keys:
// MASHCALC_LOG_LEVEL -> log_level.
const EnvPrefix = "MASHCALC_"

// DefaultFile is looked up in the working directory when no --config is given.
const DefaultFile = "mashcalc.yaml"

// Output formats.
const (
	OutputTable = "table"
	OutputJSON  = "json"
)

// Config holds all runtime settings.
type Config struct {
	LogLevel          string  `koanf:"log_level"`
	LogFormat         string  `koanf:"log_format"`
	LogFile           string  `koanf:"log_file"`
	DefinitionsFile   string  `koanf:"definitions_file"`
	ScenarioDB        string  `koanf:"scenario_db"`
	SugarDisplacement bool    `koanf:"sugar_displacement"`
	ChargeFillPercent float64 `koanf:"charge_fill_percent"`
	LowWinesABV       float64 `koanf:"low_wines_abv"`
	Output            string  `koanf:"output"`

	// FileUsed is the config file that was read, if any.
	FileUsed string `koanf:"-"`
}

func defaults() map[string]any {
	return map[string]any{
		"log_level":           "normal",
		"log_format":          "console",
		"log_file":            "stderr",
		"definitions_file":    "",
		"scenario_db":         ".mashcalc/scenarios.db",
		"sugar_displacement":  false,
		"charge_fill_percent": still.DefaultChargeFillPercent,
		"low_wines_abv":       still.DefaultLowWinesABV,
		"output":              OutputTable,
	}
}

// flagKeys maps flag names whose config key is not the snake_case form of
// the flag.
var flagKeys = map[string]string{
	"definitions": "definitions_file",
}

// LoadDotEnv loads a .env file into the process environment. A missing file
// is not an error; variables already set are not overwritten.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// Load builds a Config. cfgFile may be empty, in which case DefaultFile is
// used when present. flags may be nil; only flags the user changed override
// lower layers. The "config" flag itself is never treated as a key.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	used := findConfigFile(cfgFile)
	if used != "" {
		if err := k.Load(file.Provider(used), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", used, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env vars: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, any) {
			if !f.Changed || f.Name == "config" {
				return "", nil
			}
			key, ok := flagKeys[f.Name]
			if !ok {
				key = strings.ReplaceAll(f.Name, "-", "_")
			}
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("loading flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	cfg.FileUsed = used

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// findConfigFile returns the explicit path, else DefaultFile if it exists.
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if _, err := os.Stat(DefaultFile); err == nil {
		return DefaultFile
	}
	return ""
}

// Validate rejects values that have no sensible fallback. Strip defaults are
// not range-checked here; the still package clamps them with a warning.
func (c *Config) Validate() error {
	var errs []error
	switch strings.ToLower(c.LogLevel) {
	case "off", "quiet", "none", "normal", "info", "verbose", "debug":
	default:
		errs = append(errs, fmt.Errorf("log_level: unknown level %q", c.LogLevel))
	}
	switch strings.ToLower(c.LogFormat) {
	case "console", "json":
	default:
		errs = append(errs, fmt.Errorf("log_format: must be console or json, got %q", c.LogFormat))
	}
	switch strings.ToLower(c.Output) {
	case OutputTable, OutputJSON:
	default:
		errs = append(errs, fmt.Errorf("output: must be table or json, got %q", c.Output))
	}
	if c.ChargeFillPercent <= 0 {
		errs = append(errs, fmt.Errorf("charge_fill_percent: must be greater than zero, got %g", c.ChargeFillPercent))
	}
	if c.LowWinesABV <= 0 {
		errs = append(errs, fmt.Errorf("low_wines_abv: must be greater than zero, got %g", c.LowWinesABV))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// JSONOutput reports whether results should be printed as JSON.
func (c *Config) JSONOutput() bool {
	return strings.EqualFold(c.Output, OutputJSON)
}
