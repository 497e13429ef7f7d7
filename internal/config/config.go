// Package config loads the pricer CLI settings from a YAML file and the
// environment. Values are layered: built-in defaults, then the file, then
// PRICER_* environment variables. Command-line flags are applied on top by
// the caller.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/contactkeval/vanilla-pricer/internal/pricing"
	"github.com/contactkeval/vanilla-pricer/internal/report"
)

const EnvPrefix = "PRICER_"

var ErrInvalidConfig = errors.New("invalid config")

// OptionConfig holds the market parameters. Nil fields fall back to the
// pricing defaults.
type OptionConfig struct {
	Strike   *float64 `yaml:"strike,omitempty"`
	Rate     *float64 `yaml:"rate,omitempty"`
	Maturity *float64 `yaml:"maturity,omitempty"`
	Spot     *float64 `yaml:"spot,omitempty"`
	Sigma    *float64 `yaml:"sigma,omitempty"`
}

type Config struct {
	Option    OptionConfig `yaml:"option"`
	Type      string       `yaml:"type,omitempty"`   // "call", "put" or "both"
	Format    string       `yaml:"format,omitempty"` // see report.Format
	Verbosity int          `yaml:"verbosity"`        // 0=errors,1=info,2=debug,3=trace
	ReportDir string       `yaml:"report_dir,omitempty"`
}

func Default() *Config {
	return &Config{
		Type:      "both",
		Format:    string(report.FormatTable),
		Verbosity: 1,
	}
}

// Load reads the YAML file at path over the defaults. An empty path returns
// the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %v: %w", path, err, ErrInvalidConfig)
	}
	return cfg, nil
}

// LoadEnvFile loads KEY=value pairs from a .env file into the process
// environment without overriding variables that are already set. A missing
// file is not an error.
func LoadEnvFile(path string) (bool, error) {
	if path == "" {
		return false, nil
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return false, nil
	}

	if err := godotenv.Load(path); err != nil {
		return false, fmt.Errorf("failed to load %s file: %w", path, err)
	}
	return true, nil
}

// ApplyEnv overrides cfg with any PRICER_* variables found through lookup.
func (cfg *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	floats := []struct {
		key string
		dst **float64
	}{
		{"STRIKE", &cfg.Option.Strike},
		{"RATE", &cfg.Option.Rate},
		{"MATURITY", &cfg.Option.Maturity},
		{"SPOT", &cfg.Option.Spot},
		{"SIGMA", &cfg.Option.Sigma},
	}

	for _, f := range floats {
		raw, ok := lookup(EnvPrefix + f.key)
		if !ok {
			continue
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return fmt.Errorf("%s%s=%q: %w", EnvPrefix, f.key, raw, ErrInvalidConfig)
		}
		*f.dst = &v
	}

	if raw, ok := lookup(EnvPrefix + "VERBOSITY"); ok {
		v, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return fmt.Errorf("%sVERBOSITY=%q: %w", EnvPrefix, raw, ErrInvalidConfig)
		}
		cfg.Verbosity = v
	}

	if raw, ok := lookup(EnvPrefix + "TYPE"); ok {
		cfg.Type = raw
	}
	if raw, ok := lookup(EnvPrefix + "FORMAT"); ok {
		cfg.Format = raw
	}
	if raw, ok := lookup(EnvPrefix + "REPORT_DIR"); ok {
		cfg.ReportDir = raw
	}

	return nil
}

// Params resolves the option parameters, filling unset fields from
// pricing.DefaultParams.
func (o OptionConfig) Params() pricing.Params {
	p := pricing.DefaultParams()
	if o.Strike != nil {
		p.Strike = *o.Strike
	}
	if o.Rate != nil {
		p.Rate = *o.Rate
	}
	if o.Maturity != nil {
		p.Maturity = *o.Maturity
	}
	if o.Spot != nil {
		p.Spot = *o.Spot
	}
	if o.Sigma != nil {
		p.Sigma = *o.Sigma
	}
	return p
}

// OptionTypes maps Type to the option types to price.
func (cfg *Config) OptionTypes() ([]pricing.OptionType, error) {
	switch t := strings.ToLower(strings.TrimSpace(cfg.Type)); t {
	case "", "both":
		return []pricing.OptionType{pricing.Call, pricing.Put}, nil
	default:
		ot := pricing.OptionType(t)
		if err := ot.Validate(); err != nil {
			return nil, fmt.Errorf("type: %w: %w", err, ErrInvalidConfig)
		}
		return []pricing.OptionType{ot}, nil
	}
}

// Validate checks the settings that can be checked without pricing.
func (cfg *Config) Validate() error {
	if _, err := report.ParseFormat(cfg.Format); err != nil {
		return fmt.Errorf("format: %w: %w", err, ErrInvalidConfig)
	}
	if _, err := cfg.OptionTypes(); err != nil {
		return err
	}
	if err := cfg.Option.Params().Validate(); err != nil {
		return fmt.Errorf("option: %w: %w", err, ErrInvalidConfig)
	}
	return nil
}
