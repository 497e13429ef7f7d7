package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contactkeval/vanilla-pricer/internal/pricing"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func envMap(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func TestLoad(t *testing.T) {
	t.Run("empty path returns defaults", func(t *testing.T) {
		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, Default(), cfg)
		assert.Equal(t, pricing.DefaultParams(), cfg.Option.Params())
		assert.NoError(t, cfg.Validate())
	})

	t.Run("partial option falls back to defaults", func(t *testing.T) {
		path := writeFile(t, "pricer.yaml", `
option:
  strike: 1000
  rate: 0.025
  maturity: 2
type: call
format: json
verbosity: 2
report_dir: out
`)
		cfg, err := Load(path)
		require.NoError(t, err)

		p := cfg.Option.Params()
		assert.Equal(t, 1000.0, p.Strike)
		assert.Equal(t, 0.025, p.Rate)
		assert.Equal(t, 2.0, p.Maturity)
		assert.Equal(t, pricing.DefaultSpot, p.Spot)
		assert.Equal(t, pricing.DefaultSigma, p.Sigma)
		assert.Equal(t, "json", cfg.Format)
		assert.Equal(t, 2, cfg.Verbosity)
		assert.Equal(t, "out", cfg.ReportDir)

		types, err := cfg.OptionTypes()
		require.NoError(t, err)
		assert.Equal(t, []pricing.OptionType{pricing.Call}, types)
	})

	t.Run("explicit zero rate is kept", func(t *testing.T) {
		path := writeFile(t, "pricer.yaml", "option:\n  rate: 0\n")
		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, 0.0, cfg.Option.Params().Rate)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := writeFile(t, "bad.yaml", "option: [1, 2\n")
		_, err := Load(path)
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})
}

func TestApplyEnv(t *testing.T) {
	t.Run("overrides", func(t *testing.T) {
		cfg := Default()
		err := cfg.ApplyEnv(envMap(map[string]string{
			"PRICER_SPOT":       " 105.5 ",
			"PRICER_SIGMA":      "0.3",
			"PRICER_TYPE":       "put",
			"PRICER_FORMAT":     "csv",
			"PRICER_VERBOSITY":  "0",
			"PRICER_REPORT_DIR": "/tmp/q",
		}))
		require.NoError(t, err)

		p := cfg.Option.Params()
		assert.Equal(t, 105.5, p.Spot)
		assert.Equal(t, 0.3, p.Sigma)
		assert.Equal(t, pricing.DefaultStrike, p.Strike)
		assert.Equal(t, "put", cfg.Type)
		assert.Equal(t, "csv", cfg.Format)
		assert.Equal(t, 0, cfg.Verbosity)
		assert.Equal(t, "/tmp/q", cfg.ReportDir)
	})

	t.Run("unparsable number", func(t *testing.T) {
		cfg := Default()
		err := cfg.ApplyEnv(envMap(map[string]string{"PRICER_STRIKE": "abc"}))
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("unparsable verbosity", func(t *testing.T) {
		cfg := Default()
		err := cfg.ApplyEnv(envMap(map[string]string{"PRICER_VERBOSITY": "loud"}))
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})
}

func TestLoadEnvFile(t *testing.T) {
	t.Run("missing file is ignored", func(t *testing.T) {
		loaded, err := LoadEnvFile(filepath.Join(t.TempDir(), ".env"))
		require.NoError(t, err)
		assert.False(t, loaded)
	})

	t.Run("loads variables", func(t *testing.T) {
		path := writeFile(t, ".env", "PRICER_TEST_ONLY_STRIKE=123\n")
		t.Cleanup(func() { os.Unsetenv("PRICER_TEST_ONLY_STRIKE") })

		loaded, err := LoadEnvFile(path)
		require.NoError(t, err)
		assert.True(t, loaded)
		assert.Equal(t, "123", os.Getenv("PRICER_TEST_ONLY_STRIKE"))
	})
}

func TestValidate(t *testing.T) {
	zero := 0.0
	tests := []struct {
		name   string
		mutate func(c *Config)
		target error
	}{
		{"unknown format", func(c *Config) { c.Format = "xml" }, ErrInvalidConfig},
		{"unknown type", func(c *Config) { c.Type = "straddle" }, pricing.ErrInvalidOptionType},
		{"zero sigma", func(c *Config) { c.Option.Sigma = &zero }, pricing.ErrInvalidParameter},
		{"zero maturity", func(c *Config) { c.Option.Maturity = &zero }, ErrInvalidConfig},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), tc.target)
		})
	}
}
