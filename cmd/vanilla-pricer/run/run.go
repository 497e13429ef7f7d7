package run

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/contactkeval/vanilla-pricer/internal/config"
	"github.com/contactkeval/vanilla-pricer/internal/logger"
	"github.com/contactkeval/vanilla-pricer/internal/pricing"
	"github.com/contactkeval/vanilla-pricer/internal/report"
)

// Overrides carries the command-line flags the user set explicitly.
type Overrides struct {
	Strike    *float64
	Rate      *float64
	Maturity  *float64
	Spot      *float64
	Sigma     *float64
	Type      *string
	Format    *string
	ReportDir *string
	Verbosity *int
}

type RunArgs struct {
	ConfigPath string
	EnvFile    string
	Lookup     func(string) (string, bool) // defaults to os.LookupEnv
	Overrides  Overrides
}

type RunResult struct {
	Config *config.Config
	Quote  report.Quote
}

// Run prices the option described by the layered configuration and renders
// the quote to w.
func Run(args RunArgs, w io.Writer) (RunResult, error) {
	loaded, err := config.LoadEnvFile(args.EnvFile)
	if err != nil {
		return RunResult{}, err
	}

	cfg, err := config.Load(args.ConfigPath)
	if err != nil {
		return RunResult{}, err
	}

	lookup := args.Lookup
	if lookup == nil {
		lookup = os.LookupEnv
	}
	if err := cfg.ApplyEnv(lookup); err != nil {
		return RunResult{}, err
	}
	args.Overrides.apply(cfg)

	logger.SetVerbosity(cfg.Verbosity)
	if loaded {
		logger.Debugf("loaded environment from %s", args.EnvFile)
	}

	if err := cfg.Validate(); err != nil {
		return RunResult{}, err
	}

	format, err := report.ParseFormat(cfg.Format)
	if err != nil {
		return RunResult{}, err
	}
	types, err := cfg.OptionTypes()
	if err != nil {
		return RunResult{}, err
	}

	params := cfg.Option.Params()
	p, err := pricing.NewFromParams(params)
	if err != nil {
		return RunResult{}, fmt.Errorf("price option: %w", err)
	}

	logger.WithFields(logrus.Fields{
		"strike":   params.Strike,
		"rate":     params.Rate,
		"maturity": params.Maturity,
		"spot":     params.Spot,
		"sigma":    params.Sigma,
	}).Debug("pricing option")
	logger.Tracef("d1=%.10f d2=%.10f discounted strike=%.10f", p.D1(), p.D2(), p.DiscountedStrike())

	quote, err := report.NewQuote("option", p, types...)
	if err != nil {
		return RunResult{}, err
	}

	if err := report.Write(w, format, quote); err != nil {
		return RunResult{}, fmt.Errorf("render quote: %w", err)
	}

	if cfg.ReportDir != "" {
		if err := report.WriteFiles(cfg.ReportDir, quote); err != nil {
			return RunResult{}, err
		}
		logger.Infof("wrote quote report to %s", cfg.ReportDir)
	}

	return RunResult{Config: cfg, Quote: quote}, nil
}

// Demo prices the default option and a user-defined one
// (K=1000, r=2.5%, T=2, S=1000, sigma=10%).
func Demo(w io.Writer, format report.Format) ([]report.Quote, error) {
	userDefined, err := pricing.New(1000.0, 0.025, 2.0, 1000.0, 0.1)
	if err != nil {
		return nil, err
	}

	pricers := []struct {
		label  string
		pricer pricing.Pricer
	}{
		{"default", pricing.Default()},
		{"user-defined", userDefined},
	}

	quotes := make([]report.Quote, 0, len(pricers))
	for _, p := range pricers {
		q, err := report.NewQuote(p.label, p.pricer)
		if err != nil {
			return nil, err
		}
		quotes = append(quotes, q)
	}

	if format == report.FormatTable {
		fmt.Fprintln(w, ": European Vanilla Options Price Calculator :")
	}
	if err := report.Write(w, format, quotes...); err != nil {
		return nil, err
	}
	return quotes, nil
}

func (o Overrides) apply(cfg *config.Config) {
	if o.Strike != nil {
		cfg.Option.Strike = o.Strike
	}
	if o.Rate != nil {
		cfg.Option.Rate = o.Rate
	}
	if o.Maturity != nil {
		cfg.Option.Maturity = o.Maturity
	}
	if o.Spot != nil {
		cfg.Option.Spot = o.Spot
	}
	if o.Sigma != nil {
		cfg.Option.Sigma = o.Sigma
	}
	if o.Type != nil {
		cfg.Type = *o.Type
	}
	if o.Format != nil {
		cfg.Format = *o.Format
	}
	if o.ReportDir != nil {
		cfg.ReportDir = *o.ReportDir
	}
	if o.Verbosity != nil {
		cfg.Verbosity = *o.Verbosity
	}
}
