package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/contactkeval/vanilla-pricer/cmd/vanilla-pricer/run"
	"github.com/contactkeval/vanilla-pricer/internal/logger"
	"github.com/contactkeval/vanilla-pricer/internal/pricing"
	"github.com/contactkeval/vanilla-pricer/internal/report"
)

var rootCmd = &cobra.Command{
	Use:           "vanilla-pricer",
	Short:         "Price a European vanilla call and put with Black-Scholes",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()

		configPath, err := flags.GetString("config")
		if err != nil {
			return err
		}
		envFile, err := flags.GetString("env-file")
		if err != nil {
			return err
		}

		overrides, err := overridesFromFlags(flags)
		if err != nil {
			return err
		}

		_, err = run.Run(run.RunArgs{
			ConfigPath: configPath,
			EnvFile:    envFile,
			Overrides:  overrides,
		}, cmd.OutOrStdout())
		return err
	},
}

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Price the default option and a user-defined one",
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := cmd.Flags().GetString("format")
		if err != nil {
			return err
		}
		format, err := report.ParseFormat(raw)
		if err != nil {
			return err
		}

		_, err = run.Demo(cmd.OutOrStdout(), format)
		return err
	},
}

// overridesFromFlags keeps only the flags the user set, so that config file
// and environment values are not clobbered by flag defaults.
func overridesFromFlags(flags *pflag.FlagSet) (run.Overrides, error) {
	var o run.Overrides

	floats := []struct {
		name string
		dst  **float64
	}{
		{"strike", &o.Strike},
		{"rate", &o.Rate},
		{"maturity", &o.Maturity},
		{"spot", &o.Spot},
		{"sigma", &o.Sigma},
	}
	for _, f := range floats {
		if !flags.Changed(f.name) {
			continue
		}
		v, err := flags.GetFloat64(f.name)
		if err != nil {
			return o, err
		}
		*f.dst = &v
	}

	strs := []struct {
		name string
		dst  **string
	}{
		{"type", &o.Type},
		{"format", &o.Format},
		{"report-dir", &o.ReportDir},
	}
	for _, s := range strs {
		if !flags.Changed(s.name) {
			continue
		}
		v, err := flags.GetString(s.name)
		if err != nil {
			return o, err
		}
		*s.dst = &v
	}

	if flags.Changed("verbosity") {
		v, err := flags.GetInt("verbosity")
		if err != nil {
			return o, err
		}
		o.Verbosity = &v
	}

	return o, nil
}

func main() {
	flags := rootCmd.Flags()
	flags.Float64("strike", pricing.DefaultStrike, "Strike price of the option (K).")
	flags.Float64("rate", pricing.DefaultRate, "Continuously compounded risk-free rate (r).")
	flags.Float64("maturity", pricing.DefaultMaturity, "Time to maturity in years (T).")
	flags.Float64("spot", pricing.DefaultSpot, "Current price of the underlying (S).")
	flags.Float64("sigma", pricing.DefaultSigma, "Annualized volatility of the underlying.")
	flags.String("type", "both", "Option type to price: call, put or both.")
	flags.String("config", "", "Path to a YAML config file.")
	flags.String("env-file", ".env", "Optional .env file with PRICER_* variables.")
	flags.String("report-dir", "", "Also write quote.json and quote.csv into this directory.")
	flags.IntP("verbosity", "v", 1, "Log verbosity: 0=errors, 1=info, 2=debug, 3=trace.")

	rootCmd.PersistentFlags().String("format", string(report.FormatTable), "Output format: table, json, csv or yaml.")
	rootCmd.AddCommand(demoCmd)

	if err := rootCmd.Execute(); err != nil {
		logger.Errorf("%v", err)
		os.Exit(1)
	}
}
