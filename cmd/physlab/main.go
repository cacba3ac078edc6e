// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the physlab CLI.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/physlab/internal/analysis"
	"github.com/pdiddy/physlab/internal/plot"
	"github.com/pdiddy/physlab/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// logger carries debug diagnostics. It discards everything unless
// --verbose is set.
var logger = slog.New(slog.NewTextHandler(io.Discard, nil))

// rootCmd is the base command for the physlab CLI.
var rootCmd = &cobra.Command{
	Use:   "physlab",
	Short: "Tools for a computational-physics course",
	Long: `physlab pulls physical quantities out of electronic-structure output
(band energies per k-point, the SCF total-energy series, band edges) and
integrates a harmonic pendulum with the leapfrog scheme.

Parsing is best-effort: unrecognised lines are ignored and missing data is
reported rather than treated as an error, except where a command needs it.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbose, _ := cmd.Flags().GetBool("verbose")
		if verbose {
			logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
		}
		if f := viper.ConfigFileUsed(); f != "" {
			logger.Debug("using config file", "path", f)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./physlab.yaml or ~/.config/physlab/physlab.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log debug diagnostics to stderr")

	viper.SetDefault("bands.targets", []string{"0 0 0", "0 0.75 0"})
	viper.SetDefault("bands.labels", []string{"Gamma"})
	viper.SetDefault("plot.width", 6.0)
	viper.SetDefault("plot.height", 4.0)
	viper.SetDefault("plot.dpi", 150)
	viper.SetDefault("plot.filename", plot.DefaultFilename)
	viper.SetDefault("analysis.convergence_threshold", analysis.DefaultConvergenceThreshold)
	viper.SetDefault("store.dir", "archive")
	viper.SetDefault("store.pattern", "*.out")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("physlab")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "physlab"))
		}
	}

	viper.SetEnvPrefix("PHYSLAB")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig assembles the typed configuration from viper.
func loadConfig() types.Config {
	return types.Config{
		Bands: types.BandsConfig{
			Targets: viper.GetStringSlice("bands.targets"),
			Labels:  viper.GetStringSlice("bands.labels"),
		},
		Plot: types.PlotConfig{
			Width:    viper.GetFloat64("plot.width"),
			Height:   viper.GetFloat64("plot.height"),
			DPI:      viper.GetInt("plot.dpi"),
			Filename: viper.GetString("plot.filename"),
		},
		Analysis: types.AnalysisConfig{
			ConvergenceThreshold: viper.GetFloat64("analysis.convergence_threshold"),
		},
		Store: types.StoreConfig{
			Dir:     viper.GetString("store.dir"),
			Pattern: viper.GetString("store.pattern"),
		},
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
