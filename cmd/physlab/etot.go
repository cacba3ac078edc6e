// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/physlab/internal/convert"
	"github.com/pdiddy/physlab/internal/extract"
	"github.com/pdiddy/physlab/internal/plot"
	"github.com/pdiddy/physlab/internal/report"
)

// ErrNoEnergies is returned when a file contains no total-energy lines.
var ErrNoEnergies = errors.New("no Etot/total energy lines found")

var etotCmd = &cobra.Command{
	Use:   "etot FILE",
	Short: "Plot the SCF total energy against iteration",
	Long: `Etot collects "total energy = ..." and "Etot = ..." lines from FILE,
orders them by SCF iteration, and saves a line chart next to FILE
(etot_vs_n.png unless plot.filename says otherwise).

Use --table to print the series and a convergence summary as well.`,
	Args: cobra.ExactArgs(1),
	RunE: runEtot,
}

func runEtot(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	path := args[0]

	text, err := convert.ReadText(path)
	if err != nil {
		return err
	}

	points := extract.ParseEtotLines(text)
	if len(points) == 0 {
		return fmt.Errorf("%s: %w", path, ErrNoEnergies)
	}
	logger.Debug("parsed energies", "file", path, "points", len(points))

	out := cmd.OutOrStdout()
	if table, _ := cmd.Flags().GetBool("table"); table {
		report.FormatSCF(out, points, cfg.Analysis.ConvergenceThreshold)
	}

	if noPlot, _ := cmd.Flags().GetBool("no-plot"); noPlot {
		return nil
	}

	saved, err := plot.WriteSCFChart(points, path, cfg.Plot)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Saved plot: %s\n", saved)
	return nil
}

func init() {
	etotCmd.Flags().Bool("table", false, "print the energy series and convergence summary")
	etotCmd.Flags().Bool("no-plot", false, "skip writing the chart")
	etotCmd.Flags().String("output", "", "chart file name, written next to FILE")
	etotCmd.Flags().Float64("threshold", 0, "convergence threshold in Ry")

	viper.BindPFlag("plot.filename", etotCmd.Flags().Lookup("output"))
	viper.BindPFlag("analysis.convergence_threshold", etotCmd.Flags().Lookup("threshold"))

	rootCmd.AddCommand(etotCmd)
}
