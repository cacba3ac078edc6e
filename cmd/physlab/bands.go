// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/physlab/internal/convert"
	"github.com/pdiddy/physlab/internal/extract"
	"github.com/pdiddy/physlab/internal/report"
	"github.com/pdiddy/physlab/pkg/types"
)

var bandsCmd = &cobra.Command{
	Use:   "bands FILE",
	Short: "Report band energies at selected k-points",
	Long: `Bands scans FILE for "k = x y z ... bands (ev):" blocks and prints the
band energies of the block nearest each target k-point. Targets default to
Gamma (0 0 0) and (0 0.75 0) and can be set with --target or bands.targets
in the config file. The global band edges are printed when reported.`,
	Args: cobra.ExactArgs(1),
	RunE: runBands,
}

func runBands(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	labels := cfg.Bands.Labels
	if cmd.Flags().Changed("target") && !cmd.Flags().Changed("label") {
		// Default labels belong to the default targets.
		labels = nil
	}
	targets, err := report.ParseTargets(cfg.Bands.Targets, labels)
	if err != nil {
		return err
	}

	text, err := convert.ReadText(args[0])
	if err != nil {
		return err
	}

	blocks := extract.ParseBandBlocks(text)
	logger.Debug("parsed band blocks", "file", args[0], "blocks", len(blocks))

	out := cmd.OutOrStdout()
	report.FormatBands(out, blocks, targets)

	var edges *types.BandEdges
	if e, ok := extract.ExtractBandEdges(text); ok {
		edges = &e
		report.FormatEdges(out, edges)
	} else {
		logger.Debug("no band edges reported", "file", args[0])
	}

	if stats, _ := cmd.Flags().GetBool("stats"); stats {
		report.FormatBandStats(out, blocks, targets, edges)
	}
	return nil
}

func init() {
	bandsCmd.Flags().StringArray("target", nil, `k-point to report, as "x y z" (repeatable)`)
	bandsCmd.Flags().StringArray("label", nil, "label for the target at the same position (repeatable)")
	bandsCmd.Flags().Bool("stats", false, "print min, max and mean energy per target")

	viper.BindPFlag("bands.targets", bandsCmd.Flags().Lookup("target"))
	viper.BindPFlag("bands.labels", bandsCmd.Flags().Lookup("label"))

	rootCmd.AddCommand(bandsCmd)
}
