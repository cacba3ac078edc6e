// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/physlab/internal/extract"
)

var extractCmd = &cobra.Command{
	Use:   "extract [FILE]",
	Short: "Dump every record recovered from an output file",
	Long: `Extract runs all parsers over FILE and writes the band blocks, the SCF
energy series and the band edges as YAML or JSON to stdout.

With --dir, every file matching --pattern in the directory is extracted to
<name>-records.yaml under --out. Files whose output is newer than the input
are skipped.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExtract,
}

func runExtract(cmd *cobra.Command, args []string) error {
	dir, _ := cmd.Flags().GetString("dir")

	if dir != "" {
		if len(args) > 0 {
			return fmt.Errorf("give either FILE or --dir, not both")
		}
		pattern, _ := cmd.Flags().GetString("pattern")
		outDir, _ := cmd.Flags().GetString("out")
		if outDir == "" {
			outDir = dir
		}

		summary, err := extract.ExtractAll(context.Background(), dir, pattern, outDir, cmd.OutOrStdout())
		if err != nil {
			return err
		}
		if summary.HasFailures() {
			return fmt.Errorf("%d file(s) failed extraction", summary.Failed)
		}
		return nil
	}

	if len(args) == 0 {
		return fmt.Errorf("FILE or --dir required")
	}

	result, err := extract.ExtractFile(args[0])
	if err != nil {
		return err
	}
	logger.Debug("extracted", "file", args[0],
		"blocks", len(result.Bands), "energies", len(result.Energies), "edges", result.Edges != nil)

	format, _ := cmd.Flags().GetString("format")
	return extract.Encode(cmd.OutOrStdout(), &result, format)
}

func init() {
	extractCmd.Flags().String("format", "yaml", "output format: yaml or json")
	extractCmd.Flags().String("dir", "", "extract every matching file in this directory")
	extractCmd.Flags().String("pattern", "*.out", "file pattern for --dir")
	extractCmd.Flags().String("out", "", "output directory for --dir (default: same directory)")

	rootCmd.AddCommand(extractCmd)
}
