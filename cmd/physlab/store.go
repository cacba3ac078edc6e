// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/physlab/internal/extract"
	"github.com/pdiddy/physlab/internal/report"
	"github.com/pdiddy/physlab/internal/store"
)

var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Archive extracted runs (ingest, list, export)",
	Long: `Store keeps a local SQLite archive of runs extracted from output
files. Use subcommands to index a directory, list archived runs, or export
them.`,
}

// --- ingest subcommand ---

var storeIngestCmd = &cobra.Command{
	Use:   "ingest DIR",
	Short: "Extract and archive every output file in DIR",
	Long: `Ingest extracts each file in DIR matching store.pattern (default *.out)
and archives its band blocks, SCF energies and band edges, then writes
export.yaml to the archive directory. Unchanged files are skipped on
subsequent runs.`,
	Args: cobra.ExactArgs(1),
	RunE: runStoreIngest,
}

func runStoreIngest(cmd *cobra.Command, args []string) error {
	s, err := store.NewStore(loadConfig().Store)
	if err != nil {
		return err
	}
	defer s.Close()

	summary, err := s.Ingest(context.Background(), args[0], cmd.OutOrStdout())
	if err != nil {
		return err
	}
	if summary.Failed > 0 {
		return fmt.Errorf("%d file(s) failed indexing", summary.Failed)
	}
	return nil
}

// --- list subcommand ---

var storeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List archived runs",
	Args:  cobra.NoArgs,
	RunE:  runStoreList,
}

func runStoreList(cmd *cobra.Command, args []string) error {
	s, err := store.NewStore(loadConfig().Store)
	if err != nil {
		return err
	}
	defer s.Close()

	var opts store.ListOptions
	opts.EdgesOnly, _ = cmd.Flags().GetBool("edges")
	if k, _ := cmd.Flags().GetString("k"); k != "" {
		kp, err := extract.ParseKPoint(k)
		if err != nil {
			return err
		}
		opts.K = &kp
	}

	runs, err := s.List(context.Background(), opts)
	if err != nil {
		return err
	}
	report.FormatRuns(cmd.OutOrStdout(), runs)
	return nil
}

// --- export subcommand ---

var storeExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the archive to YAML or JSON",
	Long: `Export writes every archived run with its records to export.yaml or
export.json in the archive directory, or to stdout with --stdout.`,
	Args: cobra.NoArgs,
	RunE: runStoreExport,
}

func runStoreExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	toStdout, _ := cmd.Flags().GetBool("stdout")

	s, err := store.NewStore(loadConfig().Store)
	if err != nil {
		return err
	}
	defer s.Close()

	ctx := context.Background()
	if toStdout {
		return s.Export(ctx, cmd.OutOrStdout(), format)
	}

	var path string
	switch format {
	case "yaml", "":
		path, err = s.ExportYAML(ctx)
	case "json":
		path, err = s.ExportJSON(ctx)
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", path)
	return nil
}

func init() {
	storeCmd.PersistentFlags().String("dir", "", "archive directory (default: store.dir or ./archive)")
	viper.BindPFlag("store.dir", storeCmd.PersistentFlags().Lookup("dir"))

	storeListCmd.Flags().Bool("edges", false, "only runs that reported band edges")
	storeListCmd.Flags().String("k", "", `only runs with a block at this k-point, as "x y z"`)

	storeExportCmd.Flags().String("format", "yaml", "export format: yaml or json")
	storeExportCmd.Flags().Bool("stdout", false, "write to stdout instead of the archive directory")

	storeCmd.AddCommand(storeIngestCmd)
	storeCmd.AddCommand(storeListCmd)
	storeCmd.AddCommand(storeExportCmd)

	rootCmd.AddCommand(storeCmd)
}
