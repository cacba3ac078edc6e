// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/physlab/pkg/types"
)

// ExportEntry is one archived run with its full records.
type ExportEntry struct {
	Run      types.Run           `json:"run" yaml:"run"`
	Bands    []types.BandBlock   `json:"bands" yaml:"bands"`
	Energies []types.EnergyPoint `json:"energies" yaml:"energies"`
}

// Export writes every archived run to w as "yaml" or "json".
func (s *Store) Export(ctx context.Context, w io.Writer, format string) error {
	entries, err := s.exportEntries(ctx)
	if err != nil {
		return err
	}

	switch format {
	case "", "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(entries); err != nil {
			return fmt.Errorf("marshaling YAML: %w", err)
		}
		return enc.Close()
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	default:
		return fmt.Errorf("unsupported export format %q", format)
	}
}

// ExportYAML writes the archive to <dir>/export.yaml and returns the path.
func (s *Store) ExportYAML(ctx context.Context) (string, error) {
	return s.exportFile(ctx, "export.yaml", "yaml")
}

// ExportJSON writes the archive to <dir>/export.json and returns the path.
func (s *Store) ExportJSON(ctx context.Context) (string, error) {
	return s.exportFile(ctx, "export.json", "json")
}

func (s *Store) exportFile(ctx context.Context, name, format string) (string, error) {
	path := filepath.Join(s.dir, name)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating %s: %w", path, err)
	}
	if err := s.Export(ctx, f, format); err != nil {
		f.Close()
		return "", err
	}
	return path, f.Close()
}

func (s *Store) exportEntries(ctx context.Context) ([]ExportEntry, error) {
	runs, err := s.List(ctx, ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("querying for export: %w", err)
	}

	entries := make([]ExportEntry, len(runs))
	for i, r := range runs {
		result, err := s.Load(ctx, r.ID)
		if err != nil {
			return nil, err
		}
		entries[i] = ExportEntry{Run: r, Bands: result.Bands, Energies: result.Energies}
	}
	return entries, nil
}
