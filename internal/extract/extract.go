// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract recovers typed records from the plain-text output of
// electronic-structure runs: band energies per k-point, the total-energy
// series of the SCF cycle, and the globally reported band edges.
//
// Parsing is best-effort. The parsers never fail on malformed input; they
// return empty or partial results and leave it to the caller to decide
// whether an empty result is fatal.
package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"go.yaml.in/yaml/v3"
	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/physlab/internal/convert"
	"github.com/pdiddy/physlab/pkg/types"
)

// resultSuffix is appended to the input base name for batch output files.
const resultSuffix = "-records.yaml"

// Extract runs every parser over text.
func Extract(source, text string) types.ExtractionResult {
	result := types.ExtractionResult{
		Source:   source,
		Bands:    ParseBandBlocks(text),
		Energies: ParseEtotLines(text),
	}
	if edges, ok := ExtractBandEdges(text); ok {
		result.Edges = &edges
	}
	return result
}

// ExtractFile reads path leniently and extracts from its contents.
func ExtractFile(path string) (types.ExtractionResult, error) {
	text, err := convert.ReadText(path)
	if err != nil {
		return types.ExtractionResult{}, err
	}
	return Extract(path, text), nil
}

// BatchSummary holds counts from a batch extraction run.
type BatchSummary struct {
	Extracted int
	Skipped   int
	Empty     int
	Failed    int
}

// Total returns the number of files processed.
func (s BatchSummary) Total() int {
	return s.Extracted + s.Skipped + s.Empty + s.Failed
}

// HasFailures reports whether any file failed.
func (s BatchSummary) HasFailures() bool {
	return s.Failed > 0
}

// maxParallel bounds the number of files parsed at once by ExtractAll.
const maxParallel = 8

// ExtractAll extracts every file in dir matching pattern and writes one
// YAML result per file to outDir. Files whose result is newer than the
// input are skipped. Files yielding no records are counted as Empty and
// produce no output. Changed files are parsed concurrently; results are
// written and reported in file-name order.
func ExtractAll(ctx context.Context, dir, pattern, outDir string, w io.Writer) (BatchSummary, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return BatchSummary{}, fmt.Errorf("creating output directory: %w", err)
	}

	paths, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return BatchSummary{}, fmt.Errorf("matching %s in %s: %w", pattern, dir, err)
	}
	sort.Strings(paths)

	jobs := make([]batchJob, len(paths))
	for i, path := range paths {
		id := convert.BaseID(path)
		jobs[i] = batchJob{path: path, id: id, outPath: filepath.Join(outDir, id+resultSuffix)}
		jobs[i].changed, jobs[i].err = hasChanged(path, jobs[i].outPath)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallel)
	for i := range jobs {
		job := &jobs[i]
		if job.err != nil || !job.changed {
			continue
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			job.result, job.err = ExtractFile(job.path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return BatchSummary{}, err
	}
	if err := ctx.Err(); err != nil {
		return BatchSummary{}, err
	}

	var summary BatchSummary
	for _, job := range jobs {
		switch {
		case job.err != nil:
			fmt.Fprintf(w, "failed  %s: %v\n", job.id, job.err)
			summary.Failed++
		case !job.changed:
			fmt.Fprintf(w, "skipped %s\n", job.id)
			summary.Skipped++
		case job.result.IsEmpty():
			fmt.Fprintf(w, "empty   %s\n", job.id)
			summary.Empty++
		default:
			if err := WriteResult(job.outPath, &job.result); err != nil {
				fmt.Fprintf(w, "failed  %s: write error: %v\n", job.id, err)
				summary.Failed++
				continue
			}
			fmt.Fprintf(w, "extracted %s (%d k-points, %d iterations)\n",
				job.id, len(job.result.Bands), len(job.result.Energies))
			summary.Extracted++
		}
	}

	fmt.Fprintf(w, "\nextracted: %d, skipped: %d, empty: %d, failed: %d\n",
		summary.Extracted, summary.Skipped, summary.Empty, summary.Failed)

	return summary, nil
}

// batchJob tracks one input file through ExtractAll.
type batchJob struct {
	path    string
	id      string
	outPath string
	changed bool
	result  types.ExtractionResult
	err     error
}

// hasChanged reports whether the input file is newer than the output file.
// Returns true if the output does not exist.
func hasChanged(inPath, outPath string) (bool, error) {
	inInfo, err := os.Stat(inPath)
	if err != nil {
		return false, fmt.Errorf("stat input %s: %w", inPath, err)
	}

	outInfo, err := os.Stat(outPath)
	if err != nil {
		if os.IsNotExist(err) {
			return true, nil
		}
		return false, fmt.Errorf("stat output %s: %w", outPath, err)
	}

	return inInfo.ModTime().After(outInfo.ModTime()), nil
}

// WriteResult marshals result to a YAML file.
func WriteResult(path string, result *types.ExtractionResult) error {
	data, err := yaml.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshaling result: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Encode writes result to w as "yaml" or "json".
func Encode(w io.Writer, result *types.ExtractionResult, format string) error {
	switch format {
	case "yaml", "":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(result); err != nil {
			return fmt.Errorf("encoding YAML: %w", err)
		}
		return enc.Close()
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}
}
