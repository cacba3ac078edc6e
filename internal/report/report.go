// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report formats extracted records as plain-text reports.
package report

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/pdiddy/physlab/internal/analysis"
	"github.com/pdiddy/physlab/internal/extract"
	"github.com/pdiddy/physlab/pkg/types"
)

// Target is a k-point to report, with an optional display label.
type Target struct {
	Label string
	K     types.KPoint
}

// name returns the label used in "not found" messages.
func (t Target) name() string {
	if t.Label != "" {
		return t.Label
	}
	return "k=" + t.K.String()
}

// DefaultTargets are the Gamma point and (0, 0.75, 0).
func DefaultTargets() []Target {
	return []Target{
		{Label: "Gamma", K: types.KPoint{0, 0, 0}},
		{K: types.KPoint{0, 0.75, 0}},
	}
}

// ParseTargets builds targets from "x y z" strings. labels[i], when
// present, names specs[i]. An empty specs selects DefaultTargets.
func ParseTargets(specs, labels []string) ([]Target, error) {
	if len(specs) == 0 {
		return DefaultTargets(), nil
	}
	targets := make([]Target, 0, len(specs))
	for i, s := range specs {
		k, err := extract.ParseKPoint(s)
		if err != nil {
			return nil, err
		}
		t := Target{K: k}
		if i < len(labels) {
			t.Label = labels[i]
		}
		targets = append(targets, t)
	}
	return targets, nil
}

// FormatBands writes, for each target, the matched block's band energies
// one per line, or a "block not found" line. Targets are separated by a
// blank line.
func FormatBands(w io.Writer, blocks []types.BandBlock, targets []Target) {
	for i, t := range targets {
		if i > 0 {
			fmt.Fprintln(w)
		}
		b, ok := extract.FindBlockForK(blocks, t.K)
		if !ok {
			fmt.Fprintf(w, "%s block not found\n", t.name())
			continue
		}
		prefix := ""
		if t.Label != "" {
			prefix = t.Label + " "
		}
		fmt.Fprintf(w, "%sk = %s: found %d band energies\n", prefix, b.K, len(b.Energies))
		for idx, e := range b.Energies {
			fmt.Fprintf(w, "  band %3d: %12.6f eV\n", idx+1, e)
		}
	}
}

// FormatEdges writes the global band-edge report. Nothing is written when
// edges is nil.
func FormatEdges(w io.Writer, edges *types.BandEdges) {
	if edges == nil {
		return
	}
	fmt.Fprintln(w, "\nReported global edges:")
	fmt.Fprintf(w, "  VBM = %.6f eV, CBM = %.6f eV, gap = %.6f eV\n",
		edges.VBM, edges.CBM, edges.Gap())
}

// FormatSCF writes the SCF series as a table followed by a summary.
func FormatSCF(w io.Writer, points []types.EnergyPoint, threshold float64) {
	s, ok := analysis.SummarizeSCF(points, threshold)
	if !ok {
		fmt.Fprintln(w, "No SCF energies found.")
		return
	}

	fmt.Fprintf(w, "%5s  %18s  %14s\n", "Iter", "Etot (Ry)", "ΔE (Ry)")
	fmt.Fprintln(w, strings.Repeat("-", 41))
	for i, p := range points {
		delta := "-"
		if i > 0 {
			delta = fmt.Sprintf("%14.8f", p.Energy-points[i-1].Energy)
		}
		fmt.Fprintf(w, "%5d  %18.8f  %14s\n", p.Iteration, p.Energy, delta)
	}

	fmt.Fprintf(w, "\n%d iterations, final %.8f Ry, min %.8f Ry", s.Iterations, s.Final, s.Min)
	if !math.IsNaN(s.LastDelta) {
		status := "not converged"
		if s.Converged {
			status = "converged"
		}
		fmt.Fprintf(w, ", last ΔE %.2e Ry (%s)", s.LastDelta, status)
	}
	fmt.Fprintln(w)
}

// FormatRuns writes archived runs as a table.
func FormatRuns(w io.Writer, runs []types.Run) {
	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs archived.")
		return
	}

	fmt.Fprintf(w, "%-24s  %8s  %6s  %16s  %10s\n",
		"Run", "k-points", "Iters", "Final (Ry)", "Gap (eV)")
	fmt.Fprintln(w, strings.Repeat("-", 72))

	for _, r := range runs {
		gap := "-"
		if r.Edges != nil {
			gap = fmt.Sprintf("%10.4f", r.Edges.Gap())
		}
		final := "-"
		if r.Iterations > 0 {
			final = fmt.Sprintf("%16.8f", r.FinalEnergy)
		}
		fmt.Fprintf(w, "%-24s  %8d  %6d  %16s  %10s\n",
			truncate(r.ID, 24), r.KPoints, r.Iterations, final, gap)
	}

	fmt.Fprintf(w, "\n%d runs\n", len(runs))
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}

// FormatBandStats writes min, max and mean energy for each matched target.
// When edges are known the number of occupied bands is included.
func FormatBandStats(w io.Writer, blocks []types.BandBlock, targets []Target, edges *types.BandEdges) {
	fmt.Fprintln(w, "\nBand statistics:")
	for _, t := range targets {
		b, ok := extract.FindBlockForK(blocks, t.K)
		if !ok {
			continue
		}
		s, ok := analysis.SummarizeBands(b)
		if !ok {
			fmt.Fprintf(w, "  %s: no energies\n", t.name())
			continue
		}
		fmt.Fprintf(w, "  %s: min %.6f eV, max %.6f eV, mean %.6f eV", t.name(), s.Min, s.Max, s.Mean)
		if edges != nil {
			fmt.Fprintf(w, ", %d of %d occupied", analysis.OccupiedBands(b, *edges), s.Count)
		}
		fmt.Fprintln(w)
	}
}
