// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package analysis derives summary quantities from extracted records.
package analysis

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/pdiddy/physlab/pkg/types"
)

// DefaultConvergenceThreshold is the |ΔE| in Ry below which the last two
// SCF iterations count as converged.
const DefaultConvergenceThreshold = 1e-6

// SCFSummary describes an SCF total-energy series.
type SCFSummary struct {
	Iterations int     `json:"iterations" yaml:"iterations"`
	First      float64 `json:"first" yaml:"first"`
	Final      float64 `json:"final" yaml:"final"`
	Min        float64 `json:"min" yaml:"min"`

	// LastDelta is Final minus the energy of the previous iteration. It is
	// NaN for a single-point series.
	LastDelta float64 `json:"last_delta" yaml:"last_delta"`

	Converged bool `json:"converged" yaml:"converged"`
}

// SummarizeSCF summarizes points, which must be sorted by iteration. It
// returns false for an empty series. A threshold ≤ 0 selects
// DefaultConvergenceThreshold.
func SummarizeSCF(points []types.EnergyPoint, threshold float64) (SCFSummary, bool) {
	if len(points) == 0 {
		return SCFSummary{}, false
	}
	if threshold <= 0 {
		threshold = DefaultConvergenceThreshold
	}

	energies := Energies(points)
	n := len(energies)
	s := SCFSummary{
		Iterations: n,
		First:      energies[0],
		Final:      energies[n-1],
		Min:        floats.Min(energies),
		LastDelta:  math.NaN(),
	}
	if n > 1 {
		s.LastDelta = energies[n-1] - energies[n-2]
		s.Converged = math.Abs(s.LastDelta) < threshold
	}
	return s, true
}

// Energies returns the energy column of points.
func Energies(points []types.EnergyPoint) []float64 {
	out := make([]float64, len(points))
	for i, p := range points {
		out[i] = p.Energy
	}
	return out
}

// Iterations returns the iteration column of points as float64, ready
// for plotting.
func Iterations(points []types.EnergyPoint) []float64 {
	out := make([]float64, len(points))
	for i, p := range points {
		out[i] = float64(p.Iteration)
	}
	return out
}

// BandStats describes the energies of one band block.
type BandStats struct {
	Count int     `json:"count" yaml:"count"`
	Min   float64 `json:"min" yaml:"min"`
	Max   float64 `json:"max" yaml:"max"`
	Mean  float64 `json:"mean" yaml:"mean"`
}

// SummarizeBands returns statistics for block. It returns false when the
// block has no energies.
func SummarizeBands(block types.BandBlock) (BandStats, bool) {
	if len(block.Energies) == 0 {
		return BandStats{}, false
	}
	return BandStats{
		Count: len(block.Energies),
		Min:   floats.Min(block.Energies),
		Max:   floats.Max(block.Energies),
		Mean:  stat.Mean(block.Energies, nil),
	}, true
}

// OccupiedBands counts the bands of block at or below the valence-band
// maximum. Comparison uses a 1e-4 eV slack since band listings print four
// decimals.
func OccupiedBands(block types.BandBlock, edges types.BandEdges) int {
	var n int
	for _, e := range block.Energies {
		if e <= edges.VBM+1e-4 {
			n++
		}
	}
	return n
}
