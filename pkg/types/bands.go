// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the physlab tools:
// band-structure records, SCF energy series, pendulum trajectories,
// archived runs, and configuration.
package types

import (
	"fmt"
	"math"
)

// Matching tolerances for k-point lookup. A tight match is tried first;
// the loose one absorbs rounding in printed coordinates.
const (
	TightTolerance = 1e-6
	LooseTolerance = 1e-3
)

// KPoint is a sampled point in reciprocal space, in the units printed by
// the electronic-structure code (typically 2π/a).
type KPoint [3]float64

// Within reports whether every component of k differs from other by less
// than tol. Axes are compared independently.
func (k KPoint) Within(other KPoint, tol float64) bool {
	for i := range k {
		if !(math.Abs(k[i]-other[i]) < tol) {
			return false
		}
	}
	return true
}

// String formats the k-point as a parenthesised tuple with the four
// decimals pw.x prints in band headers.
func (k KPoint) String() string {
	return fmt.Sprintf("(%.4f, %.4f, %.4f)", k[0], k[1], k[2])
}

// BandBlock pairs a k-point with the band energies (eV) printed under its
// header, in order of appearance.
type BandBlock struct {
	// K is the k-point from the block header.
	K KPoint `json:"k" yaml:"k,flow"`

	// Energies are the band eigenvalues in eV, ordered by band index.
	Energies []float64 `json:"energies" yaml:"energies,flow"`
}

// BandEdges holds the globally reported valence-band maximum and
// conduction-band minimum, both in eV.
type BandEdges struct {
	VBM float64 `json:"vbm" yaml:"vbm"`
	CBM float64 `json:"cbm" yaml:"cbm"`
}

// Gap returns CBM − VBM.
func (e BandEdges) Gap() float64 {
	return e.CBM - e.VBM
}
