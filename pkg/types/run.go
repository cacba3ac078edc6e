// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// Run is an archived output file and summary counts of what was extracted
// from it.
type Run struct {
	// ID is derived from the file name without extension.
	ID string `json:"id" yaml:"id"`

	// Path is the file path at ingest time.
	Path string `json:"path" yaml:"path"`

	// ModTime is the file modification time used for change detection.
	ModTime time.Time `json:"mod_time" yaml:"mod_time"`

	// KPoints is the number of band blocks.
	KPoints int `json:"k_points" yaml:"k_points"`

	// Iterations is the number of SCF energy records.
	Iterations int `json:"iterations" yaml:"iterations"`

	// FinalEnergy is the energy of the highest iteration, in Ry. Zero
	// when Iterations is zero.
	FinalEnergy float64 `json:"final_energy" yaml:"final_energy"`

	// Edges is nil when the run reported no band edges.
	Edges *BandEdges `json:"edges,omitempty" yaml:"edges,omitempty"`
}
