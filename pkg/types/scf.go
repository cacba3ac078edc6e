// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// EnergyPoint is one SCF iteration and the total energy (Ry) reported for it.
type EnergyPoint struct {
	// Iteration is the explicit or inferred SCF iteration index.
	Iteration int `json:"iteration" yaml:"iteration"`

	// Energy is the total energy in Rydberg.
	Energy float64 `json:"energy" yaml:"energy"`
}

// ExtractionResult bundles everything recovered from one output file.
type ExtractionResult struct {
	// Source is the path of the parsed file.
	Source string `json:"source" yaml:"source"`

	// Bands are the k-point blocks in header order.
	Bands []BandBlock `json:"bands" yaml:"bands"`

	// Energies is the SCF total-energy series, ascending by iteration.
	Energies []EnergyPoint `json:"energies" yaml:"energies"`

	// Edges is nil when the output reports no global band edges
	// (e.g. metallic systems).
	Edges *BandEdges `json:"edges,omitempty" yaml:"edges,omitempty"`
}

// IsEmpty reports whether nothing was extracted.
func (r ExtractionResult) IsEmpty() bool {
	return len(r.Bands) == 0 && len(r.Energies) == 0 && r.Edges == nil
}
