// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// PendulumRun describes one leapfrog integration of a harmonic pendulum.
type PendulumRun struct {
	// DT is the time step.
	DT float64 `json:"dt" yaml:"dt" toml:"dt"`

	// X0 is the initial displacement.
	X0 float64 `json:"x0" yaml:"x0" toml:"x0"`

	// V0 is the initial velocity. The leapfrog scheme itself starts from
	// VHalf0; V0 is kept for reporting.
	V0 float64 `json:"v0" yaml:"v0" toml:"v0"`

	// VHalf0 is the velocity at t = −dt/2 seeding the staggered grid.
	VHalf0 float64 `json:"vhalf0" yaml:"vhalf0" toml:"vhalf0"`

	// Steps is the number of recorded steps after the initial one.
	Steps int `json:"steps" yaml:"steps" toml:"steps"`

	// KOverM is the spring constant over mass, k/m.
	KOverM float64 `json:"k_over_m" yaml:"k_over_m" toml:"k_over_m"`
}

// Trajectory holds the positions and staggered half-step velocities of a
// pendulum run. Both slices have the same length.
type Trajectory struct {
	X     []float64 `json:"x" yaml:"x,flow"`
	VHalf []float64 `json:"v_half" yaml:"v_half,flow"`
}

// Len returns the number of recorded samples.
func (t Trajectory) Len() int {
	return len(t.X)
}
