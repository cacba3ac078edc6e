// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pendulum integrates a harmonic pendulum with the leapfrog
// (kick-drift) scheme. Velocities live on the half-step grid.
package pendulum

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"
	"gonum.org/v1/gonum/floats"

	"github.com/pdiddy/physlab/pkg/types"
)

// Force returns the acceleration at position x.
type Force func(x float64) float64

// Leapfrog advances one step: the velocity is kicked from t−dt/2 to
// t+dt/2 with the force at x, then x drifts a full step.
func Leapfrog(x, vMinusHalf, dt float64, f Force) (xNew, vHalf float64) {
	vHalf = vMinusHalf + dt*f(x)
	xNew = x + dt*vHalf
	return xNew, vHalf
}

// Harmonic returns the restoring force −(k/m)·x.
func Harmonic(kOverM float64) Force {
	return func(x float64) float64 {
		return -kOverM * x
	}
}

// DefaultRun is the classroom setup: dt = 0.1, x0 = 1, v_{−1/2} = 0.1,
// k/m = 2, 100 recorded steps.
func DefaultRun() types.PendulumRun {
	return types.PendulumRun{
		DT:     0.1,
		X0:     1.0,
		V0:     0.0,
		VHalf0: 0.1,
		Steps:  100,
		KOverM: 2.0,
	}
}

// ErrInvalidRun is returned when a run has a non-positive time step or a
// negative step count.
var ErrInvalidRun = errors.New("invalid pendulum run")

// Validate checks that run can be integrated.
func Validate(run types.PendulumRun) error {
	if run.DT <= 0 {
		return fmt.Errorf("%w: dt must be positive, got %g", ErrInvalidRun, run.DT)
	}
	if run.Steps < 0 {
		return fmt.Errorf("%w: steps must not be negative, got %d", ErrInvalidRun, run.Steps)
	}
	return nil
}

// Integrate runs the leapfrog scheme for run. The trajectory starts with
// X0 and VHalf0. One priming step is taken and not recorded; each of the
// following Steps steps is recorded, so the result has Steps+1 samples.
func Integrate(run types.PendulumRun) types.Trajectory {
	f := Harmonic(run.KOverM)
	traj := types.Trajectory{
		X:     make([]float64, 0, run.Steps+1),
		VHalf: make([]float64, 0, run.Steps+1),
	}
	traj.X = append(traj.X, run.X0)
	traj.VHalf = append(traj.VHalf, run.VHalf0)

	x, v := Leapfrog(run.X0, run.VHalf0, run.DT, f)
	for i := 0; i < run.Steps; i++ {
		x, v = Leapfrog(x, v, run.DT, f)
		traj.X = append(traj.X, x)
		traj.VHalf = append(traj.VHalf, v)
	}
	return traj
}

// Energies returns ½v² + ½(k/m)x² per unit mass for every sample. With
// staggered velocities this is only approximately conserved.
func Energies(traj types.Trajectory, kOverM float64) []float64 {
	out := make([]float64, traj.Len())
	for i := range out {
		x, v := traj.X[i], traj.VHalf[i]
		out[i] = 0.5*v*v + 0.5*kOverM*x*x
	}
	return out
}

// EnergySpread returns max − min of the sampled energies. It is zero for
// an empty trajectory.
func EnergySpread(traj types.Trajectory, kOverM float64) float64 {
	e := Energies(traj, kOverM)
	if len(e) == 0 {
		return 0
	}
	return floats.Max(e) - floats.Min(e)
}

// LoadRun reads a TOML run file. Keys left out keep their DefaultRun
// values.
func LoadRun(filename string) (types.PendulumRun, error) {
	run := DefaultRun()
	if _, err := toml.DecodeFile(filename, &run); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return run, fmt.Errorf("run file %s not found: %w", filename, err)
		}
		return run, fmt.Errorf("parsing run file %s: %w", filename, err)
	}
	if err := Validate(run); err != nil {
		return run, err
	}
	return run, nil
}

// WriteTable writes one line per sample: step, time, x and v_{n−1/2}.
func WriteTable(w io.Writer, traj types.Trajectory, dt float64) error {
	if _, err := fmt.Fprintf(w, "%5s%12s%14s%14s\n", "step", "t", "x", "v_half"); err != nil {
		return err
	}
	for i := range traj.X {
		if _, err := fmt.Fprintf(w, "%5d%12.4f%14.8f%14.8f\n",
			i, float64(i)*dt, traj.X[i], traj.VHalf[i]); err != nil {
			return err
		}
	}
	return nil
}
