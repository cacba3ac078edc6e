// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pendulum

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/physlab/pkg/types"
)

func TestLeapfrog(t *testing.T) {
	x, v := Leapfrog(1.0, 0.1, 0.1, Harmonic(2.0))
	assert.InDelta(t, -0.1, v, 1e-12)
	assert.InDelta(t, 0.99, x, 1e-12)
}

func TestLeapfrogFreeParticle(t *testing.T) {
	zero := func(float64) float64 { return 0 }
	x, v := Leapfrog(2.0, 3.0, 0.5, zero)
	assert.Equal(t, 3.0, v)
	assert.Equal(t, 3.5, x)
}

func TestIntegrateDefaultRun(t *testing.T) {
	traj := Integrate(DefaultRun())

	require.Equal(t, 101, traj.Len())
	require.Len(t, traj.VHalf, 101)

	assert.Equal(t, 1.0, traj.X[0])
	assert.Equal(t, 0.1, traj.VHalf[0])

	// The priming step (0.99, −0.1) is not recorded.
	assert.InDelta(t, 0.9602, traj.X[1], 1e-12)
	assert.InDelta(t, -0.298, traj.VHalf[1], 1e-12)

	assert.InDelta(t, -0.1576593070348421, traj.X[100], 1e-9)
	assert.InDelta(t, -1.4087970324314876, traj.VHalf[100], 1e-9)
}

func TestIntegrateZeroSteps(t *testing.T) {
	run := DefaultRun()
	run.Steps = 0
	traj := Integrate(run)
	assert.Equal(t, []float64{1.0}, traj.X)
	assert.Equal(t, []float64{0.1}, traj.VHalf)
}

func TestEnergyBounded(t *testing.T) {
	run := DefaultRun()
	run.Steps = 1000
	traj := Integrate(run)

	// Leapfrog is symplectic: energy oscillates but does not drift away.
	spread := EnergySpread(traj, run.KOverM)
	assert.Less(t, spread, 0.25)
	assert.Greater(t, spread, 0.0)

	assert.Equal(t, 0.0, EnergySpread(types.Trajectory{}, 2))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*types.PendulumRun)
		wantErr bool
	}{
		{name: "default", mutate: func(*types.PendulumRun) {}},
		{name: "zero dt", mutate: func(r *types.PendulumRun) { r.DT = 0 }, wantErr: true},
		{name: "negative steps", mutate: func(r *types.PendulumRun) { r.Steps = -1 }, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			run := DefaultRun()
			tt.mutate(&run)
			err := Validate(run)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidRun)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoadRun(t *testing.T) {
	run, err := LoadRun(filepath.Join("testdata", "short.toml"))
	require.NoError(t, err)
	assert.Equal(t, types.PendulumRun{
		DT:     0.05,
		X0:     1.0,
		V0:     0.0,
		VHalf0: 0.1,
		Steps:  10,
		KOverM: 4.0,
	}, run)
}

func TestLoadRunErrors(t *testing.T) {
	_, err := LoadRun(filepath.Join("testdata", "bad.toml"))
	assert.ErrorIs(t, err, ErrInvalidRun)

	_, err = LoadRun(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestWriteTable(t *testing.T) {
	traj := types.Trajectory{X: []float64{1, 0.5}, VHalf: []float64{0.1, -0.2}}
	var buf bytes.Buffer
	require.NoError(t, WriteTable(&buf, traj, 0.1))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "v_half")
	assert.Equal(t, "    1      0.1000    0.50000000   -0.20000000", lines[2])
}
