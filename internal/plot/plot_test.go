// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package plot

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/physlab/pkg/types"
)

func samplePoints() []types.EnergyPoint {
	return []types.EnergyPoint{
		{Iteration: 1, Energy: -22.83855155},
		{Iteration: 2, Energy: -22.84005342},
		{Iteration: 3, Energy: -22.84049103},
		{Iteration: 4, Energy: -22.84050076},
	}
}

func TestWriteSCFChart(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "diamond.out")

	out, err := WriteSCFChart(samplePoints(), input, types.PlotConfig{DPI: 50})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, DefaultFilename), out)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)

	// 6×4 inches at 50 dpi.
	assert.Equal(t, 300, img.Bounds().Dx())
	assert.Equal(t, 200, img.Bounds().Dy())
}

func TestWriteSCFChartEmpty(t *testing.T) {
	_, err := WriteSCFChart(nil, filepath.Join(t.TempDir(), "x.out"), DefaultConfig())
	assert.ErrorIs(t, err, ErrNoData)
}

func TestSCFChartLabels(t *testing.T) {
	p, err := SCFChart(samplePoints(), "title")
	require.NoError(t, err)
	assert.Equal(t, "SCF iteration n", p.X.Label.Text)
	assert.Equal(t, "Total energy (Ry)", p.Y.Label.Text)
}

func TestSCFChartDataRange(t *testing.T) {
	points := []types.EnergyPoint{
		{Iteration: 3, Energy: -22.84049103},
		{Iteration: 7, Energy: -22.83855155},
	}
	p, err := SCFChart(points, "title")
	require.NoError(t, err)
	assert.Equal(t, 3.0, p.X.Min)
	assert.Equal(t, 7.0, p.X.Max)
	assert.Equal(t, -22.84049103, p.Y.Min)
	assert.Equal(t, -22.83855155, p.Y.Max)
}

func TestWriteSCFChartCustomName(t *testing.T) {
	dir := t.TempDir()
	out, err := WriteSCFChart(samplePoints(), filepath.Join(dir, "si.out"), types.PlotConfig{DPI: 20, Filename: "si_etot.png"})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "si_etot.png"), out)
	assert.FileExists(t, out)
}

func TestPhaseChart(t *testing.T) {
	traj := types.Trajectory{X: []float64{1, 0.96, 0.9}, VHalf: []float64{0.1, -0.3, -0.5}}
	p, err := PhaseChart(traj, "phase")
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "phase.png")
	require.NoError(t, SavePNG(p, types.PlotConfig{Width: 2, Height: 2, DPI: 40}, path))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))

	_, err = PhaseChart(types.Trajectory{}, "empty")
	assert.ErrorIs(t, err, ErrNoData)
}

func TestWithDefaults(t *testing.T) {
	got := withDefaults(types.PlotConfig{Width: 8})
	assert.Equal(t, types.PlotConfig{Width: 8, Height: 4, DPI: 150, Filename: DefaultFilename}, got)
}
