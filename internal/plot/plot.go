// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package plot renders extracted series as PNG charts.
package plot

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/pdiddy/physlab/internal/analysis"
	"github.com/pdiddy/physlab/internal/convert"
	"github.com/pdiddy/physlab/pkg/types"
)

// DefaultFilename is the SCF chart written next to the input file.
const DefaultFilename = "etot_vs_n.png"

// ErrNoData is returned when a chart is requested for an empty series.
var ErrNoData = errors.New("no data to plot")

// DefaultConfig returns a 6×4 inch, 150 dpi chart configuration.
func DefaultConfig() types.PlotConfig {
	return types.PlotConfig{
		Width:    6,
		Height:   4,
		DPI:      150,
		Filename: DefaultFilename,
	}
}

// withDefaults fills zero fields of cfg from DefaultConfig.
func withDefaults(cfg types.PlotConfig) types.PlotConfig {
	def := DefaultConfig()
	if cfg.Width <= 0 {
		cfg.Width = def.Width
	}
	if cfg.Height <= 0 {
		cfg.Height = def.Height
	}
	if cfg.DPI <= 0 {
		cfg.DPI = def.DPI
	}
	if cfg.Filename == "" {
		cfg.Filename = def.Filename
	}
	return cfg
}

// SCFChart builds a line chart of total energy (Ry) against SCF iteration.
func SCFChart(points []types.EnergyPoint, title string) (*plot.Plot, error) {
	if len(points) == 0 {
		return nil, ErrNoData
	}
	xys := pairs(analysis.Iterations(points), analysis.Energies(points))
	return lineChart(xys, title, "SCF iteration n", "Total energy (Ry)")
}

// PhaseChart builds the phase-space curve (x against v) of a pendulum run.
func PhaseChart(traj types.Trajectory, title string) (*plot.Plot, error) {
	if traj.Len() == 0 {
		return nil, ErrNoData
	}
	xys := pairs(traj.X, traj.VHalf)
	return lineChart(xys, title, "x", "v")
}

// pairs zips equal-length columns into plot points.
func pairs(xs, ys []float64) plotter.XYs {
	xys := make(plotter.XYs, len(xs))
	for i := range xs {
		xys[i].X = xs[i]
		xys[i].Y = ys[i]
	}
	return xys
}

func lineChart(xys plotter.XYs, title, xLabel, yLabel string) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	p.Add(plotter.NewGrid())

	line, points, err := plotter.NewLinePoints(xys)
	if err != nil {
		return nil, fmt.Errorf("building line: %w", err)
	}
	points.Shape = draw.CircleGlyph{}
	p.Add(line, points)
	return p, nil
}

// SavePNG draws p at the configured size and resolution and writes it to
// path.
func SavePNG(p *plot.Plot, cfg types.PlotConfig, path string) error {
	cfg = withDefaults(cfg)

	c := vgimg.NewWith(
		vgimg.UseWH(vg.Length(cfg.Width)*vg.Inch, vg.Length(cfg.Height)*vg.Inch),
		vgimg.UseDPI(cfg.DPI),
	)
	p.Draw(draw.New(c))

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if _, err := (vgimg.PngCanvas{Canvas: c}).WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}

// WriteSCFChart renders points to cfg.Filename in the directory of
// inputPath and returns the written path.
func WriteSCFChart(points []types.EnergyPoint, inputPath string, cfg types.PlotConfig) (string, error) {
	cfg = withDefaults(cfg)
	title := fmt.Sprintf("Total energy vs SCF iteration (%s)", filepath.Base(inputPath))
	p, err := SCFChart(points, title)
	if err != nil {
		return "", err
	}
	out := convert.SiblingPath(inputPath, cfg.Filename)
	if err := SavePNG(p, cfg, out); err != nil {
		return "", err
	}
	return out, nil
}
