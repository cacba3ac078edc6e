// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// BandsConfig holds settings for the band report.
type BandsConfig struct {
	// Targets are the k-points to report, each written as "x y z".
	Targets []string `json:"targets" yaml:"targets"`

	// Labels name the targets in the report. Missing labels fall back to
	// the formatted k-point.
	Labels []string `json:"labels" yaml:"labels"`
}

// PlotConfig holds settings for rendered charts.
type PlotConfig struct {
	// Width and Height are the image size in inches (default 6×4).
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`

	// DPI is the raster resolution (default 150).
	DPI int `json:"dpi" yaml:"dpi"`

	// Filename is the chart name written next to the input file
	// (default "etot_vs_n.png").
	Filename string `json:"filename" yaml:"filename"`
}

// AnalysisConfig holds thresholds for SCF analysis.
type AnalysisConfig struct {
	// ConvergenceThreshold is the |ΔE| (Ry) under which the last two SCF
	// iterations count as converged (default 1e-6).
	ConvergenceThreshold float64 `json:"convergence_threshold" yaml:"convergence_threshold"`
}

// StoreConfig holds settings for the run archive.
type StoreConfig struct {
	// Dir is the directory holding the SQLite database (default "archive").
	Dir string `json:"dir" yaml:"dir"`

	// Pattern selects files to ingest from a directory (default "*.out").
	Pattern string `json:"pattern" yaml:"pattern"`
}

// Config groups all tool configurations.
type Config struct {
	Bands    BandsConfig    `json:"bands" yaml:"bands"`
	Plot     PlotConfig     `json:"plot" yaml:"plot"`
	Analysis AnalysisConfig `json:"analysis" yaml:"analysis"`
	Store    StoreConfig    `json:"store" yaml:"store"`
}
