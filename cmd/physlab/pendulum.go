// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/physlab/internal/pendulum"
	"github.com/pdiddy/physlab/internal/plot"
)

var pendulumCmd = &cobra.Command{
	Use:   "pendulum",
	Short: "Integrate a harmonic pendulum with the leapfrog scheme",
	Long: `Pendulum integrates x'' = -(k/m) x with the leapfrog scheme and prints
the position and half-step velocity at every step.

The default run uses dt = 0.1, x0 = 1, v(-1/2) = 0.1, k/m = 2 and 100
steps. A TOML run file given with --run overrides any of dt, x0, v0,
vhalf0, steps and k_over_m; --steps and --dt override the file.`,
	Args: cobra.NoArgs,
	RunE: runPendulum,
}

func runPendulum(cmd *cobra.Command, args []string) error {
	run := pendulum.DefaultRun()
	if runFile, _ := cmd.Flags().GetString("run"); runFile != "" {
		var err error
		if run, err = pendulum.LoadRun(runFile); err != nil {
			return err
		}
	}
	if cmd.Flags().Changed("steps") {
		run.Steps, _ = cmd.Flags().GetInt("steps")
	}
	if cmd.Flags().Changed("dt") {
		run.DT, _ = cmd.Flags().GetFloat64("dt")
	}
	if err := pendulum.Validate(run); err != nil {
		return err
	}

	traj := pendulum.Integrate(run)
	logger.Debug("integrated pendulum", "samples", traj.Len(),
		"energy_spread", pendulum.EnergySpread(traj, run.KOverM))

	out := cmd.OutOrStdout()
	if err := pendulum.WriteTable(out, traj, run.DT); err != nil {
		return err
	}

	plotPath, _ := cmd.Flags().GetString("plot")
	if plotPath == "" {
		return nil
	}
	p, err := plot.PhaseChart(traj, fmt.Sprintf("Leapfrog pendulum, dt = %g", run.DT))
	if err != nil {
		return err
	}
	if err := plot.SavePNG(p, loadConfig().Plot, plotPath); err != nil {
		return err
	}
	fmt.Fprintf(out, "Saved plot: %s\n", plotPath)
	return nil
}

func init() {
	pendulumCmd.Flags().String("run", "", "TOML run file")
	pendulumCmd.Flags().Int("steps", 100, "number of recorded steps")
	pendulumCmd.Flags().Float64("dt", 0.1, "time step")
	pendulumCmd.Flags().String("plot", "", "write a phase plot (x vs v) to this PNG file")

	rootCmd.AddCommand(pendulumCmd)
}
