package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/milk9111/nbody/config"
	"github.com/milk9111/nbody/nbody"
	"github.com/milk9111/nbody/preset"
	"github.com/milk9111/nbody/sim"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/spatial/r3"
)

func newPresetsCmd() *cobra.Command {
	var scriptDir string
	cmd := &cobra.Command{
		Use:   "presets",
		Short: "List the presets, executors and colorizers a scene can use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			printList(w, "presets", append(preset.Names(), preset.ScriptNames(scriptDir)...))
			printList(w, "executors", []string{nbody.Naive.String(), nbody.BarnesHut.String()})
			printList(w, "colorizers", sim.ColorizerNames())
			return nil
		},
	}
	cmd.Flags().StringVar(&scriptDir, "scripts", "presets", "directory searched for .tengo preset scripts")
	return cmd
}

func printList(w io.Writer, title string, items []string) {
	fmt.Fprintf(w, "%s:\n", title)
	for _, item := range items {
		fmt.Fprintf(w, "  %s\n", item)
	}
}

// newCheckCmd loads a scene file and builds every simulation in it without
// opening a window.
func newCheckCmd() *cobra.Command {
	var steps int
	cmd := &cobra.Command{
		Use:   "check [scene file]",
		Short: "Validate a scene file and optionally run it headless",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			cfg, err := config.Load(path)
			if err != nil {
				return err
			}

			logger := newLogger(cmd.ErrOrStderr(), log.WarnLevel)
			scene, err := NewScene(cfg, logger)
			if err != nil {
				return err
			}
			dt := cfg.TimeStep
			if dt == 0 {
				dt = 1.0 / 60
			}
			for range steps {
				scene.Step(dt)
			}

			w := cmd.OutOrStdout()
			for _, d := range scene.registry.All() {
				bodies := d.Bodies()
				lo, hi := nbody.SpeedRange(bodies)
				fmt.Fprintf(w, "%s: %s, %d bodies, %d steps, t=%.3f, |p|=%.4g, speed %.4g..%.4g\n",
					d.Name, d.Kind(), len(bodies), d.Steps(), d.Elapsed(), r3.Norm(nbody.Momentum(bodies)), lo, hi)
			}
			fmt.Fprintf(w, "layout: %s with %d view(s)\n", scene.grid.SplitMethod(), scene.grid.OccupiedCount())
			return nil
		},
	}
	cmd.Flags().IntVarP(&steps, "steps", "n", 0, "simulation steps to run after loading")
	return cmd
}
