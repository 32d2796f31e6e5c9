package main

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/nbody/config"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		configPath  string
		debug       bool
		baseMonitor bool
	)

	root := &cobra.Command{
		Use:          "nbody",
		Short:        "Compare N-body simulations side by side",
		Long:         `nbody runs gravitational N-body simulations and shows up to four views of them in a split-screen grid.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			level := log.InfoLevel
			if debug {
				level = log.DebugLevel
			}
			logger := newLogger(cmd.ErrOrStderr(), level)

			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			if baseMonitor {
				ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
			}
			ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
			ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
			ebiten.SetWindowTitle(cfg.Window.Title)

			app, err := NewApp(cfg, configPath, logger, debug)
			if err != nil {
				return err
			}
			defer app.Close()

			return ebiten.RunGame(app)
		},
	}

	root.Flags().StringVarP(&configPath, "config", "c", "", "scene file (.yaml or .toml); the built-in scene when empty")
	root.Flags().BoolVar(&debug, "debug", false, "enable debug logging and strict layout checks")
	root.Flags().BoolVarP(&baseMonitor, "monitor", "m", false, "use base monitor instead of primary (for multi-monitor setups)")

	root.AddCommand(newPresetsCmd())
	root.AddCommand(newCheckCmd())
	return root
}
