// Package cmd provides Cobra CLI commands for dragframe.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bnema/dragframe/internal/cli"
	"github.com/bnema/dragframe/internal/domain/build"
)

var (
	app        *cli.App
	buildInfo  build.Info
	configFile string
	rootCmd    = &cobra.Command{
		Use:   "dragframe",
		Short: "Draggable, edge-anchored frames for the terminal",
		Long: `Dragframe - floating frames you can drag around a terminal.

Frames follow the pointer, stay inside the visible area, and remember
where you left them. Anchored frames settle against the nearest left or
right edge when released.

Use 'dragframe run' to open the demo, or explore the subcommands to
inspect stored positions and manage the configuration.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			switch cmd.Name() {
			case "help", "completion", "gen-docs", "version", "schema", "init":
				return nil
			}
			// run initializes its own app once it knows the storage mode.
			if cmd == runCmd {
				return nil
			}

			var err error
			app, err = cli.NewApp(cli.Options{ConfigFile: configFile})
			if err != nil {
				return fmt.Errorf("initialize app: %w", err)
			}
			app.BuildInfo = buildInfo
			return nil
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if app != nil {
				_ = app.Close()
				app = nil
			}
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file (default $XDG_CONFIG_HOME/dragframe/config.toml)")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// GetApp returns the initialized app (for use by subcommands).
func GetApp() *cli.App {
	return app
}

// SetBuildInfo sets the build information (called from main.go before Execute).
func SetBuildInfo(info build.Info) {
	buildInfo = info
}
