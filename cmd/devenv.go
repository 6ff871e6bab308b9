package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	logger "github.com/PolarWolf314/pixi-devenv/internal/logging"
)

var (
	verbose bool
	debug   bool
	Logger  logger.Logger
)

// AddCommands registers the persistent flags and every pixi-devenv command
// on root.
func AddCommands(root *cobra.Command) {
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	root.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug output")
	root.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		Logger = logger.Logger{
			Verbose: verbose,
			Debug:   debug,
		}
		Logger.Debugf("Initializing %s command with verbose=%t, debug=%t", cmd.Name(), verbose, debug)
	}

	root.AddCommand(initCmd)
	root.AddCommand(updateCmd)
	root.AddCommand(showCmd)
	root.AddCommand(graphCmd)
	root.AddCommand(watchCmd)
	root.AddCommand(ConfigCmd)
}

// Helper functions for testing

// ResetGlobalState resets all global variables to their default values for testing.
func ResetGlobalState() {
	verbose = false
	debug = false
	Logger = logger.Logger{}
	resetUpdateState()
	resetShowState()
	resetWatchState()
	resetConfigState()
	for _, c := range []*cobra.Command{initCmd, updateCmd, showCmd, graphCmd, watchCmd, ConfigCmd, configShowCmd, configInitCmd} {
		c.Flags().VisitAll(func(flag *pflag.Flag) {
			flag.Changed = false
		})
	}
}
