package cmd

import (
	"github.com/spf13/cobra"
)

// ConfigCmd is the top-level config command.
var ConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage pixi-devenv user configuration",
	Long: `Provides commands for managing the user configuration file.

The file lives in the pixi-devenv directory of your user config directory,
or in $PIXI_DEVENV_CONFIG_DIR when it is set.

Examples:
  # Create the configuration file with default values
  pixi-devenv config init

  # Make show print JSON by default
  pixi-devenv config init --format json

  # Display the configuration in effect
  pixi-devenv config show`,
}

func init() {
	ConfigCmd.AddCommand(configShowCmd)
	ConfigCmd.AddCommand(configInitCmd)
}

// resetConfigState resets all config command global variables to their default values for testing.
func resetConfigState() {
	resetConfigInitState()
	resetConfigShowState()
}
