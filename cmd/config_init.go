package cmd

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/PolarWolf314/pixi-devenv/internal/configs"
	"github.com/PolarWolf314/pixi-devenv/internal/ui"
	"github.com/PolarWolf314/pixi-devenv/internal/utils"
	"github.com/PolarWolf314/pixi-devenv/internal/workflows"
)

var (
	configInitFormat         string
	configInitDebounceMillis int
)

func init() {
	configInitCmd.Flags().StringVar(&configInitFormat, "format", "", "default output format of show: toml, json or yaml")
	configInitCmd.Flags().IntVar(&configInitDebounceMillis, "debounce-millis", 0, "milliseconds watch waits after a change")
}

// resetConfigInitState resets the config init command's global state for testing.
func resetConfigInitState() {
	configInitFormat = ""
	configInitDebounceMillis = 0
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create or update the user configuration file",
	Long: `Writes the user configuration file. Values not given as flags keep
their current value, or the default when the file does not exist yet.

Examples:
  # Create the file with default values
  pixi-devenv config init

  # Change the default format of show
  pixi-devenv config init --format yaml

  # Make watch react faster
  pixi-devenv config init --debounce-millis 100`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting config init command")
		Logger.Debugf("Flags: format=%q, debounce-millis=%d", configInitFormat, configInitDebounceMillis)

		configPath := configs.UserDevenvSettings.ConfigFile()
		if configPath == "" {
			return Logger.ErrorfAndReturn("Failed to locate the user config directory, set %s", configs.ConfigDirEnv)
		}
		exists, err := utils.FileExists(configPath)
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to check user config: %w", err)
		}

		userConfig, err := configs.LoadUserConfig()
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to load user config: %w", err)
		}

		noFlags := configInitFormat == "" && configInitDebounceMillis == 0
		if exists && noFlags {
			fmt.Println(ui.Done("User configuration already exists at " + ui.Path.Sprint(configPath)))
			fmt.Println(ui.Hint("Run with flags to update: " + ui.Code.Sprint("pixi-devenv config init --format json")))
			return nil
		}

		if configInitFormat != "" {
			format := strings.ToLower(configInitFormat)
			if !slices.Contains(workflows.Formats, format) {
				fmt.Println(ui.Failed("Invalid format: " + ui.Highlight.Sprint(configInitFormat)))
				fmt.Println(ui.Hint("Use one of " + strings.Join(workflows.Formats, ", ")))
				return nil
			}
			userConfig.Defaults.Format = format
		}
		if configInitDebounceMillis < 0 {
			fmt.Println(ui.Failed(fmt.Sprintf("Invalid debounce: %d", configInitDebounceMillis)))
			return nil
		}
		if configInitDebounceMillis > 0 {
			userConfig.Watch.DebounceMillis = configInitDebounceMillis
		}

		if err := configs.SaveUserConfig(userConfig); err != nil {
			return Logger.ErrorfAndReturn("Failed to save user config: %w", err)
		}
		Logger.Infof("User config saved to %s", configPath)

		fmt.Println(ui.Done("User configuration saved to " + ui.Path.Sprint(configPath)))
		fmt.Println()
		fmt.Println("Your settings:")
		fmt.Println("  Show format:    " + ui.Info.Sprint(userConfig.Defaults.Format))
		fmt.Println("  Watch debounce: " + ui.Info.Sprint(userConfig.Debounce()))
		return nil
	},
}
