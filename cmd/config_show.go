package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/PolarWolf314/pixi-devenv/internal/configs"
	"github.com/PolarWolf314/pixi-devenv/internal/ui"
	"github.com/PolarWolf314/pixi-devenv/internal/utils"
)

var configShowJSON bool

func init() {
	configShowCmd.Flags().BoolVar(&configShowJSON, "json", false, "output in JSON format")
}

// resetConfigShowState resets the config show command's global state for testing.
func resetConfigShowState() {
	configShowJSON = false
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Display current configuration",
	Long: `Displays the user configuration in effect, with defaults filled in for
values the configuration file does not set.

Examples:
  pixi-devenv config show
  pixi-devenv config show --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting config show command")

		configPath := configs.UserDevenvSettings.ConfigFile()
		Logger.Debugf("Loading user config from %s", configPath)
		userConfig, err := configs.LoadUserConfig()
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to load user config: %w", err)
		}

		if configShowJSON {
			output, err := json.MarshalIndent(userConfigView{
				Path:           configPath,
				Format:         userConfig.Defaults.Format,
				DebounceMillis: userConfig.Watch.DebounceMillis,
			}, "", "  ")
			if err != nil {
				return Logger.ErrorfAndReturn("Failed to marshal config to JSON: %w", err)
			}
			fmt.Println(string(output))
			return nil
		}

		exists := false
		if configPath != "" {
			if exists, err = utils.FileExists(configPath); err != nil {
				return Logger.ErrorfAndReturn("Failed to check user config: %w", err)
			}
		}

		fmt.Println(ui.Info.Sprint("User Configuration") + " " + ui.Muted.Sprint(configPath))
		fmt.Println()
		fmt.Printf("  %-16s %s\n", "Show format:", ui.Success.Sprint(userConfig.Defaults.Format))
		fmt.Printf("  %-16s %s\n", "Watch debounce:", ui.Success.Sprint(userConfig.Debounce()))
		if !exists {
			fmt.Println()
			fmt.Println(ui.Hint("Using defaults, run " + ui.Code.Sprint("pixi-devenv config init") + " to create the file"))
		}
		return nil
	},
}

// userConfigView is the JSON shape of config show.
type userConfigView struct {
	Path           string `json:"path"`
	Format         string `json:"format"`
	DebounceMillis int    `json:"debounce_millis"`
}
