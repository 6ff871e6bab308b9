package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/PolarWolf314/pixi-devenv/internal/configs"
	"github.com/PolarWolf314/pixi-devenv/internal/workflows"
)

var showFormat string

func init() {
	showCmd.Flags().StringVarP(&showFormat, "format", "f", "", "output format: toml, json or yaml (defaults to the user config)")
}

func resetShowState() {
	showFormat = ""
}

var showCmd = &cobra.Command{
	Use:   "show [path]",
	Short: "Print the consolidated project",
	Long: `Consolidates the workspace and prints the result, including the projects
each dependency and environment variable comes from. Nothing is written.

The default format is read from defaults.format in the user config.

Examples:
  # Show the current project as TOML
  pixi-devenv show

  # Show as JSON for scripting
  pixi-devenv show --format json`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting show command")

		format := showFormat
		if format == "" {
			userConfig, err := configs.LoadUserConfig()
			if err != nil {
				return Logger.ErrorfAndReturn("Failed to load user config: %w", err)
			}
			format = userConfig.Defaults.Format
		}
		Logger.Debugf("Format: %s", format)

		dir, err := projectDir(args)
		if err != nil {
			return err
		}

		result, err := workflows.Show(context.Background(), workflows.ShowOptions{
			Dir:    dir,
			Format: format,
			Log:    Logger,
		})
		if err != nil {
			printHint(err)
			return Logger.ErrorfAndReturn("Failed to show %s: %w", dir, err)
		}

		fmt.Print(result.Output)
		return nil
	},
}
