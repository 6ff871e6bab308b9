package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/PolarWolf314/pixi-devenv/internal/ui"
	"github.com/PolarWolf314/pixi-devenv/internal/workflows"
)

var updateDryRun bool

func init() {
	updateCmd.Flags().BoolVar(&updateDryRun, "dry-run", false, "print the new pixi.toml instead of writing it")
}

func resetUpdateState() {
	updateDryRun = false
}

var updateCmd = &cobra.Command{
	Use:   "update [path]",
	Short: "Consolidate the workspace and rewrite pixi.toml",
	Long: `Reads pixi.devenv.toml, follows its upstream projects and merges their
dependencies, environment variables, targets and features into pixi.toml.

Tables you maintain by hand in pixi.toml are kept. The managed tables are
written below a banner and regenerated on every run.

Without a path, the nearest directory containing pixi.devenv.toml is used.

Examples:
  # Update the current project
  pixi-devenv update

  # Preview the result without writing it
  pixi-devenv update --dry-run`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting update command")
		Logger.Debugf("Flags: dry-run=%t", updateDryRun)

		dir, err := projectDir(args)
		if err != nil {
			return err
		}

		spinner, cleanup := startSpinner("Updating pixi.toml...")
		result, err := workflows.Update(context.Background(), workflows.UpdateOptions{
			Dir:    dir,
			DryRun: updateDryRun,
			Log:    Logger,
		})
		if err != nil {
			cleanup()
			printHint(err)
			return Logger.ErrorfAndReturn("Failed to update %s: %w", dir, err)
		}

		finalMessage := unknownKeyWarnings(result.UnknownKeys, result.Files)
		switch {
		case updateDryRun:
			finalMessage += result.Contents
		case result.Changed:
			finalMessage += ui.Done("Updated " + ui.Path.Sprint(result.PixiFile) + " from " +
				fmt.Sprintf("%d projects", len(result.Projects)))
		default:
			finalMessage += ui.Done(ui.Path.Sprint(result.PixiFile) + " is up to date")
		}
		spinner.FinalMSG = finalMessage
		cleanup()

		Logger.Infof("Update command completed (changed=%t)", result.Changed)
		return nil
	},
}
