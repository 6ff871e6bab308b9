package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/PolarWolf314/pixi-devenv/internal/ui"
	"github.com/PolarWolf314/pixi-devenv/internal/utils"
	"github.com/PolarWolf314/pixi-devenv/internal/workflows"
)

var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Create pixi.devenv.toml and pixi.toml in a directory",
	Long: `Creates a minimal pixi.devenv.toml and an empty pixi.toml.

The template uses the conda-forge channel, the win-64 and linux-64
platforms, and adds the project's python sources to PYTHONPATH
(source/python when it exists, src otherwise).

Existing files are never overwritten.

Examples:
  # Initialize the current directory
  pixi-devenv init

  # Initialize another directory
  pixi-devenv init ../core`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting init command")

		dir, err := initDir(args)
		if err != nil {
			return err
		}

		result, err := workflows.Init(context.Background(), workflows.InitOptions{Dir: dir})
		if err != nil {
			printHint(err)
			return Logger.ErrorfAndReturn("Failed to initialize %s: %w", dir, err)
		}
		Logger.Infof("Init command completed with source dir %s", result.SourceDir)

		fmt.Println(ui.Done("Project initialized!"))
		fmt.Print("The following files were created:" + utils.FormatPaths([]string{result.DevenvFile, result.PixiFile}))
		fmt.Println(ui.Hint("Add dependencies to " + ui.Path.Sprint("pixi.devenv.toml") + " and run " + ui.Code.Sprint("pixi-devenv update")))
		return nil
	},
}

// initDir returns the directory to initialize. Unlike other commands it
// never searches parent directories.
func initDir(args []string) (string, error) {
	if len(args) > 0 {
		dir, err := filepath.Abs(args[0])
		if err != nil {
			return "", Logger.ErrorfAndReturn("Failed to resolve %s: %w", args[0], err)
		}
		return dir, nil
	}
	dir, err := os.Getwd()
	if err != nil {
		return "", Logger.ErrorfAndReturn("Failed to get working directory: %w", err)
	}
	return dir, nil
}
