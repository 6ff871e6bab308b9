package main

import (
	"fmt"
	"os"

	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"

	"github.com/PolarWolf314/pixi-devenv/cmd"
	"github.com/PolarWolf314/pixi-devenv/internal/ui"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "pixi-devenv",
	Short: "pixi-devenv - Layered development environments for pixi.",
	Long: `pixi-devenv consolidates a graph of layered pixi.devenv.toml projects
into the pixi.toml of the project you are working on.

Each project declares its upstream projects, and inherits their
dependencies, environment variables, targets and features according to
its inheritance rules.

Usage:
  pixi-devenv <command> [flags]

Available Commands:
  init       Create pixi.devenv.toml and pixi.toml
  update     Consolidate the workspace and rewrite pixi.toml
  show       Print the consolidated project
  graph      List the projects of the workspace
  watch      Update pixi.toml whenever a project file changes
  config     Manage user configuration

Run 'pixi-devenv help <command>' for more details on a specific command.
`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	Run: func(c *cobra.Command, args []string) {
		fmt.Println()
		figure.NewColorFigure("pixi-devenv", "alligator2", "green", true).Print()
		fmt.Println()
		fmt.Println(ui.Hint("Run " + ui.Code.Sprint("pixi-devenv --help") + " to see available commands"))
	},
}

func init() {
	rootCmd.SetVersionTemplate("{{.Name}} {{.Version}}\n")
	cmd.AddCommands(rootCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Failed(err.Error()))
		os.Exit(1)
	}
}
