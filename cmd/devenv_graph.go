package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/PolarWolf314/pixi-devenv/internal/ui"
	"github.com/PolarWolf314/pixi-devenv/internal/workflows"
)

var graphCmd = &cobra.Command{
	Use:   "graph [path]",
	Short: "List the projects of the workspace",
	Long: `Prints every project reachable through upstream declarations, from the
top upstream project down to the current one, with its direct upstream
projects. This is the order in which values are merged.

Examples:
  pixi-devenv graph`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting graph command")

		dir, err := projectDir(args)
		if err != nil {
			return err
		}

		result, err := workflows.Graph(context.Background(), workflows.GraphOptions{Dir: dir})
		if err != nil {
			printHint(err)
			return Logger.ErrorfAndReturn("Failed to build workspace of %s: %w", dir, err)
		}

		for _, node := range result.Nodes {
			line := ui.Highlight.Sprint(string(node.Name))
			if len(node.Upstream) > 0 {
				upstream := make([]string, len(node.Upstream))
				for i, name := range node.Upstream {
					upstream[i] = string(name)
				}
				line += " → " + strings.Join(upstream, ", ")
			}
			fmt.Println(line + " " + ui.Muted.Sprint(node.Directory))
		}
		return nil
	},
}
