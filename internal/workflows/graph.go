package workflows

import (
	"context"
	"path/filepath"

	"github.com/PolarWolf314/pixi-devenv/internal/project"
	"github.com/PolarWolf314/pixi-devenv/internal/workspace"
)

// GraphOptions configures the graph workflow.
type GraphOptions struct {
	// Dir is the directory of the starting project.
	Dir string
}

// GraphNode is one project of the workspace.
type GraphNode struct {
	Name project.Name

	// Directory holds the project's pixi.devenv.toml.
	Directory string

	// Upstream lists the direct upstream projects in declaration order.
	Upstream []project.Name
}

// GraphResult contains the workspace graph.
type GraphResult struct {
	Starting project.Name

	// Nodes runs from the top upstream project down to the starting project.
	Nodes []GraphNode
}

// Graph builds the workspace of the project in opts.Dir without
// consolidating it.
func Graph(ctx context.Context, opts GraphOptions) (*GraphResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ws, err := workspace.FromStartingFile(devenvFile(opts.Dir))
	if err != nil {
		return nil, err
	}

	result := &GraphResult{Starting: ws.Starting.Name}
	for _, p := range ws.Downstream() {
		result.Nodes = append(result.Nodes, GraphNode{
			Name:      p.Name,
			Directory: p.Directory(),
			Upstream:  ws.Graph[p.Name],
		})
	}
	return result, nil
}

func devenvFile(dir string) string {
	return filepath.Join(dir, project.DevenvFilename)
}
