package workspace

import (
	"fmt"
	"path/filepath"
	"slices"

	"github.com/PolarWolf314/pixi-devenv/internal/project"
)

// LoadFunc loads the project defined by the pixi.devenv.toml file at path.
type LoadFunc func(path string) (*project.Project, error)

// Workspace is every project reachable from a starting project through
// upstream declarations. It is read-only once built.
type Workspace struct {
	// Starting is the project pixi-devenv was invoked from, the most
	// downstream project.
	Starting *project.Project

	// Projects contains every project, Starting included.
	Projects map[project.Name]*project.Project

	// Graph maps a project to its direct upstream projects.
	Graph map[project.Name][]project.Name

	// order runs from the top upstream project down to Starting.
	order []project.Name
}

// FromStartingFile builds the workspace of the pixi.devenv.toml file at path.
func FromStartingFile(path string) (*Workspace, error) {
	starting, err := project.FromFile(path)
	if err != nil {
		return nil, err
	}
	return Build(starting, project.FromFile)
}

// Build discovers every project upstream of starting, loading each
// referenced file with load, and orders them.
//
// A project reachable through several paths is loaded once and recorded
// once, keyed by name.
func Build(starting *project.Project, load LoadFunc) (*Workspace, error) {
	projects := make(map[project.Name]*project.Project)
	graph := make(map[project.Name][]project.Name)
	var inserted []project.Name
	loaded := map[string]*project.Project{filepath.Clean(starting.Filename): starting}

	toProcess := []*project.Project{starting}
	for len(toProcess) > 0 {
		current := toProcess[len(toProcess)-1]
		toProcess = toProcess[:len(toProcess)-1]
		if _, ok := projects[current.Name]; ok {
			continue
		}
		projects[current.Name] = current
		graph[current.Name] = []project.Name{}
		inserted = append(inserted, current.Name)

		for _, upstream := range current.Upstream {
			path := filepath.Join(current.Directory(), upstream.Path, project.DevenvFilename)
			upstreamProject, ok := loaded[path]
			if !ok {
				var err error
				upstreamProject, err = load(path)
				if err != nil {
					return nil, fmt.Errorf("loading upstream %q of %s: %w", upstream.Path, current.Name, err)
				}
				loaded[path] = upstreamProject
			}
			toProcess = append(toProcess, upstreamProject)
			graph[current.Name] = append(graph[current.Name], upstreamProject.Name)
		}
	}

	order, err := topologicalOrder(inserted, graph)
	if err != nil {
		return nil, err
	}
	return &Workspace{
		Starting: starting,
		Projects: projects,
		Graph:    graph,
		order:    order,
	}, nil
}

// Downstream returns the projects from the top upstream project down to
// the starting project, which is always last.
func (w *Workspace) Downstream() []*project.Project {
	result := make([]*project.Project, 0, len(w.order))
	for _, name := range w.order {
		result = append(result, w.Projects[name])
	}
	return result
}

// Upstream returns the projects from the starting project up to the top
// upstream project.
func (w *Workspace) Upstream() []*project.Project {
	result := w.Downstream()
	slices.Reverse(result)
	return result
}

// Names returns the project names in downstream order.
func (w *Workspace) Names() []project.Name {
	return slices.Clone(w.order)
}

// Files returns the pixi.devenv.toml file of every project, in downstream order.
func (w *Workspace) Files() []string {
	files := make([]string, 0, len(w.order))
	for _, p := range w.Downstream() {
		files = append(files, p.Filename)
	}
	return files
}
