package workspace

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	kerrors "github.com/PolarWolf314/pixi-devenv/internal/errors"
	"github.com/PolarWolf314/pixi-devenv/internal/project"
)

func writeDevenv(t *testing.T, root, dir, contents string) string {
	t.Helper()
	path := filepath.Join(root, dir, project.DevenvFilename)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(contents), 0600))
	return path
}

func names(projects []*project.Project) []project.Name {
	result := make([]project.Name, len(projects))
	for i, p := range projects {
		result[i] = p.Name
	}
	return result
}

func TestFromStartingFileStandard(t *testing.T) {
	root := t.TempDir()
	writeDevenv(t, root, "bootstrap", "[devenv]")
	writeDevenv(t, root, "pvt", `devenv.upstream = ["../bootstrap"]`)
	writeDevenv(t, root, "xgui", `devenv.upstream = ["../bootstrap"]`)
	writeDevenv(t, root, "alfasim/core", `devenv.upstream = ["../../pvt"]`)
	writeDevenv(t, root, "alfasim/calc", `devenv.upstream = ["../core", "../../pvt"]`)
	writeDevenv(t, root, "alfasim/gui", `devenv.upstream = ["../../xgui"]`)
	app := writeDevenv(t, root, "alfasim/app", `devenv.upstream = ["../calc", "../gui"]`)

	ws, err := FromStartingFile(app)
	require.NoError(t, err)

	assert.Len(t, ws.Projects, 7)
	assert.Equal(t, map[project.Name][]project.Name{
		"bootstrap": {},
		"xgui":      {"bootstrap"},
		"pvt":       {"bootstrap"},
		"core":      {"pvt"},
		"calc":      {"core", "pvt"},
		"gui":       {"xgui"},
		"app":       {"calc", "gui"},
	}, ws.Graph)
	assert.Equal(t,
		[]project.Name{"app", "calc", "core", "gui", "pvt", "xgui", "bootstrap"},
		names(ws.Upstream()))
	assert.Equal(t,
		[]project.Name{"bootstrap", "xgui", "pvt", "gui", "core", "calc", "app"},
		names(ws.Downstream()))
	assert.Equal(t, project.Name("app"), ws.Starting.Name)
}

func TestFromStartingFileTwoUpstreamBranches(t *testing.T) {
	root := t.TempDir()
	writeDevenv(t, root, "bootstrap", "[devenv]")
	writeDevenv(t, root, "bootstrap_2", "[devenv]")
	writeDevenv(t, root, "a", `devenv.upstream = ["../bootstrap"]`)
	writeDevenv(t, root, "b", `devenv.upstream = ["../bootstrap"]`)
	writeDevenv(t, root, "c", `devenv.upstream = ["../bootstrap_2"]`)
	app := writeDevenv(t, root, "app", `devenv.upstream = ["../a", "../b", "../c"]`)

	ws, err := FromStartingFile(app)
	require.NoError(t, err)

	assert.Equal(t,
		[]project.Name{"bootstrap_2", "bootstrap", "c", "b", "a", "app"},
		names(ws.Downstream()))
	assert.Equal(t,
		[]project.Name{"app", "a", "b", "c", "bootstrap", "bootstrap_2"},
		names(ws.Upstream()))
}

func TestFromStartingFileDiamondVisitsSharedAncestorOnce(t *testing.T) {
	root := t.TempDir()
	writeDevenv(t, root, "base", "[devenv]")
	writeDevenv(t, root, "left", `devenv.upstream = ["../base"]`)
	writeDevenv(t, root, "right", `devenv.upstream = [{ path = "../base" }]`)
	app := writeDevenv(t, root, "app", `devenv.upstream = ["../left", "../right"]`)

	loads := map[string]int{}
	load := func(path string) (*project.Project, error) {
		loads[filepath.Base(filepath.Dir(path))]++
		return project.FromFile(path)
	}
	starting, err := project.FromFile(app)
	require.NoError(t, err)

	ws, err := Build(starting, load)
	require.NoError(t, err)

	order := names(ws.Downstream())
	assert.Len(t, order, 4)
	assert.Equal(t, project.Name("base"), order[0])
	assert.Equal(t, project.Name("app"), order[3])
	assert.Equal(t, 1, countOf(order, "base"))
	assert.Equal(t, map[string]int{"left": 1, "right": 1, "base": 1}, loads)
	assert.Equal(t, []string{
		filepath.Join(root, "base", project.DevenvFilename),
		filepath.Join(root, "right", project.DevenvFilename),
		filepath.Join(root, "left", project.DevenvFilename),
		app,
	}, ws.Files())
}

func TestFromStartingFileSingleFile(t *testing.T) {
	app := writeDevenv(t, t.TempDir(), "app", "[devenv]\nupstream = []\n")

	ws, err := FromStartingFile(app)
	require.NoError(t, err)

	assert.Equal(t, map[project.Name][]project.Name{"app": {}}, ws.Graph)
	assert.Equal(t, []project.Name{"app"}, names(ws.Upstream()))
	assert.Equal(t, []project.Name{"app"}, names(ws.Downstream()))
}

func TestFromStartingFileCycle(t *testing.T) {
	root := t.TempDir()
	writeDevenv(t, root, "a", "[devenv]\nupstream = [\"../b\"]\n")
	b := writeDevenv(t, root, "b", "[devenv]\nupstream = [\"../a\"]\n")

	_, err := FromStartingFile(b)
	require.ErrorIs(t, err, kerrors.ErrCycle)
	assert.ErrorIs(t, err, kerrors.ErrDevEnv)
	assert.Contains(t, err.Error(), "b -> a -> b")
}

func TestFromStartingFileMissingUpstream(t *testing.T) {
	app := writeDevenv(t, t.TempDir(), "app", "[devenv]\nupstream = [\"../missing\"]\n")

	_, err := FromStartingFile(app)
	require.ErrorIs(t, err, kerrors.ErrDevenvFileNotFound)
	assert.Contains(t, err.Error(), "../missing")
}

func TestTopologicalOrderCycleNotThroughFirstNode(t *testing.T) {
	graph := map[project.Name][]project.Name{
		"app": {"x"},
		"x":   {"y"},
		"y":   {"x"},
	}
	_, err := topologicalOrder([]project.Name{"app", "x", "y"}, graph)
	require.ErrorIs(t, err, kerrors.ErrCycle)
	assert.Contains(t, err.Error(), "x -> y -> x")
}

func countOf(values []project.Name, target project.Name) int {
	count := 0
	for _, v := range values {
		if v == target {
			count++
		}
	}
	return count
}
