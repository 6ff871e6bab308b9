package render

import (
	"errors"
	"strings"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PolarWolf314/pixi-devenv/internal/consolidate"
	kerrors "github.com/PolarWolf314/pixi-devenv/internal/errors"
	"github.com/PolarWolf314/pixi-devenv/internal/project"
)

const userPixi = `
[workspace]
name = "some project"
channels = ["conda-forge"]
authors = ["Ana <ana@example.com>"]

[environments]
default = ["py310"]

[activation]
scripts = ["setup.sh"]

[activation.env]
STALE = "1"

[tasks]
test = "pytest"

[dependencies]  # This will be overwritten
foo = "*"
`

func mergedSpec(spec project.Spec, sources ...project.Name) consolidate.MergedSpec {
	return consolidate.MergedSpec{Sources: sources, Spec: spec}
}

func sampleProject() *consolidate.ConsolidatedProject {
	return &consolidate.ConsolidatedProject{
		Name: "b",
		ConsolidatedAspect: consolidate.ConsolidatedAspect{
			Dependencies: map[string]consolidate.MergedSpec{
				"boltons":     mergedSpec(project.NewSpec("24.0,>=24.2"), "bootstrap", "a"),
				"pyqt":        mergedSpec(project.Spec{Version: ">=5.15", Channel: "conda-forge"}, "a", "bootstrap"),
				"ruamel.yaml": mergedSpec(project.NewSpec("*"), "b"),
			},
			PyPIDependencies: map[string]consolidate.MergedSpec{
				"attrs": mergedSpec(project.NewSpec("25.0"), "bootstrap"),
			},
			EnvVars: map[string]consolidate.MergedEnvVarValue{
				"MODE":       envVar(project.StringValue("package"), "bootstrap", "a"),
				"MYUSER":     envVar(project.StringValue("$USER"), "bootstrap"),
				"PYTHONPATH": envVar(project.ListValue("$PIXI_PROJECT_ROOT/src", "$PIXI_PROJECT_ROOT/../a/src"), "a", "b"),
			},
		},
		Target: map[string]consolidate.ConsolidatedAspect{
			"unix": {
				Dependencies: map[string]consolidate.MergedSpec{
					"flock": mergedSpec(project.NewSpec("*"), "bootstrap"),
				},
				EnvVars: map[string]consolidate.MergedEnvVarValue{
					"PYTHONPATH": envVar(project.ListValue("$PIXI_PROJECT_ROOT/../bootstrap/typing"), "bootstrap"),
				},
			},
		},
		Feature: map[string]consolidate.ConsolidatedFeature{
			"py310": {
				ConsolidatedAspect: consolidate.ConsolidatedAspect{
					Dependencies: map[string]consolidate.MergedSpec{
						"python": mergedSpec(project.NewSpec("3.10.*"), "bootstrap"),
					},
					EnvVars: map[string]consolidate.MergedEnvVarValue{
						"CONDA_PY": envVar(project.StringValue("310"), "bootstrap"),
					},
				},
			},
		},
		Channels:  []string{"channel1", "channel2"},
		Platforms: []string{"linux-64", "win-64"},
	}
}

func TestUpdatePixiContents(t *testing.T) {
	updated, err := UpdatePixiContents(userPixi, sampleProject())
	require.NoError(t, err)

	var doc map[string]any
	_, err = toml.Decode(updated, &doc)
	require.NoError(t, err, "updated document must be valid TOML:\n%s", updated)

	ws := doc["workspace"].(map[string]any)
	assert.Equal(t, "b", ws["name"])
	assert.Equal(t, []any{"channel1", "channel2"}, ws["channels"])
	assert.Equal(t, []any{"linux-64", "win-64"}, ws["platforms"])
	assert.Equal(t, []any{"Ana <ana@example.com>"}, ws["authors"])
	assert.Equal(t, map[string]any{"default": []any{"py310"}}, doc["environments"])
	assert.Equal(t, map[string]any{"test": "pytest"}, doc["tasks"])

	activation := doc["activation"].(map[string]any)
	assert.Equal(t, []any{"setup.sh"}, activation["scripts"])
	assert.Equal(t, map[string]any{"MODE": "package"}, activation["env"])

	deps := doc["dependencies"].(map[string]any)
	assert.NotContains(t, deps, "foo")
	assert.Equal(t, "24.0,>=24.2", deps["boltons"])
	assert.Equal(t, map[string]any{"version": ">=5.15", "channel": "conda-forge"}, deps["pyqt"])
	assert.Equal(t, "*", deps["ruamel.yaml"])

	target := doc["target"].(map[string]any)
	unix := target["unix"].(map[string]any)
	assert.Equal(t, map[string]any{"flock": "*"}, unix["dependencies"])
	assert.Equal(t, map[string]any{
		"MYUSER":     "$USER",
		"PYTHONPATH": "$PIXI_PROJECT_ROOT/../bootstrap/typing:$PIXI_PROJECT_ROOT/src:$PIXI_PROJECT_ROOT/../a/src:$PYTHONPATH",
	}, unix["activation"].(map[string]any)["env"])
	win := target["win"].(map[string]any)
	assert.Equal(t, map[string]any{
		"MYUSER":     "%USER%",
		"PYTHONPATH": "%PIXI_PROJECT_ROOT%/src;%PIXI_PROJECT_ROOT%/../a/src;%PYTHONPATH%",
	}, win["activation"].(map[string]any)["env"])

	py310 := doc["feature"].(map[string]any)["py310"].(map[string]any)
	assert.Equal(t, map[string]any{"python": "3.10.*"}, py310["dependencies"])
	assert.Equal(t, map[string]any{"env": map[string]any{"CONDA_PY": "310"}}, py310["activation"])

	assert.Contains(t, updated, ManagedBanner)
	assert.Contains(t, updated, `boltons = "24.0,>=24.2"  # From: bootstrap, a`)
	assert.Contains(t, updated, `pyqt = { version = ">=5.15", channel = "conda-forge" }  # From: a, bootstrap`)
	assert.Contains(t, updated, `"ruamel.yaml" = "*"  # From: b`)
	assert.NotContains(t, updated, "STALE")

	banner := strings.Index(updated, ManagedBanner)
	assert.Less(t, strings.Index(updated, "[environments]"), banner, "user tables come before the managed ones")
	assert.Greater(t, strings.Index(updated, "[dependencies]"), banner)
}

func TestUpdatePixiContentsIsIdempotent(t *testing.T) {
	first, err := UpdatePixiContents(userPixi, sampleProject())
	require.NoError(t, err)
	second, err := UpdatePixiContents(first, sampleProject())
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

const userPixiWithTasks = `
[workspace]
name = "app"

[environments]
docs = ["docs"]

[target.linux-64.tasks]
build = "make"

[target.linux-64.dependencies]
stale = "*"

[feature.docs.tasks]
serve = "mkdocs serve"

[feature.docs.dependencies]
mkdocs = "*"
`

func TestUpdatePixiContentsKeepsUserKeysUnderTargetAndFeature(t *testing.T) {
	c := &consolidate.ConsolidatedProject{
		Name: "app",
		ConsolidatedAspect: consolidate.ConsolidatedAspect{
			Dependencies: map[string]consolidate.MergedSpec{
				"numpy": mergedSpec(project.NewSpec("*"), "app"),
			},
		},
		Platforms: []string{"linux-64"},
	}

	first, err := UpdatePixiContents(userPixiWithTasks, c)
	require.NoError(t, err)
	second, err := UpdatePixiContents(first, c)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	var doc map[string]any
	_, err = toml.Decode(second, &doc)
	require.NoError(t, err, "updated document must be valid TOML:\n%s", second)

	assert.Equal(t, map[string]any{"docs": []any{"docs"}}, doc["environments"])
	assert.Equal(t, map[string]any{"numpy": "*"}, doc["dependencies"])
	assert.Equal(t, map[string]any{
		"linux-64": map[string]any{"tasks": map[string]any{"build": "make"}},
	}, doc["target"])
	assert.Equal(t, map[string]any{
		"docs": map[string]any{"tasks": map[string]any{"serve": "mkdocs serve"}},
	}, doc["feature"])
	assert.NotContains(t, second, "stale")
	assert.NotContains(t, second, "mkdocs = ")
}

func TestUpdatePixiContentsMixesUserAndManagedKeysInTargetAndFeature(t *testing.T) {
	contents := userPixi + `
[target.unix.tasks]
lint = "ruff check"

[feature.py310.tasks]
bench = "pytest --benchmark"
`
	first, err := UpdatePixiContents(contents, sampleProject())
	require.NoError(t, err)
	second, err := UpdatePixiContents(first, sampleProject())
	require.NoError(t, err)
	assert.Equal(t, first, second)

	var doc map[string]any
	_, err = toml.Decode(second, &doc)
	require.NoError(t, err, "updated document must be valid TOML:\n%s", second)

	unix := doc["target"].(map[string]any)["unix"].(map[string]any)
	assert.Equal(t, map[string]any{"lint": "ruff check"}, unix["tasks"])
	assert.Equal(t, map[string]any{"flock": "*"}, unix["dependencies"])

	py310 := doc["feature"].(map[string]any)["py310"].(map[string]any)
	assert.Equal(t, map[string]any{"bench": "pytest --benchmark"}, py310["tasks"])
	assert.Equal(t, map[string]any{"python": "3.10.*"}, py310["dependencies"])

	banner := strings.Index(second, ManagedBanner)
	assert.Less(t, strings.Index(second, "[target.unix.tasks]"), banner)
	assert.Greater(t, strings.Index(second, "[target.unix.dependencies]"), banner)
}

func TestUpdatePixiContentsSkipsIncompatibleShellTargets(t *testing.T) {
	c := sampleProject()
	c.Platforms = []string{"linux-64"}

	updated, err := UpdatePixiContents("[workspace]\n", c)
	require.NoError(t, err)
	assert.NotContains(t, updated, "[target.win")
	assert.Contains(t, updated, "[target.unix.activation.env]")
}

func TestUpdatePixiContentsEnvVarMismatch(t *testing.T) {
	c := sampleProject()
	c.Target["win"] = consolidate.ConsolidatedAspect{
		EnvVars: map[string]consolidate.MergedEnvVarValue{
			"PYTHONPATH": envVar(project.StringValue("C:/src"), "a"),
		},
	}

	_, err := UpdatePixiContents("[workspace]\n", c)
	assert.True(t, errors.Is(err, kerrors.ErrEnvVarTypeMismatch), "got %v", err)
}

func TestUpdatePixiContentsInvalidDocument(t *testing.T) {
	_, err := UpdatePixiContents("[workspace", sampleProject())
	assert.ErrorIs(t, err, kerrors.ErrInvalidProjectFile)
}
