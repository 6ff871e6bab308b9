package workflows

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	kerrors "github.com/PolarWolf314/pixi-devenv/internal/errors"
	"github.com/PolarWolf314/pixi-devenv/internal/project"
)

func TestInitWritesTemplates(t *testing.T) {
	dir := t.TempDir()

	result, err := Init(context.Background(), InitOptions{Dir: dir})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "pixi.devenv.toml"), result.DevenvFile)
	assert.Equal(t, filepath.Join(dir, "pixi.toml"), result.PixiFile)
	assert.Equal(t, "src", result.SourceDir)

	devenv, err := os.ReadFile(result.DevenvFile)
	require.NoError(t, err)
	assert.Equal(t, `[devenv]
channels = [
    "conda-forge",
]
platforms = ["win-64", "linux-64"]

[devenv.dependencies]

[devenv.env-vars]
PYTHONPATH = ["{devenv_project_dir}/src"]
`, string(devenv))

	pixi, err := os.ReadFile(result.PixiFile)
	require.NoError(t, err)
	assert.Equal(t, "[workspace]\n\n[environments]\n", string(pixi))

	p, err := project.FromFile(result.DevenvFile)
	require.NoError(t, err)
	assert.Equal(t, []string{"conda-forge"}, p.Channels)
	assert.Equal(t, []string{"win-64", "linux-64"}, p.Platforms)
	assert.True(t, p.EnvVars["PYTHONPATH"].Equal(project.ListValue("{devenv_project_dir}/src")))
}

func TestInitPrefersSourcePython(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "source", "python"), 0755))

	result, err := Init(context.Background(), InitOptions{Dir: dir})
	require.NoError(t, err)
	assert.Equal(t, "source/python", result.SourceDir)

	devenv, err := os.ReadFile(result.DevenvFile)
	require.NoError(t, err)
	assert.Contains(t, string(devenv), `PYTHONPATH = ["{devenv_project_dir}/source/python"]`)
}

func TestInitRefusesToOverwrite(t *testing.T) {
	for _, existing := range []string{"pixi.devenv.toml", "pixi.toml"} {
		t.Run(existing, func(t *testing.T) {
			dir := t.TempDir()
			path := filepath.Join(dir, existing)
			require.NoError(t, os.WriteFile(path, []byte("# mine\n"), 0644))

			_, err := Init(context.Background(), InitOptions{Dir: dir})
			require.ErrorIs(t, err, kerrors.ErrAlreadyInitialized)
			assert.ErrorIs(t, err, kerrors.ErrDevEnv)
			assert.Contains(t, err.Error(), existing)

			contents, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, "# mine\n", string(contents))
		})
	}
}

func TestInitTwice(t *testing.T) {
	dir := t.TempDir()
	_, err := Init(context.Background(), InitOptions{Dir: dir})
	require.NoError(t, err)

	_, err = Init(context.Background(), InitOptions{Dir: dir})
	assert.ErrorIs(t, err, kerrors.ErrAlreadyInitialized)
}
