package workflows

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	kerrors "github.com/PolarWolf314/pixi-devenv/internal/errors"
)

// shownProject is the subset of the show output the tests decode.
type shownProject struct {
	Name         string                    `json:"name" yaml:"name" toml:"name"`
	Channels     []string                  `json:"channels" yaml:"channels" toml:"channels"`
	Platforms    []string                  `json:"platforms" yaml:"platforms" toml:"platforms"`
	Dependencies map[string]shownSpec      `json:"dependencies" yaml:"dependencies" toml:"dependencies"`
	EnvVars      map[string]map[string]any `json:"env-vars" yaml:"env-vars" toml:"env-vars"`
	Target       map[string]map[string]any `json:"target" yaml:"target" toml:"target"`
}

type shownSpec struct {
	Version string   `json:"version" yaml:"version" toml:"version"`
	Channel string   `json:"channel" yaml:"channel" toml:"channel"`
	Sources []string `json:"sources" yaml:"sources" toml:"sources"`
}

func TestShowFormats(t *testing.T) {
	_, appDir := setupWorkspace(t)

	decoders := map[string]func(data string, v any) error{
		FormatTOML: func(data string, v any) error {
			_, err := toml.Decode(data, v)
			return err
		},
		FormatJSON: func(data string, v any) error { return json.Unmarshal([]byte(data), v) },
		FormatYAML: func(data string, v any) error { return yaml.Unmarshal([]byte(data), v) },
	}

	for _, format := range Formats {
		t.Run(format, func(t *testing.T) {
			result, err := Show(context.Background(), ShowOptions{Dir: appDir, Format: format})
			require.NoError(t, err)
			assert.Equal(t, "app", string(result.Project.Name))

			var shown shownProject
			require.NoError(t, decoders[format](result.Output, &shown))
			assert.Equal(t, "app", shown.Name)
			assert.Equal(t, []string{"conda-forge"}, shown.Channels)
			assert.Equal(t, []string{"linux-64", "win-64"}, shown.Platforms)
			assert.Equal(t, shownSpec{Version: "*", Sources: []string{"app"}}, shown.Dependencies["boltons"])
			assert.Equal(t, shownSpec{Version: ">=3.10", Sources: []string{"bootstrap"}}, shown.Dependencies["python"])
			assert.Equal(t, "6", shown.EnvVars["JOBS"]["value"])
			assert.Empty(t, shown.Target)
		})
	}
}

func TestShowFormatIsCaseInsensitive(t *testing.T) {
	_, appDir := setupWorkspace(t)

	result, err := Show(context.Background(), ShowOptions{Dir: appDir, Format: "JSON"})
	require.NoError(t, err)
	assert.True(t, json.Valid([]byte(result.Output)))
}

func TestShowUnsupportedFormat(t *testing.T) {
	_, appDir := setupWorkspace(t)

	_, err := Show(context.Background(), ShowOptions{Dir: appDir, Format: "xml"})
	require.ErrorIs(t, err, kerrors.ErrUnsupportedFormat)
	assert.Contains(t, err.Error(), "toml, json, yaml")
}

func TestShowDoesNotNeedPixiFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "pixi.devenv.toml", "[devenv.dependencies]\nboltons = \"*\"\n")

	result, err := Show(context.Background(), ShowOptions{Dir: dir, Format: FormatJSON})
	require.NoError(t, err)
	assert.Contains(t, result.Output, `"boltons"`)
}
