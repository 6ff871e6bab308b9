package workflows

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	kerrors "github.com/PolarWolf314/pixi-devenv/internal/errors"
	"github.com/PolarWolf314/pixi-devenv/internal/project"
	"github.com/PolarWolf314/pixi-devenv/internal/render"
	"github.com/PolarWolf314/pixi-devenv/internal/utils"
)

const devenvTemplate = `[devenv]
channels = [
    "conda-forge",
]
platforms = ["win-64", "linux-64"]

[devenv.dependencies]

[devenv.env-vars]
PYTHONPATH = ["{devenv_project_dir}/%s"]
`

const pixiTemplate = `[workspace]

[environments]
`

// InitOptions configures the init workflow.
type InitOptions struct {
	// Dir is the directory to initialize.
	Dir string
}

// InitResult contains the outcome of an init operation.
type InitResult struct {
	// DevenvFile is the path of the created pixi.devenv.toml.
	DevenvFile string

	// PixiFile is the path of the created pixi.toml.
	PixiFile string

	// SourceDir is the python source directory added to PYTHONPATH,
	// relative to Dir.
	SourceDir string
}

// Init writes a minimal pixi.devenv.toml and pixi.toml into opts.Dir.
//
// The PYTHONPATH of the template points to source/python when that
// directory exists, and to src otherwise.
//
// Returns ErrAlreadyInitialized if either file already exists, so nothing
// is ever overwritten.
func Init(ctx context.Context, opts InitOptions) (*InitResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	devenvFile := filepath.Join(opts.Dir, project.DevenvFilename)
	pixiFile := filepath.Join(opts.Dir, render.PixiFilename)
	for _, path := range []string{devenvFile, pixiFile} {
		exists, err := utils.FileExists(path)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, fmt.Errorf("%w: %s already exists, aborting", kerrors.ErrAlreadyInitialized, filepath.Base(path))
		}
	}

	sourceDir := "src"
	if info, err := os.Stat(filepath.Join(opts.Dir, "source", "python")); err == nil && info.IsDir() {
		sourceDir = "source/python"
	}

	if err := os.MkdirAll(opts.Dir, 0755); err != nil {
		return nil, fmt.Errorf("creating %s: %w", opts.Dir, err)
	}
	if err := os.WriteFile(devenvFile, []byte(fmt.Sprintf(devenvTemplate, sourceDir)), 0644); err != nil {
		return nil, fmt.Errorf("writing %s: %w", devenvFile, err)
	}
	if err := os.WriteFile(pixiFile, []byte(pixiTemplate), 0644); err != nil {
		// Leave the directory as it was found.
		_ = os.Remove(devenvFile)
		return nil, fmt.Errorf("writing %s: %w", pixiFile, err)
	}

	return &InitResult{
		DevenvFile: devenvFile,
		PixiFile:   pixiFile,
		SourceDir:  sourceDir,
	}, nil
}
