package workflows

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/PolarWolf314/pixi-devenv/internal/consolidate"
	kerrors "github.com/PolarWolf314/pixi-devenv/internal/errors"
	logger "github.com/PolarWolf314/pixi-devenv/internal/logging"
	"github.com/PolarWolf314/pixi-devenv/internal/project"
	"github.com/PolarWolf314/pixi-devenv/internal/render"
	"github.com/PolarWolf314/pixi-devenv/internal/workspace"
)

// UpdateOptions configures the update workflow.
type UpdateOptions struct {
	// Dir is the directory of the starting project.
	Dir string

	// DryRun computes the new pixi.toml without writing it.
	DryRun bool

	Log logger.Logger
}

// UpdateResult contains the outcome of an update operation.
type UpdateResult struct {
	// PixiFile is the path of the updated pixi.toml.
	PixiFile string

	// Projects lists the consolidated projects in downstream order.
	Projects []project.Name

	// Files lists the pixi.devenv.toml of every project in downstream order.
	Files []string

	// UnknownKeys maps a pixi.devenv.toml file to the keys it declares that
	// were ignored.
	UnknownKeys map[string][]string

	// Changed reports whether the contents of pixi.toml changed.
	Changed bool

	// Contents is the new pixi.toml document.
	Contents string
}

// Update consolidates the workspace of the project in opts.Dir and rewrites
// its pixi.toml.
//
// Returns ErrDevenvFileNotFound or ErrPixiFileNotFound when the project is
// not initialized. Consolidation errors are returned unchanged and leave
// pixi.toml untouched.
func Update(ctx context.Context, opts UpdateOptions) (*UpdateResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	devenvFile, pixiFile, err := projectFiles(opts.Dir)
	if err != nil {
		return nil, err
	}

	opts.Log.Debugf("Building workspace from %s", devenvFile)
	ws, err := workspace.FromStartingFile(devenvFile)
	if err != nil {
		return nil, err
	}
	opts.Log.Infof("Consolidating %d projects", len(ws.Projects))

	consolidated, err := consolidate.Consolidate(ws)
	if err != nil {
		return nil, err
	}

	contents, err := os.ReadFile(pixiFile)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", pixiFile, err)
	}
	updated, err := render.UpdatePixiContents(string(contents), consolidated)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", pixiFile, err)
	}

	result := &UpdateResult{
		PixiFile:    pixiFile,
		Projects:    ws.Names(),
		Files:       ws.Files(),
		UnknownKeys: unknownKeys(ws),
		Changed:     updated != string(contents),
		Contents:    updated,
	}
	if !result.Changed || opts.DryRun {
		opts.Log.Debugf("Not writing %s (changed=%t, dry-run=%t)", pixiFile, result.Changed, opts.DryRun)
		return result, nil
	}

	if err := os.WriteFile(pixiFile, []byte(updated), 0644); err != nil {
		return nil, fmt.Errorf("writing %s: %w", pixiFile, err)
	}
	opts.Log.Infof("Wrote %s", pixiFile)
	return result, nil
}

// projectFiles returns the pixi.devenv.toml and pixi.toml of dir, failing
// when either is missing.
func projectFiles(dir string) (devenvFile, pixiFile string, err error) {
	devenvFile = filepath.Join(dir, project.DevenvFilename)
	pixiFile = filepath.Join(dir, render.PixiFilename)

	if _, err := os.Stat(devenvFile); err != nil {
		return "", "", fmt.Errorf("%w: %s not found in %s", kerrors.ErrDevenvFileNotFound, project.DevenvFilename, dir)
	}
	if _, err := os.Stat(pixiFile); err != nil {
		return "", "", fmt.Errorf("%w: %s not found in %s", kerrors.ErrPixiFileNotFound, render.PixiFilename, dir)
	}
	return devenvFile, pixiFile, nil
}

func unknownKeys(ws *workspace.Workspace) map[string][]string {
	result := make(map[string][]string)
	for _, p := range ws.Downstream() {
		if len(p.UnknownKeys) > 0 {
			result[p.Filename] = p.UnknownKeys
		}
	}
	return result
}
