// Package workflows provides high-level orchestration for pixi-devenv commands.
//
// Workflows coordinate the project loader, the workspace graph, the
// consolidation engine and the pixi.toml renderer to implement complete
// user-facing features. Each workflow handles a single command's business
// logic, independent of CLI concerns like flag parsing, spinners, and output
// formatting.
//
// # Design Philosophy
//
// The cmd/ package should be a thin layer that:
//   - Parses command-line flags and arguments
//   - Calls the appropriate workflow function
//   - Formats the result for display
//
// Workflows handle everything else:
//   - Locating pixi.devenv.toml and pixi.toml
//   - Building and consolidating the workspace
//   - Reading and writing files
//
// # Available Workflows
//
//   - Init: Writes template pixi.devenv.toml and pixi.toml files
//   - Update: Consolidates the workspace and rewrites pixi.toml
//   - Show: Renders the consolidated project as TOML, JSON or YAML
//   - Graph: Lists the workspace projects and their upstream edges
//   - Watch: Runs Update whenever a project file of the workspace changes
//
// # Error Handling
//
// Workflows return typed errors from the internal/errors package, allowing
// the CLI layer to provide appropriate user-facing messages without string
// matching:
//
//	result, err := workflows.Update(ctx, opts)
//	if errors.Is(err, kerrors.ErrPixiFileNotFound) {
//	    // Suggest running pixi-devenv init
//	}
//
// # Context Usage
//
// All workflow functions accept a context.Context as their first parameter.
// Watch runs until its context is cancelled.
package workflows
