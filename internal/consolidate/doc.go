// Package consolidate merges every project of a workspace into the single
// configuration of its starting project.
//
// Projects are always visited from the top upstream project down to the
// starting project, so downstream declarations are merged last:
//
//	ws, err := workspace.FromStartingFile("pixi.devenv.toml")
//	if err != nil {
//	    return err
//	}
//	consolidated, err := consolidate.Consolidate(ws)
//
// # Merge Rules
//
//   - Versions of the same package are joined with commas, "*" is dropped
//   - Builds and channels must agree across contributors
//   - String env vars replace, list env vars prepend
//   - Constraints only seed packages some project depends on directly
//
// The package performs no I/O and keeps no state between calls.
package consolidate
