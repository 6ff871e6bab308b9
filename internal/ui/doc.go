// Package ui provides semantic text formatting for CLI output.
//
// Formatters render content according to terminal capabilities. When
// colors are available, content is colorized. When NO_COLOR is set or the
// terminal doesn't support colors, text decorations are used instead.
//
// # Semantic Formatters
//
//	ui.Code.Sprint("pixi-devenv update")   // Commands
//	ui.Path.Sprint("pixi.devenv.toml")     // File paths
//	ui.Highlight.Sprint("bootstrap")       // Project and feature names
//	ui.Muted.Sprint("from: a, b")          // Secondary text
//
// # Markers
//
//	ui.Done("Updated pixi.toml")           // ✓ Updated pixi.toml
//	ui.Failed("Update failed")             // ✗ Update failed
//	ui.Hint("Run pixi-devenv init")        // → Run pixi-devenv init
//
// When colors are disabled:
//   - Code: `backticks`
//   - Highlight: 'single quotes'
//   - Muted: (parentheses)
//   - Others: no decoration
package ui
