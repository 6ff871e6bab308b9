// Package utils provides shared utility functions for pixi-devenv.
//
// # Filesystem Utilities
//
// Functions for locating projects on disk:
//   - FindDevenvRoot: walks up directories to find pixi.devenv.toml
//   - ResolveProjectDir: turns a command argument into a project directory
//   - FileExists: reports whether a regular file exists
//
// # String Utilities
//
//   - FormatPaths: formats file paths for human-readable output
//
// # Terminal Utilities
//
//   - IsStdoutTerminal: checks if stdout is a terminal
package utils
