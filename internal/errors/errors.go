package errors

import (
	"errors"
	"fmt"
)

// ErrDevEnv is the root of every error raised explicitly by pixi-devenv.
var ErrDevEnv = errors.New("devenv")

// Graph errors indicate the upstream projects cannot be ordered.
var (
	// ErrCycle indicates upstream declarations form a cycle.
	ErrCycle = fmt.Errorf("%w: dependencies are in a cycle", ErrDevEnv)
)

// Merge errors indicate two projects declare incompatible values for the same key.
var (
	// ErrConflictingBuild indicates two different builds were declared for one package.
	ErrConflictingBuild = fmt.Errorf("%w: conflicting builds", ErrDevEnv)

	// ErrConflictingChannel indicates two different channels were declared for one package.
	ErrConflictingChannel = fmt.Errorf("%w: conflicting channels", ErrDevEnv)

	// ErrEnvVarTypeMismatch indicates a string and a list were declared for one variable.
	ErrEnvVarTypeMismatch = fmt.Errorf("%w: environment variable type mismatch", ErrDevEnv)
)

// Schema errors indicate an input file is not a valid pixi.devenv.toml.
var (
	// ErrReservedKey indicates a key that must not be set explicitly.
	ErrReservedKey = fmt.Errorf("%w: reserved key", ErrDevEnv)

	// ErrInvalidProjectFile indicates the file could not be decoded.
	ErrInvalidProjectFile = fmt.Errorf("%w: invalid project file", ErrDevEnv)
)

// Project errors indicate issues with the files in a project directory.
var (
	// ErrDevenvFileNotFound indicates pixi.devenv.toml is missing.
	ErrDevenvFileNotFound = fmt.Errorf("%w: devenv file not found", ErrDevEnv)

	// ErrPixiFileNotFound indicates pixi.toml is missing.
	ErrPixiFileNotFound = fmt.Errorf("%w: pixi file not found", ErrDevEnv)

	// ErrAlreadyInitialized indicates init would overwrite existing files.
	ErrAlreadyInitialized = fmt.Errorf("%w: already initialized", ErrDevEnv)

	// ErrUnsupportedFormat indicates an unknown output format was requested.
	ErrUnsupportedFormat = fmt.Errorf("%w: unsupported format", ErrDevEnv)
)
