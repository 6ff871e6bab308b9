package project

import (
	"fmt"
	"path/filepath"
)

// DevenvFilename is the name of the file that defines a project.
const DevenvFilename = "pixi.devenv.toml"

// Name identifies a project. It is the name of the directory holding the
// project's pixi.devenv.toml and is never declared in the file itself.
type Name string

// Upstream references an upstream project by a path relative to the
// project's directory.
//
//	[devenv]
//	upstream = ["../core", { path = "../calc" }]
type Upstream struct {
	Path string
}

// UnmarshalTOML accepts a path string or a table with a path key.
func (u *Upstream) UnmarshalTOML(data any) error {
	switch v := data.(type) {
	case string:
		*u = Upstream{Path: v}
		return nil
	case map[string]any:
		path, ok := v["path"].(string)
		if !ok {
			return fmt.Errorf("upstream table requires a string path")
		}
		if len(v) != 1 {
			return fmt.Errorf("upstream table only supports the path key")
		}
		*u = Upstream{Path: path}
		return nil
	default:
		return fmt.Errorf("upstream must be a path or a table, got %T", data)
	}
}

// Aspect holds a set of dependencies, constraints and environment variables.
// It is the contents of the root of a project, of a target, or of a feature.
type Aspect struct {
	// Direct conda dependencies.
	Dependencies map[string]Spec `toml:"dependencies"`

	// Direct PyPI dependencies.
	PyPIDependencies map[string]Spec `toml:"pypi-dependencies"`

	// Constraints restrict the version of packages that some project depends
	// on directly. They never add a dependency by themselves.
	Constraints map[string]Spec `toml:"constraints"`

	EnvVars map[string]EnvVarValue `toml:"env-vars"`
}

// IsEmpty reports whether the aspect declares nothing.
func (a Aspect) IsEmpty() bool {
	return len(a.Dependencies) == 0 && len(a.PyPIDependencies) == 0 &&
		len(a.Constraints) == 0 && len(a.EnvVars) == 0
}

// Feature is a named aspect with its own target-specific aspects.
type Feature struct {
	Aspect
	Target map[string]Aspect
}

// Project is the parsed contents of one pixi.devenv.toml file.
type Project struct {
	Name     Name
	Filename string

	// Channels for conda packages, in order of priority.
	Channels []string

	// Platforms this project supports.
	Platforms []string

	Upstream []Upstream

	Aspect

	// Target-specific aspects keyed by target name (win, unix, linux-64, ...).
	Target map[string]Aspect

	Feature map[string]Feature

	Inherit Inheritance

	// UnknownKeys lists keys present in the file that pixi-devenv ignored.
	UnknownKeys []string
}

// Directory is the directory holding the project file.
func (p *Project) Directory() string {
	return filepath.Dir(p.Filename)
}

// RootAspect returns the aspect declared at the root of the project.
func (p *Project) RootAspect() Aspect {
	return p.Aspect
}
