package consolidate

import (
	"fmt"
	"path/filepath"
	"strings"

	kerrors "github.com/PolarWolf314/pixi-devenv/internal/errors"
	"github.com/PolarWolf314/pixi-devenv/internal/project"
	"github.com/PolarWolf314/pixi-devenv/internal/workspace"
)

const (
	// ProjectDirPlaceholder is replaced by the directory of the project that
	// declares the env var.
	ProjectDirPlaceholder = "{devenv_project_dir}"

	// ProjectRootVar is set by pixi to the directory of the starting project.
	ProjectRootVar = "$PIXI_PROJECT_ROOT"
)

// ResolvedEnvVar is an env var value with ProjectDirPlaceholder replaced.
type ResolvedEnvVar struct {
	Value project.EnvVarValue
}

// Resolve replaces ProjectDirPlaceholder in every string of raw with the
// directory of p, relative to the starting project of ws and rooted at
// ProjectRootVar. Other template identifiers are kept for rendering.
func Resolve(p *project.Project, ws *workspace.Workspace, raw project.EnvVarValue) (ResolvedEnvVar, error) {
	rel, err := filepath.Rel(ws.Starting.Directory(), p.Directory())
	if err != nil {
		return ResolvedEnvVar{}, fmt.Errorf("failed to resolve directory of %s: %w", p.Name, err)
	}
	dir := ProjectRootVar
	if rel != "." {
		dir += "/" + filepath.ToSlash(rel)
	}
	return ResolvedEnvVar{
		Value: raw.Map(func(s string) string {
			return strings.ReplaceAll(s, ProjectDirPlaceholder, dir)
		}),
	}, nil
}

// MergedEnvVarValue is an env var value merged from one or more projects.
type MergedEnvVarValue struct {
	// Sources lists the contributing projects in merge order.
	Sources []project.Name
	Var     ResolvedEnvVar
}

// Merge merges newer into m. A string replaces the previous string and a
// list is prepended to the previous list. Mixing both shapes for the same
// variable is an error.
func (m MergedEnvVarValue) Merge(name string, newer MergedEnvVarValue) (MergedEnvVarValue, error) {
	older := m.Var.Value
	value := newer.Var.Value
	if older.Kind != value.Kind {
		return MergedEnvVarValue{}, fmt.Errorf("%w for %s in %s and %s: %s (%s), %s (%s)",
			kerrors.ErrEnvVarTypeMismatch, name, formatSources(m.Sources), formatSources(newer.Sources),
			older, older.Kind, value, value.Kind)
	}

	var merged project.EnvVarValue
	switch value.Kind {
	case project.EnvVarString:
		merged = value
	case project.EnvVarList:
		items := make([]string, 0, len(value.Items)+len(older.Items))
		items = append(items, value.Items...)
		items = append(items, older.Items...)
		merged = project.ListValue(items...)
	default:
		panic(fmt.Sprintf("unhandled env var kind %v", value.Kind))
	}

	sources := make([]project.Name, 0, len(m.Sources)+len(newer.Sources))
	sources = append(sources, m.Sources...)
	sources = append(sources, newer.Sources...)
	return MergedEnvVarValue{Sources: sources, Var: ResolvedEnvVar{Value: merged}}, nil
}

// GenericValue returns the value and true when it can be used as is on
// every platform: a string that references no other variable.
func (m MergedEnvVarValue) GenericValue() (string, bool) {
	value := m.Var.Value
	if value.Kind != project.EnvVarString || len(TemplateIdentifiers(value.Value)) > 0 {
		return "", false
	}
	return value.Value, true
}

// GroupedEnvVars splits env vars into the ones that can be used as is and
// the ones that must be rendered for each shell.
type GroupedEnvVars struct {
	Generic          map[string]string
	PlatformSpecific map[string]MergedEnvVarValue
}

// SplitEnvVars groups vars by GenericValue.
func SplitEnvVars(vars map[string]MergedEnvVarValue) GroupedEnvVars {
	grouped := GroupedEnvVars{
		Generic:          make(map[string]string),
		PlatformSpecific: make(map[string]MergedEnvVarValue),
	}
	for name, merged := range vars {
		if value, ok := merged.GenericValue(); ok {
			grouped.Generic[name] = value
		} else {
			grouped.PlatformSpecific[name] = merged
		}
	}
	return grouped
}
