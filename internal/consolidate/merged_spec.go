package consolidate

import (
	"fmt"
	"strings"

	kerrors "github.com/PolarWolf314/pixi-devenv/internal/errors"
	"github.com/PolarWolf314/pixi-devenv/internal/project"
)

// MergedSpec is a spec merged from one or more projects.
type MergedSpec struct {
	// Sources lists the contributing projects in merge order.
	Sources []project.Name
	Spec    project.Spec
}

// NewMergedSpec returns a spec contributed by a single project.
func NewMergedSpec(source project.Name, spec project.Spec) MergedSpec {
	return MergedSpec{Sources: []project.Name{source}, Spec: spec}
}

// Add merges spec, declared for specName by sources, into m.
//
// Build and channel are only compared with the merged value so far, never
// with each individual contributor.
func (m MergedSpec) Add(specName string, sources []project.Name, spec project.Spec) (MergedSpec, error) {
	if m.Spec.Build != "" && spec.Build != "" && m.Spec.Build != spec.Build {
		return MergedSpec{}, fmt.Errorf("%w declared for %s in %s and %s: %s, %s",
			kerrors.ErrConflictingBuild, specName, formatSources(m.Sources), formatSources(sources),
			m.Spec.Build, spec.Build)
	}
	if m.Spec.Channel != "" && spec.Channel != "" && m.Spec.Channel != spec.Channel {
		return MergedSpec{}, fmt.Errorf("%w declared for %s in %s and %s: %s, %s",
			kerrors.ErrConflictingChannel, specName, formatSources(m.Sources), formatSources(sources),
			m.Spec.Channel, spec.Channel)
	}

	merged := project.Spec{
		Version: mergeVersions(m.Spec.Version, spec.Version),
		Build:   firstNonEmpty(m.Spec.Build, spec.Build),
		Channel: firstNonEmpty(m.Spec.Channel, spec.Channel),
	}
	allSources := make([]project.Name, 0, len(m.Sources)+len(sources))
	allSources = append(allSources, m.Sources...)
	allSources = append(allSources, sources...)
	return MergedSpec{Sources: allSources, Spec: merged}, nil
}

func mergeVersions(current, newer string) string {
	switch {
	case isWildcard(current) && isWildcard(newer):
		return project.AnyVersion
	case isWildcard(current):
		return newer
	case isWildcard(newer):
		return current
	}
	return current + "," + newer
}

func isWildcard(version string) bool {
	return version == "" || version == project.AnyVersion
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func formatSources(sources []project.Name) string {
	parts := make([]string, len(sources))
	for i, source := range sources {
		parts[i] = string(source)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
