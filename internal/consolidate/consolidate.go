package consolidate

import (
	"fmt"
	"maps"
	"slices"

	"github.com/PolarWolf314/pixi-devenv/internal/project"
	"github.com/PolarWolf314/pixi-devenv/internal/workspace"
)

// ConsolidatedAspect is the merged contents of an aspect across projects.
type ConsolidatedAspect struct {
	Dependencies     map[string]MergedSpec
	PyPIDependencies map[string]MergedSpec
	EnvVars          map[string]MergedEnvVarValue
}

func newConsolidatedAspect() ConsolidatedAspect {
	return ConsolidatedAspect{
		Dependencies:     make(map[string]MergedSpec),
		PyPIDependencies: make(map[string]MergedSpec),
		EnvVars:          make(map[string]MergedEnvVarValue),
	}
}

// IsEmpty reports whether nothing was merged into the aspect.
func (a ConsolidatedAspect) IsEmpty() bool {
	return len(a.Dependencies) == 0 && len(a.PyPIDependencies) == 0 && len(a.EnvVars) == 0
}

// ConsolidatedFeature is a merged feature with its own targets.
type ConsolidatedFeature struct {
	ConsolidatedAspect
	Target map[string]ConsolidatedAspect
}

// IsEmpty reports whether the feature has nothing to contribute.
func (f ConsolidatedFeature) IsEmpty() bool {
	return f.ConsolidatedAspect.IsEmpty() && len(f.Target) == 0
}

// ConsolidatedProject is the final configuration of the starting project.
type ConsolidatedProject struct {
	Name project.Name
	ConsolidatedAspect
	Target    map[string]ConsolidatedAspect
	Feature   map[string]ConsolidatedFeature
	Channels  []string
	Platforms []string
}

// contributor is the aspect one project brings to a merge.
type contributor struct {
	project *project.Project
	aspect  project.Aspect
}

// targetSource holds the targets one project brings to a merge.
type targetSource struct {
	project *project.Project
	targets map[string]project.Aspect
}

// rules decide which projects contribute to each part of an aspect.
type rules struct {
	dependencies     func(project.Name) bool
	pypiDependencies func(project.Name) bool
	envVars          func(project.Name) bool
}

func (r rules) constraints(name project.Name) bool {
	return r.dependencies(name) || r.pypiDependencies(name)
}

type consolidator struct {
	ws *workspace.Workspace
}

// Consolidate merges the projects of ws into the configuration of its
// starting project, honoring the inheritance rules the starting project
// declares.
func Consolidate(ws *workspace.Workspace) (*ConsolidatedProject, error) {
	c := consolidator{ws: ws}
	starting := ws.Starting
	inherit := starting.Inherit
	downstream := ws.Downstream()

	channels, platforms := resolveChannelsAndPlatforms(downstream)

	rootRules := rules{
		dependencies:     func(name project.Name) bool { return inherit.UseDependencies(name, starting) },
		pypiDependencies: func(name project.Name) bool { return inherit.UsePyPIDependencies(name, starting) },
		envVars:          func(name project.Name) bool { return inherit.UseEnvVars(name, starting) },
	}
	contributors := make([]contributor, 0, len(downstream))
	targetSources := make([]targetSource, 0, len(downstream))
	for _, p := range downstream {
		contributors = append(contributors, contributor{project: p, aspect: p.RootAspect()})
		targetSources = append(targetSources, targetSource{project: p, targets: p.Target})
	}

	root, rootConstraints, err := c.mergeAspect(contributors, rootRules)
	if err != nil {
		return nil, err
	}
	targets, err := c.mergeTargets(targetSources, rootRules, platforms, rootConstraints)
	if err != nil {
		return nil, err
	}
	features, err := c.mergeFeatures(downstream, platforms, rootConstraints)
	if err != nil {
		return nil, err
	}

	return &ConsolidatedProject{
		Name:               starting.Name,
		ConsolidatedAspect: root,
		Target:             targets,
		Feature:            features,
		Channels:           channels,
		Platforms:          platforms,
	}, nil
}

// resolveChannelsAndPlatforms returns the last non-empty channels and
// platforms declared in downstream order.
func resolveChannelsAndPlatforms(downstream []*project.Project) (channels, platforms []string) {
	for _, p := range downstream {
		if len(p.Channels) > 0 {
			channels = p.Channels
		}
		if len(p.Platforms) > 0 {
			platforms = p.Platforms
		}
	}
	return slices.Clone(channels), slices.Clone(platforms)
}

// mergeAspect merges contributors in order. Constraints of the eligible
// contributors are merged first and seed each dependency the first time it
// is declared; fallback constraints are used for names the contributors do
// not constrain. It returns the merged aspect and the contributors' own
// constraints.
func (c consolidator) mergeAspect(contributors []contributor, r rules, fallback ...map[string]MergedSpec) (ConsolidatedAspect, map[string]MergedSpec, error) {
	constraints := make(map[string]MergedSpec)
	for _, contrib := range contributors {
		if !r.constraints(contrib.project.Name) {
			continue
		}
		if err := updateSpecs(constraints, contrib.project.Name, contrib.aspect.Constraints, nil); err != nil {
			return ConsolidatedAspect{}, nil, err
		}
	}
	seeds := append([]map[string]MergedSpec{constraints}, fallback...)

	result := newConsolidatedAspect()
	for _, contrib := range contributors {
		name := contrib.project.Name
		if r.dependencies(name) {
			if err := updateSpecs(result.Dependencies, name, contrib.aspect.Dependencies, seeds); err != nil {
				return ConsolidatedAspect{}, nil, err
			}
		}
		if r.pypiDependencies(name) {
			if err := updateSpecs(result.PyPIDependencies, name, contrib.aspect.PyPIDependencies, seeds); err != nil {
				return ConsolidatedAspect{}, nil, err
			}
		}
		if r.envVars(name) {
			if err := c.updateEnvVars(result.EnvVars, contrib.project, contrib.aspect.EnvVars); err != nil {
				return ConsolidatedAspect{}, nil, err
			}
		}
	}
	return result, constraints, nil
}

// mergeTargets merges every target compatible with platforms. A project
// only contributes to a target its own platforms are compatible with.
// Targets left empty are omitted.
func (c consolidator) mergeTargets(sources []targetSource, r rules, platforms []string, fallback ...map[string]MergedSpec) (map[string]ConsolidatedAspect, error) {
	names := make(map[string]bool)
	for _, s := range sources {
		for target := range s.targets {
			names[target] = true
		}
	}

	result := make(map[string]ConsolidatedAspect)
	for _, target := range slices.Sorted(maps.Keys(names)) {
		if !TargetMatchesPlatforms(target, platforms) {
			continue
		}
		var contributors []contributor
		for _, s := range sources {
			aspect, ok := s.targets[target]
			if !ok || !TargetMatchesPlatforms(target, s.project.Platforms) {
				continue
			}
			contributors = append(contributors, contributor{project: s.project, aspect: aspect})
		}
		merged, _, err := c.mergeAspect(contributors, r, fallback...)
		if err != nil {
			return nil, fmt.Errorf("target %s: %w", target, err)
		}
		if !merged.IsEmpty() {
			result[target] = merged
		}
	}
	return result, nil
}

// mergeFeatures merges every feature declared in the workspace. Only the
// projects allowed by the feature's inheritance rule contribute, and empty
// features are omitted.
func (c consolidator) mergeFeatures(downstream []*project.Project, platforms []string, rootConstraints map[string]MergedSpec) (map[string]ConsolidatedFeature, error) {
	starting := c.ws.Starting
	names := make(map[string]bool)
	for _, p := range downstream {
		for feature := range p.Feature {
			names[feature] = true
		}
	}

	result := make(map[string]ConsolidatedFeature)
	for _, feature := range slices.Sorted(maps.Keys(names)) {
		use := func(name project.Name) bool {
			return starting.Inherit.UseFeature(feature, name, starting)
		}
		r := rules{dependencies: use, pypiDependencies: use, envVars: use}

		var contributors []contributor
		var targetSources []targetSource
		for _, p := range downstream {
			f, ok := p.Feature[feature]
			if !ok || !use(p.Name) {
				continue
			}
			contributors = append(contributors, contributor{project: p, aspect: f.Aspect})
			targetSources = append(targetSources, targetSource{project: p, targets: f.Target})
		}

		aspect, constraints, err := c.mergeAspect(contributors, r, rootConstraints)
		if err != nil {
			return nil, fmt.Errorf("feature %s: %w", feature, err)
		}
		targets, err := c.mergeTargets(targetSources, r, platforms, constraints, rootConstraints)
		if err != nil {
			return nil, fmt.Errorf("feature %s: %w", feature, err)
		}
		merged := ConsolidatedFeature{ConsolidatedAspect: aspect, Target: targets}
		if !merged.IsEmpty() {
			result[feature] = merged
		}
	}
	return result, nil
}

// updateSpecs merges specs declared by source into merged. A name merged
// for the first time is seeded from the first seed map that has it.
func updateSpecs(merged map[string]MergedSpec, source project.Name, specs map[string]project.Spec, seeds []map[string]MergedSpec) error {
	for _, name := range slices.Sorted(maps.Keys(specs)) {
		spec := specs[name]
		if current, ok := merged[name]; ok {
			next, err := current.Add(name, []project.Name{source}, spec)
			if err != nil {
				return err
			}
			merged[name] = next
			continue
		}

		next := NewMergedSpec(source, spec)
		for _, seed := range seeds {
			if constraint, ok := seed[name]; ok {
				var err error
				next, err = next.Add(name, constraint.Sources, constraint.Spec)
				if err != nil {
					return err
				}
				break
			}
		}
		merged[name] = next
	}
	return nil
}

func (c consolidator) updateEnvVars(merged map[string]MergedEnvVarValue, p *project.Project, vars map[string]project.EnvVarValue) error {
	for _, name := range slices.Sorted(maps.Keys(vars)) {
		resolved, err := Resolve(p, c.ws, vars[name])
		if err != nil {
			return err
		}
		next := MergedEnvVarValue{Sources: []project.Name{p.Name}, Var: resolved}
		if current, ok := merged[name]; ok {
			next, err = current.Merge(name, next)
			if err != nil {
				return err
			}
		}
		merged[name] = next
	}
	return nil
}
