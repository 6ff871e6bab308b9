package render

import (
	"bytes"
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/PolarWolf314/pixi-devenv/internal/consolidate"
	kerrors "github.com/PolarWolf314/pixi-devenv/internal/errors"
	"github.com/PolarWolf314/pixi-devenv/internal/project"
)

// PixiFilename is the name of the file pixi reads its configuration from.
const PixiFilename = "pixi.toml"

// ManagedBanner separates the tables owned by the user from the tables
// generated by pixi-devenv.
const ManagedBanner = "# Managed by devenv, changes below this line are overwritten."

// shellTargets receive the env vars that must be rendered per shell.
var shellTargets = []string{"unix", "win"}

var bareKey = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// UpdatePixiContents returns contents, a pixi.toml document, with the
// managed tables replaced by the consolidated project. Running it again on
// its own output returns the same document.
//
// Only the keys written for an aspect are managed: dependencies,
// pypi-dependencies and activation.env, at the top level, in every
// target and in every feature. Other keys under target and feature, such
// as tasks, belong to the user. Comments in the tables owned by the user
// are not preserved.
func UpdatePixiContents(contents string, c *consolidate.ConsolidatedProject) (string, error) {
	doc := make(map[string]any)
	if _, err := toml.Decode(contents, &doc); err != nil {
		return "", fmt.Errorf("%w: %s: %v", kerrors.ErrInvalidProjectFile, PixiFilename, err)
	}

	stripAspect(doc)
	prune(doc, "feature", func(features map[string]any) {
		for name := range features {
			prune(features, name, stripAspect)
		}
	})

	ws, ok := doc["workspace"].(map[string]any)
	if !ok {
		ws = make(map[string]any)
		doc["workspace"] = ws
	}
	ws["name"] = string(c.Name)
	ws["channels"] = nonNil(c.Channels)
	ws["platforms"] = nonNil(c.Platforms)

	var out bytes.Buffer
	enc := toml.NewEncoder(&out)
	enc.Indent = ""
	if err := enc.Encode(doc); err != nil {
		return "", fmt.Errorf("failed to encode %s: %w", PixiFilename, err)
	}

	w := &managedWriter{}
	if err := w.aspect("", c.ConsolidatedAspect, c.Target, c.Platforms); err != nil {
		return "", err
	}
	for _, name := range slices.Sorted(maps.Keys(c.Feature)) {
		feature := c.Feature[name]
		if err := w.aspect("feature."+key(name)+".", feature.ConsolidatedAspect, feature.Target, c.Platforms); err != nil {
			return "", fmt.Errorf("feature %s: %w", name, err)
		}
	}

	result := strings.TrimRight(out.String(), "\n") + "\n"
	if w.buf.Len() > 0 {
		result += "\n" + ManagedBanner + "\n" + w.buf.String()
	}
	return result, nil
}

// stripAspect removes the managed keys of an aspect from table, including
// the ones of its targets.
func stripAspect(table map[string]any) {
	delete(table, "dependencies")
	delete(table, "pypi-dependencies")
	prune(table, "activation", func(activation map[string]any) {
		delete(activation, "env")
	})
	prune(table, "target", func(targets map[string]any) {
		for name := range targets {
			prune(targets, name, stripAspect)
		}
	})
}

// prune applies strip to the table stored under name and removes it once
// empty, so the tables the managed part creates do not pile up.
func prune(parent map[string]any, name string, strip func(map[string]any)) {
	table, ok := parent[name].(map[string]any)
	if !ok {
		return
	}
	strip(table)
	if len(table) == 0 {
		delete(parent, name)
	}
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

// managedWriter writes the managed tables, keeping the comments pixi
// users rely on to tell where each value comes from.
type managedWriter struct {
	buf bytes.Buffer
}

func (w *managedWriter) table(header string) {
	fmt.Fprintf(&w.buf, "\n[%s]\n", header)
}

func (w *managedWriter) value(name string, value any, comment string) error {
	encoded, err := tomlValue(value)
	if err != nil {
		return err
	}
	if comment != "" {
		fmt.Fprintf(&w.buf, "%s = %s  # %s\n", key(name), encoded, comment)
	} else {
		fmt.Fprintf(&w.buf, "%s = %s\n", key(name), encoded)
	}
	return nil
}

// aspect writes an aspect and its targets with every table name prefixed.
func (w *managedWriter) aspect(prefix string, aspect consolidate.ConsolidatedAspect, targets map[string]consolidate.ConsolidatedAspect, platforms []string) error {
	grouped := consolidate.SplitEnvVars(aspect.EnvVars)

	if err := w.specs(prefix+"dependencies", aspect.Dependencies); err != nil {
		return err
	}
	if err := w.specs(prefix+"pypi-dependencies", aspect.PyPIDependencies); err != nil {
		return err
	}
	if len(grouped.Generic) > 0 {
		w.table(prefix + "activation.env")
		for _, name := range slices.Sorted(maps.Keys(grouped.Generic)) {
			if err := w.value(name, grouped.Generic[name], ""); err != nil {
				return err
			}
		}
	}

	envByTarget := make(map[string]map[string]consolidate.MergedEnvVarValue)
	for name, target := range targets {
		envByTarget[name] = target.EnvVars
	}
	if len(grouped.PlatformSpecific) > 0 {
		for _, name := range shellTargets {
			if !consolidate.TargetMatchesPlatforms(name, platforms) {
				continue
			}
			merged, err := mergeEnvVars(grouped.PlatformSpecific, envByTarget[name])
			if err != nil {
				return fmt.Errorf("target %s: %w", name, err)
			}
			envByTarget[name] = merged
		}
	}

	for _, name := range slices.Sorted(maps.Keys(envByTarget)) {
		targetPrefix := prefix + "target." + key(name) + "."
		target := targets[name]
		if err := w.specs(targetPrefix+"dependencies", target.Dependencies); err != nil {
			return err
		}
		if err := w.specs(targetPrefix+"pypi-dependencies", target.PyPIDependencies); err != nil {
			return err
		}
		vars := envByTarget[name]
		if len(vars) == 0 {
			continue
		}
		rendered := EnvVars(name, vars)
		w.table(targetPrefix + "activation.env")
		for _, varName := range slices.Sorted(maps.Keys(rendered)) {
			if err := w.value(varName, rendered[varName], ""); err != nil {
				return err
			}
		}
	}
	return nil
}

func (w *managedWriter) specs(header string, specs map[string]consolidate.MergedSpec) error {
	if len(specs) == 0 {
		return nil
	}
	w.table(header)
	for _, name := range slices.Sorted(maps.Keys(specs)) {
		merged := specs[name]
		comment := "From: " + joinNames(merged.Sources)
		if merged.Spec.IsVersionOnly() {
			if err := w.value(name, merged.Spec.Version, comment); err != nil {
				return err
			}
			continue
		}
		inline, err := inlineSpec(merged.Spec)
		if err != nil {
			return err
		}
		fmt.Fprintf(&w.buf, "%s = %s  # %s\n", key(name), inline, comment)
	}
	return nil
}

// mergeEnvVars merges target vars on top of the platform specific ones.
func mergeEnvVars(platformSpecific, target map[string]consolidate.MergedEnvVarValue) (map[string]consolidate.MergedEnvVarValue, error) {
	result := maps.Clone(platformSpecific)
	for _, name := range slices.Sorted(maps.Keys(target)) {
		newer := target[name]
		older, ok := result[name]
		if !ok {
			result[name] = newer
			continue
		}
		merged, err := older.Merge(name, newer)
		if err != nil {
			return nil, err
		}
		result[name] = merged
	}
	return result, nil
}

func inlineSpec(spec project.Spec) (string, error) {
	fields := []struct{ name, value string }{
		{"version", spec.Version},
		{"build", spec.Build},
		{"channel", spec.Channel},
	}
	var parts []string
	for _, field := range fields {
		if field.value == "" {
			continue
		}
		encoded, err := tomlValue(field.value)
		if err != nil {
			return "", err
		}
		parts = append(parts, field.name+" = "+encoded)
	}
	return "{ " + strings.Join(parts, ", ") + " }", nil
}

// tomlValue encodes a single value the way the TOML encoder would.
func tomlValue(value any) (string, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(map[string]any{"v": value}); err != nil {
		return "", fmt.Errorf("failed to encode %v: %w", value, err)
	}
	return strings.TrimSpace(strings.TrimPrefix(buf.String(), "v = ")), nil
}

// key quotes name when it is not a valid bare key.
func key(name string) string {
	if bareKey.MatchString(name) {
		return name
	}
	quoted, err := tomlValue(name)
	if err != nil {
		return fmt.Sprintf("%q", name)
	}
	return quoted
}

func joinNames(names []project.Name) string {
	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = string(name)
	}
	return strings.Join(parts, ", ")
}
