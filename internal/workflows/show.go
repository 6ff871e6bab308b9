package workflows

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/PolarWolf314/pixi-devenv/internal/consolidate"
	kerrors "github.com/PolarWolf314/pixi-devenv/internal/errors"
	logger "github.com/PolarWolf314/pixi-devenv/internal/logging"
	"github.com/PolarWolf314/pixi-devenv/internal/project"
	"github.com/PolarWolf314/pixi-devenv/internal/workspace"
)

// Output formats supported by Show.
const (
	FormatTOML = "toml"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Formats lists the output formats supported by Show.
var Formats = []string{FormatTOML, FormatJSON, FormatYAML}

// ShowOptions configures the show workflow.
type ShowOptions struct {
	// Dir is the directory of the starting project.
	Dir string

	// Format is one of Formats.
	Format string

	Log logger.Logger
}

// ShowResult contains the rendered consolidated project.
type ShowResult struct {
	Project *consolidate.ConsolidatedProject

	// Output is the project encoded in the requested format.
	Output string
}

// Show consolidates the workspace of the project in opts.Dir and encodes the
// result, including the sources of every value. Unlike Update it only needs
// pixi.devenv.toml.
//
// Returns ErrUnsupportedFormat for formats outside Formats.
func Show(ctx context.Context, opts ShowOptions) (*ShowResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	format := strings.ToLower(opts.Format)
	encode, ok := encoders[format]
	if !ok {
		return nil, fmt.Errorf("%w: %q, expected one of %s", kerrors.ErrUnsupportedFormat, opts.Format, strings.Join(Formats, ", "))
	}

	ws, err := workspace.FromStartingFile(devenvFile(opts.Dir))
	if err != nil {
		return nil, err
	}
	consolidated, err := consolidate.Consolidate(ws)
	if err != nil {
		return nil, err
	}

	opts.Log.Debugf("Encoding %s as %s", consolidated.Name, format)
	output, err := encode(projectTree(consolidated))
	if err != nil {
		return nil, fmt.Errorf("encoding %s: %w", format, err)
	}
	return &ShowResult{Project: consolidated, Output: output}, nil
}

var encoders = map[string]func(tree map[string]any) (string, error){
	FormatTOML: func(tree map[string]any) (string, error) {
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(tree); err != nil {
			return "", err
		}
		return buf.String(), nil
	},
	FormatJSON: func(tree map[string]any) (string, error) {
		data, err := json.MarshalIndent(tree, "", "  ")
		if err != nil {
			return "", err
		}
		return string(data) + "\n", nil
	},
	FormatYAML: func(tree map[string]any) (string, error) {
		var buf bytes.Buffer
		encoder := yaml.NewEncoder(&buf)
		encoder.SetIndent(2)
		if err := encoder.Encode(tree); err != nil {
			return "", err
		}
		if err := encoder.Close(); err != nil {
			return "", err
		}
		return buf.String(), nil
	},
}

// projectTree converts c into plain maps and slices that every encoder
// renders the same way. Empty tables are left out.
func projectTree(c *consolidate.ConsolidatedProject) map[string]any {
	tree := map[string]any{
		"name":      string(c.Name),
		"channels":  nonNilStrings(c.Channels),
		"platforms": nonNilStrings(c.Platforms),
	}
	addAspect(tree, c.ConsolidatedAspect)
	if targets := targetsTree(c.Target); len(targets) > 0 {
		tree["target"] = targets
	}

	features := make(map[string]any, len(c.Feature))
	for name, feature := range c.Feature {
		node := map[string]any{}
		addAspect(node, feature.ConsolidatedAspect)
		if targets := targetsTree(feature.Target); len(targets) > 0 {
			node["target"] = targets
		}
		features[name] = node
	}
	if len(features) > 0 {
		tree["feature"] = features
	}
	return tree
}

func targetsTree(targets map[string]consolidate.ConsolidatedAspect) map[string]any {
	result := make(map[string]any, len(targets))
	for name, aspect := range targets {
		node := map[string]any{}
		addAspect(node, aspect)
		result[name] = node
	}
	return result
}

func addAspect(node map[string]any, aspect consolidate.ConsolidatedAspect) {
	if specs := specsTree(aspect.Dependencies); len(specs) > 0 {
		node["dependencies"] = specs
	}
	if specs := specsTree(aspect.PyPIDependencies); len(specs) > 0 {
		node["pypi-dependencies"] = specs
	}
	if len(aspect.EnvVars) > 0 {
		vars := make(map[string]any, len(aspect.EnvVars))
		for name, merged := range aspect.EnvVars {
			vars[name] = map[string]any{
				"value":   envVarTree(merged.Var.Value),
				"sources": sourceNames(merged.Sources),
			}
		}
		node["env-vars"] = vars
	}
}

func specsTree(specs map[string]consolidate.MergedSpec) map[string]any {
	result := make(map[string]any, len(specs))
	for name, merged := range specs {
		entry := map[string]any{
			"version": merged.Spec.Version,
			"sources": sourceNames(merged.Sources),
		}
		if merged.Spec.Build != "" {
			entry["build"] = merged.Spec.Build
		}
		if merged.Spec.Channel != "" {
			entry["channel"] = merged.Spec.Channel
		}
		result[name] = entry
	}
	return result
}

func envVarTree(value project.EnvVarValue) any {
	if value.Kind == project.EnvVarList {
		return nonNilStrings(value.Items)
	}
	return value.Value
}

func sourceNames(sources []project.Name) []string {
	result := make([]string, len(sources))
	for i, source := range sources {
		result[i] = string(source)
	}
	return result
}

func nonNilStrings(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
