package project

import (
	"fmt"
	"slices"
)

// InheritMode selects how an InheritRule treats upstream projects.
type InheritMode int

const (
	// InheritAll inherits from every upstream project (`true`).
	InheritAll InheritMode = iota
	// InheritNone inherits from no upstream project (`false`).
	InheritNone
	// InheritInclude inherits only from the listed projects.
	InheritInclude
	// InheritExclude inherits from every project except the listed ones.
	InheritExclude
)

func (m InheritMode) String() string {
	switch m {
	case InheritAll:
		return "all"
	case InheritNone:
		return "none"
	case InheritInclude:
		return "include"
	case InheritExclude:
		return "exclude"
	}
	return fmt.Sprintf("InheritMode(%d)", int(m))
}

// InheritRule decides which upstream projects contribute an aspect.
//
//	[devenv.inherit]
//	dependencies = false
//	pypi-dependencies.exclude = ["core"]
//	env-vars.include = ["core"]
//
// A bare list is shorthand for include. The zero value inherits everything.
type InheritRule struct {
	Mode  InheritMode
	Names []Name
}

// Include returns a rule that only inherits from the given projects.
func Include(names ...Name) InheritRule {
	return InheritRule{Mode: InheritInclude, Names: names}
}

// Exclude returns a rule that inherits from every project except the given ones.
func Exclude(names ...Name) InheritRule {
	return InheritRule{Mode: InheritExclude, Names: names}
}

// Bool returns InheritAll for true and InheritNone for false.
func Bool(inherit bool) InheritRule {
	if inherit {
		return InheritRule{Mode: InheritAll}
	}
	return InheritRule{Mode: InheritNone}
}

// Evaluate reports whether project name contributes, given the starting
// project. The starting project always contributes to its own result.
func (r InheritRule) Evaluate(name Name, starting *Project) bool {
	if name == starting.Name {
		return true
	}
	switch r.Mode {
	case InheritAll:
		return true
	case InheritNone:
		return false
	case InheritInclude:
		return slices.Contains(r.Names, name)
	case InheritExclude:
		return !slices.Contains(r.Names, name)
	}
	panic(fmt.Sprintf("unhandled inherit mode %v", r.Mode))
}

// UnmarshalTOML accepts a bool, a list of names, or a table with a single
// include or exclude list.
func (r *InheritRule) UnmarshalTOML(data any) error {
	switch v := data.(type) {
	case bool:
		*r = Bool(v)
		return nil
	case []any:
		names, err := decodeNames(v)
		if err != nil {
			return err
		}
		*r = Include(names...)
		return nil
	case map[string]any:
		if len(v) != 1 {
			return fmt.Errorf("inherit table must have exactly one of include or exclude")
		}
		for key, value := range v {
			list, ok := value.([]any)
			if !ok {
				return fmt.Errorf("inherit %s must be a list of project names, got %T", key, value)
			}
			names, err := decodeNames(list)
			if err != nil {
				return err
			}
			switch key {
			case "include":
				*r = Include(names...)
			case "exclude":
				*r = Exclude(names...)
			default:
				return fmt.Errorf("unknown inherit key %q, expected include or exclude", key)
			}
		}
		return nil
	default:
		return fmt.Errorf("inherit must be a bool, a list, or an include/exclude table, got %T", data)
	}
}

func decodeNames(values []any) ([]Name, error) {
	names := make([]Name, 0, len(values))
	for _, value := range values {
		str, ok := value.(string)
		if !ok {
			return nil, fmt.Errorf("project names must be strings, got %T", value)
		}
		names = append(names, Name(str))
	}
	return names, nil
}

// Inheritance controls which aspects are inherited from upstream projects.
type Inheritance struct {
	Dependencies     InheritRule            `toml:"dependencies"`
	PyPIDependencies InheritRule            `toml:"pypi-dependencies"`
	EnvVars          InheritRule            `toml:"env-vars"`
	Features         map[string]InheritRule `toml:"features"`
}

// UseDependencies reports whether dependencies of name are inherited.
func (i Inheritance) UseDependencies(name Name, starting *Project) bool {
	return i.Dependencies.Evaluate(name, starting)
}

// UsePyPIDependencies reports whether pypi-dependencies of name are inherited.
func (i Inheritance) UsePyPIDependencies(name Name, starting *Project) bool {
	return i.PyPIDependencies.Evaluate(name, starting)
}

// UseEnvVars reports whether env-vars of name are inherited.
func (i Inheritance) UseEnvVars(name Name, starting *Project) bool {
	return i.EnvVars.Evaluate(name, starting)
}

// UseFeature reports whether feature from project name is inherited.
//
// Features the starting project declares itself are inherited from every
// project. Other features are inherited only through an explicit
// inherit.features entry.
func (i Inheritance) UseFeature(feature string, name Name, starting *Project) bool {
	if _, ok := starting.Feature[feature]; ok {
		return true
	}
	if rule, ok := i.Features[feature]; ok {
		return rule.Evaluate(name, starting)
	}
	return false
}
