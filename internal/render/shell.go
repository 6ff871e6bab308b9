package render

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/PolarWolf314/pixi-devenv/internal/consolidate"
	"github.com/PolarWolf314/pixi-devenv/internal/project"
)

// Shell is the shell pixi uses to activate an environment on a target.
type Shell int

const (
	// Bash is used on every platform except Windows.
	Bash Shell = iota
	// Cmd is used on Windows.
	Cmd
)

// ShellFromTargetName returns the shell used by the given target.
func ShellFromTargetName(target string) Shell {
	if strings.HasPrefix(strings.ToLower(target), "win") {
		return Cmd
	}
	return Bash
}

func (s Shell) String() string {
	switch s {
	case Bash:
		return "bash"
	case Cmd:
		return "cmd"
	}
	return fmt.Sprintf("Shell(%d)", int(s))
}

// EnvVar returns a reference to the variable name.
func (s Shell) EnvVar(name string) string {
	switch s {
	case Bash:
		return "$" + name
	case Cmd:
		return "%" + name + "%"
	}
	panic(fmt.Sprintf("unhandled shell %v", s))
}

// PathSeparator returns the separator of list variables such as PATH.
func (s Shell) PathSeparator() string {
	switch s {
	case Bash:
		return ":"
	case Cmd:
		return ";"
	}
	panic(fmt.Sprintf("unhandled shell %v", s))
}

// EnvVars renders vars for the shell of target. Variable references use
// the shell syntax, and list values are joined and extended with the
// variable's previous value.
func EnvVars(target string, vars map[string]consolidate.MergedEnvVarValue) map[string]string {
	shell := ShellFromTargetName(target)
	substitute := func(value string) string {
		return consolidate.SubstituteIdentifiers(value, shell.EnvVar)
	}

	rendered := make(map[string]string, len(vars))
	for _, name := range slices.Sorted(maps.Keys(vars)) {
		value := vars[name].Var.Value
		switch value.Kind {
		case project.EnvVarString:
			rendered[name] = substitute(value.Value)
		case project.EnvVarList:
			parts := make([]string, 0, len(value.Items)+1)
			for _, item := range value.Items {
				parts = append(parts, substitute(item))
			}
			parts = append(parts, shell.EnvVar(name))
			rendered[name] = strings.Join(parts, shell.PathSeparator())
		default:
			panic(fmt.Sprintf("unhandled env var kind %v", value.Kind))
		}
	}
	return rendered
}
