package project

import (
	"fmt"
	"slices"
	"strings"
)

// EnvVarKind tells how an environment variable value merges.
type EnvVarKind int

const (
	// EnvVarString values replace the previous value.
	EnvVarString EnvVarKind = iota
	// EnvVarList values are prepended to the previous value, joined with the
	// platform path separator when rendered.
	EnvVarList
)

func (k EnvVarKind) String() string {
	switch k {
	case EnvVarString:
		return "string"
	case EnvVarList:
		return "list"
	}
	return fmt.Sprintf("EnvVarKind(%d)", int(k))
}

// EnvVarValue is the value of an environment variable: a single string or
// an ordered list of strings.
type EnvVarValue struct {
	Kind  EnvVarKind
	Value string
	Items []string
}

// StringValue returns a scalar value.
func StringValue(value string) EnvVarValue {
	return EnvVarValue{Kind: EnvVarString, Value: value}
}

// ListValue returns a list value.
func ListValue(items ...string) EnvVarValue {
	return EnvVarValue{Kind: EnvVarList, Items: append([]string{}, items...)}
}

// Equal reports whether both values have the same shape and contents.
func (v EnvVarValue) Equal(other EnvVarValue) bool {
	if v.Kind != other.Kind {
		return false
	}
	switch v.Kind {
	case EnvVarString:
		return v.Value == other.Value
	case EnvVarList:
		return slices.Equal(v.Items, other.Items)
	}
	panic(fmt.Sprintf("unhandled env var kind %v", v.Kind))
}

// Map applies fn to every string component of the value.
func (v EnvVarValue) Map(fn func(string) string) EnvVarValue {
	switch v.Kind {
	case EnvVarString:
		return StringValue(fn(v.Value))
	case EnvVarList:
		items := make([]string, len(v.Items))
		for i, item := range v.Items {
			items[i] = fn(item)
		}
		return EnvVarValue{Kind: EnvVarList, Items: items}
	}
	panic(fmt.Sprintf("unhandled env var kind %v", v.Kind))
}

func (v EnvVarValue) String() string {
	switch v.Kind {
	case EnvVarString:
		return fmt.Sprintf("%q", v.Value)
	case EnvVarList:
		quoted := make([]string, len(v.Items))
		for i, item := range v.Items {
			quoted[i] = fmt.Sprintf("%q", item)
		}
		return "[" + strings.Join(quoted, ", ") + "]"
	}
	panic(fmt.Sprintf("unhandled env var kind %v", v.Kind))
}

// UnmarshalTOML accepts a string or an array of strings.
func (v *EnvVarValue) UnmarshalTOML(data any) error {
	switch value := data.(type) {
	case string:
		*v = StringValue(value)
		return nil
	case []any:
		items := make([]string, 0, len(value))
		for _, item := range value {
			str, ok := item.(string)
			if !ok {
				return fmt.Errorf("env var list items must be strings, got %T", item)
			}
			items = append(items, str)
		}
		*v = EnvVarValue{Kind: EnvVarList, Items: items}
		return nil
	default:
		return fmt.Errorf("env var must be a string or a list of strings, got %T", data)
	}
}
