package project

import (
	"fmt"
	"strings"
)

// AnyVersion is the version of a spec that does not constrain the package.
const AnyVersion = "*"

// Spec is a package specification in a dependencies table.
//
// It is declared either as a bare version string:
//
//	[devenv.dependencies]
//	pytest = ">=7.2"
//
// or as a table:
//
//	[devenv.dependencies]
//	pytest = { version = ">=7.2", build = "ab", channel = "packages.company/custom" }
type Spec struct {
	Version string `toml:"version"`
	Build   string `toml:"build,omitempty"`
	Channel string `toml:"channel,omitempty"`
}

// NewSpec returns a version-only spec. An empty version means AnyVersion.
func NewSpec(version string) Spec {
	if version == "" {
		version = AnyVersion
	}
	return Spec{Version: version}
}

// IsVersionOnly reports whether the spec carries neither a build nor a channel.
func (s Spec) IsVersionOnly() bool {
	return s.Build == "" && s.Channel == ""
}

func (s Spec) String() string {
	if s.IsVersionOnly() {
		return s.Version
	}
	parts := []string{"version=" + s.Version}
	if s.Build != "" {
		parts = append(parts, "build="+s.Build)
	}
	if s.Channel != "" {
		parts = append(parts, "channel="+s.Channel)
	}
	return strings.Join(parts, ", ")
}

// UnmarshalTOML normalizes both declaration forms into a Spec.
func (s *Spec) UnmarshalTOML(data any) error {
	switch v := data.(type) {
	case string:
		*s = NewSpec(v)
		return nil
	case map[string]any:
		spec := NewSpec("")
		for key, value := range v {
			str, ok := value.(string)
			if !ok {
				return fmt.Errorf("spec field %q must be a string, got %T", key, value)
			}
			switch key {
			case "version":
				if str != "" {
					spec.Version = str
				}
			case "build":
				spec.Build = str
			case "channel":
				spec.Channel = str
			default:
				return fmt.Errorf("unknown spec field %q", key)
			}
		}
		*s = spec
		return nil
	default:
		return fmt.Errorf("spec must be a string or a table, got %T", data)
	}
}
