package project

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	kerrors "github.com/PolarWolf314/pixi-devenv/internal/errors"
)

// devenvFile is the schema of a pixi.devenv.toml file. Every key lives
// under the [devenv] table.
type devenvFile struct {
	Devenv devenvTable `toml:"devenv"`
}

type devenvTable struct {
	Channels  []string   `toml:"channels"`
	Platforms []string   `toml:"platforms"`
	Upstream  []Upstream `toml:"upstream"`
	Aspect
	Target  map[string]Aspect       `toml:"target"`
	Feature map[string]featureTable `toml:"feature"`
	Inherit Inheritance             `toml:"inherit"`
}

type featureTable struct {
	Aspect
	Target map[string]Aspect `toml:"target"`
}

var aspectKeys = map[string]bool{
	"dependencies":      true,
	"pypi-dependencies": true,
	"constraints":       true,
	"env-vars":          true,
}

var inheritKeys = map[string]bool{
	"dependencies":      true,
	"pypi-dependencies": true,
	"env-vars":          true,
	"features":          true,
}

// reservedKeys must never be declared in a pixi.devenv.toml file.
var reservedKeys = []struct {
	key    string
	reason string
}{
	{"name", "it is derived from the directory name"},
	{"environments", "define environments directly in pixi.toml"},
}

// FromFile loads the project defined by a pixi.devenv.toml file.
func FromFile(filename string) (*Project, error) {
	absolute, err := filepath.Abs(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", filename, err)
	}
	contents, err := os.ReadFile(absolute)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", kerrors.ErrDevenvFileNotFound, absolute)
		}
		return nil, fmt.Errorf("failed to read %s: %w", absolute, err)
	}
	return Parse(absolute, contents)
}

// Parse decodes the contents of a pixi.devenv.toml file located at filename.
// The project name is the name of the directory holding filename.
func Parse(filename string, contents []byte) (*Project, error) {
	var file devenvFile
	md, err := toml.Decode(string(contents), &file)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", kerrors.ErrInvalidProjectFile, filename, err)
	}
	if !md.IsDefined("devenv") {
		return nil, fmt.Errorf("%w: %s: missing [devenv] table", kerrors.ErrInvalidProjectFile, filename)
	}
	for _, reserved := range reservedKeys {
		if md.IsDefined("devenv", reserved.key) {
			return nil, fmt.Errorf("%w: devenv.%s in %s should not be defined, %s",
				kerrors.ErrReservedKey, reserved.key, filename, reserved.reason)
		}
	}

	table := file.Devenv
	features := make(map[string]Feature, len(table.Feature))
	for name, feature := range table.Feature {
		features[name] = Feature{Aspect: feature.Aspect, Target: feature.Target}
	}

	return &Project{
		Name:        Name(filepath.Base(filepath.Dir(filename))),
		Filename:    filename,
		Channels:    table.Channels,
		Platforms:   table.Platforms,
		Upstream:    table.Upstream,
		Aspect:      table.Aspect,
		Target:      table.Target,
		Feature:     features,
		Inherit:     table.Inherit,
		UnknownKeys: unknownKeys(md.Keys()),
	}, nil
}

// unknownKeys returns the outermost keys that are not part of the schema.
func unknownKeys(keys []toml.Key) []string {
	var unknown []string
	for _, key := range keys {
		if isKnownKey(key) {
			continue
		}
		name := key.String()
		covered := false
		for _, reported := range unknown {
			if strings.HasPrefix(name, reported+".") {
				covered = true
				break
			}
		}
		if !covered {
			unknown = append(unknown, name)
		}
	}
	return unknown
}

func isKnownKey(key toml.Key) bool {
	if key[0] != "devenv" {
		return false
	}
	if len(key) == 1 {
		return true
	}
	switch key[1] {
	case "channels", "platforms", "upstream":
		return true
	case "target":
		return len(key) <= 3 || aspectKeys[key[3]]
	case "feature":
		if len(key) <= 3 || aspectKeys[key[3]] {
			return true
		}
		return key[3] == "target" && (len(key) <= 5 || aspectKeys[key[5]])
	case "inherit":
		return len(key) <= 2 || inheritKeys[key[2]]
	}
	return aspectKeys[key[1]]
}
