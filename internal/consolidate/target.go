package consolidate

import (
	"slices"
	"strings"
)

// TargetMatchesPlatforms reports whether target can apply to any of the
// given platforms. An empty platform list matches every target.
//
// Besides exact platform names, target accepts the selectors win (windows),
// linux, osx (macos) and unix, case-insensitively.
func TargetMatchesPlatforms(target string, platforms []string) bool {
	if len(platforms) == 0 || slices.Contains(platforms, target) {
		return true
	}
	switch strings.ToLower(target) {
	case "win", "windows":
		return anyPlatform(platforms, hasPrefix("win"))
	case "linux":
		return anyPlatform(platforms, hasPrefix("linux"))
	case "osx", "macos":
		return anyPlatform(platforms, hasPrefix("osx"))
	case "unix":
		return anyPlatform(platforms, func(p string) bool { return !strings.HasPrefix(p, "win") })
	}
	return false
}

func hasPrefix(prefix string) func(string) bool {
	return func(platform string) bool {
		return strings.HasPrefix(platform, prefix)
	}
}

func anyPlatform(platforms []string, match func(string) bool) bool {
	return slices.ContainsFunc(platforms, match)
}
