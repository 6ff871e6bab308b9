package utils

import (
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/PolarWolf314/pixi-devenv/internal/project"
)

// FindDevenvRoot traverses up from start to find the nearest directory
// holding a pixi.devenv.toml file. Returns an empty string if none is found.
// Stops searching when it reaches the user's home directory.
func FindDevenvRoot(start string) (string, error) {
	currentDir, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", start, err)
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = ""
	}

	for {
		if homeDir != "" && currentDir == path.Join(homeDir, "..") {
			return "", nil
		}

		exists, err := FileExists(filepath.Join(currentDir, project.DevenvFilename))
		if err != nil {
			return "", err
		}
		if exists {
			return currentDir, nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return "", nil
		}
		currentDir = parentDir
	}
}

// ResolveProjectDir returns the absolute project directory for a command
// argument. Without an argument the nearest project above the working
// directory is used, falling back to the working directory itself.
func ResolveProjectDir(arg string) (string, error) {
	if arg != "" {
		dir, err := filepath.Abs(arg)
		if err != nil {
			return "", fmt.Errorf("failed to resolve %s: %w", arg, err)
		}
		return dir, nil
	}

	workingDir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}
	root, err := FindDevenvRoot(workingDir)
	if err != nil {
		return "", err
	}
	if root == "" {
		return workingDir, nil
	}
	return root, nil
}

// FileExists reports whether path exists and is a regular file.
func FileExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if err == nil {
		return info.Mode().IsRegular(), nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, fmt.Errorf("error checking %s: %w", path, err)
}
