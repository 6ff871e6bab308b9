// Package cmd contains testing utilities shared between command tests.
// This file provides common functions for setting up test environments,
// capturing output, and building a CLI instance to execute.
package cmd

import (
	"bytes"
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"

	"github.com/PolarWolf314/pixi-devenv/internal/configs"
)

// setupTestEnvironment changes into workDir and points the user
// configuration at a temporary directory. Both are restored on cleanup.
func setupTestEnvironment(t *testing.T, workDir string) string {
	t.Helper()
	originalWd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get original working directory: %v", err)
	}
	originalUserSettings := configs.UserDevenvSettings

	if err := os.Chdir(workDir); err != nil {
		t.Fatalf("Failed to change to temp directory: %v", err)
	}
	t.Setenv("NO_COLOR", "1")

	userDir := t.TempDir()
	configs.UserDevenvSettings = &configs.UserSettings{
		UserConfigsPath: filepath.Join(userDir, "config"),
	}

	t.Cleanup(func() {
		if err := os.Chdir(originalWd); err != nil {
			t.Fatalf("Failed to change to original directory: %v", err)
		}
		configs.UserDevenvSettings = originalUserSettings
		ResetGlobalState()
	})
	return configs.UserDevenvSettings.UserConfigsPath
}

// captureOutput captures both stdout and stderr during function execution.
func captureOutput(fn func() error) (string, error) {
	originalStdout := os.Stdout
	originalStderr := os.Stderr

	stdoutReader, stdoutWriter, _ := os.Pipe()
	stderrReader, stderrWriter, _ := os.Pipe()

	os.Stdout = stdoutWriter
	os.Stderr = stderrWriter

	stdoutChan := make(chan string, 1)
	stderrChan := make(chan string, 1)
	copyAll := func(r io.Reader, out chan<- string) {
		var buf bytes.Buffer
		if _, err := io.Copy(&buf, r); err != nil {
			log.Fatalf("Failed to run copy command: %s", err)
		}
		out <- buf.String()
	}
	go copyAll(stdoutReader, stdoutChan)
	go copyAll(stderrReader, stderrChan)

	err := fn()

	stdoutWriter.Close()
	stderrWriter.Close()

	os.Stdout = originalStdout
	os.Stderr = originalStderr

	return <-stdoutChan + <-stderrChan, err
}

// createTestCLI creates a complete CLI instance for testing that runs the
// given arguments.
func createTestCLI(args ...string) *cobra.Command {
	ResetGlobalState()

	rootCmd := &cobra.Command{
		Use:           "pixi-devenv",
		Short:         "Consolidate layered pixi.devenv.toml projects into pixi.toml",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	AddCommands(rootCmd)
	rootCmd.SetArgs(args)
	return rootCmd
}

// runCLI executes the CLI with args and returns its combined output.
func runCLI(args ...string) (string, error) {
	return captureOutput(func() error {
		return createTestCLI(args...).Execute()
	})
}

// writeFile writes contents to root/rel, creating parent directories.
func writeFile(t *testing.T, root, rel, contents string) string {
	t.Helper()
	path := filepath.Join(root, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
	return path
}
