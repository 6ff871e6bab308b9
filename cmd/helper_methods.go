package cmd

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/briandowns/spinner"

	kerrors "github.com/PolarWolf314/pixi-devenv/internal/errors"
	"github.com/PolarWolf314/pixi-devenv/internal/ui"
	"github.com/PolarWolf314/pixi-devenv/internal/utils"
)

// startSpinner creates and starts a spinner for long-running operations.
// The spinner only runs when stdout is a terminal and neither --verbose nor
// --debug is set, so it never interleaves with log output.
//
// spinner.FinalMSG values do not need trailing newlines. The cleanup
// function adds one before printing the final message.
func startSpinner(message string) (*spinner.Spinner, func()) {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " " + message
	if err := s.Color("cyan"); err != nil {
		Logger.Debugf("Failed to set spinner color: %v", err)
	}

	animate := !verbose && !debug && utils.IsStdoutTerminal()
	if animate {
		Logger.Debugf("Starting spinner with message: %s", message)
		s.Start()
		log.SetOutput(io.Discard)
	} else {
		Logger.Infof("%s", strings.TrimSuffix(message, "..."))
	}

	cleanup := func() {
		if animate {
			log.SetOutput(os.Stderr)
		}

		finalMsg := ""
		if s.FinalMSG != "" {
			finalMsg = ui.EnsureNewline(s.FinalMSG)
			// Cleared so Stop does not print it on the spinner line.
			s.FinalMSG = ""
		}

		if animate {
			s.Stop()
		}

		// Printed to stdout for tests to capture.
		if finalMsg != "" {
			fmt.Print(finalMsg)
		}
	}

	return s, cleanup
}

// projectDir resolves the project directory argument of a command.
func projectDir(args []string) (string, error) {
	arg := ""
	if len(args) > 0 {
		arg = args[0]
	}
	dir, err := utils.ResolveProjectDir(arg)
	if err != nil {
		return "", Logger.ErrorfAndReturn("Failed to resolve project directory: %w", err)
	}
	Logger.Debugf("Project directory: %s", dir)
	return dir, nil
}

// failureHint returns the follow-up suggestion for a workflow error, if any.
func failureHint(err error) string {
	switch {
	case errors.Is(err, kerrors.ErrDevenvFileNotFound), errors.Is(err, kerrors.ErrPixiFileNotFound):
		return ui.Hint("Run " + ui.Code.Sprint("pixi-devenv init") + " to create the project files")
	case errors.Is(err, kerrors.ErrAlreadyInitialized):
		return ui.Hint("Run " + ui.Code.Sprint("pixi-devenv update") + " to regenerate pixi.toml")
	case errors.Is(err, kerrors.ErrCycle):
		return ui.Hint("Check the " + ui.Code.Sprint("devenv.upstream") + " entries of the listed projects")
	case errors.Is(err, kerrors.ErrConflictingBuild), errors.Is(err, kerrors.ErrConflictingChannel):
		return ui.Hint("Declare the package with the same build and channel in every project")
	case errors.Is(err, kerrors.ErrUnsupportedFormat):
		return ui.Hint("Use " + ui.Code.Sprint("--format toml") + ", " + ui.Code.Sprint("json") + " or " + ui.Code.Sprint("yaml"))
	}
	return ""
}

// printHint prints the follow-up suggestion for err to stderr.
func printHint(err error) {
	if hint := failureHint(err); hint != "" {
		fmt.Fprintln(os.Stderr, hint)
	}
}

// unknownKeyWarnings formats one warning line per file with ignored keys.
func unknownKeyWarnings(unknown map[string][]string, files []string) string {
	var b strings.Builder
	for _, file := range files {
		keys, ok := unknown[file]
		if !ok {
			continue
		}
		b.WriteString(ui.Warning.Sprint("⚠") + " Ignored unknown keys in " + ui.Path.Sprint(file) + ": " +
			strings.Join(keys, ", ") + "\n")
	}
	return b.String()
}
