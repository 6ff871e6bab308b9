// Package errors provides typed error values for pixi-devenv.
//
// Every error raised explicitly by pixi-devenv wraps ErrDevEnv, so callers
// can check for "any devenv error" with a single errors.Is() call, or for a
// specific condition with the narrower sentinel:
//
//	consolidated, err := consolidate.Consolidate(ws)
//	if errors.Is(err, kerrors.ErrCycle) {
//	    // Show the cycle to the user
//	}
//	if errors.Is(err, kerrors.ErrDevEnv) {
//	    // Any configuration problem, exit with status 1
//	}
//
// # Error Categories
//
//   - Graph errors: upstream projects form a cycle (ErrCycle)
//   - Merge errors: incompatible values for the same key (ErrConflictingBuild,
//     ErrConflictingChannel, ErrEnvVarTypeMismatch)
//   - Schema errors: invalid input files (ErrReservedKey, ErrInvalidProjectFile)
//   - Project errors: missing or existing files (ErrDevenvFileNotFound,
//     ErrPixiFileNotFound, ErrAlreadyInitialized)
//
// Wrap errors with the offending values:
//
//	return fmt.Errorf("%w: %s in %s", errors.ErrReservedKey, key, filename)
package errors
