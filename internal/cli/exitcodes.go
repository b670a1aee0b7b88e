package cli

import (
	"errors"

	"github.com/yaklabco/triviafmt/pkg/runner"
)

// Exit codes for triviafmt.
const (
	// ExitSuccess indicates successful execution with nothing left to format.
	ExitSuccess = 0

	// ExitFormattingNeeded indicates that --check found unformatted files.
	ExitFormattingNeeded = 1

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates that one or more files could not be read or written.
	ExitIOError = 74
)

// ErrFormattingNeeded is returned by fmt --check when files need formatting.
var ErrFormattingNeeded = errors.New("files need formatting")

// ExitError carries the process exit code for a failed command.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

func exitError(code int, err error) error {
	if err == nil {
		return nil
	}
	return &ExitError{Code: code, Err: err}
}

// ExitCode maps an error returned by a command to an exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	if errors.Is(err, ErrFormattingNeeded) {
		return ExitFormattingNeeded
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitInternalError
}

// ExitCodeFromResult determines the exit code of a fmt run. Pending changes
// only fail the run in check mode.
func ExitCodeFromResult(result *runner.Result, pending int, check bool) int {
	if result == nil {
		return ExitSuccess
	}
	if result.HasErrors() {
		return ExitIOError
	}
	if check && pending > 0 {
		return ExitFormattingNeeded
	}
	return ExitSuccess
}
