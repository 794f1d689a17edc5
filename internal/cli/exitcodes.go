package cli

import (
	"errors"
	"fmt"

	"github.com/thenoetrevino/hireboard/internal/reconcile"
)

// Exit codes for CLI commands.
// These codes follow Unix conventions and provide consistent error reporting
// across all CLI commands.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitError indicates a general error occurred.
	// Use for: database errors, timeouts, transient service failures.
	ExitError = 1

	// ExitUsage indicates incorrect command usage.
	// Use for: missing required flags or arguments.
	ExitUsage = 2

	// ExitNotFound indicates a requested resource was not found.
	// Use for: unknown candidate or job ids.
	ExitNotFound = 3

	// ExitDataErr indicates invalid or malformed data.
	// Use for: unparseable times or JSON payloads.
	ExitDataErr = 4

	// ExitValidation indicates the request was rejected by a rule.
	// Use for: stale state, forbidden transitions, scheduling conflicts,
	// unknown stages.
	ExitValidation = 5

	// ExitPartial indicates a bulk operation where only some items succeeded
	ExitPartial = 6
)

// ExitCodeError carries the process exit code out of a command. The message
// has already been printed by the formatter when Reported is set.
type ExitCodeError struct {
	Code     int
	Err      error
	Reported bool
}

func (e *ExitCodeError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitCodeError) Unwrap() error { return e.Err }

// Exit wraps err with an exit code, marking it as already reported
func Exit(code int, err error) error {
	return &ExitCodeError{Code: code, Err: err, Reported: true}
}

// ExitCodeFor maps an error to the process exit code
func ExitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitCodeError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	// Service errors carry a code; anything else classifies as transient
	return exitCodeForKind(reconcile.Classify("cli", err).Kind)
}

func exitCodeForKind(k reconcile.Kind) int {
	switch k {
	case reconcile.KindNotFound:
		return ExitNotFound
	case reconcile.KindStaleState, reconcile.KindDomainRule:
		return ExitValidation
	default:
		return ExitError
	}
}
