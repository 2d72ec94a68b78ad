package result

import (
	"strings"
)

// Result is the terminal outcome of one pipeline run. Exactly one Result
// is reached per run and there are no transitions between them.
type Result string

// ParseFailed indicates the issue title or body could not be parsed
const ParseFailed Result = "parse_failed"

// ValidationFailed indicates the submitted package does not exist or does
// not load
const ValidationFailed Result = "validation_failed"

// UnexpectedError indicates an internal failure while storing or
// publishing the change
const UnexpectedError Result = "unexpected_error"

// ValidationSuccess indicates the submission was accepted and a pull
// request was opened
const ValidationSuccess Result = "validation_success"

// Results holds every result
var Results = []Result{ParseFailed, ValidationFailed, UnexpectedError, ValidationSuccess}

// LabelName returns the issue label a result maps to
func (r Result) LabelName() string {
	return strings.ReplaceAll(string(r), "_", "/")
}

// IsFailure returns true for every result except ValidationSuccess
func (r Result) IsFailure() bool {
	return r != ValidationSuccess
}

// ExitCode returns the process exit status for a result
func (r Result) ExitCode() int {
	if r.IsFailure() {
		return 1
	}

	return 0
}
