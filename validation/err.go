package validation

import (
	"fmt"
)

// ValidationError indicates a submission references a package which does not
// exist or cannot be loaded. Validation errors are recoverable and are
// reported back to the submitter.
type ValidationError struct {
	// Reason describes what check failed
	Reason string

	// Output is the captured output of the sandbox load test, may
	// be empty
	Output string
}

// Error implements error
func (e ValidationError) Error() string {
	if e.Output == "" {
		return e.Reason
	}

	return fmt.Sprintf("%s: %s", e.Reason, e.Output)
}
