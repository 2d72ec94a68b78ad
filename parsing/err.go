package parsing

import (
	"fmt"
)

// ParseError provides details about a failure to parse an issue submission.
// ParseErrors are meant to be presented to submitters.
// All string fields will be interpreted with Markdown formatting.
type ParseError struct {
	// What indicates the object that failed to be parsed.
	// This field does not have to provide context about what is being parsed. Just
	// what part of the parsing process failed.
	What string

	// Why indicates why the object failed to be parsed
	Why string

	// FixInstructions for the submitter to remedy this error
	// Leave this field blank if there is nothing the submitter can do to fix
	// the issue, ex., internal server error
	FixInstructions string

	// InternalError is a non user presentable error which will be logged for
	// debug purposes. Can be nil if error is entirely caused by user's input.
	InternalError error
}

// Error returns an internal error string which should not be shown to the user
func (e ParseError) Error() string {
	if e.InternalError != nil {
		return fmt.Sprintf("%s (%s)", e.UserError(), e.InternalError.Error())
	} else {
		return e.UserError()
	}
}

// UserError returns an error string meant to be displayed to the user
func (e ParseError) UserError() string {
	if e.FixInstructions == "" {
		return fmt.Sprintf("failed to parse %s: %s", e.What, e.Why)
	}

	return fmt.Sprintf("failed to parse %s: %s: %s",
		e.What, e.Why, e.FixInstructions)
}
