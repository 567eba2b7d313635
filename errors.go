package tasklist

import (
	"errors"
	"fmt"
)

// Sentinel errors for tasklist. Use errors.Is to check.
var (
	// ErrValidation is wrapped by every store-side rule violation (bad
	// status, unknown task ids, bad default status, bad sort field).
	ErrValidation = errors.New("validation failed")
	// ErrUnknownTool is wrapped when Dispatch cannot match a tool name
	// after prefix stripping.
	ErrUnknownTool = errors.New("unknown tool")
	// ErrUnknownConvention is wrapped when DescribeTools is asked for a
	// schema convention it does not support.
	ErrUnknownConvention = errors.New("unknown schema convention")
)

// ValidationError is a correctable mistake in what the caller asked for: a
// status outside the store's set, task ids that do not exist, a tool name
// or schema convention nothing answers to. The message is safe to hand back
// to the LLM for self-correction; Error returns it bare so Dispatch can
// pass it through verbatim.
// Err wraps one of the sentinels above for errors.Is.
type ValidationError struct {
	Reason string
	Err    error
}

func (e *ValidationError) Error() string { return e.Reason }

// Unwrap supports errors.Is on wrapped chains (e.g. errors.Is(err, ErrValidation)).
func (e *ValidationError) Unwrap() error { return e.Err }

// ArgumentError reports an argument payload that does not match the tool's
// advertised parameter contract (unknown, missing, or mistyped parameters).
// It signals an integration bug in the calling host rather than a
// correctable model mistake, so Dispatch never converts it to text.
type ArgumentError struct {
	Tool string
	Err  error // underlying schema or decode failure
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("invalid arguments for %s: %v", e.Tool, e.Err)
}

func (e *ArgumentError) Unwrap() error { return e.Err }

// IsValidationError returns true if err is or wraps a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsArgumentError returns true if err is or wraps an ArgumentError.
func IsArgumentError(err error) bool {
	var ae *ArgumentError
	return errors.As(err, &ae)
}

// validationErrorf builds a ValidationError wrapping ErrValidation.
// Used by Store so rule-violation errors stay uniform.
func validationErrorf(format string, args ...any) *ValidationError {
	return &ValidationError{Reason: fmt.Sprintf(format, args...), Err: ErrValidation}
}
