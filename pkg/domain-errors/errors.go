// Package domainerrors provides coded domain errors.
//
// Domain errors carry a stable Code that callers branch on without string
// matching. Use New for fresh validation/domain failures and Wrap to attach a
// code and context to an underlying error. Both integrate with the stdlib
// errors package: Unwrap exposes the cause, and HasCode walks the chain.
package domainerrors

import (
	"errors"
	"fmt"
)

// Code classifies a domain error for caller branching.
type Code string

const (
	// CodeInvalidInput marks input rejected at a trust boundary.
	CodeInvalidInput Code = "invalid_input"
	// CodeValidation marks input that parsed but failed domain validation.
	CodeValidation Code = "validation"
	// CodeInvariantViolation marks an operation that would break a domain invariant.
	CodeInvariantViolation Code = "invariant_violation"
	// CodeNotFound marks a missing domain entity.
	CodeNotFound Code = "not_found"
	// CodeConflict marks a uniqueness or state conflict.
	CodeConflict Code = "conflict"
	// CodeInternal marks an unexpected failure callers cannot act on.
	CodeInternal Code = "internal"
)

// Error is a domain error with a code, a message, and an optional cause.
type Error struct {
	code  Code
	msg   string
	cause error
}

// New creates a domain error with the given code and message.
func New(code Code, msg string) error {
	return &Error{code: code, msg: msg}
}

// Wrap attaches a code and message to an underlying error.
// A nil err returns nil so call sites can wrap unconditionally.
func Wrap(err error, code Code, msg string) error {
	if err == nil {
		return nil
	}
	return &Error{code: code, msg: msg, cause: err}
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.code, e.msg, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.code, e.msg)
}

// Unwrap exposes the cause for errors.Is / errors.As chains.
func (e *Error) Unwrap() error {
	return e.cause
}

// Code returns the error's classification code.
func (e *Error) Code() Code {
	return e.code
}

// HasCode reports whether any error in the chain carries the given code.
func HasCode(err error, code Code) bool {
	var dErr *Error
	for errors.As(err, &dErr) {
		if dErr.code == code {
			return true
		}
		err = dErr.cause
	}
	return false
}

// Is is a readability alias for HasCode, for assertion-heavy test code.
func Is(err error, code Code) bool {
	return HasCode(err, code)
}

// GetCode returns the outermost domain error code, or CodeInternal when the
// error is not a domain error. Returns the zero Code for nil.
func GetCode(err error) Code {
	if err == nil {
		return ""
	}
	var dErr *Error
	if errors.As(err, &dErr) {
		return dErr.code
	}
	return CodeInternal
}
