// Package errors provides the coded error type shared by every gridsolve
// package. A code separates malformed input from conditions inside the
// constraint solver, which callers never see.
//
// # Error Codes
//
// Only [ErrCodeInvalidConfig] is ever returned from the public layout entry
// points. The solver codes ([ErrCodeInfeasible], [ErrCodeSolverUnavailable],
// [ErrCodeDegenerate]) are produced by the constraint machinery and consumed
// by the layout facade, which falls back to plain grid arithmetic instead of
// failing.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidConfig, "wratios has %d entries, want %d", n, cols)
//	if errors.IsConfiguration(err) {
//	    return err
//	}
//
//	err = errors.Wrap(errors.ErrCodeDegenerate, cause, "simplex failed")
//	if errors.IsSolverFailure(err) {
//	    // use the grid fallback
//	}
package errors

import (
	"errors"
	"fmt"
)

// Code classifies an Error. Codes are stable strings suitable for logs.
type Code string

const (
	// Rejected input
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"

	// Raised inside the solver and answered by the grid positioner
	ErrCodeInfeasible        Code = "LAYOUT_INFEASIBLE"
	ErrCodeSolverUnavailable Code = "SOLVER_UNAVAILABLE"
	ErrCodeDegenerate        Code = "NUMERICAL_DEGENERACY"

	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Recoverable reports whether the layout facade answers errors with code c by
// falling back to grid arithmetic.
func (c Code) Recoverable() bool {
	switch c {
	case ErrCodeInfeasible, ErrCodeSolverUnavailable, ErrCodeDegenerate:
		return true
	}
	return false
}

// Error carries a Code, a message and an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

// Error renders "CODE: message" followed by the cause, if any.
func (e *Error) Error() string {
	msg := string(e.Code) + ": " + e.Message
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Cause }

// New returns an Error with a formatted message and no cause.
func New(code Code, format string, args ...any) *Error {
	return Wrap(code, nil, format, args...)
}

// Wrap returns an Error with a formatted message around cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// as finds the outermost *Error in err's chain.
func as(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}

// Is reports whether the outermost *Error in err's chain has code.
func Is(err error, code Code) bool {
	e, ok := as(err)
	return ok && e.Code == code
}

// GetCode returns the code of the outermost *Error in err's chain, or "".
func GetCode(err error) Code {
	if e, ok := as(err); ok {
		return e.Code
	}
	return ""
}

// UserMessage returns the message of a coded error without its code, or
// err.Error() for any other error.
func UserMessage(err error) string {
	if e, ok := as(err); ok {
		return e.Message
	}
	return err.Error()
}

// IsConfiguration reports whether err is a ConfigurationError: malformed
// arrangement, dimensions, spacing, ratios or panel flags.
func IsConfiguration(err error) bool { return Is(err, ErrCodeInvalidConfig) }

// IsInfeasible reports whether the required constraints contradict each other.
func IsInfeasible(err error) bool { return Is(err, ErrCodeInfeasible) }

// IsUnavailable reports whether the constraint solver cannot run at all.
func IsUnavailable(err error) bool { return Is(err, ErrCodeSolverUnavailable) }

// IsDegenerate reports whether a solve produced unusable numbers.
func IsDegenerate(err error) bool { return Is(err, ErrCodeDegenerate) }

// IsSolverFailure reports whether err is any condition the layout facade
// recovers from by falling back.
func IsSolverFailure(err error) bool { return GetCode(err).Recoverable() }
