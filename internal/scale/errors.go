package scale

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes scale errors.
type ErrorCode string

const (
	// ErrCodeInvalidArgument indicates an out-of-range or missing input.
	ErrCodeInvalidArgument ErrorCode = "INVALID_ARGUMENT"

	// ErrCodeArithmeticOverflow indicates a result outside the int64 range.
	ErrCodeArithmeticOverflow ErrorCode = "ARITHMETIC_OVERFLOW"

	// ErrCodeTypeMismatch indicates a comparison against a different type.
	ErrCodeTypeMismatch ErrorCode = "TYPE_MISMATCH"
)

// Sentinels for errors.Is. Any *Error with the same code matches.
var (
	ErrInvalidArgument    = &Error{Code: ErrCodeInvalidArgument}
	ErrArithmeticOverflow = &Error{Code: ErrCodeArithmeticOverflow}
	ErrTypeMismatch       = &Error{Code: ErrCodeTypeMismatch}
)

// Error is returned by every failing operation in this package.
// The operation never has partial effects.
type Error struct {
	// Code identifies the error category.
	Code ErrorCode

	// Op names the failing operation, e.g. "plus".
	Op string

	// Message is a human-readable description.
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch {
	case e.Op != "" && e.Message != "":
		return fmt.Sprintf("%s: %s: %s", e.Op, e.Code, e.Message)
	case e.Message != "":
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	default:
		return string(e.Code)
	}
}

// Is matches sentinels by code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == e.Code && t.Op == "" && t.Message == ""
}

// IsInvalidArgument reports whether err is an invalid-argument error.
func IsInvalidArgument(err error) bool {
	return errors.Is(err, ErrInvalidArgument)
}

// IsArithmeticOverflow reports whether err is an overflow error.
func IsArithmeticOverflow(err error) bool {
	return errors.Is(err, ErrArithmeticOverflow)
}

// IsTypeMismatch reports whether err is a type-mismatch error.
func IsTypeMismatch(err error) bool {
	return errors.Is(err, ErrTypeMismatch)
}

func invalidArgument(op, format string, args ...any) *Error {
	return &Error{Code: ErrCodeInvalidArgument, Op: op, Message: fmt.Sprintf(format, args...)}
}

func overflow(op, format string, args ...any) *Error {
	return &Error{Code: ErrCodeArithmeticOverflow, Op: op, Message: fmt.Sprintf(format, args...)}
}

func typeMismatch(op string, want string, got any) *Error {
	return &Error{Code: ErrCodeTypeMismatch, Op: op, Message: fmt.Sprintf("cannot compare %s to %T", want, got)}
}
