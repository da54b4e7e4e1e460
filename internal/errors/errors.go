// Package errors is the single import for error handling in the portal.
// Sentinel checks go through the standard library, annotation goes through
// pkg/errors so wrapped failures keep the stack of the first wrap.
package errors

import (
	stderrors "errors"

	pkgerrors "github.com/pkg/errors"
)

// New returns a plain error without a stack trace.
func New(text string) error {
	return stderrors.New(text)
}

// Errorf formats an error and records the caller's stack.
func Errorf(format string, args ...any) error {
	return pkgerrors.Errorf(format, args...)
}

func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

func As(err error, target any) bool {
	return stderrors.As(err, target)
}

func Unwrap(err error) error {
	return stderrors.Unwrap(err)
}

func Join(errs ...error) error {
	return stderrors.Join(errs...)
}

// Wrap annotates err with message and a stack trace. A nil err stays nil.
func Wrap(err error, message string) error {
	return pkgerrors.Wrap(err, message)
}

// Wrapf is Wrap with a format specifier.
func Wrapf(err error, format string, args ...any) error {
	return pkgerrors.Wrapf(err, format, args...)
}

// WithStack records a stack trace without changing the message.
func WithStack(err error) error {
	return pkgerrors.WithStack(err)
}

// WithMessage prefixes err with message, no stack.
func WithMessage(err error, message string) error {
	return pkgerrors.WithMessage(err, message)
}

// Cause walks pkg/errors wrappers down to the root error.
//
//nolint:wrapcheck // passthrough keeps pkg/errors semantics
func Cause(err error) error {
	return pkgerrors.Cause(err)
}
