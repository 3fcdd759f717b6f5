// Package errors provides the coded, user facing StoreError together with the familiar
// github.com/pkg/errors API for internal failures.
//
// StoreErrors are returned as plain values from storage, table and command operations. Anything else crossing a
// package boundary should be wrapped with WithStack/Wrap so a logged error always carries a stack trace.
package errors

import (
	stderrors "errors" //nolint: depguard

	"github.com/pkg/errors" //nolint: depguard
)

// New returns an error with the supplied message and the stack trace at the point it was called.
func New(message string) error {
	return errors.New(message)
}

// Errorf formats according to a format specifier and records the stack trace at the point it was called.
func Errorf(format string, args ...interface{}) error {
	return errors.Errorf(format, args...)
}

// Wrap annotates err with a message and a stack trace. If err is nil, Wrap returns nil.
func Wrap(err error, message string) error {
	return errors.Wrap(err, message)
}

// Wrapf annotates err with a formatted message and a stack trace. If err is nil, Wrapf returns nil.
func Wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}

// WithStack annotates err with a stack trace. If err is nil, WithStack returns nil.
func WithStack(err error) error {
	return errors.WithStack(err)
}

// Cause returns the innermost error that does not implement Cause.
func Cause(err error) error {
	return errors.Cause(err)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool { return stderrors.Is(err, target) }

// As finds the first error in err's chain that matches target, and if so, sets target to that error value and
// returns true.
func As(err error, target interface{}) bool { return stderrors.As(err, target) }
