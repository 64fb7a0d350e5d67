// Package errors provides the error type shared by the odtools status
// packages: a message with an optional cause, compatible with the
// standard errors.Is and errors.As helpers.
//
// Wrapping copies the receiver, so package level sentinels stay
// pristine when call sites attach a cause to them.
package errors

import (
	stderr "errors"
	"fmt"
)

var (
	_ error = New("")
	_ error = Sentinel("")
)

// Sentinel is a constant error.
type Sentinel string

// Error message
func (s Sentinel) Error() string {
	return string(s)
}

// Wrap a cause into an Error carrying this sentinel's message.
func (s Sentinel) Wrap(err error) *Error {
	return &Error{msg: string(s), err: err}
}

// WrapMessage wraps a cause built from a formatted message.
func (s Sentinel) WrapMessage(format string, args ...interface{}) *Error {
	return s.Wrap(fmt.Errorf(format, args...))
}

// Is reports a match when target carries the same message.
func (s Sentinel) Is(target error) bool {
	switch t := target.(type) {
	case Sentinel:
		return s == t
	case *Error:
		return string(s) == t.msg
	}
	return false
}

// New builds an Error from a message.
func New(msg string) *Error {
	return &Error{msg: msg}
}

// Error is an error with an optional cause.
//
// Two Errors match with errors.Is whenever their messages are equal, so a
// wrapped copy of a sentinel still compares positive against the sentinel.
type Error struct {
	msg string
	err error
}

// Error message, with the chain of causes appended.
func (e *Error) Error() string {
	if e.err != nil {
		return e.msg + ": " + e.err.Error()
	}
	return e.msg
}

// Unwrap the cause, if any.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.err
}

// Wrap a cause into a copy of this error. The receiver is left untouched.
func (e *Error) Wrap(err error) *Error {
	return &Error{msg: e.msg, err: err}
}

// WrapMessage wraps a cause built from a formatted message.
func (e *Error) WrapMessage(format string, args ...interface{}) *Error {
	return e.Wrap(fmt.Errorf(format, args...))
}

// Is reports a match when target carries the same message.
func (e *Error) Is(target error) bool {
	if e == target {
		return true
	}
	switch t := target.(type) {
	case *Error:
		return e.msg == t.msg
	case Sentinel:
		return e.msg == string(t)
	}
	return false
}

// As finds the first error in err's chain that matches target, and if so,
// sets target to that error value and returns true
// (a shortcut to the standard library errors.As).
func As(err error, target interface{}) bool {
	return stderr.As(err, target)
}

// Is reports whether any error in err's chain matches target
// (a shortcut to the standard library errors.Is).
func Is(err, target error) bool {
	return stderr.Is(err, target)
}
