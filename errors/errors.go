// Package errors provides a const-friendly error type and the error kinds reported by the codec.
package errors

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

// ErrSeparator is used to separate the message from the cause in the error message
const ErrSeparator = " -- "

const (
	// ErrMissingField is returned when a required member is absent from a mapping.
	ErrMissingField = Error("missing field")
	// ErrTypeMismatch is returned when a member is present but can't be decoded as any of the expected shapes.
	ErrTypeMismatch = Error("type mismatch")
	// ErrInvalidEnumValue is returned when an enumerated member holds an unrecognized token.
	ErrInvalidEnumValue = Error("invalid enum value")
	// ErrAmbiguousAlternates is returned when both members of an alternate field group hold conflicting values.
	ErrAmbiguousAlternates = Error("ambiguous alternates")
)

// Error provides a string based error type allowing the definition of const errors in packages
type Error string

func (s Error) Error() string {
	return string(s)
}

// Is checks if target error is equivalent to Error
func (s Error) Is(target error) bool {
	return s.Error() == target.Error() || strings.HasPrefix(target.Error(), s.Error()+ErrSeparator)
}

// As will set target errors value to equal Error if they are equivalent
func (s Error) As(target any) bool {
	v := reflect.ValueOf(target).Elem()
	if v.Type().Name() == "Error" && v.CanSet() && v.Kind() == reflect.String {
		v.SetString(string(s))
		return true
	}
	return false
}

// Wrapf will add a formatted cause to this Error.
func (s Error) Wrapf(format string, args ...any) error {
	return wrappedError{cause: fmt.Errorf(format, args...), msg: string(s)}
}

type wrappedError struct {
	cause error
	msg   string
}

func (w wrappedError) Error() string {
	if w.cause != nil {
		return fmt.Sprintf("%s%s%v", w.msg, ErrSeparator, w.cause)
	}
	return w.msg
}

func (w wrappedError) Is(target error) bool {
	return Error(w.msg).Is(target)
}

func (w wrappedError) As(target any) bool {
	return Error(w.msg).As(target)
}

func (w wrappedError) Unwrap() error {
	return w.cause
}

// The below are just wrappers as we are stealing the namespace of the errors package

// Is checks if err is equivalent to target
func Is(err error, target error) bool {
	return errors.Is(err, target)
}

// As will set target errors value to equal Error if they are equivalent
func As(err error, target any) bool {
	return errors.As(err, target)
}
