// Package errdefs defines the compiler's error taxonomy. Every failure the
// pipeline can produce is one of the codes below; all of them abort the
// compilation for good, there is no partial output.
package errdefs

import (
	"errors"
	"fmt"
)

// ErrorCode represents a machine-readable error code.
type ErrorCode string

const (
	// CodeShape: a schema node cannot be classified into a shape category.
	CodeShape ErrorCode = "shape"

	// CodeDefaultValue: an optional member lacks a usable default value.
	CodeDefaultValue ErrorCode = "default_value"

	// CodeNaming: a node needs a standalone name and none could be
	// resolved or synthesized.
	CodeNaming ErrorCode = "naming"

	// CodeGeneration: an AST invariant was violated during rendering.
	CodeGeneration ErrorCode = "generation"

	// CodeUnresolvedRef: a $ref marker survived reference resolution.
	CodeUnresolvedRef ErrorCode = "unresolved_ref"
)

// Error is the compiler's error envelope. TypeName and KeyName locate the
// failure within the schema graph when they are known.
type Error struct {
	Code     ErrorCode
	Message  string
	TypeName string
	KeyName  string
}

func (e *Error) Error() string {
	loc := ""
	switch {
	case e.TypeName != "" && e.KeyName != "":
		loc = fmt.Sprintf(" (member %q of %q)", e.KeyName, e.TypeName)
	case e.TypeName != "":
		loc = fmt.Sprintf(" (type %q)", e.TypeName)
	case e.KeyName != "":
		loc = fmt.Sprintf(" (member %q)", e.KeyName)
	}
	return fmt.Sprintf("%s: %s%s", e.Code, e.Message, loc)
}

// New creates an error with the given code.
func New(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf creates an error with the given code and a formatted message.
func Newf(code ErrorCode, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// At returns a copy of the error annotated with a schema location.
func (e *Error) At(typeName, keyName string) *Error {
	dup := *e
	if dup.TypeName == "" {
		dup.TypeName = typeName
	}
	if dup.KeyName == "" {
		dup.KeyName = keyName
	}
	return &dup
}

// CodeOf extracts the error code from err, or "" if err is not an *Error.
func CodeOf(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// IsShape reports whether err is a shape classification error.
func IsShape(err error) bool { return CodeOf(err) == CodeShape }

// IsDefaultValue reports whether err is a default-value error.
func IsDefaultValue(err error) bool { return CodeOf(err) == CodeDefaultValue }

// IsNaming reports whether err is a naming error.
func IsNaming(err error) bool { return CodeOf(err) == CodeNaming }

// IsGeneration reports whether err is a generation error.
func IsGeneration(err error) bool { return CodeOf(err) == CodeGeneration }
