package marshaller

import (
	"context"
	"fmt"
	"strings"

	"github.com/speakeasy-api/openapikit/errors"
	"gopkg.in/yaml.v3"
)

// Error is a decode failure localized to a field path and, when known, a line and column in the source.
// It matches its Kind with errors.Is, eg. errors.Is(err, errors.ErrMissingField).
type Error struct {
	// Kind is one of errors.ErrMissingField, errors.ErrTypeMismatch, errors.ErrInvalidEnumValue or errors.ErrAmbiguousAlternates.
	Kind errors.Error
	// Path is the dotted path of the field that failed, eg. "responses.200.description".
	Path string
	// Line is the 1-based line of the offending node, 0 if unknown.
	Line int
	// Column is the 1-based column of the offending node, 0 if unknown.
	Column int
	// Message describes the failure.
	Message string
}

var _ error = (*Error)(nil)

func (e *Error) Error() string {
	var sb strings.Builder

	if e.Line > 0 {
		fmt.Fprintf(&sb, "[%d:%d] ", e.Line, e.Column)
	}
	if e.Path != "" {
		sb.WriteString(e.Path)
		sb.WriteString(": ")
	}
	sb.WriteString(string(e.Kind))
	if e.Message != "" {
		sb.WriteString(errors.ErrSeparator)
		sb.WriteString(e.Message)
	}

	return sb.String()
}

func (e *Error) Unwrap() error {
	return e.Kind
}

// NewError creates an Error of the given kind for the field at the context's current path.
// node may be nil when the field is absent; the nearest known position is used instead.
func NewError(ctx context.Context, kind errors.Error, node *yaml.Node, format string, args ...any) *Error {
	e := &Error{
		Kind:    kind,
		Path:    PathFromContext(ctx),
		Message: fmt.Sprintf(format, args...),
	}

	if node == nil {
		node = positionFromContext(ctx)
	}
	if node != nil {
		e.Line = node.Line
		e.Column = node.Column
	}

	return e
}

// MissingFieldError reports that key is required but absent from the mapping at the context's current path.
func MissingFieldError(ctx context.Context, parent *yaml.Node, key string) *Error {
	e := NewError(ctx, errors.ErrMissingField, parent, "%s is required", key)
	e.Path = joinPath(e.Path, key)
	return e
}
