// Package jsonpointer provides JSONPointer an implementation of RFC6901 https://datatracker.ietf.org/doc/html/rfc6901
package jsonpointer

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/speakeasy-api/openapikit/errors"
)

// ErrValidation is returned when the jsonpointer is invalid.
const ErrValidation = errors.Error("validation error")

// JSONPointer represents a JSON Pointer value as defined by RFC6901 https://datatracker.ietf.org/doc/html/rfc6901
type JSONPointer string

var _ fmt.Stringer = (*JSONPointer)(nil)

var tokenRegex = regexp.MustCompile("^(?:[\x00-\x2E\x30-\x7D\x7F-\uffff]|~[01])+$")

// Validate will validate the JSONPointer is valid as per RFC6901.
func (j JSONPointer) Validate() error {
	_, err := j.Parts()
	return err
}

// Parts returns the unescaped reference tokens of the pointer. The root pointer "/" has no parts.
func (j JSONPointer) Parts() ([]string, error) {
	if len(j) == 0 {
		return nil, ErrValidation.Wrapf("jsonpointer must not be empty")
	}

	if j == "/" {
		return nil, nil
	}

	if !strings.HasPrefix(string(j), "/") {
		return nil, ErrValidation.Wrapf("jsonpointer must start with /: %s", string(j))
	}

	rawParts := strings.Split(strings.TrimPrefix(string(j), "/"), "/")
	parts := make([]string, 0, len(rawParts))

	for _, part := range rawParts {
		if len(part) == 0 {
			return nil, ErrValidation.Wrapf("jsonpointer part must not be empty: %s", string(j))
		}

		if !tokenRegex.MatchString(part) {
			return nil, ErrValidation.Wrapf("jsonpointer part must be a valid token [%s]: %s", tokenRegex.String(), string(j))
		}

		parts = append(parts, unescape(part))
	}

	return parts, nil
}

func (j JSONPointer) String() string {
	return string(j)
}

// PartsToJSONPointer will convert the exploded parts of a JSONPointer to a JSONPointer.
func PartsToJSONPointer(parts []string) JSONPointer {
	if len(parts) == 0 {
		return "/"
	}

	var sb strings.Builder
	for _, part := range parts {
		sb.WriteByte('/')
		sb.WriteString(escape(part))
	}
	return JSONPointer(sb.String())
}

// EscapeString escapes a string for use as a reference token in a JSON pointer according to RFC6901.
// It replaces "~" with "~0" and "/" with "~1" as required by RFC 6901.
func EscapeString(s string) string {
	return escape(s)
}

// UnescapeString reverses EscapeString.
func UnescapeString(s string) string {
	return unescape(s)
}

func escape(part string) string {
	return strings.ReplaceAll(strings.ReplaceAll(part, "~", "~0"), "/", "~1")
}

func unescape(part string) string {
	// ~1 must be replaced before ~0 so "~01" decodes to "~1" and not "/".
	return strings.ReplaceAll(strings.ReplaceAll(part, "~1", "/"), "~0", "~")
}
