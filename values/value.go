// Package values provides the generic union type used for referenceable fields and the opaque value payload.
package values

import (
	"github.com/speakeasy-api/openapikit/yml"
	"gopkg.in/yaml.v3"
)

// Value is a raw, untyped document value such as an example payload or a default.
type Value = *yaml.Node

// IsEqual compares two values structurally, ignoring formatting.
func IsEqual(a, b Value) bool {
	return yml.EqualNodes(a, b)
}

// FromAny creates a Value from any Go value yaml.v3 can encode.
func FromAny(v any) (Value, error) {
	var node yaml.Node
	if err := node.Encode(v); err != nil {
		return nil, err
	}
	return &node, nil
}
