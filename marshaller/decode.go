package marshaller

import (
	"context"
	"slices"
	"strings"

	"github.com/speakeasy-api/openapikit/errors"
	"github.com/speakeasy-api/openapikit/values"
	"github.com/speakeasy-api/openapikit/yml"
	"gopkg.in/yaml.v3"
)

// DecodeFunc decodes a node into a T. ctx carries the field path used in errors.
type DecodeFunc[T any] func(ctx context.Context, node *yaml.Node) (T, error)

// Unmarshaller is implemented by models that decode themselves from a node.
type Unmarshaller interface {
	Unmarshal(ctx context.Context, node *yaml.Node) error
}

// ContextualUnmarshaller is implemented by models whose defaults depend on where they appear in a document.
type ContextualUnmarshaller[C any] interface {
	UnmarshalFor(ctx context.Context, node *yaml.Node, c C) error
}

// DecodeModel returns a DecodeFunc-compatible decoder for a model type.
func DecodeModel[T any, PT interface {
	*T
	Unmarshaller
}](ctx context.Context, node *yaml.Node) (*T, error) {
	var v T
	if err := PT(&v).Unmarshal(ctx, node); err != nil {
		return nil, err
	}
	return &v, nil
}

// DecodeString decodes any non-null scalar as its textual value.
func DecodeString(ctx context.Context, node *yaml.Node) (string, error) {
	resolved := yml.ResolveAlias(node)
	if resolved == nil || resolved.Kind != yaml.ScalarNode || resolved.ShortTag() == "!!null" {
		return "", NewError(ctx, errors.ErrTypeMismatch, resolved, "expected string, got %s", yml.Describe(resolved))
	}
	return resolved.Value, nil
}

// DecodeBool decodes a boolean scalar.
func DecodeBool(ctx context.Context, node *yaml.Node) (bool, error) {
	resolved := yml.ResolveAlias(node)
	if resolved == nil || resolved.Kind != yaml.ScalarNode || resolved.ShortTag() != "!!bool" {
		return false, NewError(ctx, errors.ErrTypeMismatch, resolved, "expected bool, got %s", yml.Describe(resolved))
	}

	var b bool
	if err := resolved.Decode(&b); err != nil {
		return false, NewError(ctx, errors.ErrTypeMismatch, resolved, "expected bool: %s", err.Error())
	}
	return b, nil
}

// DecodeInt decodes an integer scalar.
func DecodeInt(ctx context.Context, node *yaml.Node) (int64, error) {
	resolved := yml.ResolveAlias(node)
	if resolved == nil || resolved.Kind != yaml.ScalarNode || resolved.ShortTag() != "!!int" {
		return 0, NewError(ctx, errors.ErrTypeMismatch, resolved, "expected int, got %s", yml.Describe(resolved))
	}

	var i int64
	if err := resolved.Decode(&i); err != nil {
		return 0, NewError(ctx, errors.ErrTypeMismatch, resolved, "expected int: %s", err.Error())
	}
	return i, nil
}

// DecodeFloat decodes any number scalar.
func DecodeFloat(ctx context.Context, node *yaml.Node) (float64, error) {
	resolved := yml.ResolveAlias(node)
	if resolved == nil || resolved.Kind != yaml.ScalarNode || (resolved.ShortTag() != "!!int" && resolved.ShortTag() != "!!float") {
		return 0, NewError(ctx, errors.ErrTypeMismatch, resolved, "expected number, got %s", yml.Describe(resolved))
	}

	var f float64
	if err := resolved.Decode(&f); err != nil {
		return 0, NewError(ctx, errors.ErrTypeMismatch, resolved, "expected number: %s", err.Error())
	}
	return f, nil
}

// DecodeStrings decodes a sequence of strings.
func DecodeStrings(ctx context.Context, node *yaml.Node) ([]string, error) {
	return DecodeSlice(ctx, node, DecodeString)
}

// DecodeEnum returns a decoder accepting only the allowed tokens.
func DecodeEnum[T ~string](allowed ...T) DecodeFunc[T] {
	return func(ctx context.Context, node *yaml.Node) (T, error) {
		s, err := DecodeString(ctx, node)
		if err != nil {
			return "", err
		}

		if !slices.Contains(allowed, T(s)) {
			tokens := make([]string, 0, len(allowed))
			for _, a := range allowed {
				tokens = append(tokens, string(a))
			}
			return "", NewError(ctx, errors.ErrInvalidEnumValue, node, "%q is not one of [%s]", s, strings.Join(tokens, ", "))
		}

		return T(s), nil
	}
}

// DecodeValue captures any node as an opaque value. Aliases are expanded so the value stands on its own.
func DecodeValue(ctx context.Context, node *yaml.Node) (values.Value, error) {
	resolved := yml.ResolveAlias(node)
	if resolved == nil {
		return nil, NewError(ctx, errors.ErrTypeMismatch, nil, "expected a value")
	}
	return yml.Clone(resolved), nil
}

// DecodeSlice decodes a sequence, decoding each element with decode.
func DecodeSlice[T any](ctx context.Context, node *yaml.Node, decode DecodeFunc[T]) ([]T, error) {
	resolved := yml.ResolveAlias(node)
	if resolved == nil || resolved.Kind != yaml.SequenceNode {
		return nil, NewError(ctx, errors.ErrTypeMismatch, resolved, "expected sequence, got %s", yml.Describe(resolved))
	}

	out := make([]T, 0, len(resolved.Content))
	for i, elem := range resolved.Content {
		elem = yml.ResolveAlias(elem)
		v, err := decode(WithIndex(ctx, i, elem), elem)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}

	return out, nil
}
