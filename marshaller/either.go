package marshaller

import (
	"context"

	"github.com/speakeasy-api/openapikit/errors"
	"github.com/speakeasy-api/openapikit/references"
	"github.com/speakeasy-api/openapikit/values"
	"github.com/speakeasy-api/openapikit/yml"
	"gopkg.in/yaml.v3"
)

// RefKey is the member name that marks a mapping as a reference.
const RefKey = "$ref"

// Referenceable is a field that holds either a reference into a component table or an inline T.
type Referenceable[T any] = values.EitherValue[references.Reference, T]

// IsReferenceNode reports whether node is a mapping declaring a $ref member.
func IsReferenceNode(node *yaml.Node) bool {
	_, _, ok := yml.GetMapElementNodes(context.Background(), yml.ResolveAlias(node), RefKey)
	return ok
}

// DecodeReference decodes a {$ref: <pointer>} mapping.
// Members declared alongside $ref are ignored, as OpenAPI 3.0 requires.
func DecodeReference(ctx context.Context, node *yaml.Node) (references.Reference, error) {
	o, err := NewObject(ctx, node)
	if err != nil {
		return references.Reference{}, err
	}

	ref, err := Required(o, RefKey, DecodeString)
	if err != nil {
		return references.Reference{}, err
	}

	if siblings := len(o.keys) - 1; siblings > 0 {
		GetLogger(ctx).Debug("ignoring members declared alongside $ref", "path", PathFromContext(ctx), "ref", ref, "count", siblings)
	}

	return references.Parse(ref), nil
}

// EncodeReference encodes a reference as a {$ref: <pointer>} mapping.
func EncodeReference(ctx context.Context, ref references.Reference) (*yaml.Node, error) {
	m := yml.CreateMapNode(ctx, nil)
	yml.AppendMapNodeElement(ctx, m, RefKey, yml.CreateStringNode(ctx, ref.String()))
	return m, nil
}

// DecodeReferenceable decodes a mapping with a $ref member as a Reference and anything else with decode.
// When the node is not a reference the error from decode is returned unchanged, which reports a type mismatch
// for nodes of the wrong shape.
func DecodeReferenceable[T any](decode DecodeFunc[*T]) DecodeFunc[*Referenceable[T]] {
	return func(ctx context.Context, node *yaml.Node) (*Referenceable[T], error) {
		if IsReferenceNode(node) {
			ref, err := DecodeReference(ctx, node)
			if err != nil {
				return nil, err
			}
			return values.NewLeft[references.Reference, T](ref), nil
		}

		v, err := decode(ctx, node)
		if err != nil {
			return nil, err
		}
		if v == nil {
			return nil, NewError(ctx, errors.ErrTypeMismatch, node, "expected $ref or value")
		}

		return &Referenceable[T]{Right: v}, nil
	}
}

// EncodeReferenceable encodes the active case of e.
func EncodeReferenceable[T any](encode EncodeFunc[*T]) EncodeFunc[*Referenceable[T]] {
	return func(ctx context.Context, e *Referenceable[T]) (*yaml.Node, error) {
		if !e.IsValid() {
			return nil, NewError(ctx, errors.ErrTypeMismatch, nil, "either value must hold exactly one of a reference or a value")
		}

		if e.IsLeft() {
			return EncodeReference(ctx, *e.Left)
		}
		return encode(ctx, e.Right)
	}
}

// IsEqualReferenceable compares two referenceable fields, using eq for inline values.
func IsEqualReferenceable[T any](a, b *Referenceable[T], eq func(a, b *T) bool) bool {
	return a.IsEqualFunc(b, func(x, y *references.Reference) bool { return *x == *y }, eq)
}
