package marshaller

import (
	"context"

	"github.com/speakeasy-api/openapikit/values"
	"github.com/speakeasy-api/openapikit/yml"
	"gopkg.in/yaml.v3"
)

// EncodeFunc encodes a T into a node.
type EncodeFunc[T any] func(ctx context.Context, v T) (*yaml.Node, error)

// Marshaller is implemented by models that encode themselves into a node.
type Marshaller interface {
	Marshal(ctx context.Context) (*yaml.Node, error)
}

// ContextualMarshaller is implemented by models whose elided defaults depend on where they appear in a document.
type ContextualMarshaller[C any] interface {
	MarshalFor(ctx context.Context, c C) (*yaml.Node, error)
}

// EncodeModel encodes a model implementing Marshaller.
func EncodeModel[T Marshaller](ctx context.Context, v T) (*yaml.Node, error) {
	return v.Marshal(ctx)
}

func EncodeString(ctx context.Context, s string) (*yaml.Node, error) {
	return yml.CreateStringNode(ctx, s), nil
}

func EncodeBool(_ context.Context, b bool) (*yaml.Node, error) {
	return yml.CreateBoolNode(b), nil
}

func EncodeInt(_ context.Context, i int64) (*yaml.Node, error) {
	return yml.CreateIntNode(i), nil
}

func EncodeFloat(_ context.Context, f float64) (*yaml.Node, error) {
	return yml.CreateFloatNode(f), nil
}

func EncodeStrings(ctx context.Context, s []string) (*yaml.Node, error) {
	return yml.CreateStringSliceNode(ctx, s), nil
}

// EncodeValue emits an opaque value. A nil value is emitted as null.
func EncodeValue(_ context.Context, v values.Value) (*yaml.Node, error) {
	if v == nil {
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}, nil
	}
	return yml.Clone(v), nil
}

// EncodeSlice encodes each element with encode into a sequence.
func EncodeSlice[T any](ctx context.Context, s []T, encode EncodeFunc[T]) (*yaml.Node, error) {
	elements := make([]*yaml.Node, 0, len(s))
	for i, v := range s {
		n, err := encode(WithIndex(ctx, i, nil), v)
		if err != nil {
			return nil, err
		}
		elements = append(elements, n)
	}
	return yml.CreateSliceNode(elements), nil
}

// ObjectBuilder emits the members of a mapping in call order.
// The first encode error is kept and returned by Build; later calls become no-ops.
type ObjectBuilder struct {
	ctx  context.Context
	node *yaml.Node
	err  error
}

// NewObjectBuilder starts an empty mapping.
func NewObjectBuilder(ctx context.Context) *ObjectBuilder {
	return &ObjectBuilder{
		ctx:  ctx,
		node: yml.CreateMapNode(ctx, nil),
	}
}

// Context returns the builder's context.
func (b *ObjectBuilder) Context() context.Context {
	return b.ctx
}

// Fail records err unless an earlier error was already recorded.
func (b *ObjectBuilder) Fail(err error) {
	if b.err == nil {
		b.err = err
	}
}

// Set emits key with an already encoded value.
func (b *ObjectBuilder) Set(key string, value *yaml.Node) {
	if b.err != nil || value == nil {
		return
	}
	yml.AppendMapNodeElement(b.ctx, b.node, key, value)
}

// String emits key when s is set.
func (b *ObjectBuilder) String(key string, s *string) {
	if s == nil {
		return
	}
	b.Set(key, yml.CreateStringNode(b.ctx, *s))
}

// RequiredString always emits key, even when s is empty.
func (b *ObjectBuilder) RequiredString(key string, s string) {
	b.Set(key, yml.CreateStringNode(b.ctx, s))
}

// Strings emits key when s is non-empty.
func (b *ObjectBuilder) Strings(key string, s []string) {
	if len(s) == 0 {
		return
	}
	b.Set(key, yml.CreateStringSliceNode(b.ctx, s))
}

// Bool emits key when v differs from def.
func (b *ObjectBuilder) Bool(key string, v, def bool) {
	if v == def {
		return
	}
	b.Set(key, yml.CreateBoolNode(v))
}

// OptionalBool emits key when v is set, whatever its value.
func (b *ObjectBuilder) OptionalBool(key string, v *bool) {
	if v == nil {
		return
	}
	b.Set(key, yml.CreateBoolNode(*v))
}

// Int emits key when v is set.
func (b *ObjectBuilder) Int(key string, v *int64) {
	EncodeOptional(b, key, v, func(ctx context.Context, i *int64) (*yaml.Node, error) {
		return EncodeInt(ctx, *i)
	})
}

// Float emits key when v is set.
func (b *ObjectBuilder) Float(key string, v *float64) {
	EncodeOptional(b, key, v, func(ctx context.Context, f *float64) (*yaml.Node, error) {
		return EncodeFloat(ctx, *f)
	})
}

// Encode emits key with the result of encode. The field path is extended with key while encoding.
func Encode[T any](b *ObjectBuilder, key string, v T, encode EncodeFunc[T]) {
	if b.err != nil {
		return
	}

	n, err := encode(WithField(b.ctx, key, nil), v)
	if err != nil {
		b.Fail(err)
		return
	}
	b.Set(key, n)
}

// EncodeOptional emits key when v is non-nil.
func EncodeOptional[T any](b *ObjectBuilder, key string, v *T, encode EncodeFunc[*T]) {
	if v == nil {
		return
	}
	Encode(b, key, v, encode)
}

// Build returns the finished mapping or the first recorded error.
func (b *ObjectBuilder) Build() (*yaml.Node, error) {
	if b.err != nil {
		return nil, b.err
	}
	return b.node, nil
}
