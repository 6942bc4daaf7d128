package marshaller

import (
	"context"
	"iter"

	"github.com/speakeasy-api/openapikit/errors"
	"github.com/speakeasy-api/openapikit/values"
	"github.com/speakeasy-api/openapikit/yml"
	"gopkg.in/yaml.v3"
)

// Object is a read cursor over a mapping node. Lookups are O(1); iteration follows declaration order.
type Object struct {
	ctx   context.Context
	node  *yaml.Node
	index map[string]int
	keys  []string
	err   error
}

// NewObject wraps a mapping node. Any other node kind is a type mismatch.
// When a key is declared more than once the last declaration wins.
func NewObject(ctx context.Context, node *yaml.Node) (*Object, error) {
	resolved := yml.ResolveDocument(node)
	if resolved == nil || resolved.Kind != yaml.MappingNode {
		return nil, NewError(ctx, errors.ErrTypeMismatch, resolved, "expected object, got %s", yml.Describe(resolved))
	}

	o := &Object{
		ctx:   ctx,
		node:  resolved,
		index: make(map[string]int, len(resolved.Content)/2),
		keys:  make([]string, 0, len(resolved.Content)/2),
	}

	for i := 0; i+1 < len(resolved.Content); i += 2 {
		keyNode := yml.ResolveAlias(resolved.Content[i])
		if keyNode == nil || keyNode.Kind != yaml.ScalarNode {
			return nil, NewError(ctx, errors.ErrTypeMismatch, resolved.Content[i], "expected scalar mapping key, got %s", yml.Describe(keyNode))
		}

		key := keyNode.Value
		if _, ok := o.index[key]; ok {
			GetLogger(ctx).Warn("duplicate mapping key, using last declaration", "path", PathFromContext(ctx), "key", key, "line", keyNode.Line)
		} else {
			o.keys = append(o.keys, key)
		}
		o.index[key] = i
	}

	return o, nil
}

// Node returns the underlying mapping node.
func (o *Object) Node() *yaml.Node {
	return o.node
}

// Context returns the context the object was opened with.
func (o *Object) Context() context.Context {
	return o.ctx
}

// Has reports whether key is declared.
func (o *Object) Has(key string) bool {
	_, ok := o.index[key]
	return ok
}

// Get returns the value node for key along with a context positioned at that field.
func (o *Object) Get(key string) (context.Context, *yaml.Node, bool) {
	i, ok := o.index[key]
	if !ok {
		return WithField(o.ctx, key, nil), nil, false
	}

	valueNode := yml.ResolveAlias(o.node.Content[i+1])
	return WithField(o.ctx, key, valueNode), valueNode, true
}

// Keys iterates the declared keys in document order.
func (o *Object) Keys() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, k := range o.keys {
			if !yield(k) {
				return
			}
		}
	}
}

// Required decodes a member that must be present.
func Required[T any](o *Object, key string, decode DecodeFunc[T]) (T, error) {
	fieldCtx, node, ok := o.Get(key)
	if !ok {
		var zero T
		return zero, MissingFieldError(o.ctx, o.node, key)
	}

	return decode(fieldCtx, node)
}

// Optional decodes a member if present, returning nil when absent.
func Optional[T any](o *Object, key string, decode DecodeFunc[T]) (*T, error) {
	fieldCtx, node, ok := o.Get(key)
	if !ok {
		return nil, nil
	}

	v, err := decode(fieldCtx, node)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// Fail records err unless an earlier error was already recorded.
func (o *Object) Fail(err error) {
	if o.err == nil {
		o.err = err
	}
}

// Err returns the first error recorded by Fail or by the Field helpers.
func (o *Object) Err() error {
	return o.err
}

// Field decodes an optional member, recording any error on the object. Once an error is recorded later calls return nil.
func Field[T any](o *Object, key string, decode DecodeFunc[T]) *T {
	if o.err != nil {
		return nil
	}

	v, err := Optional(o, key, decode)
	if err != nil {
		o.Fail(err)
		return nil
	}
	return v
}

// FieldOr decodes an optional member, returning def when it is absent or an error was recorded.
func FieldOr[T any](o *Object, key string, def T, decode DecodeFunc[T]) T {
	v := Field(o, key, decode)
	if v == nil {
		return def
	}
	return *v
}

// RequiredField decodes a member that must be present, recording a missing field error on the object when absent.
func RequiredField[T any](o *Object, key string, decode DecodeFunc[T]) T {
	var zero T
	if o.err != nil {
		return zero
	}

	v, err := Required(o, key, decode)
	if err != nil {
		o.Fail(err)
		return zero
	}
	return v
}

// ValueField captures an optional member as an opaque value, nil when absent.
func ValueField(o *Object, key string) values.Value {
	v := Field(o, key, DecodeValue)
	if v == nil {
		return nil
	}
	return *v
}
