package marshaller

import (
	"context"

	"github.com/speakeasy-api/openapikit/errors"
	"github.com/speakeasy-api/openapikit/sequencedmap"
	"github.com/speakeasy-api/openapikit/yml"
	"gopkg.in/yaml.v3"
)

// KeyDecodeFunc converts a mapping key into a typed key.
type KeyDecodeFunc[K comparable] func(ctx context.Context, key string) (K, error)

// KeyEncodeFunc converts a typed key into its persisted text.
type KeyEncodeFunc[K comparable] func(key K) string

// StringKey is the identity key codec for string keyed maps.
func StringKey(_ context.Context, key string) (string, error) {
	return key, nil
}

func StringKeyString(key string) string {
	return key
}

// DecodeMap decodes a mapping into an ordered map, inserting entries in declaration order.
// Keys declared more than once keep their first position and take the last value.
func DecodeMap[K comparable, V any](ctx context.Context, node *yaml.Node, decodeKey KeyDecodeFunc[K], decodeValue DecodeFunc[V]) (*sequencedmap.Map[K, V], error) {
	resolved := yml.ResolveAlias(node)
	if resolved == nil || resolved.Kind != yaml.MappingNode {
		return nil, NewError(ctx, errors.ErrTypeMismatch, resolved, "expected object, got %s", yml.Describe(resolved))
	}

	m := sequencedmap.NewWithCapacity[K, V](len(resolved.Content) / 2)

	for i := 0; i+1 < len(resolved.Content); i += 2 {
		keyNode := yml.ResolveAlias(resolved.Content[i])
		valueNode := yml.ResolveAlias(resolved.Content[i+1])

		if keyNode == nil || keyNode.Kind != yaml.ScalarNode {
			return nil, NewError(ctx, errors.ErrTypeMismatch, resolved.Content[i], "expected scalar mapping key, got %s", yml.Describe(keyNode))
		}

		fieldCtx := WithField(ctx, keyNode.Value, valueNode)

		key, err := decodeKey(WithField(ctx, keyNode.Value, keyNode), keyNode.Value)
		if err != nil {
			return nil, err
		}

		value, err := decodeValue(fieldCtx, valueNode)
		if err != nil {
			return nil, err
		}

		m.Set(key, value)
	}

	return m, nil
}

// EncodeMap encodes an ordered map as a mapping in iteration order.
func EncodeMap[K comparable, V any](ctx context.Context, m *sequencedmap.Map[K, V], encodeKey KeyEncodeFunc[K], encodeValue EncodeFunc[V]) (*yaml.Node, error) {
	out := yml.CreateMapNode(ctx, make([]*yaml.Node, 0, m.Len()*2))

	for k, v := range m.All() {
		key := encodeKey(k)

		n, err := encodeValue(WithField(ctx, key, nil), v)
		if err != nil {
			return nil, err
		}

		yml.AppendMapNodeElement(ctx, out, key, n)
	}

	return out, nil
}
