package marshaller_test

import (
	"context"
	"testing"

	"github.com/speakeasy-api/openapikit/errors"
	"github.com/speakeasy-api/openapikit/marshaller"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

type color string

const (
	colorRed  color = "red"
	colorBlue color = "blue"
)

func TestDecodeScalars_Success(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	s, err := marshaller.DecodeString(ctx, parseNode(t, "42"))
	require.NoError(t, err)
	assert.Equal(t, "42", s)

	b, err := marshaller.DecodeBool(ctx, parseNode(t, "false"))
	require.NoError(t, err)
	assert.False(t, b)

	i, err := marshaller.DecodeInt(ctx, parseNode(t, "-7"))
	require.NoError(t, err)
	assert.Equal(t, int64(-7), i)

	f, err := marshaller.DecodeFloat(ctx, parseNode(t, "3"))
	require.NoError(t, err)
	assert.InDelta(t, 3.0, f, 0)

	f, err = marshaller.DecodeFloat(ctx, parseNode(t, "1.5"))
	require.NoError(t, err)
	assert.InDelta(t, 1.5, f, 0)

	strs, err := marshaller.DecodeStrings(ctx, parseNode(t, "[a, 1, true]"))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "1", "true"}, strs)

	c, err := marshaller.DecodeEnum(colorRed, colorBlue)(ctx, parseNode(t, "blue"))
	require.NoError(t, err)
	assert.Equal(t, colorBlue, c)
}

func TestDecodeScalars_Error(t *testing.T) {
	t.Parallel()

	decodeColor := marshaller.DecodeEnum(colorRed, colorBlue)

	tests := []struct {
		name         string
		src          string
		decode       func(ctx context.Context, node *yaml.Node) error
		expectedKind errors.Error
	}{
		{
			name:         "string from null",
			src:          "~",
			decode:       discard[string](marshaller.DecodeString),
			expectedKind: errors.ErrTypeMismatch,
		},
		{
			name:         "string from mapping",
			src:          "a: 1",
			decode:       discard[string](marshaller.DecodeString),
			expectedKind: errors.ErrTypeMismatch,
		},
		{
			name:         "bool from string",
			src:          `"true"`,
			decode:       discard[bool](marshaller.DecodeBool),
			expectedKind: errors.ErrTypeMismatch,
		},
		{
			name:         "int from float",
			src:          "1.5",
			decode:       discard[int64](marshaller.DecodeInt),
			expectedKind: errors.ErrTypeMismatch,
		},
		{
			name:         "float from string",
			src:          "abc",
			decode:       discard[float64](marshaller.DecodeFloat),
			expectedKind: errors.ErrTypeMismatch,
		},
		{
			name:         "strings from scalar",
			src:          "a",
			decode:       discard[[]string](marshaller.DecodeStrings),
			expectedKind: errors.ErrTypeMismatch,
		},
		{
			name:         "enum unknown token",
			src:          "green",
			decode:       discard(decodeColor),
			expectedKind: errors.ErrInvalidEnumValue,
		},
		{
			name:         "enum from sequence",
			src:          "[red]",
			decode:       discard(decodeColor),
			expectedKind: errors.ErrTypeMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.decode(context.Background(), parseNode(t, tt.src))
			require.ErrorIs(t, err, tt.expectedKind)
		})
	}
}

func TestDecodeValue_Success(t *testing.T) {
	t.Parallel()

	root := parseNode(t, "base: &base {a: 1}\ncopy: *base\n")

	v, err := marshaller.DecodeValue(context.Background(), root.Content[3])
	require.NoError(t, err)
	assert.Equal(t, yaml.MappingNode, v.Kind)
	require.Len(t, v.Content, 2)
	assert.Equal(t, "a", v.Content[0].Value)

	v.Content[1].Value = "2"
	assert.Equal(t, "1", root.Content[1].Content[1].Value)
}

func discard[T any](decode marshaller.DecodeFunc[T]) func(ctx context.Context, node *yaml.Node) error {
	return func(ctx context.Context, node *yaml.Node) error {
		_, err := decode(ctx, node)
		return err
	}
}
