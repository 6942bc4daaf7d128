package openapi

import (
	"context"

	"github.com/speakeasy-api/openapikit/extensions"
	"github.com/speakeasy-api/openapikit/jsonschema/oas3"
	"github.com/speakeasy-api/openapikit/marshaller"
	"github.com/speakeasy-api/openapikit/sequencedmap"
	"github.com/speakeasy-api/openapikit/values"
	"gopkg.in/yaml.v3"
)

// MediaType provides the schema and examples for a media type such as application/json.
type MediaType struct {
	// Schema is the schema defining the content of the request, response or parameter.
	Schema *oas3.JSONSchema
	// Example is an example of the media type. When Examples is set it holds the value of the first inline entry.
	Example values.Value
	// Examples is a map of named examples of the media type.
	Examples *Examples
	// Extensions provides a list of extensions to the MediaType object.
	Extensions *extensions.Extensions
}

// GetSchema returns the value of the Schema field. Returns nil if not set.
func (m *MediaType) GetSchema() *oas3.JSONSchema {
	if m == nil {
		return nil
	}
	return m.Schema
}

func (m *MediaType) Unmarshal(ctx context.Context, node *yaml.Node) error {
	o, err := marshaller.NewObject(ctx, node)
	if err != nil {
		return err
	}

	out := MediaType{
		Schema: marshaller.FieldOr(o, "schema", nil, oas3.DecodeJSONSchema),
	}
	out.Example, out.Examples = decodeExampleGroup(o)
	if err := o.Err(); err != nil {
		return err
	}

	out.Extensions, err = extensions.Decode(o)
	if err != nil {
		return err
	}

	*m = out
	return nil
}

func (m *MediaType) Marshal(ctx context.Context) (*yaml.Node, error) {
	b := marshaller.NewObjectBuilder(ctx)

	marshaller.EncodeOptional(b, "schema", m.Schema, oas3.EncodeJSONSchema)
	encodeExampleGroup(b, m.Example, m.Examples)
	m.Extensions.Encode(b)

	return b.Build()
}

func (m *MediaType) IsEqual(other *MediaType) bool {
	if m == nil || other == nil {
		return m == other
	}

	return oas3.IsEqual(m.Schema, other.Schema) &&
		values.IsEqual(m.Example, other.Example) &&
		isEqualExamples(m.Examples, other.Examples) &&
		m.Extensions.IsEqual(other.Extensions)
}

// Content maps media type names to their description, in declaration order.
type Content = sequencedmap.Map[string, *MediaType]

// NewContent creates an ordered content map.
func NewContent(elements ...*sequencedmap.Element[string, *MediaType]) *Content {
	return sequencedmap.New(elements...)
}

func decodeContent(ctx context.Context, node *yaml.Node) (*Content, error) {
	return marshaller.DecodeMap(ctx, node, marshaller.StringKey, marshaller.DecodeModel[MediaType, *MediaType])
}

func encodeContent(ctx context.Context, c *Content) (*yaml.Node, error) {
	return marshaller.EncodeMap(ctx, c, marshaller.StringKeyString, marshaller.EncodeModel[*MediaType])
}

func isEqualContent(a, b *Content) bool {
	return a.IsEqualFunc(b, (*MediaType).IsEqual)
}
