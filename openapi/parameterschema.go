package openapi

import (
	"context"

	"github.com/speakeasy-api/openapikit/jsonschema/oas3"
	"github.com/speakeasy-api/openapikit/marshaller"
	"github.com/speakeasy-api/openapikit/values"
	"gopkg.in/yaml.v3"
)

// ParameterSchema is the type and serialization of a parameter or header value.
//
// Its members are written inline in the parameter or header object. Style and Explode have defaults that
// depend on the Location the value is used at, so it is decoded with UnmarshalFor and encoded with MarshalFor.
type ParameterSchema struct {
	// Style determines how the value is serialized. Defaults to DefaultStyleFor the location.
	Style SerializationStyle
	// Explode determines whether array and object values generate separate parameters per item. Defaults to Style.DefaultExplode().
	Explode bool
	// AllowReserved determines whether the value may contain reserved characters as defined by RFC3986.
	AllowReserved bool
	// Schema is the schema defining the type of the value.
	Schema *oas3.JSONSchema
	// Example is an example of the value. When Examples is set it holds the value of the first inline entry.
	Example values.Value
	// Examples is a map of named examples of the value.
	Examples *Examples
}

var (
	_ marshaller.ContextualUnmarshaller[Location] = (*ParameterSchema)(nil)
	_ marshaller.ContextualMarshaller[Location]   = (*ParameterSchema)(nil)
)

// ParameterSchemaOption configures a ParameterSchema created with NewParameterSchema.
type ParameterSchemaOption func(*ParameterSchema)

// WithExplode overrides the explode value implied by the style.
func WithExplode(explode bool) ParameterSchemaOption {
	return func(p *ParameterSchema) {
		p.Explode = explode
	}
}

func WithAllowReserved(allowReserved bool) ParameterSchemaOption {
	return func(p *ParameterSchema) {
		p.AllowReserved = allowReserved
	}
}

// WithExample sets a single example, clearing any examples set before it.
func WithExample(example values.Value) ParameterSchemaOption {
	return func(p *ParameterSchema) {
		p.Example = example
		p.Examples = nil
	}
}

// WithExamples sets named examples, replacing any single example set before it with the one derived from the first entry.
func WithExamples(examples *Examples) ParameterSchemaOption {
	return func(p *ParameterSchema) {
		p.Examples = examples
		p.Example = FirstExample(examples)
	}
}

// NewParameterSchema creates a ParameterSchema with the given style. Explode defaults to style.DefaultExplode().
func NewParameterSchema(schema *oas3.JSONSchema, style SerializationStyle, opts ...ParameterSchemaOption) *ParameterSchema {
	p := &ParameterSchema{
		Style:   style,
		Explode: style.DefaultExplode(),
		Schema:  schema,
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// NewParameterSchemaFor creates a ParameterSchema with the default style of loc.
func NewParameterSchemaFor(schema *oas3.JSONSchema, loc Location, opts ...ParameterSchemaOption) *ParameterSchema {
	return NewParameterSchema(schema, DefaultStyleFor(loc), opts...)
}

// UnmarshalFor decodes the parameter schema members of node, taking defaults from loc.
func (p *ParameterSchema) UnmarshalFor(ctx context.Context, node *yaml.Node, loc Location) error {
	o, err := marshaller.NewObject(ctx, node)
	if err != nil {
		return err
	}

	schema := marshaller.RequiredField(o, "schema", oas3.DecodeJSONSchema)
	style := marshaller.FieldOr(o, "style", DefaultStyleFor(loc), marshaller.DecodeEnum(serializationStyles...))
	explode := marshaller.FieldOr(o, "explode", style.DefaultExplode(), marshaller.DecodeBool)
	allowReserved := marshaller.FieldOr(o, "allowReserved", false, marshaller.DecodeBool)
	if err := o.Err(); err != nil {
		return err
	}

	example, examples := decodeExampleGroup(o)
	if err := o.Err(); err != nil {
		return err
	}

	*p = ParameterSchema{
		Style:         style,
		Explode:       explode,
		AllowReserved: allowReserved,
		Schema:        schema,
		Example:       example,
		Examples:      examples,
	}
	return nil
}

// MarshalFor encodes the parameter schema members, leaving out those equal to their default at loc.
func (p *ParameterSchema) MarshalFor(ctx context.Context, loc Location) (*yaml.Node, error) {
	b := marshaller.NewObjectBuilder(ctx)
	p.encode(b, loc)
	return b.Build()
}

func (p *ParameterSchema) encode(b *marshaller.ObjectBuilder, loc Location) {
	if p.Style != DefaultStyleFor(loc) {
		b.String("style", (*string)(&p.Style))
	}
	b.Bool("explode", p.Explode, p.Style.DefaultExplode())
	b.Bool("allowReserved", p.AllowReserved, false)
	marshaller.Encode(b, "schema", p.Schema, oas3.EncodeJSONSchema)
	encodeExampleGroup(b, p.Example, p.Examples)
}

func (p *ParameterSchema) IsEqual(other *ParameterSchema) bool {
	if p == nil || other == nil {
		return p == other
	}

	return p.Style == other.Style &&
		p.Explode == other.Explode &&
		p.AllowReserved == other.AllowReserved &&
		oas3.IsEqual(p.Schema, other.Schema) &&
		values.IsEqual(p.Example, other.Example) &&
		isEqualExamples(p.Examples, other.Examples)
}
