// Package oas3 contains the OAS v3.0 Schema Object https://spec.openapis.org/oas/v3.0.3#schema-object
package oas3

import (
	"context"
	"slices"

	"github.com/speakeasy-api/openapikit/extensions"
	"github.com/speakeasy-api/openapikit/marshaller"
	"github.com/speakeasy-api/openapikit/pointer"
	"github.com/speakeasy-api/openapikit/references"
	"github.com/speakeasy-api/openapikit/sequencedmap"
	"github.com/speakeasy-api/openapikit/values"
	"gopkg.in/yaml.v3"
)

// JSONSchema is a schema field: either a reference into #/components/schemas or an inline Schema.
type JSONSchema = marshaller.Referenceable[Schema]

// AdditionalProperties is either a boolean or a schema.
type AdditionalProperties = values.EitherValue[bool, JSONSchema]

// Schema describes the type of a parameter, header, media type or property.
// Keywords the model has no field for are kept in Keywords, in declaration order, so nothing is lost on a round trip.
type Schema struct {
	Type        *SchemaType
	Format      *string
	Title       *string
	Description *string

	MultipleOf       *float64
	Maximum          *float64
	ExclusiveMaximum *bool
	Minimum          *float64
	ExclusiveMinimum *bool
	MaxLength        *int64
	MinLength        *int64
	Pattern          *string
	MaxItems         *int64
	MinItems         *int64
	UniqueItems      *bool
	MaxProperties    *int64
	MinProperties    *int64
	Required         []string

	Properties           *sequencedmap.Map[string, *JSONSchema]
	AdditionalProperties *AdditionalProperties
	Items                *JSONSchema
	AllOf                []*JSONSchema
	OneOf                []*JSONSchema
	AnyOf                []*JSONSchema
	Not                  *JSONSchema

	Enum    []values.Value
	Default values.Value
	Example values.Value

	Nullable   *bool
	ReadOnly   *bool
	WriteOnly  *bool
	Deprecated *bool

	// Keywords holds any other member that is not an extension, eg. discriminator or xml.
	Keywords   *sequencedmap.Map[string, values.Value]
	Extensions *extensions.Extensions
}

var knownKeywords = map[string]struct{}{
	"type": {}, "format": {}, "title": {}, "description": {},
	"multipleOf": {}, "maximum": {}, "exclusiveMaximum": {}, "minimum": {}, "exclusiveMinimum": {},
	"maxLength": {}, "minLength": {}, "pattern": {}, "maxItems": {}, "minItems": {}, "uniqueItems": {},
	"maxProperties": {}, "minProperties": {}, "required": {},
	"properties": {}, "additionalProperties": {}, "items": {}, "allOf": {}, "oneOf": {}, "anyOf": {}, "not": {},
	"enum": {}, "default": {}, "example": {},
	"nullable": {}, "readOnly": {}, "writeOnly": {}, "deprecated": {},
}

// NewJSONSchemaFromSchema wraps an inline schema.
func NewJSONSchemaFromSchema(value *Schema) *JSONSchema {
	return &JSONSchema{Right: value}
}

// NewJSONSchemaFromReference creates a schema field pointing at #/components/schemas/<name> or any other pointer.
func NewJSONSchemaFromReference(ref references.Reference) *JSONSchema {
	return &JSONSchema{Left: &ref}
}

// NewAdditionalPropertiesFromBool creates additionalProperties: true|false.
func NewAdditionalPropertiesFromBool(value bool) *AdditionalProperties {
	return values.NewLeft[bool, JSONSchema](value)
}

// NewAdditionalPropertiesFromSchema creates additionalProperties constrained by a schema.
func NewAdditionalPropertiesFromSchema(value *JSONSchema) *AdditionalProperties {
	return &AdditionalProperties{Right: value}
}

// DecodeJSONSchema decodes a $ref or an inline schema.
func DecodeJSONSchema(ctx context.Context, node *yaml.Node) (*JSONSchema, error) {
	return marshaller.DecodeReferenceable[Schema](marshaller.DecodeModel[Schema, *Schema])(ctx, node)
}

// EncodeJSONSchema encodes a $ref or an inline schema.
func EncodeJSONSchema(ctx context.Context, s *JSONSchema) (*yaml.Node, error) {
	return marshaller.EncodeReferenceable[Schema](encodeSchema)(ctx, s)
}

func encodeSchema(ctx context.Context, s *Schema) (*yaml.Node, error) {
	return s.Marshal(ctx)
}

func (s *Schema) Unmarshal(ctx context.Context, node *yaml.Node) error {
	o, err := marshaller.NewObject(ctx, node)
	if err != nil {
		return err
	}

	out := Schema{
		Type:        marshaller.Field(o, "type", marshaller.DecodeEnum(schemaTypes...)),
		Format:      marshaller.Field(o, "format", marshaller.DecodeString),
		Title:       marshaller.Field(o, "title", marshaller.DecodeString),
		Description: marshaller.Field(o, "description", marshaller.DecodeString),

		MultipleOf:       marshaller.Field(o, "multipleOf", marshaller.DecodeFloat),
		Maximum:          marshaller.Field(o, "maximum", marshaller.DecodeFloat),
		ExclusiveMaximum: marshaller.Field(o, "exclusiveMaximum", marshaller.DecodeBool),
		Minimum:          marshaller.Field(o, "minimum", marshaller.DecodeFloat),
		ExclusiveMinimum: marshaller.Field(o, "exclusiveMinimum", marshaller.DecodeBool),
		MaxLength:        marshaller.Field(o, "maxLength", marshaller.DecodeInt),
		MinLength:        marshaller.Field(o, "minLength", marshaller.DecodeInt),
		Pattern:          marshaller.Field(o, "pattern", marshaller.DecodeString),
		MaxItems:         marshaller.Field(o, "maxItems", marshaller.DecodeInt),
		MinItems:         marshaller.Field(o, "minItems", marshaller.DecodeInt),
		UniqueItems:      marshaller.Field(o, "uniqueItems", marshaller.DecodeBool),
		MaxProperties:    marshaller.Field(o, "maxProperties", marshaller.DecodeInt),
		MinProperties:    marshaller.Field(o, "minProperties", marshaller.DecodeInt),
		Required:         marshaller.FieldOr(o, "required", nil, marshaller.DecodeStrings),

		Properties:           marshaller.FieldOr(o, "properties", nil, decodeSchemaMap),
		AdditionalProperties: marshaller.FieldOr(o, "additionalProperties", nil, decodeAdditionalProperties),
		Items:                marshaller.FieldOr(o, "items", nil, DecodeJSONSchema),
		AllOf:                marshaller.FieldOr(o, "allOf", nil, decodeSchemaSlice),
		OneOf:                marshaller.FieldOr(o, "oneOf", nil, decodeSchemaSlice),
		AnyOf:                marshaller.FieldOr(o, "anyOf", nil, decodeSchemaSlice),
		Not:                  marshaller.FieldOr(o, "not", nil, DecodeJSONSchema),

		Enum:    marshaller.FieldOr(o, "enum", nil, decodeValueSlice),
		Default: marshaller.ValueField(o, "default"),
		Example: marshaller.ValueField(o, "example"),

		Nullable:   marshaller.Field(o, "nullable", marshaller.DecodeBool),
		ReadOnly:   marshaller.Field(o, "readOnly", marshaller.DecodeBool),
		WriteOnly:  marshaller.Field(o, "writeOnly", marshaller.DecodeBool),
		Deprecated: marshaller.Field(o, "deprecated", marshaller.DecodeBool),
	}
	if err := o.Err(); err != nil {
		return err
	}

	for key := range o.Keys() {
		if _, known := knownKeywords[key]; known || extensions.IsExtension(key) {
			continue
		}

		fieldCtx, valueNode, _ := o.Get(key)
		v, err := marshaller.DecodeValue(fieldCtx, valueNode)
		if err != nil {
			return err
		}

		if out.Keywords == nil {
			out.Keywords = sequencedmap.New[string, values.Value]()
		}
		out.Keywords.Set(key, v)
	}

	out.Extensions, err = extensions.Decode(o)
	if err != nil {
		return err
	}

	*s = out
	return nil
}

func (s *Schema) Marshal(ctx context.Context) (*yaml.Node, error) {
	b := marshaller.NewObjectBuilder(ctx)

	if s.Type != nil {
		b.String("type", pointer.From(string(*s.Type)))
	}
	b.String("format", s.Format)
	b.String("title", s.Title)
	b.String("description", s.Description)

	b.Float("multipleOf", s.MultipleOf)
	b.Float("maximum", s.Maximum)
	b.OptionalBool("exclusiveMaximum", s.ExclusiveMaximum)
	b.Float("minimum", s.Minimum)
	b.OptionalBool("exclusiveMinimum", s.ExclusiveMinimum)
	b.Int("maxLength", s.MaxLength)
	b.Int("minLength", s.MinLength)
	b.String("pattern", s.Pattern)
	b.Int("maxItems", s.MaxItems)
	b.Int("minItems", s.MinItems)
	b.OptionalBool("uniqueItems", s.UniqueItems)
	b.Int("maxProperties", s.MaxProperties)
	b.Int("minProperties", s.MinProperties)
	b.Strings("required", s.Required)

	if s.Properties.Len() > 0 {
		marshaller.Encode(b, "properties", s.Properties, encodeSchemaMap)
	}
	marshaller.EncodeOptional(b, "additionalProperties", s.AdditionalProperties, encodeAdditionalProperties)
	marshaller.EncodeOptional(b, "items", s.Items, EncodeJSONSchema)
	encodeSchemaSlice(b, "allOf", s.AllOf)
	encodeSchemaSlice(b, "oneOf", s.OneOf)
	encodeSchemaSlice(b, "anyOf", s.AnyOf)
	marshaller.EncodeOptional(b, "not", s.Not, EncodeJSONSchema)

	if len(s.Enum) > 0 {
		marshaller.Encode(b, "enum", s.Enum, encodeValueSlice)
	}
	if s.Default != nil {
		marshaller.Encode(b, "default", s.Default, marshaller.EncodeValue)
	}
	if s.Example != nil {
		marshaller.Encode(b, "example", s.Example, marshaller.EncodeValue)
	}

	b.OptionalBool("nullable", s.Nullable)
	b.OptionalBool("readOnly", s.ReadOnly)
	b.OptionalBool("writeOnly", s.WriteOnly)
	b.OptionalBool("deprecated", s.Deprecated)

	for key, v := range s.Keywords.All() {
		marshaller.Encode(b, key, v, marshaller.EncodeValue)
	}
	s.Extensions.Encode(b)

	return b.Build()
}

// IsEqual compares two schemas, descending into subschemas. References compare by pointer text, they are never resolved.
func (s *Schema) IsEqual(other *Schema) bool {
	if s == nil || other == nil {
		return s == other
	}

	return pointer.Equal(s.Type, other.Type) &&
		pointer.Equal(s.Format, other.Format) &&
		pointer.Equal(s.Title, other.Title) &&
		pointer.Equal(s.Description, other.Description) &&
		pointer.Equal(s.MultipleOf, other.MultipleOf) &&
		pointer.Equal(s.Maximum, other.Maximum) &&
		pointer.Equal(s.ExclusiveMaximum, other.ExclusiveMaximum) &&
		pointer.Equal(s.Minimum, other.Minimum) &&
		pointer.Equal(s.ExclusiveMinimum, other.ExclusiveMinimum) &&
		pointer.Equal(s.MaxLength, other.MaxLength) &&
		pointer.Equal(s.MinLength, other.MinLength) &&
		pointer.Equal(s.Pattern, other.Pattern) &&
		pointer.Equal(s.MaxItems, other.MaxItems) &&
		pointer.Equal(s.MinItems, other.MinItems) &&
		pointer.Equal(s.UniqueItems, other.UniqueItems) &&
		pointer.Equal(s.MaxProperties, other.MaxProperties) &&
		pointer.Equal(s.MinProperties, other.MinProperties) &&
		slices.Equal(s.Required, other.Required) &&
		s.Properties.IsEqualFunc(other.Properties, IsEqual) &&
		isEqualAdditionalProperties(s.AdditionalProperties, other.AdditionalProperties) &&
		IsEqual(s.Items, other.Items) &&
		slices.EqualFunc(s.AllOf, other.AllOf, IsEqual) &&
		slices.EqualFunc(s.OneOf, other.OneOf, IsEqual) &&
		slices.EqualFunc(s.AnyOf, other.AnyOf, IsEqual) &&
		IsEqual(s.Not, other.Not) &&
		slices.EqualFunc(s.Enum, other.Enum, values.IsEqual) &&
		values.IsEqual(s.Default, other.Default) &&
		values.IsEqual(s.Example, other.Example) &&
		pointer.Equal(s.Nullable, other.Nullable) &&
		pointer.Equal(s.ReadOnly, other.ReadOnly) &&
		pointer.Equal(s.WriteOnly, other.WriteOnly) &&
		pointer.Equal(s.Deprecated, other.Deprecated) &&
		s.Keywords.IsEqualFunc(other.Keywords, values.IsEqual) &&
		s.Extensions.IsEqual(other.Extensions)
}

// IsEqual compares two schema fields. Two unset fields are equal.
func IsEqual(a, b *JSONSchema) bool {
	if a == nil || b == nil {
		return a == b
	}
	return marshaller.IsEqualReferenceable(a, b, (*Schema).IsEqual)
}

func isEqualAdditionalProperties(a, b *AdditionalProperties) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.IsEqualFunc(b, func(x, y *bool) bool { return *x == *y }, IsEqual)
}

func decodeAdditionalProperties(ctx context.Context, node *yaml.Node) (*AdditionalProperties, error) {
	if node.Kind == yaml.ScalarNode && node.ShortTag() == "!!bool" {
		v, err := marshaller.DecodeBool(ctx, node)
		if err != nil {
			return nil, err
		}
		return NewAdditionalPropertiesFromBool(v), nil
	}

	schema, err := DecodeJSONSchema(ctx, node)
	if err != nil {
		return nil, err
	}
	return NewAdditionalPropertiesFromSchema(schema), nil
}

func encodeAdditionalProperties(ctx context.Context, a *AdditionalProperties) (*yaml.Node, error) {
	if a.IsLeft() {
		return marshaller.EncodeBool(ctx, *a.Left)
	}
	return EncodeJSONSchema(ctx, a.Right)
}

func decodeSchemaMap(ctx context.Context, node *yaml.Node) (*sequencedmap.Map[string, *JSONSchema], error) {
	return marshaller.DecodeMap(ctx, node, marshaller.StringKey, DecodeJSONSchema)
}

func encodeSchemaMap(ctx context.Context, m *sequencedmap.Map[string, *JSONSchema]) (*yaml.Node, error) {
	return marshaller.EncodeMap(ctx, m, marshaller.StringKeyString, EncodeJSONSchema)
}

func decodeSchemaSlice(ctx context.Context, node *yaml.Node) ([]*JSONSchema, error) {
	return marshaller.DecodeSlice(ctx, node, DecodeJSONSchema)
}

func encodeSchemaSlice(b *marshaller.ObjectBuilder, key string, s []*JSONSchema) {
	if len(s) == 0 {
		return
	}
	marshaller.Encode(b, key, s, func(ctx context.Context, s []*JSONSchema) (*yaml.Node, error) {
		return marshaller.EncodeSlice(ctx, s, EncodeJSONSchema)
	})
}

func decodeValueSlice(ctx context.Context, node *yaml.Node) ([]values.Value, error) {
	return marshaller.DecodeSlice(ctx, node, marshaller.DecodeValue)
}

func encodeValueSlice(ctx context.Context, s []values.Value) (*yaml.Node, error) {
	return marshaller.EncodeSlice(ctx, s, marshaller.EncodeValue)
}
