package openapi

import (
	"context"

	"github.com/speakeasy-api/openapikit/errors"
	"github.com/speakeasy-api/openapikit/extensions"
	"github.com/speakeasy-api/openapikit/marshaller"
	"github.com/speakeasy-api/openapikit/pointer"
	"gopkg.in/yaml.v3"
)

// Parameter represents a single parameter to be included in a request.
type Parameter struct {
	// Name is the case sensitive name of the parameter.
	Name string
	// In is the location of the parameter. It is the location ParameterSchema defaults are taken from.
	In Location
	// Description is a brief description of the parameter. May contain CommonMark syntax.
	Description *string
	// Required determines whether this parameter is mandatory. Defaults to true for path parameters.
	Required bool
	// Deprecated describes whether this parameter is deprecated.
	Deprecated bool
	// AllowEmptyValue determines if empty values are allowed for query parameters.
	AllowEmptyValue bool
	// Schema describes the type and serialization of the parameter. Mutually exclusive with Content.
	Schema *ParameterSchema
	// Content represents the content type and schema of a parameter. Mutually exclusive with Schema.
	Content *Content
	// Extensions provides a list of extensions to the Parameter object.
	Extensions *extensions.Extensions
}

// NewParameter creates a parameter described by schema. Path parameters are marked required.
func NewParameter(name string, in Location, schema *ParameterSchema) *Parameter {
	return &Parameter{
		Name:     name,
		In:       in,
		Required: in == LocationPath,
		Schema:   schema,
	}
}

// GetName returns the value of the Name field. Returns empty string if not set.
func (p *Parameter) GetName() string {
	if p == nil {
		return ""
	}
	return p.Name
}

// GetIn returns the value of the In field. Returns empty Location if not set.
func (p *Parameter) GetIn() Location {
	if p == nil {
		return ""
	}
	return p.In
}

// GetDescription returns the value of the Description field. Returns empty string if not set.
func (p *Parameter) GetDescription() string {
	if p == nil {
		return ""
	}
	return pointer.ValueOrZero(p.Description)
}

// GetStyle returns the serialization style of the parameter, or the default style for its location when it is described by content.
func (p *Parameter) GetStyle() SerializationStyle {
	if p == nil {
		return ""
	}
	if p.Schema == nil {
		return DefaultStyleFor(p.In)
	}
	return p.Schema.Style
}

// GetExplode returns whether the parameter is exploded, falling back to the default of GetStyle when it is described by content.
func (p *Parameter) GetExplode() bool {
	if p == nil {
		return false
	}
	if p.Schema == nil {
		return p.GetStyle().DefaultExplode()
	}
	return p.Schema.Explode
}

func (p *Parameter) Unmarshal(ctx context.Context, node *yaml.Node) error {
	o, err := marshaller.NewObject(ctx, node)
	if err != nil {
		return err
	}

	out := Parameter{
		Name: marshaller.RequiredField(o, "name", marshaller.DecodeString),
		In:   marshaller.RequiredField(o, "in", marshaller.DecodeEnum(locations...)),
	}
	out.Description = marshaller.Field(o, "description", marshaller.DecodeString)
	out.Required = marshaller.FieldOr(o, "required", out.In == LocationPath, marshaller.DecodeBool)
	out.Deprecated = marshaller.FieldOr(o, "deprecated", false, marshaller.DecodeBool)
	out.AllowEmptyValue = marshaller.FieldOr(o, "allowEmptyValue", false, marshaller.DecodeBool)
	if err := o.Err(); err != nil {
		return err
	}

	out.Schema, out.Content, err = decodeSchemaOrContent(ctx, o, out.In)
	if err != nil {
		return err
	}

	out.Extensions, err = extensions.Decode(o)
	if err != nil {
		return err
	}

	*p = out
	return nil
}

func (p *Parameter) Marshal(ctx context.Context) (*yaml.Node, error) {
	b := marshaller.NewObjectBuilder(ctx)

	b.RequiredString("name", p.Name)
	b.RequiredString("in", string(p.In))
	b.String("description", p.Description)
	if p.In == LocationPath {
		b.OptionalBool("required", &p.Required)
	} else {
		b.Bool("required", p.Required, false)
	}
	b.Bool("deprecated", p.Deprecated, false)
	b.Bool("allowEmptyValue", p.AllowEmptyValue, false)
	encodeSchemaOrContent(b, p.Schema, p.Content, p.In)
	p.Extensions.Encode(b)

	return b.Build()
}

func (p *Parameter) IsEqual(other *Parameter) bool {
	if p == nil || other == nil {
		return p == other
	}

	return p.Name == other.Name &&
		p.In == other.In &&
		pointer.Equal(p.Description, other.Description) &&
		p.Required == other.Required &&
		p.Deprecated == other.Deprecated &&
		p.AllowEmptyValue == other.AllowEmptyValue &&
		p.Schema.IsEqual(other.Schema) &&
		isEqualContent(p.Content, other.Content) &&
		p.Extensions.IsEqual(other.Extensions)
}

// decodeSchemaOrContent decodes the schema|content alternate pair shared by parameters and headers.
// The parameter schema members sit inline in the same object as the parameter. A declared schema is preferred.
func decodeSchemaOrContent(ctx context.Context, o *marshaller.Object, loc Location) (*ParameterSchema, *Content, error) {
	if !o.Has("schema") && o.Has("content") {
		content := marshaller.FieldOr(o, "content", nil, decodeContent)
		return nil, content, o.Err()
	}

	if o.Has("content") {
		marshaller.GetLogger(ctx).Debug("ignoring content declared alongside schema", "path", marshaller.PathFromContext(ctx))
	}

	var schema ParameterSchema
	if err := schema.UnmarshalFor(ctx, o.Node(), loc); err != nil {
		return nil, nil, err
	}
	return &schema, nil, nil
}

func encodeSchemaOrContent(b *marshaller.ObjectBuilder, schema *ParameterSchema, content *Content, loc Location) {
	switch {
	case schema != nil && content != nil:
		b.Fail(marshaller.NewError(b.Context(), errors.ErrAmbiguousAlternates, nil, "schema and content are mutually exclusive"))
	case schema != nil:
		schema.encode(b, loc)
	case content != nil:
		marshaller.Encode(b, "content", content, encodeContent)
	default:
		b.Fail(marshaller.NewError(b.Context(), errors.ErrMissingField, nil, "one of schema or content is required"))
	}
}

func decodeParameters(ctx context.Context, node *yaml.Node) ([]*ReferencedParameter, error) {
	return marshaller.DecodeSlice(ctx, node, decodeReferenced[Parameter, *Parameter])
}

func encodeParameters(ctx context.Context, params []*ReferencedParameter) (*yaml.Node, error) {
	return marshaller.EncodeSlice(ctx, params, encodeReferenced[Parameter, *Parameter])
}
