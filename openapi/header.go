package openapi

import (
	"context"

	"github.com/speakeasy-api/openapikit/extensions"
	"github.com/speakeasy-api/openapikit/marshaller"
	"github.com/speakeasy-api/openapikit/pointer"
	"github.com/speakeasy-api/openapikit/sequencedmap"
	"gopkg.in/yaml.v3"
)

// Header describes a single response header. It follows the structure of a Parameter
// without name and in, and its ParameterSchema always uses LocationHeader defaults.
type Header struct {
	// Description is a brief description of the header. May contain CommonMark syntax.
	Description *string
	// Required determines whether this header is mandatory.
	Required bool
	// Deprecated describes whether this header is deprecated.
	Deprecated bool
	// Schema describes the type and serialization of the header. Mutually exclusive with Content.
	Schema *ParameterSchema
	// Content represents the content type and schema of a header. Mutually exclusive with Schema.
	Content *Content
	// Extensions provides a list of extensions to the Header object.
	Extensions *extensions.Extensions
}

func (h *Header) Unmarshal(ctx context.Context, node *yaml.Node) error {
	o, err := marshaller.NewObject(ctx, node)
	if err != nil {
		return err
	}

	out := Header{
		Description: marshaller.Field(o, "description", marshaller.DecodeString),
		Required:    marshaller.FieldOr(o, "required", false, marshaller.DecodeBool),
		Deprecated:  marshaller.FieldOr(o, "deprecated", false, marshaller.DecodeBool),
	}
	if err := o.Err(); err != nil {
		return err
	}

	out.Schema, out.Content, err = decodeSchemaOrContent(ctx, o, LocationHeader)
	if err != nil {
		return err
	}

	out.Extensions, err = extensions.Decode(o)
	if err != nil {
		return err
	}

	*h = out
	return nil
}

func (h *Header) Marshal(ctx context.Context) (*yaml.Node, error) {
	b := marshaller.NewObjectBuilder(ctx)

	b.String("description", h.Description)
	b.Bool("required", h.Required, false)
	b.Bool("deprecated", h.Deprecated, false)
	encodeSchemaOrContent(b, h.Schema, h.Content, LocationHeader)
	h.Extensions.Encode(b)

	return b.Build()
}

func (h *Header) IsEqual(other *Header) bool {
	if h == nil || other == nil {
		return h == other
	}

	return pointer.Equal(h.Description, other.Description) &&
		h.Required == other.Required &&
		h.Deprecated == other.Deprecated &&
		h.Schema.IsEqual(other.Schema) &&
		isEqualContent(h.Content, other.Content) &&
		h.Extensions.IsEqual(other.Extensions)
}

// Headers maps header names to their description, in declaration order.
type Headers = sequencedmap.Map[string, *ReferencedHeader]

func decodeHeaders(ctx context.Context, node *yaml.Node) (*Headers, error) {
	return marshaller.DecodeMap(ctx, node, marshaller.StringKey, decodeReferenced[Header, *Header])
}

func encodeHeaders(ctx context.Context, h *Headers) (*yaml.Node, error) {
	return marshaller.EncodeMap(ctx, h, marshaller.StringKeyString, encodeReferenced[Header, *Header])
}
