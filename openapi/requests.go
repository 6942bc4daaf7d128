package openapi

import (
	"context"

	"github.com/speakeasy-api/openapikit/extensions"
	"github.com/speakeasy-api/openapikit/marshaller"
	"github.com/speakeasy-api/openapikit/pointer"
	"gopkg.in/yaml.v3"
)

// RequestBody describes the body of a request.
type RequestBody struct {
	// Description is a brief description of the request body. May contain CommonMark syntax.
	Description *string
	// Content is the content of the request body, keyed by media type.
	Content *Content
	// Required determines whether the request body is mandatory.
	Required bool
	// Extensions provides a list of extensions to the RequestBody object.
	Extensions *extensions.Extensions
}

// NewRequestBody creates a request body with the given content.
func NewRequestBody(content *Content) *RequestBody {
	return &RequestBody{Content: content}
}

func (r *RequestBody) Unmarshal(ctx context.Context, node *yaml.Node) error {
	o, err := marshaller.NewObject(ctx, node)
	if err != nil {
		return err
	}

	out := RequestBody{
		Description: marshaller.Field(o, "description", marshaller.DecodeString),
		Content:     marshaller.RequiredField(o, "content", decodeContent),
		Required:    marshaller.FieldOr(o, "required", false, marshaller.DecodeBool),
	}
	if err := o.Err(); err != nil {
		return err
	}

	out.Extensions, err = extensions.Decode(o)
	if err != nil {
		return err
	}

	*r = out
	return nil
}

func (r *RequestBody) Marshal(ctx context.Context) (*yaml.Node, error) {
	b := marshaller.NewObjectBuilder(ctx)

	b.String("description", r.Description)
	marshaller.Encode(b, "content", r.Content, encodeContent)
	b.Bool("required", r.Required, false)
	r.Extensions.Encode(b)

	return b.Build()
}

func (r *RequestBody) IsEqual(other *RequestBody) bool {
	if r == nil || other == nil {
		return r == other
	}

	return pointer.Equal(r.Description, other.Description) &&
		isEqualContent(r.Content, other.Content) &&
		r.Required == other.Required &&
		r.Extensions.IsEqual(other.Extensions)
}
