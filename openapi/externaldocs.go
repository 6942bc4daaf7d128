package openapi

import (
	"context"

	"github.com/speakeasy-api/openapikit/extensions"
	"github.com/speakeasy-api/openapikit/marshaller"
	"github.com/speakeasy-api/openapikit/pointer"
	"gopkg.in/yaml.v3"
)

// ExternalDocumentation points to additional documentation hosted elsewhere.
type ExternalDocumentation struct {
	// Description is a description of the target documentation. May contain CommonMark syntax.
	Description *string
	// URL is the URL of the target documentation.
	URL string
	// Extensions provides a list of extensions to the ExternalDocumentation object.
	Extensions *extensions.Extensions
}

func (e *ExternalDocumentation) Unmarshal(ctx context.Context, node *yaml.Node) error {
	o, err := marshaller.NewObject(ctx, node)
	if err != nil {
		return err
	}

	out := ExternalDocumentation{
		Description: marshaller.Field(o, "description", marshaller.DecodeString),
		URL:         marshaller.RequiredField(o, "url", marshaller.DecodeString),
	}
	if err := o.Err(); err != nil {
		return err
	}

	out.Extensions, err = extensions.Decode(o)
	if err != nil {
		return err
	}

	*e = out
	return nil
}

func (e *ExternalDocumentation) Marshal(ctx context.Context) (*yaml.Node, error) {
	b := marshaller.NewObjectBuilder(ctx)

	b.String("description", e.Description)
	b.RequiredString("url", e.URL)
	e.Extensions.Encode(b)

	return b.Build()
}

func (e *ExternalDocumentation) IsEqual(other *ExternalDocumentation) bool {
	if e == nil || other == nil {
		return e == other
	}

	return pointer.Equal(e.Description, other.Description) &&
		e.URL == other.URL &&
		e.Extensions.IsEqual(other.Extensions)
}
