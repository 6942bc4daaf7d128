package openapi

import (
	"context"
	"slices"

	"github.com/speakeasy-api/openapikit/extensions"
	"github.com/speakeasy-api/openapikit/marshaller"
	"github.com/speakeasy-api/openapikit/pointer"
	"github.com/speakeasy-api/openapikit/sequencedmap"
	"gopkg.in/yaml.v3"
)

// Server represents a server the API is available on.
type Server struct {
	// URL is the URL of the server. It may contain {variable} templates substituted from Variables.
	URL string
	// Description is an optional description of the server. May contain CommonMark syntax.
	Description *string
	// Variables maps variable names used in the URL template to their substitution values.
	Variables *sequencedmap.Map[string, *ServerVariable]
	// Extensions provides a list of extensions to the Server object.
	Extensions *extensions.Extensions
}

// GetURL returns the value of the URL field. Returns empty string if not set.
func (s *Server) GetURL() string {
	if s == nil {
		return ""
	}
	return s.URL
}

func (s *Server) Unmarshal(ctx context.Context, node *yaml.Node) error {
	o, err := marshaller.NewObject(ctx, node)
	if err != nil {
		return err
	}

	out := Server{
		URL:         marshaller.RequiredField(o, "url", marshaller.DecodeString),
		Description: marshaller.Field(o, "description", marshaller.DecodeString),
		Variables:   marshaller.FieldOr(o, "variables", nil, decodeServerVariables),
	}
	if err := o.Err(); err != nil {
		return err
	}

	out.Extensions, err = extensions.Decode(o)
	if err != nil {
		return err
	}

	*s = out
	return nil
}

func (s *Server) Marshal(ctx context.Context) (*yaml.Node, error) {
	b := marshaller.NewObjectBuilder(ctx)

	b.RequiredString("url", s.URL)
	b.String("description", s.Description)
	if s.Variables.Len() > 0 {
		marshaller.Encode(b, "variables", s.Variables, encodeServerVariables)
	}
	s.Extensions.Encode(b)

	return b.Build()
}

func (s *Server) IsEqual(other *Server) bool {
	if s == nil || other == nil {
		return s == other
	}

	return s.URL == other.URL &&
		pointer.Equal(s.Description, other.Description) &&
		s.Variables.IsEqualFunc(other.Variables, (*ServerVariable).IsEqual) &&
		s.Extensions.IsEqual(other.Extensions)
}

// ServerVariable is a variable substituted into a server URL template.
type ServerVariable struct {
	// Default is the value used when no alternative is supplied.
	Default string
	// Enum restricts the substitution values, if set.
	Enum []string
	// Description is an optional description of the variable. May contain CommonMark syntax.
	Description *string
	// Extensions provides a list of extensions to the ServerVariable object.
	Extensions *extensions.Extensions
}

func (v *ServerVariable) Unmarshal(ctx context.Context, node *yaml.Node) error {
	o, err := marshaller.NewObject(ctx, node)
	if err != nil {
		return err
	}

	out := ServerVariable{
		Enum:        marshaller.FieldOr(o, "enum", nil, marshaller.DecodeStrings),
		Default:     marshaller.RequiredField(o, "default", marshaller.DecodeString),
		Description: marshaller.Field(o, "description", marshaller.DecodeString),
	}
	if err := o.Err(); err != nil {
		return err
	}

	out.Extensions, err = extensions.Decode(o)
	if err != nil {
		return err
	}

	*v = out
	return nil
}

func (v *ServerVariable) Marshal(ctx context.Context) (*yaml.Node, error) {
	b := marshaller.NewObjectBuilder(ctx)

	b.Strings("enum", v.Enum)
	b.RequiredString("default", v.Default)
	b.String("description", v.Description)
	v.Extensions.Encode(b)

	return b.Build()
}

func (v *ServerVariable) IsEqual(other *ServerVariable) bool {
	if v == nil || other == nil {
		return v == other
	}

	return v.Default == other.Default &&
		slices.Equal(v.Enum, other.Enum) &&
		pointer.Equal(v.Description, other.Description) &&
		v.Extensions.IsEqual(other.Extensions)
}

func decodeServerVariables(ctx context.Context, node *yaml.Node) (*sequencedmap.Map[string, *ServerVariable], error) {
	return marshaller.DecodeMap(ctx, node, marshaller.StringKey, marshaller.DecodeModel[ServerVariable, *ServerVariable])
}

func encodeServerVariables(ctx context.Context, m *sequencedmap.Map[string, *ServerVariable]) (*yaml.Node, error) {
	return marshaller.EncodeMap(ctx, m, marshaller.StringKeyString, marshaller.EncodeModel[*ServerVariable])
}

func decodeServers(ctx context.Context, node *yaml.Node) ([]*Server, error) {
	return marshaller.DecodeSlice(ctx, node, marshaller.DecodeModel[Server, *Server])
}

func encodeServers(ctx context.Context, servers []*Server) (*yaml.Node, error) {
	return marshaller.EncodeSlice(ctx, servers, marshaller.EncodeModel[*Server])
}
