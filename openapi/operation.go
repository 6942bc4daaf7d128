package openapi

import (
	"context"
	"slices"

	"github.com/speakeasy-api/openapikit/extensions"
	"github.com/speakeasy-api/openapikit/marshaller"
	"github.com/speakeasy-api/openapikit/pointer"
	"gopkg.in/yaml.v3"
)

// Operation describes a single API operation on a path.
type Operation struct {
	// Tags is a list of tags for logical grouping of operations.
	Tags []string
	// Summary is a short summary of what the operation does.
	Summary *string
	// Description is a verbose explanation of the operation behavior. May contain CommonMark syntax.
	Description *string
	// ExternalDocs is additional external documentation for this operation.
	ExternalDocs *ExternalDocumentation
	// OperationID is a unique string used to identify the operation.
	OperationID *string
	// Parameters is a list of parameters that are applicable for this operation.
	Parameters []*ReferencedParameter
	// RequestBody is the request body applicable for this operation.
	RequestBody *ReferencedRequestBody
	// Responses is the list of possible responses as they are returned from executing this operation.
	Responses *Responses
	// Deprecated declares this operation to be deprecated.
	Deprecated bool
	// Security is the alternative security requirements for this operation. An empty requirement makes security optional.
	Security []*SecurityRequirement
	// Servers is an alternative list of servers to service this operation.
	Servers []*Server
	// Extensions provides a list of extensions to the Operation object.
	Extensions *extensions.Extensions
}

// OperationOption configures an Operation built with NewOperation.
type OperationOption func(*Operation)

func WithTags(tags ...string) OperationOption {
	return func(o *Operation) {
		o.Tags = tags
	}
}

func WithSummary(summary string) OperationOption {
	return func(o *Operation) {
		o.Summary = pointer.From(summary)
	}
}

func WithDescription(description string) OperationOption {
	return func(o *Operation) {
		o.Description = pointer.From(description)
	}
}

func WithExternalDocs(docs *ExternalDocumentation) OperationOption {
	return func(o *Operation) {
		o.ExternalDocs = docs
	}
}

func WithOperationID(id string) OperationOption {
	return func(o *Operation) {
		o.OperationID = pointer.From(id)
	}
}

// WithParameters appends parameters in order.
func WithParameters(params ...*ReferencedParameter) OperationOption {
	return func(o *Operation) {
		o.Parameters = append(o.Parameters, params...)
	}
}

func WithRequestBody(body *ReferencedRequestBody) OperationOption {
	return func(o *Operation) {
		o.RequestBody = body
	}
}

func WithDeprecated(deprecated bool) OperationOption {
	return func(o *Operation) {
		o.Deprecated = deprecated
	}
}

// WithSecurity appends alternative security requirements in order.
func WithSecurity(security ...*SecurityRequirement) OperationOption {
	return func(o *Operation) {
		o.Security = append(o.Security, security...)
	}
}

// WithServers appends servers in order.
func WithServers(servers ...*Server) OperationOption {
	return func(o *Operation) {
		o.Servers = append(o.Servers, servers...)
	}
}

func WithExtensions(ext *extensions.Extensions) OperationOption {
	return func(o *Operation) {
		o.Extensions = ext
	}
}

// NewOperation creates an operation returning responses. Responses is required and defaults to an empty set when nil.
func NewOperation(responses *Responses, opts ...OperationOption) *Operation {
	if responses == nil {
		responses = NewResponses()
	}

	o := &Operation{
		Responses: responses,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// GetOperationID returns the value of the OperationID field. Returns empty string if not set.
func (o *Operation) GetOperationID() string {
	if o == nil {
		return ""
	}
	return pointer.ValueOrZero(o.OperationID)
}

// GetSummary returns the value of the Summary field. Returns empty string if not set.
func (o *Operation) GetSummary() string {
	if o == nil {
		return ""
	}
	return pointer.ValueOrZero(o.Summary)
}

// GetResponses returns the value of the Responses field. Returns nil if not set.
func (o *Operation) GetResponses() *Responses {
	if o == nil {
		return nil
	}
	return o.Responses
}

// IsDeprecated returns true if the operation is deprecated.
func (o *Operation) IsDeprecated() bool {
	if o == nil {
		return false
	}
	return o.Deprecated
}

func (o *Operation) Unmarshal(ctx context.Context, node *yaml.Node) error {
	obj, err := marshaller.NewObject(ctx, node)
	if err != nil {
		return err
	}

	out := Operation{
		Tags:         marshaller.FieldOr(obj, "tags", nil, marshaller.DecodeStrings),
		Summary:      marshaller.Field(obj, "summary", marshaller.DecodeString),
		Description:  marshaller.Field(obj, "description", marshaller.DecodeString),
		ExternalDocs: marshaller.FieldOr(obj, "externalDocs", nil, marshaller.DecodeModel[ExternalDocumentation, *ExternalDocumentation]),
		OperationID:  marshaller.Field(obj, "operationId", marshaller.DecodeString),
		Parameters:   marshaller.FieldOr(obj, "parameters", nil, decodeParameters),
		RequestBody:  marshaller.FieldOr(obj, "requestBody", nil, decodeReferenced[RequestBody, *RequestBody]),
		Responses:    marshaller.RequiredField(obj, "responses", marshaller.DecodeModel[Responses, *Responses]),
		Deprecated:   marshaller.FieldOr(obj, "deprecated", false, marshaller.DecodeBool),
		Security:     marshaller.FieldOr(obj, "security", nil, decodeSecurity),
		Servers:      marshaller.FieldOr(obj, "servers", nil, decodeServers),
	}
	if err := obj.Err(); err != nil {
		return err
	}

	out.Extensions, err = extensions.Decode(obj)
	if err != nil {
		return err
	}

	*o = out
	return nil
}

func (o *Operation) Marshal(ctx context.Context) (*yaml.Node, error) {
	b := marshaller.NewObjectBuilder(ctx)

	b.Strings("tags", o.Tags)
	b.String("summary", o.Summary)
	b.String("description", o.Description)
	marshaller.EncodeOptional(b, "externalDocs", o.ExternalDocs, marshaller.EncodeModel[*ExternalDocumentation])
	b.String("operationId", o.OperationID)
	if len(o.Parameters) > 0 {
		marshaller.Encode(b, "parameters", o.Parameters, encodeParameters)
	}
	marshaller.EncodeOptional(b, "requestBody", o.RequestBody, encodeReferenced[RequestBody, *RequestBody])

	responses := o.Responses
	if responses == nil {
		responses = NewResponses()
	}
	marshaller.Encode(b, "responses", responses, marshaller.EncodeModel[*Responses])

	b.Bool("deprecated", o.Deprecated, false)
	if len(o.Security) > 0 {
		marshaller.Encode(b, "security", o.Security, encodeSecurity)
	}
	if len(o.Servers) > 0 {
		marshaller.Encode(b, "servers", o.Servers, encodeServers)
	}
	o.Extensions.Encode(b)

	return b.Build()
}

func (o *Operation) IsEqual(other *Operation) bool {
	if o == nil || other == nil {
		return o == other
	}

	return slices.Equal(o.Tags, other.Tags) &&
		pointer.Equal(o.Summary, other.Summary) &&
		pointer.Equal(o.Description, other.Description) &&
		o.ExternalDocs.IsEqual(other.ExternalDocs) &&
		pointer.Equal(o.OperationID, other.OperationID) &&
		slices.EqualFunc(o.Parameters, other.Parameters, isEqualReferenced[Parameter, *Parameter]) &&
		isEqualReferenced[RequestBody, *RequestBody](o.RequestBody, other.RequestBody) &&
		o.Responses.IsEqual(other.Responses) &&
		o.Deprecated == other.Deprecated &&
		slices.EqualFunc(o.Security, other.Security, (*SecurityRequirement).IsEqual) &&
		slices.EqualFunc(o.Servers, other.Servers, (*Server).IsEqual) &&
		o.Extensions.IsEqual(other.Extensions)
}
