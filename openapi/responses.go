package openapi

import (
	"context"
	"strconv"

	"github.com/speakeasy-api/openapikit/errors"
	"github.com/speakeasy-api/openapikit/extensions"
	"github.com/speakeasy-api/openapikit/marshaller"
	"github.com/speakeasy-api/openapikit/sequencedmap"
	"gopkg.in/yaml.v3"
)

// ResponseKey identifies a response: the literal default, an HTTP status code or a status code range such as 2XX.
type ResponseKey string

const ResponseKeyDefault ResponseKey = "default"

func (k ResponseKey) String() string {
	return string(k)
}

// NewStatusCode returns the key for an HTTP status code.
func NewStatusCode(code int) ResponseKey {
	return ResponseKey(strconv.Itoa(code))
}

// IsRange reports whether the key covers a range of status codes, eg. 4XX.
func (k ResponseKey) IsRange() bool {
	return len(k) == 3 && k[0] >= '1' && k[0] <= '5' && k[1:] == "XX"
}

// StatusCode returns the status code of the key, or 0 for default and range keys.
func (k ResponseKey) StatusCode() int {
	if k == ResponseKeyDefault || k.IsRange() {
		return 0
	}
	code, err := strconv.Atoi(string(k))
	if err != nil {
		return 0
	}
	return code
}

// ParseResponseKey validates a persisted response key.
func ParseResponseKey(ctx context.Context, key string) (ResponseKey, error) {
	k := ResponseKey(key)
	if k == ResponseKeyDefault || k.IsRange() {
		return k, nil
	}

	if len(key) == 3 {
		if code, err := strconv.Atoi(key); err == nil && code >= 100 && code <= 599 {
			return k, nil
		}
	}

	return "", marshaller.NewError(ctx, errors.ErrInvalidEnumValue, nil, "response key must be default, a status code or a range like 2XX, got %q", key)
}

// Responses is the ordered set of responses an operation may return, keyed by status code.
// Keys keep their declaration order, including default.
type Responses struct {
	*sequencedmap.Map[ResponseKey, *ReferencedResponse]

	// Extensions provides a list of extensions to the Responses object.
	Extensions *extensions.Extensions
}

// NewResponses creates a responses object with the given entries in order.
func NewResponses(elements ...*sequencedmap.Element[ResponseKey, *ReferencedResponse]) *Responses {
	return &Responses{
		Map: sequencedmap.New(elements...),
	}
}

// GetDefault returns the default response, or nil if none is declared.
func (r *Responses) GetDefault() *ReferencedResponse {
	if r == nil {
		return nil
	}
	return r.GetOrZero(ResponseKeyDefault)
}

func (r *Responses) Unmarshal(ctx context.Context, node *yaml.Node) error {
	o, err := marshaller.NewObject(ctx, node)
	if err != nil {
		return err
	}

	out := Responses{
		Map: sequencedmap.New[ResponseKey, *ReferencedResponse](),
	}

	for key := range o.Keys() {
		if extensions.IsExtension(key) {
			continue
		}

		fieldCtx, valueNode, _ := o.Get(key)

		k, err := ParseResponseKey(fieldCtx, key)
		if err != nil {
			return err
		}

		resp, err := decodeReferenced[Response, *Response](fieldCtx, valueNode)
		if err != nil {
			return err
		}
		out.Set(k, resp)
	}

	out.Extensions, err = extensions.Decode(o)
	if err != nil {
		return err
	}

	*r = out
	return nil
}

func (r *Responses) Marshal(ctx context.Context) (*yaml.Node, error) {
	b := marshaller.NewObjectBuilder(ctx)

	if r.Map != nil {
		for k, v := range r.All() {
			marshaller.Encode(b, k.String(), v, encodeReferenced[Response, *Response])
		}
	}
	r.Extensions.Encode(b)

	return b.Build()
}

func (r *Responses) IsEqual(other *Responses) bool {
	if r == nil || other == nil {
		return r == other
	}

	return r.Map.IsEqualFunc(other.Map, isEqualReferenced[Response, *Response]) &&
		r.Extensions.IsEqual(other.Extensions)
}

// Response describes a single response from an API operation.
type Response struct {
	// Description is a short description of the response. May contain CommonMark syntax.
	Description string
	// Headers maps header names to their definition.
	Headers *Headers
	// Content maps media types to the response payload.
	Content *Content
	// Extensions provides a list of extensions to the Response object.
	Extensions *extensions.Extensions
}

// NewResponse creates a response with the given description.
func NewResponse(description string) *Response {
	return &Response{Description: description}
}

// GetDescription returns the value of the Description field. Returns empty string if not set.
func (r *Response) GetDescription() string {
	if r == nil {
		return ""
	}
	return r.Description
}

func (r *Response) Unmarshal(ctx context.Context, node *yaml.Node) error {
	o, err := marshaller.NewObject(ctx, node)
	if err != nil {
		return err
	}

	out := Response{
		Description: marshaller.RequiredField(o, "description", marshaller.DecodeString),
		Headers:     marshaller.FieldOr(o, "headers", nil, decodeHeaders),
		Content:     marshaller.FieldOr(o, "content", nil, decodeContent),
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

func (r *Response) Marshal(ctx context.Context) (*yaml.Node, error) {
	b := marshaller.NewObjectBuilder(ctx)

	b.RequiredString("description", r.Description)
	if r.Headers.Len() > 0 {
		marshaller.Encode(b, "headers", r.Headers, encodeHeaders)
	}
	if r.Content.Len() > 0 {
		marshaller.Encode(b, "content", r.Content, encodeContent)
	}
	r.Extensions.Encode(b)

	return b.Build()
}

func (r *Response) IsEqual(other *Response) bool {
	if r == nil || other == nil {
		return r == other
	}

	return r.Description == other.Description &&
		r.Headers.IsEqualFunc(other.Headers, isEqualReferenced[Header, *Header]) &&
		isEqualContent(r.Content, other.Content) &&
		r.Extensions.IsEqual(other.Extensions)
}
