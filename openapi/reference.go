package openapi

import (
	"context"

	"github.com/speakeasy-api/openapikit/marshaller"
	"github.com/speakeasy-api/openapikit/references"
	"gopkg.in/yaml.v3"
)

type (
	// ReferencedParameter is a parameter or a reference to one in #/components/parameters.
	ReferencedParameter = marshaller.Referenceable[Parameter]
	// ReferencedRequestBody is a request body or a reference to one in #/components/requestBodies.
	ReferencedRequestBody = marshaller.Referenceable[RequestBody]
	// ReferencedResponse is a response or a reference to one in #/components/responses.
	ReferencedResponse = marshaller.Referenceable[Response]
	// ReferencedExample is an example or a reference to one in #/components/examples.
	ReferencedExample = marshaller.Referenceable[Example]
	// ReferencedHeader is a header or a reference to one in #/components/headers.
	ReferencedHeader = marshaller.Referenceable[Header]
)

func NewReferencedParameterFromReference(ref references.Reference) *ReferencedParameter {
	return &ReferencedParameter{Left: &ref}
}

func NewReferencedParameterFromParameter(p *Parameter) *ReferencedParameter {
	return &ReferencedParameter{Right: p}
}

func NewReferencedRequestBodyFromReference(ref references.Reference) *ReferencedRequestBody {
	return &ReferencedRequestBody{Left: &ref}
}

func NewReferencedRequestBodyFromRequestBody(r *RequestBody) *ReferencedRequestBody {
	return &ReferencedRequestBody{Right: r}
}

func NewReferencedResponseFromReference(ref references.Reference) *ReferencedResponse {
	return &ReferencedResponse{Left: &ref}
}

func NewReferencedResponseFromResponse(r *Response) *ReferencedResponse {
	return &ReferencedResponse{Right: r}
}

func NewReferencedExampleFromReference(ref references.Reference) *ReferencedExample {
	return &ReferencedExample{Left: &ref}
}

func NewReferencedExampleFromExample(e *Example) *ReferencedExample {
	return &ReferencedExample{Right: e}
}

func NewReferencedHeaderFromReference(ref references.Reference) *ReferencedHeader {
	return &ReferencedHeader{Left: &ref}
}

func NewReferencedHeaderFromHeader(h *Header) *ReferencedHeader {
	return &ReferencedHeader{Right: h}
}

type model[T any] interface {
	*T
	marshaller.Unmarshaller
	marshaller.Marshaller
	IsEqual(other *T) bool
}

func decodeReferenced[T any, PT model[T]](ctx context.Context, node *yaml.Node) (*marshaller.Referenceable[T], error) {
	return marshaller.DecodeReferenceable[T](marshaller.DecodeModel[T, PT])(ctx, node)
}

func encodeReferenced[T any, PT model[T]](ctx context.Context, r *marshaller.Referenceable[T]) (*yaml.Node, error) {
	return marshaller.EncodeReferenceable[T](func(ctx context.Context, v *T) (*yaml.Node, error) {
		return PT(v).Marshal(ctx)
	})(ctx, r)
}

func isEqualReferenced[T any, PT model[T]](a, b *marshaller.Referenceable[T]) bool {
	if a == nil || b == nil {
		return a == b
	}
	return marshaller.IsEqualReferenceable(a, b, func(x, y *T) bool {
		return PT(x).IsEqual(y)
	})
}
