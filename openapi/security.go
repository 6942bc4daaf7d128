package openapi

import (
	"context"
	"slices"

	"github.com/speakeasy-api/openapikit/errors"
	"github.com/speakeasy-api/openapikit/marshaller"
	"github.com/speakeasy-api/openapikit/references"
	"github.com/speakeasy-api/openapikit/sequencedmap"
	"gopkg.in/yaml.v3"
)

// SecurityRequirement lists the security schemes that together authorize a request, with the scopes each requires.
// Schemes are keyed by a reference into #/components/securitySchemes but persisted by name only.
// A scheme without scopes keeps an empty scope list.
type SecurityRequirement struct {
	*sequencedmap.Map[references.Reference, []string]
}

// NewSecurityRequirement creates a requirement from scheme name and scope pairs in order.
func NewSecurityRequirement(elements ...*sequencedmap.Element[references.Reference, []string]) *SecurityRequirement {
	return &SecurityRequirement{
		Map: sequencedmap.New(elements...),
	}
}

// NewSecurityScheme creates a requirement entry for the named security scheme.
func NewSecurityScheme(name string, scopes ...string) *sequencedmap.Element[references.Reference, []string] {
	if scopes == nil {
		scopes = []string{}
	}
	return sequencedmap.NewElem(references.Internal(references.ComponentSecuritySchemes, name), scopes)
}

func (s *SecurityRequirement) Unmarshal(ctx context.Context, node *yaml.Node) error {
	m, err := marshaller.DecodeMap(ctx, node, decodeSecuritySchemeKey, marshaller.DecodeStrings)
	if err != nil {
		return err
	}

	s.Map = m
	return nil
}

func (s *SecurityRequirement) Marshal(ctx context.Context) (*yaml.Node, error) {
	for k := range s.Keys() {
		if k.ComponentsPath != references.ComponentSecuritySchemes || !k.IsInternal() {
			return nil, marshaller.NewError(marshaller.WithField(ctx, k.String(), nil), errors.ErrTypeMismatch, nil, "security requirements can only reference %s", references.ComponentSecuritySchemes)
		}
	}

	return marshaller.EncodeMap(ctx, s.Map, encodeSecuritySchemeKey, marshaller.EncodeStrings)
}

func (s *SecurityRequirement) IsEqual(other *SecurityRequirement) bool {
	if s == nil || other == nil {
		return s == other
	}

	return s.Map.IsEqualFunc(other.Map, func(a, b []string) bool {
		return slices.Equal(a, b)
	})
}

func decodeSecuritySchemeKey(_ context.Context, key string) (references.Reference, error) {
	return references.Internal(references.ComponentSecuritySchemes, key), nil
}

func encodeSecuritySchemeKey(key references.Reference) string {
	return key.Name
}

func decodeSecurity(ctx context.Context, node *yaml.Node) ([]*SecurityRequirement, error) {
	return marshaller.DecodeSlice(ctx, node, marshaller.DecodeModel[SecurityRequirement, *SecurityRequirement])
}

func encodeSecurity(ctx context.Context, security []*SecurityRequirement) (*yaml.Node, error) {
	return marshaller.EncodeSlice(ctx, security, marshaller.EncodeModel[*SecurityRequirement])
}
