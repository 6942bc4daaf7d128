package openapi_test

import (
	"context"
	"slices"
	"strings"
	"testing"

	"github.com/speakeasy-api/openapikit/errors"
	"github.com/speakeasy-api/openapikit/marshaller"
	"github.com/speakeasy-api/openapikit/openapi"
	"github.com/speakeasy-api/openapikit/references"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServer_RoundTrip_Success(t *testing.T) {
	t.Parallel()

	src := `{
  "url": "https://{region}.example.com/{version}",
  "description": "Regional endpoint",
  "variables": {
    "region": {
      "enum": [
        "eu",
        "us"
      ],
      "default": "eu"
    },
    "version": {
      "default": "v1",
      "description": "API version"
    }
  }
}
`
	var s openapi.Server
	unmarshal(t, src, &s)

	assert.Equal(t, "https://{region}.example.com/{version}", s.GetURL())
	assert.Equal(t, []string{"region", "version"}, slices.Collect(s.Variables.Keys()))
	assert.Equal(t, []string{"eu", "us"}, s.Variables.GetOrZero("region").Enum)

	assert.Equal(t, src, toJSON(t, &s))
}

func TestServerVariable_Unmarshal_Error(t *testing.T) {
	t.Parallel()

	var s openapi.Server
	_, err := marshaller.Unmarshal(context.Background(), strings.NewReader(`{"url": "/", "variables": {"region": {"enum": ["eu"]}}}`), &s)
	require.ErrorIs(t, err, errors.ErrMissingField)

	var merr *marshaller.Error
	require.ErrorAs(t, err, &merr)
	assert.Equal(t, "variables.region.default", merr.Path)
}

func TestSecurityRequirement_RoundTrip_Success(t *testing.T) {
	t.Parallel()

	src := `{
  "oauth": [
    "read:pets",
    "write:pets"
  ],
  "api_key": []
}
`
	var s openapi.SecurityRequirement
	unmarshal(t, src, &s)

	assert.Equal(t, []references.Reference{
		references.Internal(references.ComponentSecuritySchemes, "oauth"),
		references.Internal(references.ComponentSecuritySchemes, "api_key"),
	}, slices.Collect(s.Keys()))

	assert.Equal(t, src, toJSON(t, &s))
	assert.True(t, s.IsEqual(openapi.NewSecurityRequirement(
		openapi.NewSecurityScheme("oauth", "read:pets", "write:pets"),
		openapi.NewSecurityScheme("api_key"),
	)))
}
