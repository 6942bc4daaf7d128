package openapi_test

import (
	"context"
	"slices"
	"testing"

	"github.com/speakeasy-api/openapikit/errors"
	"github.com/speakeasy-api/openapikit/openapi"
	"github.com/speakeasy-api/openapikit/pointer"
	"github.com/speakeasy-api/openapikit/references"
	"github.com/speakeasy-api/openapikit/sequencedmap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParameter_Unmarshal_Success(t *testing.T) {
	t.Parallel()

	var p openapi.Parameter
	unmarshal(t, `
name: id
in: path
description: The pet id
style: label
schema:
  type: integer
x-speakeasy-name-override: petId
`, &p)

	assert.Equal(t, "id", p.GetName())
	assert.Equal(t, openapi.LocationPath, p.GetIn())
	assert.Equal(t, "The pet id", p.GetDescription())
	assert.True(t, p.Required, "path parameters default to required")
	assert.False(t, p.Deprecated)

	require.NotNil(t, p.Schema)
	assert.Equal(t, openapi.SerializationStyleLabel, p.Schema.Style)
	assert.False(t, p.Schema.Explode)
	assert.Nil(t, p.Content)
	assert.Equal(t, 1, p.Extensions.Len())
}

func TestParameter_Marshal_Success(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		param    *openapi.Parameter
		expected string
	}{
		{
			name:  "path parameter",
			param: openapi.NewParameter("id", openapi.LocationPath, openapi.NewParameterSchemaFor(integerSchema(), openapi.LocationPath)),
			expected: `{
  "name": "id",
  "in": "path",
  "required": true,
  "schema": {
    "type": "integer"
  }
}
`,
		},
		{
			name: "deprecated query parameter",
			param: &openapi.Parameter{
				Name:            "q",
				In:              openapi.LocationQuery,
				Description:     pointer.From("search terms"),
				Deprecated:      true,
				AllowEmptyValue: true,
				Schema:          openapi.NewParameterSchema(integerSchema(), openapi.SerializationStyleSpaceDelimited),
			},
			expected: `{
  "name": "q",
  "in": "query",
  "description": "search terms",
  "deprecated": true,
  "allowEmptyValue": true,
  "style": "spaceDelimited",
  "schema": {
    "type": "integer"
  }
}
`,
		},
		{
			name: "header parameter with content",
			param: &openapi.Parameter{
				Name: "X-Filter",
				In:   openapi.LocationHeader,
				Content: openapi.NewContent(sequencedmap.NewElem("application/json", &openapi.MediaType{
					Schema: integerSchema(),
				})),
			},
			expected: `{
  "name": "X-Filter",
  "in": "header",
  "content": {
    "application/json": {
      "schema": {
        "type": "integer"
      }
    }
  }
}
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, toJSON(t, tt.param))

			var decoded openapi.Parameter
			unmarshal(t, tt.expected, &decoded)
			assert.True(t, tt.param.IsEqual(&decoded))
		})
	}
}

func TestParameter_Unmarshal_SchemaPreferredOverContent_Success(t *testing.T) {
	t.Parallel()

	var p openapi.Parameter
	unmarshal(t, `
name: filter
in: query
schema:
  type: integer
content:
  application/json:
    schema:
      type: string
`, &p)

	require.NotNil(t, p.Schema)
	assert.Nil(t, p.Content)
}

func TestParameter_Required_RoundTrip_Success(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name             string
		src              string
		expectedRequired bool
		expectedJSON     string
	}{
		{
			name:             "path parameter explicitly not required",
			src:              "name: id\nin: path\nrequired: false\nschema: {type: string}\n",
			expectedRequired: false,
			expectedJSON:     "{\n  \"name\": \"id\",\n  \"in\": \"path\",\n  \"required\": false,\n  \"schema\": {\n    \"type\": \"string\"\n  }\n}\n",
		},
		{
			name:             "path parameter defaults to required",
			src:              "name: id\nin: path\nschema: {type: string}\n",
			expectedRequired: true,
			expectedJSON:     "{\n  \"name\": \"id\",\n  \"in\": \"path\",\n  \"required\": true,\n  \"schema\": {\n    \"type\": \"string\"\n  }\n}\n",
		},
		{
			name:             "query parameter not required",
			src:              "name: q\nin: query\nrequired: false\nschema: {type: string}\n",
			expectedRequired: false,
			expectedJSON:     "{\n  \"name\": \"q\",\n  \"in\": \"query\",\n  \"schema\": {\n    \"type\": \"string\"\n  }\n}\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var p openapi.Parameter
			unmarshal(t, tt.src, &p)
			assert.Equal(t, tt.expectedRequired, p.Required)
			assert.Equal(t, tt.expectedJSON, toJSON(t, &p))

			node, err := p.Marshal(context.Background())
			require.NoError(t, err)

			var decoded openapi.Parameter
			require.NoError(t, decoded.Unmarshal(context.Background(), node))
			assert.Equal(t, tt.expectedRequired, decoded.Required)
			assert.True(t, p.IsEqual(&decoded))
		})
	}
}

func TestParameter_Unmarshal_Error(t *testing.T) {
	t.Parallel()

	var p openapi.Parameter
	err := p.Unmarshal(context.Background(), mustParse(t, "in: query\nschema: {type: string}"))
	require.ErrorIs(t, err, errors.ErrMissingField)
	assert.Contains(t, err.Error(), "name")
}

func TestHeader_RoundTrip_Success(t *testing.T) {
	t.Parallel()

	var h openapi.Header
	unmarshal(t, `
description: Rate limit
required: true
explode: true
schema:
  type: integer
example: 100
`, &h)

	require.NotNil(t, h.Schema)
	assert.Equal(t, openapi.SerializationStyleSimple, h.Schema.Style)
	assert.True(t, h.Schema.Explode)
	assert.Equal(t, "100", h.Schema.Example.Value)

	expected := `{
  "description": "Rate limit",
  "required": true,
  "explode": true,
  "schema": {
    "type": "integer"
  },
  "example": 100
}
`
	assert.Equal(t, expected, toJSON(t, &h))
}

func TestResponse_Headers_Success(t *testing.T) {
	t.Parallel()

	var r openapi.Response
	unmarshal(t, `
description: ok
headers:
  X-Rate-Limit:
    schema:
      type: integer
  X-Trace:
    $ref: '#/components/headers/Trace'
content:
  application/json:
    schema:
      $ref: '#/components/schemas/Pet'
`, &r)

	assert.Equal(t, "ok", r.GetDescription())
	assert.Equal(t, []string{"X-Rate-Limit", "X-Trace"}, slices.Collect(r.Headers.Keys()))
	assert.True(t, r.Headers.GetOrZero("X-Rate-Limit").IsRight())
	assert.True(t, r.Headers.GetOrZero("X-Trace").IsLeft())
	assert.True(t, r.Content.GetOrZero("application/json").GetSchema().IsLeft())

	node, err := r.Marshal(context.Background())
	require.NoError(t, err)

	var decoded openapi.Response
	require.NoError(t, decoded.Unmarshal(context.Background(), node))
	assert.True(t, r.IsEqual(&decoded))
}

func TestResponse_Marshal_Headers_Success(t *testing.T) {
	t.Parallel()

	r := openapi.NewResponse("ok")
	r.Headers = sequencedmap.New(
		sequencedmap.NewElem("X-Rate-Limit", openapi.NewReferencedHeaderFromHeader(&openapi.Header{
			Required: true,
			Schema:   openapi.NewParameterSchemaFor(integerSchema(), openapi.LocationHeader),
		})),
		sequencedmap.NewElem("X-Trace", openapi.NewReferencedHeaderFromReference(references.Internal(references.ComponentHeaders, "Trace"))),
	)

	expected := `{
  "description": "ok",
  "headers": {
    "X-Rate-Limit": {
      "required": true,
      "schema": {
        "type": "integer"
      }
    },
    "X-Trace": {
      "$ref": "#/components/headers/Trace"
    }
  }
}
`
	assert.Equal(t, expected, toJSON(t, r))
}

func TestParameter_GetStyle_Success(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name            string
		param           *openapi.Parameter
		expectedStyle   openapi.SerializationStyle
		expectedExplode bool
	}{
		{
			name:            "nil",
			expectedStyle:   "",
			expectedExplode: false,
		},
		{
			name:            "query schema",
			param:           openapi.NewParameter("q", openapi.LocationQuery, openapi.NewParameterSchema(integerSchema(), openapi.SerializationStylePipeDelimited)),
			expectedStyle:   openapi.SerializationStylePipeDelimited,
			expectedExplode: false,
		},
		{
			name:            "cookie content",
			param:           &openapi.Parameter{Name: "c", In: openapi.LocationCookie, Content: openapi.NewContent()},
			expectedStyle:   openapi.SerializationStyleForm,
			expectedExplode: true,
		},
		{
			name:            "header schema with explode",
			param:           openapi.NewParameter("X-Id", openapi.LocationHeader, openapi.NewParameterSchemaFor(integerSchema(), openapi.LocationHeader, openapi.WithExplode(true))),
			expectedStyle:   openapi.SerializationStyleSimple,
			expectedExplode: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expectedStyle, tt.param.GetStyle())
			assert.Equal(t, tt.expectedExplode, tt.param.GetExplode())
		})
	}
}
