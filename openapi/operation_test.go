package openapi_test

import (
	"bytes"
	"context"
	"fmt"
	"slices"
	"strings"
	"testing"

	"github.com/speakeasy-api/openapikit/errors"
	"github.com/speakeasy-api/openapikit/extensions"
	"github.com/speakeasy-api/openapikit/jsonschema/oas3"
	"github.com/speakeasy-api/openapikit/marshaller"
	"github.com/speakeasy-api/openapikit/openapi"
	"github.com/speakeasy-api/openapikit/pointer"
	"github.com/speakeasy-api/openapikit/references"
	"github.com/speakeasy-api/openapikit/sequencedmap"
	"github.com/speakeasy-api/openapikit/yml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

func jsonContext() context.Context {
	return yml.ContextWithConfig(context.Background(), &yml.Config{
		OutputFormat:     yml.OutputFormatJSON,
		OriginalFormat:   yml.OutputFormatJSON,
		Indentation:      2,
		IndentationStyle: yml.IndentationStyleSpace,
	})
}

// toJSON encodes m and prints it as indented JSON.
func toJSON(t *testing.T, m marshaller.Marshaller) string {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, marshaller.Marshal(jsonContext(), m, &buf))
	return buf.String()
}

func unmarshal(t *testing.T, src string, out marshaller.Unmarshaller) {
	t.Helper()

	_, err := marshaller.Unmarshal(context.Background(), strings.NewReader(src), out)
	require.NoError(t, err)
}

func mustParse(t *testing.T, src string) *yaml.Node {
	t.Helper()

	var doc yaml.Node
	require.NoError(t, yaml.Unmarshal([]byte(src), &doc))
	require.NotEmpty(t, doc.Content)
	return doc.Content[0]
}

func integerSchema() *oas3.JSONSchema {
	return oas3.NewJSONSchemaFromSchema(&oas3.Schema{Type: pointer.From(oas3.SchemaTypeInteger)})
}

func maximalOperation() *openapi.Operation {
	return openapi.NewOperation(
		openapi.NewResponses(
			sequencedmap.NewElem(openapi.NewStatusCode(200), openapi.NewReferencedResponseFromResponse(openapi.NewResponse("ok"))),
			sequencedmap.NewElem(openapi.ResponseKeyDefault, openapi.NewReferencedResponseFromReference(references.Internal(references.ComponentResponses, "Error"))),
		),
		openapi.WithTags("pets", "store"),
		openapi.WithSummary("List pets"),
		openapi.WithDescription("Lists all pets"),
		openapi.WithExternalDocs(&openapi.ExternalDocumentation{URL: "https://example.com/docs"}),
		openapi.WithOperationID("listPets"),
		openapi.WithParameters(
			openapi.NewReferencedParameterFromParameter(openapi.NewParameter("limit", openapi.LocationQuery,
				openapi.NewParameterSchemaFor(integerSchema(), openapi.LocationQuery, openapi.WithExplode(false)))),
			openapi.NewReferencedParameterFromReference(references.Internal(references.ComponentParameters, "hello")),
		),
		openapi.WithRequestBody(openapi.NewReferencedRequestBodyFromRequestBody(openapi.NewRequestBody(openapi.NewContent(
			sequencedmap.NewElem("application/json", &openapi.MediaType{
				Schema: oas3.NewJSONSchemaFromReference(references.Internal(references.ComponentSchemas, "Pet")),
			}),
		)))),
		openapi.WithDeprecated(true),
		openapi.WithSecurity(
			openapi.NewSecurityRequirement(openapi.NewSecurityScheme("api_key")),
			openapi.NewSecurityRequirement(openapi.NewSecurityScheme("oauth", "read:pets")),
		),
		openapi.WithServers(&openapi.Server{URL: "https://api.example.com"}),
		openapi.WithExtensions(extensions.New(extensions.NewElem("x-speakeasy-retries", yml.CreateBoolNode(true)))),
	)
}

const maximalOperationJSON = `{
  "tags": [
    "pets",
    "store"
  ],
  "summary": "List pets",
  "description": "Lists all pets",
  "externalDocs": {
    "url": "https://example.com/docs"
  },
  "operationId": "listPets",
  "parameters": [
    {
      "name": "limit",
      "in": "query",
      "explode": false,
      "schema": {
        "type": "integer"
      }
    },
    {
      "$ref": "#/components/parameters/hello"
    }
  ],
  "requestBody": {
    "content": {
      "application/json": {
        "schema": {
          "$ref": "#/components/schemas/Pet"
        }
      }
    }
  },
  "responses": {
    "200": {
      "description": "ok"
    },
    "default": {
      "$ref": "#/components/responses/Error"
    }
  },
  "deprecated": true,
  "security": [
    {
      "api_key": []
    },
    {
      "oauth": [
        "read:pets"
      ]
    }
  ],
  "servers": [
    {
      "url": "https://api.example.com"
    }
  ],
  "x-speakeasy-retries": true
}
`

func TestOperation_Marshal_Maximal_Success(t *testing.T) {
	t.Parallel()

	assert.Equal(t, maximalOperationJSON, toJSON(t, maximalOperation()))
}

func TestOperation_Unmarshal_Maximal_Success(t *testing.T) {
	t.Parallel()

	var op openapi.Operation
	unmarshal(t, maximalOperationJSON, &op)

	assert.True(t, maximalOperation().IsEqual(&op), "decoded operation should equal the built one")

	assert.Equal(t, []string{"pets", "store"}, op.Tags)
	assert.Equal(t, "listPets", op.GetOperationID())
	assert.True(t, op.IsDeprecated())

	require.Len(t, op.Parameters, 2)
	limit := op.Parameters[0].GetRight()
	require.NotNil(t, limit)
	assert.Equal(t, openapi.SerializationStyleForm, limit.Schema.Style)
	assert.False(t, limit.Schema.Explode)
	assert.Equal(t, references.Internal(references.ComponentParameters, "hello"), op.Parameters[1].LeftValue())

	require.Len(t, op.Security, 2)
	scopes, ok := op.Security[0].Get(references.Internal(references.ComponentSecuritySchemes, "api_key"))
	require.True(t, ok)
	assert.Empty(t, scopes)

	assert.True(t, op.Responses.GetDefault().IsLeft())
	assert.Equal(t, "https://api.example.com", op.Servers[0].GetURL())
}

func TestOperation_Minimal_Success(t *testing.T) {
	t.Parallel()

	op := openapi.NewOperation(nil)
	assert.Equal(t, "{\n  \"responses\": {}\n}\n", toJSON(t, op))

	var decoded openapi.Operation
	unmarshal(t, `{"responses": {}}`, &decoded)

	require.NotNil(t, decoded.Responses)
	assert.Equal(t, 0, decoded.Responses.Len())
	assert.Nil(t, decoded.Tags)
	assert.Nil(t, decoded.Summary)
	assert.False(t, decoded.Deprecated)
	assert.True(t, op.IsEqual(&decoded))
}

func TestOperation_Unmarshal_ResponsesOrder_Success(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		src      string
		expected []openapi.ResponseKey
	}{
		{
			name: "404 before 200",
			src: `responses:
  404:
    description: not found
  200:
    description: ok
`,
			expected: []openapi.ResponseKey{"404", "200"},
		},
		{
			name: "200 before 404",
			src: `responses:
  200:
    description: ok
  404:
    description: not found
`,
			expected: []openapi.ResponseKey{"200", "404"},
		},
		{
			name: "default and ranges keep their position",
			src: `responses:
  default:
    description: error
  2XX:
    description: ok
  "301":
    description: moved
`,
			expected: []openapi.ResponseKey{openapi.ResponseKeyDefault, "2XX", "301"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var op openapi.Operation
			unmarshal(t, tt.src, &op)
			assert.Equal(t, tt.expected, slices.Collect(op.Responses.Keys()))

			node, err := op.Marshal(context.Background())
			require.NoError(t, err)

			var reencoded openapi.Operation
			require.NoError(t, reencoded.Unmarshal(context.Background(), node))
			assert.Equal(t, tt.expected, slices.Collect(reencoded.Responses.Keys()))

			out := toJSON(t, &op)
			for i := 1; i < len(tt.expected); i++ {
				assert.Less(t, strings.Index(out, `"`+tt.expected[i-1].String()+`"`), strings.Index(out, `"`+tt.expected[i].String()+`"`))
			}
		})
	}
}

func TestOperation_Unmarshal_Error(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		src          string
		expectedKind errors.Error
		expectedPath string
	}{
		{
			name:         "missing responses",
			src:          `summary: no responses`,
			expectedKind: errors.ErrMissingField,
			expectedPath: "responses",
		},
		{
			name: "response without description",
			src: `responses:
  200:
    content: {}
`,
			expectedKind: errors.ErrMissingField,
			expectedPath: "responses.200.description",
		},
		{
			name: "invalid response key",
			src: `responses:
  ok:
    description: ok
`,
			expectedKind: errors.ErrInvalidEnumValue,
			expectedPath: "responses.ok",
		},
		{
			name: "parameter with unknown location",
			src: `parameters:
  - name: id
    in: body
    schema:
      type: string
responses: {}
`,
			expectedKind: errors.ErrInvalidEnumValue,
			expectedPath: "parameters[0].in",
		},
		{
			name: "parameter with unknown style",
			src: `parameters:
  - name: id
    in: query
    style: tabDelimited
    schema:
      type: string
responses: {}
`,
			expectedKind: errors.ErrInvalidEnumValue,
			expectedPath: "parameters[0].style",
		},
		{
			name: "parameter without schema or content",
			src: `parameters:
  - name: id
    in: path
responses: {}
`,
			expectedKind: errors.ErrMissingField,
			expectedPath: "parameters[0].schema",
		},
		{
			name:         "tags is not a sequence",
			src:          `{"tags": "pets", "responses": {}}`,
			expectedKind: errors.ErrTypeMismatch,
			expectedPath: "tags",
		},
		{
			name:         "deprecated is not a boolean",
			src:          `{"deprecated": "yes", "responses": {}}`,
			expectedKind: errors.ErrTypeMismatch,
			expectedPath: "deprecated",
		},
		{
			name:         "server without url",
			src:          `{"servers": [{"description": "prod"}], "responses": {}}`,
			expectedKind: errors.ErrMissingField,
			expectedPath: "servers[0].url",
		},
		{
			name:         "operation is not an object",
			src:          `[]`,
			expectedKind: errors.ErrTypeMismatch,
			expectedPath: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var op openapi.Operation
			_, err := marshaller.Unmarshal(context.Background(), strings.NewReader(tt.src), &op)
			require.Error(t, err)
			require.ErrorIs(t, err, tt.expectedKind)

			var merr *marshaller.Error
			require.ErrorAs(t, err, &merr)
			assert.Equal(t, tt.expectedPath, merr.Path)
		})
	}
}

func TestOperation_Unmarshal_ParameterReference_Success(t *testing.T) {
	t.Parallel()

	src := `{"parameters": [{"$ref": "#/components/parameters/hello"}], "responses": {}}`

	var op openapi.Operation
	unmarshal(t, src, &op)

	require.Len(t, op.Parameters, 1)
	require.True(t, op.Parameters[0].IsLeft())
	assert.Equal(t, references.Reference{ComponentsPath: references.ComponentParameters, Name: "hello"}, op.Parameters[0].LeftValue())

	expected := `{
  "parameters": [
    {
      "$ref": "#/components/parameters/hello"
    }
  ],
  "responses": {}
}
`
	assert.Equal(t, expected, toJSON(t, &op))
}

func TestOperation_Marshal_OmitsEmptyFields_Success(t *testing.T) {
	t.Parallel()

	op := openapi.NewOperation(openapi.NewResponses(),
		openapi.WithTags(),
		openapi.WithParameters(),
		openapi.WithSecurity(),
		openapi.WithServers(),
		openapi.WithDeprecated(false),
	)

	assert.Equal(t, "{\n  \"responses\": {}\n}\n", toJSON(t, op))
}

func TestOperation_Marshal_Error(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		op           *openapi.Operation
		expectedKind errors.Error
		expectedPath string
	}{
		{
			name: "parameter with schema and content",
			op: openapi.NewOperation(nil, openapi.WithParameters(openapi.NewReferencedParameterFromParameter(&openapi.Parameter{
				Name:    "id",
				In:      openapi.LocationQuery,
				Schema:  openapi.NewParameterSchemaFor(integerSchema(), openapi.LocationQuery),
				Content: openapi.NewContent(sequencedmap.NewElem("text/plain", &openapi.MediaType{})),
			}))),
			expectedKind: errors.ErrAmbiguousAlternates,
			expectedPath: "parameters[0]",
		},
		{
			name: "parameter without schema or content",
			op: openapi.NewOperation(nil, openapi.WithParameters(openapi.NewReferencedParameterFromParameter(&openapi.Parameter{
				Name: "id",
				In:   openapi.LocationQuery,
			}))),
			expectedKind: errors.ErrMissingField,
			expectedPath: "parameters[0]",
		},
		{
			name:         "empty request body either",
			op:           openapi.NewOperation(nil, openapi.WithRequestBody(&openapi.ReferencedRequestBody{})),
			expectedKind: errors.ErrTypeMismatch,
			expectedPath: "requestBody",
		},
		{
			name: "security requirement referencing another table",
			op: openapi.NewOperation(nil, openapi.WithSecurity(openapi.NewSecurityRequirement(
				sequencedmap.NewElem(references.Internal(references.ComponentSchemas, "Pet"), []string{}),
			))),
			expectedKind: errors.ErrTypeMismatch,
			expectedPath: "security[0].#/components/schemas/Pet",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := tt.op.Marshal(context.Background())
			require.ErrorIs(t, err, tt.expectedKind)

			var merr *marshaller.Error
			require.ErrorAs(t, err, &merr)
			assert.Equal(t, tt.expectedPath, merr.Path)
		})
	}
}

func TestOperation_Unmarshal_Extensions_Success(t *testing.T) {
	t.Parallel()

	src := `x-b: 2
responses: {}
x-a:
  nested: true
`
	var op openapi.Operation
	unmarshal(t, src, &op)

	require.Equal(t, 2, op.Extensions.Len())
	assert.Equal(t, []string{"x-b", "x-a"}, slices.Collect(op.Extensions.Keys()))

	expected := `{
  "responses": {},
  "x-b": 2,
  "x-a": {
    "nested": true
  }
}
`
	assert.Equal(t, expected, toJSON(t, &op))
}

func TestOperation_Concurrent_Success(t *testing.T) {
	t.Parallel()

	var g errgroup.Group
	for i := range 32 {
		g.Go(func() error {
			src := fmt.Sprintf(`{"operationId": "op%d", "responses": {"%d": {"description": "ok"}}}`, i, 200+i)

			var op openapi.Operation
			if _, err := marshaller.Unmarshal(context.Background(), strings.NewReader(src), &op); err != nil {
				return err
			}
			if op.GetOperationID() != fmt.Sprintf("op%d", i) {
				return fmt.Errorf("unexpected operation id %q", op.GetOperationID())
			}

			var buf bytes.Buffer
			if err := marshaller.Marshal(jsonContext(), &op, &buf); err != nil {
				return err
			}
			if !strings.Contains(buf.String(), fmt.Sprintf(`"%d"`, 200+i)) {
				return fmt.Errorf("response %d missing from %s", 200+i, buf.String())
			}
			return nil
		})
	}

	require.NoError(t, g.Wait())
}

func TestOperation_Marshal_JSONKeepsMarkup_Success(t *testing.T) {
	t.Parallel()

	op := openapi.NewOperation(nil, openapi.WithSummary("<b>a & b</b>"))

	assert.Equal(t, "{\n  \"summary\": \"<b>a & b</b>\",\n  \"responses\": {}\n}\n", toJSON(t, op))
}
