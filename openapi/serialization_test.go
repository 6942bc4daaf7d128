package openapi_test

import (
	"testing"

	"github.com/speakeasy-api/openapikit/openapi"
	"github.com/stretchr/testify/assert"
)

func TestDefaultStyleFor_Success(t *testing.T) {
	t.Parallel()

	tests := []struct {
		loc      openapi.Location
		expected openapi.SerializationStyle
	}{
		{loc: openapi.LocationQuery, expected: openapi.SerializationStyleForm},
		{loc: openapi.LocationCookie, expected: openapi.SerializationStyleForm},
		{loc: openapi.LocationPath, expected: openapi.SerializationStyleSimple},
		{loc: openapi.LocationHeader, expected: openapi.SerializationStyleSimple},
		{loc: openapi.Location("body"), expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.loc.String(), func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, openapi.DefaultStyleFor(tt.loc))
		})
	}
}

func TestSerializationStyle_DefaultExplode_Success(t *testing.T) {
	t.Parallel()

	tests := []struct {
		style    openapi.SerializationStyle
		expected bool
	}{
		{style: openapi.SerializationStyleForm, expected: true},
		{style: openapi.SerializationStyleSimple, expected: false},
		{style: openapi.SerializationStyleMatrix, expected: false},
		{style: openapi.SerializationStyleLabel, expected: false},
		{style: openapi.SerializationStyleSpaceDelimited, expected: false},
		{style: openapi.SerializationStylePipeDelimited, expected: false},
		{style: openapi.SerializationStyleDeepObject, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.style.String(), func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, tt.style.DefaultExplode())
		})
	}
}
