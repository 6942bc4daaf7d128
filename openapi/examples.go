package openapi

import (
	"context"

	"github.com/speakeasy-api/openapikit/errors"
	"github.com/speakeasy-api/openapikit/extensions"
	"github.com/speakeasy-api/openapikit/marshaller"
	"github.com/speakeasy-api/openapikit/pointer"
	"github.com/speakeasy-api/openapikit/sequencedmap"
	"github.com/speakeasy-api/openapikit/values"
	"gopkg.in/yaml.v3"
)

// Example is a named example of a parameter, header or media type value.
type Example struct {
	// Summary is a short summary of the example.
	Summary *string
	// Description is a description of the example.
	Description *string
	// Value is the example value. Mutually exclusive with ExternalValue.
	Value values.Value
	// ExternalValue is a URI to the location of the example value. Mutually exclusive with Value.
	ExternalValue *string
	// Extensions provides a list of extensions to the Example object.
	Extensions *extensions.Extensions
}

// GetSummary returns the value of the Summary field. Returns empty string if not set.
func (e *Example) GetSummary() string {
	if e == nil {
		return ""
	}
	return pointer.ValueOrZero(e.Summary)
}

// GetValue returns the value of the Value field. Returns nil if not set.
func (e *Example) GetValue() values.Value {
	if e == nil {
		return nil
	}
	return e.Value
}

// Unmarshal decodes an example. When both value and externalValue are declared, value is kept.
func (e *Example) Unmarshal(ctx context.Context, node *yaml.Node) error {
	o, err := marshaller.NewObject(ctx, node)
	if err != nil {
		return err
	}

	out := Example{
		Summary:     marshaller.Field(o, "summary", marshaller.DecodeString),
		Description: marshaller.Field(o, "description", marshaller.DecodeString),
		Value:       marshaller.ValueField(o, "value"),
	}
	if out.Value == nil {
		out.ExternalValue = marshaller.Field(o, "externalValue", marshaller.DecodeString)
	} else if o.Has("externalValue") {
		marshaller.GetLogger(ctx).Debug("ignoring externalValue declared alongside value", "path", marshaller.PathFromContext(ctx))
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

func (e *Example) Marshal(ctx context.Context) (*yaml.Node, error) {
	b := marshaller.NewObjectBuilder(ctx)

	b.String("summary", e.Summary)
	b.String("description", e.Description)

	switch {
	case e.Value != nil && e.ExternalValue != nil:
		b.Fail(marshaller.NewError(ctx, errors.ErrAmbiguousAlternates, nil, "value and externalValue are mutually exclusive"))
	case e.Value != nil:
		marshaller.Encode(b, "value", e.Value, marshaller.EncodeValue)
	default:
		b.String("externalValue", e.ExternalValue)
	}

	e.Extensions.Encode(b)

	return b.Build()
}

func (e *Example) IsEqual(other *Example) bool {
	if e == nil || other == nil {
		return e == other
	}

	return pointer.Equal(e.Summary, other.Summary) &&
		pointer.Equal(e.Description, other.Description) &&
		values.IsEqual(e.Value, other.Value) &&
		pointer.Equal(e.ExternalValue, other.ExternalValue) &&
		e.Extensions.IsEqual(other.Extensions)
}

// Examples is an ordered map of named examples.
type Examples = sequencedmap.Map[string, *ReferencedExample]

// NewExamples creates an ordered map of named examples.
func NewExamples(elements ...*sequencedmap.Element[string, *ReferencedExample]) *Examples {
	return sequencedmap.New(elements...)
}

// FirstExample returns the value of the first declared example when it is inline, otherwise nil.
// It is the single example derived for models that only declare examples.
func FirstExample(examples *Examples) values.Value {
	first := examples.First()
	if first == nil || !first.Value.IsRight() {
		return nil
	}
	return first.Value.GetRight().GetValue()
}

// decodeExampleGroup resolves the example/examples alternate pair of an object.
// A declared example is preferred and examples is then dropped; otherwise example is derived from the first entry of examples.
func decodeExampleGroup(o *marshaller.Object) (values.Value, *Examples) {
	if o.Has("example") {
		if o.Has("examples") {
			marshaller.GetLogger(o.Context()).Debug("ignoring examples declared alongside example", "path", marshaller.PathFromContext(o.Context()))
		}
		return marshaller.ValueField(o, "example"), nil
	}

	examples := marshaller.FieldOr(o, "examples", nil, decodeExamples)
	if examples.Len() == 0 {
		return nil, examples
	}

	example := FirstExample(examples)
	if example != nil {
		marshaller.GetLogger(o.Context()).Debug("derived example from first entry of examples", "path", marshaller.PathFromContext(o.Context()), "name", examples.First().Key)
	}
	return example, examples
}

// encodeExampleGroup writes exactly one member of the example/examples pair, preferring examples.
// An example that is not the one derived from examples cannot be written and is reported as ambiguous.
func encodeExampleGroup(b *marshaller.ObjectBuilder, example values.Value, examples *Examples) {
	if examples.Len() > 0 {
		if example != nil && !values.IsEqual(example, FirstExample(examples)) {
			b.Fail(marshaller.NewError(b.Context(), errors.ErrAmbiguousAlternates, nil, "example conflicts with the first entry of examples"))
			return
		}
		marshaller.Encode(b, "examples", examples, encodeExamples)
		return
	}

	if example != nil {
		marshaller.Encode(b, "example", example, marshaller.EncodeValue)
	}
}

func decodeExamples(ctx context.Context, node *yaml.Node) (*Examples, error) {
	return marshaller.DecodeMap(ctx, node, marshaller.StringKey, decodeReferenced[Example, *Example])
}

func encodeExamples(ctx context.Context, m *Examples) (*yaml.Node, error) {
	return marshaller.EncodeMap(ctx, m, marshaller.StringKeyString, encodeReferenced[Example, *Example])
}

func isEqualExamples(a, b *Examples) bool {
	return a.IsEqualFunc(b, isEqualReferenced[Example, *Example])
}
