// Package extensions carries the x- prefixed vendor extension members of a model, in declaration order.
package extensions

import (
	"context"
	"strings"

	"github.com/speakeasy-api/openapikit/errors"
	"github.com/speakeasy-api/openapikit/marshaller"
	"github.com/speakeasy-api/openapikit/sequencedmap"
	"github.com/speakeasy-api/openapikit/values"
	"github.com/speakeasy-api/openapikit/yml"
)

// Prefix marks a member as a vendor extension.
const Prefix = "x-"

// Extension represents a single extension to an object, in its raw form.
type Extension = values.Value

// Element represents a key/value pair of a set of extensions.
type Element = sequencedmap.Element[string, Extension]

// NewElem will create a new element for the extensions set.
func NewElem(key string, value Extension) *Element {
	return sequencedmap.NewElem(key, value)
}

// Extensions represents a set of extensions to an object.
type Extensions struct {
	*sequencedmap.Map[string, Extension]
}

// New will create a new extensions set.
func New(elements ...*Element) *Extensions {
	return &Extensions{
		Map: sequencedmap.New(elements...),
	}
}

// IsExtension reports whether a member name is a vendor extension.
func IsExtension(key string) bool {
	return strings.HasPrefix(key, Prefix)
}

// Len returns the number of extensions. It is safe to call on a nil set.
func (e *Extensions) Len() int {
	if e == nil {
		return 0
	}
	return e.Map.Len()
}

// GetOrZero returns the extension named key or nil.
func (e *Extensions) GetOrZero(key string) Extension {
	if e == nil {
		return nil
	}
	return e.Map.GetOrZero(key)
}

// IsEqual compares two sets of extensions, including their order.
func (e *Extensions) IsEqual(other *Extensions) bool {
	var a, b *sequencedmap.Map[string, Extension]
	if e != nil {
		a = e.Map
	}
	if other != nil {
		b = other.Map
	}
	return a.IsEqualFunc(b, values.IsEqual)
}

// Decode collects the extension members of an object. It returns nil when the object declares none.
func Decode(o *marshaller.Object) (*Extensions, error) {
	var e *Extensions

	for key := range o.Keys() {
		if !IsExtension(key) {
			continue
		}

		fieldCtx, node, _ := o.Get(key)
		v, err := marshaller.DecodeValue(fieldCtx, node)
		if err != nil {
			return nil, err
		}

		if e == nil {
			e = New()
		}
		e.Set(key, v)
	}

	return e, nil
}

// Encode appends the extensions to an object being built.
func (e *Extensions) Encode(b *marshaller.ObjectBuilder) {
	if e.Len() == 0 {
		return
	}

	for key, v := range e.All() {
		marshaller.Encode(b, key, v, marshaller.EncodeValue)
	}
}

// UnmarshalExtensionModel decodes the extension named ext into m.
func UnmarshalExtensionModel[T any](ctx context.Context, e *Extensions, ext string, m *T, decode marshaller.DecodeFunc[T]) error {
	node := e.GetOrZero(ext)
	if node == nil {
		return marshaller.NewError(ctx, errors.ErrMissingField, nil, "extension %s not found", ext)
	}

	v, err := decode(marshaller.WithField(ctx, ext, node), yml.ResolveAlias(node))
	if err != nil {
		return err
	}
	*m = v

	return nil
}
