package openapi

import "fmt"

// Location is where a parameter is passed in a request. It is not persisted on its own:
// it is read from a parameter's "in" member and decides the defaults of the parameter's serialization.
type Location string

var _ fmt.Stringer = (*Location)(nil)

func (l Location) String() string {
	return string(l)
}

const (
	// LocationQuery represents a parameter passed in the query string.
	LocationQuery Location = "query"
	// LocationHeader represents a parameter passed in a request header.
	LocationHeader Location = "header"
	// LocationPath represents a parameter templated into the path.
	LocationPath Location = "path"
	// LocationCookie represents a parameter passed in a cookie.
	LocationCookie Location = "cookie"
)

var locations = []Location{LocationQuery, LocationHeader, LocationPath, LocationCookie}

// SerializationStyle represents the serialization style of a parameter.
type SerializationStyle string

var _ fmt.Stringer = (*SerializationStyle)(nil)

func (s SerializationStyle) String() string {
	return string(s)
}

const (
	// SerializationStyleForm represents form serialization as defined by RFC 6570. Valid for query, cookie parameters.
	SerializationStyleForm SerializationStyle = "form"
	// SerializationStyleSimple represents simple serialization as defined by RFC 6570. Valid for path, header parameters.
	SerializationStyleSimple SerializationStyle = "simple"
	// SerializationStyleMatrix represents matrix serialization as defined by RFC 6570. Valid for path parameters.
	SerializationStyleMatrix SerializationStyle = "matrix"
	// SerializationStyleLabel represents label serialization as defined by RFC 6570. Valid for path parameters.
	SerializationStyleLabel SerializationStyle = "label"
	// SerializationStyleSpaceDelimited represents space-delimited serialization. Valid for query parameters.
	SerializationStyleSpaceDelimited SerializationStyle = "spaceDelimited"
	// SerializationStylePipeDelimited represents pipe-delimited serialization. Valid for query parameters.
	SerializationStylePipeDelimited SerializationStyle = "pipeDelimited"
	// SerializationStyleDeepObject represents deep object serialization for rendering nested objects using form parameters. Valid for query parameters.
	SerializationStyleDeepObject SerializationStyle = "deepObject"
)

var serializationStyles = []SerializationStyle{
	SerializationStyleForm,
	SerializationStyleSimple,
	SerializationStyleMatrix,
	SerializationStyleLabel,
	SerializationStyleSpaceDelimited,
	SerializationStylePipeDelimited,
	SerializationStyleDeepObject,
}

// DefaultStyleFor returns the style a parameter at loc has when it declares none:
// form for query and cookie parameters, simple for path and header parameters.
func DefaultStyleFor(loc Location) SerializationStyle {
	switch loc {
	case LocationQuery, LocationCookie:
		return SerializationStyleForm
	case LocationPath, LocationHeader:
		return SerializationStyleSimple
	default:
		return ""
	}
}

// DefaultExplode returns the explode value implied by the style: true for form, false otherwise.
func (s SerializationStyle) DefaultExplode() bool {
	return s == SerializationStyleForm
}
