// Package references models pointers from one part of a document into its shared component tables.
package references

import (
	"fmt"
	"strings"

	"github.com/speakeasy-api/openapikit/jsonpointer"
)

// ComponentType identifies one of the component tables a Reference can point into.
type ComponentType string

var _ fmt.Stringer = (*ComponentType)(nil)

func (c ComponentType) String() string {
	return string(c)
}

const (
	ComponentSchemas         ComponentType = "schemas"
	ComponentParameters      ComponentType = "parameters"
	ComponentResponses       ComponentType = "responses"
	ComponentExamples        ComponentType = "examples"
	ComponentRequestBodies   ComponentType = "requestBodies"
	ComponentHeaders         ComponentType = "headers"
	ComponentSecuritySchemes ComponentType = "securitySchemes"
	ComponentLinks           ComponentType = "links"
	ComponentCallbacks       ComponentType = "callbacks"
)

var componentTypes = []ComponentType{
	ComponentSchemas,
	ComponentParameters,
	ComponentResponses,
	ComponentExamples,
	ComponentRequestBodies,
	ComponentHeaders,
	ComponentSecuritySchemes,
	ComponentLinks,
	ComponentCallbacks,
}

// IsValid reports whether c is a known component table.
func (c ComponentType) IsValid() bool {
	for _, ct := range componentTypes {
		if ct == c {
			return true
		}
	}
	return false
}

const componentsPrefix = "#/components/"

// Reference is a pointer to a named entry in one of the document's component tables.
//
// A pointer of the form #/components/<table>/<name> is held as ComponentsPath and Name.
// Any other pointer (external documents, other sections, nested paths) is kept verbatim in Fragment.
// References are plain values and compare with ==.
type Reference struct {
	ComponentsPath ComponentType
	Name           string
	Fragment       string
}

var _ fmt.Stringer = (*Reference)(nil)

// Internal creates a reference to the named entry of a component table within the same document.
func Internal(componentsPath ComponentType, name string) Reference {
	return Reference{
		ComponentsPath: componentsPath,
		Name:           name,
	}
}

// Parse classifies a $ref pointer string. It never fails; pointers it can't classify are kept in Fragment.
func Parse(ref string) Reference {
	if !strings.HasPrefix(ref, componentsPrefix) {
		return Reference{Fragment: ref}
	}

	parts, err := jsonpointer.JSONPointer(strings.TrimPrefix(ref, "#")).Parts()
	if err != nil || len(parts) != 3 {
		return Reference{Fragment: ref}
	}

	ct := ComponentType(parts[1])
	if !ct.IsValid() {
		return Reference{Fragment: ref}
	}

	r := Internal(ct, parts[2])
	// Non canonical spellings (eg. needlessly escaped tokens) would not survive a round trip as Name.
	if r.String() != ref {
		return Reference{Fragment: ref}
	}

	return r
}

// IsInternal reports whether the reference points at a component table entry of the same document.
func (r Reference) IsInternal() bool {
	return r.Fragment == "" && r.ComponentsPath != ""
}

// GetJSONPointer returns the in-document pointer portion of the reference, or "" if it has none.
func (r Reference) GetJSONPointer() jsonpointer.JSONPointer {
	_, pointer, found := strings.Cut(r.String(), "#")
	if !found {
		return ""
	}
	return jsonpointer.JSONPointer(pointer)
}

// Validate checks the in-document pointer portion of the reference is a valid JSON pointer.
func (r Reference) Validate() error {
	if r.IsInternal() {
		if !r.ComponentsPath.IsValid() {
			return fmt.Errorf("unknown component type: %s", r.ComponentsPath)
		}
		if r.Name == "" {
			return fmt.Errorf("reference to %s has no name", r.ComponentsPath)
		}
		return nil
	}

	if r.Fragment == "" {
		return fmt.Errorf("reference is empty")
	}

	jp := r.GetJSONPointer()
	if jp == "" {
		return nil
	}

	if err := jp.Validate(); err != nil {
		return fmt.Errorf("invalid reference JSON pointer: %w", err)
	}

	return nil
}

func (r Reference) String() string {
	if !r.IsInternal() {
		return r.Fragment
	}

	return componentsPrefix + string(jsonpointer.PartsToJSONPointer([]string{string(r.ComponentsPath), r.Name}))[1:]
}
