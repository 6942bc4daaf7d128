package oas3

type SchemaType string

const (
	SchemaTypeArray   SchemaType = "array"
	SchemaTypeBoolean SchemaType = "boolean"
	SchemaTypeInteger SchemaType = "integer"
	SchemaTypeNumber  SchemaType = "number"
	SchemaTypeObject  SchemaType = "object"
	SchemaTypeString  SchemaType = "string"
)

var schemaTypes = []SchemaType{
	SchemaTypeArray,
	SchemaTypeBoolean,
	SchemaTypeInteger,
	SchemaTypeNumber,
	SchemaTypeObject,
	SchemaTypeString,
}
