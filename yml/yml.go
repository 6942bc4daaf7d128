// Package yml provides helpers for building, inspecting and comparing yaml.v3 node trees.
package yml

import (
	"context"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// CreateStringNode creates a string scalar using the value string style from the context config.
func CreateStringNode(ctx context.Context, value string) *yaml.Node {
	cfg := GetConfigFromContext(ctx)

	return &yaml.Node{
		Value: value,
		Kind:  yaml.ScalarNode,
		Tag:   "!!str",
		Style: cfg.ValueStringStyle,
	}
}

// CreateKeyNode creates a mapping key using the key string style from the context config.
func CreateKeyNode(ctx context.Context, key string) *yaml.Node {
	cfg := GetConfigFromContext(ctx)

	return &yaml.Node{
		Value: key,
		Kind:  yaml.ScalarNode,
		Tag:   "!!str",
		Style: cfg.KeyStringStyle,
	}
}

func CreateIntNode(value int64) *yaml.Node {
	return &yaml.Node{
		Value: strconv.FormatInt(value, 10),
		Kind:  yaml.ScalarNode,
		Tag:   "!!int",
	}
}

// CreateFloatNode creates a number scalar. Integral values are written without a fraction and tagged as ints.
func CreateFloatNode(value float64) *yaml.Node {
	v := strconv.FormatFloat(value, 'f', -1, 64)

	tag := "!!float"
	if !strings.ContainsAny(v, ".") {
		tag = "!!int"
	}

	return &yaml.Node{
		Value: v,
		Kind:  yaml.ScalarNode,
		Tag:   tag,
	}
}

func CreateBoolNode(value bool) *yaml.Node {
	return &yaml.Node{
		Value: strconv.FormatBool(value),
		Kind:  yaml.ScalarNode,
		Tag:   "!!bool",
	}
}

func CreateMapNode(ctx context.Context, content []*yaml.Node) *yaml.Node {
	return &yaml.Node{
		Content: content,
		Kind:    yaml.MappingNode,
		Tag:     "!!map",
	}
}

func CreateSliceNode(elements []*yaml.Node) *yaml.Node {
	if elements == nil {
		elements = []*yaml.Node{}
	}

	return &yaml.Node{
		Content: elements,
		Kind:    yaml.SequenceNode,
		Tag:     "!!seq",
	}
}

// CreateStringSliceNode creates a sequence of string scalars.
func CreateStringSliceNode(ctx context.Context, values []string) *yaml.Node {
	elements := make([]*yaml.Node, 0, len(values))
	for _, v := range values {
		elements = append(elements, CreateStringNode(ctx, v))
	}
	return CreateSliceNode(elements)
}

// AppendMapNodeElement appends a key/value pair to a mapping node.
func AppendMapNodeElement(ctx context.Context, mapNode *yaml.Node, key string, valueNode *yaml.Node) {
	mapNode.Content = append(mapNode.Content, CreateKeyNode(ctx, key), valueNode)
}

// GetMapElementNodes returns the key and value nodes for key within mapNode.
func GetMapElementNodes(ctx context.Context, mapNode *yaml.Node, key string) (*yaml.Node, *yaml.Node, bool) {
	resolvedMapNode := ResolveAlias(mapNode)
	if resolvedMapNode == nil {
		return nil, nil, false
	}

	if resolvedMapNode.Kind != yaml.MappingNode {
		return nil, nil, false
	}

	for i := 0; i+1 < len(resolvedMapNode.Content); i += 2 {
		keyNode := resolvedMapNode.Content[i]
		if keyNode.Value == key {
			return keyNode, resolvedMapNode.Content[i+1], true
		}
		// Check alias resolution match for alias keys like *keyAlias
		if resolvedKeyNode := ResolveAlias(keyNode); resolvedKeyNode != nil && resolvedKeyNode.Value == key {
			return keyNode, resolvedMapNode.Content[i+1], true
		}
	}

	return nil, nil, false
}

func ResolveAlias(node *yaml.Node) *yaml.Node {
	if node == nil {
		return nil
	}

	switch node.Kind {
	case yaml.AliasNode:
		return ResolveAlias(node.Alias)
	default:
		return node
	}
}

// ResolveDocument unwraps a document node to its root content node.
func ResolveDocument(node *yaml.Node) *yaml.Node {
	if node != nil && node.Kind == yaml.DocumentNode {
		if len(node.Content) == 0 {
			return nil
		}
		return ResolveAlias(node.Content[0])
	}
	return ResolveAlias(node)
}

// EqualNodes compares two yaml.Node instances for equality.
// Styles, comments and positions are ignored; tags, values and content are compared deeply.
func EqualNodes(a, b *yaml.Node) bool {
	resolvedA := ResolveDocument(a)
	resolvedB := ResolveDocument(b)

	if resolvedA == nil && resolvedB == nil {
		return true
	}
	if resolvedA == nil || resolvedB == nil {
		return false
	}

	if resolvedA.Kind != resolvedB.Kind {
		return false
	}
	if resolvedA.ShortTag() != resolvedB.ShortTag() {
		return false
	}
	if resolvedA.Value != resolvedB.Value {
		return false
	}

	if len(resolvedA.Content) != len(resolvedB.Content) {
		return false
	}
	for i, contentA := range resolvedA.Content {
		if !EqualNodes(contentA, resolvedB.Content[i]) {
			return false
		}
	}

	return true
}

// NodeKindToString returns a human-readable string representation of a yaml.Kind.
func NodeKindToString(kind yaml.Kind) string {
	switch kind {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "object"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	default:
		return "unknown"
	}
}

// NodeTagToString returns a human-readable name for a resolved node tag.
func NodeTagToString(tag string) string {
	switch tag {
	case "!!str":
		return "string"
	case "!!int":
		return "int"
	case "!!float":
		return "float"
	case "!!bool":
		return "bool"
	case "!!map":
		return "object"
	case "!!seq":
		return "sequence"
	case "!!null":
		return "null"
	default:
		return tag
	}
}

// Describe returns a short description of the node's shape for error messages.
func Describe(node *yaml.Node) string {
	resolved := ResolveAlias(node)
	if resolved == nil {
		return "nothing"
	}
	if resolved.Kind == yaml.ScalarNode {
		return NodeTagToString(resolved.ShortTag())
	}
	return NodeKindToString(resolved.Kind)
}

// Clone deep copies a node, expanding aliases and dropping anchors and comments so the copy can be printed on its own.
func Clone(node *yaml.Node) *yaml.Node {
	resolved := ResolveDocument(node)
	if resolved == nil {
		return nil
	}

	c := &yaml.Node{
		Kind:   resolved.Kind,
		Style:  resolved.Style,
		Tag:    resolved.Tag,
		Value:  resolved.Value,
		Line:   resolved.Line,
		Column: resolved.Column,
	}

	if len(resolved.Content) > 0 {
		c.Content = make([]*yaml.Node, 0, len(resolved.Content))
		for _, child := range resolved.Content {
			c.Content = append(c.Content, Clone(child))
		}
	}

	return c
}
