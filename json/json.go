// Package json prints YAML node trees as JSON without reordering keys.
package json

import (
	"bytes"
	"fmt"
	"io"
	"math"

	"github.com/goccy/go-json"
	"github.com/speakeasy-api/openapikit/yml"
	"gopkg.in/yaml.v3"
)

// YAMLToJSON will convert the provided YAML node to JSON in a stable way not reordering keys.
// indent is repeated once per nesting level; an empty indent prints compact JSON.
// Output ends with a newline.
func YAMLToJSON(node *yaml.Node, indent string, w io.Writer) error {
	p := &printer{indent: indent}

	if err := p.node(node, 0); err != nil {
		return err
	}
	p.buf.WriteByte('\n')

	_, err := w.Write(p.buf.Bytes())
	return err
}

type printer struct {
	buf    bytes.Buffer
	indent string
}

func (p *printer) node(node *yaml.Node, depth int) error {
	if node == nil {
		p.buf.WriteString("null")
		return nil
	}

	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			p.buf.WriteString("null")
			return nil
		}
		return p.node(node.Content[0], depth)
	case yaml.AliasNode:
		return p.node(node.Alias, depth)
	case yaml.MappingNode:
		return p.mapping(node, depth)
	case yaml.SequenceNode:
		return p.sequence(node, depth)
	case yaml.ScalarNode:
		return p.scalar(node)
	default:
		return fmt.Errorf("unknown node kind: %s", yml.NodeKindToString(node.Kind))
	}
}

func (p *printer) mapping(node *yaml.Node, depth int) error {
	if len(node.Content) == 0 {
		p.buf.WriteString("{}")
		return nil
	}

	p.buf.WriteByte('{')
	for i := 0; i+1 < len(node.Content); i += 2 {
		if i > 0 {
			p.buf.WriteByte(',')
		}
		p.newline(depth + 1)

		key := yml.ResolveAlias(node.Content[i])
		if key == nil || key.Kind != yaml.ScalarNode {
			return fmt.Errorf("line %d: mapping keys must be scalars to print as JSON", node.Content[i].Line)
		}
		if err := p.str(key.Value); err != nil {
			return err
		}

		p.buf.WriteByte(':')
		if p.indent != "" {
			p.buf.WriteByte(' ')
		}

		if err := p.node(node.Content[i+1], depth+1); err != nil {
			return err
		}
	}
	p.newline(depth)
	p.buf.WriteByte('}')

	return nil
}

func (p *printer) sequence(node *yaml.Node, depth int) error {
	if len(node.Content) == 0 {
		p.buf.WriteString("[]")
		return nil
	}

	p.buf.WriteByte('[')
	for i, elem := range node.Content {
		if i > 0 {
			p.buf.WriteByte(',')
		}
		p.newline(depth + 1)

		if err := p.node(elem, depth+1); err != nil {
			return err
		}
	}
	p.newline(depth)
	p.buf.WriteByte(']')

	return nil
}

func (p *printer) scalar(node *yaml.Node) error {
	switch node.ShortTag() {
	case "!!null":
		p.buf.WriteString("null")
		return nil
	case "!!bool", "!!int":
		var v any
		if err := node.Decode(&v); err != nil {
			return err
		}
		return p.value(v)
	case "!!float":
		var f float64
		if err := node.Decode(&f); err != nil {
			return err
		}
		if math.IsInf(f, 0) || math.IsNaN(f) {
			return fmt.Errorf("line %d: %s cannot be represented in JSON", node.Line, node.Value)
		}
		return p.value(f)
	default:
		return p.str(node.Value)
	}
}

func (p *printer) str(s string) error {
	b, err := json.MarshalWithOption(s, json.DisableHTMLEscape())
	if err != nil {
		return err
	}
	p.buf.Write(b)
	return nil
}

func (p *printer) value(v any) error {
	b, err := json.MarshalWithOption(v, json.DisableHTMLEscape())
	if err != nil {
		return err
	}
	p.buf.Write(b)
	return nil
}

func (p *printer) newline(depth int) {
	if p.indent == "" {
		return
	}
	p.buf.WriteByte('\n')
	for range depth {
		p.buf.WriteString(p.indent)
	}
}
