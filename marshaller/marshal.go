package marshaller

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/speakeasy-api/openapikit/errors"
	"github.com/speakeasy-api/openapikit/json"
	"github.com/speakeasy-api/openapikit/yml"
	"gopkg.in/yaml.v3"
)

// Unmarshal reads a JSON or YAML document from r and decodes it into out.
// The returned config describes how the input was written so it can be passed to yml.ContextWithConfig to print the document back in the same format.
func Unmarshal(ctx context.Context, r io.Reader, out Unmarshaller) (*yml.Config, error) {
	root, cfg, err := Parse(ctx, r)
	if err != nil {
		return nil, err
	}

	if err := out.Unmarshal(yml.ContextWithConfig(ctx, cfg), root); err != nil {
		return nil, err
	}

	return cfg, nil
}

// UnmarshalFor reads a document from r and decodes it into out within context c, eg. the location of a parameter schema.
func UnmarshalFor[C any](ctx context.Context, r io.Reader, out ContextualUnmarshaller[C], c C) (*yml.Config, error) {
	root, cfg, err := Parse(ctx, r)
	if err != nil {
		return nil, err
	}

	if err := out.UnmarshalFor(yml.ContextWithConfig(ctx, cfg), root, c); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Parse reads r into a node tree, returning the root content node and the config detected from the input.
func Parse(ctx context.Context, r io.Reader) (*yaml.Node, *yml.Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read document: %w", err)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, nil, fmt.Errorf("failed to parse document: %w", err)
	}

	root := yml.ResolveDocument(&doc)
	if root == nil {
		return nil, nil, NewError(ctx, errors.ErrTypeMismatch, nil, "empty document")
	}

	cfg := yml.GetConfigFromDoc(data, &doc)
	GetLogger(ctx).Debug("parsed document", "format", cfg.OriginalFormat, "indentation", cfg.Indentation, "indentationStyle", cfg.IndentationStyle)

	return root, cfg, nil
}

// Marshal encodes m and prints it to w in the format configured on the context.
func Marshal(ctx context.Context, m Marshaller, w io.Writer) error {
	node, err := m.Marshal(ctx)
	if err != nil {
		return err
	}

	return Print(ctx, node, w)
}

// MarshalFor encodes m within context c and prints it to w.
func MarshalFor[C any](ctx context.Context, m ContextualMarshaller[C], c C, w io.Writer) error {
	node, err := m.MarshalFor(ctx, c)
	if err != nil {
		return err
	}

	return Print(ctx, node, w)
}

// Print writes a node tree to w as YAML or JSON depending on the config on the context.
func Print(ctx context.Context, node *yaml.Node, w io.Writer) error {
	cfg := yml.GetConfigFromContext(ctx)

	switch cfg.OutputFormat {
	case yml.OutputFormatYAML:
		if cfg.OriginalFormat == yml.OutputFormatJSON {
			node = yml.Clone(node)
			resetNodeStylesForYAML(node, cfg, false)
		}

		enc := yaml.NewEncoder(w)
		enc.SetIndent(cfg.Indentation)
		if err := enc.Encode(node); err != nil {
			return err
		}
		return enc.Close()
	case yml.OutputFormatJSON:
		indent := strings.Repeat(cfg.IndentationStyle.ToIndent(), cfg.Indentation)
		return json.YAMLToJSON(node, indent, w)
	default:
		return fmt.Errorf("unsupported output format: %s", cfg.OutputFormat)
	}
}

// resetNodeStylesForYAML drops the flow and quoting styles JSON input is parsed with.
func resetNodeStylesForYAML(node *yaml.Node, cfg *yml.Config, isKey bool) {
	if node == nil {
		return
	}

	if node.Kind == yaml.ScalarNode && node.Tag == "!!str" {
		if isKey {
			node.Style = cfg.KeyStringStyle
		} else {
			node.Style = cfg.ValueStringStyle
		}
	} else {
		node.Style = 0
	}

	for i, child := range node.Content {
		resetNodeStylesForYAML(child, cfg, node.Kind == yaml.MappingNode && i%2 == 0)
	}
}
