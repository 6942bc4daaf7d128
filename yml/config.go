package yml

import (
	"bytes"
	"context"
	"strconv"

	"gopkg.in/yaml.v3"
)

type contextKey string

func (c contextKey) String() string {
	return "yml-context-key-" + string(c)
}

const configContextKey = contextKey("config")

type OutputFormat string

const (
	OutputFormatJSON OutputFormat = "json"
	OutputFormatYAML OutputFormat = "yaml"
)

type IndentationStyle string

const (
	IndentationStyleSpace IndentationStyle = "space"
	IndentationStyleTab   IndentationStyle = "tab"
)

func (i IndentationStyle) ToIndent() string {
	switch i {
	case IndentationStyleSpace:
		return " "
	case IndentationStyleTab:
		return "\t"
	default:
		return ""
	}
}

// Config controls how node trees are printed.
type Config struct {
	KeyStringStyle   yaml.Style       // The default string style to use when creating new keys
	ValueStringStyle yaml.Style       // The default string style to use when creating new nodes
	Indentation      int              // The indentation level of the document
	IndentationStyle IndentationStyle // The indentation style of the document valid for JSON only
	OutputFormat     OutputFormat     // The output format to use when marshalling
	OriginalFormat   OutputFormat     // The original input format, helps detect when we are changing formats
	TrailingNewline  bool             // Whether the original document had a trailing newline
}

var defaultConfig = &Config{
	Indentation:      2,
	IndentationStyle: IndentationStyleSpace,
	OutputFormat:     OutputFormatYAML,
	OriginalFormat:   OutputFormatYAML,
	TrailingNewline:  true,
}

func GetDefaultConfig() *Config {
	cfg := *defaultConfig
	return &cfg
}

func ContextWithConfig(ctx context.Context, config *Config) context.Context {
	if config == nil {
		return ctx
	}

	return context.WithValue(ctx, configContextKey, config)
}

func GetConfigFromContext(ctx context.Context) *Config {
	if ctx == nil {
		return GetDefaultConfig()
	}

	cfg, ok := ctx.Value(configContextKey).(*Config)
	if !ok || cfg == nil {
		return GetDefaultConfig()
	}

	return cfg
}

// GetConfigFromDoc inspects the raw document and its parsed tree to detect the format, indentation and string styles it was written with.
func GetConfigFromDoc(data []byte, doc *yaml.Node) *Config {
	cfg := *defaultConfig

	cfg.OutputFormat, cfg.Indentation, cfg.IndentationStyle = inspectData(data)
	cfg.OriginalFormat = cfg.OutputFormat
	cfg.TrailingNewline = len(data) > 0 && data[len(data)-1] == '\n'

	// JSON input keeps the default YAML styles
	if cfg.OriginalFormat == OutputFormatYAML && doc != nil {
		getGlobalStringStyle(doc, &cfg)
	}

	return &cfg
}

func inspectData(data []byte) (OutputFormat, int, IndentationStyle) {
	lines := bytes.Split(bytes.TrimSpace(data), []byte("\n"))

	foundIndentation := false
	foundDocFormat := false

	indentation := 2
	indentationStyle := IndentationStyleSpace
	docFormat := OutputFormatYAML

	minLeadingWhitespace := -1

	for i, line := range lines {
		trimLine := bytes.TrimSpace(line)

		if len(trimLine) == 0 {
			continue
		}

		switch trimLine[0] {
		case '#':
			continue
		case '{', '[':
			if !foundDocFormat && minLeadingWhitespace == -1 {
				docFormat = OutputFormatJSON
			}
			foundDocFormat = true
		}

		leading := 0
		for leading < len(line) && (line[leading] == ' ' || line[leading] == '\t') {
			leading++
		}

		if minLeadingWhitespace == -1 || leading < minLeadingWhitespace {
			minLeadingWhitespace = leading
		}

		if leading > minLeadingWhitespace && !foundIndentation {
			ws := line[minLeadingWhitespace:leading]

			indentation = 0
			if ws[0] == '\t' {
				indentationStyle = IndentationStyleTab
			}
			for _, ch := range ws {
				if ch != ws[0] {
					break
				}
				indentation++
			}
			foundIndentation = true
		}

		if foundIndentation && (foundDocFormat || i > 10) {
			break
		}
	}

	return docFormat, indentation, indentationStyle
}

func getGlobalStringStyle(doc *yaml.Node, cfg *Config) {
	const minSamples = 3

	keyStyles := make([]yaml.Style, 0, minSamples)
	valueStyles := make([]yaml.Style, 0, minSamples)

	var navigate func(node *yaml.Node)
	navigate = func(node *yaml.Node) {
		if node == nil || (len(keyStyles) >= minSamples && len(valueStyles) >= minSamples) {
			return
		}

		switch node.Kind {
		case yaml.DocumentNode, yaml.SequenceNode:
			for _, n := range node.Content {
				navigate(n)
			}
		case yaml.MappingNode:
			for i, n := range node.Content {
				if i%2 == 0 {
					if n.Kind == yaml.ScalarNode && n.Tag == "!!str" && len(keyStyles) < minSamples {
						keyStyles = append(keyStyles, n.Style)
					}
				} else {
					navigate(n)
				}
			}
		case yaml.ScalarNode:
			// quoted numbers need their quotes and don't say anything about the document's style
			if node.Tag == "!!str" && len(valueStyles) < minSamples && !looksLikeNumber(node.Value) {
				valueStyles = append(valueStyles, node.Style)
			}
		}
	}

	navigate(doc)

	if len(keyStyles) > 0 {
		cfg.KeyStringStyle = mostCommonStyle(keyStyles)
	}
	if len(valueStyles) > 0 {
		cfg.ValueStringStyle = mostCommonStyle(valueStyles)
	}
}

func looksLikeNumber(s string) bool {
	if s == "" {
		return false
	}

	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}

// mostCommonStyle returns the most frequent style, preferring the earliest seen on ties.
func mostCommonStyle(styles []yaml.Style) yaml.Style {
	counts := make(map[yaml.Style]int, len(styles))
	for _, style := range styles {
		counts[style]++
	}

	var mostCommon yaml.Style
	maxCount := 0
	for _, style := range styles {
		if counts[style] > maxCount {
			maxCount = counts[style]
			mostCommon = style
		}
	}

	return mostCommon
}
