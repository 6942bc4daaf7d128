package marshaller

import (
	"context"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

type contextKey string

func (c contextKey) String() string {
	return "marshaller-context-key-" + string(c)
}

const pathContextKey = contextKey("path")

// pathSegment is an immutable linked list so sibling fields can share their parent's path.
type pathSegment struct {
	parent  *pathSegment
	name    string
	isIndex bool
	node    *yaml.Node
}

// WithField returns a context whose path has the named field appended. node is the field's value node, if any.
func WithField(ctx context.Context, name string, node *yaml.Node) context.Context {
	parent, _ := ctx.Value(pathContextKey).(*pathSegment)
	return context.WithValue(ctx, pathContextKey, &pathSegment{parent: parent, name: name, node: node})
}

// WithIndex returns a context whose path has the sequence index appended.
func WithIndex(ctx context.Context, index int, node *yaml.Node) context.Context {
	parent, _ := ctx.Value(pathContextKey).(*pathSegment)
	return context.WithValue(ctx, pathContextKey, &pathSegment{parent: parent, name: strconv.Itoa(index), isIndex: true, node: node})
}

// PathFromContext renders the current field path, eg. "parameters[0].schema".
func PathFromContext(ctx context.Context) string {
	seg, _ := ctx.Value(pathContextKey).(*pathSegment)
	if seg == nil {
		return ""
	}

	var segments []*pathSegment
	for s := seg; s != nil; s = s.parent {
		segments = append(segments, s)
	}

	var sb strings.Builder
	for i := len(segments) - 1; i >= 0; i-- {
		s := segments[i]
		if s.isIndex {
			sb.WriteString("[")
			sb.WriteString(s.name)
			sb.WriteString("]")
			continue
		}
		if sb.Len() > 0 {
			sb.WriteString(".")
		}
		sb.WriteString(s.name)
	}

	return sb.String()
}

func positionFromContext(ctx context.Context) *yaml.Node {
	for s, _ := ctx.Value(pathContextKey).(*pathSegment); s != nil; s = s.parent {
		if s.node != nil {
			return s.node
		}
	}
	return nil
}

func joinPath(path, name string) string {
	if path == "" {
		return name
	}
	return path + "." + name
}
