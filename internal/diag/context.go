package diag

import (
	"github.com/AndroidModLoader/gta3sc/internal/ast"
	"github.com/AndroidModLoader/gta3sc/internal/token"
)

// Context describes where in the source a diagnostic points. The variant
// is closed: only the five shapes below implement it.
type Context interface {
	sealedContext()
}

// NoContext reports a diagnostic with no source location.
type NoContext struct{}

// RawPos carries an explicit location. Line and Col are 1-based; zero
// means unknown. Stream may be nil when no source excerpt is available.
type RawPos struct {
	Stream *token.Stream
	Name   string
	Line   uint32
	Col    uint32
}

// UnitContext points at a whole translation unit: known file, unknown
// line and column.
type UnitContext struct {
	Name string
}

// TokenContext points at a half-open token span within a stream. A span
// with Begin == End is treated as positionless within that stream.
type TokenContext struct {
	Stream *token.Stream
	Begin  uint32
	End    uint32
}

// NodeContext points at a parsed syntax node. The node's stream is a weak
// handle resolved through Streams at render time.
type NodeContext struct {
	Node    *ast.Node
	Streams *token.Registry
}

func (NoContext) sealedContext()    {}
func (RawPos) sealedContext()       {}
func (UnitContext) sealedContext()  {}
func (TokenContext) sealedContext() {}
func (NodeContext) sealedContext()  {}

// located is the (stream, name, line, col) triple a context resolves to.
type located struct {
	stream *token.Stream
	name   string
	line   uint32
	col    uint32
}

// resolve reduces a context to a renderable location. The second result is
// false when a NodeContext cannot be resolved to any token stream, which
// the renderer reports as an internal error.
func resolve(ctx Context) (located, bool) {
	switch c := ctx.(type) {
	case NoContext, nil:
		return located{}, true

	case RawPos:
		return located{stream: c.Stream, name: c.Name, line: c.Line, col: c.Col}, true

	case UnitContext:
		return located{name: c.Name}, true

	case TokenContext:
		if c.Begin == c.End {
			return located{name: c.Stream.Name()}, true
		}
		lc := c.Stream.LineColFromOffset(c.Begin)
		return located{stream: c.Stream, name: c.Stream.Name(), line: lc.Line, col: lc.Col}, true

	case NodeContext:
		node := c.Node
		if node != nil && !node.HasText() {
			for _, child := range node.Children() {
				if child.HasText() {
					node = child
					break
				}
			}
		}
		if node == nil || !node.HasText() {
			return located{}, false
		}
		var stream *token.Stream
		if c.Streams != nil {
			stream = c.Streams.Get(node.StreamID())
		}
		if stream == nil {
			return located{}, false
		}
		return resolve(TokenContext{Stream: stream, Begin: node.Token().Begin, End: node.Token().End})
	}
	return located{}, true
}
