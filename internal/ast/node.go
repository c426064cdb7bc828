// Package ast defines the syntax-node surface consumed by the semantic
// core. Construction of real trees belongs to the parser; the core only
// reads text, tokens, children and the weak stream back-reference.
package ast

import "github.com/AndroidModLoader/gta3sc/internal/token"

// NodeKind classifies a syntax node.
type NodeKind uint8

const (
	// NodeCommand is one command invocation (a statement line).
	NodeCommand NodeKind = iota
	// NodeArgument is one argument of a command.
	NodeArgument
	// NodeBlock groups child statements without carrying text itself.
	NodeBlock
)

// Node is a parsed syntax node. The stream back-reference is weak: it must
// be resolved through the registry at use time and may have expired.
type Node struct {
	kind     NodeKind
	text     string
	tok      token.Token
	stream   token.StreamID
	children []*Node
}

// NewNode builds a node carrying text and a token span.
func NewNode(kind NodeKind, text string, tok token.Token, stream token.StreamID) *Node {
	return &Node{kind: kind, text: text, tok: tok, stream: stream}
}

// NewGroup builds a textless node that only groups children.
func NewGroup(kind NodeKind, stream token.StreamID) *Node {
	return &Node{kind: kind, stream: stream}
}

// AddChild appends a child in source order.
func (n *Node) AddChild(child *Node) {
	n.children = append(n.children, child)
}

// Kind returns the node classification.
func (n *Node) Kind() NodeKind { return n.kind }

// HasText reports whether the node carries source text of its own.
func (n *Node) HasText() bool { return n.text != "" }

// Text returns the node's source text, empty for group nodes.
func (n *Node) Text() string { return n.text }

// Token returns the node's token span.
func (n *Node) Token() token.Token { return n.tok }

// Children returns the node's children in source order. The slice is owned
// by the node and must not be mutated.
func (n *Node) Children() []*Node { return n.children }

// StreamID returns the weak handle to the node's originating stream.
func (n *Node) StreamID() token.StreamID { return n.stream }
