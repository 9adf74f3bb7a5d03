package syntax

import (
	"fmt"
	"strings"
)

// Kind classifies a parse tree node.
type Kind int

const (
	KindIdentifier Kind = iota
	KindNumber
	KindString
	KindComposite
)

func (k Kind) String() string {
	switch k {
	case KindIdentifier:
		return "IDENTIFIER"
	case KindNumber:
		return "NUMERIC_LITERAL"
	case KindString:
		return "STRING_LITERAL"
	case KindComposite:
		return "composite"
	default:
		return "UNKNOWN"
	}
}

// Node is an atom or a composite in the parse tree.
type Node struct {
	Kind Kind

	// Text is the raw token for atoms and the NODE_TYPE for composites.
	Text string

	// Fields holds a composite's operands in order.
	Fields []*Node

	// Pos is the byte offset of the token, or of '(' for composites.
	Pos int
}

// IsAtom reports whether n is a leaf token.
func (n *Node) IsAtom() bool { return n.Kind != KindComposite }

// String renders n back to text with single spaces.
func (n *Node) String() string {
	if n.IsAtom() {
		return n.Text
	}
	var sb strings.Builder
	sb.WriteByte('(')
	sb.WriteString(n.Text)
	for _, f := range n.Fields {
		sb.WriteByte(' ')
		sb.WriteString(f.String())
	}
	sb.WriteByte(')')
	return sb.String()
}

// Record is the top-level unit: Expr is nil for an empty record.
type Record struct {
	Expr *Node
	// Source is the text the record was parsed from.
	Source string
}

// IsEmpty reports whether the record holds no expression.
func (r *Record) IsEmpty() bool { return r.Expr == nil }

func (r *Record) String() string {
	if r.Expr == nil {
		return ""
	}
	return r.Expr.String()
}

// GoString is used by %#v in test failure output.
func (n *Node) GoString() string {
	return fmt.Sprintf("syntax.Node{%s %q @%d}", n.Kind, n.String(), n.Pos)
}
