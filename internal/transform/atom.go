package transform

import (
	"unicode/utf8"

	"github.com/iris-hep/qastle/internal/ast"
	"github.com/iris-hep/qastle/internal/errs"
	"github.com/iris-hep/qastle/internal/literal"
	"github.com/iris-hep/qastle/internal/syntax"
)

// Host constant names that decode to literal nodes rather than identifiers.
const (
	trueName  = "True"
	falseName = "False"
	noneName  = "None"
)

// decodeAtom converts a leaf token into a leaf node.
func (d *decoder) decodeAtom(n *syntax.Node) (ast.Expr, error) {
	switch n.Kind {
	case syntax.KindIdentifier:
		switch n.Text {
		case trueName:
			return &ast.BooleanLiteral{Value: true}, nil
		case falseName:
			return &ast.BooleanLiteral{Value: false}, nil
		case noneName:
			return &ast.NullLiteral{}, nil
		}
		id, err := ast.NewIdentifier(n.Text)
		if err != nil {
			return nil, errs.Parse(d.src, n.Pos, "%v", err)
		}
		return id, nil
	case syntax.KindNumber:
		num, err := literal.ParseNumber(n.Text)
		if err != nil {
			return nil, errs.Parse(d.src, n.Pos, "%v", err)
		}
		return num, nil
	case syntax.KindString:
		s, err := literal.Unquote(n.Text)
		if err != nil {
			return nil, errs.Parse(d.src, n.Pos, "%v", err)
		}
		lit, err := ast.NewString(s)
		if err != nil {
			return nil, errs.Parse(d.src, n.Pos, "%v", err)
		}
		return lit, nil
	default:
		return nil, errs.Parse(d.src, n.Pos, "unexpected %s where an atom was expected", n.Kind)
	}
}

// encodeAtom renders a leaf node. ok is false for non-leaf nodes.
func encodeAtom(e ast.Expr) (text string, ok bool, err error) {
	switch n := e.(type) {
	case *ast.Identifier:
		if !ast.IsIdentifier(n.Name) {
			return "", true, errs.Structural("Identifier", "invalid identifier %q", n.Name)
		}
		return n.Name, true, nil
	case *ast.NumericLiteral:
		s, err := literal.FormatNumber(n)
		if err != nil {
			return "", true, errs.Structural("NumericLiteral", "%v", err)
		}
		return s, true, nil
	case *ast.StringLiteral:
		if !utf8.ValidString(n.Value) {
			return "", true, errs.Structural("StringLiteral", "string literal %q is not valid UTF-8", n.Value)
		}
		return literal.Quote(n.Value), true, nil
	case *ast.BooleanLiteral:
		if n.Value {
			return trueName, true, nil
		}
		return falseName, true, nil
	case *ast.NullLiteral:
		return noneName, true, nil
	default:
		return "", false, nil
	}
}
