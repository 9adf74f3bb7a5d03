package transform

import (
	"strings"

	"github.com/iris-hep/qastle/internal/ast"
	"github.com/iris-hep/qastle/internal/errs"
)

// EncodeModule renders a record. Zero expressions render as the empty
// string; more than one is a structural error.
func EncodeModule(m *ast.Module) (string, error) {
	if m == nil {
		return "", nil
	}
	switch len(m.Body) {
	case 0:
		return "", nil
	case 1:
		return Encode(m.Body[0])
	default:
		return "", errs.Structural("record", "A record must contain zero or one expressions; found %d", len(m.Body))
	}
}

// Encode renders e in canonical text form. A nil expression is the empty
// record.
func Encode(e ast.Expr) (string, error) {
	if e == nil {
		return "", nil
	}
	var sb strings.Builder
	if err := encode(&sb, e); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func encode(sb *strings.Builder, e ast.Expr) error {
	if e == nil {
		return errs.Structural("", "missing subexpression")
	}
	if text, ok, err := encodeAtom(e); ok {
		if err != nil {
			return err
		}
		sb.WriteString(text)
		return nil
	}

	switch n := e.(type) {
	case *ast.ListLiteral:
		return composite(sb, "list", n.Elements...)

	case *ast.DictLiteral:
		if len(n.Keys) != len(n.Values) {
			return errs.Structural("dict", "Dictionary has %d keys but %d values", len(n.Keys), len(n.Values))
		}
		return composite(sb, "dict", &ast.ListLiteral{Elements: n.Keys}, &ast.ListLiteral{Elements: n.Values})

	case *ast.Attribute:
		return composite(sb, "attr", n.Base, &ast.StringLiteral{Value: n.Name})

	case *ast.Subscript:
		return composite(sb, "subscript", n.Base, n.Index)

	case *ast.Call:
		return composite(sb, "call", append([]ast.Expr{n.Callee}, n.Args...)...)

	case *ast.Conditional:
		return composite(sb, "if", n.Test, n.Then, n.Else)

	case *ast.UnaryOp:
		// Signs on numeric literals fold into the number itself.
		if num, ok := n.Operand.(*ast.NumericLiteral); ok {
			switch n.Op {
			case ast.UAdd:
				return encode(sb, num)
			case ast.USub:
				return encode(sb, num.Negate())
			}
		}
		return composite(sb, string(n.Op), n.Operand)

	case *ast.BinaryOp:
		return composite(sb, string(n.Op), n.Left, n.Right)

	case *ast.BoolOp:
		if len(n.Operands) < 2 {
			return errs.Structural(string(n.Op), "Boolean operator must have at least 2 operands; found: %d", len(n.Operands))
		}
		return encodeBoolChain(sb, n.Op, n.Operands)

	case *ast.Compare:
		return composite(sb, string(n.Op), n.Left, n.Right)

	case *ast.Lambda:
		params := make([]ast.Expr, len(n.Params))
		for i, p := range n.Params {
			params[i] = &ast.Identifier{Name: p}
		}
		return composite(sb, "lambda", &ast.ListLiteral{Elements: params}, n.Body)

	case *ast.LINQ:
		op, ok := ast.LookupOperator(string(n.Kind))
		if !ok {
			return errs.UnknownOperator(string(n.Kind))
		}
		if len(n.Operands) != len(op.Fields) {
			return errs.Structural(string(n.Kind), "%s node must have %d fields; found %d", n.Kind, len(op.Fields), len(n.Operands))
		}
		return composite(sb, string(n.Kind), n.Operands...)

	default:
		return errs.Unsupported("Unsupported node type: %T", e)
	}
}

// encodeBoolChain nests operands to the left: a and b and c renders as
// (and (and a b) c).
func encodeBoolChain(sb *strings.Builder, op ast.BoolOperator, operands []ast.Expr) error {
	for range operands[1:] {
		sb.WriteByte('(')
		sb.WriteString(string(op))
		sb.WriteByte(' ')
	}
	if err := encode(sb, operands[0]); err != nil {
		return err
	}
	for _, operand := range operands[1:] {
		sb.WriteByte(' ')
		if err := encode(sb, operand); err != nil {
			return err
		}
		sb.WriteByte(')')
	}
	return nil
}

func composite(sb *strings.Builder, nodeType string, fields ...ast.Expr) error {
	sb.WriteByte('(')
	sb.WriteString(nodeType)
	for _, f := range fields {
		sb.WriteByte(' ')
		if err := encode(sb, f); err != nil {
			return err
		}
	}
	sb.WriteByte(')')
	return nil
}
