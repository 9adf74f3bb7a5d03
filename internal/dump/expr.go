package dump

import (
	"fmt"

	"github.com/iris-hep/qastle/internal/ast"
	"github.com/iris-hep/qastle/internal/errs"
	"github.com/iris-hep/qastle/internal/literal"
)

// FromExpr converts e into a JSON value. A nil expression, the empty
// record, becomes Null.
func FromExpr(e ast.Expr) (Value, error) {
	if e == nil {
		return Null{}, nil
	}
	node := func(name string, fields ...any) (Value, error) {
		obj := Object{"node": String(name)}
		for i := 0; i < len(fields); i += 2 {
			key := fields[i].(string)
			switch f := fields[i+1].(type) {
			case nil:
				obj[key] = Null{}
			case Value:
				obj[key] = f
			case ast.Expr:
				v, err := FromExpr(f)
				if err != nil {
					return nil, err
				}
				obj[key] = v
			case []ast.Expr:
				arr, err := fromAll(f)
				if err != nil {
					return nil, err
				}
				obj[key] = arr
			default:
				panic(fmt.Sprintf("dump: field %s has type %T", key, f))
			}
		}
		return obj, nil
	}

	switch n := e.(type) {
	case *ast.Identifier:
		return node("Identifier", "name", String(n.Name))
	case *ast.NumericLiteral:
		text, err := literal.FormatNumber(n)
		if err != nil {
			return nil, err
		}
		return node("NumericLiteral", "value", Number(text))
	case *ast.StringLiteral:
		return node("StringLiteral", "value", String(n.Value))
	case *ast.BooleanLiteral:
		return node("BooleanLiteral", "value", Bool(n.Value))
	case *ast.NullLiteral:
		return node("NullLiteral")
	case *ast.ListLiteral:
		return node("ListLiteral", "elements", n.Elements)
	case *ast.DictLiteral:
		return node("DictLiteral", "keys", n.Keys, "values", n.Values)
	case *ast.Attribute:
		return node("Attribute", "base", n.Base, "name", String(n.Name))
	case *ast.Subscript:
		return node("Subscript", "base", n.Base, "index", n.Index)
	case *ast.Call:
		return node("Call", "callee", n.Callee, "args", n.Args)
	case *ast.Conditional:
		return node("Conditional", "test", n.Test, "then", n.Then, "else", n.Else)
	case *ast.UnaryOp:
		return node("UnaryOp", "op", String(n.Op), "operand", n.Operand)
	case *ast.BinaryOp:
		return node("BinaryOp", "op", String(n.Op), "left", n.Left, "right", n.Right)
	case *ast.BoolOp:
		return node("BoolOp", "op", String(n.Op), "operands", n.Operands)
	case *ast.Compare:
		return node("Compare", "op", String(n.Op), "left", n.Left, "right", n.Right)
	case *ast.Lambda:
		params := make(Array, len(n.Params))
		for i, p := range n.Params {
			params[i] = String(p)
		}
		return node("Lambda", "params", params, "body", n.Body)
	case *ast.LINQ:
		op := n.Operator()
		if len(n.Operands) != len(op.Fields) {
			return nil, errs.Structural(string(n.Kind), "%s node must have %d fields; found %d",
				n.Kind, len(op.Fields), len(n.Operands))
		}
		fields := make([]any, 0, 2*len(op.Fields))
		for i, f := range op.Fields {
			fields = append(fields, f.Name, n.Operands[i])
		}
		return node(string(n.Kind), fields...)
	default:
		return nil, errs.Unsupported("Unsupported node type: %T", e)
	}
}

func fromAll(xs []ast.Expr) (Array, error) {
	arr := make(Array, len(xs))
	for i, x := range xs {
		v, err := FromExpr(x)
		if err != nil {
			return nil, err
		}
		arr[i] = v
	}
	return arr, nil
}

// Expr returns the canonical JSON of e.
func Expr(e ast.Expr) ([]byte, error) {
	v, err := FromExpr(e)
	if err != nil {
		return nil, err
	}
	return Marshal(v)
}
