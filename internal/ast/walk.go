package ast

import "fmt"

// TypeName returns a short name for the node's variant.
func TypeName(e Expr) string {
	switch n := e.(type) {
	case nil:
		return "nil"
	case *Identifier:
		return "Identifier"
	case *NumericLiteral:
		return "NumericLiteral"
	case *StringLiteral:
		return "StringLiteral"
	case *BooleanLiteral:
		return "BooleanLiteral"
	case *NullLiteral:
		return "NullLiteral"
	case *ListLiteral:
		return "ListLiteral"
	case *DictLiteral:
		return "DictLiteral"
	case *Attribute:
		return "Attribute"
	case *Subscript:
		return "Subscript"
	case *Call:
		return "Call"
	case *Conditional:
		return "Conditional"
	case *UnaryOp:
		return "UnaryOp"
	case *BinaryOp:
		return "BinaryOp"
	case *BoolOp:
		return "BoolOp"
	case *Compare:
		return "Compare"
	case *Lambda:
		return "Lambda"
	case *LINQ:
		return string(n.Kind)
	default:
		return fmt.Sprintf("%T", e)
	}
}

// Equal reports whether a and b are structurally identical trees.
// Integer and float literals never compare equal to each other.
func Equal(a, b Expr) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch x := a.(type) {
	case *Identifier:
		y, ok := b.(*Identifier)
		return ok && x.Name == y.Name
	case *NumericLiteral:
		y, ok := b.(*NumericLiteral)
		if !ok || x.IsFloat != y.IsFloat {
			return false
		}
		if x.IsFloat {
			return x.Float == y.Float
		}
		return x.Int.Cmp(y.Int) == 0
	case *StringLiteral:
		y, ok := b.(*StringLiteral)
		return ok && x.Value == y.Value
	case *BooleanLiteral:
		y, ok := b.(*BooleanLiteral)
		return ok && x.Value == y.Value
	case *NullLiteral:
		_, ok := b.(*NullLiteral)
		return ok
	case *ListLiteral:
		y, ok := b.(*ListLiteral)
		return ok && equalAll(x.Elements, y.Elements)
	case *DictLiteral:
		y, ok := b.(*DictLiteral)
		return ok && equalAll(x.Keys, y.Keys) && equalAll(x.Values, y.Values)
	case *Attribute:
		y, ok := b.(*Attribute)
		return ok && x.Name == y.Name && Equal(x.Base, y.Base)
	case *Subscript:
		y, ok := b.(*Subscript)
		return ok && Equal(x.Base, y.Base) && Equal(x.Index, y.Index)
	case *Call:
		y, ok := b.(*Call)
		return ok && Equal(x.Callee, y.Callee) && equalAll(x.Args, y.Args)
	case *Conditional:
		y, ok := b.(*Conditional)
		return ok && Equal(x.Test, y.Test) && Equal(x.Then, y.Then) && Equal(x.Else, y.Else)
	case *UnaryOp:
		y, ok := b.(*UnaryOp)
		return ok && x.Op == y.Op && Equal(x.Operand, y.Operand)
	case *BinaryOp:
		y, ok := b.(*BinaryOp)
		return ok && x.Op == y.Op && Equal(x.Left, y.Left) && Equal(x.Right, y.Right)
	case *BoolOp:
		y, ok := b.(*BoolOp)
		return ok && x.Op == y.Op && equalAll(x.Operands, y.Operands)
	case *Compare:
		y, ok := b.(*Compare)
		return ok && x.Op == y.Op && Equal(x.Left, y.Left) && Equal(x.Right, y.Right)
	case *Lambda:
		y, ok := b.(*Lambda)
		if !ok || len(x.Params) != len(y.Params) {
			return false
		}
		for i := range x.Params {
			if x.Params[i] != y.Params[i] {
				return false
			}
		}
		return Equal(x.Body, y.Body)
	case *LINQ:
		y, ok := b.(*LINQ)
		return ok && x.Kind == y.Kind && equalAll(x.Operands, y.Operands)
	default:
		return false
	}
}

func equalAll(a, b []Expr) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}

// Children returns the direct subexpressions of e in field order.
func Children(e Expr) []Expr {
	switch n := e.(type) {
	case *ListLiteral:
		return n.Elements
	case *DictLiteral:
		out := make([]Expr, 0, len(n.Keys)+len(n.Values))
		out = append(out, n.Keys...)
		return append(out, n.Values...)
	case *Attribute:
		return []Expr{n.Base}
	case *Subscript:
		return []Expr{n.Base, n.Index}
	case *Call:
		return append([]Expr{n.Callee}, n.Args...)
	case *Conditional:
		return []Expr{n.Test, n.Then, n.Else}
	case *UnaryOp:
		return []Expr{n.Operand}
	case *BinaryOp:
		return []Expr{n.Left, n.Right}
	case *BoolOp:
		return n.Operands
	case *Compare:
		return []Expr{n.Left, n.Right}
	case *Lambda:
		return []Expr{n.Body}
	case *LINQ:
		return n.Operands
	default:
		return nil
	}
}

// Walk visits e and its descendants depth-first, parents before children.
// Children of a node are skipped when visit returns false.
func Walk(e Expr, visit func(Expr) bool) {
	if e == nil || !visit(e) {
		return
	}
	for _, c := range Children(e) {
		Walk(c, visit)
	}
}

// Rewrite rebuilds e bottom-up, replacing every direct child c with f(c).
// Leaves are returned as is. f decides whether to recurse further.
func Rewrite(e Expr, f func(Expr) (Expr, error)) (Expr, error) {
	all := func(xs []Expr) ([]Expr, error) {
		out := make([]Expr, len(xs))
		for i, x := range xs {
			y, err := f(x)
			if err != nil {
				return nil, err
			}
			out[i] = y
		}
		return out, nil
	}
	switch n := e.(type) {
	case *ListLiteral:
		elts, err := all(n.Elements)
		if err != nil {
			return nil, err
		}
		return &ListLiteral{Elements: elts}, nil
	case *DictLiteral:
		keys, err := all(n.Keys)
		if err != nil {
			return nil, err
		}
		values, err := all(n.Values)
		if err != nil {
			return nil, err
		}
		return &DictLiteral{Keys: keys, Values: values}, nil
	case *Attribute:
		base, err := f(n.Base)
		if err != nil {
			return nil, err
		}
		return &Attribute{Base: base, Name: n.Name}, nil
	case *Subscript:
		parts, err := all([]Expr{n.Base, n.Index})
		if err != nil {
			return nil, err
		}
		return &Subscript{Base: parts[0], Index: parts[1]}, nil
	case *Call:
		callee, err := f(n.Callee)
		if err != nil {
			return nil, err
		}
		args, err := all(n.Args)
		if err != nil {
			return nil, err
		}
		return &Call{Callee: callee, Args: args}, nil
	case *Conditional:
		parts, err := all([]Expr{n.Test, n.Then, n.Else})
		if err != nil {
			return nil, err
		}
		return &Conditional{Test: parts[0], Then: parts[1], Else: parts[2]}, nil
	case *UnaryOp:
		operand, err := f(n.Operand)
		if err != nil {
			return nil, err
		}
		return &UnaryOp{Op: n.Op, Operand: operand}, nil
	case *BinaryOp:
		parts, err := all([]Expr{n.Left, n.Right})
		if err != nil {
			return nil, err
		}
		return &BinaryOp{Op: n.Op, Left: parts[0], Right: parts[1]}, nil
	case *BoolOp:
		operands, err := all(n.Operands)
		if err != nil {
			return nil, err
		}
		return &BoolOp{Op: n.Op, Operands: operands}, nil
	case *Compare:
		parts, err := all([]Expr{n.Left, n.Right})
		if err != nil {
			return nil, err
		}
		return &Compare{Op: n.Op, Left: parts[0], Right: parts[1]}, nil
	case *Lambda:
		body, err := f(n.Body)
		if err != nil {
			return nil, err
		}
		return &Lambda{Params: append([]string(nil), n.Params...), Body: body}, nil
	case *LINQ:
		operands, err := all(n.Operands)
		if err != nil {
			return nil, err
		}
		return &LINQ{Kind: n.Kind, Operands: operands}, nil
	default:
		return e, nil
	}
}

// Clone returns a deep copy of e.
func Clone(e Expr) Expr {
	var clone func(Expr) (Expr, error)
	clone = func(x Expr) (Expr, error) {
		switch n := x.(type) {
		case *Identifier:
			return &Identifier{Name: n.Name}, nil
		case *NumericLiteral:
			if n.IsFloat {
				return &NumericLiteral{Float: n.Float, IsFloat: true}, nil
			}
			return NewBigInt(n.Int), nil
		case *StringLiteral:
			return &StringLiteral{Value: n.Value}, nil
		case *BooleanLiteral:
			return &BooleanLiteral{Value: n.Value}, nil
		case *NullLiteral:
			return &NullLiteral{}, nil
		}
		return Rewrite(x, clone)
	}
	out, _ := clone(e)
	return out
}
