package ast

import (
	"fmt"
	"math"
	"math/big"
	"unicode/utf8"
)

// Expr is any expression node.
//
// This is a sealed interface - only types in this package implement it.
type Expr interface {
	exprNode() // Marker method - seals interface to this package
}

// Identifier is a bare name.
type Identifier struct {
	Name string
}

// NumericLiteral is an integer of arbitrary size or a finite float.
// Exactly one of Int and Float is meaningful, selected by IsFloat.
type NumericLiteral struct {
	Int     *big.Int
	Float   float64
	IsFloat bool
}

// StringLiteral is a string constant.
type StringLiteral struct {
	Value string
}

// BooleanLiteral is True or False.
type BooleanLiteral struct {
	Value bool
}

// NullLiteral is None.
type NullLiteral struct{}

// ListLiteral is an ordered sequence literal. Host tuples map here too.
type ListLiteral struct {
	Elements []Expr
}

// DictLiteral pairs Keys[i] with Values[i].
type DictLiteral struct {
	Keys   []Expr
	Values []Expr
}

// Attribute is Base.Name.
type Attribute struct {
	Base Expr
	Name string
}

// Subscript is Base[Index].
type Subscript struct {
	Base  Expr
	Index Expr
}

// Call is Callee(Args...).
type Call struct {
	Callee Expr
	Args   []Expr
}

// Conditional is `Then if Test else Else`.
type Conditional struct {
	Test Expr
	Then Expr
	Else Expr
}

// UnaryOp applies a prefix operator.
type UnaryOp struct {
	Op      UnaryOperator
	Operand Expr
}

// BinaryOp applies an arithmetic or bitwise operator.
type BinaryOp struct {
	Op    BinaryOperator
	Left  Expr
	Right Expr
}

// BoolOp is a short-circuit `and`/`or` over two or more operands.
// Decoding always yields two operands; host ingestion may yield more.
type BoolOp struct {
	Op       BoolOperator
	Operands []Expr
}

// Compare is a single pairwise comparison. Host comparison chains arrive
// already split into an `and` BoolOp of Compare nodes.
type Compare struct {
	Op    CompareOperator
	Left  Expr
	Right Expr
}

// Lambda is an anonymous function of positional parameters.
type Lambda struct {
	Params []string
	Body   Expr
}

func (*Identifier) exprNode()     {}
func (*NumericLiteral) exprNode() {}
func (*StringLiteral) exprNode()  {}
func (*BooleanLiteral) exprNode() {}
func (*NullLiteral) exprNode()    {}
func (*ListLiteral) exprNode()    {}
func (*DictLiteral) exprNode()    {}
func (*Attribute) exprNode()      {}
func (*Subscript) exprNode()      {}
func (*Call) exprNode()           {}
func (*Conditional) exprNode()    {}
func (*UnaryOp) exprNode()        {}
func (*BinaryOp) exprNode()       {}
func (*BoolOp) exprNode()         {}
func (*Compare) exprNode()        {}
func (*Lambda) exprNode()         {}
func (*LINQ) exprNode()           {}

// NewIdentifier returns an Identifier, rejecting names that are not
// [A-Za-z_][A-Za-z0-9_]*.
func NewIdentifier(name string) (*Identifier, error) {
	if !IsIdentifier(name) {
		return nil, fmt.Errorf("invalid identifier %q", name)
	}
	return &Identifier{Name: name}, nil
}

// IsIdentifier reports whether s matches the identifier lexical rule.
func IsIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '_', c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}

// NewString returns a string literal, rejecting values that are not valid
// UTF-8.
func NewString(value string) (*StringLiteral, error) {
	if !utf8.ValidString(value) {
		return nil, fmt.Errorf("string literal %q is not valid UTF-8", value)
	}
	return &StringLiteral{Value: value}, nil
}

// NewInt returns an integer literal.
func NewInt(n int64) *NumericLiteral {
	return &NumericLiteral{Int: big.NewInt(n)}
}

// NewBigInt returns an integer literal holding a copy of n.
func NewBigInt(n *big.Int) *NumericLiteral {
	return &NumericLiteral{Int: new(big.Int).Set(n)}
}

// NewFloat returns a float literal. NaN and infinities are rejected.
func NewFloat(f float64) (*NumericLiteral, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, fmt.Errorf("numeric literal must be finite, got %v", f)
	}
	return &NumericLiteral{Float: f, IsFloat: true}, nil
}

// Negate returns the arithmetic negation of n.
func (n *NumericLiteral) Negate() *NumericLiteral {
	if n.IsFloat {
		return &NumericLiteral{Float: -n.Float, IsFloat: true}
	}
	return &NumericLiteral{Int: new(big.Int).Neg(n.Int)}
}

// NewAttribute returns Base.Name.
func NewAttribute(base Expr, name string) (*Attribute, error) {
	if base == nil {
		return nil, fmt.Errorf("attribute %q has no base", name)
	}
	return &Attribute{Base: base, Name: name}, nil
}

// NewDict pairs keys with values.
func NewDict(keys, values []Expr) (*DictLiteral, error) {
	if len(keys) != len(values) {
		return nil, fmt.Errorf("dict has %d keys but %d values", len(keys), len(values))
	}
	return &DictLiteral{Keys: keys, Values: values}, nil
}

// NewBoolOp returns an `and`/`or` over at least two operands.
func NewBoolOp(op BoolOperator, operands ...Expr) (*BoolOp, error) {
	if len(operands) < 2 {
		return nil, fmt.Errorf("boolean operator must have at least 2 operands; found: %d", len(operands))
	}
	return &BoolOp{Op: op, Operands: operands}, nil
}

// NewLambda returns a lambda after checking every parameter is an
// identifier. Duplicate names are rejected when unique is set.
func NewLambda(params []string, body Expr, unique bool) (*Lambda, error) {
	seen := make(map[string]bool, len(params))
	for _, p := range params {
		if !IsIdentifier(p) {
			return nil, fmt.Errorf("invalid lambda parameter %q", p)
		}
		if unique && seen[p] {
			return nil, fmt.Errorf("duplicate lambda parameter %q", p)
		}
		seen[p] = true
	}
	return &Lambda{Params: params, Body: body}, nil
}

// Module is a translation record: zero or one expression. Host front ends
// may produce more, which the encoder rejects.
type Module struct {
	Body []Expr
}

// Wrap returns a module holding expr, or an empty module when expr is nil.
func Wrap(expr Expr) *Module {
	if expr == nil {
		return &Module{}
	}
	return &Module{Body: []Expr{expr}}
}

// Unwrap returns the first expression of m, or nil for an empty module.
func Unwrap(m *Module) Expr {
	if m == nil || len(m.Body) == 0 {
		return nil
	}
	return m.Body[0]
}
