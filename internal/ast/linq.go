package ast

import "fmt"

// OperatorKind identifies a LINQ query operator.
type OperatorKind string

const (
	Where             OperatorKind = "Where"
	Select            OperatorKind = "Select"
	SelectMany        OperatorKind = "SelectMany"
	First             OperatorKind = "First"
	Last              OperatorKind = "Last"
	ElementAt         OperatorKind = "ElementAt"
	Contains          OperatorKind = "Contains"
	Aggregate         OperatorKind = "Aggregate"
	Count             OperatorKind = "Count"
	Max               OperatorKind = "Max"
	Min               OperatorKind = "Min"
	Sum               OperatorKind = "Sum"
	All               OperatorKind = "All"
	Any               OperatorKind = "Any"
	Concat            OperatorKind = "Concat"
	Zip               OperatorKind = "Zip"
	OrderBy           OperatorKind = "OrderBy"
	OrderByDescending OperatorKind = "OrderByDescending"
	Choose            OperatorKind = "Choose"
)

// Field describes one operand slot of an operator.
type Field struct {
	Name string

	// LambdaArity is the required parameter count when the slot must hold
	// a lambda, or NotLambda.
	LambdaArity int
}

// NotLambda marks a slot that accepts any expression.
const NotLambda = -1

// IsLambda reports whether the slot requires a lambda.
func (f Field) IsLambda() bool { return f.LambdaArity != NotLambda }

// Operator is the fixed shape of a LINQ operator. Fields[0] is always the
// data source; the rest are the call arguments.
type Operator struct {
	Kind   OperatorKind
	Fields []Field
}

// ArgCount is the number of call arguments, excluding the source.
func (o Operator) ArgCount() int { return len(o.Fields) - 1 }

func expr(name string) Field      { return Field{Name: name, LambdaArity: NotLambda} }
func fn(name string, n int) Field { return Field{Name: name, LambdaArity: n} }

// Operators is the operator vocabulary in declaration order.
var Operators = []Operator{
	{Where, []Field{expr("source"), fn("predicate", 1)}},
	{Select, []Field{expr("source"), fn("selector", 1)}},
	{SelectMany, []Field{expr("source"), fn("selector", 1)}},
	{First, []Field{expr("source")}},
	{Last, []Field{expr("source")}},
	{ElementAt, []Field{expr("source"), expr("index")}},
	{Contains, []Field{expr("source"), expr("value")}},
	{Aggregate, []Field{expr("source"), expr("seed"), fn("func", 2)}},
	{Count, []Field{expr("source")}},
	{Max, []Field{expr("source")}},
	{Min, []Field{expr("source")}},
	{Sum, []Field{expr("source")}},
	{All, []Field{expr("source"), fn("predicate", 1)}},
	{Any, []Field{expr("source"), fn("predicate", 1)}},
	{Concat, []Field{expr("first"), expr("second")}},
	{Zip, []Field{expr("source")}},
	{OrderBy, []Field{expr("source"), fn("key_selector", 1)}},
	{OrderByDescending, []Field{expr("source"), fn("key_selector", 1)}},
	{Choose, []Field{expr("source"), expr("n")}},
}

var operatorsByName = func() map[string]Operator {
	m := make(map[string]Operator, len(Operators))
	for _, op := range Operators {
		m[string(op.Kind)] = op
	}
	return m
}()

// LookupOperator returns the operator named name.
func LookupOperator(name string) (Operator, bool) {
	op, ok := operatorsByName[name]
	return op, ok
}

// IsOperatorName reports whether name is in the LINQ vocabulary.
func IsOperatorName(name string) bool {
	_, ok := operatorsByName[name]
	return ok
}

// LINQ is a query operator node. Operands line up with the operator's
// Fields; Operands[0] is the source.
type LINQ struct {
	Kind     OperatorKind
	Operands []Expr
}

// Operator returns the shape of n's kind.
func (n *LINQ) Operator() Operator {
	op, _ := LookupOperator(string(n.Kind))
	return op
}

// Source returns the data source operand.
func (n *LINQ) Source() Expr {
	return n.Operands[0]
}

// Operand returns the operand in the named slot, or nil.
func (n *LINQ) Operand(name string) Expr {
	for i, f := range n.Operator().Fields {
		if f.Name == name {
			return n.Operands[i]
		}
	}
	return nil
}

// ShapeError describes an operand that does not fit an operator slot.
type ShapeError struct {
	Kind    OperatorKind
	Message string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("%s %s", e.Kind, e.Message)
}

// NewLINQ builds a LINQ node, checking operand count, lambda slots, and
// lambda arity.
func NewLINQ(kind OperatorKind, operands ...Expr) (*LINQ, error) {
	op, ok := LookupOperator(string(kind))
	if !ok {
		return nil, fmt.Errorf("unknown LINQ operator: %s", kind)
	}
	if len(operands) != len(op.Fields) {
		return nil, &ShapeError{Kind: kind, Message: fmt.Sprintf("node must have %s; found %d",
			plural(len(op.Fields), "field"), len(operands))}
	}
	for i, f := range op.Fields {
		if err := checkSlot(kind, f, operands[i]); err != nil {
			return nil, err
		}
	}
	return &LINQ{Kind: kind, Operands: operands}, nil
}

// CheckLambdaSlot validates that e fits the lambda slot f of kind.
func CheckLambdaSlot(kind OperatorKind, f Field, e Expr) error {
	return checkSlot(kind, f, e)
}

func checkSlot(kind OperatorKind, f Field, e Expr) error {
	if e == nil {
		return &ShapeError{Kind: kind, Message: fmt.Sprintf("%s is missing", f.Name)}
	}
	if !f.IsLambda() {
		return nil
	}
	lambda, ok := e.(*Lambda)
	if !ok {
		return &ShapeError{Kind: kind, Message: fmt.Sprintf("%s must be a lambda; found %s", f.Name, TypeName(e))}
	}
	if len(lambda.Params) != f.LambdaArity {
		return &ShapeError{Kind: kind, Message: fmt.Sprintf("%s must have exactly %s; found %d",
			f.Name, plural(f.LambdaArity, "argument"), len(lambda.Params))}
	}
	return nil
}

func plural(n int, noun string) string {
	words := []string{"zero", "one", "two", "three"}
	w := fmt.Sprint(n)
	if n < len(words) {
		w = words[n]
	}
	if n == 1 {
		return w + " " + noun
	}
	return w + " " + noun + "s"
}
