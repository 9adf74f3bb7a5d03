package transform

import (
	"errors"

	"github.com/iris-hep/qastle/internal/ast"
	"github.com/iris-hep/qastle/internal/errs"
	"github.com/iris-hep/qastle/internal/syntax"
)

// DecodeText parses and decodes canonical text. The result is nil for an
// empty record.
func DecodeText(text string) (ast.Expr, error) {
	rec, err := syntax.Parse(text)
	if err != nil {
		return nil, err
	}
	return Decode(rec)
}

// Decode converts a parse tree into an expression tree. The result is nil
// for an empty record.
func Decode(rec *syntax.Record) (ast.Expr, error) {
	if rec == nil || rec.IsEmpty() {
		return nil, nil
	}
	d := &decoder{src: rec.Source}
	return d.decode(rec.Expr)
}

// decoder carries the source text for error positions.
type decoder struct {
	src string
}

func (d *decoder) decode(n *syntax.Node) (ast.Expr, error) {
	if n.IsAtom() {
		return d.decodeAtom(n)
	}

	fields := make([]ast.Expr, len(n.Fields))
	for i, f := range n.Fields {
		e, err := d.decode(f)
		if err != nil {
			return nil, err
		}
		fields[i] = e
	}
	e, err := d.composite(n.Text, fields)
	if err != nil {
		return nil, d.locate(err, n)
	}
	return e, nil
}

// locate attaches the composite's position to a translation error.
func (d *decoder) locate(err error, n *syntax.Node) error {
	var te *errs.Error
	if errors.As(err, &te) && te.Offset == errs.NoPos {
		located := *te
		located.Offset = n.Pos
		located.Line, located.Column = errs.Position(d.src, n.Pos)
		return &located
	}
	return err
}

func (d *decoder) composite(nodeType string, fields []ast.Expr) (ast.Expr, error) {
	switch nodeType {
	case "list":
		return &ast.ListLiteral{Elements: fields}, nil

	case "dict":
		if len(fields) != 2 {
			return nil, errs.Structural("dict", "Dictionary node must have two fields; found %d", len(fields))
		}
		keys, ok := fields[0].(*ast.ListLiteral)
		if !ok {
			return nil, errs.Structural("dict", "Dictionary fields must be lists; found %s", ast.TypeName(fields[0]))
		}
		values, ok := fields[1].(*ast.ListLiteral)
		if !ok {
			return nil, errs.Structural("dict", "Dictionary fields must be lists; found %s", ast.TypeName(fields[1]))
		}
		// Length mismatches are left to the consumer.
		return &ast.DictLiteral{Keys: keys.Elements, Values: values.Elements}, nil

	case "attr":
		if len(fields) != 2 {
			return nil, errs.Structural("attr", "Attribute node must have two fields; found %d", len(fields))
		}
		name, ok := fields[1].(*ast.StringLiteral)
		if !ok {
			return nil, errs.Structural("attr", "Attribute name must be a string; found %s", ast.TypeName(fields[1]))
		}
		attr, err := ast.NewAttribute(fields[0], name.Value)
		if err != nil {
			return nil, errs.Structural("attr", "%v", err)
		}
		return attr, nil

	case "subscript":
		if len(fields) != 2 {
			return nil, errs.Structural("subscript", "Subscript node must have two fields; found %d", len(fields))
		}
		return &ast.Subscript{Base: fields[0], Index: fields[1]}, nil

	case "call":
		if len(fields) < 1 {
			return nil, errs.Structural("call", "Call node must have at least one field; found %d", len(fields))
		}
		return &ast.Call{Callee: fields[0], Args: fields[1:]}, nil

	case "if":
		if len(fields) != 3 {
			return nil, errs.Structural("if", "If node must have three fields; found %d", len(fields))
		}
		return &ast.Conditional{Test: fields[0], Then: fields[1], Else: fields[2]}, nil

	case "lambda":
		return decodeLambda(fields)
	}

	if op, ok := ast.LookupUnary(nodeType); ok {
		if len(fields) == 1 {
			return unary(op, fields[0]), nil
		}
		if _, flexible := ast.LookupBinary(nodeType); !flexible {
			return nil, errs.Structural(nodeType, "%s operator only supported for one operand; found %d", nodeType, len(fields))
		}
	}
	if op, ok := ast.LookupBinary(nodeType); ok {
		if len(fields) != 2 {
			return nil, errs.Structural(nodeType, "%s operator only supported for two operands; found %d", nodeType, len(fields))
		}
		return &ast.BinaryOp{Op: op, Left: fields[0], Right: fields[1]}, nil
	}
	if op, ok := ast.LookupBool(nodeType); ok {
		if len(fields) != 2 {
			return nil, errs.Structural(nodeType, "%s operator only supported for two operands; found %d", nodeType, len(fields))
		}
		node, err := ast.NewBoolOp(op, fields...)
		if err != nil {
			return nil, errs.Structural(nodeType, "%v", err)
		}
		return node, nil
	}
	if op, ok := ast.LookupCompare(nodeType); ok {
		if len(fields) != 2 {
			return nil, errs.Structural(nodeType, "%s operator only supported for two operands; found %d", nodeType, len(fields))
		}
		return &ast.Compare{Op: op, Left: fields[0], Right: fields[1]}, nil
	}
	if ast.IsOperatorName(nodeType) {
		return decodeLINQ(ast.OperatorKind(nodeType), fields)
	}
	return nil, errs.UnknownNode(nodeType)
}

func decodeLambda(fields []ast.Expr) (ast.Expr, error) {
	if len(fields) != 2 {
		return nil, errs.Structural("lambda", "Lambda node must have two fields; found %d", len(fields))
	}
	args, ok := fields[0].(*ast.ListLiteral)
	if !ok {
		return nil, errs.Structural("lambda", "Lambda arguments must be in a list; found %s", ast.TypeName(fields[0]))
	}
	params := make([]string, len(args.Elements))
	for i, arg := range args.Elements {
		id, ok := arg.(*ast.Identifier)
		if !ok {
			return nil, errs.Structural("lambda", "Lambda arguments must be variable names; found %s", ast.TypeName(arg))
		}
		params[i] = id.Name
	}
	// Duplicate parameter names are not checked at this layer.
	lambda, err := ast.NewLambda(params, fields[1], false)
	if err != nil {
		return nil, errs.Structural("lambda", "%v", err)
	}
	return lambda, nil
}

// unary folds a sign applied directly to a number into a signed literal,
// the shape encoding produces for it.
func unary(op ast.UnaryOperator, operand ast.Expr) ast.Expr {
	if num, ok := operand.(*ast.NumericLiteral); ok {
		switch op {
		case ast.UAdd:
			return num
		case ast.USub:
			return num.Negate()
		}
	}
	return &ast.UnaryOp{Op: op, Operand: operand}
}

func decodeLINQ(kind ast.OperatorKind, fields []ast.Expr) (ast.Expr, error) {
	node, err := ast.NewLINQ(kind, fields...)
	if err != nil {
		var shape *ast.ShapeError
		if errors.As(err, &shape) {
			return nil, errs.Structural(string(kind), "%s", shape.Error())
		}
		return nil, errs.UnknownOperator(string(kind))
	}
	return node, nil
}
