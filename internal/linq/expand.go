// Package linq expands method-chain calls into explicit LINQ operator nodes.
//
// A call is recognized when its callee is an attribute or bare name from the
// operator vocabulary:
//
//	src.Where(lambda e: e.pt() > 30)   -> (Where src (lambda (list e) ...))
//	Where(src, lambda e: e.pt() > 30)  -> (Where src (lambda (list e) ...))
//
// Lambda arguments may be given as quoted source text, which is parsed by
// the host front end before validation. Every other node is rebuilt with its
// children expanded.
package linq

import (
	"errors"
	"fmt"

	"github.com/iris-hep/qastle/internal/ast"
	"github.com/iris-hep/qastle/internal/errs"
	"github.com/iris-hep/qastle/internal/host"
)

// Expander rewrites recognized calls into LINQ nodes. It holds no per-call
// state and is safe for concurrent use.
type Expander struct {
	names map[string]bool
}

// NewExpander returns an expander recognizing the given call names. With no
// names it recognizes the full operator vocabulary.
func NewExpander(names ...string) *Expander {
	x := &Expander{names: make(map[string]bool)}
	if len(names) == 0 {
		for _, op := range ast.Operators {
			x.names[string(op.Kind)] = true
		}
		return x
	}
	for _, n := range names {
		x.names[n] = true
	}
	return x
}

var defaultExpander = NewExpander()

// Expand rewrites e with the default expander.
func Expand(e ast.Expr) (ast.Expr, error) {
	return defaultExpander.Expand(e)
}

// ExpandModule rewrites every expression of m with the default expander.
func ExpandModule(m *ast.Module) (*ast.Module, error) {
	return defaultExpander.ExpandModule(m)
}

// ExpandModule rewrites every expression of m.
func (x *Expander) ExpandModule(m *ast.Module) (*ast.Module, error) {
	if m == nil {
		return &ast.Module{}, nil
	}
	out := &ast.Module{Body: make([]ast.Expr, 0, len(m.Body))}
	for _, e := range m.Body {
		expanded, err := x.Expand(e)
		if err != nil {
			return nil, err
		}
		out.Body = append(out.Body, expanded)
	}
	return out, nil
}

// Expand returns a copy of e with every recognized call replaced by a LINQ
// node. Sources expand before the node that consumes them.
func (x *Expander) Expand(e ast.Expr) (ast.Expr, error) {
	if e == nil {
		return nil, nil
	}
	if call, ok := e.(*ast.Call); ok {
		name, source, args, matched, err := x.match(call)
		if err != nil {
			return nil, err
		}
		if matched {
			return x.expandCall(name, source, args)
		}
	}
	return ast.Rewrite(e, x.Expand)
}

// match splits a recognized call into operator name, source and arguments.
func (x *Expander) match(call *ast.Call) (string, ast.Expr, []ast.Expr, bool, error) {
	switch callee := call.Callee.(type) {
	case *ast.Attribute:
		if x.names[callee.Name] {
			return callee.Name, callee.Base, call.Args, true, nil
		}
	case *ast.Identifier:
		if x.names[callee.Name] {
			if len(call.Args) == 0 {
				return "", nil, nil, false, errs.Structural(callee.Name,
					"%s() operator requires an explicit source", callee.Name)
			}
			return callee.Name, call.Args[0], call.Args[1:], true, nil
		}
	}
	return "", nil, nil, false, nil
}

func (x *Expander) expandCall(name string, source ast.Expr, args []ast.Expr) (ast.Expr, error) {
	op, ok := ast.LookupOperator(name)
	if !ok {
		return nil, errs.UnknownOperator(name)
	}
	if len(args) != op.ArgCount() {
		return nil, errs.Structural(name, "%s() call must have %s; found %d",
			name, argumentCount(op.ArgCount()), len(args))
	}

	operands := make([]ast.Expr, 0, len(op.Fields))
	expanded, err := x.Expand(source)
	if err != nil {
		return nil, err
	}
	operands = append(operands, expanded)

	for i, arg := range args {
		field := op.Fields[i+1]
		if field.IsLambda() {
			if s, ok := arg.(*ast.StringLiteral); ok {
				lambda, err := QuotedLambda(s)
				if err != nil {
					return nil, fmt.Errorf("%s() %s: %w", name, field.Name, err)
				}
				arg = lambda
			}
			if err := ast.CheckLambdaSlot(op.Kind, field, arg); err != nil {
				return nil, shapeError(name, err)
			}
		}
		expanded, err := x.Expand(arg)
		if err != nil {
			return nil, err
		}
		operands = append(operands, expanded)
	}

	node, err := ast.NewLINQ(op.Kind, operands...)
	if err != nil {
		return nil, shapeError(name, err)
	}
	return node, nil
}

// QuotedLambda parses the content of s as host source and returns the
// lambda it holds. It is the only place quoted lambdas are converted.
func QuotedLambda(s *ast.StringLiteral) (*ast.Lambda, error) {
	e, err := parseQuoted(s)
	if err != nil {
		return nil, err
	}
	lambda, ok := e.(*ast.Lambda)
	if !ok {
		return nil, errs.Structural("lambda", "quoted text must be a lambda; found %s", ast.TypeName(e))
	}
	return lambda, nil
}

func parseQuoted(s *ast.StringLiteral) (ast.Expr, error) {
	e, err := host.ParseExpression(s.Value)
	if err != nil {
		return nil, fmt.Errorf("parsing quoted lambda %q: %w", s.Value, err)
	}
	if e == nil {
		return nil, errs.Structural("lambda", "quoted text is empty")
	}
	return e, nil
}

func shapeError(name string, err error) error {
	var shape *ast.ShapeError
	if errors.As(err, &shape) {
		return errs.Structural(name, "%s() call %s", name, shape.Message)
	}
	return err
}

func argumentCount(n int) string {
	switch n {
	case 0:
		return "zero arguments"
	case 1:
		return "exactly one argument"
	case 2:
		return "exactly two arguments"
	default:
		return fmt.Sprintf("exactly %d arguments", n)
	}
}
