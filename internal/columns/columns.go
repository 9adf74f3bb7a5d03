// Package columns flattens a single Select query into a column list.
//
// The selector body of (Select src (lambda (list row) (list row.a.b() row.c)))
// names one column per element, with the lambda parameter dropped:
//
//	a.b(), c
package columns

import (
	"strings"

	"github.com/iris-hep/qastle/internal/ast"
	"github.com/iris-hep/qastle/internal/errs"
)

const separator = ", "

// Columns returns the comma-separated column list selected by e, which must
// be a Select node whose source holds no further Select.
func Columns(e ast.Expr) (string, error) {
	sel, ok := e.(*ast.LINQ)
	if !ok || sel.Kind != ast.Select {
		return "", errs.Structural("columns", "column extraction requires a Select node; found %s", describe(e))
	}

	var nested bool
	ast.Walk(sel.Source(), func(n ast.Expr) bool {
		if q, ok := n.(*ast.LINQ); ok && q.Kind == ast.Select {
			nested = true
		}
		return !nested
	})
	if nested {
		return "", errs.Structural("columns", "nested Select nodes are not supported")
	}

	selector, ok := sel.Operand("selector").(*ast.Lambda)
	if !ok || len(selector.Params) != 1 {
		return "", errs.Structural("columns", "Select selector must be a lambda with one argument")
	}

	body, err := RemoveSource(selector.Body, selector.Params[0])
	if err != nil {
		return "", err
	}

	elts := []ast.Expr{body}
	if list, ok := body.(*ast.ListLiteral); ok {
		elts = list.Elements
	}
	names := make([]string, 0, len(elts))
	for _, elt := range elts {
		name, err := Name(elt)
		if err != nil {
			return "", err
		}
		names = append(names, name)
	}
	return strings.Join(names, separator), nil
}

// RemoveSource rewrites every attribute chain rooted at the identifier
// source so that the first attribute becomes the root: row.a.b -> a.b.
func RemoveSource(e ast.Expr, source string) (ast.Expr, error) {
	var remove func(ast.Expr) (ast.Expr, error)
	remove = func(n ast.Expr) (ast.Expr, error) {
		switch n := n.(type) {
		case *ast.Attribute:
			if id, ok := n.Base.(*ast.Identifier); ok && id.Name == source {
				return &ast.Identifier{Name: n.Name}, nil
			}
		case *ast.Lambda:
			for _, p := range n.Params {
				if p == source {
					return n, nil // shadowed
				}
			}
		}
		return ast.Rewrite(n, remove)
	}
	return remove(e)
}

// Name renders a column expression: identifiers, attribute chains and
// argument-free calls.
func Name(e ast.Expr) (string, error) {
	switch n := e.(type) {
	case *ast.Identifier:
		return n.Name, nil
	case *ast.Attribute:
		base, err := Name(n.Base)
		if err != nil {
			return "", err
		}
		return base + "." + n.Name, nil
	case *ast.Call:
		if len(n.Args) > 0 {
			return "", errs.Unsupported("column calls cannot take arguments; found %d", len(n.Args))
		}
		callee, err := Name(n.Callee)
		if err != nil {
			return "", err
		}
		return callee + "()", nil
	default:
		return "", errs.Unsupported("unsupported column expression: %s", describe(e))
	}
}

func describe(e ast.Expr) string {
	if q, ok := e.(*ast.LINQ); ok {
		return string(q.Kind)
	}
	return ast.TypeName(e)
}
