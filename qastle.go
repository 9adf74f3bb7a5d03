// Package qastle translates between query AST language text and
// expression trees.
//
// Canonical text is a parenthesized s-expression form of a Python-style
// expression tree:
//
//	(Where events (lambda (list e) (> (attr e 'pt') 30)))
//
// Decode parses text into a tree and Encode renders a tree back in
// canonical form. HostSourceToText goes straight from a Python expression
// to text, and ExpandLINQ rewrites method calls such as Select or Where
// into dedicated query nodes.
//
// Every failure is an *Error whose Code identifies its category; use
// errors.Is with the Err sentinels to branch on it.
package qastle

import (
	"github.com/iris-hep/qastle/internal/ast"
	"github.com/iris-hep/qastle/internal/columns"
	"github.com/iris-hep/qastle/internal/errs"
	"github.com/iris-hep/qastle/internal/host"
	"github.com/iris-hep/qastle/internal/linq"
	"github.com/iris-hep/qastle/internal/transform"
)

// Expr is an expression tree node.
type Expr = ast.Expr

// Module is a record: zero or one expression.
type Module = ast.Module

// Error is a translation failure.
type Error = errs.Error

// Code categorizes translation failures.
type Code = errs.Code

// Error codes.
const (
	CodeParse           = errs.CodeParse
	CodeStructural      = errs.CodeStructural
	CodeUnknownNode     = errs.CodeUnknownNode
	CodeUnsupportedNode = errs.CodeUnsupportedNode
	CodeUnknownOperator = errs.CodeUnknownOperator
)

// Sentinels for errors.Is.
var (
	ErrParse           = errs.ErrParse
	ErrStructural      = errs.ErrStructural
	ErrUnknownNode     = errs.ErrUnknownNode
	ErrUnsupportedNode = errs.ErrUnsupportedNode
	ErrUnknownOperator = errs.ErrUnknownOperator
)

// Decode parses canonical text into an expression tree. Blank text is the
// empty record and decodes to nil.
func Decode(text string) (Expr, error) {
	return transform.DecodeText(text)
}

// Encode renders e as canonical text. A nil expression renders as the
// empty string.
func Encode(e Expr) (string, error) {
	return transform.Encode(e)
}

// EncodeModule renders a record holding at most one expression.
func EncodeModule(m *Module) (string, error) {
	return transform.EncodeModule(m)
}

// ExpandLINQ rewrites query method calls into query nodes. The input tree
// is not modified.
func ExpandLINQ(e Expr) (Expr, error) {
	return linq.Expand(e)
}

// HostSourceToAST parses a Python expression into a record.
func HostSourceToAST(source string) (*Module, error) {
	return host.ParseModule(source)
}

// HostSourceToText parses a Python expression and renders it as canonical
// text without query expansion.
func HostSourceToText(source string) (string, error) {
	m, err := host.ParseModule(source)
	if err != nil {
		return "", err
	}
	return transform.EncodeModule(m)
}

// HostQueryToText parses a Python expression, expands its query method
// calls and renders the result as canonical text.
func HostQueryToText(source string) (string, error) {
	m, err := host.ParseModule(source)
	if err != nil {
		return "", err
	}
	if m, err = linq.ExpandModule(m); err != nil {
		return "", err
	}
	return transform.EncodeModule(m)
}

// TextToColumns returns the comma-separated columns selected by a
// canonical Select record.
func TextToColumns(text string) (string, error) {
	e, err := transform.DecodeText(text)
	if err != nil {
		return "", err
	}
	return columns.Columns(e)
}

// Wrap builds a record around e. A nil expression gives an empty record.
func Wrap(e Expr) *Module {
	return ast.Wrap(e)
}

// Unwrap returns the single expression of m, or nil for an empty record.
func Unwrap(m *Module) Expr {
	return ast.Unwrap(m)
}

// Equal reports whether a and b are structurally identical trees.
func Equal(a, b Expr) bool {
	return ast.Equal(a, b)
}
