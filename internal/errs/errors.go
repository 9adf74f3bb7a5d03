// Package errs defines the typed error returned by every translation stage.
//
// A translation either succeeds or fails with exactly one *Error. The Code
// identifies the failure category; callers branch on it with errors.Is
// against the sentinel values below or with errors.As to read the fields.
package errs

import (
	"errors"
	"fmt"
)

// Code categorizes translation errors.
type Code string

const (
	// CodeParse indicates the text does not match the canonical grammar.
	CodeParse Code = "PARSE_ERROR"

	// CodeStructural indicates a recognized node kind with the wrong number
	// or type of fields.
	CodeStructural Code = "STRUCTURAL_ERROR"

	// CodeUnknownNode indicates a composite type tag outside the vocabulary.
	CodeUnknownNode Code = "UNKNOWN_NODE"

	// CodeUnsupportedNode indicates a node kind with no textual rendering rule.
	CodeUnsupportedNode Code = "UNSUPPORTED_NODE"

	// CodeUnknownOperator indicates an operator name that one component
	// recognizes and another does not. It signals a programming defect.
	CodeUnknownOperator Code = "UNKNOWN_OPERATOR"
)

// Sentinels for errors.Is. They carry only a code.
var (
	ErrParse           = &Error{Code: CodeParse}
	ErrStructural      = &Error{Code: CodeStructural}
	ErrUnknownNode     = &Error{Code: CodeUnknownNode}
	ErrUnsupportedNode = &Error{Code: CodeUnsupportedNode}
	ErrUnknownOperator = &Error{Code: CodeUnknownOperator}
)

// NoPos marks an error that has no source position.
const NoPos = -1

// Error is a translation failure.
type Error struct {
	// Code identifies the error category.
	Code Code

	// Message is a human-readable description.
	Message string

	// Node names the node type or operator involved, if any.
	Node string

	// Offset is the 0-based byte offset into the input (NoPos if unknown).
	Offset int

	// Line and Column are 1-based (0 if unknown).
	Line   int
	Column int
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s: line %d, column %d: %s", e.Code, e.Line, e.Column, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Is reports whether target is a sentinel with the same code.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Message == "" && t.Code == e.Code
}

// Structural builds a CodeStructural error for the named node type.
func Structural(node, format string, args ...any) *Error {
	return &Error{Code: CodeStructural, Node: node, Message: fmt.Sprintf(format, args...), Offset: NoPos}
}

// UnknownNode builds a CodeUnknownNode error.
func UnknownNode(node string) *Error {
	return &Error{Code: CodeUnknownNode, Node: node, Message: fmt.Sprintf("unknown composite node type: %s", node), Offset: NoPos}
}

// Unsupported builds a CodeUnsupportedNode error.
func Unsupported(format string, args ...any) *Error {
	return &Error{Code: CodeUnsupportedNode, Message: fmt.Sprintf(format, args...), Offset: NoPos}
}

// UnknownOperator builds a CodeUnknownOperator error.
func UnknownOperator(name string) *Error {
	return &Error{Code: CodeUnknownOperator, Node: name, Message: fmt.Sprintf("unhandled LINQ operator: %s", name), Offset: NoPos}
}

// Parse builds a CodeParse error at a byte offset within input.
func Parse(input string, offset int, format string, args ...any) *Error {
	line, col := Position(input, offset)
	return &Error{
		Code:    CodeParse,
		Message: fmt.Sprintf(format, args...),
		Offset:  offset,
		Line:    line,
		Column:  col,
	}
}

// Position converts a byte offset into a 1-based line and column.
// Columns count bytes.
func Position(input string, offset int) (line, column int) {
	if offset < 0 {
		return 0, 0
	}
	if offset > len(input) {
		offset = len(input)
	}
	line, column = 1, 1
	for i := 0; i < offset; i++ {
		if input[i] == '\n' {
			line++
			column = 1
		} else {
			column++
		}
	}
	return line, column
}

// CodeOf returns the code of err, or "" if err is not a translation error.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}
