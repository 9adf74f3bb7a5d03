// Package syntax recognizes the canonical text form:
//
//	record     := WS? expression? WS?
//	expression := atom | composite
//	atom       := IDENTIFIER | NUMERIC_LITERAL | STRING_LITERAL
//	composite  := '(' WS? NODE_TYPE (WS expression)* WS? ')'
//
// The parser produces a generic tree of atoms and composites. It does not
// know what node types mean; package transform validates them.
//
// The Parser value is immutable and built once on first use. It is safe to
// share between goroutines.
package syntax
