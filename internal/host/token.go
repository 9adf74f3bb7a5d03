// Package host parses host-language source into an expression tree.
//
// The host language is the Python expression subset that query authors
// write: names, numbers, strings, attribute access, calls, subscripts,
// list/tuple/dict displays, lambdas, conditional expressions, and unary,
// binary, boolean and comparison operators. A module is a sequence of
// expressions separated by newlines or semicolons.
//
// Comparison chains such as a < b < c become an `and` BoolOp of pairwise
// Compare nodes. Constructs outside the subset (keyword arguments, slices,
// starred expressions, `in`, `is`, sets, comprehensions) are rejected with
// an UNSUPPORTED_NODE error.
package host

// TokenType represents the type of a lexical token.
type TokenType int

const (
	TokenName   TokenType = iota // identifier
	TokenNumber                  // numeric literal
	TokenString                  // string literal (adjacent literals are separate tokens)
	TokenOp                      // operator or delimiter
	TokenKeyword                 // reserved word
	TokenNewline                 // logical line break or ';'
	TokenEOF                     // end of input
)

// Token represents a single lexical token.
type Token struct {
	Type  TokenType
	Value string // raw text; resolved value for strings
	Pos   int    // byte offset in source
}

func (t TokenType) String() string {
	switch t {
	case TokenName:
		return "NAME"
	case TokenNumber:
		return "NUMBER"
	case TokenString:
		return "STRING"
	case TokenOp:
		return "OP"
	case TokenKeyword:
		return "KEYWORD"
	case TokenNewline:
		return "NEWLINE"
	case TokenEOF:
		return "EOF"
	default:
		return "UNKNOWN"
	}
}

// keywords are reserved and never produce TokenName.
var keywords = map[string]bool{
	"lambda": true, "if": true, "else": true,
	"and": true, "or": true, "not": true,
	"in": true, "is": true,
	"True": true, "False": true, "None": true,
	"for": true, "async": true, "await": true, "yield": true,
}

// Operators ordered longest first so the lexer matches greedily.
var operators = []string{
	"**", "//", "<<", ">>", "<=", ">=", "==", "!=", "->", ":=",
	"+", "-", "*", "/", "%", "&", "|", "^", "~", "<", ">",
	"(", ")", "[", "]", "{", "}", ",", ":", ".", "@", "=",
}
