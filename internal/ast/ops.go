package ast

// UnaryOperator is a prefix operator.
type UnaryOperator string

const (
	UAdd   UnaryOperator = "+"
	USub   UnaryOperator = "-"
	Not    UnaryOperator = "not"
	Invert UnaryOperator = "~"
)

// BinaryOperator is an arithmetic or bitwise infix operator.
type BinaryOperator string

const (
	Add      BinaryOperator = "+"
	Sub      BinaryOperator = "-"
	Mult     BinaryOperator = "*"
	Div      BinaryOperator = "/"
	Mod      BinaryOperator = "%"
	Pow      BinaryOperator = "**"
	FloorDiv BinaryOperator = "//"
	BitAnd   BinaryOperator = "&"
	BitOr    BinaryOperator = "|"
	BitXor   BinaryOperator = "^"
	LShift   BinaryOperator = "<<"
	RShift   BinaryOperator = ">>"
)

// BoolOperator is a short-circuit boolean operator.
type BoolOperator string

const (
	And BoolOperator = "and"
	Or  BoolOperator = "or"
)

// CompareOperator is a comparison operator.
type CompareOperator string

const (
	Eq    CompareOperator = "=="
	NotEq CompareOperator = "!="
	Lt    CompareOperator = "<"
	LtE   CompareOperator = "<="
	Gt    CompareOperator = ">"
	GtE   CompareOperator = ">="
)

var (
	unaryOps = map[string]UnaryOperator{
		"+": UAdd, "-": USub, "not": Not, "~": Invert,
	}
	binaryOps = map[string]BinaryOperator{
		"+": Add, "-": Sub, "*": Mult, "/": Div, "%": Mod, "**": Pow, "//": FloorDiv,
		"&": BitAnd, "|": BitOr, "^": BitXor, "<<": LShift, ">>": RShift,
	}
	boolOps = map[string]BoolOperator{
		"and": And, "or": Or,
	}
	compareOps = map[string]CompareOperator{
		"==": Eq, "!=": NotEq, "<": Lt, "<=": LtE, ">": Gt, ">=": GtE,
	}
)

// LookupUnary maps a symbol to its unary operator.
func LookupUnary(sym string) (UnaryOperator, bool) {
	op, ok := unaryOps[sym]
	return op, ok
}

// LookupBinary maps a symbol to its binary operator.
func LookupBinary(sym string) (BinaryOperator, bool) {
	op, ok := binaryOps[sym]
	return op, ok
}

// LookupBool maps a symbol to its boolean operator.
func LookupBool(sym string) (BoolOperator, bool) {
	op, ok := boolOps[sym]
	return op, ok
}

// LookupCompare maps a symbol to its comparison operator.
func LookupCompare(sym string) (CompareOperator, bool) {
	op, ok := compareOps[sym]
	return op, ok
}
