package host

import (
	"fmt"

	"github.com/iris-hep/qastle/internal/ast"
	"github.com/iris-hep/qastle/internal/errs"
	"github.com/iris-hep/qastle/internal/literal"
)

// Parser is a recursive descent parser over host tokens.
type Parser struct {
	src    string
	tokens []Token
	pos    int
}

// ParseModule parses a sequence of expressions.
func ParseModule(src string) (*ast.Module, error) {
	tokens, err := NewLexer(src).Tokenize()
	if err != nil {
		return nil, err
	}
	p := &Parser{src: src, tokens: tokens}
	return p.parseModule()
}

// ParseExpression parses source holding at most one expression. The result
// is nil for blank source.
func ParseExpression(src string) (ast.Expr, error) {
	m, err := ParseModule(src)
	if err != nil {
		return nil, err
	}
	if len(m.Body) > 1 {
		return nil, errs.Structural("record", "expected a single expression; found %d", len(m.Body))
	}
	return ast.Unwrap(m), nil
}

func (p *Parser) parseModule() (*ast.Module, error) {
	m := &ast.Module{}
	for {
		for p.current().Type == TokenNewline {
			p.advance()
		}
		if p.current().Type == TokenEOF {
			return m, nil
		}
		e, err := p.parseTestList()
		if err != nil {
			return nil, err
		}
		m.Body = append(m.Body, e)
		switch tok := p.current(); tok.Type {
		case TokenNewline, TokenEOF:
		default:
			return nil, p.errorf(tok, "unexpected %s", describe(tok))
		}
	}
}

// current returns the current token.
func (p *Parser) current() Token {
	if p.pos >= len(p.tokens) {
		return Token{Type: TokenEOF, Pos: len(p.src)}
	}
	return p.tokens[p.pos]
}

// peek returns the next token without consuming it.
func (p *Parser) peek() Token {
	if p.pos+1 >= len(p.tokens) {
		return Token{Type: TokenEOF, Pos: len(p.src)}
	}
	return p.tokens[p.pos+1]
}

// advance consumes the current token and returns it.
func (p *Parser) advance() Token {
	tok := p.current()
	p.pos++
	return tok
}

func (p *Parser) isOp(value string) bool {
	tok := p.current()
	return tok.Type == TokenOp && tok.Value == value
}

func (p *Parser) isKeyword(value string) bool {
	tok := p.current()
	return tok.Type == TokenKeyword && tok.Value == value
}

// expect consumes the operator or returns an error.
func (p *Parser) expect(value string) (Token, error) {
	tok := p.current()
	if tok.Type != TokenOp || tok.Value != value {
		return tok, p.errorf(tok, "expected '%s', got %s", value, describe(tok))
	}
	return p.advance(), nil
}

func (p *Parser) errorf(tok Token, format string, args ...any) error {
	return errs.Parse(p.src, tok.Pos, format, args...)
}

func (p *Parser) unsupported(tok Token, what string) error {
	e := errs.Unsupported("unsupported host construct: %s", what)
	e.Offset = tok.Pos
	e.Line, e.Column = errs.Position(p.src, tok.Pos)
	return e
}

func describe(tok Token) string {
	switch tok.Type {
	case TokenEOF:
		return "end of input"
	case TokenNewline:
		return "end of line"
	case TokenString:
		return "string literal"
	default:
		return fmt.Sprintf("'%s'", tok.Value)
	}
}

// parseTestList parses `test (',' test)* [',']`; more than one element, or
// a trailing comma, yields a tuple, which is a ListLiteral.
func (p *Parser) parseTestList() (ast.Expr, error) {
	first, err := p.parseTest()
	if err != nil {
		return nil, err
	}
	if !p.isOp(",") {
		return first, nil
	}
	elts := []ast.Expr{first}
	for p.isOp(",") {
		p.advance()
		if !p.startsExpression() {
			break
		}
		e, err := p.parseTest()
		if err != nil {
			return nil, err
		}
		elts = append(elts, e)
	}
	return &ast.ListLiteral{Elements: elts}, nil
}

// startsExpression reports whether the current token can begin a test.
func (p *Parser) startsExpression() bool {
	tok := p.current()
	switch tok.Type {
	case TokenName, TokenNumber, TokenString:
		return true
	case TokenKeyword:
		switch tok.Value {
		case "lambda", "not", "True", "False", "None":
			return true
		}
	case TokenOp:
		switch tok.Value {
		case "(", "[", "{", "+", "-", "~":
			return true
		}
	}
	return false
}

// parseTest handles lambdas and conditional expressions.
func (p *Parser) parseTest() (ast.Expr, error) {
	if p.isKeyword("lambda") {
		return p.parseLambda()
	}
	then, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if !p.isKeyword("if") {
		return then, nil
	}
	p.advance()
	test, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if !p.isKeyword("else") {
		return nil, p.errorf(p.current(), "expected 'else' in conditional expression, got %s", describe(p.current()))
	}
	p.advance()
	orElse, err := p.parseTest()
	if err != nil {
		return nil, err
	}
	return &ast.Conditional{Test: test, Then: then, Else: orElse}, nil
}

func (p *Parser) parseLambda() (ast.Expr, error) {
	start := p.advance() // lambda
	var params []string
	for !p.isOp(":") {
		tok := p.current()
		if tok.Type == TokenOp && (tok.Value == "*" || tok.Value == "**" || tok.Value == "/") {
			return nil, p.unsupported(tok, "variadic or positional-only lambda parameters")
		}
		if tok.Type != TokenName {
			return nil, p.errorf(tok, "expected lambda parameter name, got %s", describe(tok))
		}
		p.advance()
		if p.isOp("=") {
			return nil, p.unsupported(p.current(), "lambda parameter defaults")
		}
		params = append(params, tok.Value)
		if !p.isOp(",") {
			break
		}
		p.advance()
	}
	if _, err := p.expect(":"); err != nil {
		return nil, err
	}
	body, err := p.parseTest()
	if err != nil {
		return nil, err
	}
	lambda, err := ast.NewLambda(params, body, true)
	if err != nil {
		return nil, p.errorf(start, "%v", err)
	}
	return lambda, nil
}

func (p *Parser) parseOr() (ast.Expr, error) {
	return p.parseBoolChain(ast.Or, p.parseAnd)
}

func (p *Parser) parseAnd() (ast.Expr, error) {
	return p.parseBoolChain(ast.And, p.parseNot)
}

// parseBoolChain collects consecutive operands of one boolean operator into
// a single n-ary BoolOp.
func (p *Parser) parseBoolChain(op ast.BoolOperator, operand func() (ast.Expr, error)) (ast.Expr, error) {
	first, err := operand()
	if err != nil {
		return nil, err
	}
	if !p.isKeyword(string(op)) {
		return first, nil
	}
	operands := []ast.Expr{first}
	for p.isKeyword(string(op)) {
		p.advance()
		next, err := operand()
		if err != nil {
			return nil, err
		}
		operands = append(operands, next)
	}
	return ast.NewBoolOp(op, operands...)
}

func (p *Parser) parseNot() (ast.Expr, error) {
	if p.isKeyword("not") {
		p.advance()
		operand, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryOp{Op: ast.Not, Operand: operand}, nil
	}
	return p.parseComparison()
}

// parseComparison splits chains: a < b <= c yields
// (a < b) and (b <= c), with b copied into both comparisons.
func (p *Parser) parseComparison() (ast.Expr, error) {
	left, err := p.parseBinary(0)
	if err != nil {
		return nil, err
	}

	var comparisons []ast.Expr
	for {
		tok := p.current()
		if tok.Type == TokenKeyword && (tok.Value == "in" || tok.Value == "is") ||
			tok.Type == TokenKeyword && tok.Value == "not" && p.peek().Value == "in" {
			return nil, p.unsupported(tok, "'"+tok.Value+"' comparison")
		}
		if tok.Type != TokenOp {
			break
		}
		op, ok := ast.LookupCompare(tok.Value)
		if !ok {
			break
		}
		p.advance()
		right, err := p.parseBinary(0)
		if err != nil {
			return nil, err
		}
		if len(comparisons) > 0 {
			left = ast.Clone(left)
		}
		comparisons = append(comparisons, &ast.Compare{Op: op, Left: left, Right: right})
		left = right
	}

	switch len(comparisons) {
	case 0:
		return left, nil
	case 1:
		return comparisons[0], nil
	default:
		return ast.NewBoolOp(ast.And, comparisons...)
	}
}

// binaryLevels lists left-associative operator groups, loosest first.
var binaryLevels = [][]ast.BinaryOperator{
	{ast.BitOr},
	{ast.BitXor},
	{ast.BitAnd},
	{ast.LShift, ast.RShift},
	{ast.Add, ast.Sub},
	{ast.Mult, ast.Div, ast.FloorDiv, ast.Mod},
}

func (p *Parser) parseBinary(level int) (ast.Expr, error) {
	if level == len(binaryLevels) {
		return p.parseFactor()
	}
	left, err := p.parseBinary(level + 1)
	if err != nil {
		return nil, err
	}
	for {
		tok := p.current()
		if tok.Type == TokenOp && tok.Value == "@" && level == len(binaryLevels)-1 {
			return nil, p.unsupported(tok, "matrix multiplication")
		}
		op, ok := matchBinary(tok, binaryLevels[level])
		if !ok {
			return left, nil
		}
		p.advance()
		right, err := p.parseBinary(level + 1)
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryOp{Op: op, Left: left, Right: right}
	}
}

func matchBinary(tok Token, ops []ast.BinaryOperator) (ast.BinaryOperator, bool) {
	if tok.Type != TokenOp {
		return "", false
	}
	for _, op := range ops {
		if string(op) == tok.Value {
			return op, true
		}
	}
	return "", false
}

// parseFactor handles prefix + - ~, which bind looser than **.
func (p *Parser) parseFactor() (ast.Expr, error) {
	tok := p.current()
	if tok.Type == TokenOp {
		if op, ok := ast.LookupUnary(tok.Value); ok && op != ast.Not {
			p.advance()
			operand, err := p.parseFactor()
			if err != nil {
				return nil, err
			}
			return &ast.UnaryOp{Op: op, Operand: operand}, nil
		}
	}
	return p.parsePower()
}

// parsePower handles right-associative **, whose right side is a factor.
func (p *Parser) parsePower() (ast.Expr, error) {
	base, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	if !p.isOp("**") {
		return base, nil
	}
	p.advance()
	exp, err := p.parseFactor()
	if err != nil {
		return nil, err
	}
	return &ast.BinaryOp{Op: ast.Pow, Left: base, Right: exp}, nil
}

// parsePrimary parses an atom followed by attribute, call and subscript
// trailers.
func (p *Parser) parsePrimary() (ast.Expr, error) {
	expr, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	for {
		switch {
		case p.isOp("."):
			p.advance()
			name := p.current()
			if name.Type != TokenName {
				return nil, p.errorf(name, "expected attribute name, got %s", describe(name))
			}
			p.advance()
			if expr, err = ast.NewAttribute(expr, name.Value); err != nil {
				return nil, p.errorf(name, "%v", err)
			}
		case p.isOp("("):
			p.advance()
			args, err := p.parseArgs()
			if err != nil {
				return nil, err
			}
			expr = &ast.Call{Callee: expr, Args: args}
		case p.isOp("["):
			p.advance()
			index, err := p.parseSubscript()
			if err != nil {
				return nil, err
			}
			expr = &ast.Subscript{Base: expr, Index: index}
		default:
			return expr, nil
		}
	}
}

// parseArgs parses positional call arguments after '(' up to ')'.
func (p *Parser) parseArgs() ([]ast.Expr, error) {
	args := []ast.Expr{}
	for !p.isOp(")") {
		tok := p.current()
		if tok.Type == TokenOp && (tok.Value == "*" || tok.Value == "**") {
			return nil, p.unsupported(tok, "starred arguments")
		}
		if tok.Type == TokenName && p.peek().Type == TokenOp && p.peek().Value == "=" {
			return nil, p.unsupported(tok, "keyword arguments")
		}
		arg, err := p.parseTest()
		if err != nil {
			return nil, err
		}
		if p.isKeyword("for") {
			return nil, p.unsupported(p.current(), "generator expressions")
		}
		args = append(args, arg)
		if !p.isOp(",") {
			break
		}
		p.advance()
	}
	if _, err := p.expect(")"); err != nil {
		return nil, err
	}
	return args, nil
}

func (p *Parser) parseSubscript() (ast.Expr, error) {
	if p.isOp(":") {
		return nil, p.unsupported(p.current(), "slices")
	}
	index, err := p.parseTestList()
	if err != nil {
		return nil, err
	}
	if p.isOp(":") {
		return nil, p.unsupported(p.current(), "slices")
	}
	if _, err := p.expect("]"); err != nil {
		return nil, err
	}
	return index, nil
}

func (p *Parser) parseAtom() (ast.Expr, error) {
	tok := p.current()
	switch tok.Type {
	case TokenName:
		p.advance()
		id, err := ast.NewIdentifier(tok.Value)
		if err != nil {
			return nil, p.errorf(tok, "%v", err)
		}
		return id, nil

	case TokenNumber:
		p.advance()
		n, err := literal.ParseNumber(tok.Value)
		if err != nil {
			return nil, p.errorf(tok, "%v", err)
		}
		return n, nil

	case TokenString:
		// Adjacent string literals concatenate.
		value := ""
		for p.current().Type == TokenString {
			value += p.advance().Value
		}
		lit, err := ast.NewString(value)
		if err != nil {
			return nil, p.errorf(tok, "%v", err)
		}
		return lit, nil

	case TokenKeyword:
		switch tok.Value {
		case "True", "False":
			p.advance()
			return &ast.BooleanLiteral{Value: tok.Value == "True"}, nil
		case "None":
			p.advance()
			return &ast.NullLiteral{}, nil
		case "await", "yield":
			return nil, p.unsupported(tok, "'"+tok.Value+"' expressions")
		}

	case TokenOp:
		switch tok.Value {
		case "(":
			return p.parseParen()
		case "[":
			return p.parseListDisplay()
		case "{":
			return p.parseDictDisplay()
		}
	}
	return nil, p.errorf(tok, "unexpected %s", describe(tok))
}

// parseParen parses a parenthesized expression or a tuple.
func (p *Parser) parseParen() (ast.Expr, error) {
	p.advance() // (
	if p.isOp(")") {
		p.advance()
		return &ast.ListLiteral{Elements: []ast.Expr{}}, nil
	}
	inner, err := p.parseTestList()
	if err != nil {
		return nil, err
	}
	if p.isKeyword("for") {
		return nil, p.unsupported(p.current(), "generator expressions")
	}
	if _, err := p.expect(")"); err != nil {
		return nil, err
	}
	return inner, nil
}

func (p *Parser) parseListDisplay() (ast.Expr, error) {
	p.advance() // [
	elts := []ast.Expr{}
	for !p.isOp("]") {
		e, err := p.parseTest()
		if err != nil {
			return nil, err
		}
		if p.isKeyword("for") {
			return nil, p.unsupported(p.current(), "list comprehensions")
		}
		elts = append(elts, e)
		if !p.isOp(",") {
			break
		}
		p.advance()
	}
	if _, err := p.expect("]"); err != nil {
		return nil, err
	}
	return &ast.ListLiteral{Elements: elts}, nil
}

func (p *Parser) parseDictDisplay() (ast.Expr, error) {
	open := p.advance() // {
	keys, values := []ast.Expr{}, []ast.Expr{}
	for !p.isOp("}") {
		if p.isOp("**") {
			return nil, p.unsupported(p.current(), "dict unpacking")
		}
		key, err := p.parseTest()
		if err != nil {
			return nil, err
		}
		if !p.isOp(":") {
			return nil, p.unsupported(open, "set displays")
		}
		p.advance()
		value, err := p.parseTest()
		if err != nil {
			return nil, err
		}
		if p.isKeyword("for") {
			return nil, p.unsupported(p.current(), "dict comprehensions")
		}
		keys = append(keys, key)
		values = append(values, value)
		if !p.isOp(",") {
			break
		}
		p.advance()
	}
	if _, err := p.expect("}"); err != nil {
		return nil, err
	}
	return ast.NewDict(keys, values)
}
