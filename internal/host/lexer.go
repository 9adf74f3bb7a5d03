package host

import (
	"strings"

	"github.com/iris-hep/qastle/internal/errs"
	"github.com/iris-hep/qastle/internal/literal"
)

// Lexer tokenizes host source.
type Lexer struct {
	input  string
	pos    int
	depth  int // bracket nesting; newlines inside brackets are ignored
	tokens []Token
}

// NewLexer creates a new lexer for the given input.
func NewLexer(input string) *Lexer {
	return &Lexer{input: input}
}

// Tokenize scans the entire input and returns all tokens.
func (l *Lexer) Tokenize() ([]Token, error) {
	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		l.tokens = append(l.tokens, tok)
		if tok.Type == TokenEOF {
			return l.tokens, nil
		}
	}
}

func (l *Lexer) errorf(pos int, format string, args ...any) error {
	return errs.Parse(l.input, pos, format, args...)
}

func (l *Lexer) next() (Token, error) {
	if tok, ok := l.skipSpace(); ok {
		return tok, nil
	}
	if l.pos >= len(l.input) {
		return Token{Type: TokenEOF, Pos: l.pos}, nil
	}

	ch := l.input[l.pos]
	switch {
	case ch == '"' || ch == '\'':
		return l.readString()
	case isDigit(ch) || (ch == '.' && l.pos+1 < len(l.input) && isDigit(l.input[l.pos+1])):
		return l.readNumber()
	case isNameStart(ch):
		return l.readName()
	case ch == ';':
		l.pos++
		return Token{Type: TokenNewline, Value: ";", Pos: l.pos - 1}, nil
	}

	for _, op := range operators {
		if strings.HasPrefix(l.input[l.pos:], op) {
			start := l.pos
			l.pos += len(op)
			switch op {
			case "(", "[", "{":
				l.depth++
			case ")", "]", "}":
				if l.depth > 0 {
					l.depth--
				}
			}
			return Token{Type: TokenOp, Value: op, Pos: start}, nil
		}
	}
	return Token{}, l.errorf(l.pos, "unexpected character %q", string(ch))
}

// skipSpace skips blanks, comments and line continuations. A newline
// outside brackets is returned as a token.
func (l *Lexer) skipSpace() (Token, bool) {
	for l.pos < len(l.input) {
		switch ch := l.input[l.pos]; ch {
		case ' ', '\t', '\f', '\r':
			l.pos++
		case '\\':
			if l.pos+1 < len(l.input) && l.input[l.pos+1] == '\n' {
				l.pos += 2
				continue
			}
			return Token{}, false
		case '#':
			for l.pos < len(l.input) && l.input[l.pos] != '\n' {
				l.pos++
			}
		case '\n':
			l.pos++
			if l.depth == 0 {
				return Token{Type: TokenNewline, Value: "\n", Pos: l.pos - 1}, true
			}
		default:
			return Token{}, false
		}
	}
	return Token{}, false
}

func (l *Lexer) readString() (Token, error) {
	start := l.pos
	quote := l.input[l.pos]
	if strings.HasPrefix(l.input[l.pos:], strings.Repeat(string(quote), 3)) {
		return Token{}, l.errorf(start, "triple-quoted strings are not supported")
	}
	for i := l.pos + 1; i < len(l.input); i++ {
		switch l.input[i] {
		case '\\':
			i++
		case '\n':
			return Token{}, l.errorf(start, "unterminated string literal")
		case quote:
			l.pos = i + 1
			value, err := literal.Unquote(l.input[start:l.pos])
			if err != nil {
				return Token{}, l.errorf(start, "%v", err)
			}
			return Token{Type: TokenString, Value: value, Pos: start}, nil
		}
	}
	return Token{}, l.errorf(start, "unterminated string literal")
}

func (l *Lexer) readNumber() (Token, error) {
	start := l.pos
	for l.pos < len(l.input) && isDigit(l.input[l.pos]) {
		l.pos++
	}
	if l.pos < len(l.input) && l.input[l.pos] == '.' {
		l.pos++
		for l.pos < len(l.input) && isDigit(l.input[l.pos]) {
			l.pos++
		}
	}
	if l.pos < len(l.input) && (l.input[l.pos] == 'e' || l.input[l.pos] == 'E') {
		l.pos++
		if l.pos < len(l.input) && (l.input[l.pos] == '+' || l.input[l.pos] == '-') {
			l.pos++
		}
		for l.pos < len(l.input) && isDigit(l.input[l.pos]) {
			l.pos++
		}
	}
	if l.pos < len(l.input) && isNameStart(l.input[l.pos]) {
		return Token{}, l.errorf(start, "invalid numeric literal %q", l.input[start:l.pos+1])
	}
	return Token{Type: TokenNumber, Value: l.input[start:l.pos], Pos: start}, nil
}

func (l *Lexer) readName() (Token, error) {
	start := l.pos
	for l.pos < len(l.input) && isNamePart(l.input[l.pos]) {
		l.pos++
	}
	word := l.input[start:l.pos]
	if l.pos < len(l.input) && (l.input[l.pos] == '\'' || l.input[l.pos] == '"') {
		return Token{}, l.errorf(start, "string prefix %q is not supported", word)
	}
	if keywords[word] {
		return Token{Type: TokenKeyword, Value: word, Pos: start}, nil
	}
	return Token{Type: TokenName, Value: word, Pos: start}, nil
}

func isDigit(ch byte) bool { return ch >= '0' && ch <= '9' }

func isNameStart(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_'
}

func isNamePart(ch byte) bool {
	return isNameStart(ch) || isDigit(ch)
}
