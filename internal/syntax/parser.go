package syntax

import (
	"regexp"
	"strings"
	"sync"

	"github.com/iris-hep/qastle/internal/errs"
)

// Parser holds the compiled lexical rules. It has no per-call state.
type Parser struct {
	identifier *regexp.Regexp
	number     *regexp.Regexp
}

var defaultParser = sync.OnceValue(func() *Parser {
	return &Parser{
		identifier: regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*`),
		number:     regexp.MustCompile(`^[+-]?(?:[0-9]+(?:\.[0-9]*)?|\.[0-9]+)(?:[eE][+-]?[0-9]+)?`),
	}
})

// Default returns the shared parser, building it on first call.
func Default() *Parser {
	return defaultParser()
}

// Parse parses text with the shared parser.
func Parse(text string) (*Record, error) {
	return Default().Parse(text)
}

// Parse parses one record. Empty or all-whitespace input is an empty
// record. Errors are *errs.Error with CodeParse.
func (p *Parser) Parse(text string) (*Record, error) {
	s := &scanner{p: p, src: text}
	s.skipSpace()
	if s.eof() {
		return &Record{Source: text}, nil
	}
	node, err := s.expression()
	if err != nil {
		return nil, err
	}
	s.skipSpace()
	if !s.eof() {
		return nil, s.errorf("unexpected %s after expression; a record holds at most one expression", s.describe())
	}
	return &Record{Expr: node, Source: text}, nil
}

// scanner is the per-call cursor.
type scanner struct {
	p   *Parser
	src string
	pos int
}

func (s *scanner) eof() bool { return s.pos >= len(s.src) }

func (s *scanner) errorf(format string, args ...any) error {
	return errs.Parse(s.src, s.pos, format, args...)
}

// describe names the token at the cursor for diagnostics.
func (s *scanner) describe() string {
	if s.eof() {
		return "end of input"
	}
	end := s.pos
	for end < len(s.src) && !isSpace(s.src[end]) && end-s.pos < 20 {
		end++
	}
	if end == s.pos {
		end++
	}
	return "token " + quoteToken(s.src[s.pos:end])
}

func quoteToken(t string) string {
	return "'" + strings.ReplaceAll(t, "'", `\'`) + "'"
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\f', '\v':
		return true
	}
	return false
}

// skipSpace advances over whitespace and reports whether any was consumed.
func (s *scanner) skipSpace() bool {
	start := s.pos
	for !s.eof() && isSpace(s.src[s.pos]) {
		s.pos++
	}
	return s.pos > start
}

func (s *scanner) expression() (*Node, error) {
	if s.src[s.pos] == '(' {
		return s.composite()
	}
	return s.atom()
}

func (s *scanner) composite() (*Node, error) {
	node := &Node{Kind: KindComposite, Pos: s.pos}
	s.pos++ // '('
	s.skipSpace()

	start := s.pos
	for !s.eof() && isNodeTypeChar(s.src[s.pos]) {
		s.pos++
	}
	if s.pos == start {
		return nil, s.errorf("expected node type, found %s", s.describe())
	}
	node.Text = s.src[start:s.pos]

	for {
		sawSpace := s.skipSpace()
		if s.eof() {
			return nil, errs.Parse(s.src, node.Pos, "unterminated composite (%s: missing ')'", node.Text)
		}
		if s.src[s.pos] == ')' {
			s.pos++
			return node, nil
		}
		if !sawSpace {
			return nil, s.errorf("expected whitespace before %s", s.describe())
		}
		field, err := s.expression()
		if err != nil {
			return nil, err
		}
		node.Fields = append(node.Fields, field)
	}
}

// isNodeTypeChar accepts identifier characters and operator symbols.
func isNodeTypeChar(c byte) bool {
	if isSpace(c) {
		return false
	}
	switch c {
	case '(', ')', '\'', '"':
		return false
	}
	return c > ' ' && c < 0x7f
}

func (s *scanner) atom() (*Node, error) {
	start := s.pos
	c := s.src[s.pos]

	var node *Node
	switch {
	case c == '\'' || c == '"':
		end, err := s.stringEnd(c)
		if err != nil {
			return nil, err
		}
		node = &Node{Kind: KindString, Text: s.src[start:end], Pos: start}
		s.pos = end
	case c == '+' || c == '-' || c == '.' || (c >= '0' && c <= '9'):
		m := s.p.number.FindString(s.src[start:])
		if m == "" {
			return nil, s.errorf("invalid numeric literal %s", s.describe())
		}
		node = &Node{Kind: KindNumber, Text: m, Pos: start}
		s.pos += len(m)
	default:
		m := s.p.identifier.FindString(s.src[start:])
		if m == "" {
			return nil, s.errorf("unexpected %s", s.describe())
		}
		node = &Node{Kind: KindIdentifier, Text: m, Pos: start}
		s.pos += len(m)
	}

	if !s.eof() && !isSpace(s.src[s.pos]) && s.src[s.pos] != ')' {
		s.pos = start
		return nil, s.errorf("invalid %s %s", node.Kind, s.describe())
	}
	return node, nil
}

// stringEnd finds the offset just past the closing quote of the string
// starting at the cursor.
func (s *scanner) stringEnd(quote byte) (int, error) {
	for i := s.pos + 1; i < len(s.src); i++ {
		switch s.src[i] {
		case '\\':
			i++
		case quote:
			return i + 1, nil
		}
	}
	return 0, s.errorf("unterminated string literal")
}
