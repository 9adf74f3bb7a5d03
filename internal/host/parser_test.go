package host

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iris-hep/qastle/internal/ast"
	"github.com/iris-hep/qastle/internal/errs"
	"github.com/iris-hep/qastle/internal/transform"
)

// assertText parses src and checks its canonical text rendering.
func assertText(t *testing.T, src, want string) {
	t.Helper()
	e, err := ParseExpression(src)
	require.NoError(t, err)
	got, err := transform.Encode(e)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestParseAtoms(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"xyz", "xyz"},
		{"0", "0"},
		{"1.2", "1.2"},
		{".5", "0.5"},
		{"3.e4", "30000.0"},
		{"1e16", "1e+16"},
		{"123456789012345678901234567890", "123456789012345678901234567890"},
		{"'abc'", "'abc'"},
		{`"it's"`, `"it's"`},
		{`'a' "b"`, "'ab'"},
		{`'\n'`, `'\n'`},
		{"True", "True"},
		{"False", "False"},
		{"None", "None"},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			assertText(t, tt.src, tt.want)
		})
	}
}

func TestParseOperators(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"-1", "-1"},
		{"+2.5", "2.5"},
		{"-x", "(- x)"},
		{"~x", "(~ x)"},
		{"not x", "(not x)"},
		{"a + b * c", "(+ a (* b c))"},
		{"(a + b) * c", "(* (+ a b) c)"},
		{"a - b - c", "(- (- a b) c)"},
		{"a // b % c", "(% (// a b) c)"},
		{"a ** b ** c", "(** a (** b c))"},
		{"-a ** b", "(- (** a b))"},
		{"a | b ^ c & d", "(| a (^ b (& c d)))"},
		{"a << 1 >> 2", "(>> (<< a 1) 2)"},
		{"a == b", "(== a b)"},
		{"a != b", "(!= a b)"},
		{"a and b", "(and a b)"},
		{"a and b and c", "(and (and a b) c)"},
		{"a or b and c", "(or a (and b c))"},
		{"not a == b", "(not (== a b))"},
		{"a if b else c", "(if b a c)"},
		{"a if b else c if d else e", "(if b a (if d c e))"},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			assertText(t, tt.src, tt.want)
		})
	}
}

func TestParseCompareChain(t *testing.T) {
	e, err := ParseExpression("a < b < c < d")
	require.NoError(t, err)

	op, ok := e.(*ast.BoolOp)
	require.True(t, ok, "got %T", e)
	assert.Equal(t, ast.And, op.Op)
	require.Len(t, op.Operands, 3)

	first := op.Operands[0].(*ast.Compare)
	second := op.Operands[1].(*ast.Compare)
	assert.True(t, ast.Equal(first.Right, second.Left))
	assert.NotSame(t, first.Right, second.Left)

	assertText(t, "a < b < c < d", "(and (and (< a b) (< b c)) (< c d))")
	assertText(t, "0 <= x.pt() < 10", "(and (<= 0 (call (attr x 'pt'))) (< (call (attr x 'pt')) 10))")
}

func TestParseTrailers(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"a.b", "(attr a 'b')"},
		{"a.b.c", "(attr (attr a 'b') 'c')"},
		{"f()", "(call f)"},
		{"f(x, y,)", "(call f x y)"},
		{"a[0]", "(subscript a 0)"},
		{"a[1, 2]", "(subscript a (list 1 2))"},
		{"e.Jets('AntiKt4').pt()", "(call (attr (call (attr e 'Jets') 'AntiKt4') 'pt'))"},
		{"f(x)(y)", "(call (call f x) y)"},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			assertText(t, tt.src, tt.want)
		})
	}
}

func TestParseDisplays(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"[]", "(list)"},
		{"[1, 'a', b]", "(list 1 'a' b)"},
		{"()", "(list)"},
		{"(1,)", "(list 1)"},
		{"(1, 2)", "(list 1 2)"},
		{"1, 2", "(list 1 2)"},
		{"(1)", "1"},
		{"{}", "(dict (list) (list))"},
		{"{'a': 1, 'b': x}", "(dict (list 'a' 'b') (list 1 x))"},
		{"[1,\n 2]", "(list 1 2)"},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			assertText(t, tt.src, tt.want)
		})
	}
}

func TestParseLambda(t *testing.T) {
	assertText(t, "lambda x: x", "(lambda (list x) x)")
	assertText(t, "lambda: 1", "(lambda (list) 1)")
	assertText(t, "lambda a, b: a + b", "(lambda (list a b) (+ a b))")
	assertText(t, "lambda x: lambda y: x * y", "(lambda (list x) (lambda (list y) (* x y)))")
	assertText(t, "lambda x: x if x else 0", "(lambda (list x) (if x x 0))")

	_, err := ParseExpression("lambda x, x: x")
	require.Error(t, err)
	assert.Equal(t, errs.CodeParse, errs.CodeOf(err))
	assert.Contains(t, err.Error(), "duplicate lambda parameter")
}

func TestParseModule(t *testing.T) {
	m, err := ParseModule("")
	require.NoError(t, err)
	assert.Empty(t, m.Body)

	m, err = ParseModule("# just a comment\n\n")
	require.NoError(t, err)
	assert.Empty(t, m.Body)

	m, err = ParseModule("a\nb; c\n")
	require.NoError(t, err)
	assert.Len(t, m.Body, 3)

	m, err = ParseModule("f(a,\n  b)  # trailing\n")
	require.NoError(t, err)
	require.Len(t, m.Body, 1)

	_, err = ParseExpression("a\nb")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errs.ErrStructural))

	e, err := ParseExpression("   ")
	require.NoError(t, err)
	assert.Nil(t, e)
}

func TestParseUnsupported(t *testing.T) {
	for _, src := range []string{
		"a in b",
		"a not in b",
		"a is None",
		"f(x=1)",
		"f(*xs)",
		"a[1:2]",
		"{1, 2}",
		"[x for x in y]",
		"lambda x=1: x",
		"lambda *args: 1",
		"a @ b",
		"yield x",
	} {
		t.Run(src, func(t *testing.T) {
			_, err := ParseExpression(src)
			require.Error(t, err)
			assert.True(t, errors.Is(err, errs.ErrUnsupportedNode), "got %v", err)
		})
	}
}

func TestParseSyntaxErrors(t *testing.T) {
	tests := []struct {
		src    string
		line   int
		column int
	}{
		{"(a", 1, 3},
		{"a +", 1, 4},
		{"a b", 1, 3},
		{"f(a", 1, 4},
		{"x.1", 1, 2},
		{"'abc", 1, 1},
		{"a\n  )", 2, 3},
		{"a if b", 1, 7},
		{"$", 1, 1},
		{"'''doc'''", 1, 1},
		{"r'raw'", 1, 1},
		{"1abc", 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			_, err := ParseModule(tt.src)
			require.Error(t, err)
			var e *errs.Error
			require.True(t, errors.As(err, &e))
			assert.Equal(t, errs.CodeParse, e.Code)
			assert.Equal(t, tt.line, e.Line, "line for %q: %v", tt.src, err)
			assert.Equal(t, tt.column, e.Column, "column for %q: %v", tt.src, err)
		})
	}
}

func TestTokenize(t *testing.T) {
	tokens, err := NewLexer("a.b(1, 'x') ** 2").Tokenize()
	require.NoError(t, err)

	var types []TokenType
	var values []string
	for _, tok := range tokens {
		types = append(types, tok.Type)
		values = append(values, tok.Value)
	}
	assert.Equal(t, []TokenType{
		TokenName, TokenOp, TokenName, TokenOp, TokenNumber, TokenOp,
		TokenString, TokenOp, TokenOp, TokenNumber, TokenEOF,
	}, types)
	assert.Equal(t, []string{"a", ".", "b", "(", "1", ",", "x", ")", "**", "2", ""}, values)
}
