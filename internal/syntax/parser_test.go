package syntax

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iris-hep/qastle/internal/errs"
)

func TestParseEmptyRecord(t *testing.T) {
	for _, input := range []string{"", " ", " \t\r\n"} {
		rec, err := Parse(input)
		require.NoError(t, err)
		assert.True(t, rec.IsEmpty(), "input %q", input)
		assert.Equal(t, "", rec.String())
	}
}

func TestParseAtoms(t *testing.T) {
	tests := []struct {
		input string
		kind  Kind
		text  string
	}{
		{"xyz", KindIdentifier, "xyz"},
		{"_a1", KindIdentifier, "_a1"},
		{"  True  ", KindIdentifier, "True"},
		{"0", KindNumber, "0"},
		{"-1", KindNumber, "-1"},
		{"+1.5", KindNumber, "+1.5"},
		{".2", KindNumber, ".2"},
		{"3.e4", KindNumber, "3.e4"},
		{"7.8e-24", KindNumber, "7.8e-24"},
		{"''", KindString, "''"},
		{`'as"df'`, KindString, `'as"df'`},
		{`"as'df"`, KindString, `"as'df"`},
		{`'it\'s'`, KindString, `'it\'s'`},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			rec, err := Parse(tt.input)
			require.NoError(t, err)
			require.NotNil(t, rec.Expr)
			assert.Equal(t, tt.kind, rec.Expr.Kind)
			assert.Equal(t, tt.text, rec.Expr.Text)
			assert.Empty(t, rec.Expr.Fields)
		})
	}
}

func TestParseComposites(t *testing.T) {
	rec, err := Parse("(Select data_source (lambda (list e) e))")
	require.NoError(t, err)

	root := rec.Expr
	require.Equal(t, KindComposite, root.Kind)
	assert.Equal(t, "Select", root.Text)
	require.Len(t, root.Fields, 2)
	assert.Equal(t, "data_source", root.Fields[0].Text)

	lambda := root.Fields[1]
	assert.Equal(t, "lambda", lambda.Text)
	require.Len(t, lambda.Fields, 2)
	assert.Equal(t, "list", lambda.Fields[0].Text)
	assert.Equal(t, "e", lambda.Fields[0].Fields[0].Text)
	assert.Equal(t, 20, lambda.Pos)
}

func TestParseCompositeWhitespace(t *testing.T) {
	rec, err := Parse("\n( +\t1\n  2 )  ")
	require.NoError(t, err)
	assert.Equal(t, "(+ 1 2)", rec.String())

	rec, err = Parse("(list)")
	require.NoError(t, err)
	assert.Equal(t, "list", rec.Expr.Text)
	assert.Empty(t, rec.Expr.Fields)

	rec, err = Parse("( list )")
	require.NoError(t, err)
	assert.Empty(t, rec.Expr.Fields)
}

func TestParseOperatorNodeTypes(t *testing.T) {
	for _, sym := range []string{"+", "-", "*", "/", "%", "**", "//", "&", "|", "^", "<<", ">>", "==", "!=", "<", "<=", ">", ">=", "~", "not", "and", "or"} {
		rec, err := Parse("(" + sym + " a b)")
		require.NoError(t, err, sym)
		assert.Equal(t, sym, rec.Expr.Text)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		line  int
		col   int
	}{
		{"two expressions", "a b", 1, 3},
		{"unterminated composite", "(list a", 1, 1},
		{"unterminated string", "'abc", 1, 1},
		{"missing node type", "( )", 1, 3},
		{"stray close", ")", 1, 1},
		{"junk after number", "12abc", 1, 1},
		{"no space between fields", "(list a(list))", 1, 7},
		{"second line", "(list\n  @)", 2, 3},
		{"lone sign", "(list -)", 1, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.input)
			require.Error(t, err)
			assert.True(t, errors.Is(err, errs.ErrParse))

			var pe *errs.Error
			require.True(t, errors.As(err, &pe))
			assert.Equal(t, tt.line, pe.Line, "line: %v", err)
			assert.Equal(t, tt.col, pe.Column, "column: %v", err)
		})
	}
}

func TestDefaultParserIsShared(t *testing.T) {
	var wg sync.WaitGroup
	parsers := make([]*Parser, 8)
	for i := range parsers {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			parsers[i] = Default()
			_, err := parsers[i].Parse("(call f 1 2)")
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()
	for _, p := range parsers {
		assert.Same(t, parsers[0], p)
	}
}
