package linq

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iris-hep/qastle/internal/ast"
	"github.com/iris-hep/qastle/internal/errs"
	"github.com/iris-hep/qastle/internal/host"
	"github.com/iris-hep/qastle/internal/transform"
)

func expandSource(t *testing.T, src string) (ast.Expr, error) {
	t.Helper()
	e, err := host.ParseExpression(src)
	require.NoError(t, err)
	return Expand(e)
}

func assertExpands(t *testing.T, src, want string) {
	t.Helper()
	e, err := expandSource(t, src)
	require.NoError(t, err)
	got, err := transform.Encode(e)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestExpandQuotedLambda(t *testing.T) {
	e, err := expandSource(t, "the_source.Select('lambda row: row')")
	require.NoError(t, err)

	want := &ast.LINQ{
		Kind: ast.Select,
		Operands: []ast.Expr{
			&ast.Identifier{Name: "the_source"},
			&ast.Lambda{Params: []string{"row"}, Body: &ast.Identifier{Name: "row"}},
		},
	}
	assert.True(t, ast.Equal(want, e), "got %#v", e)
}

func TestExpandOperators(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"src.Where(lambda e: e > 1)", "(Where src (lambda (list e) (> e 1)))"},
		{"Where(src, lambda e: e > 1)", "(Where src (lambda (list e) (> e 1)))"},
		{"src.Select(lambda e: e.pt())", "(Select src (lambda (list e) (call (attr e 'pt'))))"},
		{"src.SelectMany(lambda e: e.jets())", "(SelectMany src (lambda (list e) (call (attr e 'jets'))))"},
		{"src.First()", "(First src)"},
		{"src.Last()", "(Last src)"},
		{"src.ElementAt(2)", "(ElementAt src 2)"},
		{"src.Contains(x)", "(Contains src x)"},
		{"src.Aggregate(0, lambda acc, e: acc + e)", "(Aggregate src 0 (lambda (list acc e) (+ acc e)))"},
		{"src.Count()", "(Count src)"},
		{"src.Max()", "(Max src)"},
		{"src.Min()", "(Min src)"},
		{"src.Sum()", "(Sum src)"},
		{"src.All(lambda e: e)", "(All src (lambda (list e) e))"},
		{"src.Any('lambda e: e')", "(Any src (lambda (list e) e))"},
		{"a.Concat(b)", "(Concat a b)"},
		{"src.Zip()", "(Zip src)"},
		{"src.OrderBy(lambda e: e.pt())", "(OrderBy src (lambda (list e) (call (attr e 'pt'))))"},
		{"src.OrderByDescending(lambda e: e)", "(OrderByDescending src (lambda (list e) e))"},
		{"src.Choose(2)", "(Choose src 2)"},
		{"Count(src)", "(Count src)"},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			assertExpands(t, tt.src, tt.want)
		})
	}
}

func TestExpandRecursive(t *testing.T) {
	e, err := expandSource(t, "src.First().Where(lambda x: x)")
	require.NoError(t, err)

	where, ok := e.(*ast.LINQ)
	require.True(t, ok)
	assert.Equal(t, ast.Where, where.Kind)

	first, ok := where.Source().(*ast.LINQ)
	require.True(t, ok)
	assert.Equal(t, ast.First, first.Kind)
	assert.True(t, ast.Equal(&ast.Identifier{Name: "src"}, first.Source()))

	assertExpands(t,
		"e.Jets().Select(lambda j: j.Tracks().Count()).Where('lambda n: n > 2')",
		"(Where (Select (call (attr e 'Jets')) (lambda (list j) (Count (call (attr j 'Tracks'))))) (lambda (list n) (> n 2)))")
	assertExpands(t,
		"f(src.First(), [src.Count()])",
		"(call f (First src) (list (Count src)))")
	assertExpands(t,
		"src.Aggregate(src.First(), lambda a, b: a + b)",
		"(Aggregate src (First src) (lambda (list a b) (+ a b)))")
}

func TestExpandPassthrough(t *testing.T) {
	for _, src := range []string{
		"obj.helper()",
		"helper(a, b)",
		"obj.where(lambda x: x)",
		"f(x)(y)",
		"a[0].b",
		"lambda x: x.pt() if x else -1",
	} {
		t.Run(src, func(t *testing.T) {
			in, err := host.ParseExpression(src)
			require.NoError(t, err)
			out, err := Expand(in)
			require.NoError(t, err)
			assert.True(t, ast.Equal(in, out))
		})
	}
}

func TestExpandShapeErrors(t *testing.T) {
	tests := []struct {
		src     string
		message string
	}{
		{"src.Where()", "Where() call must have exactly one argument; found 0"},
		{"src.Where(lambda x: x, lambda y: y)", "Where() call must have exactly one argument; found 2"},
		{"src.Where(x)", "Where() call predicate must be a lambda; found Identifier"},
		{"src.Select(lambda a, b: a)", "Select() call selector must have exactly one argument; found 2"},
		{"src.SelectMany(1)", "SelectMany() call selector must be a lambda; found NumericLiteral"},
		{"src.All()", "All() call must have exactly one argument; found 0"},
		{"src.Any(1, 2)", "Any() call must have exactly one argument; found 2"},
		{"src.OrderBy(lambda: 1)", "OrderBy() call key_selector must have exactly one argument; found 0"},
		{"src.OrderByDescending()", "OrderByDescending() call must have exactly one argument; found 0"},
		{"src.First(1)", "First() call must have zero arguments; found 1"},
		{"src.Last(1)", "Last() call must have zero arguments; found 1"},
		{"src.Count(1)", "Count() call must have zero arguments; found 1"},
		{"src.Max(1)", "Max() call must have zero arguments; found 1"},
		{"src.Min(1)", "Min() call must have zero arguments; found 1"},
		{"src.Sum(1)", "Sum() call must have zero arguments; found 1"},
		{"src.Zip(1)", "Zip() call must have zero arguments; found 1"},
		{"src.Aggregate(0)", "Aggregate() call must have exactly two arguments; found 1"},
		{"src.Aggregate(0, lambda a: a)", "Aggregate() call func must have exactly two arguments; found 1"},
		{"src.Where('x + 1')", "Where() predicate: STRUCTURAL_ERROR: quoted text must be a lambda; found BinaryOp"},
		{"src.Select('')", "Select() selector: STRUCTURAL_ERROR: quoted text is empty"},
		{"src.Aggregate(0, 'lambda a: a')", "Aggregate() call func must have exactly two arguments; found 1"},
		{"Where()", "Where() operator requires an explicit source"},
		{"f(src.Where())", "Where() call must have exactly one argument; found 0"},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			_, err := expandSource(t, tt.src)
			require.Error(t, err)
			assert.True(t, errors.Is(err, errs.ErrStructural), "got %v", err)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestExpandQuotedLambdaParseError(t *testing.T) {
	_, err := expandSource(t, "src.Where('lambda x: (')")
	require.Error(t, err)
	assert.Equal(t, errs.CodeParse, errs.CodeOf(err))
	assert.Contains(t, err.Error(), "Where() predicate")
}

func TestExpandUnknownOperator(t *testing.T) {
	x := NewExpander("Where", "Frobnicate")

	in, err := host.ParseExpression("src.Frobnicate(1)")
	require.NoError(t, err)
	_, err = x.Expand(in)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errs.ErrUnknownOperator))
	assert.Contains(t, err.Error(), "Frobnicate")

	// names outside the expander's set pass through
	in, err = host.ParseExpression("src.Select(lambda e: e)")
	require.NoError(t, err)
	out, err := x.Expand(in)
	require.NoError(t, err)
	assert.IsType(t, &ast.Call{}, out)
}

func TestQuotedLambda(t *testing.T) {
	l, err := QuotedLambda(&ast.StringLiteral{Value: "lambda a, b: a * b"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, l.Params)

	_, err = QuotedLambda(&ast.StringLiteral{Value: "a * b"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errs.ErrStructural))

	_, err = QuotedLambda(&ast.StringLiteral{Value: ""})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errs.ErrStructural))
}

func TestExpandModule(t *testing.T) {
	m, err := host.ParseModule("a.First()\nb.Count()")
	require.NoError(t, err)
	out, err := ExpandModule(m)
	require.NoError(t, err)
	require.Len(t, out.Body, 2)
	assert.IsType(t, &ast.LINQ{}, out.Body[0])
	assert.IsType(t, &ast.LINQ{}, out.Body[1])

	// the input is not modified
	assert.IsType(t, &ast.Call{}, m.Body[0])

	empty, err := ExpandModule(nil)
	require.NoError(t, err)
	assert.Empty(t, empty.Body)
}
