package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strp(s string) *string { return &s }

func TestRun_PassingCases(t *testing.T) {
	suite := &Suite{
		Name: "minimal",
		Cases: []Case{
			{Name: "round_trip", Text: strp("(attr a 'b')")},
			{Name: "host", Source: strp("a.b"), Expect: strp("(attr a 'b')")},
			{Name: "expanded", Source: strp("src.Count()"), Expect: strp("(Count src)")},
		},
	}

	result := Run(suite)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
	assert.Empty(t, result.Errors)
	require.Len(t, result.Cases, 3)
	assert.Equal(t, 3, result.Passed())
	assert.Equal(t, "(Count src)", result.Cases[2].Output)
}

func TestRun_OutputMismatch(t *testing.T) {
	result := Run(&Suite{
		Name:  "mismatch",
		Cases: []Case{{Name: "wrong", Source: strp("a + b"), Expect: strp("(- a b)")}},
	})

	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "wrong: output mismatch")
	assert.Equal(t, "(+ a b)", result.Cases[0].Output)
}

func TestRun_NonCanonicalTextNeedsExpect(t *testing.T) {
	result := Run(&Suite{
		Name:  "noncanonical",
		Cases: []Case{{Name: "float", Text: strp(".2")}},
	})
	assert.False(t, result.Pass)
	assert.Contains(t, result.Errors[0], "expected: .2")
}

func TestRun_ExpectedErrors(t *testing.T) {
	result := Run(&Suite{
		Name: "errors",
		Cases: []Case{
			{Name: "code", Text: strp("(nope)"), Error: "UNKNOWN_NODE"},
			{Name: "message", Source: strp("src.Where()"), Error: "STRUCTURAL_ERROR", Message: "exactly one argument"},
		},
	})
	assert.True(t, result.Pass, "errors: %v", result.Errors)
	assert.Equal(t, "UNKNOWN_NODE", result.Cases[0].ErrorCode)
	assert.Empty(t, result.Cases[0].Output)
}

func TestRun_ErrorExpectationFailures(t *testing.T) {
	result := Run(&Suite{
		Name: "error_failures",
		Cases: []Case{
			{Name: "missing", Text: strp("a"), Error: "PARSE_ERROR"},
			{Name: "wrong_code", Text: strp("(nope)"), Error: "PARSE_ERROR"},
			{Name: "wrong_message", Text: strp("(nope)"), Error: "UNKNOWN_NODE", Message: "something else"},
			{Name: "unexpected", Text: strp("(attr a)")},
		},
	})

	assert.False(t, result.Pass)
	assert.Equal(t, 0, result.Passed())
	require.Len(t, result.Errors, 4)
	assert.Contains(t, result.Errors[0], "expected PARSE_ERROR, got output")
	assert.Contains(t, result.Errors[1], "expected PARSE_ERROR, got UNKNOWN_NODE")
	assert.Contains(t, result.Errors[2], "does not contain")
	assert.Contains(t, result.Errors[3], "unexpected error")
}

func TestRun_Columns(t *testing.T) {
	result := Run(&Suite{
		Name: "columns",
		Cases: []Case{
			{Name: "ok", Source: strp("src.Select(lambda r: [r.a, r.b.c()])"), Columns: strp("a, b.c()")},
			{Name: "not_select", Source: strp("src.Where(lambda r: r)"), Columns: strp("r")},
		},
	})
	assert.True(t, result.Cases[0].Pass, "errors: %v", result.Cases[0].Errors)
	assert.False(t, result.Cases[1].Pass)
	assert.Contains(t, result.Cases[1].Errors[0], "columns:")
}

func TestLoadSuite_YAML(t *testing.T) {
	suite, err := LoadSuite("testdata/suites/basics.yaml")
	require.NoError(t, err)
	assert.Equal(t, "basics", suite.Name)
	require.Len(t, suite.Cases, 10)
	assert.Equal(t, "3.e4", *suite.Cases[1].Text)
	assert.Nil(t, suite.Cases[1].Source)
	assert.Equal(t, `'as"df'`, *suite.Cases[2].Source)
}

func TestLoadSuite_CUE(t *testing.T) {
	suite, err := LoadSuite("testdata/suites/linq.cue")
	require.NoError(t, err)
	assert.Equal(t, "linq", suite.Name)
	require.Len(t, suite.Cases, 9)
	require.NotNil(t, suite.Cases[5].Expand)
	assert.False(t, *suite.Cases[5].Expand)
	assert.Equal(t, "STRUCTURAL_ERROR", suite.Cases[7].Error)
}

func TestLoadSuite_Errors(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
		return path
	}

	tests := []struct {
		name    string
		file    string
		content string
		want    string
	}{
		{"unknown field", "a.yaml", "name: x\ncase: []\n", "failed to parse YAML"},
		{"missing name", "b.yaml", "cases:\n  - name: a\n    text: a\n", "name is required"},
		{"no cases", "c.yaml", "name: x\n", "cases list is required"},
		{"both inputs", "d.yaml", "name: x\ncases:\n  - name: a\n    text: a\n    source: a\n", "exactly one of source and text"},
		{"no input", "e.yaml", "name: x\ncases:\n  - name: a\n", "exactly one of source and text"},
		{"duplicate", "f.yaml", "name: x\ncases:\n  - name: a\n    text: a\n  - name: a\n    text: b\n", "duplicate case name"},
		{"bad code", "g.yaml", "name: x\ncases:\n  - name: a\n    text: a\n    error: OOPS\n", "unknown error code"},
		{"message alone", "h.yaml", "name: x\ncases:\n  - name: a\n    text: a\n    message: m\n", "message requires error"},
		{"expand on text", "i.yaml", "name: x\ncases:\n  - name: a\n    text: a\n    expand: false\n", "expand applies only"},
		{"cue syntax", "j.cue", "name: \"x\"\ncases: [\n", "failed to compile CUE"},
		{"cue conflict", "k.cue", "name: \"x\"\nname: \"y\"\n", "CUE"},
		{"cue incomplete", "m.cue", "name: string\ncases: []\n", "invalid CUE suite"},
		{"extension", "l.json", "{}", "unsupported suite file extension"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadSuite(write(tt.file, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}

	_, err := LoadSuite(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read suite file")
}
