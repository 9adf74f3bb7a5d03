package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunWithGolden_Suites(t *testing.T) {
	for _, path := range []string{
		"testdata/suites/basics.yaml",
		"testdata/suites/linq.cue",
	} {
		t.Run(path, func(t *testing.T) {
			suite, err := LoadSuite(path)
			require.NoError(t, err)

			result, err := RunWithGolden(t, suite)
			require.NoError(t, err)
			assert.True(t, result.Pass, "errors: %v", result.Errors)
		})
	}
}

func TestSnapshot(t *testing.T) {
	result := NewResult("s")
	result.AddCase(CaseResult{Name: "b", Pass: true, Output: "(+ a 1)"})
	result.AddCase(CaseResult{Name: "a", Pass: true, ErrorCode: "PARSE_ERROR"})

	data, err := Snapshot(result)
	require.NoError(t, err)
	assert.Equal(t,
		`{"cases":[{"name":"b","output":"(+ a 1)"},{"error":"PARSE_ERROR","name":"a"}],"suite":"s"}`,
		string(data))
}
