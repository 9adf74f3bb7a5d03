package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/iris-hep/qastle/internal/dump"
)

// Snapshot renders the observable part of a result as canonical JSON:
// each case's name with its output or error code.
func Snapshot(result *Result) ([]byte, error) {
	cases := make(dump.Array, len(result.Cases))
	for i, c := range result.Cases {
		obj := dump.Object{"name": dump.String(c.Name)}
		if c.ErrorCode != "" {
			obj["error"] = dump.String(c.ErrorCode)
		} else {
			obj["output"] = dump.String(c.Output)
		}
		cases[i] = obj
	}
	return dump.Marshal(dump.Object{
		"suite": dump.String(result.Suite),
		"cases": cases,
	})
}

// RunWithGolden runs suite and compares its snapshot against
// testdata/golden/{suite.Name}.golden. Regenerate with -update.
func RunWithGolden(t *testing.T, suite *Suite) (*Result, error) {
	t.Helper()

	result := Run(suite)
	if err := AssertGolden(t, suite.Name, result); err != nil {
		return nil, err
	}
	return result, nil
}

// AssertGolden compares an existing result against a golden file.
func AssertGolden(t *testing.T, name string, result *Result) error {
	t.Helper()

	data, err := Snapshot(result)
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, data)
	return nil
}
