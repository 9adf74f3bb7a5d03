package harness

import (
	"strings"

	"github.com/iris-hep/qastle/internal/columns"
	"github.com/iris-hep/qastle/internal/errs"
	"github.com/iris-hep/qastle/internal/transform"
)

// checkCase compares an outcome against the case's expectations.
func checkCase(c Case, out outcome, cr *CaseResult) {
	if out.err != nil {
		cr.ErrorCode = string(errs.CodeOf(out.err))
		checkError(c, out, cr)
		return
	}
	if c.Error != "" {
		cr.addError("expected %s, got output %q", c.Error, out.output)
		return
	}

	want := c.Expect
	if want == nil && c.Text != nil {
		want = c.Text
	}
	if want != nil && *want != out.output {
		cr.addError("output mismatch\n  expected: %s\n  actual:   %s", *want, out.output)
	}

	checkFixedPoint(out.output, cr)

	if c.Columns != nil {
		got, err := columns.Columns(out.expr)
		switch {
		case err != nil:
			cr.addError("columns: %v", err)
		case got != *c.Columns:
			cr.addError("columns mismatch\n  expected: %s\n  actual:   %s", *c.Columns, got)
		}
	}
}

func checkError(c Case, out outcome, cr *CaseResult) {
	if c.Error == "" {
		cr.addError("unexpected error: %v", out.err)
		return
	}
	if cr.ErrorCode != c.Error {
		cr.addError("expected %s, got %v", c.Error, out.err)
		return
	}
	if c.Message != "" && !strings.Contains(out.err.Error(), c.Message) {
		cr.addError("error %q does not contain %q", out.err.Error(), c.Message)
	}
}

// checkFixedPoint verifies that output decodes and re-encodes unchanged.
func checkFixedPoint(output string, cr *CaseResult) {
	e, err := transform.DecodeText(output)
	if err != nil {
		cr.addError("output does not decode: %v", err)
		return
	}
	again, err := transform.Encode(e)
	if err != nil {
		cr.addError("output does not re-encode: %v", err)
		return
	}
	if again != output {
		cr.addError("output is not a fixed point: %s re-encodes as %s", output, again)
	}
}
