package harness

import (
	"io"
	"log/slog"

	"github.com/iris-hep/qastle/internal/ast"
	"github.com/iris-hep/qastle/internal/host"
	"github.com/iris-hep/qastle/internal/linq"
	"github.com/iris-hep/qastle/internal/transform"
)

// Harness runs suites.
type Harness struct {
	logger *slog.Logger
}

// Option configures a Harness.
type Option func(*Harness)

// WithLogger sets the logger. The default discards output.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Harness) { h.logger = logger }
}

// New creates a harness.
func New(opts ...Option) *Harness {
	h := &Harness{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Run executes a suite with a default harness.
func Run(suite *Suite) *Result {
	return New().Run(suite)
}

// Run executes every case of suite. Case failures are reported in the
// result, never as a Go error.
func (h *Harness) Run(suite *Suite) *Result {
	result := NewResult(suite.Name)
	for _, c := range suite.Cases {
		cr := h.runCase(c)
		h.logger.Debug("case finished",
			"suite", suite.Name,
			"case", c.Name,
			"pass", cr.Pass,
			"error_code", cr.ErrorCode,
		)
		result.AddCase(cr)
	}
	h.logger.Info("suite finished",
		"suite", suite.Name,
		"passed", result.Passed(),
		"total", len(result.Cases),
	)
	return result
}

// outcome is what a case's input translated to.
type outcome struct {
	expr   ast.Expr
	output string
	err    error
}

func (h *Harness) runCase(c Case) CaseResult {
	out := translate(c)
	cr := CaseResult{Name: c.Name, Pass: true, Output: out.output}
	if out.err != nil {
		cr.Output = ""
	}
	checkCase(c, out, &cr)
	return cr
}

func translate(c Case) outcome {
	if c.Text != nil {
		e, err := transform.DecodeText(*c.Text)
		if err != nil {
			return outcome{err: err}
		}
		text, err := transform.Encode(e)
		return outcome{expr: e, output: text, err: err}
	}

	m, err := host.ParseModule(*c.Source)
	if err != nil {
		return outcome{err: err}
	}
	if c.expands() {
		if m, err = linq.ExpandModule(m); err != nil {
			return outcome{err: err}
		}
	}
	text, err := transform.EncodeModule(m)
	return outcome{expr: ast.Unwrap(m), output: text, err: err}
}
