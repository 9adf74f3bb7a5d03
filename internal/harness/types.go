package harness

import "fmt"

// CaseResult is the outcome of one case.
type CaseResult struct {
	Name string `json:"name" yaml:"name"`
	Pass bool   `json:"pass" yaml:"pass"`

	// Output is the canonical text produced, empty on error.
	Output string `json:"output,omitempty" yaml:"output,omitempty"`

	// ErrorCode is the code of the translation error, if any.
	ErrorCode string `json:"error_code,omitempty" yaml:"error_code,omitempty"`

	// Errors lists failed expectations.
	Errors []string `json:"errors,omitempty" yaml:"errors,omitempty"`
}

// addError records a failed expectation.
func (r *CaseResult) addError(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
	r.Pass = false
}

// Result is the outcome of a suite.
type Result struct {
	Suite string `json:"suite" yaml:"suite"`

	// Pass is true when every case passes.
	Pass bool `json:"pass" yaml:"pass"`

	Cases []CaseResult `json:"cases" yaml:"cases"`

	// Errors collects "case: message" lines from failed cases.
	Errors []string `json:"errors,omitempty" yaml:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult(suite string) *Result {
	return &Result{
		Suite:  suite,
		Pass:   true,
		Cases:  []CaseResult{},
		Errors: []string{},
	}
}

// AddCase appends a case result, failing the suite if the case failed.
func (r *Result) AddCase(c CaseResult) {
	r.Cases = append(r.Cases, c)
	for _, e := range c.Errors {
		r.AddError(c.Name + ": " + e)
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// Passed returns the number of passing cases.
func (r *Result) Passed() int {
	n := 0
	for _, c := range r.Cases {
		if c.Pass {
			n++
		}
	}
	return n
}
