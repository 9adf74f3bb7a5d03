package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"gopkg.in/yaml.v3"

	"github.com/iris-hep/qastle/internal/errs"
)

// Suite is a named list of translation cases.
type Suite struct {
	// Name uniquely identifies the suite and names its golden file.
	Name string `yaml:"name" json:"name"`

	// Description explains what the suite covers.
	Description string `yaml:"description" json:"description"`

	Cases []Case `yaml:"cases" json:"cases"`
}

// Case is one translation and its expected outcome.
type Case struct {
	Name string `yaml:"name" json:"name"`

	// Source is host source. Exactly one of Source and Text is set.
	Source *string `yaml:"source,omitempty" json:"source,omitempty"`

	// Text is canonical text.
	Text *string `yaml:"text,omitempty" json:"text,omitempty"`

	// Expand controls LINQ expansion of Source. Defaults to true.
	Expand *bool `yaml:"expand,omitempty" json:"expand,omitempty"`

	// Expect is the expected canonical output.
	Expect *string `yaml:"expect,omitempty" json:"expect,omitempty"`

	// Columns is the expected column list.
	Columns *string `yaml:"columns,omitempty" json:"columns,omitempty"`

	// Error is the expected error code, e.g. STRUCTURAL_ERROR.
	Error string `yaml:"error,omitempty" json:"error,omitempty"`

	// Message is a substring the error message must contain.
	Message string `yaml:"message,omitempty" json:"message,omitempty"`
}

// expands reports whether source input is LINQ-expanded.
func (c Case) expands() bool {
	return c.Expand == nil || *c.Expand
}

var knownCodes = map[errs.Code]bool{
	errs.CodeParse:           true,
	errs.CodeStructural:      true,
	errs.CodeUnknownNode:     true,
	errs.CodeUnsupportedNode: true,
	errs.CodeUnknownOperator: true,
}

// LoadSuite reads a suite from a .yaml, .yml or .cue file. YAML is decoded
// strictly so misspelled fields are reported.
func LoadSuite(path string) (*Suite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read suite file: %w", err)
	}

	var suite Suite
	switch ext := filepath.Ext(path); ext {
	case ".yaml", ".yml":
		decoder := yaml.NewDecoder(bytes.NewReader(data))
		decoder.KnownFields(true)
		if err := decoder.Decode(&suite); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	case ".cue":
		if err := decodeCUE(path, data, &suite); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported suite file extension %q", ext)
	}

	if err := validateSuite(&suite); err != nil {
		return nil, fmt.Errorf("invalid suite: %w", err)
	}
	return &suite, nil
}

// decodeCUE evaluates a standalone CUE file and decodes it into suite.
// The file must be concrete; definitions and constraints are allowed.
func decodeCUE(path string, data []byte, suite *Suite) error {
	ctx := cuecontext.New()
	value := ctx.CompileBytes(data, cue.Filename(path))
	if err := value.Err(); err != nil {
		return fmt.Errorf("failed to compile CUE: %w", err)
	}
	if err := value.Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("invalid CUE suite: %w", err)
	}
	if err := value.Decode(suite); err != nil {
		return fmt.Errorf("failed to decode CUE: %w", err)
	}
	return nil
}

// validateSuite checks required fields and case shapes.
func validateSuite(s *Suite) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if len(s.Cases) == 0 {
		return fmt.Errorf("cases list is required and must be non-empty")
	}

	seen := make(map[string]bool, len(s.Cases))
	for i, c := range s.Cases {
		if c.Name == "" {
			return fmt.Errorf("cases[%d]: name is required", i)
		}
		if seen[c.Name] {
			return fmt.Errorf("cases[%d]: duplicate case name %q", i, c.Name)
		}
		seen[c.Name] = true

		if (c.Source == nil) == (c.Text == nil) {
			return fmt.Errorf("cases[%d]: exactly one of source and text is required", i)
		}
		if c.Expand != nil && c.Source == nil {
			return fmt.Errorf("cases[%d]: expand applies only to source input", i)
		}
		if c.Error != "" {
			if !knownCodes[errs.Code(c.Error)] {
				return fmt.Errorf("cases[%d]: unknown error code %q", i, c.Error)
			}
			if c.Expect != nil || c.Columns != nil {
				return fmt.Errorf("cases[%d]: error cannot be combined with expect or columns", i)
			}
		}
		if c.Message != "" && c.Error == "" {
			return fmt.Errorf("cases[%d]: message requires error", i)
		}
	}
	return nil
}
