// Package harness runs translation conformance suites.
//
// # Suite Format
//
// Suites are YAML or CUE files with the following structure:
//
//	name: linq_basics
//	description: "Method chains expand into LINQ nodes"
//	cases:
//	  - name: where
//	    source: "src.Where(lambda e: e > 1)"
//	    expect: "(Where src (lambda (list e) (> e 1)))"
//	  - name: first_no_args
//	    source: "src.First(1)"
//	    error: STRUCTURAL_ERROR
//	    message: "First() call must have zero arguments"
//	  - name: round_trip
//	    text: "(attr a 'b')"
//	  - name: columns
//	    text: "(Select src (lambda (list r) (list (attr r 'a') (attr r 'b'))))"
//	    columns: "a, b"
//
// Each case holds exactly one input:
//
//   - source: host source, parsed and (unless expand is false) LINQ-expanded
//   - text: canonical text, decoded
//
// and checks any of:
//
//   - expect: the canonical text output (defaults to text for text inputs)
//   - error, message: the expected error code and a message substring
//   - columns: the column list of the resulting Select
//
// Every successful output must also be a fixed point: decoding and
// re-encoding it yields the same text.
//
// # Golden Snapshots
//
// RunWithGolden compares a suite's results, rendered as canonical JSON,
// against testdata/golden/{suite}.golden. Regenerate with:
//
//	go test ./internal/harness -update
package harness
