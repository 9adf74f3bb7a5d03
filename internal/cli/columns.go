package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/iris-hep/qastle/internal/columns"
	"github.com/iris-hep/qastle/internal/transform"
)

// ColumnsResult is the structured payload of the columns command.
type ColumnsResult struct {
	Columns string   `json:"columns" yaml:"columns"`
	Names   []string `json:"names" yaml:"names"`
}

// NewColumnsCommand creates the columns command.
func NewColumnsCommand(rootOpts *RootOptions) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "columns [text]",
		Short: "List the columns selected by a Select record",
		Long: `Decode a canonical Select record and print the comma-separated list
of columns its selector produces, with the lambda parameter removed.

Example:
  qastle columns "(Select events (lambda (list e) (list (attr e 'pt') (call (attr e 'eta')))))"
  # pt, eta()`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(rootOpts, cmd)

			input, err := readInput(cmd, args, file)
			if err != nil {
				return formatter.Fail(ExitCommandError, ErrCodeInput, err)
			}
			e, err := transform.DecodeText(trimRecord(input))
			if err != nil {
				return formatter.Fail(ExitFailure, ErrCodeInternal, err)
			}
			cols, err := columns.Columns(e)
			if err != nil {
				return formatter.Fail(ExitFailure, ErrCodeInternal, err)
			}

			if !formatter.Structured() {
				return formatter.Success(cols)
			}
			return formatter.Success(ColumnsResult{
				Columns: cols,
				Names:   strings.Split(cols, ", "),
			})
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "read the record from a file")

	return cmd
}
