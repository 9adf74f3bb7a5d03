package cli

import (
	"github.com/spf13/cobra"

	"github.com/iris-hep/qastle/internal/linq"
	"github.com/iris-hep/qastle/internal/transform"
)

// ExpandOptions holds flags for the expand command.
type ExpandOptions struct {
	*RootOptions
	File    string
	ShowAST bool
}

// NewExpandCommand creates the expand command.
func NewExpandCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ExpandOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "expand [text]",
		Short: "Expand query method calls in canonical text",
		Long: `Decode a canonical text record, rewrite query method calls such as
(call (attr src 'Where') (lambda ...)) into query nodes, and print the
result in canonical form. Lambdas given as quoted strings are parsed.

Examples:
  qastle expand "(call (attr events 'Count'))"
  qastle expand "(call (attr events 'Where') 'lambda e: e.pt > 30')"`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExpand(opts, args, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.File, "file", "f", "", "read the record from a file")
	cmd.Flags().BoolVar(&opts.ShowAST, "ast", false, "include the expanded tree")

	return cmd
}

func runExpand(opts *ExpandOptions, args []string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	input, err := readInput(cmd, args, opts.File)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeInput, err)
	}

	e, err := transform.DecodeText(trimRecord(input))
	if err != nil {
		return formatter.Fail(ExitFailure, ErrCodeInternal, err)
	}
	if e, err = linq.Expand(e); err != nil {
		return formatter.Fail(ExitFailure, ErrCodeInternal, err)
	}
	text, err := transform.Encode(e)
	if err != nil {
		return formatter.Fail(ExitFailure, ErrCodeInternal, err)
	}
	return formatter.translation(text, e, opts.ShowAST)
}
