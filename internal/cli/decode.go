package cli

import (
	"github.com/spf13/cobra"

	"github.com/iris-hep/qastle/internal/transform"
)

// DecodeOptions holds flags for the decode command.
type DecodeOptions struct {
	*RootOptions
	File    string
	ShowAST bool
}

// NewDecodeCommand creates the decode command.
func NewDecodeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &DecodeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "decode [text]",
		Short: "Decode canonical text into an expression tree",
		Long: `Decode a canonical text record and print it back in canonical form.

The record is read from the argument, from --file, or from stdin. Use
--ast to also print the decoded tree as canonical JSON.

Exit codes:
  0 - Record decoded
  1 - Translation error (parse, structural, unknown node)
  2 - Command error (unreadable input, etc.)

Examples:
  qastle decode "(Select events (lambda (list e) (attr e 'pt')))"
  qastle decode --ast --format json < query.txt`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDecode(opts, args, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.File, "file", "f", "", "read the record from a file")
	cmd.Flags().BoolVar(&opts.ShowAST, "ast", false, "include the decoded tree")

	return cmd
}

func runDecode(opts *DecodeOptions, args []string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)
	logger := opts.newLogger(cmd)

	input, err := readInput(cmd, args, opts.File)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeInput, err)
	}
	input = trimRecord(input)
	logger.Debug("decoding record", "bytes", len(input))

	e, err := transform.DecodeText(input)
	if err != nil {
		return formatter.Fail(ExitFailure, ErrCodeInternal, err)
	}
	text, err := transform.Encode(e)
	if err != nil {
		return formatter.Fail(ExitFailure, ErrCodeInternal, err)
	}
	return formatter.translation(text, e, opts.ShowAST)
}
