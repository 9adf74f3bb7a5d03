package cli

import (
	"github.com/spf13/cobra"

	"github.com/iris-hep/qastle/internal/ast"
	"github.com/iris-hep/qastle/internal/host"
	"github.com/iris-hep/qastle/internal/linq"
	"github.com/iris-hep/qastle/internal/transform"
)

// EncodeOptions holds flags for the encode command.
type EncodeOptions struct {
	*RootOptions
	File    string
	LINQ    bool
	ShowAST bool
}

// NewEncodeCommand creates the encode command.
func NewEncodeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &EncodeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "encode [source]",
		Short: "Encode a Python expression as canonical text",
		Long: `Parse a Python expression and print its canonical text record.

With --linq, method calls such as Select, Where and First are expanded
into query nodes before encoding.

Exit codes:
  0 - Source encoded
  1 - Translation error (syntax, unsupported node, malformed query call)
  2 - Command error (unreadable input, etc.)

Examples:
  qastle encode "a + 1"
  qastle encode --linq "events.Where(lambda e: e.pt > 30).Count()"`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEncode(opts, args, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.File, "file", "f", "", "read the source from a file")
	cmd.Flags().BoolVar(&opts.LINQ, "linq", false, "expand query method calls")
	cmd.Flags().BoolVar(&opts.ShowAST, "ast", false, "include the encoded tree")

	return cmd
}

func runEncode(opts *EncodeOptions, args []string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)
	logger := opts.newLogger(cmd)

	source, err := readInput(cmd, args, opts.File)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeInput, err)
	}

	m, err := host.ParseModule(source)
	if err != nil {
		return formatter.Fail(ExitFailure, ErrCodeInternal, err)
	}
	logger.Debug("parsed source", "expressions", len(m.Body))
	if opts.LINQ {
		if m, err = linq.ExpandModule(m); err != nil {
			return formatter.Fail(ExitFailure, ErrCodeInternal, err)
		}
	}

	text, err := transform.EncodeModule(m)
	if err != nil {
		return formatter.Fail(ExitFailure, ErrCodeInternal, err)
	}
	return formatter.translation(text, ast.Unwrap(m), opts.ShowAST)
}
