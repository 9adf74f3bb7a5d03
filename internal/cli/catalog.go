package cli

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/iris-hep/qastle/internal/host"
	"github.com/iris-hep/qastle/internal/linq"
	"github.com/iris-hep/qastle/internal/store"
	"github.com/iris-hep/qastle/internal/transform"
)

// CatalogOptions holds flags for the catalog commands.
type CatalogOptions struct {
	*RootOptions
	Database string
}

// PutResult is the structured payload of catalog put.
type PutResult struct {
	Query   store.Query   `json:"query" yaml:"query"`
	Request store.Request `json:"request" yaml:"request"`
	New     bool          `json:"new" yaml:"new"`
}

// GetResult is the structured payload of catalog get.
type GetResult struct {
	Query    store.Query     `json:"query" yaml:"query"`
	AST      any             `json:"ast" yaml:"ast"`
	Requests []store.Request `json:"requests" yaml:"requests"`
}

// NewCatalogCommand creates the catalog command group.
func NewCatalogCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CatalogOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Store and look up canonical queries",
		Long: `Keep canonical query records in a SQLite catalog.

Queries are keyed by the content hash of their canonical text, so storing
the same query in any spelling yields the same id. Every put is logged as
a request.

The database path comes from --db or the QASTLE_DB environment variable.`,
	}

	cmd.PersistentFlags().StringVar(&opts.Database, "db", "", "path to SQLite database (default $"+DatabaseEnv+")")

	cmd.AddCommand(newCatalogPutCommand(opts))
	cmd.AddCommand(newCatalogGetCommand(opts))
	cmd.AddCommand(newCatalogListCommand(opts))

	return cmd
}

// openCatalog opens the configured database.
func openCatalog(opts *CatalogOptions, cmd *cobra.Command, f *OutputFormatter) (*store.Store, error) {
	path := resolveDatabase(opts.Database)
	if path == "" {
		return nil, f.Fail(ExitCommandError, ErrCodeInput,
			fmt.Errorf("no database: set --db or %s", DatabaseEnv))
	}
	logger := opts.newLogger(cmd)
	logger.Debug("opening catalog", "path", path)
	st, err := store.Open(path, store.WithLogger(logger))
	if err != nil {
		return nil, f.Fail(ExitCommandError, ErrCodeStore, err)
	}
	return st, nil
}

func newCatalogPutCommand(opts *CatalogOptions) *cobra.Command {
	var file string
	var fromSource bool

	cmd := &cobra.Command{
		Use:   "put [text]",
		Short: "Store a query",
		Long: `Store a canonical text record. With --python the input is a Python
expression that is expanded and encoded first; the source is kept with
the query.

Examples:
  qastle catalog put --db q.db "(Count events)"
  qastle catalog put --db q.db --python "events.Count()"`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := newFormatter(opts.RootOptions, cmd)

			input, err := readInput(cmd, args, file)
			if err != nil {
				return f.Fail(ExitCommandError, ErrCodeInput, err)
			}

			text, source := trimRecord(input), ""
			if fromSource {
				source = input
				if text, err = encodeSource(input); err != nil {
					return f.Fail(ExitFailure, ErrCodeInternal, err)
				}
			}

			st, err := openCatalog(opts, cmd, f)
			if err != nil {
				return err
			}
			defer st.Close()

			q, req, err := st.Put(cmd.Context(), text, source)
			if err != nil {
				return f.Fail(ExitCommandError, ErrCodeStore, err)
			}

			if !f.Structured() {
				return f.Success(q.ID)
			}
			return f.Success(PutResult{Query: q, Request: req, New: q.Seq == req.Seq})
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "read the input from a file")
	cmd.Flags().BoolVar(&fromSource, "python", false, "input is a Python expression")

	return cmd
}

// encodeSource translates host source with query expansion.
func encodeSource(source string) (string, error) {
	m, err := host.ParseModule(source)
	if err != nil {
		return "", err
	}
	if m, err = linq.ExpandModule(m); err != nil {
		return "", err
	}
	return transform.EncodeModule(m)
}

func newCatalogGetCommand(opts *CatalogOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Print a stored query",
		Long: `Print a stored query by id or by an id prefix of at least eight
characters. Structured output adds the query tree and its requests.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := newFormatter(opts.RootOptions, cmd)

			st, err := openCatalog(opts, cmd, f)
			if err != nil {
				return err
			}
			defer st.Close()

			ctx := cmd.Context()
			q, err := st.Get(ctx, args[0])
			switch {
			case errors.Is(err, store.ErrNotFound), errors.Is(err, store.ErrAmbiguous):
				return f.Fail(ExitFailure, ErrCodeNotFound, err)
			case err != nil:
				return f.Fail(ExitCommandError, ErrCodeStore, err)
			}

			if !f.Structured() {
				return f.Success(q.Text)
			}

			requests, err := st.Requests(ctx, q.ID)
			if err != nil {
				return f.Fail(ExitCommandError, ErrCodeStore, err)
			}
			tree, err := f.rawPayload([]byte(q.ASTJSON))
			if err != nil {
				return f.Fail(ExitCommandError, ErrCodeStore, err)
			}
			return f.Success(GetResult{Query: q, AST: tree, Requests: requests})
		},
	}
}

func newCatalogListCommand(opts *CatalogOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "list",
		Short:         "List stored queries",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := newFormatter(opts.RootOptions, cmd)

			st, err := openCatalog(opts, cmd, f)
			if err != nil {
				return err
			}
			defer st.Close()

			queries, err := st.List(cmd.Context())
			if err != nil {
				return f.Fail(ExitCommandError, ErrCodeStore, err)
			}

			if f.Structured() {
				return f.Success(queries)
			}
			if len(queries) == 0 {
				fmt.Fprintln(f.Writer, "No queries stored.")
				return nil
			}
			tw := tabwriter.NewWriter(f.Writer, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "SEQ\tID\tTEXT")
			for _, q := range queries {
				fmt.Fprintf(tw, "%d\t%s\t%s\n", q.Seq, q.ID[:12], q.Text)
			}
			return tw.Flush()
		},
	}
}
