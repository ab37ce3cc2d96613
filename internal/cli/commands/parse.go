package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/leapstack-labs/leapddl/internal/catalog"
	"github.com/leapstack-labs/leapddl/pkg/core"
	"github.com/leapstack-labs/leapddl/pkg/parser"
)

// ParseOptions holds options for the parse command.
type ParseOptions struct {
	SQL      string // Inline DDL instead of files
	Parallel bool   // Parse each file as an independent script
	Watch    bool   // Re-parse when an input file changes
}

// NewParseCommand creates the parse command.
func NewParseCommand() *cobra.Command {
	opts := &ParseOptions{}

	cmd := &cobra.Command{
		Use:   "parse [files...]",
		Short: "Parse DDL scripts into the intermediate representation",
		Long: `Parse SQL DDL scripts and print the extracted tables, types, sequences,
domains, schemas and session properties.

Files are parsed as one script by default, so ALTER TABLE statements in one
file apply to tables declared in an earlier one. Directories are searched
for *.sql files. Use - to read from stdin.

Problems inside a statement never stop the parse: they are reported as
diagnostics on stderr and the rest of the input is still extracted.
With --strict, the first lexical error aborts the parse instead.`,
		Example: `  # Parse a MySQL dump
  leapddl parse dump.sql --dialect mysql

  # Group the output by entity kind, as YAML
  leapddl parse schema/ --group-by-type -o yaml

  # Parse inline DDL
  leapddl parse --sql "CREATE TABLE t (id INT PRIMARY KEY)"

  # Parse from stdin and record the run in a catalog
  pg_dump -s shop | leapddl parse - -d postgres --catalog ddl.db

  # Re-parse whenever a file changes
  leapddl parse schema.sql --watch`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, args, opts)
		},
	}

	cmd.Flags().StringVar(&opts.SQL, "sql", "", "Parse this DDL string instead of files")
	cmd.Flags().BoolVar(&opts.Parallel, "parallel", false, "Parse each file as an independent script, in parallel")
	cmd.Flags().BoolVarP(&opts.Watch, "watch", "w", false, "Re-parse when an input file changes")
	cmd.Flags().BoolP("group-by-type", "g", false, "Group entities by kind")
	cmd.Flags().Bool("normalize-case", false, "Upper-case type names and generator calls")
	cmd.Flags().Bool("strict", false, "Abort on the first lexical error")

	return cmd
}

// input is one named DDL script.
type input struct {
	name string
	text string
}

func runParse(cmd *cobra.Command, args []string, opts *ParseOptions) error {
	cc := NewCommandContext(cmd)

	if opts.Watch {
		if opts.SQL != "" || len(args) == 0 || containsStdin(args) {
			return errors.New("--watch requires file or directory arguments")
		}
		return watchAndParse(cmd.Context(), cc, args, func(ctx context.Context) error {
			inputs, err := readInputs(cmd.InOrStdin(), args, "")
			if err != nil {
				return err
			}
			return parseAndRender(ctx, cc, inputs, opts)
		})
	}

	inputs, err := readInputs(cmd.InOrStdin(), args, opts.SQL)
	if err != nil {
		return err
	}
	return parseAndRender(cmd.Context(), cc, inputs, opts)
}

// parseAndRender parses inputs, writes the IR to stdout and diagnostics to
// stderr, and records the run when a catalog is configured.
func parseAndRender(ctx context.Context, cc *CommandContext, inputs []input, opts *ParseOptions) error {
	cfg := cc.ParserConfig()
	r := cc.Renderer

	texts := make([]string, len(inputs))
	names := make([]string, len(inputs))
	for i, in := range inputs {
		texts[i] = in.text
		names[i] = in.name
	}

	var (
		entities []core.Entity
		diags    []parser.Diagnostic
		dialect  string
	)

	if opts.Parallel && len(inputs) > 1 {
		results, err := parser.ParseScripts(ctx, texts, cfg)
		if err != nil {
			return err
		}
		for i, res := range results {
			r.Diagnostics(names[i], res.Diagnostics)
			entities = append(entities, res.Entities...)
			diags = append(diags, res.Diagnostics...)
			dialect = res.Dialect
		}
		if err := r.Entities(entities, cfg.GroupByType); err != nil {
			return err
		}
	} else {
		res, err := parser.ParseStrings(texts, cfg)
		if err != nil {
			return err
		}
		source := ""
		if len(names) == 1 {
			source = names[0]
		}
		r.Diagnostics(source, res.Diagnostics)
		if err := r.Result(res); err != nil {
			return err
		}
		entities, diags, dialect = res.Entities, res.Diagnostics, res.Dialect
	}

	if cc.Cfg.Verbose {
		r.DiagnosticSummary(diags)
	}

	if cc.Cfg.Catalog != "" {
		store, err := cc.OpenCatalog()
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()

		run, err := store.RecordRun(ctx, catalog.RunInput{
			Dialect:     dialect,
			Sources:     names,
			Entities:    entities,
			Diagnostics: diags,
		})
		if err != nil {
			return err
		}
		r.Status("recorded run %s", run.ID)
	}
	return nil
}

// readInputs resolves the parse command's arguments into named scripts.
// sql wins over args; no arguments means stdin unless stdin is a terminal.
func readInputs(stdin io.Reader, args []string, sql string) ([]input, error) {
	if sql != "" {
		return []input{{name: "<sql>", text: sql}}, nil
	}
	if len(args) == 0 {
		if isTerminalReader(stdin) {
			return nil, errors.New("no input: pass files, - for stdin, or --sql")
		}
		args = []string{"-"}
	}

	var inputs []input
	for _, arg := range args {
		if arg == "-" {
			data, err := io.ReadAll(stdin)
			if err != nil {
				return nil, fmt.Errorf("reading stdin: %w", err)
			}
			inputs = append(inputs, input{name: "<stdin>", text: string(data)})
			continue
		}

		files, err := sqlFiles(arg)
		if err != nil {
			return nil, err
		}
		for _, path := range files {
			data, err := os.ReadFile(path)
			if err != nil {
				return nil, fmt.Errorf("reading %s: %w", path, err)
			}
			inputs = append(inputs, input{name: path, text: string(data)})
		}
	}
	return inputs, nil
}

// sqlFiles expands path into itself, or into the *.sql files below it when
// it is a directory, in lexical order.
func sqlFiles(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{path}, nil
	}

	var files []string
	err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && isSQLFile(p) {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no .sql files in %s", path)
	}
	return files, nil
}

func containsStdin(args []string) bool {
	for _, a := range args {
		if a == "-" {
			return true
		}
	}
	return false
}

func isTerminalReader(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
