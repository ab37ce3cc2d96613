package commands

import (
	"fmt"
	"slices"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leapddl/internal/cli/output"
	"github.com/leapstack-labs/leapddl/pkg/core"
	"github.com/leapstack-labs/leapddl/pkg/dialect"
)

// NewDialectsCommand creates the dialects command.
func NewDialectsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dialects [name]",
		Short: "List the registered SQL dialects",
		Long: `List the registered SQL dialects, including the profiles declared
under "dialects" in leapddl.yaml. With a name, show that dialect's keyword
synonyms and recognized table options.`,
		Example: `  leapddl dialects
  leapddl dialects mysql -o json`,
		Args: cobra.MaximumNArgs(1),
		ValidArgsFunction: func(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			return dialect.List(), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cc := NewCommandContext(cmd)
			if len(args) == 1 {
				d, err := dialect.Lookup(args[0])
				if err != nil {
					return err
				}
				return renderDialect(cc.Renderer, d)
			}
			return renderDialects(cc.Renderer, dialect.List())
		},
	}
	return cmd
}

func renderDialects(r *output.Renderer, names []string) error {
	defaultName := defaultDialectName()

	switch r.EffectiveMode() {
	case output.ModeJSON, output.ModeYAML:
		views := make([]dialectView, 0, len(names))
		for _, name := range names {
			d, _ := dialect.Get(name)
			v := newDialectView(d.Config())
			v.Default = d.Name == defaultName
			views = append(views, v)
		}
		if r.EffectiveMode() == output.ModeYAML {
			return r.YAML(views)
		}
		return r.JSON(views)
	}

	rows := make([]table.Row, 0, len(names))
	for _, name := range names {
		d, _ := dialect.Get(name)
		label := d.Name
		if d.Name == defaultName {
			label += " (default)"
		}
		rows = append(rows, table.Row{
			label,
			identQuotes(d.Lexing.IdentQuotes),
			d.Lexing.StringQuotes,
			yesNo(d.OnUpdate()),
			d.BatchSeparator(),
			len(d.Synonyms()),
			len(d.TableOptions()),
		})
	}
	r.Table(table.Row{"Name", "Ident Quotes", "String Quotes", "On Update", "Batch", "Synonyms", "Table Options"}, rows)
	return nil
}

func renderDialect(r *output.Renderer, d *dialect.Dialect) error {
	cfg := d.Config()
	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(newDialectView(cfg))
	case output.ModeYAML:
		return r.YAML(newDialectView(cfg))
	}

	s := r.Styles()
	r.Println(s.Header.Render(cfg.Name))
	r.Printf("  identifier quotes: %s\n", identQuotes(cfg.Lexing.IdentQuotes))
	r.Printf("  string quotes:     %s\n", cfg.Lexing.StringQuotes)
	r.Printf("  on update:         %s\n", yesNo(cfg.SupportsOnUpdate))
	if cfg.BatchSeparator != "" {
		r.Printf("  batch separator:   %s\n", cfg.BatchSeparator)
	}
	if len(cfg.Generators) > 0 {
		r.Printf("  generators:        %s\n", strings.Join(cfg.Generators, ", "))
	}
	r.Println()

	if len(cfg.Synonyms) > 0 {
		alts := make([]string, 0, len(cfg.Synonyms))
		for alt := range cfg.Synonyms {
			alts = append(alts, alt)
		}
		slices.Sort(alts)
		rows := make([]table.Row, 0, len(alts))
		for _, alt := range alts {
			rows = append(rows, table.Row{alt, cfg.Synonyms[alt]})
		}
		r.Table(table.Row{"Keyword", "Means"}, rows)
		r.Println()
	}

	if len(cfg.TableOptions) > 0 {
		rows := make([]table.Row, 0, len(cfg.TableOptions))
		for _, opt := range cfg.TableOptions {
			rows = append(rows, table.Row{opt.Key, strings.Join(opt.Keywords, " ")})
		}
		r.Table(table.Row{"Option", "Keywords"}, rows)
	}
	return nil
}

func defaultDialectName() string {
	if d := dialect.Default(); d != nil {
		return d.Name
	}
	return ""
}

// dialectView is the machine-readable form of a dialect.
type dialectView struct {
	Name           string            `json:"name"`
	Default        bool              `json:"default,omitempty"`
	DefaultSchema  string            `json:"default_schema,omitempty"`
	IdentQuotes    []string          `json:"ident_quotes"`
	StringQuotes   string            `json:"string_quotes"`
	OnUpdate       bool              `json:"on_update"`
	BatchSeparator string            `json:"batch_separator,omitempty"`
	Synonyms       map[string]string `json:"synonyms"`
	TableOptions   map[string]string `json:"table_options"`
	Generators     []string          `json:"generators"`
}

func newDialectView(cfg *core.DialectConfig) dialectView {
	v := dialectView{
		Name:           cfg.Name,
		DefaultSchema:  cfg.DefaultSchema,
		IdentQuotes:    strings.Fields(identQuotes(cfg.Lexing.IdentQuotes)),
		StringQuotes:   cfg.Lexing.StringQuotes,
		OnUpdate:       cfg.SupportsOnUpdate,
		BatchSeparator: cfg.BatchSeparator,
		Synonyms:       cfg.Synonyms,
		TableOptions:   make(map[string]string, len(cfg.TableOptions)),
		Generators:     cfg.Generators,
	}
	if v.Synonyms == nil {
		v.Synonyms = map[string]string{}
	}
	for _, opt := range cfg.TableOptions {
		v.TableOptions[opt.Key] = strings.Join(opt.Keywords, " ")
	}
	return v
}

func identQuotes(pairs []core.QuotePair) string {
	parts := make([]string, 0, len(pairs))
	for _, p := range pairs {
		if p.Open == p.Close {
			parts = append(parts, string(p.Open))
			continue
		}
		parts = append(parts, fmt.Sprintf("%c%c", p.Open, p.Close))
	}
	return strings.Join(parts, " ")
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
