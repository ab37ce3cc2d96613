package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/leapstack-labs/leapddl/pkg/core"
	"github.com/leapstack-labs/leapddl/pkg/dialect"

	_ "github.com/leapstack-labs/leapddl/pkg/dialects/ansi"
	_ "github.com/leapstack-labs/leapddl/pkg/dialects/databricks"
	_ "github.com/leapstack-labs/leapddl/pkg/dialects/duckdb"
	_ "github.com/leapstack-labs/leapddl/pkg/dialects/generic"
	_ "github.com/leapstack-labs/leapddl/pkg/dialects/mssql"
	_ "github.com/leapstack-labs/leapddl/pkg/dialects/mysql"
	_ "github.com/leapstack-labs/leapddl/pkg/dialects/oracle"
	_ "github.com/leapstack-labs/leapddl/pkg/dialects/postgres"
	_ "github.com/leapstack-labs/leapddl/pkg/dialects/snowflake"
)

// generateDialectDocs generates one reference page covering every
// registered dialect.
func generateDialectDocs(outDir string) error {
	log.Printf("Generating dialect docs to %s", outDir)

	w := NewMarkdownWriter()
	w.Frontmatter("Dialects", "Built-in SQL dialects")
	w.GeneratedMarker()

	w.Header(1, "Dialects")
	w.Paragraph("Select a dialect with `--dialect` or the `dialect` key. Unknown keywords and options never fail a parse; they are reported as diagnostics.")

	names := dialect.List()
	var rows [][]string
	for _, name := range names {
		d, _ := dialect.Get(name)
		rows = append(rows, []string{
			fmt.Sprintf("[%s](#%s)", InlineCode(d.Name), d.Name),
			quoteList(d.Lexing.IdentQuotes),
			yesNo(d.OnUpdate()),
			fmt.Sprint(len(d.TableOptions())),
		})
	}
	w.Table([]string{"Dialect", "Identifier Quotes", "ON UPDATE", "Table Options"}, rows)

	for _, name := range names {
		d, _ := dialect.Get(name)
		writeDialect(w, d.Config())
	}

	return os.WriteFile(filepath.Join(outDir, "dialects.md"), w.Bytes(), 0600)
}

func writeDialect(w *MarkdownWriter, cfg *core.DialectConfig) {
	w.Header(2, cfg.Name)

	var facts []string
	if cfg.DefaultSchema != "" {
		facts = append(facts, "Default schema: "+InlineCode(cfg.DefaultSchema))
	}
	if cfg.Lexing.BackslashEscapes {
		facts = append(facts, "Backslash escapes in strings")
	}
	if cfg.Lexing.HashComments {
		facts = append(facts, "`#` line comments")
	}
	if cfg.Lexing.DollarQuotes {
		facts = append(facts, "Dollar-quoted strings")
	}
	if cfg.BatchSeparator != "" {
		facts = append(facts, "Batch separator: "+InlineCode(cfg.BatchSeparator))
	}
	if len(facts) > 0 {
		w.BulletList(facts)
	}

	if len(cfg.Synonyms) > 0 {
		alts := make([]string, 0, len(cfg.Synonyms))
		for alt := range cfg.Synonyms {
			alts = append(alts, alt)
		}
		slices.Sort(alts)
		rows := make([][]string, 0, len(alts))
		for _, alt := range alts {
			rows = append(rows, []string{InlineCode(alt), InlineCode(cfg.Synonyms[alt])})
		}
		w.Header(3, "Keyword Synonyms")
		w.Table([]string{"Keyword", "Means"}, rows)
	}

	if len(cfg.TableOptions) > 0 {
		rows := make([][]string, 0, len(cfg.TableOptions))
		for _, opt := range cfg.TableOptions {
			rows = append(rows, []string{InlineCode(opt.Key), InlineCode(strings.Join(opt.Keywords, " "))})
		}
		w.Header(3, "Table Options")
		w.Table([]string{"IR Key", "Keywords"}, rows)
	}
}

func quoteList(pairs []core.QuotePair) string {
	var parts []string
	for _, p := range pairs {
		if p.Open == p.Close {
			parts = append(parts, InlineCode(string(p.Open)))
			continue
		}
		parts = append(parts, InlineCode(string([]byte{p.Open, p.Close})))
	}
	return strings.Join(parts, " ")
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
