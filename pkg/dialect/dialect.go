// Package dialect provides the SQL dialect profiles consulted by the DDL parser.
//
// A Dialect is built once, registered, and then only read: keyword synonyms,
// recognized trailing table options, whether ON UPDATE is a column clause and
// how the tokenizer treats quotes and comments. Concrete dialects are
// registered from pkg/dialects/*/ packages.
package dialect

import (
	"maps"
	"slices"
	"strings"

	"github.com/leapstack-labs/leapddl/pkg/core"
)

// Dialect represents a SQL dialect configuration. It is immutable after Build
// and safe to share between goroutines.
type Dialect struct {
	Name          string
	DefaultSchema string
	Lexing        core.LexConfig

	synonyms       map[string]string
	tableOptions   []core.TableOptionDef // longest keyword sequence first
	onUpdate       bool
	batchSeparator string
	generators     map[string]struct{}
}

// Config returns the pure data configuration for this dialect.
func (d *Dialect) Config() *core.DialectConfig {
	generators := make([]string, 0, len(d.generators))
	for g := range d.generators {
		generators = append(generators, g)
	}
	slices.Sort(generators)

	return &core.DialectConfig{
		Name:             d.Name,
		DefaultSchema:    d.DefaultSchema,
		Lexing:           cloneLexing(d.Lexing),
		Synonyms:         maps.Clone(d.synonyms),
		TableOptions:     cloneOptions(d.tableOptions),
		SupportsOnUpdate: d.onUpdate,
		BatchSeparator:   d.batchSeparator,
		Generators:       generators,
	}
}

// GetName returns the dialect name.
func (d *Dialect) GetName() string {
	return d.Name
}

// Canonical returns the canonical upper-case spelling of a keyword,
// resolving dialect synonyms ("key" -> "INDEX" where KEY is an INDEX synonym).
func (d *Dialect) Canonical(word string) string {
	upper := strings.ToUpper(word)
	if c, ok := d.synonyms[upper]; ok {
		return c
	}
	return upper
}

// Synonyms returns a copy of the synonym table.
func (d *Dialect) Synonyms() map[string]string {
	return maps.Clone(d.synonyms)
}

// OnUpdate reports whether "ON UPDATE <expr>" is a column clause.
func (d *Dialect) OnUpdate() bool {
	return d.onUpdate
}

// BatchSeparator returns the standalone statement separator keyword, or "".
func (d *Dialect) BatchSeparator() string {
	return d.batchSeparator
}

// IsGenerator returns true if name is a value-generating function such as
// CURRENT_TIMESTAMP.
func (d *Dialect) IsGenerator(name string) bool {
	_, ok := d.generators[strings.ToUpper(name)]
	return ok
}

// TableOptions returns the recognized table options, longest keyword
// sequence first.
func (d *Dialect) TableOptions() []core.TableOptionDef {
	return cloneOptions(d.tableOptions)
}

// MatchTableOption finds the longest option whose keyword sequence prefixes
// words. words must already be upper-case. It returns the option key and the
// number of words consumed.
func (d *Dialect) MatchTableOption(words []string) (key string, n int, ok bool) {
	for _, opt := range d.tableOptions {
		if len(opt.Keywords) > len(words) {
			continue
		}
		if slices.Equal(opt.Keywords, words[:len(opt.Keywords)]) {
			return opt.Key, len(opt.Keywords), true
		}
	}
	return "", 0, false
}

// IsIdentQuote reports whether c opens a quoted identifier and returns the
// matching close delimiter.
func (d *Dialect) IsIdentQuote(c byte) (byte, bool) {
	for _, q := range d.Lexing.IdentQuotes {
		if q.Open == c {
			return q.Close, true
		}
	}
	return 0, false
}

// IsStringQuote reports whether c opens a string literal.
func (d *Dialect) IsStringQuote(c byte) bool {
	return strings.IndexByte(d.Lexing.StringQuotes, c) >= 0
}

// Builder provides a fluent API for constructing dialects.
type Builder struct {
	dialect *Dialect
}

// NewDialect creates a new dialect builder with the given name and ANSI
// lexing defaults: single-quoted strings, double-quoted identifiers.
func NewDialect(name string) *Builder {
	return &Builder{
		dialect: &Dialect{
			Name: name,
			Lexing: core.LexConfig{
				StringQuotes: `'`,
				IdentQuotes:  []core.QuotePair{{Open: '"', Close: '"'}},
			},
			synonyms:   make(map[string]string),
			generators: make(map[string]struct{}),
		},
	}
}

// New creates a dialect builder from a DialectConfig.
func New(cfg *core.DialectConfig) *Builder {
	b := NewDialect(cfg.Name).
		DefaultSchema(cfg.DefaultSchema).
		OnUpdate(cfg.SupportsOnUpdate).
		BatchSeparator(cfg.BatchSeparator).
		Synonyms(cfg.Synonyms).
		Generators(cfg.Generators...)
	if cfg.Lexing.StringQuotes != "" || len(cfg.Lexing.IdentQuotes) > 0 {
		b.dialect.Lexing = cloneLexing(cfg.Lexing)
	}
	for _, opt := range cfg.TableOptions {
		b.TableOption(opt.Key, opt.Keywords...)
	}
	return b
}

// Extend starts a builder for a dialect named name that inherits everything
// from base. The base dialect is not modified.
func Extend(base *Dialect, name string) *Builder {
	cfg := base.Config()
	cfg.Name = name
	return New(cfg)
}

// DefaultSchema sets the schema unqualified names belong to.
func (b *Builder) DefaultSchema(schema string) *Builder {
	b.dialect.DefaultSchema = schema
	return b
}

// StringQuotes sets the characters that open a string literal.
func (b *Builder) StringQuotes(quotes string) *Builder {
	b.dialect.Lexing.StringQuotes = quotes
	return b
}

// IdentQuotes replaces the identifier quote pairs.
func (b *Builder) IdentQuotes(pairs ...core.QuotePair) *Builder {
	b.dialect.Lexing.IdentQuotes = slices.Clone(pairs)
	return b
}

// BackslashEscapes enables \-escapes inside string literals.
func (b *Builder) BackslashEscapes() *Builder {
	b.dialect.Lexing.BackslashEscapes = true
	return b
}

// HashComments makes # start a line comment.
func (b *Builder) HashComments() *Builder {
	b.dialect.Lexing.HashComments = true
	return b
}

// DollarQuotes enables $$...$$ and $tag$...$tag$ string literals.
func (b *Builder) DollarQuotes() *Builder {
	b.dialect.Lexing.DollarQuotes = true
	return b
}

// Synonym maps an alternate keyword spelling to its canonical form.
func (b *Builder) Synonym(alt, canonical string) *Builder {
	b.dialect.synonyms[strings.ToUpper(alt)] = strings.ToUpper(canonical)
	return b
}

// Synonyms adds every entry of m as a synonym.
func (b *Builder) Synonyms(m map[string]string) *Builder {
	for alt, canonical := range m {
		b.Synonym(alt, canonical)
	}
	return b
}

// RemoveSynonym drops a synonym inherited from a base dialect.
func (b *Builder) RemoveSynonym(alt string) *Builder {
	delete(b.dialect.synonyms, strings.ToUpper(alt))
	return b
}

// TableOption registers a trailing CREATE TABLE option. A keyword sequence
// already registered is re-pointed at key.
func (b *Builder) TableOption(key string, keywords ...string) *Builder {
	upper := make([]string, len(keywords))
	for i, kw := range keywords {
		upper[i] = strings.ToUpper(kw)
	}
	for i, opt := range b.dialect.tableOptions {
		if slices.Equal(opt.Keywords, upper) {
			b.dialect.tableOptions[i].Key = key
			return b
		}
	}
	b.dialect.tableOptions = append(b.dialect.tableOptions, core.TableOptionDef{Key: key, Keywords: upper})
	return b
}

// OnUpdate enables or disables the ON UPDATE column clause.
func (b *Builder) OnUpdate(enabled bool) *Builder {
	b.dialect.onUpdate = enabled
	return b
}

// BatchSeparator sets a keyword that ends a statement when it stands alone.
func (b *Builder) BatchSeparator(keyword string) *Builder {
	b.dialect.batchSeparator = strings.ToUpper(keyword)
	return b
}

// Generators registers value-generating functions.
func (b *Builder) Generators(funcs ...string) *Builder {
	for _, f := range funcs {
		b.dialect.generators[strings.ToUpper(f)] = struct{}{}
	}
	return b
}

// Build returns the finished dialect.
func (b *Builder) Build() *Dialect {
	// Stable sort keeps registration order among equal-length sequences.
	slices.SortStableFunc(b.dialect.tableOptions, func(x, y core.TableOptionDef) int {
		return len(y.Keywords) - len(x.Keywords)
	})
	return b.dialect
}

func cloneLexing(l core.LexConfig) core.LexConfig {
	l.IdentQuotes = slices.Clone(l.IdentQuotes)
	return l
}

func cloneOptions(opts []core.TableOptionDef) []core.TableOptionDef {
	out := make([]core.TableOptionDef, len(opts))
	for i, opt := range opts {
		out[i] = core.TableOptionDef{Key: opt.Key, Keywords: slices.Clone(opt.Keywords)}
	}
	return out
}
