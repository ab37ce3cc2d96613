// Package parser turns SQL DDL scripts into the IR defined in pkg/core.
//
// # Usage
//
//	res, err := parser.Parse(ddl, parser.Config{Dialect: "mysql"})
//	if err != nil {
//	    // only strict mode aborts a parse
//	}
//	for _, d := range res.Diagnostics {
//	    // statements that were skipped or partially understood
//	}
//
// # Pipeline
//
//	text → Tokenize → Split → per statement: Classify → extractor → aggregator
//
// The tokenizer is quote- and paren-aware, the splitter cuts on ';' at paren
// depth 0, and the classifier selects one extractor per statement kind. All
// keyword spellings go through the dialect's synonym table, so KEY and INDEX
// produce identical records wherever the dialect declares them synonyms.
//
// A problem inside one statement never affects the others: lexical errors
// skip the statement, malformed clauses are dropped, and unrecognized
// statements become ddl_properties entries. Each is reported as a Diagnostic.
package parser

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/leapddl/pkg/core"
	"github.com/leapstack-labs/leapddl/pkg/dialect"
	"github.com/leapstack-labs/leapddl/pkg/token"

	// The generic dialect is the default when Config.Dialect is empty.
	_ "github.com/leapstack-labs/leapddl/pkg/dialects/generic"
)

// Config holds parse options.
type Config struct {
	// Dialect names a registered dialect. Empty selects the default dialect.
	Dialect string

	// GroupByType makes Result.IR return the grouped mapping instead of the
	// flat entity list.
	GroupByType bool

	// NormalizeCase upper-cases type names and generator calls in defaults.
	NormalizeCase bool

	// Strict aborts the whole parse on the first lexical error.
	Strict bool

	Logger *slog.Logger
}

// Result is the IR of one parse plus its side channel of diagnostics.
type Result struct {
	Entities    []core.Entity
	Diagnostics []Diagnostic
	Dialect     string

	groupByType bool
}

// Grouped returns the entities grouped by kind.
func (r *Result) Grouped() *core.Grouped {
	return core.NewGrouped(r.Entities)
}

// IR returns the output shape selected by Config.GroupByType: a *core.Grouped
// or the flat []core.Entity.
func (r *Result) IR() any {
	if r.groupByType {
		return r.Grouped()
	}
	if r.Entities == nil {
		return []core.Entity{}
	}
	return r.Entities
}

// HasErrors reports whether any diagnostic has error severity.
func (r *Result) HasErrors() bool {
	for _, d := range r.Diagnostics {
		if d.Severity == core.SeverityError {
			return true
		}
	}
	return false
}

// Parse parses one DDL script with the dialect named in cfg.
func Parse(input string, cfg Config) (*Result, error) {
	return ParseStrings([]string{input}, cfg)
}

// ParseWithDialect parses one DDL script with an explicit dialect.
func ParseWithDialect(input string, d *dialect.Dialect, cfg Config) (*Result, error) {
	if d == nil {
		return nil, dialect.ErrDialectRequired
	}
	s := newSession(d, cfg)
	if err := s.feed(input); err != nil {
		return nil, err
	}
	return s.result(), nil
}

// ParseStrings parses a sequence of pre-split inputs as one script: tables
// declared in one input are visible to ALTER TABLE in later ones.
func ParseStrings(inputs []string, cfg Config) (*Result, error) {
	d, err := dialect.Lookup(cfg.Dialect)
	if err != nil {
		return nil, err
	}
	s := newSession(d, cfg)
	for _, input := range inputs {
		if err := s.feed(input); err != nil {
			return nil, err
		}
	}
	return s.result(), nil
}

// ParseScripts parses independent scripts in parallel, one goroutine per
// script. Results keep the order of scripts. The first strict-mode failure
// cancels the scripts not yet started.
func ParseScripts(ctx context.Context, scripts []string, cfg Config) ([]*Result, error) {
	d, err := dialect.Lookup(cfg.Dialect)
	if err != nil {
		return nil, err
	}

	results := make([]*Result, len(scripts))
	g, ctx := errgroup.WithContext(ctx)
	for i, script := range scripts {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := ParseWithDialect(script, d, cfg)
			if err != nil {
				return fmt.Errorf("script %d: %w", i, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// session carries the state of one parse across its inputs.
type session struct {
	d      *dialect.Dialect
	cfg    Config
	logger *slog.Logger
	agg    *aggregator
	norm   *caseNormalizer
	diags  []Diagnostic
	base   int // index of the first statement of the current input
}

func newSession(d *dialect.Dialect, cfg Config) *session {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	logger = logger.With(slog.String("dialect", d.Name))
	s := &session{d: d, cfg: cfg, logger: logger, agg: newAggregator(d, logger)}
	if cfg.NormalizeCase {
		s.norm = newCaseNormalizer(d)
	}
	return s
}

// feed tokenizes, splits and extracts one input. It returns an error only in
// strict mode.
func (s *session) feed(input string) error {
	toks, lexErrs := Tokenize(input, s.d)
	stmts := Split(input, toks, s.d)
	for _, err := range attachLexErrors(stmts, lexErrs) {
		if s.cfg.Strict {
			return &ParseError{Statement: -1, Err: err}
		}
		s.diagnose(-1, err.Pos, core.SeverityError, err)
	}

	for _, stmt := range stmts {
		idx := s.base + stmt.Index
		if len(stmt.LexErrors) > 0 {
			if s.cfg.Strict {
				return &ParseError{Statement: idx, Err: stmt.LexErrors[0]}
			}
			for _, err := range stmt.LexErrors {
				s.diagnose(idx, err.Pos, core.SeverityError, err)
			}
			s.logger.Debug("skipping statement",
				slog.Int("statement", idx),
				slog.Int("lex_errors", len(stmt.LexErrors)))
			continue
		}
		s.statement(stmt, idx)
	}
	s.base += len(stmts)
	return nil
}

// statement runs the extractor selected by the statement kind.
func (s *session) statement(stmt *Statement, idx int) {
	x := newExtractor(stmt, s.d, s.logger)
	kind := Classify(stmt, s.d)
	s.logger.Debug("statement", slog.Int("statement", idx), slog.String("kind", kind.String()))

	switch kind {
	case core.KindCreateTable:
		if t, ok := x.createTable(); ok {
			s.normalize(t)
			if s.agg.addTable(t) {
				s.diagnose(idx, stmt.Pos(), core.SeverityInfo,
					fmt.Errorf("table %s declared more than once", t.QualifiedName()))
			}
		}
	case core.KindCreateIndex:
		if ci, ok := x.parseCreateIndex(); ok {
			s.agg.index(ci)
		}
	case core.KindAlterTable:
		if at, ok := x.parseAlterTable(); ok {
			if s.norm != nil {
				for i := range at.actions {
					s.norm.alteration(&at.actions[i].alt)
				}
			}
			s.agg.alter(at)
		}
	case core.KindCreateType:
		if typ, ok := x.parseCreateType(); ok {
			s.normalize(typ)
			s.agg.add(typ)
		}
	case core.KindCreateSequence:
		if seq, ok := x.parseCreateSequence(); ok {
			s.normalize(seq)
			s.agg.add(seq)
		}
	case core.KindCreateDomain:
		if dom, ok := x.parseCreateDomain(); ok {
			s.normalize(dom)
			s.agg.add(dom)
		}
	case core.KindCreateSchema:
		if sch, ok := x.parseCreateSchema(); ok {
			s.agg.add(sch)
		}
	case core.KindUnclassified:
		prop, isSet := x.parseProperty()
		s.agg.add(prop)
		severity := core.SeverityWarning
		if isSet {
			severity = core.SeverityInfo
		}
		s.diagnose(idx, stmt.Pos(), severity, &UnclassifiedStatementWarning{Pos: stmt.Pos(), Leading: prop.Name})
	}

	for _, err := range x.issues {
		pos := stmt.Pos()
		var mc *MalformedClauseError
		if errors.As(err, &mc) {
			pos = mc.Pos
		}
		s.diagnose(idx, pos, core.SeverityWarning, err)
	}
}

func (s *session) normalize(e core.Entity) {
	if s.norm != nil {
		s.norm.entity(e)
	}
}

func (s *session) diagnose(idx int, pos token.Position, sev core.Severity, err error) {
	s.diags = append(s.diags, Diagnostic{Statement: idx, Pos: pos, Severity: sev, Err: err})
}

func (s *session) result() *Result {
	return &Result{
		Entities:    s.agg.entities,
		Diagnostics: s.diags,
		Dialect:     s.d.Name,
		groupByType: s.cfg.GroupByType,
	}
}
