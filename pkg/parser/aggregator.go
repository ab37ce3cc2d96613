package parser

import (
	"log/slog"

	"github.com/leapstack-labs/leapddl/pkg/core"
	"github.com/leapstack-labs/leapddl/pkg/dialect"
)

// aggregator collects entities in first-seen order and keeps a running,
// name-keyed index of tables for ALTER TABLE and CREATE INDEX attribution.
type aggregator struct {
	entities []core.Entity
	tables   map[string]*core.Table
	logger   *slog.Logger

	// defaultSchema qualifies unqualified names when keying tables, so
	// "t" and "public.t" are the same table in postgres.
	defaultSchema string
}

func newAggregator(d *dialect.Dialect, logger *slog.Logger) *aggregator {
	return &aggregator{
		tables:        make(map[string]*core.Table),
		logger:        logger,
		defaultSchema: d.DefaultSchema,
	}
}

// key returns the lookup key of schema.name. The schema stored on the
// table itself stays as written.
func (a *aggregator) key(schema *string, name string) string {
	if schema == nil && a.defaultSchema != "" {
		return core.NameKey(&a.defaultSchema, name)
	}
	return core.NameKey(schema, name)
}

// addTable records a declared table. A placeholder created by an earlier
// ALTER TABLE or CREATE INDEX is filled in place and keeps its alterations
// and indexes. It reports whether an already declared table was redeclared.
func (a *aggregator) addTable(t *core.Table) (redeclared bool) {
	key := a.key(t.Schema, t.Name)
	if prev, ok := a.tables[key]; ok {
		if prev.Placeholder {
			fillPlaceholder(prev, t)
			return false
		}
		redeclared = true
	}
	a.tables[key] = t
	a.entities = append(a.entities, t)
	return redeclared
}

func fillPlaceholder(p, t *core.Table) {
	alter, index := p.Alter, p.Index
	*p = *t
	for kind, alts := range alter {
		p.Alter[kind] = append(alts, p.Alter[kind]...)
	}
	p.Index = append(p.Index, index...)
	p.Placeholder = false
}

// table returns the table registered under schema.name, synthesizing a
// placeholder at first reference.
func (a *aggregator) table(schema *string, name string) *core.Table {
	key := a.key(schema, name)
	if t, ok := a.tables[key]; ok {
		return t
	}
	t := core.NewTable(schema, name)
	t.Placeholder = true
	a.tables[key] = t
	a.entities = append(a.entities, t)
	a.logger.Debug("placeholder table", slog.String("table", t.QualifiedName()))
	return t
}

func (a *aggregator) alter(at *alterTable) {
	applyAlter(a.table(at.schema, at.name), at)
}

func (a *aggregator) index(ci *createIndex) {
	t := a.table(ci.schema, ci.table)
	t.Index = append(t.Index, ci.index)
}

func (a *aggregator) add(e core.Entity) {
	a.entities = append(a.entities, e)
}
