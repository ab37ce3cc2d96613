package parser

import (
	"github.com/leapstack-labs/leapddl/pkg/core"
)

// createIndex is a standalone CREATE INDEX bound to its target table.
type createIndex struct {
	schema *string
	table  string
	index  core.Index
}

// parseCreateIndex extracts
// CREATE [UNIQUE|...] INDEX [CONCURRENTLY] [IF NOT EXISTS] [name] ON [ONLY] table [USING m] (columns).
func (x *extractor) parseCreateIndex() (*createIndex, bool) {
	c := x.cursor()
	c.next() // CREATE

	var unique bool
	for {
		if c.accept("OR", "REPLACE") {
			continue
		}
		w := c.word(0)
		if !createModifiers[w] {
			break
		}
		if w == "UNIQUE" {
			unique = true
		}
		c.next()
	}
	c.next() // INDEX or KEY
	c.accept("CONCURRENTLY")
	c.accept("IF", "NOT", "EXISTS")

	idx := core.Index{Unique: unique, Columns: []string{}, DetailedColumns: []core.DetailedColumn{}}
	if isNameToken(c.peek()) && c.upper(0) != "ON" {
		start := c.pos
		c.qualifiedName()
		n := c.raw(start, c.pos)
		idx.IndexName = &n
	}

	at := c.peek()
	if !c.accept("ON") {
		x.malformed(at, "CREATE INDEX", "expected ON")
		return nil, false
	}
	c.accept("ONLY")
	at = c.peek()
	schema, table, ok := c.qualifiedName()
	if !ok {
		x.malformed(at, "CREATE INDEX", ErrMissingName)
		return nil, false
	}

	x.indexUsing(c, &idx)
	at = c.peek()
	inner, _, ok := c.group()
	if !ok {
		x.malformed(at, "CREATE INDEX", ErrMissingGroup)
		return nil, false
	}
	idx.Columns, idx.DetailedColumns = indexColumns(inner)
	return &createIndex{schema: schema, table: table, index: idx}, true
}
