package parser

import (
	"github.com/leapstack-labs/leapddl/pkg/core"
	"github.com/leapstack-labs/leapddl/pkg/token"
)

// foreignKey is a table-level FOREIGN KEY waiting for every column of the
// table to be declared.
type foreignKey struct {
	at      token.Token
	columns []string
	ref     *core.Reference
	refCols []string
}

// createTable extracts a CREATE TABLE statement.
func (x *extractor) createTable() (*core.Table, bool) {
	c := x.cursor()
	c.next() // CREATE

	var temp bool
	for {
		if c.accept("OR", "REPLACE") {
			continue
		}
		w := c.word(0)
		if !createModifiers[w] {
			break
		}
		if w == "TEMPORARY" || w == "TEMP" {
			temp = true
		}
		c.next()
	}
	c.next() // TABLE

	ifNotExists := c.accept("IF", "NOT", "EXISTS")
	at := c.peek()
	schema, name, ok := c.qualifiedName()
	if !ok {
		x.malformed(at, "CREATE TABLE", ErrMissingName)
		return nil, false
	}

	t := core.NewTable(schema, name)
	t.IfNotExists = ifNotExists
	t.Temp = temp

	if body, _, ok := c.group(); ok {
		x.tableBody(body, t)
	}
	x.tableOptions(c, t)
	return t, true
}

// tableBody dispatches every top-level element of the column list.
func (x *extractor) tableBody(body *cursor, t *core.Table) {
	var fks []foreignKey
	for _, e := range body.splitTop() {
		if fk, ok := x.tableElement(e, t); ok {
			fks = append(fks, fk)
		}
	}
	for _, fk := range fks {
		x.attachForeignKey(t, fk)
	}
}

// tableElement parses one element of a CREATE TABLE body. A FOREIGN KEY is
// returned for deferred attachment.
func (x *extractor) tableElement(e *cursor, t *core.Table) (foreignKey, bool) {
	var constraint *string
	if e.accept("CONSTRAINT") && isNameToken(e.peek()) {
		n := e.next().Literal
		constraint = &n
	}

	at := e.peek()
	switch {
	case e.accept("PRIMARY", "KEY"):
		skipClustered(e)
		idx := x.indexBody(e, false)
		t.PrimaryKey = append(t.PrimaryKey, idx.Columns...)
	case e.accept("UNIQUE"):
		if w := e.word(0); w == "INDEX" || e.upper(0) == "KEY" {
			e.next()
		}
		skipClustered(e)
		idx := x.indexBody(e, true)
		if idx.IndexName == nil {
			idx.IndexName = constraint
		}
		t.Index = append(t.Index, idx)
	case e.accept("FOREIGN", "KEY"):
		inner, _, ok := e.group()
		if !ok {
			x.malformed(at, "FOREIGN KEY", ErrMissingGroup)
			return foreignKey{}, false
		}
		if !e.accept("REFERENCES") {
			x.malformed(at, "FOREIGN KEY", "expected REFERENCES")
			return foreignKey{}, false
		}
		ref, refCols, ok := x.parseReference(e)
		if !ok {
			return foreignKey{}, false
		}
		return foreignKey{at: at, columns: nameList(inner), ref: ref, refCols: refCols}, true
	case e.is("CHECK"):
		e.next()
		if _, raw, ok := e.group(); ok {
			t.Checks = append(t.Checks, core.Check{Name: constraint, Statement: raw})
		} else {
			x.malformed(at, "CHECK", ErrMissingGroup)
		}
	case constraint != nil:
		x.ignored(at, "constraint "+*constraint)
	case isIndexElement(e):
		e.next()
		t.Index = append(t.Index, x.indexBody(e, false))
	case e.is("FULLTEXT"), e.is("SPATIAL"):
		e.next()
		if w := e.word(0); w == "INDEX" || e.upper(0) == "KEY" {
			e.next()
		}
		t.Index = append(t.Index, x.indexBody(e, false))
	case e.is("LIKE"):
		e.next()
		if isNameToken(e.peek()) {
			start := e.pos
			e.qualifiedName()
			t.Options.Set("like", e.raw(start, e.pos))
		} else {
			x.malformed(at, "LIKE", ErrMissingName)
		}
	case e.is("PERIOD", "FOR"):
		x.ignored(at, "period")
	default:
		def, ok := x.parseColumn(e)
		if !ok {
			return foreignKey{}, false
		}
		t.Columns = append(t.Columns, def.column)
		if def.primaryKey {
			t.PrimaryKey = append(t.PrimaryKey, token.Unquote(def.column.Name))
		}
	}
	return foreignKey{}, false
}

// isIndexElement reports whether an element starting with INDEX or KEY
// declares an index rather than a column named index or key. An index has a
// column list right away, a USING clause (optionally after its name), or a
// name followed by a column list whose first entry is not a number
// (key INT(11) is a column).
func isIndexElement(e *cursor) bool {
	if e.word(0) != "INDEX" && e.upper(0) != "KEY" {
		return false
	}
	switch {
	case e.peekAt(1).IsPunct("("), e.upper(1) == "USING":
		return true
	case isNameToken(e.peekAt(1)) && e.upper(2) == "USING":
		return true
	case isNameToken(e.peekAt(1)) && e.peekAt(2).IsPunct("("):
		return e.peekAt(3).Kind != token.NUMBER
	}
	return false
}

// skipClustered consumes the SQL Server CLUSTERED / NONCLUSTERED markers.
func skipClustered(c *cursor) {
	if !c.accept("CLUSTERED") {
		c.accept("NONCLUSTERED")
	}
}

// indexBody parses "[name] [USING m] (columns) [USING m]" into an Index.
func (x *extractor) indexBody(c *cursor, unique bool) core.Index {
	idx := core.Index{Unique: unique, Columns: []string{}, DetailedColumns: []core.DetailedColumn{}}
	if isNameToken(c.peek()) && c.upper(0) != "USING" {
		n := c.next().Literal
		idx.IndexName = &n
	}
	x.indexUsing(c, &idx)

	at := c.peek()
	inner, _, ok := c.group()
	if !ok {
		x.malformed(at, "index", ErrMissingGroup)
		return idx
	}
	idx.Columns, idx.DetailedColumns = indexColumns(inner)
	x.indexUsing(c, &idx)
	return idx
}

func (x *extractor) indexUsing(c *cursor, idx *core.Index) {
	if c.accept("USING") && isNameToken(c.peek()) {
		idx.Using = c.next().Literal
	}
}

// indexColumns parses an index column list. Every entry yields one plain name
// and one DetailedColumn; ordering defaults to ASC and nulls to LAST.
// Expressions are kept verbatim, plain names are unquoted.
func indexColumns(c *cursor) ([]string, []core.DetailedColumn) {
	parts := c.splitTop()
	names := make([]string, 0, len(parts))
	detailed := make([]core.DetailedColumn, 0, len(parts))
	for _, part := range parts {
		dc := indexColumn(part)
		names = append(names, dc.Name)
		detailed = append(detailed, dc)
	}
	return names, detailed
}

func indexColumn(part *cursor) core.DetailedColumn {
	dc := core.DetailedColumn{Order: core.OrderAsc, Nulls: core.NullsLast}

	end := len(part.toks)
	if end >= 2 && upperAt(part, end-2) == "NULLS" {
		if v := upperAt(part, end-1); v == core.NullsFirst || v == core.NullsLast {
			dc.Nulls = v
			end -= 2
		}
	}
	if end >= 1 {
		if v := upperAt(part, end-1); v == core.OrderAsc || v == core.OrderDesc {
			dc.Order = v
			end--
		}
	}

	first := part.peek()
	switch {
	case end == 1 && isNameToken(first):
		dc.Name = token.Unquote(first.Literal)
	case end > 1 && isNameToken(first) && part.toks[1].IsWord():
		// name COLLATE x, name opclass
		dc.Name = token.Unquote(first.Literal)
	case end == 4 && isNameToken(first) && isPrefixLength(part):
		// MySQL prefix index: name(10)
		dc.Name = token.Unquote(first.Literal)
	default:
		dc.Name = part.raw(0, end)
	}
	return dc
}

// isPrefixLength reports whether toks[1:4] is "(n)".
func isPrefixLength(part *cursor) bool {
	toks := part.toks
	return len(toks) >= 4 && toks[1].IsPunct("(") && toks[2].Kind == token.NUMBER && toks[3].IsPunct(")")
}

func upperAt(c *cursor, i int) string {
	if i < 0 || i >= len(c.toks) || !c.toks[i].IsWord() {
		return ""
	}
	return c.toks[i].Upper()
}

// attachForeignKey sets references on every local column of a table-level
// foreign key, pairing local and target columns by position.
func (x *extractor) attachForeignKey(t *core.Table, fk foreignKey) {
	for i, name := range fk.columns {
		col := t.Column(name)
		if col == nil {
			x.malformed(fk.at, "FOREIGN KEY", ErrUnknownFKColumn, name, t.Name)
			continue
		}
		ref := *fk.ref
		if i < len(fk.refCols) {
			target := fk.refCols[i]
			ref.Column = &target
		}
		col.References = &ref
	}
}
