package parser

import (
	"github.com/leapstack-labs/leapddl/pkg/core"
)

// alterTable is the parsed target and actions of one ALTER TABLE statement.
type alterTable struct {
	schema  *string
	name    string
	actions []alterAction
}

type alterAction struct {
	kind core.AlterKind
	alt  core.Alteration
}

// parseAlterTable extracts ALTER TABLE [ONLY] [IF EXISTS] name action[, action...].
func (x *extractor) parseAlterTable() (*alterTable, bool) {
	c := x.cursor()
	c.pos += 2 // ALTER TABLE
	c.accept("ONLY")
	c.accept("IF", "EXISTS")
	c.accept("ONLY")

	at := c.peek()
	schema, name, ok := c.qualifiedName()
	if !ok {
		x.malformed(at, "ALTER TABLE", ErrMissingName)
		return nil, false
	}

	out := &alterTable{schema: schema, name: name}
	rest := c.sub(c.pos, len(c.toks))
	for _, action := range rest.splitTop() {
		text := action.rest()
		kind, alt := x.alterAction(action)
		alt.Statement = text
		out.actions = append(out.actions, alterAction{kind: kind, alt: alt})
	}
	return out, true
}

// alterAction classifies and parses one comma-separated ALTER TABLE action.
func (x *extractor) alterAction(c *cursor) (core.AlterKind, core.Alteration) {
	var alt core.Alteration
	switch {
	case c.accept("ADD"):
		return x.alterAdd(c)
	case c.accept("DROP"):
		return x.alterDrop(c)
	case c.accept("MODIFY"):
		c.accept("COLUMN")
		if def, ok := x.parseColumn(c); ok {
			alt.Column = &def.column
			alt.Name = def.column.Name
		}
		return core.AlterModifyColumn, alt
	case c.accept("CHANGE"):
		c.accept("COLUMN")
		if isNameToken(c.peek()) {
			alt.Name = c.next().Literal
		}
		if def, ok := x.parseColumn(c); ok {
			alt.Column = &def.column
			alt.NewName = def.column.Name
		}
		return core.AlterModifyColumn, alt
	case c.accept("ALTER"):
		c.accept("COLUMN")
		if isNameToken(c.peek()) {
			alt.Name = c.next().Literal
		}
		return core.AlterAlterColumn, alt
	case c.is("RENAME", "INDEX"), c.is("RENAME", "KEY"):
		c.pos += 2
		if isNameToken(c.peek()) {
			alt.Name = c.next().Literal
		}
		if c.accept("TO") && isNameToken(c.peek()) {
			alt.NewName = c.next().Literal
		}
		return core.AlterOther, alt
	case c.is("RENAME", "COLUMN"), c.is("RENAME") && isNameToken(c.peekAt(1)) && c.upper(2) == "TO" && c.upper(1) != "TO" && c.upper(1) != "AS":
		c.accept("RENAME")
		c.accept("COLUMN")
		alt.Name = c.next().Literal
		c.accept("TO")
		if isNameToken(c.peek()) {
			alt.NewName = c.next().Literal
		}
		return core.AlterRenameColumn, alt
	case c.accept("RENAME"):
		if !c.accept("TO") {
			c.accept("AS")
		}
		if isNameToken(c.peek()) {
			mark := c.pos
			c.qualifiedName()
			alt.NewName = c.raw(mark, c.pos)
		}
		return core.AlterRenameTable, alt
	}
	x.ignored(c.peek(), "alter table")
	return core.AlterOther, alt
}

// alterAdd handles ADD [COLUMN] coldef, ADD [CONSTRAINT n] constraint and
// ADD index forms.
func (x *extractor) alterAdd(c *cursor) (core.AlterKind, core.Alteration) {
	var alt core.Alteration
	var name *string
	if c.accept("CONSTRAINT") && isNameToken(c.peek()) {
		n := c.next().Literal
		name = &n
	}

	at := c.peek()
	switch {
	case c.accept("PRIMARY", "KEY"):
		skipClustered(c)
		idx := x.indexBody(c, false)
		alt.Constraint = &core.Constraint{Name: name, Type: "PRIMARY KEY", Columns: idx.Columns}
		return core.AlterAddConstraint, alt
	case c.is("UNIQUE") && name != nil:
		c.next()
		if c.word(0) == "INDEX" || c.upper(0) == "KEY" {
			c.next()
		}
		skipClustered(c)
		idx := x.indexBody(c, true)
		alt.Constraint = &core.Constraint{Name: name, Type: "UNIQUE", Columns: idx.Columns}
		return core.AlterAddConstraint, alt
	case c.accept("FOREIGN", "KEY"):
		con := &core.Constraint{Name: name, Type: "FOREIGN KEY"}
		if inner, _, ok := c.group(); ok {
			con.Columns = nameList(inner)
		}
		if c.accept("REFERENCES") {
			if ref, refCols, ok := x.parseReference(c); ok {
				con.References = expandReference(ref, refCols)
			}
		} else {
			x.malformed(at, "FOREIGN KEY", "expected REFERENCES")
		}
		alt.Constraint = con
		return core.AlterAddConstraint, alt
	case c.is("CHECK"):
		c.next()
		con := &core.Constraint{Name: name, Type: "CHECK"}
		if _, raw, ok := c.group(); ok {
			con.Check = &raw
		} else {
			x.malformed(at, "CHECK", ErrMissingGroup)
		}
		alt.Constraint = con
		return core.AlterAddConstraint, alt
	case name != nil:
		x.ignored(at, "constraint "+*name)
		return core.AlterOther, alt
	case c.is("UNIQUE"):
		c.next()
		if c.word(0) == "INDEX" || c.upper(0) == "KEY" {
			c.next()
		}
		idx := x.indexBody(c, true)
		alt.Index = &idx
		return core.AlterAddIndex, alt
	case c.is("FULLTEXT"), c.is("SPATIAL"):
		c.next()
		if c.word(0) == "INDEX" || c.upper(0) == "KEY" {
			c.next()
		}
		idx := x.indexBody(c, false)
		alt.Index = &idx
		return core.AlterAddIndex, alt
	case isIndexElement(c):
		c.next()
		idx := x.indexBody(c, false)
		alt.Index = &idx
		return core.AlterAddIndex, alt
	}

	c.accept("COLUMN")
	c.accept("IF", "NOT", "EXISTS")
	if def, ok := x.parseColumn(c); ok {
		alt.Column = &def.column
		alt.Name = def.column.Name
	}
	return core.AlterAddColumn, alt
}

// alterDrop handles the DROP forms.
func (x *extractor) alterDrop(c *cursor) (core.AlterKind, core.Alteration) {
	var alt core.Alteration
	kind := core.AlterDropColumn
	switch {
	case c.accept("CONSTRAINT"):
		kind = core.AlterDropConstraint
	case c.accept("PRIMARY", "KEY"):
		alt.Name = "PRIMARY KEY"
		return core.AlterDropConstraint, alt
	case c.accept("FOREIGN", "KEY"):
		kind = core.AlterDropConstraint
	case c.word(0) == "INDEX" || c.upper(0) == "KEY":
		c.next()
		kind = core.AlterDropIndex
	default:
		c.accept("COLUMN")
	}
	c.accept("IF", "EXISTS")
	if isNameToken(c.peek()) {
		alt.Name = c.next().Literal
	}
	return kind, alt
}

// expandReference turns a multi-column reference into one Reference per
// target column.
func expandReference(ref *core.Reference, cols []string) []core.Reference {
	if len(cols) <= 1 {
		return []core.Reference{*ref}
	}
	refs := make([]core.Reference, len(cols))
	for i, col := range cols {
		refs[i] = *ref
		refs[i].Column = &col
	}
	return refs
}

// applyAlter appends each action of a to t.
func applyAlter(t *core.Table, a *alterTable) {
	for _, action := range a.actions {
		t.AddAlteration(action.kind, action.alt)
	}
}
