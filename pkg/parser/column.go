package parser

import (
	"strconv"
	"strings"

	"github.com/leapstack-labs/leapddl/pkg/core"
	"github.com/leapstack-labs/leapddl/pkg/token"
)

// typeModifiers are words folded into a column type after its base name.
var typeModifiers = map[string]bool{
	"PRECISION": true,
	"VARYING":   true,
	"UNSIGNED":  true,
	"SIGNED":    true,
	"ZEROFILL":  true,
	"VARCHAR":   true, // LONG VARCHAR
	"RAW":       true, // LONG RAW
}

// referentialActions are the accepted ON DELETE / ON UPDATE actions.
var referentialActions = [][]string{
	{"CASCADE"},
	{"RESTRICT"},
	{"SET", "NULL"},
	{"SET", "DEFAULT"},
	{"NO", "ACTION"},
}

// columnDef is a parsed column declaration plus the inline constraints that
// affect the enclosing table.
type columnDef struct {
	column     core.Column
	primaryKey bool
}

// parseColumn parses one column declaration: name, type, then clauses in any
// order. It returns false when the element does not start with a name.
func (x *extractor) parseColumn(c *cursor) (columnDef, bool) {
	first := c.peek()
	if !isNameToken(first) {
		x.malformed(first, "column", ErrMissingName)
		return columnDef{}, false
	}
	c.next()

	def := columnDef{column: core.Column{Name: first.Literal, Nullable: true}}
	col := &def.column
	col.Type, col.Size = x.parseType(c)

	for !c.atEnd() {
		at := c.peek()
		switch {
		case c.accept("NOT", "NULL"):
			col.Nullable = false
		case c.accept("NULL"):
			col.Nullable = true
		case c.is("DEFAULT"):
			c.next()
			if expr, ok := captureExpr(c); ok {
				col.Default = &expr
			} else {
				x.malformed(at, "DEFAULT", ErrMissingExpression)
			}
		case c.is("ON", "UPDATE"):
			c.pos += 2
			expr, ok := captureExpr(c)
			switch {
			case !ok:
				x.malformed(at, "ON UPDATE", ErrMissingExpression)
			case x.d.OnUpdate():
				col.OnUpdate = &expr
			default:
				x.ignored(at, "on update")
			}
		case c.accept("UNIQUE"):
			c.accept("KEY")
			col.Unique = true
		case c.accept("PRIMARY", "KEY"):
			def.primaryKey = true
			skipOrder(c)
		case c.accept("KEY"):
			// MySQL: a bare KEY on a column is shorthand for PRIMARY KEY.
			def.primaryKey = true
		case c.is("CHECK"):
			c.next()
			if _, raw, ok := c.group(); ok {
				col.Check = &raw
			} else {
				x.malformed(at, "CHECK", ErrMissingGroup)
			}
		case c.is("REFERENCES"):
			c.next()
			if ref, _, ok := x.parseReference(c); ok {
				col.References = ref
			}
		case c.is("CONSTRAINT"):
			c.next()
			if isNameToken(c.peek()) {
				c.next()
			}
		case c.is("COMMENT"):
			c.next()
			c.acceptPunct("=")
			if v := c.peek(); v.Kind == token.STRING {
				c.next()
				col.Comment = &v.Literal
			} else {
				x.malformed(at, "COMMENT", ErrMissingValue)
			}
		case c.accept("AUTO_INCREMENT"), c.accept("AUTOINCREMENT"):
			col.AutoIncrement = true
		case c.accept("IDENTITY"):
			col.AutoIncrement = true
			if c.atGroup() {
				c.group()
			}
		case c.is("GENERATED"):
			c.next()
			x.parseGenerated(c, at, col)
		case c.is("AS") && c.peekAt(1).IsPunct("("):
			c.next()
			_, raw, _ := c.group()
			col.Generated = &raw
			if !c.accept("STORED") {
				c.accept("VIRTUAL")
			}
		case c.is("COLLATE"):
			c.next()
			if v := c.peek(); isNameToken(v) || v.Kind == token.STRING {
				c.next()
				col.Collate = &v.Literal
			} else {
				x.malformed(at, "COLLATE", ErrMissingValue)
			}
		case c.accept("CHARACTER", "SET"), c.accept("CHARSET"):
			if v := c.peek(); isNameToken(v) || v.Kind == token.STRING {
				c.next()
				col.Charset = &v.Literal
			} else {
				x.malformed(at, "CHARACTER SET", ErrMissingValue)
			}
		default:
			x.ignored(at, "column "+col.Name)
			c.skip()
		}
	}
	return def, true
}

// parseType reads the column type. A numeric argument list becomes the size;
// any other argument list stays in the type text verbatim.
func (x *extractor) parseType(c *cursor) (string, *core.Size) {
	t := c.peek()
	if !isNameToken(t) || (t.IsWord() && clauseKeywords[t.Upper()] && t.Upper() != "CHARACTER") {
		return "", nil
	}

	var (
		parts []string
		size  *core.Size
	)
	start := c.pos
	c.qualifiedName()
	parts = append(parts, c.raw(start, c.pos))

	for !c.atEnd() {
		switch {
		case typeModifiers[c.upper(0)]:
			parts = append(parts, c.next().Literal)
		case c.is("WITH", "TIME", "ZONE"), c.is("WITHOUT", "TIME", "ZONE"):
			mark := c.pos
			c.pos += 3
			parts = append(parts, c.raw(mark, c.pos))
		case c.atGroup() && size == nil:
			inner, raw, _ := c.group()
			if s, ok := numericSize(inner); ok {
				size = s
				continue
			}
			parts[len(parts)-1] += "(" + raw + ")"
		case c.peek().IsPunct("["):
			mark := c.pos
			skipBrackets(c)
			parts[len(parts)-1] += c.raw(mark, c.pos)
		case c.peek().Kind == token.QUOTED_IDENT && strings.HasPrefix(c.peek().Literal, "[") && adjacent(c):
			parts[len(parts)-1] += c.next().Literal
		default:
			return strings.Join(parts, " "), size
		}
	}
	return strings.Join(parts, " "), size
}

// adjacent reports whether the next token touches the previous one.
func adjacent(c *cursor) bool {
	return c.pos > 0 && c.peek().Pos.Offset == c.toks[c.pos-1].End
}

// numericSize reads "(n)" or "(p, s)".
func numericSize(inner *cursor) (*core.Size, bool) {
	toks := inner.toks
	switch {
	case len(toks) == 1 && toks[0].Kind == token.NUMBER:
		p, err := strconv.Atoi(toks[0].Literal)
		if err != nil {
			return nil, false
		}
		return &core.Size{Precision: p}, true
	case len(toks) == 3 && toks[0].Kind == token.NUMBER && toks[1].IsPunct(",") && toks[2].Kind == token.NUMBER:
		p, err := strconv.Atoi(toks[0].Literal)
		if err != nil {
			return nil, false
		}
		s, err := strconv.Atoi(toks[2].Literal)
		if err != nil {
			return nil, false
		}
		return &core.Size{Precision: p, Scale: s, HasScale: true}, true
	}
	return nil, false
}

// parseGenerated handles what follows GENERATED:
// [ALWAYS | BY DEFAULT [ON NULL]] AS IDENTITY [(...)] or AS (expr) [STORED|VIRTUAL].
func (x *extractor) parseGenerated(c *cursor, at token.Token, col *core.Column) {
	if !c.accept("ALWAYS") {
		if c.accept("BY", "DEFAULT") {
			c.accept("ON", "NULL")
		}
	}
	if !c.accept("AS") {
		x.malformed(at, "GENERATED", "expected AS")
		return
	}
	switch {
	case c.accept("IDENTITY"):
		col.AutoIncrement = true
		if c.atGroup() {
			c.group()
		}
	case c.atGroup():
		_, raw, _ := c.group()
		col.Generated = &raw
		if !c.accept("STORED") {
			c.accept("VIRTUAL")
		}
	default:
		x.malformed(at, "GENERATED", ErrMissingExpression)
	}
}

// parseReference parses the target of REFERENCES: table [(columns)] followed
// by referential actions and deferrability. The target columns are returned
// unquoted; ref.Column joins them.
func (x *extractor) parseReference(c *cursor) (ref *core.Reference, cols []string, ok bool) {
	at := c.peek()
	schema, name, ok := c.qualifiedName()
	if !ok {
		x.malformed(at, "REFERENCES", ErrMissingName)
		return nil, nil, false
	}
	ref = &core.Reference{Table: name, Schema: schema}
	if inner, _, ok := c.group(); ok {
		if cols = nameList(inner); len(cols) > 0 {
			col := strings.Join(cols, ", ")
			ref.Column = &col
		}
	}

	for !c.atEnd() {
		switch {
		case c.is("ON", "DELETE"), c.is("ON", "UPDATE"):
			target := &ref.OnDelete
			if c.upper(1) == "UPDATE" {
				target = &ref.OnUpdate
			}
			mark := c.pos
			c.pos += 2
			action, ok := referentialAction(c)
			if !ok {
				// ON UPDATE <expr> belongs to the column, not the reference.
				c.pos = mark
				return ref, cols, true
			}
			*target = &action
		case c.accept("MATCH"):
			c.next()
		case c.accept("NOT", "DEFERRABLE"), c.accept("DEFERRABLE"):
		case c.accept("INITIALLY"):
			if v := c.upper(0); v == "DEFERRED" || v == "IMMEDIATE" {
				c.next()
				ref.Deferrable = &v
			}
		default:
			return ref, cols, true
		}
	}
	return ref, cols, true
}

func referentialAction(c *cursor) (string, bool) {
	for _, words := range referentialActions {
		if c.accept(words...) {
			return strings.Join(words, " "), true
		}
	}
	return "", false
}

// nameList returns the unquoted names of a comma-separated list, taking the
// first token of each element.
func nameList(c *cursor) []string {
	var names []string
	for _, part := range c.splitTop() {
		if t := part.peek(); isNameToken(t) {
			names = append(names, token.Unquote(t.Literal))
		}
	}
	return names
}

// skipOrder consumes an optional ASC/DESC after an inline PRIMARY KEY.
func skipOrder(c *cursor) {
	if !c.accept("ASC") {
		c.accept("DESC")
	}
}
