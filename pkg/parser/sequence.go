package parser

import (
	"strconv"

	"github.com/leapstack-labs/leapddl/pkg/core"
	"github.com/leapstack-labs/leapddl/pkg/token"
)

// parseCreateSequence extracts CREATE SEQUENCE with its numeric options.
func (x *extractor) parseCreateSequence() (*core.Sequence, bool) {
	c := x.cursor()
	c.next() // CREATE
	skipCreateModifiers(c)
	c.next() // SEQUENCE
	ifNotExists := c.accept("IF", "NOT", "EXISTS")

	at := c.peek()
	schema, name, ok := c.qualifiedName()
	if !ok {
		x.malformed(at, "CREATE SEQUENCE", ErrMissingName)
		return nil, false
	}
	seq := &core.Sequence{Name: name, Schema: schema, IfNotExists: ifNotExists}

	yes, no := true, false
	for !c.atEnd() {
		at := c.peek()
		switch {
		case c.accept("AS"):
			start := c.pos
			x.parseType(c)
			if c.pos > start {
				dt := c.raw(start, c.pos)
				seq.DataType = &dt
			} else {
				x.malformed(at, "AS", ErrMissingName)
			}
		case c.accept("START"):
			c.accept("WITH")
			seq.StartWith = x.sequenceInt(c, at, "START WITH")
		case c.accept("INCREMENT"):
			c.accept("BY")
			seq.IncrementBy = x.sequenceInt(c, at, "INCREMENT BY")
		case c.accept("MINVALUE"):
			seq.MinValue = x.sequenceInt(c, at, "MINVALUE")
		case c.accept("MAXVALUE"):
			seq.MaxValue = x.sequenceInt(c, at, "MAXVALUE")
		case c.accept("CACHE"):
			seq.Cache = x.sequenceInt(c, at, "CACHE")
		case c.accept("CYCLE"):
			seq.Cycle = &yes
		case c.accept("NO", "CYCLE"), c.accept("NOCYCLE"):
			seq.Cycle = &no
		case c.accept("NO", "MINVALUE"), c.accept("NO", "MAXVALUE"), c.accept("NOMINVALUE"),
			c.accept("NOMAXVALUE"), c.accept("NOCACHE"), c.accept("NO", "CACHE"):
		case c.accept("OWNED", "BY"):
			start := c.pos
			if c.accept("NONE") || isNameToken(c.peek()) && qualifiedOK(c) {
				owner := c.raw(start, c.pos)
				seq.OwnedBy = &owner
			} else {
				x.malformed(at, "OWNED BY", ErrMissingName)
			}
		default:
			x.ignored(at, "sequence "+name)
			c.skip()
		}
	}
	return seq, true
}

func qualifiedOK(c *cursor) bool {
	_, _, ok := c.qualifiedName()
	return ok
}

// sequenceInt reads an optionally signed integer. A missing or non-integer
// value is a malformed clause and yields nil.
func (x *extractor) sequenceInt(c *cursor, at token.Token, clause string) *int64 {
	sign := ""
	if p := c.peek(); (p.IsPunct("-") || p.IsPunct("+")) && c.peekAt(1).Kind == token.NUMBER {
		sign = c.next().Literal
	}
	t := c.peek()
	if t.Kind != token.NUMBER {
		x.malformed(at, clause, ErrMissingValue)
		return nil
	}
	c.next()
	n, err := strconv.ParseInt(sign+t.Literal, 10, 64)
	if err != nil {
		x.malformed(at, clause, "invalid integer %s", sign+t.Literal)
		return nil
	}
	return &n
}
