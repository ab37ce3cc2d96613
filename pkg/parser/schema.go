package parser

import (
	"github.com/leapstack-labs/leapddl/pkg/core"
)

// parseCreateSchema extracts CREATE SCHEMA [IF NOT EXISTS] [name]
// [AUTHORIZATION user]. Without a name the schema is named after its owner.
// Embedded schema elements and database options are ignored.
func (x *extractor) parseCreateSchema() (*core.Schema, bool) {
	c := x.cursor()
	c.next() // CREATE
	skipCreateModifiers(c)
	c.next() // SCHEMA or DATABASE

	s := &core.Schema{IfNotExists: c.accept("IF", "NOT", "EXISTS")}
	if isNameToken(c.peek()) && c.upper(0) != "AUTHORIZATION" {
		start := c.pos
		c.qualifiedName()
		s.Name = c.raw(start, c.pos)
	}
	at := c.peek()
	if c.accept("AUTHORIZATION") {
		if isNameToken(c.peek()) {
			user := c.next().Literal
			s.Authorization = &user
		} else {
			x.malformed(at, "AUTHORIZATION", ErrMissingName)
		}
	}

	if s.Name == "" {
		if s.Authorization == nil {
			x.malformed(at, "CREATE SCHEMA", ErrMissingName)
			return nil, false
		}
		s.Name = *s.Authorization
	}
	for !c.atEnd() {
		x.ignored(c.peek(), "schema "+s.Name)
		c.skip()
	}
	return s, true
}
