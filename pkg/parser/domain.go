package parser

import (
	"github.com/leapstack-labs/leapddl/pkg/core"
)

// parseCreateDomain extracts CREATE DOMAIN name [AS] type [constraints].
func (x *extractor) parseCreateDomain() (*core.Domain, bool) {
	c := x.cursor()
	c.next() // CREATE
	skipCreateModifiers(c)
	c.next() // DOMAIN

	at := c.peek()
	schema, name, ok := c.qualifiedName()
	if !ok {
		x.malformed(at, "CREATE DOMAIN", ErrMissingName)
		return nil, false
	}
	dom := &core.Domain{Name: name, Schema: schema, Nullable: true, Checks: []core.Check{}}

	c.accept("AS")
	dom.BaseType, dom.Size = x.parseType(c)

	for !c.atEnd() {
		at := c.peek()
		var constraint *string
		if c.accept("CONSTRAINT") && isNameToken(c.peek()) {
			n := c.next().Literal
			constraint = &n
		}
		switch {
		case c.accept("NOT", "NULL"):
			dom.Nullable = false
		case c.accept("NULL"):
			dom.Nullable = true
		case c.accept("DEFAULT"):
			if expr, ok := captureExpr(c); ok {
				dom.Default = &expr
			} else {
				x.malformed(at, "DEFAULT", ErrMissingExpression)
			}
		case c.accept("CHECK"):
			if _, raw, ok := c.group(); ok {
				dom.Checks = append(dom.Checks, core.Check{Name: constraint, Statement: raw})
			} else {
				x.malformed(at, "CHECK", ErrMissingGroup)
			}
		case c.accept("COLLATE"):
			c.next()
		default:
			x.ignored(at, "domain "+name)
			c.skip()
		}
	}
	return dom, true
}
