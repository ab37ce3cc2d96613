package parser

import (
	"github.com/leapstack-labs/leapddl/pkg/core"
	"github.com/leapstack-labs/leapddl/pkg/token"
)

// Base types of CREATE TYPE records that do not alias another type.
const (
	BaseEnum      = "ENUM"
	BaseComposite = "COMPOSITE"
	BaseObject    = "OBJECT"
	BaseRange     = "RANGE"
	BaseTable     = "TABLE"
)

// parseCreateType extracts CREATE TYPE in its enum, composite, object,
// range, table, alias (FROM) and property-list forms.
func (x *extractor) parseCreateType() (*core.Type, bool) {
	c := x.cursor()
	c.next() // CREATE
	skipCreateModifiers(c)
	c.next() // TYPE
	c.accept("IF", "NOT", "EXISTS")

	at := c.peek()
	schema, name, ok := c.qualifiedName()
	if !ok {
		x.malformed(at, "CREATE TYPE", ErrMissingName)
		return nil, false
	}
	typ := &core.Type{Name: name, Schema: schema}

	switch {
	case c.accept("AS"), c.accept("IS"):
		at = c.peek()
		switch {
		case c.accept("ENUM"):
			typ.BaseType = BaseEnum
			if inner, _, ok := c.group(); ok {
				for _, part := range inner.splitTop() {
					typ.Values = append(typ.Values, part.rest())
				}
			} else {
				x.malformed(at, "ENUM", ErrMissingGroup)
			}
		case c.accept("RANGE"):
			typ.BaseType = BaseRange
			typ.Properties = x.propertyList(c, at)
		case c.accept("OBJECT"):
			typ.BaseType = BaseObject
			typ.Attributes = x.attributeList(c, at)
		case c.accept("TABLE"):
			typ.BaseType = BaseTable
			typ.Attributes = x.attributeList(c, at)
		case c.atGroup():
			typ.BaseType = BaseComposite
			typ.Attributes = x.attributeList(c, at)
		default:
			typ.BaseType = c.rest()
		}
	case c.accept("FROM"):
		start := c.pos
		x.parseType(c)
		typ.BaseType = c.raw(start, c.pos)
	case c.atGroup():
		typ.Properties = x.propertyList(c, at)
	}
	return typ, true
}

// attributeList parses a parenthesized list of column-like attributes.
func (x *extractor) attributeList(c *cursor, at token.Token) []core.Column {
	inner, _, ok := c.group()
	if !ok {
		x.malformed(at, "attributes", ErrMissingGroup)
		return nil
	}
	var cols []core.Column
	for _, part := range inner.splitTop() {
		if def, ok := x.parseColumn(part); ok {
			cols = append(cols, def.column)
		}
	}
	return cols
}

// propertyList parses "(key = value, ...)". Values are kept verbatim.
func (x *extractor) propertyList(c *cursor, at token.Token) core.Options {
	inner, _, ok := c.group()
	if !ok {
		x.malformed(at, "properties", ErrMissingGroup)
		return nil
	}
	var props core.Options
	for _, part := range inner.splitTop() {
		key := part.next()
		if !isNameToken(key) {
			x.ignored(key, "properties")
			continue
		}
		part.acceptPunct("=")
		props.Set(token.Unquote(key.Literal), part.rest())
	}
	return props
}
