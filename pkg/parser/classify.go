package parser

import (
	"github.com/leapstack-labs/leapddl/pkg/core"
	"github.com/leapstack-labs/leapddl/pkg/dialect"
)

// createModifiers may sit between CREATE and the object keyword.
var createModifiers = map[string]bool{
	"TEMPORARY":    true,
	"TEMP":         true,
	"GLOBAL":       true,
	"LOCAL":        true,
	"UNLOGGED":     true,
	"EXTERNAL":     true,
	"UNIQUE":       true,
	"FULLTEXT":     true,
	"SPATIAL":      true,
	"CLUSTERED":    true,
	"NONCLUSTERED": true,
	"TRANSIENT":    true,
	"VOLATILE":     true,
}

// Classify inspects the leading tokens of stmt, after synonym resolution, and
// returns its kind.
func Classify(stmt *Statement, d *dialect.Dialect) core.Kind {
	c := newCursor(stmt, d)
	switch c.word(0) {
	case "CREATE":
		c.next()
		skipCreateModifiers(c)
		switch c.word(0) {
		case "TABLE":
			return core.KindCreateTable
		case "INDEX":
			return core.KindCreateIndex
		case "TYPE":
			return core.KindCreateType
		case "SEQUENCE":
			return core.KindCreateSequence
		case "DOMAIN":
			return core.KindCreateDomain
		case "SCHEMA":
			return core.KindCreateSchema
		}
	case "ALTER":
		c.next()
		if c.word(0) == "TABLE" {
			return core.KindAlterTable
		}
	}
	return core.KindUnclassified
}

func skipCreateModifiers(c *cursor) {
	for {
		switch {
		case c.is("OR", "REPLACE"):
			c.pos += 2
		case createModifiers[c.word(0)]:
			c.next()
		default:
			return
		}
	}
}
