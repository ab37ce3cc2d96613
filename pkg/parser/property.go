package parser

import (
	"strings"

	"github.com/leapstack-labs/leapddl/pkg/core"
)

// parseProperty turns an unclassified statement into a ddl_properties entry.
// "SET name = value" and "SET name TO value" yield a name and a value; any
// other statement is named after its leading keywords. isSet reports the
// former.
func (x *extractor) parseProperty() (prop *core.Property, isSet bool) {
	c := x.cursor()
	prop = &core.Property{Statement: x.stmt.Text()}

	if c.accept("SET") {
		for _, scope := range []string{"SESSION", "LOCAL", "GLOBAL"} {
			if c.accept(scope) {
				break
			}
		}
		if isNameToken(c.peek()) {
			start := c.pos
			c.qualifiedName()
			prop.Name = c.raw(start, c.pos)
			if !c.acceptPunct("=") {
				c.accept("TO")
			}
			if !c.atEnd() {
				v := c.rest()
				prop.Value = &v
			}
			return prop, true
		}
		c.pos = 0
	}

	prop.Name = leadingWords(c, 2)
	return prop, false
}

// leadingWords returns up to n leading words of the cursor, upper-cased.
func leadingWords(c *cursor, n int) string {
	var words []string
	for i := range n {
		w := c.upper(i)
		if w == "" {
			break
		}
		words = append(words, w)
	}
	if len(words) == 0 {
		return c.peek().Literal
	}
	return strings.Join(words, " ")
}
