package parser

import (
	"github.com/leapstack-labs/leapddl/pkg/token"
)

// clauseKeywords start a column or constraint clause and can never begin a
// captured expression operand.
var clauseKeywords = map[string]bool{
	"NOT":            true,
	"CHECK":          true,
	"REFERENCES":     true,
	"CONSTRAINT":     true,
	"PRIMARY":        true,
	"UNIQUE":         true,
	"KEY":            true,
	"INDEX":          true,
	"COMMENT":        true,
	"ON":             true,
	"COLLATE":        true,
	"AUTO_INCREMENT": true,
	"AUTOINCREMENT":  true,
	"IDENTITY":       true,
	"GENERATED":      true,
	"DEFAULT":        true,
	"CHARACTER":      true,
	"CHARSET":        true,
	"AS":             true,
	"FOREIGN":        true,
	"STORED":         true,
	"VIRTUAL":        true,
}

// binaryOps continue an expression past its first operand.
var binaryOps = map[string]bool{
	"+": true, "-": true, "*": true, "/": true, "%": true,
	"||": true, "&": true, "|": true, "^": true,
}

// captureExpr consumes one expression starting at the cursor and returns its
// verbatim source text. An expression is an operand followed by any number of
// binary operators and further operands. A function call consumes its whole
// argument list, so current_timestamp(3) is captured in one piece.
func captureExpr(c *cursor) (string, bool) {
	start := c.pos
	if !operand(c) {
		c.pos = start
		return "", false
	}
	for {
		op := c.peek()
		if op.Kind != token.PUNCT || !binaryOps[op.Literal] {
			break
		}
		mark := c.pos
		c.next()
		if !operand(c) {
			c.pos = mark
			break
		}
	}
	return c.raw(start, c.pos), true
}

// operand consumes a single operand with its casts.
func operand(c *cursor) bool {
	if p := c.peek(); p.IsPunct("-") || p.IsPunct("+") {
		c.next()
	}
	if !primary(c) {
		return false
	}
	for c.acceptPunct("::") {
		if !castType(c) {
			return false
		}
	}
	return true
}

func primary(c *cursor) bool {
	t := c.peek()
	switch {
	case t.Kind == token.STRING, t.Kind == token.NUMBER:
		c.next()
		return true
	case c.atGroup():
		c.group()
		return true
	case t.IsWord() && t.Upper() == "CASE":
		return caseExpr(c)
	case t.IsWord() && clauseKeywords[t.Upper()]:
		return false
	case isNameToken(t):
		if _, _, ok := c.qualifiedName(); !ok {
			return false
		}
		switch {
		case c.atGroup():
			c.group()
		case c.peek().Kind == token.STRING && t.IsWord():
			// typed literal: DATE '2024-01-01'
			c.next()
		}
		return true
	}
	return false
}

// castType consumes the type after '::', including multi-word spellings and
// array suffixes.
func castType(c *cursor) bool {
	if _, _, ok := c.qualifiedName(); !ok {
		return false
	}
	for typeModifiers[c.upper(0)] {
		c.next()
	}
	if c.atGroup() {
		c.group()
	}
	for c.peek().IsPunct("[") {
		skipBrackets(c)
	}
	return true
}

// caseExpr consumes CASE ... END, nesting included.
func caseExpr(c *cursor) bool {
	depth := 0
	for !c.atEnd() {
		switch c.upper(0) {
		case "CASE":
			depth++
		case "END":
			depth--
			if depth == 0 {
				c.next()
				return true
			}
		}
		c.skip()
	}
	return false
}

// skipBrackets consumes a punctuation-delimited [ ... ] suffix.
func skipBrackets(c *cursor) {
	c.next()
	for !c.atEnd() {
		if c.next().IsPunct("]") {
			return
		}
	}
}
