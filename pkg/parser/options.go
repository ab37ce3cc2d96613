package parser

import (
	"github.com/leapstack-labs/leapddl/pkg/core"
	"github.com/leapstack-labs/leapddl/pkg/token"
)

// maxOptionWords bounds the keyword lookahead used to match table options.
const maxOptionWords = 4

// tableOptions scans the tail of CREATE TABLE after the column list. Dialect
// options are stored verbatim; unknown tokens are skipped.
func (x *extractor) tableOptions(c *cursor, t *core.Table) {
	for !c.atEnd() {
		at := c.peek()
		switch {
		case c.is("AS"):
			// CREATE TABLE ... AS SELECT
			return
		case c.acceptPunct(","):
		case c.accept("TABLESPACE"):
			c.acceptPunct("=")
			if v := c.peek(); isNameToken(v) || v.Kind == token.STRING {
				c.next()
				t.Tablespace = &v.Literal
			} else {
				x.malformed(at, "TABLESPACE", ErrMissingName)
			}
		case c.is("PARTITIONED", "BY"), c.is("PARTITION", "BY"):
			c.pos += 2
			x.partitionBy(c, at, t)
		default:
			if !x.dialectOption(c, t) {
				x.ignored(at, "table options")
				c.skip()
			}
		}
	}
}

// dialectOption matches the longest dialect option at the cursor and stores
// "keyword [=] value". A parenthesized value is kept with its parens.
func (x *extractor) dialectOption(c *cursor, t *core.Table) bool {
	words := make([]string, 0, maxOptionWords)
	for i := range maxOptionWords {
		w := c.upper(i)
		if w == "" {
			break
		}
		words = append(words, w)
	}
	key, n, ok := x.d.MatchTableOption(words)
	if !ok {
		return false
	}

	at := c.peek()
	c.pos += n
	c.acceptPunct("=")
	switch v := c.peek(); {
	case c.atGroup():
		start := c.pos
		c.group()
		t.Options.Set(key, c.raw(start, c.pos))
	case v.Kind == token.EOF, v.Kind == token.PUNCT:
		x.malformed(at, key, ErrMissingValue)
	default:
		c.next()
		t.Options.Set(key, v.Literal)
	}
	return true
}

// partitionBy reads [RANGE|LIST|HASH|KEY] [COLUMNS] (cols) after PARTITION BY.
func (x *extractor) partitionBy(c *cursor, at token.Token, t *core.Table) {
	c.accept("LINEAR")
	for _, method := range []string{"RANGE", "LIST", "HASH", "KEY"} {
		if c.accept(method) {
			break
		}
	}
	c.accept("COLUMNS")

	inner, _, ok := c.group()
	if !ok {
		x.malformed(at, "PARTITION BY", ErrMissingGroup)
		return
	}
	for _, part := range inner.splitTop() {
		t.PartitionedBy = append(t.PartitionedBy, partitionKey(part))
	}
}

// partitionKey returns a plain column unquoted and anything more complex
// verbatim.
func partitionKey(part *cursor) string {
	first := part.peek()
	switch {
	case len(part.toks) == 1:
		return token.Unquote(first.Literal)
	case part.toks[1].IsPunct("("), !isNameToken(first):
		return part.raw(0, len(part.toks))
	default:
		// column with a type or opclass: id INT, col text_ops
		return token.Unquote(first.Literal)
	}
}
