package parser

import (
	"strings"

	"github.com/leapstack-labs/leapddl/pkg/dialect"
	"github.com/leapstack-labs/leapddl/pkg/token"
)

// cursor walks a slice of a statement's tokens. Sub-cursors over element
// spans share the statement source, so raw slices stay verbatim.
type cursor struct {
	toks []token.Token
	src  string
	pos  int
	d    *dialect.Dialect
}

func newCursor(stmt *Statement, d *dialect.Dialect) *cursor {
	return &cursor{toks: stmt.Tokens, src: stmt.src, d: d}
}

// sub returns a cursor over toks[i:j].
func (c *cursor) sub(i, j int) *cursor {
	return &cursor{toks: c.toks[i:j], src: c.src, d: c.d}
}

func (c *cursor) atEnd() bool {
	return c.pos >= len(c.toks)
}

// peekAt returns the token n positions ahead, or an EOF token.
func (c *cursor) peekAt(n int) token.Token {
	i := c.pos + n
	if i < 0 || i >= len(c.toks) {
		t := token.Token{Kind: token.EOF}
		if len(c.toks) > 0 {
			last := c.toks[len(c.toks)-1]
			t.Pos = last.Pos
			t.Pos.Offset = last.End
		}
		return t
	}
	return c.toks[i]
}

func (c *cursor) peek() token.Token {
	return c.peekAt(0)
}

func (c *cursor) next() token.Token {
	t := c.peek()
	if !c.atEnd() {
		c.pos++
	}
	return t
}

// word returns the canonical upper-case spelling of the token n ahead when it
// is an unquoted word, else "".
func (c *cursor) word(n int) string {
	t := c.peekAt(n)
	if !t.IsWord() {
		return ""
	}
	return c.d.Canonical(t.Literal)
}

// upper returns the literal spelling, upper-cased, of the word n ahead, with
// no synonym resolution.
func (c *cursor) upper(n int) string {
	t := c.peekAt(n)
	if !t.IsWord() {
		return ""
	}
	return t.Upper()
}

// is reports whether the next tokens are the given words, compared by
// literal spelling.
func (c *cursor) is(words ...string) bool {
	for i, w := range words {
		if c.upper(i) != w {
			return false
		}
	}
	return true
}

// accept consumes words if they are next.
func (c *cursor) accept(words ...string) bool {
	if !c.is(words...) {
		return false
	}
	c.pos += len(words)
	return true
}

// acceptPunct consumes the punctuation p if it is next.
func (c *cursor) acceptPunct(p string) bool {
	if c.peek().IsPunct(p) {
		c.pos++
		return true
	}
	return false
}

// atGroup reports whether the next token opens a parenthesized group.
func (c *cursor) atGroup() bool {
	return c.peek().IsPunct("(")
}

// groupEnd returns the index of the ')' matching the '(' at index i, or
// len(toks) when the group is not closed inside this cursor.
func (c *cursor) groupEnd(i int) int {
	depth := c.toks[i].Depth
	for j := i + 1; j < len(c.toks); j++ {
		if c.toks[j].Depth == depth && c.toks[j].IsPunct(")") {
			return j
		}
	}
	return len(c.toks)
}

// group consumes a parenthesized group and returns a cursor over its inner
// tokens along with the raw inner text. ok is false if no group is next.
func (c *cursor) group() (inner *cursor, raw string, ok bool) {
	if !c.atGroup() {
		return nil, "", false
	}
	open := c.pos
	closeIdx := c.groupEnd(open)
	inner = c.sub(open+1, closeIdx)
	raw = c.raw(open+1, closeIdx)
	c.pos = min(closeIdx+1, len(c.toks))
	return inner, raw, true
}

// skip consumes one token, or a whole group when a group is next.
func (c *cursor) skip() {
	if c.atGroup() {
		c.group()
		return
	}
	c.next()
}

// raw returns the source text of toks[i:j].
func (c *cursor) raw(i, j int) string {
	if i >= j || i < 0 || j > len(c.toks) {
		return ""
	}
	return c.src[c.toks[i].Pos.Offset:c.toks[j-1].End]
}

// rest returns the source text from the cursor to the end.
func (c *cursor) rest() string {
	return c.raw(c.pos, len(c.toks))
}

// splitTop splits the cursor's tokens on commas at the cursor's base depth,
// dropping empty elements.
func (c *cursor) splitTop() []*cursor {
	if len(c.toks) == 0 {
		return nil
	}
	depth := c.toks[0].Depth
	for _, t := range c.toks {
		depth = min(depth, t.Depth)
	}

	var parts []*cursor
	start := 0
	for i, t := range c.toks {
		if t.Depth == depth && t.IsPunct(",") {
			if i > start {
				parts = append(parts, c.sub(start, i))
			}
			start = i + 1
		}
	}
	if start < len(c.toks) {
		parts = append(parts, c.sub(start, len(c.toks)))
	}
	return parts
}

// qualifiedName consumes a dotted name (a, a.b, a.b.c) and returns the
// optional schema qualifier and the final name, both verbatim.
func (c *cursor) qualifiedName() (schema *string, name string, ok bool) {
	if !isNameToken(c.peek()) {
		return nil, "", false
	}
	parts := []string{c.next().Literal}
	for c.peek().IsPunct(".") && isNameToken(c.peekAt(1)) {
		c.next()
		parts = append(parts, c.next().Literal)
	}
	name = parts[len(parts)-1]
	if len(parts) > 1 {
		s := strings.Join(parts[:len(parts)-1], ".")
		schema = &s
	}
	return schema, name, true
}

func isNameToken(t token.Token) bool {
	return t.IsWord() || t.Kind == token.QUOTED_IDENT
}
