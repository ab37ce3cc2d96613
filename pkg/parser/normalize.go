package parser

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/leapstack-labs/leapddl/pkg/core"
	"github.com/leapstack-labs/leapddl/pkg/dialect"
)

// caseNormalizer canonicalizes keyword casing in extracted records. Type
// names are upper-cased outside quotes; a default or on-update expression
// whose leading word is a dialect generator function gets that word
// upper-cased. String literals and identifiers are never touched.
type caseNormalizer struct {
	d     *dialect.Dialect
	upper cases.Caser
}

func newCaseNormalizer(d *dialect.Dialect) *caseNormalizer {
	return &caseNormalizer{d: d, upper: cases.Upper(language.Und)}
}

func (n *caseNormalizer) entity(e core.Entity) {
	switch v := e.(type) {
	case *core.Table:
		n.columns(v.Columns)
	case *core.Type:
		n.columns(v.Attributes)
		if v.BaseType != BaseEnum {
			v.BaseType = n.unquoted(v.BaseType)
		}
	case *core.Domain:
		v.BaseType = n.unquoted(v.BaseType)
		v.Default = n.generator(v.Default)
	case *core.Sequence:
		if v.DataType != nil {
			dt := n.unquoted(*v.DataType)
			v.DataType = &dt
		}
	}
}

func (n *caseNormalizer) alteration(a *core.Alteration) {
	if a.Column != nil {
		n.column(a.Column)
	}
}

func (n *caseNormalizer) columns(cols []core.Column) {
	for i := range cols {
		n.column(&cols[i])
	}
}

func (n *caseNormalizer) column(c *core.Column) {
	c.Type = n.unquoted(c.Type)
	c.Default = n.generator(c.Default)
	c.OnUpdate = n.generator(c.OnUpdate)
}

// unquoted upper-cases s except for quoted runs ('x', "x", `x`, [x]).
func (n *caseNormalizer) unquoted(s string) string {
	var (
		b     strings.Builder
		start int
		quote byte
	)
	flush := func(end int) {
		b.WriteString(n.upper.String(s[start:end]))
		start = end
	}
	for i := 0; i < len(s); i++ {
		ch := s[i]
		switch {
		case quote != 0:
			if ch == quote {
				quote = 0
				b.WriteString(s[start : i+1])
				start = i + 1
			}
		case ch == '\'' || ch == '"' || ch == '`' || ch == '[':
			flush(i)
			quote = ch
			if ch == '[' {
				quote = ']'
			}
		}
	}
	if quote != 0 {
		b.WriteString(s[start:])
	} else {
		flush(len(s))
	}
	return b.String()
}

// generator upper-cases the leading word of expr when it names a generator
// function, e.g. current_timestamp(3) becomes CURRENT_TIMESTAMP(3).
func (n *caseNormalizer) generator(expr *string) *string {
	if expr == nil {
		return nil
	}
	s := *expr
	end := strings.IndexFunc(s, func(r rune) bool {
		return r != '_' && (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') && (r < '0' || r > '9')
	})
	if end < 0 {
		end = len(s)
	}
	if end == 0 || !n.d.IsGenerator(s[:end]) {
		return expr
	}
	out := n.upper.String(s[:end]) + s[end:]
	return &out
}
