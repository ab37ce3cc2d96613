package parser

import (
	"github.com/leapstack-labs/leapddl/pkg/dialect"
	"github.com/leapstack-labs/leapddl/pkg/token"
)

// Statement is an ordered run of tokens between two statement terminators.
// It is immutable once produced by Split.
type Statement struct {
	Index     int // position among the non-empty statements of the input
	Tokens    []token.Token
	LexErrors []*LexError

	src string
}

// Pos returns the position of the first token.
func (s *Statement) Pos() token.Position {
	if len(s.Tokens) == 0 {
		return token.Position{}
	}
	return s.Tokens[0].Pos
}

// Span returns the source range covered by the statement.
func (s *Statement) Span() token.Span {
	if len(s.Tokens) == 0 {
		return token.Span{}
	}
	last := s.Tokens[len(s.Tokens)-1]
	end := last.Pos
	end.Column += last.End - last.Pos.Offset
	end.Offset = last.End
	return token.Span{Start: s.Tokens[0].Pos, End: end}
}

// Raw returns the source text of tokens i through j-1, original whitespace
// and comments included.
func (s *Statement) Raw(i, j int) string {
	if i >= j || i < 0 || j > len(s.Tokens) {
		return ""
	}
	return s.src[s.Tokens[i].Pos.Offset:s.Tokens[j-1].End]
}

// Text returns the source text of the whole statement, without its terminator.
func (s *Statement) Text() string {
	return s.Raw(0, len(s.Tokens))
}

// Split groups tokens into statements on ';' at paren depth 0. A dialect batch
// separator (SQL Server GO) standing alone on its line also ends a statement.
// Empty statements are dropped; input order is preserved.
func Split(input string, toks []token.Token, d *dialect.Dialect) []*Statement {
	var (
		stmts   []*Statement
		current []token.Token
	)

	flush := func() {
		if len(current) == 0 {
			return
		}
		stmts = append(stmts, &Statement{
			Index:  len(stmts),
			Tokens: current,
			src:    input,
		})
		current = nil
	}

	sep := d.BatchSeparator()
	for i, tok := range toks {
		switch {
		case tok.Depth == 0 && tok.IsPunct(";"):
			flush()
		case sep != "" && tok.Depth == 0 && tok.IsWord() && tok.Upper() == sep && standsAlone(toks, i):
			flush()
		default:
			current = append(current, tok)
		}
	}
	flush()

	return stmts
}

// standsAlone reports whether toks[i] is the only token on its line.
func standsAlone(toks []token.Token, i int) bool {
	line := toks[i].Pos.Line
	if i > 0 && toks[i-1].Pos.Line == line {
		return false
	}
	if i+1 < len(toks) && toks[i+1].Pos.Line == line {
		return false
	}
	return true
}

// attachLexErrors assigns every error to the statement whose source span
// contains it. Errors outside every statement are returned.
func attachLexErrors(stmts []*Statement, errs []*LexError) []*LexError {
	var orphans []*LexError
	for _, err := range errs {
		owner := -1
		for i, stmt := range stmts {
			span := stmt.Span()
			if err.Pos.Offset >= span.Start.Offset && err.Pos.Offset < span.End.Offset {
				owner = i
				break
			}
		}
		if owner < 0 {
			orphans = append(orphans, err)
			continue
		}
		stmts[owner].LexErrors = append(stmts[owner].LexErrors, err)
	}
	return orphans
}
