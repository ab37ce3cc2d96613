package parser

import (
	"fmt"
	"log/slog"

	"github.com/leapstack-labs/leapddl/pkg/dialect"
	"github.com/leapstack-labs/leapddl/pkg/token"
)

// extractor carries per-statement state shared by the structural extractors:
// the dialect, the statement and the clause-level problems met so far.
type extractor struct {
	d      *dialect.Dialect
	stmt   *Statement
	logger *slog.Logger
	issues []error
}

func newExtractor(stmt *Statement, d *dialect.Dialect, logger *slog.Logger) *extractor {
	return &extractor{d: d, stmt: stmt, logger: logger}
}

func (x *extractor) cursor() *cursor {
	return newCursor(x.stmt, x.d)
}

// malformed records a MalformedClauseError. The caller treats the clause as
// absent and carries on.
func (x *extractor) malformed(at token.Token, clause, format string, args ...any) {
	err := &MalformedClauseError{Pos: at.Pos, Clause: clause, Message: fmt.Sprintf(format, args...)}
	x.issues = append(x.issues, err)
	x.logger.Debug("malformed clause",
		slog.Int("statement", x.stmt.Index),
		slog.String("clause", clause),
		slog.String("pos", at.Pos.String()))
}

// ignored logs a token the extractor skipped.
func (x *extractor) ignored(at token.Token, context string) {
	x.logger.Debug("ignored token",
		slog.Int("statement", x.stmt.Index),
		slog.String("context", context),
		slog.String("token", at.Literal),
		slog.String("pos", at.Pos.String()))
}
