package parser

import (
	"encoding/json"
	"fmt"

	"github.com/leapstack-labs/leapddl/pkg/core"
	"github.com/leapstack-labs/leapddl/pkg/token"
)

// LexError represents a lexical analysis error: an unterminated quote or
// comment, or a character that cannot start any token.
type LexError struct {
	Pos      token.Position
	Message  string
	Fragment string // offending source text
}

func (e *LexError) Error() string {
	return fmt.Sprintf("lexer error at line %d, column %d: %s: %q", e.Pos.Line, e.Pos.Column, e.Message, e.Fragment)
}

// MalformedClauseError reports a recognized keyword whose operands could not
// be parsed. The clause is treated as absent.
type MalformedClauseError struct {
	Pos     token.Position
	Clause  string
	Message string
}

func (e *MalformedClauseError) Error() string {
	return fmt.Sprintf("malformed %s clause at line %d, column %d: %s", e.Clause, e.Pos.Line, e.Pos.Column, e.Message)
}

// UnclassifiedStatementWarning records a statement the classifier did not
// recognize. The statement is kept as a ddl_properties entry.
type UnclassifiedStatementWarning struct {
	Pos     token.Position
	Leading string // leading keywords of the statement
}

func (e *UnclassifiedStatementWarning) Error() string {
	return fmt.Sprintf("unclassified statement at line %d, column %d: %s", e.Pos.Line, e.Pos.Column, e.Leading)
}

// ParseError aborts a whole parse. It is only returned in strict mode, when a
// statement contains a LexError.
type ParseError struct {
	Statement int // index of the failing statement, -1 if outside any statement
	Err       error
}

func (e *ParseError) Error() string {
	if e.Statement < 0 {
		return fmt.Sprintf("parse aborted: %v", e.Err)
	}
	return fmt.Sprintf("parse aborted at statement %d: %v", e.Statement, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Common error messages
const (
	ErrUnterminatedString  = "unterminated quoted literal"
	ErrUnterminatedIdent   = "unterminated quoted identifier"
	ErrUnterminatedComment = "unterminated block comment"
	ErrIllegalCharacter    = "illegal character"
	ErrMissingExpression   = "expected an expression"
	ErrMissingGroup        = "expected a parenthesized list"
	ErrMissingValue        = "expected a value"
	ErrMissingName         = "expected a name"
	ErrUnknownFKColumn     = "foreign key column %s is not declared in table %s"
)

// Diagnostic is a per-statement problem collected alongside the IR.
type Diagnostic struct {
	Statement int // -1 when the problem lies outside any statement
	Pos       token.Position
	Severity  core.Severity
	Err       error
}

// String formats the diagnostic as "line:col: severity: message".
func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s: %v", d.Pos, d.Severity, d.Err)
}

// MarshalJSON encodes the diagnostic with its message flattened.
func (d Diagnostic) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Statement int           `json:"statement"`
		Line      int           `json:"line"`
		Column    int           `json:"column"`
		Severity  core.Severity `json:"severity"`
		Message   string        `json:"message"`
	}{
		Statement: d.Statement,
		Line:      d.Pos.Line,
		Column:    d.Pos.Column,
		Severity:  d.Severity,
		Message:   d.Err.Error(),
	})
}
