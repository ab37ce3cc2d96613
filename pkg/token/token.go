// Package token defines the lexical units produced by the DDL tokenizer.
//
// Tokens keep their raw source text (including quote delimiters) and the byte
// span they occupy, so extractors can recover verbatim source slices for
// captured expressions.
package token

import (
	"fmt"
	"strings"
)

// Kind represents the lexical kind of a token.
type Kind int

//nolint:revive // ALL_CAPS names follow SQL token conventions
const (
	// Special tokens
	EOF Kind = iota
	ILLEGAL

	// Lexical classes
	IDENT        // unquoted identifier that is not a known keyword
	QUOTED_IDENT // `name`, "name", [name]
	STRING       // 'text', $$text$$
	NUMBER       // 123, 45.67, 1e10
	PUNCT        // ( ) , ; . = :: and operators
	KEYWORD      // unquoted word found in the keyword table
)

var kindNames = map[Kind]string{
	EOF:          "EOF",
	ILLEGAL:      "ILLEGAL",
	IDENT:        "IDENT",
	QUOTED_IDENT: "QUOTED_IDENT",
	STRING:       "STRING",
	NUMBER:       "NUMBER",
	PUNCT:        "PUNCT",
	KEYWORD:      "KEYWORD",
}

// String returns a human-readable representation of the token kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("KIND(%d)", k)
}

// keywords is the set of reserved DDL words. Matching is case-insensitive;
// entries are stored upper-case.
var keywords = map[string]struct{}{}

func init() {
	for _, kw := range []string{
		"ACTION", "ADD", "ALTER", "ALWAYS", "AS", "ASC", "AUTHORIZATION",
		"AUTO_INCREMENT", "AUTOINCREMENT", "BY", "CASCADE", "CHANGE",
		"CHARACTER", "CHARSET", "CHECK", "COLLATE", "COLUMN", "COMMENT",
		"CONSTRAINT", "CREATE", "CURRENT_DATE", "CURRENT_TIME",
		"CURRENT_TIMESTAMP", "DATABASE", "DEFAULT", "DEFERRABLE", "DEFERRED",
		"DELETE", "DESC", "DOMAIN", "DROP", "ENGINE", "ENUM", "EXISTS",
		"FALSE", "FIRST", "FOREIGN", "FULLTEXT", "GENERATED", "GLOBAL",
		"IDENTITY", "IF", "IMMEDIATE", "INDEX", "INITIALLY", "KEY", "LAST",
		"LOCAL", "MATCH", "MODIFY", "NO", "NOT", "NULL", "NULLS", "ON",
		"ONLY", "OR", "PARTITION", "PARTITIONED", "PRIMARY", "REFERENCES",
		"RENAME", "REPLACE", "RESTRICT", "SCHEMA", "SEQUENCE", "SET",
		"SPATIAL", "STORED", "TABLE", "TABLESPACE", "TEMP", "TEMPORARY",
		"TO", "TRUE", "TYPE", "UNIQUE", "UNLOGGED", "UPDATE", "USING",
		"VIRTUAL", "WITH", "WITHOUT",
	} {
		keywords[kw] = struct{}{}
	}
}

// IsKeyword reports whether word (any case) is a reserved DDL keyword.
func IsKeyword(word string) bool {
	_, ok := keywords[strings.ToUpper(word)]
	return ok
}

// Token represents a lexical token with position information.
type Token struct {
	Kind    Kind
	Literal string   // raw source text, delimiters included
	Pos     Position // start of the token
	End     int      // byte offset just past the token
	Depth   int      // paren depth; '(' and its matching ')' share the outer depth
}

// Upper returns the literal upper-cased. Used for keyword comparison.
func (t Token) Upper() string {
	return strings.ToUpper(t.Literal)
}

// IsPunct reports whether the token is the given punctuation.
func (t Token) IsPunct(p string) bool {
	return t.Kind == PUNCT && t.Literal == p
}

// IsWord reports whether the token is an unquoted word (keyword or identifier).
func (t Token) IsWord() bool {
	return t.Kind == KEYWORD || t.Kind == IDENT
}

// IsQuoted reports whether the token carries quote delimiters.
func (t Token) IsQuoted() bool {
	return t.Kind == QUOTED_IDENT || t.Kind == STRING
}

// Unquote strips identifier quoting (`x`, "x", [x]) from a literal.
// Doubled closing quotes inside the name are collapsed. Other literals are
// returned unchanged.
func Unquote(lit string) string {
	if len(lit) < 2 {
		return lit
	}
	open, closing := lit[0], lit[len(lit)-1]
	switch {
	case open == '`' && closing == '`',
		open == '"' && closing == '"':
		inner := lit[1 : len(lit)-1]
		return strings.ReplaceAll(inner, string([]byte{open, open}), string(open))
	case open == '[' && closing == ']':
		return strings.ReplaceAll(lit[1:len(lit)-1], "]]", "]")
	}
	return lit
}
