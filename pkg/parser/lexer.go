package parser

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/leapstack-labs/leapddl/pkg/dialect"
	"github.com/leapstack-labs/leapddl/pkg/token"
)

const eof = -1

// Lexer tokenizes DDL input according to a dialect's quoting rules.
// Comments and whitespace are dropped; every other byte of the input belongs
// to exactly one token.
type Lexer struct {
	input   string
	pos     int  // current position in input
	readPos int  // reading position (after current char)
	ch      rune // current char under examination, eof past the end
	line    int  // current line number (1-based)
	col     int  // current column number (1-based)
	depth   int  // current paren nesting depth

	dialect *dialect.Dialect
	errors  []*LexError
}

// lexState is a resumable snapshot of the read cursor.
type lexState struct {
	pos, readPos int
	ch           rune
	line, col    int
}

// NewLexer creates a new Lexer for the given input.
func NewLexer(input string, d *dialect.Dialect) *Lexer {
	l := &Lexer{
		input:   input,
		line:    1,
		dialect: d,
	}
	l.readChar()
	return l
}

// Errors returns the lexical errors found so far.
func (l *Lexer) Errors() []*LexError {
	return l.errors
}

// readChar advances to the next character.
func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.col = 0
	}
	l.pos = l.readPos
	if l.pos >= len(l.input) {
		l.pos = len(l.input)
		l.ch = eof
		return
	}
	r, w := utf8.DecodeRuneInString(l.input[l.pos:])
	l.ch = r
	l.readPos = l.pos + w
	l.col++
}

// peekChar returns the next byte without advancing.
func (l *Lexer) peekChar() byte {
	if l.readPos >= len(l.input) {
		return 0
	}
	return l.input[l.readPos]
}

func (l *Lexer) save() lexState {
	return lexState{pos: l.pos, readPos: l.readPos, ch: l.ch, line: l.line, col: l.col}
}

func (l *Lexer) restore(s lexState) {
	l.pos, l.readPos, l.ch, l.line, l.col = s.pos, s.readPos, s.ch, s.line, s.col
}

// advanceTo reads forward until the cursor reaches offset.
func (l *Lexer) advanceTo(offset int) {
	for l.pos < offset && l.ch != eof {
		l.readChar()
	}
}

func (l *Lexer) currentPos() token.Position {
	return token.Position{Line: l.line, Column: l.col, Offset: l.pos}
}

func (l *Lexer) errorf(pos token.Position, msg, fragment string) {
	l.errors = append(l.errors, &LexError{Pos: pos, Message: msg, Fragment: fragment})
}

// NextToken returns the next token. At the end of input it returns an EOF
// token, repeatedly.
func (l *Lexer) NextToken() token.Token {
	l.skipWhitespaceAndComments()

	start := l.save()
	pos := l.currentPos()
	ascii := l.ch >= 0 && l.ch < utf8.RuneSelf

	switch {
	case l.ch == eof:
		return token.Token{Kind: token.EOF, Pos: pos, End: l.pos, Depth: l.depth}

	case l.ch == '(':
		tok := l.punct(pos, 1)
		l.depth++
		return tok

	case l.ch == ')':
		if l.depth > 0 {
			l.depth--
		}
		return l.punct(pos, 1)

	case ascii && l.dialect.IsStringQuote(byte(l.ch)):
		return l.readQuoted(start, byte(l.ch), token.STRING)

	case ascii && l.isIdentQuote():
		closeQuote, _ := l.dialect.IsIdentQuote(byte(l.ch))
		return l.readQuoted(start, closeQuote, token.QUOTED_IDENT)

	case l.ch == '$' && l.dialect.Lexing.DollarQuotes && l.dollarTag() != "":
		return l.readDollar(start)

	case isStringPrefix(l.ch) && l.peekChar() == '\'' && l.dialect.IsStringQuote('\''):
		// N'...', X'...', B'...', E'...'
		l.readChar()
		return l.readQuoted(start, '\'', token.STRING)

	case isDigit(l.ch) || (l.ch == '.' && isDigit(rune(l.peekChar()))):
		return l.readNumber(pos)

	case l.isWordStart():
		return l.readWord(pos)

	case ascii && strings.ContainsRune(punctuation, l.ch):
		if len(l.input) >= l.pos+2 && isOperator2(l.input[l.pos:l.pos+2]) {
			return l.punct(pos, 2)
		}
		return l.punct(pos, 1)

	default:
		fragment := string(l.ch)
		l.errorf(pos, ErrIllegalCharacter, fragment)
		l.readChar()
		return token.Token{Kind: token.ILLEGAL, Literal: fragment, Pos: pos, End: l.pos, Depth: l.depth}
	}
}

// punctuation lists the single characters lexed as PUNCT.
const punctuation = "(),;.=<>+-*/%|&^~!?:[]{}@$"

func isOperator2(s string) bool {
	switch s {
	case "::", "<=", ">=", "<>", "!=", "||", "=>", "->":
		return true
	}
	return false
}

func (l *Lexer) punct(pos token.Position, n int) token.Token {
	depth := l.depth
	for range n {
		l.readChar()
	}
	return token.Token{Kind: token.PUNCT, Literal: l.input[pos.Offset:l.pos], Pos: pos, End: l.pos, Depth: depth}
}

func (l *Lexer) isIdentQuote() bool {
	_, ok := l.dialect.IsIdentQuote(byte(l.ch))
	return ok
}

func (l *Lexer) isWordStart() bool {
	switch {
	case unicode.IsLetter(l.ch), l.ch == '_':
		return true
	case l.ch == '#' && !l.dialect.Lexing.HashComments:
		// SQL Server temporary tables: #tmp, ##global
		return true
	}
	return false
}

// skipWhitespaceAndComments skips whitespace, line comments and block comments.
func (l *Lexer) skipWhitespaceAndComments() {
	for {
		for l.ch != eof && unicode.IsSpace(l.ch) {
			l.readChar()
		}

		switch {
		case l.ch == '-' && l.peekChar() == '-',
			l.ch == '#' && l.dialect.Lexing.HashComments:
			for l.ch != '\n' && l.ch != eof {
				l.readChar()
			}
		case l.ch == '/' && l.peekChar() == '*':
			l.skipBlockComment()
		default:
			return
		}
	}
}

func (l *Lexer) skipBlockComment() {
	pos := l.currentPos()
	l.readChar() // skip '/'
	l.readChar() // skip '*'

	for l.ch != eof {
		if l.ch == '*' && l.peekChar() == '/' {
			l.readChar() // skip '*'
			l.readChar() // skip '/'
			return
		}
		l.readChar()
	}
	l.errorf(pos, ErrUnterminatedComment, lineFragment(l.input, pos.Offset))
}

// readQuoted reads a quoted string or identifier, delimiters included.
// A doubled close delimiter is an escaped delimiter; a backslash escapes the
// next character in strings when the dialect allows it.
func (l *Lexer) readQuoted(start lexState, closeQuote byte, kind token.Kind) token.Token {
	pos := token.Position{Line: start.line, Column: start.col, Offset: start.pos}
	l.readChar() // skip opening quote

	for {
		switch {
		case l.ch == eof:
			msg := ErrUnterminatedString
			if kind == token.QUOTED_IDENT {
				msg = ErrUnterminatedIdent
			}
			return l.unterminated(start, msg)

		case l.ch == rune(closeQuote):
			if l.peekChar() == closeQuote {
				l.readChar()
				l.readChar()
				continue
			}
			l.readChar() // skip closing quote
			return token.Token{Kind: kind, Literal: l.input[pos.Offset:l.pos], Pos: pos, End: l.pos, Depth: l.depth}

		case l.ch == '\\' && kind == token.STRING && l.dialect.Lexing.BackslashEscapes:
			l.readChar()
			if l.ch != eof {
				l.readChar()
			}

		default:
			l.readChar()
		}
	}
}

// unterminated records a LexError for a quote opened at start and resumes
// lexing at the next ';' or the end of that line, whichever comes first. The
// skipped text becomes one ILLEGAL token so the enclosing statement is marked
// bad, and open parens are closed so the following statements split normally.
func (l *Lexer) unterminated(start lexState, msg string) token.Token {
	pos := token.Position{Line: start.line, Column: start.col, Offset: start.pos}
	fragment := lineFragment(l.input, start.pos)
	if i := strings.IndexByte(fragment, ';'); i > 0 {
		fragment = fragment[:i]
	}
	l.errorf(pos, msg, fragment)

	l.restore(start)
	l.advanceTo(start.pos + len(fragment))
	l.depth = 0
	return token.Token{Kind: token.ILLEGAL, Literal: fragment, Pos: pos, End: l.pos, Depth: 0}
}

// dollarTag returns the $tag$ (or $$) delimiter starting at the cursor, or "".
func (l *Lexer) dollarTag() string {
	rest := l.input[l.pos:]
	for i := 1; i < len(rest); i++ {
		c := rest[i]
		switch {
		case c == '$':
			return rest[:i+1]
		case c == '_' || isASCIILetter(c) || (i > 1 && c >= '0' && c <= '9'):
		default:
			return ""
		}
	}
	return ""
}

// readDollar reads a PostgreSQL dollar-quoted string as one STRING token.
func (l *Lexer) readDollar(start lexState) token.Token {
	pos := token.Position{Line: start.line, Column: start.col, Offset: start.pos}
	tag := l.dollarTag()
	bodyStart := l.pos + len(tag)
	idx := strings.Index(l.input[bodyStart:], tag)
	if idx < 0 {
		return l.unterminated(start, ErrUnterminatedString)
	}
	l.advanceTo(bodyStart + idx + len(tag))
	return token.Token{Kind: token.STRING, Literal: l.input[pos.Offset:l.pos], Pos: pos, End: l.pos, Depth: l.depth}
}

// readWord reads an unquoted identifier or keyword.
func (l *Lexer) readWord(pos token.Position) token.Token {
	for l.ch != eof && (unicode.IsLetter(l.ch) || unicode.IsDigit(l.ch) || strings.ContainsRune("_$#@", l.ch)) {
		l.readChar()
	}
	lit := l.input[pos.Offset:l.pos]
	kind := token.IDENT
	if token.IsKeyword(lit) {
		kind = token.KEYWORD
	}
	return token.Token{Kind: kind, Literal: lit, Pos: pos, End: l.pos, Depth: l.depth}
}

// readNumber reads a numeric literal (integer, decimal, hex or scientific).
func (l *Lexer) readNumber(pos token.Position) token.Token {
	if l.ch == '0' && (l.peekChar() == 'x' || l.peekChar() == 'X') {
		l.readChar()
		l.readChar()
		for isHexDigit(l.ch) {
			l.readChar()
		}
		return l.number(pos)
	}

	for isDigit(l.ch) {
		l.readChar()
	}

	if l.ch == '.' {
		l.readChar()
		for isDigit(l.ch) {
			l.readChar()
		}
	}

	// Exponent part (e.g., 1e10, 1E-5), only when digits follow.
	if l.ch == 'e' || l.ch == 'E' {
		rest := l.input[l.readPos:]
		if len(rest) > 0 && (rest[0] == '+' || rest[0] == '-') {
			rest = rest[1:]
		}
		if len(rest) > 0 && rest[0] >= '0' && rest[0] <= '9' {
			l.readChar() // skip 'e' or 'E'
			if l.ch == '+' || l.ch == '-' {
				l.readChar()
			}
			for isDigit(l.ch) {
				l.readChar()
			}
		}
	}

	return l.number(pos)
}

func (l *Lexer) number(pos token.Position) token.Token {
	return token.Token{Kind: token.NUMBER, Literal: l.input[pos.Offset:l.pos], Pos: pos, End: l.pos, Depth: l.depth}
}

// lineFragment returns the text from offset to the end of its line.
func lineFragment(input string, offset int) string {
	rest := input[offset:]
	if i := strings.IndexByte(rest, '\n'); i >= 0 {
		return strings.TrimRight(rest[:i], "\r")
	}
	return rest
}

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}

func isHexDigit(ch rune) bool {
	return isDigit(ch) || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}

func isASCIILetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isStringPrefix(ch rune) bool {
	switch ch {
	case 'N', 'n', 'X', 'x', 'B', 'b', 'E', 'e':
		return true
	}
	return false
}

// Tokenize returns all tokens of input, without the trailing EOF token, and
// the lexical errors met along the way. It never stops at an error.
func Tokenize(input string, d *dialect.Dialect) ([]token.Token, []*LexError) {
	l := NewLexer(input, d)
	var tokens []token.Token
	for {
		tok := l.NextToken()
		if tok.Kind == token.EOF {
			break
		}
		tokens = append(tokens, tok)
	}
	return tokens, l.Errors()
}
