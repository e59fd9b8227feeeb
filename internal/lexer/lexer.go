package lexer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/KimNorgaard/go-lenspath/internal/token"
)

// Lexer splits a path into segment tokens in a single pass.
type Lexer struct {
	input        string
	position     int  // current position in input (points to current char)
	readPosition int  // current reading position in input (after current char)
	ch           byte // current char under examination
	started      bool // a segment has been emitted, so a '.' may follow
}

// New creates and returns a new Lexer.
func New(path string) *Lexer {
	l := &Lexer{input: path}
	l.readChar()
	return l
}

// Tokenize returns every token of path, without the trailing EOF.
func Tokenize(path string) []token.Token {
	l := New(path)
	var toks []token.Token
	for {
		tok := l.NextToken()
		if tok.Type == token.EOF {
			return toks
		}
		toks = append(toks, tok)
	}
}

func (l *Lexer) readChar() {
	if l.readPosition >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.readPosition]
	}
	l.position = l.readPosition
	l.readPosition++
}

func (l *Lexer) skip(n int) {
	for range n {
		l.readChar()
	}
}

func (l *Lexer) atEOF() bool {
	return l.position >= len(l.input)
}

// NextToken scans the input and returns the next token. Malformed input
// yields ILLEGAL tokens whose literal describes the problem; scanning always
// makes progress, so repeated calls reach EOF.
func (l *Lexer) NextToken() token.Token {
	tok := token.Token{Offset: l.position}
	if l.atEOF() {
		tok.Type = token.EOF
		return tok
	}

	switch l.ch {
	case '.':
		if !l.started {
			l.readChar()
			return l.illegal(tok, "path cannot start with '.'")
		}
		l.readChar()
		if l.atEOF() || isSeparator(l.ch) {
			return l.illegal(tok, "empty segment")
		}
		tok.Offset = l.position
		return l.segment(tok)
	case '[':
		return l.readBracket(tok)
	case '{':
		return l.readBrace(tok)
	case ']', '}':
		c := l.ch
		l.readChar()
		return l.illegal(tok, fmt.Sprintf("unexpected '%c'", c))
	default:
		if l.started {
			seg := l.readSegment()
			return l.illegal(tok, fmt.Sprintf("missing '.' before %q", seg))
		}
		return l.segment(tok)
	}
}

// segment reads a bare segment starting at the current char.
func (l *Lexer) segment(tok token.Token) token.Token {
	seg := l.readSegment()
	l.started = true
	tok.Literal = seg
	tok.Type = token.LookupSegment(seg)
	switch tok.Type {
	case token.INDEX:
		tok.Index, _ = strconv.Atoi(seg)
	case token.ILLEGAL:
		tok.Literal = fmt.Sprintf("index %s out of range", seg)
	}
	return tok
}

func (l *Lexer) readSegment() string {
	start := l.position
	for !l.atEOF() && !isSeparator(l.ch) {
		l.readChar()
	}
	return l.input[start:l.position]
}

// readBracket handles "[..]", "[N]", ["name"] and ['name'].
func (l *Lexer) readBracket(tok token.Token) token.Token {
	l.started = true
	rest := l.input[l.position:]

	if strings.HasPrefix(rest, "[..]") {
		l.skip(4)
		tok.Type = token.MAPPED
		tok.Literal = "[..]"
		return tok
	}

	l.readChar() // consume '['
	switch {
	case isDigit(l.ch):
		start := l.position
		for isDigit(l.ch) && !l.atEOF() {
			l.readChar()
		}
		digits := l.input[start:l.position]
		if l.atEOF() || l.ch != ']' {
			l.skipPast(']')
			return l.illegal(tok, "invalid index in brackets")
		}
		l.readChar() // consume ']'
		n, err := strconv.Atoi(digits)
		if err != nil {
			return l.illegal(tok, fmt.Sprintf("index %s out of range", digits))
		}
		tok.Type = token.INDEX
		tok.Literal = digits
		tok.Index = n
		return tok
	case l.ch == '"' || l.ch == '\'':
		name, ok := l.readQuoted()
		if !ok {
			return l.illegal(tok, "unterminated quoted name")
		}
		if l.atEOF() || l.ch != ']' {
			l.skipPast(']')
			return l.illegal(tok, "expected ']' after quoted name")
		}
		l.readChar() // consume ']'
		tok.Type = token.PROP
		tok.Literal = name
		return tok
	}

	l.skipPast(']')
	return l.illegal(tok, "invalid bracket content")
}

// readQuoted reads a quoted name starting at the opening quote. A backslash
// escapes the next byte.
func (l *Lexer) readQuoted() (string, bool) {
	quote := l.ch
	l.readChar() // consume opening quote
	var b strings.Builder
	for !l.atEOF() {
		switch l.ch {
		case quote:
			l.readChar() // consume closing quote
			return b.String(), true
		case '\\':
			l.readChar()
			if l.atEOF() {
				return "", false
			}
		}
		b.WriteByte(l.ch)
		l.readChar()
	}
	return "", false
}

func (l *Lexer) readBrace(tok token.Token) token.Token {
	l.started = true
	if strings.HasPrefix(l.input[l.position:], "{..}") {
		l.skip(4)
		tok.Type = token.MAPPED_VALUES
		tok.Literal = "{..}"
		return tok
	}
	l.readChar() // consume '{'
	l.skipPast('}')
	return l.illegal(tok, "invalid brace content, expected {..}")
}

// skipPast advances beyond the next occurrence of c, or to EOF.
func (l *Lexer) skipPast(c byte) {
	for !l.atEOF() {
		done := l.ch == c
		l.readChar()
		if done {
			return
		}
	}
}

func (l *Lexer) illegal(tok token.Token, msg string) token.Token {
	l.started = true
	tok.Type = token.ILLEGAL
	tok.Literal = msg
	return tok
}

func isSeparator(ch byte) bool {
	return ch == '.' || ch == '[' || ch == ']' || ch == '{' || ch == '}'
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}
