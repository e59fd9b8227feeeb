package formatter

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/KimNorgaard/go-lenspath/internal/token"
)

// Formatter writes a token stream back out as a canonical path.
//
// Names that look like identifiers are written bare, any other name is
// quoted, and every index uses brackets, so "friends.0['city']" formats as
// "friends[0].city".
type Formatter struct {
	w     io.Writer
	first bool
}

// New returns a new formatter that writes to w.
func New(w io.Writer) *Formatter {
	return &Formatter{w: w, first: true}
}

// Format writes the canonical path of toks. ILLEGAL and unknown tokens are
// an error.
func (f *Formatter) Format(toks []token.Token) error {
	for _, tok := range toks {
		if err := f.writeToken(tok); err != nil {
			return err
		}
		f.first = false
	}
	return nil
}

func (f *Formatter) writeToken(tok token.Token) error {
	switch tok.Type {
	case token.PROP:
		if !isBareName(tok.Literal) {
			return f.write(`["` + escape(tok.Literal) + `"]`)
		}
		if f.first {
			return f.write(tok.Literal)
		}
		return f.write("." + tok.Literal)
	case token.INDEX:
		return f.write("[" + strconv.Itoa(tok.Index) + "]")
	case token.MAPPED, token.MAPPED_VALUES:
		return f.write(string(tok.Type))
	case token.ILLEGAL:
		return fmt.Errorf("cannot format illegal segment at offset %d: %s", tok.Offset, tok.Literal)
	}
	return fmt.Errorf("cannot format token of type %s", tok.Type)
}

func (f *Formatter) write(s string) error {
	_, err := io.WriteString(f.w, s)
	return err
}

func isBareName(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '_' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z'):
		case i > 0 && (c == '-' || ('0' <= c && c <= '9')):
		default:
			return false
		}
	}
	return true
}

func escape(s string) string {
	if !strings.ContainsAny(s, `"\`) {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '"' || s[i] == '\\' {
			b.WriteByte('\\')
		}
		b.WriteByte(s[i])
	}
	return b.String()
}
