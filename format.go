package lenspath

import (
	"fmt"
	"strings"

	"github.com/KimNorgaard/go-lenspath/internal/formatter"
	"github.com/KimNorgaard/go-lenspath/internal/lexer"
	"github.com/KimNorgaard/go-lenspath/internal/token"
)

// Format returns the canonical spelling of path: indices in brackets,
// identifier-like names bare and every other name quoted. Paths that differ
// only in spelling, such as "friends.0.city" and "friends[0]['city']",
// format identically.
func Format(path string) (string, error) {
	toks := lexer.Tokenize(path)

	var errs ParseErrors
	for _, tok := range toks {
		if tok.Type == token.ILLEGAL {
			errs = append(errs, ParseError{Message: tok.Literal, Offset: tok.Offset})
		}
	}
	if len(errs) > 0 {
		return "", errs
	}

	var b strings.Builder
	if err := formatter.New(&b).Format(toks); err != nil {
		return "", fmt.Errorf("lenspath: %w", err)
	}
	return b.String(), nil
}
