package parser

import (
	"fmt"

	lerrors "github.com/KimNorgaard/go-lenspath/errors"
	"github.com/KimNorgaard/go-lenspath/internal/lexer"
	"github.com/KimNorgaard/go-lenspath/internal/token"
	"github.com/KimNorgaard/go-lenspath/lens"
)

type segmentLensFn func(tok token.Token) (lens.Lens, bool)

// Parser compiles the token stream of a path into a single lens.
type Parser struct {
	l      *lexer.Lexer
	errors lerrors.ParseErrors

	curToken token.Token
	segments int

	segmentLensFns map[token.Type]segmentLensFn
}

// New creates a new parser.
func New(l *lexer.Lexer) *Parser {
	p := &Parser{l: l}

	p.segmentLensFns = make(map[token.Type]segmentLensFn)
	p.registerSegment(token.PROP, p.propLens)
	p.registerSegment(token.INDEX, p.indexLens)
	p.registerSegment(token.MAPPED, p.mappedLens)
	p.registerSegment(token.MAPPED_VALUES, p.mappedValuesLens)
	p.registerSegment(token.ILLEGAL, p.illegal)

	p.nextToken()

	return p
}

// Errors returns every error encountered while parsing.
func (p *Parser) Errors() lerrors.ParseErrors {
	return p.errors
}

// Segments returns the number of segments compiled by Parse.
func (p *Parser) Segments() int {
	return p.segments
}

// Parse folds the segments of the path, left to right, onto the identity
// lens. The returned lens must not be used when Errors is non-empty.
func (p *Parser) Parse() lens.Lens {
	acc := lens.Lens(lens.Identity)
	for p.curToken.Type != token.EOF {
		fn := p.segmentLensFns[p.curToken.Type]
		if fn == nil {
			p.unsupportedTokenError(p.curToken)
		} else if l, ok := fn(p.curToken); ok {
			acc = lens.Compose(acc, l)
			p.segments++
		}
		p.nextToken()
	}
	return acc
}

func (p *Parser) nextToken() {
	p.curToken = p.l.NextToken()
}

func (p *Parser) registerSegment(typ token.Type, fn segmentLensFn) {
	p.segmentLensFns[typ] = fn
}

func (p *Parser) propLens(tok token.Token) (lens.Lens, bool) {
	return lens.Prop(tok.Literal), true
}

func (p *Parser) indexLens(tok token.Token) (lens.Lens, bool) {
	return lens.Index(tok.Index), true
}

func (p *Parser) mappedLens(token.Token) (lens.Lens, bool) {
	return lens.Mapped, true
}

func (p *Parser) mappedValuesLens(token.Token) (lens.Lens, bool) {
	return lens.MappedValues, true
}

func (p *Parser) illegal(tok token.Token) (lens.Lens, bool) {
	p.errors = append(p.errors, lerrors.ParseError{Message: tok.Literal, Offset: tok.Offset})
	return nil, false
}

func (p *Parser) unsupportedTokenError(tok token.Token) {
	msg := fmt.Sprintf("token with type %s is not supported", tok.Type)
	p.errors = append(p.errors, lerrors.ParseError{Message: msg, Offset: tok.Offset})
}
