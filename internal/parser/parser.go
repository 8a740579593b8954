// Package parser builds term-model values from the token stream.
//
// The grammar is recursive descent with one token of lookahead, no left
// recursion and no backtracking:
//
//	top_level := term ('?')?      // '?' present => Query, absent => Declaration
//	term      := Identifier ( '(' arglist ')' )?
//	           | Variable
//	arglist   := term (',' term)*
//
// Parsing is total over any token sequence the lexer produces: every
// malformed input yields a structured error, never a partial term.
package parser

import (
	"github.com/roach88/horn/internal/lexer"
	"github.com/roach88/horn/internal/term"
)

// Item is a sealed interface representing one parsed top-level item.
// Only Declaration and Query implement it.
type Item interface {
	item() // Marker method - seals interface to this package
}

// Declaration is a bare term: a fact to register in the knowledge base.
type Declaration struct {
	Term term.Term
}

func (Declaration) item() {}

// Query is a term terminated by '?' in source, to be submitted for
// resolution.
type Query struct {
	Term term.Term
}

func (Query) item() {}

// ParseTopLevel lexes and parses src into exactly one top-level item.
// Lexical errors propagate unchanged as *lexer.Error; grammar violations
// surface as *Error.
func ParseTopLevel(src string) (Item, error) {
	p := &parser{lx: lexer.New(src)}
	if err := p.advance(); err != nil {
		return nil, err
	}

	t, err := p.parseTerm()
	if err != nil {
		return nil, err
	}

	isQuery := false
	if p.tok.Kind == lexer.QueryMark {
		isQuery = true
		if err := p.advance(); err != nil {
			return nil, err
		}
	}

	if p.tok.Kind != lexer.EndOfInput {
		return nil, &Error{Code: ErrCodeTrailingInput, Found: p.tok}
	}

	if isQuery {
		return Query{Term: t}, nil
	}
	return Declaration{Term: t}, nil
}

// ParseTerm parses src as a standalone term with no query mark or
// trailing input.
func ParseTerm(src string) (term.Term, error) {
	item, err := ParseTopLevel(src)
	if err != nil {
		return nil, err
	}
	switch it := item.(type) {
	case Declaration:
		return it.Term, nil
	case Query:
		return nil, unexpected("end of input", lexer.Token{Kind: lexer.QueryMark})
	}
	return nil, nil // unreachable: Item is sealed
}

type parser struct {
	lx  *lexer.Lexer
	tok lexer.Token // one token of lookahead
}

func (p *parser) advance() error {
	tok, err := p.lx.Next()
	if err != nil {
		return err
	}
	p.tok = tok
	return nil
}

// parseTerm parses one term. The lookahead token decides the variant:
// Variable token => Variable; Identifier followed by '(' => Compound;
// bare Identifier => Atom.
func (p *parser) parseTerm() (term.Term, error) {
	switch p.tok.Kind {
	case lexer.Variable:
		v := term.NewVariable(p.tok.Text)
		if err := p.advance(); err != nil {
			return nil, err
		}
		return v, nil

	case lexer.Identifier:
		name := p.tok.Text
		if err := p.advance(); err != nil {
			return nil, err
		}
		if p.tok.Kind != lexer.OpenParen {
			return term.NewAtom(name), nil
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		args, err := p.parseArgList()
		if err != nil {
			return nil, err
		}
		return term.NewCompound(name, args...), nil
	}

	return nil, unexpected("identifier or variable", p.tok)
}

// parseArgList parses a non-empty, comma-separated argument list and
// consumes the closing ')'.
func (p *parser) parseArgList() ([]term.Term, error) {
	if p.tok.Kind == lexer.CloseParen {
		return nil, &Error{Code: ErrCodeEmptyArgumentList}
	}

	var args []term.Term
	for {
		arg, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)

		switch p.tok.Kind {
		case lexer.Comma:
			if err := p.advance(); err != nil {
				return nil, err
			}
		case lexer.CloseParen:
			if err := p.advance(); err != nil {
				return nil, err
			}
			return args, nil
		default:
			return nil, unexpected("')' or ','", p.tok)
		}
	}
}
