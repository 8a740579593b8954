// Package lexer converts raw source text into a finite stream of tokens.
//
// The grammar has seven token kinds and no literals, strings, numbers, or
// comments. Lexing is side-effect-free: tokens reference slices of the
// source text and the lexer holds no state beyond its scan position. A
// Lexer is not resumable mid-stream; restart by constructing a new one
// over the same text.
package lexer

import (
	"fmt"
	"unicode"
	"unicode/utf8"
)

// Error reports a character the grammar cannot accept. Pos is the byte
// offset of the offending rune in the source.
type Error struct {
	Pos  int
	Char rune
}

func (e *Error) Error() string {
	return fmt.Sprintf("unexpected character %q at offset %d", e.Char, e.Pos)
}

// Lexer is a pull-based tokenizer over a single input string.
type Lexer struct {
	src string
	pos int // byte offset of next unread rune
}

// New creates a Lexer over src.
func New(src string) *Lexer {
	return &Lexer{src: src}
}

// Tokenize lexes the whole input. On any lexical error the input is
// rejected wholesale: no partial token slice is returned. A successful
// result is finite and ends with exactly one EndOfInput token.
func Tokenize(src string) ([]Token, error) {
	lx := New(src)
	var tokens []Token
	for {
		tok, err := lx.Next()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Kind == EndOfInput {
			return tokens, nil
		}
	}
}

// Next returns the next token. After the EndOfInput token has been
// returned once, every further call returns EndOfInput again.
func (l *Lexer) Next() (Token, error) {
	l.skipSpace()

	if l.pos >= len(l.src) {
		return Token{Kind: EndOfInput, Pos: l.pos}, nil
	}

	start := l.pos
	r, size := utf8.DecodeRuneInString(l.src[l.pos:])

	switch {
	case r == '(':
		l.pos += size
		return Token{Kind: OpenParen, Pos: start}, nil
	case r == ')':
		l.pos += size
		return Token{Kind: CloseParen, Pos: start}, nil
	case r == ',':
		l.pos += size
		return Token{Kind: Comma, Pos: start}, nil
	case r == '?':
		l.pos += size
		// Positional disambiguation: '?' directly before an identifier
		// head starts a Variable; '?' anywhere else is the query mark.
		if next, _ := utf8.DecodeRuneInString(l.src[l.pos:]); isIdentHead(next) {
			name := l.scanIdent()
			return Token{Kind: Variable, Text: name, Pos: start}, nil
		}
		return Token{Kind: QueryMark, Pos: start}, nil
	case isIdentHead(r):
		name := l.scanIdent()
		return Token{Kind: Identifier, Text: name, Pos: start}, nil
	}

	return Token{}, &Error{Pos: start, Char: r}
}

// scanIdent consumes an identifier run starting at the current position.
// The caller has already checked that the first rune is a valid head.
func (l *Lexer) scanIdent() string {
	start := l.pos
	for l.pos < len(l.src) {
		r, size := utf8.DecodeRuneInString(l.src[l.pos:])
		if !isIdentTail(r) {
			break
		}
		l.pos += size
	}
	return l.src[start:l.pos]
}

func (l *Lexer) skipSpace() {
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		if c != ' ' && c != '\t' && c != '\n' && c != '\r' && c != '\v' && c != '\f' {
			return
		}
		l.pos++
	}
}

func isIdentHead(r rune) bool {
	return unicode.IsLetter(r) || r == '_'
}

func isIdentTail(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}
