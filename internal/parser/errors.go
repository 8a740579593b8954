package parser

import (
	"fmt"

	"github.com/roach88/horn/internal/lexer"
)

// ErrorCode categorizes parse errors.
type ErrorCode string

const (
	// ErrCodeUnexpectedToken indicates the token stream violated the
	// grammar.
	ErrCodeUnexpectedToken ErrorCode = "UNEXPECTED_TOKEN"

	// ErrCodeEmptyArgumentList indicates a compound with no arguments,
	// e.g. foo().
	ErrCodeEmptyArgumentList ErrorCode = "EMPTY_ARGUMENT_LIST"

	// ErrCodeTrailingInput indicates tokens other than end of input
	// remained after a complete top-level item.
	ErrCodeTrailingInput ErrorCode = "TRAILING_INPUT"
)

// Error is a structured parse error. Every malformed token sequence
// produces one of these; the parser never panics on lexer output.
type Error struct {
	Code ErrorCode

	// Expected describes what the grammar allowed at this point. Set for
	// UNEXPECTED_TOKEN.
	Expected string

	// Found is the token actually seen. Set for UNEXPECTED_TOKEN and
	// TRAILING_INPUT.
	Found lexer.Token
}

func (e *Error) Error() string {
	switch e.Code {
	case ErrCodeUnexpectedToken:
		return fmt.Sprintf("expected %s, found %s", e.Expected, e.Found)
	case ErrCodeEmptyArgumentList:
		return "empty argument list: compound terms need at least one argument"
	case ErrCodeTrailingInput:
		return fmt.Sprintf("trailing input after complete term: %s", e.Found)
	}
	return string(e.Code)
}

func unexpected(expected string, found lexer.Token) *Error {
	return &Error{Code: ErrCodeUnexpectedToken, Expected: expected, Found: found}
}
