package lexer

import "fmt"

// Kind identifies a token class.
type Kind int

const (
	// Identifier is a letter or '_' followed by letters, digits, or '_'.
	Identifier Kind = iota

	// Variable is '?' immediately followed by an identifier run. The
	// stored text excludes the '?'.
	Variable

	// OpenParen is '('.
	OpenParen

	// CloseParen is ')'.
	CloseParen

	// Comma is ','.
	Comma

	// QueryMark is a '?' that does not start a variable, marking the end
	// of a query.
	QueryMark

	// EndOfInput is the terminal token; every token sequence ends with
	// exactly one.
	EndOfInput
)

// String returns a human-readable name for the kind, used in error
// messages.
func (k Kind) String() string {
	switch k {
	case Identifier:
		return "identifier"
	case Variable:
		return "variable"
	case OpenParen:
		return "'('"
	case CloseParen:
		return "')'"
	case Comma:
		return "','"
	case QueryMark:
		return "'?'"
	case EndOfInput:
		return "end of input"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Token is one lexical unit of source text. Text is set only for
// Identifier and Variable kinds. Pos is the byte offset of the token's
// first character in the source.
type Token struct {
	Kind Kind
	Text string
	Pos  int
}

// String renders the token for diagnostics.
func (t Token) String() string {
	switch t.Kind {
	case Identifier:
		return fmt.Sprintf("identifier %q", t.Text)
	case Variable:
		return fmt.Sprintf("variable ?%s", t.Text)
	default:
		return t.Kind.String()
	}
}
