package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/roach88/horn/internal/engine"
	"github.com/roach88/horn/internal/parser"
)

// Error codes used in CLI error output.
const (
	ErrCodeGeneric   = "E001" // Generic/unknown error
	ErrCodeNotFound  = "E002" // Path not found
	ErrCodeLex       = "E101" // Lexical error in input
	ErrCodeParse     = "E102" // Syntax error in input
	ErrCodeNotAQuery = "E103" // Expected a query, got a declaration
	ErrCodeNotAFact  = "E104" // Expected a declaration, got a query
	ErrCodeEngine    = "E201" // Engine rejected a declaration or query
	ErrCodeDatabase  = "E301" // Journal database error
)

// normalizeInput brings a line of UTF-8 source to NFC before lexing, so
// identifiers compare by exact text regardless of how the terminal
// composed them.
func normalizeInput(s string) string {
	return norm.NFC.String(s)
}

// LoadFactsFile reads a facts file: one declaration per line, blank
// lines skipped. Lines are NFC-normalized but not parsed here.
func LoadFactsFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open facts file: %w", err)
	}
	defer f.Close()

	var lines []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		lines = append(lines, normalizeInput(line))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read facts file: %w", err)
	}
	return lines, nil
}

// DeclareAll parses each line as a declaration and registers it with the
// engine. Queries are rejected: a facts file or journal holds
// declarations only. Returns the number of facts declared.
func DeclareAll(eng engine.Engine, lines []string) (int, error) {
	for i, line := range lines {
		item, err := parser.ParseTopLevel(line)
		if err != nil {
			return i, fmt.Errorf("line %d: %w", i+1, err)
		}
		decl, ok := item.(parser.Declaration)
		if !ok {
			return i, fmt.Errorf("line %d: %q is a query, not a declaration", i+1, line)
		}
		if err := eng.Declare(decl.Term); err != nil {
			return i, fmt.Errorf("line %d: %w", i+1, err)
		}
	}
	return len(lines), nil
}
