// Package testutil provides shared helpers for tests across packages.
//
// The helpers wrap the parser so tests can state fixtures as source text
// instead of hand-assembled term trees. They fail the test immediately on
// malformed input, so a typo in a fixture reads as a test bug, not a
// behavior under test.
package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/horn/internal/parser"
	"github.com/roach88/horn/internal/term"
)

// MustQuery parses src and requires it to be a query.
//
// Fails the test if src does not lex, parse, or end in '?'.
func MustQuery(t *testing.T, src string) parser.Query {
	t.Helper()
	item, err := parser.ParseTopLevel(src)
	require.NoError(t, err, "fixture %q must parse", src)
	q, ok := item.(parser.Query)
	require.True(t, ok, "fixture %q must be a query", src)
	return q
}

// MustDeclaration parses src and requires it to be a declaration.
func MustDeclaration(t *testing.T, src string) parser.Declaration {
	t.Helper()
	item, err := parser.ParseTopLevel(src)
	require.NoError(t, err, "fixture %q must parse", src)
	d, ok := item.(parser.Declaration)
	require.True(t, ok, "fixture %q must be a declaration", src)
	return d
}

// MustTerm parses src as a bare term, query mark disallowed.
func MustTerm(t *testing.T, src string) term.Term {
	t.Helper()
	tm, err := parser.ParseTerm(src)
	require.NoError(t, err, "fixture %q must parse as a term", src)
	return tm
}
