package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/horn/internal/term"
)

func TestUnifyAtoms(t *testing.T) {
	s := make(substitution)
	assert.True(t, s.unify(term.NewAtom("a"), term.NewAtom("a")))
	assert.False(t, s.unify(term.NewAtom("a"), term.NewAtom("b")))
}

func TestUnifyVariableChains(t *testing.T) {
	// X = Y, Y = a  =>  resolve(X) = a
	s := make(substitution)
	require.True(t, s.unify(term.NewVariable("X"), term.NewVariable("Y")))
	require.True(t, s.unify(term.NewVariable("Y"), term.NewAtom("a")))

	assert.True(t, term.Equal(term.NewAtom("a"), s.resolve(term.NewVariable("X"))))
}

func TestUnifySameVariableBothSides(t *testing.T) {
	s := make(substitution)
	assert.True(t, s.unify(term.NewVariable("X"), term.NewVariable("X")))
	_, bound := s["X"]
	assert.False(t, bound, "X = X binds nothing")
}

func TestUnifyCompoundMismatch(t *testing.T) {
	s := make(substitution)
	assert.False(t, s.unify(
		term.NewCompound("f", term.NewAtom("a")),
		term.NewCompound("g", term.NewAtom("a")),
	), "functor mismatch")

	s = make(substitution)
	assert.False(t, s.unify(
		term.NewCompound("f", term.NewAtom("a")),
		term.NewCompound("f", term.NewAtom("a"), term.NewAtom("b")),
	), "arity mismatch")

	s = make(substitution)
	assert.False(t, s.unify(
		term.NewCompound("f", term.NewAtom("a")),
		term.NewAtom("f"),
	), "compound vs atom")
}

func TestResolveRebuildsNestedTerms(t *testing.T) {
	s := make(substitution)
	require.True(t, s.unify(term.NewVariable("X"), term.NewAtom("leaf")))

	got := s.resolve(term.NewCompound("tree", term.NewVariable("X"), term.NewVariable("Y")))
	want := term.NewCompound("tree", term.NewAtom("leaf"), term.NewVariable("Y"))
	assert.True(t, term.Equal(want, got), "got %s", term.String(got))
}

func TestStandardizeApart(t *testing.T) {
	next := 0
	in := term.NewCompound("f", term.NewVariable("A"), term.NewCompound("g", term.NewVariable("A"), term.NewVariable("B")))

	out := standardizeApart(in, &next, make(map[string]string))

	want := term.NewCompound("f",
		term.NewVariable("#0"),
		term.NewCompound("g", term.NewVariable("#0"), term.NewVariable("#1")),
	)
	assert.True(t, term.Equal(want, out), "got %s", term.String(out))
	assert.Equal(t, 2, next)

	// A second pass continues the counter, keeping candidates distinct.
	out2 := standardizeApart(term.NewVariable("A"), &next, make(map[string]string))
	assert.True(t, term.Equal(term.NewVariable("#2"), out2))
}
