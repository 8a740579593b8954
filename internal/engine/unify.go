package engine

import (
	"fmt"

	"github.com/roach88/horn/internal/term"
)

// substitution maps variable names to terms. Internal (standardized
// apart) variables use names no source variable can carry, so one flat
// namespace suffices for query and fact variables together.
type substitution map[string]term.Term

// walk resolves t through the substitution until it is not a bound
// variable. It returns either a non-variable term or an unbound
// variable.
func (s substitution) walk(t term.Term) term.Term {
	for {
		v, ok := t.(term.Variable)
		if !ok {
			return t
		}
		bound, ok := s[v.Name]
		if !ok {
			return t
		}
		t = bound
	}
}

// resolve substitutes bindings all the way down, producing the fully
// dereferenced form of t. Unbound variables remain as variables.
func (s substitution) resolve(t term.Term) term.Term {
	t = s.walk(t)
	c, ok := t.(term.Compound)
	if !ok {
		return t
	}
	args := make([]term.Term, len(c.Args))
	for i, arg := range c.Args {
		args[i] = s.resolve(arg)
	}
	return term.Compound{Name: c.Name, Args: args}
}

// unify attempts to unify a and b, extending s with new bindings.
// The caller discards s wholesale on failure, so no trail is kept.
// No occurs check: cyclic bindings are the caller's risk, as is
// conventional for this engine family.
func (s substitution) unify(a, b term.Term) bool {
	a, b = s.walk(a), s.walk(b)

	if av, ok := a.(term.Variable); ok {
		if bv, ok := b.(term.Variable); ok && av.Name == bv.Name {
			return true
		}
		s[av.Name] = b
		return true
	}
	if bv, ok := b.(term.Variable); ok {
		s[bv.Name] = a
		return true
	}

	switch at := a.(type) {
	case term.Atom:
		bt, ok := b.(term.Atom)
		return ok && at.Name == bt.Name
	case term.Compound:
		bt, ok := b.(term.Compound)
		if !ok || at.Name != bt.Name || len(at.Args) != len(bt.Args) {
			return false
		}
		for i := range at.Args {
			if !s.unify(at.Args[i], bt.Args[i]) {
				return false
			}
		}
		return true
	}
	return false
}

// standardizeApart renames every variable in t to a fresh internal name.
// Internal names start with '#', which the lexer can never produce, so
// renamed fact variables cannot collide with query variables. next is
// the rename counter, shared across one Solve so successive candidates
// stay distinct.
func standardizeApart(t term.Term, next *int, renames map[string]string) term.Term {
	switch tt := t.(type) {
	case term.Variable:
		fresh, ok := renames[tt.Name]
		if !ok {
			fresh = fmt.Sprintf("#%d", *next)
			*next++
			renames[tt.Name] = fresh
		}
		return term.Variable{Name: fresh}
	case term.Compound:
		args := make([]term.Term, len(tt.Args))
		for i, arg := range tt.Args {
			args[i] = standardizeApart(arg, next, renames)
		}
		return term.Compound{Name: tt.Name, Args: args}
	}
	return t
}
