package term

// Term is a sealed interface representing a logic term.
// Only Atom, Compound, and Variable implement it.
//
// The marker method pattern prevents external implementations and enables
// exhaustive type switches in the parser, session, and engine.
//
// Terms are immutable trees: a Compound exclusively owns its argument
// slice and nothing mutates a Term after construction. Constructors copy
// incoming slices so callers cannot alias into a built term.
type Term interface {
	term() // Marker method - seals interface to this package
}

// Atom is a term with no arguments, identified solely by name.
//
// Names are non-empty runs of letters, digits, and '_' that do not start
// with a digit. Comparison is by exact text; there is no case folding.
type Atom struct {
	Name string
}

func (Atom) term() {}

// Compound is a named term with one or more ordered subterms.
// Arity is always >= 1: an arity-0 compound collapses to an Atom at
// construction time and cannot be represented.
type Compound struct {
	Name string
	Args []Term
}

func (Compound) term() {}

// Variable is a placeholder term written ?name in source. Two Variables
// with the same name inside one query denote the same logical variable.
// The stored name excludes the leading '?'.
type Variable struct {
	Name string
}

func (Variable) term() {}

// NewAtom creates an Atom term.
func NewAtom(name string) Atom {
	return Atom{Name: name}
}

// NewVariable creates a Variable term. The name must not include the
// leading '?'.
func NewVariable(name string) Variable {
	return Variable{Name: name}
}

// NewCompound creates a Compound term, copying args. If args is empty it
// returns an Atom instead, preserving the arity >= 1 invariant.
func NewCompound(name string, args ...Term) Term {
	if len(args) == 0 {
		return Atom{Name: name}
	}
	owned := make([]Term, len(args))
	copy(owned, args)
	return Compound{Name: name, Args: owned}
}

// Equal reports deep, order-sensitive structural equality. Argument
// order matters; commutativity is never assumed.
func Equal(a, b Term) bool {
	switch at := a.(type) {
	case Atom:
		bt, ok := b.(Atom)
		return ok && at.Name == bt.Name
	case Variable:
		bt, ok := b.(Variable)
		return ok && at.Name == bt.Name
	case Compound:
		bt, ok := b.(Compound)
		if !ok || at.Name != bt.Name || len(at.Args) != len(bt.Args) {
			return false
		}
		for i := range at.Args {
			if !Equal(at.Args[i], bt.Args[i]) {
				return false
			}
		}
		return true
	}
	return false
}

// Vars returns the distinct variable names reachable in t, in first
// occurrence order, depth-first left-to-right. A ground term yields nil.
func Vars(t Term) []string {
	var names []string
	seen := make(map[string]bool)
	collectVars(t, seen, &names)
	return names
}

func collectVars(t Term, seen map[string]bool, names *[]string) {
	switch tt := t.(type) {
	case Variable:
		if !seen[tt.Name] {
			seen[tt.Name] = true
			*names = append(*names, tt.Name)
		}
	case Compound:
		for _, arg := range tt.Args {
			collectVars(arg, seen, names)
		}
	}
}

// IsGround reports whether t contains no variables.
func IsGround(t Term) bool {
	switch tt := t.(type) {
	case Variable:
		return false
	case Compound:
		for _, arg := range tt.Args {
			if !IsGround(arg) {
				return false
			}
		}
	}
	return true
}
