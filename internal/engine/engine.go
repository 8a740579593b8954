package engine

import (
	"fmt"

	"github.com/roach88/horn/internal/term"
)

// Binding maps variable names to the terms they are bound to in one
// answer. Bindings are read-only snapshots: distinct answers never share
// or alias a Binding, and callers must not mutate one.
type Binding map[string]term.Term

// Handle is an opaque resumption handle over one query's search.
//
// Advance performs one unit of backtracking search and returns the next
// answer, or ok=false when the search is exhausted. Close releases the
// search state; it is idempotent and safe after partial or zero
// consumption. Advance after Close reports exhaustion.
type Handle interface {
	Advance() (b Binding, ok bool)
	Close() error
}

// Engine is the resolution collaborator: unification, clause storage,
// and backtracking live behind this interface.
type Engine interface {
	// Declare registers a fact term in the knowledge base.
	Declare(t term.Term) error

	// Solve begins resolution of the query term.
	Solve(t term.Term) (Handle, error)
}

// ErrorCode categorizes engine errors.
type ErrorCode string

const (
	// ErrCodeVariableFact indicates an attempt to declare a bare
	// variable as a fact.
	ErrCodeVariableFact ErrorCode = "VARIABLE_FACT"
)

// Error is a structured engine error.
type Error struct {
	Code    ErrorCode
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}
