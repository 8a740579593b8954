package engine

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/horn/internal/term"
)

// Memory is the in-memory reference engine: a fact database searched
// depth-first in declaration order.
//
// Facts may contain variables; they are standardized apart before each
// unification attempt, so a declared fact quantifies universally over
// its variables. There are no rule bodies: each answer comes from
// unifying the query against exactly one fact.
//
// Memory is not safe for concurrent use. The front end is single
// threaded by design.
type Memory struct {
	logger *slog.Logger
	facts  []fact
}

type fact struct {
	name  string
	arity int
	t     term.Term
}

// MemoryOption configures a Memory engine.
type MemoryOption func(*Memory)

// WithLogger attaches a structured logger. Search progress is logged at
// Debug level.
func WithLogger(logger *slog.Logger) MemoryOption {
	return func(m *Memory) {
		m.logger = logger
	}
}

// NewMemory creates an empty Memory engine.
func NewMemory(opts ...MemoryOption) *Memory {
	m := &Memory{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Declare registers t as a fact. A bare variable cannot be a fact.
func (m *Memory) Declare(t term.Term) error {
	name, arity, ok := functor(t)
	if !ok {
		return &Error{
			Code:    ErrCodeVariableFact,
			Message: fmt.Sprintf("cannot declare %s: a fact needs a functor", term.String(t)),
		}
	}

	m.facts = append(m.facts, fact{name: name, arity: arity, t: t})
	m.logger.Debug("fact declared",
		"fact", term.String(t),
		"functor", name,
		"arity", arity,
		"total", len(m.facts))
	return nil
}

// Len returns the number of declared facts.
func (m *Memory) Len() int {
	return len(m.facts)
}

// Solve begins resolution of the query term. The returned handle yields
// answers in declaration order of the matching facts.
func (m *Memory) Solve(t term.Term) (Handle, error) {
	m.logger.Debug("solve", "query", term.String(t))
	return &memHandle{engine: m, query: t, vars: term.Vars(t)}, nil
}

// functor extracts the name/arity key of a term. ok is false for bare
// variables, which have no functor.
func functor(t term.Term) (name string, arity int, ok bool) {
	switch tt := t.(type) {
	case term.Atom:
		return tt.Name, 0, true
	case term.Compound:
		return tt.Name, len(tt.Args), true
	}
	return "", 0, false
}

// memHandle is the resumption handle for one query against a Memory
// engine. It remembers only the next candidate index; every Advance
// re-attempts unification from there.
type memHandle struct {
	engine  *Memory
	query   term.Term
	vars    []string // free variables, first-occurrence order
	next    int      // index of the next candidate fact
	renames int      // standardize-apart counter, distinct per candidate
	closed  bool
}

// Advance tries candidate facts from the saved position until one
// unifies with the query, then returns the resulting binding for the
// query's free variables. ok is false when no candidates remain or the
// handle is closed.
func (h *memHandle) Advance() (Binding, bool) {
	if h.closed {
		return nil, false
	}

	// A bare variable query matches every fact.
	qname, qarity, isVarQuery := "", 0, false
	if n, a, ok := functor(h.query); ok {
		qname, qarity = n, a
	} else {
		isVarQuery = true
	}

	for h.next < len(h.engine.facts) {
		cand := h.engine.facts[h.next]
		h.next++

		if !isVarQuery && (cand.name != qname || cand.arity != qarity) {
			continue
		}

		renamed := standardizeApart(cand.t, &h.renames, make(map[string]string))
		s := make(substitution)
		if !s.unify(h.query, renamed) {
			continue
		}

		b := h.binding(s)
		h.engine.logger.Debug("answer",
			"query", term.String(h.query),
			"fact", term.String(cand.t),
			"bindings", len(b))
		return b, true
	}

	return nil, false
}

// Close releases the handle. Idempotent; a closed handle only reports
// exhaustion and the engine's knowledge base is unaffected.
func (h *memHandle) Close() error {
	h.closed = true
	return nil
}

// binding projects the substitution onto the query's free variables.
// Residual unbound variables in answer terms are presented as fresh
// source-shaped variables _0, _1, ... in first-occurrence order, so
// every answer prints and re-parses cleanly.
func (h *memHandle) binding(s substitution) Binding {
	b := make(Binding, len(h.vars))
	residuals := make(map[string]string)
	for _, name := range h.vars {
		b[name] = presentable(s.resolve(term.Variable{Name: name}), residuals)
	}
	return b
}

func presentable(t term.Term, residuals map[string]string) term.Term {
	switch tt := t.(type) {
	case term.Variable:
		fresh, ok := residuals[tt.Name]
		if !ok {
			fresh = fmt.Sprintf("_%d", len(residuals))
			residuals[tt.Name] = fresh
		}
		return term.Variable{Name: fresh}
	case term.Compound:
		args := make([]term.Term, len(tt.Args))
		for i, arg := range tt.Args {
			args[i] = presentable(arg, residuals)
		}
		return term.Compound{Name: tt.Name, Args: args}
	}
	return t
}
