// Package session bridges parsed queries to a resolution engine.
//
// A Session owns one submitted query: it registers the query's free
// variables, obtains an opaque search handle from the engine, and
// exposes a pull-based, possibly infinite sequence of answers. The
// session holds no search state of its own; backtracking lives entirely
// behind the engine handle.
package session

import (
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/roach88/horn/internal/engine"
	"github.com/roach88/horn/internal/parser"
	"github.com/roach88/horn/internal/term"
)

// Session enumerates the answers of one query. It is restartable only
// from scratch: re-submit the query to obtain a fresh enumeration.
//
// Sessions are not safe for concurrent use.
type Session struct {
	id     string
	query  term.Term
	vars   []string // free variables, first-occurrence order
	handle engine.Handle
	logger *slog.Logger

	answered int
	done     bool
	closed   bool
}

// Option configures a Session.
type Option func(*Session)

// WithLogger attaches a structured logger. Answers are logged at Debug
// level with the session ID for correlation.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		s.logger = logger
	}
}

// Open submits a parsed query to the engine and returns a session over
// its answers. The session owns the engine handle; callers must Close it
// (or drain it) when no further answers are needed.
func Open(q parser.Query, eng engine.Engine, opts ...Option) (*Session, error) {
	s := &Session{
		// UUIDv7 so session IDs sort by creation time in logs.
		id:     uuid.Must(uuid.NewV7()).String(),
		query:  q.Term,
		vars:   term.Vars(q.Term),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}

	handle, err := eng.Solve(q.Term)
	if err != nil {
		return nil, err
	}
	s.handle = handle

	s.logger.Debug("session opened",
		"session", s.id,
		"query", term.String(q.Term),
		"vars", s.vars)
	return s, nil
}

// ID returns the session's correlation token.
func (s *Session) ID() string {
	return s.id
}

// Vars returns the query's free variable names in first-occurrence,
// depth-first, left-to-right order. Every answer binds exactly these.
func (s *Session) Vars() []string {
	return s.vars
}

// Next performs one unit of backtracking search and returns the next
// answer. ok is false once the search is exhausted or the session is
// closed.
//
// A query with no free variables yields at most one answer, the empty
// binding: the conventional "yes". Further solutions of a ground query
// are indistinguishable, so the session stops pulling after the first.
func (s *Session) Next() (b engine.Binding, ok bool) {
	if s.done || s.closed {
		return nil, false
	}

	raw, ok := s.handle.Advance()
	if !ok {
		s.done = true
		s.logger.Debug("session exhausted", "session", s.id, "answers", s.answered)
		return nil, false
	}

	answer := s.project(raw)
	s.answered++
	if len(s.vars) == 0 {
		s.done = true
	}

	s.logger.Debug("session answer", "session", s.id, "n", s.answered)
	return answer, true
}

// Close releases the engine's search state for this query. Idempotent
// and safe after zero or partial consumption; other engine state is
// unaffected.
func (s *Session) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	s.logger.Debug("session closed", "session", s.id, "answers", s.answered)
	return s.handle.Close()
}

// project restricts an engine answer to exactly the registered free
// variables. A variable the engine left out stays unbound and is
// presented as itself.
func (s *Session) project(raw engine.Binding) engine.Binding {
	b := make(engine.Binding, len(s.vars))
	for _, name := range s.vars {
		if t, ok := raw[name]; ok {
			b[name] = t
			continue
		}
		b[name] = term.Variable{Name: name}
	}
	return b
}
