// Package engine defines the resolution engine contract consumed by the
// front end, plus a small in-memory reference engine.
//
// The front end never reimplements unification or choice-point
// management; it talks to an Engine through two operations:
//
//   - Declare registers a fact term in the engine's knowledge base
//   - Solve begins resolution of a query term and returns an opaque
//     Handle that yields one Binding per successful resolution path
//
// Handles are pull-based: each Advance performs one unit of backtracking
// search on the calling goroutine. The answer sequence is lazy and
// potentially infinite; callers stop early by ceasing to pull and
// calling Close, which releases the engine's search state for that
// query.
//
// Memory is the reference implementation: a fact database searched
// depth-first in declaration order with standardize-apart renaming.
// It exists so the front end is testable and usable without an external
// engine; any conforming engine can replace it.
package engine
