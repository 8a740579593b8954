// Package term defines the in-memory representation of logic terms.
//
// This package contains type definitions, structural equality, variable
// collection, and canonical printing only. All other internal packages
// import term; term imports nothing internal. This keeps the term model
// the foundational layer with no circular dependencies.
//
// Key design constraints:
//   - Terms are immutable trees, never graphs; cycles are impossible by
//     construction because terms are built bottom-up from tokens
//   - Compound arity is always >= 1; arity 0 collapses to Atom
//   - Identifiers compare by exact text, no case folding
//   - Canonical printing round-trips through the parser
package term
