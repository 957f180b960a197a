// Package filter provides composable structured predicates over catalog
// positions.
//
// The engine is a pure function of (positions, criteria, lookup): it has no
// state of its own and never touches embeddings. Criteria fields use
// optional pointers and slices so that an absent value means "unconstrained"
// without any stringly-typed predicate keys.
package filter
