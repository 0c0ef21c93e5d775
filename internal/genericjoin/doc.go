// Package genericjoin resolves the set-level lhs tables of a generic
// constraint (spec.md §4.7) against the concrete bid and interconnector-flow
// variables, reusing internal/constraint's unit/region scope join for the
// bid-side terms and adding the interconnector-term join spec.md §4.7
// describes separately.
package genericjoin
