// Package constraint implements the per-domain constraint builders of
// spec.md §4.3: capacity, ramp (including the bidirectional composite and
// fast-start adjustments), FCAS max-availability, joint energy/regulation
// and joint-capacity trapeziums, joint ramping for regulation, fast-start
// profile bands, demand balance, FCAS requirements, generic constraints,
// and tie-break.
//
// Every builder is a pure function of (inputs, *ids.Allocator) returning a
// Result: a list of rhs-and-type rows plus lhs contributions expressed
// either as direct (variable, coefficient) pairs or as unit/region scope
// rows to be joined against the bid variable maps. The dispatch orchestrator
// (internal/dispatch) folds every builder's Result together in declared
// order (spec.md §9 "Replacing dynamic dispatch on constraint classes").
package constraint
