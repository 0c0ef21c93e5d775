// Package elastic implements the elastic constraint wrapper of spec.md
// §4.4: given any already-built constraint rows, it generates the
// non-negative deficit variables that turn a hard bound into a soft one,
// priced into the objective so the solver only violates a constraint when
// doing so is cheaper than the alternative.
package elastic
