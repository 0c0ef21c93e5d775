// Package ids implements the process-local monotonic id allocators shared by
// every builder that creates variables or constraints (spec.md §4.1). Each
// builder claims a contiguous block up front and stamps its rows with
// next_id + row_index, publishing the new counter value back to the
// allocator. Ids are never reused within an Allocator's lifetime, which
// gives the "id uniqueness" and "ascending creation order" invariants in
// spec.md §5 and §8 for free.
package ids

// Allocator hands out two independent monotonically increasing counters: one
// for variable ids, one for constraint ids. An Allocator is owned by exactly
// one market/dispatch instance (spec.md §5 "no shared mutable state between
// intervals").
type Allocator struct {
	nextVariable   int
	nextConstraint int
}

// NewAllocator returns an Allocator whose counters start at zero.
func NewAllocator() *Allocator {
	return &Allocator{}
}

// ClaimVariables reserves a contiguous block of n variable ids and returns
// the first id in the block. Subsequent calls never return overlapping ids.
func (a *Allocator) ClaimVariables(n int) int {
	first := a.nextVariable
	a.nextVariable += n
	return first
}

// ClaimConstraints reserves a contiguous block of n constraint ids and
// returns the first id in the block.
func (a *Allocator) ClaimConstraints(n int) int {
	first := a.nextConstraint
	a.nextConstraint += n
	return first
}

// VariableCount returns how many variable ids have been claimed so far.
func (a *Allocator) VariableCount() int {
	return a.nextVariable
}

// ConstraintCount returns how many constraint ids have been claimed so far.
func (a *Allocator) ConstraintCount() int {
	return a.nextConstraint
}
