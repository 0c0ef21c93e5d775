package constraint

import "spotclear/internal/model"

// Row is one constraint's rhs_and_type row (spec.md §4.3).
type Row struct {
	ConstraintID int
	Type         model.ConstraintType
	RHS          float64
	Label        string
}

// Lhs is a direct (constraint, variable) coefficient pair — the lhs source
// used when a builder already knows the concrete variable id (flow, loss,
// weight, or a specific bid variable looked up via a BidIndex).
type Lhs struct {
	ConstraintID int
	VariableID   int
	Coefficient  float64
}

// UnitScope is an lhs contribution expressed against a (unit, service,
// dispatch_type) bid stack, to be joined against the unit-level bid map at
// assembly time (spec.md §3 "Constraint").
type UnitScope struct {
	ConstraintID int
	Unit         string
	Service      model.Service
	DispatchType model.DispatchType
	Coefficient  float64
}

// RegionScope is an lhs contribution expressed against a (region, service)
// aggregate across both dispatch types, to be joined against the regional
// bid map at assembly time.
type RegionScope struct {
	ConstraintID int
	Region       string
	Service      model.Service
	Coefficient  float64
}

// Result is the output of a single constraint builder: its rhs/type rows
// plus every flavour of lhs contribution it produces. Most builders
// populate only one or two of the three lhs slices.
type Result struct {
	Rows        []Row
	Explicit    []Lhs
	UnitScope   []UnitScope
	RegionScope []RegionScope
}

// Merge appends other's rows/lhs onto r in place, preserving
// declared build order (spec.md §9).
func (r *Result) Merge(other Result) {
	r.Rows = append(r.Rows, other.Rows...)
	r.Explicit = append(r.Explicit, other.Explicit...)
	r.UnitScope = append(r.UnitScope, other.UnitScope...)
	r.RegionScope = append(r.RegionScope, other.RegionScope...)
}
