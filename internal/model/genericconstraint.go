package model

// GenericConstraintSet is one row of the generic-constraint input table: a
// set-id with its relational type and right-hand side (spec.md §3, §6).
type GenericConstraintSet struct {
	SetID string
	Type  ConstraintType
	RHS   float64
}

// GenericConstraintUnitTerm ties a set to a (unit, service, dispatch_type)
// bid variable with a coefficient.
type GenericConstraintUnitTerm struct {
	SetID        string
	Unit         string
	Service      Service
	DispatchType DispatchType
	Coefficient  float64
}

// GenericConstraintRegionTerm ties a set to every (region, service) bid
// variable via the regional map, across both dispatch types — this
// implicitly dispatches over every unit in the region (spec.md §4.7).
type GenericConstraintRegionTerm struct {
	SetID       string
	Region      string
	Service     Service
	Coefficient float64
}

// GenericConstraintInterconnectorTerm ties a set to an interconnector's flow
// variable.
type GenericConstraintInterconnectorTerm struct {
	SetID            string
	InterconnectorID string
	Coefficient      float64
}

// FcasRequirement is one row of the FCAS-requirement input table: a
// set-indexed regional volume requirement for a service (spec.md §3, §6).
type FcasRequirement struct {
	SetID   string
	Service Service
	Region  string
	Volume  float64
	Type    ConstraintType // default Equal
}
