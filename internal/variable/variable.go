// Package variable implements the decision-variable builders of spec.md §4.2
// (bid variables) and provides the shared Variable/Kind vocabulary used by
// every other component that creates variables (interconnector flow and
// loss variables in internal/lossmodel, SOS2 weight variables in
// internal/lossmodel, deficit variables in internal/elastic).
package variable

import "spotclear/internal/model"

// Kind tags which builder owns a variable — the "ownership tag" of
// spec.md §3 "Variable".
type Kind string

const (
	KindBid     Kind = "bid"
	KindFlow    Kind = "interconnector_flow"
	KindLoss    Kind = "interconnector_loss"
	KindWeight  Kind = "loss_weight"
	KindDeficit Kind = "deficit"
)

// Type is the solver variable type.
type Type int

const (
	Continuous Type = iota
	Binary
)

// Variable is a single decision variable: a unique id, its bounds, its
// solver type, and an ownership tag (spec.md §3 "Variable").
type Variable struct {
	ID         int
	LowerBound float64
	UpperBound float64
	Type       Type
	Kind       Kind
	Label      string
}

// UnitMapRow is one row of the unit-level constraint map of spec.md §4.2: a
// variable's contribution to a (unit, service, dispatch_type) aggregate.
type UnitMapRow struct {
	VariableID   int
	Unit         string
	Service      model.Service
	DispatchType model.DispatchType
	Coefficient  float64
}

// RegionMapRow is one row of the regional constraint map of spec.md §4.2: a
// variable's contribution to a (region, service, dispatch_type) aggregate.
type RegionMapRow struct {
	VariableID   int
	Region       string
	Service      model.Service
	DispatchType model.DispatchType
	Coefficient  float64
}
