package dispatch

import "spotclear/internal/model"

// Inputs bundles every input table and registry a single dispatch interval
// needs (spec.md §6 "External interfaces"). Registries that validate
// cross-table consistency (bid book, unit registry, interconnector/loss
// registries) are built by the caller so that a schema error surfaces
// before Market ever starts assembling variables.
type Inputs struct {
	Units           *model.UnitRegistry
	Bids            *model.BidBook
	Interconnectors *model.InterconnectorRegistry
	Losses          *model.LossRegistry

	Capacities     []model.UnitCapacity
	UIGF           []model.UIGF
	Demands        []model.Demand
	RampDetails    []model.RampDetails
	ScadaRampRates []model.ScadaRampRates

	// FastStartProfiles carries the start-of-interval state (current_mode,
	// time_in_current_mode) for every fast-start unit; units absent here are
	// not fast-start (spec.md §4.5, §6).
	FastStartProfiles []model.FastStartProfile

	Trapeziums       []model.FcasTrapezium
	FcasRequirements []model.FcasRequirement

	GenericConstraintSets               []model.GenericConstraintSet
	GenericConstraintUnitTerms          []model.GenericConstraintUnitTerm
	GenericConstraintRegionTerms        []model.GenericConstraintRegionTerm
	GenericConstraintInterconnectorTerms []model.GenericConstraintInterconnectorTerm
}
