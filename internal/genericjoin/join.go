package genericjoin

import (
	"fmt"

	"spotclear/internal/constraint"
	"spotclear/internal/model"
	"spotclear/internal/variable"
)

// pairKey identifies one (constraint, variable) coefficient slot, mirroring
// internal/constraint's accumulation so rows touching the same pair sum
// their coefficients (spec.md §4.7 "Multiple rows referencing the same
// (constraint_id, variable_id) sum their coefficients").
type pairKey struct {
	ConstraintID int
	VariableID   int
}

// Join expands a generic constraint's unit, region, and interconnector
// terms into concrete (constraint, variable, coefficient) rows. setConstraintID
// maps each set-id to the constraint id BuildGenericConstraintRows assigned
// it. flowVariableID maps each interconnector link to its flow variable id
// (internal/lossmodel's output).
func Join(
	unitTerms []model.GenericConstraintUnitTerm,
	regionTerms []model.GenericConstraintRegionTerm,
	interTerms []model.GenericConstraintInterconnectorTerm,
	setConstraintID map[string]int,
	bidVars *variable.BidVariables,
	interconnectors *model.InterconnectorRegistry,
	flowVariableID map[model.LinkKey]int,
) ([]constraint.Lhs, error) {
	var unitScopes []constraint.UnitScope
	for _, t := range unitTerms {
		cid, ok := setConstraintID[t.SetID]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownSet, t.SetID)
		}
		unitScopes = append(unitScopes, constraint.UnitScope{
			ConstraintID: cid, Unit: t.Unit, Service: t.Service, DispatchType: t.DispatchType, Coefficient: t.Coefficient,
		})
	}
	var regionScopes []constraint.RegionScope
	for _, t := range regionTerms {
		cid, ok := setConstraintID[t.SetID]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownSet, t.SetID)
		}
		regionScopes = append(regionScopes, constraint.RegionScope{
			ConstraintID: cid, Region: t.Region, Service: t.Service, Coefficient: t.Coefficient,
		})
	}

	acc := make(map[pairKey]float64)
	var order []pairKey
	add := func(k pairKey, coef float64) {
		if _, seen := acc[k]; !seen {
			order = append(order, k)
		}
		acc[k] += coef
	}
	for _, lhs := range constraint.ResolveScopes(unitScopes, regionScopes, bidVars) {
		add(pairKey{lhs.ConstraintID, lhs.VariableID}, lhs.Coefficient)
	}

	for _, t := range interTerms {
		cid, ok := setConstraintID[t.SetID]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownSet, t.SetID)
		}
		links := interconnectors.LinksOf(t.InterconnectorID)
		if len(links) == 0 {
			return nil, fmt.Errorf("%w: %s", ErrUnknownInterconnector, t.InterconnectorID)
		}
		for _, lk := range links {
			link, _ := interconnectors.Get(lk)
			factor := float64(link.GenericConstraintFactor)
			if factor == 0 {
				factor = 1
			}
			vid, ok := flowVariableID[lk]
			if !ok {
				continue
			}
			add(pairKey{cid, vid}, t.Coefficient*factor)
		}
	}

	out := make([]constraint.Lhs, 0, len(order))
	for _, k := range order {
		out = append(out, constraint.Lhs{ConstraintID: k.ConstraintID, VariableID: k.VariableID, Coefficient: acc[k]})
	}
	return out, nil
}
