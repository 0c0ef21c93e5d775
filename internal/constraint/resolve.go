package constraint

import "spotclear/internal/variable"

// pairKey identifies one (constraint, variable) coefficient slot.
type pairKey struct {
	ConstraintID int
	VariableID   int
}

// ResolveScopes expands every UnitScope and RegionScope row against the bid
// variable maps, producing concrete (constraint, variable, coefficient)
// rows. A scope row's final coefficient is its own Coefficient multiplied by
// the matching map row's coefficient (which already carries the
// bidirectional/load netting sign from spec.md §4.2) — this lets a caller
// override or cancel that sign deliberately (spec.md §4.7, the generic
// constraint unit term "subtracting from the implicit region term by
// carrying the opposite sign"). Rows that resolve to the same
// (constraint, variable) pair sum their coefficients (spec.md §4.7).
func ResolveScopes(unitScopes []UnitScope, regionScopes []RegionScope, bidVars *variable.BidVariables) []Lhs {
	acc := make(map[pairKey]float64)
	order := make([]pairKey, 0)

	add := func(k pairKey, coef float64) {
		if _, seen := acc[k]; !seen {
			order = append(order, k)
		}
		acc[k] += coef
	}

	for _, s := range unitScopes {
		for _, row := range bidVars.UnitMap {
			if row.Unit == s.Unit && row.Service == s.Service && row.DispatchType == s.DispatchType {
				add(pairKey{s.ConstraintID, row.VariableID}, s.Coefficient*row.Coefficient)
			}
		}
	}
	for _, s := range regionScopes {
		for _, row := range bidVars.RegionMap {
			if row.Region == s.Region && row.Service == s.Service {
				add(pairKey{s.ConstraintID, row.VariableID}, s.Coefficient*row.Coefficient)
			}
		}
	}

	out := make([]Lhs, 0, len(order))
	for _, k := range order {
		out = append(out, Lhs{ConstraintID: k.ConstraintID, VariableID: k.VariableID, Coefficient: acc[k]})
	}
	return out
}
