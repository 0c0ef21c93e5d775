package constraint

import (
	"fmt"

	"spotclear/internal/ids"
	"spotclear/internal/model"
	"spotclear/internal/variable"
)

// BuildTieBreak emits a pro-rata equality for every group of bid bands
// sharing a (region, service, dispatch_type, price) but belonging to
// different units (spec.md §4.3 "Tie-break"):
//
//	v_a / capacity_a − v_b / capacity_b = 0
//
// Each group is chained against its first member rather than paired
// exhaustively: with n equal ratios fixed to a common anchor, transitivity
// gives every pair the same ratio using n-1 constraints instead of
// n*(n-1)/2. The raw equality is later wrapped with a small violation cost
// by the elastic package so a genuine tie still dispatches pro-rata rather
// than becoming infeasible.
func BuildTieBreak(alloc *ids.Allocator, bidVars *variable.BidVariables, units *model.UnitRegistry) Result {
	type groupKey struct {
		region       string
		service      model.Service
		dispatchType model.DispatchType
		price        float64
	}
	type member struct {
		unit       string
		variableID int
		volume     float64
	}

	groups := make(map[groupKey][]member)
	var order []groupKey
	for i, band := range bidVars.Bands {
		info, ok := units.Get(band.Unit, band.DispatchType)
		if !ok || band.Volume == 0 {
			continue
		}
		k := groupKey{region: info.Region, service: band.Service, dispatchType: band.DispatchType, price: band.Price}
		if _, seen := groups[k]; !seen {
			order = append(order, k)
		}
		groups[k] = append(groups[k], member{unit: band.Unit, variableID: bidVars.Variables[i].ID, volume: band.Volume})
	}

	var res Result
	for _, k := range order {
		members := groups[k]
		anchor := members[0]
		for _, m := range members[1:] {
			if m.unit == anchor.unit {
				continue
			}
			cid := alloc.ClaimConstraints(1)
			res.Rows = append(res.Rows, Row{
				ConstraintID: cid, Type: model.Equal, RHS: 0,
				Label: fmt.Sprintf("tie_break[%s,%s,%s,%g,%s-%s]", k.region, k.service, k.dispatchType, k.price, anchor.unit, m.unit),
			})
			res.Explicit = append(res.Explicit,
				Lhs{ConstraintID: cid, VariableID: anchor.variableID, Coefficient: 1 / anchor.volume},
				Lhs{ConstraintID: cid, VariableID: m.variableID, Coefficient: -1 / m.volume},
			)
		}
	}
	return res
}
