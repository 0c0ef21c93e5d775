package constraint

import (
	"fmt"

	"spotclear/internal/ids"
	"spotclear/internal/model"
)

// RegionFlowTerm ties one interconnector flow or loss variable id to a
// region's demand balance. Sign follows the exporting/importing convention:
// a flow variable's coefficient is negative (-from_region_loss_factor) for
// the from-region (flow leaves the region) and positive
// (+to_region_loss_factor) for the to-region (flow arrives); a loss variable
// carries each region's negated loss share. The terms are supplied by the
// caller once flow and loss variables exist (spec.md §4.3 "Demand
// balance" / §4.6). constraint has no dependency on the flow/loss variable
// builder, so this is supplied rather than derived here.
type RegionFlowTerm struct {
	Region      string
	VariableID  int
	Coefficient float64
}

// BuildDemandBalance emits one equality constraint per region tying its
// energy bid stack plus every interconnector flow touching it to its
// regional demand (spec.md §4.3 "Demand balance"):
//
//	sum(energy dispatch in region) + sum(net interconnector flow) = demand
func BuildDemandBalance(alloc *ids.Allocator, demands []model.Demand, flows []RegionFlowTerm) Result {
	first := alloc.ClaimConstraints(len(demands))
	var res Result
	byRegion := make(map[string][]RegionFlowTerm, len(flows))
	for _, f := range flows {
		byRegion[f.Region] = append(byRegion[f.Region], f)
	}
	for i, d := range demands {
		cid := first + i
		res.Rows = append(res.Rows, Row{
			ConstraintID: cid, Type: model.Equal, RHS: d.MW,
			Label: fmt.Sprintf("demand_balance[%s]", d.Region),
		})
		res.RegionScope = append(res.RegionScope, RegionScope{
			ConstraintID: cid, Region: d.Region, Service: model.Energy, Coefficient: 1,
		})
		for _, f := range byRegion[d.Region] {
			res.Explicit = append(res.Explicit, Lhs{
				ConstraintID: cid, VariableID: f.VariableID, Coefficient: f.Coefficient,
			})
		}
	}
	return res
}

// BuildFcasRequirement emits one constraint per FCAS-requirement row tying a
// region's bid stack for a service to its required volume (spec.md §4.3
// "FCAS requirement"). Type defaults to equality.
func BuildFcasRequirement(alloc *ids.Allocator, reqs []model.FcasRequirement) Result {
	first := alloc.ClaimConstraints(len(reqs))
	var res Result
	for i, r := range reqs {
		cid := first + i
		t := r.Type
		if t == "" {
			t = model.Equal
		}
		res.Rows = append(res.Rows, Row{
			ConstraintID: cid, Type: t, RHS: r.Volume,
			Label: fmt.Sprintf("fcas_requirement[%s,%s,%s]", r.SetID, r.Region, r.Service),
		})
		res.RegionScope = append(res.RegionScope, RegionScope{
			ConstraintID: cid, Region: r.Region, Service: r.Service, Coefficient: 1,
		})
	}
	return res
}
