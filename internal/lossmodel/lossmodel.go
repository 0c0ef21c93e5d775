package lossmodel

import (
	"fmt"
	"math"

	"spotclear/internal/constraint"
	"spotclear/internal/ids"
	"spotclear/internal/model"
	"spotclear/internal/variable"
)

// Result is the output of Build: every variable it created, the raw
// constraint rows tying them together, the SOS declarations the solver must
// honour, and the region-balance terms the demand-balance constraint needs.
type Result struct {
	Variables []variable.Variable

	FlowVariableID   map[model.LinkKey]int
	LossVariableID   map[model.LinkKey]int
	WeightVariableID map[model.LinkKey][]int // parallel to the link's breakpoint order

	Constraints constraint.Result

	// SOS2Sets holds one set of variable ids (the link's weight variables,
	// in breakpoint order) per link.
	SOS2Sets [][]int
	// SOS1Sets holds one set of flow-variable ids per market interconnector
	// (its two directional links), forcing only one direction to flow.
	SOS1Sets [][]int

	// RegionFlow is ready to pass straight into constraint.BuildDemandBalance:
	// each link contributes four terms (its flow and its loss variable, each
	// on both the from-region and the to-region) per spec.md §4.3 "Demand
	// balance".
	RegionFlow []constraint.RegionFlowTerm
}

// Build constructs the flow, loss, and weight variables for every
// interconnector link and the three constraint sets per link required by
// spec.md §4.6.
func Build(alloc *ids.Allocator, interconnectors *model.InterconnectorRegistry, losses *model.LossRegistry) (Result, error) {
	res := Result{
		FlowVariableID:   make(map[model.LinkKey]int),
		LossVariableID:   make(map[model.LinkKey]int),
		WeightVariableID: make(map[model.LinkKey][]int),
	}

	for _, k := range interconnectors.Links() {
		link, _ := interconnectors.Get(k)
		lossRow, ok := losses.Model(k)
		if !ok {
			return res, fmt.Errorf("%w: %s/%s", ErrMissingLossModel, k.InterconnectorID, k.LinkID)
		}
		points := losses.Breakpoints(k)
		if len(points) == 0 {
			return res, fmt.Errorf("%w: %s/%s", ErrNoBreakpoints, k.InterconnectorID, k.LinkID)
		}

		flowID := alloc.ClaimVariables(1)
		res.FlowVariableID[k] = flowID
		res.Variables = append(res.Variables, variable.Variable{
			ID: flowID, LowerBound: link.Min, UpperBound: link.Max,
			Type: variable.Continuous, Kind: variable.KindFlow,
			Label: fmt.Sprintf("flow[%s,%s]", k.InterconnectorID, k.LinkID),
		})

		maxAbs := math.Max(math.Abs(link.Min), math.Abs(link.Max))
		lossID := alloc.ClaimVariables(1)
		res.LossVariableID[k] = lossID
		res.Variables = append(res.Variables, variable.Variable{
			ID: lossID, LowerBound: -maxAbs, UpperBound: maxAbs,
			Type: variable.Continuous, Kind: variable.KindLoss,
			Label: fmt.Sprintf("loss[%s,%s]", k.InterconnectorID, k.LinkID),
		})

		weightIDs := make([]int, len(points))
		for i := range points {
			wid := alloc.ClaimVariables(1)
			weightIDs[i] = wid
			res.Variables = append(res.Variables, variable.Variable{
				ID: wid, LowerBound: 0, UpperBound: 1,
				Type: variable.Continuous, Kind: variable.KindWeight,
				Label: fmt.Sprintf("weight[%s,%s,%d]", k.InterconnectorID, k.LinkID, points[i].LossSegment),
			})
		}
		res.WeightVariableID[k] = weightIDs
		res.SOS2Sets = append(res.SOS2Sets, append([]int(nil), weightIDs...))

		sumCID, flowCID, lossCID := alloc.ClaimConstraints(1), alloc.ClaimConstraints(1), alloc.ClaimConstraints(1)
		res.Constraints.Rows = append(res.Constraints.Rows,
			constraint.Row{ConstraintID: sumCID, Type: model.Equal, RHS: 1,
				Label: fmt.Sprintf("loss_weights_sum[%s,%s]", k.InterconnectorID, k.LinkID)},
			constraint.Row{ConstraintID: flowCID, Type: model.Equal, RHS: 0,
				Label: fmt.Sprintf("loss_weights_flow[%s,%s]", k.InterconnectorID, k.LinkID)},
			constraint.Row{ConstraintID: lossCID, Type: model.Equal, RHS: 0,
				Label: fmt.Sprintf("loss_weights_loss[%s,%s]", k.InterconnectorID, k.LinkID)},
		)
		for i, wid := range weightIDs {
			res.Constraints.Explicit = append(res.Constraints.Explicit,
				constraint.Lhs{ConstraintID: sumCID, VariableID: wid, Coefficient: 1},
				constraint.Lhs{ConstraintID: flowCID, VariableID: wid, Coefficient: points[i].BreakPoint},
				constraint.Lhs{ConstraintID: lossCID, VariableID: wid, Coefficient: lossRow.Eval(points[i].BreakPoint)},
			)
		}
		res.Constraints.Explicit = append(res.Constraints.Explicit,
			constraint.Lhs{ConstraintID: flowCID, VariableID: flowID, Coefficient: -1},
			constraint.Lhs{ConstraintID: lossCID, VariableID: lossID, Coefficient: -1},
		)

		res.RegionFlow = append(res.RegionFlow,
			constraint.RegionFlowTerm{Region: link.FromRegion, VariableID: flowID, Coefficient: -link.FromRegionLossFactor},
			constraint.RegionFlowTerm{Region: link.ToRegion, VariableID: flowID, Coefficient: link.ToRegionLossFactor},
			constraint.RegionFlowTerm{Region: link.FromRegion, VariableID: lossID, Coefficient: -lossRow.FromRegionLossShare},
			constraint.RegionFlowTerm{Region: link.ToRegion, VariableID: lossID, Coefficient: -(1 - lossRow.FromRegionLossShare)},
		)
	}

	for _, interID := range marketInterconnectorIDs(interconnectors) {
		links := interconnectors.LinksOf(interID)
		set := make([]int, 0, len(links))
		for _, lk := range links {
			set = append(set, res.FlowVariableID[lk])
		}
		res.SOS1Sets = append(res.SOS1Sets, set)
	}

	return res, nil
}

func marketInterconnectorIDs(reg *model.InterconnectorRegistry) []string {
	seen := make(map[string]bool)
	var out []string
	for _, k := range reg.Links() {
		if seen[k.InterconnectorID] {
			continue
		}
		seen[k.InterconnectorID] = true
		if reg.IsMarketInterconnector(k.InterconnectorID) {
			out = append(out, k.InterconnectorID)
		}
	}
	return out
}
