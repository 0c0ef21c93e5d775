package constraint

import (
	"fmt"

	"spotclear/internal/ids"
	"spotclear/internal/model"
	"spotclear/internal/rampprep"
)

// BuildRampUp emits one ≤ constraint per non-bidirectional ramp row,
// bounding the unit's energy dispatch to initial_output + ramp_up_rate *
// dispatch_interval/60 (spec.md §4.3 "Ramp up").
func BuildRampUp(alloc *ids.Allocator, rows []rampprep.NonBidirectional, dispatchIntervalMinutes float64) Result {
	hours := dispatchIntervalMinutes / 60
	first := alloc.ClaimConstraints(len(rows))
	var res Result
	for i, r := range rows {
		cid := first + i
		res.Rows = append(res.Rows, Row{
			ConstraintID: cid, Type: model.LessEqual,
			RHS:   r.InitialOutput + r.RampUpRate*hours,
			Label: fmt.Sprintf("ramp_up[%s,%s]", r.Unit, r.DispatchType),
		})
		res.UnitScope = append(res.UnitScope, UnitScope{
			ConstraintID: cid, Unit: r.Unit, Service: model.Energy, DispatchType: r.DispatchType, Coefficient: 1,
		})
	}
	return res
}

// BuildRampDown emits one ≥ constraint per non-bidirectional ramp row,
// bounding the unit's energy dispatch to initial_output - ramp_down_rate *
// dispatch_interval/60 (spec.md §4.3 "Ramp down").
func BuildRampDown(alloc *ids.Allocator, rows []rampprep.NonBidirectional, dispatchIntervalMinutes float64) Result {
	hours := dispatchIntervalMinutes / 60
	first := alloc.ClaimConstraints(len(rows))
	var res Result
	for i, r := range rows {
		cid := first + i
		res.Rows = append(res.Rows, Row{
			ConstraintID: cid, Type: model.GreaterEqual,
			RHS:   r.InitialOutput - r.RampDownRate*hours,
			Label: fmt.Sprintf("ramp_down[%s,%s]", r.Unit, r.DispatchType),
		})
		res.UnitScope = append(res.UnitScope, UnitScope{
			ConstraintID: cid, Unit: r.Unit, Service: model.Energy, DispatchType: r.DispatchType, Coefficient: 1,
		})
	}
	return res
}

// BuildBidirectionalRampUp emits one ≤ constraint per bidirectional unit
// bounding its net output (gen-side and load-side energy bid stacks,
// combined through their already-netted unit-map coefficients) to
// net_initial_output + composite_ramp_up * dispatch_interval/60 (spec.md
// §4.3 "Composite bidirectional ramp").
func BuildBidirectionalRampUp(alloc *ids.Allocator, rows []rampprep.Bidirectional, dispatchIntervalMinutes float64) Result {
	hours := dispatchIntervalMinutes / 60
	first := alloc.ClaimConstraints(len(rows))
	var res Result
	for i, r := range rows {
		cid := first + i
		res.Rows = append(res.Rows, Row{
			ConstraintID: cid, Type: model.LessEqual,
			RHS:   r.NetInitialOutput + r.CompositeRampUp*hours,
			Label: fmt.Sprintf("bidirectional_ramp_up[%s]", r.Unit),
		})
		res.UnitScope = append(res.UnitScope,
			UnitScope{ConstraintID: cid, Unit: r.Unit, Service: model.Energy, DispatchType: model.Generator, Coefficient: 1},
			UnitScope{ConstraintID: cid, Unit: r.Unit, Service: model.Energy, DispatchType: model.Load, Coefficient: 1},
		)
	}
	return res
}

// BuildBidirectionalRampDown is the ≥ mirror of BuildBidirectionalRampUp.
func BuildBidirectionalRampDown(alloc *ids.Allocator, rows []rampprep.Bidirectional, dispatchIntervalMinutes float64) Result {
	hours := dispatchIntervalMinutes / 60
	first := alloc.ClaimConstraints(len(rows))
	var res Result
	for i, r := range rows {
		cid := first + i
		res.Rows = append(res.Rows, Row{
			ConstraintID: cid, Type: model.GreaterEqual,
			RHS:   r.NetInitialOutput - r.CompositeRampDown*hours,
			Label: fmt.Sprintf("bidirectional_ramp_down[%s]", r.Unit),
		})
		res.UnitScope = append(res.UnitScope,
			UnitScope{ConstraintID: cid, Unit: r.Unit, Service: model.Energy, DispatchType: model.Generator, Coefficient: 1},
			UnitScope{ConstraintID: cid, Unit: r.Unit, Service: model.Energy, DispatchType: model.Load, Coefficient: 1},
		)
	}
	return res
}
