package constraint

import (
	"fmt"

	"spotclear/internal/ids"
	"spotclear/internal/model"
	"spotclear/internal/rampprep"
)

// BuildFcasMaxAvailability emits one ≤ constraint per trapezium bounding the
// service's bid stack to its max_availability (spec.md §4.3 "FCAS max
// availability").
func BuildFcasMaxAvailability(alloc *ids.Allocator, trapeziums []model.FcasTrapezium) Result {
	first := alloc.ClaimConstraints(len(trapeziums))
	var res Result
	for i, t := range trapeziums {
		cid := first + i
		res.Rows = append(res.Rows, Row{
			ConstraintID: cid, Type: model.LessEqual, RHS: t.MaxAvailability,
			Label: fmt.Sprintf("fcas_max_availability[%s,%s]", t.Unit, t.Service),
		})
		res.UnitScope = append(res.UnitScope, UnitScope{
			ConstraintID: cid, Unit: t.Unit, Service: t.Service, DispatchType: t.DispatchType, Coefficient: 1,
		})
	}
	return res
}

// BuildJointCapacity emits the joint capacity constraints tying a unit's
// energy dispatch to its FCAS enablement band (spec.md §4.3). Regulation
// trapeziums get the two-term "energy and regulation capacity" slope
// constraint; contingency trapeziums get a distinct pair that additionally
// cross-couples the unit's own raise_reg/lower_reg enablement, since a
// contingency service and regulation draw on the same physical headroom.
// Energy-only rows (max_availability == 0) are skipped since the band
// degenerates to the unit's ordinary capacity limit.
func BuildJointCapacity(alloc *ids.Allocator, trapeziums []model.FcasTrapezium, units *model.UnitRegistry) Result {
	regByUnit := make(map[string]map[model.Service]model.FcasTrapezium)
	for _, t := range trapeziums {
		if !t.Service.IsRegulation() {
			continue
		}
		if regByUnit[t.Unit] == nil {
			regByUnit[t.Unit] = make(map[model.Service]model.FcasTrapezium)
		}
		regByUnit[t.Unit][t.Service] = t
	}

	var res Result
	for _, t := range trapeziums {
		if t.MaxAvailability == 0 {
			continue
		}
		if t.Service.IsRegulation() {
			res.Merge(energyAndRegulationCapacity(alloc, t))
			continue
		}
		bidirectional := units != nil && units.IsBidirectional(t.Unit)
		res.Merge(contingencyJointCapacity(alloc, t, regByUnit[t.Unit], bidirectional))
	}
	return res
}

// energyAndRegulationCapacity emits the two joint constraints that the point
// (energy, reg) lies inside a regulation trapezium's slopes (spec.md §4.3
// "Energy and regulation capacity"):
//
//	energy + upper_slope_coefficient * reg ≤ enablement_max
//	energy - lower_slope_coefficient * reg ≥ enablement_min
func energyAndRegulationCapacity(alloc *ids.Allocator, t model.FcasTrapezium) Result {
	var res Result
	first := alloc.ClaimConstraints(2)
	upper, lower := first, first+1
	res.Rows = append(res.Rows,
		Row{ConstraintID: upper, Type: model.LessEqual, RHS: t.EnablementMax,
			Label: fmt.Sprintf("joint_capacity_upper[%s,%s]", t.Unit, t.Service)},
		Row{ConstraintID: lower, Type: model.GreaterEqual, RHS: t.EnablementMin,
			Label: fmt.Sprintf("joint_capacity_lower[%s,%s]", t.Unit, t.Service)},
	)
	res.UnitScope = append(res.UnitScope,
		UnitScope{ConstraintID: upper, Unit: t.Unit, Service: model.Energy, DispatchType: t.DispatchType, Coefficient: 1},
		UnitScope{ConstraintID: upper, Unit: t.Unit, Service: t.Service, DispatchType: t.DispatchType, Coefficient: t.UpperSlopeCoefficient()},
		UnitScope{ConstraintID: lower, Unit: t.Unit, Service: model.Energy, DispatchType: t.DispatchType, Coefficient: 1},
		UnitScope{ConstraintID: lower, Unit: t.Unit, Service: t.Service, DispatchType: t.DispatchType, Coefficient: -t.LowerSlopeCoefficient()},
	)
	return res
}

// contingencyJointCapacity emits the contingency joint capacity pair (spec.md
// §4.3 "Joint capacity"):
//
//	energy + upper_slope * contingency + raise_reg ≤ enablement_max
//	energy - lower_slope * contingency - lower_reg ≥ enablement_min
//
// For a load the regulation directions swap (lower_reg crosses into the
// upper row, raise_reg into the lower row). reg holds the unit's own
// regulation trapeziums, keyed by service, if any. For a bidirectional unit
// the pair also carries the opposite-side energy variable and the
// opposite-side regulation variable with the same coefficients, since the
// trapezium is tagged to one side but applies to the net unit (spec.md §4.3).
func contingencyJointCapacity(alloc *ids.Allocator, t model.FcasTrapezium, reg map[model.Service]model.FcasTrapezium, bidirectional bool) Result {
	var res Result
	first := alloc.ClaimConstraints(2)
	upper, lower := first, first+1
	res.Rows = append(res.Rows,
		Row{ConstraintID: upper, Type: model.LessEqual, RHS: t.EnablementMax,
			Label: fmt.Sprintf("joint_capacity_upper[%s,%s]", t.Unit, t.Service)},
		Row{ConstraintID: lower, Type: model.GreaterEqual, RHS: t.EnablementMin,
			Label: fmt.Sprintf("joint_capacity_lower[%s,%s]", t.Unit, t.Service)},
	)
	res.UnitScope = append(res.UnitScope,
		UnitScope{ConstraintID: upper, Unit: t.Unit, Service: model.Energy, DispatchType: t.DispatchType, Coefficient: 1},
		UnitScope{ConstraintID: upper, Unit: t.Unit, Service: t.Service, DispatchType: t.DispatchType, Coefficient: t.UpperSlopeCoefficient()},
		UnitScope{ConstraintID: lower, Unit: t.Unit, Service: model.Energy, DispatchType: t.DispatchType, Coefficient: 1},
		UnitScope{ConstraintID: lower, Unit: t.Unit, Service: t.Service, DispatchType: t.DispatchType, Coefficient: -t.LowerSlopeCoefficient()},
	)

	upperReg, lowerReg := model.RaiseReg, model.LowerReg
	if t.DispatchType == model.Load {
		upperReg, lowerReg = model.LowerReg, model.RaiseReg
	}
	if r, ok := reg[upperReg]; ok {
		res.UnitScope = append(res.UnitScope, UnitScope{ConstraintID: upper, Unit: t.Unit, Service: upperReg, DispatchType: r.DispatchType, Coefficient: 1})
	}
	if r, ok := reg[lowerReg]; ok {
		res.UnitScope = append(res.UnitScope, UnitScope{ConstraintID: lower, Unit: t.Unit, Service: lowerReg, DispatchType: r.DispatchType, Coefficient: -1})
	}

	if bidirectional {
		other := model.Load
		if t.DispatchType == model.Load {
			other = model.Generator
		}
		res.UnitScope = append(res.UnitScope,
			UnitScope{ConstraintID: upper, Unit: t.Unit, Service: model.Energy, DispatchType: other, Coefficient: 1},
			UnitScope{ConstraintID: lower, Unit: t.Unit, Service: model.Energy, DispatchType: other, Coefficient: 1},
		)
		if _, ok := reg[upperReg]; ok {
			res.UnitScope = append(res.UnitScope, UnitScope{ConstraintID: upper, Unit: t.Unit, Service: upperReg, DispatchType: other, Coefficient: 1})
		}
		if _, ok := reg[lowerReg]; ok {
			res.UnitScope = append(res.UnitScope, UnitScope{ConstraintID: lower, Unit: t.Unit, Service: lowerReg, DispatchType: other, Coefficient: -1})
		}
	}

	return res
}

// BuildJointRamping emits the regulation joint-ramping constraints that cap
// the sum of energy movement and regulation enablement by the unit's own
// ramp capability over the dispatch interval (spec.md §4.3 "Joint ramping for
// regulation"):
//
//	energy + raise_reg ≤ initial_output + ramp_up_rate * interval/60
//	energy - lower_reg ≥ initial_output - ramp_down_rate * interval/60
//
// ramps is keyed by unit; units without a ramp row (no regulation trapezium
// applies) are skipped.
func BuildJointRamping(alloc *ids.Allocator, trapeziums []model.FcasTrapezium, ramps map[string]rampprep.NonBidirectional, dispatchIntervalMinutes float64) Result {
	hours := dispatchIntervalMinutes / 60
	var res Result
	for _, t := range trapeziums {
		if !t.Service.IsRegulation() {
			continue
		}
		r, ok := ramps[t.Unit]
		if !ok {
			continue
		}
		cid := alloc.ClaimConstraints(1)
		if t.Service == model.RaiseReg {
			res.Rows = append(res.Rows, Row{
				ConstraintID: cid, Type: model.LessEqual,
				RHS:   r.InitialOutput + r.RampUpRate*hours,
				Label: fmt.Sprintf("joint_ramping[%s,%s]", t.Unit, t.Service),
			})
			res.UnitScope = append(res.UnitScope,
				UnitScope{ConstraintID: cid, Unit: t.Unit, Service: model.Energy, DispatchType: t.DispatchType, Coefficient: 1},
				UnitScope{ConstraintID: cid, Unit: t.Unit, Service: t.Service, DispatchType: t.DispatchType, Coefficient: 1},
			)
		} else {
			res.Rows = append(res.Rows, Row{
				ConstraintID: cid, Type: model.GreaterEqual,
				RHS:   r.InitialOutput - r.RampDownRate*hours,
				Label: fmt.Sprintf("joint_ramping[%s,%s]", t.Unit, t.Service),
			})
			res.UnitScope = append(res.UnitScope,
				UnitScope{ConstraintID: cid, Unit: t.Unit, Service: model.Energy, DispatchType: t.DispatchType, Coefficient: 1},
				UnitScope{ConstraintID: cid, Unit: t.Unit, Service: t.Service, DispatchType: t.DispatchType, Coefficient: -1},
			)
		}
	}
	return res
}
