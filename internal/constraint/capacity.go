package constraint

import (
	"fmt"

	"spotclear/internal/ids"
	"spotclear/internal/model"
)

// BuildCapacity emits one ≤ constraint per (unit, dispatch_type) capacity
// row, bounding the unit's energy bid stack. The unit-map coefficient
// (already -1 for a bidirectional unit's load side, spec.md §4.2) is reused
// unchanged so that dispatch in either direction of a bidirectional unit is
// bounded by the same physical capacity (spec.md §4.3 "Capacity").
func BuildCapacity(alloc *ids.Allocator, rows []model.UnitCapacity) Result {
	first := alloc.ClaimConstraints(len(rows))
	var res Result
	for i, r := range rows {
		dt := r.DispatchType
		if dt == "" {
			dt = model.Generator
		}
		cid := first + i
		res.Rows = append(res.Rows, Row{
			ConstraintID: cid,
			Type:         model.LessEqual,
			RHS:          r.Capacity,
			Label:        fmt.Sprintf("capacity[%s,%s]", r.Unit, dt),
		})
		res.UnitScope = append(res.UnitScope, UnitScope{
			ConstraintID: cid, Unit: r.Unit, Service: model.Energy, DispatchType: dt, Coefficient: 1,
		})
	}
	return res
}

// BuildUIGF emits one ≤ constraint per unit bounding its energy bid stack to
// its unconstrained intermittent generation forecast (spec.md §4.3).
func BuildUIGF(alloc *ids.Allocator, rows []model.UIGF) Result {
	first := alloc.ClaimConstraints(len(rows))
	var res Result
	for i, r := range rows {
		cid := first + i
		res.Rows = append(res.Rows, Row{
			ConstraintID: cid,
			Type:         model.LessEqual,
			RHS:          r.Capacity,
			Label:        fmt.Sprintf("uigf[%s]", r.Unit),
		})
		res.UnitScope = append(res.UnitScope, UnitScope{
			ConstraintID: cid, Unit: r.Unit, Service: model.Energy, DispatchType: model.Generator, Coefficient: 1,
		})
	}
	return res
}
