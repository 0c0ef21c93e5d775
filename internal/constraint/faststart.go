package constraint

import (
	"fmt"

	"spotclear/internal/ids"
	"spotclear/internal/model"
)

// BuildFastStartBands emits the mode-dependent dispatch band for each
// fast-start unit's end-of-interval profile (spec.md §4.3 "Fast-start
// profile"):
//
//   - mode 0 or 1: dispatch pinned to 0.
//   - mode 2: dispatch pinned to (time_in_end_mode / mode_two_length) * min_loading.
//   - mode 3: dispatch bounded below by min_loading, no upper bound.
//   - mode 4: dispatch pinned to min_loading * (1 - time_in_end_mode / mode_four_length).
//
// "Pinned" bands emit both a ≥ and a ≤ row so the band composes with every
// other energy constraint on the unit rather than replacing them.
func BuildFastStartBands(alloc *ids.Allocator, profiles []model.FastStartProfile) Result {
	var res Result
	for _, p := range profiles {
		switch p.Mode {
		case model.ModeOff, model.ModePreStartOff:
			res.Merge(pinnedBand(alloc, p.Unit, 0))
		case model.ModeRampToMin:
			v := 0.0
			if p.ModeTwoLength > 0 {
				v = (p.TimeInMode / p.ModeTwoLength) * p.MinLoading
			}
			res.Merge(pinnedBand(alloc, p.Unit, v))
		case model.ModeFlexible:
			cid := alloc.ClaimConstraints(1)
			res.Rows = append(res.Rows, Row{
				ConstraintID: cid, Type: model.GreaterEqual, RHS: p.MinLoading,
				Label: fmt.Sprintf("fast_start_band_min[%s]", p.Unit),
			})
			res.UnitScope = append(res.UnitScope, UnitScope{
				ConstraintID: cid, Unit: p.Unit, Service: model.Energy, DispatchType: model.Generator, Coefficient: 1,
			})
		case model.ModeRampDown:
			v := p.MinLoading
			if p.ModeFourLength > 0 {
				v = p.MinLoading * (1 - p.TimeInMode/p.ModeFourLength)
			}
			res.Merge(pinnedBand(alloc, p.Unit, v))
		}
	}
	return res
}

func pinnedBand(alloc *ids.Allocator, unit string, value float64) Result {
	first := alloc.ClaimConstraints(2)
	var res Result
	res.Rows = append(res.Rows,
		Row{ConstraintID: first, Type: model.GreaterEqual, RHS: value, Label: fmt.Sprintf("fast_start_band_min[%s]", unit)},
		Row{ConstraintID: first + 1, Type: model.LessEqual, RHS: value, Label: fmt.Sprintf("fast_start_band_max[%s]", unit)},
	)
	res.UnitScope = append(res.UnitScope,
		UnitScope{ConstraintID: first, Unit: unit, Service: model.Energy, DispatchType: model.Generator, Coefficient: 1},
		UnitScope{ConstraintID: first + 1, Unit: unit, Service: model.Energy, DispatchType: model.Generator, Coefficient: 1},
	)
	return res
}
