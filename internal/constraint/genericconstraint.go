package constraint

import (
	"fmt"

	"spotclear/internal/ids"
	"spotclear/internal/model"
)

// BuildGenericConstraintRows emits one rhs/type row per generic-constraint
// set, in set declaration order (spec.md §4.3 "Generic constraints"). It
// does not resolve the set's lhs: unit, region, and interconnector terms are
// joined by the genericjoin package against the constraint ids returned
// here, since a generic constraint may reference interconnector flow
// variables that this package has no dependency on.
func BuildGenericConstraintRows(alloc *ids.Allocator, sets []model.GenericConstraintSet) (Result, map[string]int) {
	first := alloc.ClaimConstraints(len(sets))
	var res Result
	setConstraintID := make(map[string]int, len(sets))
	for i, s := range sets {
		cid := first + i
		setConstraintID[s.SetID] = cid
		res.Rows = append(res.Rows, Row{
			ConstraintID: cid, Type: s.Type, RHS: s.RHS,
			Label: fmt.Sprintf("generic_constraint[%s]", s.SetID),
		})
	}
	return res, setConstraintID
}
