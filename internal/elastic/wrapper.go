package elastic

import (
	"fmt"
	"math"

	"spotclear/internal/constraint"
	"spotclear/internal/ids"
	"spotclear/internal/model"
	"spotclear/internal/variable"
)

// CostTable overrides the uniform violation cost for specific constraint
// rows, keyed by the row's Label (spec.md §4.4 "looked up by set-id from a
// cost table"; constraint rows carry their set/domain identity in Label
// rather than a separate field, so the lookup key is the label itself).
type CostTable map[string]float64

// Result is the output of Wrap: the deficit variables it created, their lhs
// contributions against the wrapped constraints, and each deficit
// variable's objective coefficient.
type Result struct {
	Variables            []variable.Variable
	Lhs                  []constraint.Lhs
	ObjectiveCoefficient map[int]float64
}

// Wrap generates non-negative deficit variables for every row: one for a ≤
// or ≥ row, two for an = row (spec.md §4.4). A ≥ row's deficit enters the
// lhs with coefficient +1 (relaxing the lower bound), a ≤ row's with −1
// (relaxing the upper bound); an = row gets both. Each deficit variable's
// objective coefficient is costTable[row.Label] if present, else
// defaultCost.
func Wrap(alloc *ids.Allocator, rows []constraint.Row, defaultCost float64, costTable CostTable) (Result, error) {
	res := Result{ObjectiveCoefficient: make(map[int]float64)}

	costFor := func(label string) float64 {
		if costTable != nil {
			if c, ok := costTable[label]; ok {
				return c
			}
		}
		return defaultCost
	}

	addDeficit := func(row constraint.Row, suffix string, coef float64) {
		vid := alloc.ClaimVariables(1)
		res.Variables = append(res.Variables, variable.Variable{
			ID: vid, LowerBound: 0, UpperBound: math.Inf(1),
			Type: variable.Continuous, Kind: variable.KindDeficit,
			Label: fmt.Sprintf("deficit[%s%s]", row.Label, suffix),
		})
		res.Lhs = append(res.Lhs, constraint.Lhs{ConstraintID: row.ConstraintID, VariableID: vid, Coefficient: coef})
		res.ObjectiveCoefficient[vid] = costFor(row.Label)
	}

	for _, row := range rows {
		switch row.Type {
		case model.GreaterEqual:
			addDeficit(row, "", 1)
		case model.LessEqual:
			addDeficit(row, "", -1)
		case model.Equal:
			addDeficit(row, "+", 1)
			addDeficit(row, "-", -1)
		default:
			return res, fmt.Errorf("elastic: row %q has invalid constraint type %q", row.Label, row.Type)
		}
	}
	return res, nil
}
