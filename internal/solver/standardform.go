package solver

import (
	"math"

	"spotclear/internal/model"
)

// standardForm is Problem+expansion translated into the dense,
// shifted-to-zero representation solveLP consumes.
type standardForm struct {
	numY     int
	colOfVar map[int]int
	varOfCol []int
	shift    []float64 // parallel to varOfCol
	rows     []stdRow
	rowIDs   []int // constraint id for rows[i], for i < len(rowIDs); remaining rows are variable upper-bound rows with no id
	objCoefY []float64
}

func (p *Problem) effectiveBounds(v *varSpec) (lower, upper float64) {
	if v.disabled {
		return 0, 0
	}
	return v.lower, v.upper
}

// build assembles the standard form from p's own variables/rows plus the
// SOS-emulation expansion ex.
func (p *Problem) build(ex expansion) standardForm {
	varIDs := append(append([]int(nil), p.varOrder...), ex.varOrder...)
	sf := standardForm{
		colOfVar: make(map[int]int, len(varIDs)),
		varOfCol: make([]int, len(varIDs)),
		shift:    make([]float64, len(varIDs)),
		objCoefY: make([]float64, len(varIDs)),
	}

	width := make([]float64, len(varIDs))
	for i, vid := range varIDs {
		var v *varSpec
		if vv, ok := p.vars[vid]; ok {
			v = vv
		} else {
			v = ex.vars[vid]
		}
		lower, upper := p.effectiveBounds(v)
		sf.colOfVar[vid] = i
		sf.varOfCol[i] = vid
		sf.shift[i] = lower
		width[i] = upper - lower
		sf.objCoefY[i] = p.objective[vid]
	}
	sf.numY = len(varIDs)

	rowIDs := append(append([]int(nil), p.rowOrder...), ex.rowOrder...)
	sf.rowIDs = rowIDs
	for _, rid := range rowIDs {
		var r *rowSpec
		if rr, ok := p.rows[rid]; ok {
			r = rr
		} else {
			r = ex.rows[rid]
		}
		coef := make([]float64, sf.numY)
		adjustedRHS := r.rhs
		for vid, c := range r.coef {
			col := sf.colOfVar[vid]
			coef[col] = c
			adjustedRHS -= c * sf.shift[col]
		}
		sf.rows = append(sf.rows, stdRow{typ: r.typ, rhs: adjustedRHS, coef: coef})
	}

	for i, w := range width {
		if math.IsInf(w, 1) {
			continue
		}
		coef := make([]float64, sf.numY)
		coef[i] = 1
		sf.rows = append(sf.rows, stdRow{typ: model.LessEqual, rhs: w, coef: coef})
	}

	return sf
}

// solve runs solveLP over sf and reports per-real-row duals only (bound
// rows have no caller-visible id).
func (sf standardForm) solve(maximize bool) lpResult {
	obj := sf.objCoefY
	if maximize {
		obj = make([]float64, len(sf.objCoefY))
		for i, c := range sf.objCoefY {
			obj[i] = -c
		}
	}
	res := solveLP(sf.numY, sf.rows, obj)
	if maximize && res.status == StatusOptimal {
		res.objective = -res.objective
	}
	return res
}
