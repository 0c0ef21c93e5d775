package solver

import "spotclear/internal/model"

// expansion holds the auxiliary binaries and linking rows synthesized for
// every declared SOS1/SOS2 set. It augments vars/rows for the duration of
// one Optimize call; ids are allocated past every id the caller ever used,
// so they never collide with the caller's variable or constraint space and
// never leak back out through GetPrimal/GetSlack/Price (the caller only
// ever asks about ids it created).
type expansion struct {
	vars     map[int]*varSpec
	varOrder []int
	rows     map[int]*rowSpec
	rowOrder []int
	binaries []int
}

// expandSOS synthesizes the binary-adjacency emulation of spec.md §9 for
// every AddSOS1/AddSOS2 set: one indicator binary per SOS1 member (or per
// SOS2 adjacent segment), a one-hot/sum-to-one row, and one linking row per
// member bounding it to zero unless its indicator(s) are active.
func (p *Problem) expandSOS() expansion {
	ex := expansion{vars: make(map[int]*varSpec), rows: make(map[int]*rowSpec)}
	nextVar := p.nextVariableID()
	nextRow := p.nextConstraintID()

	newBinary := func() int {
		id := nextVar
		nextVar++
		ex.vars[id] = &varSpec{id: id, lower: 0, upper: 1, binary: true}
		ex.varOrder = append(ex.varOrder, id)
		ex.binaries = append(ex.binaries, id)
		return id
	}
	newRow := func(typ model.ConstraintType, rhs float64) *rowSpec {
		id := nextRow
		nextRow++
		r := &rowSpec{id: id, typ: typ, rhs: rhs, coef: make(map[int]float64)}
		ex.rows[id] = r
		ex.rowOrder = append(ex.rowOrder, id)
		return r
	}

	for _, set := range p.sos1 {
		zs := make([]int, len(set))
		sumRow := newRow(model.LessEqual, 1)
		for i, vid := range set {
			zs[i] = newBinary()
			sumRow.coef[zs[i]] = 1
			upper := p.effectiveUpper(vid)
			link := newRow(model.LessEqual, 0)
			link.coef[vid] = 1
			link.coef[zs[i]] = -upper
		}
	}

	for _, set := range p.sos2 {
		n := len(set)
		zs := make([]int, n-1)
		sumRow := newRow(model.Equal, 1)
		for i := range zs {
			zs[i] = newBinary()
			sumRow.coef[zs[i]] = 1
		}
		for i, vid := range set {
			upper := p.effectiveUpper(vid)
			link := newRow(model.LessEqual, 0)
			link.coef[vid] = 1
			switch {
			case i == 0:
				link.coef[zs[0]] = -upper
			case i == n-1:
				link.coef[zs[n-2]] = -upper
			default:
				link.coef[zs[i-1]] = -upper
				link.coef[zs[i]] = -upper
			}
		}
	}

	return ex
}

func (p *Problem) nextVariableID() int {
	max := -1
	for id := range p.vars {
		if id > max {
			max = id
		}
	}
	return max + 1
}

func (p *Problem) nextConstraintID() int {
	max := -1
	for id := range p.rows {
		if id > max {
			max = id
		}
	}
	return max + 1
}

func (p *Problem) effectiveUpper(variableID int) float64 {
	v := p.vars[variableID]
	if v.disabled {
		return 0
	}
	return v.upper
}
