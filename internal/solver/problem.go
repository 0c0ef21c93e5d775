package solver

import (
	"fmt"

	"spotclear/internal/constraint"
	"spotclear/internal/model"
	"spotclear/internal/variable"
)

// Status is the outcome of Optimize.
type Status int

const (
	// StatusOptimal means a best feasible solution was found.
	StatusOptimal Status = iota
	// StatusInfeasible means no point satisfies every constraint.
	StatusInfeasible
	// StatusUnbounded means the objective can be improved without limit.
	StatusUnbounded
)

// String renders a Status for logging.
func (s Status) String() string {
	switch s {
	case StatusOptimal:
		return "optimal"
	case StatusInfeasible:
		return "infeasible"
	case StatusUnbounded:
		return "unbounded"
	default:
		return "unknown"
	}
}

type varSpec struct {
	id         int
	lower      float64
	upper      float64
	binary     bool
	disabled   bool // DisableVariable pins bounds to [0, 0]
}

type rowSpec struct {
	id   int
	typ  model.ConstraintType
	rhs  float64
	coef map[int]float64 // variable id -> coefficient
}

// Problem accumulates variables, constraints, SOS declarations, and an
// objective, then solves them with Optimize (spec.md §4.8).
type Problem struct {
	vars     map[int]*varSpec
	varOrder []int
	rows     map[int]*rowSpec
	rowOrder []int

	sos1 [][]int
	sos2 [][]int

	objective map[int]float64
	maximize  bool

	solved bool
	status Status
	primal map[int]float64
	slack  map[int]float64
	dual   map[int]float64
}

// New returns an empty Problem.
func New() *Problem {
	return &Problem{
		vars:      make(map[int]*varSpec),
		rows:      make(map[int]*rowSpec),
		objective: make(map[int]float64),
	}
}

// AddVariables registers every variable's id, bounds, and type. Ids must be
// unique across the Problem's lifetime.
func (p *Problem) AddVariables(vars []variable.Variable) error {
	for _, v := range vars {
		if _, exists := p.vars[v.ID]; exists {
			return fmt.Errorf("%w: %d", ErrDuplicateVariable, v.ID)
		}
		p.vars[v.ID] = &varSpec{id: v.ID, lower: v.LowerBound, upper: v.UpperBound, binary: v.Type == variable.Binary}
		p.varOrder = append(p.varOrder, v.ID)
	}
	return nil
}

// AddLinearConstraints registers rows and merges their lhs coefficients
// (entries sharing a (constraint, variable) pair sum, per spec.md §4.7).
func (p *Problem) AddLinearConstraints(rows []constraint.Row, lhs []constraint.Lhs) error {
	for _, r := range rows {
		if _, exists := p.rows[r.ConstraintID]; exists {
			return fmt.Errorf("%w: %d", ErrDuplicateConstraint, r.ConstraintID)
		}
		p.rows[r.ConstraintID] = &rowSpec{id: r.ConstraintID, typ: r.Type, rhs: r.RHS, coef: make(map[int]float64)}
		p.rowOrder = append(p.rowOrder, r.ConstraintID)
	}
	for _, l := range lhs {
		row, ok := p.rows[l.ConstraintID]
		if !ok {
			return fmt.Errorf("%w: %d", ErrUnknownConstraint, l.ConstraintID)
		}
		if _, ok := p.vars[l.VariableID]; !ok {
			return fmt.Errorf("%w: %d", ErrUnknownVariable, l.VariableID)
		}
		row.coef[l.VariableID] += l.Coefficient
	}
	return nil
}

// AddSOS1 declares that, within each set of variable ids, at most one may be
// non-zero (spec.md §4.6 step 5).
func (p *Problem) AddSOS1(sets [][]int) {
	for _, s := range sets {
		if len(s) > 1 {
			p.sos1 = append(p.sos1, append([]int(nil), s...))
		}
	}
}

// AddSOS2 declares that, within each set of variable ids (in the given
// order), at most two adjacent variables may be non-zero (spec.md §4.6
// step 4).
func (p *Problem) AddSOS2(sets [][]int) {
	for _, s := range sets {
		if len(s) > 2 {
			p.sos2 = append(p.sos2, append([]int(nil), s...))
		}
	}
}

// SetObjective installs the linear objective. Variables absent from coef
// have an implicit coefficient of 0.
func (p *Problem) SetObjective(coef map[int]float64, maximize bool) {
	p.objective = coef
	p.maximize = maximize
	p.solved = false
}

// DisableVariable forces both of variableID's bounds to 0 for the remainder
// of the Problem's life (spec.md §4.8 "force upper bound to 0 and lower
// bound to 0 for the LP re-solve").
func (p *Problem) DisableVariable(variableID int) error {
	v, ok := p.vars[variableID]
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownVariable, variableID)
	}
	v.disabled = true
	p.solved = false
	return nil
}

// UpdateRHS overwrites a constraint's right-hand side, used by the
// over-constrained-dispatch re-run (spec.md §4.9 step 7).
func (p *Problem) UpdateRHS(constraintID int, rhs float64) error {
	row, ok := p.rows[constraintID]
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownConstraint, constraintID)
	}
	row.rhs = rhs
	p.solved = false
	return nil
}

// GetPrimal returns variableID's value in the last solved solution.
func (p *Problem) GetPrimal(variableID int) (float64, error) {
	if !p.solved {
		return 0, ErrNotOptimized
	}
	v, ok := p.primal[variableID]
	if !ok {
		return 0, fmt.Errorf("%w: %d", ErrUnknownVariable, variableID)
	}
	return v, nil
}

// GetSlack returns constraintID's slack (rhs minus lhs, signed so that 0
// means binding) in the last solved solution.
func (p *Problem) GetSlack(constraintID int) (float64, error) {
	if !p.solved {
		return 0, ErrNotOptimized
	}
	s, ok := p.slack[constraintID]
	if !ok {
		return 0, fmt.Errorf("%w: %d", ErrUnknownConstraint, constraintID)
	}
	return s, nil
}

// Price returns the dual (shadow price) of each requested constraint id from
// the last solved solution.
func (p *Problem) Price(constraintIDs []int) (map[int]float64, error) {
	if !p.solved {
		return nil, ErrNotOptimized
	}
	out := make(map[int]float64, len(constraintIDs))
	for _, cid := range constraintIDs {
		d, ok := p.dual[cid]
		if !ok {
			return nil, fmt.Errorf("%w: %d", ErrUnknownConstraint, cid)
		}
		out[cid] = d
	}
	return out, nil
}

// Status returns the outcome of the last Optimize call.
func (p *Problem) Status() Status {
	return p.status
}

// Optimize solves the current problem (spec.md §4.9 steps 2-3 for the first
// MIP-flavoured call, step 6 for the relinearized LP-only call after the
// caller has disabled enough variables to collapse every SOS set). On
// StatusOptimal, GetPrimal/GetSlack/Price read back the new solution.
func (p *Problem) Optimize() (Status, error) {
	ex := p.expandSOS()
	res := p.branchAndBound(ex)
	p.status = res.status
	p.solved = res.status == StatusOptimal
	if p.status != StatusOptimal {
		return p.status, nil
	}

	sf := p.build(ex)
	p.primal = make(map[int]float64, len(sf.varOfCol))
	for col, vid := range sf.varOfCol {
		if _, owned := p.vars[vid]; !owned {
			continue // auxiliary SOS binary: not part of the caller's variable space
		}
		p.primal[vid] = res.y[col] + sf.shift[col]
	}

	p.slack = make(map[int]float64, len(p.rows))
	p.dual = make(map[int]float64, len(p.rows))
	for i, cid := range sf.rowIDs {
		if i >= len(res.rowDual) {
			break
		}
		if _, owned := p.rows[cid]; !owned {
			continue // auxiliary SOS linking row
		}
		row := p.rows[cid]
		lhs := 0.0
		for vid, coef := range row.coef {
			lhs += coef * p.primal[vid]
		}
		p.slack[cid] = row.rhs - lhs
		p.dual[cid] = res.rowDual[i]
	}

	return p.status, nil
}
