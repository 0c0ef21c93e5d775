package model

// LossFunc evaluates an interconnector link's loss (MW) at a given flow
// (MW). It may be a closed-form function or a wrapper around piecewise
// historical data — spec.md §6 describes the input column as "callable or
// an equivalent piecewise-evaluable description".
type LossFunc func(flowMW float64) float64

// LossModel is one row of the loss-function input table: a link's loss
// function and the share of its losses attributed to the from-region.
type LossModel struct {
	InterconnectorID     string
	LinkID               string
	FromRegionLossShare  float64 // in [0, 1]
	Eval                 LossFunc
}

// LossBreakpoint is one row of the loss-break-points input table: a single
// ordered point on a link's piecewise-linear loss interpolation grid.
type LossBreakpoint struct {
	InterconnectorID string
	LinkID           string
	LossSegment      int
	BreakPoint       float64
}

// LossRegistry indexes loss models and their break-point grids by link.
type LossRegistry struct {
	models      map[LinkKey]LossModel
	breakpoints map[LinkKey][]LossBreakpoint
}

// NewLossRegistry indexes loss models and sorts each link's break-points by
// loss_segment.
func NewLossRegistry(models []LossModel, points []LossBreakpoint) *LossRegistry {
	reg := &LossRegistry{
		models:      make(map[LinkKey]LossModel, len(models)),
		breakpoints: make(map[LinkKey][]LossBreakpoint),
	}
	for _, m := range models {
		if m.LinkID == "" {
			m.LinkID = m.InterconnectorID
		}
		reg.models[LinkKey{InterconnectorID: m.InterconnectorID, LinkID: m.LinkID}] = m
	}
	for _, p := range points {
		if p.LinkID == "" {
			p.LinkID = p.InterconnectorID
		}
		k := LinkKey{InterconnectorID: p.InterconnectorID, LinkID: p.LinkID}
		reg.breakpoints[k] = append(reg.breakpoints[k], p)
	}
	for k, pts := range reg.breakpoints {
		sortBreakpoints(pts)
		reg.breakpoints[k] = pts
	}
	return reg
}

func sortBreakpoints(pts []LossBreakpoint) {
	for i := 1; i < len(pts); i++ {
		for j := i; j > 0 && pts[j-1].LossSegment > pts[j].LossSegment; j-- {
			pts[j-1], pts[j] = pts[j], pts[j-1]
		}
	}
}

// Model returns the loss model for a link and whether it exists.
func (r *LossRegistry) Model(k LinkKey) (LossModel, bool) {
	m, ok := r.models[k]
	return m, ok
}

// Breakpoints returns the ordered break-point grid for a link.
func (r *LossRegistry) Breakpoints(k LinkKey) []LossBreakpoint {
	return r.breakpoints[k]
}
