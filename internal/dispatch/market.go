package dispatch

import (
	"fmt"
	"math"
	"sort"

	"github.com/google/uuid"

	"spotclear/internal/config"
	"spotclear/internal/constraint"
	"spotclear/internal/elastic"
	"spotclear/internal/genericjoin"
	"spotclear/internal/ids"
	"spotclear/internal/logger"
	"spotclear/internal/lossmodel"
	"spotclear/internal/model"
	"spotclear/internal/rampprep"
	"spotclear/internal/solver"
	"spotclear/internal/variable"
)

// elasticTolerance is the primal threshold above which a deficit variable is
// considered an active violation (spec.md §4.9 step 7, §8 "OCD trigger").
const elasticTolerance = 1e-6

// elasticFamily tags which of the four elastic-eligible constraint families
// (spec.md §4.3/§4.4) a deficit variable belongs to, since the OCD trigger
// only considers generic and FCAS violations (spec.md §4.9 step 7).
type elasticFamily int

const (
	familyDemand elasticFamily = iota
	familyFcasRequirement
	familyGeneric
	familyTieBreak
)

type elasticDeficit struct {
	family       elasticFamily
	constraintID int
	variableID   int
	coefficient  float64
}

// fcasKey identifies one (region, service) FCAS price grouping.
type fcasKey struct {
	Region  string
	Service model.Service
}

// availabilityKey identifies one (unit, service) availability grouping.
type availabilityKey struct {
	Unit    string
	Service model.Service
}

// availabilityBound is one constraint bounding a (unit, service) pair's
// enablement, along with the coefficient that service carries in it (a
// negative coefficient means slack must be negated to read as headroom for
// that service, spec.md §4.10 "fcas_availability").
type availabilityBound struct {
	constraintID int
	coefficient  float64
}

// Market is one dispatch interval's fully assembled and solved problem
// (spec.md §4.9 "Dispatch Orchestrator").
type Market struct {
	RunID string

	cfg     *config.Config
	problem *solver.Problem
	bidVars *variable.BidVariables
	lossRes lossmodel.Result

	constraintLabel map[int]string
	constraintRHS   map[int]float64

	demandConstraintID map[string]int
	fcasConstraintIDs  map[fcasKey][]int

	// availabilityConstraints maps a (unit, service) to every constraint id
	// bounding its enablement, for fcas_availability extraction.
	availabilityConstraints map[availabilityKey][]availabilityBound

	elasticDeficits []elasticDeficit

	// primal and objective are frozen at the post-relinearization LP solve;
	// the OCD re-run only refreshes prices (spec.md §4.9 step 7 "All
	// non-reran artifacts (primal dispatch, objective) remain from the
	// first pass").
	primal    map[int]float64
	objective float64
	status    solver.Status
}

// NewMarket assembles every component's output into one solver.Problem and
// runs the full MIP -> relinearize -> LP -> (optional OCD) pipeline.
func NewMarket(cfg *config.Config, in Inputs) (*Market, error) {
	if cfg.AllowOverConstrainedDispatchRerun &&
		cfg.EnergyMarketCeilingPrice == 0 && cfg.EnergyMarketFloorPrice == 0 && cfg.FcasMarketCeilingPrice == 0 {
		return nil, ErrPriceCapsRequired
	}

	runID := uuid.NewString()
	logger.Info("DISPATCH", "run %s: building market", runID)

	alloc := ids.NewAllocator()

	bidVars, err := variable.BuildBidVariables(alloc, in.Bids, in.Units)
	if err != nil {
		return nil, fmt.Errorf("dispatch: bid variables: %w", err)
	}

	lossRes, err := lossmodel.Build(alloc, in.Interconnectors, in.Losses)
	if err != nil {
		return nil, fmt.Errorf("dispatch: loss model: %w", err)
	}

	nonBi, bi, err := rampprep.Compose(in.RampDetails, in.ScadaRampRates, in.Units, cfg.DispatchIntervalMinutes)
	if err != nil {
		return nil, fmt.Errorf("dispatch: ramp preprocessor: %w", err)
	}

	endProfiles := make(map[string]model.FastStartProfile, len(in.FastStartProfiles))
	endProfileList := make([]model.FastStartProfile, 0, len(in.FastStartProfiles))
	for _, p := range in.FastStartProfiles {
		ep := p.Advance(cfg.DispatchIntervalMinutes)
		endProfiles[p.Unit] = ep
		endProfileList = append(endProfileList, ep)
	}
	nonBi = rampprep.AdjustSecondRun(nonBi, endProfiles, cfg.DispatchIntervalMinutes)

	ramps := make(map[string]rampprep.NonBidirectional, len(nonBi))
	for _, r := range nonBi {
		ramps[r.Unit] = r
	}

	rampUp := constraint.BuildRampUp(alloc, nonBi, cfg.DispatchIntervalMinutes)
	rampDown := constraint.BuildRampDown(alloc, nonBi, cfg.DispatchIntervalMinutes)
	biRampUp := constraint.BuildBidirectionalRampUp(alloc, bi, cfg.DispatchIntervalMinutes)
	biRampDown := constraint.BuildBidirectionalRampDown(alloc, bi, cfg.DispatchIntervalMinutes)
	fcasMaxAvail := constraint.BuildFcasMaxAvailability(alloc, in.Trapeziums)
	jointCapacity := constraint.BuildJointCapacity(alloc, in.Trapeziums, in.Units)
	jointRamping := constraint.BuildJointRamping(alloc, in.Trapeziums, ramps, cfg.DispatchIntervalMinutes)

	// availabilityScope collects the (unit, service) tagged constraints that
	// bound FCAS enablement and the ramp/joint-ramp envelope around it, read
	// back by Market.FcasAvailability (spec.md §4.10 "fcas_availability").
	var availabilityScope []constraint.UnitScope
	availabilityScope = append(availabilityScope, rampUp.UnitScope...)
	availabilityScope = append(availabilityScope, rampDown.UnitScope...)
	availabilityScope = append(availabilityScope, biRampUp.UnitScope...)
	availabilityScope = append(availabilityScope, biRampDown.UnitScope...)
	availabilityScope = append(availabilityScope, fcasMaxAvail.UnitScope...)
	availabilityScope = append(availabilityScope, jointCapacity.UnitScope...)
	availabilityScope = append(availabilityScope, jointRamping.UnitScope...)

	var hard constraint.Result
	hard.Merge(constraint.BuildCapacity(alloc, in.Capacities))
	hard.Merge(constraint.BuildUIGF(alloc, in.UIGF))
	hard.Merge(rampUp)
	hard.Merge(rampDown)
	hard.Merge(biRampUp)
	hard.Merge(biRampDown)
	hard.Merge(constraint.BuildFastStartBands(alloc, endProfileList))
	hard.Merge(fcasMaxAvail)
	hard.Merge(jointCapacity)
	hard.Merge(jointRamping)
	hard.Merge(lossRes.Constraints)

	demandRes := constraint.BuildDemandBalance(alloc, in.Demands, lossRes.RegionFlow)
	fcasReqRes := constraint.BuildFcasRequirement(alloc, in.FcasRequirements)
	genericRows, setConstraintID := constraint.BuildGenericConstraintRows(alloc, in.GenericConstraintSets)
	genericLhs, err := genericjoin.Join(
		in.GenericConstraintUnitTerms, in.GenericConstraintRegionTerms, in.GenericConstraintInterconnectorTerms,
		setConstraintID, bidVars, in.Interconnectors, lossRes.FlowVariableID,
	)
	if err != nil {
		return nil, fmt.Errorf("dispatch: generic constraint join: %w", err)
	}
	genericRows.Explicit = append(genericRows.Explicit, genericLhs...)
	tieRes := constraint.BuildTieBreak(alloc, bidVars, in.Units)

	demandConstraintID := make(map[string]int, len(in.Demands))
	for i, d := range in.Demands {
		demandConstraintID[d.Region] = demandRes.Rows[i].ConstraintID
	}
	fcasConstraintIDs := make(map[fcasKey][]int)
	for i, r := range in.FcasRequirements {
		k := fcasKey{Region: r.Region, Service: r.Service}
		fcasConstraintIDs[k] = append(fcasConstraintIDs[k], fcasReqRes.Rows[i].ConstraintID)
	}

	availabilityConstraints := make(map[availabilityKey][]availabilityBound)
	for _, s := range availabilityScope {
		k := availabilityKey{Unit: s.Unit, Service: s.Service}
		availabilityConstraints[k] = append(availabilityConstraints[k], availabilityBound{constraintID: s.ConstraintID, coefficient: s.Coefficient})
	}

	hard.Merge(demandRes)
	hard.Merge(fcasReqRes)
	hard.Merge(genericRows)
	hard.Merge(tieRes)

	variables := append([]variable.Variable(nil), bidVars.Variables...)
	variables = append(variables, lossRes.Variables...)

	lhs := constraint.ResolveScopes(hard.UnitScope, hard.RegionScope, bidVars)
	lhs = append(lhs, hard.Explicit...)

	obj := make(map[int]float64, len(variables))
	for i, v := range bidVars.Variables {
		obj[v.ID] = bidVars.Bands[i].Price
	}

	var elasticDeficits []elasticDeficit
	wrapFamily := func(rows []constraint.Row, family elasticFamily, defaultCost float64) error {
		res, err := elastic.Wrap(alloc, rows, defaultCost, nil)
		if err != nil {
			return err
		}
		variables = append(variables, res.Variables...)
		lhs = append(lhs, res.Lhs...)
		for vid, cost := range res.ObjectiveCoefficient {
			obj[vid] = cost
		}
		for _, l := range res.Lhs {
			elasticDeficits = append(elasticDeficits, elasticDeficit{
				family: family, constraintID: l.ConstraintID, variableID: l.VariableID, coefficient: l.Coefficient,
			})
		}
		return nil
	}
	if err := wrapFamily(demandRes.Rows, familyDemand, cfg.EnergyMarketCeilingPrice); err != nil {
		return nil, fmt.Errorf("dispatch: elastic demand balance: %w", err)
	}
	if err := wrapFamily(fcasReqRes.Rows, familyFcasRequirement, cfg.FcasMarketCeilingPrice); err != nil {
		return nil, fmt.Errorf("dispatch: elastic fcas requirement: %w", err)
	}
	if err := wrapFamily(genericRows.Rows, familyGeneric, cfg.GenericConstraintViolationCost); err != nil {
		return nil, fmt.Errorf("dispatch: elastic generic constraint: %w", err)
	}
	if err := wrapFamily(tieRes.Rows, familyTieBreak, cfg.TieBreakViolationCost); err != nil {
		return nil, fmt.Errorf("dispatch: elastic tie-break: %w", err)
	}

	problem := solver.New()
	if err := problem.AddVariables(variables); err != nil {
		return nil, fmt.Errorf("dispatch: add variables: %w", err)
	}
	if err := problem.AddLinearConstraints(hard.Rows, lhs); err != nil {
		return nil, fmt.Errorf("dispatch: add constraints: %w", err)
	}
	problem.AddSOS2(lossRes.SOS2Sets)
	problem.AddSOS1(lossRes.SOS1Sets)
	problem.SetObjective(obj, false)

	constraintLabel := make(map[int]string, len(hard.Rows))
	constraintRHS := make(map[int]float64, len(hard.Rows))
	for _, r := range hard.Rows {
		constraintLabel[r.ConstraintID] = r.Label
		constraintRHS[r.ConstraintID] = r.RHS
	}

	m := &Market{
		RunID:                   runID,
		cfg:                     cfg,
		problem:                 problem,
		bidVars:                 bidVars,
		lossRes:                 lossRes,
		constraintLabel:         constraintLabel,
		constraintRHS:           constraintRHS,
		demandConstraintID:      demandConstraintID,
		fcasConstraintIDs:       fcasConstraintIDs,
		availabilityConstraints: availabilityConstraints,
		elasticDeficits:         elasticDeficits,
	}

	logger.Section("MIP solve")
	status, err := problem.Optimize()
	if err != nil {
		return nil, fmt.Errorf("dispatch: MIP optimize: %w", err)
	}
	if status != solver.StatusOptimal {
		return nil, fmt.Errorf("%w: %s", ErrMIPInfeasible, status)
	}

	if err := m.relinearize(in, variables); err != nil {
		return nil, err
	}

	logger.Section("LP solve")
	status, err = problem.Optimize()
	if err != nil {
		return nil, fmt.Errorf("dispatch: LP optimize: %w", err)
	}
	if status != solver.StatusOptimal {
		return nil, fmt.Errorf("%w: %s", ErrLPInfeasible, status)
	}

	m.freezeSolution(variables, obj)
	m.status = status

	if cfg.AllowOverConstrainedDispatchRerun {
		if err := m.runOCD(); err != nil {
			return nil, err
		}
	}

	logger.Success("DISPATCH", "run %s: objective %.4f", runID, m.objective)
	return m, nil
}

// relinearize keeps, for every interconnector link, the three weight
// variables whose break-point is closest to the MIP-solution flow and
// disables the rest, then disables the flow variable of any zero-flow link
// belonging to a market interconnector (spec.md §4.9 step 5).
func (m *Market) relinearize(in Inputs, variables []variable.Variable) error {
	for _, link := range in.Interconnectors.Links() {
		flowID, ok := m.lossRes.FlowVariableID[link]
		if !ok {
			continue
		}
		flow, err := m.problem.GetPrimal(flowID)
		if err != nil {
			return fmt.Errorf("dispatch: relinearize read flow: %w", err)
		}

		weightIDs := m.lossRes.WeightVariableID[link]
		points := in.Losses.Breakpoints(link)
		type candidate struct {
			id       int
			distance float64
		}
		candidates := make([]candidate, len(weightIDs))
		for i, wid := range weightIDs {
			candidates[i] = candidate{id: wid, distance: math.Abs(points[i].BreakPoint - flow)}
		}
		sort.Slice(candidates, func(a, b int) bool { return candidates[a].distance < candidates[b].distance })
		for i, c := range candidates {
			if i < 3 {
				continue
			}
			if err := m.problem.DisableVariable(c.id); err != nil {
				return fmt.Errorf("dispatch: relinearize disable weight: %w", err)
			}
		}

		if in.Interconnectors.IsMarketInterconnector(link.InterconnectorID) && math.Abs(flow) < elasticTolerance {
			if err := m.problem.DisableVariable(flowID); err != nil {
				return fmt.Errorf("dispatch: relinearize disable zero-flow link: %w", err)
			}
		}
	}
	return nil
}

// freezeSolution snapshots every variable's primal value and computes the
// objective from the LP solve that just ran, before any OCD re-run can
// overwrite the solver's internal state.
func (m *Market) freezeSolution(variables []variable.Variable, obj map[int]float64) {
	m.primal = make(map[int]float64, len(variables))
	m.objective = 0
	for _, v := range variables {
		val, err := m.problem.GetPrimal(v.ID)
		if err != nil {
			continue
		}
		m.primal[v.ID] = val
		m.objective += obj[v.ID] * val
	}
}

// runOCD implements the over-constrained-dispatch re-run (spec.md §4.9 step
// 7): if a region/FCAS price is at its cap or floor and some generic or FCAS
// elastic constraint has a non-zero deficit, push the violated constraints'
// rhs outward by the minimum amount needed and resolve for prices only.
func (m *Market) runOCD() error {
	triggered := false
	for _, cid := range m.demandConstraintID {
		p, err := m.problem.Price([]int{cid})
		if err != nil {
			return fmt.Errorf("dispatch: OCD price read: %w", err)
		}
		if p[cid] >= m.cfg.EnergyMarketCeilingPrice || p[cid] <= m.cfg.EnergyMarketFloorPrice {
			triggered = true
			break
		}
	}
	if !triggered {
		for _, cids := range m.fcasConstraintIDs {
			p, err := m.problem.Price(cids)
			if err != nil {
				return fmt.Errorf("dispatch: OCD price read: %w", err)
			}
			sum := 0.0
			for _, cid := range cids {
				sum += p[cid]
			}
			if sum >= m.cfg.FcasMarketCeilingPrice {
				triggered = true
				break
			}
		}
	}
	if !triggered {
		return nil
	}

	var violated []elasticDeficit
	for _, d := range m.elasticDeficits {
		if d.family != familyGeneric && d.family != familyFcasRequirement {
			continue
		}
		val, err := m.problem.GetPrimal(d.variableID)
		if err != nil {
			return fmt.Errorf("dispatch: OCD primal read: %w", err)
		}
		if val > elasticTolerance {
			violated = append(violated, d)
		}
	}
	if len(violated) == 0 {
		return nil
	}

	logger.Warn("DISPATCH", "run %s: OCD re-run triggered, %d violated constraint(s)", m.RunID, len(violated))
	for _, d := range violated {
		val, err := m.problem.GetPrimal(d.variableID)
		if err != nil {
			return fmt.Errorf("dispatch: OCD primal read: %w", err)
		}
		delta := (val + 0.01) * d.coefficient * -1
		newRHS := m.constraintRHS[d.constraintID] + delta
		m.constraintRHS[d.constraintID] = newRHS
		if err := m.problem.UpdateRHS(d.constraintID, newRHS); err != nil {
			return fmt.Errorf("dispatch: OCD update rhs: %w", err)
		}
	}

	status, err := m.problem.Optimize()
	if err != nil {
		return fmt.Errorf("dispatch: OCD re-solve: %w", err)
	}
	if status != solver.StatusOptimal {
		return fmt.Errorf("%w: %s", ErrLPInfeasible, status)
	}
	return nil
}

// DispatchAndGetObjective builds and solves a market, returning only its
// objective value (spec.md §4.3 "Fast-start orchestration", the Basslink
// alternating-switch use case: run two mutually exclusive scenarios and
// keep the cheaper one).
func DispatchAndGetObjective(cfg *config.Config, in Inputs) (float64, error) {
	m, err := NewMarket(cfg, in)
	if err != nil {
		return 0, err
	}
	return m.Objective(), nil
}

// Objective returns the frozen objective value from the post-relinearization
// LP solve.
func (m *Market) Objective() float64 {
	return m.objective
}

// Status returns the solver status the frozen solution was read from.
func (m *Market) Status() solver.Status {
	return m.status
}

// VariableValues returns every variable's frozen primal value, keyed by id.
func (m *Market) VariableValues() map[int]float64 {
	out := make(map[int]float64, len(m.primal))
	for k, v := range m.primal {
		out[k] = v
	}
	return out
}

// ConstraintSlack returns constraintID's slack in the current solver state
// (post-OCD if a re-run happened).
func (m *Market) ConstraintSlack(constraintID int) (float64, error) {
	return m.problem.GetSlack(constraintID)
}

// Price returns the dual (shadow price) of each requested constraint id in
// the current solver state (post-OCD if a re-run happened).
func (m *Market) Price(constraintIDs []int) (map[int]float64, error) {
	return m.problem.Price(constraintIDs)
}

// ConstraintLabel returns the human-readable label a builder gave
// constraintID.
func (m *Market) ConstraintLabel(constraintID int) (string, bool) {
	l, ok := m.constraintLabel[constraintID]
	return l, ok
}

// BidVariables exposes the bid variable maps for result extraction.
func (m *Market) BidVariables() *variable.BidVariables {
	return m.bidVars
}

// LossResult exposes the interconnector flow/loss variable ids for result
// extraction.
func (m *Market) LossResult() lossmodel.Result {
	return m.lossRes
}

// DemandConstraintID returns region's demand-balance constraint id.
func (m *Market) DemandConstraintID(region string) (int, bool) {
	id, ok := m.demandConstraintID[region]
	return id, ok
}

// FcasConstraintIDs returns every set-level FCAS requirement constraint id
// containing (region, service) (spec.md §4.10 "fcas_prices").
func (m *Market) FcasConstraintIDs(region string, service model.Service) []int {
	return m.fcasConstraintIDs[fcasKey{Region: region, Service: service}]
}

// AvailabilityHeadroom returns the minimum slack, in the direction that
// service could still move, across every enablement/ramp/joint constraint
// (unit, service) participates in. A service bound by no such constraint
// has unlimited headroom (spec.md §4.10 "fcas_availability").
func (m *Market) AvailabilityHeadroom(unit string, service model.Service) (float64, error) {
	bounds := m.availabilityConstraints[availabilityKey{Unit: unit, Service: service}]
	if len(bounds) == 0 {
		return math.Inf(1), nil
	}
	min := math.Inf(1)
	for _, b := range bounds {
		slack, err := m.problem.GetSlack(b.constraintID)
		if err != nil {
			return 0, fmt.Errorf("dispatch: availability slack: %w", err)
		}
		headroom := slack
		if b.coefficient < 0 {
			headroom = -slack
		}
		if headroom < min {
			min = headroom
		}
	}
	return min, nil
}
