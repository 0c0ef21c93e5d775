package result

import (
	"fmt"

	"spotclear/internal/dispatch"
	"spotclear/internal/model"
)

// UnitDispatch is one (unit, service, dispatch_type)'s summed bid-variable
// primal (spec.md §4.10 "unit_dispatch").
type UnitDispatch struct {
	Unit         string
	Service      model.Service
	DispatchType model.DispatchType
	MW           float64
}

// InterconnectorFlow is one link's flow and loss primal (spec.md §4.10
// "interconnector_flows").
type InterconnectorFlow struct {
	InterconnectorID string
	LinkID           string
	FlowMW           float64
	LossMW           float64
}

// RegionPrice is one region's demand-balance shadow price (spec.md §4.10
// "energy_prices").
type RegionPrice struct {
	Region string
	Price  float64
}

// FcasPrice is one (region, service)'s summed FCAS-requirement shadow price
// (spec.md §4.10 "fcas_prices").
type FcasPrice struct {
	Region  string
	Service model.Service
	Price   float64
}

// RegionSummary is one region's dispatch/interconnector/loss accounting
// (spec.md §4.10 "region_dispatch_summary").
type RegionSummary struct {
	Region string

	// NetDispatchMW is energy dispatch net of the region's own bid stacks,
	// loads negative (the same coefficients the demand balance solved
	// against).
	NetDispatchMW float64

	// InterconnectorNetInflowMW is the signed sum of every link's flow
	// contribution to this region (positive = net inflow).
	InterconnectorNetInflowMW float64

	// InterconnectorLossMW is this region's loss-share of every
	// incident link's loss.
	InterconnectorLossMW float64

	// TransmissionLossMW is flow · (1 − loss_factor) at each incident link
	// end currently carrying flow in that end's positive direction.
	TransmissionLossMW float64
}

// Availability is one (unit, service)'s dispatch plus remaining headroom
// (spec.md §4.10 "fcas_availability").
type Availability struct {
	Unit       string
	Service    model.Service
	DispatchMW float64
	HeadroomMW float64
}

// Set bundles every result table extracted from one solved market.
type Set struct {
	UnitDispatch        []UnitDispatch
	InterconnectorFlows []InterconnectorFlow
	EnergyPrices        []RegionPrice
	FcasPrices          []FcasPrice
	RegionSummaries     []RegionSummary
	Availabilities      []Availability
}

// Extract reads every result table out of a solved market. in must be the
// same Inputs the market was built from.
func Extract(m *dispatch.Market, in dispatch.Inputs) (Set, error) {
	values := m.VariableValues()

	var out Set
	out.UnitDispatch = extractUnitDispatch(m, values)

	flows, err := extractInterconnectorFlows(m, in, values)
	if err != nil {
		return out, err
	}
	out.InterconnectorFlows = flows

	prices, err := extractEnergyPrices(m, in)
	if err != nil {
		return out, err
	}
	out.EnergyPrices = prices

	fcasPrices, err := extractFcasPrices(m, in)
	if err != nil {
		return out, err
	}
	out.FcasPrices = fcasPrices

	summaries, err := extractRegionSummaries(m, in, values)
	if err != nil {
		return out, err
	}
	out.RegionSummaries = summaries

	availabilities, err := extractAvailabilities(m, in, values)
	if err != nil {
		return out, err
	}
	out.Availabilities = availabilities

	return out, nil
}

func extractUnitDispatch(m *dispatch.Market, values map[int]float64) []UnitDispatch {
	out := make([]UnitDispatch, 0, len(m.BidVariables().Index))
	for key, vids := range m.BidVariables().Index {
		sum := 0.0
		for _, vid := range vids {
			sum += values[vid]
		}
		out = append(out, UnitDispatch{
			Unit: key.Unit, Service: key.Service, DispatchType: key.DispatchType, MW: sum,
		})
	}
	return out
}

func extractInterconnectorFlows(m *dispatch.Market, in dispatch.Inputs, values map[int]float64) ([]InterconnectorFlow, error) {
	lossRes := m.LossResult()
	out := make([]InterconnectorFlow, 0, len(in.Interconnectors.Links()))
	for _, k := range in.Interconnectors.Links() {
		flowID, ok := lossRes.FlowVariableID[k]
		if !ok {
			return nil, fmt.Errorf("result: no flow variable for %s/%s", k.InterconnectorID, k.LinkID)
		}
		lossID := lossRes.LossVariableID[k]
		out = append(out, InterconnectorFlow{
			InterconnectorID: k.InterconnectorID, LinkID: k.LinkID,
			FlowMW: values[flowID], LossMW: values[lossID],
		})
	}
	return out, nil
}

func extractEnergyPrices(m *dispatch.Market, in dispatch.Inputs) ([]RegionPrice, error) {
	regions := uniqueDemandRegions(in.Demands)
	out := make([]RegionPrice, 0, len(regions))
	for _, region := range regions {
		cid, ok := m.DemandConstraintID(region)
		if !ok {
			continue
		}
		price, err := m.Price([]int{cid})
		if err != nil {
			return nil, fmt.Errorf("result: energy price for %s: %w", region, err)
		}
		out = append(out, RegionPrice{Region: region, Price: price[cid]})
	}
	return out, nil
}

func extractFcasPrices(m *dispatch.Market, in dispatch.Inputs) ([]FcasPrice, error) {
	seen := make(map[fcasGroupKey]bool)
	var out []FcasPrice
	for _, r := range in.FcasRequirements {
		k := fcasGroupKey{Region: r.Region, Service: r.Service}
		if seen[k] {
			continue
		}
		seen[k] = true

		cids := m.FcasConstraintIDs(r.Region, r.Service)
		prices, err := m.Price(cids)
		if err != nil {
			return nil, fmt.Errorf("result: fcas price for %s/%s: %w", r.Region, r.Service, err)
		}
		sum := 0.0
		for _, cid := range cids {
			sum += prices[cid]
		}
		out = append(out, FcasPrice{Region: r.Region, Service: r.Service, Price: sum})
	}
	return out, nil
}

type fcasGroupKey struct {
	Region  string
	Service model.Service
}

func extractRegionSummaries(m *dispatch.Market, in dispatch.Inputs, values map[int]float64) ([]RegionSummary, error) {
	byRegion := make(map[string]*RegionSummary)
	regionOf := func(region string) *RegionSummary {
		s, ok := byRegion[region]
		if !ok {
			s = &RegionSummary{Region: region}
			byRegion[region] = s
		}
		return s
	}

	for _, row := range m.BidVariables().RegionMap {
		if row.Service != model.Energy {
			continue
		}
		regionOf(row.Region).NetDispatchMW += row.Coefficient * values[row.VariableID]
	}

	lossRes := m.LossResult()
	for _, k := range in.Interconnectors.Links() {
		link, ok := in.Interconnectors.Get(k)
		if !ok {
			continue
		}
		lossModel, ok := in.Losses.Model(k)
		if !ok {
			return nil, fmt.Errorf("result: no loss model for %s/%s", k.InterconnectorID, k.LinkID)
		}
		flow := values[lossRes.FlowVariableID[k]]
		loss := values[lossRes.LossVariableID[k]]

		regionOf(link.FromRegion).InterconnectorNetInflowMW -= flow * link.FromRegionLossFactor
		regionOf(link.ToRegion).InterconnectorNetInflowMW += flow * link.ToRegionLossFactor
		regionOf(link.FromRegion).InterconnectorLossMW += loss * lossModel.FromRegionLossShare
		regionOf(link.ToRegion).InterconnectorLossMW += loss * (1 - lossModel.FromRegionLossShare)

		if flow >= 0 {
			regionOf(link.ToRegion).TransmissionLossMW += flow * (1 - link.ToRegionLossFactor)
		} else {
			regionOf(link.FromRegion).TransmissionLossMW += -flow * (1 - link.FromRegionLossFactor)
		}
	}

	for _, d := range in.Demands {
		regionOf(d.Region)
	}

	out := make([]RegionSummary, 0, len(byRegion))
	for _, s := range byRegion {
		out = append(out, *s)
	}
	return out, nil
}

func extractAvailabilities(m *dispatch.Market, in dispatch.Inputs, values map[int]float64) ([]Availability, error) {
	var out []Availability
	for key, vids := range m.BidVariables().Index {
		if !key.Service.IsFCAS() {
			continue
		}
		dispatchMW := 0.0
		for _, vid := range vids {
			dispatchMW += values[vid]
		}
		headroom, err := m.AvailabilityHeadroom(key.Unit, key.Service)
		if err != nil {
			return nil, fmt.Errorf("result: availability for %s/%s: %w", key.Unit, key.Service, err)
		}
		out = append(out, Availability{
			Unit: key.Unit, Service: key.Service, DispatchMW: dispatchMW, HeadroomMW: headroom,
		})
	}
	return out, nil
}

func uniqueDemandRegions(demands []model.Demand) []string {
	seen := make(map[string]bool)
	var out []string
	for _, d := range demands {
		if seen[d.Region] {
			continue
		}
		seen[d.Region] = true
		out = append(out, d.Region)
	}
	return out
}
