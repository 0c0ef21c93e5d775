package dispatch

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"spotclear/internal/config"
	"spotclear/internal/model"
	"spotclear/internal/solver"
)

func unitDispatch(t *testing.T, m *Market, unit string, service model.Service, dispatchType model.DispatchType) float64 {
	t.Helper()
	values := m.VariableValues()
	sum := 0.0
	for _, vid := range m.BidVariables().Index.VariablesFor(unit, service, dispatchType) {
		sum += values[vid]
	}
	return sum
}

func TestNewMarket_SingleRegionMeritOrder(t *testing.T) {
	// spec.md §8 scenario 1.
	units, err := model.NewUnitRegistry([]model.UnitInfo{
		{Unit: "A", Region: "R", DispatchType: model.Generator, LossFactor: 1},
		{Unit: "B", Region: "R", DispatchType: model.Generator, LossFactor: 1},
	})
	require.NoError(t, err)

	bids := model.NewBidBook()
	require.NoError(t, bids.SetVolumeBids([]model.VolumeBid{
		{Unit: "A", Service: model.Energy, DispatchType: model.Generator, Bands: model.BandVolumes{20, 20, 5}},
		{Unit: "B", Service: model.Energy, DispatchType: model.Generator, Bands: model.BandVolumes{50, 30, 10}},
	}))
	require.NoError(t, bids.SetPriceBids([]model.PriceBid{
		{Unit: "A", Service: model.Energy, DispatchType: model.Generator, Bands: model.BandVolumes{50, 100, 100}},
		{Unit: "B", Service: model.Energy, DispatchType: model.Generator, Bands: model.BandVolumes{100, 130, 150}},
	}))

	in := Inputs{
		Units:           units,
		Bids:            bids,
		Interconnectors: model.NewInterconnectorRegistry(nil),
		Losses:          model.NewLossRegistry(nil, nil),
		Demands:         []model.Demand{{Region: "R", MW: 100}},
	}

	m, err := NewMarket(config.Default(), in)
	require.NoError(t, err)
	require.Equal(t, solver.StatusOptimal, m.Status())

	a := unitDispatch(t, m, "A", model.Energy, model.Generator)
	b := unitDispatch(t, m, "B", model.Energy, model.Generator)
	require.InDelta(t, 45, a, 0.5)
	require.InDelta(t, 55, b, 0.5)

	cid, ok := m.DemandConstraintID("R")
	require.True(t, ok)
	price, err := m.Price([]int{cid})
	require.NoError(t, err)
	require.InDelta(t, 130, price[cid], 0.5)
}

func TestNewMarket_InterconnectorLoss(t *testing.T) {
	// spec.md §8 scenario 2.
	units, err := model.NewUnitRegistry([]model.UnitInfo{
		{Unit: "A", Region: "NSW", DispatchType: model.Generator, LossFactor: 1},
	})
	require.NoError(t, err)

	bids := model.NewBidBook()
	require.NoError(t, bids.SetVolumeBids([]model.VolumeBid{
		{Unit: "A", Service: model.Energy, DispatchType: model.Generator, Bands: model.BandVolumes{100}},
	}))
	require.NoError(t, bids.SetPriceBids([]model.PriceBid{
		{Unit: "A", Service: model.Energy, DispatchType: model.Generator, Bands: model.BandVolumes{80}},
	}))

	link := model.InterconnectorDirection{
		InterconnectorID: "inter_one", FromRegion: "NSW", ToRegion: "VIC",
		Min: -100, Max: 100, FromRegionLossFactor: 1, ToRegionLossFactor: 1, GenericConstraintFactor: 1,
	}
	interconnectors := model.NewInterconnectorRegistry([]model.InterconnectorDirection{link})
	losses := model.NewLossRegistry(
		[]model.LossModel{{
			InterconnectorID: "inter_one", LinkID: "inter_one", FromRegionLossShare: 0.5,
			Eval: func(flow float64) float64 { return 0.05 * math.Abs(flow) },
		}},
		[]model.LossBreakpoint{
			{InterconnectorID: "inter_one", LinkID: "inter_one", LossSegment: 0, BreakPoint: -120},
			{InterconnectorID: "inter_one", LinkID: "inter_one", LossSegment: 1, BreakPoint: 0},
			{InterconnectorID: "inter_one", LinkID: "inter_one", LossSegment: 2, BreakPoint: 100},
		},
	)

	in := Inputs{
		Units:           units,
		Bids:            bids,
		Interconnectors: interconnectors,
		Losses:          losses,
		Demands:         []model.Demand{{Region: "NSW", MW: 0}, {Region: "VIC", MW: 90}},
	}

	m, err := NewMarket(config.Default(), in)
	require.NoError(t, err)

	a := unitDispatch(t, m, "A", model.Energy, model.Generator)
	require.InDelta(t, 94.615, a, 0.5)

	link2 := model.LinkKey{InterconnectorID: "inter_one", LinkID: "inter_one"}
	flowID := m.LossResult().FlowVariableID[link2]
	flow := m.VariableValues()[flowID]
	require.InDelta(t, 92.308, flow, 0.5)
}
