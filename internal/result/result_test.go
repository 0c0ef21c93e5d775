package result

import (
	"testing"

	"github.com/stretchr/testify/require"

	"spotclear/internal/config"
	"spotclear/internal/dispatch"
	"spotclear/internal/model"
)

func TestExtract_SingleRegionMeritOrder(t *testing.T) {
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

	in := dispatch.Inputs{
		Units:           units,
		Bids:            bids,
		Interconnectors: model.NewInterconnectorRegistry(nil),
		Losses:          model.NewLossRegistry(nil, nil),
		Demands:         []model.Demand{{Region: "R", MW: 100}},
	}

	m, err := dispatch.NewMarket(config.Default(), in)
	require.NoError(t, err)

	set, err := Extract(m, in)
	require.NoError(t, err)

	require.Len(t, set.EnergyPrices, 1)
	require.Equal(t, "R", set.EnergyPrices[0].Region)
	require.InDelta(t, 130, set.EnergyPrices[0].Price, 0.5)

	var totalA, totalB float64
	for _, ud := range set.UnitDispatch {
		switch ud.Unit {
		case "A":
			totalA += ud.MW
		case "B":
			totalB += ud.MW
		}
	}
	require.InDelta(t, 45, totalA, 0.5)
	require.InDelta(t, 55, totalB, 0.5)

	require.Empty(t, set.InterconnectorFlows)
	require.Len(t, set.RegionSummaries, 1)
	require.InDelta(t, 100, set.RegionSummaries[0].NetDispatchMW, 0.5)
}
