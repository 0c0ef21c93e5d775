package constraint

import (
	"testing"

	"github.com/stretchr/testify/require"

	"spotclear/internal/ids"
	"spotclear/internal/model"
	"spotclear/internal/variable"
)

func TestBuildFastStartBands_ModeZeroPinsToZero(t *testing.T) {
	alloc := ids.NewAllocator()
	res := BuildFastStartBands(alloc, []model.FastStartProfile{{Unit: "A", Mode: model.ModeOff}})

	require.Len(t, res.Rows, 2)
	require.Equal(t, 0.0, res.Rows[0].RHS)
	require.Equal(t, 0.0, res.Rows[1].RHS)
}

func TestBuildFastStartBands_ModeTwoPinsToProRataMinLoading(t *testing.T) {
	alloc := ids.NewAllocator()
	res := BuildFastStartBands(alloc, []model.FastStartProfile{
		{Unit: "A", Mode: model.ModeRampToMin, TimeInMode: 15, ModeTwoLength: 30, MinLoading: 100},
	})

	require.Len(t, res.Rows, 2)
	require.InDelta(t, 50, res.Rows[0].RHS, 1e-9) // 15/30 * 100
	require.InDelta(t, 50, res.Rows[1].RHS, 1e-9)
}

func TestBuildFastStartBands_ModeThreeBoundsBelowOnly(t *testing.T) {
	alloc := ids.NewAllocator()
	res := BuildFastStartBands(alloc, []model.FastStartProfile{
		{Unit: "A", Mode: model.ModeFlexible, MinLoading: 40},
	})

	require.Len(t, res.Rows, 1)
	require.Equal(t, model.GreaterEqual, res.Rows[0].Type)
	require.Equal(t, 40.0, res.Rows[0].RHS)
}

func TestBuildFastStartBands_ModeFourRampsDownFromMinLoading(t *testing.T) {
	alloc := ids.NewAllocator()
	res := BuildFastStartBands(alloc, []model.FastStartProfile{
		{Unit: "A", Mode: model.ModeRampDown, TimeInMode: 10, ModeFourLength: 40, MinLoading: 100},
	})

	require.Len(t, res.Rows, 2)
	require.InDelta(t, 75, res.Rows[0].RHS, 1e-9) // 100 * (1 - 10/40)
}

func TestBuildTieBreak_ChainsEqualPriceBandsAcrossUnitsOnly(t *testing.T) {
	alloc := ids.NewAllocator()
	units, err := model.NewUnitRegistry([]model.UnitInfo{
		{Unit: "A", Region: "R", DispatchType: model.Generator},
		{Unit: "B", Region: "R", DispatchType: model.Generator},
	})
	require.NoError(t, err)

	bids := model.NewBidBook()
	require.NoError(t, bids.SetVolumeBids([]model.VolumeBid{
		{Unit: "A", Service: model.Energy, DispatchType: model.Generator, Bands: model.BandVolumes{50}},
		{Unit: "B", Service: model.Energy, DispatchType: model.Generator, Bands: model.BandVolumes{30}},
	}))
	require.NoError(t, bids.SetPriceBids([]model.PriceBid{
		{Unit: "A", Service: model.Energy, DispatchType: model.Generator, Bands: model.BandVolumes{100}},
		{Unit: "B", Service: model.Energy, DispatchType: model.Generator, Bands: model.BandVolumes{100}},
	}))

	bidVars, err := variable.BuildBidVariables(ids.NewAllocator(), bids, units)
	require.NoError(t, err)

	res := BuildTieBreak(alloc, bidVars, units)
	require.Len(t, res.Rows, 1)
	require.Equal(t, model.Equal, res.Rows[0].Type)
	require.Len(t, res.Explicit, 2)

	coeffs := map[int]float64{}
	for _, lhs := range res.Explicit {
		coeffs[lhs.VariableID] = lhs.Coefficient
	}
	var got []float64
	for _, c := range coeffs {
		got = append(got, c)
	}
	require.ElementsMatch(t, []float64{1.0 / 50, -1.0 / 30}, got)
}

func TestBuildTieBreak_NoConstraintForDifferentPrices(t *testing.T) {
	alloc := ids.NewAllocator()
	units, err := model.NewUnitRegistry([]model.UnitInfo{
		{Unit: "A", Region: "R", DispatchType: model.Generator},
		{Unit: "B", Region: "R", DispatchType: model.Generator},
	})
	require.NoError(t, err)

	bids := model.NewBidBook()
	require.NoError(t, bids.SetVolumeBids([]model.VolumeBid{
		{Unit: "A", Service: model.Energy, DispatchType: model.Generator, Bands: model.BandVolumes{50}},
		{Unit: "B", Service: model.Energy, DispatchType: model.Generator, Bands: model.BandVolumes{30}},
	}))
	require.NoError(t, bids.SetPriceBids([]model.PriceBid{
		{Unit: "A", Service: model.Energy, DispatchType: model.Generator, Bands: model.BandVolumes{100}},
		{Unit: "B", Service: model.Energy, DispatchType: model.Generator, Bands: model.BandVolumes{90}},
	}))

	bidVars, err := variable.BuildBidVariables(ids.NewAllocator(), bids, units)
	require.NoError(t, err)

	res := BuildTieBreak(alloc, bidVars, units)
	require.Empty(t, res.Rows)
}
