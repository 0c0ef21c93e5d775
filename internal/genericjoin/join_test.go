package genericjoin

import (
	"testing"

	"github.com/stretchr/testify/require"

	"spotclear/internal/ids"
	"spotclear/internal/model"
	"spotclear/internal/variable"
)

func buildBidVars(t *testing.T) *variable.BidVariables {
	t.Helper()
	units, err := model.NewUnitRegistry([]model.UnitInfo{
		{Unit: "A", Region: "R", DispatchType: model.Generator, LossFactor: 1},
	})
	require.NoError(t, err)
	bids := model.NewBidBook()
	require.NoError(t, bids.SetVolumeBids([]model.VolumeBid{
		{Unit: "A", Service: model.Energy, DispatchType: model.Generator, Bands: model.BandVolumes{10}},
	}))
	require.NoError(t, bids.SetPriceBids([]model.PriceBid{
		{Unit: "A", Service: model.Energy, DispatchType: model.Generator, Bands: model.BandVolumes{50}},
	}))
	bidVars, err := variable.BuildBidVariables(ids.NewAllocator(), bids, units)
	require.NoError(t, err)
	return bidVars
}

func TestJoin_UnitTermResolvesAgainstBidVariable(t *testing.T) {
	bidVars := buildBidVars(t)
	unitTerms := []model.GenericConstraintUnitTerm{
		{SetID: "SET1", Unit: "A", Service: model.Energy, DispatchType: model.Generator, Coefficient: 1},
	}
	setConstraintID := map[string]int{"SET1": 5}

	out, err := Join(unitTerms, nil, nil, setConstraintID, bidVars, model.NewInterconnectorRegistry(nil), nil)
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.Equal(t, 5, out[0].ConstraintID)
}

func TestJoin_UnknownSetIDErrors(t *testing.T) {
	bidVars := buildBidVars(t)
	unitTerms := []model.GenericConstraintUnitTerm{{SetID: "MISSING", Unit: "A", Service: model.Energy, DispatchType: model.Generator, Coefficient: 1}}

	_, err := Join(unitTerms, nil, nil, map[string]int{}, bidVars, model.NewInterconnectorRegistry(nil), nil)
	require.ErrorIs(t, err, ErrUnknownSet)
}

func TestJoin_InterconnectorTermAppliesGenericConstraintFactor(t *testing.T) {
	bidVars := buildBidVars(t)
	interconnectors := model.NewInterconnectorRegistry([]model.InterconnectorDirection{
		{InterconnectorID: "I1", FromRegion: "NSW", ToRegion: "VIC", GenericConstraintFactor: -1},
	})
	flowVariableID := map[model.LinkKey]int{{InterconnectorID: "I1", LinkID: "I1"}: 99}
	interTerms := []model.GenericConstraintInterconnectorTerm{{SetID: "SET1", InterconnectorID: "I1", Coefficient: 2}}
	setConstraintID := map[string]int{"SET1": 5}

	out, err := Join(nil, nil, interTerms, setConstraintID, bidVars, interconnectors, flowVariableID)
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.Equal(t, 99, out[0].VariableID)
	require.InDelta(t, -2, out[0].Coefficient, 1e-9)
}

func TestJoin_UnknownInterconnectorErrors(t *testing.T) {
	bidVars := buildBidVars(t)
	interTerms := []model.GenericConstraintInterconnectorTerm{{SetID: "SET1", InterconnectorID: "MISSING", Coefficient: 1}}
	setConstraintID := map[string]int{"SET1": 5}

	_, err := Join(nil, nil, interTerms, setConstraintID, bidVars, model.NewInterconnectorRegistry(nil), nil)
	require.ErrorIs(t, err, ErrUnknownInterconnector)
}
