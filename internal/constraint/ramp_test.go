package constraint

import (
	"testing"

	"github.com/stretchr/testify/require"

	"spotclear/internal/ids"
	"spotclear/internal/model"
	"spotclear/internal/rampprep"
)

func TestBuildRampUp_BoundsInitialOutputPlusRampRate(t *testing.T) {
	alloc := ids.NewAllocator()
	rows := []rampprep.NonBidirectional{
		{Unit: "A", DispatchType: model.Generator, InitialOutput: 100, RampUpRate: 60, RampDownRate: 60},
	}

	res := BuildRampUp(alloc, rows, 30)
	require.Len(t, res.Rows, 1)
	require.Equal(t, model.LessEqual, res.Rows[0].Type)
	require.InDelta(t, 130, res.Rows[0].RHS, 1e-9) // 100 + 60*0.5

	require.Len(t, res.UnitScope, 1)
	require.Equal(t, "A", res.UnitScope[0].Unit)
	require.Equal(t, model.Energy, res.UnitScope[0].Service)
	require.Equal(t, res.Rows[0].ConstraintID, res.UnitScope[0].ConstraintID)
}

func TestBuildRampDown_BoundsInitialOutputMinusRampRate(t *testing.T) {
	alloc := ids.NewAllocator()
	rows := []rampprep.NonBidirectional{
		{Unit: "A", DispatchType: model.Generator, InitialOutput: 100, RampUpRate: 60, RampDownRate: 40},
	}

	res := BuildRampDown(alloc, rows, 30)
	require.Equal(t, model.GreaterEqual, res.Rows[0].Type)
	require.InDelta(t, 80, res.Rows[0].RHS, 1e-9) // 100 - 40*0.5
}

func TestBuildBidirectionalRampUp_ScopesBothSides(t *testing.T) {
	alloc := ids.NewAllocator()
	rows := []rampprep.Bidirectional{
		{Unit: "PUMP", NetInitialOutput: 10, CompositeRampUp: 120, CompositeRampDown: 120},
	}

	res := BuildBidirectionalRampUp(alloc, rows, 60)
	require.Len(t, res.Rows, 1)
	require.InDelta(t, 130, res.Rows[0].RHS, 1e-9) // 10 + 120*1
	require.Len(t, res.UnitScope, 2)

	sides := map[model.DispatchType]bool{}
	for _, s := range res.UnitScope {
		sides[s.DispatchType] = true
		require.Equal(t, model.Energy, s.Service)
	}
	require.True(t, sides[model.Generator])
	require.True(t, sides[model.Load])
}

func TestBuildRampUp_ClaimsOneConstraintIDPerRow(t *testing.T) {
	alloc := ids.NewAllocator()
	rows := []rampprep.NonBidirectional{
		{Unit: "A", DispatchType: model.Generator},
		{Unit: "B", DispatchType: model.Generator},
	}

	res := BuildRampUp(alloc, rows, 30)
	require.Len(t, res.Rows, 2)
	require.NotEqual(t, res.Rows[0].ConstraintID, res.Rows[1].ConstraintID)
}
