package variable

import (
	"fmt"

	"spotclear/internal/ids"
	"spotclear/internal/model"
)

// BidIndex groups the variable ids backing each (unit, service,
// dispatch_type) bid stack, in band order, so constraint builders can sum
// or bound a unit's bid without re-deriving the join.
type BidIndex map[model.BidKey][]int

// VariablesFor returns the variable ids for a (unit, service, dispatch_type)
// bid stack, or nil if the unit offered no bands for it.
func (idx BidIndex) VariablesFor(unit string, service model.Service, dispatchType model.DispatchType) []int {
	return idx[model.BidKey{Unit: unit, Service: service, DispatchType: dispatchType}]
}

// BidVariables is the output of BuildBidVariables: one continuous variable
// per non-zero bid band plus the unit-level and regional constraint maps
// that join those variables into per-unit and per-region aggregates
// (spec.md §4.2).
type BidVariables struct {
	Variables []Variable
	UnitMap   []UnitMapRow
	RegionMap []RegionMapRow
	Index     BidIndex
	Bands     []model.BidBand // parallel to Variables, same order
}

// BuildBidVariables emits one continuous [0, volume] variable per non-zero
// bid band. The unit-level map coefficient is +1 except for a bidirectional
// unit's load-side energy bid, which carries -1 so that the gen-side and
// load-side energy variables net into a single composite output (spec.md
// §4.2). The regional map coefficient is +1 except for a pure (non-
// bidirectional) load's energy bid, which carries -1 so the regional demand
// constraint sees load as negative supply; every energy coefficient is
// additionally scaled by the unit's loss_factor (spec.md §8 "Sign
// convention").
func BuildBidVariables(alloc *ids.Allocator, bids *model.BidBook, units *model.UnitRegistry) (*BidVariables, error) {
	bands := bids.Bands()

	first := alloc.ClaimVariables(len(bands))
	out := &BidVariables{
		Variables: make([]Variable, 0, len(bands)),
		UnitMap:   make([]UnitMapRow, 0, len(bands)),
		RegionMap: make([]RegionMapRow, 0, len(bands)),
		Index:     make(BidIndex),
		Bands:     bands,
	}

	for i, band := range bands {
		info, ok := units.Get(band.Unit, band.DispatchType)
		if !ok {
			return nil, fmt.Errorf("variable: bid for unit %q dispatch_type %q has no unit_info row", band.Unit, band.DispatchType)
		}
		vid := first + i
		out.Variables = append(out.Variables, Variable{
			ID:         vid,
			LowerBound: 0,
			UpperBound: band.Volume,
			Type:       Continuous,
			Kind:       KindBid,
			Label:      fmt.Sprintf("bid[%s,%s,%s,band%d]", band.Unit, band.Service, band.DispatchType, band.Band),
		})

		bidirectional := units.IsBidirectional(band.Unit)

		unitCoef := 1.0
		if bidirectional && band.Service == model.Energy && band.DispatchType == model.Load {
			unitCoef = -1.0
		}
		out.UnitMap = append(out.UnitMap, UnitMapRow{
			VariableID: vid, Unit: band.Unit, Service: band.Service, DispatchType: band.DispatchType, Coefficient: unitCoef,
		})

		regionCoef := 1.0
		if !bidirectional && band.Service == model.Energy && band.DispatchType == model.Load {
			regionCoef = -1.0
		}
		if band.Service == model.Energy {
			lossFactor := info.LossFactor
			if lossFactor == 0 {
				lossFactor = 1.0
			}
			regionCoef *= lossFactor
		}
		out.RegionMap = append(out.RegionMap, RegionMapRow{
			VariableID: vid, Region: info.Region, Service: band.Service, DispatchType: band.DispatchType, Coefficient: regionCoef,
		})

		k := model.BidKey{Unit: band.Unit, Service: band.Service, DispatchType: band.DispatchType}
		out.Index[k] = append(out.Index[k], vid)
	}

	return out, nil
}
