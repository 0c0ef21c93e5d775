package rampprep

import (
	"fmt"

	"spotclear/internal/model"
)

// NonBidirectional is one normalized ramp row for a unit that is not part of
// a bidirectional pair.
type NonBidirectional struct {
	Unit          string
	DispatchType  model.DispatchType
	InitialOutput float64
	RampUpRate    float64
	RampDownRate  float64
}

// Bidirectional is one normalized composite ramp row for a bidirectional
// unit pair, computed from the gen-side and load-side ramp details
// (spec.md §4.3 "Composite bidirectional ramp").
type Bidirectional struct {
	Unit              string
	NetInitialOutput  float64 // positive = net generation, negative = net load draw
	CompositeRampUp   float64
	CompositeRampDown float64
}

// Compose picks min(bid, SCADA) ramp rates where SCADA rates are supplied,
// then splits rows into non-bidirectional and bidirectional composite rows
// (spec.md §4.5).
func Compose(details []model.RampDetails, scada []model.ScadaRampRates, units *model.UnitRegistry, dispatchIntervalMinutes float64) ([]NonBidirectional, []Bidirectional, error) {
	scadaByUnit := make(map[string]model.ScadaRampRates, len(scada))
	for _, s := range scada {
		scadaByUnit[s.Unit] = s
	}

	byKey := make(map[model.UnitKey]model.RampDetails, len(details))
	for _, d := range details {
		dt := d.DispatchType
		if dt == "" {
			dt = model.Generator
		}
		d.DispatchType = dt
		byKey[model.UnitKey{Unit: d.Unit, DispatchType: dt}] = d
	}

	effectiveRates := func(d model.RampDetails) (up, down float64) {
		up, down = d.RampUpRate, d.RampDownRate
		if s, ok := scadaByUnit[d.Unit]; ok {
			up = minPositive(up, s.ScadaRampUpRate)
			down = minPositive(down, s.ScadaRampDownRate)
		}
		return
	}

	var nonBi []NonBidirectional
	var bi []Bidirectional
	seenBi := make(map[string]bool)

	for key, d := range byKey {
		unit := key.Unit
		if !units.IsBidirectional(unit) {
			up, down := effectiveRates(d)
			nonBi = append(nonBi, NonBidirectional{
				Unit: unit, DispatchType: d.DispatchType,
				InitialOutput: d.InitialOutput, RampUpRate: up, RampDownRate: down,
			})
			continue
		}
		if seenBi[unit] {
			continue
		}
		seenBi[unit] = true

		genRow, okGen := byKey[model.UnitKey{Unit: unit, DispatchType: model.Generator}]
		loadRow, okLoad := byKey[model.UnitKey{Unit: unit, DispatchType: model.Load}]
		if !okGen || !okLoad {
			return nil, nil, fmt.Errorf("%w: unit %q", ErrMissingRampDetails, unit)
		}

		rampUpGen, rampDownGen := effectiveRates(genRow)
		rampUpLoad, rampDownLoad := effectiveRates(loadRow)
		net := genRow.InitialOutput - loadRow.InitialOutput

		bi = append(bi, Bidirectional{
			Unit:              unit,
			NetInitialOutput:  net,
			CompositeRampUp:   compositeRampUp(rampUpGen, rampDownLoad, net, dispatchIntervalMinutes),
			CompositeRampDown: compositeRampDown(rampDownGen, rampUpLoad, net, dispatchIntervalMinutes),
		})
	}
	return nonBi, bi, nil
}

func minPositive(a, b float64) float64 {
	if b <= 0 {
		return a
	}
	if a <= 0 {
		return b
	}
	if b < a {
		return b
	}
	return a
}

// compositeRampUp implements spec.md §4.3's composite-ramp-up formula.
func compositeRampUp(rampUpGen, rampDownLoad, net, dispatchIntervalMinutes float64) float64 {
	hours := dispatchIntervalMinutes / 60
	if net >= 0 {
		return rampUpGen
	}
	absInit := -net
	if rampDownLoad <= 0 || absInit/rampDownLoad >= hours {
		return rampDownLoad
	}
	remaining := hours - absInit/rampDownLoad
	return (remaining*rampUpGen - net) / hours
}

// compositeRampDown is the symmetric mirror of compositeRampUp: every
// "up" rate is replaced by the corresponding "down" rate and vice versa,
// with the same net-output sign convention (spec.md §4.3 "Symmetric formula
// for composite down").
func compositeRampDown(rampDownGen, rampUpLoad, net, dispatchIntervalMinutes float64) float64 {
	hours := dispatchIntervalMinutes / 60
	if net >= 0 {
		return rampDownGen
	}
	absInit := -net
	if rampUpLoad <= 0 || absInit/rampUpLoad >= hours {
		return rampUpLoad
	}
	remaining := hours - absInit/rampUpLoad
	return (remaining*rampDownGen - net) / hours
}
