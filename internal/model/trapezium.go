package model

// FcasTrapezium is the regulation or contingency FCAS feasibility
// trapezium for a (unit, dispatch_type, service) (spec.md §3).
type FcasTrapezium struct {
	Unit            string
	DispatchType    DispatchType
	Service         Service
	MaxAvailability float64
	EnablementMin   float64
	LowBreakPoint   float64
	HighBreakPoint  float64
	EnablementMax   float64
}

// UpperSlopeCoefficient is (enablement_max - high_break_point) / max_availability.
// Returns 0 when max availability is zero, matching an unused trapezium.
func (t FcasTrapezium) UpperSlopeCoefficient() float64 {
	if t.MaxAvailability == 0 {
		return 0
	}
	return (t.EnablementMax - t.HighBreakPoint) / t.MaxAvailability
}

// LowerSlopeCoefficient is (low_break_point - enablement_min) / max_availability.
func (t FcasTrapezium) LowerSlopeCoefficient() float64 {
	if t.MaxAvailability == 0 {
		return 0
	}
	return (t.LowBreakPoint - t.EnablementMin) / t.MaxAvailability
}
