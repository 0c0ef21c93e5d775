package model

import "testing"

func TestLossRegistry_SortsBreakpointsBySegment(t *testing.T) {
	points := []LossBreakpoint{
		{InterconnectorID: "I1", LinkID: "I1", LossSegment: 2, BreakPoint: 100},
		{InterconnectorID: "I1", LinkID: "I1", LossSegment: 0, BreakPoint: -100},
		{InterconnectorID: "I1", LinkID: "I1", LossSegment: 1, BreakPoint: 0},
	}
	reg := NewLossRegistry(nil, points)

	got := reg.Breakpoints(LinkKey{InterconnectorID: "I1", LinkID: "I1"})
	if len(got) != 3 {
		t.Fatalf("got %d breakpoints, want 3", len(got))
	}
	for i, bp := range got {
		if bp.LossSegment != i {
			t.Fatalf("breakpoints not sorted: index %d has segment %d", i, bp.LossSegment)
		}
	}
}

func TestLossRegistry_DefaultsEmptyLinkID(t *testing.T) {
	reg := NewLossRegistry([]LossModel{{InterconnectorID: "I1", FromRegionLossShare: 0.5}}, nil)
	_, ok := reg.Model(LinkKey{InterconnectorID: "I1", LinkID: "I1"})
	if !ok {
		t.Fatal("expected loss model keyed by interconnector id when link id omitted")
	}
}

func TestFcasTrapezium_SlopeCoefficientsZeroWhenUnavailable(t *testing.T) {
	tz := FcasTrapezium{MaxAvailability: 0}
	if tz.UpperSlopeCoefficient() != 0 || tz.LowerSlopeCoefficient() != 0 {
		t.Fatal("slope coefficients should be zero for an unused trapezium")
	}
}

func TestFcasTrapezium_SlopeCoefficients(t *testing.T) {
	tz := FcasTrapezium{MaxAvailability: 50, EnablementMin: 0, LowBreakPoint: 20, HighBreakPoint: 80, EnablementMax: 100}
	if got := tz.UpperSlopeCoefficient(); got != 0.4 { // (100-80)/50
		t.Fatalf("UpperSlopeCoefficient() = %v, want 0.4", got)
	}
	if got := tz.LowerSlopeCoefficient(); got != 0.4 { // (20-0)/50
		t.Fatalf("LowerSlopeCoefficient() = %v, want 0.4", got)
	}
}
