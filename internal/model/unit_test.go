package model

import "testing"

func TestNewUnitRegistry_DuplicateKeyErrors(t *testing.T) {
	_, err := NewUnitRegistry([]UnitInfo{
		{Unit: "A", Region: "R", DispatchType: Generator},
		{Unit: "A", Region: "R", DispatchType: Generator},
	})
	if err == nil {
		t.Fatal("expected ErrDuplicateKey for repeated (unit, dispatch_type)")
	}
}

func TestNewUnitRegistry_InvalidDispatchTypeErrors(t *testing.T) {
	_, err := NewUnitRegistry([]UnitInfo{{Unit: "A", Region: "R", DispatchType: "bogus"}})
	if err == nil {
		t.Fatal("expected error for invalid dispatch_type")
	}
}

func TestUnitRegistry_IsBidirectionalRequiresBothSides(t *testing.T) {
	reg, err := NewUnitRegistry([]UnitInfo{
		{Unit: "PUMP", Region: "R", DispatchType: Generator},
		{Unit: "PUMP", Region: "R", DispatchType: Load},
		{Unit: "GEN", Region: "R", DispatchType: Generator},
	})
	if err != nil {
		t.Fatalf("NewUnitRegistry: %v", err)
	}
	if !reg.IsBidirectional("PUMP") {
		t.Error("PUMP should be bidirectional")
	}
	if reg.IsBidirectional("GEN") {
		t.Error("GEN should not be bidirectional")
	}
}

func TestUnitRegistry_RequireBothSidesDetectsMissingRow(t *testing.T) {
	reg, err := NewUnitRegistry([]UnitInfo{
		{Unit: "PUMP", Region: "R", DispatchType: Generator},
		{Unit: "PUMP", Region: "R", DispatchType: Load},
	})
	if err != nil {
		t.Fatalf("NewUnitRegistry: %v", err)
	}
	present := map[UnitKey]bool{{Unit: "PUMP", DispatchType: Generator}: true}
	if err := reg.RequireBothSides("ramp_details", present); err == nil {
		t.Fatal("expected error, load-side row missing from present")
	}
}
