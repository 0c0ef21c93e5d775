package model

import "testing"

func TestFastStartProfile_AdvanceSpillsFromPreStartIntoRampToMin(t *testing.T) {
	p := FastStartProfile{Mode: ModePreStartOff, TimeInMode: 20, ModeOneLength: 30, ModeTwoLength: 60}
	out := p.Advance(30) // 10 remaining in mode 1, 20 spills into mode 2

	if out.Mode != ModeRampToMin {
		t.Fatalf("Mode = %d, want ModeRampToMin", out.Mode)
	}
	if out.TimeInMode != 20 {
		t.Fatalf("TimeInMode = %v, want 20", out.TimeInMode)
	}
}

func TestFastStartProfile_AdvanceRecordsTimeSinceEndOfModeTwoOnTransitionToFlexible(t *testing.T) {
	p := FastStartProfile{Mode: ModeRampToMin, TimeInMode: 50, ModeTwoLength: 60}
	out := p.Advance(30) // 10 remaining in mode 2, 20 spills into mode 3

	if out.Mode != ModeFlexible {
		t.Fatalf("Mode = %d, want ModeFlexible", out.Mode)
	}
	if out.TimeSinceEndOfModeTwo == nil || *out.TimeSinceEndOfModeTwo != 20 {
		t.Fatalf("TimeSinceEndOfModeTwo = %v, want 20", out.TimeSinceEndOfModeTwo)
	}
}

func TestFastStartProfile_AdvanceAccumulatesTimeSinceEndOfModeTwoAlreadyInFlexible(t *testing.T) {
	elapsed := 15.0
	p := FastStartProfile{Mode: ModeFlexible, TimeSinceEndOfModeTwo: &elapsed}
	out := p.Advance(30)

	if out.TimeSinceEndOfModeTwo == nil || *out.TimeSinceEndOfModeTwo != 45 {
		t.Fatalf("TimeSinceEndOfModeTwo = %v, want 45 (15 + 30)", out.TimeSinceEndOfModeTwo)
	}
}

func TestFastStartProfile_AdvanceStaysInModeWhenIntervalDoesNotExceedLength(t *testing.T) {
	p := FastStartProfile{Mode: ModeRampDown, TimeInMode: 0, ModeFourLength: 60}
	out := p.Advance(30)

	if out.Mode != ModeRampDown || out.TimeInMode != 30 {
		t.Fatalf("got mode=%d timeInMode=%v, want mode=ModeRampDown timeInMode=30", out.Mode, out.TimeInMode)
	}
}
