package model

import "testing"

func TestBidBook_SetPriceBidsBeforeVolumeBidsErrors(t *testing.T) {
	b := NewBidBook()
	err := b.SetPriceBids([]PriceBid{{Unit: "A", Bands: BandVolumes{50}}})
	if err == nil {
		t.Fatal("expected error setting price bids before any volume bids")
	}
}

func TestBidBook_RejectsNegativeVolume(t *testing.T) {
	b := NewBidBook()
	err := b.SetVolumeBids([]VolumeBid{{Unit: "A", Bands: BandVolumes{-5}}})
	if err == nil {
		t.Fatal("expected error for negative band volume")
	}
}

func TestBidBook_RejectsNonMonotonicPriceBands(t *testing.T) {
	b := NewBidBook()
	if err := b.SetVolumeBids([]VolumeBid{{Unit: "A", Bands: BandVolumes{10, 10}}}); err != nil {
		t.Fatalf("SetVolumeBids: %v", err)
	}
	err := b.SetPriceBids([]PriceBid{{Unit: "A", Bands: BandVolumes{100, 50}}})
	if err == nil {
		t.Fatal("expected error for non-monotonic price bands")
	}
}

func TestBidBook_BandsSkipsZeroVolumeColumns(t *testing.T) {
	b := NewBidBook()
	if err := b.SetVolumeBids([]VolumeBid{{Unit: "A", Bands: BandVolumes{10, 0, 20}}}); err != nil {
		t.Fatalf("SetVolumeBids: %v", err)
	}
	if err := b.SetPriceBids([]PriceBid{{Unit: "A", Bands: BandVolumes{50, 999, 80}}}); err != nil {
		t.Fatalf("SetPriceBids: %v", err)
	}

	bands := b.Bands()
	if len(bands) != 2 {
		t.Fatalf("Bands() returned %d entries, want 2 (zero-volume band skipped)", len(bands))
	}
	if bands[0].Band != 1 || bands[1].Band != 3 {
		t.Fatalf("Bands() = %+v, want bands 1 and 3", bands)
	}
}

func TestBidBook_DefaultsServiceAndDispatchType(t *testing.T) {
	b := NewBidBook()
	if err := b.SetVolumeBids([]VolumeBid{{Unit: "A", Bands: BandVolumes{10}}}); err != nil {
		t.Fatalf("SetVolumeBids: %v", err)
	}
	if err := b.SetPriceBids([]PriceBid{{Unit: "A", Bands: BandVolumes{50}}}); err != nil {
		t.Fatalf("SetPriceBids: %v", err)
	}

	bands := b.Bands()
	if len(bands) != 1 || bands[0].Service != Energy || bands[0].DispatchType != Generator {
		t.Fatalf("Bands() = %+v, want defaulted to energy/generator", bands)
	}
}
