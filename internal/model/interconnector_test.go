package model

import "testing"

func TestInterconnectorRegistry_DefaultsEmptyLinkIDToInterconnectorID(t *testing.T) {
	reg := NewInterconnectorRegistry([]InterconnectorDirection{
		{InterconnectorID: "I1", FromRegion: "NSW", ToRegion: "VIC"},
	})
	row, ok := reg.Get(LinkKey{InterconnectorID: "I1", LinkID: "I1"})
	if !ok {
		t.Fatal("expected link keyed by interconnector id when link id omitted")
	}
	if row.LinkID != "I1" {
		t.Fatalf("LinkID = %q, want I1", row.LinkID)
	}
}

func TestInterconnectorRegistry_IsMarketInterconnectorRequiresTwoLinks(t *testing.T) {
	reg := NewInterconnectorRegistry([]InterconnectorDirection{
		{InterconnectorID: "I1", LinkID: "I1-F", FromRegion: "NSW", ToRegion: "VIC"},
		{InterconnectorID: "I1", LinkID: "I1-R", FromRegion: "VIC", ToRegion: "NSW"},
		{InterconnectorID: "I2", FromRegion: "VIC", ToRegion: "SA"},
	})
	if !reg.IsMarketInterconnector("I1") {
		t.Error("I1 has two distinct link ids, should be a market interconnector")
	}
	if reg.IsMarketInterconnector("I2") {
		t.Error("I2 has a single link, should not be a market interconnector")
	}
}

func TestInterconnectorRegistry_LinksOfReturnsBothDirections(t *testing.T) {
	reg := NewInterconnectorRegistry([]InterconnectorDirection{
		{InterconnectorID: "I1", LinkID: "I1-F", FromRegion: "NSW", ToRegion: "VIC"},
		{InterconnectorID: "I1", LinkID: "I1-R", FromRegion: "VIC", ToRegion: "NSW"},
	})
	links := reg.LinksOf("I1")
	if len(links) != 2 {
		t.Fatalf("LinksOf(I1) = %v, want 2 links", links)
	}
}
