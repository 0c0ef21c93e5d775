package model

// InterconnectorDirection is one row of the interconnector-directions input
// table: a single link of an interconnector (spec.md §3). A plain
// interconnector has one link sharing the interconnector id as its link id;
// a directional "market interconnector" has two distinct link ids, one per
// direction.
type InterconnectorDirection struct {
	InterconnectorID        string
	LinkID                  string
	FromRegion              string
	ToRegion                string
	Min                     float64
	Max                     float64
	FromRegionLossFactor    float64
	ToRegionLossFactor      float64
	GenericConstraintFactor int8 // +1 or -1
}

// IsMarketLink reports whether this link's id differs from its
// interconnector id, marking it as one direction of a two-link market
// interconnector.
func (d InterconnectorDirection) IsMarketLink() bool {
	return d.LinkID != "" && d.LinkID != d.InterconnectorID
}

// LinkKey identifies a single interconnector link.
type LinkKey struct {
	InterconnectorID string
	LinkID           string
}

// InterconnectorRegistry indexes interconnector directions by link and
// groups links sharing an interconnector id (for SOS1 direction exclusivity,
// spec.md §4.6 step 5).
type InterconnectorRegistry struct {
	links map[LinkKey]InterconnectorDirection
	group map[string][]LinkKey
}

// NewInterconnectorRegistry indexes rows, defaulting an empty LinkID to the
// InterconnectorID (the plain, single-link case).
func NewInterconnectorRegistry(rows []InterconnectorDirection) *InterconnectorRegistry {
	reg := &InterconnectorRegistry{
		links: make(map[LinkKey]InterconnectorDirection, len(rows)),
		group: make(map[string][]LinkKey),
	}
	for _, r := range rows {
		if r.LinkID == "" {
			r.LinkID = r.InterconnectorID
		}
		k := LinkKey{InterconnectorID: r.InterconnectorID, LinkID: r.LinkID}
		reg.links[k] = r
		reg.group[r.InterconnectorID] = append(reg.group[r.InterconnectorID], k)
	}
	return reg
}

// Get returns the link row and whether it exists.
func (r *InterconnectorRegistry) Get(k LinkKey) (InterconnectorDirection, bool) {
	row, ok := r.links[k]
	return row, ok
}

// Links returns every link key, sorted by interconnector id and then by
// link id.
func (r *InterconnectorRegistry) Links() []LinkKey {
	seen := make(map[string]bool)
	var order []string
	for _, k := range r.links {
		if !seen[k.InterconnectorID] {
			seen[k.InterconnectorID] = true
			order = append(order, k.InterconnectorID)
		}
	}
	sortStrings(order)
	var out []LinkKey
	for _, id := range order {
		links := append([]LinkKey(nil), r.group[id]...)
		sortLinkKeys(links)
		out = append(out, links...)
	}
	return out
}

// LinksOf returns the (one or two) links belonging to interconnectorID.
func (r *InterconnectorRegistry) LinksOf(interconnectorID string) []LinkKey {
	links := append([]LinkKey(nil), r.group[interconnectorID]...)
	sortLinkKeys(links)
	return links
}

// IsMarketInterconnector reports whether interconnectorID has two distinct
// link ids (a directional market interconnector, spec.md §3).
func (r *InterconnectorRegistry) IsMarketInterconnector(interconnectorID string) bool {
	return len(r.group[interconnectorID]) > 1
}

func sortStrings(s []string) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j-1] > s[j]; j-- {
			s[j-1], s[j] = s[j], s[j-1]
		}
	}
}

func sortLinkKeys(links []LinkKey) {
	for i := 1; i < len(links); i++ {
		for j := i; j > 0; j-- {
			a, c := links[j-1], links[j]
			if c.InterconnectorID < a.InterconnectorID ||
				(c.InterconnectorID == a.InterconnectorID && c.LinkID < a.LinkID) {
				links[j-1], links[j] = links[j], links[j-1]
				continue
			}
			break
		}
	}
}
