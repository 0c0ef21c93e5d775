package model

import (
	"fmt"
	"math"
)

// MaxBands is the number of bid bands (columns "1".."10") a unit may offer
// per (service, dispatch_type).
const MaxBands = 10

// BandVolumes holds up to MaxBands band volumes, indexed 0..9 for bands 1..10.
// An absent band column is represented as 0, which produces no decision
// variable (spec.md §3 "Bid band").
type BandVolumes [MaxBands]float64

// VolumeBid is one row of the volume-bid input table.
type VolumeBid struct {
	Unit         string
	Service      Service
	DispatchType DispatchType
	Bands        BandVolumes
}

// PriceBid is one row of the price-bid input table, keyed identically to a
// VolumeBid.
type PriceBid struct {
	Unit         string
	Service      Service
	DispatchType DispatchType
	Bands        BandVolumes
}

// BidBand is a single non-zero (volume, price) band, joined from a volume
// bid and its matching price bid.
type BidBand struct {
	Unit         string
	Service      Service
	DispatchType DispatchType
	Band         int // 1..10
	Volume       float64
	Price        float64
}

// BidKey identifies the (unit, service, dispatch_type) stack a band belongs to.
type BidKey struct {
	Unit         string
	Service      Service
	DispatchType DispatchType
}

// BidBook indexes volume and price bids and joins them into BidBand rows.
type BidBook struct {
	volumes map[BidKey]VolumeBid
	prices  map[BidKey]PriceBid
}

// NewBidBook builds an empty book. Volume bids must be set before price
// bids (spec.md §7 Ordering: "attempting to set price bids before volume
// bids" is an ordering error).
func NewBidBook() *BidBook {
	return &BidBook{
		volumes: make(map[BidKey]VolumeBid),
		prices:  make(map[BidKey]PriceBid),
	}
}

func keyOf(unit string, service Service, dispatchType DispatchType) BidKey {
	if service == "" {
		service = Energy
	}
	if dispatchType == "" {
		dispatchType = Generator
	}
	return BidKey{Unit: unit, Service: service, DispatchType: dispatchType}
}

// SetVolumeBids loads the volume-bid table. Rejects non-negative-volume
// violations and NaN/Inf values.
func (b *BidBook) SetVolumeBids(rows []VolumeBid) error {
	for _, r := range rows {
		k := keyOf(r.Unit, r.Service, r.DispatchType)
		if _, exists := b.volumes[k]; exists {
			return fmt.Errorf("%w: volume_bid %+v", ErrDuplicateKey, k)
		}
		for i, v := range r.Bands {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("%w: volume_bid %+v band %d", ErrNonNumeric, k, i+1)
			}
			if v < 0 {
				return fmt.Errorf("%w: volume_bid %+v band %d is negative", ErrBadEnum, k, i+1)
			}
		}
		r.Service, r.DispatchType = k.Service, k.DispatchType
		b.volumes[k] = r
	}
	return nil
}

// SetPriceBids loads the price-bid table. Requires that volume bids already
// exist for every (unit, service, dispatch_type) referenced, and that bands
// are row-wise non-decreasing across non-zero-volume bands.
func (b *BidBook) SetPriceBids(rows []PriceBid) error {
	if len(b.volumes) == 0 && len(rows) > 0 {
		return fmt.Errorf("model: price bids set before any volume bids")
	}
	for _, r := range rows {
		k := keyOf(r.Unit, r.Service, r.DispatchType)
		vb, ok := b.volumes[k]
		if !ok {
			return fmt.Errorf("model: price bid %+v has no matching volume bid", k)
		}
		last := math.Inf(-1)
		for i, p := range r.Bands {
			if math.IsNaN(p) || math.IsInf(p, 0) {
				return fmt.Errorf("%w: price_bid %+v band %d", ErrNonNumeric, k, i+1)
			}
			if vb.Bands[i] == 0 {
				continue // zero-volume bands produce no variable; price is irrelevant
			}
			if p < last {
				return fmt.Errorf("%w: price_bid %+v band %d", ErrBandsNotMonotonic, k, i+1)
			}
			last = p
		}
		r.Service, r.DispatchType = k.Service, k.DispatchType
		b.prices[k] = r
	}
	return nil
}

// Bands returns every non-zero-volume band across the whole book, in stable
// order (grouped by unit, service, dispatch_type, then band index) so that
// variable ids are deterministic for identical inputs.
func (b *BidBook) Bands() []BidBand {
	keys := make([]BidKey, 0, len(b.volumes))
	for k := range b.volumes {
		keys = append(keys, k)
	}
	sortBidKeys(keys)

	out := make([]BidBand, 0, len(keys)*2)
	for _, k := range keys {
		vb := b.volumes[k]
		pb := b.prices[k]
		for i, v := range vb.Bands {
			if v == 0 {
				continue
			}
			out = append(out, BidBand{
				Unit:         k.Unit,
				Service:      k.Service,
				DispatchType: k.DispatchType,
				Band:         i + 1,
				Volume:       v,
				Price:        pb.Bands[i],
			})
		}
	}
	return out
}

func sortBidKeys(keys []BidKey) {
	for i := 1; i < len(keys); i++ {
		for j := i; j > 0; j-- {
			a, c := keys[j-1], keys[j]
			if bidKeyLess(c, a) {
				keys[j-1], keys[j] = keys[j], keys[j-1]
				continue
			}
			break
		}
	}
}

func bidKeyLess(a, b BidKey) bool {
	if a.Unit != b.Unit {
		return a.Unit < b.Unit
	}
	if a.Service != b.Service {
		return a.Service < b.Service
	}
	return a.DispatchType < b.DispatchType
}
