package model

import "fmt"

// UnitInfo is one row of the unit info input table: a (unit, dispatch_type)
// pair together with its region and loss factor. A "bidirectional" unit
// appears twice in this table — once as generator, once as load — sharing
// SCADA ramp rates and forming a composite ramp envelope (spec.md §3, §4.3).
type UnitInfo struct {
	Unit         string
	Region       string
	DispatchType DispatchType
	LossFactor   float64
}

// UnitKey identifies a UnitInfo row uniquely.
type UnitKey struct {
	Unit         string
	DispatchType DispatchType
}

func (k UnitKey) String() string {
	return fmt.Sprintf("%s/%s", k.Unit, k.DispatchType)
}

// UnitRegistry indexes unit info by (unit, dispatch_type) and answers
// bidirectionality queries used throughout the constraint builders.
type UnitRegistry struct {
	rows map[UnitKey]UnitInfo
	// unit -> set of dispatch types present, used to detect bidirectional pairs.
	sides map[string]map[DispatchType]bool
}

// NewUnitRegistry indexes rows, returning ErrDuplicateKey on a repeated
// (unit, dispatch_type) key.
func NewUnitRegistry(rows []UnitInfo) (*UnitRegistry, error) {
	reg := &UnitRegistry{
		rows:  make(map[UnitKey]UnitInfo, len(rows)),
		sides: make(map[string]map[DispatchType]bool, len(rows)),
	}
	for _, r := range rows {
		if !r.DispatchType.Valid() {
			return nil, fmt.Errorf("%w: unit %q dispatch_type %q", ErrBadEnum, r.Unit, r.DispatchType)
		}
		k := UnitKey{Unit: r.Unit, DispatchType: r.DispatchType}
		if _, exists := reg.rows[k]; exists {
			return nil, fmt.Errorf("%w: unit_info %s", ErrDuplicateKey, k)
		}
		reg.rows[k] = r
		if reg.sides[r.Unit] == nil {
			reg.sides[r.Unit] = make(map[DispatchType]bool, 2)
		}
		reg.sides[r.Unit][r.DispatchType] = true
	}
	return reg, nil
}

// Get returns the UnitInfo row for (unit, dispatchType) and whether it exists.
func (r *UnitRegistry) Get(unit string, dispatchType DispatchType) (UnitInfo, bool) {
	row, ok := r.rows[UnitKey{Unit: unit, DispatchType: dispatchType}]
	return row, ok
}

// IsBidirectional reports whether unit appears as both generator and load.
func (r *UnitRegistry) IsBidirectional(unit string) bool {
	sides := r.sides[unit]
	return sides[Generator] && sides[Load]
}

// Units returns every distinct unit id.
func (r *UnitRegistry) Units() []string {
	units := make([]string, 0, len(r.sides))
	for u := range r.sides {
		units = append(units, u)
	}
	return units
}

// All returns every UnitInfo row.
func (r *UnitRegistry) All() []UnitInfo {
	rows := make([]UnitInfo, 0, len(r.rows))
	for _, row := range r.rows {
		rows = append(rows, row)
	}
	return rows
}

// RequireBothSides validates that, for every bidirectional unit known to the
// registry, a row keyed by (unit, dispatch_type) exists in present for both
// Generator and Load. tableName is used only for the error message.
func (r *UnitRegistry) RequireBothSides(tableName string, present map[UnitKey]bool) error {
	for unit, sides := range r.sides {
		if !(sides[Generator] && sides[Load]) {
			continue
		}
		for _, dt := range []DispatchType{Generator, Load} {
			if !present[UnitKey{Unit: unit, DispatchType: dt}] {
				return fmt.Errorf("%w: table %s missing %s row for bidirectional unit %q",
					ErrBidirectionalMismatch, tableName, dt, unit)
			}
		}
	}
	return nil
}
