package constraint

import "errors"

var (
	// ErrNoSuchBid is returned when a builder references a (unit, service,
	// dispatch_type) stack that has no bid variables.
	ErrNoSuchBid = errors.New("constraint: referenced bid stack has no variables")
	// ErrNoDemand is returned when a region appears in no demand row.
	ErrNoDemand = errors.New("constraint: region has no demand row")
	// ErrUnknownLink is returned when a row references an interconnector
	// link that was not declared.
	ErrUnknownLink = errors.New("constraint: unknown interconnector link")
)
