package model

import "errors"

var (
	// ErrMissingColumn is returned when a required input column is absent.
	ErrMissingColumn = errors.New("model: missing required column")
	// ErrDuplicateKey is returned when a primary key repeats within a table.
	ErrDuplicateKey = errors.New("model: duplicated primary key")
	// ErrNonNumeric is returned when a numeric field is NaN or infinite.
	ErrNonNumeric = errors.New("model: non-numeric or infinite value")
	// ErrBadEnum is returned when a field value falls outside its permitted enum.
	ErrBadEnum = errors.New("model: value outside permitted enum")
	// ErrBandsNotMonotonic is returned when price bands are not row-wise
	// non-decreasing for a (unit, dispatch_type, service).
	ErrBandsNotMonotonic = errors.New("model: price bands not monotonic non-decreasing")
	// ErrBidirectionalMismatch is returned when a bidirectional unit is
	// missing its generator or load row in a table keyed by dispatch_type.
	ErrBidirectionalMismatch = errors.New("model: bidirectional unit missing gen/load row")
)
