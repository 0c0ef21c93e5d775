package rampprep

import "errors"

// ErrMissingRampDetails is returned when a bidirectional unit has no
// ramp-details row for one of its two sides.
var ErrMissingRampDetails = errors.New("rampprep: bidirectional unit missing ramp_details row")
