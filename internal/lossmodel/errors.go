package lossmodel

import "errors"

// ErrMissingLossModel is returned when a link declared in the
// interconnector registry has no matching loss-function row.
var ErrMissingLossModel = errors.New("lossmodel: link has no loss_model row")

// ErrNoBreakpoints is returned when a link has a loss model but no
// break-point grid to interpolate against.
var ErrNoBreakpoints = errors.New("lossmodel: link has no loss_break_points rows")
