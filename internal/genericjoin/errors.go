package genericjoin

import "errors"

// ErrUnknownSet is returned when a term references a set-id with no
// matching generic_constraint_set row.
var ErrUnknownSet = errors.New("genericjoin: term references unknown set-id")

// ErrUnknownInterconnector is returned when an interconnector term
// references an id absent from the interconnector registry.
var ErrUnknownInterconnector = errors.New("genericjoin: term references unknown interconnector")
