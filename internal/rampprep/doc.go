// Package rampprep implements spec.md §4.5: the single place that composes
// ramp rates from as-bid and SCADA sources, splits units into
// non-bidirectional rows and bidirectional composite rows, and adjusts
// ramp rates (or drops units entirely) for a fast-start second run.
package rampprep
