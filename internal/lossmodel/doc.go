// Package lossmodel implements the interconnector loss module of spec.md
// §4.6: one flow variable and one loss variable per link, a piecewise-linear
// SOS2 interpolation of the link's loss function against break-points, and
// (for a two-link market interconnector) an SOS1 pairing so only one
// direction carries flow at a time.
package lossmodel
