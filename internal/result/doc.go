// Package result reads a solved dispatch.Market back out into the tables a
// caller actually wants: unit dispatch, interconnector flows and losses,
// regional energy and FCAS prices, a region dispatch summary, and FCAS
// availabilities (spec.md §4.10 "Result Extraction").
package result
