// Package dispatch implements the Dispatch Orchestrator (spec.md §4.9): it
// assembles every constraint builder's output into one solver.Problem, runs
// the MIP solve, relinearizes the interconnector loss model, runs the LP
// solve for prices, and optionally re-runs the over-constrained-dispatch
// (OCD) pass.
package dispatch
