// Package solver implements the minimal LP/MIP wrapper of spec.md §4.8:
// add_variables, add_linear_constraints, add_sos1, add_sos2, set_objective,
// optimize, get_primal, get_slack, price, disable_variable, and update_rhs.
//
// No third-party LP/MIP library is reachable from this domain's
// dependencies, so Optimize is a hand-rolled dense-tableau two-phase primal
// simplex (simplex.go) with SOS1/SOS2 emulated as binary adjacency
// constraints (sos.go) solved by branch-and-bound (branchbound.go) — the
// emulation spec.md §9 explicitly sanctions ("implementations on a solver
// that does not support SOS2 natively must emulate it with binary adjacency
// variables and one-hot constraints").
package solver
