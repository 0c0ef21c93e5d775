// Package config holds the dispatch engine's run-time configuration
// (spec.md §6 "Configuration").
package config

// Config holds one dispatch run's settings (in-memory representation).
type Config struct {
	DispatchIntervalMinutes float64 `json:"dispatch_interval"`
	SolverName              string  `json:"solver_name"`

	AllowOverConstrainedDispatchRerun bool `json:"allow_over_constrained_dispatch_re_run"`

	// Required when AllowOverConstrainedDispatchRerun is set (spec.md §6).
	EnergyMarketFloorPrice   float64 `json:"energy_market_floor_price"`
	EnergyMarketCeilingPrice float64 `json:"energy_market_ceiling_price"`
	FcasMarketCeilingPrice   float64 `json:"fcas_market_ceiling_price"`

	ValidateInputs bool `json:"validate_inputs"`

	// GenericConstraintViolationCost and TieBreakViolationCost price the
	// deficit variables of constraint families the spec names as elastic
	// but does not tie to a market price cap (spec.md §4.4, §4.3
	// "Tie-break"). Not part of the input spec's own configuration surface;
	// carried here as the natural place for every elastic cost a dispatch
	// run needs.
	GenericConstraintViolationCost float64 `json:"generic_constraint_violation_cost"`
	TieBreakViolationCost          float64 `json:"tie_break_violation_cost"`
}

// Default returns a Config with sensible defaults: a 5-minute dispatch
// interval, OCD re-run disabled, and input validation on.
func Default() *Config {
	return &Config{
		DispatchIntervalMinutes: 5,
		SolverName:              "simplex",
		ValidateInputs:          true,

		GenericConstraintViolationCost: 5000,
		TieBreakViolationCost:           0.001,
	}
}
