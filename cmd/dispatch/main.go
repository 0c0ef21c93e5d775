// Command dispatch runs a single dispatch interval against a JSON input
// bundle and prints the resulting dispatch, prices, and availabilities. It
// is a thin example harness, not an interval-looping production service
// (spec.md §1 Non-goals) — callers that need to sweep many intervals wire
// internal/historical and internal/dispatch themselves.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"spotclear/internal/config"
	"spotclear/internal/dispatch"
	"spotclear/internal/logger"
	"spotclear/internal/model"
	"spotclear/internal/result"
)

var version = "dev"

// bundle is the on-disk shape a caller hands this harness: every input
// table a dispatch interval needs, already in internal/model's row types.
// Tables a scenario doesn't use can be omitted.
type bundle struct {
	UnitInfo                             []model.UnitInfo                            `json:"unit_info"`
	VolumeBids                           []model.VolumeBid                           `json:"volume_bids"`
	PriceBids                            []model.PriceBid                            `json:"price_bids"`
	Interconnectors                      []model.InterconnectorDirection             `json:"interconnectors"`
	LossModels                           []model.LossModel                           `json:"loss_models"`
	LossBreakpoints                      []model.LossBreakpoint                      `json:"loss_breakpoints"`
	Capacities                           []model.UnitCapacity                        `json:"capacities"`
	UIGF                                 []model.UIGF                                `json:"uigf"`
	Demands                              []model.Demand                              `json:"demands"`
	RampDetails                          []model.RampDetails                         `json:"ramp_details"`
	ScadaRampRates                       []model.ScadaRampRates                      `json:"scada_ramp_rates"`
	FastStartProfiles                    []model.FastStartProfile                    `json:"fast_start_profiles"`
	Trapeziums                           []model.FcasTrapezium                       `json:"trapeziums"`
	FcasRequirements                     []model.FcasRequirement                     `json:"fcas_requirements"`
	GenericConstraintSets                []model.GenericConstraintSet                `json:"generic_constraint_sets"`
	GenericConstraintUnitTerms           []model.GenericConstraintUnitTerm           `json:"generic_constraint_unit_terms"`
	GenericConstraintRegionTerms         []model.GenericConstraintRegionTerm         `json:"generic_constraint_region_terms"`
	GenericConstraintInterconnectorTerms []model.GenericConstraintInterconnectorTerm `json:"generic_constraint_interconnector_terms"`
}

// loadInputs reads a bundle from path and builds the validating registries
// dispatch.Inputs needs.
func loadInputs(path string) (dispatch.Inputs, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return dispatch.Inputs{}, err
	}
	var b bundle
	if err := json.Unmarshal(data, &b); err != nil {
		return dispatch.Inputs{}, fmt.Errorf("decode %s: %w", path, err)
	}

	units, err := model.NewUnitRegistry(b.UnitInfo)
	if err != nil {
		return dispatch.Inputs{}, fmt.Errorf("unit registry: %w", err)
	}

	bids := model.NewBidBook()
	if err := bids.SetVolumeBids(b.VolumeBids); err != nil {
		return dispatch.Inputs{}, fmt.Errorf("volume bids: %w", err)
	}
	if err := bids.SetPriceBids(b.PriceBids); err != nil {
		return dispatch.Inputs{}, fmt.Errorf("price bids: %w", err)
	}

	return dispatch.Inputs{
		Units:                                units,
		Bids:                                 bids,
		Interconnectors:                      model.NewInterconnectorRegistry(b.Interconnectors),
		Losses:                               model.NewLossRegistry(b.LossModels, b.LossBreakpoints),
		Capacities:                           b.Capacities,
		UIGF:                                 b.UIGF,
		Demands:                              b.Demands,
		RampDetails:                          b.RampDetails,
		ScadaRampRates:                       b.ScadaRampRates,
		FastStartProfiles:                    b.FastStartProfiles,
		Trapeziums:                           b.Trapeziums,
		FcasRequirements:                     b.FcasRequirements,
		GenericConstraintSets:                b.GenericConstraintSets,
		GenericConstraintUnitTerms:           b.GenericConstraintUnitTerms,
		GenericConstraintRegionTerms:         b.GenericConstraintRegionTerms,
		GenericConstraintInterconnectorTerms: b.GenericConstraintInterconnectorTerms,
	}, nil
}

func main() {
	inputPath := flag.String("input", "", "path to a JSON input bundle (see the bundle type in cmd/dispatch/main.go)")
	allowOCD := flag.Bool("allow-ocd-rerun", false, "allow the over-constrained-dispatch re-run")
	flag.Parse()

	logger.Banner(version)

	if *inputPath == "" {
		logger.Error("DISPATCH", "missing -input")
		os.Exit(2)
	}

	in, err := loadInputs(*inputPath)
	if err != nil {
		logger.Error("DISPATCH", "load inputs: %v", err)
		os.Exit(1)
	}

	cfg := config.Default()
	cfg.AllowOverConstrainedDispatchRerun = *allowOCD

	m, err := dispatch.NewMarket(cfg, in)
	if err != nil {
		logger.Error("DISPATCH", "solve: %v", err)
		os.Exit(1)
	}

	set, err := result.Extract(m, in)
	if err != nil {
		logger.Error("DISPATCH", "extract results: %v", err)
		os.Exit(1)
	}

	logger.Section("results")
	logger.Stats("objective", m.Objective())
	for _, p := range set.EnergyPrices {
		logger.Stats(fmt.Sprintf("price[%s]", p.Region), p.Price)
	}
	for _, ud := range set.UnitDispatch {
		if ud.MW == 0 {
			continue
		}
		logger.Stats(fmt.Sprintf("dispatch[%s,%s,%s]", ud.Unit, ud.Service, ud.DispatchType), ud.MW)
	}

	if err := json.NewEncoder(os.Stdout).Encode(set); err != nil {
		logger.Error("DISPATCH", "encode results: %v", err)
		os.Exit(1)
	}
}
