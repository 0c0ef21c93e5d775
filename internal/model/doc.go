// Package model defines the shared domain entities consumed and produced by
// the dispatch core: units, services, bid bands, FCAS trapeziums,
// interconnectors, loss functions, fast-start profiles and generic
// constraints. These types carry no behaviour beyond validation in their
// registries and bid book, the fast-start mode advance
// (FastStartProfile.Advance), and small derived-value helpers (trapezium
// slope coefficients, bidirectional detection) — the
// builders in internal/constraint and internal/variable turn them into
// solver rows.
package model
