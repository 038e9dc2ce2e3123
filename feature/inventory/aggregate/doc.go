// Package aggregate builds the stock-variance summary: three independent
// per-(material, province) aggregates outer-joined on the union of their
// keys, with zero defaults and plain-subtraction deltas.
//
// Warehouse codes are normalized to provinces before grouping, so distinct
// raw codes for the same physical site collapse into one row.
package aggregate
