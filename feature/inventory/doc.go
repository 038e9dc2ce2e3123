// Package inventory is the reconciliation pipeline: it merges the per-unit
// field export, the movement ledger workbook and the warehouse stock
// extracts into a per-serial detail view and a per-(material, province)
// variance summary.
//
// The pipeline is a single-threaded batch computation. Each run reads the
// discovered inputs fully, transforms them through the sub-packages
// (units, ledger, status, extract, aggregate) and returns two complete
// tables; results are cached by a fingerprint of the input file set.
// Recovery policy throughout is "substitute a safe default and continue";
// the only fatal condition is total absence of the unit export or the
// ledger workbook.
package inventory
