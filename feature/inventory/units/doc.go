// Package units loads the per-unit field export: Latin-1, comma-delimited
// CSVs with a header row. Export revisions carry different column sets, so
// each file's schema is resolved once from its header and missing columns
// fall back to empty fields.
package units
