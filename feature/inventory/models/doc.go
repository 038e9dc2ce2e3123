// Package models defines the data shapes flowing through the inventory
// reconciliation pipeline.
//
// Input shapes (UnitRecord, LedgerEntry, StockLine, LedgerStock) are built
// once per run by the loaders and never mutated afterwards. Output shapes
// (DetailRow, SummaryRow) are what the HTTP handlers and CSV export consume.
//
// All entities are rebuilt wholesale on each pipeline run; nothing persists
// identity across runs.
package models
