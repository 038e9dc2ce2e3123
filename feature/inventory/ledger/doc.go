// Package ledger reads the movement ledger workbook and reduces it to one
// latest entry per serial number (most-recent-wins).
//
// The workbook serves double duty: its movement rows feed the per-serial
// detail view, and its quantity rows are the third contribution to the
// stock-variance summary.
package ledger
