package ledger

import (
	"sort"

	"stock-reconciler/feature/inventory/models"
)

// Dedupe reduces the raw movement entries to the single most recent entry
// per serial number: registration date descending, movement sequence
// descending as the tie-break, entries without a parsable date last.
//
// Earlier entries for the same serial are discarded without warning; this
// is intentional last-write-wins, not an error condition.
func Dedupe(entries []models.LedgerEntry) map[string]models.LedgerEntry {
	sorted := make([]models.LedgerEntry, len(entries))
	copy(sorted, entries)

	sort.SliceStable(sorted, func(i, j int) bool {
		return moreRecent(sorted[i], sorted[j])
	})

	latest := make(map[string]models.LedgerEntry, len(sorted))
	for _, e := range sorted {
		if _, seen := latest[e.SerialPrimary]; !seen {
			latest[e.SerialPrimary] = e
		}
	}
	return latest
}

// moreRecent orders a before b when a should win the deduplication.
func moreRecent(a, b models.LedgerEntry) bool {
	switch {
	case a.RegistrationDate == nil && b.RegistrationDate == nil:
		return a.MovementSeq > b.MovementSeq
	case a.RegistrationDate == nil:
		return false
	case b.RegistrationDate == nil:
		return true
	case a.RegistrationDate.Equal(*b.RegistrationDate):
		return a.MovementSeq > b.MovementSeq
	default:
		return a.RegistrationDate.After(*b.RegistrationDate)
	}
}
