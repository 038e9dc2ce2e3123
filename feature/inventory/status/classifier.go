package status

import (
	"stock-reconciler/core/utils"
	"stock-reconciler/feature/inventory/models"
)

// Status labels produced by the rule set. These are business literals
// reproduced as given, not redesigned.
const (
	// movementReturn is the inbound-return movement type.
	movementReturn = "Rientro"

	// Loaded is the label assigned to inbound returns.
	Loaded = "Carico"

	// Legacy marks units whose ledger entry predates the cutover year.
	Legacy = "ANTE 2023"

	// NotInLedger is the default when no rule matches (including units
	// with no ledger entry at all).
	NotInLedger = "NON IN NAV"

	// legacyCutoffYear is the last year classified as Legacy.
	legacyCutoffYear = 2023
)

// validMovements is the whitelist of movement types that classify as
// themselves when no earlier rule matched.
var validMovements = map[string]struct{}{
	"Reso Carico":        {},
	"Carico":             {},
	"Cambio Progetto":    {},
	"Trasf. in Ingresso": {},
	"Rett. Positiva":     {},
	"Trasf. in Uscita":   {},
	"Rett. Negativa":     {},
}

// rule is one predicate/value pair. Rules are evaluated in declaration
// order and the first match wins.
type rule struct {
	match func(e *models.LedgerEntry) bool
	value func(e *models.LedgerEntry) string
}

var rules = []rule{
	{
		match: func(e *models.LedgerEntry) bool { return e.MovementType == movementReturn },
		value: func(e *models.LedgerEntry) string { return Loaded },
	},
	{
		match: func(e *models.LedgerEntry) bool { return e.Subcontractor != "" },
		value: func(e *models.LedgerEntry) string { return e.Subcontractor },
	},
	{
		match: func(e *models.LedgerEntry) bool { return e.CrewLeaderCode != "" },
		value: func(e *models.LedgerEntry) string { return e.CrewLeaderCode },
	},
	{
		match: func(e *models.LedgerEntry) bool {
			_, ok := validMovements[e.MovementType]
			return ok
		},
		value: func(e *models.LedgerEntry) string { return e.MovementType },
	},
	{
		match: func(e *models.LedgerEntry) bool {
			return e.CreatedAt != nil && e.CreatedAt.Year() <= legacyCutoffYear
		},
		value: func(e *models.LedgerEntry) string { return Legacy },
	},
}

// RawStatus evaluates the ordered rule set against a unit's deduplicated
// ledger entry. entry is nil when the left join found no match, which makes
// every rule false and yields NotInLedger.
func RawStatus(entry *models.LedgerEntry) string {
	if entry == nil {
		return NotInLedger
	}
	for _, r := range rules {
		if r.match(entry) {
			return r.value(entry)
		}
	}
	return NotInLedger
}

// Classifier resolves raw status labels through the supplier directory.
// A nil directory degrades to returning raw labels unchanged.
type Classifier struct {
	dir Directory
}

// NewClassifier creates a Classifier over dir. dir may be nil.
func NewClassifier(dir Directory) *Classifier {
	return &Classifier{dir: dir}
}

// Classify returns the raw and resolved status for one ledger entry.
func (c *Classifier) Classify(entry *models.LedgerEntry) (raw, resolved string) {
	raw = RawStatus(entry)
	return raw, c.Resolve(raw)
}

// Resolve looks the raw label's first digit run up in the directory.
// Labels without digits use the default code "0". Unknown codes, and every
// label when the directory is unavailable, resolve to the raw label.
func (c *Classifier) Resolve(raw string) string {
	if c.dir == nil {
		return raw
	}
	code := utils.FirstDigits(raw, DefaultCode)
	if name, ok := c.dir[code]; ok {
		return name
	}
	return raw
}
